package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "MINIBROWSE_"

type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Page holds the layout margins. VStep is also the gap after a paragraph.
type Page struct {
	HStep float64 `yaml:"hstep"`
	VStep float64 `yaml:"vstep"`
}

type Config struct {
	Viewport     Viewport `yaml:"viewport"`
	Page         Page     `yaml:"page"`
	ScrollStep   float64  `yaml:"scroll_step"`
	FontFamilies []string `yaml:"font_families"`
	FontsDir     string   `yaml:"fonts_dir"`
	FallbackURL  string   `yaml:"fallback_url"`
	UserAgent    string   `yaml:"user_agent"`
	LogLevel     string   `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Viewport:     Viewport{Width: 800, Height: 600},
		Page:         Page{HStep: 20, VStep: 18},
		ScrollStep:   100,
		FontFamilies: []string{"Atkinson Hyperlegible", "Go"},
		FontsDir:     "fonts",
		FallbackURL:  "https://browser.engineering/",
		UserAgent:    "minibrowse/1.0 (compatible; Go)",
		LogLevel:     "info",
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty), a .env file in the working directory if one
// exists, and MINIBROWSE_* environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	var errs []error
	intVar := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	floatVar := func(name string, dst *float64) {
		if v, ok := lookup(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = f
		}
	}
	stringVar := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	intVar("WIDTH", &c.Viewport.Width)
	intVar("HEIGHT", &c.Viewport.Height)
	floatVar("HSTEP", &c.Page.HStep)
	floatVar("VSTEP", &c.Page.VStep)
	floatVar("SCROLL_STEP", &c.ScrollStep)
	stringVar("FONTS_DIR", &c.FontsDir)
	stringVar("FALLBACK_URL", &c.FallbackURL)
	stringVar("USER_AGENT", &c.UserAgent)
	stringVar("LOG_LEVEL", &c.LogLevel)
	if v, ok := lookup("FONT_FAMILIES"); ok {
		c.FontFamilies = c.FontFamilies[:0]
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				c.FontFamilies = append(c.FontFamilies, f)
			}
		}
	}
	return errors.Join(errs...)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
}

// Validate checks that the page geometry leaves room for content.
func (c Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport %dx%d must be positive", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Page.HStep < 0 || c.Page.VStep < 0 {
		return fmt.Errorf("page margins must not be negative")
	}
	if float64(c.Viewport.Width) <= 2*c.Page.HStep {
		return fmt.Errorf("viewport width %d leaves no room inside margins of %g", c.Viewport.Width, c.Page.HStep)
	}
	if c.ScrollStep <= 0 {
		return fmt.Errorf("scroll step %g must be positive", c.ScrollStep)
	}
	return nil
}
