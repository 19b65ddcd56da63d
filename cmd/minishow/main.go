package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"minibrowse/pkg/config"
	"minibrowse/pkg/html"
	"minibrowse/pkg/layout"
	"minibrowse/pkg/render"
	"minibrowse/pkg/resource"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	width := flag.Int("w", 0, "viewport width in pixels (overrides config)")
	height := flag.Int("h", 0, "viewport height in pixels (overrides config)")
	scroll := flag.Float64("scroll", 0, "vertical scroll offset in pixels")
	output := flag.String("o", "output.png", "output PNG file path")
	dump := flag.Bool("dump", false, "print the DOM and box trees to stdout")
	expect := flag.String("expect", "", "reference PNG to compare the output against")
	tolerance := flag.Int("tolerance", 2, "per-channel tolerance for -expect")
	fuzz := flag.Int("fuzz", 0, "pixel radius for fuzzy matching with -expect")
	open := flag.Bool("open", false, "open the output PNG with the system viewer")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minishow [flags] [url or file]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Viewport.Width = *width
	}
	if *height > 0 {
		cfg.Viewport.Height = *height
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	url := cfg.FallbackURL
	if flag.NArg() > 0 {
		url = target(flag.Arg(0))
	}

	browser := resource.NewBrowserFromConfig(cfg, logger)
	page, err := browser.Load(url)
	if err != nil {
		logger.Fatal("load failed", zap.Error(err))
	}

	if *dump {
		fmt.Println(html.Dump(page.Document))
		fmt.Println(layout.Dump(page.Layout))
	}

	renderer := render.NewRenderer(cfg.Viewport.Width, cfg.Viewport.Height, render.WithLogger(logger))
	renderer.Render(page.DisplayList, *scroll)
	if err := renderer.SavePNG(*output); err != nil {
		logger.Fatal("saving PNG failed", zap.String("path", *output), zap.Error(err))
	}
	logger.Info("rendered page",
		zap.Stringer("url", page.URL),
		zap.Int("items", len(page.DisplayList)),
		zap.Float64("height", page.Height),
		zap.String("output", *output))

	if *open {
		if err := openFile(*output); err != nil {
			logger.Warn("could not open output", zap.Error(err))
		}
	}

	if *expect != "" {
		opts := render.CompareOptions{
			Tolerance:   *tolerance,
			FuzzyRadius: *fuzz,
			DiffPath:    strings.TrimSuffix(*output, filepath.Ext(*output)) + "-diff.png",
		}
		res, err := render.CompareFile(renderer.Image(), *expect, opts)
		if err != nil {
			logger.Fatal("comparison failed", zap.Error(err))
		}
		if !res.Match {
			logger.Error("output differs from reference",
				zap.String("reference", *expect),
				zap.Int("different_pixels", res.DifferentPixels),
				zap.Int("max_difference", res.MaxDifference),
				zap.String("diff", opts.DiffPath))
			logger.Sync()
			os.Exit(2)
		}
		logger.Info("output matches reference", zap.String("reference", *expect))
	}
}

// target turns a path to an existing local file into a file URL and
// leaves anything else untouched.
func target(arg string) string {
	if strings.Contains(arg, "://") {
		return arg
	}
	if _, err := os.Stat(arg); err != nil {
		return arg
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return arg
	}
	return "file://" + filepath.ToSlash(abs)
}

func openFile(path string) error {
	cmd := "xdg-open"
	if runtime.GOOS == "darwin" {
		cmd = "open"
	}
	return exec.Command(cmd, path).Start()
}
