package text

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// FontConfig holds paths to the font files of one family.
type FontConfig struct {
	Family     string
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// FontPath returns the font path for the given style combination.
func (fc FontConfig) FontPath(bold, italic bool) string {
	if bold && italic && fc.BoldItalic != "" {
		return fc.BoldItalic
	}
	if bold && fc.Bold != "" {
		return fc.Bold
	}
	if italic && fc.Italic != "" {
		return fc.Italic
	}
	return fc.Regular
}

// AtkinsonHyperlegible returns a FontConfig for the Atkinson Hyperlegible
// files in dir.
func AtkinsonHyperlegible(dir string) FontConfig {
	return FontConfig{
		Family:     "Atkinson Hyperlegible",
		Regular:    filepath.Join(dir, "AtkinsonHyperlegible-Regular.ttf"),
		Bold:       filepath.Join(dir, "AtkinsonHyperlegible-Bold.ttf"),
		Italic:     filepath.Join(dir, "AtkinsonHyperlegible-Italic.ttf"),
		BoldItalic: filepath.Join(dir, "AtkinsonHyperlegible-BoldItalic.ttf"),
	}
}

// fileTypeface loads a font file with gg each time a new size is needed.
type fileTypeface struct {
	path string
}

func (t fileTypeface) NewFace(size float64) (font.Face, error) {
	return gg.LoadFontFace(t.path, size)
}

// DirBackend serves font families from files on disk.
type DirBackend struct {
	configs []FontConfig
}

func NewDirBackend(configs ...FontConfig) *DirBackend {
	return &DirBackend{configs: configs}
}

func (b *DirBackend) MatchFamilyStyle(family string, weight, width int, slant Slant) (Typeface, bool) {
	for _, fc := range b.configs {
		if !strings.EqualFold(fc.Family, family) {
			continue
		}
		path := fc.FontPath(weight >= 600, slant != Upright)
		if path == "" {
			return nil, false
		}
		if _, err := os.Stat(path); err != nil {
			return nil, false
		}
		return fileTypeface{path: path}, true
	}
	return nil, false
}
