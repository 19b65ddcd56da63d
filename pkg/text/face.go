package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type Slant int

const (
	Upright Slant = iota
	Italic
	Oblique
)

const (
	WeightNormal = 400
	WeightBold   = 700

	WidthNormal = 5
)

// Typeface is a concrete font file that can produce faces at any size.
type Typeface interface {
	NewFace(size float64) (font.Face, error)
}

// Backend resolves a family name and style to a typeface.
type Backend interface {
	MatchFamilyStyle(family string, weight, width int, slant Slant) (Typeface, bool)
}

// Backends tries each backend in turn.
type Backends []Backend

func (bs Backends) MatchFamilyStyle(family string, weight, width int, slant Slant) (Typeface, bool) {
	for _, b := range bs {
		if b == nil {
			continue
		}
		if tf, ok := b.MatchFamilyStyle(family, weight, width, slant); ok {
			return tf, true
		}
	}
	return nil, false
}

// Metrics are the vertical metrics of a face, in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
	// Spacing is the recommended distance between consecutive baselines.
	Spacing float64
}

// Face is a sized font handle used for measuring and drawing text.
type Face struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool

	face    font.Face
	metrics Metrics
}

func newFace(family string, size float64, bold, italic bool, f font.Face) *Face {
	m := f.Metrics()
	spacing := toFloat(m.Height)
	if spacing <= 0 {
		spacing = toFloat(m.Ascent + m.Descent)
	}
	return &Face{
		Family: family,
		Size:   size,
		Bold:   bold,
		Italic: italic,
		face:   f,
		metrics: Metrics{
			Ascent:  toFloat(m.Ascent),
			Descent: toFloat(m.Descent),
			Spacing: spacing,
		},
	}
}

func (f *Face) Metrics() Metrics { return f.metrics }

// Measure returns the advance width of s and its ink bounds relative to the
// baseline origin.
func (f *Face) Measure(s string) (advance float64, bounds fixed.Rectangle26_6) {
	bounds, adv := font.BoundString(f.face, s)
	return toFloat(adv), bounds
}

// Width is the advance width of s.
func (f *Face) Width(s string) float64 {
	return toFloat(font.MeasureString(f.face, s))
}

// FontFace exposes the underlying face for rasterisation.
func (f *Face) FontFace() font.Face { return f.face }

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
