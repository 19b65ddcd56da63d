package text

import (
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

// DefaultFamilies is the fallback order used when no families are given.
var DefaultFamilies = []string{"Atkinson Hyperlegible", "Go"}

// FallbackFamily names the built-in bitmap face used when nothing matches.
const FallbackFamily = "basicfont"

type Option func(*FontManager)

func WithLogger(l *zap.Logger) Option {
	return func(m *FontManager) {
		if l != nil {
			m.logger = l
		}
	}
}

type faceKey struct {
	size   int
	bold   bool
	italic bool
}

// FontManager hands out faces by size and style. Each distinct
// (size, bold, italic) is resolved once against the family list and cached.
// A FontManager is not safe for concurrent use.
type FontManager struct {
	backend  Backend
	families []string
	cache    map[faceKey]*Face
	logger   *zap.Logger
}

func NewFontManager(backend Backend, families []string, opts ...Option) *FontManager {
	if len(families) == 0 {
		families = DefaultFamilies
	}
	m := &FontManager{
		backend:  backend,
		families: families,
		cache:    make(map[faceKey]*Face),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Face returns the face for a pixel size and style. Sizes are rounded to
// whole pixels. It never returns nil.
func (m *FontManager) Face(size float64, bold, italic bool) *Face {
	key := faceKey{size: int(math.Round(size)), bold: bold, italic: italic}
	if key.size < 1 {
		key.size = 1
	}
	if f, ok := m.cache[key]; ok {
		return f
	}
	f := m.resolve(key)
	m.cache[key] = f
	return f
}

// CacheSize reports how many faces have been resolved.
func (m *FontManager) CacheSize() int {
	return len(m.cache)
}

func (m *FontManager) resolve(key faceKey) *Face {
	weight := WeightNormal
	if key.bold {
		weight = WeightBold
	}
	slant := Upright
	if key.italic {
		slant = Italic
	}
	if m.backend != nil {
		for _, family := range m.families {
			tf, ok := m.backend.MatchFamilyStyle(family, weight, WidthNormal, slant)
			if !ok {
				continue
			}
			ff, err := tf.NewFace(float64(key.size))
			if err != nil {
				m.logger.Warn("font face creation failed",
					zap.String("family", family),
					zap.Int("size", key.size),
					zap.Error(err))
				continue
			}
			return newFace(family, float64(key.size), key.bold, key.italic, ff)
		}
	}
	m.logger.Warn("no font family matched, using built-in face",
		zap.String("families", strings.Join(m.families, ", ")),
		zap.Int("size", key.size),
		zap.Bool("bold", key.bold),
		zap.Bool("italic", key.italic))
	return newFace(FallbackFamily, float64(key.size), key.bold, key.italic, basicfont.Face7x13)
}
