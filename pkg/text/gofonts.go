package text

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// truetypeFace is a parsed TrueType font.
type truetypeFace struct {
	font *truetype.Font
}

func (t truetypeFace) NewFace(size float64) (font.Face, error) {
	return truetype.NewFace(t.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

type goFontSet struct {
	regular, bold, italic, boldItalic []byte
}

var goFamilies = map[string]goFontSet{
	"go":      {goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF},
	"go mono": {gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
}

// GoFontBackend serves the Go font family, which is compiled into the
// binary, under the names "Go" and "Go Mono". "monospace" is an alias for
// Go Mono and "sans-serif" for Go.
type GoFontBackend struct {
	mu     sync.Mutex
	parsed map[string]*truetype.Font
}

func GoFonts() *GoFontBackend {
	return &GoFontBackend{parsed: make(map[string]*truetype.Font)}
}

func (b *GoFontBackend) MatchFamilyStyle(family string, weight, width int, slant Slant) (Typeface, bool) {
	name := strings.ToLower(strings.TrimSpace(family))
	switch name {
	case "monospace":
		name = "go mono"
	case "sans-serif":
		name = "go"
	}
	set, ok := goFamilies[name]
	if !ok {
		return nil, false
	}
	bold := weight >= 600
	italic := slant != Upright
	data := set.regular
	key := name + "/regular"
	switch {
	case bold && italic:
		data, key = set.boldItalic, name+"/bolditalic"
	case bold:
		data, key = set.bold, name+"/bold"
	case italic:
		data, key = set.italic, name+"/italic"
	}
	f, err := b.parse(key, data)
	if err != nil {
		return nil, false
	}
	return truetypeFace{font: f}, true
}

func (b *GoFontBackend) parse(key string, data []byte) (*truetype.Font, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if f, ok := b.parsed[key]; ok {
		return f, nil
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	b.parsed[key] = f
	return f, nil
}
