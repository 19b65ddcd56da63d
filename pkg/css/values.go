package css

import (
	"strconv"
	"strings"
)

const DefaultFontSize = 16.0

// ParsePx parses a pixel length such as "12px" or a bare number.
func ParsePx(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatPx renders a pixel length in its shortest decimal form.
func FormatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ParsePercent parses "50%" as 50.
func ParsePercent(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	if !strings.HasSuffix(val, "%") {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseFontSize returns the pixel size of a resolved font-size value,
// falling back to the default size.
func ParseFontSize(val string) float64 {
	if px, ok := ParsePx(val); ok && px > 0 {
		return px
	}
	return DefaultFontSize
}

type FontWeight int

const (
	WeightNormal FontWeight = 400
	WeightBold   FontWeight = 700
)

// ParseFontWeight understands the keywords and numeric weights 100 to 900.
func ParseFontWeight(val string) FontWeight {
	switch strings.ToLower(val) {
	case "bold", "bolder":
		return WeightBold
	case "normal", "lighter", "":
		return WeightNormal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 1 || n > 1000 {
		return WeightNormal
	}
	return FontWeight(n)
}

func (w FontWeight) IsBold() bool { return w >= 600 }

type FontStyle int

const (
	StyleNormal FontStyle = iota
	StyleItalic
	StyleOblique
)

func ParseFontStyle(val string) FontStyle {
	switch strings.ToLower(val) {
	case "italic":
		return StyleItalic
	case "oblique":
		return StyleOblique
	}
	return StyleNormal
}
