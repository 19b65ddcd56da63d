package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareOptions control how strictly two frames must agree.
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still
	// counted as equal.
	Tolerance int
	// FuzzyRadius lets a pixel match any expected pixel within this many
	// pixels, absorbing small glyph shifts.
	FuzzyRadius int
	// MaxDifferentPercent accepts the frames when at most this share of
	// pixels differ.
	MaxDifferentPercent float64
	// DiffPath, when set, receives a PNG marking mismatches in red.
	DiffPath string
}

type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int
}

// Compare checks actual against expected pixel by pixel.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image bounds differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}
	res := &CompareResult{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}

	var diff *image.RGBA
	if opts.DiffPath != "" {
		diff = image.NewRGBA(bounds)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := actual.At(x, y)
			d := channelDiff(a, expected.At(x, y))
			res.MaxDifference = max(res.MaxDifference, d)

			ok := d <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && nearMatch(a, expected, x, y, opts))
			if !ok {
				res.Match = false
				res.DifferentPixels++
			}
			if diff != nil {
				diff.Set(x, y, diffColor(a, ok))
			}
		}
	}

	if !res.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(res.DifferentPixels) / float64(res.TotalPixels) * 100
		res.Match = pct <= opts.MaxDifferentPercent
	}
	if diff != nil && !res.Match {
		if err := writePNG(diff, opts.DiffPath); err != nil {
			return res, fmt.Errorf("saving diff image: %w", err)
		}
	}
	return res, nil
}

// CompareFile compares img with the PNG stored at path.
func CompareFile(img image.Image, path string, opts CompareOptions) (*CompareResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference image: %w", err)
	}
	defer f.Close()
	expected, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding reference image %s: %w", path, err)
	}
	return Compare(img, expected, opts)
}

func nearMatch(a color.Color, expected image.Image, x, y int, opts CompareOptions) bool {
	r := opts.FuzzyRadius
	area := image.Rect(x-r, y-r, x+r+1, y+r+1).Intersect(expected.Bounds())
	for ny := area.Min.Y; ny < area.Max.Y; ny++ {
		for nx := area.Min.X; nx < area.Max.X; nx++ {
			if channelDiff(a, expected.At(nx, ny)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

// channelDiff is the largest 8-bit channel difference between two colors.
func channelDiff(a, b color.Color) int {
	ac := color.NRGBAModel.Convert(a).(color.NRGBA)
	bc := color.NRGBAModel.Convert(b).(color.NRGBA)
	return max(
		absDiff(ac.R, bc.R),
		absDiff(ac.G, bc.G),
		absDiff(ac.B, bc.B),
		absDiff(ac.A, bc.A),
	)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func diffColor(c color.Color, ok bool) color.Color {
	if !ok {
		return color.RGBA{255, 0, 0, 255}
	}
	g := color.GrayModel.Convert(c).(color.Gray)
	return color.RGBA{g.Y, g.Y, g.Y, 255}
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
