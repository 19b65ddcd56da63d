package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibrowse/pkg/layout"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCompare_Identical(t *testing.T) {
	res, err := Compare(solid(10, 10, red), solid(10, 10, red), CompareOptions{})
	require.NoError(t, err)
	assert.True(t, res.Match)
	assert.Equal(t, 0, res.DifferentPixels)
	assert.Equal(t, 100, res.TotalPixels)
}

func TestCompare_Different(t *testing.T) {
	diffPath := filepath.Join(t.TempDir(), "diff.png")
	res, err := Compare(solid(10, 10, red), solid(10, 10, color.RGBA{0, 0, 255, 255}), CompareOptions{DiffPath: diffPath})
	require.NoError(t, err)
	assert.False(t, res.Match)
	assert.Equal(t, 100, res.DifferentPixels)
	assert.Equal(t, 255, res.MaxDifference)
	assert.FileExists(t, diffPath)
}

func TestCompare_Tolerances(t *testing.T) {
	a := solid(10, 10, white)
	b := solid(10, 10, white)
	b.SetRGBA(5, 5, color.RGBA{252, 252, 252, 255})

	res, err := Compare(a, b, CompareOptions{Tolerance: 3})
	require.NoError(t, err)
	assert.True(t, res.Match)

	b.SetRGBA(5, 5, color.RGBA{0, 0, 0, 255})
	res, err = Compare(a, b, CompareOptions{})
	require.NoError(t, err)
	assert.False(t, res.Match)
	assert.Equal(t, 1, res.DifferentPixels)

	res, err = Compare(a, b, CompareOptions{MaxDifferentPercent: 1})
	require.NoError(t, err)
	assert.True(t, res.Match)

	res, err = Compare(a, b, CompareOptions{FuzzyRadius: 1})
	require.NoError(t, err)
	assert.True(t, res.Match, "a white neighbour is within reach")
}

func TestCompare_BoundsMismatch(t *testing.T) {
	_, err := Compare(solid(10, 10, red), solid(10, 11, red), CompareOptions{})
	assert.ErrorContains(t, err, "bounds differ")
}

func TestCompareFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	r := NewRenderer(40, 40)
	r.Render([]layout.DisplayItem{&layout.RectItem{X1: 5, Y1: 5, X2: 30, Y2: 30, Color: "blue"}}, 0)
	require.NoError(t, r.SavePNG(path))

	res, err := CompareFile(r.Image(), path, CompareOptions{})
	require.NoError(t, err)
	assert.True(t, res.Match)

	_, err = CompareFile(r.Image(), path+".missing", CompareOptions{})
	assert.Error(t, err)
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))
	_, err = CompareFile(r.Image(), path, CompareOptions{})
	assert.ErrorContains(t, err, "decoding reference image")
}

// Scrolling a page by d draws the same frame as moving every item up by d.
func TestRender_ScrollMatchesShiftedItems(t *testing.T) {
	items := []layout.DisplayItem{
		&layout.RectItem{X1: 10, Y1: 130, X2: 90, Y2: 170, Color: "green"},
		&layout.RectItem{X1: 20, Y1: 190, X2: 60, Y2: 260, Color: "#ff8800"},
	}
	shifted := []layout.DisplayItem{
		&layout.RectItem{X1: 10, Y1: 30, X2: 90, Y2: 70, Color: "green"},
		&layout.RectItem{X1: 20, Y1: 90, X2: 60, Y2: 160, Color: "#ff8800"},
	}

	scrolled := NewRenderer(100, 100)
	scrolled.Render(items, 100)
	direct := NewRenderer(100, 100)
	direct.Render(shifted, 0)

	res, err := Compare(scrolled.Image(), direct.Image(), CompareOptions{})
	require.NoError(t, err)
	assert.True(t, res.Match, "%d pixels differ", res.DifferentPixels)
}
