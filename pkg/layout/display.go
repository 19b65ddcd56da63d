package layout

import (
	"fmt"

	"minibrowse/pkg/text"
)

// DisplayItem is one positioned drawing command in page coordinates.
type DisplayItem interface {
	Top() float64
	Bottom() float64
}

// TextItem draws one word. Y is the top of the word's line box and
// Baseline the shared baseline of its line.
type TextItem struct {
	X, Y     float64
	Baseline float64
	Text     string
	Face     *text.Face
	Color    string
}

func (t *TextItem) Top() float64 { return t.Y }

func (t *TextItem) Bottom() float64 { return t.Y + t.Face.Metrics().Spacing }

func (t *TextItem) String() string {
	return fmt.Sprintf("Text(%g, %g, %q)", t.X, t.Y, t.Text)
}

// RectItem fills the rectangle from (X1, Y1) to (X2, Y2).
type RectItem struct {
	X1, Y1 float64
	X2, Y2 float64
	Color  string
}

func (r *RectItem) Top() float64 { return r.Y1 }

func (r *RectItem) Bottom() float64 { return r.Y2 }

func (r *RectItem) String() string {
	return fmt.Sprintf("Rect(%g, %g, %g, %g, %s)", r.X1, r.Y1, r.X2, r.Y2, r.Color)
}

// Visible returns the items that intersect the viewport
// [scroll, scroll+height], keeping their order.
func Visible(items []DisplayItem, scroll, height float64) []DisplayItem {
	out := make([]DisplayItem, 0, len(items))
	for _, it := range items {
		if it.Bottom() < scroll || it.Top() > scroll+height {
			continue
		}
		out = append(out, it)
	}
	return out
}
