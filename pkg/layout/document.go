package layout

import (
	"minibrowse/pkg/css"
	"minibrowse/pkg/html"
	"minibrowse/pkg/text"
)

// Options are the page geometry constants.
type Options struct {
	// HStep and VStep are the page margins; VStep is also the extra space
	// after a paragraph.
	HStep float64
	VStep float64
	// Width is the full page width including margins.
	Width float64
}

func DefaultOptions() Options {
	return Options{HStep: 20, VStep: 18, Width: 800}
}

// DocumentBox is the root of the layout tree.
type DocumentBox struct {
	Node   *html.Node
	Child  *BlockBox
	Height float64

	ctx *layoutContext
}

func NewDocumentBox(doc *html.Node, styles css.Styles, fonts *text.FontManager, opts Options) *DocumentBox {
	return &DocumentBox{
		Node: doc,
		ctx:  &layoutContext{styles: styles, fonts: fonts, opts: opts},
	}
}

// Layout builds a fresh box tree for the document. It can be called again
// after the styles or options change.
func (d *DocumentBox) Layout() {
	d.Child = newBlockBox(d.Node, nil, nil, d.ctx)
	d.Child.Layout()
	d.Height = d.Child.Height
}

// Resize changes the page width for the next Layout.
func (d *DocumentBox) Resize(width float64) {
	d.ctx.opts.Width = width
}
