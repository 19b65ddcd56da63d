package layout

import (
	"minibrowse/pkg/css"
	"minibrowse/pkg/html"
	"minibrowse/pkg/text"
)

// layoutContext is shared by every box of one layout pass.
type layoutContext struct {
	styles css.Styles
	fonts  *text.FontManager
	opts   Options
}

type lineWord struct {
	x     float64
	word  string
	face  *text.Face
	color string
}

// BlockBox is the layout object for one DOM node. Its children are stacked
// vertically in block mode; in inline mode it flows words into lines and
// keeps the resulting text items.
type BlockBox struct {
	Node     *html.Node
	Parent   *BlockBox
	Previous *BlockBox
	Children []*BlockBox
	Mode     Mode

	X, Y          float64
	Width, Height float64

	// Items holds the words placed by inline layout.
	Items []*TextItem

	ctx     *layoutContext
	cursorX float64
	cursorY float64
	line    []lineWord
}

func newBlockBox(n *html.Node, parent, previous *BlockBox, ctx *layoutContext) *BlockBox {
	return &BlockBox{
		Node:     n,
		Parent:   parent,
		Previous: previous,
		Mode:     ModeOf(n),
		ctx:      ctx,
	}
}

func (b *BlockBox) style() css.ComputedStyle {
	return b.ctx.styles.Of(b.Node)
}

// Layout positions the box and everything under it.
func (b *BlockBox) Layout() {
	b.place()
	b.Children = b.Children[:0]
	b.Items = b.Items[:0]

	switch b.Mode {
	case ModeBlock:
		b.layoutBlock()
		b.Height = 0
		for _, c := range b.Children {
			b.Height += c.Height
		}
	case ModeInline:
		b.layoutInline()
		b.Height = b.cursorY
	}
}

// place takes x and width from the parent, and y from the previous sibling
// or, for a first child, from the parent.
func (b *BlockBox) place() {
	if b.Parent == nil {
		b.X = b.ctx.opts.HStep
		b.Y = b.ctx.opts.VStep
		b.Width = b.ctx.opts.Width - 2*b.ctx.opts.HStep
		return
	}
	b.X = b.Parent.X
	b.Width = b.Parent.Width
	if b.Previous != nil {
		b.Y = b.Previous.Y + b.Previous.Height
	} else {
		b.Y = b.Parent.Y
	}
}

// skipped reports whether a child gets no box and contributes no content.
func (b *BlockBox) skipped(n *html.Node) bool {
	if n.Type == html.CommentNode {
		return true
	}
	return n.Type == html.ElementNode && b.ctx.styles.Of(n).Display() == "none"
}

func (b *BlockBox) layoutBlock() {
	var previous *BlockBox
	for _, child := range b.Node.Children {
		if b.skipped(child) {
			continue
		}
		next := newBlockBox(child, b, previous, b.ctx)
		b.Children = append(b.Children, next)
		next.Layout()
		previous = next
	}
}

func (b *BlockBox) layoutInline() {
	b.cursorX = 0
	b.cursorY = 0
	b.line = b.line[:0]
	b.recurse(b.Node)
	b.flush()
}

func (b *BlockBox) recurse(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		for _, w := range text.SplitWords(n.Data) {
			b.word(n, w)
		}
	case html.ElementNode, html.DocumentNode:
		if n.IsElement("br") {
			b.flush()
		}
		for _, c := range n.Children {
			if b.skipped(c) {
				continue
			}
			b.recurse(c)
		}
		if n.IsElement("p") {
			b.flush()
			b.cursorY += b.ctx.opts.VStep
		}
	}
}

func (b *BlockBox) face(n *html.Node) *text.Face {
	cs := b.ctx.styles.Of(n)
	return b.ctx.fonts.Face(cs.FontSize(), cs.FontWeight().IsBold(), cs.FontStyle() != css.StyleNormal)
}

func (b *BlockBox) word(n *html.Node, w string) {
	face := b.face(n)
	width := face.Width(w)
	if b.cursorX+width > b.Width {
		b.flush()
	}
	b.line = append(b.line, lineWord{
		x:     b.cursorX,
		word:  w,
		face:  face,
		color: b.ctx.styles.Of(n).Value("color", "black"),
	})
	b.cursorX += width + face.Width(" ")
}

// flush turns the pending line into text items sharing one baseline and
// moves the cursor to the start of the next line.
func (b *BlockBox) flush() {
	if len(b.line) == 0 {
		return
	}
	var maxAscent, maxSpacing float64
	for _, lw := range b.line {
		m := lw.face.Metrics()
		maxAscent = max(maxAscent, m.Ascent)
		maxSpacing = max(maxSpacing, m.Spacing)
	}
	baseline := b.Y + b.cursorY + maxAscent
	for _, lw := range b.line {
		b.Items = append(b.Items, &TextItem{
			X:        b.X + lw.x,
			Y:        baseline - lw.face.Metrics().Ascent,
			Baseline: baseline,
			Text:     lw.word,
			Face:     lw.face,
			Color:    lw.color,
		})
	}
	b.line = b.line[:0]
	b.cursorX = 0
	b.cursorY += maxSpacing
}
