package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"minibrowse/pkg/css"
	"minibrowse/pkg/layout"
)

type Option func(*Renderer)

func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Renderer rasterises a display list into a viewport-sized image.
type Renderer struct {
	context *gg.Context
	height  float64
	logger  *zap.Logger
}

func NewRenderer(width, height int, opts ...Option) *Renderer {
	return newRenderer(gg.NewContext(width, height), opts)
}

// NewRendererForImage draws into an existing image.
func NewRendererForImage(target *image.RGBA, opts ...Option) *Renderer {
	return newRenderer(gg.NewContextForRGBA(target), opts)
}

func newRenderer(dc *gg.Context, opts []Option) *Renderer {
	r := &Renderer{
		context: dc,
		height:  float64(dc.Height()),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render clears the viewport and draws the items that intersect
// [scroll, scroll+height], shifted up by scroll.
func (r *Renderer) Render(items []layout.DisplayItem, scroll float64) {
	r.context.SetColor(color.White)
	r.context.Clear()

	for _, it := range layout.Visible(items, scroll, r.height) {
		switch it := it.(type) {
		case *layout.RectItem:
			r.drawRect(it, scroll)
		case *layout.TextItem:
			r.drawText(it, scroll)
		}
	}
}

func (r *Renderer) color(name string) color.RGBA {
	c, ok := css.ParseColor(name)
	if !ok {
		r.logger.Warn("unknown color, using black", zap.String("color", name))
		return color.RGBA{A: 255}
	}
	return c
}

func (r *Renderer) drawRect(it *layout.RectItem, scroll float64) {
	r.context.SetColor(r.color(it.Color))
	r.context.DrawRectangle(it.X1, it.Y1-scroll, it.X2-it.X1, it.Y2-it.Y1)
	r.context.Fill()
}

func (r *Renderer) drawText(it *layout.TextItem, scroll float64) {
	if it.Face == nil {
		return
	}
	r.context.SetColor(r.color(it.Color))
	r.context.SetFontFace(it.Face.FontFace())
	r.context.DrawString(it.Text, it.X, it.Baseline-scroll)
}

func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
