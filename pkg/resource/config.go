package resource

import (
	"go.uber.org/zap"

	"minibrowse/pkg/config"
	"minibrowse/pkg/layout"
	"minibrowse/pkg/text"
)

// FontBackends returns the font sources for cfg: the font directory first,
// then the Go fonts compiled into the binary.
func FontBackends(cfg config.Config) text.Backends {
	return text.Backends{
		text.NewDirBackend(text.AtkinsonHyperlegible(cfg.FontsDir)),
		text.GoFonts(),
	}
}

// NewBrowserFromConfig wires a Browser with the default fetcher and fonts.
func NewBrowserFromConfig(cfg config.Config, logger *zap.Logger) *Browser {
	fonts := text.NewFontManager(FontBackends(cfg), cfg.FontFamilies, text.WithLogger(logger))
	opts := layout.Options{
		HStep: cfg.Page.HStep,
		VStep: cfg.Page.VStep,
		Width: float64(cfg.Viewport.Width),
	}
	return NewBrowser(NewFetcher(cfg.UserAgent), fonts, opts,
		WithLogger(logger),
		WithFallbackURL(cfg.FallbackURL))
}
