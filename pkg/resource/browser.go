package resource

import (
	"fmt"

	"go.uber.org/zap"

	"minibrowse/pkg/css"
	"minibrowse/pkg/html"
	"minibrowse/pkg/layout"
	"minibrowse/pkg/text"
	stdnet "minibrowse/std/net"
)

type Option func(*Browser)

func WithLogger(l *zap.Logger) Option {
	return func(b *Browser) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithFallbackURL sets the page loaded in place of a malformed URL.
func WithFallbackURL(raw string) Option {
	return func(b *Browser) { b.fallback = raw }
}

const DefaultFallbackURL = "https://browser.engineering/"

// Page is one loaded document with every pipeline stage's output.
type Page struct {
	URL         *stdnet.URL
	Document    *html.Node
	Rules       []css.Rule
	Styles      css.Styles
	Layout      *layout.DocumentBox
	DisplayList []layout.DisplayItem
	Height      float64
}

// Title returns the text of the document's <title>, or "".
func (p *Page) Title() string {
	if t := p.Document.FindElement("title"); t != nil {
		return t.TextContent()
	}
	return ""
}

// Browser runs the load pipeline: fetch, parse, collect style sheets,
// cascade, lay out and paint. A Browser is not safe for concurrent use.
type Browser struct {
	fetcher  Fetcher
	fonts    *text.FontManager
	opts     layout.Options
	fallback string
	defaults []css.Rule
	logger   *zap.Logger
}

func NewBrowser(fetcher Fetcher, fonts *text.FontManager, opts layout.Options, options ...Option) *Browser {
	b := &Browser{
		fetcher:  fetcher,
		fonts:    fonts,
		opts:     opts,
		fallback: DefaultFallbackURL,
		logger:   zap.NewNop(),
	}
	for _, o := range options {
		o(b)
	}
	b.defaults = css.DefaultRules(css.WithLogger(b.logger))
	return b
}

// Load fetches raw and builds its page. A malformed URL is replaced by the
// fallback URL. Only a failed document fetch is an error.
func (b *Browser) Load(raw string) (*Page, error) {
	u, err := stdnet.NewURL(raw, b.fallback, b.logger)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", raw, err)
	}
	b.logger.Info("loading page", zap.Stringer("url", u))
	body, _, err := b.fetcher.Fetch(u)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", u, err)
	}
	return b.LoadHTML(string(body), u), nil
}

// LoadHTML builds a page from source. Linked style sheets are resolved
// against base; with a nil base they are skipped.
func (b *Browser) LoadHTML(src string, base *stdnet.URL) *Page {
	doc := html.Parse(src, html.WithLogger(b.logger))
	p := &Page{URL: base, Document: doc}
	p.Rules = b.rules(doc, base)
	p.Styles = css.Cascade(doc, p.Rules, css.WithLogger(b.logger))
	p.Layout = layout.NewDocumentBox(doc, p.Styles, b.fonts, b.opts)
	b.relayout(p)
	return p
}

// Resize lays the page out again for a new page width.
func (b *Browser) Resize(p *Page, width float64) {
	p.Layout.Resize(width)
	b.relayout(p)
}

func (b *Browser) relayout(p *Page) {
	p.Layout.Layout()
	p.DisplayList = layout.Paint(p.Layout)
	p.Height = p.Layout.Height
}

// rules returns the default sheet, then linked sheets in document order,
// then <style> sheets.
func (b *Browser) rules(doc *html.Node, base *stdnet.URL) []css.Rule {
	rules := append([]css.Rule(nil), b.defaults...)
	for _, href := range html.StylesheetLinks(doc) {
		if base == nil || b.fetcher == nil {
			b.logger.Debug("no base URL, skipping style sheet", zap.String("href", href))
			continue
		}
		u, err := base.Resolve(href)
		if err != nil {
			b.logger.Warn("bad style sheet URL", zap.String("href", href), zap.Error(err))
			continue
		}
		sheet, err := FetchCSS(b.fetcher, u)
		if err != nil {
			b.logger.Warn("style sheet fetch failed", zap.Stringer("url", u), zap.Error(err))
			continue
		}
		rules = append(rules, css.Parse(sheet, css.WithLogger(b.logger))...)
	}
	for _, sheet := range html.StyleSheets(doc) {
		rules = append(rules, css.Parse(sheet, css.WithLogger(b.logger))...)
	}
	return rules
}
