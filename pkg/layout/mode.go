package layout

import "minibrowse/pkg/html"

type Mode int

const (
	ModeBlock Mode = iota
	ModeInline
)

func (m Mode) String() string {
	if m == ModeInline {
		return "inline"
	}
	return "block"
}

var blockElements = map[string]bool{
	"html": true, "body": true, "article": true, "section": true, "nav": true,
	"aside": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "hgroup": true, "header": true, "footer": true, "address": true,
	"p": true, "hr": true, "pre": true, "blockquote": true, "ol": true, "ul": true,
	"menu": true, "li": true, "dl": true, "dt": true, "dd": true, "figure": true,
	"figcaption": true, "main": true, "div": true, "table": true, "form": true,
	"fieldset": true, "legend": true, "details": true, "summary": true,
}

// IsBlockElement reports whether tag starts a new block.
func IsBlockElement(tag string) bool {
	return blockElements[tag]
}

// ModeOf picks how a node lays out its content. Text is inline. An element
// with any block-level child is a block; one with only inline children is
// inline; an empty element is a block.
func ModeOf(n *html.Node) Mode {
	if n.Type == html.TextNode {
		return ModeInline
	}
	for _, c := range n.Children {
		if c.Type == html.ElementNode && IsBlockElement(c.TagName) {
			return ModeBlock
		}
	}
	if len(n.Children) > 0 {
		return ModeInline
	}
	return ModeBlock
}
