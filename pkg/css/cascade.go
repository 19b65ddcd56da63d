package css

import (
	"strings"

	"minibrowse/pkg/html"
)

// ComputedStyle maps property names to resolved values for one node.
type ComputedStyle map[string]string

func (s ComputedStyle) Get(property string) (string, bool) {
	v, ok := s[property]
	return v, ok
}

// Value returns the property value or def when it is unset.
func (s ComputedStyle) Value(property, def string) string {
	if v, ok := s[property]; ok {
		return v
	}
	return def
}

func (s ComputedStyle) FontSize() float64 {
	return ParseFontSize(s["font-size"])
}

func (s ComputedStyle) FontWeight() FontWeight {
	return ParseFontWeight(s["font-weight"])
}

func (s ComputedStyle) FontStyle() FontStyle {
	return ParseFontStyle(s["font-style"])
}

func (s ComputedStyle) Display() string {
	return s.Value("display", "")
}

func (s ComputedStyle) BackgroundColor() string {
	return s.Value("background-color", Transparent)
}

// Styles holds the computed style of every node in a document.
type Styles map[*html.Node]ComputedStyle

// Of returns the style of n, or an empty style for nodes that were not
// part of the cascade.
func (s Styles) Of(n *html.Node) ComputedStyle {
	if cs, ok := s[n]; ok {
		return cs
	}
	return ComputedStyle{}
}

// inherited lists the properties children take from their parent, with
// the value used when there is no parent.
var inherited = []struct {
	property string
	initial  string
}{
	{"font-size", FormatPx(DefaultFontSize)},
	{"font-style", "normal"},
	{"font-weight", "normal"},
	{"color", "black"},
}

// Cascade computes styles for root and all its descendants. Rules are
// applied in ascending specificity; rules of equal specificity apply in the
// order given.
func Cascade(root *html.Node, rules []Rule, opts ...Option) Styles {
	sorted := SortBySpecificity(rules)
	styles := make(Styles)
	var walk func(n *html.Node, parent ComputedStyle)
	walk = func(n *html.Node, parent ComputedStyle) {
		cs := Style(n, parent, sorted, opts...)
		styles[n] = cs
		for _, c := range n.Children {
			walk(c, cs)
		}
	}
	walk(root, nil)
	return styles
}

// Style computes the style of a single node from its parent's computed
// style. rules must already be sorted by specificity. parent is nil for
// the root.
func Style(n *html.Node, parent ComputedStyle, rules []Rule, opts ...Option) ComputedStyle {
	cs := make(ComputedStyle)
	for _, p := range inherited {
		if v, ok := parent[p.property]; ok {
			cs[p.property] = v
		} else {
			cs[p.property] = p.initial
		}
	}

	for _, r := range rules {
		if !r.Selector.Matches(n) {
			continue
		}
		for prop, val := range r.Declarations {
			cs[prop] = val
		}
	}

	if n.Type == html.ElementNode {
		if attr, ok := n.GetAttribute("style"); ok {
			for prop, val := range ParseDeclarations(attr, opts...) {
				cs[prop] = val
			}
		}
	}

	if size := cs["font-size"]; strings.HasSuffix(size, "%") {
		parentPx := DefaultFontSize
		if parent != nil {
			parentPx = ParseFontSize(parent["font-size"])
		}
		resolved := parentPx
		if pct, ok := ParsePercent(size); ok {
			resolved = parentPx * pct / 100
		}
		cs["font-size"] = FormatPx(resolved)
	}
	return cs
}
