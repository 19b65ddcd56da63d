package css

import (
	"sort"

	"minibrowse/pkg/html"
)

// Selector decides whether a rule applies to a node.
type Selector interface {
	Matches(n *html.Node) bool
	Specificity() int
	String() string
}

// TagSelector matches elements by tag name.
type TagSelector struct {
	Tag string
}

func (s *TagSelector) Matches(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.TagName == s.Tag
}

func (s *TagSelector) Specificity() int { return 1 }

func (s *TagSelector) String() string { return s.Tag }

// DescendantSelector matches a node that matches Descendant and has some
// strict ancestor matching Ancestor.
type DescendantSelector struct {
	Ancestor   Selector
	Descendant Selector
}

func (s *DescendantSelector) Matches(n *html.Node) bool {
	if !s.Descendant.Matches(n) {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if s.Ancestor.Matches(p) {
			return true
		}
	}
	return false
}

func (s *DescendantSelector) Specificity() int {
	return s.Ancestor.Specificity() + s.Descendant.Specificity()
}

func (s *DescendantSelector) String() string {
	return s.Ancestor.String() + " " + s.Descendant.String()
}

// Rule is a selector with its declaration block.
type Rule struct {
	Selector     Selector
	Declarations map[string]string
}

// SortBySpecificity returns a copy of rules ordered by ascending
// specificity. Rules of equal specificity keep their source order.
func SortBySpecificity(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Selector.Specificity() < sorted[j].Selector.Specificity()
	})
	return sorted
}
