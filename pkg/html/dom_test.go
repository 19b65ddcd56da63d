package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree() (*Node, *Node, *Node, *Node) {
	parent := NewElement("div", nil)
	a := NewElement("span", []Attribute{{Name: "id", Value: "a"}})
	b := NewText("b")
	c := NewComment("c")
	parent.AppendChild(a)
	parent.AppendChild(b)
	parent.AppendChild(c)
	return parent, a, b, c
}

func TestAppendChild(t *testing.T) {
	parent, a, b, c := makeTree()
	assert.Equal(t, []*Node{a, b, c}, parent.Children)
	assert.Same(t, parent, a.Parent)
	assert.Same(t, c, parent.LastChild())
}

func TestAppendChildReparents(t *testing.T) {
	parent, a, _, _ := makeTree()
	other := NewElement("p", nil)
	other.AppendChild(a)
	assert.Len(t, parent.Children, 2)
	assert.Same(t, other, a.Parent)
}

func TestRemoveChild(t *testing.T) {
	parent, a, b, c := makeTree()
	removed := parent.RemoveChild(b)
	assert.Same(t, b, removed)
	assert.Nil(t, b.Parent)
	assert.Equal(t, []*Node{a, c}, parent.Children)
}

func TestRemoveChildNotFound(t *testing.T) {
	parent, _, _, _ := makeTree()
	assert.Nil(t, parent.RemoveChild(NewText("x")))
	assert.Len(t, parent.Children, 3)
}

func TestAttributes(t *testing.T) {
	n := NewElement("a", nil)
	_, ok := n.GetAttribute("href")
	assert.False(t, ok)

	n.SetAttribute("href", "/x")
	n.SetAttribute("href", "/y")
	n.SetAttribute("title", "t")
	require.Len(t, n.Attributes, 2)
	v, ok := n.GetAttribute("href")
	assert.True(t, ok)
	assert.Equal(t, "/y", v)
}

func TestWalkOrderAndSkip(t *testing.T) {
	doc := Parse("<div><p>a</p></div><span>b</span>")
	var tags []string
	doc.Walk(func(n *Node) bool {
		if n.Type == ElementNode {
			tags = append(tags, n.TagName)
		}
		return !n.IsElement("div")
	})
	assert.Equal(t, []string{"html", "head", "body", "div", "span"}, tags)
}

func TestTextContent(t *testing.T) {
	doc := Parse("<p>a<b>b</b><!--x-->c</p>")
	assert.Equal(t, "abc", doc.FindElement("p").TextContent())
}

func TestIsElement(t *testing.T) {
	var n *Node
	assert.False(t, n.IsElement("p"))
	assert.True(t, NewElement("p", nil).IsElement("div", "p"))
	assert.False(t, NewText("p").IsElement("p"))
}
