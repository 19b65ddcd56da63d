package html

import "strings"

type NodeType int

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	}
	return "Unknown"
}

// Attribute is a single name="value" pair. Names are lowercase.
type Attribute struct {
	Name  string
	Value string
}

// Node is a DOM node. Children are owned by their parent; Parent is a
// back-reference only.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes []Attribute
	// Data holds the text of a Text node or the contents of a Comment node.
	Data     string
	Children []*Node
	Parent   *Node
}

func NewDocument() *Node {
	return &Node{Type: DocumentNode}
}

func NewElement(tag string, attrs []Attribute) *Node {
	return &Node{Type: ElementNode, TagName: tag, Attributes: attrs}
}

func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// GetAttribute returns the first attribute with the given name.
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute replaces the first attribute with the given name or appends
// a new one.
func (n *Node) SetAttribute(name, value string) {
	for i, a := range n.Attributes {
		if a.Name == name {
			n.Attributes[i].Value = value
			return
		}
	}
	n.Attributes = append(n.Attributes, Attribute{Name: name, Value: value})
}

// AppendChild adds a child node and sets up the parent relationship
func (n *Node) AppendChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// IsElement reports whether n is an element with one of the given tag names.
func (n *Node) IsElement(tags ...string) bool {
	if n == nil || n.Type != ElementNode {
		return false
	}
	for _, t := range tags {
		if n.TagName == t {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindElement returns the first element in document order with the given tag.
func (n *Node) FindElement(tag string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.IsElement(tag) {
			found = c
			return false
		}
		return true
	})
	return found
}

// TextContent concatenates the data of all descendant Text nodes.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}
