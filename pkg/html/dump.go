package html

import (
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump renders the tree under n as an indented outline, one node per line.
func Dump(n *Node) string {
	p := tp.New()
	p.SetValue(n.Label())
	for _, c := range n.Children {
		dumpNode(p, c)
	}
	return p.String()
}

func dumpNode(p tp.Tree, n *Node) {
	if len(n.Children) == 0 {
		p.AddNode(n.Label())
		return
	}
	branch := p.AddBranch(n.Label())
	for _, c := range n.Children {
		dumpNode(branch, c)
	}
}

// Label is a short one-line description of the node.
func (n *Node) Label() string {
	switch n.Type {
	case DocumentNode:
		return "#document"
	case TextNode:
		return fmt.Sprintf("%q", n.Data)
	case CommentNode:
		return "<!--" + n.Data + "-->"
	}
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.TagName)
	for _, a := range n.Attributes {
		fmt.Fprintf(&sb, " %s=%q", a.Name, a.Value)
	}
	sb.WriteByte('>')
	return sb.String()
}
