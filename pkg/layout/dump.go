package layout

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders the box tree, one box per line.
func Dump(d *DocumentBox) string {
	p := tp.New()
	p.SetValue(fmt.Sprintf("DocumentBox(height=%g)", d.Height))
	if d.Child != nil {
		dumpBox(p, d.Child)
	}
	return p.String()
}

func dumpBox(p tp.Tree, b *BlockBox) {
	if len(b.Children) == 0 {
		p.AddNode(b.String())
		return
	}
	branch := p.AddBranch(b.String())
	for _, c := range b.Children {
		dumpBox(branch, c)
	}
}

func (b *BlockBox) String() string {
	return fmt.Sprintf("BlockBox[%s](x=%g, y=%g, width=%g, height=%g, node=%s)",
		b.Mode, b.X, b.Y, b.Width, b.Height, b.Node.Label())
}
