package layout

import "minibrowse/pkg/css"

// Paint flattens the laid-out tree into display items in paint order: a
// box's background comes before its own text and before its children.
func Paint(d *DocumentBox) []DisplayItem {
	var items []DisplayItem
	if d.Child != nil {
		items = d.Child.paint(items)
	}
	return items
}

func (b *BlockBox) paint(items []DisplayItem) []DisplayItem {
	if bg := b.style().BackgroundColor(); bg != css.Transparent {
		items = append(items, &RectItem{
			X1:    b.X,
			Y1:    b.Y,
			X2:    b.X + b.Width,
			Y2:    b.Y + b.Height,
			Color: bg,
		})
	}
	if b.Mode == ModeInline {
		for _, it := range b.Items {
			items = append(items, it)
		}
	}
	for _, c := range b.Children {
		items = c.paint(items)
	}
	return items
}
