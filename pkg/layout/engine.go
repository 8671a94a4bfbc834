package layout

import "github.com/mfreire/canvasflow/pkg/canvas"

// Result holds the outcome of positioning a layout tree: the concrete nodes
// in render order plus the tree's total extent.
type Result struct {
	Nodes  []canvas.Node
	Width  int
	Height int
}

// extent is a computed (width, height) pair.
type extent struct {
	w, h int
}

// Engine computes sizes and positions for layout trees. The zero value is
// ready to use. Engine is stateless between calls; concurrent use on
// distinct trees is safe.
type Engine struct{}

// Size returns the total extent of an item without positioning anything.
// Empty rows, columns and groups yield (0, 0).
func (e *Engine) Size(item *Item) (int, int) {
	sizes := map[*Item]extent{}
	ext := measure(item, sizes)
	return ext.w, ext.h
}

// Position places the tree with its top-left corner at (x, y) and returns
// the concrete nodes in render order. Group frame nodes are emitted before
// their content so they sit beneath it in z-order.
func (e *Engine) Position(item *Item, x, y int) Result {
	sizes := map[*Item]extent{}
	measure(item, sizes)

	var nodes []canvas.Node
	ext := place(item, x, y, sizes, &nodes)
	return Result{Nodes: nodes, Width: ext.w, Height: ext.h}
}

// measure computes the extent of item bottom-up, memoizing every subtree
// in sizes. Items are never mutated.
func measure(item *Item, sizes map[*Item]extent) extent {
	if ext, ok := sizes[item]; ok {
		return ext
	}

	var ext extent
	switch item.kind {
	case KindLeaf:
		ext = extent{item.width, item.height}

	case KindRow:
		for i, child := range item.children {
			ce := measure(child, sizes)
			ext.w += ce.w
			if i < len(item.children)-1 {
				ext.w += item.spacing
			}
			ext.h = max(ext.h, ce.h)
		}

	case KindColumn:
		for i, child := range item.children {
			ce := measure(child, sizes)
			ext.h += ce.h
			if i < len(item.children)-1 {
				ext.h += item.spacing
			}
			ext.w = max(ext.w, ce.w)
		}

	case KindGroup:
		if item.content != nil {
			ce := measure(item.content, sizes)
			ext = extent{
				w: ce.w + 2*item.padding,
				h: ce.h + 2*item.padding + labelBandHeight,
			}
		}
	}

	sizes[item] = ext
	return ext
}

// place positions item at (x, y), appending concrete nodes to out, and
// returns the item's extent.
func place(item *Item, x, y int, sizes map[*Item]extent, out *[]canvas.Node) extent {
	switch item.kind {
	case KindLeaf:
		n := item.node
		n.X = x
		n.Y = y
		*out = append(*out, n)
		return sizes[item]

	case KindRow:
		rowHeight := sizes[item].h
		currentX := x
		for _, child := range item.children {
			ce := sizes[child]
			// Center each child vertically within the row.
			childY := y + (rowHeight-ce.h)/2
			place(child, currentX, childY, sizes, out)
			currentX += ce.w + item.spacing
		}
		return sizes[item]

	case KindColumn:
		currentY := y
		for _, child := range item.children {
			ce := sizes[child]
			place(child, x, currentY, sizes, out)
			currentY += ce.h + item.spacing
		}
		return sizes[item]

	case KindGroup:
		ext := sizes[item]
		frameW, frameH := ext.w, ext.h
		if item.content == nil {
			frameW, frameH = minFrameWidth, minFrameHeight
		}
		// Frame first so it renders beneath its content.
		frame := canvas.NewGroupNode("", item.label, x, y, frameW, frameH, item.color)
		*out = append(*out, frame)

		if item.content != nil {
			place(item.content, x+item.padding, y+item.padding+labelBandHeight, sizes, out)
		}
		return ext
	}

	return extent{}
}
