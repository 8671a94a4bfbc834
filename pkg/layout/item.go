// Package layout provides a composable row/column/group layout engine that
// turns a tree of layout items into a flat list of positioned canvas nodes.
//
// Layout runs in two phases over an immutable item tree:
//
//  1. Size: bottom-up extent computation (no mutation; results live in a
//     side table keyed by item identity).
//  2. Position: top-down placement producing concrete canvas nodes in
//     render order (group frames before their content).
//
// Both phases are pure - identical trees and origins yield byte-identical
// coordinates.
package layout

import "github.com/mfreire/canvasflow/pkg/canvas"

// Default dimensions and spacing, matching the reference diagram metrics.
const (
	DefaultNodeWidth  = 250
	DefaultNodeHeight = 60
	DefaultSpacing    = 40
	DefaultPadding    = 20

	// labelBandHeight is the vertical space reserved for a group's label.
	labelBandHeight = 30

	// minFrameWidth/Height size the frame of a group without content.
	minFrameWidth  = 100
	minFrameHeight = 50
)

// Kind discriminates the layout item variants.
type Kind int

// Layout item kinds.
const (
	KindLeaf Kind = iota
	KindRow
	KindColumn
	KindGroup
)

// Item is one node of an immutable layout tree: a leaf wrapping exactly one
// concrete canvas node, a row or column of child items, or a group wrapping
// a single content item. Build items with Leaf, Row, Column and Group;
// the zero value is not usable.
type Item struct {
	kind Kind

	// Leaf: the node-to-be plus its fixed extent.
	node   canvas.Node
	width  int
	height int

	// Row/column.
	children []*Item
	spacing  int

	// Group.
	content *Item
	label   string
	color   string
	padding int
}

// Kind returns the item's variant.
func (it *Item) Kind() Kind { return it.kind }

// Leaf wraps a concrete node as a layout leaf. The node's Width and Height
// fields fix the leaf's extent; its X and Y are assigned during Position.
func Leaf(n canvas.Node) *Item {
	return &Item{kind: KindLeaf, node: n, width: n.Width, height: n.Height}
}

// Text creates a leaf holding a text node, applying the default extent when
// width or height is zero. An empty id generates a fresh one.
func Text(id, text string, width, height int, color string) *Item {
	if width == 0 {
		width = DefaultNodeWidth
	}
	if height == 0 {
		height = DefaultNodeHeight
	}
	return Leaf(canvas.NewTextNode(id, text, 0, 0, width, height, color))
}

// Row lays out items horizontally with the given spacing between them.
// A negative spacing selects the default.
func Row(items []*Item, spacing int) *Item {
	if spacing < 0 {
		spacing = DefaultSpacing
	}
	return &Item{kind: KindRow, children: items, spacing: spacing}
}

// Column lays out items vertically with the given spacing between them.
// A negative spacing selects the default.
func Column(items []*Item, spacing int) *Item {
	if spacing < 0 {
		spacing = DefaultSpacing
	}
	return &Item{kind: KindColumn, children: items, spacing: spacing}
}

// Group wraps content in a labeled visual container with internal padding.
// content may be nil, producing a minimal empty frame. A negative padding
// selects the default.
func Group(label string, content *Item, color string, padding int) *Item {
	if padding < 0 {
		padding = DefaultPadding
	}
	return &Item{kind: KindGroup, content: content, label: label, color: color, padding: padding}
}
