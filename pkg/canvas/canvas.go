// Package canvas implements the JSON Canvas 1.0 geometry model.
//
// A Canvas is an ordered list of positioned rectangular nodes plus directed
// edges between them. Node order is render order: the first node in the list
// is drawn at the bottom of the z-stack, so group frames must be appended
// before their content.
//
// The package deliberately performs no structural validation: id uniqueness
// and edge endpoint existence are the caller's responsibility. Layout
// algorithms that produce canvases (pkg/layout, pkg/flow) guarantee their
// own output; hand-built canvases are trusted as-is.
//
// # Serialization
//
// Marshal produces the interchange format consumed by canvas viewers:
//
//	{ "nodes": [...], "edges": [...] }
//
// Optional fields are omitted when unset (never emitted as null), and each
// node emits only the payload fields relevant to its type. This
// exact-presence rule is part of the wire contract - see [Node.MarshalJSON].
package canvas

// NodeType identifies the payload carried by a node.
type NodeType string

// Node types defined by the JSON Canvas spec.
const (
	NodeText  NodeType = "text"
	NodeFile  NodeType = "file"
	NodeLink  NodeType = "link"
	NodeGroup NodeType = "group"
)

// Side is an edge attachment point on a node's perimeter.
type Side string

// Anchor sides.
const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// EndShape is the decoration drawn at an edge endpoint.
// Canvas viewers default to "none" at the source and "arrow" at the target
// when the field is omitted.
type EndShape string

// Edge end shapes.
const (
	EndNone  EndShape = "none"
	EndArrow EndShape = "arrow"
)

// BackgroundStyle controls how a group's background image is drawn.
type BackgroundStyle string

// Group background styles.
const (
	BackgroundCover  BackgroundStyle = "cover"
	BackgroundRatio  BackgroundStyle = "ratio"
	BackgroundRepeat BackgroundStyle = "repeat"
)

// Preset colors from the JSON Canvas spec. A Color field may also hold a
// literal hex string such as "#ff5582".
const (
	ColorRed    = "1"
	ColorOrange = "2"
	ColorYellow = "3"
	ColorGreen  = "4"
	ColorCyan   = "5"
	ColorPurple = "6"
)

// Node is a positioned rectangular element on the canvas.
//
// Exactly one payload group is meaningful per node, selected by Type:
// Text for text nodes, File/Subpath for file nodes, URL for link nodes,
// and Label/Background/BackgroundStyle for group nodes. Fields outside
// the node's type are ignored by serialization.
type Node struct {
	ID     string
	Type   NodeType
	X      int
	Y      int
	Width  int
	Height int

	// Optional for all types. Preset "1".."6" or hex literal.
	Color string

	// Payload, gated by Type.
	Text            string
	File            string
	Subpath         string
	URL             string
	Label           string
	Background      string
	BackgroundStyle BackgroundStyle
}

// Edge is a directed connection between two nodes, referenced by id.
// Referential integrity is not checked here.
type Edge struct {
	ID       string
	FromNode string
	ToNode   string
	FromSide Side
	ToSide   Side
	FromEnd  EndShape
	ToEnd    EndShape
	Color    string
	Label    string
}

// Canvas is a complete diagram: ordered nodes (z-order, first = bottom)
// and ordered edges. The zero value is an empty, usable canvas.
type Canvas struct {
	Nodes []Node
	Edges []Edge
}

// New returns an empty canvas.
func New() *Canvas {
	return &Canvas{}
}

// AddNode appends a node. Later nodes render above earlier ones.
func (c *Canvas) AddNode(n Node) *Canvas {
	c.Nodes = append(c.Nodes, n)
	return c
}

// AddEdge appends an edge.
func (c *Canvas) AddEdge(e Edge) *Canvas {
	c.Edges = append(c.Edges, e)
	return c
}

// NodeByID returns the first node with the given id.
// The second return value reports whether a node was found.
func (c *Canvas) NodeByID(id string) (*Node, bool) {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return &c.Nodes[i], true
		}
	}
	return nil, false
}

// NewTextNode creates a text node. If id is empty a fresh one is generated.
func NewTextNode(id, text string, x, y, width, height int, color string) Node {
	if id == "" {
		id = NewID()
	}
	return Node{ID: id, Type: NodeText, X: x, Y: y, Width: width, Height: height, Color: color, Text: text}
}

// NewFileNode creates a file node referencing a path, with an optional
// subpath (e.g. a heading anchor inside the file).
func NewFileNode(id, file, subpath string, x, y, width, height int, color string) Node {
	if id == "" {
		id = NewID()
	}
	return Node{ID: id, Type: NodeFile, X: x, Y: y, Width: width, Height: height, Color: color, File: file, Subpath: subpath}
}

// NewLinkNode creates a link node referencing a URL.
func NewLinkNode(id, url string, x, y, width, height int, color string) Node {
	if id == "" {
		id = NewID()
	}
	return Node{ID: id, Type: NodeLink, X: x, Y: y, Width: width, Height: height, Color: color, URL: url}
}

// NewGroupNode creates a group frame node. Content nodes are positioned
// inside its bounding box by convention; there is no structural parent link.
func NewGroupNode(id, label string, x, y, width, height int, color string) Node {
	if id == "" {
		id = NewID()
	}
	return Node{ID: id, Type: NodeGroup, X: x, Y: y, Width: width, Height: height, Color: color, Label: label}
}

// NewEdge creates an edge between two node ids. If id is empty a fresh one
// is generated. Sides, ends, color and label may be left zero to use the
// viewer defaults.
func NewEdge(id, from, to string) Edge {
	if id == "" {
		id = NewID()
	}
	return Edge{ID: id, FromNode: from, ToNode: to}
}
