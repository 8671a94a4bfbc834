// Package builder offers a fluent API for hand-assembling canvases on top
// of the layout engine, for callers that compose diagrams directly instead
// of going through a provider adapter.
package builder

import (
	"github.com/mfreire/canvasflow/pkg/canvas"
	"github.com/mfreire/canvasflow/pkg/config"
	"github.com/mfreire/canvasflow/pkg/layout"
)

// Default node extent for builder-created nodes.
const (
	defaultNodeWidth  = 250
	defaultNodeHeight = 60
)

// metrics are the node extent and container spacing a builder applies when
// callers leave them zero. Spacing and padding of -1 select the layout
// package defaults.
type metrics struct {
	nodeWidth  int
	nodeHeight int
	spacing    int
	padding    int
}

func defaultMetrics() metrics {
	return metrics{
		nodeWidth:  defaultNodeWidth,
		nodeHeight: defaultNodeHeight,
		spacing:    -1,
		padding:    -1,
	}
}

// metricsFrom overlays a layout config section on the defaults. Zero
// values keep the defaults.
func metricsFrom(cfg config.Layout) metrics {
	m := defaultMetrics()
	if cfg.NodeWidth > 0 {
		m.nodeWidth = cfg.NodeWidth
	}
	if cfg.NodeHeight > 0 {
		m.nodeHeight = cfg.NodeHeight
	}
	if cfg.Spacing > 0 {
		m.spacing = cfg.Spacing
	}
	if cfg.Padding > 0 {
		m.padding = cfg.Padding
	}
	return m
}

// GroupBuilder accumulates the nodes and internal connections of one group.
type GroupBuilder struct {
	label       string
	color       string
	metrics     metrics
	items       []*layout.Item
	connections []canvas.Edge
}

// AddNode adds a text node to the group. Empty text defaults to the id;
// zero width/height use the builder defaults.
func (g *GroupBuilder) AddNode(id, text string, width, height int, color string) *GroupBuilder {
	if text == "" {
		text = id
	}
	if width == 0 {
		width = g.metrics.nodeWidth
	}
	if height == 0 {
		height = g.metrics.nodeHeight
	}
	g.items = append(g.items, layout.Text(id, text, width, height, color))
	return g
}

// Connect links two nodes inside the group, left to right.
func (g *GroupBuilder) Connect(from, to, label string) *GroupBuilder {
	edge := canvas.NewEdge("", from, to)
	edge.FromSide = canvas.SideRight
	edge.ToSide = canvas.SideLeft
	edge.Label = label
	g.connections = append(g.connections, edge)
	return g
}

// build assembles the group's layout item. Group content stacks in a
// column; an empty group yields a minimal frame.
func (g *GroupBuilder) build() *layout.Item {
	if len(g.items) == 0 {
		return layout.Group(g.label, nil, g.color, g.metrics.padding)
	}
	content := layout.Column(g.items, g.metrics.spacing)
	return layout.Group(g.label, content, g.color, g.metrics.padding)
}

// CanvasBuilder assembles a canvas from standalone nodes, groups, rows and
// columns, stacking top-level items vertically on Build.
//
//	b := builder.NewCanvas()
//	b.Group("auth", "", func(g *builder.GroupBuilder) {
//	    g.AddNode("login", "Login", 0, 0, "")
//	    g.AddNode("verify", "Verify token", 0, 0, "")
//	    g.Connect("login", "verify", "")
//	})
//	c := b.Build(0, 0)
type CanvasBuilder struct {
	engine  layout.Engine
	metrics metrics
	items   []*layout.Item
	groups  []*GroupBuilder
	edges   []canvas.Edge
}

// NewCanvas creates an empty canvas builder with default metrics.
func NewCanvas() *CanvasBuilder {
	return &CanvasBuilder{metrics: defaultMetrics()}
}

// NewCanvasWith creates a canvas builder taking node extent, spacing and
// group padding from a layout config section.
func NewCanvasWith(cfg config.Layout) *CanvasBuilder {
	return &CanvasBuilder{metrics: metricsFrom(cfg)}
}

// AddNode adds a standalone text node.
func (b *CanvasBuilder) AddNode(id, text string, width, height int, color string) *CanvasBuilder {
	if text == "" {
		text = id
	}
	if width == 0 {
		width = b.metrics.nodeWidth
	}
	if height == 0 {
		height = b.metrics.nodeHeight
	}
	b.items = append(b.items, layout.Text(id, text, width, height, color))
	return b
}

// Group adds a labeled group populated by fn.
func (b *CanvasBuilder) Group(label, color string, fn func(*GroupBuilder)) *CanvasBuilder {
	g := &GroupBuilder{label: label, color: color, metrics: b.metrics}
	fn(g)
	b.groups = append(b.groups, g)
	b.items = append(b.items, g.build())
	return b
}

// Connect links two nodes anywhere on the canvas.
func (b *CanvasBuilder) Connect(from, to, label string, fromSide, toSide canvas.Side, color string) *CanvasBuilder {
	edge := canvas.NewEdge("", from, to)
	edge.FromSide = fromSide
	edge.ToSide = toSide
	edge.Label = label
	edge.Color = color
	b.edges = append(b.edges, edge)
	return b
}

// Row adds a horizontal run of items.
func (b *CanvasBuilder) Row(items ...*layout.Item) *CanvasBuilder {
	b.items = append(b.items, layout.Row(items, b.metrics.spacing))
	return b
}

// Column adds a vertical run of items.
func (b *CanvasBuilder) Column(items ...*layout.Item) *CanvasBuilder {
	b.items = append(b.items, layout.Column(items, b.metrics.spacing))
	return b
}

// Build positions everything with the top-left corner at (startX, startY)
// and returns the finished canvas. Top-level items stack in a column.
func (b *CanvasBuilder) Build(startX, startY int) *canvas.Canvas {
	c := canvas.New()

	if len(b.items) > 0 {
		root := layout.Column(b.items, b.metrics.spacing)
		result := b.engine.Position(root, startX, startY)
		for _, n := range result.Nodes {
			c.AddNode(n)
		}
	}

	for _, g := range b.groups {
		for _, e := range g.connections {
			c.AddEdge(e)
		}
	}
	for _, e := range b.edges {
		c.AddEdge(e)
	}

	return c
}

// FlowBuilder assembles simple sequential flows with automatic edges.
type FlowBuilder struct {
	engine   layout.Engine
	metrics  metrics
	steps    []flowStep
	branches map[string][]flowStep
}

type flowStep struct {
	id    string
	text  string
	color string
}

// NewFlow creates an empty flow builder with default metrics.
func NewFlow() *FlowBuilder {
	return &FlowBuilder{metrics: defaultMetrics()}
}

// NewFlowWith creates a flow builder taking node extent and spacing from
// a layout config section.
func NewFlowWith(cfg config.Layout) *FlowBuilder {
	return &FlowBuilder{metrics: metricsFrom(cfg)}
}

// Step appends a step to the sequence. Empty text defaults to the id.
func (b *FlowBuilder) Step(id, text, color string) *FlowBuilder {
	if text == "" {
		text = id
	}
	b.steps = append(b.steps, flowStep{id: id, text: text, color: color})
	return b
}

// Branch records an alternative continuation leaving fromStep. Empty text
// defaults to the branch id. Recorded branches annotate the flow
// description; Build places the declared step sequence only.
func (b *FlowBuilder) Branch(fromStep, branchID, text, color string) *FlowBuilder {
	if text == "" {
		text = branchID
	}
	if b.branches == nil {
		b.branches = make(map[string][]flowStep)
	}
	b.branches[fromStep] = append(b.branches[fromStep], flowStep{id: branchID, text: text, color: color})
	return b
}

// Build lays the steps out in the given direction ("row" or "column") and
// connects consecutive steps with anchored edges.
func (b *FlowBuilder) Build(direction string) *canvas.Canvas {
	c := canvas.New()

	items := make([]*layout.Item, len(b.steps))
	for i, s := range b.steps {
		items[i] = layout.Text(s.id, s.text, b.metrics.nodeWidth, b.metrics.nodeHeight, s.color)
	}

	var container *layout.Item
	if direction == "row" {
		container = layout.Row(items, b.metrics.spacing)
	} else {
		container = layout.Column(items, b.metrics.spacing)
	}

	result := b.engine.Position(container, 0, 0)
	for _, n := range result.Nodes {
		c.AddNode(n)
	}

	for i := 0; i+1 < len(b.steps); i++ {
		edge := canvas.NewEdge("", b.steps[i].id, b.steps[i+1].id)
		if direction == "row" {
			edge.FromSide = canvas.SideRight
			edge.ToSide = canvas.SideLeft
		} else {
			edge.FromSide = canvas.SideBottom
			edge.ToSide = canvas.SideTop
		}
		c.AddEdge(edge)
	}

	return c
}
