package flow

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mfreire/canvasflow/pkg/canvas"
	"github.com/mfreire/canvasflow/pkg/textsize"
)

// DefaultDataSectionX is the x position of the data-format section,
// to the right of the main flow.
const DefaultDataSectionX = 900

// errorEdgeColor marks connections flagged as error paths.
const errorEdgeColor = "1"

// Adapter converts a flow Analysis into a canvas flowchart.
//
// Canvas layout: the summary sits on top, the main flow runs top-to-bottom
// below it with horizontal branch arms, sub-flows stack in their own column
// to the far right, and data formats occupy a separate section between the
// two.
//
// An Adapter instance owns per-conversion scratch state and resets it at
// the start of every Convert call, so an instance may be reused across
// sequential conversions. It is not safe for concurrent use - give each
// goroutine its own adapter.
type Adapter struct {
	NodeWidth    int
	NodeHeight   int
	HSpacing     int
	VSpacing     int
	DataSectionX int

	logger *log.Logger

	// Per-conversion scratch, reset by Convert.
	nodePositions map[string]Point  // step id -> placed position
	stepNodeIDs   map[string]string // step id -> canvas node id
}

// NewAdapter creates an adapter with the default metrics. A nil logger
// falls back to the package default.
func NewAdapter(logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{
		NodeWidth:    DefaultNodeWidth,
		NodeHeight:   DefaultNodeHeight,
		HSpacing:     DefaultHSpacing,
		VSpacing:     DefaultVSpacing,
		DataSectionX: DefaultDataSectionX,
		logger:       logger,
	}
}

// Convert builds the flowchart canvas for an analysis.
// It never fails: dangling connections are dropped, cycles reuse the first
// assigned position, and unknown step types fall back to generic geometry.
func (a *Adapter) Convert(analysis Analysis) *canvas.Canvas {
	a.nodePositions = make(map[string]Point)
	a.stepNodeIDs = make(map[string]string)

	c := canvas.New()

	c.AddNode(a.summaryNode(analysis.Summary))

	mainNodes, mainEdges := a.processFlow(analysis.MainFlow, 0, 100)
	for _, n := range mainNodes {
		c.AddNode(n)
	}
	for _, e := range mainEdges {
		c.AddEdge(e)
	}

	// Sub-flows stack vertically in their own column.
	subStartY := 100
	for _, sub := range analysis.SubFlows {
		subNodes, subEdges := a.processFlow(sub, a.DataSectionX+400, subStartY)
		for _, n := range subNodes {
			c.AddNode(n)
		}
		for _, e := range subEdges {
			c.AddEdge(e)
		}
		if len(subNodes) > 0 {
			bottom := 0
			for _, n := range subNodes {
				bottom = max(bottom, n.Y+n.Height)
			}
			subStartY = bottom + a.VSpacing*2
		}
	}

	if len(analysis.DataFormats) > 0 {
		for _, n := range a.dataSection(analysis.DataFormats) {
			c.AddNode(n)
		}
	}

	return c
}

// summaryNode renders the overall summary at the canvas origin.
func (a *Adapter) summaryNode(summary string) canvas.Node {
	text := "## 📋 Execution Flow\n\n" + summary
	w, h := textsize.ForNode(text, "text", a.NodeWidth*3, 80)
	return canvas.NewTextNode("summary", text, 0, 0, w, h, "")
}

// processFlow lays out one flow and derives its nodes and edges.
func (a *Adapter) processFlow(f Flow, startX, startY int) ([]canvas.Node, []canvas.Edge) {
	var nodes []canvas.Node
	var edges []canvas.Edge

	if len(f.Steps) == 0 {
		return nodes, edges
	}

	layouter := &Layouter{
		NodeWidth:  a.NodeWidth,
		NodeHeight: a.NodeHeight,
		HSpacing:   a.HSpacing,
		VSpacing:   a.VSpacing,
	}
	positions := layouter.Positions(f, startX, startY)

	for _, step := range f.Steps {
		pos, ok := positions[step.ID]
		if !ok {
			pos = Point{X: startX, Y: startY}
		}
		node := a.stepNode(step, pos.X, pos.Y)
		nodes = append(nodes, node)
		a.stepNodeIDs[step.ID] = node.ID
		a.nodePositions[step.ID] = Point{X: node.X, Y: node.Y}
	}

	for _, conn := range f.Connections {
		fromID, okFrom := a.stepNodeIDs[conn.From]
		toID, okTo := a.stepNodeIDs[conn.To]
		if !okFrom || !okTo {
			a.logger.Debug("dropping connection with unknown step", "from", conn.From, "to", conn.To)
			continue
		}

		fromSide, toSide := anchorSides(a.nodePositions[conn.From], a.nodePositions[conn.To])

		edge := canvas.NewEdge("", fromID, toID)
		edge.FromSide = fromSide
		edge.ToSide = toSide
		edge.Label = conn.Label
		if conn.IsError {
			edge.Color = errorEdgeColor
		}
		edges = append(edges, edge)
	}

	return nodes, edges
}

// stepNode renders one step as a text node at (x, y).
func (a *Adapter) stepNode(step Step, x, y int) canvas.Node {
	stepType := step.Type
	if stepType == "" {
		stepType = StepProcess
	}

	baseWidth := a.NodeWidth
	if w, ok := stepWidths[stepType]; ok {
		baseWidth = w
	}
	minHeight := a.NodeHeight
	if h, ok := stepHeights[stepType]; ok {
		minHeight = h
	}

	icon, ok := stepIcons[stepType]
	if !ok {
		icon = "•"
	}

	lines := []string{fmt.Sprintf("%s **%s**", icon, step.Name)}

	if step.Description != "" && step.Description != step.Name {
		lines = append(lines, fmt.Sprintf("_%s_", step.Description))
	}
	if step.Function != "" {
		lines = append(lines, fmt.Sprintf("`%s()`", step.Function))
	}
	if len(step.Inputs) > 0 {
		lines = append(lines, "⬅️ "+strings.Join(truncate(step.Inputs, 4), ", "))
	}
	if len(step.Outputs) > 0 {
		lines = append(lines, "➡️ "+strings.Join(truncate(step.Outputs, 4), ", "))
	}

	text := strings.Join(lines, "\n")
	w, h := textsize.ForNode(text, string(stepType), baseWidth, minHeight)

	return canvas.NewTextNode("step_"+step.ID, text, x, y, w, h, stepType.Color())
}

// anchorSides picks edge anchors from the dominant direction between two
// positions: vertical dominance connects bottom to top (or the reverse),
// horizontal dominance connects right to left (or the reverse).
func anchorSides(from, to Point) (canvas.Side, canvas.Side) {
	dx := to.X - from.X
	dy := to.Y - from.Y

	if abs(dy) > abs(dx) {
		if dy > 0 {
			return canvas.SideBottom, canvas.SideTop
		}
		return canvas.SideTop, canvas.SideBottom
	}
	if dx > 0 {
		return canvas.SideRight, canvas.SideLeft
	}
	return canvas.SideLeft, canvas.SideRight
}

// dataSection renders the data-format column: a title node followed by one
// node per format.
func (a *Adapter) dataSection(formats []DataFormat) []canvas.Node {
	nodes := []canvas.Node{
		canvas.NewTextNode("data_section_title", "## 📊 Data Formats", a.DataSectionX, 0, 300, 50, "4"),
	}

	currentY := 70
	for _, format := range formats {
		node := a.dataFormatNode(format, currentY)
		nodes = append(nodes, node)
		currentY += node.Height + 20
	}

	return nodes
}

// dataFormatNode renders one data format at the given y position.
func (a *Adapter) dataFormatNode(format DataFormat, y int) canvas.Node {
	lines := []string{"### " + format.Name, "", format.Description}

	if len(format.Fields) > 0 {
		lines = append(lines, "")
		for _, field := range truncate(format.Fields, 6) {
			lines = append(lines, "• "+field)
		}
		if extra := len(format.Fields) - 6; extra > 0 {
			lines = append(lines, fmt.Sprintf("• ... (+%d fields)", extra))
		}
	}

	text := strings.Join(lines, "\n")
	w, h := textsize.ForNode(text, "data", 320, 80)

	id := "data_" + strings.ReplaceAll(strings.ToLower(format.Name), " ", "_")
	return canvas.NewTextNode(id, text, a.DataSectionX, y, w, h, "4")
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
