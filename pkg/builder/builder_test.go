package builder

import (
	"strings"
	"testing"

	"github.com/mfreire/canvasflow/pkg/canvas"
	"github.com/mfreire/canvasflow/pkg/config"
)

func TestCanvasBuilderGroup(t *testing.T) {
	b := NewCanvas()
	b.Group("auth", "2", func(g *GroupBuilder) {
		g.AddNode("login", "Login", 0, 0, "")
		g.AddNode("verify", "Verify token", 0, 0, "")
		g.Connect("login", "verify", "ok")
	})

	c := b.Build(0, 0)

	// Frame plus two content nodes.
	if len(c.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(c.Nodes))
	}
	frame := c.Nodes[0]
	if frame.Type != canvas.NodeGroup || frame.Label != "auth" || frame.Color != "2" {
		t.Errorf("frame = %+v", frame)
	}

	if len(c.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(c.Edges))
	}
	e := c.Edges[0]
	if e.FromNode != "login" || e.ToNode != "verify" || e.Label != "ok" {
		t.Errorf("edge = %+v", e)
	}
	if e.FromSide != canvas.SideRight || e.ToSide != canvas.SideLeft {
		t.Errorf("edge sides = %s/%s, want right/left", e.FromSide, e.ToSide)
	}
}

func TestCanvasBuilderEmptyGroup(t *testing.T) {
	b := NewCanvas()
	b.Group("empty", "", func(g *GroupBuilder) {})

	c := b.Build(0, 0)
	if len(c.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1 (minimal frame)", len(c.Nodes))
	}
}

func TestCanvasBuilderDefaults(t *testing.T) {
	b := NewCanvas()
	b.AddNode("a", "", 0, 0, "")

	c := b.Build(0, 0)
	n := c.Nodes[0]
	if n.Text != "a" {
		t.Errorf("empty text should default to the id, got %q", n.Text)
	}
	if n.Width != defaultNodeWidth || n.Height != defaultNodeHeight {
		t.Errorf("extent = (%d, %d), want defaults", n.Width, n.Height)
	}
}

func TestCanvasBuilderStacksTopLevel(t *testing.T) {
	b := NewCanvas()
	b.AddNode("a", "A", 100, 50, "")
	b.AddNode("b", "B", 100, 50, "")

	c := b.Build(0, 0)
	a, _ := c.NodeByID("a")
	bn, _ := c.NodeByID("b")
	if a.Y >= bn.Y {
		t.Errorf("top-level items should stack vertically: a.Y=%d, b.Y=%d", a.Y, bn.Y)
	}
	if a.X != 0 || bn.X != 0 {
		t.Errorf("stacked items should share x: %d, %d", a.X, bn.X)
	}
}

func TestCanvasBuilderConnect(t *testing.T) {
	b := NewCanvas()
	b.AddNode("a", "A", 0, 0, "")
	b.AddNode("b", "B", 0, 0, "")
	b.Connect("a", "b", "next", canvas.SideBottom, canvas.SideTop, "1")

	c := b.Build(0, 0)
	if len(c.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(c.Edges))
	}
	e := c.Edges[0]
	if e.FromSide != canvas.SideBottom || e.Color != "1" || e.Label != "next" {
		t.Errorf("edge = %+v", e)
	}
}

func TestFlowBuilderRow(t *testing.T) {
	c := NewFlow().
		Step("one", "First", "4").
		Step("two", "Second", "").
		Step("three", "", "").
		Build("row")

	if len(c.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(c.Nodes))
	}
	if len(c.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(c.Edges))
	}

	// Steps run left to right with default extent and spacing.
	one, _ := c.NodeByID("one")
	two, _ := c.NodeByID("two")
	if one.X != 0 || two.X != 290 {
		t.Errorf("x positions = %d, %d, want 0, 290", one.X, two.X)
	}

	for _, e := range c.Edges {
		if e.FromSide != canvas.SideRight || e.ToSide != canvas.SideLeft {
			t.Errorf("row edges anchor right/left, got %s/%s", e.FromSide, e.ToSide)
		}
	}

	// Empty text falls back to the id.
	three, _ := c.NodeByID("three")
	if three.Text != "three" {
		t.Errorf("text = %q, want id fallback", three.Text)
	}
}

func TestFlowBuilderColumn(t *testing.T) {
	c := NewFlow().
		Step("a", "A", "").
		Step("b", "B", "").
		Build("column")

	a, _ := c.NodeByID("a")
	b, _ := c.NodeByID("b")
	if a.X != b.X {
		t.Errorf("column steps should share x: %d, %d", a.X, b.X)
	}
	if b.Y != a.Y+defaultNodeHeight+40 {
		t.Errorf("b.Y = %d, want %d", b.Y, a.Y+defaultNodeHeight+40)
	}

	e := c.Edges[0]
	if e.FromSide != canvas.SideBottom || e.ToSide != canvas.SideTop {
		t.Errorf("column edges anchor bottom/top, got %s/%s", e.FromSide, e.ToSide)
	}
}

func TestFlowBuilderBranchRecords(t *testing.T) {
	b := NewFlow().
		Step("check", "Check input", "").
		Branch("check", "retry", "", "1").
		Branch("check", "abort", "Abort run", "")

	got := b.branches["check"]
	if len(got) != 2 {
		t.Fatalf("branches = %d, want 2", len(got))
	}
	if got[0].id != "retry" || got[0].text != "retry" {
		t.Errorf("empty text should default to the branch id: %+v", got[0])
	}
	if got[0].color != "1" {
		t.Errorf("branch color = %q, want 1", got[0].color)
	}
	if got[1].text != "Abort run" {
		t.Errorf("branch text = %q, want Abort run", got[1].text)
	}
}

// Branch annotations do not disturb the sequential step layout.
func TestFlowBuilderBranchKeepsSequentialOutput(t *testing.T) {
	plain := NewFlow().
		Step("a", "A", "").
		Step("b", "B", "").
		Build("row")
	branched := NewFlow().
		Step("a", "A", "").
		Branch("a", "alt", "", "").
		Step("b", "B", "").
		Build("row")

	if len(branched.Nodes) != len(plain.Nodes) {
		t.Errorf("nodes = %d, want %d", len(branched.Nodes), len(plain.Nodes))
	}
	if len(branched.Edges) != len(plain.Edges) {
		t.Errorf("edges = %d, want %d", len(branched.Edges), len(plain.Edges))
	}
	for i := range plain.Nodes {
		if branched.Nodes[i] != plain.Nodes[i] {
			t.Errorf("node %d differs:\n%+v\n%+v", i, branched.Nodes[i], plain.Nodes[i])
		}
	}
}

func TestCanvasBuilderConfigMetrics(t *testing.T) {
	cfg := config.Layout{NodeWidth: 100, NodeHeight: 40, Spacing: 10, Padding: 5}

	b := NewCanvasWith(cfg)
	b.AddNode("a", "A", 0, 0, "")
	b.AddNode("b", "B", 0, 0, "")

	c := b.Build(0, 0)
	a, _ := c.NodeByID("a")
	if a.Width != 100 || a.Height != 40 {
		t.Errorf("extent = (%d, %d), want (100, 40)", a.Width, a.Height)
	}
	bn, _ := c.NodeByID("b")
	if bn.Y != 50 {
		t.Errorf("b.Y = %d, want 50 (height 40 + spacing 10)", bn.Y)
	}
}

func TestCanvasBuilderConfigGroupPadding(t *testing.T) {
	cfg := config.Layout{NodeWidth: 100, NodeHeight: 40, Spacing: 10, Padding: 5}

	b := NewCanvasWith(cfg)
	b.Group("g", "", func(g *GroupBuilder) {
		g.AddNode("x", "X", 0, 0, "")
	})

	c := b.Build(0, 0)
	frame := c.Nodes[0]
	// Content plus padding on both sides, plus the label band.
	if frame.Width != 110 || frame.Height != 80 {
		t.Errorf("frame = (%d, %d), want (110, 80)", frame.Width, frame.Height)
	}
	x, _ := c.NodeByID("x")
	if x.X != 5 || x.Y != 35 {
		t.Errorf("content at (%d, %d), want (5, 35)", x.X, x.Y)
	}
}

func TestFlowBuilderConfigMetrics(t *testing.T) {
	cfg := config.Layout{NodeWidth: 120, Spacing: 30}

	c := NewFlowWith(cfg).
		Step("a", "A", "").
		Step("b", "B", "").
		Build("row")

	a, _ := c.NodeByID("a")
	if a.Width != 120 {
		t.Errorf("width = %d, want 120", a.Width)
	}
	b, _ := c.NodeByID("b")
	if b.X != 150 {
		t.Errorf("b.X = %d, want 150 (width 120 + spacing 30)", b.X)
	}
}

func TestGroupEdgesPrecedeStandalone(t *testing.T) {
	b := NewCanvas()
	b.Group("g", "", func(g *GroupBuilder) {
		g.AddNode("x", "X", 0, 0, "")
		g.AddNode("y", "Y", 0, 0, "")
		g.Connect("x", "y", "")
	})
	b.AddNode("z", "Z", 0, 0, "")
	b.Connect("y", "z", "", canvas.SideBottom, canvas.SideTop, "")

	c := b.Build(0, 0)
	if len(c.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(c.Edges))
	}
	if c.Edges[0].FromNode != "x" {
		t.Errorf("group edges should come first, got %s", c.Edges[0].FromNode)
	}
	if c.Edges[1].FromNode != "y" || c.Edges[1].ToNode != "z" {
		t.Errorf("standalone edge = %+v", c.Edges[1])
	}
}

func TestFlowBuilderEmpty(t *testing.T) {
	c := NewFlow().Build("row")
	if len(c.Nodes) != 0 || len(c.Edges) != 0 {
		t.Errorf("empty flow = %d nodes, %d edges", len(c.Nodes), len(c.Edges))
	}
}

func TestGroupLabelKept(t *testing.T) {
	b := NewCanvas()
	b.Group("Data Access Layer", "", func(g *GroupBuilder) {
		g.AddNode("repo", "Repository", 0, 0, "")
	})
	c := b.Build(0, 0)

	if !strings.Contains(c.Nodes[0].Label, "Data Access Layer") {
		t.Errorf("frame label = %q", c.Nodes[0].Label)
	}
}
