package render

import (
	"strings"
	"testing"

	"github.com/mfreire/canvasflow/pkg/canvas"
)

func TestToDOT(t *testing.T) {
	c := canvas.New()
	c.AddNode(canvas.NewTextNode("a", "Start here\ndetails", 0, 0, 200, 100, canvas.ColorGreen))
	c.AddNode(canvas.NewTextNode("b", "Next", 0, 200, 200, 100, ""))
	edge := canvas.NewEdge("e1", "a", "b")
	edge.Label = "then"
	c.AddEdge(edge)

	dot := ToDOT(c)

	if !strings.Contains(dot, "layout=neato") {
		t.Error("DOT should use the neato engine")
	}
	// Node centers, pinned: a at (100, 50) px -> (75, -38) pt.
	if !strings.Contains(dot, `pos="75,-38!"`) {
		t.Errorf("DOT missing pinned position for node a:\n%s", dot)
	}
	// Labels use the first text line only.
	if !strings.Contains(dot, `"a" [label="Start here"`) {
		t.Errorf("DOT missing node a label:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" -> "b" [label="then"]`) {
		t.Errorf("DOT missing labeled edge:\n%s", dot)
	}
	if !strings.Contains(dot, `fillcolor="#d5f5e3"`) {
		t.Errorf("DOT missing fill color for green node:\n%s", dot)
	}
}

func TestToDOTGroupNode(t *testing.T) {
	c := canvas.New()
	c.AddNode(canvas.NewGroupNode("g", "Auth", 0, 0, 400, 300, ""))

	dot := ToDOT(c)

	if !strings.Contains(dot, `label="Auth"`) {
		t.Errorf("group node should use its label:\n%s", dot)
	}
	if !strings.Contains(dot, `style="dashed"`) {
		t.Errorf("group node should render dashed:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 150.00 250.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 150.00 250.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="150" height="250"`) {
		t.Errorf("dimensions not rewritten: %s", out)
	}
}
