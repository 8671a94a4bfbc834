// Package render previews canvases as SVG or PNG images via Graphviz.
//
// The canvas already carries final positions, so rendering pins every node
// with neato rather than re-running a layout engine. Previews are
// approximations: markdown in node text is shown raw and group frames
// render as plain boxes behind their members.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mfreire/canvasflow/pkg/canvas"
)

// pointsPerPixel converts canvas pixels to Graphviz points.
const pointsPerPixel = 0.75

// fillColors maps canvas preset colors to preview fill colors.
var fillColors = map[string]string{
	canvas.ColorRed:    "#fadbd8",
	canvas.ColorOrange: "#fdebd0",
	canvas.ColorYellow: "#fcf3cf",
	canvas.ColorGreen:  "#d5f5e3",
	canvas.ColorCyan:   "#d6eaf8",
	canvas.ColorPurple: "#e8daef",
}

// ToDOT converts a canvas to Graphviz DOT with pinned node positions.
// The resulting DOT string renders with the neato engine via [RenderSVG]
// or [RenderPNG].
func ToDOT(c *canvas.Canvas) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range c.Nodes {
		attrs := nodeAttrs(n)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range c.Edges {
		attrs := []string{}
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		if color, ok := fillColors[e.Color]; ok {
			attrs = append(attrs, fmt.Sprintf("color=%q", color))
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.FromNode, e.ToNode, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.FromNode, e.ToNode)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeAttrs builds the DOT attribute list for one node. Positions are
// pinned at the node center; canvas y grows downward while Graphviz y
// grows upward, so y is negated.
func nodeAttrs(n canvas.Node) []string {
	cx := float64(n.X) + float64(n.Width)/2
	cy := float64(n.Y) + float64(n.Height)/2

	attrs := []string{
		fmt.Sprintf("label=%q", nodeLabel(n)),
		fmt.Sprintf("pos=\"%.0f,%.0f!\"", cx*pointsPerPixel, -cy*pointsPerPixel),
		fmt.Sprintf("width=%.2f", float64(n.Width)/96),
		fmt.Sprintf("height=%.2f", float64(n.Height)/96),
		"fixedsize=true",
	}

	if fill, ok := fillColors[n.Color]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	if n.Type == canvas.NodeGroup {
		attrs = append(attrs, "style=\"dashed\"")
	}
	return attrs
}

// nodeLabel picks the preview label: group label, first text line, linked
// file or URL, falling back to the node id.
func nodeLabel(n canvas.Node) string {
	switch n.Type {
	case canvas.NodeGroup:
		return n.Label
	case canvas.NodeFile:
		return n.File
	case canvas.NodeLink:
		return n.URL
	}

	first := strings.SplitN(n.Text, "\n", 2)[0]
	if first == "" {
		return n.ID
	}
	if len(first) > 40 {
		first = first[:40]
	}
	return first
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
