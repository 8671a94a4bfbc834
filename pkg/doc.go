// Package pkg provides the core libraries for canvasflow diagram generation.
//
// # Overview
//
// Canvasflow converts analysis documents into JSON Canvas diagrams with
// automatic layout. The pkg directory is organized around the data flow:
//
//	Provider Analysis (JSON)
//	         ↓
//	    [flow] / [structure] package (domain adapters)
//	         ↓
//	    [layout] package (container layout engine)
//	         ↓
//	    [textsize] package (node sizing)
//	         ↓
//	    [canvas] package (geometry model + serialization)
//	         ↓
//	    .canvas output
//
// # Quick Start
//
// Convert a flow analysis into a canvas file:
//
//	import (
//	    "github.com/mfreire/canvasflow/pkg/canvas"
//	    "github.com/mfreire/canvasflow/pkg/flow"
//	)
//
//	adapter := flow.NewAdapter(nil)
//	c := adapter.Convert(analysis)
//	if err := canvas.WriteFile(c, "diagram.canvas"); err != nil {
//	    log.Fatal(err)
//	}
//
// Or assemble a canvas by hand with the builder:
//
//	b := builder.NewCanvas()
//	b.Group("auth", "", func(g *builder.GroupBuilder) {
//	    g.AddNode("login", "Login", 0, 0, "")
//	    g.AddNode("verify", "Verify token", 0, 0, "")
//	    g.Connect("login", "verify", "")
//	})
//	c := b.Build(0, 0)
//
// # Main Packages
//
// [canvas] - JSON Canvas 1.0 geometry model: nodes, edges, serialization
// with the exact field-presence rules canvas viewers expect.
//
// [textsize] - Deterministic node size estimation from markdown content.
// No font rendering; a fixed character-metric model keeps output identical
// across platforms.
//
// [layout] - Generic two-phase container layout engine for rows, columns
// and labeled groups.
//
// [flow] - Flowchart conversion: branch-aware top-to-bottom layout of
// steps, connections, sub-flows and data formats.
//
// [structure] - Code-structure conversion: modules and classes as nested
// groups, callables as nodes, calls as edges.
//
// [builder] - Fluent API for hand-assembling canvases on top of the
// layout engine.
//
// [pipeline] - Complete parse → convert → write pipeline used by CLI and
// API. Ensures consistent behavior across all entry points.
//
// [render] - Graphviz-based SVG/PNG previews of finished canvases.
//
// [config] - Optional TOML configuration for layout metrics.
//
// [errors] - Structured error codes shared by CLI and API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [canvas]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/canvas
// [textsize]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/textsize
// [layout]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/layout
// [flow]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/flow
// [structure]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/structure
// [builder]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/builder
// [pipeline]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/render
// [config]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/config
// [errors]: https://pkg.go.dev/github.com/mfreire/canvasflow/pkg/errors
package pkg
