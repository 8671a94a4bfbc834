package structure

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mfreire/canvasflow/pkg/canvas"
	"github.com/mfreire/canvasflow/pkg/layout"
)

// kindColors maps element kinds to canvas preset colors.
var kindColors = map[ElementKind]string{
	KindModule:   "2",
	KindClass:    "6",
	KindFunction: "5",
	KindMethod:   "5",
	KindVariable: "4",
}

// Adapter defaults.
const (
	DefaultNodeWidth    = 280
	DefaultNodeHeight   = 80
	DefaultSpacing      = 40
	DefaultGroupPadding = 25
	DefaultMaxDepth     = 10

	// methodSpacing is the tighter vertical gap between methods in a class.
	methodSpacing = 20
)

// Adapter converts a code-structure element tree into a canvas.
//
// Layout strategy: modules and classes become groups, functions and
// methods become text nodes, and recorded calls become edges. Content
// flows vertically by default, with small sets of functions or variables
// arranged in rows.
//
// Scratch state is reset at the start of every Convert call; an instance
// may be reused sequentially but not concurrently.
type Adapter struct {
	NodeWidth     int
	NodeHeight    int
	Spacing       int
	GroupPadding  int
	IncludeDocs   bool
	IncludeParams bool
	MaxDepth      int

	engine layout.Engine

	// Per-conversion scratch, reset by Convert.
	nodeOrder []string          // qualified names in placement order
	nodeMap   map[string]string // qualified name -> canvas node id
}

// NewAdapter creates an adapter with default metrics, docstrings and
// parameters included.
func NewAdapter() *Adapter {
	return &Adapter{
		NodeWidth:     DefaultNodeWidth,
		NodeHeight:    DefaultNodeHeight,
		Spacing:       DefaultSpacing,
		GroupPadding:  DefaultGroupPadding,
		IncludeDocs:   true,
		IncludeParams: true,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Convert builds the canvas for an element tree rooted at root
// (typically a module).
func (a *Adapter) Convert(root *Element) *canvas.Canvas {
	a.nodeOrder = nil
	a.nodeMap = make(map[string]string)

	graph := NewGraph(root)

	item := a.layoutItem(root, 0)
	result := a.engine.Position(item, 0, 0)

	c := canvas.New()
	for _, n := range result.Nodes {
		c.AddNode(n)
	}

	a.addCallEdges(c, root, graph)

	return c
}

// ConvertEntrypoint converts only the elements reachable from the named
// entrypoint (plus its direct callers). Falls back to a full conversion
// when the entrypoint cannot be found.
func (a *Adapter) ConvertEntrypoint(root *Element, entrypoint string) *canvas.Canvas {
	parts := strings.Split(entrypoint, ".")
	target := root.Find(parts[len(parts)-1])

	if target == nil {
		for _, child := range root.Children {
			if strings.Contains(child.QualifiedName(), entrypoint) {
				target = child
				break
			}
		}
	}
	if target == nil {
		return a.Convert(root)
	}

	graph := NewGraph(root)
	related := make(map[string]bool)
	a.collectRelated(target, graph, related)

	filtered := filterElement(root, related)
	if filtered == nil {
		return canvas.New()
	}
	return a.Convert(filtered)
}

// layoutItem builds the layout tree for an element. Beyond MaxDepth the
// element collapses to a single node.
func (a *Adapter) layoutItem(e *Element, depth int) *layout.Item {
	if depth > a.MaxDepth {
		return a.nodeItem(e)
	}

	switch e.Kind {
	case KindModule:
		return a.moduleLayout(e, depth)
	case KindClass:
		return a.classLayout(e, depth)
	default:
		return a.nodeItem(e)
	}
}

// moduleLayout groups a module's classes, functions and variables.
func (a *Adapter) moduleLayout(module *Element, depth int) *layout.Item {
	var items []*layout.Item

	var classes, callables, variables []*Element
	for _, child := range module.Children {
		switch {
		case child.Kind == KindClass:
			classes = append(classes, child)
		case child.IsCallable():
			callables = append(callables, child)
		case child.Kind == KindVariable:
			variables = append(variables, child)
		}
	}

	for _, cls := range classes {
		items = append(items, a.layoutItem(cls, depth+1))
	}

	if len(callables) > 0 {
		funcItems := make([]*layout.Item, len(callables))
		for i, f := range callables {
			funcItems[i] = a.nodeItem(f)
		}
		// Few functions fit side by side; many stack vertically.
		if len(funcItems) > 3 {
			items = append(items, layout.Column(funcItems, a.Spacing))
		} else {
			items = append(items, layout.Row(funcItems, a.Spacing))
		}
	}

	if len(variables) > 0 && len(variables) <= 5 {
		varItems := make([]*layout.Item, len(variables))
		for i, v := range variables {
			varItems[i] = a.nodeItem(v)
		}
		items = append(items, layout.Row(varItems, a.Spacing))
	}

	if len(items) == 0 {
		return a.nodeItem(module)
	}

	content := layout.Column(items, a.Spacing)
	return layout.Group("📦 "+module.Name, content, kindColors[KindModule], a.GroupPadding)
}

// classLayout groups a class's methods in a column, constructors first,
// then public, then underscore-prefixed methods, alphabetical within
// each rank.
func (a *Adapter) classLayout(cls *Element, depth int) *layout.Item {
	var methods []*Element
	for _, child := range cls.Children {
		if child.IsCallable() {
			methods = append(methods, child)
		}
	}

	sort.SliceStable(methods, func(i, j int) bool {
		ri, rj := methodRank(methods[i].Name), methodRank(methods[j].Name)
		if ri != rj {
			return ri < rj
		}
		return methods[i].Name < methods[j].Name
	})

	if len(methods) == 0 {
		return a.nodeItem(cls)
	}

	items := make([]*layout.Item, len(methods))
	for i, m := range methods {
		items[i] = a.nodeItem(m)
	}
	content := layout.Column(items, methodSpacing)

	label := "🏛️ " + cls.Name
	if len(cls.Bases) > 0 {
		label += fmt.Sprintf(" (%s)", strings.Join(cls.Bases, ", "))
	}

	return layout.Group(label, content, kindColors[KindClass], a.GroupPadding)
}

// methodRank orders constructors before public methods before private ones.
func methodRank(name string) int {
	switch {
	case name == "__init__" || name == "init" || name == "New":
		return 0
	case strings.HasPrefix(name, "_"):
		return 2
	default:
		return 1
	}
}

// nodeItem builds the leaf item for an element and registers its node id.
func (a *Adapter) nodeItem(e *Element) *layout.Item {
	qualified := e.QualifiedName()
	id := sanitizeID(qualified)
	if _, seen := a.nodeMap[qualified]; !seen {
		a.nodeOrder = append(a.nodeOrder, qualified)
	}
	a.nodeMap[qualified] = id

	text := a.nodeText(e)

	lineCount := strings.Count(text, "\n") + 1
	height := max(a.NodeHeight, lineCount*20+20)

	return layout.Text(id, text, a.NodeWidth, height, kindColors[e.Kind])
}

// nodeText renders the markdown body for an element's node.
func (a *Adapter) nodeText(e *Element) string {
	var lines []string

	switch {
	case e.IsCallable():
		prefix := ""
		if e.IsAsync {
			prefix = "async "
		}
		lines = append(lines, "### "+prefix+e.Name)

		if a.IncludeParams && len(e.Params) > 0 {
			// The four-parameter cap counts the skipped receiver.
			shown := e.Params
			if len(shown) > 4 {
				shown = shown[:4]
			}
			var params []string
			for _, p := range shown {
				if p.Name == "self" {
					continue
				}
				s := p.Name
				if p.TypeHint != "" {
					s += ": " + p.TypeHint
				}
				params = append(params, s)
			}
			if len(params) > 0 {
				lines = append(lines, fmt.Sprintf("(%s)", strings.Join(params, ", ")))
			}
		}
		if e.Return != "" {
			lines = append(lines, "→ "+e.Return)
		}

	case e.Kind == KindClass:
		lines = append(lines, "### "+e.Name)
		if len(e.Bases) > 0 {
			lines = append(lines, "extends "+strings.Join(e.Bases, ", "))
		}

	case e.Kind == KindVariable:
		lines = append(lines, "**"+e.Name+"**")

	default:
		lines = append(lines, "### "+e.Name)
	}

	if a.IncludeDocs && e.Doc != "" {
		first := strings.SplitN(strings.TrimSpace(e.Doc), "\n", 2)[0]
		// Truncate by rune so multi-byte text stays valid UTF-8.
		if r := []rune(first); len(r) > 50 {
			first = string(r[:50])
		}
		lines = append(lines, "\n_"+first+"_")
	}

	return strings.Join(lines, "\n")
}

// addCallEdges derives one edge per resolvable call, walking elements in
// tree order for deterministic edge output. Unresolvable callees and
// self-calls are skipped.
func (a *Adapter) addCallEdges(c *canvas.Canvas, e *Element, graph *Graph) {
	caller := e.QualifiedName()
	if callerID, ok := a.nodeMap[caller]; ok {
		for _, callee := range graph.Callees(caller) {
			calleeID := a.resolveCallee(callee)
			if calleeID == "" || calleeID == callerID {
				continue
			}
			edge := canvas.NewEdge("", callerID, calleeID)
			edge.FromSide = canvas.SideRight
			edge.ToSide = canvas.SideLeft
			c.AddEdge(edge)
		}
	}

	for _, child := range e.Children {
		a.addCallEdges(c, child, graph)
	}
}

// resolveCallee maps a callee name to a node id: exact qualified match
// first, then a suffix match on the bare function name.
func (a *Adapter) resolveCallee(callee string) string {
	if id, ok := a.nodeMap[callee]; ok {
		return id
	}
	parts := strings.Split(callee, ".")
	simple := parts[len(parts)-1]
	for _, qname := range a.nodeOrder {
		if qname == simple || strings.HasSuffix(qname, "."+simple) {
			return a.nodeMap[qname]
		}
	}
	return ""
}

// collectRelated gathers the transitive callees of target plus one level
// of callers.
func (a *Adapter) collectRelated(target *Element, graph *Graph, visited map[string]bool) {
	qualified := target.QualifiedName()
	if visited[qualified] {
		return
	}
	visited[qualified] = true

	for _, callee := range graph.Callees(qualified) {
		if e, ok := graph.Element(callee); ok {
			a.collectRelated(e, graph, visited)
		}
	}
	for _, caller := range graph.Callers(qualified) {
		visited[caller] = true
	}
}

// filterElement prunes a tree to elements in keep (or with kept
// descendants). Returns nil when nothing under e is relevant.
func filterElement(e *Element, keep map[string]bool) *Element {
	relevant := keep[e.QualifiedName()]

	var children []*Element
	for _, child := range e.Children {
		if fc := filterElement(child, keep); fc != nil {
			children = append(children, fc)
			relevant = true
		}
	}

	if !relevant {
		return nil
	}

	filtered := &Element{
		Name:       e.Name,
		Kind:       e.Kind,
		Doc:        e.Doc,
		Params:     e.Params,
		Return:     e.Return,
		IsAsync:    e.IsAsync,
		Decorators: e.Decorators,
		Bases:      e.Bases,
		Calls:      e.Calls,
		Inputs:     e.Inputs,
		Outputs:    e.Outputs,
	}
	for _, child := range children {
		filtered.AddChild(child)
	}
	return filtered
}
