// Package structure models code-structure trees (modules, classes,
// functions) and converts them into hierarchical canvas diagrams.
//
// The element tree is the shape produced by code-structure providers
// (language analyzers, AST extractors); this package only consumes it.
// Modules and classes become groups, callables become text nodes, and
// call relationships become edges between them.
package structure

import "strings"

// ElementKind classifies a code element.
type ElementKind string

// Element kinds.
const (
	KindModule   ElementKind = "module"
	KindClass    ElementKind = "class"
	KindFunction ElementKind = "function"
	KindMethod   ElementKind = "method"
	KindVariable ElementKind = "variable"
)

// Parameter is one function/method parameter.
type Parameter struct {
	Name     string `json:"name"`
	TypeHint string `json:"type_hint,omitempty"`
	Default  string `json:"default_value,omitempty"`
}

// Call is one outgoing function call recorded on an element.
// Target is set for method calls (obj.method()).
type Call struct {
	Name   string `json:"name"`
	Target string `json:"target,omitempty"`
}

// Element is one node of a code-structure tree.
type Element struct {
	Name string      `json:"name"`
	Kind ElementKind `json:"element_type"`

	Doc        string      `json:"docstring,omitempty"`
	Params     []Parameter `json:"parameters,omitempty"`
	Return     string      `json:"return_type,omitempty"`
	IsAsync    bool        `json:"is_async,omitempty"`
	Decorators []string    `json:"decorators,omitempty"`
	Bases      []string    `json:"base_classes,omitempty"`
	Calls      []Call      `json:"calls,omitempty"`
	Inputs     []string    `json:"inputs,omitempty"`
	Outputs    []string    `json:"outputs,omitempty"`

	Children []*Element `json:"children,omitempty"`

	parent *Element
}

// AddChild appends a child element and records the parent link used for
// qualified names.
func (e *Element) AddChild(child *Element) *Element {
	child.parent = e
	e.Children = append(e.Children, child)
	return e
}

// LinkParents restores parent pointers across the whole tree. Call this
// after deserializing an element tree from JSON, where the unexported
// parent link is absent.
func (e *Element) LinkParents() {
	for _, child := range e.Children {
		child.parent = e
		child.LinkParents()
	}
}

// QualifiedName returns the dotted name relative to the enclosing module
// (e.g. "Parser.parse" for a method). Module children use their bare name.
func (e *Element) QualifiedName() string {
	if e.parent != nil && e.parent.Kind != KindModule {
		return e.parent.QualifiedName() + "." + e.Name
	}
	return e.Name
}

// Find returns the first element (depth-first, self included) with the
// given name, or nil.
func (e *Element) Find(name string) *Element {
	if e.Name == name {
		return e
	}
	for _, child := range e.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// IsCallable reports whether the element is a function or method.
func (e *Element) IsCallable() bool {
	return e.Kind == KindFunction || e.Kind == KindMethod
}

// Graph indexes an element tree for call-relationship lookups.
type Graph struct {
	Root *Element

	elements  map[string]*Element // qualified name -> element
	callGraph map[string][]string // caller -> callee names
}

// NewGraph builds the indices for a tree rooted at root.
func NewGraph(root *Element) *Graph {
	g := &Graph{
		Root:      root,
		elements:  make(map[string]*Element),
		callGraph: make(map[string][]string),
	}
	g.index(root)
	return g
}

func (g *Graph) index(e *Element) {
	name := e.QualifiedName()
	g.elements[name] = e

	var callees []string
	for _, call := range e.Calls {
		if call.Target != "" {
			callees = append(callees, call.Target+"."+call.Name)
		} else {
			callees = append(callees, call.Name)
		}
	}
	if len(callees) > 0 {
		g.callGraph[name] = callees
	}

	for _, child := range e.Children {
		g.index(child)
	}
}

// Element returns the element with the given qualified name.
func (g *Graph) Element(name string) (*Element, bool) {
	e, ok := g.elements[name]
	return e, ok
}

// Callees returns the qualified names called by the named element.
func (g *Graph) Callees(name string) []string {
	return g.callGraph[name]
}

// Callers returns the elements that call the named element.
func (g *Graph) Callers(name string) []string {
	var callers []string
	for caller, callees := range g.callGraph {
		for _, callee := range callees {
			if callee == name {
				callers = append(callers, caller)
				break
			}
		}
	}
	return callers
}

// CallGraph returns the caller -> callees index.
func (g *Graph) CallGraph() map[string][]string {
	return g.callGraph
}

// sanitizeID turns a qualified name into a stable node id: dots become
// underscores, angle brackets are removed, and the result is capped at
// 16 characters.
func sanitizeID(qualifiedName string) string {
	clean := strings.NewReplacer(".", "_", "<", "", ">", "").Replace(qualifiedName)
	if len(clean) > 16 {
		clean = clean[:16]
	}
	if clean == "" {
		return "node"
	}
	return clean
}
