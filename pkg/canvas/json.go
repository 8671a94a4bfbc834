package canvas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileExtension is the canonical extension for canvas files.
const FileExtension = ".canvas"

// nodeJSON is the wire shape of a node. Field order here is the order
// fields appear in the output; optional fields are dropped via omitempty.
type nodeJSON struct {
	ID              string   `json:"id"`
	Type            NodeType `json:"type"`
	X               int      `json:"x"`
	Y               int      `json:"y"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	Color           string   `json:"color,omitempty"`
	Text            string   `json:"text,omitempty"`
	File            string   `json:"file,omitempty"`
	Subpath         string   `json:"subpath,omitempty"`
	URL             string   `json:"url,omitempty"`
	Label           string   `json:"label,omitempty"`
	Background      string   `json:"background,omitempty"`
	BackgroundStyle string   `json:"backgroundStyle,omitempty"`
}

// edgeJSON is the wire shape of an edge.
type edgeJSON struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	ToNode   string `json:"toNode"`
	FromSide string `json:"fromSide,omitempty"`
	ToSide   string `json:"toSide,omitempty"`
	FromEnd  string `json:"fromEnd,omitempty"`
	ToEnd    string `json:"toEnd,omitempty"`
	Color    string `json:"color,omitempty"`
	Label    string `json:"label,omitempty"`
}

// canvasJSON is the wire shape of a canvas. Both arrays are always present,
// even when empty.
type canvasJSON struct {
	Nodes []json.RawMessage `json:"nodes"`
	Edges []json.RawMessage `json:"edges"`
}

// MarshalJSON emits only the payload fields relevant to the node's type.
// A text node never emits file/url/label even if those fields were set,
// and unset optional fields are omitted rather than written as null.
// This exact-presence rule is part of the wire contract.
func (n Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{
		ID:     n.ID,
		Type:   n.Type,
		X:      n.X,
		Y:      n.Y,
		Width:  n.Width,
		Height: n.Height,
		Color:  n.Color,
	}
	switch n.Type {
	case NodeText:
		out.Text = n.Text
	case NodeFile:
		out.File = n.File
		out.Subpath = n.Subpath
	case NodeLink:
		out.URL = n.URL
	case NodeGroup:
		out.Label = n.Label
		out.Background = n.Background
		out.BackgroundStyle = string(n.BackgroundStyle)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any node payload fields; type gating happens on
// the way out, not on the way in, so round-trips are lossless.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*n = Node{
		ID:              in.ID,
		Type:            in.Type,
		X:               in.X,
		Y:               in.Y,
		Width:           in.Width,
		Height:          in.Height,
		Color:           in.Color,
		Text:            in.Text,
		File:            in.File,
		Subpath:         in.Subpath,
		URL:             in.URL,
		Label:           in.Label,
		Background:      in.Background,
		BackgroundStyle: BackgroundStyle(in.BackgroundStyle),
	}
	return nil
}

// MarshalJSON emits the edge with unset optional fields omitted.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal(edgeJSON{
		ID:       e.ID,
		FromNode: e.FromNode,
		ToNode:   e.ToNode,
		FromSide: string(e.FromSide),
		ToSide:   string(e.ToSide),
		FromEnd:  string(e.FromEnd),
		ToEnd:    string(e.ToEnd),
		Color:    e.Color,
		Label:    e.Label,
	})
}

// UnmarshalJSON fills the edge from its wire shape.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var in edgeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = Edge{
		ID:       in.ID,
		FromNode: in.FromNode,
		ToNode:   in.ToNode,
		FromSide: Side(in.FromSide),
		ToSide:   Side(in.ToSide),
		FromEnd:  EndShape(in.FromEnd),
		ToEnd:    EndShape(in.ToEnd),
		Color:    in.Color,
		Label:    in.Label,
	}
	return nil
}

// Marshal serializes the canvas to tab-indented JSON, matching the
// formatting canvas viewers write themselves.
func Marshal(c *Canvas) ([]byte, error) {
	return marshal(c, true)
}

// MarshalCompact serializes the canvas without indentation.
func MarshalCompact(c *Canvas) ([]byte, error) {
	return marshal(c, false)
}

func marshal(c *Canvas, pretty bool) ([]byte, error) {
	out := canvasJSON{
		Nodes: make([]json.RawMessage, 0, len(c.Nodes)),
		Edges: make([]json.RawMessage, 0, len(c.Edges)),
	}
	for _, n := range c.Nodes {
		raw, err := json.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("marshal node %s: %w", n.ID, err)
		}
		out.Nodes = append(out.Nodes, raw)
	}
	for _, e := range c.Edges {
		raw, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal edge %s: %w", e.ID, err)
		}
		out.Edges = append(out.Edges, raw)
	}
	if pretty {
		return json.MarshalIndent(out, "", "\t")
	}
	return json.Marshal(out)
}

// Unmarshal deserializes canvas JSON bytes.
func Unmarshal(data []byte) (*Canvas, error) {
	var in struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("unmarshal canvas: %w", err)
	}
	return &Canvas{Nodes: in.Nodes, Edges: in.Edges}, nil
}

// WriteFile writes the canvas to path as pretty-printed JSON.
// The ".canvas" extension is appended when missing.
func WriteFile(c *Canvas, path string) error {
	if filepath.Ext(path) != FileExtension {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + FileExtension
	}
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads a canvas file from disk.
func ReadFile(path string) (*Canvas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
