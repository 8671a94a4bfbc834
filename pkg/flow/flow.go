// Package flow lays out step/connection graphs as top-to-bottom flowcharts
// and converts flow analyses into canvases.
//
// The layout is branch-aware rather than a general graph-drawing algorithm:
// a mostly linear flow continues straight down, a binary decision sends its
// first (primary) successor down and the second to the right, and larger
// fan-outs spread symmetrically. Cyclic, disconnected and multiply-rooted
// graphs are all tolerated - every declared step is positioned exactly once
// and back-edges simply reuse existing positions.
package flow

// StepType classifies a step's role in the flow.
type StepType string

// Step types.
const (
	StepStart    StepType = "start"
	StepProcess  StepType = "process"
	StepDecision StepType = "decision"
	StepData     StepType = "data"
	StepEnd      StepType = "end"
	StepError    StepType = "error"
)

// Step is one node of a flow description, as produced by a flow-description
// provider. IDs are unique within a flow.
type Step struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Function    string   `json:"function,omitempty"`
	Type        StepType `json:"step_type,omitempty"`
	Inputs      []string `json:"inputs,omitempty"`
	Outputs     []string `json:"outputs,omitempty"`
}

// Connection is a directed link between two steps. Declaration order is
// significant: it determines branch placement (the first successor of a
// decision continues straight down).
type Connection struct {
	From    string `json:"from_step"`
	To      string `json:"to_step"`
	Label   string `json:"label,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
}

// Flow is a named step/connection graph. It may be cyclic, disconnected or
// multiply-rooted; layout tolerates all three.
type Flow struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Steps       []Step       `json:"steps"`
	Connections []Connection `json:"connections"`
}

// DataFormat describes a notable data shape flowing through the code,
// rendered in a separate section beside the main flow.
type DataFormat struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Fields      []string `json:"fields,omitempty"`
	UsedIn      []string `json:"used_in,omitempty"`
}

// Analysis is the complete flow description consumed by the adapter:
// a summary, the main flow, optional auxiliary sub-flows and data formats.
// How the description was produced (static analysis, an external language
// model, hand-written JSON) is irrelevant here.
type Analysis struct {
	Summary     string       `json:"summary"`
	MainFlow    Flow         `json:"main_flow"`
	SubFlows    []Flow       `json:"sub_flows,omitempty"`
	DataFormats []DataFormat `json:"data_formats,omitempty"`
	EntryPoints []string     `json:"entry_points,omitempty"`
}

// stepColors maps step types to canvas preset colors.
var stepColors = map[StepType]string{
	StepStart:    "4",
	StepProcess:  "5",
	StepDecision: "3",
	StepData:     "6",
	StepEnd:      "4",
	StepError:    "1",
}

// stepWidths maps step types to base node widths.
var stepWidths = map[StepType]int{
	StepStart:    220,
	StepProcess:  280,
	StepDecision: 250,
	StepData:     280,
	StepEnd:      220,
	StepError:    220,
}

// stepHeights maps step types to minimum node heights.
var stepHeights = map[StepType]int{
	StepStart:    60,
	StepProcess:  80,
	StepDecision: 70,
	StepData:     80,
	StepEnd:      60,
	StepError:    60,
}

// stepIcons maps step types to the glyph shown before the step name.
var stepIcons = map[StepType]string{
	StepStart:    "▶️",
	StepProcess:  "⚙️",
	StepDecision: "❓",
	StepData:     "💾",
	StepEnd:      "🏁",
	StepError:    "❌",
}

// Color returns the preset color for a step type, falling back to the
// process color for unknown types.
func (t StepType) Color() string {
	if c, ok := stepColors[t]; ok {
		return c
	}
	return "5"
}
