package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mfreire/canvasflow/pkg/canvas"
	"github.com/mfreire/canvasflow/pkg/config"
	"github.com/mfreire/canvasflow/pkg/errors"
)

const flowAnalysis = `{
	"summary": "Reads input and validates it.",
	"main_flow": {
		"name": "main",
		"steps": [
			{"id": "s1", "name": "Start", "step_type": "start"},
			{"id": "s2", "name": "Validate", "step_type": "process"}
		],
		"connections": [
			{"from_step": "s1", "to_step": "s2"}
		]
	}
}`

const structureTree = `{
	"name": "parser",
	"element_type": "module",
	"children": [
		{"name": "parse", "element_type": "function", "calls": [{"name": "tokenize"}]},
		{"name": "tokenize", "element_type": "function"}
	]
}`

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestExecuteFlow(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "analysis.json")
	if err := os.WriteFile(input, []byte(flowAnalysis), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "diagram")

	runner := NewRunner(config.Default(), testLogger())
	result, err := runner.Execute(context.Background(), Options{
		Kind:   KindFlow,
		Input:  input,
		Output: output,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Output != output+".canvas" {
		t.Errorf("Output = %q, want %q", result.Output, output+".canvas")
	}
	// Summary node plus two steps.
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 1 {
		t.Errorf("EdgeCount = %d, want 1", result.Stats.EdgeCount)
	}

	c, err := canvas.ReadFile(result.Output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(c.Nodes) != 3 {
		t.Errorf("written canvas has %d nodes, want 3", len(c.Nodes))
	}
}

func TestExecuteStructure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tree.json")
	if err := os.WriteFile(input, []byte(structureTree), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(config.Default(), testLogger())
	result, err := runner.Execute(context.Background(), Options{
		Kind:   KindStructure,
		Input:  input,
		Output: filepath.Join(dir, "tree.canvas"),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Module group frame plus the two function nodes.
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	// parse -> tokenize call edge.
	if result.Stats.EdgeCount != 1 {
		t.Errorf("EdgeCount = %d, want 1", result.Stats.EdgeCount)
	}
}

func TestExecuteMissingInput(t *testing.T) {
	runner := NewRunner(config.Default(), testLogger())
	_, err := runner.Execute(context.Background(), Options{
		Kind:   KindFlow,
		Input:  filepath.Join(t.TempDir(), "missing.json"),
		Output: filepath.Join(t.TempDir(), "out.canvas"),
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestConvertInvalidJSON(t *testing.T) {
	runner := NewRunner(config.Default(), testLogger())
	_, err := runner.Convert([]byte("{not json"), Options{Kind: KindFlow, Logger: testLogger()})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Convert() error = %v, want INVALID_FORMAT", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{name: "bad kind", opts: Options{Kind: "tower", Input: "a", Output: "b"}, code: errors.ErrCodeInvalidKind},
		{name: "missing input", opts: Options{Kind: KindFlow, Output: "b"}, code: errors.ErrCodeInvalidInput},
		{name: "missing output", opts: Options{Kind: KindFlow, Input: "a"}, code: errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Kind: KindFlow, Input: "a", Output: "b"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	if opts.Logger == nil {
		t.Fatal("Logger not defaulted")
	}
	logger := opts.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validate: %v", err)
	}
	if opts.Logger != logger {
		t.Error("second validate replaced the logger")
	}
}
