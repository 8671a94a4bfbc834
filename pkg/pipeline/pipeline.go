// Package pipeline provides the core conversion pipeline for canvasflow.
//
// This package implements the complete parse → convert → write pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode a provider analysis document (JSON)
//  2. Convert: Lay out the diagram and build the canvas
//  3. Write: Serialize the canvas to a .canvas file
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(config.Default(), logger)
//	opts := pipeline.Options{
//	    Kind:   pipeline.KindFlow,
//	    Input:  "analysis.json",
//	    Output: "diagram.canvas",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/mfreire/canvasflow/pkg/errors"
)

// Diagram kinds supported by the pipeline.
const (
	KindFlow      = "flow"
	KindStructure = "structure"
)

// ValidKinds is the set of supported diagram kinds.
var ValidKinds = map[string]bool{
	KindFlow:      true,
	KindStructure: true,
}

// Preview format constants.
const (
	PreviewSVG = "svg"
	PreviewPNG = "png"
)

// ValidPreviewFormats is the set of supported preview formats.
var ValidPreviewFormats = map[string]bool{
	PreviewSVG: true,
	PreviewPNG: true,
}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Kind selects the converter: "flow" or "structure".
	Kind string `json:"kind"`

	// Input is the path to the provider analysis JSON.
	Input string `json:"input,omitempty"`

	// Output is the destination .canvas path.
	Output string `json:"output,omitempty"`

	// Entrypoint restricts a structure conversion to elements reachable
	// from the named function. Ignored for flow conversions.
	Entrypoint string `json:"entrypoint,omitempty"`

	// Preview optionally writes a rendered image next to the canvas.
	// Format is inferred from the extension (.svg or .png).
	Preview string `json:"preview,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateKind checks that a diagram kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidKind, "invalid kind: %q (must be one of: flow, structure)", kind)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if o.Output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
