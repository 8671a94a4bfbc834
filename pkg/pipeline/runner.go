package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mfreire/canvasflow/pkg/canvas"
	"github.com/mfreire/canvasflow/pkg/config"
	"github.com/mfreire/canvasflow/pkg/errors"
	"github.com/mfreire/canvasflow/pkg/flow"
	"github.com/mfreire/canvasflow/pkg/render"
	"github.com/mfreire/canvasflow/pkg/structure"
)

// Runner executes the conversion pipeline. It holds only configuration
// and a logger - conversion scratch state lives in per-run adapters, so
// multiple goroutines can safely share one Runner.
type Runner struct {
	Config config.Config
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to the package
// default.
func NewRunner(cfg config.Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Config: cfg,
		Logger: logger,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Canvas is the converted diagram.
	Canvas *canvas.Canvas

	// Output is the path the canvas was written to, with the .canvas
	// extension applied.
	Output string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ParseTime   time.Duration
	ConvertTime time.Duration
	WriteTime   time.Duration
}

// Execute runs the complete parse → convert → write pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input not found: %s", opts.Input)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to read input: %s", opts.Input)
	}
	result.Stats.ParseTime = time.Since(parseStart)

	// Stage 2: Convert
	convertStart := time.Now()
	c, err := r.Convert(data, opts)
	if err != nil {
		return nil, err
	}
	result.Canvas = c
	result.Stats.ConvertTime = time.Since(convertStart)
	result.Stats.NodeCount = len(c.Nodes)
	result.Stats.EdgeCount = len(c.Edges)

	logger.Info("converted diagram",
		"kind", opts.Kind,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ConvertTime)

	// Stage 3: Write
	writeStart := time.Now()
	if err := canvas.WriteFile(c, opts.Output); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to write canvas")
	}
	result.Output = canvasPath(opts.Output)
	result.Stats.WriteTime = time.Since(writeStart)

	logger.Info("wrote canvas", "path", result.Output, "duration", result.Stats.WriteTime)

	if opts.Preview != "" {
		if err := r.writePreview(c, opts.Preview); err != nil {
			return nil, err
		}
		logger.Info("wrote preview", "path", opts.Preview)
	}

	return result, nil
}

// Convert decodes a provider analysis document and builds the canvas for
// it. Each call uses a fresh adapter, so Convert is safe for concurrent
// use.
func (r *Runner) Convert(data []byte, opts Options) (*canvas.Canvas, error) {
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	switch opts.Kind {
	case KindFlow:
		var analysis flow.Analysis
		if err := json.Unmarshal(data, &analysis); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse flow analysis")
		}
		adapter := flow.NewAdapter(logger)
		adapter.NodeWidth = r.Config.Flow.NodeWidth
		adapter.NodeHeight = r.Config.Flow.NodeHeight
		adapter.HSpacing = r.Config.Flow.HSpacing
		adapter.VSpacing = r.Config.Flow.VSpacing
		adapter.DataSectionX = r.Config.Flow.DataSectionX
		return adapter.Convert(analysis), nil

	case KindStructure:
		var root structure.Element
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse structure tree")
		}
		root.LinkParents()
		adapter := structure.NewAdapter()
		adapter.NodeWidth = r.Config.Structure.NodeWidth
		adapter.NodeHeight = r.Config.Structure.NodeHeight
		adapter.Spacing = r.Config.Structure.Spacing
		adapter.GroupPadding = r.Config.Structure.GroupPadding
		adapter.IncludeDocs = r.Config.Structure.IncludeDocs
		adapter.IncludeParams = r.Config.Structure.IncludeParams
		adapter.MaxDepth = r.Config.Structure.MaxDepth
		if opts.Entrypoint != "" {
			return adapter.ConvertEntrypoint(&root, opts.Entrypoint), nil
		}
		return adapter.Convert(&root), nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidKind, "invalid kind: %q", opts.Kind)
	}
}

// writePreview renders the canvas to the image format implied by the
// preview path's extension.
func (r *Runner) writePreview(c *canvas.Canvas, path string) error {
	dot := render.ToDOT(c)

	var (
		img []byte
		err error
	)
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case PreviewSVG:
		img, err = render.RenderSVG(dot)
	case PreviewPNG:
		img, err = render.RenderPNG(dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid preview format: %q (must be .svg or .png)", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to render preview")
	}

	if err := os.WriteFile(path, img, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to write preview: %s", path)
	}
	return nil
}

// canvasPath mirrors the extension handling of canvas.WriteFile.
func canvasPath(path string) string {
	if filepath.Ext(path) == canvas.FileExtension {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + canvas.FileExtension
}
