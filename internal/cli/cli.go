// Package cli implements the canvasflow command-line interface.
//
// This package provides commands for converting provider analysis documents
// into canvas diagrams, previewing canvas files as images, and serving the
// conversion API. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - flow: Convert a flow analysis JSON into a flowchart canvas
//   - structure: Convert a code-structure tree JSON into a hierarchy canvas
//   - preview: Render a canvas file to SVG or PNG
//   - serve: Run the conversion HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mfreire/canvasflow/pkg/buildinfo"
	"github.com/mfreire/canvasflow/pkg/config"
	"github.com/mfreire/canvasflow/pkg/pipeline"
)

// appName is the application name used for display.
const appName = "canvasflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Canvasflow turns analysis data into canvas diagrams",
		Long:         `Canvasflow converts flow analyses and code-structure trees into JSON Canvas diagrams with automatic layout, ready to open in any canvas viewer.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.flowCommand())
	root.AddCommand(c.structureCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner from an optional config file.
func (c *CLI) newRunner(configPath string) (*pipeline.Runner, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cfg, c.Logger), nil
}

// outputPath derives a default .canvas path from the input file name.
func outputPath(input, output string) string {
	if output != "" {
		return output
	}
	if i := strings.LastIndex(input, "."); i > 0 {
		return input[:i] + ".canvas"
	}
	return input + ".canvas"
}
