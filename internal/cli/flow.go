package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreire/canvasflow/pkg/pipeline"
)

// flowCommand creates the flow command for converting flow analyses.
func (c *CLI) flowCommand() *cobra.Command {
	var (
		output     string
		configPath string
		preview    string
	)

	cmd := &cobra.Command{
		Use:   "flow [analysis.json]",
		Short: "Convert a flow analysis into a flowchart canvas",
		Long: `Convert a flow analysis into a flowchart canvas.

The input is a JSON document describing steps, connections, sub-flows and
data formats. The main flow is laid out top-to-bottom with horizontal
branch arms; sub-flows and data formats get their own columns to the
right.

The output path defaults to the input name with a .canvas extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, pipeline.Options{
				Kind:    pipeline.KindFlow,
				Input:   args[0],
				Output:  outputPath(args[0], output),
				Preview: preview,
			}, configPath)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output canvas file")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with layout metrics")
	cmd.Flags().StringVar(&preview, "preview", "", "also render a preview image (.svg or .png)")

	return cmd
}

// runConvert executes the pipeline for one conversion command with spinner
// and summary output.
func (c *CLI) runConvert(cmd *cobra.Command, opts pipeline.Options, configPath string) error {
	runner, err := c.newRunner(configPath)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Converting %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		spinner.StopWithError("Conversion failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Converted %s", opts.Input))

	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ConvertTime)
	printFile(result.Output)
	if opts.Preview != "" {
		printFile(opts.Preview)
	}
	printNextStep("Open the diagram", "open "+result.Output)

	return nil
}
