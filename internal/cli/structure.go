package cli

import (
	"github.com/spf13/cobra"

	"github.com/mfreire/canvasflow/pkg/pipeline"
)

// structureCommand creates the structure command for converting code trees.
func (c *CLI) structureCommand() *cobra.Command {
	var (
		output     string
		configPath string
		preview    string
		entrypoint string
	)

	cmd := &cobra.Command{
		Use:   "structure [tree.json]",
		Short: "Convert a code-structure tree into a hierarchy canvas",
		Long: `Convert a code-structure tree into a hierarchy canvas.

The input is a JSON element tree produced by a code analyzer: modules,
classes, functions and the calls between them. Modules and classes become
labeled groups, callables become nodes, and calls become edges.

With --entrypoint the canvas is restricted to the elements reachable from
the named function, plus its direct callers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, pipeline.Options{
				Kind:       pipeline.KindStructure,
				Input:      args[0],
				Output:     outputPath(args[0], output),
				Entrypoint: entrypoint,
				Preview:    preview,
			}, configPath)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output canvas file")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with layout metrics")
	cmd.Flags().StringVar(&preview, "preview", "", "also render a preview image (.svg or .png)")
	cmd.Flags().StringVarP(&entrypoint, "entrypoint", "e", "", "restrict to elements reachable from this function")

	return cmd
}
