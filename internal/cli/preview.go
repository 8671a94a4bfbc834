package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfreire/canvasflow/pkg/canvas"
	"github.com/mfreire/canvasflow/pkg/errors"
	"github.com/mfreire/canvasflow/pkg/render"
)

// previewCommand creates the preview command for rendering canvas files.
func (c *CLI) previewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview [diagram.canvas]",
		Short: "Render a canvas file to SVG or PNG",
		Long: `Render a canvas file to SVG or PNG.

Previews are approximations: node positions and sizes are exact, but
markdown in node text is shown raw and group frames render as plain
boxes. The output format is inferred from the output extension and
defaults to SVG next to the input file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output image file (.svg or .png)")

	return cmd
}

// runPreview loads the canvas and renders it to the chosen image format.
func (c *CLI) runPreview(input, output string) error {
	if output == "" {
		output = strings.TrimSuffix(input, canvas.FileExtension) + ".svg"
	}

	diagram, err := canvas.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to read canvas: %s", input)
	}

	if len(diagram.Nodes) == 0 {
		printWarning("canvas has no nodes; preview will be empty")
	}

	dot := render.ToDOT(diagram)

	var img []byte
	switch filepath.Ext(output) {
	case ".svg":
		img, err = render.RenderSVG(dot)
	case ".png":
		img, err = render.RenderPNG(dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid preview format: %q (must be .svg or .png)", filepath.Ext(output))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to render preview")
	}

	if err := os.WriteFile(output, img, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to write preview: %s", output)
	}

	printSuccess("Rendered %s", input)
	printFile(output)
	return nil
}
