package cli

import (
	"github.com/spf13/cobra"

	"github.com/mfreire/canvasflow/internal/server"
)

// serveCommand creates the serve command for running the conversion API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP API",
		Long: `Run the conversion HTTP API.

Endpoints:

  POST /v1/convert/flow       flow analysis JSON -> canvas JSON
  POST /v1/convert/structure  structure tree JSON -> canvas JSON
  GET  /healthz               liveness probe

The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(configPath)
			if err != nil {
				return err
			}
			srv := server.New(runner, c.Logger)
			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with layout metrics")

	return cmd
}
