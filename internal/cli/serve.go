package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor as an MCP tool server over stdio",
		Long: `Starts an MCP (Model Context Protocol) server on stdin/stdout.

One editing session lives for the lifetime of the process; every tool call
operates on it. Logs are written to stderr.`,
		Example: `  # Register with an MCP client
  image-editor serve --work-dir /tmp/edits`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(a.newSession(),
				server.WithDefaults(a.cfg),
				server.WithLogger(a.logger),
				server.WithVersion(cmd.Root().Version),
			)
			a.logger.Info("MCP server ready", "work_dir", a.cfg.WorkDir)
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
