package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor/internal/shell"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive numbered menu (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, a)
		},
	}
}

func runShell(cmd *cobra.Command, a *app) error {
	sh := shell.New(a.newSession(), cmd.InOrStdin(), cmd.OutOrStdout(), shell.Defaults{
		FontSize:        a.cfg.FontSize,
		ThumbnailWidth:  a.cfg.ThumbnailWidth,
		ThumbnailHeight: a.cfg.ThumbnailHeight,
		CollageColumns:  a.cfg.CollageColumns,
		CollagePadding:  a.cfg.CollagePadding,
	})
	return sh.Run(cmd.Context())
}
