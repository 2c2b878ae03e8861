package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor/internal/recipe"
)

func newRunCmd(a *app) *cobra.Command {
	var continueOnError bool

	cmd := &cobra.Command{
		Use:   "run <recipe.yaml>",
		Short: "Replay a YAML recipe of editing steps",
		Example: `  # recipe.yaml
  steps:
    - op: open
      path: photo.jpg
    - op: resize
      width: 400
      height: 300
    - op: save

  image-editor run recipe.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recipe.Load(args[0])
			if err != nil {
				return err
			}
			if continueOnError {
				rec.ContinueOnError = true
			}

			report, err := recipe.NewRunner(a.newSession(), a.cfg, a.logger).Run(cmd.Context(), rec)
			out := cmd.OutOrStdout()
			for _, step := range report.Steps {
				if step.Err != nil {
					fmt.Fprintf(out, "%2d. %-14s FAILED: %v\n", step.Index, step.Op, step.Err)
					continue
				}
				fmt.Fprintf(out, "%2d. %-14s %s\n", step.Index, step.Op, step.Message)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "keep going after a failed step")

	return cmd
}
