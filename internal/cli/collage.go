package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor/internal/collage"
)

func newCollageCmd(a *app) *cobra.Command {
	var (
		columns int
		padding int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "collage <image>...",
		Short: "Tile images into a grid and save the result",
		Long: `Tiles the given images into a grid of equal cells on a white background.
Every cell is as large as the largest image; images sit at the top-left
of their cell. Images that cannot be opened are skipped.`,
		Example: `  image-editor collage a.jpg b.jpg c.jpg --columns 3 --output sheet.png`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("columns") {
				columns = a.cfg.CollageColumns
			}
			if !cmd.Flags().Changed("padding") {
				padding = a.cfg.CollagePadding
			}
			if output == "" {
				output = filepath.Join(a.cfg.WorkDir, collage.DefaultName)
			}

			sess := a.newSession()
			res, err := sess.CreateCollage(collage.Spec{Paths: args, Columns: columns, Padding: padding})
			if err != nil {
				return err
			}
			path, err := sess.Save(output)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, skip := range res.Skipped {
				fmt.Fprintf(out, "skipped %s: %v\n", skip.Path, skip.Err)
			}
			fmt.Fprintf(out, "collage %dx%d (%d x %d cells) saved to %s\n",
				res.Layout.Width, res.Layout.Height, res.Layout.Columns, res.Layout.Rows, path)
			return nil
		},
	}

	cmd.Flags().IntVar(&columns, "columns", 2, "cells per row")
	cmd.Flags().IntVar(&padding, "padding", 10, "gap in pixels around and between cells")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <work-dir>/collage.jpg)")

	return cmd
}
