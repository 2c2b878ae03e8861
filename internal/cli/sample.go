package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor/internal/imaging"
)

func newSampleCmd(a *app) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "sample [output]",
		Short: "Write a test card to try the editor with",
		Long: `Draws a white test card with a blue rectangle, a red ellipse, a green
diagonal and the caption "Test Image", and saves it. The format follows the
file extension.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := filepath.Join(a.cfg.WorkDir, "test_image.png")
			if len(args) == 1 {
				output = args[0]
			}

			f := imaging.ResolveFont(a.cfg.FontPath, a.cfg.FontSize*float64(height)/600, a.fontDirs())
			if f.Kind == imaging.FontFallback {
				a.logger.Debug("using fallback font", "font", a.cfg.FontPath, "reason", f.Err)
			}

			img, err := imaging.SampleImage(width, height, f)
			if err != nil {
				return err
			}
			if err := imaging.Save(img, output, imaging.EncodeOptions{JPEGQuality: a.cfg.JPEGQuality}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "test image created: %s (%dx%d, %s font)\n", output, width, height, f.Kind)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 600, "image height")

	return cmd
}
