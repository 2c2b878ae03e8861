// Package cli wires configuration, logging and the editing session into
// the image-editor command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor/internal/config"
	"github.com/ironsheep/image-editor/internal/imaging"
	"github.com/ironsheep/image-editor/internal/session"
)

// app carries what every subcommand needs once the root has run its
// pre-run hook.
type app struct {
	configPath string
	logLevel   string
	workDir    string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the command tree. Without a subcommand it starts the
// interactive shell.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "image-editor",
		Short: "Interactive raster image editor",
		Long: `image-editor opens an image, applies a sequence of edits and saves the
results. Edits always apply to the current image; the original stays
available until you reset.

Run it without arguments for the numbered menu, use "serve" to drive the
same editor over MCP, or "run" to replay a YAML recipe.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, a)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file (default $"+config.EnvConfig+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVarP(&a.workDir, "work-dir", "w", "", "directory for saved, thumbnail and converted files")

	cmd.AddCommand(
		newShellCmd(a),
		newServeCmd(a),
		newRunCmd(a),
		newCollageCmd(a),
		newSampleCmd(a),
	)

	return cmd
}

// setup loads the configuration, applies flag overrides and installs the
// logger. Logs go to stderr; stdout belongs to the shell and MCP.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.workDir != "" {
		cfg.WorkDir = a.workDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	if err := cfg.EnsureWorkDir(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", "work_dir", cfg.WorkDir, "font", cfg.FontPath, "log_level", cfg.LogLevel)
	return nil
}

// fontDirs puts the configured search directories ahead of the platform
// defaults.
func (a *app) fontDirs() []string {
	return append(append([]string{}, a.cfg.FontDirs...), imaging.DefaultFontDirs...)
}

func (a *app) newSession() *session.Session {
	return session.New(
		session.WithWorkDir(a.cfg.WorkDir),
		session.WithFont(a.cfg.FontPath, a.fontDirs()),
		session.WithJPEGQuality(a.cfg.JPEGQuality),
		session.WithLogger(a.logger),
	)
}
