// Package config loads editor settings from defaults, an optional YAML
// file and environment variables, in that order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfig   = "IMAGE_EDITOR_CONFIG"
	EnvLogLevel = "IMAGE_EDITOR_LOG_LEVEL"
	EnvWorkDir  = "IMAGE_EDITOR_WORK_DIR"
	EnvFont     = "IMAGE_EDITOR_FONT"
)

// Config holds every tunable setting.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// WorkDir receives saved, thumbnail and converted files.
	WorkDir string `yaml:"work_dir"`

	// FontPath is the TrueType font used for text; a bare name is looked
	// up in FontDirs.
	FontPath string   `yaml:"font_path"`
	FontDirs []string `yaml:"font_dirs"`
	FontSize float64  `yaml:"font_size"`

	ThumbnailWidth  int `yaml:"thumbnail_width"`
	ThumbnailHeight int `yaml:"thumbnail_height"`

	CollageColumns int `yaml:"collage_columns"`
	CollagePadding int `yaml:"collage_padding"`

	JPEGQuality int `yaml:"jpeg_quality"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		WorkDir:         ".",
		FontPath:        "arial.ttf",
		FontSize:        40,
		ThumbnailWidth:  128,
		ThumbnailHeight: 128,
		CollageColumns:  2,
		CollagePadding:  10,
		JPEGQuality:     75,
	}
}

// Load returns the defaults overlaid with the YAML file at path and then
// the environment. An empty path falls back to $IMAGE_EDITOR_CONFIG; if
// that is empty too, no file is read. A path that was asked for but does
// not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvWorkDir); v != "" {
		c.WorkDir = v
	}
	if v := os.Getenv(EnvFont); v != "" {
		c.FontPath = v
	}
}

// Validate checks ranges that would otherwise fail later, mid-session.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %g", c.FontSize)
	}
	if c.ThumbnailWidth < 1 || c.ThumbnailHeight < 1 {
		return fmt.Errorf("thumbnail size must be at least 1x1, got %dx%d", c.ThumbnailWidth, c.ThumbnailHeight)
	}
	if c.CollageColumns < 1 {
		return fmt.Errorf("collage_columns must be at least 1, got %d", c.CollageColumns)
	}
	if c.CollagePadding < 0 {
		return fmt.Errorf("collage_padding must be non-negative, got %d", c.CollagePadding)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be 1-100, got %d", c.JPEGQuality)
	}
	return nil
}

// EnsureWorkDir creates the work directory if it is missing.
func (c *Config) EnsureWorkDir() error {
	if err := os.MkdirAll(filepath.Clean(c.WorkDir), 0o755); err != nil {
		return fmt.Errorf("failed to create work dir: %w", err)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q, use debug, info, warn or error", name)
}
