// Package collage tiles several images into one grid-aligned composite.
//
// The layout is computed from the largest width and height among the
// inputs: every cell is maxW x maxH, cells are separated and surrounded by
// a fixed padding, and images are pasted at native size into the top-left
// corner of their cell in row-major order. Smaller images leave a gap
// rather than being centered or scaled.
package collage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"

	imgpkg "github.com/ironsheep/image-editor/internal/imaging"
)

// DefaultName is the source name given to a freshly built collage.
const DefaultName = "collage.jpg"

// Background is the canvas colour behind and between the tiles.
var Background = color.NRGBA{255, 255, 255, 255}

var (
	// ErrNoValidImages means none of the requested paths could be loaded.
	ErrNoValidImages = errors.New("no valid images found")

	// ErrInvalidSpec reports a column count below 1 or a negative padding.
	ErrInvalidSpec = errors.New("invalid collage spec")
)

// Spec describes one collage request.
type Spec struct {
	// Paths are loaded in order; duplicates are placed once per mention.
	Paths []string `json:"paths" yaml:"paths"`

	// Columns is the number of cells per row, at least 1.
	Columns int `json:"columns" yaml:"columns"`

	// Padding is the gap in pixels around and between cells, at least 0.
	Padding int `json:"padding" yaml:"padding"`
}

// Validate checks the grid parameters. Paths are checked while loading.
func (s Spec) Validate() error {
	if s.Columns < 1 {
		return fmt.Errorf("%w: columns must be at least 1, got %d", ErrInvalidSpec, s.Columns)
	}
	if s.Padding < 0 {
		return fmt.Errorf("%w: padding must be non-negative, got %d", ErrInvalidSpec, s.Padding)
	}
	return nil
}

// Loader resolves a path to a decoded image. *imaging.ImageCache satisfies
// it.
type Loader interface {
	Load(path string) (*imgpkg.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*imgpkg.Image, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*imgpkg.Image, error) { return f(path) }

// Skip records a path that could not be loaded.
type Skip struct {
	Path string
	Err  error
}

// Result is a composed collage together with how it was laid out.
type Result struct {
	Image   *imgpkg.Image
	Layout  *Layout
	Skipped []Skip
}

// Build loads every path in spec and composes the ones that load.
//
// Paths that fail to load are logged, recorded in Result.Skipped and
// otherwise ignored. If none load, Build returns ErrNoValidImages.
func Build(spec Spec, loader Loader, logger *slog.Logger) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(spec.Paths) == 0 {
		return nil, fmt.Errorf("%w: no image paths provided", ErrNoValidImages)
	}
	if logger == nil {
		logger = slog.Default()
	}

	images := make([]*imgpkg.Image, 0, len(spec.Paths))
	var skipped []Skip
	for _, path := range spec.Paths {
		img, err := loader.Load(path)
		if err != nil {
			logger.Warn("skipping collage image", "path", path, "error", err)
			skipped = append(skipped, Skip{Path: path, Err: err})
			continue
		}
		images = append(images, img)
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: all %d paths failed to load", ErrNoValidImages, len(spec.Paths))
	}

	out, layout, err := Compose(images, spec.Columns, spec.Padding)
	if err != nil {
		return nil, err
	}

	logger.Debug("collage composed",
		"images", len(images),
		"skipped", len(skipped),
		"columns", layout.Columns,
		"rows", layout.Rows,
		"width", layout.Width,
		"height", layout.Height)

	return &Result{Image: out, Layout: layout, Skipped: skipped}, nil
}

// Compose pastes images onto a white RGB canvas following ComputeLayout.
// Pixels are copied as is, alpha included, before the canvas is flattened
// to RGB.
func Compose(images []*imgpkg.Image, columns, padding int) (*imgpkg.Image, *Layout, error) {
	sizes := make([]image.Point, len(images))
	for i, img := range images {
		sizes[i] = img.Size()
	}

	layout, err := ComputeLayout(sizes, columns, padding)
	if err != nil {
		return nil, nil, err
	}

	canvas := imaging.New(layout.Width, layout.Height, Background)
	for i, img := range images {
		canvas = imaging.Paste(canvas, img.Pixels(), layout.Positions[i])
	}
	return imgpkg.NewImage(canvas, imgpkg.ModeRGB), layout, nil
}
