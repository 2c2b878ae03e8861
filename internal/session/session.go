// Package session holds the image being edited and the image it started
// from.
//
// A Session owns two images: current, which every editing operation reads
// and replaces, and original, the baseline Reset restores. Only Open,
// CreateCollage and Reset touch original. Operations are all-or-nothing:
// a failing operation returns an error and leaves both images as they
// were.
//
// A Session is not safe for concurrent use; presentation layers drive it
// one request at a time.
package session

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ironsheep/image-editor/internal/collage"
	"github.com/ironsheep/image-editor/internal/imaging"
)

// ErrNoImageLoaded is returned by every operation that needs an image
// before one has been opened or composed.
var ErrNoImageLoaded = errors.New("no image loaded")

// Defaults used when no Option overrides them.
const (
	DefaultFontPath = "arial.ttf"
	DefaultWorkDir  = "."
)

// Session is one editing session.
type Session struct {
	id         string
	current    *imaging.Image
	original   *imaging.Image
	sourceName string

	workDir     string
	fontPath    string
	fontDirs    []string
	jpegQuality int
	logger      *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithWorkDir sets the directory derived artifacts are written to.
func WithWorkDir(dir string) Option {
	return func(s *Session) {
		if dir != "" {
			s.workDir = dir
		}
	}
}

// WithFont sets the TrueType font used by AddText and the directories a
// bare font name is looked up in.
func WithFont(path string, dirs []string) Option {
	return func(s *Session) {
		s.fontPath = path
		if dirs != nil {
			s.fontDirs = dirs
		}
	}
}

// WithLogger sets the logger; operations are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithJPEGQuality sets the quality used whenever a JPEG is written.
func WithJPEGQuality(q int) Option {
	return func(s *Session) {
		s.jpegQuality = q
	}
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		workDir:     DefaultWorkDir,
		fontPath:    DefaultFontPath,
		fontDirs:    imaging.DefaultFontDirs,
		jpegQuality: imaging.DefaultJPEGQuality,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Loaded reports whether an image is loaded.
func (s *Session) Loaded() bool { return s.current != nil }

// SourceName returns the base name of the last opened or created image,
// or "" before the first one.
func (s *Session) SourceName() string { return s.sourceName }

// WorkDir returns the directory derived artifacts are written to.
func (s *Session) WorkDir() string { return s.workDir }

// Current returns a copy of the image being edited, or nil.
func (s *Session) Current() *imaging.Image {
	if s.current == nil {
		return nil
	}
	return s.current.Clone()
}

// Original returns a copy of the reset baseline, or nil.
func (s *Session) Original() *imaging.Image {
	if s.original == nil {
		return nil
	}
	return s.original.Clone()
}

// Info describes the current image.
func (s *Session) Info() (*imaging.Info, error) {
	if s.current == nil {
		return nil, ErrNoImageLoaded
	}
	info := imaging.Describe(s.current)
	info.Name = s.sourceName
	return info, nil
}

// Open decodes path and makes it both the current and the original image.
// On failure the session is left exactly as it was.
func (s *Session) Open(path string) (*imaging.Info, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}

	s.replaceBaseline(img, filepath.Base(path))
	s.logger.Info("opened image", "path", path, "width", img.Width(), "height", img.Height(), "mode", img.Mode())
	return s.Info()
}

// Reset discards every edit since the last Open or CreateCollage.
func (s *Session) Reset() error {
	if s.original == nil {
		return ErrNoImageLoaded
	}
	s.current = s.original.Clone()
	s.logger.Debug("reset to original")
	return nil
}

// Resize scales the current image to exactly width x height.
func (s *Session) Resize(width, height int) error {
	return s.apply("resize", func(img *imaging.Image) (*imaging.Image, error) {
		return imaging.Resize(img, width, height)
	}, "width", width, "height", height)
}

// Crop keeps the box (left, top)-(right, bottom), right and bottom
// exclusive.
func (s *Session) Crop(left, top, right, bottom int) error {
	return s.apply("crop", func(img *imaging.Image) (*imaging.Image, error) {
		return imaging.Crop(img, left, top, right, bottom)
	}, "box", []int{left, top, right, bottom})
}

// Rotate turns the current image counter-clockwise, growing the canvas to
// fit.
func (s *Session) Rotate(degrees float64) error {
	return s.apply("rotate", func(img *imaging.Image) (*imaging.Image, error) {
		return imaging.Rotate(img, degrees), nil
	}, "degrees", degrees)
}

// Flip mirrors the current image.
func (s *Session) Flip(axis imaging.Axis) error {
	return s.apply("flip", func(img *imaging.Image) (*imaging.Image, error) {
		return imaging.Flip(img, axis), nil
	}, "axis", axis)
}

// AdjustBrightness scales brightness; 1.0 is unchanged, 0.0 is black.
func (s *Session) AdjustBrightness(factor float64) error {
	return s.enhance(imaging.Brightness, factor)
}

// AdjustContrast scales contrast; 0.0 is flat gray.
func (s *Session) AdjustContrast(factor float64) error {
	return s.enhance(imaging.Contrast, factor)
}

// AdjustColor scales saturation; 0.0 is grayscale.
func (s *Session) AdjustColor(factor float64) error {
	return s.enhance(imaging.Color, factor)
}

// AdjustSharpness scales sharpness; 0.0 is smoothed, above 1.0 sharpens.
func (s *Session) AdjustSharpness(factor float64) error {
	return s.enhance(imaging.Sharpness, factor)
}

// Adjust applies the named enhancement.
func (s *Session) Adjust(dim imaging.Dimension, factor float64) error {
	return s.enhance(dim, factor)
}

func (s *Session) enhance(dim imaging.Dimension, factor float64) error {
	return s.apply("adjust "+string(dim), func(img *imaging.Image) (*imaging.Image, error) {
		return imaging.Enhance(img, dim, factor)
	}, "factor", factor)
}

// ApplyFilter applies one of the named convolution filters,
// case-insensitively.
func (s *Session) ApplyFilter(name string) error {
	return s.apply("filter", func(img *imaging.Image) (*imaging.Image, error) {
		f, err := imaging.ParseFilter(name)
		if err != nil {
			return nil, err
		}
		return imaging.ApplyFilter(img, f)
	}, "filter", name)
}

// ConvertMode converts the current image to the named colour mode.
func (s *Session) ConvertMode(name string) error {
	return s.apply("convert mode", func(img *imaging.Image) (*imaging.Image, error) {
		mode, err := imaging.ParseMode(name)
		if err != nil {
			return nil, err
		}
		return imaging.Convert(img, mode), nil
	}, "mode", name)
}

// AddText draws text with its top-left corner at pos. The configured font
// is loaded at size pixels; when it is unavailable the bitmap fallback is
// used at its fixed size. The returned kind tells which one was drawn
// with.
func (s *Session) AddText(text string, pos image.Point, size float64, c color.Color) (imaging.FontKind, error) {
	kind := imaging.FontFallback
	err := s.apply("add text", func(img *imaging.Image) (*imaging.Image, error) {
		f := imaging.ResolveFont(s.fontPath, size, s.fontDirs)
		if f.Kind == imaging.FontFallback {
			s.logger.Debug("using fallback font", "font", s.fontPath, "reason", f.Err)
		}
		kind = f.Kind
		return imaging.DrawText(img, text, pos, f, c), nil
	}, "text", text, "x", pos.X, "y", pos.Y, "size", size)
	return kind, err
}

// DrawRectangle outlines box (both corners inclusive).
func (s *Session) DrawRectangle(box imaging.Box, c color.Color, width int) error {
	return s.apply("draw rectangle", func(img *imaging.Image) (*imaging.Image, error) {
		return imaging.DrawRectangle(img, box, c, width)
	}, "box", box, "width", width)
}

// DrawCircle outlines the circle of the given radius around center.
func (s *Session) DrawCircle(center image.Point, radius int, c color.Color, width int) error {
	return s.apply("draw circle", func(img *imaging.Image) (*imaging.Image, error) {
		if radius < 0 {
			return nil, fmt.Errorf("%w: radius %d is negative", imaging.ErrInvalidGeometry, radius)
		}
		return imaging.DrawEllipse(img, imaging.CircleBox(center, radius), c, width)
	}, "center", center, "radius", radius, "width", width)
}

// DrawLine draws a straight segment between two points.
func (s *Session) DrawLine(from, to image.Point, c color.Color, width int) error {
	return s.apply("draw line", func(img *imaging.Image) (*imaging.Image, error) {
		return imaging.DrawLine(img, from, to, c, width)
	}, "from", from, "to", to, "width", width)
}

// CreateCollage tiles the images at spec.Paths and makes the result the
// new current and original image, named collage.jpg. Paths that cannot be
// loaded are skipped; if none load the session is unchanged.
func (s *Session) CreateCollage(spec collage.Spec) (*collage.Result, error) {
	result, err := collage.Build(spec, imaging.NewImageCache(), s.logger)
	if err != nil {
		return nil, err
	}
	s.replaceBaseline(result.Image, collage.DefaultName)
	s.logger.Info("created collage", "images", len(spec.Paths)-len(result.Skipped), "skipped", len(result.Skipped))
	return result, nil
}

// SampleColor reports the colour of one pixel of the current image.
func (s *Session) SampleColor(x, y int) (*imaging.ColorResult, error) {
	if s.current == nil {
		return nil, ErrNoImageLoaded
	}
	return imaging.SampleColor(s.current, x, y)
}

// Preview renders the current image as a base64 PNG.
func (s *Session) Preview(opts imaging.PreviewOptions) (*imaging.PreviewResult, error) {
	if s.current == nil {
		return nil, ErrNoImageLoaded
	}
	return imaging.Preview(s.current, opts)
}

// apply runs fn on the current image and installs its result. Errors and
// panics from fn leave the session untouched.
func (s *Session) apply(op string, fn func(*imaging.Image) (*imaging.Image, error), attrs ...any) (err error) {
	if s.current == nil {
		return ErrNoImageLoaded
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s failed: %v", op, r)
			s.logger.Error("operation panicked", "op", op, "panic", r)
		}
	}()

	next, err := fn(s.current)
	if err != nil {
		s.logger.Debug("operation failed", "op", op, "error", err)
		return err
	}

	s.current = next
	s.logger.Debug("applied operation", append([]any{"op", op, "width", next.Width(), "height", next.Height()}, attrs...)...)
	return nil
}

func (s *Session) replaceBaseline(img *imaging.Image, name string) {
	s.current = img
	s.original = img.Clone()
	s.sourceName = name
}
