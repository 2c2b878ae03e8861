package recipe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/ironsheep/image-editor/internal/collage"
	"github.com/ironsheep/image-editor/internal/config"
	"github.com/ironsheep/image-editor/internal/imaging"
	"github.com/ironsheep/image-editor/internal/session"
)

// StepResult records the outcome of one step.
type StepResult struct {
	Index    int
	Op       string
	Message  string
	Err      error
	Duration time.Duration
}

// Report lists what a run did, step by step.
type Report struct {
	Steps []StepResult
}

// Failed returns the steps that returned an error.
func (r *Report) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// Runner applies recipes to one session.
type Runner struct {
	session  *session.Session
	defaults *config.Config
	logger   *slog.Logger
}

// NewRunner returns a runner for sess. cfg supplies the values used for
// omitted step fields; nil means config.Default().
func NewRunner(sess *session.Session, cfg *config.Config, logger *slog.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{session: sess, defaults: cfg, logger: logger}
}

// Run executes rec's steps in order. It stops at the first failure unless
// rec.ContinueOnError is set, and between steps when ctx is done. The
// report covers every step that ran.
func (r *Runner) Run(ctx context.Context, rec *Recipe) (*Report, error) {
	report := &Report{}
	var errs []error

	for i, step := range rec.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		op, ok := operations[step.Op]
		if !ok {
			return report, fmt.Errorf("%w: step %d: unknown op %q", ErrInvalidRecipe, i+1, step.Op)
		}

		start := time.Now()
		msg, err := op(r, step)
		res := StepResult{Index: i + 1, Op: step.Op, Message: msg, Err: err, Duration: time.Since(start)}
		report.Steps = append(report.Steps, res)

		if err != nil {
			r.logger.Warn("step failed", "step", res.Index, "op", step.Op, "error", err)
			err = fmt.Errorf("step %d (%s): %w", res.Index, step.Op, err)
			if !rec.ContinueOnError {
				return report, err
			}
			errs = append(errs, err)
			continue
		}
		r.logger.Info("step done", "step", res.Index, "op", step.Op, "result", msg, "duration", res.Duration)
	}

	return report, errors.Join(errs...)
}

type operation func(*Runner, Step) (string, error)

var operations = map[string]operation{
	"open":           (*Runner).open,
	"info":           (*Runner).info,
	"save":           (*Runner).save,
	"reset":          (*Runner).reset,
	"resize":         (*Runner).resize,
	"crop":           (*Runner).crop,
	"rotate":         (*Runner).rotate,
	"flip":           (*Runner).flip,
	"adjust":         (*Runner).adjust,
	"brightness":     adjustOp(imaging.Brightness),
	"contrast":       adjustOp(imaging.Contrast),
	"color":          adjustOp(imaging.Color),
	"sharpness":      adjustOp(imaging.Sharpness),
	"filter":         (*Runner).filter,
	"convert_mode":   (*Runner).convertMode,
	"grayscale":      (*Runner).grayscale,
	"text":           (*Runner).text,
	"rectangle":      (*Runner).rectangle,
	"circle":         (*Runner).circle,
	"line":           (*Runner).line,
	"thumbnail":      (*Runner).thumbnail,
	"collage":        (*Runner).collage,
	"convert_format": (*Runner).convertFormat,
}

func (r *Runner) open(s Step) (string, error) {
	info, err := r.session.Open(s.Path)
	if err != nil {
		return "", err
	}
	return info.String(), nil
}

func (r *Runner) info(Step) (string, error) {
	info, err := r.session.Info()
	if err != nil {
		return "", err
	}
	return info.String(), nil
}

func (r *Runner) save(s Step) (string, error) {
	path, err := r.session.Save(s.Path)
	return "saved " + path, err
}

func (r *Runner) reset(Step) (string, error) {
	return "reset to original", r.session.Reset()
}

func (r *Runner) resize(s Step) (string, error) {
	return fmt.Sprintf("resized to %dx%d", s.Width, s.Height), r.session.Resize(s.Width, s.Height)
}

func (r *Runner) crop(s Step) (string, error) {
	return fmt.Sprintf("cropped to (%d,%d)-(%d,%d)", s.Left, s.Top, s.Right, s.Bottom),
		r.session.Crop(s.Left, s.Top, s.Right, s.Bottom)
}

func (r *Runner) rotate(s Step) (string, error) {
	return fmt.Sprintf("rotated %g degrees", s.Degrees), r.session.Rotate(s.Degrees)
}

func (r *Runner) flip(s Step) (string, error) {
	axis, err := imaging.ParseAxis(s.Direction)
	if err != nil {
		return "", err
	}
	return "flipped " + axis.String(), r.session.Flip(axis)
}

func (r *Runner) adjust(s Step) (string, error) {
	dim, err := imaging.ParseDimension(s.Dimension)
	if err != nil {
		return "", err
	}
	return adjustOp(dim)(r, s)
}

func adjustOp(dim imaging.Dimension) operation {
	return func(r *Runner, s Step) (string, error) {
		if s.Factor == nil {
			return "", fmt.Errorf("%s needs a factor", dim)
		}
		return fmt.Sprintf("%s x%g", dim, *s.Factor), r.session.Adjust(dim, *s.Factor)
	}
}

func (r *Runner) filter(s Step) (string, error) {
	return "applied " + s.Filter, r.session.ApplyFilter(s.Filter)
}

func (r *Runner) convertMode(s Step) (string, error) {
	return "converted to " + s.Mode, r.session.ConvertMode(s.Mode)
}

func (r *Runner) grayscale(Step) (string, error) {
	return "converted to grayscale", r.session.ConvertMode(string(imaging.ModeL))
}

func (r *Runner) text(s Step) (string, error) {
	c, err := imaging.ParseColor(s.Color)
	if err != nil {
		return "", err
	}
	size := s.Size
	if size == 0 {
		size = r.defaults.FontSize
	}
	kind, err := r.session.AddText(s.Text, image.Pt(s.X, s.Y), size, c)
	return fmt.Sprintf("added text %q (%s font)", s.Text, kind), err
}

// strokeStyle returns the step's colour (default black) and stroke width
// (default 1).
func (s Step) strokeStyle() (color.NRGBA, int, error) {
	c, err := imaging.ParseColor(s.Color)
	if err != nil {
		return color.NRGBA{}, 0, err
	}
	width := s.Stroke
	if width == 0 {
		width = 1
	}
	return c, width, nil
}

func (r *Runner) rectangle(s Step) (string, error) {
	c, width, err := s.strokeStyle()
	if err != nil {
		return "", err
	}
	box := imaging.Box{X0: s.X1, Y0: s.Y1, X1: s.X2, Y1: s.Y2}
	return "drew rectangle " + box.String(), r.session.DrawRectangle(box, c, width)
}

func (r *Runner) circle(s Step) (string, error) {
	c, width, err := s.strokeStyle()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("drew circle at %d,%d r=%d", s.X, s.Y, s.Radius),
		r.session.DrawCircle(image.Pt(s.X, s.Y), s.Radius, c, width)
}

func (r *Runner) line(s Step) (string, error) {
	c, width, err := s.strokeStyle()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("drew line (%d,%d)-(%d,%d)", s.X1, s.Y1, s.X2, s.Y2),
		r.session.DrawLine(image.Pt(s.X1, s.Y1), image.Pt(s.X2, s.Y2), c, width)
}

func (r *Runner) thumbnail(s Step) (string, error) {
	w, h := s.Width, s.Height
	if w == 0 {
		w = r.defaults.ThumbnailWidth
	}
	if h == 0 {
		h = r.defaults.ThumbnailHeight
	}
	path, err := r.session.CreateThumbnail(w, h)
	return "thumbnail " + path, err
}

func (r *Runner) collage(s Step) (string, error) {
	spec := collage.Spec{Paths: s.Paths, Columns: s.Columns, Padding: r.defaults.CollagePadding}
	if spec.Columns == 0 {
		spec.Columns = r.defaults.CollageColumns
	}
	if s.Padding != nil {
		spec.Padding = *s.Padding
	}
	res, err := r.session.CreateCollage(spec)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("collage %dx%d from %d images, %d skipped",
		res.Layout.Width, res.Layout.Height, len(spec.Paths)-len(res.Skipped), len(res.Skipped)), nil
}

func (r *Runner) convertFormat(s Step) (string, error) {
	path, err := r.session.ConvertFormat(s.Format)
	return "converted " + path, err
}
