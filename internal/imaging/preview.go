package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PreviewOptions control how an image is rendered for inspection.
type PreviewOptions struct {
	// MaxSize bounds the longer side of the preview; 0 keeps full size.
	MaxSize int

	// GridSpacing draws grid lines every GridSpacing source pixels; 0
	// disables the grid.
	GridSpacing int

	// GridLabels writes "x,y" at each grid intersection.
	GridLabels bool

	// GridColor is the line colour; nil means semi-transparent red.
	GridColor color.Color
}

// PreviewResult is a PNG rendering of an image ready for transport.
type PreviewResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Scale       float64 `json:"scale"`
	GridSpacing int     `json:"grid_spacing,omitempty"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// Preview renders img as a base64 PNG, optionally downscaled and with a
// coordinate grid. Grid positions and labels are in source pixels, so they
// stay valid for crop and draw coordinates even when the preview is scaled.
func Preview(img *Image, opts PreviewOptions) (*PreviewResult, error) {
	if opts.MaxSize < 0 || opts.GridSpacing < 0 {
		return nil, fmt.Errorf("%w: preview size and grid spacing must be non-negative", ErrInvalidGeometry)
	}

	dst := toNRGBA(img)
	scale := 1.0
	if opts.MaxSize > 0 && (dst.Rect.Dx() > opts.MaxSize || dst.Rect.Dy() > opts.MaxSize) {
		dst = imaging.Fit(dst, opts.MaxSize, opts.MaxSize, imaging.Lanczos)
		scale = float64(dst.Rect.Dx()) / float64(img.Width())
	}

	if opts.GridSpacing > 0 {
		drawGrid(dst, img.Size(), scale, opts)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &PreviewResult{
		Width:       dst.Rect.Dx(),
		Height:      dst.Rect.Dy(),
		Scale:       scale,
		GridSpacing: opts.GridSpacing,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func drawGrid(dst *image.NRGBA, src image.Point, scale float64, opts PreviewOptions) {
	var lineColor color.Color = color.NRGBA{255, 0, 0, 128}
	if opts.GridColor != nil {
		lineColor = opts.GridColor
	}
	line := image.NewUniform(lineColor)
	bounds := dst.Rect
	at := func(v int) int { return int(float64(v)*scale + 0.5) }

	for x := opts.GridSpacing; x < src.X; x += opts.GridSpacing {
		px := at(x)
		draw.Draw(dst, image.Rect(px, 0, px+1, bounds.Max.Y), line, image.Point{}, draw.Over)
	}
	for y := opts.GridSpacing; y < src.Y; y += opts.GridSpacing {
		py := at(y)
		draw.Draw(dst, image.Rect(0, py, bounds.Max.X, py+1), line, image.Point{}, draw.Over)
	}

	if !opts.GridLabels {
		return
	}
	for _, p := range labelPoints(src, scale, opts.GridSpacing) {
		drawLabel(dst, image.Pt(at(p.X)+2, at(p.Y)+2), fmt.Sprintf("%d,%d", p.X, p.Y))
	}
}

// labelPoints returns the grid intersections that get a label. When grid
// cells are smaller than a label in the preview, only every n-th line is
// labelled so labels never overlap.
func labelPoints(src image.Point, scale float64, spacing int) []image.Point {
	face := basicfont.Face7x13
	widest := font.MeasureString(face, fmt.Sprintf("%d,%d", src.X-1, src.Y-1)).Ceil()
	every := func(span int) int {
		cells := int(math.Ceil(float64(span) / (float64(spacing) * scale)))
		return max(cells, 1) * spacing
	}
	stepX, stepY := every(widest+4), every(face.Height+4)

	var points []image.Point
	for y := stepY; y < src.Y; y += stepY {
		for x := stepX; x < src.X; x += stepX {
			points = append(points, image.Pt(x, y))
		}
	}
	return points
}

// drawLabel writes white text on a dark translucent box.
func drawLabel(dst *image.NRGBA, pos image.Point, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.White, Face: face}
	width := d.MeasureString(text).Ceil()
	box := image.Rect(pos.X-1, pos.Y-1, pos.X+width+1, pos.Y+face.Height)
	draw.Draw(dst, box, image.NewUniform(color.NRGBA{0, 0, 0, 180}), image.Point{}, draw.Over)

	d.Dot = fixed.Point26_6{X: fixed.I(pos.X), Y: fixed.I(pos.Y + face.Ascent)}
	d.DrawString(text)
}
