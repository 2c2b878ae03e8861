package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Box is a shape bounding box whose corners are both inclusive, so a box
// from (10,10) to (20,20) covers 11x11 pixels.
type Box struct {
	X0, Y0, X1, Y1 int
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.X0, b.Y0, b.X1, b.Y1)
}

// CircleBox returns the bounding box of a circle:
// (cx-r, cy-r)-(cx+r, cy+r).
func CircleBox(center image.Point, radius int) Box {
	return Box{
		X0: center.X - radius,
		Y0: center.Y - radius,
		X1: center.X + radius,
		Y1: center.Y + radius,
	}
}

func validateStroke(b Box, width int) error {
	if b.X1 < b.X0 || b.Y1 < b.Y0 {
		return fmt.Errorf("%w: box %s requires x1 >= x0 and y1 >= y0", ErrInvalidGeometry, b)
	}
	if width < 1 {
		return fmt.Errorf("%w: line width %d must be at least 1", ErrInvalidGeometry, width)
	}
	return nil
}

// DrawText renders text onto a copy of img with its top-left corner at pos.
// Lines separated by '\n' are stacked using the face's line height.
func DrawText(img *Image, text string, pos image.Point, f Font, c color.Color) *Image {
	dst := toNRGBA(img)
	metrics := f.Face.Metrics()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.Face,
	}

	baseline := fixed.I(pos.Y) + metrics.Ascent
	for _, line := range strings.Split(text, "\n") {
		d.Dot = fixed.Point26_6{X: fixed.I(pos.X), Y: baseline}
		d.DrawString(line)
		baseline += metrics.Height
	}
	return NewImage(dst, img.mode)
}

// DrawRectangle strokes the outline of box onto a copy of img. The stroke
// grows inward from the box edges.
func DrawRectangle(img *Image, box Box, c color.Color, width int) (*Image, error) {
	if err := validateStroke(box, width); err != nil {
		return nil, err
	}

	dst := toNRGBA(img)
	src := image.NewUniform(c)
	outer := image.Rect(box.X0, box.Y0, box.X1+1, box.Y1+1)
	// Side edges run between the top and bottom ones so no pixel is painted
	// twice; a thick stroke can leave them empty.
	edges := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+width),
		image.Rect(outer.Min.X, max(outer.Max.Y-width, outer.Min.Y+width), outer.Max.X, outer.Max.Y),
		{image.Pt(outer.Min.X, outer.Min.Y+width), image.Pt(outer.Min.X+width, outer.Max.Y-width)},
		{image.Pt(max(outer.Max.X-width, outer.Min.X+width), outer.Min.Y+width), image.Pt(outer.Max.X, outer.Max.Y-width)},
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(outer), src, image.Point{}, draw.Over)
	}
	return NewImage(dst, img.mode), nil
}

// DrawEllipse strokes the outline of the ellipse inscribed in box onto a
// copy of img. The stroke grows inward; a stroke at least as wide as the
// radius fills the ellipse.
func DrawEllipse(img *Image, box Box, c color.Color, width int) (*Image, error) {
	if err := validateStroke(box, width); err != nil {
		return nil, err
	}

	dst := toNRGBA(img)
	cx := float64(box.X0+box.X1) / 2
	cy := float64(box.Y0+box.Y1) / 2
	rx := float64(box.X1-box.X0)/2 + 0.5
	ry := float64(box.Y1-box.Y0)/2 + 0.5
	irx := rx - float64(width)
	iry := ry - float64(width)

	clip := image.Rect(box.X0, box.Y0, box.X1+1, box.Y1+1).Intersect(dst.Rect)
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if !insideEllipse(dx, dy, rx, ry) {
				continue
			}
			if irx > 0 && iry > 0 && insideEllipse(dx, dy, irx, iry) {
				continue
			}
			blendPixel(dst, x, y, c)
		}
	}
	return NewImage(dst, img.mode), nil
}

// DrawLine strokes a straight segment between two points (both included)
// onto a copy of img, stamping a width x width square at every step.
func DrawLine(img *Image, from, to image.Point, c color.Color, width int) (*Image, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: line width %d must be at least 1", ErrInvalidGeometry, width)
	}

	dst := toNRGBA(img)
	mask := image.NewAlpha(dst.Rect)
	half := (width - 1) / 2

	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}

	// Bresenham; stamps overlap, so they are collected into a coverage
	// mask and composited once.
	x, y, e := from.X, from.Y, dx+dy
	for {
		stamp := image.Rect(x-half, y-half, x-half+width, y-half+width)
		draw.Draw(mask, stamp, image.Opaque, image.Point{}, draw.Src)
		if x == to.X && y == to.Y {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
	draw.DrawMask(dst, dst.Rect, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
	return NewImage(dst, img.mode), nil
}

func insideEllipse(dx, dy, rx, ry float64) bool {
	return (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1
}

func blendPixel(dst *image.NRGBA, x, y int, c color.Color) {
	draw.Draw(dst, image.Rect(x, y, x+1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
