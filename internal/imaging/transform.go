package imaging

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// Axis is a flip direction.
type Axis int

const (
	// Horizontal mirrors left to right.
	Horizontal Axis = iota
	// Vertical mirrors top to bottom.
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseAxis accepts "horizontal" or "vertical" in any case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

// Resize scales img to exactly width x height, ignoring aspect ratio.
// Both dimensions must be at least 1.
func Resize(img *Image, width, height int) (*Image, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: size %dx%d must be at least 1x1", ErrInvalidGeometry, width, height)
	}
	return NewImage(imaging.Resize(img.pix, width, height, imaging.CatmullRom), img.mode), nil
}

// Rotate turns img counter-clockwise by degrees. The canvas grows to hold
// the whole rotated image; uncovered corners are transparent in RGBA mode
// and black otherwise. Multiples of 90 degrees are lossless.
func Rotate(img *Image, degrees float64) *Image {
	var fill color.Color = color.Black
	if img.mode == ModeRGBA {
		fill = color.Transparent
	}
	return NewImage(imaging.Rotate(img.pix, degrees, fill), img.mode)
}

// Flip mirrors img along the given axis.
func Flip(img *Image, axis Axis) *Image {
	if axis == Vertical {
		return NewImage(imaging.FlipV(img.pix), img.mode)
	}
	return NewImage(imaging.FlipH(img.pix), img.mode)
}

// Thumbnail returns a copy of img scaled down so that it fits within
// maxWidth x maxHeight, preserving aspect ratio. Images that already fit
// are copied unchanged; thumbnails never upscale.
func Thumbnail(img *Image, maxWidth, maxHeight int) (*Image, error) {
	if maxWidth < 1 || maxHeight < 1 {
		return nil, fmt.Errorf("%w: thumbnail bound %dx%d must be at least 1x1", ErrInvalidGeometry, maxWidth, maxHeight)
	}
	return NewImage(imaging.Fit(img.pix, maxWidth, maxHeight, imaging.Lanczos), img.mode), nil
}
