package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Crop extracts the box (left, top)-(right, bottom) from img.
//
// The box is half-open: right and bottom are exclusive, so the result is
// (right-left) x (bottom-top). The box must satisfy 0 <= left < right and
// 0 <= top < bottom, otherwise ErrInvalidGeometry is returned. A box that
// extends past the image edge is allowed; the uncovered area is filled with
// zero pixels (black, or transparent for RGBA).
func Crop(img *Image, left, top, right, bottom int) (*Image, error) {
	if left < 0 || top < 0 {
		return nil, fmt.Errorf("%w: crop origin (%d,%d) is negative", ErrInvalidGeometry, left, top)
	}
	if left >= right || top >= bottom {
		return nil, fmt.Errorf("%w: crop box (%d,%d)-(%d,%d) requires left < right and top < bottom",
			ErrInvalidGeometry, left, top, right, bottom)
	}

	box := image.Rect(left, top, right, bottom)
	visible := box.Intersect(img.Bounds())

	if visible == box {
		return NewImage(imaging.Crop(img.pix, box), img.mode), nil
	}

	canvas := imaging.New(box.Dx(), box.Dy(), color.NRGBA{})
	if !visible.Empty() {
		canvas = imaging.Paste(canvas, imaging.Crop(img.pix, visible), visible.Min.Sub(box.Min))
	}
	return NewImage(canvas, img.mode), nil
}
