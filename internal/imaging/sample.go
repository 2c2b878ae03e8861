package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// Sample image geometry, laid out for an 800x600 card and scaled to the
// requested size.
const (
	sampleWidth  = 800
	sampleHeight = 600
)

// SampleImage draws the test card used to try the editor without a photo
// at hand: a white RGB canvas with a blue rectangle, a red ellipse inside
// it, a green diagonal and the caption "Test Image".
func SampleImage(width, height int, f Font) (*Image, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: sample size %dx%d must be at least 1x1", ErrInvalidGeometry, width, height)
	}

	sx := func(v int) int { return v * width / sampleWidth }
	sy := func(v int) int { return v * height / sampleHeight }

	img := Blank(width, height, ModeRGB, color.White)

	var err error
	img, err = DrawRectangle(img, Box{sx(100), sy(100), sx(700), sy(500)}, namedColors["blue"], 2)
	if err != nil {
		return nil, err
	}
	img, err = DrawEllipse(img, Box{sx(200), sy(150), sx(600), sy(450)}, namedColors["red"], 2)
	if err != nil {
		return nil, err
	}
	img, err = DrawLine(img, image.Pt(sx(100), sy(100)), image.Pt(sx(700), sy(500)), namedColors["green"], 3)
	if err != nil {
		return nil, err
	}
	return DrawText(img, "Test Image", image.Pt(sx(300), sy(50)), f, color.Black), nil
}
