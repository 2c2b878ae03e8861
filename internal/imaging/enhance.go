package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/fcolor"
)

// Dimension selects what an enhancement adjusts.
type Dimension string

const (
	Brightness Dimension = "brightness"
	Contrast   Dimension = "contrast"
	Color      Dimension = "color"
	Sharpness  Dimension = "sharpness"
)

// Dimensions lists the enhancement dimensions.
var Dimensions = []Dimension{Brightness, Contrast, Color, Sharpness}

// ParseDimension resolves an enhancement dimension name. "saturation" is
// accepted as an alias for Color.
func ParseDimension(name string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(name)))
	switch d {
	case Brightness, Contrast, Color, Sharpness:
		return d, nil
	case "saturation":
		return Color, nil
	}
	return "", fmt.Errorf("unknown adjustment %q, use brightness, contrast, color or sharpness", name)
}

// Enhance adjusts one dimension of img by factor.
//
// Each dimension interpolates between a degenerate image and the input:
//
//	out = degenerate + factor*(input - degenerate)
//
// so 1.0 returns the input, 0.0 returns the degenerate image and values
// above 1.0 extrapolate away from it. The degenerate images are
//
//	brightness  black
//	contrast    flat gray at the mean luminance
//	color       the grayscale version of the input
//	sharpness   the input after the smooth filter
//
// Factors have no upper bound; results are clamped per channel. Alpha is
// never adjusted: the colour channels are mixed as if opaque and the input
// alpha is put back afterwards. Negative factors return ErrInvalidFactor.
func Enhance(img *Image, dim Dimension, factor float64) (*Image, error) {
	if factor < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidFactor, factor)
	}
	if err := requireContinuousTone(img); err != nil {
		return nil, err
	}

	src := flatten(img.pix)
	var degenerate image.Image
	switch dim {
	case Brightness:
		degenerate = newFilled(src.Rect.Dx(), src.Rect.Dy(), color.Black)
	case Contrast:
		mean := meanLuminance(src)
		degenerate = newFilled(src.Rect.Dx(), src.Rect.Dy(), color.Gray{Y: mean})
	case Color:
		degenerate = effect.GrayscaleWithWeights(src, 0.299, 0.587, 0.114)
	case Sharpness:
		degenerate = convolveOpaque(src, kernels[FilterSmooth])
	default:
		return nil, fmt.Errorf("unknown adjustment %q", dim)
	}

	out := blend.Blend(degenerate, src, func(d, s fcolor.RGBAF64) fcolor.RGBAF64 {
		// Blend truncates to 8 bits; bias by half a step so it rounds.
		const half = 0.5 / 255
		return fcolor.RGBAF64{
			R: d.R + factor*(s.R-d.R) + half,
			G: d.G + factor*(s.G-d.G) + half,
			B: d.B + factor*(s.B-d.B) + half,
			A: 1,
		}
	})
	return NewImage(withAlpha(out, toNRGBA(img)), img.mode), nil
}

func meanLuminance(src *image.NRGBA) uint8 {
	var sum, n float64
	for i := 0; i+3 < len(src.Pix); i += 4 {
		sum += 0.299*float64(src.Pix[i]) + 0.587*float64(src.Pix[i+1]) + 0.114*float64(src.Pix[i+2])
		n++
	}
	if n == 0 {
		return 0
	}
	return uint8(sum/n + 0.5)
}
