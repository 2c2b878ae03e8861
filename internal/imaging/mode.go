package imaging

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"

	"github.com/disintegration/imaging"
)

var bilevelPalette = color.Palette{color.Gray{Y: 0}, color.Gray{Y: 255}}

// Convert returns a copy of img in the target mode.
//
// Conversions that drop information (RGB to L, anything to 1 or P, RGBA to
// RGB) are lossy; the dropped channels cannot be recovered from the result.
// Conversions to 1 and P use Floyd-Steinberg error diffusion.
func Convert(img *Image, mode Mode) *Image {
	if img.mode == mode {
		return img.Clone()
	}
	pix := conform(img.pix, mode)
	if pix == img.pix {
		// An opaque RGB buffer is already canonical RGBA and vice versa.
		pix = imaging.Clone(pix)
	}
	return &Image{pix: pix, mode: mode}
}

// conform returns pix in the canonical representation of mode:
//
//	L      *image.Gray
//	RGB    *image.NRGBA, every alpha 0xff
//	RGBA   *image.NRGBA
//	CMYK   *image.CMYK
//	1      *image.Paletted, black/white palette
//	P      *image.Paletted
//
// Buffers already in canonical form with a (0,0) origin are returned as is.
func conform(pix image.Image, mode Mode) image.Image {
	if pix.Bounds().Min == (image.Point{}) && isCanonical(pix, mode) {
		return pix
	}

	switch mode {
	case ModeRGBA:
		return imaging.Clone(pix)
	case ModeRGB:
		return flatten(pix)
	}

	// The remaining modes carry no alpha; drop it before quantizing so
	// transparent pixels keep their colour channels.
	src := flatten(pix)
	r := src.Bounds()
	switch mode {
	case ModeL:
		dst := image.NewGray(r)
		draw.Draw(dst, r, src, image.Point{}, draw.Src)
		return dst
	case ModeCMYK:
		dst := image.NewCMYK(r)
		draw.Draw(dst, r, src, image.Point{}, draw.Src)
		return dst
	case ModeBilevel:
		dst := image.NewPaletted(r, bilevelPalette)
		draw.FloydSteinberg.Draw(dst, r, src, image.Point{})
		return dst
	case ModePalette:
		dst := image.NewPaletted(r, palette.WebSafe)
		draw.FloydSteinberg.Draw(dst, r, src, image.Point{})
		return dst
	}
	return src
}

func isCanonical(pix image.Image, mode Mode) bool {
	switch p := pix.(type) {
	case *image.Gray:
		return mode == ModeL
	case *image.CMYK:
		return mode == ModeCMYK
	case *image.NRGBA:
		if mode == ModeRGB {
			return p.Opaque()
		}
		return mode == ModeRGBA
	case *image.Paletted:
		if mode == ModeBilevel {
			return isBilevelPalette(p.Palette)
		}
		return mode == ModePalette
	}
	return false
}

// flatten copies pix into an NRGBA buffer and forces every pixel opaque
// without compositing, so colour channels survive unchanged.
func flatten(pix image.Image) *image.NRGBA {
	dst := imaging.Clone(pix)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// withAlpha combines the colour channels of rgb, which must be opaque, with
// the alpha channel of src. Both buffers share src's bounds.
func withAlpha(rgb *image.RGBA, src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, rgb.Pix)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = src.Pix[i]
	}
	return dst
}

func isBilevelPalette(p color.Palette) bool {
	if len(p) != 2 {
		return false
	}
	r0, g0, b0, _ := p[0].RGBA()
	r1, g1, b1, _ := p[1].RGBA()
	return r0|g0|b0 == 0 && r1&g1&b1 == 0xffff
}

func newFilled(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

// toNRGBA returns an NRGBA working copy of img's pixels for operations that
// draw or blend in truecolor before restoring the original mode.
func toNRGBA(img *Image) *image.NRGBA {
	return imaging.Clone(img.pix)
}
