package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Mode is the colour mode of an Image.
//
// The set is closed: every Image is in exactly one of these modes, and
// operations other than Convert return an image in the same mode as their
// input.
type Mode string

const (
	// ModeL is 8-bit grayscale.
	ModeL Mode = "L"
	// ModeRGB is 8-bit truecolor without transparency.
	ModeRGB Mode = "RGB"
	// ModeRGBA is 8-bit truecolor with an alpha channel.
	ModeRGBA Mode = "RGBA"
	// ModeCMYK is 8-bit subtractive colour.
	ModeCMYK Mode = "CMYK"
	// ModeBilevel is 1-bit black and white, dithered on conversion.
	ModeBilevel Mode = "1"
	// ModePalette is an 8-bit indexed image using the web-safe palette
	// (or the palette the source file was stored with).
	ModePalette Mode = "P"
)

// Modes lists every supported mode in presentation order.
var Modes = []Mode{ModeL, ModeRGB, ModeRGBA, ModeCMYK, ModeBilevel, ModePalette}

// ParseMode resolves a mode name case-insensitively.
//
// Unknown names return an *UnsupportedModeError, which matches
// ErrUnsupportedMode with errors.Is.
func ParseMode(name string) (Mode, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for _, m := range Modes {
		if string(m) == want {
			return m, nil
		}
	}
	return "", &UnsupportedModeError{Name: name}
}

// Image is an owned, decoded raster together with its colour mode.
//
// The pixel buffer is always stored in the canonical Go type for its mode
// (see conform) with its origin at (0,0). An Image is never mutated in place
// by this package: every operation returns a new Image.
type Image struct {
	pix    image.Image
	mode   Mode
	format string
}

// NewImage wraps pix as an Image in the given mode, converting the pixel
// buffer when it is not already in the mode's canonical representation.
func NewImage(pix image.Image, mode Mode) *Image {
	return &Image{pix: conform(pix, mode), mode: mode}
}

// FromImage wraps a decoded image, inferring its mode from the concrete
// pixel type.
func FromImage(pix image.Image) *Image {
	return NewImage(pix, detectMode(pix))
}

// Blank returns a width x height image of the given mode filled with c.
func Blank(width, height int, mode Mode, c color.Color) *Image {
	return NewImage(newFilled(width, height, c), mode)
}

// Pixels returns the underlying pixel buffer. Callers must not modify it.
func (img *Image) Pixels() image.Image { return img.pix }

// Mode returns the image's colour mode.
func (img *Image) Mode() Mode { return img.mode }

// Format returns the name of the codec the image was decoded from
// ("png", "jpeg", ...), or "" for images produced by an operation.
func (img *Image) Format() string { return img.format }

// Bounds returns the pixel bounds, always anchored at (0,0).
func (img *Image) Bounds() image.Rectangle { return img.pix.Bounds() }

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.pix.Bounds().Dx() }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.pix.Bounds().Dy() }

// Size returns the dimensions as a point (X = width, Y = height).
func (img *Image) Size() image.Point { return img.pix.Bounds().Size() }

// Clone returns a deep copy that shares no pixel memory with img.
func (img *Image) Clone() *Image {
	return &Image{pix: clonePixels(img.pix), mode: img.mode, format: img.format}
}

// Equal reports whether a and b have the same mode, size and pixel bytes.
func Equal(a, b *Image) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.mode != b.mode || a.Bounds() != b.Bounds() {
		return false
	}
	pa, pb := pixBytes(a.pix), pixBytes(b.pix)
	if len(pa) != len(pb) {
		return false
	}
	for i := range pa {
		if pa[i] != pb[i] {
			return false
		}
	}
	if ap, ok := a.pix.(*image.Paletted); ok {
		bp := b.pix.(*image.Paletted)
		if len(ap.Palette) != len(bp.Palette) {
			return false
		}
		for i := range ap.Palette {
			if ap.Palette[i] != bp.Palette[i] {
				return false
			}
		}
	}
	return true
}

// Info is the metadata surfaced for an image.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Mode is the colour mode name ("L", "RGB", "RGBA", "CMYK", "1", "P").
	Mode Mode `json:"mode"`

	// Format is the source codec, empty for derived images.
	Format string `json:"format,omitempty"`

	// Name is the file name the image is known by, when the caller has one.
	Name string `json:"name,omitempty"`
}

// Describe returns the metadata for img.
func Describe(img *Image) *Info {
	return &Info{
		Width:  img.Width(),
		Height: img.Height(),
		Mode:   img.mode,
		Format: img.format,
	}
}

func (i *Info) String() string {
	format := i.Format
	if format == "" {
		format = "none"
	}
	s := fmt.Sprintf("%dx%d, mode %s, format %s", i.Width, i.Height, i.Mode, format)
	if i.Name != "" {
		s = i.Name + ": " + s
	}
	return s
}

// detectMode maps the concrete types produced by the registered decoders
// onto a Mode.
func detectMode(pix image.Image) Mode {
	switch p := pix.(type) {
	case *image.Gray, *image.Gray16:
		return ModeL
	case *image.CMYK:
		return ModeCMYK
	case *image.Paletted:
		if isBilevelPalette(p.Palette) {
			return ModeBilevel
		}
		return ModePalette
	case *image.NRGBA, *image.NRGBA64:
		return ModeRGBA
	case *image.RGBA:
		if p.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.RGBA64:
		if p.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	default:
		return ModeRGB
	}
}

func pixBytes(pix image.Image) []byte {
	switch p := pix.(type) {
	case *image.Gray:
		return p.Pix
	case *image.NRGBA:
		return p.Pix
	case *image.CMYK:
		return p.Pix
	case *image.Paletted:
		return p.Pix
	case *image.RGBA:
		return p.Pix
	}
	return nil
}

func clonePixels(pix image.Image) image.Image {
	switch p := pix.(type) {
	case *image.Gray:
		c := *p
		c.Pix = append([]byte(nil), p.Pix...)
		return &c
	case *image.NRGBA:
		c := *p
		c.Pix = append([]byte(nil), p.Pix...)
		return &c
	case *image.CMYK:
		c := *p
		c.Pix = append([]byte(nil), p.Pix...)
		return &c
	case *image.Paletted:
		c := *p
		c.Pix = append([]byte(nil), p.Pix...)
		c.Palette = append(color.Palette(nil), p.Palette...)
		return &c
	}
	return conform(pix, detectMode(pix))
}
