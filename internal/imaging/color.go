package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors covers the colour words accepted wherever a colour is typed.
var namedColors = map[string]color.NRGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
}

// ParseColor parses a colour written as
//
//	"r,g,b" or "r,g,b,a"  decimal components 0-255
//	"#rgb" / "#rrggbb"    hex, leading '#' optional
//	"red", "blue", ...    a small set of names
//
// An empty string yields opaque black.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return namedColors["black"], nil
	}

	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	if strings.Contains(s, ",") {
		return parseComponents(s)
	}

	hex := s
	if hex[0] != '#' {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func parseComponents(s string) (color.NRGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want r,g,b or r,g,b,a", s)
	}
	vals := [4]uint8{0, 0, 0, 255}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		if v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: component %d out of range 0-255", s, v)
		}
		vals[i] = uint8(v)
	}
	return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a sampled color in several representations.
type ColorResult struct {
	Hex   string   `json:"hex"`   // "#RRGGBB", alpha excluded
	RGB   RGBColor `json:"rgb"`   // 8-bit components
	Alpha uint8    `json:"alpha"` // 0 = transparent, 255 = opaque
	HSL   HSLColor `json:"hsl"`
}

// SampleColor returns the color of the pixel at (x, y).
//
// Coordinates are 0-based from the top-left corner and must lie inside the
// image. The value is read through the image's own colour model, so a CMYK
// or palette pixel is reported as the RGB it displays as.
func SampleColor(img *Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("%w: coordinates (%d,%d) outside image bounds %dx%d",
			ErrInvalidGeometry, x, y, bounds.Dx(), bounds.Dy())
	}

	nc := color.NRGBAModel.Convert(img.pix.At(x, y)).(color.NRGBA)
	c := colorful.Color{R: float64(nc.R) / 255, G: float64(nc.G) / 255, B: float64(nc.B) / 255}
	h, s, l := c.Hsl()

	return &ColorResult{
		Hex:   fmt.Sprintf("#%02X%02X%02X", nc.R, nc.G, nc.B),
		RGB:   RGBColor{R: nc.R, G: nc.G, B: nc.B},
		Alpha: nc.A,
		HSL:   HSLColor{H: int(h + 0.5), S: int(s*100 + 0.5), L: int(l*100 + 0.5)},
	}, nil
}
