package imaging

import (
	"image"
	"strings"

	"github.com/anthonynsimon/bild/convolution"
)

// Filter is one of the fixed convolution filters.
type Filter string

const (
	FilterBlur        Filter = "blur"
	FilterContour     Filter = "contour"
	FilterDetail      Filter = "detail"
	FilterEdgeEnhance Filter = "edge_enhance"
	FilterEmboss      Filter = "emboss"
	FilterSharpen     Filter = "sharpen"
	FilterSmooth      Filter = "smooth"
)

// Filters lists every supported filter in presentation order.
var Filters = []Filter{
	FilterBlur,
	FilterContour,
	FilterDetail,
	FilterEdgeEnhance,
	FilterEmboss,
	FilterSharpen,
	FilterSmooth,
}

// FilterNames returns the names of Filters.
func FilterNames() []string {
	names := make([]string, len(Filters))
	for i, f := range Filters {
		names[i] = string(f)
	}
	return names
}

// ParseFilter resolves a filter name case-insensitively. Unknown names
// return an *UnknownFilterError.
func ParseFilter(name string) (Filter, error) {
	want := Filter(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range Filters {
		if f == want {
			return f, nil
		}
	}
	return "", &UnknownFilterError{Name: name}
}

// filterKernel is a square kernel with integer taps, a divisor and an
// offset added after division.
type filterKernel struct {
	size   int
	scale  float64
	offset float64
	taps   []float64
}

var kernels = map[Filter]filterKernel{
	FilterBlur: {5, 16, 0, []float64{
		1, 1, 1, 1, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 1, 1, 1, 1,
	}},
	FilterContour: {3, 1, 255, []float64{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}},
	FilterDetail: {3, 6, 0, []float64{
		0, -1, 0,
		-1, 10, -1,
		0, -1, 0,
	}},
	FilterEdgeEnhance: {3, 2, 0, []float64{
		-1, -1, -1,
		-1, 10, -1,
		-1, -1, -1,
	}},
	FilterEmboss: {3, 1, 128, []float64{
		-1, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}},
	FilterSharpen: {3, 16, 0, []float64{
		-2, -2, -2,
		-2, 32, -2,
		-2, -2, -2,
	}},
	FilterSmooth: {3, 13, 0, []float64{
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	}},
}

func (k filterKernel) matrix() *convolution.Kernel {
	m := convolution.NewKernel(k.size, k.size)
	for i, t := range k.taps {
		m.Matrix[i] = t / k.scale
	}
	return m
}

// ApplyFilter convolves img with the named filter. Alpha is left as is and
// edge pixels are extended. Palette images are refused with ErrPaletteMode.
func ApplyFilter(img *Image, f Filter) (*Image, error) {
	k, ok := kernels[f]
	if !ok {
		return nil, &UnknownFilterError{Name: string(f)}
	}
	if err := requireContinuousTone(img); err != nil {
		return nil, err
	}
	out := convolveOpaque(flatten(img.pix), k)
	return NewImage(withAlpha(out, toNRGBA(img)), img.mode), nil
}

// convolveOpaque filters an opaque buffer, so the kernel offset applies to
// straight colour values.
func convolveOpaque(src *image.NRGBA, k filterKernel) *image.RGBA {
	// Convolve truncates each channel; half a step on the bias rounds it.
	return convolution.Convolve(src, k.matrix(), &convolution.Options{
		Bias:      k.offset + 0.5,
		KeepAlpha: true,
	})
}

func requireContinuousTone(img *Image) error {
	if img.mode == ModePalette || img.mode == ModeBilevel {
		return ErrPaletteMode
	}
	return nil
}
