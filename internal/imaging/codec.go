package imaging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality matches the quality most editors use when none is given.
const DefaultJPEGQuality = 75

// writableModes lists, per encoder, the modes it accepts. JPEG and TIFF
// take CMYK but store it as RGB, so the colours survive and the mode does
// not. Pairs outside this table are refused.
var writableModes = map[imaging.Format][]Mode{
	imaging.JPEG: {ModeL, ModeRGB, ModeCMYK, ModeBilevel},
	imaging.PNG:  {ModeL, ModeRGB, ModeRGBA, ModeBilevel, ModePalette},
	imaging.GIF:  {ModeL, ModeRGB, ModeRGBA, ModeBilevel, ModePalette},
	imaging.BMP:  {ModeL, ModeRGB, ModeRGBA, ModeBilevel, ModePalette},
	imaging.TIFF: Modes,
}

// EncodeOptions tune the encoders.
type EncodeOptions struct {
	// JPEGQuality is 1-100; zero means DefaultJPEGQuality.
	JPEGQuality int
}

// FormatFromExtension resolves an extension such as ".png", "JPG" or
// "tiff" to an encoder. Unknown extensions return ErrUnsupportedFormat.
func FormatFromExtension(ext string) (imaging.Format, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *Image, format imaging.Format, opts EncodeOptions) error {
	if !canWrite(format, img.mode) {
		return fmt.Errorf("cannot write mode %s as %s", img.mode, format)
	}

	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	return imaging.Encode(w, img.pix, format, imaging.JPEGQuality(quality))
}

// Save encodes img to path, choosing the format from the extension.
// An existing file is overwritten. All failures are *EncodeError.
func Save(img *Image, path string, opts EncodeOptions) error {
	format, err := FormatFromExtension(filepath.Ext(path))
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}

	// Check compatibility before touching the file system so a refused
	// save never truncates an existing file.
	if !canWrite(format, img.mode) {
		return &EncodeError{Path: path, Err: fmt.Errorf("cannot write mode %s as %s", img.mode, format)}
	}

	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}

	err = Encode(f, img, format, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}

func canWrite(format imaging.Format, mode Mode) bool {
	for _, m := range writableModes[format] {
		if m == mode {
			return true
		}
	}
	return false
}
