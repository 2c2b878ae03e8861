package imaging

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontKind tags how a font request was satisfied.
type FontKind int

const (
	// FontResolved means the requested TrueType/OpenType font was loaded
	// at the requested size.
	FontResolved FontKind = iota

	// FontFallback means the request could not be met and the fixed 7x13
	// bitmap font is used instead. Its size ignores the requested size.
	FontFallback
)

func (k FontKind) String() string {
	if k == FontFallback {
		return "fallback"
	}
	return "resolved"
}

// Font is the result of font resolution. It is never empty: when the
// requested font is unavailable, Face is the bitmap fallback.
type Font struct {
	Face font.Face
	Kind FontKind

	// Name is the file the face was loaded from, or "basicfont 7x13".
	Name string

	// Err records why the requested font was not used (nil when resolved).
	Err error
}

// DefaultFontDirs are searched, in order, for a font given by bare name.
var DefaultFontDirs = []string{
	"/usr/share/fonts/truetype/msttcorefonts",
	"/usr/share/fonts/truetype/dejavu",
	"/usr/share/fonts/truetype",
	"/usr/share/fonts",
	"/Library/Fonts",
	"/System/Library/Fonts/Supplemental",
	`C:\Windows\Fonts`,
}

// FallbackFont returns the fixed-metric bitmap font.
func FallbackFont(reason error) Font {
	return Font{Face: basicfont.Face7x13, Kind: FontFallback, Name: "basicfont 7x13", Err: reason}
}

// ResolveFont tries to load the font named by path at size pixels and
// falls back to the bitmap font when that fails. It never returns an error;
// inspect Kind (and Err) to learn which branch was taken.
//
// path may be absolute, relative to the working directory, or a bare file
// name looked up in dirs.
func ResolveFont(path string, size float64, dirs []string) Font {
	if path == "" {
		return FallbackFont(fmt.Errorf("no font configured"))
	}
	if size <= 0 {
		return FallbackFont(fmt.Errorf("font size %g must be positive", size))
	}

	file, err := findFont(path, dirs)
	if err != nil {
		return FallbackFont(err)
	}

	face, err := loadFace(file, size)
	if err != nil {
		return FallbackFont(err)
	}
	return Font{Face: face, Kind: FontResolved, Name: file}
}

func findFont(path string, dirs []string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if !filepath.IsAbs(path) {
		for _, dir := range dirs {
			candidate := filepath.Join(dir, path)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("font %q not found", path)
}

func loadFace(file string, size float64) (font.Face, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", file, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
