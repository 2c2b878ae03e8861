package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createInMemoryImage returns a solid width x height RGB image.
func createInMemoryImage(width, height int, c color.Color) *Image {
	return Blank(width, height, ModeRGB, c)
}

// createPatternImage returns an RGB image split into four quadrants:
// red top-left, green top-right, blue bottom-left, white bottom-right.
func createPatternImage(width, height int) *Image {
	return NewImage(patternPixels(width, height), ModeRGB)
}

func patternPixels(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.NRGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.NRGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.NRGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.NRGBA{0, 0, 255, 255}
			default:
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// createTestImage writes a solid PNG into a per-test directory and returns
// its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeTestFile(t, "test-image.png", img)
}

// writeTestFile encodes img into t.TempDir() under name, choosing PNG or
// JPEG from the extension.
func writeTestFile(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	switch filepath.Ext(name) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// pixelAt returns the NRGBA value of img at (x, y).
func pixelAt(img *Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.Pixels().At(x, y)).(color.NRGBA)
}
