package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// Open reads and decodes the image file at path.
//
// The format is detected from the file contents, not the extension.
// EXIF orientation is applied so JPEGs from cameras come out upright.
// Every failure (missing file, unreadable file, unknown or corrupt data)
// is returned as a *DecodeError.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// Decode decodes an image from r and records the codec it came from.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	pix, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Reorienting returns NRGBA, so take the mode from the stored colour
	// model rather than the decoded pixel type.
	mode, ok := modeFromModel(cfg.ColorModel)
	if !ok {
		mode = detectMode(pix)
	}

	img := NewImage(pix, mode)
	img.format = format
	return img, nil
}

func modeFromModel(m color.Model) (Mode, bool) {
	if p, ok := m.(color.Palette); ok {
		if isBilevelPalette(p) {
			return ModeBilevel, true
		}
		return ModePalette, true
	}
	switch m {
	case color.GrayModel, color.Gray16Model:
		return ModeL, true
	case color.CMYKModel:
		return ModeCMYK, true
	case color.YCbCrModel, color.RGBAModel, color.RGBA64Model:
		return ModeRGB, true
	case color.NRGBAModel, color.NRGBA64Model:
		return ModeRGBA, true
	}
	return "", false
}

// ImageCache holds decoded images keyed by path so a batch operation that
// names the same file more than once decodes it only once.
//
// Load hands out independent clones, so callers may treat each result as
// exclusively owned. ImageCache is safe for concurrent use.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    return err
//	}
//	cache.Evict("/path/to/image.png") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// The image is cached under the exact path string provided. Different
// spellings of the same file (relative vs absolute) are separate entries.
// Decode failures are not cached.
func (c *ImageCache) Load(path string) (*Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img.Clone(), nil
	}
	c.mu.RUnlock()

	img, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img.Clone(), nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}
