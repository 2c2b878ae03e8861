package session

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ironsheep/image-editor/internal/imaging"
)

// SupportedExtensions are the formats ConvertFormat accepts.
var SupportedExtensions = []string{"jpg", "jpeg", "png", "bmp", "gif", "tiff"}

// Save writes the current image to path. An empty path writes
// <stem>_edited<ext> into the work directory, where stem and ext come
// from the source name. It returns the path written.
func (s *Session) Save(path string) (string, error) {
	if s.current == nil {
		return "", ErrNoImageLoaded
	}
	if path == "" {
		path = s.derivedPath("_edited", filepath.Ext(s.sourceName))
	}
	if err := s.write(s.current, path); err != nil {
		return "", err
	}
	s.logger.Info("saved image", "path", path)
	return path, nil
}

// CreateThumbnail writes a copy of the current image scaled to fit within
// maxWidth x maxHeight to <stem>_thumb<ext>. The current image is not
// changed.
func (s *Session) CreateThumbnail(maxWidth, maxHeight int) (string, error) {
	if s.current == nil {
		return "", ErrNoImageLoaded
	}
	thumb, err := imaging.Thumbnail(s.current, maxWidth, maxHeight)
	if err != nil {
		return "", err
	}

	path := s.derivedPath("_thumb", filepath.Ext(s.sourceName))
	if err := s.write(thumb, path); err != nil {
		return "", err
	}
	s.logger.Info("created thumbnail", "path", path, "width", thumb.Width(), "height", thumb.Height())
	return path, nil
}

// ConvertFormat writes the current image to <stem>.<ext>. ext may carry a
// leading dot and any case; it must be one of SupportedExtensions. Neither
// the current image nor the source name change.
func (s *Session) ConvertFormat(ext string) (string, error) {
	if s.current == nil {
		return "", ErrNoImageLoaded
	}
	ext, err := NormalizeExtension(ext)
	if err != nil {
		return "", err
	}

	path := s.derivedPath("", "."+ext)
	if err := s.write(s.current, path); err != nil {
		return "", err
	}
	s.logger.Info("converted format", "path", path)
	return path, nil
}

// NormalizeExtension strips a leading dot, lowercases ext and checks it
// against SupportedExtensions.
func NormalizeExtension(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if !slices.Contains(SupportedExtensions, ext) {
		return "", fmt.Errorf("%w: %q, supported formats: %s",
			imaging.ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions, ", "))
	}
	return ext, nil
}

// derivedPath builds <workDir>/<stem><suffix><ext> from the source name.
func (s *Session) derivedPath(suffix, ext string) string {
	stem := strings.TrimSuffix(s.sourceName, filepath.Ext(s.sourceName))
	return filepath.Join(s.workDir, stem+suffix+ext)
}

func (s *Session) write(img *imaging.Image, path string) error {
	return imaging.Save(img, path, imaging.EncodeOptions{JPEGQuality: s.jpegQuality})
}
