package session

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/image-editor/internal/collage"
	"github.com/ironsheep/image-editor/internal/imaging"
)

// createTestImage writes a width x height PNG with four coloured quadrants
// into dir and returns its path.
func createTestImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
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

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// newTestSession returns a session writing into a fresh directory, plus an
// opened 300x200 photo.png.
func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	s := New(WithWorkDir(dir), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	path := createTestImage(t, dir, "photo.png", 300, 200)
	if _, err := s.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s, dir
}

func TestOpen(t *testing.T) {
	s, _ := newTestSession(t)

	info, err := s.Info()
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Width != 300 || info.Height != 200 || info.Mode != imaging.ModeRGB || info.Format != "png" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.Name != "photo.png" || s.SourceName() != "photo.png" {
		t.Errorf("source name: got %q", s.SourceName())
	}
	if !imaging.Equal(s.Current(), s.Original()) {
		t.Error("current and original differ right after Open")
	}
}

func TestOpen_FailureKeepsState(t *testing.T) {
	s, dir := newTestSession(t)
	if err := s.Resize(10, 10); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	before := s.Current()

	_, err := s.Open(filepath.Join(dir, "missing.png"))
	var decodeErr *imaging.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if !imaging.Equal(s.Current(), before) || s.SourceName() != "photo.png" {
		t.Error("failed Open changed the session")
	}
}

func TestEndToEnd(t *testing.T) {
	s, _ := newTestSession(t)
	opened := s.Current()

	if err := s.Resize(150, 100); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if err := s.Rotate(90); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if info, _ := s.Info(); info.Width != 100 || info.Height != 150 {
		t.Fatalf("after rotate: got %dx%d, want 100x150", info.Width, info.Height)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !imaging.Equal(s.Current(), opened) {
		t.Error("Reset did not restore the opened image")
	}
}

// mutators lists every operation that replaces the current image.
func mutators() map[string]func(*Session) error {
	return map[string]func(*Session) error{
		"resize":     func(s *Session) error { return s.Resize(100, 50) },
		"crop":       func(s *Session) error { return s.Crop(10, 10, 110, 90) },
		"rotate":     func(s *Session) error { return s.Rotate(30) },
		"flip":       func(s *Session) error { return s.Flip(imaging.Vertical) },
		"brightness": func(s *Session) error { return s.AdjustBrightness(1.5) },
		"contrast":   func(s *Session) error { return s.AdjustContrast(0.5) },
		"color":      func(s *Session) error { return s.AdjustColor(0) },
		"sharpness":  func(s *Session) error { return s.AdjustSharpness(2) },
		"filter":     func(s *Session) error { return s.ApplyFilter("emboss") },
		"mode":       func(s *Session) error { return s.ConvertMode("L") },
		"text": func(s *Session) error {
			_, err := s.AddText("hello", image.Pt(5, 5), 20, color.Black)
			return err
		},
		"rectangle": func(s *Session) error {
			return s.DrawRectangle(imaging.Box{X0: 10, Y0: 10, X1: 50, Y1: 50}, color.Black, 2)
		},
		"circle": func(s *Session) error { return s.DrawCircle(image.Pt(100, 100), 40, color.Black, 1) },
		"line":   func(s *Session) error { return s.DrawLine(image.Pt(0, 0), image.Pt(299, 199), color.Black, 3) },
	}
}

func TestResetAfterEveryOperation(t *testing.T) {
	s, _ := newTestSession(t)
	opened := s.Current()

	for name, op := range mutators() {
		if err := op(s); err != nil {
			t.Fatalf("%s failed: %v", name, err)
		}
	}
	if imaging.Equal(s.Current(), opened) {
		t.Fatal("operations had no visible effect")
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !imaging.Equal(s.Current(), opened) {
		t.Error("Reset did not restore the opened image")
	}
}

func TestOriginalNeverChanges(t *testing.T) {
	for name, op := range mutators() {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestSession(t)
			original := s.Original()

			if err := op(s); err != nil {
				t.Fatalf("%s failed: %v", name, err)
			}
			if !imaging.Equal(s.Original(), original) {
				t.Errorf("%s modified the original", name)
			}
		})
	}
}

func TestNoImageLoaded(t *testing.T) {
	ops := mutators()
	ops["reset"] = func(s *Session) error { return s.Reset() }
	ops["save"] = func(s *Session) error { _, err := s.Save(""); return err }
	ops["thumbnail"] = func(s *Session) error { _, err := s.CreateThumbnail(100, 100); return err }
	ops["convert format"] = func(s *Session) error { _, err := s.ConvertFormat("png"); return err }
	ops["info"] = func(s *Session) error { _, err := s.Info(); return err }
	ops["sample"] = func(s *Session) error { _, err := s.SampleColor(0, 0); return err }
	ops["preview"] = func(s *Session) error { _, err := s.Preview(imaging.PreviewOptions{}); return err }

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			s := New(WithWorkDir(t.TempDir()))
			if err := op(s); !errors.Is(err, ErrNoImageLoaded) {
				t.Errorf("expected ErrNoImageLoaded, got %v", err)
			}
			if s.Loaded() || s.Original() != nil || s.SourceName() != "" {
				t.Error("session changed without an image")
			}
		})
	}
}

func TestFailedOperationsLeaveStateUnchanged(t *testing.T) {
	ops := map[string]struct {
		run  func(*Session) error
		want error
	}{
		"inverted crop":   {func(s *Session) error { return s.Crop(50, 50, 10, 10) }, imaging.ErrInvalidGeometry},
		"zero resize":     {func(s *Session) error { return s.Resize(0, 10) }, imaging.ErrInvalidGeometry},
		"unknown filter":  {func(s *Session) error { return s.ApplyFilter("sepia") }, imaging.ErrUnknownFilter},
		"unknown mode":    {func(s *Session) error { return s.ConvertMode("HSV") }, imaging.ErrUnsupportedMode},
		"negative factor": {func(s *Session) error { return s.AdjustBrightness(-1) }, imaging.ErrInvalidFactor},
		"negative radius": {func(s *Session) error {
			return s.DrawCircle(image.Pt(10, 10), -5, color.Black, 1)
		}, imaging.ErrInvalidGeometry},
		"inverted rectangle": {func(s *Session) error {
			return s.DrawRectangle(imaging.Box{X0: 50, Y0: 50, X1: 10, Y1: 10}, color.Black, 1)
		}, imaging.ErrInvalidGeometry},
	}

	for name, tt := range ops {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestSession(t)
			before := s.Current()

			if err := tt.run(s); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !imaging.Equal(s.Current(), before) {
				t.Error("failed operation changed the current image")
			}
		})
	}
}

func TestApplyFilter_CaseInsensitive(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.ApplyFilter("BLUR"); err != nil {
		t.Errorf("ApplyFilter(BLUR) failed: %v", err)
	}

	err := s.ApplyFilter("sepia")
	var filterErr *imaging.UnknownFilterError
	if !errors.As(err, &filterErr) {
		t.Fatalf("expected *UnknownFilterError, got %v", err)
	}
}

func TestConvertMode_Lossy(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.ConvertMode("l"); err != nil {
		t.Fatalf("ConvertMode failed: %v", err)
	}
	if err := s.ConvertMode("RGB"); err != nil {
		t.Fatalf("ConvertMode failed: %v", err)
	}
	c, _ := s.SampleColor(0, 0)
	if c.RGB.R != c.RGB.G || c.RGB.G != c.RGB.B {
		t.Errorf("colour survived a round trip through L: %+v", c.RGB)
	}
}

func TestAddText_FallbackFont(t *testing.T) {
	s, dir := newTestSession(t)
	s.fontPath = filepath.Join(dir, "no-such-font.ttf")

	kind, err := s.AddText("Hello", image.Pt(10, 10), 40, color.Black)
	if err != nil {
		t.Fatalf("AddText failed: %v", err)
	}
	if kind != imaging.FontFallback {
		t.Errorf("kind: got %s, want fallback", kind)
	}
}

func TestApply_RecoversPanic(t *testing.T) {
	s, _ := newTestSession(t)
	before := s.Current()

	err := s.apply("explode", func(*imaging.Image) (*imaging.Image, error) {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected an error from a panicking operation")
	}
	if !imaging.Equal(s.Current(), before) {
		t.Error("panicking operation changed the current image")
	}
}

func TestSave(t *testing.T) {
	s, dir := newTestSession(t)

	path, err := s.Save("")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(dir, "photo_edited.png"); path != want {
		t.Errorf("path: got %q, want %q", path, want)
	}

	explicit := filepath.Join(dir, "out.jpg")
	path, err = s.Save(explicit)
	if err != nil {
		t.Fatalf("Save(%q) failed: %v", explicit, err)
	}
	if path != explicit {
		t.Errorf("path: got %q, want %q", path, explicit)
	}
	if _, err := imaging.Open(explicit); err != nil {
		t.Errorf("saved file unreadable: %v", err)
	}
}

func TestSave_Overwrites(t *testing.T) {
	s, dir := newTestSession(t)
	target := filepath.Join(dir, "photo_edited.png")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := s.Save(""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := imaging.Open(target); err != nil {
		t.Errorf("existing file was not replaced: %v", err)
	}
}

func TestCreateThumbnail(t *testing.T) {
	s, dir := newTestSession(t)

	path, err := s.CreateThumbnail(100, 100)
	if err != nil {
		t.Fatalf("CreateThumbnail failed: %v", err)
	}
	if want := filepath.Join(dir, "photo_thumb.png"); path != want {
		t.Errorf("path: got %q, want %q", path, want)
	}

	thumb, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("thumbnail unreadable: %v", err)
	}
	if thumb.Width() != 100 || thumb.Height() != 67 {
		t.Errorf("thumbnail: got %dx%d, want 100x67", thumb.Width(), thumb.Height())
	}

	info, _ := s.Info()
	if info.Width != 300 || info.Height != 200 {
		t.Errorf("current changed to %dx%d", info.Width, info.Height)
	}
}

func TestConvertFormat(t *testing.T) {
	s, dir := newTestSession(t)

	if _, err := s.ConvertFormat("pdf"); !errors.Is(err, imaging.ErrUnsupportedFormat) {
		t.Errorf("pdf: expected ErrUnsupportedFormat, got %v", err)
	}

	path, err := s.ConvertFormat(".PNG")
	if err != nil {
		t.Fatalf("ConvertFormat(.PNG) failed: %v", err)
	}
	if want := filepath.Join(dir, "photo.png"); path != want {
		t.Errorf("path: got %q, want %q", path, want)
	}

	path, err = s.ConvertFormat("jpg")
	if err != nil {
		t.Fatalf("ConvertFormat(jpg) failed: %v", err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("converted file unreadable: %v", err)
	}
	if img.Format() != "jpeg" {
		t.Errorf("converted file: format %q, want jpeg", img.Format())
	}
	if s.SourceName() != "photo.png" {
		t.Errorf("source name changed to %q", s.SourceName())
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"png", "png", false},
		{".PNG", "png", false},
		{"Jpeg", "jpeg", false},
		{"tiff", "tiff", false},
		{"webp", "", true},
		{"pdf", "", true},
		{".", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeExtension(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeExtension(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateCollage(t *testing.T) {
	s, dir := newTestSession(t)
	a := createTestImage(t, dir, "a.png", 200, 100)
	b := createTestImage(t, dir, "b.png", 150, 150)

	result, err := s.CreateCollage(collage.Spec{
		Paths:   []string{a, b, filepath.Join(dir, "missing.png"), a, b},
		Columns: 2,
		Padding: 10,
	})
	if err != nil {
		t.Fatalf("CreateCollage failed: %v", err)
	}
	if len(result.Skipped) != 1 {
		t.Errorf("Skipped: got %d, want 1", len(result.Skipped))
	}

	info, _ := s.Info()
	// Four images, two columns, 200x150 cells.
	if info.Width != 430 || info.Height != 330 {
		t.Errorf("collage: got %dx%d, want 430x330", info.Width, info.Height)
	}
	if s.SourceName() != "collage.jpg" {
		t.Errorf("source name: got %q, want collage.jpg", s.SourceName())
	}
	if !imaging.Equal(s.Current(), s.Original()) {
		t.Error("collage should become the new original")
	}

	path, err := s.Save("")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "collage_edited.jpg" {
		t.Errorf("saved as %q", path)
	}
}

func TestCreateCollage_NoValidImagesKeepsState(t *testing.T) {
	s, dir := newTestSession(t)
	before := s.Current()

	_, err := s.CreateCollage(collage.Spec{Paths: []string{filepath.Join(dir, "x.png")}, Columns: 2, Padding: 10})
	if !errors.Is(err, collage.ErrNoValidImages) {
		t.Fatalf("expected ErrNoValidImages, got %v", err)
	}
	if !imaging.Equal(s.Current(), before) || s.SourceName() != "photo.png" {
		t.Error("failed collage changed the session")
	}
}

func TestCreateCollage_WithoutOpen(t *testing.T) {
	dir := t.TempDir()
	s := New(WithWorkDir(dir))
	a := createTestImage(t, dir, "a.png", 20, 20)

	if _, err := s.CreateCollage(collage.Spec{Paths: []string{a}, Columns: 1, Padding: 0}); err != nil {
		t.Fatalf("CreateCollage failed: %v", err)
	}
	if !s.Loaded() {
		t.Error("collage did not load an image")
	}
}

func TestSaveRefusesIncompatibleMode(t *testing.T) {
	s, dir := newTestSession(t)
	if err := s.ConvertMode("RGBA"); err != nil {
		t.Fatalf("ConvertMode failed: %v", err)
	}

	_, err := s.Save(filepath.Join(dir, "out.jpg"))
	var encodeErr *imaging.EncodeError
	if !errors.As(err, &encodeErr) {
		t.Errorf("expected *EncodeError, got %v", err)
	}
}

func TestNew_Options(t *testing.T) {
	s := New(WithWorkDir("/tmp/out"), WithFont("custom.ttf", []string{"/fonts"}), WithJPEGQuality(90))
	if s.WorkDir() != "/tmp/out" || s.fontPath != "custom.ttf" || s.fontDirs[0] != "/fonts" || s.jpegQuality != 90 {
		t.Errorf("options not applied: %+v", s)
	}
	if s.ID() == "" || s.ID() == New().ID() {
		t.Error("sessions should get unique IDs")
	}
}
