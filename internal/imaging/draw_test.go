package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{255, 0, 0, 255}
)

func TestDrawRectangle(t *testing.T) {
	img := createInMemoryImage(50, 50, white)

	got, err := DrawRectangle(img, Box{10, 10, 20, 20}, red, 1)
	if err != nil {
		t.Fatalf("DrawRectangle failed: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"top-left corner", 10, 10, red},
		{"bottom-right corner", 20, 20, red},
		{"top edge", 15, 10, red},
		{"left edge", 10, 15, red},
		{"inside", 15, 15, white},
		{"outside right", 21, 15, white},
		{"outside below", 15, 21, white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := pixelAt(got, tt.x, tt.y); c != tt.want {
				t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, c, tt.want)
			}
		})
	}

	if c := pixelAt(img, 10, 10); c != white {
		t.Error("DrawRectangle modified its input")
	}
}

func TestDrawRectangle_StrokeGrowsInward(t *testing.T) {
	img := createInMemoryImage(50, 50, white)

	got, err := DrawRectangle(img, Box{10, 10, 30, 30}, red, 3)
	if err != nil {
		t.Fatalf("DrawRectangle failed: %v", err)
	}
	for x, want := range map[int]color.NRGBA{9: white, 10: red, 12: red, 13: white, 28: red, 30: red, 31: white} {
		if c := pixelAt(got, x, 20); c != want {
			t.Errorf("pixel (%d,20): got %v, want %v", x, c, want)
		}
	}
}

func TestDrawShapes_InvalidGeometry(t *testing.T) {
	img := createInMemoryImage(50, 50, white)

	tests := []struct {
		name string
		draw func() error
	}{
		{"rectangle inverted x", func() error { _, err := DrawRectangle(img, Box{20, 10, 10, 20}, red, 1); return err }},
		{"rectangle inverted y", func() error { _, err := DrawRectangle(img, Box{10, 20, 20, 10}, red, 1); return err }},
		{"rectangle zero width", func() error { _, err := DrawRectangle(img, Box{10, 10, 20, 20}, red, 0); return err }},
		{"circle negative radius", func() error {
			_, err := DrawEllipse(img, CircleBox(image.Pt(25, 25), -1), red, 1)
			return err
		}},
		{"line zero width", func() error { _, err := DrawLine(img, image.Pt(0, 0), image.Pt(5, 5), red, 0); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.draw(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestCircleBox(t *testing.T) {
	got := CircleBox(image.Pt(50, 40), 10)
	if want := (Box{40, 30, 60, 50}); got != want {
		t.Errorf("CircleBox = %v, want %v", got, want)
	}
}

func TestDrawEllipse(t *testing.T) {
	img := createInMemoryImage(50, 50, white)

	got, err := DrawEllipse(img, CircleBox(image.Pt(25, 25), 10), red, 1)
	if err != nil {
		t.Fatalf("DrawEllipse failed: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"top", 25, 15, red},
		{"bottom", 25, 35, red},
		{"left", 15, 25, red},
		{"right", 35, 25, red},
		{"center", 25, 25, white},
		{"above", 25, 14, white},
		{"box corner", 15, 15, white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := pixelAt(got, tt.x, tt.y); c != tt.want {
				t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, c, tt.want)
			}
		})
	}
}

func TestDrawEllipse_ZeroRadius(t *testing.T) {
	img := createInMemoryImage(10, 10, white)

	got, err := DrawEllipse(img, CircleBox(image.Pt(5, 5), 0), red, 1)
	if err != nil {
		t.Fatalf("DrawEllipse failed: %v", err)
	}
	if c := pixelAt(got, 5, 5); c != red {
		t.Errorf("single-pixel circle: got %v, want red", c)
	}
}

func TestDrawShapes_TranslucentPaintedOnce(t *testing.T) {
	img := createInMemoryImage(40, 40, white)
	half := color.NRGBA{255, 0, 0, 128}

	rect, err := DrawRectangle(img, Box{5, 5, 30, 30}, half, 3)
	if err != nil {
		t.Fatalf("DrawRectangle failed: %v", err)
	}
	edge := pixelAt(rect, 15, 5)
	if edge == white {
		t.Fatal("rectangle edge not painted")
	}
	for _, p := range []image.Point{{5, 5}, {7, 7}, {30, 30}, {5, 15}, {29, 6}} {
		if c := pixelAt(rect, p.X, p.Y); c != edge {
			t.Errorf("rectangle pixel %v: got %v, want %v", p, c, edge)
		}
	}

	line, err := DrawLine(img, image.Pt(5, 5), image.Pt(20, 20), half, 3)
	if err != nil {
		t.Fatalf("DrawLine failed: %v", err)
	}
	if c := pixelAt(line, 4, 4); c != edge {
		t.Errorf("line end: got %v, want %v", c, edge)
	}
	for _, p := range []image.Point{{5, 5}, {12, 12}, {12, 11}, {21, 21}} {
		if c := pixelAt(line, p.X, p.Y); c != edge {
			t.Errorf("line pixel %v: got %v, want %v", p, c, edge)
		}
	}
}

func TestDrawLine(t *testing.T) {
	img := createInMemoryImage(30, 30, white)

	got, err := DrawLine(img, image.Pt(5, 5), image.Pt(15, 5), red, 1)
	if err != nil {
		t.Fatalf("DrawLine failed: %v", err)
	}
	for _, p := range []image.Point{{5, 5}, {10, 5}, {15, 5}} {
		if c := pixelAt(got, p.X, p.Y); c != red {
			t.Errorf("pixel %v: got %v, want red", p, c)
		}
	}
	for _, p := range []image.Point{{4, 5}, {16, 5}, {10, 6}} {
		if c := pixelAt(got, p.X, p.Y); c != white {
			t.Errorf("pixel %v: got %v, want white", p, c)
		}
	}
}

func TestDrawLine_WidthAndDiagonal(t *testing.T) {
	img := createInMemoryImage(30, 30, white)

	got, err := DrawLine(img, image.Pt(20, 20), image.Pt(5, 5), red, 3)
	if err != nil {
		t.Fatalf("DrawLine failed: %v", err)
	}
	for _, p := range []image.Point{{5, 5}, {12, 12}, {20, 20}, {12, 11}, {12, 13}} {
		if c := pixelAt(got, p.X, p.Y); c != red {
			t.Errorf("pixel %v: got %v, want red", p, c)
		}
	}
	if c := pixelAt(got, 20, 5); c != white {
		t.Errorf("pixel off the line: got %v, want white", c)
	}
}

func TestDraw_KeepsMode(t *testing.T) {
	img := Convert(createInMemoryImage(30, 30, white), ModeL)

	got, err := DrawRectangle(img, Box{2, 2, 20, 20}, red, 1)
	if err != nil {
		t.Fatalf("DrawRectangle failed: %v", err)
	}
	if got.Mode() != ModeL {
		t.Errorf("Mode: got %s, want L", got.Mode())
	}
}

func TestDrawText(t *testing.T) {
	img := createInMemoryImage(100, 40, white)

	got := DrawText(img, "Hi\nyo", image.Pt(2, 2), FallbackFont(nil), color.Black)
	if got.Size() != img.Size() {
		t.Fatalf("size changed: %v", got.Size())
	}

	firstLine, secondLine := 0, 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			if pixelAt(got, x, y) == white {
				continue
			}
			if y < 2+13 {
				firstLine++
			} else {
				secondLine++
			}
		}
	}
	if firstLine == 0 || secondLine == 0 {
		t.Errorf("expected ink on both lines, got %d and %d pixels", firstLine, secondLine)
	}
	if c := pixelAt(img, 4, 8); c != white {
		t.Error("DrawText modified its input")
	}
}

func TestDrawText_TrueType(t *testing.T) {
	f := ResolveFont(writeTestFont(t, t.TempDir()), 20, nil)
	if f.Kind != FontResolved {
		t.Fatalf("font not resolved: %v", f.Err)
	}

	img := createInMemoryImage(120, 40, white)
	got := DrawText(img, "Test", image.Pt(0, 0), f, color.Black)
	if Equal(got, img) {
		t.Error("DrawText left the image unchanged")
	}
}
