package imaging

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// writeTestFont copies the Go Regular TrueType font into dir.
func writeTestFont(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("failed to write font: %v", err)
	}
	return path
}

func TestResolveFont(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFont(t, dir)
	garbage := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(garbage, []byte("not a font"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
		size float64
		dirs []string
		want FontKind
	}{
		{"absolute path", path, 24, nil, FontResolved},
		{"bare name in search dir", "goregular.ttf", 24, []string{t.TempDir(), dir}, FontResolved},
		{"missing", "arial-missing.ttf", 24, []string{dir}, FontFallback},
		{"empty path", "", 24, nil, FontFallback},
		{"zero size", path, 0, nil, FontFallback},
		{"not a font", garbage, 24, nil, FontFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ResolveFont(tt.path, tt.size, tt.dirs)
			if f.Face == nil {
				t.Fatal("ResolveFont returned no face")
			}
			if f.Kind != tt.want {
				t.Errorf("Kind: got %s, want %s (err: %v)", f.Kind, tt.want, f.Err)
			}
			if (f.Err != nil) != (tt.want == FontFallback) {
				t.Errorf("Err = %v for kind %s", f.Err, f.Kind)
			}
		})
	}
}

func TestResolveFont_SizeApplies(t *testing.T) {
	path := writeTestFont(t, t.TempDir())

	small := ResolveFont(path, 12, nil)
	large := ResolveFont(path, 48, nil)
	if small.Face.Metrics().Height >= large.Face.Metrics().Height {
		t.Errorf("48px line height %v should exceed 12px line height %v",
			large.Face.Metrics().Height, small.Face.Metrics().Height)
	}
}

func TestFallbackFont(t *testing.T) {
	f := FallbackFont(nil)
	if f.Kind != FontFallback || f.Face == nil {
		t.Fatalf("unexpected fallback font: %+v", f)
	}
	if f.Kind.String() != "fallback" || FontResolved.String() != "resolved" {
		t.Error("unexpected FontKind names")
	}
}
