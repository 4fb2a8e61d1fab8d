package text

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/neon-tubes/internal/contour"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core), logs
}

func litBounds(r *Raster) (minX, minY, maxX, maxY, lit int) {
	b := r.Image.Bounds()
	minX, minY = b.Max.X, b.Max.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := r.Image.NRGBAAt(x, y)
			if c.R == 0 && c.G == 0 && c.B == 0 {
				continue
			}
			lit++
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}
	return
}

func TestRasterize_Centered(t *testing.T) {
	logger, logs := observed()
	r, err := Rasterize("OK", Options{Size: 60, Canvas: contour.Size{Width: 200, Height: 100}}, logger)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if r.Image.Bounds().Dx() != 200 || r.Image.Bounds().Dy() != 100 {
		t.Fatalf("canvas = %v", r.Image.Bounds())
	}
	if !r.Fallback {
		t.Error("empty font path should use the built-in face")
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %v", logs.All())
	}

	minX, minY, maxX, maxY, lit := litBounds(r)
	if lit == 0 {
		t.Fatal("no text pixels drawn")
	}

	// every lit pixel sits inside the ink box
	ink := r.Ink.Inset(-1)
	if minX < ink.Min.X || minY < ink.Min.Y || maxX >= ink.Max.X || maxY >= ink.Max.Y {
		t.Errorf("lit pixels (%d,%d)-(%d,%d) outside ink box %v", minX, minY, maxX, maxY, r.Ink)
	}

	// the box is centered to within a pixel
	left, right := r.Ink.Min.X, 200-r.Ink.Max.X
	top, bottom := r.Ink.Min.Y, 100-r.Ink.Max.Y
	if d := left - right; d < -2 || d > 2 {
		t.Errorf("horizontal margins %d/%d not balanced", left, right)
	}
	if d := top - bottom; d < -2 || d > 2 {
		t.Errorf("vertical margins %d/%d not balanced", top, bottom)
	}
}

func TestRasterize_Placeholder(t *testing.T) {
	for _, in := range []string{"", "   ", "\n"} {
		logger, logs := observed()
		r, err := Rasterize(in, Options{Size: 40, Canvas: contour.Size{Width: 200, Height: 80}}, logger)
		if err != nil {
			t.Fatalf("Rasterize(%q) failed: %v", in, err)
		}
		if r.Text != Placeholder {
			t.Errorf("Rasterize(%q) drew %q, want placeholder", in, r.Text)
		}
		if logs.FilterMessage("no text to render, using placeholder").Len() != 1 {
			t.Errorf("Rasterize(%q) did not warn about the placeholder", in)
		}
	}
}

func TestRasterize_MissingFontFallsBack(t *testing.T) {
	logger, logs := observed()
	r, err := Rasterize("Hi", Options{
		FontPath: filepath.Join(t.TempDir(), "nope.ttf"),
		Size:     30,
		Canvas:   contour.Size{Width: 100, Height: 50},
	}, logger)
	if err != nil {
		t.Fatalf("missing font should not be fatal: %v", err)
	}
	if !r.Fallback {
		t.Error("Fallback = false for missing font")
	}
	if logs.FilterMessage("failed to load font, using default").Len() != 1 {
		t.Errorf("expected one fallback warning, got %v", logs.All())
	}
}

func TestRasterize_FontFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	logger, logs := observed()
	r, err := Rasterize("Hi", Options{FontPath: path, Size: 30, Canvas: contour.Size{Width: 100, Height: 50}}, logger)
	if err != nil {
		t.Fatal(err)
	}
	if r.Fallback || logs.Len() != 0 {
		t.Errorf("font file not used: fallback=%v warnings=%v", r.Fallback, logs.All())
	}
}

func TestRasterize_Multiline(t *testing.T) {
	opts := Options{Size: 30, Canvas: contour.Size{Width: 200, Height: 200}}
	one, err := Rasterize("Neon", opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	two, err := Rasterize("Neon\nNeon", opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if two.Ink.Dy() < one.Ink.Dy()+20 {
		t.Errorf("two lines ink height %d not taller than one line %d", two.Ink.Dy(), one.Ink.Dy())
	}
	if two.Ink.Dx() != one.Ink.Dx() {
		t.Errorf("identical lines changed width: %d vs %d", two.Ink.Dx(), one.Ink.Dx())
	}
}

func TestRasterize_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero size", Options{Size: 0, Canvas: contour.Size{Width: 10, Height: 10}}},
		{"negative size", Options{Size: -3, Canvas: contour.Size{Width: 10, Height: 10}}},
		{"zero width", Options{Size: 10, Canvas: contour.Size{Width: 0, Height: 10}}},
		{"negative height", Options{Size: 10, Canvas: contour.Size{Width: 10, Height: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rasterize("x", tt.opts, nil)
			if !errors.Is(err, contour.ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}
