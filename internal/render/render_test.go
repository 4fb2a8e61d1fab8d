package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"
	"testing"

	"github.com/ironsheep/neon-tubes/internal/contour"
	"github.com/ironsheep/neon-tubes/internal/imaging"
)

var magenta = imaging.RGBColor{R: 255, G: 0, B: 255}

func horizontalLine(w, h, y int) contour.Set {
	return contour.Set{
		Polylines: []contour.Polyline{{{X: 5, Y: y}, {X: w - 6, Y: y}}},
		Size:      contour.Size{Width: w, Height: h},
	}
}

func rgbAt(img *image.RGBA, x, y int) (r, g, b, a uint8) {
	i := img.PixOffset(x, y)
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
}

func TestRender_EmptySetIsBlack(t *testing.T) {
	set := contour.Set{Size: contour.Size{Width: 40, Height: 30}}
	img, err := Render(set, StrokeStyle{Color: magenta, Width: 5}, GlowStyle{Radius: 10, Alpha: 0.5})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("image = %dx%d, want 40x30", b.Dx(), b.Dy())
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			r, g, b, a := rgbAt(img, x, y)
			if r != 0 || g != 0 || b != 0 || a != 255 {
				t.Fatalf("pixel (%d,%d) = %d,%d,%d,%d, want opaque black", x, y, r, g, b, a)
			}
		}
	}
}

func TestSharp_StrokesLine(t *testing.T) {
	img, err := Sharp(horizontalLine(60, 40, 20), StrokeStyle{Color: magenta, Width: 3})
	if err != nil {
		t.Fatalf("Sharp failed: %v", err)
	}

	r, g, b, _ := rgbAt(img, 30, 20)
	if r < 200 || g > 50 || b < 200 {
		t.Errorf("pixel on line = %d,%d,%d, want magenta", r, g, b)
	}
	r, g, b, _ = rgbAt(img, 30, 30)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("pixel off line = %d,%d,%d, want black", r, g, b)
	}
}

func TestSharp_SinglePointIsDot(t *testing.T) {
	set := contour.Set{
		Polylines: []contour.Polyline{{{X: 10, Y: 10}}},
		Size:      contour.Size{Width: 20, Height: 20},
	}
	img, err := Sharp(set, StrokeStyle{Color: magenta, Width: 6})
	if err != nil {
		t.Fatalf("Sharp failed: %v", err)
	}
	if r, _, _, _ := rgbAt(img, 10, 10); r < 200 {
		t.Errorf("dot center red = %d, want lit", r)
	}
	if r, _, _, _ := rgbAt(img, 0, 0); r != 0 {
		t.Errorf("corner red = %d, want black", r)
	}
}

func TestSharp_OutOfBoundsClipped(t *testing.T) {
	set := contour.Set{
		Polylines: []contour.Polyline{{{X: -50, Y: 5}, {X: 100, Y: 5}}},
		Size:      contour.Size{Width: 20, Height: 10},
	}
	img, err := Sharp(set, StrokeStyle{Color: magenta, Width: 2})
	if err != nil {
		t.Fatalf("Sharp failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("image = %dx%d, want 20x10", b.Dx(), b.Dy())
	}
	if r, _, _, _ := rgbAt(img, 10, 5); r < 200 {
		t.Errorf("clipped line not drawn inside canvas, red = %d", r)
	}
}

func TestRender_AlphaBoundaries(t *testing.T) {
	set := horizontalLine(60, 40, 20)
	stroke := StrokeStyle{Color: magenta, Width: 3}

	sharp, err := Sharp(set, stroke)
	if err != nil {
		t.Fatalf("Sharp failed: %v", err)
	}
	blurred := Glow(sharp, 6)

	zero, err := Render(set, stroke, GlowStyle{Radius: 6, Alpha: 0})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(zero.Pix, sharp.Pix) {
		t.Error("alpha 0 should reproduce the sharp layer")
	}

	one, err := Render(set, stroke, GlowStyle{Radius: 6, Alpha: 1})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(one.Pix, blurred.Pix) {
		t.Error("alpha 1 should reproduce the blurred layer")
	}
}

func uniform(w, h int, r, g, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, 255
	}
	return img
}

func TestBlend_IntermediateAlpha(t *testing.T) {
	sharp := uniform(8, 6, 200, 0, 40)
	blurred := uniform(8, 6, 100, 80, 0)

	tests := []struct {
		alpha float64
		want  [3]int
	}{
		{0.25, [3]int{175, 20, 30}},
		{0.5, [3]int{150, 40, 20}},
		{0.75, [3]int{125, 60, 10}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("alpha %.2f", tt.alpha), func(t *testing.T) {
			out := Blend(sharp, blurred, tt.alpha)
			if b := out.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Fatalf("image = %dx%d, want 8x6", b.Dx(), b.Dy())
			}
			for y := 0; y < 6; y++ {
				for x := 0; x < 8; x++ {
					r, g, b, a := rgbAt(out, x, y)
					got := [3]int{int(r), int(g), int(b)}
					for c := range got {
						if d := got[c] - tt.want[c]; d < -1 || d > 1 {
							t.Fatalf("pixel (%d,%d) = %v, want %v within 1", x, y, got, tt.want)
						}
					}
					if a != 255 {
						t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, a)
					}
				}
			}
		})
	}
}

func TestGlow_Spreads(t *testing.T) {
	sharp, err := Sharp(horizontalLine(60, 40, 20), StrokeStyle{Color: magenta, Width: 3})
	if err != nil {
		t.Fatalf("Sharp failed: %v", err)
	}
	if r, _, _, _ := rgbAt(sharp, 30, 24); r != 0 {
		t.Fatalf("sharp layer already lit at distance 4, red = %d", r)
	}

	blurred := Glow(sharp, 8)
	if r, _, _, _ := rgbAt(blurred, 30, 24); r == 0 {
		t.Error("glow did not reach 4 pixels from the line")
	}
	if r, _, _, _ := rgbAt(blurred, 30, 20); r >= 255 {
		t.Error("glow should soften the line center")
	}

	same := Glow(sharp, 0)
	if !bytes.Equal(same.Pix, sharp.Pix) {
		t.Error("radius 0 should copy the sharp layer")
	}
}

func TestRender_Deterministic(t *testing.T) {
	set := contour.Set{
		Polylines: []contour.Polyline{
			{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50}, {X: 10, Y: 10}},
			{{X: 30, Y: 30}},
		},
		Size: contour.Size{Width: 64, Height: 64},
	}
	stroke := StrokeStyle{Color: imaging.RGBColor{R: 0, G: 200, B: 255}, Width: 4}
	glow := GlowStyle{Radius: 5, Alpha: 0.5}

	a, err := Render(set, stroke, glow)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, err := Render(set, stroke, glow)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("identical input rendered differently")
	}
}

func TestRender_InvalidParameters(t *testing.T) {
	set := horizontalLine(40, 40, 20)
	tests := []struct {
		name   string
		set    contour.Set
		stroke StrokeStyle
		glow   GlowStyle
	}{
		{"zero width", set, StrokeStyle{Color: magenta, Width: 0}, GlowStyle{Radius: 1, Alpha: 0.5}},
		{"negative radius", set, StrokeStyle{Color: magenta, Width: 2}, GlowStyle{Radius: -1, Alpha: 0.5}},
		{"alpha above one", set, StrokeStyle{Color: magenta, Width: 2}, GlowStyle{Radius: 1, Alpha: 1.5}},
		{"negative alpha", set, StrokeStyle{Color: magenta, Width: 2}, GlowStyle{Radius: 1, Alpha: -0.1}},
		{"NaN alpha", set, StrokeStyle{Color: magenta, Width: 2}, GlowStyle{Radius: 1, Alpha: math.NaN()}},
		{"empty canvas", contour.Set{}, StrokeStyle{Color: magenta, Width: 2}, GlowStyle{Radius: 1, Alpha: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.set, tt.stroke, tt.glow)
			if !errors.Is(err, contour.ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}
