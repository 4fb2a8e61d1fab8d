package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/neon-tubes/internal/contour"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// ParseRGB parses a stroke color.
//
// Two notations are accepted:
//   - "R,G,B" with decimal components 0-255, e.g. "255,0,255"
//   - "#RRGGBB" or "#RGB" hex, e.g. "#ff00ff"
//
// Any other input, or a component out of range, returns an error wrapping
// contour.ErrInvalidParameter.
func ParseRGB(s string) (RGBColor, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return RGBColor{}, fmt.Errorf("%w: color %q: want #RGB or #RRGGBB", contour.ErrInvalidParameter, s)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return RGBColor{}, fmt.Errorf("%w: color %q: %w", contour.ErrInvalidParameter, s, err)
		}
		r, g, b := c.RGB255()
		return RGBColor{R: r, G: g, B: b}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGBColor{}, fmt.Errorf("%w: color %q: want R,G,B or #RRGGBB", contour.ErrInvalidParameter, s)
	}
	var comp [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return RGBColor{}, fmt.Errorf("%w: color %q: component %q not in 0-255", contour.ErrInvalidParameter, s, p)
		}
		comp[i] = uint8(v)
	}
	return RGBColor{R: comp[0], G: comp[1], B: comp[2]}, nil
}

// Color returns the opaque color.
func (c RGBColor) Color() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex formats the color as "#RRGGBB".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String formats the color in the "R,G,B" flag notation.
func (c RGBColor) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`
	RGB  RGBColor  `json:"rgb"`
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Useful for checking a rendered neon image: the tube core should carry the
// stroke color and the halo a darker shade of the same hue.
//
// Returns an error if (x, y) is outside the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if !image.Pt(x, y).In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

	h, s, l := colorful.Color{
		R: float64(r8) / 255.0,
		G: float64(g8) / 255.0,
		B: float64(b8) / 255.0,
	}.Hsl()

	return &ColorResult{
		Hex:  RGBColor{R: r8, G: g8, B: b8}.Hex(),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}, nil
}
