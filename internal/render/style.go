package render

import (
	"fmt"

	"github.com/ironsheep/neon-tubes/internal/contour"
	"github.com/ironsheep/neon-tubes/internal/imaging"
)

// StrokeStyle describes the tube itself.
type StrokeStyle struct {
	Color imaging.RGBColor
	// Width is the stroke thickness in pixels.
	Width int
}

// Validate reports a non-positive width.
func (s StrokeStyle) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("%w: line width %d must be positive", contour.ErrInvalidParameter, s.Width)
	}
	return nil
}

// GlowStyle describes the halo around the tube.
type GlowStyle struct {
	// Radius of the Gaussian blur in pixels. Zero disables the blur.
	Radius int
	// Alpha is the weight of the blurred layer in the final image.
	Alpha float64
}

// Validate reports a negative radius or an alpha outside [0,1].
func (g GlowStyle) Validate() error {
	if g.Radius < 0 {
		return fmt.Errorf("%w: glow radius %d must not be negative", contour.ErrInvalidParameter, g.Radius)
	}
	if !(g.Alpha >= 0 && g.Alpha <= 1) {
		return fmt.Errorf("%w: glow alpha %v not in [0,1]", contour.ErrInvalidParameter, g.Alpha)
	}
	return nil
}
