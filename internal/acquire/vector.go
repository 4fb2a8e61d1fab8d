package acquire

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/ironsheep/neon-tubes/internal/contour"
	"github.com/ironsheep/neon-tubes/internal/geometry"
	"github.com/ironsheep/neon-tubes/internal/svg"
)

// VectorSource samples the shapes of an SVG file onto the caller canvas.
// Coordinates are taken in user units without rescaling.
type VectorSource struct {
	Path   string
	Canvas contour.Size
	Steps  int
	Logger *zap.Logger
}

// Acquire parses the SVG file and samples every shape with Steps points per
// curve. A document without shapes yields an empty set.
func (s *VectorSource) Acquire(ctx context.Context) (contour.Set, error) {
	doc, err := svg.ParseFile(s.Path)
	if err != nil {
		return contour.Set{}, fmt.Errorf("%w: %s: %w", contour.ErrAcquisition, s.Path, err)
	}
	polylines, err := geometry.AssemblePaths(doc.Paths, s.Steps, s.Logger)
	if err != nil {
		return contour.Set{}, err
	}
	return contour.Set{Polylines: polylines, Size: s.Canvas}, nil
}

// kappa places cubic control points so four quarter arcs approximate a
// circle.
const kappa = 0.5522847498307936

// PatternSource draws a single circle centered on the canvas, useful for
// checking stroke and glow settings without an input file.
type PatternSource struct {
	Canvas    contour.Size
	LineWidth int
	Steps     int
	Logger    *zap.Logger
}

// Radius is the circle radius: half the shorter canvas side less two line
// widths, but never below 10 pixels.
func (s *PatternSource) Radius() float64 {
	r := float64(min(s.Canvas.Width, s.Canvas.Height))/2 - 2*float64(s.LineWidth)
	return math.Max(r, 10)
}

// Acquire returns the circle as one closed polyline. It fails with
// ErrInvalidParameter when the canvas has no area.
func (s *PatternSource) Acquire(ctx context.Context) (contour.Set, error) {
	if !s.Canvas.Valid() {
		return contour.Set{}, fmt.Errorf("%w: canvas %dx%d", contour.ErrInvalidParameter, s.Canvas.Width, s.Canvas.Height)
	}
	c := vec.Vec2{X: float64(s.Canvas.Width) / 2, Y: float64(s.Canvas.Height) / 2}
	r := s.Radius()
	k := r * kappa
	pt := func(dx, dy float64) vec.Vec2 { return vec.Vec2{X: c.X + dx, Y: c.Y + dy} }

	circle := (&path.Data{}).
		MoveTo(pt(r, 0)).
		CubeTo(pt(r, k), pt(k, r), pt(0, r)).
		CubeTo(pt(-k, r), pt(-r, k), pt(-r, 0)).
		CubeTo(pt(-r, -k), pt(-k, -r), pt(0, -r)).
		CubeTo(pt(k, -r), pt(r, -k), pt(r, 0)).
		Close()

	polylines, err := geometry.AssemblePaths([]geometry.Path{geometry.FromPath(circle.Iter())}, s.Steps, s.Logger)
	if err != nil {
		return contour.Set{}, err
	}
	return contour.Set{Polylines: polylines, Size: s.Canvas}, nil
}
