package geometry

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/ironsheep/neon-tubes/internal/contour"
)

// DefaultSteps is the number of samples taken along each curved segment.
const DefaultSteps = 25

// Sample converts a drawing segment into pixel points.
//
// A line yields only its endpoint; the start point is expected to be
// present already as the end of the previous segment or the subpath
// anchor. Curves and arcs yield exactly steps points, evaluated at
// t = i/steps for i = 1..steps, so the last point is the segment's
// endpoint. Coordinates are rounded to the nearest pixel.
//
// # Errors
//
//   - steps <= 0 returns contour.ErrInvalidParameter
//   - move, close and unknown segments return contour.ErrInvalidParameter
func Sample(seg Segment, steps int) ([]contour.Point, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: sample steps must be positive, got %d", contour.ErrInvalidParameter, steps)
	}

	switch seg.Kind {
	case KindLine:
		return []contour.Point{toPoint(seg.End)}, nil
	case KindQuadratic, KindCubic, KindArc:
		pts := make([]contour.Point, steps)
		for i := 1; i <= steps; i++ {
			pts[i-1] = toPoint(seg.PointAt(float64(i) / float64(steps)))
		}
		return pts, nil
	default:
		return nil, fmt.Errorf("%w: cannot sample %s segment", contour.ErrInvalidParameter, seg.Kind)
	}
}

// toPoint rounds a float position to the pixel grid.
func toPoint(v vec.Vec2) contour.Point {
	return contour.Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}
