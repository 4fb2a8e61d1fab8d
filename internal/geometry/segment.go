package geometry

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Kind identifies the type of a path segment.
type Kind int

// Segment kinds. Values outside this list are treated as unknown.
const (
	KindMove Kind = iota + 1
	KindLine
	KindQuadratic
	KindCubic
	KindArc
	KindClose
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindLine:
		return "line"
	case KindQuadratic:
		return "quadratic"
	case KindCubic:
		return "cubic"
	case KindArc:
		return "arc"
	case KindClose:
		return "close"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Drawing reports whether segments of this kind produce visible geometry.
func (k Kind) Drawing() bool {
	return k == KindLine || k == KindQuadratic || k == KindCubic || k == KindArc
}

// Segment is one piece of a vector path.
//
// Start and End are used by every drawing kind. A move only uses End (the
// new current point); a close uses neither. C1 is the control point of a
// quadratic curve; C1 and C2 are the control points of a cubic curve. Arcs
// carry their center parameterization in Arc.
type Segment struct {
	Kind  Kind
	Start vec.Vec2
	End   vec.Vec2
	C1    vec.Vec2
	C2    vec.Vec2
	Arc   *Ellipse
}

// Ellipse is the center parameterization of an elliptical arc.
type Ellipse struct {
	Center vec.Vec2
	RX, RY float64

	// Phi is the rotation of the x-axis in radians.
	Phi float64

	// Theta is the start angle and Delta the signed sweep, both in radians.
	Theta float64
	Delta float64
}

// Move returns a segment that starts a new subpath at p.
func Move(p vec.Vec2) Segment {
	return Segment{Kind: KindMove, End: p}
}

// Line returns a straight segment.
func Line(from, to vec.Vec2) Segment {
	return Segment{Kind: KindLine, Start: from, End: to}
}

// Quadratic returns a quadratic Bézier segment with control point c.
func Quadratic(from, c, to vec.Vec2) Segment {
	return Segment{Kind: KindQuadratic, Start: from, C1: c, End: to}
}

// Cubic returns a cubic Bézier segment with control points c1 and c2.
func Cubic(from, c1, c2, to vec.Vec2) Segment {
	return Segment{Kind: KindCubic, Start: from, C1: c1, C2: c2, End: to}
}

// Close returns a segment that closes the current subpath.
func Close() Segment {
	return Segment{Kind: KindClose}
}

// PointAt evaluates the segment at parameter t in [0,1].
//
// For moves the target is returned regardless of t. Close and unknown
// segments return the zero vector.
func (s Segment) PointAt(t float64) vec.Vec2 {
	switch s.Kind {
	case KindMove:
		return s.End
	case KindLine:
		return s.Start.Add(s.End.Sub(s.Start).Mul(t))
	case KindQuadratic:
		mt := 1 - t
		return s.Start.Mul(mt * mt).
			Add(s.C1.Mul(2 * mt * t)).
			Add(s.End.Mul(t * t))
	case KindCubic:
		mt := 1 - t
		return s.Start.Mul(mt * mt * mt).
			Add(s.C1.Mul(3 * mt * mt * t)).
			Add(s.C2.Mul(3 * mt * t * t)).
			Add(s.End.Mul(t * t * t))
	case KindArc:
		if s.Arc == nil {
			return s.Start.Add(s.End.Sub(s.Start).Mul(t))
		}
		if t == 1 {
			return s.End
		}
		return s.Arc.pointAt(s.Arc.Theta + t*s.Arc.Delta)
	default:
		return vec.Vec2{}
	}
}

func (e *Ellipse) pointAt(angle float64) vec.Vec2 {
	sinPhi, cosPhi := math.Sincos(e.Phi)
	sinA, cosA := math.Sincos(angle)
	return vec.Vec2{
		X: e.Center.X + e.RX*cosPhi*cosA - e.RY*sinPhi*sinA,
		Y: e.Center.Y + e.RX*sinPhi*cosA + e.RY*cosPhi*sinA,
	}
}
