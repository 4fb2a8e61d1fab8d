package geometry

import (
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"

	"github.com/ironsheep/neon-tubes/internal/contour"
)

func v(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func TestSample_CurveStepCount(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		end  contour.Point
	}{
		{"quadratic", Quadratic(v(0, 0), v(50, 80), v(100, 0)), contour.Point{X: 100, Y: 0}},
		{"cubic", Cubic(v(0, 0), v(0, 50), v(100, 50), v(100, 0)), contour.Point{X: 100, Y: 0}},
		{"arc", Arc(v(0, 0), 50, 50, 0, false, true, v(100, 0)), contour.Point{X: 100, Y: 0}},
		{"fractional end", Cubic(v(0, 0), v(1, 1), v(2, 2), v(10.4, 20.6)), contour.Point{X: 10, Y: 21}},
	}

	for _, tt := range tests {
		for _, steps := range []int{1, 4, DefaultSteps} {
			pts, err := Sample(tt.seg, steps)
			if err != nil {
				t.Fatalf("%s: Sample(%d) error: %v", tt.name, steps, err)
			}
			if len(pts) != steps {
				t.Errorf("%s: Sample(%d) returned %d points", tt.name, steps, len(pts))
			}
			if last := pts[len(pts)-1]; last != tt.end {
				t.Errorf("%s: last point = %v, want %v", tt.name, last, tt.end)
			}
		}
	}
}

func TestSample_LineReturnsEndpoint(t *testing.T) {
	pts, err := Sample(Line(v(3, 4), v(10.6, 7.2)), 25)
	if err != nil {
		t.Fatalf("Sample error: %v", err)
	}
	want := []contour.Point{{X: 11, Y: 7}}
	if len(pts) != 1 || pts[0] != want[0] {
		t.Errorf("Sample(line) = %v, want %v", pts, want)
	}
}

func TestSample_InvalidSteps(t *testing.T) {
	for _, steps := range []int{0, -5} {
		_, err := Sample(Cubic(v(0, 0), v(1, 1), v(2, 2), v(3, 3)), steps)
		if !errors.Is(err, contour.ErrInvalidParameter) {
			t.Errorf("Sample(steps=%d) error = %v, want ErrInvalidParameter", steps, err)
		}
	}
}

func TestSample_NonDrawingSegments(t *testing.T) {
	for _, seg := range []Segment{Move(v(1, 1)), Close(), {Kind: Kind(42)}} {
		if _, err := Sample(seg, 10); !errors.Is(err, contour.ErrInvalidParameter) {
			t.Errorf("Sample(%s) error = %v, want ErrInvalidParameter", seg.Kind, err)
		}
	}
}

func TestSample_CubicMidpoint(t *testing.T) {
	// symmetric arch, midpoint at (50, 37.5)
	pts, err := Sample(Cubic(v(0, 0), v(0, 50), v(100, 50), v(100, 0)), 2)
	if err != nil {
		t.Fatal(err)
	}
	if pts[0] != (contour.Point{X: 50, Y: 38}) {
		t.Errorf("midpoint = %v, want {50 38}", pts[0])
	}
}

func TestArc_Semicircle(t *testing.T) {
	seg := Arc(v(0, 0), 50, 50, 0, false, false, v(100, 0))
	if seg.Kind != KindArc {
		t.Fatalf("Kind = %s, want arc", seg.Kind)
	}
	if c := seg.Arc.Center; math.Abs(c.X-50) > 1e-9 || math.Abs(c.Y) > 1e-9 {
		t.Errorf("center = %v, want (50,0)", c)
	}

	pts, err := Sample(seg, 2)
	if err != nil {
		t.Fatal(err)
	}
	if pts[0] != (contour.Point{X: 50, Y: 50}) {
		t.Errorf("midpoint = %v, want {50 50}", pts[0])
	}

	// sweep flips the side of the chord
	flipped := Arc(v(0, 0), 50, 50, 0, false, true, v(100, 0))
	if mid := flipped.PointAt(0.5); math.Abs(mid.Y+50) > 1e-9 {
		t.Errorf("swept midpoint = %v, want y=-50", mid)
	}
}

func TestArc_RadiusScaling(t *testing.T) {
	// radii too small to reach: scaled to half the chord
	seg := Arc(v(0, 0), 10, 10, 0, false, true, v(100, 0))
	if math.Abs(seg.Arc.RX-50) > 1e-9 || math.Abs(seg.Arc.RY-50) > 1e-9 {
		t.Errorf("radii = %v,%v, want 50,50", seg.Arc.RX, seg.Arc.RY)
	}
}

func TestArc_Degenerate(t *testing.T) {
	if seg := Arc(v(0, 0), 0, 10, 0, false, true, v(10, 10)); seg.Kind != KindLine {
		t.Errorf("zero radius: Kind = %s, want line", seg.Kind)
	}
	if seg := Arc(v(5, 5), 10, 10, 0, false, true, v(5, 5)); seg.Kind != KindLine {
		t.Errorf("same endpoints: Kind = %s, want line", seg.Kind)
	}
}

func TestSegment_PointAtEnds(t *testing.T) {
	segs := []Segment{
		Line(v(1, 2), v(9, 8)),
		Quadratic(v(1, 2), v(5, 20), v(9, 8)),
		Cubic(v(1, 2), v(0, 10), v(10, 10), v(9, 8)),
	}
	for _, s := range segs {
		if got := s.PointAt(0); got != s.Start {
			t.Errorf("%s PointAt(0) = %v, want %v", s.Kind, got, s.Start)
		}
		if got := s.PointAt(1); got != s.End {
			t.Errorf("%s PointAt(1) = %v, want %v", s.Kind, got, s.End)
		}
	}
}
