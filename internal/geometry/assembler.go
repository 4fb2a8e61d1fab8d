package geometry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/neon-tubes/internal/contour"
)

// State is the assembler's position in the subpath state machine.
type State int

const (
	// Empty means no subpath is in progress.
	Empty State = iota
	// Building means points are being collected for the current subpath.
	Building
)

func (s State) String() string {
	if s == Building {
		return "building"
	}
	return "empty"
}

// Path is an ordered list of segments. Subpath state never carries over
// from one Path to the next.
type Path []Segment

// Assembler groups sampled segments into subpaths and emits each finished
// subpath as a polyline.
//
// Transitions:
//   - Empty, drawing segment: the segment start becomes the anchor and the
//     first buffered point, then the sampled points are appended.
//   - Building, drawing segment: sampled points are appended.
//   - Building, close: the anchor is appended, the buffer is emitted and
//     the assembler returns to Empty.
//   - Building, move: the buffer is emitted and a new subpath is started at
//     the move target.
//   - Empty, move: a new subpath is started at the move target. If nothing
//     is drawn from it, the single point is dropped.
//   - Empty, close: ignored.
//   - End of path: whatever is buffered is emitted as an open polyline.
//
// Buffers with fewer than two points are never emitted. Segments of an
// unknown kind are skipped with a warning.
//
// An Assembler is not safe for concurrent use.
type Assembler struct {
	steps  int
	logger *zap.Logger

	state   State
	anchor  contour.Point
	buf     contour.Polyline
	out     []contour.Polyline
	skipped int
}

// NewAssembler creates an assembler that samples curves with the given
// number of steps. A nil logger discards warnings.
func NewAssembler(steps int, logger *zap.Logger) (*Assembler, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: sample steps must be positive, got %d", contour.ErrInvalidParameter, steps)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{steps: steps, logger: logger}, nil
}

// State returns the current state.
func (a *Assembler) State() State { return a.state }

// Skipped returns how many unknown segments have been ignored so far.
func (a *Assembler) Skipped() int { return a.skipped }

// Feed advances the state machine by one segment.
func (a *Assembler) Feed(seg Segment) error {
	switch {
	case seg.Kind == KindMove:
		a.flush()
		a.begin(toPoint(seg.End))

	case seg.Kind == KindClose:
		if a.state == Empty {
			return nil
		}
		a.buf = append(a.buf, a.anchor)
		a.flush()

	case seg.Kind.Drawing():
		if a.state == Empty {
			a.begin(toPoint(seg.Start))
		}
		pts, err := Sample(seg, a.steps)
		if err != nil {
			return err
		}
		a.buf = append(a.buf, pts...)

	default:
		a.skipped++
		a.logger.Warn("skipping unknown path segment", zap.Stringer("kind", seg.Kind))
	}
	return nil
}

// End finishes the current path, emitting any open subpath.
func (a *Assembler) End() {
	a.flush()
}

// Assemble feeds every segment of p followed by End.
func (a *Assembler) Assemble(p Path) error {
	for _, seg := range p {
		if err := a.Feed(seg); err != nil {
			a.End()
			return err
		}
	}
	a.End()
	return nil
}

// Polylines returns everything emitted so far, in emission order.
func (a *Assembler) Polylines() []contour.Polyline {
	return a.out
}

func (a *Assembler) begin(p contour.Point) {
	a.state = Building
	a.anchor = p
	a.buf = contour.Polyline{p}
}

func (a *Assembler) flush() {
	if a.state == Building && len(a.buf) >= 2 {
		a.out = append(a.out, a.buf)
	}
	a.buf = nil
	a.state = Empty
}

// AssemblePaths converts every path into polylines using one assembler.
func AssemblePaths(paths []Path, steps int, logger *zap.Logger) ([]contour.Polyline, error) {
	a, err := NewAssembler(steps, logger)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := a.Assemble(p); err != nil {
			return nil, err
		}
	}
	return a.Polylines(), nil
}
