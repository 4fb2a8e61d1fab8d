package contour

import (
	"errors"
	"image"
)

var (
	// ErrAcquisition reports that an input could not be turned into contours,
	// for example an unreadable file or a page index outside the document.
	ErrAcquisition = errors.New("acquisition failed")

	// ErrInvalidParameter reports a malformed configuration value such as an
	// unparseable color, a non-positive width or an alpha outside [0,1].
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedInput reports an input kind the pipeline has no source for.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrRender reports that the final image could not be encoded or written.
	ErrRender = errors.New("render failed")
)

// Point is a position on the pixel grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Polyline is an ordered run of points joined by straight segments.
//
// A polyline with first point equal to last point (and at least two points)
// is closed. Polylines are treated as immutable once produced; use Clone
// before modifying one obtained from a Set.
type Polyline []Point

// Closed reports whether the polyline returns to its first point.
func (p Polyline) Closed() bool {
	return len(p) >= 2 && p[0] == p[len(p)-1]
}

// Clone returns an independent copy of the polyline.
func (p Polyline) Clone() Polyline {
	if p == nil {
		return nil
	}
	out := make(Polyline, len(p))
	copy(out, p)
	return out
}

// Bounds returns the smallest rectangle containing every point. The maximum
// corner is exclusive, matching image.Rectangle. An empty polyline has
// empty bounds.
func (p Polyline) Bounds() image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}
	r := image.Rect(p[0].X, p[0].Y, p[0].X+1, p[0].Y+1)
	for _, pt := range p[1:] {
		r = r.Union(image.Rect(pt.X, pt.Y, pt.X+1, pt.Y+1))
	}
	return r
}

// Size is a canvas size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Rect returns the canvas as an image rectangle anchored at the origin.
func (s Size) Rect() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// Set is the normalized output of contour acquisition.
//
// Polylines are kept in the order they were produced, which is also the
// order they are drawn in.
type Set struct {
	Polylines []Polyline `json:"polylines"`
	Size      Size       `json:"size"`
}

// Empty reports whether the set contains no polylines.
func (s Set) Empty() bool {
	return len(s.Polylines) == 0
}

// Points returns the total number of points across all polylines.
func (s Set) Points() int {
	n := 0
	for _, p := range s.Polylines {
		n += len(p)
	}
	return n
}

// Bounds returns the union of all polyline bounds.
func (s Set) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, p := range s.Polylines {
		r = r.Union(p.Bounds())
	}
	return r
}
