// Package geometry turns vector path segments into pixel polylines.
//
// A Segment is one piece of a path: a move, a straight line, a quadratic or
// cubic Bézier curve, an elliptical arc, or a close. Sample evaluates a
// drawing segment at a fixed number of parameter steps; the Assembler groups
// the sampled points of consecutive segments into subpaths and emits each
// finished subpath as a contour.Polyline.
//
// Float geometry uses seehuhn.de/go/geom/vec. Paths built with
// seehuhn.de/go/geom/path can be converted with FromPath.
package geometry
