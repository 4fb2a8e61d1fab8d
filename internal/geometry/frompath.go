package geometry

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FromPath converts a path command stream into segments.
//
// Drawing commands issued before any MoveTo start at the origin.
func FromPath(p path.Path) Path {
	var out Path
	var current, start vec.Vec2

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			current = pts[0]
			start = current
			out = append(out, Move(current))
		case path.CmdLineTo:
			out = append(out, Line(current, pts[0]))
			current = pts[0]
		case path.CmdQuadTo:
			out = append(out, Quadratic(current, pts[0], pts[1]))
			current = pts[1]
		case path.CmdCubeTo:
			out = append(out, Cubic(current, pts[0], pts[1], pts[2]))
			current = pts[2]
		case path.CmdClose:
			out = append(out, Close())
			current = start
		}
	}
	return out
}
