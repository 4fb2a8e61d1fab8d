package geometry

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Arc returns an elliptical arc segment given in SVG endpoint form.
//
// rotation is the x-axis rotation in degrees. Radii that are too small to
// span the endpoints are scaled up uniformly. If either radius is zero the
// arc degrades to a straight line, and if the endpoints coincide the
// result is a zero-length line.
func Arc(from vec.Vec2, rx, ry, rotation float64, largeArc, sweep bool, to vec.Vec2) Segment {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if from == to || rx == 0 || ry == 0 {
		return Line(from, to)
	}

	phi := rotation * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// step 1: transform the midpoint into the ellipse frame
	dx := (from.X - to.X) / 2
	dy := (from.Y - to.Y) / 2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// step 2: correct out-of-range radii
	lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// step 3: center in the ellipse frame
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	// step 4: back to user space
	center := vec.Vec2{
		X: cosPhi*cx1 - sinPhi*cy1 + (from.X+to.X)/2,
		Y: sinPhi*cx1 + cosPhi*cy1 + (from.Y+to.Y)/2,
	}

	theta := vectorAngle(1, 0, (x1-cx1)/rx, (y1-cy1)/ry)
	delta := vectorAngle((x1-cx1)/rx, (y1-cy1)/ry, (-x1-cx1)/rx, (-y1-cy1)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	return Segment{
		Kind:  KindArc,
		Start: from,
		End:   to,
		Arc: &Ellipse{
			Center: center,
			RX:     rx,
			RY:     ry,
			Phi:    phi,
			Theta:  theta,
			Delta:  delta,
		},
	}
}

// vectorAngle returns the signed angle from (ux,uy) to (vx,vy).
func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
