package imaging

import (
	"image"

	"github.com/ironsheep/neon-tubes/internal/contour"
)

// neighbors lists the 8 neighbor offsets in counterclockwise order as seen
// on screen (y grows downward), starting east.
var neighbors = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

const west = 4

// ExtractContours reduces a raster image to the outer contours of its edges.
//
// The image goes through EdgeMap with the fixed CannyLow/CannyHigh
// thresholds, then TraceExternal. An image without edges yields no
// polylines.
func ExtractContours(img image.Image) []contour.Polyline {
	return TraceExternal(EdgeMap(img, CannyLow, CannyHigh))
}

// TraceExternal follows the outer border of every edge component that is
// not enclosed by another component.
//
// Edge pixels are those with a value above 127. Components are 8-connected
// and the background is 4-connected. Components sitting inside a hole of
// another component are skipped. Each border is traced once, straight
// runs are compressed so only the points where the direction changes are
// kept, and the start point is repeated at the end so the loop is closed.
// A component of a single pixel becomes a one-point polyline.
//
// Polylines are returned in raster order of their topmost-leftmost pixel.
func TraceExternal(edges *image.Gray) []contour.Polyline {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	fg := make([]bool, w*h)
	for y := 0; y < h; y++ {
		row := edges.Pix[y*edges.Stride:]
		for x := 0; x < w; x++ {
			fg[y*w+x] = row[x] > 127
		}
	}
	isFg := func(p image.Point) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h && fg[p.Y*w+p.X]
	}

	outside := floodOutside(fg, w, h)
	labeled := make([]bool, w*h)
	var out []contour.Polyline

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !fg[i] || labeled[i] {
				continue
			}
			markComponent(fg, labeled, w, h, i)

			// The first pixel found in raster order is the topmost-leftmost
			// of its component; its west neighbor lies in the surrounding
			// background.
			if x > 0 && !outside[i-1] {
				continue
			}
			border := traceBorder(image.Pt(x, y), isFg)
			out = append(out, compress(border))
		}
	}
	return out
}

// floodOutside marks background pixels 4-connected to the image frame.
func floodOutside(fg []bool, w, h int) []bool {
	outside := make([]bool, w*h)
	stack := make([]int, 0, 2*(w+h))
	push := func(x, y int) {
		i := y*w + x
		if !fg[i] && !outside[i] {
			outside[i] = true
			stack = append(stack, i)
		}
	}
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		if x > 0 {
			push(x-1, y)
		}
		if x < w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < h-1 {
			push(x, y+1)
		}
	}
	return outside
}

// markComponent labels the 8-connected component containing pixel start.
func markComponent(fg, labeled []bool, w, h, start int) {
	labeled[start] = true
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for _, d := range neighbors {
			nx, ny := x+d.X, y+d.Y
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			j := ny*w + nx
			if fg[j] && !labeled[j] {
				labeled[j] = true
				stack = append(stack, j)
			}
		}
	}
}

// traceBorder walks the outer border starting at start, whose west
// neighbor must be background. This is the border following step of
// Suzuki and Abe: probe clockwise from the west to find where the walk
// will come back from, then repeatedly turn counterclockwise around the
// current pixel until the walk returns to start along its first step.
func traceBorder(start image.Point, isFg func(image.Point) bool) []image.Point {
	var first image.Point
	found := false
	for k := 0; k < 8; k++ {
		d := (west - k + 8) % 8
		if q := start.Add(neighbors[d]); isFg(q) {
			first, found = q, true
			break
		}
	}
	if !found {
		return []image.Point{start}
	}

	var border []image.Point
	prev, cur := first, start
	for {
		from := direction(cur, prev)
		var next image.Point
		for k := 1; k <= 8; k++ {
			q := cur.Add(neighbors[(from+k)%8])
			if isFg(q) {
				next = q
				break
			}
		}
		border = append(border, cur)
		if next == start && cur == first {
			break
		}
		prev, cur = cur, next
	}
	return border
}

// direction returns the neighbor index of b relative to a.
func direction(a, b image.Point) int {
	d := b.Sub(a)
	for i, n := range neighbors {
		if n == d {
			return i
		}
	}
	return 0
}

// compress drops points in the middle of straight runs of a closed border
// and closes the result. Single points are returned as they are.
func compress(border []image.Point) contour.Polyline {
	n := len(border)
	if n == 1 {
		return contour.Polyline{{X: border[0].X, Y: border[0].Y}}
	}

	out := make(contour.Polyline, 0, n+1)
	for i, p := range border {
		in := p.Sub(border[(i-1+n)%n])
		next := border[(i+1)%n].Sub(p)
		if in != next {
			out = append(out, contour.Point{X: p.X, Y: p.Y})
		}
	}
	if len(out) == 0 {
		out = append(out, contour.Point{X: border[0].X, Y: border[0].Y})
	}
	return append(out, out[0])
}
