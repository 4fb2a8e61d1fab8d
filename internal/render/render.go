package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/gogpu/gg"

	"github.com/ironsheep/neon-tubes/internal/contour"
)

// Render draws set with the given styles and returns the composited image.
//
// The canvas has exactly set.Size; nothing is rescaled and points outside
// the canvas are clipped. An empty set renders as solid black.
func Render(set contour.Set, stroke StrokeStyle, glow GlowStyle) (*image.RGBA, error) {
	if err := stroke.Validate(); err != nil {
		return nil, err
	}
	if err := glow.Validate(); err != nil {
		return nil, err
	}

	sharp, err := Sharp(set, stroke)
	if err != nil {
		return nil, err
	}
	return Blend(sharp, Glow(sharp, glow.Radius), glow.Alpha), nil
}

// Sharp strokes every polyline of set onto an opaque black canvas.
//
// Polylines of two or more points are drawn as connected segments with
// round caps and joins. A single point becomes a dot one stroke wide.
// Empty polylines are ignored.
func Sharp(set contour.Set, stroke StrokeStyle) (*image.RGBA, error) {
	if !set.Size.Valid() {
		return nil, fmt.Errorf("%w: canvas %dx%d", contour.ErrInvalidParameter, set.Size.Width, set.Size.Height)
	}
	if err := stroke.Validate(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(set.Size.Width, set.Size.Height)
	defer dc.Close()

	dc.ClearWithColor(gg.Black)
	dc.SetColor(stroke.Color.Color())
	dc.SetLineWidth(float64(stroke.Width))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for i, pl := range set.Polylines {
		switch len(pl) {
		case 0:
			continue
		case 1:
			x, y := center(pl[0])
			dc.DrawPoint(x, y, float64(stroke.Width)/2)
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("%w: failed to draw point %d: %w", contour.ErrRender, i, err)
			}
		default:
			dc.MoveTo(center(pl[0]))
			for _, p := range pl[1:] {
				dc.LineTo(center(p))
			}
			if err := dc.Stroke(); err != nil {
				return nil, fmt.Errorf("%w: failed to stroke polyline %d: %w", contour.ErrRender, i, err)
			}
		}
	}

	return opaque(toRGBA(dc.Image())), nil
}

// center maps a grid point to the middle of its pixel.
func center(p contour.Point) (float64, float64) {
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}

// Glow returns a blurred, opaque copy of img. A radius of zero returns an
// unmodified copy.
func Glow(img *image.RGBA, radius int) *image.RGBA {
	if radius <= 0 {
		return opaque(toRGBA(img))
	}
	return opaque(blur.Gaussian(img, float64(radius)))
}

// Blend mixes the layers as sharp·(1-alpha) + blurred·alpha.
//
// At alpha 0 the result is a copy of sharp and at alpha 1 a copy of
// blurred, with no rounding in between. The result is always opaque.
func Blend(sharp, blurred *image.RGBA, alpha float64) *image.RGBA {
	switch {
	case alpha <= 0:
		return opaque(toRGBA(sharp))
	case alpha >= 1:
		return opaque(toRGBA(blurred))
	}
	return opaque(blend.Opacity(sharp, blurred, alpha))
}

// toRGBA returns a copy of img as *image.RGBA anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// opaque forces the alpha channel of img to 255 in place.
func opaque(img *image.RGBA) *image.RGBA {
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 255
		}
	}
	return img
}
