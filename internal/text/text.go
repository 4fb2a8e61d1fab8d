package text

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/neon-tubes/internal/contour"
)

// Placeholder is rendered when there is no text to render.
const Placeholder = "Neon!"

// Options controls text rasterization.
type Options struct {
	// FontPath is a TrueType or OpenType file. Empty selects the built-in
	// Go Regular face.
	FontPath string

	// Size is the font size in pixels.
	Size float64

	// Canvas is the output bitmap size.
	Canvas contour.Size
}

// Raster is a rendered text bitmap.
type Raster struct {
	Image *image.NRGBA

	// Ink is the pixel box covering every glyph outline.
	Ink image.Rectangle

	// Text is what was actually drawn, which is Placeholder when the
	// input was blank.
	Text string

	// Fallback reports that the built-in face was used instead of FontPath.
	Fallback bool
}

// Rasterize draws s in white on a black canvas, centered on both axes by
// its measured ink box. Lines separated by "\n" are stacked using the
// face's line height and centered as a block.
//
// A blank s is replaced by Placeholder and a font that cannot be loaded is
// replaced by Go Regular; both are logged as warnings and are not errors.
//
// # Errors
//
//   - Size <= 0 returns contour.ErrInvalidParameter
//   - a canvas with a non-positive dimension returns contour.ErrInvalidParameter
func Rasterize(s string, opts Options, logger *zap.Logger) (*Raster, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Size <= 0 || math.IsNaN(opts.Size) || math.IsInf(opts.Size, 0) {
		return nil, fmt.Errorf("%w: font size must be positive, got %v", contour.ErrInvalidParameter, opts.Size)
	}
	if !opts.Canvas.Valid() {
		return nil, fmt.Errorf("%w: canvas %dx%d", contour.ErrInvalidParameter, opts.Canvas.Width, opts.Canvas.Height)
	}

	if strings.TrimSpace(s) == "" {
		logger.Warn("no text to render, using placeholder", zap.String("placeholder", Placeholder))
		s = Placeholder
	}

	face, fallback, err := LoadFace(opts.FontPath, opts.Size, logger)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	lineHeight := face.Metrics().Height

	// union of the ink boxes, relative to the first baseline at the origin
	var box fixed.Rectangle26_6
	for i, line := range lines {
		b, _ := font.BoundString(face, line)
		if b.Empty() {
			continue
		}
		b = b.Add(fixed.Point26_6{Y: lineHeight * fixed.Int26_6(i)})
		if box.Empty() {
			box = b
		} else {
			box = box.Union(b)
		}
	}

	w := fixed.I(opts.Canvas.Width)
	h := fixed.I(opts.Canvas.Height)
	origin := fixed.Point26_6{
		X: (w-(box.Max.X-box.Min.X))/2 - box.Min.X,
		Y: (h-(box.Max.Y-box.Min.Y))/2 - box.Min.Y,
	}

	dst := imaging.New(opts.Canvas.Width, opts.Canvas.Height, color.Black)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
	}
	for i, line := range lines {
		d.Dot = origin.Add(fixed.Point26_6{Y: lineHeight * fixed.Int26_6(i)})
		d.DrawString(line)
	}

	ink := box.Add(origin)
	return &Raster{
		Image: dst,
		Ink: image.Rect(
			ink.Min.X.Floor(), ink.Min.Y.Floor(),
			ink.Max.X.Ceil(), ink.Max.Y.Ceil(),
		),
		Text:     s,
		Fallback: fallback,
	}, nil
}

// LoadFace opens the font at path at the given pixel size. When path is
// empty, unreadable or not a valid font, Go Regular is returned instead
// and fallback is true. Only a broken built-in face is an error.
func LoadFace(path string, size float64, logger *zap.Logger) (face font.Face, fallback bool, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != "" {
		face, err = openFace(path, size)
		if err == nil {
			return face, false, nil
		}
		logger.Warn("failed to load font, using default", zap.String("font", path), zap.Error(err))
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, true, fmt.Errorf("failed to parse default font: %w", err)
	}
	face, err = newFace(f, size)
	if err != nil {
		return nil, true, fmt.Errorf("failed to create default face: %w", err)
	}
	return face, true, nil
}

func openFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return newFace(f, size)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
