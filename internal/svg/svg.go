package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"

	"github.com/ironsheep/neon-tubes/internal/geometry"
)

// Document is the drawable content of an SVG file.
type Document struct {
	// Paths holds one entry per shape element, in document order.
	Paths []geometry.Path
}

// ParseFile parses the SVG document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open svg: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an SVG document from r.
//
// # Errors
//
//   - Returns error if the XML is malformed
//   - Returns error if the root element is not <svg>
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read svg: %w", err)
	}
	if err := checkRoot(data); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	doc := &Document{}
	for _, sp := range icon.SVGPaths {
		if p := FromRasterx(sp.Path); len(p) > 0 {
			doc.Paths = append(doc.Paths, p)
		}
	}
	return doc, nil
}

// checkRoot reports an error unless the first element of data is <svg>.
func checkRoot(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return errors.New("failed to parse svg: no <svg> element")
		}
		if err != nil {
			return fmt.Errorf("failed to parse svg: %w", err)
		}
		if el, ok := tok.(xml.StartElement); ok {
			if el.Name.Local != "svg" {
				return fmt.Errorf("failed to parse svg: root element is <%s>", el.Name.Local)
			}
			return nil
		}
	}
}

// ParsePathData converts the value of a path "d" attribute.
func ParsePathData(d string) (geometry.Path, error) {
	c := &oksvg.PathCursor{ErrorMode: oksvg.StrictErrorMode}
	if err := c.CompilePath(d); err != nil {
		return nil, fmt.Errorf("failed to parse path data: %w", err)
	}
	return FromRasterx(c.Path), nil
}

// FromRasterx replays a rasterx path into segments.
func FromRasterx(p rasterx.Path) geometry.Path {
	b := &builder{}
	p.AddTo(b)
	return b.out
}

// builder implements rasterx.Adder, tracking the current point and the
// start of the current subpath.
type builder struct {
	out          geometry.Path
	current, sub vec.Vec2
}

func toVec(p fixed.Point26_6) vec.Vec2 {
	return vec.Vec2{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

func (b *builder) Start(a fixed.Point26_6) {
	b.current = toVec(a)
	b.sub = b.current
	b.out = append(b.out, geometry.Move(b.current))
}

func (b *builder) Line(to fixed.Point26_6) {
	end := toVec(to)
	b.out = append(b.out, geometry.Line(b.current, end))
	b.current = end
}

func (b *builder) QuadBezier(c, to fixed.Point26_6) {
	end := toVec(to)
	b.out = append(b.out, geometry.Quadratic(b.current, toVec(c), end))
	b.current = end
}

func (b *builder) CubeBezier(c1, c2, to fixed.Point26_6) {
	end := toVec(to)
	b.out = append(b.out, geometry.Cubic(b.current, toVec(c1), toVec(c2), end))
	b.current = end
}

// Stop closes the subpath when closeLoop is set. An open stop carries no
// geometry; the next Start or the end of the path ends the subpath.
func (b *builder) Stop(closeLoop bool) {
	if closeLoop {
		b.out = append(b.out, geometry.Close())
		b.current = b.sub
	}
}
