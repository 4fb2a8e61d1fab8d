package acquire

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ironsheep/neon-tubes/internal/config"
	"github.com/ironsheep/neon-tubes/internal/contour"
	"github.com/ironsheep/neon-tubes/internal/document"
	"github.com/ironsheep/neon-tubes/internal/imaging"
	"github.com/ironsheep/neon-tubes/internal/text"
)

// Kind identifies an input modality.
type Kind string

// Input modalities, one per Source implementation.
const (
	// KindRaster is a decodable image file traced at its native size.
	KindRaster Kind = "raster-image"
	// KindDocument is one page of a PDF.
	KindDocument Kind = "document-page"
	// KindText is text from a file or given directly.
	KindText Kind = "text"
	// KindVector is an SVG file sampled onto the canvas.
	KindVector Kind = "vector-graphic"
	// KindPattern is the built-in circle.
	KindPattern Kind = "test-pattern"
)

// PatternName is the input path that selects the built-in test pattern.
const PatternName = "circle"

var rasterExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true,
}

// Input describes what to acquire.
type Input struct {
	Kind Kind
	Path string

	// Text overrides the content of a text input when TextSet is true.
	Text    string
	TextSet bool
}

// Source produces the contours of one input.
type Source interface {
	Acquire(ctx context.Context) (contour.Set, error)
}

// Detect classifies path by its extension.
//
// A path that does not exist is accepted only as direct text, which needs
// textSet. PatternName, in any letter case, selects the test pattern.
//
// # Errors
//
//   - missing file without a text override returns contour.ErrAcquisition
//   - an unknown extension returns contour.ErrUnsupportedInput
func Detect(path, textOverride string, textSet bool) (Input, error) {
	in := Input{Path: path, Text: textOverride, TextSet: textSet}
	if strings.EqualFold(path, PatternName) {
		in.Kind = KindPattern
		return in, nil
	}

	if _, err := os.Stat(path); err != nil {
		if textSet && errors.Is(err, fs.ErrNotExist) {
			in.Kind = KindText
			in.Path = ""
			return in, nil
		}
		return Input{}, fmt.Errorf("%w: input %q: %w", contour.ErrAcquisition, path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case rasterExts[ext]:
		in.Kind = KindRaster
	case ext == ".pdf":
		in.Kind = KindDocument
	case ext == ".txt":
		in.Kind = KindText
	case ext == ".svg":
		in.Kind = KindVector
	default:
		return Input{}, fmt.Errorf("%w: unrecognized extension %q", contour.ErrUnsupportedInput, ext)
	}
	return in, nil
}

// Deps are the shared collaborators of the sources. Zero values are
// replaced with working defaults.
type Deps struct {
	Logger *zap.Logger
	Images *imaging.ImageCache
	Pages  *document.Pages
}

// NewSource returns the source for in under cfg.
func NewSource(in Input, cfg config.Config, deps Deps) (Source, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("kind", string(in.Kind)))

	switch in.Kind {
	case KindRaster:
		return &RasterSource{
			Path:   in.Path,
			Canvas: cfg.Canvas(),
			Images: deps.Images,
			Logger: logger,
		}, nil
	case KindDocument:
		pages := deps.Pages
		if pages == nil {
			pages = document.NewPages(logger)
		}
		return &DocumentSource{Path: in.Path, Page: cfg.Page, Pages: pages}, nil
	case KindText:
		src := &TextSource{
			Path: in.Path,
			Text: cfg.Text,
			Options: text.Options{
				FontPath: cfg.FontPath,
				Size:     float64(cfg.FontSize),
				Canvas:   cfg.Canvas(),
			},
			Logger: logger,
		}
		if in.TextSet {
			src.Text, src.Path = in.Text, ""
		}
		return src, nil
	case KindVector:
		return &VectorSource{Path: in.Path, Canvas: cfg.Canvas(), Steps: cfg.Steps, Logger: logger}, nil
	case KindPattern:
		return &PatternSource{Canvas: cfg.Canvas(), LineWidth: cfg.LineWidth, Steps: cfg.Steps, Logger: logger}, nil
	}
	return nil, fmt.Errorf("%w: input kind %q", contour.ErrUnsupportedInput, in.Kind)
}
