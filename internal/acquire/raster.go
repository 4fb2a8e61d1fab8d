package acquire

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ironsheep/neon-tubes/internal/contour"
	"github.com/ironsheep/neon-tubes/internal/document"
	"github.com/ironsheep/neon-tubes/internal/imaging"
	"github.com/ironsheep/neon-tubes/internal/text"
)

// RasterSource traces the contours of an image file at its native size.
//
// The native size is that of the decoded image after EXIF orientation has
// been applied, so a rotated photo reports its displayed dimensions.
type RasterSource struct {
	Path string

	// Canvas is used when the image header cannot be read.
	Canvas contour.Size

	// Images caches decoded files. Nil reads from disk every time.
	Images *imaging.ImageCache

	// ReadSize reads the header size. Nil uses imaging.ReadSize.
	ReadSize func(path string) (contour.Size, error)

	Logger *zap.Logger
}

// Acquire decodes the image and traces its edges. The set is sized to the
// oriented image, or to Canvas when the header is unreadable.
func (s *RasterSource) Acquire(ctx context.Context) (contour.Set, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	readSize := s.ReadSize
	if readSize == nil {
		readSize = imaging.ReadSize
	}

	header, err := readSize(s.Path)
	headerOK := err == nil
	if !headerOK {
		logger.Warn("failed to read image size, using canvas",
			zap.String("path", s.Path),
			zap.Int("width", s.Canvas.Width),
			zap.Int("height", s.Canvas.Height),
			zap.Error(err))
	}

	img, err := s.Images.Load(s.Path)
	if err != nil {
		return contour.Set{}, fmt.Errorf("%w: %s: %w", contour.ErrAcquisition, s.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return contour.Set{}, fmt.Errorf("%w: %w", contour.ErrAcquisition, err)
	}

	size := s.Canvas
	if headerOK {
		b := img.Bounds()
		size = contour.Size{Width: b.Dx(), Height: b.Dy()}
		if size != header {
			logger.Debug("image orientation changed size",
				zap.String("path", s.Path),
				zap.Int("header_width", header.Width),
				zap.Int("header_height", header.Height),
				zap.Int("width", size.Width),
				zap.Int("height", size.Height))
		}
	}

	set := traced(img, size)
	logger.Debug("traced image",
		zap.String("path", s.Path),
		zap.Int("polylines", len(set.Polylines)))
	return set, nil
}

// DocumentSource traces one page of a PDF at its native 72 dpi size.
type DocumentSource struct {
	Path  string
	Page  int
	Pages *document.Pages
}

// Acquire rasterizes the page and traces it. The set is sized to the page
// bitmap.
func (s *DocumentSource) Acquire(ctx context.Context) (contour.Set, error) {
	img, err := s.Pages.Load(ctx, s.Path, s.Page)
	if err != nil {
		return contour.Set{}, err
	}
	b := img.Bounds()
	return traced(img, contour.Size{Width: b.Dx(), Height: b.Dy()}), nil
}

// traced runs contour extraction and packages the result.
func traced(img image.Image, size contour.Size) contour.Set {
	return contour.Set{
		Polylines: imaging.ExtractContours(img),
		Size:      size,
	}
}

// TextSource rasterizes text and traces the glyph outlines.
//
// When Path is set the text is read from that file, unless Text is
// non-empty. An empty or unreadable file falls back to the placeholder.
type TextSource struct {
	Path    string
	Text    string
	Options text.Options
	Logger  *zap.Logger
}

// Acquire renders the text centred on Options.Canvas and traces the glyph
// edges.
func (s *TextSource) Acquire(ctx context.Context) (contour.Set, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	content := s.Text
	if content == "" && s.Path != "" {
		content = readTextFile(s.Path, logger)
	}

	raster, err := text.Rasterize(content, s.Options, logger)
	if err != nil {
		return contour.Set{}, err
	}
	if err := ctx.Err(); err != nil {
		return contour.Set{}, fmt.Errorf("%w: %w", contour.ErrAcquisition, err)
	}
	return traced(raster.Image, s.Options.Canvas), nil
}

// readTextFile returns the trimmed content of path, or an empty string
// with a warning when the file cannot be read or holds only whitespace.
func readTextFile(path string, logger *zap.Logger) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read text file, using placeholder", zap.String("path", path), zap.Error(err))
		return ""
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		logger.Warn("text file is empty, using placeholder", zap.String("path", path))
	}
	return content
}
