package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/ironsheep/neon-tubes/internal/contour"
	"github.com/ironsheep/neon-tubes/internal/imaging"
)

// NativeDPI renders one PDF point as one pixel.
const NativeDPI = 72

// PageRasterizer renders a single zero-based page of a PDF file.
type PageRasterizer interface {
	RasterizePage(ctx context.Context, path string, page int) (image.Image, error)
}

// PageCounter reports the number of pages in a PDF file.
type PageCounter func(path string) (int, error)

// PageCount reads the page tree of the PDF at path.
func PageCount(path string) (int, error) {
	r, err := pdf.Open(path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer r.Close()

	n, err := pagetree.NumPages(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read page tree: %w", err)
	}
	return n, nil
}

// Pages loads page bitmaps, checking the index against the page count
// before anything is rendered.
type Pages struct {
	Rasterizer PageRasterizer
	Counter    PageCounter
}

// NewPages returns a loader using Ghostscript and the page tree counter.
func NewPages(logger *zap.Logger) *Pages {
	return &Pages{
		Rasterizer: &Ghostscript{Logger: logger},
		Counter:    PageCount,
	}
}

// Load renders page index of the PDF at path.
//
// # Errors
//
// Every failure wraps contour.ErrAcquisition:
//   - the file cannot be opened or its page tree read
//   - index is negative or not less than the page count
//   - the rasterizer fails
func (p *Pages) Load(ctx context.Context, path string, index int) (image.Image, error) {
	counter := p.Counter
	if counter == nil {
		counter = PageCount
	}
	n, err := counter(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", contour.ErrAcquisition, path, err)
	}
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: page %d out of range, %s has %d page(s)", contour.ErrAcquisition, index, path, n)
	}

	img, err := p.Rasterizer.RasterizePage(ctx, path, index)
	if err != nil {
		return nil, fmt.Errorf("%w: %s page %d: %w", contour.ErrAcquisition, path, index, err)
	}
	return img, nil
}

// Ghostscript renders pages with the gs command.
type Ghostscript struct {
	// Binary is the executable to run. Empty means "gs" on PATH.
	Binary string

	// DPI defaults to NativeDPI.
	DPI int

	Logger *zap.Logger
}

// RasterizePage runs Ghostscript on one page and decodes the PNG it writes.
// The process is killed if ctx is cancelled.
func (g *Ghostscript) RasterizePage(ctx context.Context, path string, page int) (image.Image, error) {
	bin := g.Binary
	if bin == "" {
		bin = "gs"
	}
	dpi := g.DPI
	if dpi <= 0 {
		dpi = NativeDPI
	}
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dir, err := os.MkdirTemp("", "neon-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, "page.png")

	args := []string{
		"-q", "-dSAFER", "-dBATCH", "-dNOPAUSE",
		"-sDEVICE=png16m",
		fmt.Sprintf("-r%d", dpi),
		"-dGraphicsAlphaBits=4",
		"-dTextAlphaBits=4",
		fmt.Sprintf("-dFirstPage=%d", page+1),
		fmt.Sprintf("-dLastPage=%d", page+1),
		"-o", out,
		path,
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("rasterizing page", zap.String("path", path), zap.Int("page", page), zap.Int("dpi", dpi))
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("ghostscript not found (%s): %w", bin, err)
		}
		msg := strings.TrimSpace(stderr.String())
		return nil, fmt.Errorf("ghostscript failed: %w: %s", err, msg)
	}

	return imaging.Load(out)
}
