// Package pipeline runs one request end to end: acquire contours, render
// the neon image and write it to disk.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/neon-tubes/internal/acquire"
	"github.com/ironsheep/neon-tubes/internal/config"
	"github.com/ironsheep/neon-tubes/internal/contour"
	"github.com/ironsheep/neon-tubes/internal/document"
	"github.com/ironsheep/neon-tubes/internal/imaging"
	"github.com/ironsheep/neon-tubes/internal/render"
)

// Pipeline holds the collaborators shared across requests.
type Pipeline struct {
	Logger *zap.Logger

	// Images caches decoded raster inputs. Nil disables caching.
	Images *imaging.ImageCache

	// Pages rasterizes document inputs. Nil uses Ghostscript.
	Pages *document.Pages
}

// New returns a pipeline without an image cache.
func New(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{Logger: logger, Pages: document.NewPages(logger)}
}

// Request is one rendering job.
type Request struct {
	Input  acquire.Input
	Output string
	Config config.Config
}

// Result summarizes a finished job.
type Result struct {
	Kind      acquire.Kind `json:"kind"`
	Output    string       `json:"output"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Polylines int          `json:"polylines"`
	Points    int          `json:"points"`
	Elapsed   string       `json:"elapsed"`
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// Contours acquires the contour set of in under cfg.
func (p *Pipeline) Contours(ctx context.Context, in acquire.Input, cfg config.Config) (contour.Set, error) {
	if err := cfg.Validate(); err != nil {
		return contour.Set{}, err
	}
	src, err := acquire.NewSource(in, cfg, acquire.Deps{
		Logger: p.logger(),
		Images: p.Images,
		Pages:  p.Pages,
	})
	if err != nil {
		return contour.Set{}, err
	}
	return src.Acquire(ctx)
}

// Image acquires in and renders it without writing anything.
func (p *Pipeline) Image(ctx context.Context, in acquire.Input, cfg config.Config) (*image.RGBA, contour.Set, error) {
	set, err := p.Contours(ctx, in, cfg)
	if err != nil {
		return nil, contour.Set{}, err
	}
	img, err := render.Render(set, cfg.Stroke(), cfg.Glow())
	if err != nil {
		return nil, contour.Set{}, err
	}
	return img, set, nil
}

// Run executes req. The output file is written only when every earlier
// step succeeded, and is never left half written.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	logger := p.logger().With(
		zap.String("kind", string(req.Input.Kind)),
		zap.String("output", req.Output))

	img, set, err := p.Image(ctx, req.Input, req.Config)
	if err != nil {
		return nil, err
	}
	logger.Debug("rendered",
		zap.Int("polylines", len(set.Polylines)),
		zap.Int("width", set.Size.Width),
		zap.Int("height", set.Size.Height))

	if err := imaging.Save(img, req.Output); err != nil {
		return nil, fmt.Errorf("%w: %w", contour.ErrRender, err)
	}

	elapsed := time.Since(start)
	logger.Info("saved neon image", zap.Duration("elapsed", elapsed))
	return &Result{
		Kind:      req.Input.Kind,
		Output:    req.Output,
		Width:     set.Size.Width,
		Height:    set.Size.Height,
		Polylines: len(set.Polylines),
		Points:    set.Points(),
		Elapsed:   elapsed.Round(time.Millisecond).String(),
	}, nil
}
