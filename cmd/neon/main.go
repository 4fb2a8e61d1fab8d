package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ironsheep/neon-tubes/internal/acquire"
	"github.com/ironsheep/neon-tubes/internal/config"
	"github.com/ironsheep/neon-tubes/internal/logger"
	"github.com/ironsheep/neon-tubes/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usageHeader = `neon - render images, PDF pages, text and SVG graphics as neon tubes

Usage: neon [flags] <input> <output>

<input> is a .png/.jpg/.gif/.bmp/.tif image, a .pdf document, a .txt file,
an .svg graphic, or "circle" for a test pattern. With -text, an input path
that does not exist renders the text directly. The format of <output> is
picked from its extension.

Flags:
`

// options is the parsed command line.
type options struct {
	input   string
	output  string
	verbose bool
	version bool
	flags   config.Overrides
}

// parseArgs parses args (without the program name). Only flags that were
// given end up in the returned overrides.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("neon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageHeader)
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Every setting can also come from a NEON_<FLAG> environment variable,")
		fmt.Fprintln(fs.Output(), "for example NEON_COLOR=#00ffff. NEON_LOG_LEVEL=debug enables debug logging.")
	}

	var (
		o                          options
		page                       int
		text, font, color          string
		fontSize, width, height    int
		lineWidth, glowRadius, stp int
		glowAlpha                  float64
	)
	fs.IntVar(&page, "page", config.DefaultPage, "zero-based PDF page index")
	fs.IntVar(&page, "p", config.DefaultPage, "shorthand for -page")
	fs.StringVar(&text, "text", "", "text to render instead of the input file content")
	fs.StringVar(&text, "t", "", "shorthand for -text")
	fs.StringVar(&font, "font", "", "TrueType or OpenType font file (default Go Regular)")
	fs.StringVar(&font, "f", "", "shorthand for -font")
	fs.IntVar(&fontSize, "fontsize", config.DefaultFontSize, "font size in pixels")
	fs.IntVar(&fontSize, "fs", config.DefaultFontSize, "shorthand for -fontsize")
	fs.IntVar(&width, "width", config.DefaultWidth, "canvas width for text, SVG and pattern inputs")
	fs.IntVar(&height, "height", config.DefaultHeight, "canvas height for text, SVG and pattern inputs")
	fs.StringVar(&color, "color", config.DefaultColor, `tube color as "R,G,B" or "#RRGGBB"`)
	fs.IntVar(&lineWidth, "linewidth", config.DefaultLineWidth, "tube width in pixels")
	fs.IntVar(&glowRadius, "glowradius", config.DefaultGlowRadius, "glow blur radius in pixels")
	fs.Float64Var(&glowAlpha, "glowalpha", config.DefaultGlowAlpha, "glow weight from 0 (none) to 1 (glow only)")
	fs.IntVar(&stp, "steps", config.Default().Steps, "points sampled per SVG curve")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	fs.BoolVar(&o.version, "version", false, "print version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.version {
		return &o, nil
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, fmt.Errorf("expected <input> and <output>, got %d arguments", fs.NArg())
	}
	o.input, o.output = fs.Arg(0), fs.Arg(1)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "page", "p":
			o.flags.Page = &page
		case "text", "t":
			o.flags.Text = &text
		case "font", "f":
			o.flags.FontPath = &font
		case "fontsize", "fs":
			o.flags.FontSize = &fontSize
		case "width":
			o.flags.Width = &width
		case "height":
			o.flags.Height = &height
		case "color":
			o.flags.Color = &color
		case "linewidth":
			o.flags.LineWidth = &lineWidth
		case "glowradius":
			o.flags.GlowRadius = &glowRadius
		case "glowalpha":
			o.flags.GlowAlpha = &glowAlpha
		case "steps":
			o.flags.Steps = &stp
		}
	})
	return &o, nil
}

// resolve builds the request from the command line and the environment.
func resolve(o *options, getenv func(string) string) (pipeline.Request, error) {
	env, err := config.FromEnv(getenv)
	if err != nil {
		return pipeline.Request{}, err
	}
	cfg, err := config.Resolve(
		config.Layer{Source: config.SourceEnv, Overrides: env},
		config.Layer{Source: config.SourceFlag, Overrides: o.flags},
	)
	if err != nil {
		return pipeline.Request{}, err
	}
	in, err := acquire.Detect(o.input, cfg.Text, cfg.Source(config.FieldText) != config.SourceDefault)
	if err != nil {
		return pipeline.Request{}, err
	}
	return pipeline.Request{Input: in, Output: o.output, Config: cfg}, nil
}

// summary renders the one-line result report in the tube color.
func summary(res *pipeline.Result, cfg config.Config) string {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Color.Hex())).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"})
	return accent.Render(res.Output) + dim.Render(fmt.Sprintf(
		"  %s  %dx%d  %d polylines  %d points  %s",
		res.Kind, res.Width, res.Height, res.Polylines, res.Points, res.Elapsed))
}

func run(ctx context.Context, o *options, l *zap.Logger) error {
	req, err := resolve(o, os.Getenv)
	if err != nil {
		return err
	}
	for _, f := range config.Fields {
		l.Debug("config", zap.String("field", string(f)), zap.Stringer("source", req.Config.Source(f)))
	}

	if err := os.MkdirAll(filepath.Dir(req.Output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	res, err := pipeline.New(l).Run(logger.NewContext(ctx, l), req)
	if err != nil {
		return err
	}
	fmt.Println(summary(res, req.Config))
	return nil
}

func main() {
	o, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "neon: %v\n", err)
		os.Exit(2)
	}
	if o.version {
		fmt.Printf("neon %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	l, err := logger.New(o.verbose || logger.Verbose(os.Getenv("NEON_LOG_LEVEL")))
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, l); err != nil {
		l.Error("neon failed", zap.String("input", o.input), zap.Error(err))
		fmt.Fprintf(os.Stderr, "neon: %v\n", err)
		stop()
		l.Sync() //nolint:errcheck
		os.Exit(1)
	}
}
