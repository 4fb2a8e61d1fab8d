// Package config resolves the settings of one rendering request.
//
// Values come from three layers, later ones winning:
//
//	built-in defaults < NEON_* environment variables < flags or request arguments
//
// Every field remembers which layer set it, so callers can report where an
// effective value came from.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/neon-tubes/internal/contour"
	"github.com/ironsheep/neon-tubes/internal/geometry"
	"github.com/ironsheep/neon-tubes/internal/imaging"
	"github.com/ironsheep/neon-tubes/internal/render"
)

// Source identifies the layer a value came from.
type Source int

const (
	SourceDefault Source = iota
	SourceEnv
	SourceFlag
	SourceRequest
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceEnv:
		return "env"
	case SourceFlag:
		return "flag"
	case SourceRequest:
		return "request"
	}
	return "unknown"
}

// Field names a configurable value. The names double as flag names and,
// upper-cased with a NEON_ prefix, as environment variable names.
type Field string

const (
	FieldPage       Field = "page"
	FieldText       Field = "text"
	FieldFont       Field = "font"
	FieldFontSize   Field = "fontsize"
	FieldWidth      Field = "width"
	FieldHeight     Field = "height"
	FieldColor      Field = "color"
	FieldLineWidth  Field = "linewidth"
	FieldGlowRadius Field = "glowradius"
	FieldGlowAlpha  Field = "glowalpha"
	FieldSteps      Field = "steps"
)

// Fields lists every field in display order.
var Fields = []Field{
	FieldPage, FieldText, FieldFont, FieldFontSize, FieldWidth, FieldHeight,
	FieldColor, FieldLineWidth, FieldGlowRadius, FieldGlowAlpha, FieldSteps,
}

// Env returns the environment variable that sets f.
func (f Field) Env() string {
	return "NEON_" + strings.ToUpper(string(f))
}

// Defaults for every field.
const (
	DefaultPage       = 0
	DefaultFontSize   = 60
	DefaultWidth      = 400
	DefaultHeight     = 400
	DefaultColor      = "255,0,255"
	DefaultLineWidth  = 5
	DefaultGlowRadius = 10
	DefaultGlowAlpha  = 0.5
)

// Config is the effective configuration of one request. It is a value;
// Apply returns a new Config and leaves the receiver untouched.
type Config struct {
	Page       int
	Text       string
	FontPath   string
	FontSize   int
	Width      int
	Height     int
	Color      imaging.RGBColor
	LineWidth  int
	GlowRadius int
	GlowAlpha  float64
	Steps      int

	sources map[Field]Source
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Page:       DefaultPage,
		FontSize:   DefaultFontSize,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Color:      imaging.RGBColor{R: 255, G: 0, B: 255},
		LineWidth:  DefaultLineWidth,
		GlowRadius: DefaultGlowRadius,
		GlowAlpha:  DefaultGlowAlpha,
		Steps:      geometry.DefaultSteps,
	}
}

// Source reports which layer set f.
func (c Config) Source(f Field) Source {
	return c.sources[f]
}

// Canvas is the caller canvas used by text, vector and pattern inputs.
func (c Config) Canvas() contour.Size {
	return contour.Size{Width: c.Width, Height: c.Height}
}

// Stroke returns the tube style.
func (c Config) Stroke() render.StrokeStyle {
	return render.StrokeStyle{Color: c.Color, Width: c.LineWidth}
}

// Glow returns the halo style.
func (c Config) Glow() render.GlowStyle {
	return render.GlowStyle{Radius: c.GlowRadius, Alpha: c.GlowAlpha}
}

// Validate checks every numeric field. The page index is not checked here;
// whether it exists depends on the document.
func (c Config) Validate() error {
	switch {
	case c.FontSize <= 0:
		return fmt.Errorf("%w: font size %d must be positive", contour.ErrInvalidParameter, c.FontSize)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d must be positive", contour.ErrInvalidParameter, c.Width, c.Height)
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps %d must be positive", contour.ErrInvalidParameter, c.Steps)
	}
	if err := c.Stroke().Validate(); err != nil {
		return err
	}
	return c.Glow().Validate()
}

// Overrides holds the values one layer sets. Nil fields are left alone.
// Color is kept in its textual form and parsed by Apply.
type Overrides struct {
	Page       *int
	Text       *string
	FontPath   *string
	FontSize   *int
	Width      *int
	Height     *int
	Color      *string
	LineWidth  *int
	GlowRadius *int
	GlowAlpha  *float64
	Steps      *int
}

// Apply returns c with every non-nil override set and recorded as coming
// from src. A malformed color returns an error wrapping
// contour.ErrInvalidParameter.
func (c Config) Apply(o Overrides, src Source) (Config, error) {
	out := c
	out.sources = make(map[Field]Source, len(c.sources)+len(Fields))
	for f, s := range c.sources {
		out.sources[f] = s
	}

	setInt := func(f Field, dst *int, v *int) {
		if v != nil {
			*dst = *v
			out.sources[f] = src
		}
	}
	setString := func(f Field, dst *string, v *string) {
		if v != nil {
			*dst = *v
			out.sources[f] = src
		}
	}

	setInt(FieldPage, &out.Page, o.Page)
	setString(FieldText, &out.Text, o.Text)
	setString(FieldFont, &out.FontPath, o.FontPath)
	setInt(FieldFontSize, &out.FontSize, o.FontSize)
	setInt(FieldWidth, &out.Width, o.Width)
	setInt(FieldHeight, &out.Height, o.Height)
	setInt(FieldLineWidth, &out.LineWidth, o.LineWidth)
	setInt(FieldGlowRadius, &out.GlowRadius, o.GlowRadius)
	setInt(FieldSteps, &out.Steps, o.Steps)
	if o.GlowAlpha != nil {
		out.GlowAlpha = *o.GlowAlpha
		out.sources[FieldGlowAlpha] = src
	}
	if o.Color != nil {
		col, err := imaging.ParseRGB(*o.Color)
		if err != nil {
			return c, err
		}
		out.Color = col
		out.sources[FieldColor] = src
	}
	return out, nil
}

// Layer pairs a set of overrides with the layer they belong to.
type Layer struct {
	Source    Source
	Overrides Overrides
}

// Resolve applies layers over the defaults in order and validates the
// result.
func Resolve(layers ...Layer) (Config, error) {
	c := Default()
	for _, l := range layers {
		var err error
		if c, err = c.Apply(l.Overrides, l.Source); err != nil {
			return Config{}, err
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromEnv reads the NEON_* variables through getenv, usually os.Getenv.
// Unset or empty variables are skipped. A value that does not parse
// returns an error wrapping contour.ErrInvalidParameter.
func FromEnv(getenv func(string) string) (Overrides, error) {
	var (
		o    Overrides
		errs []string
	)
	lookup := func(f Field) (string, bool) {
		v := strings.TrimSpace(getenv(f.Env()))
		return v, v != ""
	}
	intVar := func(f Field) *int {
		v, ok := lookup(f)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s=%q", f.Env(), v))
			return nil
		}
		return &n
	}
	stringVar := func(f Field) *string {
		v, ok := lookup(f)
		if !ok {
			return nil
		}
		return &v
	}

	o.Page = intVar(FieldPage)
	o.Text = stringVar(FieldText)
	o.FontPath = stringVar(FieldFont)
	o.FontSize = intVar(FieldFontSize)
	o.Width = intVar(FieldWidth)
	o.Height = intVar(FieldHeight)
	o.Color = stringVar(FieldColor)
	o.LineWidth = intVar(FieldLineWidth)
	o.GlowRadius = intVar(FieldGlowRadius)
	o.Steps = intVar(FieldSteps)
	if v, ok := lookup(FieldGlowAlpha); ok {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s=%q", FieldGlowAlpha.Env(), v))
		} else {
			o.GlowAlpha = &a
		}
	}

	if len(errs) > 0 {
		return Overrides{}, fmt.Errorf("%w: malformed environment %s", contour.ErrInvalidParameter, strings.Join(errs, ", "))
	}
	return o, nil
}
