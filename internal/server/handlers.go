package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/neon-tubes/internal/acquire"
	"github.com/ironsheep/neon-tubes/internal/config"
	"github.com/ironsheep/neon-tubes/internal/contour"
	"github.com/ironsheep/neon-tubes/internal/imaging"
	"github.com/ironsheep/neon-tubes/internal/logger"
	"github.com/ironsheep/neon-tubes/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "neon_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errInvalidArguments marks arguments that could not be decoded.
var errInvalidArguments = errors.New("invalid arguments")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed arguments and invalid parameter values return -32602; any
// other tool failure returns -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	ctx = logger.NewContext(ctx, s.logger.With(zap.String("tool", params.Name)))
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		logger.L(ctx).Warn("tool failed", zap.Error(err))
		if errors.Is(err, errInvalidArguments) || errors.Is(err, contour.ErrInvalidParameter) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "neon_render":
		return s.handleNeonRender(ctx, args)
	case "neon_contours":
		return s.handleNeonContours(ctx, args)
	case "neon_edge_preview":
		return s.handleNeonEdgePreview(args)
	case "neon_sample_color":
		return s.handleNeonSampleColor(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %w", errInvalidArguments, err)
	}
	return nil
}

// === Neon Handlers ===

type inputArgs struct {
	Input      string   `json:"input"`
	Text       *string  `json:"text"`
	Page       *int     `json:"page"`
	Font       *string  `json:"font"`
	FontSize   *int     `json:"fontsize"`
	Width      *int     `json:"width"`
	Height     *int     `json:"height"`
	Color      *string  `json:"color"`
	LineWidth  *int     `json:"linewidth"`
	GlowRadius *int     `json:"glowradius"`
	GlowAlpha  *float64 `json:"glowalpha"`
	Steps      *int     `json:"steps"`
}

func (a inputArgs) overrides() config.Overrides {
	return config.Overrides{
		Page:       a.Page,
		Text:       a.Text,
		FontPath:   a.Font,
		FontSize:   a.FontSize,
		Width:      a.Width,
		Height:     a.Height,
		Color:      a.Color,
		LineWidth:  a.LineWidth,
		GlowRadius: a.GlowRadius,
		GlowAlpha:  a.GlowAlpha,
		Steps:      a.Steps,
	}
}

// resolve turns the arguments into an input and its configuration.
func (s *Server) resolve(a inputArgs) (acquire.Input, config.Config, error) {
	if a.Input == "" {
		return acquire.Input{}, config.Config{}, fmt.Errorf("%w: input is required", errInvalidArguments)
	}
	cfg, err := config.Resolve(
		config.Layer{Source: config.SourceEnv, Overrides: s.env},
		config.Layer{Source: config.SourceRequest, Overrides: a.overrides()},
	)
	if err != nil {
		return acquire.Input{}, config.Config{}, err
	}
	in, err := acquire.Detect(a.Input, cfg.Text, cfg.Source(config.FieldText) != config.SourceDefault)
	if err != nil {
		return acquire.Input{}, config.Config{}, err
	}
	return in, cfg, nil
}

type neonRenderArgs struct {
	inputArgs
	Output string `json:"output"`
}

func (s *Server) handleNeonRender(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a neonRenderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("%w: output is required", errInvalidArguments)
	}
	in, cfg, err := s.resolve(a.inputArgs)
	if err != nil {
		return nil, err
	}
	p := *s.pipeline
	p.Logger = logger.L(ctx)
	return p.Run(ctx, pipeline.Request{Input: in, Output: a.Output, Config: cfg})
}

// ContoursResult is the neon_contours payload.
type ContoursResult struct {
	Kind      acquire.Kind       `json:"kind"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Points    int                `json:"points"`
	Polylines []contour.Polyline `json:"polylines"`
}

func (s *Server) handleNeonContours(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a inputArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	in, cfg, err := s.resolve(a)
	if err != nil {
		return nil, err
	}
	p := *s.pipeline
	p.Logger = logger.L(ctx)
	set, err := p.Contours(ctx, in, cfg)
	if err != nil {
		return nil, err
	}
	polylines := set.Polylines
	if polylines == nil {
		polylines = []contour.Polyline{}
	}
	return &ContoursResult{
		Kind:      in.Kind,
		Width:     set.Size.Width,
		Height:    set.Size.Height,
		Points:    set.Points(),
		Polylines: polylines,
	}, nil
}

type neonEdgePreviewArgs struct {
	Path          string `json:"path"`
	ThresholdLow  *int   `json:"threshold_low"`
	ThresholdHigh *int   `json:"threshold_high"`
}

func (s *Server) handleNeonEdgePreview(args json.RawMessage) (interface{}, error) {
	var a neonEdgePreviewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	low, high := imaging.CannyLow, imaging.CannyHigh
	if a.ThresholdLow != nil {
		low = *a.ThresholdLow
	}
	if a.ThresholdHigh != nil {
		high = *a.ThresholdHigh
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := s.edgeDetect(img, low, high)
	switch {
	case errors.Is(err, imaging.ErrInvalidThresholds):
		return nil, fmt.Errorf("%w: %w", contour.ErrInvalidParameter, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", contour.ErrRender, err)
	}
	return res, nil
}

type neonSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleNeonSampleColor(args json.RawMessage) (interface{}, error) {
	var a neonSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	// Not cached: the file is usually a render output that changes.
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
