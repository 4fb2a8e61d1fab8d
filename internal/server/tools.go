package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// inputProperties are the arguments shared by neon_render and
// neon_contours. Omitted values fall back to NEON_* variables and then to
// the built-in defaults.
func inputProperties() map[string]interface{} {
	return map[string]interface{}{
		"input": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a .png/.jpg/.gif/.bmp/.tif image, .pdf document, .txt file or .svg graphic, or \"circle\" for the test pattern",
		},
		"text": map[string]interface{}{
			"type":        "string",
			"description": "Text to render. Overrides the content of a .txt input; with a non-existent input path the text is rendered directly",
		},
		"page": map[string]interface{}{
			"type":        "integer",
			"description": "Zero-based PDF page index. Default 0",
		},
		"font": map[string]interface{}{
			"type":        "string",
			"description": "TrueType or OpenType font file for text inputs. Default Go Regular",
		},
		"fontsize": map[string]interface{}{
			"type":        "integer",
			"description": "Font size in pixels. Default 60",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Canvas width for text, SVG and pattern inputs. Default 400",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Canvas height for text, SVG and pattern inputs. Default 400",
		},
		"color": map[string]interface{}{
			"type":        "string",
			"description": "Tube color as \"R,G,B\" or \"#RRGGBB\". Default 255,0,255",
		},
		"linewidth": map[string]interface{}{
			"type":        "integer",
			"description": "Tube width in pixels. Default 5",
		},
		"glowradius": map[string]interface{}{
			"type":        "integer",
			"description": "Glow blur radius in pixels. Default 10",
		},
		"glowalpha": map[string]interface{}{
			"type":        "number",
			"description": "Glow weight between 0 (no glow) and 1 (glow only). Default 0.5",
		},
		"steps": map[string]interface{}{
			"type":        "integer",
			"description": "Points sampled per SVG curve. Default 25",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	renderProps := inputProperties()
	renderProps["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path of the image to write; the extension selects the format (png, jpg, gif, tif, bmp)",
	}

	return []Tool{
		{
			Name:        "neon_render",
			Description: "Render an image, PDF page, text or SVG as glowing neon tubes and write the result to a file.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": renderProps,
				"required":   []string{"input", "output"},
			},
		},
		{
			Name:        "neon_contours",
			Description: "Extract the polylines that neon_render would draw, without rendering.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": inputProperties(),
				"required":   []string{"input"},
			},
		},
		{
			Name:        "neon_edge_preview",
			Description: "Run Canny edge detection on an image and return the edge map as base64 PNG. With the default thresholds this is exactly what contour tracing sees.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Lower hysteresis threshold 0-255. Default 100",
						"default":     100,
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "Upper hysteresis threshold 0-255. Default 200",
						"default":     200,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "neon_sample_color",
			Description: "Get the exact color value at a pixel, for example to check the tube core and halo of a rendered image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
