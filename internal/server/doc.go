// Package server implements the MCP (Model Context Protocol) server for the
// neon renderer.
//
// This package provides a JSON-RPC 2.0 server that exposes contour
// acquisition and neon rendering through the MCP protocol, so an assistant
// can turn images, PDF pages, text and SVG drawings into neon artwork and
// inspect the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - neon_render: Acquire an input and write the neon image to a file
//   - neon_contours: Return the polylines an input reduces to
//   - neon_edge_preview: Canny edge map of a raster image as base64 PNG
//   - neon_sample_color: Color at a pixel, for checking rendered output
//
// Rendering arguments default to the NEON_* environment variables the
// server was started with, then to the built-in defaults.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded raster inputs. Images
// are cached by path and reused across tool calls for the lifetime of the
// process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32602 for malformed arguments or invalid parameter values,
//     -32000 for any other tool failure
//   - message: Human-readable error description
//   - data: The Go error string
//
// Logging goes to stderr through zap; stdout carries only the protocol.
package server
