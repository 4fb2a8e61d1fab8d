// Package svg reads the drawable geometry out of SVG documents.
//
// Decoding is done by oksvg: every <path>, <rect>, <circle>, <ellipse>,
// <line>, <polyline> and <polygon> becomes a rasterx path, which this
// package replays into a geometry.Path. Arcs and ellipses arrive as cubic
// Béziers. Coordinates are user units exactly as written, at the 1/64
// pixel precision of rasterx; transform attributes and styling are
// ignored.
package svg
