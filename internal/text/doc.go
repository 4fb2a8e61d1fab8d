// Package text renders a string as white glyphs on a black canvas.
//
// The bitmap is meant for contour extraction, not display: it is fed to the
// same edge tracing as any raster image so text and pictures end up as the
// same kind of neon outline.
package text
