// Package contour defines the geometric hand-off between contour acquisition
// and neon rendering.
//
// Every input modality (raster image, document page, text, vector graphic)
// is reduced to a Set: an ordered list of polylines together with the canvas
// size the coordinates are expressed in. The renderer never rescales; points
// outside the canvas are clipped when drawn.
//
// # Coordinate System
//
// Coordinates are integer pixel positions:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Error Kinds
//
// The package also owns the error kinds shared by the whole pipeline. Callers
// match them with errors.Is:
//
//	if errors.Is(err, contour.ErrAcquisition) { ... }
package contour
