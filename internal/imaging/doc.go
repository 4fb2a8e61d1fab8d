// Package imaging provides the raster side of contour acquisition and the
// image I/O of the renderer.
//
// The central operation is ExtractContours, which reduces any bitmap to
// polylines with one fixed parameter set:
//
//	grayscale -> Gaussian blur -> Canny (low 100, high 200) -> external border tracing
//
// The same call serves decoded image files, rasterized PDF pages and
// rendered text, so every raster modality is traced identically. Tracing
// keeps only outer borders and drops collinear points.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Color Representation
//
// SampleColor reports a pixel in several formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// ParseRGB accepts the "R,G,B" and "#RRGGBB" notations used for tube colors.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Thresholds outside 0-255 or low > high
//   - File I/O errors during image loading
//   - Encoding errors during image output
//
// ExtractContours itself never fails: a bitmap without edges yields no
// polylines.
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Consider using Evict() or Clear() to manage memory for long-running processes.
package imaging
