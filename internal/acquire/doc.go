// Package acquire turns an input file or string into a contour.Set.
//
// Every input kind has a Source. Raster images and document pages keep
// their native size; text, vector graphics and the test pattern are laid
// out on the caller's canvas. Raster-like inputs (images, pages, rendered
// text) go through the same edge detection and contour tracing, while
// vector inputs are sampled directly from their path geometry.
package acquire
