// Package render turns a contour set into a neon-tube image.
//
// Rendering happens in three passes over one canvas the size of the set:
//
//  1. Sharp: polylines are stroked onto opaque black with gg, in set order.
//  2. Glow: the sharp layer is blurred with a Gaussian kernel (bild/blur).
//  3. Blend: the two layers are mixed with a fixed opacity (bild/blend).
//
// The result is always fully opaque. Persisting it is left to the caller.
package render
