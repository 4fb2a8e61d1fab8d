package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Fixed edge detection parameters. Every input modality is reduced with the
// same values so contours from photos, pages and rendered text look alike.
const (
	// CannyLow and CannyHigh are the hysteresis thresholds on the 0-255 scale.
	CannyLow  = 100
	CannyHigh = 200

	// noiseSigma matches the spread of a 5x5 Gaussian kernel.
	noiseSigma = 1.1
)

// ErrInvalidThresholds reports Canny thresholds outside 0 <= low <= high <= 255.
var ErrInvalidThresholds = errors.New("invalid thresholds")

// EdgeDetectResult contains an edge-detected image encoded as base64 PNG.
//
// The result is a grayscale image where white pixels (255) represent detected
// edges and black pixels (0) represent non-edges.
type EdgeDetectResult struct {
	// Width of the output image in pixels (same as input).
	Width int `json:"width"`

	// Height of the output image in pixels (same as input).
	Height int `json:"height"`

	// EdgePixels is the number of pixels marked as edges.
	EdgePixels int `json:"edge_pixels"`

	// ImageBase64 is the edge image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png" for edge detection results.
	MimeType string `json:"mime_type"`
}

// EdgeDetect runs EdgeMap and packages the result as a base64 PNG.
//
// This is the preview of what contour tracing will see for a raster input.
//
// Returns:
//   - *EdgeDetectResult: Grayscale edge image as base64 PNG.
//   - error: ErrInvalidThresholds for bad thresholds; any other error is
//     a PNG encoding failure.
func EdgeDetect(img image.Image, thresholdLow, thresholdHigh int) (*EdgeDetectResult, error) {
	if thresholdLow < 0 || thresholdHigh > 255 || thresholdLow > thresholdHigh {
		return nil, fmt.Errorf("%w: low=%d high=%d (need 0 <= low <= high <= 255)", ErrInvalidThresholds, thresholdLow, thresholdHigh)
	}

	edges := EdgeMap(img, thresholdLow, thresholdHigh)

	count := 0
	for _, v := range edges.Pix {
		if v != 0 {
			count++
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, edges, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}

	b := edges.Bounds()
	return &EdgeDetectResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		EdgePixels:  count,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// EdgeMap performs Canny edge detection and returns a binary edge map.
//
// The returned image has the same size as img with bounds anchored at the
// origin. Edge pixels are 255, everything else 0.
//
// # Algorithm
//
//  1. Grayscale conversion (imaging.Grayscale)
//
//  2. Gaussian blur to reduce noise (imaging.Blur, sigma 1.1)
//
//  3. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²)
//     direction = atan2(Gy, Gx)
//
//  4. Non-maximum suppression: thin edges to 1-pixel width by keeping only
//     local maxima in the gradient direction
//
//  5. Hysteresis thresholding:
//     - Pixels above thresholdHigh are strong edges (always kept)
//     - Pixels between thresholdLow and thresholdHigh are weak edges,
//     kept only when connected to a strong edge through other weak edges
//     - Pixels below thresholdLow are discarded
func EdgeMap(img image.Image, thresholdLow, thresholdHigh int) *image.Gray {
	blurred := imaging.Blur(imaging.Grayscale(img), noiseSigma)
	width := blurred.Bounds().Dx()
	height := blurred.Bounds().Dy()
	result := image.NewGray(image.Rect(0, 0, width, height))
	if width < 3 || height < 3 {
		return result
	}

	lum := make([]float64, width*height)
	for y := 0; y < height; y++ {
		row := blurred.Pix[y*blurred.Stride:]
		for x := 0; x < width; x++ {
			lum[y*width+x] = float64(row[x*4]) / 255.0
		}
	}
	at := func(x, y int) float64 {
		return lum[clamp(y, 0, height-1)*width+clamp(x, 0, width-1)]
	}

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) -
				2*at(x-1, y) + 2*at(x+1, y) -
				at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression. Ties are broken toward the first neighbor
	// so a symmetric ridge keeps one pixel.
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			angle := direction[i]
			mag := magnitude[i]
			if mag == 0 {
				continue
			}

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[i-1], magnitude[i+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[i-width-1], magnitude[i+width+1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[i-width], magnitude[i+width]
			default:
				n1, n2 = magnitude[i-width+1], magnitude[i+width-1]
			}

			if mag > n1 && mag >= n2 {
				suppressed[i] = mag
			}
		}
	}

	// Scale thresholds to the gradient range of [0,1] luminance.
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	stack := make([]int, 0, 64)
	for i, v := range suppressed {
		if v >= highThresh {
			result.Pix[i] = 255
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				j := ny*width + nx
				if result.Pix[j] == 0 && suppressed[j] >= lowThresh && suppressed[j] > 0 {
					result.Pix[j] = 255
					stack = append(stack, j)
				}
			}
		}
	}

	return result
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
