package filter

import (
	"fmt"
	"image"
	"math"
)

// Gaussian returns a smoothed copy of src, blurred with a Gaussian kernel of
// the given standard deviation.
//
// Parameters:
//   - src: Source grayscale image.
//   - sigma: Standard deviation of the Gaussian in pixels. Must be positive;
//     Gaussian panics otherwise. The edge detection pipeline uses 1.4.
//
// The kernel is one-dimensional with radius ceil(2*sigma) and is applied
// separably: a horizontal pass into a float buffer, then a vertical pass out
// of it. No rounding happens between the passes; the final result is rounded
// to the nearest 8-bit value.
func Gaussian(src *image.Gray, sigma float64) *image.Gray {
	if sigma <= 0 {
		panic(fmt.Sprintf("filter: Gaussian sigma must be positive, got %v", sigma))
	}

	kernel := gaussianKernel(sigma)
	radius := (len(kernel) - 1) / 2

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}

	// Horizontal pass. The intermediate stays in float so the vertical
	// pass works on unrounded values.
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				sx := clamp(x+k, 0, w-1)
				sum += kernel[k+radius] * float64(src.GrayAt(b.Min.X+sx, b.Min.Y+y).Y)
			}
			tmp[y*w+x] = sum
		}
	}

	// Vertical pass with round-to-nearest output.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				sy := clamp(y+k, 0, h-1)
				sum += kernel[k+radius] * tmp[sy*w+x]
			}
			out.Pix[y*out.Stride+x] = uint8(sum + 0.5)
		}
	}
	return out
}

// gaussianKernel builds a normalized one-dimensional Gaussian kernel with
// radius ceil(2*sigma). The weights sum to 1, so convolving a constant
// image leaves it unchanged.
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(2 * sigma))
	kernel := make([]float64, 2*radius+1)

	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
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
