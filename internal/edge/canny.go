package edge

import (
	"fmt"
	"image"

	"github.com/ironsheep/edge-detect-mcp/internal/filter"
	"github.com/ironsheep/edge-detect-mcp/internal/raster"
)

// BlurSigma is the pipeline's fixed smoothing parameter. Exported so
// callers rendering intermediate stages can blur exactly the way the
// detector does.
const BlurSigma = 1.4

// Canny runs the full edge detection pipeline on a grayscale image and
// returns a binary edge map of the same dimensions, anchored at the origin.
//
// Parameters:
//   - src: Source grayscale image.
//   - low: Weak-edge threshold. Suppressed-gradient pixels below this value
//     can never become edges.
//   - high: Strong-edge threshold. Pixels at or above this value seed edge
//     tracking; pixels between low and high only survive when a flood from
//     a seed reaches them.
//
// Thresholds are compared against raw gradient magnitudes, whose ceiling
// for 8-bit input is hypot(1020, 1020) ≈ 1442. Both must be non-negative
// and high must not be less than low; Canny panics otherwise.
//
// In the output, 255 marks an edge pixel and 0 everything else. The outer
// one-pixel border is always 0, and images with either dimension under 3
// have no interior and come back entirely 0.
func Canny(src *image.Gray, low, high float32) *image.Gray {
	validateThresholds(low, high)
	return hysteresis(prepare(src), low, high)
}

// prepare runs the shared front half of the pipeline: smoothing, Sobel
// gradients, magnitude, non-maximum suppression.
func prepare(src *image.Gray) *raster.Float32 {
	blurred := filter.Gaussian(src, BlurSigma)
	gx := filter.SobelHorizontal(blurred)
	gy := filter.SobelVertical(blurred)
	return SuppressNonMaxima(GradientMagnitude(gx, gy), gx, gy)
}

// validateThresholds panics unless 0 <= low <= high. The comparison is
// phrased so NaN fails it as well.
func validateThresholds(low, high float32) {
	if !(low >= 0 && high >= low) {
		panic(fmt.Sprintf("edge: invalid thresholds low=%v, high=%v (need 0 <= low <= high)", low, high))
	}
}
