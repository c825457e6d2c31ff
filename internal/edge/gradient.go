package edge

import (
	"fmt"
	"math"

	"github.com/ironsheep/edge-detect-mcp/internal/raster"
)

// GradientMagnitude combines horizontal and vertical Sobel responses into a
// per-pixel gradient magnitude: hypot(gx, gy).
//
// The computation goes through float64, so the largest possible Sobel pair
// (±1020, ±1020) is nowhere near overflow. Magnitudes are returned raw,
// without normalization or clamping; hysteresis thresholds are compared
// against these values directly.
//
// The two rasters must have identical dimensions; GradientMagnitude panics
// otherwise.
func GradientMagnitude(gx, gy *raster.Int16) *raster.Float32 {
	if gx.W != gy.W || gx.H != gy.H {
		panic(fmt.Sprintf("edge: GradientMagnitude dimension mismatch: gx %dx%d, gy %dx%d",
			gx.W, gx.H, gy.W, gy.H))
	}

	out := raster.NewFloat32(gx.W, gx.H)
	for i := range gx.Pix {
		out.Pix[i] = float32(math.Hypot(float64(gx.Pix[i]), float64(gy.Pix[i])))
	}
	return out
}
