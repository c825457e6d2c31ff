package edge

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/edge-detect-mcp/internal/raster"
)

// Direction is a gradient orientation quantized to one of four buckets.
// The value names the angle of the gradient vector, not of the edge it
// crosses: a vertical boundary has a horizontal gradient, Direction0.
type Direction uint8

const (
	// Direction0 covers gradient angles in [157.5, 180) and [0, 22.5).
	Direction0 Direction = iota
	// Direction45 covers [22.5, 67.5).
	Direction45
	// Direction90 covers [67.5, 112.5).
	Direction90
	// Direction135 covers [112.5, 157.5).
	Direction135
)

// String returns the bucket's nominal angle in degrees.
func (d Direction) String() string {
	switch d {
	case Direction0:
		return "0"
	case Direction45:
		return "45"
	case Direction90:
		return "90"
	case Direction135:
		return "135"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// comparisonOffsets returns the two neighbor offsets a candidate pixel is
// compared against: the pixels adjacent along the gradient, i.e. across the
// edge.
func (d Direction) comparisonOffsets() (p1, p2 image.Point) {
	switch d {
	case Direction0:
		return image.Pt(-1, 0), image.Pt(1, 0)
	case Direction45:
		return image.Pt(1, 1), image.Pt(-1, -1)
	case Direction90:
		return image.Pt(0, -1), image.Pt(0, 1)
	default: // Direction135
		return image.Pt(-1, 1), image.Pt(1, -1)
	}
}

// Orientation quantizes the angle of the gradient vector (gx, gy) into one
// of the four direction buckets. The angle is folded into [0, 180) first,
// so opposite gradients land in the same bucket.
func Orientation(gx, gy int16) Direction {
	angle := math.Atan2(float64(gy), float64(gx)) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle >= 157.5 || angle < 22.5:
		return Direction0
	case angle < 67.5:
		return Direction45
	case angle < 112.5:
		return Direction90
	default:
		return Direction135
	}
}

// SuppressNonMaxima thins a gradient magnitude field to its ridges.
//
// Each interior pixel is compared against its two neighbors along the
// quantized gradient direction. The pixel keeps its magnitude only if it is
// at least as large as both; a strictly larger neighbor on either side
// suppresses it to zero. Equal neighbors do NOT suppress, so plateau ridges
// survive at full width.
//
// The one-pixel border ring is never a candidate and is always zero in the
// output.
//
// All three rasters must have identical dimensions; SuppressNonMaxima
// panics otherwise.
func SuppressNonMaxima(g *raster.Float32, gx, gy *raster.Int16) *raster.Float32 {
	if gx.W != g.W || gx.H != g.H || gy.W != g.W || gy.H != g.H {
		panic(fmt.Sprintf("edge: SuppressNonMaxima dimension mismatch: magnitude %dx%d, gx %dx%d, gy %dx%d",
			g.W, g.H, gx.W, gx.H, gy.W, gy.H))
	}

	w := g.W
	out := raster.NewFloat32(g.W, g.H)
	for y := 1; y < g.H-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			p1, p2 := Orientation(gx.Pix[i], gy.Pix[i]).comparisonOffsets()

			v := g.Pix[i]
			if v < g.Pix[i+p1.Y*w+p1.X] || v < g.Pix[i+p2.Y*w+p2.X] {
				continue // suppressed; out is already zero
			}
			out.Pix[i] = v
		}
	}
	return out
}
