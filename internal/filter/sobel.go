package filter

import (
	"image"

	"github.com/ironsheep/edge-detect-mcp/internal/raster"
)

// The two Sobel kernels. The horizontal kernel responds to change along X
// (vertical boundaries), the vertical kernel to change along Y (horizontal
// boundaries).
var (
	sobelHorizontal = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelVertical = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// SobelHorizontal convolves src with the horizontal Sobel kernel and returns
// the signed responses. A dark-to-bright transition along increasing X
// produces positive values.
func SobelHorizontal(src *image.Gray) *raster.Int16 {
	return convolve3x3(src, sobelHorizontal)
}

// SobelVertical convolves src with the vertical Sobel kernel and returns the
// signed responses. A dark-to-bright transition along increasing Y produces
// positive values.
func SobelVertical(src *image.Gray) *raster.Int16 {
	return convolve3x3(src, sobelVertical)
}

// convolve3x3 applies a 3x3 integer kernel with clamp-to-edge borders.
// Sobel responses for 8-bit input stay within [-1020, 1020], comfortably
// inside int16.
func convolve3x3(src *image.Gray, kernel [3][3]int) *raster.Int16 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := raster.NewInt16(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sx := clamp(x+kx, 0, w-1)
					sy := clamp(y+ky, 0, h-1)
					sum += kernel[ky+1][kx+1] * int(src.GrayAt(b.Min.X+sx, b.Min.Y+sy).Y)
				}
			}
			out.Pix[y*w+x] = int16(sum)
		}
	}
	return out
}
