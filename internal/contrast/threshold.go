package contrast

import (
	"fmt"
	"image"
)

// Threshold binarizes img at the given level. Pixels with intensity at or
// below level become background (0); everything brighter becomes
// foreground (255).
func Threshold(img *image.Gray, level uint8) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.GrayAt(b.Min.X+x, b.Min.Y+y).Y > level {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// OtsuLevel picks the global threshold that maximizes the between-class
// variance of img's histogram (Otsu's method). Feeding the result to
// Threshold splits the image into its two dominant intensity classes.
//
// The level only advances on a strictly greater variance, so a constant
// image yields level 0.
func OtsuLevel(img *image.Gray) uint8 {
	hist := Histogram(img)
	b := img.Bounds()
	totalWeight := b.Dx() * b.Dy()

	// Sum of all pixel intensities, for computing class means.
	var totalPixelSum float64
	for t, count := range hist {
		totalPixelSum += float64(t * count)
	}

	var backgroundPixelSum float64
	backgroundWeight := 0

	var largestVariance float64
	var bestThreshold uint8

	for threshold, count := range hist {
		backgroundWeight += count
		if backgroundWeight == 0 {
			continue
		}
		foregroundWeight := totalWeight - backgroundWeight
		if foregroundWeight == 0 {
			break
		}

		backgroundPixelSum += float64(threshold * count)
		foregroundPixelSum := totalPixelSum - backgroundPixelSum

		backgroundMean := backgroundPixelSum / float64(backgroundWeight)
		foregroundMean := foregroundPixelSum / float64(foregroundWeight)

		meanDiff := backgroundMean - foregroundMean
		interClassVariance := float64(backgroundWeight) * float64(foregroundWeight) * meanDiff * meanDiff

		if interClassVariance > largestVariance {
			largestVariance = interClassVariance
			bestThreshold = uint8(threshold)
		}
	}
	return bestThreshold
}

// AdaptiveThreshold binarizes img by comparing each pixel against the mean
// intensity of the (2*blockRadius+1) square block centered on it, clamped
// to the image. Pixels at least as bright as their local mean become
// foreground (255); the rest become background (0).
//
// Block means come from a summed-area table, so the cost is independent of
// the radius. AdaptiveThreshold panics if blockRadius is not positive.
func AdaptiveThreshold(img *image.Gray, blockRadius int) *image.Gray {
	if blockRadius <= 0 {
		panic(fmt.Sprintf("contrast: AdaptiveThreshold block radius must be positive, got %d", blockRadius))
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	integral := integralImage(img)
	out := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		top := max(0, y-blockRadius)
		bottom := min(h-1, y+blockRadius)
		for x := 0; x < w; x++ {
			left := max(0, x-blockRadius)
			right := min(w-1, x+blockRadius)

			count := uint64((right - left + 1) * (bottom - top + 1))
			mean := blockSum(integral, w, left, top, right, bottom) / count

			if uint64(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y) >= mean {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// integralImage builds a (w+1)x(h+1) summed-area table: cell (x+1, y+1)
// holds the sum of all pixels in the rectangle [0,x] x [0,y]. The extra
// zero row and column keep blockSum free of boundary branches.
func integralImage(img *image.Gray) []uint64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := w + 1
	table := make([]uint64, (w+1)*(h+1))

	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			table[(y+1)*stride+x+1] = table[y*stride+x+1] + rowSum
		}
	}
	return table
}

// blockSum returns the sum over the inclusive pixel rectangle
// [left,right] x [top,bottom] using a table produced by integralImage.
func blockSum(table []uint64, w, left, top, right, bottom int) uint64 {
	stride := w + 1
	return table[(bottom+1)*stride+right+1] -
		table[top*stride+right+1] -
		table[(bottom+1)*stride+left] +
		table[top*stride+left]
}
