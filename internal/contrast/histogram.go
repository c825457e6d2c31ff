package contrast

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Histogram counts the occurrences of each intensity value in img.
func Histogram(img *image.Gray) [256]int {
	var hist [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}
	return hist
}

// CumulativeHistogram returns the running sum of img's histogram:
// entry i counts the pixels with intensity at most i.
func CumulativeHistogram(img *image.Gray) [256]int {
	hist := Histogram(img)
	for i := 1; i < len(hist); i++ {
		hist[i] += hist[i-1]
	}
	return hist
}

// EqualizeHistogram remaps img's intensities so their distribution is
// approximately uniform: each value v becomes 255 * cdf(v), where cdf is
// the fraction of pixels at or below v. Rows are processed in parallel.
//
// An empty image comes back empty; a constant image maps to 255
// everywhere, since every pixel sits at the top of its own distribution.
func EqualizeHistogram(img *image.Gray) *image.Gray {
	cdf := CumulativeHistogram(img)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	total := float32(cdf[255])
	if total == 0 {
		return out
	}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				fraction := float32(cdf[img.GrayAt(b.Min.X+x, b.Min.Y+y).Y]) / total
				v := 255 * fraction
				if v > 255 {
					v = 255
				}
				out.Pix[y*out.Stride+x] = uint8(v)
			}
		}
	})
	return out
}

// MatchHistogram remaps img's intensities so its histogram approximates
// target's, using a lookup table built from the two cumulative histograms.
func MatchHistogram(img, target *image.Gray) *image.Gray {
	srcCum := CumulativeHistogram(img)
	dstCum := CumulativeHistogram(target)
	lut := histogramLUT(&srcCum, &dstCum)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = lut[img.GrayAt(b.Min.X+x, b.Min.Y+y).Y]
		}
	}
	return out
}

// histogramLUT maps each source intensity to the target intensity whose
// cumulative relative frequency is nearest to the source's. The scan
// pointer only moves forward, so the table is monotonic; when a source
// fraction falls exactly halfway between two target fractions the higher
// intensity wins.
func histogramLUT(sourceCum, targetCum *[256]int) [256]uint8 {
	sourceTotal := float32(sourceCum[255])
	targetTotal := float32(targetCum[255])

	var lut [256]uint8
	y := 0
	prevTargetFraction := float32(0)

	for s := 0; s < 256; s++ {
		sourceFraction := float32(sourceCum[s]) / sourceTotal
		targetFraction := float32(targetCum[y]) / targetTotal

		for sourceFraction > targetFraction && y < 255 {
			y++
			prevTargetFraction = targetFraction
			targetFraction = float32(targetCum[y]) / targetTotal
		}

		if y == 0 {
			lut[s] = 0
			continue
		}
		prevDist := abs32(prevTargetFraction - sourceFraction)
		dist := abs32(targetFraction - sourceFraction)
		if prevDist < dist {
			lut[s] = uint8(y - 1)
		} else {
			lut[s] = uint8(y)
		}
	}
	return lut
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
