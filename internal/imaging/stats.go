package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/edge-detect-mcp/internal/contrast"
	"github.com/ironsheep/edge-detect-mcp/internal/edge"
	"github.com/ironsheep/edge-detect-mcp/internal/filter"
)

// IntensityStats summarizes the intensity distribution of a grayscale image.
type IntensityStats struct {
	// Min is the darkest intensity present.
	Min uint8 `json:"min"`

	// Max is the brightest intensity present.
	Max uint8 `json:"max"`

	// Mean is the average intensity.
	Mean float64 `json:"mean"`

	// Median is the middle intensity (the upper middle for even pixel
	// counts).
	Median uint8 `json:"median"`

	// StdDev is the population standard deviation of the intensities.
	StdDev float64 `json:"std_dev"`
}

// ComputeIntensityStats derives summary statistics from an image's
// histogram. An empty image yields the zero value.
func ComputeIntensityStats(gray *image.Gray) *IntensityStats {
	hist := contrast.Histogram(gray)

	total := 0
	for _, count := range hist {
		total += count
	}
	if total == 0 {
		return &IntensityStats{}
	}

	stats := &IntensityStats{Min: 255}
	var sum float64
	for v, count := range hist {
		if count == 0 {
			continue
		}
		if uint8(v) < stats.Min {
			stats.Min = uint8(v)
		}
		if uint8(v) > stats.Max {
			stats.Max = uint8(v)
		}
		sum += float64(v * count)
	}
	stats.Mean = sum / float64(total)

	// The median is the smallest intensity whose cumulative count passes
	// the middle of the distribution.
	middle := total/2 + 1
	cum := 0
	for v, count := range hist {
		cum += count
		if cum >= middle {
			stats.Median = uint8(v)
			break
		}
	}

	var varSum float64
	for v, count := range hist {
		if count == 0 {
			continue
		}
		diff := float64(v) - stats.Mean
		varSum += float64(count) * diff * diff
	}
	stats.StdDev = math.Sqrt(varSum / float64(total))

	return stats
}

// HistogramResult combines an image's raw histogram with summary statistics
// and the Otsu split level, giving a caller everything needed to choose
// thresholds in one call.
type HistogramResult struct {
	// Bins holds the pixel count for each of the 256 intensities.
	Bins []int `json:"bins"`

	// Stats summarizes the distribution.
	Stats IntensityStats `json:"stats"`

	// OtsuLevel is the threshold Otsu's method selects for this image.
	OtsuLevel uint8 `json:"otsu_level"`
}

// ComputeHistogram builds the full histogram report for a grayscale image.
func ComputeHistogram(gray *image.Gray) *HistogramResult {
	hist := contrast.Histogram(gray)
	return &HistogramResult{
		Bins:      hist[:],
		Stats:     *ComputeIntensityStats(gray),
		OtsuLevel: contrast.OtsuLevel(gray),
	}
}

// PixelProbe reports what the edge pipeline sees at a single pixel.
type PixelProbe struct {
	// X and Y are the probed coordinates.
	X int `json:"x"`
	Y int `json:"y"`

	// Intensity is the raw grayscale value at (X, Y).
	Intensity uint8 `json:"intensity"`

	// Blurred is the intensity after the detector's Gaussian smoothing.
	Blurred uint8 `json:"blurred"`

	// GX and GY are the Sobel gradient components at the blurred pixel.
	GX int `json:"gx"`
	GY int `json:"gy"`

	// Magnitude is the gradient magnitude sqrt(GX² + GY²).
	Magnitude float64 `json:"magnitude"`

	// Direction is the quantized gradient direction bucket in degrees:
	// "0", "45", "90", or "135".
	Direction string `json:"direction"`
}

// ProbePixel runs the blur and gradient stages and reports their values at
// one pixel. Comparing the magnitude against candidate thresholds shows
// whether that pixel would seed an edge, extend one, or be discarded.
//
// Returns an error if (x, y) lies outside the image.
func ProbePixel(gray *image.Gray, x, y int) (*PixelProbe, error) {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if x < 0 || x >= w || y < 0 || y >= h {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, w, h)
	}

	blurred := filter.Gaussian(gray, edge.BlurSigma)
	gxv := filter.SobelHorizontal(blurred).At(x, y)
	gyv := filter.SobelVertical(blurred).At(x, y)

	return &PixelProbe{
		X:         x,
		Y:         y,
		Intensity: gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y,
		Blurred:   blurred.GrayAt(x, y).Y,
		GX:        int(gxv),
		GY:        int(gyv),
		Magnitude: math.Hypot(float64(gxv), float64(gyv)),
		Direction: edge.Orientation(gxv, gyv).String(),
	}, nil
}
