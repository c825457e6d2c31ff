package detection

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ironsheep/edge-detect-mcp/internal/edge"
	"github.com/ironsheep/edge-detect-mcp/internal/imaging"
)

// Line describes one detected straight line segment.
type Line struct {
	Start           Point   `json:"start"`
	End             Point   `json:"end"`
	Length          float64 `json:"length"`
	AngleDegrees    float64 `json:"angle_degrees"`
	Color           string  `json:"color"`
	ThicknessApprox int     `json:"thickness_approx"`
}

// LinesResult is the payload returned by DetectLines.
type LinesResult struct {
	Lines []Line `json:"lines"`
	Count int    `json:"count"`
}

const (
	// maxLines caps the result so pathological inputs cannot flood a
	// client with thousands of segments.
	maxLines = 50

	// angleSteps is the angular resolution of the Hough accumulator,
	// one bin per degree over [0, 180).
	angleSteps = 180

	// supportTolerance is the maximum normal distance (in pixels) from
	// a candidate line for an edge pixel to count as support.
	supportTolerance = 2.0

	// peakRadius is the accumulator neighborhood (in bins) a peak must
	// dominate.
	peakRadius = 2

	// thicknessScan bounds the perpendicular search in estimateThickness.
	thicknessScan = 10
)

// houghPeak is one local maximum in the vote accumulator.
type houghPeak struct {
	rho   int
	theta int
	votes int
}

// DetectLines finds straight line segments in an image.
//
// The image is converted to grayscale and run through the Canny edge
// detector, and the surviving edge pixels vote in a Hough accumulator
// over (rho, theta) space. Accumulator peaks become candidate lines;
// each candidate claims the unclaimed edge pixels within
// supportTolerance of it, then the segment direction is refitted to the
// claimed pixels and its endpoints are their extreme projections along
// that direction. Claimed pixels are consumed,
// so one physical edge cannot reappear as several overlapping
// detections.
//
// Parameters:
//   - img: source image
//   - low, high: Canny hysteresis thresholds (0 <= low <= high)
//   - minLength: minimum segment length in pixels
//
// Returns at most maxLines segments, strongest first. Endpoints are
// ordered left to right (top to bottom for verticals), so AngleDegrees
// is always in [-90, 90].
func DetectLines(img image.Image, low, high float32, minLength int) (*LinesResult, error) {
	if err := checkThresholds(low, high); err != nil {
		return nil, err
	}
	if minLength < 1 {
		return nil, fmt.Errorf("minimum line length must be positive, got %d", minLength)
	}

	gray := imaging.ToGray(img)
	edges := edge.Canny(gray, low, high)
	w := edges.Bounds().Dx()
	h := edges.Bounds().Dy()

	var points []image.Point
	for y := 0; y < h; y++ {
		row := edges.Pix[y*edges.Stride : y*edges.Stride+w]
		for x := 0; x < w; x++ {
			if row[x] != 0 {
				points = append(points, image.Pt(x, y))
			}
		}
	}

	result := &LinesResult{Lines: []Line{}}
	if len(points) == 0 {
		return result, nil
	}

	var sinTab, cosTab [angleSteps]float64
	for t := 0; t < angleSteps; t++ {
		rad := float64(t) * math.Pi / float64(angleSteps)
		sinTab[t] = math.Sin(rad)
		cosTab[t] = math.Cos(rad)
	}

	maxDist := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	votes := make([]int, (2*maxDist+1)*angleSteps)
	for _, p := range points {
		for t := 0; t < angleSteps; t++ {
			rho := int(math.Round(float64(p.X)*cosTab[t] + float64(p.Y)*sinTab[t]))
			votes[(rho+maxDist)*angleSteps+t]++
		}
	}

	voteThreshold := max(minLength/2, 2)
	peaks := accumulatorPeaks(votes, maxDist, voteThreshold)

	claimed := make([]bool, w*h)
	for _, pk := range peaks {
		if len(result.Lines) >= maxLines {
			break
		}
		cosA, sinA := cosTab[pk.theta], sinTab[pk.theta]
		rho := float64(pk.rho)

		var support []image.Point
		for _, p := range points {
			if claimed[p.Y*w+p.X] {
				continue
			}
			if math.Abs(float64(p.X)*cosA+float64(p.Y)*sinA-rho) < supportTolerance {
				support = append(support, p)
			}
		}
		if len(support) < voteThreshold {
			continue
		}

		// The accumulator locates a line only to one-degree, one-pixel
		// bins. The reported direction comes from the second moments of
		// the claimed pixels, and the endpoints are their extreme
		// projections along it.
		var mx, my float64
		for _, p := range support {
			mx += float64(p.X)
			my += float64(p.Y)
		}
		mx /= float64(len(support))
		my /= float64(len(support))
		var sxx, sxy, syy float64
		for _, p := range support {
			dx := float64(p.X) - mx
			dy := float64(p.Y) - my
			sxx += dx * dx
			sxy += dx * dy
			syy += dy * dy
		}
		fit := 0.5 * math.Atan2(2*sxy, sxx-syy)
		dirX, dirY := math.Cos(fit), math.Sin(fit)

		start, end := support[0], support[0]
		minProj := math.Inf(1)
		maxProj := math.Inf(-1)
		for _, p := range support {
			proj := float64(p.X)*dirX + float64(p.Y)*dirY
			if proj < minProj {
				minProj = proj
				start = p
			}
			if proj > maxProj {
				maxProj = proj
				end = p
			}
		}

		length := math.Hypot(float64(end.X-start.X), float64(end.Y-start.Y))
		if length < float64(minLength) {
			continue
		}
		for _, p := range support {
			claimed[p.Y*w+p.X] = true
		}

		if end.X < start.X || (end.X == start.X && end.Y < start.Y) {
			start, end = end, start
		}
		angle := fit * 180 / math.Pi

		result.Lines = append(result.Lines, Line{
			Start:           Point{X: start.X, Y: start.Y},
			End:             Point{X: end.X, Y: end.Y},
			Length:          length,
			AngleDegrees:    angle,
			Color:           sampleColorHex(img, (start.X+end.X)/2, (start.Y+end.Y)/2),
			ThicknessApprox: estimateThickness(edges, start, end),
		})
	}

	result.Count = len(result.Lines)
	return result, nil
}

// accumulatorPeaks finds accumulator bins with at least threshold votes
// that dominate their neighborhood within peakRadius bins. Peaks are
// returned strongest first.
func accumulatorPeaks(votes []int, maxDist, threshold int) []houghPeak {
	rhoBins := 2*maxDist + 1
	var peaks []houghPeak
	for r := 0; r < rhoBins; r++ {
		for t := 0; t < angleSteps; t++ {
			v := votes[r*angleSteps+t]
			if v < threshold {
				continue
			}
			isPeak := true
			for dr := -peakRadius; dr <= peakRadius && isPeak; dr++ {
				for dt := -peakRadius; dt <= peakRadius; dt++ {
					nr, nt := r+dr, t+dt
					if nr < 0 || nr >= rhoBins || nt < 0 || nt >= angleSteps {
						continue
					}
					if votes[nr*angleSteps+nt] > v {
						isPeak = false
						break
					}
				}
			}
			if isPeak {
				peaks = append(peaks, houghPeak{rho: r - maxDist, theta: t, votes: v})
			}
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].votes > peaks[j].votes })
	return peaks
}

// estimateThickness samples the edge map perpendicular to the segment at
// three interior points and averages the contiguous foreground run
// through each. Samples that miss the ridge entirely are skipped; a
// segment with no usable samples reports 1.
func estimateThickness(edges *image.Gray, start, end image.Point) int {
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 1
	}
	perpX, perpY := -dy/length, dx/length

	total, samples := 0, 0
	for _, f := range []float64{0.25, 0.5, 0.75} {
		px := float64(start.X) + dx*f
		py := float64(start.Y) + dy*f

		run := 0
		for d := 0; d <= thicknessScan; d++ {
			if !edgeAt(edges, px+perpX*float64(d), py+perpY*float64(d)) {
				break
			}
			run++
		}
		for d := 1; d <= thicknessScan; d++ {
			if !edgeAt(edges, px-perpX*float64(d), py-perpY*float64(d)) {
				break
			}
			run++
		}
		if run > 0 {
			total += run
			samples++
		}
	}
	if samples == 0 {
		return 1
	}
	return max(int(math.Round(float64(total)/float64(samples))), 1)
}

// edgeAt reports whether the rounded coordinate holds a foreground pixel.
func edgeAt(edges *image.Gray, x, y float64) bool {
	ix := int(math.Round(x))
	iy := int(math.Round(y))
	w := edges.Bounds().Dx()
	h := edges.Bounds().Dy()
	if ix < 0 || iy < 0 || ix >= w || iy >= h {
		return false
	}
	return edges.Pix[iy*edges.Stride+ix] != 0
}
