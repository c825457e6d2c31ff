package detection

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/edge-detect-mcp/internal/edge"
	"github.com/ironsheep/edge-detect-mcp/internal/imaging"
)

// Point is a pixel coordinate, origin at the top-left of the image.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds is an axis-aligned bounding box with inclusive corners.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rectangle describes one detected axis-aligned rectangle.
type Rectangle struct {
	Bounds      Bounds  `json:"bounds"`
	Center      Point   `json:"center"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Area        int     `json:"area"`
	FillColor   string  `json:"fill_color"`
	BorderColor string  `json:"border_color"`
	Confidence  float64 `json:"confidence"`
}

// RectanglesResult is the payload returned by DetectRectangles.
type RectanglesResult struct {
	Rectangles []Rectangle `json:"rectangles"`
	Count      int         `json:"count"`
}

const (
	// minContourPoints discards specks too small to outline a shape.
	minContourPoints = 10

	// borderMargin is how far (in pixels) a contour point may sit from
	// its bounding box border and still count toward rectangularity.
	borderMargin = 1

	// minBoxSide rejects degenerate boxes: an isolated edge ridge is a
	// line, not a rectangle.
	minBoxSide = 3
)

// DetectRectangles finds axis-aligned rectangles in an image.
//
// The image is converted to grayscale and run through the Canny edge
// detector, then connected edge contours are extracted and scored by how
// tightly they hug their own bounding box. A filled rectangle produces a
// closed edge ring whose points all lie on the box border, scoring near
// 1.0; curves and diagonal strokes leave the border and score low.
//
// Parameters:
//   - img: source image
//   - low, high: Canny hysteresis thresholds (0 <= low <= high)
//   - minArea: minimum bounding box area in pixels for a detection
//   - tolerance: minimum rectangularity score (0.0 to 1.0) to accept
//
// Returns detected rectangles sorted by area, largest first. Nested
// near-duplicates, such as the inner and outer edge of one drawn border,
// are collapsed into a single detection.
func DetectRectangles(img image.Image, low, high float32, minArea int, tolerance float64) (*RectanglesResult, error) {
	if err := checkThresholds(low, high); err != nil {
		return nil, err
	}

	gray := imaging.ToGray(img)
	edges := edge.Canny(gray, low, high)

	rects := []Rectangle{}
	for _, contour := range findContours(edges) {
		minX, minY := contour[0].X, contour[0].Y
		maxX, maxY := minX, minY
		for _, p := range contour[1:] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}

		width := maxX - minX + 1
		height := maxY - minY + 1
		if width < minBoxSide || height < minBoxSide {
			continue
		}
		area := width * height
		if area < minArea {
			continue
		}

		bounds := Bounds{X1: minX, Y1: minY, X2: maxX, Y2: maxY}
		confidence := rectangularity(contour, bounds)
		if confidence < tolerance {
			continue
		}

		centerX := (minX + maxX) / 2
		centerY := (minY + maxY) / 2
		rects = append(rects, Rectangle{
			Bounds:      bounds,
			Center:      Point{X: centerX, Y: centerY},
			Width:       width,
			Height:      height,
			Area:        area,
			FillColor:   sampleColorHex(img, centerX, centerY),
			BorderColor: sampleColorHex(img, centerX, minY),
			Confidence:  confidence,
		})
	}

	sort.Slice(rects, func(i, j int) bool { return rects[i].Area > rects[j].Area })
	rects = filterNestedRectangles(rects)

	return &RectanglesResult{Rectangles: rects, Count: len(rects)}, nil
}

// findContours extracts 8-connected components of foreground pixels from
// a binary edge map. Components smaller than minContourPoints are
// dropped.
func findContours(edges *image.Gray) [][]image.Point {
	w := edges.Bounds().Dx()
	h := edges.Bounds().Dy()
	visited := make([]bool, w*h)

	var contours [][]image.Point
	for y := 0; y < h; y++ {
		row := edges.Pix[y*edges.Stride : y*edges.Stride+w]
		for x := 0; x < w; x++ {
			if row[x] == 0 || visited[y*w+x] {
				continue
			}
			contour := traceComponent(edges, visited, image.Pt(x, y))
			if len(contour) >= minContourPoints {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// traceComponent flood-fills one connected component starting from seed,
// marking every collected pixel in visited.
func traceComponent(edges *image.Gray, visited []bool, seed image.Point) []image.Point {
	w := edges.Bounds().Dx()
	h := edges.Bounds().Dy()

	var component []image.Point
	stack := []image.Point{seed}
	visited[seed.Y*w+seed.X] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				if visited[ny*w+nx] || edges.Pix[ny*edges.Stride+nx] == 0 {
					continue
				}
				visited[ny*w+nx] = true
				stack = append(stack, image.Pt(nx, ny))
			}
		}
	}
	return component
}

// rectangularity scores how closely a contour follows the border of its
// bounding box: the fraction of contour points within borderMargin of
// the nearest box side. The score does not depend on how thick the edge
// ridge is.
func rectangularity(contour []image.Point, b Bounds) float64 {
	if len(contour) == 0 {
		return 0
	}
	onBorder := 0
	for _, p := range contour {
		d := min(p.X-b.X1, b.X2-p.X, p.Y-b.Y1, b.Y2-p.Y)
		if d <= borderMargin {
			onBorder++
		}
	}
	return float64(onBorder) / float64(len(contour))
}

// filterNestedRectangles collapses detections whose centers and sizes
// nearly coincide. The edge detector marks both flanks of a drawn
// border, producing two concentric rings for a single rectangle outline;
// only the first (largest, after the area sort) is kept.
func filterNestedRectangles(rects []Rectangle) []Rectangle {
	kept := make([]Rectangle, 0, len(rects))
	for _, r := range rects {
		duplicate := false
		for _, k := range kept {
			if abs(r.Center.X-k.Center.X) <= 5 && abs(r.Center.Y-k.Center.Y) <= 5 &&
				abs(r.Width-k.Width) <= 8 && abs(r.Height-k.Height) <= 8 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, r)
		}
	}
	return kept
}

// sampleColorHex reads the pixel at (x, y) in pipeline coordinates and
// returns it as a lowercase hex string. Coordinates are clamped to the
// image and offset by its bounds origin.
func sampleColorHex(img image.Image, x, y int) string {
	b := img.Bounds()
	x = min(max(x, 0), b.Dx()-1)
	y = min(max(y, 0), b.Dy()-1)
	c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
	if !ok {
		return "#000000"
	}
	return c.Hex()
}

// checkThresholds rejects threshold pairs the edge pipeline would panic
// on, so malformed tool arguments surface as ordinary errors.
func checkThresholds(low, high float32) error {
	if math.IsNaN(float64(low)) || math.IsNaN(float64(high)) || low < 0 || high < low {
		return fmt.Errorf("invalid edge thresholds: need 0 <= low <= high, got low=%v high=%v", low, high)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
