package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts a rectangular region from an image, optionally rescaling
// the result. The primary use is zooming into a rendered edge map to read
// individual edge pixels.
//
// Parameters:
//   - img: The source image.
//   - x1, y1: Top-left corner of the region (inclusive), relative to the
//     image origin.
//   - x2, y2: Bottom-right corner (exclusive).
//   - scale: Output scale factor. 1.0 keeps the cropped size; other
//     positive values resize with Lanczos resampling.
//
// Returns an error if the region is empty or falls outside the image.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*ImageResult, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if x1 < 0 || y1 < 0 || x2 > w || y2 > h {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			x1, y1, x2, y2, w, h)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	rect := image.Rect(x1, y1, x2, y2).Add(bounds.Min)
	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return EncodeImage(cropped)
}

// quadrant describes a named region in quarter-widths and quarter-heights:
// each coordinate is a multiplier over w/4 or h/4.
type quadrant struct {
	x1, y1, x2, y2 int
}

var quadrants = map[string]quadrant{
	"top-left":     {0, 0, 2, 2},
	"top-right":    {2, 0, 4, 2},
	"bottom-left":  {0, 2, 2, 4},
	"bottom-right": {2, 2, 4, 4},
	"top-half":     {0, 0, 4, 2},
	"bottom-half":  {0, 2, 4, 4},
	"left-half":    {0, 0, 2, 4},
	"right-half":   {2, 0, 4, 4},
	"center":       {1, 1, 3, 3},
}

// QuadrantNames lists the regions CropQuadrant accepts, in no particular
// order.
func QuadrantNames() []string {
	names := make([]string, 0, len(quadrants))
	for name := range quadrants {
		names = append(names, name)
	}
	return names
}

// CropQuadrant extracts a named region from an image: one of the four
// quadrants, a half, or the center ("center" covers the middle half of
// each axis). See QuadrantNames for the accepted names.
func CropQuadrant(img image.Image, region string, scale float64) (*ImageResult, error) {
	q, ok := quadrants[region]
	if !ok {
		return nil, fmt.Errorf("unknown region %q", region)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	return Crop(img, w*q.x1/4, h*q.y1/4, w*q.x2/4, h*q.y2/4, scale)
}
