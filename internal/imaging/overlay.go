package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// GridOverlayResult contains an image with a coordinate grid drawn on top.
type GridOverlayResult struct {
	ImageResult

	// GridSpacing is the distance between grid lines in pixels.
	GridSpacing int `json:"grid_spacing"`
}

// GridOverlay draws a coordinate grid over an image. With edge maps this
// turns "somewhere in the upper left" into concrete pixel coordinates that
// can be fed back into crop or probe calls.
//
// Parameters:
//   - img: The source image.
//   - spacing: Distance between grid lines in pixels. Must be at least 1.
//   - showCoordinates: When true, each grid intersection is labeled with
//     its "x,y" position.
//   - colorHex: Grid line color as "#RRGGBB".
//
// Returns an error if the spacing is invalid or the color cannot be parsed.
func GridOverlay(img image.Image, spacing int, showCoordinates bool, colorHex string) (*GridOverlayResult, error) {
	if spacing < 1 {
		return nil, fmt.Errorf("grid spacing must be at least 1, got %d", spacing)
	}
	lineColor, err := colorful.Hex(colorHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse grid color %q: %w", colorHex, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	r, g, b := lineColor.RGB255()
	grid := color.RGBA{R: r, G: g, B: b, A: 255}

	for x := spacing; x < width; x += spacing {
		for y := 0; y < height; y++ {
			result.SetRGBA(x, y, grid)
		}
	}
	for y := spacing; y < height; y += spacing {
		for x := 0; x < width; x++ {
			result.SetRGBA(x, y, grid)
		}
	}

	if showCoordinates {
		labelColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		bgColor := color.RGBA{A: 180}

		for y := spacing; y < height; y += spacing {
			for x := spacing; x < width; x += spacing {
				drawLabel(result, x+2, y+2, fmt.Sprintf("%d,%d", x, y), labelColor, bgColor)
			}
		}
	}

	encoded, err := EncodeImage(result)
	if err != nil {
		return nil, err
	}
	return &GridOverlayResult{
		ImageResult: *encoded,
		GridSpacing: spacing,
	}, nil
}

// drawLabel renders text with its top-left corner at (x, y), over a
// padded background box for readability. Drawing is clipped to the image.
func drawLabel(dst *image.RGBA, x, y int, text string, fg, bg color.Color) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()

	box := image.Rect(x-1, y-1, x+textWidth+1, y+face.Height)
	draw.Draw(dst, box.Intersect(dst.Bounds()), image.NewUniform(bg), image.Point{}, draw.Over)

	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	drawer.DrawString(text)
}
