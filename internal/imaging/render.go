package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/edge-detect-mcp/internal/edge"
	"github.com/ironsheep/edge-detect-mcp/internal/raster"
)

// ImageResult contains a rendered image encoded as base64 PNG.
//
// All image-valued tool results share this shape, so clients can treat
// crops, edge maps, gradient renderings, and overlays uniformly.
type ImageResult struct {
	// Width of the output image in pixels.
	Width int `json:"width"`

	// Height of the output image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// EncodeImage packages an image as a base64 PNG result.
func EncodeImage(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &ImageResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// RenderMagnitude maps a gradient magnitude field onto an 8-bit grayscale
// image, scaling linearly so the strongest gradient becomes white. The
// second return value is the maximum magnitude found; a zero maximum
// (flat input) produces an all-black image.
func RenderMagnitude(mag *raster.Float32) (*image.Gray, float32) {
	out := image.NewGray(image.Rect(0, 0, mag.W, mag.H))

	var maxVal float32
	for _, v := range mag.Pix {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		return out, 0
	}

	for i, v := range mag.Pix {
		out.Pix[i] = uint8(v/maxVal*255 + 0.5)
	}
	return out, maxVal
}

// RenderOrientation visualizes quantized gradient directions as hue-coded
// color. Each of the four direction buckets gets a fixed hue; pixels whose
// thinned magnitude falls below minMagnitude (or was suppressed entirely)
// stay black. OrientationLegend reports the bucket-to-color mapping.
func RenderOrientation(gx, gy *raster.Int16, thinned *raster.Float32, minMagnitude float32) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, thinned.W, thinned.H))

	for y := 0; y < thinned.H; y++ {
		for x := 0; x < thinned.W; x++ {
			v := thinned.At(x, y)
			if v <= 0 || v < minMagnitude {
				out.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			d := edge.Orientation(gx.At(x, y), gy.At(x, y))
			r, g, b := directionColor(d).RGB255()
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

// OrientationLegend maps each direction bucket (in degrees) to the hex
// color RenderOrientation paints it with.
func OrientationLegend() map[string]string {
	legend := make(map[string]string, 4)
	for _, d := range []edge.Direction{edge.Direction0, edge.Direction45, edge.Direction90, edge.Direction135} {
		legend[d.String()] = directionColor(d).Hex()
	}
	return legend
}

// directionColor assigns one hue per direction bucket, evenly spaced
// around the color wheel.
func directionColor(d edge.Direction) colorful.Color {
	return colorful.Hsv(float64(d)*90, 1, 1)
}

// EdgeOverlay composites a binary edge map over its source image, painting
// edge pixels in the given color.
//
// Parameters:
//   - src: The image the edges were detected in.
//   - edges: Binary edge map (0 background, 255 edge) of the same size.
//   - colorHex: Edge color as "#RRGGBB".
//   - thickness: Edge line thickness in pixels. Values above 1 dilate the
//     edge map before compositing, which makes thin edges visible on large
//     images.
//
// Returns an error if the color cannot be parsed or the sizes disagree.
func EdgeOverlay(src image.Image, edges *image.Gray, colorHex string, thickness int) (*image.RGBA, error) {
	lineColor, err := colorful.Hex(colorHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse edge color %q: %w", colorHex, err)
	}

	srcBounds := src.Bounds()
	edgeBounds := edges.Bounds()
	if srcBounds.Dx() != edgeBounds.Dx() || srcBounds.Dy() != edgeBounds.Dy() {
		return nil, fmt.Errorf("edge map %dx%d does not match image %dx%d",
			edgeBounds.Dx(), edgeBounds.Dy(), srcBounds.Dx(), srcBounds.Dy())
	}

	var mask image.Image = edges
	if thickness > 1 {
		mask = effect.Dilate(edges, float64(thickness-1))
	}

	out := image.NewRGBA(image.Rect(0, 0, srcBounds.Dx(), srcBounds.Dy()))
	draw.Draw(out, out.Bounds(), src, srcBounds.Min, draw.Src)

	r, g, b := lineColor.RGB255()
	rgba := color.RGBA{R: r, G: g, B: b, A: 255}
	maskBounds := mask.Bounds()
	for y := 0; y < edgeBounds.Dy(); y++ {
		for x := 0; x < edgeBounds.Dx(); x++ {
			mr, _, _, _ := mask.At(maskBounds.Min.X+x, maskBounds.Min.Y+y).RGBA()
			if mr >= 0x8000 {
				out.SetRGBA(x, y, rgba)
			}
		}
	}
	return out, nil
}
