package edge

import (
	"image"

	"github.com/ironsheep/edge-detect-mcp/internal/raster"
)

// floodOffsets is the neighborhood an edge pixel propagates through, in the
// order the offsets are examined. There are six, not eight: (0,-1) and
// (1,-1) are absent. The omission affects reachability in some
// configurations and the traversal order in all of them, and both are part
// of this package's observable contract, so the set must not be "completed"
// to a full 8-neighborhood.
var floodOffsets = [6]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, -1}, {-1, 0}, {-1, 1},
}

// hysteresis performs double-threshold edge tracking over a suppressed
// gradient field and returns the binary edge map.
//
// The interior is scanned in row-major order. Any unvisited pixel at or
// above high becomes a seed: it is marked as an edge and expanded
// depth-first through an explicit stack, claiming every reachable unvisited
// interior neighbor at or above low. The output raster doubles as the visit
// map (0 unvisited, 255 edge), so no pixel is ever claimed twice.
//
// Propagation is confined to the interior. For any low > 0 the confinement
// is unobservable, since the suppressed border is exactly zero; at low == 0
// it is what keeps the border background.
func hysteresis(thinned *raster.Float32, low, high float32) *image.Gray {
	w, h := thinned.W, thinned.H
	out := image.NewGray(image.Rect(0, 0, w, h))

	stack := make([]image.Point, 0, w*h/2)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if thinned.Pix[y*w+x] < high || out.Pix[y*out.Stride+x] != 0 {
				continue
			}
			out.Pix[y*out.Stride+x] = 255
			stack = append(stack, image.Pt(x, y))

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				for _, d := range floodOffsets {
					nx, ny := p.X+d.X, p.Y+d.Y
					if nx < 1 || nx > w-2 || ny < 1 || ny > h-2 {
						continue
					}
					if thinned.Pix[ny*w+nx] < low || out.Pix[ny*out.Stride+nx] != 0 {
						continue
					}
					out.Pix[ny*out.Stride+nx] = 255
					stack = append(stack, image.Pt(nx, ny))
				}
			}
		}
	}
	return out
}
