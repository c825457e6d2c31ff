package edge

import (
	"image"

	"github.com/ironsheep/edge-detect-mcp/internal/raster"
)

// PixelIterator yields edge pixel coordinates one at a time instead of
// materializing the whole binary map. The sequence it produces is exactly
// the order in which Canny's hysteresis stage first marks each pixel: seeds
// in row-major scan order, each followed by its connected component in
// depth-first discovery order. No coordinate appears twice.
//
// All work happens inside Next; the iterator holds no goroutines and is not
// safe for concurrent use. It cannot be restarted: once exhausted, Next
// returns false forever, and a fresh iterator must be built (re-running the
// preprocessing stages) to traverse again.
type PixelIterator struct {
	thinned *raster.Float32
	low     float32
	high    float32

	// out doubles as the visit map: 0 unvisited, 255 yielded. Painting it
	// at each yield is what makes the sequence duplicate-free.
	out *image.Gray

	// Row-major scan cursor over the interior.
	sx, sy int

	// Expansion state: the pixel whose neighborhood is being examined,
	// the index of the next flood offset to try, and whether an expansion
	// is in progress at all.
	cur       image.Point
	nextOff   int
	expanding bool

	// Yielded pixels whose neighborhoods have not been examined yet.
	stack []image.Point
}

// CannyPixels runs the preprocessing stages of the pipeline (smoothing,
// gradients, magnitude, suppression) immediately and returns an iterator
// that performs hysteresis lazily.
//
// Draining the iterator and painting every coordinate white onto a black
// raster reproduces Canny(src, low, high) exactly. Thresholds follow the
// same rules as Canny and panic on violation.
func CannyPixels(src *image.Gray, low, high float32) *PixelIterator {
	validateThresholds(low, high)
	return newPixelIterator(prepare(src), low, high)
}

func newPixelIterator(thinned *raster.Float32, low, high float32) *PixelIterator {
	it := &PixelIterator{
		thinned: thinned,
		low:     low,
		high:    high,
		out:     image.NewGray(image.Rect(0, 0, thinned.W, thinned.H)),
		sx:      1,
		sy:      1,
		stack:   make([]image.Point, 0, thinned.W*thinned.H/2),
	}
	if thinned.W < 3 || thinned.H < 3 {
		it.sy = thinned.H // no interior; born exhausted
	}
	return it
}

// Next returns the next edge pixel and true, or a zero point and false once
// every edge pixel has been produced.
func (it *PixelIterator) Next() (image.Point, bool) {
	w, h := it.thinned.W, it.thinned.H

	// Finish the component in progress before scanning any further.
	for it.expanding {
		for it.nextOff < len(floodOffsets) {
			d := floodOffsets[it.nextOff]
			it.nextOff++

			nx, ny := it.cur.X+d.X, it.cur.Y+d.Y
			if nx < 1 || nx > w-2 || ny < 1 || ny > h-2 {
				continue
			}
			if it.thinned.Pix[ny*w+nx] < it.low || it.out.Pix[ny*it.out.Stride+nx] != 0 {
				continue
			}
			it.out.Pix[ny*it.out.Stride+nx] = 255
			it.stack = append(it.stack, image.Pt(nx, ny))
			return image.Pt(nx, ny), true
		}

		if n := len(it.stack); n > 0 {
			it.cur = it.stack[n-1]
			it.stack = it.stack[:n-1]
			it.nextOff = 0
		} else {
			it.expanding = false
		}
	}

	// Resume the row-major scan at the cursor, looking for a seed.
	for it.sy < h-1 {
		x, y := it.sx, it.sy
		it.sx++
		if it.sx > w-2 {
			it.sx = 1
			it.sy++
		}

		if it.thinned.Pix[y*w+x] < it.high || it.out.Pix[y*it.out.Stride+x] != 0 {
			continue
		}
		it.out.Pix[y*it.out.Stride+x] = 255
		it.cur = image.Pt(x, y)
		it.nextOff = 0
		it.expanding = true
		return image.Pt(x, y), true
	}
	return image.Point{}, false
}
