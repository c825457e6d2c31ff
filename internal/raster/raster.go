package raster

import (
	"fmt"
	"image"
)

// Int16 is a single-channel raster of signed 16-bit samples in row-major
// order. It is the gradient analog of image.Gray: Sobel responses range over
// [-1020, 1020] for 8-bit input, so the sign and magnitude both need more
// room than any stdlib image type offers.
type Int16 struct {
	// W and H are the raster dimensions in pixels.
	W, H int

	// Pix holds the samples. The sample at (x, y) is Pix[y*W+x].
	// Prefer At and Set outside loops whose bounds are already proven.
	Pix []int16
}

// NewInt16 returns a zero-filled raster of the given dimensions.
// Negative dimensions panic.
func NewInt16(w, h int) *Int16 {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("raster: NewInt16 with negative dimensions %dx%d", w, h))
	}
	return &Int16{W: w, H: h, Pix: make([]int16, w*h)}
}

// In reports whether (x, y) lies inside the raster.
func (r *Int16) In(x, y int) bool {
	return x >= 0 && x < r.W && y >= 0 && y < r.H
}

// Bounds returns the raster's extent as a rectangle anchored at the origin.
func (r *Int16) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.W, r.H)
}

// At returns the sample at (x, y). It panics if (x, y) is out of bounds.
func (r *Int16) At(x, y int) int16 {
	if !r.In(x, y) {
		panic(fmt.Sprintf("raster: Int16.At(%d, %d) out of bounds %dx%d", x, y, r.W, r.H))
	}
	return r.Pix[y*r.W+x]
}

// Set stores v at (x, y). It panics if (x, y) is out of bounds.
func (r *Int16) Set(x, y int, v int16) {
	if !r.In(x, y) {
		panic(fmt.Sprintf("raster: Int16.Set(%d, %d) out of bounds %dx%d", x, y, r.W, r.H))
	}
	r.Pix[y*r.W+x] = v
}

// Float32 is a single-channel raster of float32 samples in row-major order.
// Gradient magnitudes (hypot of two Sobel responses) exceed 8 bits and are
// compared against float thresholds, so they stay in floating point until
// the final binary output.
type Float32 struct {
	// W and H are the raster dimensions in pixels.
	W, H int

	// Pix holds the samples. The sample at (x, y) is Pix[y*W+x].
	// Prefer At and Set outside loops whose bounds are already proven.
	Pix []float32
}

// NewFloat32 returns a zero-filled raster of the given dimensions.
// Negative dimensions panic.
func NewFloat32(w, h int) *Float32 {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("raster: NewFloat32 with negative dimensions %dx%d", w, h))
	}
	return &Float32{W: w, H: h, Pix: make([]float32, w*h)}
}

// In reports whether (x, y) lies inside the raster.
func (r *Float32) In(x, y int) bool {
	return x >= 0 && x < r.W && y >= 0 && y < r.H
}

// Bounds returns the raster's extent as a rectangle anchored at the origin.
func (r *Float32) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.W, r.H)
}

// At returns the sample at (x, y). It panics if (x, y) is out of bounds.
func (r *Float32) At(x, y int) float32 {
	if !r.In(x, y) {
		panic(fmt.Sprintf("raster: Float32.At(%d, %d) out of bounds %dx%d", x, y, r.W, r.H))
	}
	return r.Pix[y*r.W+x]
}

// Set stores v at (x, y). It panics if (x, y) is out of bounds.
func (r *Float32) Set(x, y int, v float32) {
	if !r.In(x, y) {
		panic(fmt.Sprintf("raster: Float32.Set(%d, %d) out of bounds %dx%d", x, y, r.W, r.H))
	}
	r.Pix[y*r.W+x] = v
}
