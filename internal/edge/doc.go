// Package edge implements Canny edge detection: the conversion of a
// grayscale raster into a binary map (and, alternatively, a stream) of edge
// pixels.
//
// # Pipeline
//
// Detection runs five fixed stages:
//
//  1. Gaussian smoothing with sigma 1.4 (filter.Gaussian)
//  2. Horizontal and vertical Sobel gradients as signed 16-bit rasters
//     (filter.SobelHorizontal, filter.SobelVertical)
//  3. Gradient magnitude: hypot of the two Sobel responses per pixel
//  4. Non-maximum suppression: each interior pixel survives only if its
//     magnitude is at least that of both neighbors along its quantized
//     gradient direction (ties survive)
//  5. Hysteresis: pixels at or above the high threshold seed a flood that
//     claims connected pixels at or above the low threshold
//
// Canny runs all five stages and returns the binary map. CannyPixels runs
// stages 1-4 up front and performs stage 5 lazily, yielding each edge
// coordinate as it is discovered.
//
// # Traversal
//
// Hysteresis scans the interior in row-major order and expands each seed
// depth-first through an explicit stack, examining exactly six neighbor
// offsets per pixel in a fixed order. The resulting discovery order is
// deterministic, and the lazy iterator reproduces it coordinate for
// coordinate.
//
// # Output Contract
//
// The binary map contains only 0 (background) and 255 (edge). Its outer
// one-pixel border is always background; rasters narrower or shorter than
// 3 pixels have no interior and come back entirely background. Identical
// inputs always produce identical outputs.
//
// # Errors
//
// The package treats bad thresholds (negative, NaN, or high < low) and
// mismatched raster dimensions as programming errors and panics. Callers
// that accept untrusted parameters validate before calling in.
package edge
