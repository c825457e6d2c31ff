// Package raster provides single-channel rasters for the intermediate stages
// of the edge detection pipeline.
//
// The standard library's image package covers 8-bit grayscale well, but the
// pipeline also needs signed 16-bit samples (Sobel gradients, where the sign
// carries direction) and 32-bit float samples (gradient magnitudes, which
// exceed the 8-bit range). Int16 and Float32 fill those gaps with the same
// flat, row-major layout image.Gray uses.
//
// # Coordinate System
//
// Coordinates are 0-based with (0,0) at the top-left corner, X increasing
// rightward and Y increasing downward. The sample at (x, y) lives at
// Pix[y*W+x].
//
// # Bounds Checking
//
// At and Set panic on out-of-range coordinates. A flat buffer maps many
// invalid (x, y) pairs to valid indices, so unchecked access would corrupt
// silently rather than fail loudly. Hot loops whose ranges provably stay
// inside the raster may index Pix directly.
package raster
