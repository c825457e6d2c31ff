// Package filter implements the convolution stages that feed edge detection:
// Gaussian smoothing and Sobel gradients.
//
// Both operations use clamp-to-edge border handling (samples outside the
// image take the value of the nearest edge pixel), so outputs always have
// the same dimensions as their inputs. Outputs are anchored at the origin
// regardless of the source image's bounds rectangle.
//
// Sobel responses are returned as signed 16-bit rasters. The sign carries
// the gradient direction and is consumed by non-maximum suppression; an
// unsigned magnitude-only Sobel would not do.
package filter
