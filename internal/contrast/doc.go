// Package contrast provides histogram-based intensity operations:
// global and adaptive binarization, Otsu threshold selection, histogram
// statistics, equalization, and histogram matching.
//
// In the edge detection workflow these serve two purposes: normalizing
// input contrast before the gradient stages, and helping a caller choose
// hysteresis thresholds by inspecting the intensity distribution.
//
// All functions treat images as 8-bit single-channel data and leave their
// inputs unmodified. Outputs are anchored at the origin. Binary outputs
// use 0 for background and 255 for foreground.
package contrast
