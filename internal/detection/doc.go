// Package detection derives structured geometry from Canny edge maps.
//
// The package locates axis-aligned rectangles and straight line segments
// in an image by running the full edge pipeline (grayscale conversion,
// Gaussian blur, Sobel gradients, non-maximum suppression, hysteresis)
// and then analyzing the surviving edge pixels.
//
// # Rectangles
//
// Connected edge pixels are grouped into contours with an 8-connected
// flood fill and scored by rectangularity: the fraction of contour
// points lying within one pixel of the contour's own bounding box
// border. A closed rectangular edge ring scores near 1.0 whether the
// ridge is one or two pixels wide; circular arcs and diagonal strokes
// leave the border and score well under 0.5. Callers filter with a
// tolerance on that score and a minimum box area.
//
// # Lines
//
// Edge pixels vote in a Hough accumulator over (rho, theta) space at
// one-degree angular resolution. Local accumulator maxima become
// candidate lines, each claiming the edge pixels near it; the segment
// endpoints are the extreme projections of the claimed pixels onto the
// line direction. Claimed pixels are consumed, so overlapping candidates
// for one physical edge collapse to a single reported segment.
//
// # Coordinate System
//
// Results use pipeline coordinates: origin at the top-left of the image
// regardless of its bounds offset, x rightward, y downward. Bounding box
// corners are inclusive.
//
// # Edges Versus Strokes
//
// The detectors see edges, not strokes. A drawn border wider than a
// pixel or two produces an edge ridge along each flank, which yields two
// concentric rings for one rectangle outline and one segment per flank
// for a thick line. Rectangle detection collapses the concentric pair;
// line detection reports the flanks separately.
package detection
