// Package imaging provides loading, rendering, and packaging support for
// the edge detection server.
//
// This package sits between the wire handlers and the core pipeline
// packages (filter, edge, contrast): it decodes images from disk, converts
// them to the grayscale form the pipeline consumes, renders intermediate
// pipeline data (gradient magnitudes, direction buckets, edge overlays)
// into viewable images, and encodes results as base64 PNG payloads.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at top-left:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive
//     (bottom-right)
//
// Rendered outputs are always anchored at the origin, regardless of the
// source image's bounds.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The remaining operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - Unparseable color strings
//   - File I/O errors during image loading
//   - Encoding errors during image output
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid
// redundant disk reads. Large images may consume significant memory when
// cached. Consider using Evict() or Clear() to manage memory for
// long-running processes.
package imaging
