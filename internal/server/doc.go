// Package server implements the MCP (Model Context Protocol) server for the
// edge detection pipeline.
//
// This package provides a JSON-RPC 2.0 server that exposes the Canny
// pipeline and its supporting analysis operations through the MCP protocol,
// so MCP-compatible clients can run edge detection on local images and read
// the results as JSON.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// The server provides 20 tools organized into categories:
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Region Operations:
//   - image_crop: Extract rectangular region
//   - image_crop_quadrant: Extract named region (top-left, center, etc.)
//
// Pipeline Stages:
//   - image_blur: Gaussian smoothing preview
//   - image_gradient_magnitude: Normalized gradient magnitude map
//   - image_gradient_orientation: Hue-coded direction map
//
// Edge Detection:
//   - image_edge_detect: Full Canny run, binary edge map
//   - image_edge_pixels: Edge coordinates in traversal order
//   - image_edge_overlay: Edges recolored over the source image
//
// Thresholding:
//   - image_threshold: Fixed-level binarization
//   - image_threshold_otsu: Otsu's automatic level
//   - image_threshold_adaptive: Local-mean binarization
//
// Histogram Operations:
//   - image_histogram: 256-bin histogram with statistics
//   - image_equalize: Histogram equalization
//   - image_match_histogram: Match a reference distribution
//
// Shape Detection:
//   - image_detect_rectangles: Find rectangular shapes in the edge map
//   - image_detect_lines: Find line segments via Hough transform
//
// Analysis Helpers:
//   - image_grid_overlay: Add coordinate grid
//   - image_probe_pixel: Pipeline values at one pixel
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Handlers validate all parameters before calling into the pipeline, so
// out-of-range thresholds or coordinates come back as errors on the wire
// rather than tripping the core packages' preconditions.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(logger)
//	if err := srv.Run(); err != nil {
//	    os.Exit(1)
//	}
//
// Protocol frames own stdout, so the logger must write somewhere else;
// the shipped binary points it at stderr.
package server
