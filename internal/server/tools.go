package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. Caches the decoded image for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width, height, and aspect ratio of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into areas of an edge map that need detailed examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_crop_quadrant",
			Description: "Crop a named region of the image (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region to extract",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "region"},
			},
		},

		// Pipeline Stages
		{
			Name:        "image_blur",
			Description: "Return a Gaussian-blurred grayscale version of the image. Shows what the edge detector sees after its smoothing stage.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"sigma": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian standard deviation (default 1.4, the detector's own smoothing)",
						"default":     1.4,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_gradient_magnitude",
			Description: "Return the gradient magnitude as a grayscale map, brightest where intensity changes fastest. Useful for choosing hysteresis thresholds before running edge detection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_gradient_orientation",
			Description: "Return a hue-coded map of gradient directions after non-maximum suppression: red 0, green 45, cyan 90, violet 135 degrees. Weak and suppressed pixels stay black.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"min_magnitude": map[string]interface{}{
						"type":        "number",
						"description": "Gradient magnitude below which pixels are left black (default 50)",
						"default":     50,
					},
				},
				"required": []string{"path"},
			},
		},

		// Edge Detection
		{
			Name:        "image_edge_detect",
			Description: "Run Canny edge detection and return the binary edge map, showing only structural lines. Useful for understanding image structure without color fills.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold_low": map[string]interface{}{
						"type":        "number",
						"description": "Low hysteresis threshold; weaker gradients are discarded (default 50)",
						"default":     50,
					},
					"threshold_high": map[string]interface{}{
						"type":        "number",
						"description": "High hysteresis threshold; stronger gradients seed edges (default 100)",
						"default":     100,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_edge_pixels",
			Description: "List edge pixel coordinates in detector traversal order instead of rendering a map. Useful when downstream logic needs the points themselves.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold_low": map[string]interface{}{
						"type":        "number",
						"description": "Low hysteresis threshold (default 50)",
						"default":     50,
					},
					"threshold_high": map[string]interface{}{
						"type":        "number",
						"description": "High hysteresis threshold (default 100)",
						"default":     100,
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of points to return, 0 for all (default 0)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_edge_overlay",
			Description: "Draw detected edges in color over the original image. Useful for checking which image features the thresholds pick up.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold_low": map[string]interface{}{
						"type":        "number",
						"description": "Low hysteresis threshold (default 50)",
						"default":     50,
					},
					"threshold_high": map[string]interface{}{
						"type":        "number",
						"description": "High hysteresis threshold (default 100)",
						"default":     100,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Edge color as #RRGGBB hex (default #ff0000)",
						"default":     "#ff0000",
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Dilation radius applied to the edges before compositing (default 1)",
						"default":     1,
					},
				},
				"required": []string{"path"},
			},
		},

		// Thresholding
		{
			Name:        "image_threshold",
			Description: "Binarize the grayscale image at a fixed level: pixels at or above the level become white, the rest black.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"level": map[string]interface{}{
						"type":        "integer",
						"description": "Threshold level (0-255)",
					},
				},
				"required": []string{"path", "level"},
			},
		},
		{
			Name:        "image_threshold_otsu",
			Description: "Binarize the grayscale image at the level Otsu's method computes from its histogram. Returns the level alongside the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_threshold_adaptive",
			Description: "Binarize using a per-pixel threshold from the local mean. Handles uneven lighting that defeats a single global level.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"block_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Radius of the local averaging window in pixels (default 16)",
						"default":     16,
					},
				},
				"required": []string{"path"},
			},
		},

		// Histogram Operations
		{
			Name:        "image_histogram",
			Description: "Return the 256-bin intensity histogram with min/max/mean/median/std-dev statistics and the Otsu threshold level.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_equalize",
			Description: "Equalize the grayscale histogram to spread intensities over the full range. Useful as a preprocessing step for low-contrast images.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_match_histogram",
			Description: "Remap the image's intensities so its histogram approximates that of a reference image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"reference_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the reference image file",
					},
				},
				"required": []string{"path", "reference_path"},
			},
		},

		// Shape Detection
		{
			Name:        "image_detect_rectangles",
			Description: "Detect rectangular shapes from edge contours. Useful for finding boxes in diagrams and screenshots.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold_low": map[string]interface{}{
						"type":        "number",
						"description": "Low hysteresis threshold (default 50)",
						"default":     50,
					},
					"threshold_high": map[string]interface{}{
						"type":        "number",
						"description": "High hysteresis threshold (default 100)",
						"default":     100,
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum bounding-box area in pixels to consider (default 100)",
						"default":     100,
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "How close to rectangular a contour must be (0-1, default 0.7)",
						"default":     0.7,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_detect_lines",
			Description: "Detect straight line segments with a Hough transform over the edge map. Useful for finding connections between elements.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold_low": map[string]interface{}{
						"type":        "number",
						"description": "Low hysteresis threshold (default 50)",
						"default":     50,
					},
					"threshold_high": map[string]interface{}{
						"type":        "number",
						"description": "High hysteresis threshold (default 100)",
						"default":     100,
					},
					"min_length": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum line length in pixels (default 20)",
						"default":     20,
					},
				},
				"required": []string{"path"},
			},
		},

		// Analysis Helpers
		{
			Name:        "image_grid_overlay",
			Description: "Return a version of the image with a coordinate grid overlay for precise positioning reference.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between grid lines (default 50)",
						"default":     50,
					},
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to label grid intersections with coordinates",
						"default":     false,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as #RRGGBB hex (default #ff0000)",
						"default":     "#ff0000",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_probe_pixel",
			Description: "Report what the edge pipeline sees at one pixel: raw and blurred intensity, Sobel gradients, magnitude, and direction bucket. Useful for choosing hysteresis thresholds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
