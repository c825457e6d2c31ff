package server

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/ironsheep/edge-detect-mcp/internal/contrast"
	"github.com/ironsheep/edge-detect-mcp/internal/detection"
	"github.com/ironsheep/edge-detect-mcp/internal/edge"
	"github.com/ironsheep/edge-detect-mcp/internal/filter"
	"github.com/ironsheep/edge-detect-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_edge_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Handlers validate arguments before touching the pipeline, so a panic below
// is a bug in a handler; it surfaces as -32603 instead of killing the loop.
func (s *Server) handleToolsCall(req *MCPRequest) (resp *MCPResponse) {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("tool", params.Name).Interface("panic", r).Msg("tool panicked")
			resp = s.errorResponse(req.ID, -32603, "Internal error", fmt.Sprint(r))
		}
	}()

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Error().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.Info().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool call")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate pipeline function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_quadrant":
		return s.handleImageCropQuadrant(args)

	// Pipeline Stages
	case "image_blur":
		return s.handleImageBlur(args)
	case "image_gradient_magnitude":
		return s.handleImageGradientMagnitude(args)
	case "image_gradient_orientation":
		return s.handleImageGradientOrientation(args)

	// Edge Detection
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)
	case "image_edge_pixels":
		return s.handleImageEdgePixels(args)
	case "image_edge_overlay":
		return s.handleImageEdgeOverlay(args)

	// Thresholding
	case "image_threshold":
		return s.handleImageThreshold(args)
	case "image_threshold_otsu":
		return s.handleImageThresholdOtsu(args)
	case "image_threshold_adaptive":
		return s.handleImageThresholdAdaptive(args)

	// Histogram Operations
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_equalize":
		return s.handleImageEqualize(args)
	case "image_match_histogram":
		return s.handleImageMatchHistogram(args)

	// Shape Detection
	case "image_detect_rectangles":
		return s.handleImageDetectRectangles(args)
	case "image_detect_lines":
		return s.handleImageDetectLines(args)

	// Analysis Helpers
	case "image_grid_overlay":
		return s.handleImageGridOverlay(args)
	case "image_probe_pixel":
		return s.handleImageProbePixel(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// validateThresholds rephrases the pipeline's threshold precondition as a
// wire error, so invalid client input never reaches the panicking path.
func validateThresholds(low, high float64) error {
	if math.IsNaN(low) || math.IsNaN(high) || low < 0 || high < low {
		return fmt.Errorf("invalid thresholds: need 0 <= threshold_low <= threshold_high, got low=%v high=%v", low, high)
	}
	return nil
}

// countEdges reports how many pixels in a binary edge map are set.
func countEdges(edges *image.Gray) int {
	n := 0
	for _, p := range edges.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type imageCropQuadrantArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a imageCropQuadrantArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CropQuadrant(img, a.Region, a.Scale)
}

// === Pipeline Stage Handlers ===

type imageBlurArgs struct {
	Path  string  `json:"path"`
	Sigma float64 `json:"sigma"`
}

func (s *Server) handleImageBlur(args json.RawMessage) (interface{}, error) {
	var a imageBlurArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Sigma == 0 {
		a.Sigma = edge.BlurSigma
	}
	if a.Sigma < 0 || math.IsNaN(a.Sigma) {
		return nil, fmt.Errorf("sigma must be positive, got %v", a.Sigma)
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeImage(filter.Gaussian(gray, a.Sigma))
}

// magnitudeResult pairs the rendered magnitude map with the peak value its
// normalization divided by, so pixel brightness can be mapped back to raw
// gradient magnitudes.
type magnitudeResult struct {
	imaging.ImageResult

	MaxMagnitude float64 `json:"max_magnitude"`
}

func (s *Server) handleImageGradientMagnitude(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}

	blurred := filter.Gaussian(gray, edge.BlurSigma)
	gx := filter.SobelHorizontal(blurred)
	gy := filter.SobelVertical(blurred)
	rendered, maxMag := imaging.RenderMagnitude(edge.GradientMagnitude(gx, gy))

	result, err := imaging.EncodeImage(rendered)
	if err != nil {
		return nil, err
	}
	return &magnitudeResult{ImageResult: *result, MaxMagnitude: float64(maxMag)}, nil
}

type imageOrientationArgs struct {
	Path         string  `json:"path"`
	MinMagnitude float64 `json:"min_magnitude"`
}

// orientationResult carries the hue-coded direction map plus the legend
// mapping each direction bucket to its hex color.
type orientationResult struct {
	imaging.ImageResult

	MinMagnitude float64           `json:"min_magnitude"`
	Legend       map[string]string `json:"legend"`
}

func (s *Server) handleImageGradientOrientation(args json.RawMessage) (interface{}, error) {
	var a imageOrientationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinMagnitude == 0 {
		a.MinMagnitude = 50
	}
	if a.MinMagnitude < 0 || math.IsNaN(a.MinMagnitude) {
		return nil, fmt.Errorf("min_magnitude must be non-negative, got %v", a.MinMagnitude)
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}

	blurred := filter.Gaussian(gray, edge.BlurSigma)
	gx := filter.SobelHorizontal(blurred)
	gy := filter.SobelVertical(blurred)
	thinned := edge.SuppressNonMaxima(edge.GradientMagnitude(gx, gy), gx, gy)
	rendered := imaging.RenderOrientation(gx, gy, thinned, float32(a.MinMagnitude))

	result, err := imaging.EncodeImage(rendered)
	if err != nil {
		return nil, err
	}
	return &orientationResult{
		ImageResult:  *result,
		MinMagnitude: a.MinMagnitude,
		Legend:       imaging.OrientationLegend(),
	}, nil
}

// === Edge Detection Handlers ===

type imageEdgeDetectArgs struct {
	Path          string  `json:"path"`
	ThresholdLow  float64 `json:"threshold_low"`
	ThresholdHigh float64 `json:"threshold_high"`
}

// edgeDetectResult pairs the binary edge map with the number of edge pixels,
// a quick signal for whether the thresholds are in a useful range.
type edgeDetectResult struct {
	imaging.ImageResult

	EdgeCount int `json:"edge_count"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = 50
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = 100
	}
	if err := validateThresholds(a.ThresholdLow, a.ThresholdHigh); err != nil {
		return nil, err
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}

	edges := edge.Canny(gray, float32(a.ThresholdLow), float32(a.ThresholdHigh))
	result, err := imaging.EncodeImage(edges)
	if err != nil {
		return nil, err
	}
	return &edgeDetectResult{ImageResult: *result, EdgeCount: countEdges(edges)}, nil
}

type imageEdgePixelsArgs struct {
	Path          string  `json:"path"`
	ThresholdLow  float64 `json:"threshold_low"`
	ThresholdHigh float64 `json:"threshold_high"`
	Limit         int     `json:"limit"`
}

type pixelCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// edgePixelsResult lists edge pixels in detector traversal order. Total
// always counts the full edge set, even when Points was cut off at the
// requested limit.
type edgePixelsResult struct {
	Points    []pixelCoord `json:"points"`
	Total     int          `json:"total"`
	Truncated bool         `json:"truncated"`
}

func (s *Server) handleImageEdgePixels(args json.RawMessage) (interface{}, error) {
	var a imageEdgePixelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = 50
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = 100
	}
	if err := validateThresholds(a.ThresholdLow, a.ThresholdHigh); err != nil {
		return nil, err
	}
	if a.Limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative, got %d", a.Limit)
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}

	it := edge.CannyPixels(gray, float32(a.ThresholdLow), float32(a.ThresholdHigh))
	result := &edgePixelsResult{Points: []pixelCoord{}}
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		result.Total++
		if a.Limit > 0 && len(result.Points) >= a.Limit {
			// Keep draining so Total reports the full edge count.
			result.Truncated = true
			continue
		}
		result.Points = append(result.Points, pixelCoord{X: p.X, Y: p.Y})
	}
	return result, nil
}

type imageEdgeOverlayArgs struct {
	Path          string  `json:"path"`
	ThresholdLow  float64 `json:"threshold_low"`
	ThresholdHigh float64 `json:"threshold_high"`
	Color         string  `json:"color"`
	Thickness     int     `json:"thickness"`
}

func (s *Server) handleImageEdgeOverlay(args json.RawMessage) (interface{}, error) {
	var a imageEdgeOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = 50
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = 100
	}
	if a.Color == "" {
		a.Color = "#ff0000"
	}
	if a.Thickness == 0 {
		a.Thickness = 1
	}
	if err := validateThresholds(a.ThresholdLow, a.ThresholdHigh); err != nil {
		return nil, err
	}
	if a.Thickness < 1 {
		return nil, fmt.Errorf("thickness must be at least 1, got %d", a.Thickness)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	edges := edge.Canny(imaging.ToGray(img), float32(a.ThresholdLow), float32(a.ThresholdHigh))
	overlay, err := imaging.EdgeOverlay(img, edges, a.Color, a.Thickness)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeImage(overlay)
}

// === Thresholding Handlers ===

type imageThresholdArgs struct {
	Path string `json:"path"`
	// Pointer so a supplied level of 0 is distinguishable from a missing one.
	Level *int `json:"level"`
}

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	var a imageThresholdArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Level == nil {
		return nil, fmt.Errorf("level is required")
	}
	if *a.Level < 0 || *a.Level > 255 {
		return nil, fmt.Errorf("level must be in 0-255, got %d", *a.Level)
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeImage(contrast.Threshold(gray, uint8(*a.Level)))
}

// otsuResult pairs the thresholded image with the level Otsu's method chose.
type otsuResult struct {
	imaging.ImageResult

	Level int `json:"otsu_level"`
}

func (s *Server) handleImageThresholdOtsu(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}

	level := contrast.OtsuLevel(gray)
	result, err := imaging.EncodeImage(contrast.Threshold(gray, level))
	if err != nil {
		return nil, err
	}
	return &otsuResult{ImageResult: *result, Level: int(level)}, nil
}

type imageThresholdAdaptiveArgs struct {
	Path        string `json:"path"`
	BlockRadius int    `json:"block_radius"`
}

func (s *Server) handleImageThresholdAdaptive(args json.RawMessage) (interface{}, error) {
	var a imageThresholdAdaptiveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.BlockRadius == 0 {
		a.BlockRadius = 16
	}
	if a.BlockRadius < 1 {
		return nil, fmt.Errorf("block_radius must be positive, got %d", a.BlockRadius)
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeImage(contrast.AdaptiveThreshold(gray, a.BlockRadius))
}

// === Histogram Operation Handlers ===

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ComputeHistogram(gray), nil
}

func (s *Server) handleImageEqualize(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeImage(contrast.EqualizeHistogram(gray))
}

type imageMatchHistogramArgs struct {
	Path          string `json:"path"`
	ReferencePath string `json:"reference_path"`
}

func (s *Server) handleImageMatchHistogram(args json.RawMessage) (interface{}, error) {
	var a imageMatchHistogramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ReferencePath == "" {
		return nil, fmt.Errorf("reference_path is required")
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}
	ref, err := s.cache.LoadGray(a.ReferencePath)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeImage(contrast.MatchHistogram(gray, ref))
}

// === Shape Detection Handlers ===

type imageDetectRectanglesArgs struct {
	Path          string  `json:"path"`
	ThresholdLow  float64 `json:"threshold_low"`
	ThresholdHigh float64 `json:"threshold_high"`
	MinArea       int     `json:"min_area"`
	Tolerance     float64 `json:"tolerance"`
}

func (s *Server) handleImageDetectRectangles(args json.RawMessage) (interface{}, error) {
	var a imageDetectRectanglesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = 50
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = 100
	}
	if a.MinArea == 0 {
		a.MinArea = 100
	}
	if a.Tolerance == 0 {
		a.Tolerance = 0.7
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.DetectRectangles(img, float32(a.ThresholdLow), float32(a.ThresholdHigh), a.MinArea, a.Tolerance)
}

type imageDetectLinesArgs struct {
	Path          string  `json:"path"`
	ThresholdLow  float64 `json:"threshold_low"`
	ThresholdHigh float64 `json:"threshold_high"`
	MinLength     int     `json:"min_length"`
}

func (s *Server) handleImageDetectLines(args json.RawMessage) (interface{}, error) {
	var a imageDetectLinesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = 50
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = 100
	}
	if a.MinLength == 0 {
		a.MinLength = 20
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.DetectLines(img, float32(a.ThresholdLow), float32(a.ThresholdHigh), a.MinLength)
}

// === Analysis Helper Handlers ===

type imageGridOverlayArgs struct {
	Path            string `json:"path"`
	Spacing         int    `json:"spacing"`
	ShowCoordinates bool   `json:"show_coordinates"`
	Color           string `json:"color"`
}

func (s *Server) handleImageGridOverlay(args json.RawMessage) (interface{}, error) {
	var a imageGridOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Spacing == 0 {
		a.Spacing = 50
	}
	if a.Color == "" {
		a.Color = "#ff0000"
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.GridOverlay(img, a.Spacing, a.ShowCoordinates, a.Color)
}

type imageProbePixelArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageProbePixel(args json.RawMessage) (interface{}, error) {
	var a imageProbePixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	gray, err := s.cache.LoadGray(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ProbePixel(gray, a.X, a.Y)
}
