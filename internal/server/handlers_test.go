package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ironsheep/edge-detect-mcp/internal/imaging"
)

// createTestImageFile writes a uniform test image and returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeTestImage(t, img)
}

// createStepImageFile writes an image that is black left of split and white
// from split onward. The step produces a strong vertical edge ridge.
func createStepImageFile(t *testing.T, width, height, split int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= split {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	return writeTestImage(t, img)
}

func writeTestImage(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	paramsJSON, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	return s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	resp := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath})

	if resp == nil {
		t.Fatal("handleToolsCall returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if _, ok := result["content"]; !ok {
		t.Error("Result should contain 'content' key")
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New(zerolog.Nop())

	resp := callTool(t, s, "image_load", map[string]interface{}{
		"path": "/nonexistent/image.png",
	})

	if resp.Error == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New(zerolog.Nop())

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(zerolog.Nop())

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`invalid json`),
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil {
		t.Fatal("Expected error for invalid JSON params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestHandleToolsCall_EdgeDetect(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createStepImageFile(t, 100, 100, 50)

	resp := callTool(t, s, "image_edge_detect", map[string]interface{}{
		"path":           imgPath,
		"threshold_low":  200,
		"threshold_high": 400,
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_GridOverlay(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{200, 200, 200, 255})

	resp := callTool(t, s, "image_grid_overlay", map[string]interface{}{
		"path":    imgPath,
		"spacing": 25,
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_CropQuadrant(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{255, 0, 0, 255})

	regions := []string{"top-left", "top-right", "bottom-left", "bottom-right",
		"top-half", "bottom-half", "left-half", "right-half", "center"}

	for _, region := range regions {
		t.Run(region, func(t *testing.T) {
			resp := callTool(t, s, "image_crop_quadrant", map[string]interface{}{
				"path":   imgPath,
				"region": region,
			})

			if resp.Error != nil {
				t.Fatalf("Unexpected error for region %s: %v", region, resp.Error)
			}
		})
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createStepImageFile(t, 100, 100, 50)

	// Test each tool to ensure executeTool correctly dispatches
	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"image_load", map[string]interface{}{"path": imgPath}},
		{"image_dimensions", map[string]interface{}{"path": imgPath}},
		{"image_crop", map[string]interface{}{"path": imgPath, "x1": 0, "y1": 0, "x2": 50, "y2": 50}},
		{"image_crop_quadrant", map[string]interface{}{"path": imgPath, "region": "center"}},
		{"image_blur", map[string]interface{}{"path": imgPath}},
		{"image_gradient_magnitude", map[string]interface{}{"path": imgPath}},
		{"image_gradient_orientation", map[string]interface{}{"path": imgPath}},
		{"image_edge_detect", map[string]interface{}{"path": imgPath}},
		{"image_edge_pixels", map[string]interface{}{"path": imgPath}},
		{"image_edge_overlay", map[string]interface{}{"path": imgPath}},
		{"image_threshold", map[string]interface{}{"path": imgPath, "level": 128}},
		{"image_threshold_otsu", map[string]interface{}{"path": imgPath}},
		{"image_threshold_adaptive", map[string]interface{}{"path": imgPath}},
		{"image_histogram", map[string]interface{}{"path": imgPath}},
		{"image_equalize", map[string]interface{}{"path": imgPath}},
		{"image_match_histogram", map[string]interface{}{"path": imgPath, "reference_path": imgPath}},
		{"image_detect_rectangles", map[string]interface{}{"path": imgPath}},
		{"image_detect_lines", map[string]interface{}{"path": imgPath}},
		{"image_grid_overlay", map[string]interface{}{"path": imgPath}},
		{"image_probe_pixel", map[string]interface{}{"path": imgPath, "x": 50, "y": 50}},
	}

	if len(toolTests) != len(GetToolDefinitions()) {
		t.Fatalf("dispatch table covers %d tools, definitions list %d", len(toolTests), len(GetToolDefinitions()))
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New(zerolog.Nop())

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New(zerolog.Nop())

	_, err := s.executeTool("image_load", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}

func TestExecuteTool_EdgeDetect_UniformImage(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 80, 60, color.RGBA{128, 128, 128, 255})

	result, err := s.executeTool("image_edge_detect", mustArgs(t, map[string]interface{}{"path": imgPath}))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}

	res, ok := result.(*edgeDetectResult)
	if !ok {
		t.Fatalf("result type: got %T, want *edgeDetectResult", result)
	}
	if res.EdgeCount != 0 {
		t.Errorf("EdgeCount: got %d, want 0 for uniform image", res.EdgeCount)
	}
	if res.Width != 80 || res.Height != 60 {
		t.Errorf("dimensions: got %dx%d, want 80x60", res.Width, res.Height)
	}
	if res.MimeType != "image/png" {
		t.Errorf("MimeType: got %s", res.MimeType)
	}
}

func TestExecuteTool_EdgeDetect_StepImage(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createStepImageFile(t, 100, 100, 50)

	result, err := s.executeTool("image_edge_detect", mustArgs(t, map[string]interface{}{
		"path":           imgPath,
		"threshold_low":  200,
		"threshold_high": 400,
	}))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}

	res := result.(*edgeDetectResult)
	if res.EdgeCount == 0 {
		t.Error("EdgeCount: got 0, want edge pixels along the step")
	}
}

func TestExecuteTool_EdgePixels_Limit(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createStepImageFile(t, 100, 100, 50)

	result, err := s.executeTool("image_edge_pixels", mustArgs(t, map[string]interface{}{
		"path":  imgPath,
		"limit": 5,
	}))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}

	res, ok := result.(*edgePixelsResult)
	if !ok {
		t.Fatalf("result type: got %T, want *edgePixelsResult", result)
	}
	if len(res.Points) != 5 {
		t.Errorf("Points: got %d, want 5", len(res.Points))
	}
	if !res.Truncated {
		t.Error("Truncated: got false, want true")
	}
	if res.Total <= 5 {
		t.Errorf("Total: got %d, want more than the limit", res.Total)
	}
}

func TestExecuteTool_EdgePixels_All(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createStepImageFile(t, 100, 100, 50)

	result, err := s.executeTool("image_edge_pixels", mustArgs(t, map[string]interface{}{"path": imgPath}))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}

	res := result.(*edgePixelsResult)
	if res.Truncated {
		t.Error("Truncated: got true, want false without a limit")
	}
	if res.Total != len(res.Points) {
		t.Errorf("Total %d does not match %d returned points", res.Total, len(res.Points))
	}
	if res.Total == 0 {
		t.Error("Total: got 0, want edge pixels along the step")
	}
}

func TestExecuteTool_EdgePixels_NegativeLimit(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createStepImageFile(t, 50, 50, 25)

	_, err := s.executeTool("image_edge_pixels", mustArgs(t, map[string]interface{}{
		"path":  imgPath,
		"limit": -1,
	}))
	if err == nil {
		t.Error("Expected error for negative limit")
	}
}

func TestExecuteTool_InvalidThresholds(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	tests := []struct {
		name string
		tool string
		args map[string]interface{}
	}{
		{"edge_detect high below low", "image_edge_detect", map[string]interface{}{
			"path": imgPath, "threshold_low": 300, "threshold_high": 100,
		}},
		{"edge_detect negative low", "image_edge_detect", map[string]interface{}{
			"path": imgPath, "threshold_low": -5, "threshold_high": 100,
		}},
		{"edge_pixels high below low", "image_edge_pixels", map[string]interface{}{
			"path": imgPath, "threshold_low": 300, "threshold_high": 100,
		}},
		{"edge_overlay negative low", "image_edge_overlay", map[string]interface{}{
			"path": imgPath, "threshold_low": -1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.executeTool(tt.tool, mustArgs(t, tt.args)); err == nil {
				t.Error("Expected threshold validation error")
			}
		})
	}
}

func TestExecuteTool_Blur_NegativeSigma(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	_, err := s.executeTool("image_blur", mustArgs(t, map[string]interface{}{
		"path":  imgPath,
		"sigma": -2.0,
	}))
	if err == nil {
		t.Error("Expected error for negative sigma")
	}
}

func TestExecuteTool_Threshold_MissingLevel(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	_, err := s.executeTool("image_threshold", mustArgs(t, map[string]interface{}{"path": imgPath}))
	if err == nil {
		t.Fatal("Expected error for missing level")
	}
	if !strings.Contains(err.Error(), "level") {
		t.Errorf("error should mention level, got: %v", err)
	}
}

func TestExecuteTool_Threshold_LevelOutOfRange(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	for _, level := range []int{-1, 256, 1000} {
		if _, err := s.executeTool("image_threshold", mustArgs(t, map[string]interface{}{
			"path":  imgPath,
			"level": level,
		})); err == nil {
			t.Errorf("Expected error for level %d", level)
		}
	}
}

func TestExecuteTool_Threshold_LevelZero(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	// Zero is a valid level, not a missing argument.
	result, err := s.executeTool("image_threshold", mustArgs(t, map[string]interface{}{
		"path":  imgPath,
		"level": 0,
	}))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}
	if _, ok := result.(*imaging.ImageResult); !ok {
		t.Errorf("result type: got %T, want *imaging.ImageResult", result)
	}
}

func TestExecuteTool_ThresholdOtsu(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createStepImageFile(t, 60, 60, 30)

	result, err := s.executeTool("image_threshold_otsu", mustArgs(t, map[string]interface{}{"path": imgPath}))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}

	res, ok := result.(*otsuResult)
	if !ok {
		t.Fatalf("result type: got %T, want *otsuResult", result)
	}
	if res.Level < 0 || res.Level > 255 {
		t.Errorf("Level out of range: %d", res.Level)
	}
	if res.Width != 60 || res.Height != 60 {
		t.Errorf("dimensions: got %dx%d, want 60x60", res.Width, res.Height)
	}
}

func TestExecuteTool_AdaptiveThreshold_BadRadius(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	_, err := s.executeTool("image_threshold_adaptive", mustArgs(t, map[string]interface{}{
		"path":         imgPath,
		"block_radius": -3,
	}))
	if err == nil {
		t.Error("Expected error for negative block_radius")
	}
}

func TestExecuteTool_Histogram_UniformImage(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 40, color.RGBA{128, 128, 128, 255})

	result, err := s.executeTool("image_histogram", mustArgs(t, map[string]interface{}{"path": imgPath}))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}

	res, ok := result.(*imaging.HistogramResult)
	if !ok {
		t.Fatalf("result type: got %T, want *imaging.HistogramResult", result)
	}
	if res.Bins[128] != 50*40 {
		t.Errorf("Bins[128]: got %d, want %d", res.Bins[128], 50*40)
	}
	if res.Stats.Min != 128 || res.Stats.Max != 128 {
		t.Errorf("Min/Max: got %d/%d, want 128/128", res.Stats.Min, res.Stats.Max)
	}
	if res.Stats.Mean != 128 {
		t.Errorf("Mean: got %v, want 128", res.Stats.Mean)
	}
	if res.Stats.StdDev != 0 {
		t.Errorf("StdDev: got %v, want 0", res.Stats.StdDev)
	}
}

func TestExecuteTool_ProbePixel_UniformImage(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	result, err := s.executeTool("image_probe_pixel", mustArgs(t, map[string]interface{}{
		"path": imgPath,
		"x":    25,
		"y":    25,
	}))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}

	probe, ok := result.(*imaging.PixelProbe)
	if !ok {
		t.Fatalf("result type: got %T, want *imaging.PixelProbe", result)
	}
	if probe.Intensity != 128 {
		t.Errorf("Intensity: got %d, want 128", probe.Intensity)
	}
	if probe.Blurred != 128 {
		t.Errorf("Blurred: got %d, want 128", probe.Blurred)
	}
	if probe.GX != 0 || probe.GY != 0 {
		t.Errorf("gradients: got gx=%d gy=%d, want 0/0", probe.GX, probe.GY)
	}
	if probe.Magnitude != 0 {
		t.Errorf("Magnitude: got %v, want 0", probe.Magnitude)
	}
}

func TestExecuteTool_ProbePixel_OutOfBounds(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	_, err := s.executeTool("image_probe_pixel", mustArgs(t, map[string]interface{}{
		"path": imgPath,
		"x":    200,
		"y":    25,
	}))
	if err == nil {
		t.Error("Expected error for out-of-bounds probe")
	}
}

func TestExecuteTool_MatchHistogram_MissingReference(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 50, 50, color.RGBA{128, 128, 128, 255})

	_, err := s.executeTool("image_match_histogram", mustArgs(t, map[string]interface{}{"path": imgPath}))
	if err == nil {
		t.Fatal("Expected error for missing reference_path")
	}
	if !strings.Contains(err.Error(), "reference_path") {
		t.Errorf("error should mention reference_path, got: %v", err)
	}
}

func TestExecuteTool_DetectRectangles_UniformImage(t *testing.T) {
	s := New(zerolog.Nop())
	imgPath := createTestImageFile(t, 80, 80, color.RGBA{200, 200, 200, 255})

	result, err := s.executeTool("image_detect_rectangles", mustArgs(t, map[string]interface{}{"path": imgPath}))
	if err != nil {
		t.Fatalf("executeTool failed: %v", err)
	}
	// No edges, no rectangles; the result must still be well-formed.
	if result == nil {
		t.Error("result should not be nil")
	}
}

func mustArgs(t *testing.T, args map[string]interface{}) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}
	return data
}
