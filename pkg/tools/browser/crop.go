package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// CropTool captures a viewport region, optionally zoomed.
type CropTool struct {
	manager *browser.Manager
}

// NewCropTool creates a new crop tool.
func NewCropTool(manager *browser.Manager) *CropTool {
	return &CropTool{manager: manager}
}

// Name returns the tool name.
func (t *CropTool) Name() string {
	return "browser_crop"
}

// Description returns the tool description.
func (t *CropTool) Description() string {
	return "Capture a rectangular region of the viewport in CSS pixels, optionally " +
		"upscaled by an integer zoom factor for reading small text. The region is " +
		"clamped to the viewport."
}

// Schema returns the tool's JSON schema.
func (t *CropTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"x": map[string]interface{}{
				"type":        "number",
				"description": "Left edge of the region in CSS pixels",
			},
			"y": map[string]interface{}{
				"type":        "number",
				"description": "Top edge of the region in CSS pixels",
			},
			"width": map[string]interface{}{
				"type":        "number",
				"description": "Region width in CSS pixels",
			},
			"height": map[string]interface{}{
				"type":        "number",
				"description": "Region height in CSS pixels",
			},
			"zoom": map[string]interface{}{
				"type":        "integer",
				"description": "Upscale factor, 1 to 4 (default 1)",
			},
		},
		[]string{"x", "y", "width", "height"},
	)
}

// Execute captures the region.
func (t *CropTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		X       *float64 `xml:"x"`
		Y       *float64 `xml:"y"`
		Width   *float64 `xml:"width"`
		Height  *float64 `xml:"height"`
		Zoom    *int     `xml:"zoom"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.X == nil || input.Y == nil || input.Width == nil || input.Height == nil {
		return nil, fmt.Errorf("x, y, width and height are required")
	}

	zoom := 1
	if input.Zoom != nil {
		zoom = *input.Zoom
	}

	result, err := t.manager.Crop(ctx, userID, *input.X, *input.Y, *input.Width, *input.Height, zoom)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
