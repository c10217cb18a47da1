package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// ClickXYTool clicks at absolute viewport coordinates.
type ClickXYTool struct {
	manager *browser.Manager
}

// NewClickXYTool creates a new absolute-coordinate click tool.
func NewClickXYTool(manager *browser.Manager) *ClickXYTool {
	return &ClickXYTool{manager: manager}
}

// Name returns the tool name.
func (t *ClickXYTool) Name() string {
	return "browser_click_xy"
}

// Description returns the tool description.
func (t *ClickXYTool) Description() string {
	return "Click at absolute viewport coordinates in CSS pixels, for targets " +
		"that carry no numbered mark. (0, 0) is the top-left corner."
}

// Schema returns the tool's JSON schema.
func (t *ClickXYTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"x": map[string]interface{}{
				"type":        "number",
				"description": "Horizontal position in CSS pixels",
			},
			"y": map[string]interface{}{
				"type":        "number",
				"description": "Vertical position in CSS pixels",
			},
		},
		[]string{"x", "y"},
	)
}

// Execute clicks at the coordinates.
func (t *ClickXYTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		X       *float64 `xml:"x"`
		Y       *float64 `xml:"y"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.X == nil || input.Y == nil {
		return nil, fmt.Errorf("x and y are required")
	}

	result, err := t.manager.ClickAt(ctx, userID, *input.X, *input.Y)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
