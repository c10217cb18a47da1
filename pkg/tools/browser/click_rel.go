package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// ClickRelTool clicks at viewport-relative coordinates.
type ClickRelTool struct {
	manager *browser.Manager
}

// NewClickRelTool creates a new relative-coordinate click tool.
func NewClickRelTool(manager *browser.Manager) *ClickRelTool {
	return &ClickRelTool{manager: manager}
}

// Name returns the tool name.
func (t *ClickRelTool) Name() string {
	return "browser_click_rel"
}

// Description returns the tool description.
func (t *ClickRelTool) Description() string {
	return "Click at viewport-relative coordinates, where (0, 0) is the top-left " +
		"and (1, 1) the bottom-right corner. Useful when the viewport size is unknown."
}

// Schema returns the tool's JSON schema.
func (t *ClickRelTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"x": map[string]interface{}{
				"type":        "number",
				"description": "Horizontal fraction of the viewport, 0 to 1",
			},
			"y": map[string]interface{}{
				"type":        "number",
				"description": "Vertical fraction of the viewport, 0 to 1",
			},
		},
		[]string{"x", "y"},
	)
}

// Execute clicks at the relative position.
func (t *ClickRelTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
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

	result, err := t.manager.ClickRelative(ctx, userID, *input.X, *input.Y)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
