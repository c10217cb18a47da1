package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// ClickInElementTool clicks at a fractional position inside a marked element.
type ClickInElementTool struct {
	manager *browser.Manager
}

// NewClickInElementTool creates a new in-element click tool.
func NewClickInElementTool(manager *browser.Manager) *ClickInElementTool {
	return &ClickInElementTool{manager: manager}
}

// Name returns the tool name.
func (t *ClickInElementTool) Name() string {
	return "browser_click_in_element"
}

// Description returns the tool description.
func (t *ClickInElementTool) Description() string {
	return "Click at a fractional position inside a marked element's bounding box, " +
		"for hitting a specific spot in a canvas, map or slider. (0.5, 0.5) is the center."
}

// Schema returns the tool's JSON schema.
func (t *ClickInElementTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"element_id": map[string]interface{}{
				"type":        "integer",
				"description": "Numeric ID of the element, from its mark tag",
			},
			"x": map[string]interface{}{
				"type":        "number",
				"description": "Horizontal fraction of the element's box, 0 to 1 (default 0.5)",
			},
			"y": map[string]interface{}{
				"type":        "number",
				"description": "Vertical fraction of the element's box, 0 to 1 (default 0.5)",
			},
		},
		[]string{"element_id"},
	)
}

// Execute clicks inside the element.
func (t *ClickInElementTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName   xml.Name `xml:"arguments"`
		ElementID *int     `xml:"element_id"`
		X         *float64 `xml:"x"`
		Y         *float64 `xml:"y"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.ElementID == nil {
		return nil, fmt.Errorf("element_id is required")
	}

	fx, fy := 0.5, 0.5
	if input.X != nil {
		fx = *input.X
	}
	if input.Y != nil {
		fy = *input.Y
	}

	result, err := t.manager.ClickInElement(ctx, userID, *input.ElementID, fx, fy)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
