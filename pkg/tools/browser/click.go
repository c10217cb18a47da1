package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// ClickTool clicks a marked element by its numeric ID.
type ClickTool struct {
	manager *browser.Manager
}

// NewClickTool creates a new click tool.
func NewClickTool(manager *browser.Manager) *ClickTool {
	return &ClickTool{manager: manager}
}

// Name returns the tool name.
func (t *ClickTool) Name() string {
	return "browser_click"
}

// Description returns the tool description.
func (t *ClickTool) Description() string {
	return "Click an element by the numbered mark shown in the last screenshot. " +
		"Returns a new marked screenshot of the resulting page."
}

// Schema returns the tool's JSON schema.
func (t *ClickTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"element_id": map[string]interface{}{
				"type":        "integer",
				"description": "Numeric ID of the element to click, from its mark tag",
			},
		},
		[]string{"element_id"},
	)
}

// Execute clicks the element.
func (t *ClickTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName   xml.Name `xml:"arguments"`
		ElementID *int     `xml:"element_id"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.ElementID == nil {
		return nil, fmt.Errorf("element_id is required")
	}

	result, err := t.manager.ClickElement(ctx, userID, *input.ElementID)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
