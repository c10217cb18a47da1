package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// ViewElementTool captures a single marked element without overlay tags.
type ViewElementTool struct {
	manager *browser.Manager
}

// NewViewElementTool creates a new element screenshot tool.
func NewViewElementTool(manager *browser.Manager) *ViewElementTool {
	return &ViewElementTool{manager: manager}
}

// Name returns the tool name.
func (t *ViewElementTool) Name() string {
	return "browser_view_element"
}

// Description returns the tool description.
func (t *ViewElementTool) Description() string {
	return "Capture a screenshot of just one element by its numbered mark, with the " +
		"overlay tags hidden. Useful for reading images, charts or small widgets."
}

// Schema returns the tool's JSON schema.
func (t *ViewElementTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"element_id": map[string]interface{}{
				"type":        "integer",
				"description": "Numeric ID of the element, from its mark tag",
			},
		},
		[]string{"element_id"},
	)
}

// Execute captures the element.
func (t *ViewElementTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
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

	result, err := t.manager.ScreenshotElement(ctx, userID, *input.ElementID)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
