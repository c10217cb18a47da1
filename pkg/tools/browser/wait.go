package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// WaitTool pauses so dynamic page content can finish loading.
type WaitTool struct {
	manager *browser.Manager
}

// NewWaitTool creates a new wait tool.
func NewWaitTool(manager *browser.Manager) *WaitTool {
	return &WaitTool{manager: manager}
}

// Name returns the tool name.
func (t *WaitTool) Name() string {
	return "browser_wait"
}

// Description returns the tool description.
func (t *WaitTool) Description() string {
	return "Wait a number of seconds so the page can load dynamic content " +
		"(AJAX, lazy images, animations), then return an updated marked " +
		"screenshot. Use 2-3 seconds for simple content, 5-10 for heavy pages."
}

// Schema returns the tool's JSON schema.
func (t *WaitTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"seconds": map[string]interface{}{
				"type":        "integer",
				"description": "Seconds to wait, clamped to 1-30",
			},
		},
		[]string{"seconds"},
	)
}

// Execute waits and returns a fresh capture.
func (t *WaitTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Seconds *int     `xml:"seconds"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Seconds == nil {
		return nil, fmt.Errorf("seconds is required")
	}

	result, err := t.manager.Wait(ctx, userID, *input.Seconds)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
