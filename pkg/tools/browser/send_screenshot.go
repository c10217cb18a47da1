package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// Sender delivers a finished screenshot to the user, outside the agent
// conversation.
type Sender func(userID string, png []byte) error

// SendScreenshotTool stages a clean page capture for the user and delivers
// it on a confirming second call. The two-step flow stops the model from
// spamming the user with unrequested images.
type SendScreenshotTool struct {
	manager *browser.Manager
	send    Sender
}

// NewSendScreenshotTool creates a new send-screenshot tool.
func NewSendScreenshotTool(manager *browser.Manager, send Sender) *SendScreenshotTool {
	return &SendScreenshotTool{manager: manager, send: send}
}

// Name returns the tool name.
func (t *SendScreenshotTool) Name() string {
	return "browser_send_screenshot"
}

// Description returns the tool description.
func (t *SendScreenshotTool) Description() string {
	return "Send a screenshot of the current page to the user. Call once to stage " +
		"the capture, then again with confirm=true to deliver it, or cancel=true " +
		"to discard it. Set clean=false to keep the numbered overlays visible."
}

// Schema returns the tool's JSON schema.
func (t *SendScreenshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"confirm": map[string]interface{}{
				"type":        "boolean",
				"description": "Pass true to deliver the previously staged capture",
			},
			"cancel": map[string]interface{}{
				"type":        "boolean",
				"description": "Pass true to discard the previously staged capture",
			},
			"clean": map[string]interface{}{
				"type":        "boolean",
				"description": "Hide the overlay tags in the capture (default true)",
			},
		},
		nil,
	)
}

// Execute stages, delivers or discards the capture.
func (t *SendScreenshotTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Confirm bool     `xml:"confirm"`
		Cancel  bool     `xml:"cancel"`
		Clean   *bool    `xml:"clean"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	switch {
	case input.Cancel:
		if err := t.manager.CancelUserScreenshot(ctx, userID); err != nil {
			return nil, err
		}
		return tools.TextResult("staged screenshot discarded"), nil

	case input.Confirm:
		err := t.manager.ConfirmUserScreenshot(ctx, userID, func(png []byte) error {
			return t.send(userID, png)
		})
		if err != nil {
			return nil, err
		}
		return tools.TextResult("screenshot delivered to the user"), nil

	default:
		clean := true
		if input.Clean != nil {
			clean = *input.Clean
		}
		status, err := t.manager.StageUserScreenshot(ctx, userID, clean)
		if err != nil {
			return nil, err
		}
		return tools.TextResult(status), nil
	}
}
