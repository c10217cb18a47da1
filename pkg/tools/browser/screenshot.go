package browser

import (
	"context"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// ScreenshotTool re-marks the current page and captures it.
type ScreenshotTool struct {
	manager *browser.Manager
}

// NewScreenshotTool creates a new screenshot tool.
func NewScreenshotTool(manager *browser.Manager) *ScreenshotTool {
	return &ScreenshotTool{manager: manager}
}

// Name returns the tool name.
func (t *ScreenshotTool) Name() string {
	return "browser_screenshot"
}

// Description returns the tool description.
func (t *ScreenshotTool) Description() string {
	return "Take a fresh screenshot of the current page with interactive elements " +
		"re-marked. Use after the page changed on its own, or when element marks " +
		"look stale."
}

// Schema returns the tool's JSON schema.
func (t *ScreenshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute takes the screenshot.
func (t *ScreenshotTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	result, err := t.manager.Screenshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
