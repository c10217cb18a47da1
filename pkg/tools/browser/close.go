package browser

import (
	"context"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// CloseTool releases the browser session.
type CloseTool struct {
	manager *browser.Manager
}

// NewCloseTool creates a new close tool.
func NewCloseTool(manager *browser.Manager) *CloseTool {
	return &CloseTool{manager: manager}
}

// Name returns the tool name.
func (t *CloseTool) Name() string {
	return "browser_close"
}

// Description returns the tool description.
func (t *CloseTool) Description() string {
	return "Close the browser and release the session so other users can take it. " +
		"Call when finished browsing."
}

// Schema returns the tool's JSON schema.
func (t *CloseTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute closes the session.
func (t *CloseTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	if err := t.manager.Close(ctx, userID); err != nil {
		return nil, err
	}
	return tools.TextResult("browser closed, session released"), nil
}
