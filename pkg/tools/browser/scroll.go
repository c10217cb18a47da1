package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// ScrollTool scrolls the page.
type ScrollTool struct {
	manager *browser.Manager
}

// NewScrollTool creates a new scroll tool.
func NewScrollTool(manager *browser.Manager) *ScrollTool {
	return &ScrollTool{manager: manager}
}

// Name returns the tool name.
func (t *ScrollTool) Name() string {
	return "browser_scroll"
}

// Description returns the tool description.
func (t *ScrollTool) Description() string {
	return "Scroll the page one viewport up or down, or jump to the top or bottom. " +
		"Returns a new marked screenshot."
}

// Schema returns the tool's JSON schema.
func (t *ScrollTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"direction": map[string]interface{}{
				"type":        "string",
				"description": "Scroll direction: 'up', 'down', 'top' or 'bottom'",
			},
		},
		[]string{"direction"},
	)
}

// Execute scrolls the page.
func (t *ScrollTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName   xml.Name `xml:"arguments"`
		Direction string   `xml:"direction"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Direction == "" {
		return nil, fmt.Errorf("direction is required")
	}

	result, err := t.manager.Scroll(ctx, userID, input.Direction)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
