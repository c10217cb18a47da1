package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// OpenTool navigates the browser to a URL.
type OpenTool struct {
	manager *browser.Manager
}

// NewOpenTool creates a new open tool.
func NewOpenTool(manager *browser.Manager) *OpenTool {
	return &OpenTool{manager: manager}
}

// Name returns the tool name.
func (t *OpenTool) Name() string {
	return "browser_open"
}

// Description returns the tool description.
func (t *OpenTool) Description() string {
	return "Open a URL in the browser. Returns a screenshot with interactive elements " +
		"tagged by numbered marks. Bare hostnames default to https."
}

// Schema returns the tool's JSON schema.
func (t *OpenTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to open (e.g., 'https://example.com' or 'example.com')",
			},
		},
		[]string{"url"},
	)
}

// Execute navigates to the URL.
func (t *OpenTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		URL     string   `xml:"url"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.URL == "" {
		return nil, fmt.Errorf("url is required")
	}

	result, err := t.manager.Navigate(ctx, userID, input.URL)
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
