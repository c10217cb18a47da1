package browser

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// GetElementTool fetches descriptive attributes of a marked element.
type GetElementTool struct {
	manager *browser.Manager
}

// NewGetElementTool creates a new element info tool.
func NewGetElementTool(manager *browser.Manager) *GetElementTool {
	return &GetElementTool{manager: manager}
}

// Name returns the tool name.
func (t *GetElementTool) Name() string {
	return "browser_get_element"
}

// Description returns the tool description.
func (t *GetElementTool) Description() string {
	return "Get the tag, text and key attributes of an element by its numbered mark, " +
		"without taking a screenshot."
}

// Schema returns the tool's JSON schema.
func (t *GetElementTool) Schema() map[string]interface{} {
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

// Execute fetches the element info.
func (t *GetElementTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
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

	info, err := t.manager.GetElement(ctx, userID, *input.ElementID)
	if err != nil {
		return nil, err
	}
	return tools.TextResult(formatElementInfo(*input.ElementID, info)), nil
}

func formatElementInfo(id int, info *browser.ElementInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Element %d: <%s>", id, info.TagName)

	write := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "\n- %s: %s", label, value)
		}
	}
	write("text", info.Text)
	write("href", info.Href)
	write("src", info.Src)
	write("alt", info.Alt)
	write("title", info.Title)
	write("placeholder", info.Placeholder)
	write("value", info.Value)
	write("type", info.Type)

	return b.String()
}
