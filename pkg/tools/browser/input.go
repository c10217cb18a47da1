package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/tools"
)

// InputTool writes text into a marked element, or sends keystrokes to the
// focused element when no element is given.
type InputTool struct {
	manager *browser.Manager
}

// NewInputTool creates a new input tool.
func NewInputTool(manager *browser.Manager) *InputTool {
	return &InputTool{manager: manager}
}

// Name returns the tool name.
func (t *InputTool) Name() string {
	return "browser_input"
}

// Description returns the tool description.
func (t *InputTool) Description() string {
	return "Enter text into an element by its numbered mark. Existing content is " +
		"replaced. Omit element_id to type into whatever currently holds focus."
}

// Schema returns the tool's JSON schema.
func (t *InputTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"element_id": map[string]interface{}{
				"type":        "integer",
				"description": "Numeric ID of the target element, from its mark tag",
			},
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to enter",
			},
		},
		[]string{"text"},
	)
}

// Execute enters the text.
func (t *InputTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName   xml.Name `xml:"arguments"`
		ElementID *int     `xml:"element_id"`
		Text      *string  `xml:"text"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Text == nil {
		return nil, fmt.Errorf("text is required")
	}

	var result *browser.Result
	var err error
	if input.ElementID != nil {
		result, err = t.manager.InputText(ctx, userID, *input.ElementID, *input.Text)
	} else {
		result, err = t.manager.TypeText(ctx, userID, *input.Text)
	}
	if err != nil {
		return nil, err
	}
	return &tools.Result{Text: result.Status, Image: result.Image}, nil
}
