// Package tools defines the capability surface exposed to agents: the tool
// interface, the XML argument format, and the call parser.
package tools

import (
	"context"
	"encoding/xml"
)

// Result is a tool's output. Tools that drive the browser usually return
// both a status text and a screenshot.
type Result struct {
	// Text is the human-readable outcome, always present.
	Text string

	// Image is an optional PNG capture accompanying the text.
	Image []byte
}

// TextResult wraps a plain string outcome.
func TextResult(text string) *Result {
	return &Result{Text: text}
}

// Tool is one capability an agent can invoke. Calls arrive as XML-formatted
// argument blocks produced by the model.
//
// Example call format:
//
//	<tool>
//	<tool_name>browser_click</tool_name>
//	<arguments>
//	  <element_id>12</element_id>
//	</arguments>
//	</tool>
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns what this tool does, written for the model.
	Description() string

	// Schema returns the JSON schema of the tool's arguments.
	Schema() map[string]interface{}

	// Execute runs the tool for the given user. Arguments arrive as the
	// raw <arguments> XML block.
	Execute(ctx context.Context, userID string, argumentsXML []byte) (*Result, error)
}

// ToolCall is a parsed tool invocation from a model response.
type ToolCall struct {
	XMLName   xml.Name       `xml:"tool"`
	ToolName  string         `xml:"tool_name"`
	Arguments ArgumentsBlock `xml:"arguments"`
}

// ArgumentsBlock holds the raw XML of the arguments element.
type ArgumentsBlock struct {
	InnerXML []byte `xml:",innerxml"`
}

// GetArgumentsXML returns the arguments wrapped in <arguments> tags for
// unmarshaling into a tool's parameter struct.
func (tc *ToolCall) GetArgumentsXML() []byte {
	const prefix = "<arguments>"
	const suffix = "</arguments>"

	result := make([]byte, 0, len(prefix)+len(tc.Arguments.InnerXML)+len(suffix))
	result = append(result, []byte(prefix)...)
	result = append(result, tc.Arguments.InnerXML...)
	result = append(result, []byte(suffix)...)
	return result
}

// BaseToolSchema creates the common JSON schema structure for a tool with
// the given properties and required fields.
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
