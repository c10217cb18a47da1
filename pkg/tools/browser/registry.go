package browser

import (
	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/llm"
	"github.com/entrhq/gaze/pkg/tools"
)

// ToolRegistry builds the browser tool set over one shared manager.
type ToolRegistry struct {
	manager  *browser.Manager
	provider llm.Provider
	send     Sender
	tools    []tools.Tool
}

// NewToolRegistry creates a registry. provider may be nil, which leaves out
// the analyze_page tool; send may be nil, which leaves out
// browser_send_screenshot.
func NewToolRegistry(manager *browser.Manager, provider llm.Provider, send Sender) *ToolRegistry {
	return &ToolRegistry{
		manager:  manager,
		provider: provider,
		send:     send,
	}
}

// RegisterTools creates and returns all browser tools.
func (r *ToolRegistry) RegisterTools() []tools.Tool {
	if len(r.tools) > 0 {
		return r.tools
	}

	r.tools = append(r.tools,
		NewOpenTool(r.manager),
		NewClickTool(r.manager),
		NewClickXYTool(r.manager),
		NewClickRelTool(r.manager),
		NewClickInElementTool(r.manager),
		NewInputTool(r.manager),
		NewScrollTool(r.manager),
		NewWaitTool(r.manager),
		NewGetElementTool(r.manager),
		NewViewElementTool(r.manager),
		NewCropTool(r.manager),
		NewScreenshotTool(r.manager),
		NewCloseTool(r.manager),
	)

	if r.send != nil {
		r.tools = append(r.tools, NewSendScreenshotTool(r.manager, r.send))
	}
	if r.provider != nil {
		r.tools = append(r.tools, NewAnalyzePageTool(r.manager, r.provider))
	}

	return r.tools
}

// GetTools returns the current set of registered tools.
func (r *ToolRegistry) GetTools() []tools.Tool {
	return r.tools
}

// GetManager returns the underlying browser manager.
func (r *ToolRegistry) GetManager() *browser.Manager {
	return r.manager
}
