package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/llm"
	"github.com/entrhq/gaze/pkg/tools"
)

const analyzeSystemPrompt = "You are a web page analyst. Answer the question " +
	"using the page content and screenshot provided. Be precise and quote the " +
	"page where it helps. Say so plainly when the page does not contain the answer."

// AnalyzePageTool answers a question about the current page by handing its
// condensed text and marked screenshot to a model.
type AnalyzePageTool struct {
	manager  *browser.Manager
	provider llm.Provider
}

// NewAnalyzePageTool creates a new page analysis tool.
func NewAnalyzePageTool(manager *browser.Manager, provider llm.Provider) *AnalyzePageTool {
	return &AnalyzePageTool{manager: manager, provider: provider}
}

// Name returns the tool name.
func (t *AnalyzePageTool) Name() string {
	return "analyze_page"
}

// Description returns the tool description.
func (t *AnalyzePageTool) Description() string {
	return "Ask a question about the current page. The page text and a screenshot " +
		"are analyzed by a model, which works better than reading a dense page from " +
		"the screenshot alone."
}

// Schema returns the tool's JSON schema.
func (t *AnalyzePageTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"question": map[string]interface{}{
				"type":        "string",
				"description": "What to find out about the page",
			},
			"include_screenshot": map[string]interface{}{
				"type":        "boolean",
				"description": "Attach the current screenshot to the analysis (default true)",
			},
		},
		[]string{"question"},
	)
}

// Execute analyzes the page.
func (t *AnalyzePageTool) Execute(ctx context.Context, userID string, argsXML []byte) (*tools.Result, error) {
	var input struct {
		XMLName           xml.Name `xml:"arguments"`
		Question          string   `xml:"question"`
		IncludeScreenshot *bool    `xml:"include_screenshot"`
	}
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Question == "" {
		return nil, fmt.Errorf("question is required")
	}

	page, err := t.manager.PageContent(ctx, userID, 64*1024)
	if err != nil {
		return nil, err
	}

	req := llm.AnalysisRequest{
		System:   analyzeSystemPrompt,
		Prompt:   input.Question,
		PageText: formatPageText(page),
	}

	if input.IncludeScreenshot == nil || *input.IncludeScreenshot {
		shot, err := t.manager.Screenshot(ctx, userID)
		if err == nil {
			req.ImagePNG = shot.Image
		}
	}

	answer, err := t.provider.Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("page analysis failed: %w", err)
	}
	return tools.TextResult(answer), nil
}

func formatPageText(page *browser.CondensedPage) string {
	header := fmt.Sprintf("URL: %s\nTitle: %s", page.URL, page.Title)
	if page.Description != "" {
		header += "\nDescription: " + page.Description
	}
	if page.Truncated {
		header += "\n(content truncated)"
	}
	return header + "\n\n" + page.Text
}
