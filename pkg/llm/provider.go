// Package llm provides the model abstraction used by page analysis.
package llm

import "context"

// AnalysisRequest is one page-analysis call: an instruction, the condensed
// page text, and optionally the marked screenshot for visual grounding.
type AnalysisRequest struct {
	// System sets the model's role for the call.
	System string

	// Prompt is the user's question about the page.
	Prompt string

	// PageText is the condensed text content of the page. It is truncated
	// to the provider's token budget before sending.
	PageText string

	// ImagePNG, when non-nil, is attached as an inline image.
	ImagePNG []byte
}

// Provider answers analysis requests against a vision-capable model.
type Provider interface {
	Analyze(ctx context.Context, req AnalysisRequest) (string, error)

	// Model returns the model name in use.
	Model() string
}
