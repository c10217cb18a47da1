// Package openai implements the analysis provider against OpenAI-compatible
// chat completion APIs.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/openai/openai-go"

	"github.com/entrhq/gaze/pkg/llm"
)

// DefaultBaseURL is the standard OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// defaultPageTextBudget caps how much condensed page text goes into one
// analysis call.
const defaultPageTextBudget = 4096

// Provider calls an OpenAI-compatible chat completions endpoint. Any service
// speaking the same protocol works through WithBaseURL.
type Provider struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	pageTextBudget int
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithModel sets the model used for analysis calls.
func WithModel(model string) ProviderOption {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithBaseURL points the provider at a compatible non-OpenAI endpoint, like
// Azure OpenAI or a local server.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithPageTextBudget caps the token count of page text per call.
func WithPageTextBudget(tokens int) ProviderOption {
	return func(p *Provider) {
		if tokens > 0 {
			p.pageTextBudget = tokens
		}
	}
}

// NewProvider creates a provider. An empty apiKey falls back to the
// OPENAI_API_KEY environment variable; an unset base URL falls back to
// OPENAI_BASE_URL before the default endpoint.
func NewProvider(apiKey string, opts ...ProviderOption) (*Provider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (provide via parameter or OPENAI_API_KEY environment variable)")
	}

	p := &Provider{
		httpClient:     &http.Client{},
		apiKey:         apiKey,
		baseURL:        DefaultBaseURL,
		model:          "gpt-4o",
		pageTextBudget: defaultPageTextBudget,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.baseURL == DefaultBaseURL {
		if envBaseURL := os.Getenv("OPENAI_BASE_URL"); envBaseURL != "" {
			p.baseURL = envBaseURL
		}
	}

	return p, nil
}

// Model returns the model name in use.
func (p *Provider) Model() string {
	return p.model
}

// Analyze sends one non-streaming chat completion with the page text and
// optional screenshot attached, and returns the model's answer.
func (p *Provider) Analyze(ctx context.Context, req llm.AnalysisRequest) (string, error) {
	messages := p.buildMessages(req)

	reqBody := map[string]interface{}{
		"model":    p.model,
		"messages": messages,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", fmt.Errorf("API request failed with status %d (failed to read error body: %w)", resp.StatusCode, readErr)
		}
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("API returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// buildMessages assembles the chat messages. Text-only messages go through
// the SDK's param builders; the multimodal user turn is built as a raw
// content-part array because it may carry an inline image.
func (p *Provider) buildMessages(req llm.AnalysisRequest) []interface{} {
	messages := make([]interface{}, 0, 2)

	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}

	userText := req.Prompt
	if req.PageText != "" {
		pageText := llm.TruncateToTokens(req.PageText, p.pageTextBudget)
		userText = fmt.Sprintf("Page content:\n%s\n\nQuestion: %s", pageText, req.Prompt)
	}

	if req.ImagePNG == nil {
		messages = append(messages, openai.UserMessage(userText))
		return messages
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(req.ImagePNG)
	messages = append(messages, map[string]interface{}{
		"role": "user",
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": userText,
			},
			map[string]interface{}{
				"type": "image_url",
				"image_url": map[string]interface{}{
					"url": dataURL,
				},
			},
		},
	})
	return messages
}
