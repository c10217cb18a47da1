package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tokenEncoder *tiktoken.Tiktoken
	encoderOnce  sync.Once
	encoderErr   error
)

// initTokenEncoder lazily loads the cl100k_base encoding shared by the
// GPT-4 family.
func initTokenEncoder() error {
	encoderOnce.Do(func() {
		tokenEncoder, encoderErr = tiktoken.GetEncoding("cl100k_base")
	})
	return encoderErr
}

// CountTokens counts tokens in text, estimating when the encoder is
// unavailable.
func CountTokens(text string) int {
	if err := initTokenEncoder(); err != nil {
		return estimateTokens(text)
	}
	return len(tokenEncoder.Encode(text, nil, nil))
}

// TruncateToTokens cuts text down to at most maxTokens tokens, appending a
// truncation marker when anything was removed.
func TruncateToTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	if err := initTokenEncoder(); err != nil {
		// Rough cut on the 4-bytes-per-token estimate.
		limit := maxTokens * 4
		if len(text) <= limit {
			return text
		}
		return text[:limit] + "\n[content truncated]"
	}

	tokens := tokenEncoder.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return tokenEncoder.Decode(tokens[:maxTokens]) + "\n[content truncated]"
}

// estimateTokens approximates token count as one per four bytes, which
// tracks English prose closely enough for budgeting.
func estimateTokens(text string) int {
	return len(text) / 4
}
