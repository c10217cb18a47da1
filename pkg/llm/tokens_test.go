package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountTokens(t *testing.T) {
	assert.Equal(t, 0, CountTokens(""))
	assert.Greater(t, CountTokens("hello world, this is a sentence"), 0)
	assert.Greater(t, CountTokens(strings.Repeat("word ", 100)), CountTokens("word"))
}

func TestTruncateToTokensShortTextUnchanged(t *testing.T) {
	text := "short text"
	assert.Equal(t, text, TruncateToTokens(text, 1000))
}

func TestTruncateToTokensCutsLongText(t *testing.T) {
	text := strings.Repeat("lots of words here ", 500)
	out := TruncateToTokens(text, 50)

	assert.Less(t, len(out), len(text))
	assert.True(t, strings.HasSuffix(out, "[content truncated]"))
	assert.LessOrEqual(t, CountTokens(strings.TrimSuffix(out, "\n[content truncated]")), 50)
}

func TestTruncateToTokensZeroBudget(t *testing.T) {
	assert.Equal(t, "", TruncateToTokens("anything", 0))
}
