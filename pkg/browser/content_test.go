package browser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title>Signup Page</title>
	<meta name="description" content="Create an account">
	<script>alert("noise")</script>
	<style>.x { color: red }</style>
</head>
<body>
	<h1>Welcome</h1>
	<p>Create your account below.</p>
	<form>
		<input type="email" placeholder="Email address">
		<button type="submit">Sign up</button>
	</form>
	<a href="/login">Already registered?</a>
	<img src="/hero.png" alt="product screenshot">
</body>
</html>`

func TestCondenseExtractsMetadata(t *testing.T) {
	page, err := condense(samplePage, 10000)
	require.NoError(t, err)

	assert.Equal(t, "Signup Page", page.Title)
	assert.Equal(t, "Create an account", page.Description)
	assert.False(t, page.Truncated)
}

func TestCondenseDropsScriptAndStyle(t *testing.T) {
	page, err := condense(samplePage, 10000)
	require.NoError(t, err)

	assert.NotContains(t, page.Text, "alert")
	assert.NotContains(t, page.Text, "color: red")
	assert.Contains(t, page.Text, "Welcome")
	assert.Contains(t, page.Text, "Create your account below.")
}

func TestCondenseAnnotatesActionableElements(t *testing.T) {
	page, err := condense(samplePage, 10000)
	require.NoError(t, err)

	assert.Contains(t, page.Text, "[link: /login]")
	assert.Contains(t, page.Text, "[input: Email address]")
	assert.Contains(t, page.Text, "[button]")
	assert.Contains(t, page.Text, "[image: product screenshot]")
}

func TestCondenseTruncates(t *testing.T) {
	long := "<html><body><p>" + strings.Repeat("words ", 500) + "</p></body></html>"
	page, err := condense(long, 100)
	require.NoError(t, err)

	assert.True(t, page.Truncated)
	assert.LessOrEqual(t, len(page.Text), 120)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(page.Text), "..."))
}

func TestCondenseTruncatesOnRuneBoundary(t *testing.T) {
	long := "<html><body><p>" + strings.Repeat("日本語テキスト", 100) + "</p></body></html>"
	for max := 95; max <= 105; max++ {
		page, err := condense(long, max)
		require.NoError(t, err)

		assert.True(t, page.Truncated)
		assert.True(t, utf8.ValidString(page.Text), "cap %d split a rune", max)
	}
}

func TestCondenseSkipsJavascriptLinks(t *testing.T) {
	page, err := condense(`<html><body><a href="javascript:void(0)">fake</a></body></html>`, 1000)
	require.NoError(t, err)

	assert.NotContains(t, page.Text, "[link:")
	assert.Contains(t, page.Text, "fake")
}

func TestCondenseCollapsesBlankLines(t *testing.T) {
	page, err := condense(`<html><body><div></div><div></div><div>content</div></body></html>`, 1000)
	require.NoError(t, err)

	assert.NotContains(t, page.Text, "\n\n\n")
	assert.Contains(t, page.Text, "content")
}
