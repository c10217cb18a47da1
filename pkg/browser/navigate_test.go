package browser

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockedRecordKeepsFirstViolation(t *testing.T) {
	var blocked blockedRecord

	first := &SecurityError{URL: "http://169.254.169.254/", Reason: "metadata endpoint", Redirect: true}
	blocked.record(first)
	blocked.record(&SecurityError{URL: "http://10.0.0.1/", Reason: "private address", Redirect: true})

	got := blocked.get()
	require.NotNil(t, got)
	assert.Same(t, first, got)
}

func TestBlockedRecordEmpty(t *testing.T) {
	var blocked blockedRecord
	assert.Nil(t, blocked.get())
}

// Interceptor callbacks arrive on playwright's event-dispatch goroutine
// while the navigating goroutine polls for a verdict; the record must hold
// up under that concurrency.
func TestBlockedRecordConcurrentAccess(t *testing.T) {
	var blocked blockedRecord

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			blocked.record(&SecurityError{
				URL:      fmt.Sprintf("http://10.0.0.%d/", i),
				Reason:   "private address",
				Redirect: true,
			})
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			blocked.get()
		}()
	}
	wg.Wait()

	require.NotNil(t, blocked.get())
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/path  ", "https://example.com/path"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"ftp://example.com", "ftp://example.com"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeURL(tc.in), "input %q", tc.in)
	}
}
