package browser

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecurityErrorDistinguishesRedirects(t *testing.T) {
	direct := &SecurityError{URL: "http://10.0.0.1/", Reason: "reserved range"}
	redirect := &SecurityError{URL: "http://10.0.0.1/", Reason: "reserved range", Redirect: true}

	assert.Contains(t, direct.Error(), "blocked unsafe URL")
	assert.Contains(t, redirect.Error(), "redirect")
	assert.Contains(t, redirect.Error(), "reserved range")
}

func TestConflictErrorCarriesRemainingEstimate(t *testing.T) {
	err := &ConflictError{Owner: "alice", Remaining: 95 * time.Second}
	assert.Contains(t, err.Error(), "alice")
	assert.Contains(t, err.Error(), "95")
}

func TestEngineErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("target closed")
	err := engineErr("screenshot", cause)

	assert.ErrorIs(t, err, cause)

	var engine *EngineError
	wrapped := fmt.Errorf("operation failed: %w", err)
	assert.ErrorAs(t, wrapped, &engine)
	assert.Equal(t, "screenshot", engine.Op)
}

func TestNotFoundError(t *testing.T) {
	var notFound *NotFoundError
	err := error(&NotFoundError{ElementID: 17})
	assert.True(t, errors.As(err, &notFound))
	assert.Contains(t, err.Error(), "17")
}
