package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateDeniesSecondUserBeforeTimeout(t *testing.T) {
	gate := NewGate(time.Minute, nil)

	require.NoError(t, gate.Acquire(context.Background(), "alice"))

	err := gate.Acquire(context.Background(), "bob")
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "alice", conflict.Owner)
	assert.Positive(t, conflict.Remaining)
}

func TestGateReclaimsAfterIdleTimeout(t *testing.T) {
	resets := 0
	gate := NewGate(30*time.Millisecond, func(context.Context) { resets++ })

	require.NoError(t, gate.Acquire(context.Background(), "alice"))
	time.Sleep(60 * time.Millisecond)

	assert.NoError(t, gate.Acquire(context.Background(), "bob"),
		"an idle session must be reclaimed at the next acquire")
	assert.Equal(t, 1, resets, "reclamation must tear down resources")
	assert.Equal(t, "bob", gate.Owner())
}

func TestGateSameUserRefreshes(t *testing.T) {
	gate := NewGate(50*time.Millisecond, nil)

	require.NoError(t, gate.Acquire(context.Background(), "alice"))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, gate.Acquire(context.Background(), "alice"))
	time.Sleep(30 * time.Millisecond)

	// 60ms since first acquire but only 30ms since the refresh.
	err := gate.Acquire(context.Background(), "bob")
	assert.Error(t, err, "refreshed ownership must not be reclaimed early")
}

func TestGateReleaseByNonOwnerDenied(t *testing.T) {
	gate := NewGate(time.Minute, nil)

	require.NoError(t, gate.Acquire(context.Background(), "bob"))

	err := gate.Release(context.Background(), "alice")
	assert.Error(t, err)
	assert.Equal(t, "bob", gate.Owner(), "session state must be unchanged")
}

func TestGateReleaseByOwnerResets(t *testing.T) {
	resets := 0
	gate := NewGate(time.Minute, func(context.Context) { resets++ })

	require.NoError(t, gate.Acquire(context.Background(), "alice"))
	require.NoError(t, gate.Release(context.Background(), "alice"))

	assert.Equal(t, 1, resets)
	assert.Empty(t, gate.Owner())
	assert.NoError(t, gate.Acquire(context.Background(), "bob"))
}

func TestGateReleaseWhenIdleIsNoop(t *testing.T) {
	resets := 0
	gate := NewGate(time.Minute, func(context.Context) { resets++ })

	assert.NoError(t, gate.Release(context.Background(), "anyone"))
	assert.Zero(t, resets)
}
