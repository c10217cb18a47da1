package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pendingManager builds a manager with a staged capture owned by userID.
// The gate's idle timeout is short and its reset callback deliberately does
// not clear the slot, so ownership can lapse while the capture survives and
// the requester-only guard is what stands between users.
func pendingManager(t *testing.T, userID string, image []byte) *Manager {
	t.Helper()
	m := &Manager{
		gate:    NewGate(10*time.Millisecond, nil),
		pending: &pendingScreenshot{userID: userID, image: image},
	}
	require.NoError(t, m.gate.Acquire(context.Background(), userID))
	return m
}

func TestConfirmUserScreenshotRejectsOtherUser(t *testing.T) {
	m := pendingManager(t, "alice", []byte("png"))
	time.Sleep(20 * time.Millisecond)

	sent := false
	err := m.ConfirmUserScreenshot(context.Background(), "bob", func([]byte) error {
		sent = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, sent)
	assert.NotNil(t, m.pending, "staged capture must survive a foreign confirm")
}

func TestCancelUserScreenshotRejectsOtherUser(t *testing.T) {
	m := pendingManager(t, "alice", []byte("png"))
	time.Sleep(20 * time.Millisecond)

	err := m.CancelUserScreenshot(context.Background(), "bob")
	require.Error(t, err)
	assert.NotNil(t, m.pending, "staged capture must survive a foreign cancel")
}

func TestConfirmUserScreenshotDeliversToRequester(t *testing.T) {
	m := pendingManager(t, "alice", []byte("png"))

	var delivered []byte
	err := m.ConfirmUserScreenshot(context.Background(), "alice", func(img []byte) error {
		delivered = img
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), delivered)
	assert.Nil(t, m.pending, "slot is consumed on delivery")
}

func TestConfirmUserScreenshotConsumesSlotOnSendFailure(t *testing.T) {
	m := pendingManager(t, "alice", []byte("png"))

	err := m.ConfirmUserScreenshot(context.Background(), "alice", func([]byte) error {
		return assert.AnError
	})
	require.Error(t, err)
	assert.Nil(t, m.pending, "a retry must restage fresh pixels")
}

func TestConfirmUserScreenshotWithoutStage(t *testing.T) {
	m := &Manager{gate: NewGate(time.Minute, nil)}

	err := m.ConfirmUserScreenshot(context.Background(), "alice", func([]byte) error { return nil })
	require.Error(t, err)
}

func TestCancelUserScreenshotDiscards(t *testing.T) {
	m := pendingManager(t, "alice", []byte("png"))

	require.NoError(t, m.CancelUserScreenshot(context.Background(), "alice"))
	assert.Nil(t, m.pending)
}
