package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errNoPage = errors.New("no page is open, navigate somewhere first")

// pendingScreenshot is a capture staged for delivery to the user, held until
// the same user confirms or cancels, or the session is reclaimed.
type pendingScreenshot struct {
	userID string
	image  []byte
}

// Screenshot re-marks the current page and returns a fresh annotated
// capture without performing any interaction.
func (m *Manager) Screenshot(ctx context.Context, userID string) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	if !m.session.active() {
		return nil, engineErr("screenshot", errNoPage)
	}
	return m.markedScreenshot()
}

// StageUserScreenshot captures the current page and stages it for delivery.
// When clean is true the overlay tags are hidden for the capture. The image
// is not returned to the caller; a matching ConfirmUserScreenshot releases
// it. Staging replaces any previously staged capture.
func (m *Manager) StageUserScreenshot(ctx context.Context, userID string, clean bool) (string, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return "", err
	}
	defer done()

	if !m.session.active() {
		return "", engineErr("screenshot", errNoPage)
	}

	time.Sleep(m.opts.UserScreenshotWait)

	if clean {
		m.setMarksVisible(false)
	}
	img, err := m.session.capture(nil)
	if clean {
		m.setMarksVisible(true)
	}
	if err != nil {
		return "", m.engineFailure("screenshot", err)
	}

	m.pending = &pendingScreenshot{userID: userID, image: img}
	return "screenshot staged, confirm to deliver it", nil
}

// ConfirmUserScreenshot hands the staged capture to send and clears the
// slot. Only the user who staged it may confirm; the slot is consumed even
// when send fails, so a retry restages rather than resends stale pixels.
func (m *Manager) ConfirmUserScreenshot(ctx context.Context, userID string, send func([]byte) error) error {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return err
	}
	defer done()

	if m.pending == nil {
		return errors.New("no screenshot is staged")
	}
	if m.pending.userID != userID {
		return fmt.Errorf("staged screenshot belongs to another user")
	}

	img := m.pending.image
	m.pending = nil
	return send(img)
}

// CancelUserScreenshot discards the staged capture. Only the user who
// staged it may cancel.
func (m *Manager) CancelUserScreenshot(ctx context.Context, userID string) error {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return err
	}
	defer done()

	if m.pending == nil {
		return errors.New("no screenshot is staged")
	}
	if m.pending.userID != userID {
		return fmt.Errorf("staged screenshot belongs to another user")
	}

	m.pending = nil
	return nil
}
