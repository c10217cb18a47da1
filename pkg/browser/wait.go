package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// clampWaitSeconds bounds an explicit wait to [minWaitSeconds, maxWaitSeconds].
func clampWaitSeconds(seconds int) int {
	if seconds < minWaitSeconds {
		return minWaitSeconds
	}
	if seconds > maxWaitSeconds {
		return maxWaitSeconds
	}
	return seconds
}

// Wait pauses for the given number of seconds so dynamic content (AJAX,
// lazy images, animations) can finish loading, then waits briefly for
// network idle and returns a fresh marked screenshot.
func (m *Manager) Wait(ctx context.Context, userID string, seconds int) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	if !m.session.active() {
		return nil, engineErr("wait", errNoPage)
	}

	seconds = clampWaitSeconds(seconds)
	time.Sleep(time.Duration(seconds) * time.Second)

	err = m.session.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(waitSettleTimeout.Milliseconds())),
	})
	if err != nil {
		m.logger.Debugf("network idle wait timed out: %v", err)
	}

	result, err := m.markedScreenshot()
	if err != nil {
		return nil, err
	}
	result.Status = fmt.Sprintf("waited %d seconds\n%s", seconds, result.Status)
	return result, nil
}
