package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// navSettleDelay lets the page paint before the post-navigation marking pass.
const navSettleDelay = time.Second

// blockedRecord holds the first security violation seen by the route
// interceptor. The handler runs on playwright's event-dispatch goroutine
// while Goto blocks the navigating goroutine, so access is mutex-guarded.
type blockedRecord struct {
	mu  sync.Mutex
	err *SecurityError
}

// record keeps the first violation; later hops on an already-aborted
// navigation do not overwrite it.
func (b *blockedRecord) record(err *SecurityError) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		b.err = err
	}
}

func (b *blockedRecord) get() *SecurityError {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Navigate validates the URL, navigates with per-request redirect
// validation, and returns a marked screenshot of the loaded page.
//
// Validation happens three times: once up front, once per intercepted
// navigation-type request (covering every redirect hop), and once more
// against the final resolved document URL as a last defense.
func (m *Manager) Navigate(ctx context.Context, userID, rawURL string) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	if err := m.session.ensure(m.opts.ViewportWidth, m.opts.ViewportHeight); err != nil {
		return nil, engineErr("init", err)
	}

	rawURL = normalizeURL(rawURL)

	if verdict := m.validator.Validate(ctx, rawURL); !verdict.Safe {
		m.logger.Warnf("blocked navigation to %s: %s", rawURL, verdict.Reason)
		return nil, &SecurityError{URL: rawURL, Reason: verdict.Reason}
	}

	// Revalidate every navigation-type request for the duration of this
	// navigation, so redirects cannot escape into private address space.
	// Resource requests (images, scripts, styles) pass through untouched.
	var blocked blockedRecord
	handler := func(route playwright.Route) {
		request := route.Request()
		if !request.IsNavigationRequest() {
			if err := route.Continue(); err != nil {
				m.logger.Debugf("route continue failed: %v", err)
			}
			return
		}

		target := request.URL()
		checkCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		verdict := m.validator.Validate(checkCtx, target)
		cancel()

		if !verdict.Safe {
			m.logger.Warnf("blocked redirect to %s: %s", target, verdict.Reason)
			blocked.record(&SecurityError{URL: target, Reason: verdict.Reason, Redirect: true})
			if err := route.Abort("blockedbyclient"); err != nil {
				m.logger.Debugf("route abort failed: %v", err)
			}
			return
		}
		if err := route.Continue(); err != nil {
			m.logger.Debugf("route continue failed: %v", err)
		}
	}

	page := m.session.page
	if err := page.Route("**/*", handler); err != nil {
		return nil, engineErr("route", err)
	}
	defer func() {
		if err := page.Unroute("**/*", handler); err != nil {
			m.logger.Debugf("failed to remove navigation interceptor: %v", err)
		}
	}()

	_, gotoErr := page.Goto(rawURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(m.opts.NavigationTimeout.Milliseconds())),
	})

	// A blocked redirect shows up as a goto failure; the recorded security
	// reason must win over the generic engine error.
	if secErr := blocked.get(); secErr != nil {
		return nil, secErr
	}
	if gotoErr != nil {
		return nil, m.engineFailure("navigate", gotoErr)
	}

	if finalURL := page.URL(); finalURL != "" && finalURL != rawURL {
		if verdict := m.validator.Validate(ctx, finalURL); !verdict.Safe {
			m.logger.Warnf("final URL validation failed for %s: %s", finalURL, verdict.Reason)
			return nil, &SecurityError{URL: finalURL, Reason: verdict.Reason, Redirect: true}
		}
	}

	time.Sleep(navSettleDelay)

	result, err := m.markedScreenshot()
	if err != nil {
		return nil, err
	}

	title, titleErr := page.Title()
	if titleErr != nil {
		title = page.URL()
	}
	result.Status = fmt.Sprintf("opened: %s\n%s", title, result.Status)
	return result, nil
}

// normalizeURL defaults bare hostnames to https. Validation still decides
// whether the result is acceptable.
func normalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.Contains(rawURL, "://") {
		return "https://" + rawURL
	}
	return rawURL
}
