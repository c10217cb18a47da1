package browser

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/gaze/pkg/logging"
)

// desktopUserAgent is presented to pages since the headless default is
// widely blocked.
const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// session owns the live Playwright handles backing the single browser
// session. It has no lock of its own: all access is serialized by the
// Manager's operation mutex.
type session struct {
	logger *logging.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	// Viewport the live context was created with; a mismatch against the
	// requested size forces page+context recreation, since a live context
	// cannot be resized.
	contextWidth  int
	contextHeight int
}

func newSession(logger *logging.Logger) *session {
	return &session{logger: logger}
}

// active reports whether a live page exists.
func (s *session) active() bool {
	return s.page != nil
}

// ensure lazily initializes the driver, browser, context and page, rebuilding
// the context when the requested viewport no longer matches. A fatal
// initialization error resets everything.
func (s *session) ensure(width, height int) error {
	if err := s.ensureInner(width, height); err != nil {
		s.reset()
		return err
	}
	return nil
}

func (s *session) ensureInner(width, height int) error {
	if s.pw == nil {
		opts := &playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		}
		if err := playwright.Install(opts); err != nil {
			return fmt.Errorf("failed to install playwright: %w", err)
		}
		pw, err := playwright.Run(opts)
		if err != nil {
			return fmt.Errorf("failed to start playwright: %w", err)
		}
		s.pw = pw
	}

	if s.browser == nil {
		browser, err := s.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(true),
			Args: []string{
				"--no-sandbox",
				"--disable-setuid-sandbox",
				"--disable-dev-shm-usage",
				"--disable-accelerated-2d-canvas",
				"--no-first-run",
				"--no-zygote",
				"--disable-gpu",
			},
		})
		if err != nil {
			return fmt.Errorf("failed to launch browser: %w", err)
		}
		s.browser = browser
	}

	if s.context != nil && (s.contextWidth != width || s.contextHeight != height) {
		s.logger.Infof("viewport changed from %dx%d to %dx%d; rebuilding context",
			s.contextWidth, s.contextHeight, width, height)
		if s.page != nil {
			if err := s.page.Close(); err != nil {
				s.logger.Debugf("error closing page during viewport rebuild: %v", err)
			}
			s.page = nil
		}
		if err := s.context.Close(); err != nil {
			s.logger.Debugf("error closing context during viewport rebuild: %v", err)
		}
		s.context = nil
	}

	if s.context == nil {
		context, err := s.browser.NewContext(playwright.BrowserNewContextOptions{
			Viewport: &playwright.Size{
				Width:  width,
				Height: height,
			},
			UserAgent: playwright.String(desktopUserAgent),
		})
		if err != nil {
			return fmt.Errorf("failed to create context: %w", err)
		}
		s.context = context
		s.contextWidth = width
		s.contextHeight = height
	}

	if s.page == nil {
		page, err := s.context.NewPage()
		if err != nil {
			return fmt.Errorf("failed to create page: %w", err)
		}
		s.page = page
	}

	return nil
}

// reset closes every handle tolerantly and clears state. Individual close
// errors are logged and discarded so teardown always completes.
func (s *session) reset() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.logger.Debugf("error closing page: %v", err)
		}
		s.page = nil
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			s.logger.Debugf("error closing context: %v", err)
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.Debugf("error closing browser: %v", err)
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			s.logger.Debugf("error stopping playwright: %v", err)
		}
		s.pw = nil
	}
	s.contextWidth = 0
	s.contextHeight = 0
	s.logger.Infof("browser resources reset")
}

// capture is the single shared screenshot path. Every capture requests
// CSS-pixel scale so returned image coordinates always match the coordinate
// system used by click and crop operations, regardless of display density.
func (s *session) capture(clip *playwright.Rect) ([]byte, error) {
	opts := playwright.PageScreenshotOptions{
		Type:  playwright.ScreenshotTypePng,
		Scale: playwright.ScreenshotScaleCss,
	}
	if clip != nil {
		opts.Clip = clip
	}
	return s.page.Screenshot(opts)
}
