// Package browser drives a single headless browser on behalf of an AI agent
// through a vision-grounded protocol: interactive elements are tagged with
// small integer IDs and addressed by ID-based click/type/scroll operations
// instead of pixel coordinates or CSS selectors.
package browser

import (
	"context"
	"sync"

	"github.com/entrhq/gaze/pkg/logging"
	"github.com/entrhq/gaze/pkg/urlcheck"
)

// Manager coordinates the session gate, URL validation, marking and
// interaction against the single physical browser session. All mutating
// operations are serialized behind one mutex; logical ownership is the
// gate's concern and is checked at every entry point.
type Manager struct {
	mu sync.Mutex

	opts      Options
	logger    *logging.Logger
	validator *urlcheck.Validator
	gate      *Gate
	session   *session
	pending   *pendingScreenshot
}

// NewManager builds a manager from the given options. The browser itself is
// launched lazily on first navigation.
func NewManager(opts Options, logger *logging.Logger) (*Manager, error) {
	opts = opts.withDefaults()

	validator, err := urlcheck.New(urlcheck.Config{
		AllowPrivateNetwork: opts.AllowPrivateNetwork,
		AllowedDomains:      opts.AllowedDomains,
		BlockedDomains:      opts.BlockedDomains,
	})
	if err != nil {
		return nil, err
	}

	m := &Manager{
		opts:      opts,
		logger:    logger,
		validator: validator,
		session:   newSession(logger),
	}
	m.gate = NewGate(opts.IdleTimeout, func(context.Context) {
		m.session.reset()
		m.pending = nil
	})

	if opts.AllowPrivateNetwork {
		logger.Warnf("private network access is ENABLED; SSRF protection is reduced")
	} else {
		logger.Infof("private network access is disabled (default safe mode)")
	}
	if len(opts.AllowedDomains) > 0 {
		logger.Infof("domain allow-list active with %d entries", len(opts.AllowedDomains))
	}
	if len(opts.BlockedDomains) > 0 {
		logger.Infof("domain deny-list active with %d entries", len(opts.BlockedDomains))
	}

	return m, nil
}

// begin serializes the operation and authorizes userID through the gate,
// refreshing its activity timestamp. Callers must invoke the returned
// function when done.
func (m *Manager) begin(ctx context.Context, userID string) (func(), error) {
	m.mu.Lock()
	if err := m.gate.Acquire(ctx, userID); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	return m.mu.Unlock, nil
}

// engineFailure wraps an engine-level error that indicates the page itself
// is in a bad state. The session is torn down so the next navigation starts
// clean instead of inheriting a wedged renderer.
func (m *Manager) engineFailure(op string, err error) *EngineError {
	m.logger.Errorf("engine failure during %s, resetting session: %v", op, err)
	m.session.reset()
	m.pending = nil
	return engineErr(op, err)
}

// Acquire grants or refreshes session ownership without touching the page.
func (m *Manager) Acquire(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gate.Acquire(ctx, userID)
}

// Close releases session ownership and tears down all browser resources.
func (m *Manager) Close(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gate.Release(ctx, userID)
}

// Owner returns the user currently holding the session, or "".
func (m *Manager) Owner() string {
	return m.gate.Owner()
}

// Viewport returns the configured viewport size in CSS pixels.
func (m *Manager) Viewport() (int, int) {
	return m.opts.ViewportWidth, m.opts.ViewportHeight
}
