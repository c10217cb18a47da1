package browser

import (
	"context"
	"sync"
	"time"
)

// ResetFunc tears down all browser resources. Invoked by the gate when an
// idle session is reclaimed or the owner releases.
type ResetFunc func(ctx context.Context)

// Gate serializes access to the single physical browser session per logical
// user. It is an explicitly owned object injected into whatever orchestrates
// requests; there is no process-wide instance.
//
// State machine: Idle (no owner) -> Owned(user, lastActive) -> Idle on
// release or idle-timeout reclamation. Reclamation happens opportunistically
// at the next Acquire; no background sweep runs.
type Gate struct {
	mu          sync.Mutex
	idleTimeout time.Duration
	reset       ResetFunc

	owner      string
	lastActive time.Time
}

// NewGate creates a gate with the given idle timeout and reset callback.
func NewGate(idleTimeout time.Duration, reset ResetFunc) *Gate {
	if reset == nil {
		reset = func(context.Context) {}
	}
	return &Gate{
		idleTimeout: idleTimeout,
		reset:       reset,
	}
}

// Acquire grants the session to userID, or refreshes ownership when userID
// already holds it. A session idle past the timeout is torn down first and
// granted fresh. Denial is reported as *ConflictError carrying the
// remaining-time estimate.
func (g *Gate) Acquire(ctx context.Context, userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()

	if g.owner != "" && now.Sub(g.lastActive) > g.idleTimeout {
		g.reset(ctx)
		g.owner = ""
	}

	switch g.owner {
	case "":
		g.owner = userID
		g.lastActive = now
		return nil
	case userID:
		g.lastActive = now
		return nil
	default:
		remaining := g.idleTimeout - now.Sub(g.lastActive)
		if remaining < time.Second {
			remaining = time.Second
		}
		return &ConflictError{Owner: g.owner, Remaining: remaining}
	}
}

// Release gives up ownership and tears down resources. Only the current
// owner may release; releasing an idle gate is a no-op success.
func (g *Gate) Release(ctx context.Context, userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.owner {
	case "":
		return nil
	case userID:
		g.reset(ctx)
		g.owner = ""
		g.lastActive = time.Time{}
		return nil
	default:
		return &ConflictError{Owner: g.owner, Remaining: g.remainingLocked()}
	}
}

// Owner returns the current owning user, or "" when idle.
func (g *Gate) Owner() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.owner
}

func (g *Gate) remainingLocked() time.Duration {
	remaining := g.idleTimeout - time.Since(g.lastActive)
	if remaining < time.Second {
		remaining = time.Second
	}
	return remaining
}
