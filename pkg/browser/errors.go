package browser

import (
	"fmt"
	"time"
)

// SecurityError reports a URL or redirect that failed safety validation.
// Always surfaced with the specific reason, never downgraded to a generic
// navigation failure.
type SecurityError struct {
	URL    string
	Reason string
	// Redirect is true when the blocked URL was a mid-navigation redirect
	// target rather than the requested URL itself.
	Redirect bool
}

func (e *SecurityError) Error() string {
	if e.Redirect {
		return fmt.Sprintf("blocked unsafe redirect to %s: %s", e.URL, e.Reason)
	}
	return fmt.Sprintf("blocked unsafe URL %s: %s", e.URL, e.Reason)
}

// ConflictError reports that another user currently owns the session.
type ConflictError struct {
	Owner     string
	Remaining time.Duration
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("browser session is held by user %s; retry in %ds or wait for release",
		e.Owner, int(e.Remaining.Seconds()))
}

// NotFoundError reports an element ID absent from the latest marking pass.
// The DOM may have changed since the element was marked; the caller should
// re-mark or re-navigate rather than retry.
type NotFoundError struct {
	ElementID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no element with ID %d in the current marking pass", e.ElementID)
}

// EngineError wraps a failure from the underlying browser engine.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("browser engine failure during %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

func engineErr(op string, err error) *EngineError {
	return &EngineError{Op: op, Err: err}
}

// FrameError records one sub-frame that failed during a marking pass.
// Tolerated and excluded from results; fatal only when no frame succeeds.
type FrameError struct {
	FrameURL string
	Err      error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %s failed: %v", e.FrameURL, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }
