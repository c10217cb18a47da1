package browser

import (
	"time"

	"github.com/entrhq/gaze/pkg/browser/mark"
)

// Default values for the configuration surface.
const (
	DefaultIdleTimeout        = 180 * time.Second
	DefaultViewportWidth      = 1280
	DefaultViewportHeight     = 720
	DefaultPostActionWait     = 500 * time.Millisecond
	DefaultUserScreenshotWait = 500 * time.Millisecond
	DefaultNavigationTimeout  = 30 * time.Second

	// networkIdleTimeout caps the best-effort quiescence wait after
	// mutating interactions; expiry never fails the parent operation.
	networkIdleTimeout = 5 * time.Second

	// pointerSettleDelay emulates human pointer movement between the mouse
	// move and the click.
	pointerSettleDelay = 100 * time.Millisecond

	// renderSettleDelay lets freshly rendered tags paint before capture.
	renderSettleDelay = 100 * time.Millisecond

	// typeDelayMs is the per-keystroke delay for simulated typing.
	typeDelayMs = 20

	minCropZoom = 1.0
	maxCropZoom = 4.0

	// minWaitSeconds and maxWaitSeconds bound the explicit wait operation.
	minWaitSeconds = 1
	maxWaitSeconds = 30

	// waitSettleTimeout caps the network idle wait after an explicit wait;
	// expiry never fails the operation.
	waitSettleTimeout = 2 * time.Second
)

// Options is the full configuration surface of the browser manager. The
// zero value is usable; all fields have defaults.
type Options struct {
	// IdleTimeout is how long a controlling user may stay inactive before
	// the session is reclaimed.
	IdleTimeout time.Duration

	// ViewportWidth and ViewportHeight size the page in CSS pixels.
	// Changing them forces page+context recreation on the next operation.
	ViewportWidth  int
	ViewportHeight int

	// MarkMode selects the candidate collection strategy.
	MarkMode mark.Mode

	// MaxMarks caps tags per marking pass.
	MaxMarks int

	// MinElementArea is the minimum taggable element area in px².
	MinElementArea float64

	// NMSIoUThreshold is the de-duplication overlap threshold.
	NMSIoUThreshold float64

	// ContainMargin tunes the NMS containment suppression rule.
	ContainMargin float64

	// AllowPrivateNetwork disables reserved-IP SSRF checks. Off by default.
	AllowPrivateNetwork bool

	// AllowedDomains / BlockedDomains restrict navigation targets.
	AllowedDomains []string
	BlockedDomains []string

	// PostActionWait is the fixed settle delay after mutating interactions.
	PostActionWait time.Duration

	// UserScreenshotWait precedes captures staged for delivery to the user.
	UserScreenshotWait time.Duration

	// NavigationTimeout bounds page loads.
	NavigationTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = DefaultIdleTimeout
	}
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = DefaultViewportHeight
	}
	if !mark.ValidMode(o.MarkMode) {
		o.MarkMode = mark.ModeBalanced
	}
	if o.MaxMarks <= 0 {
		o.MaxMarks = mark.DefaultMaxMarks
	}
	if o.MinElementArea <= 0 {
		o.MinElementArea = mark.DefaultMinArea
	}
	if o.NMSIoUThreshold <= 0 || o.NMSIoUThreshold > 1 {
		o.NMSIoUThreshold = mark.DefaultIoUThreshold
	}
	if o.ContainMargin == 0 {
		o.ContainMargin = mark.DefaultContainMargin
	}
	if o.PostActionWait <= 0 {
		o.PostActionWait = DefaultPostActionWait
	}
	if o.UserScreenshotWait <= 0 {
		o.UserScreenshotWait = DefaultUserScreenshotWait
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = DefaultNavigationTimeout
	}
	return o
}

// markConfig derives the per-pass marking configuration.
func (o Options) markConfig() mark.Config {
	return mark.Config{
		Mode:           o.MarkMode,
		MaxMarks:       o.MaxMarks,
		MinArea:        o.MinElementArea,
		IoUThreshold:   o.NMSIoUThreshold,
		ContainMargin:  o.ContainMargin,
		ViewportWidth:  o.ViewportWidth,
		ViewportHeight: o.ViewportHeight,
	}
}

// Result is the common return shape of browser operations: an optional
// image payload plus a human-readable status line.
type Result struct {
	Image  []byte
	Status string
}

// ElementInfo describes one marked element without mutating page state.
type ElementInfo struct {
	TagName     string `json:"tagName"`
	Text        string `json:"text"`
	Href        string `json:"href"`
	Src         string `json:"src"`
	Alt         string `json:"alt"`
	Title       string `json:"title"`
	Placeholder string `json:"placeholder"`
	Value       string `json:"value"`
	Type        string `json:"type"`
}

// InputMethod reports which text-entry mechanism succeeded.
type InputMethod string

const (
	// InputMethodFill is direct value assignment on a recognized
	// input-capable element.
	InputMethodFill InputMethod = "fill"

	// InputMethodType is focus + select-all + keystroke simulation.
	InputMethodType InputMethod = "click+type"

	// InputMethodScript is the last-resort DOM-level value assignment with
	// synthetic input/change events.
	InputMethodScript InputMethod = "script"
)
