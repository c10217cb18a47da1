// Package mark implements the element marking pipeline: scoring candidate
// DOM elements, de-duplicating them with IoU-based non-maximum suppression,
// truncating to a bounded tag count, and assigning contiguous IDs.
//
// The package is engine-agnostic on purpose: candidates are plain values
// produced by a small collection script evaluated in each frame, and the
// selection logic here never touches a live page, so the full pipeline is
// unit-testable without a browser.
package mark

// Rect is a bounding box in CSS pixel space.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Area returns the box area in px². Degenerate boxes have zero area.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// IoU returns the intersection-over-union overlap ratio of two boxes.
func IoU(a, b Rect) float64 {
	ix := overlap(a.X, a.X+a.W, b.X, b.X+b.W)
	iy := overlap(a.Y, a.Y+a.H, b.Y, b.Y+b.H)
	inter := ix * iy
	if inter <= 0 {
		return 0
	}
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func overlap(lo1, hi1, lo2, hi2 float64) float64 {
	lo := lo1
	if lo2 > lo {
		lo = lo2
	}
	hi := hi1
	if hi2 < hi {
		hi = hi2
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// containTolerance absorbs sub-pixel rounding from getBoundingClientRect.
const containTolerance = 1.0

// Contains reports whether r geometrically contains other.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X-containTolerance &&
		other.Y >= r.Y-containTolerance &&
		other.X+other.W <= r.X+r.W+containTolerance &&
		other.Y+other.H <= r.Y+r.H+containTolerance
}

// Candidate is one taggable element as reported by the collection script.
// Index is the temporary stamp the script left on the DOM node so the
// render script can find it again after selection.
type Candidate struct {
	Index           int    `json:"index"`
	Tag             string `json:"tag"`
	Role            string `json:"role"`
	Text            string `json:"text"`
	AriaLabel       string `json:"ariaLabel"`
	TabIndex        int    `json:"tabIndex"`
	HasClickHandler bool   `json:"hasClickHandler"`
	Inputable       bool   `json:"inputable"`
	CanvasLike      bool   `json:"canvasLike"`
	CursorPointer   bool   `json:"cursorPointer"`
	Rect            Rect   `json:"rect"`
	Visible         bool   `json:"visible"`
	InViewport      bool   `json:"inViewport"`
}

// Kind is the capability class of a marked element, which also decides the
// tag color rendered on the page.
type Kind string

const (
	// KindInput marks elements that accept text input.
	KindInput Kind = "input"

	// KindCanvas marks canvas/svg/media elements whose internals cannot be
	// individually tagged; interaction goes through element-relative clicks.
	KindCanvas Kind = "canvas"

	// KindClickable marks everything else.
	KindClickable Kind = "clickable"
)

// Element is one surviving marked element after selection.
type Element struct {
	ID    int
	Index int
	Kind  Kind
	Tag   string
	Rect  Rect
	Score float64
}

// KindOf classifies a candidate.
func KindOf(c Candidate) Kind {
	if c.Inputable {
		return KindInput
	}
	if c.CanvasLike {
		return KindCanvas
	}
	return KindClickable
}
