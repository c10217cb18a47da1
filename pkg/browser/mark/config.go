package mark

// Mode controls how aggressively candidates are collected.
type Mode string

const (
	// ModeMinimal collects only semantically interactive elements.
	ModeMinimal Mode = "minimal"

	// ModeBalanced additionally collects pointer-cursor elements, filtered
	// to suppress whole-page containers.
	ModeBalanced Mode = "balanced"

	// ModeAll collects every pointer-cursor element without the balanced
	// filters.
	ModeAll Mode = "all"
)

// ValidMode reports whether m is a recognized marking mode.
func ValidMode(m Mode) bool {
	switch m {
	case ModeMinimal, ModeBalanced, ModeAll:
		return true
	}
	return false
}

// Default tuning values, shared with pkg/config.
const (
	DefaultMaxMarks      = 80
	DefaultMinArea       = 400.0 // 20x20 px
	DefaultIoUThreshold  = 0.6
	DefaultContainMargin = 5.0
	defaultMaxCandidates = 600
)

// Config tunes one marking pass.
type Config struct {
	// Mode selects the collection strategy.
	Mode Mode

	// MaxMarks caps the number of surviving elements per frame.
	MaxMarks int

	// MinArea discards candidates below this area in px².
	MinArea float64

	// IoUThreshold is the overlap ratio above which the lower-scored of two
	// elements is suppressed.
	IoUThreshold float64

	// ContainMargin is the score margin by which a geometrically contained
	// (or containing) element must beat an already-kept element to survive.
	// Heuristic; tunable, not load-bearing.
	ContainMargin float64

	// ViewportWidth and ViewportHeight bound the "reasonable area" scoring
	// bonus and the balanced-mode container filter.
	ViewportWidth  int
	ViewportHeight int

	// MaxCandidates bounds how many raw candidates the collection script
	// reports, keeping the payload finite on pathological pages.
	MaxCandidates int
}

func (c Config) withDefaults() Config {
	if !ValidMode(c.Mode) {
		c.Mode = ModeBalanced
	}
	if c.MaxMarks <= 0 {
		c.MaxMarks = DefaultMaxMarks
	}
	if c.MinArea <= 0 {
		c.MinArea = DefaultMinArea
	}
	if c.IoUThreshold <= 0 || c.IoUThreshold > 1 {
		c.IoUThreshold = DefaultIoUThreshold
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 1280
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = 720
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = defaultMaxCandidates
	}
	return c
}
