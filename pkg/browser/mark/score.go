package mark

import "strings"

// Base scores by tag class. Interactive controls rank highest, generic
// media lowest, so NMS keeps the control when a link wraps an image or a
// div overlays a button.
const (
	scoreControl    = 60.0 // input, textarea, select, button
	scoreLink       = 55.0
	scoreEditable   = 52.0
	scoreDisclosure = 45.0 // details/summary
	scoreGeneric    = 35.0 // pointer-cursor or handler-bearing elements
	scoreMedia      = 28.0 // video/audio
	scoreCanvas     = 25.0 // canvas/svg
	scoreImage      = 20.0
)

// Scoring bonuses.
const (
	bonusRole         = 10.0
	bonusShortText    = 8.0
	bonusInputable    = 8.0
	bonusClickHandler = 7.0
	bonusAriaLabel    = 6.0
	bonusTabIndex     = 5.0
	bonusArea         = 5.0

	shortTextLimit = 50
)

var controlTags = map[string]bool{
	"input":    true,
	"textarea": true,
	"select":   true,
	"button":   true,
	"option":   true,
}

// ariaInteractiveRoles mirror the strong-interaction tier of collection.
var ariaInteractiveRoles = map[string]bool{
	"button":    true,
	"link":      true,
	"checkbox":  true,
	"radio":     true,
	"tab":       true,
	"menuitem":  true,
	"combobox":  true,
	"option":    true,
	"switch":    true,
	"slider":    true,
	"textbox":   true,
	"searchbox": true,
}

func baseScore(c Candidate) float64 {
	switch strings.ToLower(c.Tag) {
	case "input", "textarea", "select", "button", "option":
		return scoreControl
	case "a":
		return scoreLink
	case "summary", "details":
		return scoreDisclosure
	case "video", "audio":
		return scoreMedia
	case "canvas", "svg":
		return scoreCanvas
	case "img":
		return scoreImage
	}
	if c.Inputable {
		return scoreEditable
	}
	return scoreGeneric
}

// Score rates one candidate. Higher scores survive NMS.
func Score(c Candidate, cfg Config) float64 {
	s := baseScore(c)

	if ariaInteractiveRoles[strings.ToLower(c.Role)] {
		s += bonusRole
	}

	text := strings.TrimSpace(c.Text)
	if text != "" && len(text) <= shortTextLimit {
		s += bonusShortText
	}
	if strings.TrimSpace(c.AriaLabel) != "" {
		s += bonusAriaLabel
	}
	if c.TabIndex >= 0 {
		s += bonusTabIndex
	}
	if c.HasClickHandler {
		s += bonusClickHandler
	}
	if c.Inputable {
		s += bonusInputable
	}
	if reasonableArea(c.Rect, cfg) {
		s += bonusArea
	}

	return s
}

// reasonableArea is true for elements that are neither degenerate nor
// page-spanning: at least 4x the minimum taggable area, at most 30% of the
// viewport.
func reasonableArea(r Rect, cfg Config) bool {
	area := r.Area()
	viewport := float64(cfg.ViewportWidth) * float64(cfg.ViewportHeight)
	return area >= 4*cfg.MinArea && area <= 0.3*viewport
}
