package mark

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// The browser-side halves of the pipeline. Both scripts take a single
// JSON-encoded payload argument rather than being assembled by string
// substitution, so the Go side stays typed end to end.

//go:embed scripts/collect.js
var collectScript string

//go:embed scripts/render.js
var renderScript string

// CollectScript returns the candidate collection function source.
func CollectScript() string { return collectScript }

// RenderScript returns the tag rendering function source.
func RenderScript() string { return renderScript }

// CollectParams is the payload for CollectScript.
type CollectParams struct {
	Mode          Mode `json:"mode"`
	MaxCandidates int  `json:"maxCandidates"`
}

// CollectPayload serializes the collection parameters for one pass.
func CollectPayload(cfg Config) (string, error) {
	cfg = cfg.withDefaults()
	raw, err := json.Marshal(CollectParams{
		Mode:          cfg.Mode,
		MaxCandidates: cfg.MaxCandidates,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode collect payload: %w", err)
	}
	return string(raw), nil
}

// RenderInstruction tells the render script which collected element got
// which ID.
type RenderInstruction struct {
	Index int  `json:"index"`
	ID    int  `json:"id"`
	Kind  Kind `json:"kind"`
}

// RenderPayload serializes render instructions for the selected elements.
func RenderPayload(kept []Element) (string, error) {
	instructions := make([]RenderInstruction, 0, len(kept))
	for _, el := range kept {
		instructions = append(instructions, RenderInstruction{
			Index: el.Index,
			ID:    el.ID,
			Kind:  el.Kind,
		})
	}
	raw, err := json.Marshal(instructions)
	if err != nil {
		return "", fmt.Errorf("failed to encode render payload: %w", err)
	}
	return string(raw), nil
}

// ParseCandidates decodes the collection script's return value.
func ParseCandidates(raw string) ([]Candidate, error) {
	var cands []Candidate
	if err := json.Unmarshal([]byte(raw), &cands); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return cands, nil
}
