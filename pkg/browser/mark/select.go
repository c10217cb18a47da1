package mark

import "sort"

// Select runs the per-frame selection pipeline over raw candidates: filter,
// score, NMS, truncate, then assign contiguous IDs starting at offset. The
// returned elements are in ID order, which is also descending score order.
//
// IDs assigned in one call are exactly {offset, ..., offset+n-1}; the caller
// threads a running offset across frames to keep one pass globally unique.
func Select(cands []Candidate, cfg Config, offset int) []Element {
	cfg = cfg.withDefaults()

	scored := make([]Element, 0, len(cands))
	for _, c := range cands {
		if !eligible(c, cfg) {
			continue
		}
		scored = append(scored, Element{
			Index: c.Index,
			Kind:  KindOf(c),
			Tag:   c.Tag,
			Rect:  c.Rect,
			Score: Score(c, cfg),
		})
	}

	// Descending score; ties broken by collection order for determinism.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Index < scored[j].Index
	})

	kept := suppress(scored, cfg)

	if len(kept) > cfg.MaxMarks {
		kept = kept[:cfg.MaxMarks]
	}

	for i := range kept {
		kept[i].ID = offset + i
	}
	return kept
}

// eligible applies the pre-scoring filters: visible, at least partially in
// the viewport, and above the minimum taggable area.
func eligible(c Candidate, cfg Config) bool {
	if !c.Visible || !c.InViewport {
		return false
	}
	return c.Rect.Area() >= cfg.MinArea
}
