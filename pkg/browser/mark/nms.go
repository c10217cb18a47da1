package mark

// suppress applies greedy non-maximum suppression: candidates are visited in
// descending score order and dropped when they overlap an already-kept
// element above the IoU threshold, or when one geometrically contains the
// other and the candidate does not beat the kept element's score by
// ContainMargin.
func suppress(scored []Element, cfg Config) []Element {
	kept := make([]Element, 0, len(scored))

	for _, cand := range scored {
		if survives(cand, kept, cfg) {
			kept = append(kept, cand)
		}
	}
	return kept
}

func survives(cand Element, kept []Element, cfg Config) bool {
	for _, k := range kept {
		if IoU(cand.Rect, k.Rect) > cfg.IoUThreshold {
			return false
		}
		if k.Rect.Contains(cand.Rect) || cand.Rect.Contains(k.Rect) {
			if cand.Score <= k.Score+cfg.ContainMargin {
				return false
			}
		}
	}
	return true
}
