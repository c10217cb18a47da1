package browser

import (
	"fmt"
	"time"

	"github.com/entrhq/gaze/pkg/browser/mark"
)

// PassReport is the outcome of one cross-frame marking pass. Frame failures
// (detached or inaccessible sub-frames) are recorded, not fatal: the pass
// succeeds as long as at least one frame could be processed.
type PassReport struct {
	Elements    []mark.Element
	FrameErrors []FrameError
}

// Total returns the number of elements marked across all frames.
func (r *PassReport) Total() int {
	return len(r.Elements)
}

// markAll runs the marking pipeline over the main frame and every sub-frame
// with a running ID offset, so one pass yields a globally unique, contiguous
// ID space starting at zero.
func (m *Manager) markAll() (*PassReport, error) {
	cfg := m.opts.markConfig()

	collectPayload, err := mark.CollectPayload(cfg)
	if err != nil {
		return nil, err
	}

	report := &PassReport{}
	offset := 0
	attempted := 0

	for _, frame := range m.session.page.Frames() {
		if frame.IsDetached() {
			continue
		}
		attempted++

		elements, err := markFrame(frame, cfg, collectPayload, offset)
		if err != nil {
			m.logger.Debugf("failed to mark frame %s: %v", frame.URL(), err)
			report.FrameErrors = append(report.FrameErrors, FrameError{
				FrameURL: frame.URL(),
				Err:      err,
			})
			continue
		}

		report.Elements = append(report.Elements, elements...)
		offset += len(elements)
	}

	if attempted > 0 && len(report.FrameErrors) == attempted {
		return nil, engineErr("mark", fmt.Errorf("all %d frames failed; first: %w",
			attempted, &report.FrameErrors[0]))
	}

	return report, nil
}

// frameEvaluator is the slice of the engine's frame surface the marking
// pass needs; satisfied by playwright.Frame.
type frameEvaluator interface {
	Evaluate(expression string, options ...interface{}) (interface{}, error)
}

// markFrame executes one frame's collect/select/render cycle: the collect
// script clears the previous pass and reports raw candidates, selection runs
// engine-agnostically in Go, and the render script stamps IDs and draws tags
// for the survivors.
func markFrame(frame frameEvaluator, cfg mark.Config, collectPayload string, offset int) ([]mark.Element, error) {
	raw, err := frame.Evaluate(mark.CollectScript(), collectPayload)
	if err != nil {
		return nil, fmt.Errorf("candidate collection failed: %w", err)
	}
	encoded, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("candidate collection returned %T, want string", raw)
	}

	cands, err := mark.ParseCandidates(encoded)
	if err != nil {
		return nil, err
	}

	kept := mark.Select(cands, cfg, offset)
	if len(kept) == 0 {
		return nil, nil
	}

	renderPayload, err := mark.RenderPayload(kept)
	if err != nil {
		return nil, err
	}
	if _, err := frame.Evaluate(mark.RenderScript(), renderPayload); err != nil {
		return nil, fmt.Errorf("tag rendering failed: %w", err)
	}

	return kept, nil
}

// markedScreenshot runs a full marking pass and captures the page, the
// standard tail of every state-changing operation.
func (m *Manager) markedScreenshot() (*Result, error) {
	if !m.session.active() {
		return nil, engineErr("screenshot", fmt.Errorf("browser not initialized"))
	}

	report, err := m.markAll()
	if err != nil {
		return nil, err
	}

	// Let the tag overlays paint before capturing.
	time.Sleep(renderSettleDelay)

	image, err := m.session.capture(nil)
	if err != nil {
		return nil, m.engineFailure("screenshot", err)
	}

	status := fmt.Sprintf("marked %d interactive elements (viewport %dx%d)",
		report.Total(), m.opts.ViewportWidth, m.opts.ViewportHeight)
	if n := len(report.FrameErrors); n > 0 {
		status += fmt.Sprintf("; %d frame(s) skipped", n)
	}

	return &Result{Image: image, Status: status}, nil
}
