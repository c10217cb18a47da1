package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// findElement locates a marked element by its numeric ID, searching every
// live frame. IDs are assigned during the marking pass and stay valid until
// the next navigation or marking pass replaces them.
func (m *Manager) findElement(id int) (playwright.ElementHandle, playwright.Frame, error) {
	if !m.session.active() {
		return nil, nil, engineErr("find element", errNoPage)
	}
	selector := fmt.Sprintf(`[data-gaze-id="%d"]`, id)
	for _, frame := range m.session.page.Frames() {
		if frame.IsDetached() {
			continue
		}
		el, err := frame.QuerySelector(selector)
		if err != nil || el == nil {
			continue
		}
		return el, frame, nil
	}
	return nil, nil, &NotFoundError{ElementID: id}
}

// waitAfterAction gives the page time to react to an interaction. When the
// action is likely to trigger loads it additionally waits for network idle,
// tolerating pages that never settle.
func (m *Manager) waitAfterAction(networkIdle bool) {
	time.Sleep(m.opts.PostActionWait)
	if !networkIdle {
		return
	}
	err := m.session.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(networkIdleTimeout.Milliseconds())),
	})
	if err != nil {
		m.logger.Debugf("network idle wait timed out: %v", err)
	}
}

// ClickElement clicks a marked element by ID and returns a fresh marked
// screenshot of the resulting page state.
func (m *Manager) ClickElement(ctx context.Context, userID string, id int) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	el, _, err := m.findElement(id)
	if err != nil {
		return nil, err
	}
	if err := el.Click(); err != nil {
		return nil, engineErr("click", err)
	}
	m.waitAfterAction(true)

	result, err := m.markedScreenshot()
	if err != nil {
		return nil, err
	}
	result.Status = fmt.Sprintf("clicked element %d\n%s", id, result.Status)
	return result, nil
}

// ClickAt clicks at absolute viewport coordinates in CSS pixels. The pointer
// is moved first so hover-revealed targets exist by the time the click lands.
func (m *Manager) ClickAt(ctx context.Context, userID string, x, y float64) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	if !m.session.active() {
		return nil, engineErr("click", errNoPage)
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	mouse := m.session.page.Mouse()
	if err := mouse.Move(x, y); err != nil {
		return nil, engineErr("move", err)
	}
	time.Sleep(pointerSettleDelay)
	if err := mouse.Click(x, y); err != nil {
		return nil, engineErr("click", err)
	}
	m.waitAfterAction(true)

	result, err := m.markedScreenshot()
	if err != nil {
		return nil, err
	}
	result.Status = fmt.Sprintf("clicked at (%.0f, %.0f)\n%s", x, y, result.Status)
	return result, nil
}

// ClickRelative clicks at viewport-relative coordinates, where (0,0) is the
// top-left corner and (1,1) the bottom-right. Values are clamped to [0,1].
func (m *Manager) ClickRelative(ctx context.Context, userID string, rx, ry float64) (*Result, error) {
	rx = clamp01(rx)
	ry = clamp01(ry)
	return m.ClickAt(ctx, userID, rx*float64(m.opts.ViewportWidth), ry*float64(m.opts.ViewportHeight))
}

// ClickInElement clicks at a fractional position inside a marked element's
// bounding box. (0.5, 0.5) is the center.
func (m *Manager) ClickInElement(ctx context.Context, userID string, id int, fx, fy float64) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	el, _, err := m.findElement(id)
	if err != nil {
		return nil, err
	}
	box, err := el.BoundingBox()
	if err != nil || box == nil {
		return nil, engineErr("bounding box", fmt.Errorf("element %d has no bounding box", id))
	}

	fx = clamp01(fx)
	fy = clamp01(fy)
	x := box.X + box.Width*fx
	y := box.Y + box.Height*fy

	mouse := m.session.page.Mouse()
	if err := mouse.Move(x, y); err != nil {
		return nil, engineErr("move", err)
	}
	time.Sleep(pointerSettleDelay)
	if err := mouse.Click(x, y); err != nil {
		return nil, engineErr("click", err)
	}
	m.waitAfterAction(true)

	result, err := m.markedScreenshot()
	if err != nil {
		return nil, err
	}
	result.Status = fmt.Sprintf("clicked in element %d at (%.2f, %.2f)\n%s", id, fx, fy, result.Status)
	return result, nil
}

// InputText writes text into a marked element, falling back through three
// strategies: a direct fill for known inputable elements, click plus
// select-all plus keystrokes for everything focusable, and finally a script
// that sets the value and fires input events for stubborn custom widgets.
func (m *Manager) InputText(ctx context.Context, userID string, id int, text string) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	el, frame, err := m.findElement(id)
	if err != nil {
		return nil, err
	}

	method, err := m.inputInto(el, frame, id, text)
	if err != nil {
		return nil, err
	}
	m.waitAfterAction(false)

	result, err := m.markedScreenshot()
	if err != nil {
		return nil, err
	}
	result.Status = fmt.Sprintf("entered text into element %d via %s\n%s", id, method, result.Status)
	return result, nil
}

func (m *Manager) inputInto(el playwright.ElementHandle, frame playwright.Frame, id int, text string) (InputMethod, error) {
	inputable, _ := el.GetAttribute("data-gaze-inputable")
	if inputable == "true" {
		if err := el.Fill(text); err == nil {
			return InputMethodFill, nil
		}
		m.logger.Debugf("fill failed for element %d, trying keystrokes", id)
	}

	if err := m.typeViaKeystrokes(el, text); err == nil {
		return InputMethodType, nil
	}
	m.logger.Debugf("keystroke input failed for element %d, trying script", id)

	script := `(args) => {
		const el = document.querySelector('[data-gaze-id="' + args.id + '"]');
		if (!el) return false;
		if ('value' in el) {
			el.value = args.text;
		} else if (el.isContentEditable) {
			el.textContent = args.text;
		} else {
			return false;
		}
		el.dispatchEvent(new Event('input', { bubbles: true }));
		el.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	}`
	res, err := frame.Evaluate(script, map[string]interface{}{"id": id, "text": text})
	if err != nil {
		return "", engineErr("input", err)
	}
	if ok, _ := res.(bool); !ok {
		return "", engineErr("input", fmt.Errorf("element %d accepts no text input", id))
	}
	return InputMethodScript, nil
}

func (m *Manager) typeViaKeystrokes(el playwright.ElementHandle, text string) error {
	if err := el.Click(); err != nil {
		return err
	}
	keyboard := m.session.page.Keyboard()
	if err := keyboard.Press("Control+A"); err != nil {
		return err
	}
	return keyboard.Type(text, playwright.KeyboardTypeOptions{
		Delay: playwright.Float(typeDelayMs),
	})
}

// TypeText sends keystrokes to whatever currently holds focus. Useful after
// a click has opened an editor that is not a marked element.
func (m *Manager) TypeText(ctx context.Context, userID, text string) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	if !m.session.active() {
		return nil, engineErr("type", errNoPage)
	}

	err = m.session.page.Keyboard().Type(text, playwright.KeyboardTypeOptions{
		Delay: playwright.Float(typeDelayMs),
	})
	if err != nil {
		return nil, engineErr("type", err)
	}
	m.waitAfterAction(false)

	result, err := m.markedScreenshot()
	if err != nil {
		return nil, err
	}
	result.Status = fmt.Sprintf("typed %d characters\n%s", len([]rune(text)), result.Status)
	return result, nil
}

// Scroll moves the page one viewport in the given direction, or jumps to the
// top or bottom. Valid directions are up, down, top and bottom.
func (m *Manager) Scroll(ctx context.Context, userID, direction string) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	if !m.session.active() {
		return nil, engineErr("scroll", errNoPage)
	}

	var script string
	switch direction {
	case "up":
		script = `() => window.scrollBy(0, -window.innerHeight)`
	case "down":
		script = `() => window.scrollBy(0, window.innerHeight)`
	case "top":
		script = `() => window.scrollTo(0, 0)`
	case "bottom":
		script = `() => window.scrollTo(0, document.body.scrollHeight)`
	default:
		return nil, fmt.Errorf("unknown scroll direction %q (want up, down, top or bottom)", direction)
	}

	if _, err := m.session.page.Evaluate(script); err != nil {
		return nil, engineErr("scroll", err)
	}
	m.waitAfterAction(false)

	result, err := m.markedScreenshot()
	if err != nil {
		return nil, err
	}
	result.Status = fmt.Sprintf("scrolled %s\n%s", direction, result.Status)
	return result, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
