package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/image/draw"
)

const elementInfoScript = `(id) => {
	const el = document.querySelector('[data-gaze-id="' + id + '"]');
	if (!el) return null;
	return JSON.stringify({
		tagName: el.tagName.toLowerCase(),
		text: (el.innerText || '').slice(0, 500),
		href: el.getAttribute('href') || '',
		src: el.getAttribute('src') || '',
		alt: el.getAttribute('alt') || '',
		title: el.getAttribute('title') || '',
		placeholder: el.getAttribute('placeholder') || '',
		value: ('value' in el) ? String(el.value).slice(0, 500) : '',
		type: el.getAttribute('type') || '',
	});
}`

// GetElement returns descriptive attributes of a marked element without
// taking a screenshot.
func (m *Manager) GetElement(ctx context.Context, userID string, id int) (*ElementInfo, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	_, frame, err := m.findElement(id)
	if err != nil {
		return nil, err
	}

	res, err := frame.Evaluate(elementInfoScript, id)
	if err != nil {
		return nil, engineErr("inspect", err)
	}
	raw, ok := res.(string)
	if !ok {
		return nil, &NotFoundError{ElementID: id}
	}

	var info ElementInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, engineErr("inspect", err)
	}
	return &info, nil
}

// ScreenshotElement captures a single marked element with the overlay tags
// hidden, so the element appears the way a user would see it.
func (m *Manager) ScreenshotElement(ctx context.Context, userID string, id int) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	el, _, err := m.findElement(id)
	if err != nil {
		return nil, err
	}

	m.setMarksVisible(false)
	defer m.setMarksVisible(true)

	img, err := el.Screenshot(playwright.ElementHandleScreenshotOptions{
		Type:  playwright.ScreenshotTypePng,
		Scale: playwright.ScreenshotScaleCss,
	})
	if err != nil {
		return nil, engineErr("element screenshot", err)
	}

	return &Result{
		Image:  img,
		Status: fmt.Sprintf("captured element %d", id),
	}, nil
}

// setMarksVisible toggles display of the overlay tags in every live frame.
// Failures are tolerated; a frame that cannot run the script simply keeps
// its current state.
func (m *Manager) setMarksVisible(visible bool) {
	script := `(visible) => {
		document.querySelectorAll('.gaze-mark').forEach((el) => {
			el.style.display = visible ? '' : 'none';
		});
	}`
	for _, frame := range m.session.page.Frames() {
		if frame.IsDetached() {
			continue
		}
		if _, err := frame.Evaluate(script, visible); err != nil {
			m.logger.Debugf("mark visibility toggle failed in %s: %v", frame.URL(), err)
		}
	}
}

// Crop captures a rectangular viewport region in CSS pixels, optionally
// upscaled by an integer zoom factor for reading small text. The region is
// clamped to the viewport and zoom to [1, 4].
func (m *Manager) Crop(ctx context.Context, userID string, x, y, w, h float64, zoom int) (*Result, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	if !m.session.active() {
		return nil, engineErr("crop", errNoPage)
	}

	vw := float64(m.opts.ViewportWidth)
	vh := float64(m.opts.ViewportHeight)

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > vw-1 {
		x = vw - 1
	}
	if y > vh-1 {
		y = vh - 1
	}
	if w < 1 || x+w > vw {
		w = vw - x
	}
	if h < 1 || y+h > vh {
		h = vh - y
	}
	if zoom < minCropZoom {
		zoom = minCropZoom
	}
	if zoom > maxCropZoom {
		zoom = maxCropZoom
	}

	img, err := m.session.capture(&playwright.Rect{X: x, Y: y, Width: w, Height: h})
	if err != nil {
		return nil, m.engineFailure("crop", err)
	}

	if zoom > 1 {
		img, err = upscalePNG(img, zoom)
		if err != nil {
			return nil, engineErr("zoom", err)
		}
	}

	return &Result{
		Image:  img,
		Status: fmt.Sprintf("cropped region (%.0f, %.0f) %vx%v at %dx zoom", x, y, w, h, zoom),
	}, nil
}

// upscalePNG enlarges a PNG by an integer factor using Catmull-Rom
// resampling, which keeps text edges readable.
func upscalePNG(data []byte, factor int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
