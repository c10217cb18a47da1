package browser

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/gaze/pkg/browser/mark"
)

// fakeFrame records the scripts and payloads it was asked to evaluate and
// plays back canned responses.
type fakeFrame struct {
	collectResult interface{}
	collectErr    error
	renderErr     error

	collectPayload string
	renderPayload  string
	renderCalled   bool
}

func (f *fakeFrame) Evaluate(expression string, options ...interface{}) (interface{}, error) {
	payload := ""
	if len(options) > 0 {
		payload, _ = options[0].(string)
	}

	if expression == mark.CollectScript() {
		f.collectPayload = payload
		return f.collectResult, f.collectErr
	}
	f.renderCalled = true
	f.renderPayload = payload
	return float64(0), f.renderErr
}

func encodeCandidates(t *testing.T, cands []mark.Candidate) string {
	t.Helper()
	data, err := json.Marshal(cands)
	require.NoError(t, err)
	return string(data)
}

func visibleCandidate(index int, x, y float64) mark.Candidate {
	return mark.Candidate{
		Index:      index,
		Tag:        "a",
		Rect:       mark.Rect{X: x, Y: y, W: 120, H: 40},
		Visible:    true,
		InViewport: true,
	}
}

func testMarkConfig() mark.Config {
	return mark.Config{
		Mode:           mark.ModeBalanced,
		ViewportWidth:  1280,
		ViewportHeight: 720,
	}
}

func TestMarkFrameAssignsOffsetIDs(t *testing.T) {
	frame := &fakeFrame{
		collectResult: encodeCandidates(t, []mark.Candidate{
			visibleCandidate(0, 10, 10),
			visibleCandidate(1, 10, 200),
		}),
	}

	kept, err := markFrame(frame, testMarkConfig(), "payload", 7)
	require.NoError(t, err)
	require.Len(t, kept, 2)

	assert.Equal(t, 7, kept[0].ID)
	assert.Equal(t, 8, kept[1].ID)
	assert.True(t, frame.renderCalled)
	assert.Equal(t, "payload", frame.collectPayload)

	// The render payload carries exactly the kept IDs.
	var instructions []mark.RenderInstruction
	require.NoError(t, json.Unmarshal([]byte(frame.renderPayload), &instructions))
	require.Len(t, instructions, 2)
	assert.Equal(t, 7, instructions[0].ID)
}

func TestMarkFrameNoCandidatesSkipsRender(t *testing.T) {
	frame := &fakeFrame{collectResult: "[]"}

	kept, err := markFrame(frame, testMarkConfig(), "payload", 0)
	require.NoError(t, err)
	assert.Empty(t, kept)
	assert.False(t, frame.renderCalled)
}

func TestMarkFrameCollectFailure(t *testing.T) {
	frame := &fakeFrame{collectErr: errors.New("frame navigated away")}

	_, err := markFrame(frame, testMarkConfig(), "payload", 0)
	assert.Error(t, err)
	assert.False(t, frame.renderCalled)
}

func TestMarkFrameNonStringCollectResult(t *testing.T) {
	frame := &fakeFrame{collectResult: 42}

	_, err := markFrame(frame, testMarkConfig(), "payload", 0)
	assert.Error(t, err)
}

func TestMarkFrameRenderFailure(t *testing.T) {
	frame := &fakeFrame{
		collectResult: encodeCandidates(t, []mark.Candidate{visibleCandidate(0, 10, 10)}),
		renderErr:     errors.New("execution context destroyed"),
	}

	_, err := markFrame(frame, testMarkConfig(), "payload", 0)
	assert.Error(t, err)
}
