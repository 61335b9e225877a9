package surface

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/slate/internal/config"
	"github.com/bethropolis/slate/internal/event"
	"github.com/bethropolis/slate/internal/gesture"
	"github.com/bethropolis/slate/internal/layout"
	"github.com/bethropolis/slate/internal/stroke"
	"github.com/bethropolis/slate/internal/types"
)

// immediateScheduler never fires on its own; tap classification in these
// tests is driven by firing the pending callback explicitly.
type recordingScheduler struct {
	pending []func()
}

func (s *recordingScheduler) Schedule(_ time.Duration, fn func()) gesture.CancelFunc {
	i := len(s.pending)
	s.pending = append(s.pending, fn)
	return func() { s.pending[i] = nil }
}

func (s *recordingScheduler) fireLast(t *testing.T) {
	t.Helper()
	for i := len(s.pending) - 1; i >= 0; i-- {
		if fn := s.pending[i]; fn != nil {
			s.pending[i] = nil
			fn()
			return
		}
	}
	t.Fatal("no pending callback")
}

func newTestSurface(t *testing.T) (*Surface, *recordingScheduler) {
	t.Helper()
	cfg := config.NewDefaultConfig().Surface
	cfg.SystemClipboard = false
	sched := &recordingScheduler{}
	s := New(cfg, event.NewManager(), layout.CellMeasurer{}, sched)
	return s, sched
}

func TestClearNotifiesBothStreams(t *testing.T) {
	s, _ := newTestSurface(t)
	var strokeBlobs, fieldBlobs []string
	s.OnStrokesChange = func(b string) { strokeBlobs = append(strokeBlobs, b) }
	s.OnTextFieldsChange = func(b string) { fieldBlobs = append(fieldBlobs, b) }

	s.AddStroke([]stroke.InputSample{{X: 1, Y: 1}}, stroke.DefaultBrush)
	s.Fields().AddTextField(types.Point{X: 5, Y: 5}, "note")
	require.Len(t, strokeBlobs, 1)
	require.Len(t, fieldBlobs, 1)

	s.Clear()
	assert.Zero(t, s.Strokes().Len())
	assert.Empty(t, s.Fields().Fields())
	assert.Contains(t, strokeBlobs[len(strokeBlobs)-1], `"strokes":[]`)
	assert.Contains(t, fieldBlobs[len(fieldBlobs)-1], `"fields":[]`)
}

func TestFieldChangeStreamCoalescesToSessionEnd(t *testing.T) {
	s, _ := newTestSurface(t)
	f := s.Fields().AddTextField(types.Point{}, "")

	var blobs []string
	s.OnTextFieldsChange = func(b string) { blobs = append(blobs, b) }

	s.Fields().RequestFocus(f)
	require.Len(t, blobs, 1)

	f.InsertText("hello", true)
	f.InsertText(" world", true)
	assert.Len(t, blobs, 1, "keystrokes do not hit the change stream")

	s.Fields().RequestFocus(nil)
	require.Len(t, blobs, 2)
	assert.Contains(t, blobs[1], "hello world")
}

func TestRoundTripThroughLoad(t *testing.T) {
	s, _ := newTestSurface(t)
	s.AddStroke([]stroke.InputSample{{X: 1, Y: 2}, {X: 3, Y: 4}}, stroke.Brush{Size: 4, Color: "#00ff00"})
	s.Fields().AddTextField(types.Point{X: 7, Y: 8}, "kept")

	strokesBlob := s.SerializedStrokes()
	fieldsBlob := s.SerializedTextFields()

	other, _ := newTestSurface(t)
	other.LoadStrokes(strokesBlob)
	other.LoadTextFields(fieldsBlob, true)

	require.Equal(t, 1, other.Strokes().Len())
	require.Len(t, other.Fields().Fields(), 1)
	assert.Equal(t, "kept", other.Fields().Fields()[0].Value().Text)

	next := other.Fields().AddTextField(types.Point{}, "")
	assert.Equal(t, 2, next.ZIndex(), "counter resumed from the loaded maximum")
}

func TestLoadMalformedLoadsEmpty(t *testing.T) {
	s, _ := newTestSurface(t)
	s.Fields().AddTextField(types.Point{}, "stale")
	s.LoadTextFields("{not valid}", true)
	assert.Empty(t, s.Fields().Fields())
	s.LoadStrokes("garbage")
	assert.Zero(t, s.Strokes().Len())
}

func TestTouchIgnoredOutsideEditingMode(t *testing.T) {
	s, sched := newTestSurface(t)
	s.Fields().AddTextField(types.Point{X: 0, Y: 0}, "hi")

	s.TouchDown(types.Point{X: 0.5, Y: 0.5})
	s.TouchUp(types.Point{X: 0.5, Y: 0.5})
	assert.Empty(t, sched.pending, "display mode arms no gesture timers")
	assert.Nil(t, s.Fields().Focused())
}

func TestBackgroundTapCreatesFieldInEditingMode(t *testing.T) {
	s, sched := newTestSurface(t)
	s.SetEditing(true)

	s.TouchDown(types.Point{X: 30, Y: 30})
	s.TouchUp(types.Point{X: 30, Y: 30})
	sched.fireLast(t) // double-tap window elapses

	require.Len(t, s.Fields().Fields(), 1)
	f := s.Fields().Fields()[0]
	assert.Equal(t, types.Point{X: 30, Y: 30}, f.Position())
	assert.Same(t, f, s.Fields().Focused())
}

func TestLeavingEditingEndsSession(t *testing.T) {
	s, _ := newTestSurface(t)
	s.SetEditing(true)
	f := s.Fields().AddTextField(types.Point{}, "hi")
	s.Fields().RequestFocus(f)

	var blobs []string
	s.OnTextFieldsChange = func(b string) { blobs = append(blobs, b) }

	s.SetEditing(false)
	assert.Nil(t, s.Fields().Focused())
	require.NotEmpty(t, blobs)
	assert.True(t, strings.Contains(blobs[len(blobs)-1], `"text":"hi"`))
}
