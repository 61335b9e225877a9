package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/slate/internal/core"
	"github.com/bethropolis/slate/internal/event"
	"github.com/bethropolis/slate/internal/layout"
	"github.com/bethropolis/slate/internal/types"
)

// manualScheduler hands timer control to the test: nothing fires until the
// test says so, which makes the timer-vs-input races deterministic.
type manualScheduler struct {
	timers []*manualTimer
}

type manualTimer struct {
	d         time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (s *manualScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	t := &manualTimer{d: d, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

// fire runs the most recent live timer, simulating its deadline passing.
func (s *manualScheduler) fire(t *testing.T) {
	t.Helper()
	for i := len(s.timers) - 1; i >= 0; i-- {
		timer := s.timers[i]
		if !timer.cancelled && !timer.fired {
			timer.fired = true
			timer.fn()
			return
		}
	}
	t.Fatal("no live timer to fire")
}

func (s *manualScheduler) liveCount() int {
	n := 0
	for _, timer := range s.timers {
		if !timer.cancelled && !timer.fired {
			n++
		}
	}
	return n
}

type fixture struct {
	fields    *core.FieldManager
	events    *event.Manager
	scheduler *manualScheduler
	c         *Classifier

	menuShown     int
	menuDismissed int
	menuAnchor    types.Point
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		events:    event.NewManager(),
		scheduler: &manualScheduler{},
	}
	fx.fields = core.NewFieldManager(fx.events, layout.CellMeasurer{}, 100)
	handles := core.NewHandleHitTester(fx.fields, 0.4, 1.0)
	fx.c = NewClassifier(fx.fields, handles, fx.events, fx.scheduler, 500*time.Millisecond, 300*time.Millisecond)

	fx.events.Subscribe(event.TypeMenuRequested, func(e event.Event) bool {
		fx.menuShown++
		fx.menuAnchor = e.Data.(event.MenuRequestedData).Anchor
		return false
	})
	fx.events.Subscribe(event.TypeMenuDismissed, func(event.Event) bool {
		fx.menuDismissed++
		return false
	})
	return fx
}

func (fx *fixture) tap(pt types.Point) {
	fx.c.TouchDown(pt)
	fx.c.TouchUp(pt)
}

func TestSingleTapFocusesFieldAndPlacesCursor(t *testing.T) {
	fx := newFixture(t)
	f := fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "hello world")

	fx.tap(types.Point{X: 13.2, Y: 20.5})
	assert.Equal(t, "AwaitingSecondDown", fx.c.State())

	fx.scheduler.fire(t) // double-tap window elapses
	assert.Equal(t, "Idle", fx.c.State())
	assert.Same(t, f, fx.fields.Focused())
	assert.Equal(t, 3, f.Value().SelEnd)
	assert.Equal(t, types.HandleStateCursor, f.HandleState())
	assert.Equal(t, 1, fx.menuDismissed)
	assert.Zero(t, fx.menuShown)
}

func TestSingleTapOnEmptyFieldShowsNoCursorHandle(t *testing.T) {
	fx := newFixture(t)
	f := fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "")

	fx.tap(types.Point{X: 10.4, Y: 20.5})
	fx.scheduler.fire(t)

	assert.Same(t, f, fx.fields.Focused())
	assert.Equal(t, types.HandleStateNone, f.HandleState())
}

func TestSingleTapOnBackgroundClearsFocus(t *testing.T) {
	fx := newFixture(t)
	f := fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "hello")
	fx.fields.RequestFocus(f)

	var background []types.Point
	fx.c.OnBackgroundTap = func(pt types.Point) { background = append(background, pt) }

	fx.tap(types.Point{X: 80, Y: 80})
	fx.scheduler.fire(t)

	assert.Nil(t, fx.fields.Focused())
	require.Len(t, background, 1)
	assert.Equal(t, types.Point{X: 80, Y: 80}, background[0])
}

func TestDoubleTapSelectsWordAtSecondTap(t *testing.T) {
	fx := newFixture(t)
	f := fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "hello world")

	fx.tap(types.Point{X: 11, Y: 20.5})
	fx.tap(types.Point{X: 18, Y: 20.5}) // second tap lands on "world"

	assert.Equal(t, "Idle", fx.c.State())
	assert.Equal(t, "world", f.SelectedText())
	assert.Equal(t, types.HandleStateSelection, f.HandleState())
	assert.Equal(t, 1, fx.menuShown)
	// Menu hangs above the selection start: offset 6 at the field anchor.
	assert.Equal(t, types.Point{X: 16, Y: 20}, fx.menuAnchor)
	assert.Zero(t, fx.scheduler.liveCount(), "no timer survives the double-tap")
}

func TestLongPressSelectsWordAndSwallowsUp(t *testing.T) {
	fx := newFixture(t)
	f := fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "hello world")

	fx.c.TouchDown(types.Point{X: 12, Y: 20.5})
	fx.scheduler.fire(t) // the hold outlasts the long-press timeout
	assert.Equal(t, "LongPressFired", fx.c.State())
	assert.Equal(t, "hello", f.SelectedText())
	assert.Equal(t, types.HandleStateSelection, f.HandleState())
	assert.Equal(t, 1, fx.menuShown)

	dismissedBefore := fx.menuDismissed
	fx.c.TouchUp(types.Point{X: 12, Y: 20.5})
	assert.Equal(t, "Idle", fx.c.State())
	assert.Equal(t, dismissedBefore, fx.menuDismissed, "the swallowed up is not a tap")
	assert.Equal(t, "hello", f.SelectedText())
	assert.Zero(t, fx.scheduler.liveCount())
}

func TestQuickTapDoesNotLongPress(t *testing.T) {
	fx := newFixture(t)
	fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "hello")

	// 50 ms down-up pair: the up cancels the long-press timer before a test
	// could fire it, and the stale callback is inert either way.
	fx.c.TouchDown(types.Point{X: 11, Y: 20.5})
	longPress := fx.scheduler.timers[0]
	fx.c.TouchUp(types.Point{X: 11, Y: 20.5})

	assert.True(t, longPress.cancelled)
	longPress.fn() // a lost race delivering late must do nothing
	assert.Equal(t, "AwaitingSecondDown", fx.c.State())
	assert.Zero(t, fx.menuShown)
}

func TestHandleDragPreemptsTapLogic(t *testing.T) {
	fx := newFixture(t)
	f := fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "hello world")
	fx.fields.RequestFocus(f)
	f.SelectWordAt(types.Point{X: 12, Y: 20.5}) // "hello": [0,5)
	f.SetHandleState(types.HandleStateSelection)

	// Down on the end handle, below offset 5.
	fx.c.TouchDown(types.Point{X: 15, Y: 22})
	assert.Equal(t, "HandleDrag", fx.c.State())
	assert.Zero(t, fx.scheduler.liveCount(), "drags never arm tap timers")

	fx.c.TouchMove(types.Point{X: 21, Y: 20.5})
	assert.Equal(t, "hello world", f.SelectedText())

	fx.c.TouchUp(types.Point{X: 21, Y: 20.5})
	assert.Equal(t, "Idle", fx.c.State())
	assert.Nil(t, f.ActiveHandle())
	assert.Equal(t, types.HandleStateSelection, f.HandleState())
}

func TestCancelAbortsPendingGestureWithoutSideEffects(t *testing.T) {
	fx := newFixture(t)
	f := fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "hello")
	before := f.Value()

	fx.c.TouchDown(types.Point{X: 12, Y: 20.5})
	fx.c.Cancel()
	assert.Equal(t, "Idle", fx.c.State())
	assert.Equal(t, before, f.Value())
	assert.Nil(t, fx.fields.Focused())
	assert.Zero(t, fx.scheduler.liveCount())
}

func TestCancelDuringDragStillStopsTheDrag(t *testing.T) {
	fx := newFixture(t)
	f := fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "hello world")
	f.SelectWordAt(types.Point{X: 12, Y: 20.5})
	f.SetHandleState(types.HandleStateSelection)

	fx.c.TouchDown(types.Point{X: 15, Y: 22})
	require.Equal(t, "HandleDrag", fx.c.State())
	fx.c.TouchMove(types.Point{X: 18, Y: 20.5})

	fx.c.Cancel() // pointer lost
	assert.Equal(t, "Idle", fx.c.State())
	assert.Nil(t, f.ActiveHandle(), "the drag always reaches its terminating stop")
}

func TestLongPressOnBackgroundOnlyDismissesMenu(t *testing.T) {
	fx := newFixture(t)
	fx.fields.AddTextField(types.Point{X: 10, Y: 20}, "hello")

	fx.c.TouchDown(types.Point{X: 90, Y: 90})
	fx.scheduler.fire(t)
	assert.Zero(t, fx.menuShown)
	assert.Equal(t, 1, fx.menuDismissed)
	fx.c.TouchUp(types.Point{X: 90, Y: 90})
	assert.Equal(t, "Idle", fx.c.State())
}
