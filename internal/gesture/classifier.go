// internal/gesture/classifier.go
package gesture

import (
	"time"

	"github.com/bethropolis/slate/internal/core"
	"github.com/bethropolis/slate/internal/event"
	"github.com/bethropolis/slate/internal/logger"
	"github.com/bethropolis/slate/internal/types"
)

// state tracks where the classifier is inside one touch sequence.
type state int

const (
	stateIdle state = iota
	stateHandleDrag
	stateAwaitingTapUp      // down received, racing the long-press timer
	stateLongPressFired     // long-press classified, swallow the pending up
	stateAwaitingSecondDown // first tap complete, racing the double-tap timer
	stateSecondDown         // second down received, its up completes a double-tap
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "Idle"
	case stateHandleDrag:
		return "HandleDrag"
	case stateAwaitingTapUp:
		return "AwaitingTapUp"
	case stateLongPressFired:
		return "LongPressFired"
	case stateAwaitingSecondDown:
		return "AwaitingSecondDown"
	case stateSecondDown:
		return "SecondDown"
	}
	return "Unknown"
}

// Classifier disambiguates a touch sequence (down, moves, up, maybe a second
// down) into handle-drag, tap, double-tap, or long-press, and dispatches the
// resulting field operations. One classifier per surface; exactly one gesture
// is active at a time, driven synchronously from the event thread.
type Classifier struct {
	fields    *core.FieldManager
	handles   *core.HandleHitTester
	events    *event.Manager
	scheduler Scheduler

	longPress time.Duration
	doubleTap time.Duration

	// OnBackgroundTap runs after a single tap that hit no field has cleared
	// focus. The surface uses it to create a new field in editing mode.
	OnBackgroundTap func(pt types.Point)

	state    state
	downPt   types.Point
	dragging *core.TextFieldState
	cancel   CancelFunc
	gen      int // invalidates callbacks from a superseded timer
}

// NewClassifier wires a classifier over the field collection.
func NewClassifier(fields *core.FieldManager, handles *core.HandleHitTester, events *event.Manager, scheduler Scheduler, longPress, doubleTap time.Duration) *Classifier {
	return &Classifier{
		fields:    fields,
		handles:   handles,
		events:    events,
		scheduler: scheduler,
		longPress: longPress,
		doubleTap: doubleTap,
		state:     stateIdle,
	}
}

// State is exposed for the host's debug overlay.
func (c *Classifier) State() string { return c.state.String() }

// TouchDown starts or continues a gesture at pt.
func (c *Classifier) TouchDown(pt types.Point) {
	switch c.state {
	case stateAwaitingSecondDown:
		// The second down won the race against the double-tap timer.
		c.stopTimer()
		c.downPt = pt
		c.transition(stateSecondDown)

	case stateIdle:
		c.downPt = pt
		if hit, ok := c.handles.HitTest(pt); ok {
			// Handle drags pre-empt all tap logic.
			c.dragging = hit.Field
			hit.Field.BeginHandleDrag(hit.Kind)
			c.transition(stateHandleDrag)
			return
		}
		c.transition(stateAwaitingTapUp)
		c.startTimer(c.longPress, c.firePress)

	default:
		// A down inside an unfinished gesture is the host's problem
		// (second finger, replayed event); drop it.
		logger.DebugTagf("gesture", "Classifier: unexpected down in %v, ignored", c.state)
	}
}

// TouchMove forwards drag motion; outside a drag it is inert.
func (c *Classifier) TouchMove(pt types.Point) {
	if c.state == stateHandleDrag && c.dragging != nil {
		c.dragging.UpdateHandleDrag(pt)
	}
}

// TouchUp completes the current gesture phase at pt.
func (c *Classifier) TouchUp(pt types.Point) {
	switch c.state {
	case stateHandleDrag:
		c.endDrag()
		c.transition(stateIdle)

	case stateAwaitingTapUp:
		// Up beat the long-press timer; now race the double-tap window.
		c.stopTimer()
		c.transition(stateAwaitingSecondDown)
		tapped := c.downPt
		c.startTimer(c.doubleTap, func() { c.fireSingleTap(tapped) })

	case stateLongPressFired:
		// The long-press already classified; its up produces nothing.
		c.transition(stateIdle)

	case stateSecondDown:
		c.fireDoubleTap(pt)
		c.transition(stateIdle)
	}
}

// Cancel aborts the gesture without side effects: a second finger took over,
// the mode switched away from editing, or the pointer was lost. A drag in
// flight still reaches its terminating stop call.
func (c *Classifier) Cancel() {
	c.stopTimer()
	if c.state == stateHandleDrag {
		c.endDrag()
	}
	c.transition(stateIdle)
}

func (c *Classifier) endDrag() {
	if c.dragging != nil {
		c.dragging.StopDraggingHandle()
		c.dragging = nil
	}
}

// firePress is the long-press timer body: the hold won the race.
func (c *Classifier) firePress() {
	if c.state != stateAwaitingTapUp {
		return
	}
	c.transition(stateLongPressFired)
	logger.DebugTagf("gesture", "Classifier: long-press at (%.0f,%.0f)", c.downPt.X, c.downPt.Y)
	c.selectWordWithMenu(c.downPt)
}

// fireSingleTap is the double-tap timer body: no second tap arrived.
func (c *Classifier) fireSingleTap(pt types.Point) {
	if c.state != stateAwaitingSecondDown {
		return
	}
	c.transition(stateIdle)
	logger.DebugTagf("gesture", "Classifier: single tap at (%.0f,%.0f)", pt.X, pt.Y)

	c.events.Dispatch(event.TypeMenuDismissed, nil)

	f := c.fields.HitTest(pt)
	if f == nil {
		c.fields.RequestFocus(nil)
		if c.OnBackgroundTap != nil {
			c.OnBackgroundTap(pt)
		}
		return
	}
	c.fields.RequestFocus(f)
	f.PlaceCursorAt(pt)
	// The cursor handle only appears when there is text to position within.
	if f.Value().RuneLen() > 0 {
		f.SetHandleState(types.HandleStateCursor)
	} else {
		f.SetHandleState(types.HandleStateNone)
	}
}

// fireDoubleTap classifies on the second pair's up. The word comes from the
// second tap position.
func (c *Classifier) fireDoubleTap(pt types.Point) {
	logger.DebugTagf("gesture", "Classifier: double-tap at (%.0f,%.0f)", pt.X, pt.Y)
	c.selectWordWithMenu(pt)
}

// selectWordWithMenu is the shared tail of long-press and double-tap:
// select the word under pt, show selection handles, raise the menu. On
// background it only dismisses any open menu.
func (c *Classifier) selectWordWithMenu(pt types.Point) {
	f := c.fields.HitTest(pt)
	if f == nil {
		c.events.Dispatch(event.TypeMenuDismissed, nil)
		return
	}
	c.fields.RequestFocus(f)
	f.SelectWordAt(pt)
	f.SetHandleState(types.HandleStateSelection)
	c.events.Dispatch(event.TypeMenuRequested, event.MenuRequestedData{
		Anchor: c.menuAnchor(f),
	})
}

// menuAnchor is the surface point just above the selection start, where the
// host should hang the context menu.
func (c *Classifier) menuAnchor(f *core.TextFieldState) types.Point {
	caret := f.Layout().CaretRect(f.Value().Min())
	return types.Point{X: caret.MinX, Y: caret.MinY}.Add(f.Position())
}

func (c *Classifier) transition(next state) {
	if c.state != next {
		logger.DebugTagf("gesture", "Classifier: %v -> %v", c.state, next)
	}
	c.state = next
}

// startTimer schedules fn guarded by the current generation, so a callback
// from a timer that lost its race is inert even if cancellation raced the
// firing.
func (c *Classifier) startTimer(d time.Duration, fn func()) {
	c.stopTimer()
	gen := c.gen
	c.cancel = c.scheduler.Schedule(d, func() {
		if c.gen != gen {
			return
		}
		fn()
	})
}

func (c *Classifier) stopTimer() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
