// Package surface is the annotation surface facade the host embeds: one
// stroke collection and one text field collection over a shared drawing
// area, with gesture classification, compositing, and persistence entry
// points. The host drives it synchronously from its event loop.
package surface

import (
	"time"

	"github.com/bethropolis/slate/internal/codec"
	"github.com/bethropolis/slate/internal/compositor"
	"github.com/bethropolis/slate/internal/config"
	"github.com/bethropolis/slate/internal/core"
	"github.com/bethropolis/slate/internal/event"
	"github.com/bethropolis/slate/internal/gesture"
	"github.com/bethropolis/slate/internal/layout"
	"github.com/bethropolis/slate/internal/logger"
	"github.com/bethropolis/slate/internal/stroke"
	"github.com/bethropolis/slate/internal/types"
)

// Surface owns the surface state and wires the internal event bus to the
// host's persistence callbacks.
type Surface struct {
	cfg    config.SurfaceConfig
	events *event.Manager

	strokes    *stroke.Store
	fields     *core.FieldManager
	handles    *core.HandleHitTester
	classifier *gesture.Classifier
	clipboard  *core.Clipboard

	editing bool

	// OnStrokesChange fires when a stroke gesture completes or on clear,
	// carrying the serialized collection. OnTextFieldsChange fires when an
	// editing session ends or on add/remove/clear, never per keystroke.
	OnStrokesChange    func(serialized string)
	OnTextFieldsChange func(serialized string)
}

// New builds a surface. The scheduler supplies the gesture timers; hosts
// pass one that posts back onto their event loop.
func New(cfg config.SurfaceConfig, events *event.Manager, m layout.Measurer, scheduler gesture.Scheduler) *Surface {
	s := &Surface{
		cfg:     cfg,
		events:  events,
		strokes: stroke.NewStore(),
	}
	s.fields = core.NewFieldManager(events, m, cfg.MaxHistory)
	s.handles = core.NewHandleHitTester(s.fields, cfg.HandleTolerance, cfg.HandleOffset)
	s.classifier = gesture.NewClassifier(
		s.fields, s.handles, events, scheduler,
		time.Duration(cfg.LongPressMs)*time.Millisecond,
		time.Duration(cfg.DoubleTapMs)*time.Millisecond,
	)
	s.classifier.OnBackgroundTap = s.backgroundTapped
	s.clipboard = core.NewClipboard(cfg.SystemClipboard)

	events.Subscribe(event.TypeFieldsChanged, func(event.Event) bool {
		if s.OnTextFieldsChange != nil {
			s.OnTextFieldsChange(s.SerializedTextFields())
		}
		return false
	})
	events.Subscribe(event.TypeStrokesChanged, func(event.Event) bool {
		if s.OnStrokesChange != nil {
			s.OnStrokesChange(s.SerializedStrokes())
		}
		return false
	})
	return s
}

// Fields exposes the field collection.
func (s *Surface) Fields() *core.FieldManager { return s.fields }

// Strokes exposes the stroke collection.
func (s *Surface) Strokes() *stroke.Store { return s.strokes }

// Clipboard exposes the surface clipboard.
func (s *Surface) Clipboard() *core.Clipboard { return s.clipboard }

// Editing reports whether the surface accepts text-editing gestures.
func (s *Surface) Editing() bool { return s.editing }

// SetEditing toggles display-only vs editing. Leaving editing aborts any
// gesture in flight and ends the editing session.
func (s *Surface) SetEditing(editing bool) {
	if s.editing == editing {
		return
	}
	s.editing = editing
	if !editing {
		s.classifier.Cancel()
		s.fields.RequestFocus(nil)
		s.events.Dispatch(event.TypeMenuDismissed, nil)
	}
	logger.Infof("Surface: editing=%v", editing)
	s.events.Dispatch(event.TypeModeChanged, event.ModeChangedData{Editing: editing})
}

// --- touch input (editing mode only; ink capture is the host's) ---

func (s *Surface) TouchDown(pt types.Point) {
	if s.editing {
		s.classifier.TouchDown(pt)
	}
}

func (s *Surface) TouchMove(pt types.Point) {
	if s.editing {
		s.classifier.TouchMove(pt)
	}
}

func (s *Surface) TouchUp(pt types.Point) {
	if s.editing {
		s.classifier.TouchUp(pt)
	}
}

func (s *Surface) CancelGesture() {
	s.classifier.Cancel()
}

// GestureState is exposed for the host's debug overlay.
func (s *Surface) GestureState() string { return s.classifier.State() }

// backgroundTapped runs after a single tap on empty surface has cleared
// focus: in editing mode it starts a new field there.
func (s *Surface) backgroundTapped(pt types.Point) {
	if !s.editing {
		return
	}
	f := s.fields.AddTextField(pt, "")
	s.fields.RequestFocus(f)
}

// AddStroke records a completed stroke-authoring gesture.
func (s *Surface) AddStroke(samples []stroke.InputSample, brush stroke.Brush) *stroke.Stroke {
	st := stroke.New(samples, brush)
	s.strokes.Add(st)
	s.notifyStrokesChanged()
	return st
}

// DrawList returns the z-ordered paint sequence over both collections.
func (s *Surface) DrawList() []compositor.CanvasElement {
	return compositor.BuildDrawList(s.strokes, s.fields)
}

// --- persistence commands (synchronous; debouncing is the host's) ---

// Clear empties both collections and notifies both change streams.
func (s *Surface) Clear() {
	s.strokes.Clear()
	s.fields.ClearTextFields()
	s.notifyStrokesChanged()
	s.events.Dispatch(event.TypeFieldsChanged, event.FieldsChangedData{})
}

// LoadStrokes decodes and replaces the stroke collection. Malformed data
// loads empty.
func (s *Surface) LoadStrokes(data string) {
	s.strokes.Replace(codec.DecodeStrokes(data))
}

// LoadTextFields decodes and replaces the field collection. resetCounter
// rewinds the z-index counter to the loaded maximum; without it the counter
// only ever moves forward.
func (s *Surface) LoadTextFields(data string, resetCounter bool) {
	fields := codec.DecodeTextFields(data, s.fields)
	s.fields.Replace(fields, resetCounter)
}

// SerializedStrokes encodes the current stroke collection. The result
// reflects all edits applied before the call returns.
func (s *Surface) SerializedStrokes() string {
	return codec.EncodeStrokes(s.strokes)
}

// SerializedTextFields encodes the current field collection.
func (s *Surface) SerializedTextFields() string {
	return codec.EncodeTextFields(s.fields)
}

func (s *Surface) notifyStrokesChanged() {
	s.events.Dispatch(event.TypeStrokesChanged, event.StrokesChangedData{})
}
