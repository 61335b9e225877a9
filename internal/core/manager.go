// internal/core/manager.go
package core

import (
	"github.com/bethropolis/slate/internal/event"
	"github.com/bethropolis/slate/internal/layout"
	"github.com/bethropolis/slate/internal/logger"
	"github.com/bethropolis/slate/internal/types"
)

// FieldManager owns the ordered collection of text fields, arbitrates the
// single focus slot, and hands out z-indices from its monotonic counter.
// The list is creation order; draw order is the compositor's business.
type FieldManager struct {
	fields   []*TextFieldState
	focused  *TextFieldState
	zCounter int

	eventManager *event.Manager
	measurer     layout.Measurer
	maxHistory   int
}

// NewFieldManager creates an empty field manager.
func NewFieldManager(eventManager *event.Manager, m layout.Measurer, maxHistory int) *FieldManager {
	return &FieldManager{
		eventManager: eventManager,
		measurer:     m,
		maxHistory:   maxHistory,
	}
}

// Fields returns the fields in creation order. Callers must not mutate.
func (fm *FieldManager) Fields() []*TextFieldState {
	return fm.fields
}

// Focused returns the focused field, or nil.
func (fm *FieldManager) Focused() *TextFieldState {
	return fm.focused
}

// AddTextField creates a field at position with the next z-index and appends
// it. Focus is not forced; callers decide whether to RequestFocus.
func (fm *FieldManager) AddTextField(position types.Point, initialText string) *TextFieldState {
	fm.zCounter++
	f := newTextField(position, initialText, fm.zCounter, fm.measurer, fm.maxHistory)
	f.onChange = fm.fieldChanged
	fm.fields = append(fm.fields, f)
	logger.DebugTagf("field", "Manager: added field z=%d at (%.0f,%.0f)", f.zIndex, position.X, position.Y)
	fm.notifyFieldsChanged()
	return f
}

// RequestFocus moves the focus slot to field (or nil). When focus actually
// moves away from a field, its editing session has ended: handles clear, the
// typing run closes, and a "fields changed" notification gives the host its
// persistence trigger.
func (fm *FieldManager) RequestFocus(field *TextFieldState) {
	prev := fm.focused
	if prev == field {
		return
	}

	if prev != nil {
		prev.focusRequested = false
		prev.SetHandleState(types.HandleStateNone)
		prev.History().CloseMergeRun()
		if prev.IsComposing() {
			prev.CommitComposition()
		}
	}
	fm.focused = field
	if field != nil {
		field.focusRequested = true
	}

	z := -1
	if field != nil {
		z = field.zIndex
	}
	logger.DebugTagf("field", "Manager: focus -> z=%d", z)
	if fm.eventManager != nil {
		fm.eventManager.Dispatch(event.TypeFocusChanged, event.FocusChangedData{ZIndex: z})
	}
	fm.notifyFieldsChanged()
}

// RemoveTextField deletes the field. A focused field loses focus first so
// the focus slot never points outside the list.
func (fm *FieldManager) RemoveTextField(field *TextFieldState) bool {
	idx := -1
	for i, f := range fm.fields {
		if f == field {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if fm.focused == field {
		fm.RequestFocus(nil)
	}
	fm.fields = append(fm.fields[:idx], fm.fields[idx+1:]...)
	logger.DebugTagf("field", "Manager: removed field z=%d", field.zIndex)
	fm.notifyFieldsChanged()
	return true
}

// ClearTextFields removes every field. Returns true if anything was removed.
func (fm *FieldManager) ClearTextFields() bool {
	if len(fm.fields) == 0 {
		return false
	}
	if fm.focused != nil {
		fm.RequestFocus(nil)
	}
	fm.fields = nil
	logger.DebugTagf("field", "Manager: cleared all fields")
	fm.notifyFieldsChanged()
	return true
}

// HitTest returns the topmost field whose bounds contain pt, or nil.
// Overlapping fields resolve deterministically to the highest z-index.
func (fm *FieldManager) HitTest(pt types.Point) *TextFieldState {
	var best *TextFieldState
	for _, f := range fm.fields {
		if !f.Bounds().Contains(pt) {
			continue
		}
		if best == nil || f.zIndex > best.zIndex {
			best = f
		}
	}
	return best
}

// FieldsTopmostFirst returns the fields sorted by descending z-index.
// Used by handle hit-testing, which must test the top field first.
func (fm *FieldManager) FieldsTopmostFirst() []*TextFieldState {
	out := make([]*TextFieldState, len(fm.fields))
	copy(out, fm.fields)
	// Insertion sort; field counts are small and z is nearly sorted already.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].zIndex > out[j-1].zIndex; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// BringToFront reassigns the next z-index to field. Z-indices are never
// reused, so the counter only moves forward.
func (fm *FieldManager) BringToFront(field *TextFieldState) {
	fm.zCounter++
	field.setZIndex(fm.zCounter)
}

// Replace installs a loaded field collection, clear-then-append. The z
// counter resets to the loaded maximum only when resetCounter is set;
// otherwise it keeps growing so old indices are never handed out again.
func (fm *FieldManager) Replace(fields []*TextFieldState, resetCounter bool) {
	if fm.focused != nil {
		fm.RequestFocus(nil)
	}
	fm.fields = append(fm.fields[:0:0], fields...)

	maxZ := 0
	for _, f := range fm.fields {
		f.onChange = fm.fieldChanged
		if f.zIndex > maxZ {
			maxZ = f.zIndex
		}
	}
	if resetCounter || maxZ > fm.zCounter {
		fm.zCounter = maxZ
	}
	logger.DebugTagf("field", "Manager: replaced fields (%d loaded, zCounter=%d)", len(fm.fields), fm.zCounter)
}

// NewLoadedField builds a field from persisted state without touching the
// collection; the codec uses it, then hands the batch to Replace.
func (fm *FieldManager) NewLoadedField(position types.Point, text string, zIndex int, lastModified int64) *TextFieldState {
	f := newTextField(position, text, zIndex, fm.measurer, fm.maxHistory)
	if lastModified > 0 {
		f.setLastModified(lastModified)
	}
	return f
}

// fieldChanged is every field's observer hook.
func (fm *FieldManager) fieldChanged(f *TextFieldState, contentChanged bool) {
	if contentChanged && fm.eventManager != nil {
		fm.eventManager.Dispatch(event.TypeFieldModified, event.FieldModifiedData{ZIndex: f.zIndex})
	}
}

// notifyFieldsChanged marks the end of an editing session or a structural
// change; the surface layer turns it into a serialized payload for the host.
func (fm *FieldManager) notifyFieldsChanged() {
	if fm.eventManager != nil {
		fm.eventManager.Dispatch(event.TypeFieldsChanged, event.FieldsChangedData{})
	}
}
