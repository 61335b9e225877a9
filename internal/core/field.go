// internal/core/field.go
package core

import (
	"time"

	"github.com/bethropolis/slate/internal/core/history"
	"github.com/bethropolis/slate/internal/core/selection"
	"github.com/bethropolis/slate/internal/core/value"
	"github.com/bethropolis/slate/internal/layout"
	"github.com/bethropolis/slate/internal/logger"
	"github.com/bethropolis/slate/internal/types"
)

// TextFieldState is the mutable per-field state: one TextValue, a position,
// a cached layout, draw-order keys, handle/drag state, and one undo manager.
//
// Content is mutated only through methods here so that undo recording and
// change notification stay consistent; external code never assigns fields
// directly.
type TextFieldState struct {
	val          value.TextValue
	position     types.Point
	zIndex       int
	lastModified int64 // epoch ms
	created      int64

	focusRequested bool
	handleState    types.HandleState
	activeHandle   *types.HandleKind
	dragAnchor     int // selection boundary fixed while a handle is dragged

	measurer layout.Measurer
	cache    *layout.Layout // nil = dirty

	history  *history.Manager
	compBase *value.TextValue // value before the in-flight IME composition

	// onChange is the field's observer hook, set by the owning manager.
	// Called after every content, position, or z-order mutation.
	onChange func(f *TextFieldState, contentChanged bool)
}

// newTextField is called by the FieldManager; z-index assignment is its job.
func newTextField(position types.Point, initialText string, zIndex int, m layout.Measurer, maxHistory int) *TextFieldState {
	now := time.Now().UnixMilli()
	return &TextFieldState{
		val:          value.New(initialText),
		position:     position,
		zIndex:       zIndex,
		lastModified: now,
		created:      now,
		measurer:     m,
		history:      history.NewManager(maxHistory),
	}
}

// Value returns the current text snapshot.
func (f *TextFieldState) Value() value.TextValue {
	return f.val
}

// Position returns the field's top-left anchor in surface coordinates.
func (f *TextFieldState) Position() types.Point {
	return f.position
}

// SetPosition moves the field. Position is persisted state, so the
// last-modified stamp advances and observers run.
func (f *TextFieldState) SetPosition(p types.Point) {
	if f.position == p {
		return
	}
	f.position = p
	f.touch()
	f.notifyChange(false)
}

// ZIndex returns the field's draw-order key.
func (f *TextFieldState) ZIndex() int {
	return f.zIndex
}

// setZIndex is used by the manager for bring-to-front. Counter monotonicity
// lives there; the field only records the new key.
func (f *TextFieldState) setZIndex(z int) {
	if f.zIndex == z {
		return
	}
	f.zIndex = z
	f.touch()
	f.notifyChange(false)
}

// LastModified returns the epoch-ms stamp of the last content or order change.
func (f *TextFieldState) LastModified() int64 {
	return f.lastModified
}

// setLastModified restores a persisted stamp on load.
func (f *TextFieldState) setLastModified(ms int64) {
	f.lastModified = ms
}

// FocusRequested reports whether this field currently holds focus.
func (f *TextFieldState) FocusRequested() bool {
	return f.focusRequested
}

// HandleState returns which handles the field shows.
func (f *TextFieldState) HandleState() types.HandleState {
	return f.handleState
}

// SetHandleState switches the visible handles.
func (f *TextFieldState) SetHandleState(s types.HandleState) {
	if f.handleState != s {
		logger.DebugTagf("field", "Field z=%d handle state %v -> %v", f.zIndex, f.handleState, s)
	}
	f.handleState = s
}

// Layout returns the cached layout, rebuilding it when dirty.
func (f *TextFieldState) Layout() *layout.Layout {
	if f.cache == nil {
		f.cache = layout.New(f.val.Text, f.measurer)
	}
	return f.cache
}

// InvalidateLayout drops the cache. Called on style/constraint changes.
func (f *TextFieldState) InvalidateLayout() {
	f.cache = nil
}

// Bounds returns the field's hit rectangle: position plus layout size, with
// a one-line-square minimum so an empty field is still tappable.
func (f *TextFieldState) Bounds() types.Rect {
	size := f.Layout().Size()
	min := f.measurer.LineHeight()
	if size.Width < min {
		size.Width = min
	}
	if size.Height < min {
		size.Height = min
	}
	return types.RectAt(f.position, size)
}

// History exposes the field's undo manager.
func (f *TextFieldState) History() *history.Manager {
	return f.history
}

// touch advances the last-modified stamp.
func (f *TextFieldState) touch() {
	f.lastModified = time.Now().UnixMilli()
}

func (f *TextFieldState) notifyChange(contentChanged bool) {
	if f.onChange != nil {
		f.onChange(f, contentChanged)
	}
}

// applyValue installs a new snapshot. Content changes are recorded in the
// undo stack (unless record is false, e.g. while applying an undo), refresh
// the layout cache, and stamp the field.
func (f *TextFieldState) applyValue(v value.TextValue, record, allowMerge bool) {
	old := f.val
	if old.Equal(v) {
		return
	}
	contentChanged := old.Text != v.Text

	if record && contentChanged {
		f.history.RecordChange(old, v, allowMerge)
	}
	f.val = v
	if contentChanged {
		f.cache = nil
		f.touch()
	}
	f.notifyChange(contentChanged)
}

// --- editing operations (all route through applyValue) ---

// InsertText inserts s at the cursor, replacing any selection. allowMerge
// coalesces the edit into the current typing run; paste and programmatic
// inserts pass false to force a distinct undo step.
func (f *TextFieldState) InsertText(s string, allowMerge bool) {
	f.applyValue(selection.InsertText(f.val, s), true, allowMerge)
}

// DeleteBackward removes the rune before the cursor (or the selection).
// Returns false at offset 0 with no selection.
func (f *TextFieldState) DeleteBackward() bool {
	v, ok := selection.DeleteBackward(f.val)
	if !ok {
		return false
	}
	f.applyValue(v, true, true)
	return true
}

// DeleteForward removes the rune at the cursor (or the selection).
func (f *TextFieldState) DeleteForward() bool {
	v, ok := selection.DeleteForward(f.val)
	if !ok {
		return false
	}
	f.applyValue(v, true, true)
	return true
}

// DeleteToLineStart deletes from the cursor back to its line start. A line
// deletion is a distinct undo step, never merged.
func (f *TextFieldState) DeleteToLineStart() bool {
	v, ok := selection.DeleteToLineStart(f.val)
	if !ok {
		return false
	}
	f.applyValue(v, true, false)
	return true
}

// DeleteSelection removes the selected range, if any.
func (f *TextFieldState) DeleteSelection() bool {
	v, ok := selection.DeleteSelection(f.val)
	if !ok {
		return false
	}
	f.applyValue(v, true, false)
	return true
}

// SelectedText returns the selected text, empty when collapsed.
func (f *TextFieldState) SelectedText() string {
	return f.val.Selected()
}

// MoveLeft, MoveRight, MoveWordLeft, MoveWordRight move the cursor;
// selection-only changes are not undo steps.
func (f *TextFieldState) MoveLeft(extend bool)      { f.applyValue(selection.MoveLeft(f.val, extend), false, false) }
func (f *TextFieldState) MoveRight(extend bool)     { f.applyValue(selection.MoveRight(f.val, extend), false, false) }
func (f *TextFieldState) MoveWordLeft(extend bool)  { f.applyValue(selection.MoveWordLeft(f.val, extend), false, false) }
func (f *TextFieldState) MoveWordRight(extend bool) { f.applyValue(selection.MoveWordRight(f.val, extend), false, false) }

// PlaceCursor collapses the selection at a rune offset.
func (f *TextFieldState) PlaceCursor(offset int) {
	f.applyValue(selection.PlaceCursor(f.val, offset), false, false)
}

// PlaceCursorAt collapses the selection at the offset nearest to a surface
// point.
func (f *TextFieldState) PlaceCursorAt(pt types.Point) {
	local := pt.Sub(f.position)
	f.PlaceCursor(f.Layout().HitOffset(local))
}

// SelectAll selects the whole text.
func (f *TextFieldState) SelectAll() {
	f.applyValue(selection.SelectAll(f.val), false, false)
}

// SelectWordAt selects the word straddling the offset nearest to a surface
// point. Used by double-tap and long-press.
func (f *TextFieldState) SelectWordAt(pt types.Point) {
	local := pt.Sub(f.position)
	offset := f.Layout().HitOffset(local)
	f.applyValue(selection.SelectWordAt(f.val, offset), false, false)
}

// ClearSelection collapses the selection to its upper boundary.
func (f *TextFieldState) ClearSelection() {
	f.applyValue(selection.ClearSelection(f.val), false, false)
}

// Undo restores the previous snapshot. Applying the restored value is not
// itself recorded.
func (f *TextFieldState) Undo() bool {
	v, ok := f.history.Undo(f.val)
	if !ok {
		return false
	}
	f.applyValue(v.Clamp(), false, false)
	return true
}

// Redo reapplies the last undone snapshot.
func (f *TextFieldState) Redo() bool {
	v, ok := f.history.Redo(f.val)
	if !ok {
		return false
	}
	f.applyValue(v.Clamp(), false, false)
	return true
}
