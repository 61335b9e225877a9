// internal/core/drag.go
package core

import (
	"github.com/bethropolis/slate/internal/logger"
	"github.com/bethropolis/slate/internal/types"
)

// A handle drag is one logical operation: BeginHandleDrag, zero or more
// UpdateHandleDrag calls, and always a terminating StopDraggingHandle, even
// on the cancel path when the pointer is lost.

// ActiveHandle returns the handle being dragged, or nil.
func (f *TextFieldState) ActiveHandle() *types.HandleKind {
	return f.activeHandle
}

// BeginHandleDrag starts dragging the given handle. For a selection handle
// the opposite boundary becomes the fixed anchor; dragging across it yields
// a reversed selection rather than a jumping anchor.
func (f *TextFieldState) BeginHandleDrag(kind types.HandleKind) {
	k := kind
	f.activeHandle = &k
	switch kind {
	case types.HandleStart:
		f.dragAnchor = f.val.Max()
	case types.HandleEnd:
		f.dragAnchor = f.val.Min()
	case types.HandleCursor:
		f.dragAnchor = -1
	}
	// A drag interrupts any typing run; edits after it undo separately.
	f.history.CloseMergeRun()
	logger.DebugTagf("field", "Field z=%d begin drag of %v handle", f.zIndex, kind)
}

// UpdateHandleDrag moves the dragged boundary to the offset nearest pt.
// No-op when no drag is active (a move event that raced a cancel).
func (f *TextFieldState) UpdateHandleDrag(pt types.Point) {
	if f.activeHandle == nil {
		return
	}
	local := pt.Sub(f.position)
	offset := f.Layout().HitOffset(local)

	if *f.activeHandle == types.HandleCursor {
		f.PlaceCursor(offset)
		return
	}
	f.applyValue(f.val.WithSelection(f.dragAnchor, offset), false, false)
}

// StopDraggingHandle terminates the drag. A selection collapsed to a point
// degrades the handle state to a plain cursor handle.
func (f *TextFieldState) StopDraggingHandle() {
	if f.activeHandle == nil {
		return
	}
	logger.DebugTagf("field", "Field z=%d stop drag of %v handle", f.zIndex, *f.activeHandle)
	f.activeHandle = nil
	f.dragAnchor = 0
	if f.handleState == types.HandleStateSelection && f.val.Collapsed() {
		f.SetHandleState(types.HandleStateCursor)
	}
}
