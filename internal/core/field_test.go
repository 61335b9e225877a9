package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/slate/internal/layout"
	"github.com/bethropolis/slate/internal/types"
)

func newTestField(t *testing.T, text string) *TextFieldState {
	t.Helper()
	return newTextField(types.Point{X: 10, Y: 20}, text, 1, layout.CellMeasurer{}, 0)
}

func TestEditingSession(t *testing.T) {
	f := newTestField(t, "")

	f.InsertText("Hello", true)
	assert.Equal(t, "Hello", f.Value().Text)
	assert.Equal(t, 5, f.Value().SelEnd)

	f.MoveWordLeft(false)
	assert.Equal(t, 0, f.Value().SelEnd)

	f.InsertText("Say ", false)
	assert.Equal(t, "Say Hello", f.Value().Text)
	assert.Equal(t, 4, f.Value().SelEnd)

	require.True(t, f.Undo())
	assert.Equal(t, "Hello", f.Value().Text)
	assert.Equal(t, 0, f.Value().SelEnd)

	require.True(t, f.Redo())
	assert.Equal(t, "Say Hello", f.Value().Text)
	assert.Equal(t, 4, f.Value().SelEnd)
}

func TestUndoAtBottomSignalsNoOp(t *testing.T) {
	f := newTestField(t, "x")
	assert.False(t, f.Undo())
	assert.False(t, f.Redo())
}

func TestDeleteAtBoundariesSignalNoOp(t *testing.T) {
	f := newTestField(t, "ab")
	f.PlaceCursor(0)
	assert.False(t, f.DeleteBackward())
	f.PlaceCursor(2)
	assert.False(t, f.DeleteForward())
}

func TestContentChangeAdvancesLastModified(t *testing.T) {
	f := newTestField(t, "a")
	f.lastModified = 0
	f.InsertText("b", true)
	assert.Greater(t, f.lastModified, int64(0))
}

func TestSelectionChangeDoesNotAdvanceLastModified(t *testing.T) {
	f := newTestField(t, "abc")
	f.lastModified = 0
	f.MoveLeft(false)
	f.SelectAll()
	assert.Equal(t, int64(0), f.lastModified)
}

func TestLayoutCacheInvalidatedOnEdit(t *testing.T) {
	f := newTestField(t, "ab")
	first := f.Layout()
	assert.Same(t, first, f.Layout(), "layout cached between reads")

	f.InsertText("c", true)
	second := f.Layout()
	assert.NotSame(t, first, second)
	assert.Equal(t, 3.0, second.Size().Width)
}

func TestBoundsEmptyFieldStillTappable(t *testing.T) {
	f := newTestField(t, "")
	b := f.Bounds()
	assert.Greater(t, b.Width(), 0.0)
	assert.True(t, b.Contains(types.Point{X: 10, Y: 20}))
}

func TestPlaceCursorAtSurfacePoint(t *testing.T) {
	f := newTestField(t, "hello") // anchored at (10,20), cell metrics
	f.PlaceCursorAt(types.Point{X: 13.2, Y: 20.5})
	assert.Equal(t, 3, f.Value().SelEnd)
}

func TestSelectWordAtSurfacePoint(t *testing.T) {
	f := newTestField(t, "say hello")
	f.SelectWordAt(types.Point{X: 16, Y: 20.5}) // over "hello"
	assert.Equal(t, "hello", f.SelectedText())
}

func TestHandleDragProducesReversedSelection(t *testing.T) {
	f := newTestField(t, "hello world")
	f.applyValue(f.Value().WithSelection(6, 11), false, false) // "world" selected
	f.SetHandleState(types.HandleStateSelection)

	f.BeginHandleDrag(types.HandleStart)
	require.NotNil(t, f.ActiveHandle())

	// Drag the start handle past the end boundary.
	f.UpdateHandleDrag(types.Point{X: 10 + 11, Y: 20.5})
	v := f.Value()
	assert.Equal(t, 11, v.SelStart, "anchor stays on the old end")
	assert.Equal(t, 11, v.SelEnd)

	f.UpdateHandleDrag(types.Point{X: 10 + 2, Y: 20.5})
	v = f.Value()
	assert.True(t, v.Reversed() || v.Min() == 2)
	assert.Equal(t, 2, v.Min())
	assert.Equal(t, 11, v.Max())

	f.StopDraggingHandle()
	assert.Nil(t, f.ActiveHandle())
	assert.Equal(t, types.HandleStateSelection, f.HandleState())
}

func TestStopDraggingCollapsedSelectionDegradesToCursor(t *testing.T) {
	f := newTestField(t, "hello")
	f.applyValue(f.Value().WithSelection(1, 4), false, false)
	f.SetHandleState(types.HandleStateSelection)

	f.BeginHandleDrag(types.HandleEnd)
	f.UpdateHandleDrag(types.Point{X: 10 + 1, Y: 20.5}) // collapse onto the anchor
	f.StopDraggingHandle()

	assert.Equal(t, types.HandleStateCursor, f.HandleState())
}

func TestUpdateDragWithoutBeginIsNoOp(t *testing.T) {
	f := newTestField(t, "hello")
	before := f.Value()
	f.UpdateHandleDrag(types.Point{X: 12, Y: 20.5})
	f.StopDraggingHandle()
	assert.Equal(t, before, f.Value())
}

func TestDragSplitsTypingRun(t *testing.T) {
	f := newTestField(t, "")
	f.InsertText("ab", true)
	f.BeginHandleDrag(types.HandleCursor)
	f.UpdateHandleDrag(types.Point{X: 10, Y: 20.5})
	f.StopDraggingHandle()
	f.InsertText("cd", true)

	require.True(t, f.Undo())
	assert.Equal(t, "ab", f.Value().Text)
	require.True(t, f.Undo())
	assert.Equal(t, "", f.Value().Text)
}

func TestCompositionCommitsAsOneUndoStep(t *testing.T) {
	f := newTestField(t, "x")

	f.SetComposingText("ni")
	assert.True(t, f.IsComposing())
	assert.Equal(t, "xni", f.Value().Text)
	assert.True(t, f.Value().HasComposition())

	f.SetComposingText("nihao")
	assert.Equal(t, "xnihao", f.Value().Text)

	require.True(t, f.CommitComposition())
	assert.False(t, f.Value().HasComposition())

	require.True(t, f.Undo())
	assert.Equal(t, "x", f.Value().Text, "the whole composition is one undo step")
}

func TestCancelCompositionRestoresBase(t *testing.T) {
	f := newTestField(t, "x")
	f.SetComposingText("abc")
	require.True(t, f.CancelComposition())
	assert.Equal(t, "x", f.Value().Text)
	assert.False(t, f.Undo(), "a cancelled composition records nothing")
}
