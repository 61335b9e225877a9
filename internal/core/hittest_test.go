package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/slate/internal/layout"
	"github.com/bethropolis/slate/internal/types"
)

// Cell metrics: each handle anchors at (offset, lineBottom+offsetDrop) in
// field-local coordinates, then shifts by the field position.
func newHitTestFixture(t *testing.T) (*FieldManager, *HandleHitTester) {
	t.Helper()
	fm := NewFieldManager(nil, layout.CellMeasurer{}, 100)
	return fm, NewHandleHitTester(fm, 0.4, 1.0)
}

func TestHandleHitSelectionHandles(t *testing.T) {
	fm, ht := newHitTestFixture(t)
	f := fm.AddTextField(types.Point{X: 10, Y: 20}, "hello world")
	f.applyValue(f.Value().WithSelection(2, 5), false, false)
	f.SetHandleState(types.HandleStateSelection)

	// Start handle anchors below offset 2: surface (12, 22).
	hit, ok := ht.HitTest(types.Point{X: 12.2, Y: 22.3})
	require.True(t, ok)
	assert.Same(t, f, hit.Field)
	assert.Equal(t, types.HandleStart, hit.Kind)

	// End handle anchors below offset 5: surface (15, 22).
	hit, ok = ht.HitTest(types.Point{X: 14.7, Y: 21.8})
	require.True(t, ok)
	assert.Equal(t, types.HandleEnd, hit.Kind)

	// Outside the tolerance of both.
	_, ok = ht.HitTest(types.Point{X: 13.5, Y: 22})
	assert.False(t, ok)
}

func TestHandleHitReversedSelectionStillMapsMinToStart(t *testing.T) {
	fm, ht := newHitTestFixture(t)
	f := fm.AddTextField(types.Point{X: 10, Y: 20}, "hello world")
	f.applyValue(f.Value().WithSelection(5, 2), false, false) // reversed
	f.SetHandleState(types.HandleStateSelection)

	hit, ok := ht.HitTest(types.Point{X: 12, Y: 22})
	require.True(t, ok)
	assert.Equal(t, types.HandleStart, hit.Kind, "the start handle tracks the lower boundary")
}

func TestHandleHitCursorHandle(t *testing.T) {
	fm, ht := newHitTestFixture(t)
	f := fm.AddTextField(types.Point{X: 10, Y: 20}, "hello")
	f.PlaceCursor(3)
	f.SetHandleState(types.HandleStateCursor)

	hit, ok := ht.HitTest(types.Point{X: 13.3, Y: 22.1})
	require.True(t, ok)
	assert.Equal(t, types.HandleCursor, hit.Kind)

	f.SetHandleState(types.HandleStateNone)
	_, ok = ht.HitTest(types.Point{X: 13.3, Y: 22.1})
	assert.False(t, ok, "hidden handles are not hittable")
}

func TestHandleHitPrefersTopmostField(t *testing.T) {
	fm, ht := newHitTestFixture(t)
	under := fm.AddTextField(types.Point{X: 10, Y: 20}, "hello")
	over := fm.AddTextField(types.Point{X: 10, Y: 20}, "hello")
	for _, f := range []*TextFieldState{under, over} {
		f.PlaceCursor(2)
		f.SetHandleState(types.HandleStateCursor)
	}

	hit, ok := ht.HitTest(types.Point{X: 12, Y: 22})
	require.True(t, ok)
	assert.Same(t, over, hit.Field)
}
