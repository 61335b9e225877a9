package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/slate/internal/core"
	"github.com/bethropolis/slate/internal/layout"
	"github.com/bethropolis/slate/internal/stroke"
	"github.com/bethropolis/slate/internal/types"
)

func strokeAt(z int, modified int64) *stroke.Stroke {
	s := stroke.New(nil, stroke.DefaultBrush)
	s.ZIndex = z
	s.LastModified = modified
	return s
}

func TestDrawListOrdersByZIndexThenLastModified(t *testing.T) {
	store := stroke.NewStore()
	store.Add(strokeAt(0, 50)) // legacy stroke, no explicit z
	store.Add(strokeAt(3, 10))

	fm := core.NewFieldManager(nil, layout.CellMeasurer{}, 10)
	fields := []*core.TextFieldState{
		fm.NewLoadedField(types.Point{}, "low", 1, 20),
		fm.NewLoadedField(types.Point{}, "high", 5, 30),
	}
	fm.Replace(fields, true)

	list := BuildDrawList(store, fm)
	require.Len(t, list, 4)
	assert.Equal(t, KindStroke, list[0].Kind)
	assert.Equal(t, 0, list[0].ZIndex)
	assert.Equal(t, "low", list[1].Field.Value().Text)
	assert.Equal(t, 3, list[2].ZIndex)
	assert.Equal(t, "high", list[3].Field.Value().Text)
}

func TestDrawListTieBreaksOnLastModified(t *testing.T) {
	store := stroke.NewStore()
	store.Add(strokeAt(2, 300)) // touched after the field
	store.Add(strokeAt(2, 100))

	fm := core.NewFieldManager(nil, layout.CellMeasurer{}, 10)
	fm.Replace([]*core.TextFieldState{
		fm.NewLoadedField(types.Point{}, "mid", 2, 200),
	}, true)

	list := BuildDrawList(store, fm)
	require.Len(t, list, 3)
	// Most recently touched of the tie paints last, on top.
	assert.Equal(t, int64(100), list[0].LastModified)
	assert.Equal(t, int64(200), list[1].LastModified)
	assert.Equal(t, int64(300), list[2].LastModified)
	assert.Equal(t, KindTextField, list[1].Kind)
}

func TestDrawListStableForEqualKeys(t *testing.T) {
	store := stroke.NewStore()
	a := strokeAt(1, 100)
	b := strokeAt(1, 100)
	store.Add(a)
	store.Add(b)

	list := BuildDrawList(store, nil)
	require.Len(t, list, 2)
	assert.Same(t, a, list[0].Stroke, "fully equal keys keep insertion order")
	assert.Same(t, b, list[1].Stroke)
}

func TestDrawListEmptyInputs(t *testing.T) {
	assert.Empty(t, BuildDrawList(nil, nil))
	assert.Empty(t, BuildDrawList(stroke.NewStore(), core.NewFieldManager(nil, layout.CellMeasurer{}, 10)))
}
