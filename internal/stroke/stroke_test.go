package stroke

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsCoverSamplesPlusBrush(t *testing.T) {
	s := New([]InputSample{
		{X: 10, Y: 20},
		{X: 30, Y: 5},
		{X: 15, Y: 40},
	}, Brush{Size: 4, Color: "#ff0000"})

	b := s.Bounds()
	assert.Equal(t, 8.0, b.MinX)
	assert.Equal(t, 3.0, b.MinY)
	assert.Equal(t, 32.0, b.MaxX)
	assert.Equal(t, 42.0, b.MaxY)
}

func TestBoundsEmptyStroke(t *testing.T) {
	s := &Stroke{}
	assert.Equal(t, 0.0, s.Bounds().Width())
}

func TestBrushRGBParsesHex(t *testing.T) {
	c := Brush{Color: "#ff8000"}.RGB()
	assert.InDelta(t, 1.0, c.R, 0.01)
	assert.InDelta(t, 0.5, c.G, 0.01)
	assert.InDelta(t, 0.0, c.B, 0.01)
}

func TestBrushRGBFallsBackToBlack(t *testing.T) {
	for _, bad := range []string{"", "red-ish", "#12", "#zzzzzz"} {
		c := Brush{Color: bad}.RGB()
		assert.Equal(t, 0.0, c.R, "color %q", bad)
		assert.Equal(t, 0.0, c.G, "color %q", bad)
		assert.Equal(t, 0.0, c.B, "color %q", bad)
	}
}

func TestStoreReplaceAndClear(t *testing.T) {
	st := NewStore()
	assert.False(t, st.Clear(), "clearing an empty store reports no change")

	st.Add(New(nil, DefaultBrush))
	st.Add(New(nil, DefaultBrush))
	assert.Equal(t, 2, st.Len())

	st.Replace([]*Stroke{New(nil, DefaultBrush)})
	assert.Equal(t, 1, st.Len())

	assert.True(t, st.Clear())
	assert.Equal(t, 0, st.Len())
}
