package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlacesCursorAtEnd(t *testing.T) {
	v := New("hello")
	assert.Equal(t, 5, v.SelStart)
	assert.Equal(t, 5, v.SelEnd)
	assert.True(t, v.Collapsed())
	assert.False(t, v.HasComposition())
}

func TestRuneLenCountsRunesNotBytes(t *testing.T) {
	v := New("héllo")
	assert.Equal(t, 5, v.RuneLen())
	assert.Greater(t, len(v.Text), 5)
}

func TestMinMaxNormalizeReversedSelection(t *testing.T) {
	v := New("hello world").WithSelection(8, 2)
	require.True(t, v.Reversed())
	assert.Equal(t, 2, v.Min())
	assert.Equal(t, 8, v.Max())
	assert.Equal(t, "llo wo", v.Selected())
}

func TestWithSelectionClampsOutOfRange(t *testing.T) {
	v := New("abc").WithSelection(-4, 99)
	assert.Equal(t, 0, v.SelStart)
	assert.Equal(t, 3, v.SelEnd)
}

func TestWithTextDropsComposition(t *testing.T) {
	v := New("abc").WithComposition(1, 3)
	require.True(t, v.HasComposition())

	v = v.WithText("abcd", 4, 4)
	assert.False(t, v.HasComposition())
	assert.Equal(t, "abcd", v.Text)
}

func TestClampRecoversStaleOffsets(t *testing.T) {
	v := TextValue{Text: "ab", SelStart: 10, SelEnd: -1, CompStart: 5, CompEnd: 7}
	v = v.Clamp()
	assert.Equal(t, 2, v.SelStart)
	assert.Equal(t, 0, v.SelEnd)
	assert.Equal(t, 2, v.CompStart)
	assert.Equal(t, 2, v.CompEnd)
}

func TestSelectedOnCollapsedIsEmpty(t *testing.T) {
	assert.Equal(t, "", New("hello").Selected())
}
