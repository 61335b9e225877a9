package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// All tests run against the internal register (system=false) so they do not
// depend on an OS clipboard being present.

func TestClipboardCopyPaste(t *testing.T) {
	cb := NewClipboard(false)
	f := newTestField(t, "hello world")

	f.applyValue(f.Value().WithSelection(0, 5), false, false)
	require.True(t, cb.Copy(f))
	assert.Equal(t, "hello world", f.Value().Text, "copy leaves the text alone")

	f.PlaceCursor(11)
	require.True(t, cb.Paste(f))
	assert.Equal(t, "hello worldhello", f.Value().Text)
	assert.Equal(t, 16, f.Value().SelEnd)
}

func TestClipboardCopyWithoutSelection(t *testing.T) {
	cb := NewClipboard(false)
	f := newTestField(t, "hello")
	f.PlaceCursor(2)
	assert.False(t, cb.Copy(f))
	assert.False(t, cb.Cut(f))
}

func TestClipboardCut(t *testing.T) {
	cb := NewClipboard(false)
	f := newTestField(t, "hello world")
	f.applyValue(f.Value().WithSelection(5, 11), false, false)

	require.True(t, cb.Cut(f))
	assert.Equal(t, "hello", f.Value().Text)
	assert.Equal(t, 5, f.Value().SelEnd)

	require.True(t, f.Undo())
	assert.Equal(t, "hello world", f.Value().Text)
}

func TestClipboardPasteReplacesSelection(t *testing.T) {
	cb := NewClipboard(false)
	f := newTestField(t, "say hi")
	f.applyValue(f.Value().WithSelection(4, 6), false, false)
	cb.Copy(f) // register = "hi"

	f.applyValue(f.Value().WithSelection(0, 3), false, false)
	require.True(t, cb.Paste(f))
	assert.Equal(t, "hi hi", f.Value().Text)
}

func TestClipboardPasteEmpty(t *testing.T) {
	cb := NewClipboard(false)
	f := newTestField(t, "hello")
	assert.False(t, cb.Paste(f))
}
