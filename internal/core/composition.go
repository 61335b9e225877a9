// internal/core/composition.go
package core

import (
	"github.com/bethropolis/slate/internal/core/selection"
)

// Composition support for the host input method. While a composition is in
// flight the IME owns the span: intermediate states are visible in the
// TextValue but never recorded; the whole composition commits as one undo
// step.

// IsComposing reports whether an IME composition is in flight.
func (f *TextFieldState) IsComposing() bool {
	return f.compBase != nil
}

// SetComposingText replaces the current composition range (or the selection,
// when starting) with s and marks s as the new composition range.
func (f *TextFieldState) SetComposingText(s string) {
	if f.compBase == nil {
		base := f.val
		f.compBase = &base
	}

	v := f.val
	if v.HasComposition() {
		v = v.WithSelection(v.CompStart, v.CompEnd)
	}
	start := v.Min()
	v = selection.InsertText(v, s)
	v = v.WithComposition(start, start+len([]rune(s)))
	f.applyValue(v, false, false)
}

// CommitComposition makes the composed text permanent: the composition range
// clears and the edit from the pre-composition value records as one
// non-merged undo step.
func (f *TextFieldState) CommitComposition() bool {
	if f.compBase == nil {
		return false
	}
	base := *f.compBase
	f.compBase = nil

	committed := f.val.ClearComposition()
	f.history.RecordChange(base, committed, false)
	f.applyValue(committed, false, false)
	if base.Text != committed.Text {
		f.touch()
		f.notifyChange(true)
	}
	return true
}

// CancelComposition discards the in-flight composition and restores the
// pre-composition value. Nothing is recorded.
func (f *TextFieldState) CancelComposition() bool {
	if f.compBase == nil {
		return false
	}
	base := *f.compBase
	f.compBase = nil
	f.applyValue(base, false, false)
	return true
}
