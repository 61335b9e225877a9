// Package value defines the immutable text-field snapshot shared by the
// selection engine, the undo stack, and the field state.
package value

import "unicode/utf8"

// NoComposition marks an absent IME composition boundary.
const NoComposition = -1

// TextValue is an immutable snapshot of a field's text plus selection and
// optional composition range. All offsets are rune indices into Text.
//
// SelStart > SelEnd is a valid "reversed" selection; it occurs while a
// selection handle is dragged across the other one. Consumers that need a
// normalized range use Min/Max instead of reading the fields directly.
type TextValue struct {
	Text      string
	SelStart  int
	SelEnd    int
	CompStart int // NoComposition when the host IME owns no text
	CompEnd   int
}

// New creates a TextValue with a collapsed selection at the end of text.
func New(text string) TextValue {
	n := utf8.RuneCountInString(text)
	return TextValue{
		Text:      text,
		SelStart:  n,
		SelEnd:    n,
		CompStart: NoComposition,
		CompEnd:   NoComposition,
	}
}

// RuneLen returns the length of Text in runes.
func (v TextValue) RuneLen() int {
	return utf8.RuneCountInString(v.Text)
}

// Min returns the lower selection boundary.
func (v TextValue) Min() int {
	if v.SelStart < v.SelEnd {
		return v.SelStart
	}
	return v.SelEnd
}

// Max returns the upper selection boundary.
func (v TextValue) Max() int {
	if v.SelStart > v.SelEnd {
		return v.SelStart
	}
	return v.SelEnd
}

// Collapsed reports whether the selection is a bare cursor.
func (v TextValue) Collapsed() bool {
	return v.SelStart == v.SelEnd
}

// Reversed reports whether the selection anchor sits after the active end.
func (v TextValue) Reversed() bool {
	return v.SelStart > v.SelEnd
}

// HasComposition reports whether the host IME owns an uncommitted span.
func (v TextValue) HasComposition() bool {
	return v.CompStart != NoComposition && v.CompEnd != NoComposition
}

// Selected returns the text between the normalized selection boundaries.
func (v TextValue) Selected() string {
	if v.Collapsed() {
		return ""
	}
	runes := []rune(v.Text)
	return string(runes[v.Min():v.Max()])
}

// WithSelection returns a copy with the given selection, clamped to the text.
// Start/end order is preserved so reversed selections survive.
func (v TextValue) WithSelection(start, end int) TextValue {
	n := v.RuneLen()
	v.SelStart = clamp(start, 0, n)
	v.SelEnd = clamp(end, 0, n)
	return v
}

// WithCursor returns a copy with a collapsed selection at offset.
func (v TextValue) WithCursor(offset int) TextValue {
	return v.WithSelection(offset, offset)
}

// WithText returns a copy holding new text and selection. Any composition
// range is dropped; a committed edit supersedes IME-owned input.
func (v TextValue) WithText(text string, selStart, selEnd int) TextValue {
	v.Text = text
	v.CompStart = NoComposition
	v.CompEnd = NoComposition
	return v.WithSelection(selStart, selEnd)
}

// WithComposition returns a copy with the IME composition range set, clamped
// to the text.
func (v TextValue) WithComposition(start, end int) TextValue {
	n := v.RuneLen()
	v.CompStart = clamp(start, 0, n)
	v.CompEnd = clamp(end, 0, n)
	return v
}

// ClearComposition returns a copy with no composition range.
func (v TextValue) ClearComposition() TextValue {
	v.CompStart = NoComposition
	v.CompEnd = NoComposition
	return v
}

// Clamp returns a copy with every offset forced into [0, RuneLen]. Used to
// recover from stale offsets after external text mutation.
func (v TextValue) Clamp() TextValue {
	n := v.RuneLen()
	v.SelStart = clamp(v.SelStart, 0, n)
	v.SelEnd = clamp(v.SelEnd, 0, n)
	if v.HasComposition() {
		v.CompStart = clamp(v.CompStart, 0, n)
		v.CompEnd = clamp(v.CompEnd, 0, n)
	}
	return v
}

// Equal reports whether two snapshots are identical, composition included.
func (v TextValue) Equal(other TextValue) bool {
	return v == other
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
