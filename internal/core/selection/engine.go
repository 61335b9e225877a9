// Package selection implements the pure cursor/selection operations over a
// TextValue. Nothing here mutates state; every function returns a new
// snapshot, which is what keeps undo recording and change notification
// consistent at the field level.
package selection

import (
	"unicode"

	"github.com/bethropolis/slate/internal/core/value"
)

// PlaceCursor collapses the selection at offset, clamped to [0, len].
func PlaceCursor(v value.TextValue, offset int) value.TextValue {
	return v.WithCursor(offset)
}

// MoveLeft moves the cursor one rune left. Without extend an active selection
// collapses to its lower boundary instead of moving; with extend only the
// active end moves and the anchor stays fixed.
func MoveLeft(v value.TextValue, extend bool) value.TextValue {
	if extend {
		return v.WithSelection(v.SelStart, v.SelEnd-1)
	}
	if !v.Collapsed() {
		return v.WithCursor(v.Min())
	}
	return v.WithCursor(v.SelEnd - 1)
}

// MoveRight moves the cursor one rune right, mirroring MoveLeft.
func MoveRight(v value.TextValue, extend bool) value.TextValue {
	if extend {
		return v.WithSelection(v.SelStart, v.SelEnd+1)
	}
	if !v.Collapsed() {
		return v.WithCursor(v.Max())
	}
	return v.WithCursor(v.SelEnd + 1)
}

// MoveWordLeft moves to the previous word boundary.
func MoveWordLeft(v value.TextValue, extend bool) value.TextValue {
	if extend {
		return v.WithSelection(v.SelStart, prevWordBoundary([]rune(v.Text), v.SelEnd))
	}
	from := v.SelEnd
	if !v.Collapsed() {
		from = v.Min()
	}
	return v.WithCursor(prevWordBoundary([]rune(v.Text), from))
}

// MoveWordRight moves to the next word boundary.
func MoveWordRight(v value.TextValue, extend bool) value.TextValue {
	if extend {
		return v.WithSelection(v.SelStart, nextWordBoundary([]rune(v.Text), v.SelEnd))
	}
	from := v.SelEnd
	if !v.Collapsed() {
		from = v.Max()
	}
	return v.WithCursor(nextWordBoundary([]rune(v.Text), from))
}

// LineStart returns the rune offset of the start of the line containing
// offset: just past the nearest preceding '\n', or 0.
func LineStart(text string, offset int) int {
	runes := []rune(text)
	offset = clampOffset(offset, len(runes))
	for i := offset - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// SelectAll selects the entire text.
func SelectAll(v value.TextValue) value.TextValue {
	return v.WithSelection(0, v.RuneLen())
}

// ClearSelection collapses an active selection to its upper boundary,
// matching common editor convention.
func ClearSelection(v value.TextValue) value.TextValue {
	return v.WithCursor(v.Max())
}

// WordBoundsAt returns the boundary pair straddling offset: the run of
// letters-or-digits (or the run of everything else) containing it.
func WordBoundsAt(text string, offset int) (start, end int) {
	runes := []rune(text)
	n := len(runes)
	offset = clampOffset(offset, n)
	if n == 0 {
		return 0, 0
	}

	// Classify by the rune under the offset; at end-of-text fall back to the
	// rune before it so a tap past the last glyph still selects the last word.
	ref := offset
	if ref >= n {
		ref = n - 1
	}
	class := isWordRune(runes[ref])

	start, end = ref, ref+1
	for start > 0 && isWordRune(runes[start-1]) == class {
		start--
	}
	for end < n && isWordRune(runes[end]) == class {
		end++
	}
	return start, end
}

// SelectWordAt selects the word (or separator run) straddling offset.
// Used by double-tap and long-press gestures.
func SelectWordAt(v value.TextValue, offset int) value.TextValue {
	start, end := WordBoundsAt(v.Text, offset)
	return v.WithSelection(start, end)
}

// DeleteSelection removes the selected range. Returns false for a collapsed
// selection, leaving the value untouched.
func DeleteSelection(v value.TextValue) (value.TextValue, bool) {
	if v.Collapsed() {
		return v, false
	}
	runes := []rune(v.Text)
	min, max := v.Min(), v.Max()
	text := string(runes[:min]) + string(runes[max:])
	return v.WithText(text, min, min), true
}

// InsertText inserts s at the cursor, replacing any active selection. The
// cursor lands after the inserted text. Inserting into a collapsed selection
// is plain insertion at the cursor.
func InsertText(v value.TextValue, s string) value.TextValue {
	v, _ = DeleteSelection(v)
	runes := []rune(v.Text)
	at := v.SelEnd
	text := string(runes[:at]) + s + string(runes[at:])
	after := at + len([]rune(s))
	return v.WithText(text, after, after)
}

// DeleteBackward removes the rune before the cursor, or the selection when
// one is active. Deleting at offset 0 is a no-op returning false.
func DeleteBackward(v value.TextValue) (value.TextValue, bool) {
	if !v.Collapsed() {
		return DeleteSelection(v)
	}
	if v.SelEnd <= 0 {
		return v, false
	}
	runes := []rune(v.Text)
	at := v.SelEnd
	text := string(runes[:at-1]) + string(runes[at:])
	return v.WithText(text, at-1, at-1), true
}

// DeleteForward removes the rune at the cursor, or the selection when one is
// active. Deleting at end-of-text is a no-op returning false.
func DeleteForward(v value.TextValue) (value.TextValue, bool) {
	if !v.Collapsed() {
		return DeleteSelection(v)
	}
	runes := []rune(v.Text)
	at := v.SelEnd
	if at >= len(runes) {
		return v, false
	}
	text := string(runes[:at]) + string(runes[at+1:])
	return v.WithText(text, at, at), true
}

// DeleteToLineStart removes from the start of the cursor's line to the
// cursor. An active selection is deleted instead; a cursor already at line
// start is a no-op.
func DeleteToLineStart(v value.TextValue) (value.TextValue, bool) {
	if !v.Collapsed() {
		return DeleteSelection(v)
	}
	at := v.SelEnd
	start := LineStart(v.Text, at)
	if start == at {
		return v, false
	}
	runes := []rune(v.Text)
	text := string(runes[:start]) + string(runes[at:])
	return v.WithText(text, start, start), true
}

// --- word boundary scanning ---

// isWordRune reports whether r belongs to a word run. A word boundary is any
// transition between a letter-or-digit run and a run of anything else.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// nextWordBoundary scans right: first past the non-word run adjacent to the
// cursor, then past the word run.
func nextWordBoundary(runes []rune, offset int) int {
	n := len(runes)
	i := clampOffset(offset, n)
	for i < n && !isWordRune(runes[i]) {
		i++
	}
	for i < n && isWordRune(runes[i]) {
		i++
	}
	return i
}

// prevWordBoundary scans left, mirroring nextWordBoundary.
func prevWordBoundary(runes []rune, offset int) int {
	i := clampOffset(offset, len(runes))
	for i > 0 && !isWordRune(runes[i-1]) {
		i--
	}
	for i > 0 && isWordRune(runes[i-1]) {
		i--
	}
	return i
}

func clampOffset(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}
