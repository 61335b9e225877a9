// Package history provides per-field undo/redo over TextValue snapshots.
package history

import (
	"sync"

	"github.com/bethropolis/slate/internal/core/value"
	"github.com/bethropolis/slate/internal/logger"
)

const DefaultMaxHistory = 100

// Manager handles the undo/redo stacks for one text field.
//
// The undo stack holds pre-edit snapshots: undoing restores the top entry
// and moves the current value onto the redo stack. Consecutive keystroke
// edits recorded with allowMerge coalesce into one undo step by keeping the
// restore point of the first edit in the run.
type Manager struct {
	mutex      sync.Mutex
	undo       []value.TextValue
	redo       []value.TextValue
	maxEntries int  // combined undo+redo capacity
	applying   bool // true while an undo/redo is being applied
	mergeOpen  bool // last record was merge-eligible
}

// NewManager creates a history manager. maxEntries bounds the combined size
// of both stacks; oldest undo entries are evicted first.
func NewManager(maxEntries int) *Manager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxHistory
	}
	return &Manager{
		undo:       make([]value.TextValue, 0, maxEntries),
		maxEntries: maxEntries,
	}
}

// RecordChange records an edit from oldValue to newValue. The redo stack is
// cleared on every recorded edit. With allowMerge, a simple insert/delete
// continuing a typing run replaces the previous record instead of appending,
// so keystroke-by-keystroke edits undo as one step.
//
// Calls made while an undo/redo is itself being applied are ignored, so
// restoring a snapshot can never be recorded as a new edit.
func (m *Manager) RecordChange(oldValue, newValue value.TextValue, allowMerge bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.applying {
		logger.DebugTagf("history", "RecordChange ignored during undo/redo apply")
		return
	}
	if oldValue.Equal(newValue) {
		return
	}

	m.redo = m.redo[:0]

	if allowMerge && m.mergeOpen && len(m.undo) > 0 && isTypingRun(oldValue.Text, newValue.Text) {
		// Same typing run: the existing restore point already covers this
		// edit, nothing to push.
		logger.DebugTagf("history", "Merged edit into open typing run (undo=%d)", len(m.undo))
		m.mergeOpen = true
		return
	}

	m.undo = append(m.undo, oldValue)
	if len(m.undo) > m.maxEntries {
		m.undo = m.undo[len(m.undo)-m.maxEntries:]
	}
	m.mergeOpen = allowMerge
	logger.DebugTagf("history", "Recorded change (merge=%v). Undo: %d", allowMerge, len(m.undo))
}

// Undo restores the most recent pre-edit snapshot. currentValue moves onto
// the redo stack. Returns false without mutating state when there is nothing
// to undo.
func (m *Manager) Undo(currentValue value.TextValue) (value.TextValue, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.undo) == 0 {
		logger.DebugTagf("history", "Nothing to undo")
		return currentValue, false
	}

	m.applying = true
	defer func() { m.applying = false }()

	i := len(m.undo) - 1
	restored := m.undo[i]
	m.undo = m.undo[:i]
	m.redo = append(m.redo, currentValue)
	m.trimRedo()
	m.mergeOpen = false

	logger.DebugTagf("history", "Undo applied. Undo: %d, Redo: %d", len(m.undo), len(m.redo))
	return restored, true
}

// Redo reapplies the most recently undone snapshot, mirroring Undo.
func (m *Manager) Redo(currentValue value.TextValue) (value.TextValue, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.redo) == 0 {
		logger.DebugTagf("history", "Nothing to redo")
		return currentValue, false
	}

	m.applying = true
	defer func() { m.applying = false }()

	i := len(m.redo) - 1
	restored := m.redo[i]
	m.redo = m.redo[:i]
	m.undo = append(m.undo, currentValue)
	if len(m.undo) > m.maxEntries {
		m.undo = m.undo[len(m.undo)-m.maxEntries:]
	}
	m.mergeOpen = false

	logger.DebugTagf("history", "Redo applied. Undo: %d, Redo: %d", len(m.undo), len(m.redo))
	return restored, true
}

// CloseMergeRun ends the current typing run, so the next merge-eligible edit
// starts a fresh undo step. Called on focus loss and handle drags.
func (m *Manager) CloseMergeRun() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.mergeOpen = false
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undo) > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo) > 0
}

// Clear resets both stacks. Called when a field is loaded from storage.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
	m.mergeOpen = false
	logger.DebugTagf("history", "Cleared")
}

// trimRedo enforces the combined capacity, evicting oldest undo entries
// first. Must be called with the mutex held.
func (m *Manager) trimRedo() {
	for len(m.undo)+len(m.redo) > m.maxEntries && len(m.undo) > 0 {
		m.undo = m.undo[1:]
	}
}

// isTypingRun reports whether newText is oldText with one contiguous run
// inserted or removed, the shape of plain typing or backspacing. Structural
// replaces (paste over selection, programmatic set) don't qualify.
func isTypingRun(oldText, newText string) bool {
	if oldText == newText {
		return false
	}
	a, b := []rune(oldText), []rune(newText)
	if len(a) == len(b) {
		return false
	}
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}

	prefix := 0
	for prefix < len(short) && short[prefix] == long[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(short)-prefix && short[len(short)-1-suffix] == long[len(long)-1-suffix] {
		suffix++
	}
	return prefix+suffix == len(short)
}
