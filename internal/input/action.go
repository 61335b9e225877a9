// internal/input/action.go
package input

// Action represents an operation requested through the keyboard.
type Action int

const (
	// --- Meta ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit
	ActionSave
	ActionToggleMode // display-only <-> editing
	ActionDismiss    // Esc: drop selection/menu/focus, innermost first

	// --- Cursor movement (Extend carries Shift) ---
	ActionMoveLeft
	ActionMoveRight
	ActionMoveWordLeft
	ActionMoveWordRight

	// --- Text manipulation ---
	ActionInsertRune // requires Rune
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionDeleteToLineStart
	ActionSelectAll
	ActionUndo
	ActionRedo
	ActionCut
	ActionCopy
	ActionPaste

	// --- Field placement ---
	ActionNudgeFieldUp
	ActionNudgeFieldDown
	ActionNudgeFieldLeft
	ActionNudgeFieldRight
	ActionDeleteField
	ActionBringToFront

	// --- Surface ---
	ActionClearSurface
)

// ActionEvent is a decoded input event plus its payload.
type ActionEvent struct {
	Action Action
	Rune   rune // for ActionInsertRune
	Extend bool // Shift held: movement extends the selection
}
