// internal/event/events.go
package event

import (
	"github.com/bethropolis/slate/internal/types"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Surface content events
	TypeStrokesChanged // Fired when a stroke gesture completes or strokes are cleared
	TypeFieldsChanged  // Fired when an editing session ends or a field is added/removed/cleared
	TypeFieldModified  // Fired on individual field edits (not persisted per-event; see TypeFieldsChanged)

	// Focus / gesture events
	TypeFocusChanged  // Fired when the focused field changes (may be nil -> field, field -> nil)
	TypeMenuRequested // Fired when a gesture asks for the context menu (long-press, double-tap)
	TypeMenuDismissed // Fired when the menu should be hidden (single tap, focus loss)

	// Application lifecycle events
	TypeModeChanged // Fired when the host toggles display-only <-> editing
	TypeAppReady
	TypeAppQuit
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// StrokesChangedData marks a completed stroke gesture or a stroke clear.
// The surface layer turns it into a serialized payload for the host.
type StrokesChangedData struct{}

// FieldsChangedData marks the end of a field editing session or a
// structural field change (add/remove/clear).
type FieldsChangedData struct{}

// FieldModifiedData identifies the edited field by its z-index key.
type FieldModifiedData struct {
	ZIndex int
}

// FocusChangedData reports the z-index of the newly focused field, or -1 for none.
type FocusChangedData struct {
	ZIndex int
}

// MenuRequestedData anchors the context menu above a surface point.
type MenuRequestedData struct {
	Anchor types.Point
}

// ModeChangedData reports whether editing is now enabled.
type ModeChangedData struct {
	Editing bool
}

// AppReadyData and AppQuitData are placeholders for lifecycle payloads.
type AppReadyData struct{}
type AppQuitData struct{}
