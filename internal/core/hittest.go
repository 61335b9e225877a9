// internal/core/hittest.go
package core

import (
	"github.com/bethropolis/slate/internal/logger"
	"github.com/bethropolis/slate/internal/types"
)

// HandleHit names the handle a touch landed on. Ephemeral: produced here,
// consumed immediately by the gesture classifier.
type HandleHit struct {
	Field *TextFieldState
	Kind  types.HandleKind
}

// HandleHitTester tests touch points against the selection/cursor handle
// geometry of laid-out fields.
type HandleHitTester struct {
	manager   *FieldManager
	tolerance float64 // touch slop around each handle
	offset    float64 // handle drop below its text line
}

// NewHandleHitTester creates a hit tester over the manager's fields.
// Tolerance is deliberately large relative to the visual handle.
func NewHandleHitTester(manager *FieldManager, tolerance, offset float64) *HandleHitTester {
	return &HandleHitTester{manager: manager, tolerance: tolerance, offset: offset}
}

// HitTest returns the first handle under pt, testing fields topmost-first
// so overlapping fields resolve to the one on top. Only fields showing
// handles are eligible.
func (h *HandleHitTester) HitTest(pt types.Point) (HandleHit, bool) {
	for _, f := range h.manager.FieldsTopmostFirst() {
		switch f.HandleState() {
		case types.HandleStateSelection:
			if h.handleRect(f, f.Value().Min()).Contains(pt) {
				logger.DebugTagf("gesture", "HitTester: start handle of field z=%d", f.ZIndex())
				return HandleHit{Field: f, Kind: types.HandleStart}, true
			}
			if h.handleRect(f, f.Value().Max()).Contains(pt) {
				logger.DebugTagf("gesture", "HitTester: end handle of field z=%d", f.ZIndex())
				return HandleHit{Field: f, Kind: types.HandleEnd}, true
			}
		case types.HandleStateCursor:
			if h.handleRect(f, f.Value().SelEnd).Contains(pt) {
				logger.DebugTagf("gesture", "HitTester: cursor handle of field z=%d", f.ZIndex())
				return HandleHit{Field: f, Kind: types.HandleCursor}, true
			}
		}
	}
	return HandleHit{}, false
}

// handleRect computes the hit rectangle of the handle anchored at a rune
// offset: the caret rectangle's bottom edge, dropped by the handle offset,
// inflated by the touch tolerance, in surface coordinates.
func (h *HandleHitTester) handleRect(f *TextFieldState, offset int) types.Rect {
	caret := f.Layout().CaretRect(offset)
	anchor := types.Point{
		X: caret.MinX,
		Y: caret.MaxY + h.offset,
	}
	r := types.Rect{MinX: anchor.X, MinY: anchor.Y, MaxX: anchor.X, MaxY: anchor.Y}
	return r.Inflate(h.tolerance).Translate(f.Position())
}
