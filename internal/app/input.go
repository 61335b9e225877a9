// internal/app/input.go
package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/slate/internal/core"
	"github.com/bethropolis/slate/internal/input"
	"github.com/bethropolis/slate/internal/stroke"
	"github.com/bethropolis/slate/internal/types"
)

// handleKeyEvent routes one key event. Returns true when a redraw is needed.
func (a *App) handleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := a.inputProc.ProcessEvent(ev)
	focused := a.surface.Fields().Focused()

	switch actionEvent.Action {
	case input.ActionQuit, input.ActionForceQuit:
		a.signalQuit()
		return false

	case input.ActionSave:
		a.store.Flush(a.surface.SerializedStrokes(), a.surface.SerializedTextFields())
		a.SetStatusMessage("Saved.")
		return true

	case input.ActionToggleMode:
		a.surface.SetEditing(!a.surface.Editing())
		return true

	case input.ActionDismiss:
		return a.dismissInnermost(focused)

	case input.ActionClearSurface:
		a.surface.Clear()
		a.SetStatusMessage("Surface cleared.")
		return true
	}

	if focused == nil {
		return false
	}
	return a.handleFieldAction(actionEvent, focused)
}

// dismissInnermost peels back state Esc-style: menu, then selection, then
// focus; with nothing left it quits.
func (a *App) dismissInnermost(focused *core.TextFieldState) bool {
	if a.menuVisible {
		a.menuVisible = false
		return true
	}
	if focused != nil {
		if focused.SelectedText() != "" {
			focused.ClearSelection()
			focused.SetHandleState(types.HandleStateCursor)
			return true
		}
		a.surface.Fields().RequestFocus(nil)
		return true
	}
	a.signalQuit()
	return false
}

// handleFieldAction applies an editing action to the focused field.
func (a *App) handleFieldAction(actionEvent input.ActionEvent, f *core.TextFieldState) bool {
	fm := a.surface.Fields()

	switch actionEvent.Action {
	case input.ActionInsertRune:
		f.InsertText(string(actionEvent.Rune), true)
	case input.ActionInsertNewLine:
		f.InsertText("\n", true)
	case input.ActionDeleteCharBackward:
		return f.DeleteBackward()
	case input.ActionDeleteCharForward:
		return f.DeleteForward()
	case input.ActionDeleteToLineStart:
		return f.DeleteToLineStart()

	case input.ActionMoveLeft:
		f.MoveLeft(actionEvent.Extend)
	case input.ActionMoveRight:
		f.MoveRight(actionEvent.Extend)
	case input.ActionMoveWordLeft:
		f.MoveWordLeft(actionEvent.Extend)
	case input.ActionMoveWordRight:
		f.MoveWordRight(actionEvent.Extend)
	case input.ActionSelectAll:
		f.SelectAll()
		f.SetHandleState(types.HandleStateSelection)

	case input.ActionUndo:
		return f.Undo()
	case input.ActionRedo:
		return f.Redo()

	case input.ActionCut:
		return a.surface.Clipboard().Cut(f)
	case input.ActionCopy:
		if a.surface.Clipboard().Copy(f) {
			a.SetStatusMessage("Copied.")
		}
		return false
	case input.ActionPaste:
		return a.surface.Clipboard().Paste(f)

	case input.ActionNudgeFieldUp:
		f.SetPosition(f.Position().Add(types.Point{Y: -1}))
	case input.ActionNudgeFieldDown:
		f.SetPosition(f.Position().Add(types.Point{Y: 1}))
	case input.ActionNudgeFieldLeft:
		f.SetPosition(f.Position().Add(types.Point{X: -1}))
	case input.ActionNudgeFieldRight:
		f.SetPosition(f.Position().Add(types.Point{X: 1}))

	case input.ActionDeleteField:
		return fm.RemoveTextField(f)
	case input.ActionBringToFront:
		fm.BringToFront(f)

	default:
		return false
	}
	return true
}

// inkCapture accumulates mouse samples while the button is held in view
// mode; release turns them into one stroke.
type inkCapture struct {
	samples []stroke.InputSample
	started int64
}

// handleMouseEvent routes mouse input: editing mode drives the gesture
// classifier, view mode captures ink.
func (a *App) handleMouseEvent(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	pt := types.Point{X: float64(x), Y: float64(y)}
	pressed := ev.Buttons()&tcell.Button1 != 0

	// A mode toggle mid ink-drag must not strand the capture.
	if !pressed && a.inkDrag != nil {
		if len(a.inkDrag.samples) > 0 {
			a.surface.AddStroke(a.inkDrag.samples, stroke.DefaultBrush)
		}
		a.inkDrag = nil
		return true
	}

	if a.surface.Editing() {
		switch {
		case pressed && a.inkDrag == nil && !a.mouseDown:
			a.mouseDown = true
			a.surface.TouchDown(pt)
		case pressed && a.mouseDown:
			a.surface.TouchMove(pt)
		case !pressed && a.mouseDown:
			a.mouseDown = false
			a.surface.TouchUp(pt)
		default:
			return false
		}
		return true
	}

	// View mode: draw ink.
	switch {
	case pressed && a.inkDrag == nil:
		a.inkDrag = &inkCapture{started: ev.When().UnixMilli()}
		a.inkDrag.samples = append(a.inkDrag.samples, a.sampleAt(pt, ev))
	case pressed && a.inkDrag != nil:
		a.inkDrag.samples = append(a.inkDrag.samples, a.sampleAt(pt, ev))
	case !pressed && a.inkDrag != nil:
		if len(a.inkDrag.samples) > 0 {
			a.surface.AddStroke(a.inkDrag.samples, stroke.DefaultBrush)
		}
		a.inkDrag = nil
	default:
		return false
	}
	return true
}

func (a *App) sampleAt(pt types.Point, ev *tcell.EventMouse) stroke.InputSample {
	return stroke.InputSample{
		X:      pt.X,
		Y:      pt.Y,
		TimeMs: ev.When().UnixMilli() - a.inkDrag.started,
	}
}
