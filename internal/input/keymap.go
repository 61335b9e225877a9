// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions; ModKeymap adds a modifier layer.
type Keymap map[tcell.Key]Action
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell key events into ActionEvents. Mode is not
// handled here; the app decides what an action means in its current mode.
type InputProcessor struct {
	keymap    Keymap
	modKeymap ModKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionDismiss
	p.keymap[tcell.KeyTab] = ActionToggleMode
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlX] = ActionCut
	ctrlMap[tcell.KeyCtrlC] = ActionCopy
	ctrlMap[tcell.KeyCtrlV] = ActionPaste
	ctrlMap[tcell.KeyCtrlA] = ActionSelectAll
	ctrlMap[tcell.KeyCtrlU] = ActionDeleteToLineStart
	ctrlMap[tcell.KeyCtrlL] = ActionClearSurface
	ctrlMap[tcell.KeyCtrlF] = ActionBringToFront
	ctrlMap[tcell.KeyCtrlD] = ActionDeleteField
	// Ctrl+arrows are word moves.
	ctrlMap[tcell.KeyLeft] = ActionMoveWordLeft
	ctrlMap[tcell.KeyRight] = ActionMoveWordRight
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// Alt+arrows nudge the focused field around the surface.
	altMap := make(Keymap)
	altMap[tcell.KeyUp] = ActionNudgeFieldUp
	altMap[tcell.KeyDown] = ActionNudgeFieldDown
	altMap[tcell.KeyLeft] = ActionNudgeFieldLeft
	altMap[tcell.KeyRight] = ActionNudgeFieldRight
	p.modKeymap[tcell.ModAlt] = altMap
}

// ProcessEvent decodes one tcell key event. Shift on a movement key turns
// into Extend rather than a separate binding.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	extend := mod&tcell.ModShift != 0
	mod &^= tcell.ModShift

	if modKeyMap, modOk := p.modKeymap[mod]; modOk {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action, Extend: extend}
		}
	}
	// tcell folds Ctrl into the key constant for letters; drop the modifier
	// bit so KeyCtrlS does not fall through as plain 's'.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if mod == tcell.ModNone {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action, Extend: extend}
		}
	}

	if key == tcell.KeyRune && mod == tcell.ModNone {
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}
