// internal/core/clipboard.go
package core

import (
	"github.com/atotto/clipboard"

	"github.com/bethropolis/slate/internal/logger"
)

// Clipboard implements plain-text cut/copy/paste for text fields, backed by
// the system clipboard with an internal register fallback for headless or
// clipboard-less environments.
type Clipboard struct {
	register string
	system   bool
}

// NewClipboard creates a clipboard. system selects the OS clipboard; the
// internal register is always maintained as the fallback.
func NewClipboard(system bool) *Clipboard {
	return &Clipboard{system: system}
}

func (c *Clipboard) write(s string) {
	c.register = s
	if !c.system {
		return
	}
	if err := clipboard.WriteAll(s); err != nil {
		logger.Warnf("Clipboard: system write failed, keeping internal register: %v", err)
	}
}

func (c *Clipboard) read() string {
	if c.system {
		if s, err := clipboard.ReadAll(); err == nil && s != "" {
			return s
		}
	}
	return c.register
}

// Copy places the field's selected text on the clipboard. Returns false
// when nothing is selected.
func (c *Clipboard) Copy(f *TextFieldState) bool {
	text := f.SelectedText()
	if text == "" {
		return false
	}
	c.write(text)
	logger.DebugTagf("field", "Clipboard: copied %d runes", len([]rune(text)))
	return true
}

// Cut copies the selection and deletes it as a distinct undo step.
func (c *Clipboard) Cut(f *TextFieldState) bool {
	if !c.Copy(f) {
		return false
	}
	return f.DeleteSelection()
}

// Paste inserts the clipboard text at the cursor, replacing any selection.
// A paste never merges into a typing run. Returns false when the clipboard
// is empty.
func (c *Clipboard) Paste(f *TextFieldState) bool {
	text := c.read()
	if text == "" {
		return false
	}
	f.InsertText(text, false)
	return true
}
