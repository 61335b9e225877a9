// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/slate/internal/logger"
)

// Theme maps style names to tcell styles. Surface style names:
// Default, Background, FieldText, FieldFocused, Selection, Composition,
// Handle, Menu, MenuTitle, StatusBar, StatusBarMode, StatusBarMessage.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name, falling back dot-segment by dot-segment
// ("StatusBar.Mode" -> "StatusBar") and finally to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	baseName := name
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName = name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.Debugf("Theme '%s': style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': style '%s' and 'Default' not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// SlateDark is the built-in theme.
var SlateDark Theme

func init() {
	ink := tcell.NewHexColor(0xc5cdd9)       // soft off-white text
	paper := tcell.ColorReset                // terminal background
	chrome := tcell.NewHexColor(0x2a2f38)    // status bar / menu background
	accent := tcell.NewHexColor(0x61afef)    // handles, focus marker
	faded := tcell.NewHexColor(0x5c6370)     // placeholder, inactive chrome
	highlight := tcell.NewHexColor(0xe5c07b) // mode indicator

	base := tcell.StyleDefault.Background(paper).Foreground(ink)

	SlateDark = Theme{
		Name:   "Slate Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":    base,
			"Background": base.Foreground(faded),

			"FieldText":    base,
			"FieldFocused": base.Bold(true),
			"FieldEmpty":   base.Foreground(faded).Italic(true),
			"Selection":    base.Reverse(true),
			"Composition":  base.Underline(true),
			"Handle":       base.Foreground(accent).Bold(true),

			"Menu":      tcell.StyleDefault.Background(chrome).Foreground(ink),
			"MenuTitle": tcell.StyleDefault.Background(chrome).Foreground(accent).Bold(true),

			"StatusBar":         tcell.StyleDefault.Background(chrome).Foreground(ink),
			"StatusBar.Mode":    tcell.StyleDefault.Background(chrome).Foreground(highlight).Bold(true),
			"StatusBar.Message": tcell.StyleDefault.Background(chrome).Foreground(ink).Bold(true),
		},
	}

	CurrentTheme = &SlateDark
}

// CurrentTheme is the process-wide active theme; the manager keeps it in
// step with its own selection.
var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &SlateDark
	}
	return CurrentTheme
}

func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
