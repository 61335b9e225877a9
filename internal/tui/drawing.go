// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/slate/internal/compositor"
	"github.com/bethropolis/slate/internal/core"
	"github.com/bethropolis/slate/internal/stroke"
	"github.com/bethropolis/slate/internal/surface"
	"github.com/bethropolis/slate/internal/theme"
	"github.com/bethropolis/slate/internal/types"
)

const statusBarHeight = 1

func cell(v float64) int {
	return int(math.Round(v))
}

// DrawSurface paints the whole annotation surface: background, then every
// element in compositor order, so later elements land on top.
func DrawSurface(tuiManager *TUI, surf *surface.Surface, activeTheme *theme.Theme) {
	if activeTheme == nil {
		activeTheme = theme.GetCurrentTheme()
	}
	width, height := tuiManager.Size()
	viewHeight := height - statusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	defaultStyle := activeTheme.GetStyle("Default")
	for y := 0; y < viewHeight; y++ {
		for x := 0; x < width; x++ {
			tuiManager.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	for _, el := range surf.DrawList() {
		switch el.Kind {
		case compositor.KindStroke:
			drawStroke(tuiManager, el.Stroke, width, viewHeight)
		case compositor.KindTextField:
			drawField(tuiManager, el.Field, activeTheme, width, viewHeight)
		}
	}
}

// drawStroke plots the stroke samples in the brush color. Physical brush
// geometry is out of scope for a cell grid; one cell per sample.
func drawStroke(tuiManager *TUI, s *stroke.Stroke, width, height int) {
	c := s.Brush.RGB()
	color := tcell.NewRGBColor(int32(c.R*255), int32(c.G*255), int32(c.B*255))
	style := tcell.StyleDefault.Foreground(color)
	for _, sample := range s.Samples {
		x, y := cell(sample.X), cell(sample.Y)
		if x >= 0 && x < width && y >= 0 && y < height {
			tuiManager.screen.SetContent(x, y, '•', nil, style)
		}
	}
}

func drawField(tuiManager *TUI, f *core.TextFieldState, activeTheme *theme.Theme, width, height int) {
	v := f.Value()
	pos := f.Position()
	x0, y0 := cell(pos.X), cell(pos.Y)

	baseStyle := activeTheme.GetStyle("FieldText")
	if f.FocusRequested() {
		baseStyle = activeTheme.GetStyle("FieldFocused")
	}
	selectionStyle := activeTheme.GetStyle("Selection")
	compositionStyle := activeTheme.GetStyle("Composition")

	if v.Text == "" {
		// An empty field still needs a visible tap target.
		if y0 >= 0 && y0 < height && x0 >= 0 && x0 < width {
			tuiManager.screen.SetContent(x0, y0, '_', nil, activeTheme.GetStyle("FieldEmpty"))
		}
		drawHandles(tuiManager, f, activeTheme, width, height)
		return
	}

	selMin, selMax := v.Min(), v.Max()
	showSelection := f.FocusRequested() && selMin != selMax

	runeIdx := 0
	y := y0
	for _, line := range strings.Split(v.Text, "\n") {
		screenX := x0
		gr := uniseg.NewGraphemes(line)
		for gr.Next() {
			clusterRunes := gr.Runes()
			clusterWidth := gr.Width()
			if clusterWidth < 1 {
				clusterWidth = 1
			}

			style := baseStyle
			if v.HasComposition() && runeIdx >= v.CompStart && runeIdx < v.CompEnd {
				style = compositionStyle
			}
			if showSelection && runeIdx >= selMin && runeIdx < selMax {
				style = selectionStyle
			}

			if y >= 0 && y < height && screenX >= 0 && screenX < width {
				tuiManager.screen.SetContent(screenX, y, clusterRunes[0], clusterRunes[1:], style)
				for cw := 1; cw < clusterWidth && screenX+cw < width; cw++ {
					tuiManager.screen.SetContent(screenX+cw, y, ' ', nil, style)
				}
			}
			screenX += clusterWidth
			runeIdx += len(clusterRunes)
		}
		runeIdx++ // the newline
		y++
	}

	drawHandles(tuiManager, f, activeTheme, width, height)
}

// drawHandles marks the selection or cursor handles one row below their
// text line, matching the hit-test geometry.
func drawHandles(tuiManager *TUI, f *core.TextFieldState, activeTheme *theme.Theme, width, height int) {
	var offsets []int
	v := f.Value()
	switch f.HandleState() {
	case types.HandleStateSelection:
		offsets = []int{v.Min(), v.Max()}
	case types.HandleStateCursor:
		offsets = []int{v.SelEnd}
	default:
		return
	}

	style := activeTheme.GetStyle("Handle")
	pos := f.Position()
	for _, offset := range offsets {
		caret := f.Layout().CaretRect(offset)
		x := cell(pos.X + caret.MinX)
		y := cell(pos.Y + caret.MaxY)
		if x >= 0 && x < width && y >= 0 && y < height {
			tuiManager.screen.SetContent(x, y, '◆', nil, style)
		}
	}
}

// DrawCursor places the terminal cursor at the focused field's caret.
func DrawCursor(tuiManager *TUI, surf *surface.Surface) {
	f := surf.Fields().Focused()
	if f == nil {
		tuiManager.screen.HideCursor()
		return
	}
	width, height := tuiManager.Size()
	caret := f.Layout().CaretRect(f.Value().SelEnd)
	pos := f.Position()
	x := cell(pos.X + caret.MinX)
	y := cell(pos.Y + caret.MinY)
	if x < 0 || x >= width || y < 0 || y >= height-statusBarHeight {
		tuiManager.screen.HideCursor()
		return
	}
	tuiManager.screen.ShowCursor(x, y)
}

// DrawMenu renders the context menu bar near its anchor, clamped to the
// screen.
func DrawMenu(tuiManager *TUI, activeTheme *theme.Theme, anchor types.Point) {
	label := " Cut │ Copy │ Paste │ Select All "
	width, height := tuiManager.Size()

	x := cell(anchor.X)
	y := cell(anchor.Y) - 1 // one row above the anchor
	if y < 0 {
		y = 0
	}
	if y >= height-statusBarHeight {
		y = height - statusBarHeight - 1
	}
	if x+len([]rune(label)) > width {
		x = width - len([]rune(label))
	}
	if x < 0 {
		x = 0
	}

	style := activeTheme.GetStyle("Menu")
	for i, r := range label {
		if x+i < width {
			tuiManager.screen.SetContent(x+i, y, r, nil, style)
		}
	}
}

// DrawStatusBar renders the bottom bar: mode on the left, message after it.
func DrawStatusBar(tuiManager *TUI, activeTheme *theme.Theme, editing bool, message string) {
	width, height := tuiManager.Size()
	if height < 1 {
		return
	}
	y := height - 1

	barStyle := activeTheme.GetStyle("StatusBar")
	modeStyle := activeTheme.GetStyle("StatusBar.Mode")
	msgStyle := activeTheme.GetStyle("StatusBar.Message")

	for x := 0; x < width; x++ {
		tuiManager.screen.SetContent(x, y, ' ', nil, barStyle)
	}

	mode := " VIEW "
	if editing {
		mode = " EDIT "
	}
	x := 0
	for _, r := range mode {
		if x < width {
			tuiManager.screen.SetContent(x, y, r, nil, modeStyle)
			x++
		}
	}
	if message != "" {
		for _, r := range fmt.Sprintf(" %s", message) {
			if x < width {
				tuiManager.screen.SetContent(x, y, r, nil, msgStyle)
				x++
			}
		}
	}
}
