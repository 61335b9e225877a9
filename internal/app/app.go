// internal/app/app.go
package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/slate/internal/config"
	"github.com/bethropolis/slate/internal/event"
	"github.com/bethropolis/slate/internal/gesture"
	"github.com/bethropolis/slate/internal/input"
	"github.com/bethropolis/slate/internal/layout"
	"github.com/bethropolis/slate/internal/logger"
	"github.com/bethropolis/slate/internal/surface"
	"github.com/bethropolis/slate/internal/theme"
	"github.com/bethropolis/slate/internal/tui"
	"github.com/bethropolis/slate/internal/types"
)

// App hosts one annotation surface in a terminal: it owns the event loop,
// routes keys and mouse input into the surface, and persists the surface's
// change streams to disk.
type App struct {
	tuiManager   *tui.TUI
	surface      *surface.Surface
	eventManager *event.Manager
	inputProc    *input.InputProcessor
	themeManager *theme.Manager
	activeTheme  *theme.Theme
	store        *Store

	quit          chan struct{}
	redrawRequest chan struct{}

	menuVisible bool
	menuAnchor  types.Point

	inkDrag   *inkCapture
	mouseDown bool

	statusMessage     string
	statusMessageTime time.Time
}

// callbackEvent carries a deferred function onto the tcell event stream, so
// gesture timer callbacks run on the event-processing goroutine.
type callbackEvent struct {
	when time.Time
	fn   func()
}

func (e *callbackEvent) When() time.Time { return e.when }

// NewApp creates and initializes an application over the data directory.
func NewApp(cfg *config.Config, dataDir string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	themeManager := theme.NewManager()

	a := &App{
		tuiManager:    tuiManager,
		eventManager:  eventManager,
		inputProc:     input.NewInputProcessor(),
		themeManager:  themeManager,
		activeTheme:   themeManager.Current(),
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	scheduler := gesture.NewTimerScheduler(a.post)
	// The default handle geometry is sized for pixel surfaces; a terminal
	// cell is far coarser, so cap the slop at one cell around each handle.
	surfCfg := cfg.Surface
	if surfCfg.HandleTolerance > 1 {
		surfCfg.HandleTolerance = 1
	}
	if surfCfg.HandleOffset > 1 {
		surfCfg.HandleOffset = 1
	}
	a.surface = surface.New(surfCfg, eventManager, layout.CellMeasurer{}, scheduler)

	a.store = NewStore(dataDir, time.Duration(cfg.Surface.SaveDebounceMs)*time.Millisecond)
	a.surface.OnStrokesChange = func(blob string) {
		a.store.ScheduleStrokes(blob)
		a.requestRedraw()
	}
	a.surface.OnTextFieldsChange = func(blob string) {
		a.store.ScheduleTextFields(blob)
		a.requestRedraw()
	}

	eventManager.Subscribe(event.TypeMenuRequested, func(e event.Event) bool {
		a.menuVisible = true
		a.menuAnchor = e.Data.(event.MenuRequestedData).Anchor
		a.requestRedraw()
		return false
	})
	eventManager.Subscribe(event.TypeMenuDismissed, func(event.Event) bool {
		if a.menuVisible {
			a.menuVisible = false
			a.requestRedraw()
		}
		return false
	})
	eventManager.Subscribe(event.TypeModeChanged, func(e event.Event) bool {
		if e.Data.(event.ModeChangedData).Editing {
			a.SetStatusMessage("Editing: tap places cursor, Tab back to view")
		} else {
			a.SetStatusMessage("Viewing: drag draws ink, Tab to edit text")
		}
		return false
	})
	eventManager.Subscribe(event.TypeFocusChanged, func(event.Event) bool {
		a.requestRedraw()
		return false
	})
	eventManager.Subscribe(event.TypeFieldModified, func(event.Event) bool {
		a.requestRedraw()
		return false
	})

	// Load what a previous session persisted. Malformed blobs load empty.
	strokesBlob, fieldsBlob := a.store.Load()
	a.surface.LoadStrokes(strokesBlob)
	a.surface.LoadTextFields(fieldsBlob, true)

	return a, nil
}

// Run starts the event and drawing loops and blocks until quit.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.SetStatusMessage("Slate - Tab toggles edit mode | Ctrl+S save | Ctrl+Q quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			a.store.Flush(a.surface.SerializedStrokes(), a.surface.SerializedTextFields())
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop consumes TUI events; everything mutating surface state runs
// here, on one goroutine.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true
		case *tcell.EventKey:
			needsRedraw = a.handleKeyEvent(eventData)
		case *tcell.EventMouse:
			needsRedraw = a.handleMouseEvent(eventData)
		case *callbackEvent:
			eventData.fn()
			needsRedraw = true
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// post routes a timer callback onto the event loop.
func (a *App) post(fn func()) {
	if err := a.tuiManager.PostEvent(&callbackEvent{when: time.Now(), fn: fn}); err != nil {
		logger.Warnf("App: dropped timer callback: %v", err)
	}
}

func (a *App) draw() {
	a.tuiManager.Clear()
	tui.DrawSurface(a.tuiManager, a.surface, a.activeTheme)
	if a.menuVisible {
		tui.DrawMenu(a.tuiManager, a.activeTheme, a.menuAnchor)
	}
	tui.DrawStatusBar(a.tuiManager, a.activeTheme, a.surface.Editing(), a.currentStatusMessage())
	tui.DrawCursor(a.tuiManager, a.surface)
	a.tuiManager.Show()
}

func (a *App) currentStatusMessage() string {
	if !a.statusMessageTime.IsZero() && time.Since(a.statusMessageTime) <= 4*time.Second {
		return a.statusMessage
	}
	return ""
}

// SetStatusMessage shows a transient message in the status bar.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusMessage = fmt.Sprintf(format, args...)
	a.statusMessageTime = time.Now()
	a.requestRedraw()
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

func (a *App) signalQuit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.activeTheme
}

// SetTheme changes the active theme by name.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	a.activeTheme = a.themeManager.Current()
	a.requestRedraw()
	return nil
}
