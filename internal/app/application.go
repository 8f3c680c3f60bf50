package app

import (
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/fileripper/internal/search"
	statepkg "github.com/kk-code-lab/fileripper/internal/state"
	inputui "github.com/kk-code-lab/fileripper/internal/ui/input"
	renderui "github.com/kk-code-lab/fileripper/internal/ui/render"
)

// newScreen is overridden in tests with a simulation screen.
var newScreen = tcell.NewScreen

// Options configures the interactive browser.
type Options struct {
	Root       string
	Query      string
	HideHidden bool
	Searcher   *search.Searcher
	Logger     *slog.Logger
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	searcher   *search.Searcher
	logger     *slog.Logger
	actionCh   chan statepkg.Action
	shouldQuit bool
	hideHidden bool
	closeOnce  sync.Once
}

// NewApplication initialises the screen and lists the starting directory.
func NewApplication(opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	searcher := opts.Searcher
	if searcher == nil {
		searcher = search.NewSearcher(opts.Root, search.SearchOptions{Logger: logger})
	}

	state := statepkg.NewAppState(opts.Root, opts.HideHidden)
	state.Query = opts.Query
	reducer := statepkg.NewStateReducer()
	if err := reducer.LoadDirectory(state, state.CurrentPath); err != nil {
		return nil, err
	}

	screen, err := newScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	return &Application{
		screen:     screen,
		state:      state,
		reducer:    reducer,
		renderer:   renderui.NewRenderer(screen),
		input:      inputHandler,
		searcher:   searcher,
		logger:     logger,
		actionCh:   actionCh,
		hideHidden: opts.HideHidden,
	}, nil
}

// Close cancels any running search and restores the terminal.
func (app *Application) Close() error {
	app.closeOnce.Do(func() {
		app.searcher.Cancel()
		app.screen.Fini()
		_ = flushConsoleInput()
	})
	return nil
}

// Chosen returns the result picked with Enter, or "" when the user quit.
func (app *Application) Chosen() string {
	return app.state.Chosen
}

// dispatch queues an action from another goroutine without blocking it.
func (app *Application) dispatch(action statepkg.Action) {
	select {
	case app.actionCh <- action:
	default:
		go func() { app.actionCh <- action }()
	}
}
