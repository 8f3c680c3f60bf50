package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/fileripper/internal/search"
	statepkg "github.com/kk-code-lab/fileripper/internal/state"
)

// Run processes terminal events and search results until the user quits.
func (app *Application) Run() {
	app.startPendingSearch()
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	app.searcher.Cancel()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.RefreshAction:
		app.searcher.Invalidate()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
	if app.state.ShouldQuit {
		app.shouldQuit = true
	}
	app.startPendingSearch()
	return true
}

// startPendingSearch hands a raised NeedsSearch flag to the searcher. Older
// searches are superseded, so only the latest result is ever dispatched.
func (app *Application) startPendingSearch() {
	root, query, ok := app.state.TakeSearchRequest()
	if !ok {
		return
	}
	if app.searcher.Root() != root {
		app.searcher.SetRoot(root)
	}
	if app.hideHidden != app.state.HideHidden {
		app.hideHidden = app.state.HideHidden
		app.searcher.SetHideHidden(app.hideHidden)
	}
	app.logger.Debug("search triggered", "root", root, "query", query)
	app.searcher.SearchAsync(query, func(result search.SearchResult) {
		app.dispatch(statepkg.ResultsArrivedAction{Result: result})
	})
}
