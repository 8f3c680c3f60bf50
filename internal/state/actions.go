package state

import "github.com/kk-code-lab/fileripper/internal/search"

// Action represents any state mutation.
type Action interface{}

// Navigation actions
type NavigateUpAction struct{}
type NavigateDownAction struct{}
type NavigatePageUpAction struct{}
type NavigatePageDownAction struct{}

// EnterDirectoryAction opens the selected directory, or picks the selected
// result when the results pane has focus.
type EnterDirectoryAction struct{}
type GoUpAction struct{}
type FocusToggleAction struct{}

// Query actions
type QueryCharAction struct {
	Char rune
}
type QueryBackspaceAction struct{}
type QueryClearAction struct{}

// ResultsArrivedAction delivers a finished search.
type ResultsArrivedAction struct {
	Result search.SearchResult
}

type ToggleHiddenAction struct{}
type RefreshAction struct{}

// Screen actions
type ResizeAction struct {
	Width  int
	Height int
}

type QuitAction struct{}

// SuspendAction stops the process and returns control to the shell (Ctrl-Z).
type SuspendAction struct{}
