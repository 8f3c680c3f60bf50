package state

import (
	"path/filepath"

	fsutil "github.com/kk-code-lab/fileripper/internal/fs"
	"github.com/kk-code-lab/fileripper/internal/search"
)

var readDirectoryFn = fsutil.ReadDirectory

// StateReducer applies actions to an AppState.
type StateReducer struct{}

// NewStateReducer creates a reducer.
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// LoadDirectory lists path into state. On failure the previous listing is
// kept, the error is stored in LastError and returned.
func (r *StateReducer) LoadDirectory(state *AppState, path string) error {
	path = filepath.Clean(path)
	entries, err := readDirectoryFn(path, state.HideHidden)
	if err != nil {
		state.LastError = err
		return err
	}

	changed := path != state.CurrentPath
	state.CurrentPath = path
	state.Entries = entries
	state.LastError = nil
	if changed {
		state.SelectedIndex = 0
		state.ScrollOffset = 0
		state.Results = nil
		state.ResultTotal = 0
		state.ResultIndex = 0
		state.ResultScroll = 0
		state.requestSearch()
	}
	state.clampSelection()
	return nil
}

// Reduce applies action to state. Directory listing errors end up in
// state.LastError and never abort the browser.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateDownAction:
		r.moveSelection(state, 1)

	case NavigateUpAction:
		r.moveSelection(state, -1)

	case NavigatePageDownAction:
		r.moveSelection(state, state.pageSize())

	case NavigatePageUpAction:
		r.moveSelection(state, -state.pageSize())

	case EnterDirectoryAction:
		if state.Focus == FocusResults {
			if result, ok := state.SelectedResult(); ok {
				state.Chosen = result.FullPath
				state.ShouldQuit = true
			}
			return state, nil
		}
		row, ok := state.SelectedRow()
		if !ok || !row.IsDir {
			return state, nil
		}
		if row.Name == ParentEntryName && state.HasParent() && state.SelectedIndex == 0 {
			r.goUp(state)
			return state, nil
		}
		_ = r.LoadDirectory(state, row.FullPath)

	case GoUpAction:
		r.goUp(state)

	case FocusToggleAction:
		if state.Focus == FocusDirectory {
			state.Focus = FocusResults
		} else {
			state.Focus = FocusDirectory
		}

	// ===== QUERY =====

	case QueryCharAction:
		state.Query += string(a.Char)
		state.requestSearch()

	case QueryBackspaceAction:
		if state.Query == "" {
			return state, nil
		}
		runes := []rune(state.Query)
		state.Query = string(runes[:len(runes)-1])
		state.requestSearch()

	case QueryClearAction:
		if state.Query == "" {
			return state, nil
		}
		state.Query = ""
		state.requestSearch()

	case ResultsArrivedAction:
		r.applyResults(state, a.Result)

	// ===== MISC =====

	case ToggleHiddenAction:
		state.HideHidden = !state.HideHidden
		_ = r.LoadDirectory(state, state.CurrentPath)
		state.requestSearch()

	case RefreshAction:
		_ = r.LoadDirectory(state, state.CurrentPath)
		state.requestSearch()

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampSelection()

	case QuitAction:
		state.ShouldQuit = true
	}

	return state, nil
}

func (r *StateReducer) moveSelection(state *AppState, delta int) {
	if state.Focus == FocusResults {
		state.ResultIndex += delta
	} else {
		state.SelectedIndex += delta
	}
	state.clampSelection()
}

func (r *StateReducer) goUp(state *AppState) {
	if !state.HasParent() {
		return
	}
	current := filepath.Base(state.CurrentPath)
	if err := r.LoadDirectory(state, filepath.Dir(state.CurrentPath)); err != nil {
		return
	}
	for idx, row := range state.DirectoryRows() {
		if row.IsDir && row.Name == current {
			state.SelectedIndex = idx
			break
		}
	}
	state.clampSelection()
}

// applyResults stores a search outcome unless it belongs to an older
// directory or query.
func (r *StateReducer) applyResults(state *AppState, result search.SearchResult) {
	if filepath.Clean(result.Root) != state.CurrentPath || result.Query != state.Query {
		return
	}
	state.Searching = false
	state.Results = result.Candidates
	state.ResultTotal = result.Total
	state.ResultElapsed = result.Elapsed
	state.ResultStats = result.Stats
	state.ResultIndex = 0
	state.ResultScroll = 0
	state.LastError = result.Err
	state.clampSelection()
}
