package state

import (
	"path/filepath"
	"time"

	fsutil "github.com/kk-code-lab/fileripper/internal/fs"
	"github.com/kk-code-lab/fileripper/internal/search"
)

type FileEntry = fsutil.Entry

// ParentEntryName labels the synthetic row that leads to the parent directory.
const ParentEntryName = ".."

// Focus tells which pane receives navigation keys.
type Focus int

const (
	FocusDirectory Focus = iota
	FocusResults
)

// Rows above and below the panes: a header line and a status line. The
// results pane also spends one row on the query prompt.
const (
	chromeRows      = 2
	queryPromptRows = 1
)

// AppState is the mutable state of the interactive browser.
type AppState struct {
	CurrentPath string
	Entries     []FileEntry
	HideHidden  bool

	// SelectedIndex indexes DirectoryRows, so 0 is the parent row when one exists.
	SelectedIndex int
	ScrollOffset  int

	Focus Focus
	Query string

	Results       []search.Candidate
	ResultTotal   int
	ResultIndex   int
	ResultScroll  int
	ResultElapsed time.Duration
	ResultStats   search.CrawlStats
	Searching     bool

	// NeedsSearch is raised when the query or the directory changed.
	NeedsSearch bool

	LastError error

	ScreenWidth  int
	ScreenHeight int

	ShouldQuit bool
	// Chosen is the path picked from the results, printed on exit.
	Chosen string
}

// NewAppState creates a state for root with an initial search pending.
func NewAppState(root string, hideHidden bool) *AppState {
	return &AppState{
		CurrentPath:  filepath.Clean(root),
		HideHidden:   hideHidden,
		NeedsSearch:  true,
		ScreenWidth:  80,
		ScreenHeight: 24,
	}
}

// HasParent reports whether the current directory has a parent to go up to.
func (s *AppState) HasParent() bool {
	return filepath.Dir(s.CurrentPath) != s.CurrentPath
}

// DirectoryRows returns the left pane rows, starting with ".." when the
// current directory has a parent.
func (s *AppState) DirectoryRows() []FileEntry {
	if !s.HasParent() {
		return s.Entries
	}
	rows := make([]FileEntry, 0, len(s.Entries)+1)
	rows = append(rows, FileEntry{
		Name:     ParentEntryName,
		FullPath: filepath.Dir(s.CurrentPath),
		IsDir:    true,
	})
	return append(rows, s.Entries...)
}

// SelectedRow returns the highlighted directory row, if any.
func (s *AppState) SelectedRow() (FileEntry, bool) {
	rows := s.DirectoryRows()
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(rows) {
		return FileEntry{}, false
	}
	return rows[s.SelectedIndex], true
}

// SelectedResult returns the highlighted search result, if any.
func (s *AppState) SelectedResult() (search.Candidate, bool) {
	if s.ResultIndex < 0 || s.ResultIndex >= len(s.Results) {
		return search.Candidate{}, false
	}
	return s.Results[s.ResultIndex], true
}

// ListHeight is the number of directory rows that fit on screen.
func (s *AppState) ListHeight() int {
	return max(s.ScreenHeight-chromeRows, 1)
}

// ResultsHeight is the number of result rows that fit below the query prompt.
func (s *AppState) ResultsHeight() int {
	return max(s.ScreenHeight-chromeRows-queryPromptRows, 1)
}

func (s *AppState) pageSize() int {
	if s.Focus == FocusResults {
		return s.ResultsHeight()
	}
	return s.ListHeight()
}

// TakeSearchRequest clears NeedsSearch and reports whether it was set.
func (s *AppState) TakeSearchRequest() (root, query string, ok bool) {
	if !s.NeedsSearch {
		return "", "", false
	}
	s.NeedsSearch = false
	s.Searching = true
	return s.CurrentPath, s.Query, true
}

func (s *AppState) requestSearch() {
	s.NeedsSearch = true
}

func (s *AppState) clampSelection() {
	rows := len(s.DirectoryRows())
	s.SelectedIndex = clampIndex(s.SelectedIndex, rows)
	s.ScrollOffset = scrollToShow(s.SelectedIndex, s.ScrollOffset, s.ListHeight(), rows)

	s.ResultIndex = clampIndex(s.ResultIndex, len(s.Results))
	s.ResultScroll = scrollToShow(s.ResultIndex, s.ResultScroll, s.ResultsHeight(), len(s.Results))
}

func clampIndex(idx, n int) int {
	if n == 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// scrollToShow returns an offset that keeps idx inside a window of visible rows.
func scrollToShow(idx, offset, visible, total int) int {
	if idx < offset {
		offset = idx
	} else if idx >= offset+visible {
		offset = idx - visible + 1
	}
	maxOffset := max(total-visible, 0)
	return min(max(offset, 0), maxOffset)
}
