package render

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/fileripper/internal/state"
	textutil "github.com/kk-code-lab/fileripper/internal/textutil"
)

const (
	headerText      = "fileripper"
	minPaneWidth    = 16
	paneSeparator   = '│'
	queryPrompt     = "> "
	scoreColumnGap  = "  "
	footerHelpShort = "Tab pane · Enter open · ← up · Esc clear · ^T hidden · ^R rescan · ^C quit"
)

// Renderer draws AppState onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Layout describes the horizontal split between the two panes.
type Layout struct {
	ListWidth    int
	ResultsStart int
	ResultsWidth int
}

// ComputeLayout gives the directory pane a third of the width, within bounds.
func ComputeLayout(w int) Layout {
	list := max(w/3, minPaneWidth)
	list = min(list, w/2)
	if list < 1 {
		return Layout{ResultsWidth: w}
	}
	start := list + 1
	return Layout{
		ListWidth:    list,
		ResultsStart: start,
		ResultsWidth: max(w-start, 0),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 || state == nil {
		r.screen.Show()
		return
	}

	layout := ComputeLayout(w)
	r.drawHeader(state, w)
	r.drawDirectoryPane(state, layout, h)
	if layout.ListWidth > 0 {
		for y := 1; y < h-1; y++ {
			r.screen.SetContent(layout.ListWidth, y, paneSeparator, nil, tcell.StyleDefault.Foreground(r.theme.ScoreFg))
		}
	}
	r.drawResultsPane(state, layout, h)
	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Foreground(r.theme.HeaderFg).Bold(true)
	x := r.drawTextLine(0, 0, w, headerText, style)
	x = r.drawTextLine(x, 0, w, " ", tcell.StyleDefault)
	path := textutil.TruncateLeft(textutil.SanitizeTerminalText(state.CurrentPath), w-x)
	r.drawTextLine(x, 0, w, path, tcell.StyleDefault)
}

func (r *Renderer) drawDirectoryPane(state *statepkg.AppState, layout Layout, h int) {
	if layout.ListWidth <= 0 {
		return
	}
	rows := state.DirectoryRows()
	visible := state.ListHeight()

	for i := 0; i < visible; i++ {
		idx := state.ScrollOffset + i
		y := 1 + i
		if y >= h-1 || idx >= len(rows) {
			break
		}
		entry := rows[idx]

		style := r.entryStyle(entry)
		if idx == state.SelectedIndex {
			style = r.selectionStyle(state.Focus == statepkg.FocusDirectory)
		}

		name := entry.Name
		if entry.IsDir && name != statepkg.ParentEntryName {
			name += string(filepath.Separator)
		}
		name = textutil.Truncate(textutil.SanitizeTerminalText(name), layout.ListWidth-1)

		r.fillLine(0, y, layout.ListWidth, style)
		r.drawTextLine(1, y, layout.ListWidth, name, style)
	}
}

func (r *Renderer) drawResultsPane(state *statepkg.AppState, layout Layout, h int) {
	start := layout.ResultsStart
	end := start + layout.ResultsWidth
	if layout.ResultsWidth <= 0 {
		return
	}

	promptStyle := tcell.StyleDefault.Foreground(r.theme.PromptFg)
	if state.Focus == statepkg.FocusDirectory {
		promptStyle = promptStyle.Bold(true)
	}
	x := r.drawTextLine(start, 1, end, queryPrompt, promptStyle)
	x = r.drawTextLine(x, 1, end, state.Query, tcell.StyleDefault)
	if state.Focus == statepkg.FocusDirectory && x < end {
		r.screen.SetContent(x, 1, ' ', nil, tcell.StyleDefault.Reverse(true))
	}

	scoreWidth := 1
	for _, c := range state.Results {
		scoreWidth = max(scoreWidth, len(strconv.Itoa(c.Score)))
	}

	visible := state.ResultsHeight()
	for i := 0; i < visible; i++ {
		idx := state.ResultScroll + i
		y := 2 + i
		if y >= h-1 || idx >= len(state.Results) {
			break
		}
		c := state.Results[idx]

		rowStyle := tcell.StyleDefault
		scoreStyle := tcell.StyleDefault.Foreground(r.theme.ScoreFg)
		if idx == state.ResultIndex {
			rowStyle = r.selectionStyle(state.Focus == statepkg.FocusResults)
			scoreStyle = rowStyle
		}
		r.fillLine(start, y, end, rowStyle)

		score := textutil.PadLeft(strconv.Itoa(c.Score), scoreWidth) + scoreColumnGap
		x := r.drawTextLine(start+1, y, end, score, scoreStyle)
		path := textutil.TruncateLeft(textutil.SanitizeTerminalText(displayPath(state.CurrentPath, c.FullPath)), end-x)
		r.drawTextLine(x, y, end, path, rowStyle)
	}
}

func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y < 1 {
		return
	}
	style := tcell.StyleDefault.Foreground(r.theme.FooterFg)
	text := StatusText(state)
	if state.LastError != nil {
		style = tcell.StyleDefault.Foreground(r.theme.ErrorFg)
	}
	x := r.drawTextLine(0, y, w, textutil.Truncate(text, w), style)
	if state.LastError == nil {
		help := "  " + footerHelpShort
		if textutil.DisplayWidth(help) <= w-x {
			r.drawTextLine(x, y, w, help, tcell.StyleDefault.Foreground(r.theme.ScoreFg))
		}
	}
}

// StatusText summarizes the last search or the current error.
func StatusText(state *statepkg.AppState) string {
	if state.LastError != nil {
		return textutil.SanitizeTerminalText(state.LastError.Error())
	}
	if state.Searching {
		return "searching…"
	}
	status := fmt.Sprintf("%d/%d files", len(state.Results), state.ResultTotal)
	if state.ResultElapsed > 0 {
		status += fmt.Sprintf(" · %s", state.ResultElapsed.Round(time.Millisecond))
	}
	if skipped := len(state.ResultStats.Skipped); skipped > 0 {
		status += fmt.Sprintf(" · %d dirs skipped", skipped)
	}
	return status
}

func (r *Renderer) entryStyle(entry statepkg.FileEntry) tcell.Style {
	style := tcell.StyleDefault.Foreground(r.theme.FileFg)
	switch {
	case entry.Name == statepkg.ParentEntryName:
		style = style.Foreground(r.theme.DirectoryFg).Bold(true)
	case entry.IsHidden():
		style = style.Foreground(r.theme.HiddenFg)
	case entry.IsSymlink:
		style = style.Foreground(r.theme.SymlinkFg)
	case entry.IsDir:
		style = style.Foreground(r.theme.DirectoryFg).Bold(true)
	}
	return style
}

func (r *Renderer) selectionStyle(active bool) tcell.Style {
	if active {
		return tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	return tcell.StyleDefault.Background(r.theme.InactiveSelBg).Foreground(r.theme.SelectionFg)
}

// displayPath shows results relative to the browsed directory when possible.
func displayPath(base, full string) string {
	if rel, err := filepath.Rel(base, full); err == nil && filepath.IsLocal(rel) {
		return rel
	}
	return full
}
