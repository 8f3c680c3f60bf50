package render

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/fileripper/internal/search"
	statepkg "github.com/kk-code-lab/fileripper/internal/state"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func screenLine(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		cell := cells[y*w+x]
		if len(cell.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(cell.Runes))
	}
	return b.String()
}

func sampleState() *statepkg.AppState {
	base := filepath.Join(string(filepath.Separator), "home", "me")
	state := statepkg.NewAppState(base, false)
	state.ScreenWidth = 80
	state.ScreenHeight = 10
	state.Entries = []statepkg.FileEntry{
		{Name: "docs", FullPath: filepath.Join(base, "docs"), IsDir: true},
		{Name: "notes.txt", FullPath: filepath.Join(base, "notes.txt")},
	}
	state.Query = "notes"
	state.Results = []search.Candidate{
		{Name: "notes.txt", FullPath: filepath.Join(base, "notes.txt"), Score: 0},
		{Name: "notesfinal.txt", FullPath: filepath.Join(base, "docs", "notesfinal.txt"), Score: 5},
		{Name: "report.pdf", FullPath: filepath.Join(base, "docs", "report.pdf"), Score: 6},
	}
	state.ResultTotal = 3
	state.ResultElapsed = 12 * time.Millisecond
	return state
}

func TestRenderDrawsBothPanes(t *testing.T) {
	screen := newTestScreen(t, 80, 10)
	state := sampleState()

	NewRenderer(screen).Render(state)

	header := screenLine(screen, 0)
	if !strings.HasPrefix(header, "fileripper ") || !strings.Contains(header, "me") {
		t.Fatalf("unexpected header %q", header)
	}

	layout := ComputeLayout(80)
	if got := screenLine(screen, 1)[:layout.ListWidth]; !strings.Contains(got, "..") {
		t.Fatalf("expected parent row first, got %q", got)
	}
	if got := screenLine(screen, 2); !strings.Contains(got, "docs"+string(filepath.Separator)) {
		t.Fatalf("expected directory with trailing separator, got %q", got)
	}

	if got := screenLine(screen, 1); !strings.Contains(got, "> notes") {
		t.Fatalf("expected query prompt, got %q", got)
	}
	first := screenLine(screen, 2)
	if !strings.Contains(first, "0  notes.txt") {
		t.Fatalf("expected best match on first result row, got %q", first)
	}
	third := screenLine(screen, 4)
	if !strings.Contains(third, "6  "+filepath.Join("docs", "report.pdf")) {
		t.Fatalf("expected relative path with score, got %q", third)
	}

	status := screenLine(screen, 9)
	if !strings.Contains(status, "3/3 files") {
		t.Fatalf("unexpected status line %q", status)
	}
}

func TestRenderSanitizesNames(t *testing.T) {
	screen := newTestScreen(t, 80, 6)
	state := sampleState()
	state.ScreenHeight = 6
	state.Entries = []statepkg.FileEntry{{Name: "evil\x1b[2Jname", FullPath: "/x"}}

	NewRenderer(screen).Render(state)

	if got := screenLine(screen, 2); strings.ContainsRune(got, 0x1b) || !strings.Contains(got, "evil?[2Jname") {
		t.Fatalf("expected escape to be neutralised, got %q", got)
	}
}

func TestRenderTinyScreenDoesNotPanic(t *testing.T) {
	screen := newTestScreen(t, 3, 2)
	state := sampleState()
	state.ScreenWidth, state.ScreenHeight = 3, 2
	NewRenderer(screen).Render(state)
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		width int
		list  int
	}{
		{120, 40},
		{60, 20},
		{30, 15},
		{1, 0},
	}
	for _, tt := range tests {
		layout := ComputeLayout(tt.width)
		if layout.ListWidth != tt.list {
			t.Fatalf("width %d: expected list %d, got %d", tt.width, tt.list, layout.ListWidth)
		}
		if layout.ListWidth > 0 && layout.ResultsStart+layout.ResultsWidth != tt.width {
			t.Fatalf("width %d: panes do not fill the screen: %+v", tt.width, layout)
		}
	}
}

func TestStatusText(t *testing.T) {
	state := sampleState()
	if got := StatusText(state); got != "3/3 files · 12ms" {
		t.Fatalf("unexpected status %q", got)
	}

	state.Searching = true
	if got := StatusText(state); got != "searching…" {
		t.Fatalf("unexpected status %q", got)
	}

	state.ResultStats.Skipped = []string{"/a"}
	state.Searching = false
	if got := StatusText(state); !strings.HasSuffix(got, "1 dirs skipped") {
		t.Fatalf("unexpected status %q", got)
	}

	state.LastError = errors.New("cannot read directory /x: permission denied")
	if got := StatusText(state); got != state.LastError.Error() {
		t.Fatalf("errors should replace the summary, got %q", got)
	}
}
