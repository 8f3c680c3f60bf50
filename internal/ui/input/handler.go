package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/fileripper/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for focus checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for focus checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, keepRunning := ih.KeyToAction(ev)
		if action != nil {
			ih.actionChan <- action
		}
		return keepRunning
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// KeyToAction maps a key press to an action. Printable runes always edit the
// query, whichever pane has focus.
func (ih *InputHandler) KeyToAction(ev *tcell.EventKey) (statepkg.Action, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return statepkg.QuitAction{}, false
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.Query == "" {
			return statepkg.QuitAction{}, false
		}
		return statepkg.QueryClearAction{}, true
	case tcell.KeyUp:
		return statepkg.NavigateUpAction{}, true
	case tcell.KeyDown:
		return statepkg.NavigateDownAction{}, true
	case tcell.KeyPgUp:
		return statepkg.NavigatePageUpAction{}, true
	case tcell.KeyPgDn:
		return statepkg.NavigatePageDownAction{}, true
	case tcell.KeyEnter:
		return statepkg.EnterDirectoryAction{}, true
	case tcell.KeyRight:
		if ih.focus() == statepkg.FocusDirectory {
			return statepkg.EnterDirectoryAction{}, true
		}
		return nil, true
	case tcell.KeyLeft:
		if ih.focus() == statepkg.FocusDirectory {
			return statepkg.GoUpAction{}, true
		}
		return nil, true
	case tcell.KeyTab, tcell.KeyBacktab:
		return statepkg.FocusToggleAction{}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return statepkg.QueryBackspaceAction{}, true
	case tcell.KeyCtrlU:
		return statepkg.QueryClearAction{}, true
	case tcell.KeyCtrlR:
		return statepkg.RefreshAction{}, true
	case tcell.KeyCtrlT:
		return statepkg.ToggleHiddenAction{}, true
	case tcell.KeyCtrlZ:
		return statepkg.SuspendAction{}, true
	case tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsPrint(r) {
			return statepkg.QueryCharAction{Char: r}, true
		}
	}
	return nil, true
}

func (ih *InputHandler) focus() statepkg.Focus {
	if ih.state == nil {
		return statepkg.FocusDirectory
	}
	return ih.state.Focus
}
