package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	textutil "github.com/kk-code-lab/fileripper/internal/textutil"
)

// drawTextLine writes text from startX, never past maxX, attaching zero-width
// runes to the preceding cell. It returns the next free column.
func (r *Renderer) drawTextLine(startX, y, maxX int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(textutil.SanitizeTerminalText(text))
	i := 0

	for i < len(runes) && x < maxX {
		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		w := runewidth.RuneWidth(mainc)
		if w <= 0 {
			w = 1
		}
		if x+w > maxX {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}
	return x
}

// fillLine paints the cells from startX to maxX with spaces.
func (r *Renderer) fillLine(startX, y, maxX int, style tcell.Style) {
	for x := startX; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
