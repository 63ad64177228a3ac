package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mdpad/internal/engine"
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

func (a *App) handleMouse(ev *tcell.EventMouse) {
	e := a.Engine()
	if e == nil {
		return
	}
	lh, _ := e.Metrics()
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		e.ScrollBy(-wheelLines * lh)
	case buttons&tcell.WheelDown != 0:
		e.ScrollBy(wheelLines * lh)
	case buttons&tcell.Button1 != 0:
		if y >= a.textRows() {
			return
		}
		px, py := a.pointAt(e, x, y)
		if a.mouseDown {
			e.Click(px, py, true)
			return
		}
		a.mouseDown = true

		now := a.now()
		if now.Sub(a.lastClick) < doubleClickInterval && x == a.lastClickX && y == a.lastClickY {
			e.DoubleClick(px, py)
			a.lastClick = now.Add(-doubleClickInterval)
			return
		}
		e.Click(px, py, ev.Modifiers()&tcell.ModShift != 0)
		a.lastClick, a.lastClickX, a.lastClickY = now, x, y
	case buttons == tcell.ButtonNone:
		a.mouseDown = false
	}
}

// pointAt converts a screen cell in the text area to document pixels.
func (a *App) pointAt(e *engine.Engine, x, y int) (px, py float64) {
	lh, cw := e.Metrics()
	line := min(topLine(e)+y, e.LineCount()-1)
	col := columnAt(e.Line(line), x-gutterWidth(e)+a.left[a.current])
	return float64(col) * cw, float64(line) * lh
}

// handlePaste brackets a terminal paste. Keys between start and end are
// collected and inserted as one edit.
func (a *App) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		a.pasting = true
		a.paste.Reset()
		return
	}
	a.pasting = false
	text := a.paste.String()
	a.paste.Reset()
	if text == "" || a.pager != nil {
		return
	}
	if e := a.Engine(); e != nil {
		a.report(e.InsertText(text))
		a.reveal(e)
	}
}

func (a *App) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		a.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter:
		a.paste.WriteByte('\n')
	case tcell.KeyTab:
		a.paste.WriteByte('\t')
	}
}
