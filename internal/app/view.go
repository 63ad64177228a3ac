package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mdpad/internal/engine"
	"github.com/dshills/mdpad/internal/renderer/highlight"
)

// reveal scrolls so the cursor is on screen in both directions.
func (a *App) reveal(e *engine.Engine) {
	e.Resize(float64(a.textRows()))
	e.RevealCursor()

	pos := e.CursorPosition()
	cx := cellOf(e.Line(pos.Line), pos.Col)
	width := a.textWidth(e)
	left := a.left[a.current]
	switch {
	case cx < left:
		left = cx
	case width > 0 && cx >= left+width:
		left = cx - width + 1
	}
	a.left[a.current] = left
}

// gutterWidth is the line number column width including its trailing
// space.
func gutterWidth(e *engine.Engine) int {
	return len(strconv.Itoa(e.LineCount())) + 1
}

func (a *App) textWidth(e *engine.Engine) int {
	w, _ := a.screen.Size()
	return max(w-gutterWidth(e), 0)
}

// topLine is the first fully visible line.
func topLine(e *engine.Engine) int {
	lh, _ := e.Metrics()
	return int(e.ScrollOffset() / lh)
}

// Draw renders the current state and shows it.
func (a *App) Draw() {
	a.screen.SetStyle(a.theme.Base())
	a.screen.Clear()

	switch e := a.Engine(); {
	case a.pager != nil:
		a.pager.Draw(a.screen, a.theme, a.textRows())
		a.drawStatus(a.pager.StatusText(), a.status)
	case e != nil:
		a.drawDocument(e)
		a.drawStatus(a.documentStatus(e), a.status)
	default:
		a.screen.HideCursor()
		a.drawStatus("no document", a.status)
	}
	a.screen.Show()
}

func (a *App) drawDocument(e *engine.Engine) {
	rows := a.textRows()
	e.Resize(float64(rows))
	win := e.Window()
	lines := e.VisibleLines()
	sel := e.Selection()
	top := topLine(e)
	gutter := gutterWidth(e)
	width := a.textWidth(e)
	left := a.left[a.current]
	gutterStyle := a.theme.Style(highlight.TagText).Dim(true)

	for row := range rows {
		i := top + row - win.StartLine
		if i < 0 || i >= len(lines) {
			break
		}
		hl := lines[i]
		line := hl.LineNumber - 1
		num := fmt.Sprintf("%*d ", gutter-1, hl.LineNumber)
		drawText(a.screen, 0, row, num, gutterStyle)

		lineStart := e.LineStart(line)
		spans := hl.Spans
		si, spanEnd := 0, 0
		if len(spans) > 0 {
			spanEnd = utf8.RuneCountInString(spans[0].Text)
		}
		for _, c := range layoutLine(hl.Text()) {
			for si < len(spans)-1 && c.col >= spanEnd {
				si++
				spanEnd += utf8.RuneCountInString(spans[si].Text)
			}
			style := a.theme.Base()
			if len(spans) > 0 {
				style = a.theme.Style(spans[si].Style)
			}
			if off := lineStart + c.col; off >= sel.Start && off < sel.End {
				style = a.theme.Selection()
			}
			drawCluster(a.screen, gutter, row, left, width, c, style)
		}
	}

	pos := e.CursorPosition()
	cy := pos.Line - top
	cx := cellOf(e.Line(pos.Line), pos.Col) - left
	if cy >= 0 && cy < rows && cx >= 0 && cx < width {
		a.screen.ShowCursor(gutter+cx, cy)
	} else {
		a.screen.HideCursor()
	}
}

// drawCluster draws one cluster clipped to the text area, which starts at
// cell origin and is width cells wide after scrolling left cells.
func drawCluster(s tcell.Screen, origin, row, left, width int, c cluster, style tcell.Style) {
	x := c.x - left
	if x < 0 || x+c.width > width {
		return
	}
	if c.text == "\t" {
		for i := range c.width {
			s.SetContent(origin+x+i, row, ' ', nil, style)
		}
		return
	}
	runes := []rune(c.text)
	if len(runes) == 1 && runes[0] < ' ' {
		runes[0] = '?'
	}
	s.SetContent(origin+x, row, runes[0], runes[1:], style)
}

// drawText draws s from cell x, returning the cell after it.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	end := x
	for _, c := range layoutLine(text) {
		runes := []rune(c.text)
		s.SetContent(x+c.x, y, runes[0], runes[1:], style)
		end = x + c.x + c.width
	}
	return end
}

func (a *App) documentStatus(e *engine.Engine) string {
	doc := a.Document()
	name := displayName(doc.Name())
	flags := ""
	if e.Modified() {
		flags += " [+]"
	}
	if e.ReadOnly() {
		flags += " [RO]"
	}
	pos := e.CursorPosition()
	docs := ""
	if n := a.ws.Len(); n > 1 {
		docs = fmt.Sprintf(" (%d open)", n)
	}
	return fmt.Sprintf(" %s%s%s  Ln %d, Col %d", name, flags, docs, pos.Line+1, pos.Col+1)
}

func (a *App) drawStatus(left, msg string) {
	w, h := a.screen.Size()
	if h == 0 {
		return
	}
	text := left
	if msg != "" {
		text += "  " + msg
	}
	drawText(a.screen, 0, h-1, fit(text, w), a.theme.Status())
}

// displayName shortens a path for the status line.
func displayName(path string) string {
	if path == "" {
		return "[scratch]"
	}
	return filepath.Base(path)
}
