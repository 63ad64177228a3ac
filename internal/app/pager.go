package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Pager is a read-only, unhighlighted view of a file. The host falls back
// to it when the editing engine cannot be created.
type Pager struct {
	name  string
	lines []string
	top   int
	left  int
}

// NewPager returns a pager over content.
func NewPager(name, content string) *Pager {
	return &Pager{name: name, lines: strings.Split(content, "\n")}
}

// Top returns the first displayed line.
func (p *Pager) Top() int {
	return p.top
}

// LineCount returns the number of lines.
func (p *Pager) LineCount() int {
	return len(p.lines)
}

// ScrollTo moves the first displayed line, clamped so the last page stays
// full.
func (p *Pager) ScrollTo(line, rows int) {
	p.top = max(0, min(line, len(p.lines)-rows))
}

// HandleKey scrolls for navigation keys. q and Ctrl+Q return ErrQuit.
func (p *Pager) HandleKey(ev *tcell.EventKey, rows int) error {
	page := max(rows-1, 1)
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return ErrQuit
	case tcell.KeyUp:
		p.ScrollTo(p.top-1, rows)
	case tcell.KeyDown, tcell.KeyEnter:
		p.ScrollTo(p.top+1, rows)
	case tcell.KeyPgUp:
		p.ScrollTo(p.top-page, rows)
	case tcell.KeyPgDn:
		p.ScrollTo(p.top+page, rows)
	case tcell.KeyHome:
		p.ScrollTo(0, rows)
	case tcell.KeyEnd:
		p.ScrollTo(len(p.lines), rows)
	case tcell.KeyLeft:
		p.left = max(p.left-tabWidth, 0)
	case tcell.KeyRight:
		p.left += tabWidth
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ErrQuit
		case ' ':
			p.ScrollTo(p.top+page, rows)
		case 'j':
			p.ScrollTo(p.top+1, rows)
		case 'k':
			p.ScrollTo(p.top-1, rows)
		}
	}
	return nil
}

// HandleMouse scrolls on wheel events.
func (p *Pager) HandleMouse(ev *tcell.EventMouse) {
	switch b := ev.Buttons(); {
	case b&tcell.WheelUp != 0:
		p.top = max(p.top-wheelLines, 0)
	case b&tcell.WheelDown != 0:
		p.top = min(p.top+wheelLines, max(len(p.lines)-1, 0))
	}
}

// Draw renders rows lines from the top line.
func (p *Pager) Draw(s tcell.Screen, theme *Theme, rows int) {
	width, _ := s.Size()
	s.HideCursor()
	for row := range rows {
		i := p.top + row
		if i >= len(p.lines) {
			break
		}
		for _, c := range layoutLine(p.lines[i]) {
			drawCluster(s, 0, row, p.left, width, c, theme.Base())
		}
	}
}

// StatusText describes the pager for the status line.
func (p *Pager) StatusText() string {
	return fmt.Sprintf(" %s [read-only view]  Ln %d/%d", displayName(p.name), p.top+1, len(p.lines))
}
