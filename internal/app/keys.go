package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mdpad/internal/engine"
	"github.com/dshills/mdpad/internal/engine/history"
)

// motion is a cursor movement; ctrl is used when Ctrl or Alt is held.
type motion struct {
	plain func(*engine.Engine, bool)
	ctrl  func(*engine.Engine, bool)
}

var motions = map[tcell.Key]motion{
	tcell.KeyLeft:  {(*engine.Engine).MoveLeft, (*engine.Engine).MoveWordLeft},
	tcell.KeyRight: {(*engine.Engine).MoveRight, (*engine.Engine).MoveWordRight},
	tcell.KeyUp:    {(*engine.Engine).MoveUp, (*engine.Engine).MoveUp},
	tcell.KeyDown:  {(*engine.Engine).MoveDown, (*engine.Engine).MoveDown},
	tcell.KeyHome:  {(*engine.Engine).MoveLineStart, (*engine.Engine).MoveDocumentStart},
	tcell.KeyEnd:   {(*engine.Engine).MoveLineEnd, (*engine.Engine).MoveDocumentEnd},
	tcell.KeyPgUp:  {(*engine.Engine).MovePageUp, (*engine.Engine).MovePageUp},
	tcell.KeyPgDn:  {(*engine.Engine).MovePageDown, (*engine.Engine).MovePageDown},
}

// command handles a bound key. Commands run only with a document open.
type command func(a *App, e *engine.Engine, ev *tcell.EventKey) error

var commands = map[tcell.Key]command{
	tcell.KeyCtrlS: func(a *App, _ *engine.Engine, _ *tcell.EventKey) error { return a.Save() },
	tcell.KeyCtrlQ: (*App).quit,
	tcell.KeyCtrlW: (*App).closeDocument,
	tcell.KeyCtrlN: func(a *App, _ *engine.Engine, _ *tcell.EventKey) error { a.cycleDocument(1); return nil },
	tcell.KeyCtrlP: func(a *App, _ *engine.Engine, _ *tcell.EventKey) error { a.cycleDocument(-1); return nil },

	tcell.KeyCtrlZ: (*App).undo,
	tcell.KeyCtrlY: (*App).redo,
	tcell.KeyCtrlC: func(a *App, e *engine.Engine, _ *tcell.EventKey) error { return e.Copy(context.Background(), a.clipboard) },
	tcell.KeyCtrlX: func(a *App, e *engine.Engine, _ *tcell.EventKey) error { return e.Cut(context.Background(), a.clipboard) },
	tcell.KeyCtrlV: func(a *App, e *engine.Engine, _ *tcell.EventKey) error { return e.Paste(context.Background(), a.clipboard) },
	tcell.KeyCtrlA: func(_ *App, e *engine.Engine, _ *tcell.EventKey) error { e.SelectAll(); return nil },
	tcell.KeyCtrlD: func(_ *App, e *engine.Engine, _ *tcell.EventKey) error { e.SelectWordAtCursor(); return nil },

	tcell.KeyCtrlB: wrap("**"),
	tcell.KeyCtrlE: wrap("_"),
	tcell.KeyCtrlK: wrap("`"),
	tcell.KeyCtrlL: toggle("- "),
	tcell.KeyCtrlO: toggle("1. "),
	tcell.KeyCtrlR: toggle("> "),

	tcell.KeyEnter:   func(_ *App, e *engine.Engine, _ *tcell.EventKey) error { return e.InsertNewline() },
	tcell.KeyTab:     func(_ *App, e *engine.Engine, _ *tcell.EventKey) error { return e.Indent() },
	tcell.KeyBacktab: func(_ *App, e *engine.Engine, _ *tcell.EventKey) error { return e.Dedent() },
	tcell.KeyEscape:  func(_ *App, e *engine.Engine, _ *tcell.EventKey) error { e.ClearSelection(); return nil },

	tcell.KeyBackspace:  backspace,
	tcell.KeyBackspace2: backspace,
	tcell.KeyDelete: func(_ *App, e *engine.Engine, ev *tcell.EventKey) error {
		if byWord(ev) {
			return e.DeleteWordRight()
		}
		return e.DeleteForward()
	},
}

func wrap(key string) command {
	return func(_ *App, e *engine.Engine, _ *tcell.EventKey) error { return e.Wrap(key) }
}

func toggle(prefix string) command {
	return func(_ *App, e *engine.Engine, _ *tcell.EventKey) error { return e.ToggleLinePrefix(prefix) }
}

func backspace(_ *App, e *engine.Engine, ev *tcell.EventKey) error {
	if byWord(ev) {
		return e.DeleteWordLeft()
	}
	return e.Backspace()
}

func byWord(ev *tcell.EventKey) bool {
	return ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0
}

// wrapRunes are typed keys that wrap a non-empty selection instead of
// replacing it.
var wrapRunes = map[rune]bool{
	'"': true, '\'': true, '`': true, '(': true, '[': true,
	'{': true, '<': true, '*': true, '_': true,
}

func (a *App) handleKey(ev *tcell.EventKey) error {
	key := ev.Key()
	if key != a.armed {
		a.armed = tcell.KeyNUL
	}

	e := a.Engine()
	if e == nil {
		if key == tcell.KeyCtrlQ {
			return ErrQuit
		}
		return nil
	}

	if m, ok := motions[key]; ok {
		extend := ev.Modifiers()&tcell.ModShift != 0
		if byWord(ev) {
			m.ctrl(e, extend)
		} else {
			m.plain(e, extend)
		}
		a.reveal(e)
		return nil
	}

	if cmd, ok := commands[key]; ok {
		a.status = ""
		err := cmd(a, e, ev)
		if errors.Is(err, ErrQuit) {
			return err
		}
		a.report(err)
		if e := a.Engine(); e != nil {
			a.reveal(e)
		}
		return nil
	}

	if key == tcell.KeyRune {
		a.status = ""
		a.report(a.typeRune(e, ev))
		a.reveal(e)
	}
	return nil
}

func (a *App) typeRune(e *engine.Engine, ev *tcell.EventKey) error {
	r := ev.Rune()
	if ev.Modifiers()&tcell.ModAlt != 0 {
		switch {
		case r >= '0' && r <= '6':
			return e.ToggleHeading(int(r - '0'))
		case r == 'd':
			return e.DeleteWordRight()
		case r == 's':
			return e.Wrap("~~")
		}
		return nil
	}
	if e.HasSelection() && wrapRunes[r] {
		return e.Wrap(string(r))
	}
	return e.InsertChar(r)
}

func (a *App) undo(e *engine.Engine, _ *tcell.EventKey) error {
	if e.ReadOnly() {
		return engine.ErrReadOnly
	}
	if !e.Undo() {
		a.setStatus("%v", history.ErrNothingToUndo)
	}
	return nil
}

func (a *App) redo(e *engine.Engine, _ *tcell.EventKey) error {
	if e.ReadOnly() {
		return engine.ErrReadOnly
	}
	if !e.Redo() {
		a.setStatus("%v", history.ErrNothingToRedo)
	}
	return nil
}

// confirm returns true when key was pressed twice in a row. The first
// press shows msg.
func (a *App) confirm(key tcell.Key, msg string) bool {
	if a.armed == key {
		a.armed = tcell.KeyNUL
		return true
	}
	a.armed = key
	a.status = msg
	return false
}

func (a *App) quit(_ *engine.Engine, _ *tcell.EventKey) error {
	if n := len(a.ws.Modified()); n > 0 {
		msg := fmt.Sprintf("%d unsaved document(s); press Ctrl+Q again to quit", n)
		if !a.confirm(tcell.KeyCtrlQ, msg) {
			return nil
		}
	}
	return ErrQuit
}

func (a *App) closeDocument(e *engine.Engine, _ *tcell.EventKey) error {
	if e.Modified() && !a.confirm(tcell.KeyCtrlW, "unsaved changes; press Ctrl+W again to close") {
		return nil
	}
	if err := a.ws.Close(a.current); err != nil {
		return err
	}
	handles := a.ws.Handles()
	if len(handles) == 0 {
		return ErrQuit
	}
	a.current = handles[len(handles)-1]
	return nil
}

func (a *App) cycleDocument(step int) {
	handles := a.ws.Handles()
	if len(handles) < 2 {
		return
	}
	i := 0
	for j, h := range handles {
		if h == a.current {
			i = j
			break
		}
	}
	i = (i + step + len(handles)) % len(handles)
	a.current = handles[i]
	if doc := a.Document(); doc != nil {
		a.setStatus("%s", displayName(doc.Name()))
	}
}
