// Package app is the mdpad terminal host. It owns the tcell screen,
// translates keys and mouse input into engine operations, draws the
// highlighted window, and reads and writes files.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/mdpad/internal/config"
	"github.com/dshills/mdpad/internal/engine"
	"github.com/dshills/mdpad/internal/workspace"
)

// doubleClickInterval is the longest gap between two clicks on the same
// cell that counts as a double click.
const doubleClickInterval = 400 * time.Millisecond

// App is the terminal editor.
type App struct {
	screen    tcell.Screen
	cfg       *config.Config
	ws        *workspace.Workspace
	theme     *Theme
	clipboard engine.Clipboard
	logger    *zap.Logger
	now       func() time.Time

	current workspace.Handle
	left    map[workspace.Handle]int

	// pager replaces editing when no engine could be created.
	pager *Pager

	status string
	armed  tcell.Key

	mouseDown  bool
	lastClick  time.Time
	lastClickX int
	lastClickY int

	pasting bool
	paste   strings.Builder
}

// Option configures an App.
type Option func(*App)

// WithClipboard sets the clipboard used by copy, cut and paste.
func WithClipboard(cb engine.Clipboard) Option {
	return func(a *App) {
		if cb != nil {
			a.clipboard = cb
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an App drawing on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		screen: screen,
		cfg:    cfg,
		theme:  NewTheme(cfg.Highlight.Theme),
		logger: zap.NewNop(),
		now:    time.Now,
		left:   make(map[workspace.Handle]int),
	}
	a.clipboard = DefaultClipboard()
	for _, opt := range opts {
		opt(a)
	}

	// One terminal cell is one line high and one character wide.
	engineOpts := append(cfg.EngineOptions(), engine.WithMetrics(1, 1))
	a.ws = workspace.New(
		workspace.WithLogger(a.logger.With(zap.String("component", "workspace"))),
		workspace.WithEngineOptions(engineOpts...),
	)
	a.ws.OnClose(func(h workspace.Handle, _ string) {
		delete(a.left, h)
	})

	screen.EnableMouse()
	screen.EnablePaste()
	return a
}

// Open opens path for editing, or switches to it when already open. A
// missing file opens as a new empty document. If the engine cannot be
// created the file is shown in a read-only pager instead.
func (a *App) Open(path string) error {
	if h, ok := a.ws.Lookup(path); ok {
		a.current = h
		return nil
	}

	content, isNew, err := readFile(path)
	if err != nil {
		return &OperationError{Op: "open", Target: path, Err: err}
	}

	doc, err := a.ws.Open(path, content)
	if err != nil {
		a.logger.Error("engine failed to initialize", zap.String("path", path), zap.Error(err))
		a.pager = NewPager(path, content)
		a.setStatus("editor unavailable (%v); read-only view", err)
		return nil
	}
	a.current = doc.Handle()
	a.logger.Info("document opened", zap.String("path", path), zap.Int("chars", doc.Engine().CharCount()))
	if isNew {
		a.setStatus("new file")
	}
	return nil
}

// OpenScratch opens an unnamed empty document.
func (a *App) OpenScratch() error {
	return a.Open("")
}

func readFile(path string) (content string, isNew bool, err error) {
	if path == "" {
		return "", true, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", true, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), false, nil
}

// Save writes the current document to its file.
func (a *App) Save() error {
	doc := a.Document()
	if doc == nil {
		return ErrNoDocument
	}
	path := doc.Name()
	if path == "" {
		return &OperationError{Op: "save", Err: errors.New("document has no file name")}
	}

	e := doc.Engine()
	content := e.Content()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &OperationError{Op: "save", Target: path, Err: err}
	}
	e.MarkSaved()
	a.logger.Info("document saved", zap.String("path", path), zap.Int("chars", e.CharCount()))
	a.setStatus("wrote %d lines to %s", e.LineCount(), path)
	return nil
}

// Document returns the current document, or nil.
func (a *App) Document() *workspace.Document {
	if a.current.IsNil() {
		return nil
	}
	doc, err := a.ws.Get(a.current)
	if err != nil {
		return nil
	}
	return doc
}

// Engine returns the current document's engine, or nil.
func (a *App) Engine() *engine.Engine {
	if doc := a.Document(); doc != nil {
		return doc.Engine()
	}
	return nil
}

// Workspace returns the open documents.
func (a *App) Workspace() *workspace.Workspace {
	return a.ws
}

// Pager returns the read-only fallback view, or nil while editing.
func (a *App) Pager() *Pager {
	return a.pager
}

// Status returns the status line message.
func (a *App) Status() string {
	return a.status
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
}

// Run draws and handles events until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
		case <-stop:
		}
	}()

	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return nil
		}
		if err := a.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		a.Draw()
	}
}

// HandleEvent applies one terminal event. It returns ErrQuit when the
// user asks to exit.
func (a *App) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventPaste:
		a.handlePaste(ev)
	case *tcell.EventKey:
		if a.pasting {
			a.collectPaste(ev)
			return nil
		}
		if a.pager != nil {
			return a.pager.HandleKey(ev, a.textRows())
		}
		return a.handleKey(ev)
	case *tcell.EventMouse:
		if a.pager != nil {
			a.pager.HandleMouse(ev)
			return nil
		}
		a.handleMouse(ev)
	}
	return nil
}

// textRows is the number of rows available for document text.
func (a *App) textRows() int {
	_, h := a.screen.Size()
	return max(h-1, 0)
}

// report turns an operation error into a status message.
func (a *App) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrReadOnly):
		a.setStatus("document is read-only")
	case errors.Is(err, engine.ErrClipboard):
		a.logger.Warn("clipboard failed", zap.Error(err))
		a.setStatus("clipboard unavailable")
	default:
		a.logger.Error("operation failed", zap.Error(err))
		a.setStatus("%v", err)
	}
}
