package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mdpad/internal/config"
	"github.com/dshills/mdpad/internal/renderer/highlight"
)

// ============================================================================
// Helpers
// ============================================================================

func newTestApp(t *testing.T, cfg *config.Config, opts ...Option) (*App, tcell.Screen, *MemoryClipboard) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(40, 10)

	cb := &MemoryClipboard{}
	return New(s, cfg, append([]Option{WithClipboard(cb)}, opts...)...), s, cb
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func openFile(t *testing.T, a *App, path string) {
	t.Helper()
	if err := a.Open(path); err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
}

func press(t *testing.T, a *App, key tcell.Key, mod tcell.ModMask) error {
	t.Helper()
	return a.HandleEvent(tcell.NewEventKey(key, 0, mod))
}

func typeText(t *testing.T, a *App, text string) {
	t.Helper()
	for _, r := range text {
		var err error
		if r == '\n' {
			err = a.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
		} else {
			err = a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		}
		if err != nil {
			t.Fatalf("unexpected error typing %q: %v", r, err)
		}
	}
}

func cellAt(s tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return r, style
}

// ============================================================================
// Files
// ============================================================================

func TestOpenEditSave(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	path := writeFile(t, "notes.md", "# Title\n")
	openFile(t, a, path)

	_ = press(t, a, tcell.KeyEnd, tcell.ModCtrl)
	typeText(t, a, "hello")

	if !a.Document().Modified() {
		t.Error("expected modified document")
	}
	if err := press(t, a, tcell.KeyCtrlS, tcell.ModCtrl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "# Title\nhello" {
		t.Errorf("expected %q, got %q", "# Title\nhello", string(data))
	}
	if a.Document().Modified() {
		t.Error("expected clean document after save")
	}
	if !strings.Contains(a.Status(), "wrote 2 lines") {
		t.Errorf("unexpected status %q", a.Status())
	}
}

func TestOpenMissingFile(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	path := filepath.Join(t.TempDir(), "new.md")
	openFile(t, a, path)

	if a.Status() != "new file" {
		t.Errorf("expected new file status, got %q", a.Status())
	}
	typeText(t, a, "x")
	if err := a.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "x" {
		t.Errorf("expected %q, got %q", "x", string(data))
	}
}

func TestOpenSamePathReusesDocument(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	path := writeFile(t, "a.md", "a")
	openFile(t, a, path)
	openFile(t, a, path)

	if a.Workspace().Len() != 1 {
		t.Errorf("expected 1 document, got %d", a.Workspace().Len())
	}
}

func TestOpenUnreadableFile(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	err := a.Open(t.TempDir())

	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "open" {
		t.Errorf("expected open OperationError, got %v", err)
	}
}

func TestSaveScratchFails(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	if err := a.OpenScratch(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var opErr *OperationError
	if err := a.Save(); !errors.As(err, &opErr) {
		t.Errorf("expected OperationError, got %v", err)
	}
}

func TestSaveWithoutDocument(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	if err := a.Save(); !errors.Is(err, ErrNoDocument) {
		t.Errorf("expected ErrNoDocument, got %v", err)
	}
}

// ============================================================================
// Keys
// ============================================================================

func TestUndoRedoKeys(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	_ = a.OpenScratch()
	typeText(t, a, "ab")

	_ = press(t, a, tcell.KeyCtrlZ, tcell.ModCtrl)
	if got := a.Engine().Content(); got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}
	_ = press(t, a, tcell.KeyCtrlZ, tcell.ModCtrl)
	_ = press(t, a, tcell.KeyCtrlZ, tcell.ModCtrl)
	if a.Status() != "nothing to undo" {
		t.Errorf("expected nothing-to-undo status, got %q", a.Status())
	}

	_ = press(t, a, tcell.KeyCtrlY, tcell.ModCtrl)
	if got := a.Engine().Content(); got != "a" {
		t.Errorf("expected %q after redo, got %q", "a", got)
	}
}

func TestEditingKeys(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	_ = a.OpenScratch()

	typeText(t, a, "- one\ntwo")
	if got := a.Engine().Content(); got != "- one\n- two" {
		t.Errorf("expected list continuation, got %q", got)
	}

	_ = press(t, a, tcell.KeyTab, tcell.ModNone)
	if got := a.Engine().Line(1); got != "  - two" {
		t.Errorf("expected indented line, got %q", got)
	}
	_ = press(t, a, tcell.KeyBacktab, tcell.ModShift)
	if got := a.Engine().Line(1); got != "- two" {
		t.Errorf("expected dedented line, got %q", got)
	}

	_ = press(t, a, tcell.KeyBackspace2, tcell.ModAlt)
	if got := a.Engine().Line(1); got != "- " {
		t.Errorf("expected word deleted, got %q", got)
	}
	_ = press(t, a, tcell.KeyBackspace2, tcell.ModNone)
	if got := a.Engine().Line(1); got != "-" {
		t.Errorf("expected one character deleted, got %q", got)
	}
}

func TestHeadingKeys(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	_ = a.OpenScratch()
	typeText(t, a, "Title")

	_ = a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModAlt))
	if got := a.Engine().Content(); got != "## Title" {
		t.Errorf("expected %q, got %q", "## Title", got)
	}
	_ = a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModAlt))
	if got := a.Engine().Content(); got != "Title" {
		t.Errorf("expected %q, got %q", "Title", got)
	}
}

func TestTypedDelimiterWrapsSelection(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	_ = a.OpenScratch()
	typeText(t, a, "hello")

	_ = press(t, a, tcell.KeyCtrlA, tcell.ModCtrl)
	typeText(t, a, "*")
	if got := a.Engine().Content(); got != "*hello*" {
		t.Errorf("expected %q, got %q", "*hello*", got)
	}

	_ = press(t, a, tcell.KeyCtrlB, tcell.ModCtrl)
	if got := a.Engine().Content(); got != "**hello**" {
		t.Errorf("expected emphasis replaced by strong, got %q", got)
	}
}

func TestShiftMotionSelects(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	_ = a.OpenScratch()
	typeText(t, a, "foo bar")

	_ = press(t, a, tcell.KeyLeft, tcell.ModShift|tcell.ModCtrl)
	if got := a.Engine().SelectedText(); got != "bar" {
		t.Errorf("expected %q, got %q", "bar", got)
	}
	_ = press(t, a, tcell.KeyHome, tcell.ModNone)
	if a.Engine().HasSelection() || a.Engine().Cursor() != 4 {
		t.Errorf("expected collapse to selection start 4, got %d", a.Engine().Cursor())
	}
	_ = press(t, a, tcell.KeyHome, tcell.ModNone)
	if a.Engine().Cursor() != 0 {
		t.Errorf("expected line start 0, got %d", a.Engine().Cursor())
	}
}

func TestClipboardKeys(t *testing.T) {
	a, _, cb := newTestApp(t, nil)
	openFile(t, a, writeFile(t, "c.md", "hello world"))

	_ = press(t, a, tcell.KeyCtrlD, tcell.ModCtrl)
	_ = press(t, a, tcell.KeyCtrlC, tcell.ModCtrl)
	if text, _ := cb.ReadText(); text != "hello" {
		t.Errorf("expected %q copied, got %q", "hello", text)
	}

	_ = press(t, a, tcell.KeyEscape, tcell.ModNone)
	_ = press(t, a, tcell.KeyEnd, tcell.ModCtrl)
	_ = press(t, a, tcell.KeyCtrlV, tcell.ModCtrl)
	if got := a.Engine().Content(); got != "hello worldhello" {
		t.Errorf("expected %q, got %q", "hello worldhello", got)
	}

	_ = press(t, a, tcell.KeyCtrlA, tcell.ModCtrl)
	_ = press(t, a, tcell.KeyCtrlX, tcell.ModCtrl)
	if got := a.Engine().Content(); got != "" {
		t.Errorf("expected empty document after cut, got %q", got)
	}
	if text, _ := cb.ReadText(); text != "hello worldhello" {
		t.Errorf("expected cut text on clipboard, got %q", text)
	}
}

type failingClipboard struct{}

func (failingClipboard) ReadText() (string, error) { return "", errors.New("no display") }
func (failingClipboard) WriteText(string) error    { return errors.New("no display") }

func TestClipboardFailureStatus(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	defer s.Fini()
	a := New(s, nil, WithClipboard(failingClipboard{}))
	openFile(t, a, writeFile(t, "c.md", "text"))

	_ = press(t, a, tcell.KeyCtrlV, tcell.ModCtrl)
	if a.Status() != "clipboard unavailable" {
		t.Errorf("unexpected status %q", a.Status())
	}
	if a.Engine().Content() != "text" || a.Engine().CanUndo() {
		t.Error("expected document untouched")
	}
}

func TestReadOnlyStatus(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.ReadOnly = true
	a, _, _ := newTestApp(t, cfg)
	openFile(t, a, writeFile(t, "ro.md", "fixed"))

	typeText(t, a, "x")
	if a.Engine().Content() != "fixed" {
		t.Errorf("expected content unchanged, got %q", a.Engine().Content())
	}
	if a.Status() != "document is read-only" {
		t.Errorf("unexpected status %q", a.Status())
	}

	_ = press(t, a, tcell.KeyRight, tcell.ModNone)
	if a.Engine().Cursor() != 1 {
		t.Errorf("expected navigation to work, got cursor %d", a.Engine().Cursor())
	}
}

func TestQuitConfirmation(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	_ = a.OpenScratch()

	if err := press(t, a, tcell.KeyCtrlQ, tcell.ModCtrl); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit for clean workspace, got %v", err)
	}

	typeText(t, a, "x")
	if err := press(t, a, tcell.KeyCtrlQ, tcell.ModCtrl); err != nil {
		t.Fatalf("expected confirmation first, got %v", err)
	}
	if !strings.Contains(a.Status(), "unsaved") {
		t.Errorf("unexpected status %q", a.Status())
	}
	if err := press(t, a, tcell.KeyCtrlQ, tcell.ModCtrl); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit on second press, got %v", err)
	}
}

func TestQuitConfirmationResetByOtherKey(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	_ = a.OpenScratch()
	typeText(t, a, "x")

	_ = press(t, a, tcell.KeyCtrlQ, tcell.ModCtrl)
	_ = press(t, a, tcell.KeyLeft, tcell.ModNone)
	if err := press(t, a, tcell.KeyCtrlQ, tcell.ModCtrl); err != nil {
		t.Errorf("expected confirmation again, got %v", err)
	}
}

func TestMultipleDocuments(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	first := writeFile(t, "one.md", "one")
	second := writeFile(t, "two.md", "two")
	openFile(t, a, first)
	openFile(t, a, second)

	if a.Document().Name() != second {
		t.Fatalf("expected second document current, got %s", a.Document().Name())
	}
	_ = press(t, a, tcell.KeyCtrlN, tcell.ModCtrl)
	if a.Document().Name() != first {
		t.Errorf("expected first document after cycling, got %s", a.Document().Name())
	}
	_ = press(t, a, tcell.KeyCtrlP, tcell.ModCtrl)
	if a.Document().Name() != second {
		t.Errorf("expected second document, got %s", a.Document().Name())
	}

	if err := press(t, a, tcell.KeyCtrlW, tcell.ModCtrl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Workspace().Len() != 1 || a.Document().Name() != first {
		t.Errorf("expected only the first document left")
	}
	if err := press(t, a, tcell.KeyCtrlW, tcell.ModCtrl); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit after closing the last document, got %v", err)
	}
}

// ============================================================================
// Mouse and paste
// ============================================================================

func TestMouseClickAndDoubleClick(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	openFile(t, a, writeFile(t, "m.md", "hello world"))
	clock := time.Unix(0, 0)
	a.now = func() time.Time { return clock }
	gutter := gutterWidth(a.Engine())

	click := func(x, y int, mod tcell.ModMask) {
		_ = a.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, mod))
		_ = a.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, mod))
	}

	click(gutter+3, 0, tcell.ModNone)
	if a.Engine().Cursor() != 3 || a.Engine().HasSelection() {
		t.Errorf("expected cursor 3, got %d", a.Engine().Cursor())
	}

	clock = clock.Add(time.Second)
	click(gutter+8, 0, tcell.ModShift)
	if got := a.Engine().SelectedText(); got != "lo wo" {
		t.Errorf("expected shift-click selection %q, got %q", "lo wo", got)
	}

	clock = clock.Add(time.Second)
	click(gutter+7, 0, tcell.ModNone)
	clock = clock.Add(100 * time.Millisecond)
	click(gutter+7, 0, tcell.ModNone)
	if got := a.Engine().SelectedText(); got != "world" {
		t.Errorf("expected double-click to select %q, got %q", "world", got)
	}
}

func TestMouseDrag(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	openFile(t, a, writeFile(t, "m.md", "hello world"))
	gutter := gutterWidth(a.Engine())

	_ = a.HandleEvent(tcell.NewEventMouse(gutter, 0, tcell.Button1, tcell.ModNone))
	_ = a.HandleEvent(tcell.NewEventMouse(gutter+5, 0, tcell.Button1, tcell.ModNone))
	_ = a.HandleEvent(tcell.NewEventMouse(gutter+5, 0, tcell.ButtonNone, tcell.ModNone))
	if got := a.Engine().SelectedText(); got != "hello" {
		t.Errorf("expected drag selection %q, got %q", "hello", got)
	}
}

func TestMouseWheelScrolls(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	openFile(t, a, writeFile(t, "long.md", strings.Repeat("line\n", 50)))
	a.Draw()

	_ = a.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	if got := a.Engine().ScrollOffset(); got != wheelLines {
		t.Errorf("expected scroll %d, got %v", wheelLines, got)
	}
	_ = a.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	if got := a.Engine().ScrollOffset(); got != 0 {
		t.Errorf("expected scroll 0, got %v", got)
	}
}

func TestBracketedPaste(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	_ = a.OpenScratch()

	_ = a.HandleEvent(tcell.NewEventPaste(true))
	typeText(t, a, "ab\nc")
	_ = a.HandleEvent(tcell.NewEventPaste(false))

	if got := a.Engine().Content(); got != "ab\nc" {
		t.Errorf("expected %q, got %q", "ab\nc", got)
	}
	if a.Engine().UndoCount() != 1 {
		t.Errorf("expected paste as one undo step, got %d", a.Engine().UndoCount())
	}
}

// ============================================================================
// Drawing
// ============================================================================

func TestDrawHighlightedLine(t *testing.T) {
	a, s, _ := newTestApp(t, nil)
	openFile(t, a, writeFile(t, "d.md", "# Hi"))
	a.Draw()

	if r, _ := cellAt(s, 0, 0); r != '1' {
		t.Errorf("expected line number 1, got %q", r)
	}
	r, style := cellAt(s, 2, 0)
	if r != '#' || style != a.theme.Style(highlight.TagHeadingMarker) {
		t.Errorf("expected heading marker at column 2, got %q", r)
	}
	r, style = cellAt(s, 4, 0)
	if r != 'H' || style != a.theme.Style(highlight.TagHeading) {
		t.Errorf("expected heading text at column 4, got %q", r)
	}
}

func TestDrawSelectionAndStatus(t *testing.T) {
	a, s, _ := newTestApp(t, nil)
	openFile(t, a, writeFile(t, "sel.md", "abc"))
	_ = press(t, a, tcell.KeyRight, tcell.ModShift)
	a.Draw()

	if _, style := cellAt(s, 2, 0); style != a.theme.Selection() {
		t.Error("expected selected cell drawn with the selection style")
	}
	if _, style := cellAt(s, 3, 0); style == a.theme.Selection() {
		t.Error("expected unselected cell drawn normally")
	}

	var sb strings.Builder
	for x := range 40 {
		r, _ := cellAt(s, x, 9)
		sb.WriteRune(r)
	}
	if status := sb.String(); !strings.Contains(status, "sel.md") || !strings.Contains(status, "Ln 1, Col 2") {
		t.Errorf("unexpected status line %q", status)
	}
}

func TestDrawScrollsToCursor(t *testing.T) {
	a, s, _ := newTestApp(t, nil)
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "row"
	}
	openFile(t, a, writeFile(t, "long.md", strings.Join(lines, "\n")))

	_ = press(t, a, tcell.KeyEnd, tcell.ModCtrl)
	a.Draw()

	if top := topLine(a.Engine()); top != 30-9 {
		t.Errorf("expected last page at line 21, got %d", top)
	}
	if r, _ := cellAt(s, 0, 8); r != '3' {
		t.Errorf("expected line 30 on the last text row, got %q", r)
	}
}

// ============================================================================
// Fallback
// ============================================================================

func TestEngineFailureFallsBackToPager(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.UndoCapacity = 0
	a, s, _ := newTestApp(t, cfg)
	openFile(t, a, writeFile(t, "p.md", "plain\ntext"))

	if a.Pager() == nil {
		t.Fatal("expected pager fallback")
	}
	if a.Engine() != nil {
		t.Error("expected no engine")
	}
	if !strings.Contains(a.Status(), "read-only view") {
		t.Errorf("unexpected status %q", a.Status())
	}

	typeText(t, a, "j")
	a.Draw()
	if r, _ := cellAt(s, 0, 0); r != 'p' {
		t.Errorf("expected raw text drawn, got %q", r)
	}

	if err := a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit from pager, got %v", err)
	}
}
