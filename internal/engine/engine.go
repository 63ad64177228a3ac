package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/mdpad/internal/engine/buffer"
	"github.com/dshills/mdpad/internal/engine/cursor"
	"github.com/dshills/mdpad/internal/engine/history"
	"github.com/dshills/mdpad/internal/engine/rope"
	"github.com/dshills/mdpad/internal/renderer/highlight"
	"github.com/dshills/mdpad/internal/renderer/viewport"
)

// Re-export commonly used types for convenience.
type (
	// Offset is a character position in the document.
	Offset = buffer.Offset

	// Position is an offset with its line and column.
	Position = buffer.Position

	// Selection is a normalized [Start, End) character range.
	Selection = cursor.Selection

	// HighlightedLine is the render data for one line.
	HighlightedLine = highlight.HighlightedLine

	// Span is a run of line text sharing one style tag.
	Span = highlight.Span

	// Window is the line range the host should render.
	Window = viewport.Window
)

// Engine is the editing facade for one document.
type Engine struct {
	buf  *buffer.Buffer
	cur  *cursor.Model
	hist *history.Stack
	hl   *highlight.Highlighter
	view *viewport.Windower

	// saved is the content at the last MarkSaved.
	saved rope.Rope

	// editLine is the first line touched by the last edit or batch.
	editLine int

	// Configuration
	indentUnit     string
	undoCapacity   int
	lineHeight     float64
	charWidth      float64
	overscan       int
	fenceLanguages bool
	readOnly       bool
	logger         *zap.Logger

	// Initialization
	initContent string
}

// New creates an Engine with the given options. It fails with
// ErrInvalidOption when an option value cannot be used.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		indentUnit:     DefaultIndentUnit,
		undoCapacity:   DefaultUndoCapacity,
		lineHeight:     DefaultLineHeightPx,
		charWidth:      DefaultCharWidthPx,
		overscan:       DefaultOverscan,
		fenceLanguages: true,
		logger:         zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}

	e.buf = buffer.NewBufferFromString(e.initContent)
	e.initContent = ""
	e.saved = e.buf.Rope()
	e.cur = cursor.NewModel(e.buf)

	e.hist = history.NewStack(e.undoCapacity)
	e.hist.OnEvict(func(n int) {
		e.logger.Debug("undo history evicted", zap.Int("entries", n), zap.Int("capacity", e.undoCapacity))
	})

	e.hl = highlight.NewHighlighter(e.buf, highlight.WithFenceLanguages(e.fenceLanguages))
	e.view = viewport.NewWindower(e.lineHeight, viewport.WithOverscan(e.overscan))
	e.view.SetLineCount(e.buf.LineCount())

	e.logger.Debug("engine created",
		zap.Int("chars", e.buf.Len()),
		zap.Int("lines", e.buf.LineCount()),
		zap.Bool("read_only", e.readOnly),
	)
	return e, nil
}

func (e *Engine) validate() error {
	switch {
	case e.indentUnit == "" || strings.Trim(e.indentUnit, " \t") != "":
		return fmt.Errorf("%w: indent unit %q must be spaces or tabs", ErrInvalidOption, e.indentUnit)
	case e.undoCapacity <= 0:
		return fmt.Errorf("%w: undo capacity %d must be positive", ErrInvalidOption, e.undoCapacity)
	case e.lineHeight <= 0 || e.charWidth <= 0:
		return fmt.Errorf("%w: metrics %vx%v must be positive", ErrInvalidOption, e.charWidth, e.lineHeight)
	case e.overscan < 0:
		return fmt.Errorf("%w: overscan %d must not be negative", ErrInvalidOption, e.overscan)
	}
	return nil
}

// ============================================================================
// Content
// ============================================================================

// Content returns the full document.
func (e *Engine) Content() string {
	return e.buf.Content()
}

// SetContent replaces the document and resets the cursor, selection,
// undo/redo history, highlighting and scroll position. It is a document
// load, not an edit, so it is allowed on a read-only engine.
func (e *Engine) SetContent(text string) {
	e.buf.SetContent(text)
	e.saved = e.buf.Rope()
	e.editLine = 0
	e.cur.Reset()
	e.hist.Clear()
	e.hl.Reset()
	e.view.SetLineCount(e.buf.LineCount())
	e.view.Scroll(0)
	e.logger.Debug("content replaced", zap.Int("chars", e.buf.Len()), zap.Int("lines", e.buf.LineCount()))
}

// CharCount returns the number of characters in the document.
func (e *Engine) CharCount() int {
	return e.buf.Len()
}

// LineCount returns the number of lines. An empty document has one line.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// Line returns line i without its trailing newline.
func (e *Engine) Line(i int) string {
	return e.buf.Line(i)
}

// LineStart returns the offset of the first character of line i.
func (e *Engine) LineStart(i int) Offset {
	return e.buf.LineStart(i)
}

// LineEnd returns the offset of line i's newline, or CharCount for the
// last line.
func (e *Engine) LineEnd(i int) Offset {
	return e.buf.LineEnd(i)
}

// LineColToOffset converts a line and column to an offset, clamping both.
func (e *Engine) LineColToOffset(line, col int) Offset {
	return e.buf.LineColToOffset(line, col)
}

// OffsetToPosition converts an offset to its line and column.
func (e *Engine) OffsetToPosition(offset Offset) Position {
	return e.buf.OffsetToPosition(offset)
}

// Slice returns the text in [start, end).
func (e *Engine) Slice(start, end Offset) string {
	return e.buf.Slice(start, end)
}

// Revision returns the buffer revision, bumped by every mutation.
func (e *Engine) Revision() buffer.Revision {
	return e.buf.Revision()
}

// Modified reports whether the content differs from the last MarkSaved
// (or the content the engine was loaded with).
func (e *Engine) Modified() bool {
	return !e.buf.Rope().Equals(e.saved)
}

// MarkSaved records the current content as persisted.
func (e *Engine) MarkSaved() {
	e.saved = e.buf.Rope()
}

// ReadOnly reports whether edits are rejected.
func (e *Engine) ReadOnly() bool {
	return e.readOnly
}

// SetReadOnly enables or disables edits.
func (e *Engine) SetReadOnly(readOnly bool) {
	e.readOnly = readOnly
}

// ============================================================================
// Mutation Primitives
// ============================================================================

// ReplaceRange replaces [start, end) with text and places the cursor
// after the inserted text, which is also returned.
func (e *Engine) ReplaceRange(start, end Offset, text string) (Offset, error) {
	if e.readOnly {
		return e.cur.Cursor(), ErrReadOnly
	}
	r := buffer.NewRange(start, end).Clamp(e.buf.Len())
	if e.buf.Slice(r.Start, r.End) == text {
		e.cur.SetCursor(r.End)
		return r.End, nil
	}
	e.SaveUndoState()
	res := e.buf.Apply(buffer.Edit{Range: r, NewText: text})
	e.afterEdit(res.FirstLine)
	e.cur.SetCursor(res.NewRange.End)
	return res.NewRange.End, nil
}

// DeleteRange removes [start, end) and places the cursor at start.
func (e *Engine) DeleteRange(start, end Offset) error {
	_, err := e.ReplaceRange(start, end, "")
	return err
}

// EditLine returns the 0-indexed first line touched by the last change
// to the document. For batched edits it is the lowest line any of them
// touched; content loads, undo and redo report line 0.
func (e *Engine) EditLine() int {
	return e.editLine
}

// afterEdit refreshes the derived state after the buffer changed starting
// at firstLine.
func (e *Engine) afterEdit(firstLine int) {
	e.editLine = firstLine
	e.hl.Invalidate(firstLine)
	e.view.SetLineCount(e.buf.LineCount())
}

// selectionState captures the selection endpoints so a batch of edits can
// carry them along.
type selectionState struct {
	anchor, active Offset
	selecting      bool
}

func (e *Engine) captureSelection() selectionState {
	st := selectionState{active: e.cur.Cursor(), anchor: e.cur.Cursor()}
	if e.cur.HasSelection() {
		st.selecting = true
		if a, ok := e.cur.Anchor(); ok {
			st.anchor = a
		} else {
			sel := e.cur.Selection()
			st.anchor = sel.Start
			if st.active == sel.Start {
				st.anchor = sel.End
			}
		}
	}
	return st
}

func (e *Engine) restoreSelection(st selectionState) {
	if st.selecting {
		e.cur.SetSelection(st.anchor, st.active)
		return
	}
	e.cur.SetCursor(st.active)
}

// applyEdits saves an undo snapshot and applies edits in order, carrying
// the selection through each one. Each edit's range refers to the
// document as left by the edits before it. It reports whether anything
// changed; an empty batch saves nothing.
func (e *Engine) applyEdits(edits []buffer.Edit) bool {
	if len(edits) == 0 {
		return false
	}
	e.SaveUndoState()

	st := e.captureSelection()
	first := -1
	for _, ed := range edits {
		res := e.buf.Apply(ed)
		st.anchor = cursor.TransformOffset(st.anchor, res)
		st.active = cursor.TransformOffset(st.active, res)
		if first < 0 || res.FirstLine < first {
			first = res.FirstLine
		}
	}
	e.afterEdit(first)
	e.restoreSelection(st)
	return true
}

// ============================================================================
// Cursor and Selection
// ============================================================================

// Cursor returns the cursor offset.
func (e *Engine) Cursor() Offset {
	return e.cur.Cursor()
}

// SetCursor moves the cursor to offset, clamped, and clears any selection.
func (e *Engine) SetCursor(offset Offset) {
	e.cur.SetCursor(offset)
}

// CursorPosition returns the cursor's offset, line and column.
func (e *Engine) CursorPosition() Position {
	return e.cur.Position()
}

// SetSelection selects between a and b in either order. The cursor is
// placed at b.
func (e *Engine) SetSelection(a, b Offset) {
	e.cur.SetSelection(a, b)
}

// Selection returns the selection, or an empty selection at the cursor.
func (e *Engine) Selection() Selection {
	return e.cur.Selection()
}

// HasSelection reports whether a non-empty selection is active.
func (e *Engine) HasSelection() bool {
	return e.cur.HasSelection()
}

// SelectedText returns the selected text, or "" without a selection.
func (e *Engine) SelectedText() string {
	if !e.cur.HasSelection() {
		return ""
	}
	sel := e.cur.Selection()
	return e.buf.Slice(sel.Start, sel.End)
}

// ClearSelection drops the selection and anchor, keeping the cursor.
func (e *Engine) ClearSelection() {
	e.cur.ClearSelection()
}

// SelectAll selects the whole document.
func (e *Engine) SelectAll() {
	e.cur.SetSelection(0, e.buf.Len())
}

// ============================================================================
// Undo/Redo
// ============================================================================

func (e *Engine) snapshot() history.Entry {
	return history.Entry{Text: e.buf.Rope(), Cursor: e.cur.Cursor()}
}

// SaveUndoState snapshots the content and cursor. Edit operations call it
// before mutating; a save equal to the newest snapshot is ignored.
func (e *Engine) SaveUndoState() {
	e.hist.Save(e.snapshot())
}

// Undo restores the previous snapshot. It returns false when there is
// nothing to undo or the engine is read-only.
func (e *Engine) Undo() bool {
	if e.readOnly {
		return false
	}
	prev, ok := e.hist.Undo(e.snapshot())
	if !ok {
		return false
	}
	e.restore(prev)
	e.logger.Debug("undo", zap.Int("undo", e.hist.UndoCount()), zap.Int("redo", e.hist.RedoCount()))
	return true
}

// Redo reapplies the most recently undone state. It returns false when
// there is nothing to redo or the engine is read-only.
func (e *Engine) Redo() bool {
	if e.readOnly {
		return false
	}
	next, ok := e.hist.Redo(e.snapshot())
	if !ok {
		return false
	}
	e.restore(next)
	e.logger.Debug("redo", zap.Int("undo", e.hist.UndoCount()), zap.Int("redo", e.hist.RedoCount()))
	return true
}

func (e *Engine) restore(entry history.Entry) {
	e.buf.Restore(entry.Text)
	e.editLine = e.buf.EditLine()
	e.cur.SetCursor(entry.Cursor)
	e.hl.Reset()
	e.view.SetLineCount(e.buf.LineCount())
}

// ClearUndoRedo drops all history.
func (e *Engine) ClearUndoRedo() {
	e.hist.Clear()
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.hist.CanRedo()
}

// UndoCount returns the number of undo snapshots held.
func (e *Engine) UndoCount() int {
	return e.hist.UndoCount()
}

// RedoCount returns the number of redo snapshots held.
func (e *Engine) RedoCount() int {
	return e.hist.RedoCount()
}

// ============================================================================
// Highlighting and Windowing
// ============================================================================

// HighlightedLines returns styled spans for lines [start, start+count).
func (e *Engine) HighlightedLines(start, count int) []HighlightedLine {
	return e.hl.HighlightedLines(start, count)
}

// ResetHighlighting drops all cached highlighting state.
func (e *Engine) ResetHighlighting() {
	e.hl.Reset()
	e.logger.Debug("highlighting reset")
}

// Window returns the line range to render.
func (e *Engine) Window() Window {
	return e.view.Window()
}

// VisibleLines returns highlighted lines for the current window.
func (e *Engine) VisibleLines() []HighlightedLine {
	w := e.view.Window()
	return e.hl.HighlightedLines(w.StartLine, w.Count)
}

// Scroll sets the vertical scroll offset in pixels.
func (e *Engine) Scroll(px float64) Window {
	return e.view.Scroll(px)
}

// ScrollBy moves the scroll offset by delta pixels.
func (e *Engine) ScrollBy(delta float64) Window {
	return e.view.ScrollBy(delta)
}

// ScrollOffset returns the vertical scroll offset in pixels.
func (e *Engine) ScrollOffset() float64 {
	return e.view.ScrollOffset()
}

// Resize sets the viewport height in pixels.
func (e *Engine) Resize(heightPx float64) Window {
	return e.view.Resize(heightPx)
}

// RevealCursor scrolls so the cursor's line is visible.
func (e *Engine) RevealCursor() Window {
	return e.view.Reveal(e.buf.LineAt(e.cur.Cursor()))
}

// Metrics returns the line height and character width in pixels.
func (e *Engine) Metrics() (lineHeightPx, charWidthPx float64) {
	return e.lineHeight, e.charWidth
}
