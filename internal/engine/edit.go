package engine

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/mdpad/internal/engine/buffer"
	"github.com/dshills/mdpad/internal/renderer/highlight"
)

// ============================================================================
// Typing and Deletion
// ============================================================================

// InsertText replaces the selection (or inserts at the cursor) with text
// and places the cursor after it.
func (e *Engine) InsertText(text string) error {
	sel := e.cur.Selection()
	return e.replace(sel.Start, sel.End, text)
}

// InsertChar inserts a single character.
func (e *Engine) InsertChar(r rune) error {
	return e.InsertText(string(r))
}

// Backspace deletes the selection, or the character before the cursor.
func (e *Engine) Backspace() error {
	if e.cur.HasSelection() {
		return e.deleteSelection()
	}
	c := e.cur.Cursor()
	return e.replace(c-1, c, "")
}

// DeleteForward deletes the selection, or the character after the cursor.
func (e *Engine) DeleteForward() error {
	if e.cur.HasSelection() {
		return e.deleteSelection()
	}
	c := e.cur.Cursor()
	return e.replace(c, c+1, "")
}

// DeleteWordLeft deletes the selection, or back to the start of the
// previous word.
func (e *Engine) DeleteWordLeft() error {
	if e.cur.HasSelection() {
		return e.deleteSelection()
	}
	c := e.cur.Cursor()
	return e.replace(e.wordLeft(c), c, "")
}

// DeleteWordRight deletes the selection, or forward to the end of the
// next word.
func (e *Engine) DeleteWordRight() error {
	if e.cur.HasSelection() {
		return e.deleteSelection()
	}
	c := e.cur.Cursor()
	return e.replace(c, e.wordRight(c), "")
}

func (e *Engine) deleteSelection() error {
	sel := e.cur.Selection()
	return e.replace(sel.Start, sel.End, "")
}

// replace is the single-range edit behind typing and deletion. Ranges
// are clamped; an edit that leaves the text unchanged only moves the
// cursor and saves no undo state.
func (e *Engine) replace(start, end Offset, text string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	r := buffer.NewRange(e.buf.Clamp(start), e.buf.Clamp(end))
	if e.buf.Slice(r.Start, r.End) == text {
		e.cur.SetCursor(r.End)
		return nil
	}
	e.SaveUndoState()
	res := e.buf.Apply(buffer.Edit{Range: r, NewText: text})
	e.afterEdit(res.FirstLine)
	e.cur.SetCursor(res.NewRange.End)
	return nil
}

// ============================================================================
// Newline with Continuation
// ============================================================================

// InsertNewline breaks the line at the cursor, replacing any selection.
// When the cursor is past a list or blockquote prefix the new line starts
// with the same prefix; ordered list numbers are incremented and task
// boxes reset. Pressing it on an item that has only a prefix removes the
// prefix instead, ending the list.
func (e *Engine) InsertNewline() error {
	if e.readOnly {
		return ErrReadOnly
	}
	sel := e.cur.Selection()
	pos := e.buf.OffsetToPosition(sel.Start)
	line := e.buf.Line(pos.Line)

	p := parseLinePrefix(line)
	if pos.Col < p.length() {
		return e.replace(sel.Start, sel.End, "\n")
	}
	if p.hasMarker() && strings.TrimSpace(line[p.length():]) == "" && sel.IsEmpty() &&
		sel.Start == e.buf.LineEnd(pos.Line) {
		// Empty item: drop the marker and keep any quote prefix.
		ls := e.buf.LineStart(pos.Line)
		return e.replace(ls, ls+utf8.RuneCountInString(line), p.quote)
	}
	return e.replace(sel.Start, sel.End, "\n"+p.continuation())
}

// linePrefix is the block structure at the start of a markdown line.
type linePrefix struct {
	quote  string // "> " markers, possibly nested
	indent string // whitespace before a list marker or text
	marker string // list marker with its trailing space, if any
}

func parseLinePrefix(line string) linePrefix {
	var p linePrefix
	i := 0
	for {
		j := i
		for j < len(line) && j-i < 3 && line[j] == ' ' {
			j++
		}
		if j >= len(line) || line[j] != '>' {
			break
		}
		j++
		if j < len(line) && line[j] == ' ' {
			j++
		}
		i = j
	}
	p.quote = line[:i]

	rest := line[i:]
	ws := len(rest) - len(strings.TrimLeft(rest, " \t"))
	p.indent = rest[:ws]
	if n := highlight.ListMarkerLen(rest); n > 0 {
		p.marker = rest[ws:n]
	}
	return p
}

func (p linePrefix) length() int {
	return len(p.quote) + len(p.indent) + len(p.marker)
}

func (p linePrefix) hasMarker() bool {
	return p.marker != ""
}

// continuation returns the prefix for the line after p.
func (p linePrefix) continuation() string {
	if p.marker == "" {
		return p.quote + p.indent
	}
	return p.quote + p.indent + nextMarker(p.marker)
}

// nextMarker returns the list marker for the item after m.
func nextMarker(m string) string {
	bullet := strings.TrimRight(m, " \t")
	if i := strings.IndexByte(bullet, '['); i >= 0 {
		// Task items continue unchecked.
		return strings.TrimRight(bullet[:i], " \t") + " [ ] "
	}
	digits := 0
	for digits < len(bullet) && bullet[digits] >= '0' && bullet[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return m
	}
	n, err := strconv.Atoi(bullet[:digits])
	if err != nil {
		return m
	}
	space := m[len(bullet):]
	if space == "" {
		space = " "
	}
	return strconv.Itoa(n+1) + bullet[digits:] + space
}

// ============================================================================
// Indentation
// ============================================================================

// selectedLines returns the lines touched by the selection (or the
// cursor's line). A selection ending exactly at a line start does not
// include that line.
func (e *Engine) selectedLines() (first, last int) {
	sel := e.cur.Selection()
	first = e.buf.LineAt(sel.Start)
	last = e.buf.LineAt(sel.End)
	if last > first && sel.End == e.buf.LineStart(last) {
		last--
	}
	return first, last
}

// Indent adds one indent unit to the start of every selected line.
func (e *Engine) Indent() error {
	if e.readOnly {
		return ErrReadOnly
	}
	first, last := e.selectedLines()
	edits := make([]buffer.Edit, 0, last-first+1)
	for line := last; line >= first; line-- {
		ls := e.buf.LineStart(line)
		edits = append(edits, buffer.Edit{Range: buffer.Range{Start: ls, End: ls}, NewText: e.indentUnit})
	}
	e.applyEdits(edits)
	return nil
}

// Dedent removes up to one indent unit from the start of every selected
// line. Lines without leading whitespace are left alone.
func (e *Engine) Dedent() error {
	if e.readOnly {
		return ErrReadOnly
	}
	first, last := e.selectedLines()
	var edits []buffer.Edit
	for line := last; line >= first; line-- {
		n := e.dedentWidth(e.buf.Line(line))
		if n == 0 {
			continue
		}
		ls := e.buf.LineStart(line)
		edits = append(edits, buffer.Edit{Range: buffer.Range{Start: ls, End: ls + n}})
	}
	e.applyEdits(edits)
	return nil
}

// dedentWidth returns how many leading characters of line one dedent
// removes.
func (e *Engine) dedentWidth(line string) int {
	if strings.HasPrefix(line, e.indentUnit) {
		return utf8.RuneCountInString(e.indentUnit)
	}
	if strings.HasPrefix(line, "\t") {
		return 1
	}
	n := 0
	for n < len(line) && n < len(e.indentUnit) && line[n] == ' ' {
		n++
	}
	return n
}
