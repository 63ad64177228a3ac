package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/mdpad/internal/engine/rope"
)

// Buffer wraps a Rope with clamped, character-addressed editing operations.
type Buffer struct {
	rope     rope.Rope
	revision Revision

	// editLine is the first line touched by the last mutation.
	editLine int
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{rope: rope.New()}
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string) *Buffer {
	b := NewBuffer()
	b.rope = rope.FromString(sanitize(s))
	return b
}

// sanitize replaces invalid UTF-8 sequences so the buffer never holds a
// partial character.
func sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

// Read Operations

// Content returns the full buffer content.
func (b *Buffer) Content() string {
	return b.rope.String()
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return b.rope.Len()
}

// IsEmpty returns true if the buffer holds no characters.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines. It is never less than one.
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

// Line returns the text of line i without its trailing newline.
func (b *Buffer) Line(i int) string {
	return b.rope.LineText(b.clampLine(i))
}

// LineStart returns the offset of the first character of line i.
func (b *Buffer) LineStart(i int) Offset {
	return b.rope.LineStart(b.clampLine(i))
}

// LineEnd returns the offset just past the last character of line i,
// which is the offset of its newline or Len() for the last line.
func (b *Buffer) LineEnd(i int) Offset {
	return b.rope.LineEnd(b.clampLine(i))
}

// LineLen returns the number of characters on line i, excluding the newline.
func (b *Buffer) LineLen(i int) int {
	return b.LineEnd(i) - b.LineStart(i)
}

// LineAt returns the line containing offset.
func (b *Buffer) LineAt(offset Offset) int {
	return b.rope.LineAt(offset)
}

// LineColToOffset converts a line and column to an offset. The line is
// clamped to the document and the column to the line's length.
func (b *Buffer) LineColToOffset(line, col int) Offset {
	line = b.clampLine(line)
	start := b.rope.LineStart(line)
	end := b.rope.LineEnd(line)
	return start + clampTo(col, end-start)
}

// OffsetToPosition converts an offset, clamped to the buffer, to a Position.
func (b *Buffer) OffsetToPosition(offset Offset) Position {
	offset = b.Clamp(offset)
	p := b.rope.OffsetToPoint(offset)
	return Position{Offset: offset, Line: p.Line, Col: p.Column}
}

// Slice returns the text in [start, end). The bounds may be given in
// either order.
func (b *Buffer) Slice(start, end Offset) string {
	r := NewRange(start, end).Clamp(b.Len())
	return b.rope.Slice(r.Start, r.End)
}

// RuneAt returns the character at offset.
func (b *Buffer) RuneAt(offset Offset) (rune, bool) {
	return b.rope.RuneAt(offset)
}

// Clamp limits offset to [0, Len()].
func (b *Buffer) Clamp(offset Offset) Offset {
	return clampTo(offset, b.Len())
}

func (b *Buffer) clampLine(i int) int {
	return clampTo(i, b.rope.LineCount()-1)
}

// Write Operations

// SetContent replaces the whole document.
func (b *Buffer) SetContent(text string) {
	b.rope = rope.FromString(sanitize(text))
	b.revision++
	b.editLine = 0
}

// Replace replaces the text in [start, end) with text and returns the
// offset immediately after the inserted text.
func (b *Buffer) Replace(start, end Offset, text string) Offset {
	return b.Apply(Edit{Range: NewRange(start, end), NewText: text}).NewRange.End
}

// Insert inserts text at offset and returns the offset after it.
func (b *Buffer) Insert(offset Offset, text string) Offset {
	return b.Replace(offset, offset, text)
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end Offset) {
	b.Replace(start, end, "")
}

// Apply applies an edit and reports what changed.
func (b *Buffer) Apply(edit Edit) EditResult {
	r := NewRange(edit.Range.Start, edit.Range.End).Clamp(b.Len())
	text := sanitize(edit.NewText)

	result := EditResult{
		OldRange:  r,
		NewRange:  Range{Start: r.Start, End: r.Start + utf8.RuneCountInString(text)},
		FirstLine: b.rope.LineAt(r.Start),
	}
	if r.IsEmpty() && text == "" {
		return result
	}

	result.OldText = b.rope.Slice(r.Start, r.End)
	b.rope = b.rope.Replace(r.Start, r.End, text)
	b.revision++
	b.editLine = result.FirstLine
	return result
}

// Buffer State

// Revision returns the current revision.
func (b *Buffer) Revision() Revision {
	return b.revision
}

// EditLine returns the 0-indexed first line touched by the most recent
// mutation. Whole-content replacements report line 0.
func (b *Buffer) EditLine() int {
	return b.editLine
}

// Rope returns the current content as an immutable rope. Holding the value
// is a free snapshot; later edits do not affect it.
func (b *Buffer) Rope() rope.Rope {
	return b.rope
}

// Restore replaces the content with a previously captured rope.
func (b *Buffer) Restore(r rope.Rope) {
	b.rope = r
	b.revision++
	b.editLine = 0
}
