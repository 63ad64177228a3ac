package engine

import "unicode"

// isWordChar reports whether r belongs to a word: letters in any script,
// digits, underscore and combining marks, so "café" and "日本語" are
// single words whichever way the accent is encoded.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func (e *Engine) wordAt(offset Offset) bool {
	r, ok := e.buf.RuneAt(offset)
	return ok && isWordChar(r)
}

// wordLeft returns the start of the word at or before offset, skipping
// any non-word characters immediately to the left first.
func (e *Engine) wordLeft(offset Offset) Offset {
	i := e.buf.Clamp(offset)
	for i > 0 && !e.wordAt(i-1) {
		i--
	}
	for i > 0 && e.wordAt(i-1) {
		i--
	}
	return i
}

// wordRight returns the end of the word at or after offset, skipping any
// non-word characters immediately to the right first.
func (e *Engine) wordRight(offset Offset) Offset {
	n := e.buf.Len()
	i := e.buf.Clamp(offset)
	for i < n && !e.wordAt(i) {
		i++
	}
	for i < n && e.wordAt(i) {
		i++
	}
	return i
}

// WordBounds returns the word touching offset, expanding in both
// directions. ok is false when neither neighbour of offset is a word
// character.
func (e *Engine) WordBounds(offset Offset) (start, end Offset, ok bool) {
	offset = e.buf.Clamp(offset)
	start, end = offset, offset
	for start > 0 && e.wordAt(start-1) {
		start--
	}
	for end < e.buf.Len() && e.wordAt(end) {
		end++
	}
	return start, end, start != end
}

// SelectWord selects the word touching offset. Without a word there the
// cursor moves to offset and false is returned.
func (e *Engine) SelectWord(offset Offset) bool {
	start, end, ok := e.WordBounds(offset)
	if !ok {
		e.cur.SetCursor(offset)
		return false
	}
	e.cur.SetSelection(start, end)
	return true
}

// SelectWordAtCursor selects the word touching the cursor.
func (e *Engine) SelectWordAtCursor() bool {
	return e.SelectWord(e.cur.Cursor())
}
