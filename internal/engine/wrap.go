package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/mdpad/internal/engine/buffer"
)

// delimiter is a wrap pair.
type delimiter struct {
	open, close string
}

// delimiters lists the wrap pairs, longest first so "**" is recognized
// before "*" when looking for a surrounding pair.
var delimiters = []delimiter{
	{"**", "**"},
	{"~~", "~~"},
	{`"`, `"`},
	{"'", "'"},
	{"`", "`"},
	{"(", ")"},
	{"[", "]"},
	{"{", "}"},
	{"<", ">"},
	{"*", "*"},
	{"_", "_"},
}

// lookupDelimiter finds the pair for key, which may be either side of it.
func lookupDelimiter(key string) (delimiter, bool) {
	for _, d := range delimiters {
		if key == d.open || key == d.close {
			return d, true
		}
	}
	return delimiter{}, false
}

// WrapKeys returns the keys Wrap accepts.
func WrapKeys() []string {
	keys := make([]string, 0, len(delimiters))
	for _, d := range delimiters {
		keys = append(keys, d.open)
	}
	return keys
}

// Wrap toggles the delimiter pair named by key around the selection.
//
//   - If the selection is immediately surrounded by the pair, the pair is
//     removed.
//   - Else if the selected text itself starts and ends with the pair and
//     holds no other half of it, that pair is removed.
//   - Else if the selection is surrounded by a different pair, that pair
//     is replaced.
//   - Otherwise the pair is inserted around the selection.
//
// The selection keeps covering the same text. With an empty selection the
// pair is inserted at the cursor and the cursor placed between its halves.
func (e *Engine) Wrap(key string) error {
	d, ok := lookupDelimiter(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDelimiter, key)
	}
	if e.readOnly {
		return ErrReadOnly
	}

	sel := e.cur.Selection()
	if sel.IsEmpty() {
		if err := e.replace(sel.Start, sel.End, d.open+d.close); err != nil {
			return err
		}
		e.cur.SetCursor(sel.Start + runeLen(d.open))
		return nil
	}

	backward := e.cur.Cursor() == sel.Start
	start, end := sel.Start, sel.End
	var edits []buffer.Edit
	var shift, shrink int // new start = start+shift, new end = end+shift-shrink

	switch {
	case e.surrounds(start, end, d):
		edits = []buffer.Edit{
			{Range: buffer.Range{Start: end, End: end + runeLen(d.close)}},
			{Range: buffer.Range{Start: start - runeLen(d.open), End: start}},
		}
		shift = -runeLen(d.open)

	case e.encloses(start, end, d):
		edits = []buffer.Edit{
			{Range: buffer.Range{Start: end - runeLen(d.close), End: end}},
			{Range: buffer.Range{Start: start, End: start + runeLen(d.open)}},
		}
		shrink = runeLen(d.open) + runeLen(d.close)

	default:
		if other, ok := e.surroundingPair(start, end); ok {
			edits = []buffer.Edit{
				{Range: buffer.Range{Start: end, End: end + runeLen(other.close)}, NewText: d.close},
				{Range: buffer.Range{Start: start - runeLen(other.open), End: start}, NewText: d.open},
			}
			shift = runeLen(d.open) - runeLen(other.open)
		} else {
			edits = []buffer.Edit{
				{Range: buffer.Range{Start: end, End: end}, NewText: d.close},
				{Range: buffer.Range{Start: start, End: start}, NewText: d.open},
			}
			shift = runeLen(d.open)
		}
	}

	e.SaveUndoState()
	first := -1
	for _, ed := range edits {
		res := e.buf.Apply(ed)
		if first < 0 || res.FirstLine < first {
			first = res.FirstLine
		}
	}
	e.afterEdit(first)

	newStart, newEnd := start+shift, end+shift-shrink
	if backward {
		e.cur.SetSelection(newEnd, newStart)
	} else {
		e.cur.SetSelection(newStart, newEnd)
	}
	return nil
}

// surrounds reports whether d sits immediately outside [start, end).
func (e *Engine) surrounds(start, end Offset, d delimiter) bool {
	lo, lc := runeLen(d.open), runeLen(d.close)
	if start < lo || end+lc > e.buf.Len() {
		return false
	}
	return e.buf.Slice(start-lo, start) == d.open && e.buf.Slice(end, end+lc) == d.close
}

// encloses reports whether the text in [start, end) begins and ends with d.
func (e *Engine) encloses(start, end Offset, d delimiter) bool {
	lo, lc := runeLen(d.open), runeLen(d.close)
	if end-start < lo+lc {
		return false
	}
	if e.buf.Slice(start, start+lo) != d.open || e.buf.Slice(end-lc, end) != d.close {
		return false
	}
	// The halves must belong to one pair: "(a) + (b)" is two pairs.
	inner := e.buf.Slice(start+lo, end-lc)
	return !strings.Contains(inner, d.open) && !strings.Contains(inner, d.close)
}

// surroundingPair returns any known pair sitting immediately outside
// [start, end).
func (e *Engine) surroundingPair(start, end Offset) (delimiter, bool) {
	for _, d := range delimiters {
		if e.surrounds(start, end, d) {
			return d, true
		}
	}
	return delimiter{}, false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
