package engine

import (
	"strconv"
	"strings"

	"github.com/dshills/mdpad/internal/engine/buffer"
	"github.com/dshills/mdpad/internal/renderer/highlight"
)

// ToggleLinePrefix toggles a block prefix such as "- ", "* ", "1. ",
// "- [ ] " or "> " on every selected line.
//
// If every line already carries the prefix it is removed. Otherwise each
// line has any conflicting marker stripped and the prefix added: a list
// prefix replaces an existing list marker and goes after any quote
// markers, a quote prefix replaces existing quote markers. An ordered
// prefix ("1. ") matches any ordinal and numbers the lines consecutively
// from its own number.
func (e *Engine) ToggleLinePrefix(prefix string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if prefix == "" {
		return nil
	}
	first, last := e.selectedLines()
	kind := parsePrefixKind(prefix)

	all := true
	for line := first; line <= last && all; line++ {
		all = kind.present(e.buf.Line(line))
	}

	var edits []buffer.Edit
	for line := last; line >= first; line-- {
		text := e.buf.Line(line)
		at, n := kind.locate(text)
		start := e.buf.LineStart(line) + at

		if all {
			edits = append(edits, buffer.Edit{Range: buffer.Range{Start: start, End: start + kind.removeLen(text[at:], n)}})
			continue
		}
		want := kind.text(line - first)
		if text[at:at+n] == want {
			continue
		}
		edits = append(edits, buffer.Edit{Range: buffer.Range{Start: start, End: start + n}, NewText: want})
	}
	e.applyEdits(edits)
	return nil
}

// prefixKind describes the prefix being toggled.
type prefixKind struct {
	prefix  string
	quote   bool
	ordered bool
	ordinal int
	suffix  string // text after the ordinal: ". " or ") "
}

func parsePrefixKind(prefix string) prefixKind {
	k := prefixKind{prefix: prefix, quote: strings.HasPrefix(prefix, ">")}
	if n, suffix, ok := orderedMarker(prefix); ok {
		k.ordered, k.ordinal, k.suffix = true, n, suffix
	}
	return k
}

// locate returns the byte offset in line where this kind of prefix lives
// and the length of the marker currently there.
func (k prefixKind) locate(line string) (at, n int) {
	at = leadingWhitespace(line)
	if k.quote {
		return at, quoteMarkerLen(line[at:])
	}
	at += quoteMarkerLen(line[at:])
	at += leadingWhitespace(line[at:])
	return at, highlight.ListMarkerLen(line[at:])
}

// present reports whether line already carries the prefix.
func (k prefixKind) present(line string) bool {
	at, n := k.locate(line)
	if k.quote {
		return n > 0
	}
	if k.ordered {
		_, _, ok := orderedMarker(line[at : at+n])
		return ok
	}
	return strings.HasPrefix(line[at:], k.prefix)
}

// removeLen returns how much of the marker at the start of s to delete
// when toggling the prefix off. Only the prefix itself goes, so a task box
// after a bullet survives removing the bullet.
func (k prefixKind) removeLen(s string, n int) int {
	switch {
	case k.quote:
		return n
	case k.ordered:
		digits := len(s) - len(strings.TrimLeft(s, "0123456789"))
		if strings.HasPrefix(s[digits:], k.suffix) {
			return digits + len(k.suffix)
		}
		return n
	}
	return len(k.prefix)
}

// text returns the prefix for the i-th selected line.
func (k prefixKind) text(i int) string {
	if k.ordered {
		return strconv.Itoa(k.ordinal+i) + k.suffix
	}
	return k.prefix
}

// orderedMarker parses an ordered list marker such as "3. " or "12) ".
func orderedMarker(s string) (n int, suffix string, ok bool) {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits == len(s) || (s[digits] != '.' && s[digits] != ')') {
		return 0, "", false
	}
	n, err := strconv.Atoi(s[:digits])
	if err != nil {
		return 0, "", false
	}
	return n, s[digits:], true
}

// quoteMarkerLen returns the length of the blockquote markers at the
// start of s.
func quoteMarkerLen(s string) int {
	i := 0
	for i < len(s) && s[i] == '>' {
		i++
		if i < len(s) && s[i] == ' ' {
			i++
		}
	}
	return i
}

// ToggleHeading sets the selected lines to an ATX heading of level, or
// removes the heading when the lines are already at that level. Level 0
// removes any heading; levels above 6 are treated as 6.
func (e *Engine) ToggleHeading(level int) error {
	if e.readOnly {
		return ErrReadOnly
	}
	level = min(max(level, 0), 6)
	first, last := e.selectedLines()

	all := level > 0
	for line := first; line <= last && all; line++ {
		all = highlight.HeadingLevel(e.buf.Line(line)) == level
	}

	marker := ""
	if level > 0 && !all {
		marker = strings.Repeat("#", level) + " "
	}

	var edits []buffer.Edit
	for line := last; line >= first; line-- {
		text := e.buf.Line(line)
		n := headingPrefixLen(text)
		if text[:n] == marker {
			continue
		}
		ls := e.buf.LineStart(line)
		edits = append(edits, buffer.Edit{Range: buffer.Range{Start: ls, End: ls + n}, NewText: marker})
	}
	e.applyEdits(edits)
	return nil
}

// headingPrefixLen returns the length of the line's heading marker
// including the space after it, or 0.
func headingPrefixLen(line string) int {
	level := highlight.HeadingLevel(line)
	if level == 0 {
		return 0
	}
	i := leadingWhitespace(line) + level
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

func leadingWhitespace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
