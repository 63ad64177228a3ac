package highlight

import "strings"

// LexLine tokenizes one line of markdown given the state at its start.
// It returns the line's spans and the state at its end.
//
// All markdown syntax characters are ASCII, so span boundaries always fall
// on UTF-8 sequence boundaries.
func LexLine(line string, entry State) ([]Span, State) {
	var spans spanList
	if entry.InFence() {
		if isClosingFence(line, entry) {
			spans.add(line, TagFence)
			return spans, State{}
		}
		spans.add(line, TagCodeBlock)
		return spans, entry
	}

	if exit, ok := openingFence(line); ok {
		prefix := leadingSpaces(line) + exit.FenceLen
		spans.add(line[:prefix], TagFence)
		spans.add(line[prefix:], TagFenceInfo)
		return spans, exit
	}

	lexBlock(&spans, line)
	return spans, State{}
}

// lexBlock handles the block-level prefix of a non-fence line and then
// the inline content after it.
func lexBlock(spans *spanList, line string) {
	pos := 0

	// Blockquote markers may nest: "> > text".
	for {
		i := pos + leadingSpaces(line[pos:])
		if i-pos > 3 || i >= len(line) || line[i] != '>' {
			break
		}
		end := i + 1
		if end < len(line) && (line[end] == ' ' || line[end] == '\t') {
			end++
		}
		spans.add(line[pos:end], TagQuoteMarker)
		pos = end
	}

	rest := line[pos:]
	if isRule(rest) {
		spans.add(rest, TagRule)
		return
	}
	if n := headingMarker(rest); n > 0 {
		spans.add(rest[:n], TagHeadingMarker)
		spans.add(rest[n:], TagHeading)
		return
	}
	if n := ListMarkerLen(rest); n > 0 {
		spans.add(rest[:n], TagListMarker)
		rest = rest[n:]
	}
	lexInline(spans, rest)
}

// lexInline tags code spans, links, images and emphasis within s.
func lexInline(spans *spanList, s string) {
	text := 0 // start of pending plain text
	flush := func(i int) {
		spans.add(s[text:i], TagText)
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && isPunct(s[i+1]):
			i += 2
			continue

		case c == '`':
			run := runLen(s, i, '`')
			if j := findRun(s, i+run, '`', run); j >= 0 {
				flush(i)
				spans.add(s[i:i+run], TagCodeMarker)
				spans.add(s[i+run:j], TagCode)
				spans.add(s[j:j+run], TagCodeMarker)
				i = j + run
				text = i
				continue
			}
			i += run
			continue

		case c == '!' && i+1 < len(s) && s[i+1] == '[':
			if end, ok := lexLink(spans, s, i+1, func() { flush(i); spans.add("!", TagImageMarker) }); ok {
				i = end
				text = i
				continue
			}

		case c == '[':
			if end, ok := lexLink(spans, s, i, func() { flush(i) }); ok {
				i = end
				text = i
				continue
			}

		case c == '*' || c == '_':
			if end, ok := lexEmphasis(spans, s, i, func() { flush(i) }); ok {
				i = end
				text = i
				continue
			}
			i += runLen(s, i, c)
			continue
		}
		i++
	}
	flush(len(s))
}

// lexLink recognizes "[text](url)" starting at the '[' at i. On success it
// calls before, emits the link spans and returns the index after ')'.
func lexLink(spans *spanList, s string, i int, before func()) (int, bool) {
	rb := matchBracket(s, i)
	if rb < 0 || rb+1 >= len(s) || s[rb+1] != '(' {
		return 0, false
	}
	paren := strings.IndexByte(s[rb+2:], ')')
	if paren < 0 {
		return 0, false
	}
	paren += rb + 2

	before()
	spans.add("[", TagLinkMarker)
	spans.add(s[i+1:rb], TagLinkText)
	spans.add("](", TagLinkMarker)
	spans.add(s[rb+2:paren], TagLinkURL)
	spans.add(")", TagLinkMarker)
	return paren + 1, true
}

// lexEmphasis recognizes *em*, _em_, **strong** and __strong__ starting at
// i. Underscores inside a word do not open emphasis.
func lexEmphasis(spans *spanList, s string, i int, before func()) (int, bool) {
	c := s[i]
	run := runLen(s, i, c)
	if run > 2 {
		return 0, false
	}
	if c == '_' && i > 0 && isWordByte(s[i-1]) {
		return 0, false
	}
	open := i + run
	if open >= len(s) || s[open] == ' ' || s[open] == '\t' {
		return 0, false
	}

	closeAt := -1
	for j := open + 1; j+run <= len(s); j++ {
		if s[j] != c {
			continue
		}
		if runLen(s, j, c) != run || s[j-1] == ' ' || s[j-1] == '\t' {
			j += runLen(s, j, c) - 1
			continue
		}
		if c == '_' && j+run < len(s) && isWordByte(s[j+run]) {
			continue
		}
		closeAt = j
		break
	}
	if closeAt < 0 {
		return 0, false
	}

	marker, body := TagEmphasisMarker, TagEmphasis
	if run == 2 {
		marker, body = TagStrongMarker, TagStrong
	}
	before()
	spans.add(s[i:open], marker)
	spans.add(s[open:closeAt], body)
	spans.add(s[closeAt:closeAt+run], marker)
	return closeAt + run, true
}

// openingFence reports whether line opens a fenced code block.
func openingFence(line string) (State, bool) {
	indent := leadingSpaces(line)
	if indent > 3 || indent >= len(line) {
		return State{}, false
	}
	c := line[indent]
	if c != '`' && c != '~' {
		return State{}, false
	}
	n := runLen(line, indent, c)
	if n < 3 {
		return State{}, false
	}
	info := strings.TrimSpace(line[indent+n:])
	if c == '`' && strings.IndexByte(info, '`') >= 0 {
		return State{}, false
	}
	return State{Fence: c, FenceLen: n, Lang: infoLang(info)}, true
}

// isClosingFence reports whether line closes the fence opened by st.
func isClosingFence(line string, st State) bool {
	indent := leadingSpaces(line)
	if indent > 3 || indent >= len(line) || line[indent] != st.Fence {
		return false
	}
	n := runLen(line, indent, st.Fence)
	return n >= st.FenceLen && strings.TrimSpace(line[indent+n:]) == ""
}

func infoLang(info string) string {
	if i := strings.IndexAny(info, " \t{"); i >= 0 {
		info = info[:i]
	}
	return strings.ToLower(info)
}

// headingMarker returns the length of an ATX heading prefix (indent,
// hashes and the following space), or 0.
func headingMarker(s string) int {
	indent := leadingSpaces(s)
	if indent > 3 {
		return 0
	}
	n := runLen(s, indent, '#')
	if n < 1 || n > 6 {
		return 0
	}
	end := indent + n
	if end == len(s) {
		return end
	}
	if s[end] != ' ' && s[end] != '\t' {
		return 0
	}
	for end < len(s) && (s[end] == ' ' || s[end] == '\t') {
		end++
	}
	return end
}

// HeadingLevel returns the ATX heading level of line, or 0.
func HeadingLevel(line string) int {
	n := headingMarker(line)
	if n == 0 {
		return 0
	}
	return runLen(line, leadingSpaces(line), '#')
}

// isRule reports whether s is a thematic break: three or more of the same
// '-', '*' or '_' with optional spaces between.
func isRule(s string) bool {
	indent := leadingSpaces(s)
	if indent > 3 || indent >= len(s) {
		return false
	}
	c := s[indent]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	count := 0
	for i := indent; i < len(s); i++ {
		switch s[i] {
		case c:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= 3
}

// ListMarkerLen returns the length of a list item prefix at the start of
// s (indent, bullet or ordinal, following space and an optional task box),
// or 0 when s is not a list item.
func ListMarkerLen(s string) int {
	i := leadingWhitespace(s)
	if i >= len(s) {
		return 0
	}
	switch c := s[i]; {
	case c == '-' || c == '*' || c == '+':
		i++
	case isDigit(c):
		d := i
		for i < len(s) && isDigit(s[i]) && i-d < 9 {
			i++
		}
		if i >= len(s) || (s[i] != '.' && s[i] != ')') {
			return 0
		}
		i++
	default:
		return 0
	}
	if i == len(s) {
		return i
	}
	if s[i] != ' ' && s[i] != '\t' {
		return 0
	}
	i++
	if len(s)-i >= 3 && s[i] == '[' && s[i+2] == ']' && strings.IndexByte(" xX", s[i+1]) >= 0 {
		i += 3
		if i < len(s) && s[i] == ' ' {
			i++
		}
	}
	return i
}

func leadingSpaces(s string) int {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

func leadingWhitespace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func runLen(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// findRun returns the index of the next run of exactly n c bytes at or
// after from, or -1.
func findRun(s string, from int, c byte, n int) int {
	for j := from; j < len(s); {
		if s[j] != c {
			j++
			continue
		}
		r := runLen(s, j, c)
		if r == n {
			return j
		}
		j += r
	}
	return -1
}

// matchBracket returns the index of the ']' matching the '[' at i, or -1.
func matchBracket(s string, i int) int {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}
