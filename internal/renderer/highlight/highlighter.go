package highlight

// LineSource supplies the lines to highlight. Lines exclude their
// trailing newline.
type LineSource interface {
	LineCount() int
	Line(i int) string
}

// cachedLine holds the lexing result for one line.
type cachedLine struct {
	key  uint64 // lineKey(text, entry)
	exit State

	// spans is nil until the line is requested for rendering; lines
	// scanned only to reach a later window record their exit state.
	spans    []Span
	hasSpans bool
}

// Highlighter produces highlighted lines for a LineSource.
//
// Highlighter is not safe for concurrent use.
type Highlighter struct {
	src LineSource

	// cache holds results for lines [0, len(cache)). Every entry's exit
	// state is the entry state of the next.
	cache []cachedLine

	fenceLanguages bool

	stats Stats
}

// Stats counts lexing work, for tests and diagnostics.
type Stats struct {
	Lexed  int // lines tokenized into spans
	Hits   int // requested lines served from the cache
	Scans  int // lines lexed only to advance state
	Resets int
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithFenceLanguages enables or disables chroma token spans inside fenced
// code blocks. It is enabled by default.
func WithFenceLanguages(enabled bool) Option {
	return func(h *Highlighter) {
		h.fenceLanguages = enabled
	}
}

// NewHighlighter creates a highlighter reading from src.
func NewHighlighter(src LineSource, opts ...Option) *Highlighter {
	h := &Highlighter{src: src, fenceLanguages: true}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetSource switches to a different line source and drops the cache.
func (h *Highlighter) SetSource(src LineSource) {
	h.src = src
	h.Reset()
}

// Reset drops all cached state so every line is lexed again.
func (h *Highlighter) Reset() {
	h.cache = nil
	h.stats.Resets++
}

// Invalidate drops cached results for line and every line after it.
func (h *Highlighter) Invalidate(line int) {
	if line < 0 {
		line = 0
	}
	if line < len(h.cache) {
		clear(h.cache[line:])
		h.cache = h.cache[:line]
	}
}

// CachedLines returns the number of lines with cached state.
func (h *Highlighter) CachedLines() int {
	return len(h.cache)
}

// Stats returns the lexing counters.
func (h *Highlighter) Stats() Stats {
	return h.stats
}

// StateAt returns the lexer state at the start of line.
func (h *Highlighter) StateAt(line int) State {
	n := h.src.LineCount()
	if line <= 0 || n == 0 {
		return State{}
	}
	if line > n {
		line = n
	}
	h.advance(line)
	return h.cache[line-1].exit
}

// HighlightedLines returns lines [start, start+count) clipped to the
// document. A start past the end yields nil. Span slices are shared with
// the cache and must not be modified.
func (h *Highlighter) HighlightedLines(start, count int) []HighlightedLine {
	n := h.src.LineCount()
	if start < 0 {
		start = 0
	}
	if count <= 0 || start >= n {
		return nil
	}
	end := start + count
	if end > n {
		end = n
	}

	h.advance(start)
	out := make([]HighlightedLine, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, HighlightedLine{LineNumber: i + 1, Spans: h.line(i)})
	}
	return out
}

// Line returns the highlighted form of a single line.
func (h *Highlighter) Line(i int) HighlightedLine {
	lines := h.HighlightedLines(i, 1)
	if len(lines) == 0 {
		return HighlightedLine{LineNumber: i + 1}
	}
	return lines[0]
}

// advance ensures the cache covers lines [0, upTo).
func (h *Highlighter) advance(upTo int) {
	for i := len(h.cache); i < upTo; i++ {
		entry := h.entryState(i)
		text := h.src.Line(i)
		_, exit := LexLine(text, entry)
		h.cache = append(h.cache, cachedLine{key: lineKey(text, entry), exit: exit})
		h.stats.Scans++
	}
}

// line returns spans for line i, which must be at most len(h.cache).
func (h *Highlighter) line(i int) []Span {
	entry := h.entryState(i)
	text := h.src.Line(i)
	key := lineKey(text, entry)

	if i < len(h.cache) {
		c := &h.cache[i]
		if c.key == key {
			if !c.hasSpans {
				c.spans, _ = h.lex(text, entry)
				c.hasSpans = true
				h.stats.Lexed++
			} else {
				h.stats.Hits++
			}
			return c.spans
		}
		// The line changed without an Invalidate; everything below it
		// may have a different entry state.
		h.Invalidate(i)
	}

	spans, exit := h.lex(text, entry)
	h.cache = append(h.cache, cachedLine{key: key, exit: exit, spans: spans, hasSpans: true})
	h.stats.Lexed++
	return spans
}

func (h *Highlighter) entryState(i int) State {
	if i == 0 {
		return State{}
	}
	return h.cache[i-1].exit
}

// lex produces the spans for a line, adding fenced-language tokens when
// enabled.
func (h *Highlighter) lex(text string, entry State) ([]Span, State) {
	spans, exit := LexLine(text, entry)
	if !h.fenceLanguages || !entry.InFence() || entry.Lang == "" {
		return spans, exit
	}
	if len(spans) != 1 || spans[0].Style != TagCodeBlock {
		return spans, exit
	}
	if code := lexFencedLine(text, entry.Lang); code != nil {
		return code, exit
	}
	return spans, exit
}
