package rope

// Point represents a line/column position.
// Line and Column are both 0-indexed; Column counts characters.
type Point struct {
	Line   int
	Column int
}

// Summary holds aggregated metrics for a text span.
// It is the monoid stored at every node of the tree.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the number of Unicode scalar values.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// Chunks is the number of leaf chunks in the span.
	Chunks int
}

// Add combines two summaries.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes:  s.Bytes + other.Bytes,
		Chars:  s.Chars + other.Chars,
		Lines:  s.Lines + other.Lines,
		Chunks: s.Chunks + other.Chunks,
	}
}

// IsZero returns true if this is the identity summary.
func (s Summary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
// The string is assumed to be valid UTF-8.
func ComputeSummary(s string) Summary {
	sum := Summary{Bytes: len(s)}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isRuneStart(b) {
			sum.Chars++
		}
		if b == '\n' {
			sum.Lines++
		}
	}
	return sum
}

// byteIndex returns the byte index of the n-th character of s.
// Returns len(s) when n is at or past the end.
func byteIndex(s string, n int) int {
	if n <= 0 {
		return 0
	}
	seen := 0
	for i := 0; i < len(s); i++ {
		if isRuneStart(s[i]) {
			if seen == n {
				return i
			}
			seen++
		}
	}
	return len(s)
}

// newlinesBefore counts newlines among the first n characters of s.
func newlinesBefore(s string, n int) int {
	end := byteIndex(s, n)
	count := 0
	for i := 0; i < end; i++ {
		if s[i] == '\n' {
			count++
		}
	}
	return count
}

// charAfterNewline returns the character index just past the n-th newline
// (1-indexed) in s, or -1 if s holds fewer than n newlines.
func charAfterNewline(s string, n int) int {
	chars, seen := 0, 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isRuneStart(b) {
			chars++
		}
		if b == '\n' {
			seen++
			if seen == n {
				return chars
			}
		}
	}
	return -1
}

// isRuneStart returns true if b begins a UTF-8 sequence.
// Continuation bytes have the form 10xxxxxx.
func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
