package rope

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded, immutable string stored in leaf nodes.
type Chunk struct {
	data    string
	summary Summary
}

// NewChunk creates a chunk from a string, computing its metrics eagerly.
func NewChunk(s string) Chunk {
	sum := ComputeSummary(s)
	if len(s) > 0 {
		sum.Chunks = 1
	}
	return Chunk{data: s, summary: sum}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() Summary {
	return c.summary
}

// Len returns the character length of the chunk.
func (c Chunk) Len() int {
	return c.summary.Chars
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Split splits a chunk at a character offset.
func (c Chunk) Split(at int) (Chunk, Chunk) {
	if at <= 0 {
		return Chunk{}, c
	}
	if at >= c.summary.Chars {
		return c, Chunk{}
	}
	b := c.byteOffset(at)
	return NewChunk(c.data[:b]), NewChunk(c.data[b:])
}

// byteOffset converts a character offset within the chunk to a byte offset.
func (c Chunk) byteOffset(at int) int {
	if c.summary.Bytes == c.summary.Chars {
		// ASCII: characters and bytes coincide.
		if at > len(c.data) {
			return len(c.data)
		}
		return at
	}
	return byteIndex(c.data, at)
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	remaining := s
	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(remaining))
			break
		}
		split := findSplitPoint(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:split]))
		remaining = remaining[split:]
	}
	return chunks
}

// findSplitPoint finds a UTF-8 boundary near target, preferring the byte
// just after a newline so that lines rarely straddle chunks.
func findSplitPoint(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}

	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))
	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos < len(s) && !isRuneStart(s[pos]) {
		pos++
	}
	if pos >= len(s) {
		pos = target
		for pos > 0 && !isRuneStart(s[pos]) {
			pos--
		}
	}
	return pos
}
