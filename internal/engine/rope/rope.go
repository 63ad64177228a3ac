package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope for efficient text storage.
// Operations return new Rope values; the original is never modified.
// The zero value is an empty rope.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode(nil)}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return Rope{}, err
	}
	return FromString(sb.String()), nil
}

func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}
	leaves := make([]*Node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNode(leafChunks))
	}
	return Rope{root: buildNodeFromChildren(leaves)}
}

// Len returns the number of characters in the rope.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// ByteLen returns the UTF-8 byte length of the rope.
func (r Rope) ByteLen() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{}
	}
	return r.root.summary
}

// String returns the full text as a string.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.ByteLen())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the character range [start, end).
// Bounds are clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start, end = r.clamp(start), r.clamp(end)
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// RuneAt returns the character at offset.
// Returns 0 and false if offset is out of range.
func (r Rope) RuneAt(offset int) (rune, bool) {
	if r.root == nil || offset < 0 || offset >= r.Len() {
		return 0, false
	}
	return r.root.runeAt(offset), true
}

// Insert inserts text at the given character offset.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.IsEmpty() {
		return FromString(text)
	}
	offset = r.clamp(offset)
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right).compact()
}

// Delete removes the characters in [start, end).
func (r Rope) Delete(start, end int) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if r.root == nil || start >= end {
		return r
	}
	if start == 0 && end == r.Len() {
		return New()
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right).compact()
}

// Replace replaces the characters in [start, end) with text.
func (r Rope) Replace(start, end int, text string) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if end < start {
		end = start
	}
	if start == end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(FromString(text)).Concat(right).compact()
}

// Split splits the rope at offset.
// The left rope holds [0, offset) and the right rope holds [offset, len).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat appends other to r.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// LineStart returns the character offset of the start of a 0-indexed line.
// Lines past the end map to Len().
func (r Rope) LineStart(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.lineStart(line)
}

// LineEnd returns the character offset of the end of a line, excluding
// its newline.
func (r Rope) LineEnd(line int) int {
	if r.root == nil {
		return 0
	}
	if line < 0 {
		line = 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.root.lineStart(line+1) - 1
}

// LineText returns the text of a line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// LineAt returns the 0-indexed line containing offset.
func (r Rope) LineAt(offset int) int {
	if r.root == nil {
		return 0
	}
	return r.root.linesBefore(r.clamp(offset))
}

// OffsetToPoint converts a character offset to a line/column position.
func (r Rope) OffsetToPoint(offset int) Point {
	offset = r.clamp(offset)
	line := r.LineAt(offset)
	return Point{Line: line, Column: offset - r.LineStart(line)}
}

// PointToOffset converts a line/column position to a character offset.
// Columns past the end of the line clamp to the line end.
func (r Rope) PointToOffset(p Point) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= r.LineCount() {
		return r.Len()
	}
	start := r.LineStart(p.Line)
	end := r.LineEnd(p.Line)
	col := max(p.Column, 0)
	return min(start+col, end)
}

// Height returns the height of the tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height + 1
}

// ChunkCount returns the total number of chunks in the rope.
func (r Rope) ChunkCount() int {
	return r.Summary().Chunks
}

// Same reports whether both ropes share the same root, which implies equal
// content without inspecting it.
func (r Rope) Same(other Rope) bool {
	return r.root == other.root
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Same(other) {
		return true
	}
	rs, os := r.Summary(), other.Summary()
	if rs.Bytes != os.Bytes || rs.Chars != os.Chars || rs.Lines != os.Lines {
		return false
	}
	return r.String() == other.String()
}

func (r Rope) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if n := r.Len(); offset > n {
		return n
	}
	return offset
}

// compact rebuilds the tree when repeated edits have left it with too many
// small chunks or too tall a spine.
func (r Rope) compact() Rope {
	if r.root == nil {
		return r
	}
	s := r.root.summary
	if s.Chunks <= 2*(s.Bytes/MinChunkSize)+8 && r.root.height <= maxHeight(s.Chunks) {
		return r
	}
	return buildFromChunks(coalesce(r.root.collectChunks(make([]Chunk, 0, s.Chunks))))
}

// maxHeight is the tallest tree tolerated for a given chunk count before
// compaction.
func maxHeight(chunks int) int {
	h := 1
	for n := MaxChunksPerLeaf; n < chunks; n *= MinChildren {
		h++
	}
	return 2*h + 2
}

// coalesce merges runs of undersized chunks.
func coalesce(chunks []Chunk) []Chunk {
	out := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		if last := len(out) - 1; last >= 0 && out[last].summary.Bytes+c.summary.Bytes <= MaxChunkSize {
			out[last] = NewChunk(out[last].data + c.data)
			continue
		}
		out = append(out, c)
	}
	return out
}
