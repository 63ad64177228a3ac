package buffer

import "fmt"

// Offset is a character position in the buffer.
type Offset = int

// Position is a derived location: an absolute character offset together
// with its 0-indexed line and column. Column counts characters.
type Position struct {
	Offset Offset
	Line   int
	Col    int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d(%d:%d)", p.Offset, p.Line, p.Col)
}

// Revision identifies a state of a buffer's content.
// It increases by one on every mutation of that buffer.
type Revision uint64
