package cursor

import (
	"fmt"

	"github.com/dshills/mdpad/internal/engine/buffer"
)

// Offset is an alias for buffer.Offset for convenience.
type Offset = buffer.Offset

// Selection is a normalized character range. Start <= End always holds
// for values built with NewSelection.
type Selection struct {
	Start Offset
	End   Offset
}

// NewSelection creates a selection covering a and b in either order.
func NewSelection(a, b Offset) Selection {
	if a > b {
		a, b = b, a
	}
	return Selection{Start: a, End: b}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Len returns the length of the selection in characters.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Range returns the selection as a buffer range.
func (s Selection) Range() buffer.Range {
	return buffer.Range{Start: s.Start, End: s.End}
}

// Contains returns true if offset is within [Start, End).
func (s Selection) Contains(offset Offset) bool {
	return offset >= s.Start && offset < s.End
}

// Clamp returns the selection limited to [0, max].
func (s Selection) Clamp(max Offset) Selection {
	return NewSelection(clamp(s.Start, max), clamp(s.End, max))
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Start)
	}
	return fmt.Sprintf("Selection(%d→%d)", s.Start, s.End)
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
