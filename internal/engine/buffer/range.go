package buffer

import "fmt"

// Range is a character range [Start, End).
type Range struct {
	Start Offset
	End   Offset
}

// NewRange creates a Range, ordering the bounds so Start <= End.
func NewRange(a, b Offset) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in characters.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if offset is within [Start, End).
func (r Range) Contains(offset Offset) bool {
	return offset >= r.Start && offset < r.End
}

// Clamp returns the range limited to [0, max].
func (r Range) Clamp(max Offset) Range {
	return Range{Start: clampTo(r.Start, max), End: clampTo(r.End, max)}
}

func clampTo(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
