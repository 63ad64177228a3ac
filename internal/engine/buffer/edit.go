package buffer

import "fmt"

// Edit replaces the text in Range with NewText.
type Edit struct {
	Range   Range
	NewText string
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
}

// EditResult describes an applied edit.
type EditResult struct {
	// OldRange is the clamped range that was replaced.
	OldRange Range

	// NewRange covers the inserted text.
	NewRange Range

	// OldText is the text that was removed.
	OldText string

	// FirstLine is the 0-indexed line on which the edit began. Line
	// dependent caches are stale from this line onward.
	FirstLine int
}

// Delta returns the change in character count caused by the edit.
func (r EditResult) Delta() int {
	return r.NewRange.Len() - r.OldRange.Len()
}
