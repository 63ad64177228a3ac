package cursor

import "github.com/dshills/mdpad/internal/engine/buffer"

// TransformOffset updates an offset after an applied edit.
//
// Transformation rules:
//   - If the edit ends at or before offset: shift offset by the edit's delta
//     (an insertion exactly at offset pushes it forward)
//   - If the edit starts at or after offset: offset unchanged
//   - If the edit spans offset: move offset to the end of the new text
func TransformOffset(offset Offset, res buffer.EditResult) Offset {
	if res.OldRange.End <= offset {
		return offset + res.Delta()
	}
	if res.OldRange.Start >= offset {
		return offset
	}
	return res.NewRange.End
}

// TransformSelection updates both bounds of a selection after an edit.
func TransformSelection(sel Selection, res buffer.EditResult) Selection {
	return NewSelection(TransformOffset(sel.Start, res), TransformOffset(sel.End, res))
}
