// Package cursor provides the cursor and selection model of the editing
// engine.
//
// A Model tracks exactly one cursor offset and at most one selection. It is
// a two-state machine:
//
//   - no-selection: only the cursor is meaningful
//   - selecting: a non-empty [Start, End) range is active
//
// A selection whose bounds are equal collapses to no-selection. Keyboard
// extension (shift+motion) records an anchor at the pre-move cursor; the
// anchor stays fixed while the far end follows the cursor. The anchor is
// dropped by ClearSelection and by any non-extending move.
//
// After a buffer edit, TransformOffset and Model.Transform shift offsets by
// the edit's delta:
//
//	res := buf.Apply(edit)
//	model.Transform(res)
package cursor
