// Package engine provides the editable text engine for one markdown
// document.
//
// An Engine is the single entry point the host calls for every edit. It
// combines the sub-packages:
//
//   - rope: B+ tree rope addressed by character offset
//   - buffer: clamped offset and line/column addressing over a rope
//   - cursor: single cursor and selection state machine with an anchor
//   - history: bounded snapshot undo/redo
//
// with the highlight and viewport packages from the renderer, so that an
// edit saves an undo snapshot, mutates the buffer, rebases the selection,
// invalidates highlighting from the first touched line and updates the
// scroll window, in that order.
//
// # Basic Usage
//
//	e, err := engine.New(engine.WithContent("# Notes\n"))
//	if err != nil {
//	    // The host falls back to a read-only view.
//	}
//
//	e.SetCursor(e.CharCount())
//	e.InsertText("- first item")
//	e.InsertNewline() // continues the list: "- "
//
//	e.Undo()
//
// # Offsets
//
// Every offset is a character (Unicode scalar) index in [0, CharCount()].
// Out-of-range offsets and lines are clamped, never rejected, because hosts
// derive them from approximate pixel geometry.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. The host owns one Engine per
// open document and calls it from a single goroutine.
package engine
