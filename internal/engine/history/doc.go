// Package history provides bounded undo/redo for a single document.
//
// History is snapshot based. Before every mutation the editing layer saves
// an Entry holding the whole document and the cursor offset. Entries hold an
// immutable rope, so a snapshot shares structure with the live buffer and
// saving one does not copy text.
//
//	stack := NewStack(200)
//
//	stack.Save(history.Entry{Text: buf.Rope(), Cursor: cur})
//	// ... mutate ...
//
//	if prev, ok := stack.Undo(current); ok {
//	    buf.Restore(prev.Text)
//	}
//
// # Deduplication
//
// Save is a no-op when the top of the undo stack already equals the
// snapshot, so repeated saves around operations that did not change the
// document leave no empty undo steps behind.
//
// # Capacity
//
// The undo stack holds at most Capacity entries. When a push would exceed
// it the oldest entry is evicted, so undoing all the way returns to the
// oldest retained snapshot rather than the start of the session.
package history
