package history

import (
	"errors"

	"github.com/dshills/mdpad/internal/engine/rope"
)

// DefaultCapacity is the undo depth used when none is configured.
const DefaultCapacity = 200

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Entry is one snapshot of document state.
type Entry struct {
	Text   rope.Rope
	Cursor int
}

// Equal reports whether two entries hold the same text and cursor.
func (e Entry) Equal(other Entry) bool {
	return e.Cursor == other.Cursor && e.Text.Equals(other.Text)
}

// Stack manages undo/redo snapshots for one document.
//
// Stack is not safe for concurrent use; the owning editor serializes
// access.
type Stack struct {
	undo []Entry
	redo []Entry

	capacity int

	// onEvict, when set, is called with the number of entries dropped
	// from the bottom of the undo stack.
	onEvict func(n int)
}

// NewStack creates a stack holding at most capacity undo entries.
// A non-positive capacity selects DefaultCapacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity}
}

// OnEvict registers a callback invoked when old entries are evicted.
func (s *Stack) OnEvict(fn func(n int)) {
	s.onEvict = fn
}

// Save pushes e onto the undo stack and clears the redo stack.
// It returns false without changing anything when e equals the current
// top of the undo stack.
func (s *Stack) Save(e Entry) bool {
	if n := len(s.undo); n > 0 && s.undo[n-1].Equal(e) {
		return false
	}
	s.push(e)
	s.redo = nil
	return true
}

func (s *Stack) push(e Entry) {
	s.undo = append(s.undo, e)
	s.trim()
}

func (s *Stack) trim() {
	excess := len(s.undo) - s.capacity
	if excess <= 0 {
		return
	}
	// Copy down so the evicted snapshots can be collected.
	n := copy(s.undo, s.undo[excess:])
	for i := n; i < len(s.undo); i++ {
		s.undo[i] = Entry{}
	}
	s.undo = s.undo[:n]
	if s.onEvict != nil {
		s.onEvict(excess)
	}
}

// Undo pops the most recent snapshot and returns it for restoring. The
// caller's current state is pushed onto the redo stack first. It returns
// false when there is nothing to undo.
func (s *Stack) Undo(current Entry) (Entry, bool) {
	n := len(s.undo)
	if n == 0 {
		return Entry{}, false
	}
	prev := s.undo[n-1]
	s.undo[n-1] = Entry{}
	s.undo = s.undo[:n-1]
	s.redo = append(s.redo, current)
	return prev, true
}

// Redo pops the most recently undone state and returns it for restoring.
// The caller's current state is pushed back onto the undo stack. It
// returns false when there is nothing to redo.
func (s *Stack) Redo(current Entry) (Entry, bool) {
	n := len(s.redo)
	if n == 0 {
		return Entry{}, false
	}
	next := s.redo[n-1]
	s.redo[n-1] = Entry{}
	s.redo = s.redo[:n-1]
	s.push(current)
	return next, true
}

// CanUndo returns true if undo is available.
func (s *Stack) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo returns true if redo is available.
func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// UndoCount returns the number of undo entries available.
func (s *Stack) UndoCount() int {
	return len(s.undo)
}

// RedoCount returns the number of redo entries available.
func (s *Stack) RedoCount() int {
	return len(s.redo)
}

// PeekUndo returns the snapshot Undo would restore without removing it.
func (s *Stack) PeekUndo() (Entry, bool) {
	if len(s.undo) == 0 {
		return Entry{}, false
	}
	return s.undo[len(s.undo)-1], true
}

// Clear removes all undo/redo history.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}

// Capacity returns the maximum number of undo entries.
func (s *Stack) Capacity() int {
	return s.capacity
}

// SetCapacity changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (s *Stack) SetCapacity(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s.capacity = capacity
	s.trim()
}
