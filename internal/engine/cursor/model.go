package cursor

import "github.com/dshills/mdpad/internal/engine/buffer"

// Document is the part of the text buffer the model needs.
type Document interface {
	Len() int
	OffsetToPosition(offset buffer.Offset) buffer.Position
}

// Model is the cursor/selection state machine for one document.
type Model struct {
	doc Document

	cursor Offset
	sel    Selection
	hasSel bool

	anchor    Offset
	hasAnchor bool

	// goal is the column vertical motion tries to return to; -1 when unset.
	goal int
}

// NewModel creates a model with the cursor at the start of doc.
func NewModel(doc Document) *Model {
	return &Model{doc: doc, goal: -1}
}

// Cursor returns the cursor offset.
func (m *Model) Cursor() Offset {
	return m.cursor
}

// Position returns the cursor as a line/column position.
func (m *Model) Position() buffer.Position {
	return m.doc.OffsetToPosition(m.cursor)
}

// SetCursor places the cursor at offset, clamped to the document. Setting
// the cursor is a non-extending move: any selection and anchor are dropped.
func (m *Model) SetCursor(offset Offset) {
	m.cursor = m.clamp(offset)
	m.hasSel = false
	m.hasAnchor = false
	m.goal = -1
}

// HasSelection reports whether the model is in the selecting state.
func (m *Model) HasSelection() bool {
	return m.hasSel
}

// Selection returns the active selection, or an empty selection at the
// cursor when there is none.
func (m *Model) Selection() Selection {
	if !m.hasSel {
		return Selection{Start: m.cursor, End: m.cursor}
	}
	return m.sel
}

// SetSelection selects the range between a and b in either order. The
// cursor moves to b and a becomes the anchor for later extension. Equal
// bounds collapse to no-selection with the cursor at b.
func (m *Model) SetSelection(a, b Offset) {
	a, b = m.clamp(a), m.clamp(b)
	m.cursor = b
	m.anchor = a
	m.hasAnchor = true
	m.goal = -1
	m.setRange(NewSelection(a, b))
}

// ClearSelection returns to no-selection and forgets the anchor. The
// cursor is not moved.
func (m *Model) ClearSelection() {
	m.hasSel = false
	m.hasAnchor = false
}

// Anchor returns the extension anchor and whether one is set.
func (m *Model) Anchor() (Offset, bool) {
	return m.anchor, m.hasAnchor
}

// MoveTo applies a cursor motion to target.
//
// With extend set, the anchor is fixed at the pre-move cursor (or kept if
// already set) and the selection spans anchor..target. Without extend, an
// active selection collapses to its boundary in the direction of the
// motion instead of moving to target.
func (m *Model) MoveTo(target Offset, extend bool) {
	target = m.clamp(target)
	if extend {
		if !m.hasAnchor {
			m.anchor = m.cursor
			m.hasAnchor = true
		}
		m.cursor = target
		m.setRange(NewSelection(m.anchor, target))
		return
	}

	if m.hasSel {
		switch {
		case target < m.cursor:
			m.cursor = m.sel.Start
		case target > m.cursor:
			m.cursor = m.sel.End
		}
	} else {
		m.cursor = target
	}
	m.hasSel = false
	m.hasAnchor = false
}

// Goal returns the remembered column for vertical motion and whether one
// is set.
func (m *Model) Goal() (int, bool) {
	return m.goal, m.goal >= 0
}

// SetGoal remembers col for subsequent vertical motion.
func (m *Model) SetGoal(col int) {
	m.goal = col
}

// ClearGoal forgets the vertical motion column.
func (m *Model) ClearGoal() {
	m.goal = -1
}

// Transform shifts the cursor, selection and anchor after an edit.
func (m *Model) Transform(res buffer.EditResult) {
	m.cursor = m.clamp(TransformOffset(m.cursor, res))
	if m.hasAnchor {
		m.anchor = m.clamp(TransformOffset(m.anchor, res))
	}
	if m.hasSel {
		m.setRange(TransformSelection(m.sel, res).Clamp(m.doc.Len()))
	}
}

// Reset returns the model to its initial state.
func (m *Model) Reset() {
	m.cursor = 0
	m.hasSel = false
	m.hasAnchor = false
	m.goal = -1
}

// Revalidate clamps all offsets after the document was replaced wholesale.
func (m *Model) Revalidate() {
	m.cursor = m.clamp(m.cursor)
	m.anchor = m.clamp(m.anchor)
	if m.hasSel {
		m.setRange(m.sel.Clamp(m.doc.Len()))
	}
}

func (m *Model) setRange(sel Selection) {
	m.sel = sel
	m.hasSel = !sel.IsEmpty()
}

func (m *Model) clamp(offset Offset) Offset {
	return clamp(offset, m.doc.Len())
}
