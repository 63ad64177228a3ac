package engine

// Cursor motions. With extend set the selection grows from a fixed anchor;
// without it an active selection collapses toward the motion.

// MoveLeft moves one character left.
func (e *Engine) MoveLeft(extend bool) {
	e.moveHorizontal(e.cur.Cursor()-1, extend)
}

// MoveRight moves one character right.
func (e *Engine) MoveRight(extend bool) {
	e.moveHorizontal(e.cur.Cursor()+1, extend)
}

// MoveWordLeft moves to the start of the previous word.
func (e *Engine) MoveWordLeft(extend bool) {
	e.moveHorizontal(e.wordLeft(e.cur.Cursor()), extend)
}

// MoveWordRight moves to the end of the next word.
func (e *Engine) MoveWordRight(extend bool) {
	e.moveHorizontal(e.wordRight(e.cur.Cursor()), extend)
}

// MoveLineStart moves to the start of the cursor's line.
func (e *Engine) MoveLineStart(extend bool) {
	line := e.buf.LineAt(e.cur.Cursor())
	e.moveHorizontal(e.buf.LineStart(line), extend)
}

// MoveLineEnd moves to the end of the cursor's line.
func (e *Engine) MoveLineEnd(extend bool) {
	line := e.buf.LineAt(e.cur.Cursor())
	e.moveHorizontal(e.buf.LineEnd(line), extend)
}

// MoveDocumentStart moves to offset 0.
func (e *Engine) MoveDocumentStart(extend bool) {
	e.moveHorizontal(0, extend)
}

// MoveDocumentEnd moves past the last character.
func (e *Engine) MoveDocumentEnd(extend bool) {
	e.moveHorizontal(e.buf.Len(), extend)
}

// MoveUp moves to the previous line, keeping the goal column.
func (e *Engine) MoveUp(extend bool) {
	e.moveVertical(-1, extend)
}

// MoveDown moves to the next line, keeping the goal column.
func (e *Engine) MoveDown(extend bool) {
	e.moveVertical(1, extend)
}

// MovePageUp moves up by the number of rows in the viewport.
func (e *Engine) MovePageUp(extend bool) {
	e.moveVertical(-max(e.view.VisibleRows(), 1), extend)
}

// MovePageDown moves down by the number of rows in the viewport.
func (e *Engine) MovePageDown(extend bool) {
	e.moveVertical(max(e.view.VisibleRows(), 1), extend)
}

func (e *Engine) moveHorizontal(target Offset, extend bool) {
	e.cur.MoveTo(target, extend)
	e.cur.ClearGoal()
}

func (e *Engine) moveVertical(lines int, extend bool) {
	pos := e.cur.Position()
	goal, ok := e.cur.Goal()
	if !ok {
		goal = pos.Col
	}

	line := pos.Line + lines
	var target Offset
	switch {
	case line < 0:
		target = 0
	case line >= e.buf.LineCount():
		target = e.buf.Len()
	default:
		target = e.buf.LineColToOffset(line, goal)
	}

	e.cur.MoveTo(target, extend)
	e.cur.SetGoal(goal)
}
