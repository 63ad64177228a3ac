package engine

import "math"

// PositionFromPoint maps a point in document pixels to the nearest
// character offset. y selects the line, clamped to the document; x is
// rounded to the nearest column and clamped to the line. NaN coordinates
// map to the first line or column.
func (e *Engine) PositionFromPoint(x, y float64) Offset {
	lastLine := e.buf.LineCount() - 1
	line := int(clampUnits(math.Floor(y/e.lineHeight), lastLine))
	col := int(clampUnits(math.Round(x/e.charWidth), e.buf.LineLen(line)))
	return e.buf.LineColToOffset(line, col)
}

// clampUnits limits v to [0, limit] before it is converted to an int.
func clampUnits(v float64, limit int) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return math.Min(v, float64(limit))
}

// Click places the cursor at the point, or extends the selection to it.
func (e *Engine) Click(x, y float64, extend bool) Offset {
	offset := e.PositionFromPoint(x, y)
	if extend {
		e.cur.MoveTo(offset, true)
	} else {
		e.cur.SetCursor(offset)
	}
	e.cur.ClearGoal()
	return offset
}

// DoubleClick selects the word at the point.
func (e *Engine) DoubleClick(x, y float64) bool {
	return e.SelectWord(e.PositionFromPoint(x, y))
}
