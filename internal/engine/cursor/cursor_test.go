package cursor

import (
	"testing"

	"github.com/dshills/mdpad/internal/engine/buffer"
)

func newTestModel(text string) (*buffer.Buffer, *Model) {
	buf := buffer.NewBufferFromString(text)
	return buf, NewModel(buf)
}

// Selection Tests

func TestNewSelectionNormalizes(t *testing.T) {
	tests := []struct {
		a, b       Offset
		start, end Offset
	}{
		{2, 5, 2, 5},
		{5, 2, 2, 5},
		{3, 3, 3, 3},
	}
	for _, tt := range tests {
		sel := NewSelection(tt.a, tt.b)
		if sel.Start != tt.start || sel.End != tt.end {
			t.Errorf("NewSelection(%d, %d) = %v, want [%d,%d)", tt.a, tt.b, sel, tt.start, tt.end)
		}
	}
}

func TestSelectionContains(t *testing.T) {
	sel := NewSelection(2, 5)
	if !sel.Contains(2) || !sel.Contains(4) {
		t.Error("selection should contain its start and interior")
	}
	if sel.Contains(5) || sel.Contains(1) {
		t.Error("selection should not contain its end or outside offsets")
	}
}

// Model Tests

func TestSetCursorRoundTrip(t *testing.T) {
	buf, m := newTestModel("héllo\nwörld")
	for o := 0; o <= buf.Len(); o++ {
		m.SetCursor(o)
		if m.Cursor() != o {
			t.Errorf("SetCursor(%d): Cursor() = %d", o, m.Cursor())
		}
	}
}

func TestSetCursorClamps(t *testing.T) {
	_, m := newTestModel("abc")
	m.SetCursor(-4)
	if m.Cursor() != 0 {
		t.Errorf("expected 0, got %d", m.Cursor())
	}
	m.SetCursor(40)
	if m.Cursor() != 3 {
		t.Errorf("expected 3, got %d", m.Cursor())
	}
}

func TestPosition(t *testing.T) {
	_, m := newTestModel("ab\ncde")
	m.SetCursor(4)
	pos := m.Position()
	if pos.Line != 1 || pos.Col != 1 || pos.Offset != 4 {
		t.Errorf("unexpected position %v", pos)
	}
}

func TestSetSelectionAnyOrder(t *testing.T) {
	_, m := newTestModel("0123456789")
	pairs := [][2]Offset{{2, 7}, {7, 2}, {0, 10}, {10, 0}, {-3, 50}}
	for _, p := range pairs {
		m.SetSelection(p[0], p[1])
		sel := m.Selection()
		if sel.Start > sel.End {
			t.Errorf("SetSelection(%d, %d) produced start %d > end %d", p[0], p[1], sel.Start, sel.End)
		}
		if !m.HasSelection() {
			t.Errorf("SetSelection(%d, %d) should be selecting", p[0], p[1])
		}
	}
}

func TestEmptySelectionCollapses(t *testing.T) {
	_, m := newTestModel("abc")
	m.SetSelection(2, 2)
	if m.HasSelection() {
		t.Error("equal bounds should collapse to no-selection")
	}
	if m.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", m.Cursor())
	}
}

func TestClearSelectionDropsAnchor(t *testing.T) {
	_, m := newTestModel("abcdef")
	m.SetSelection(1, 4)
	m.ClearSelection()
	if m.HasSelection() {
		t.Error("selection should be cleared")
	}
	if _, ok := m.Anchor(); ok {
		t.Error("anchor should be cleared")
	}
	if m.Cursor() != 4 {
		t.Errorf("cursor should stay at 4, got %d", m.Cursor())
	}
}

func TestShiftMoveStartsSelectionAtPreMoveCursor(t *testing.T) {
	_, m := newTestModel("abcdef")
	m.SetCursor(2)
	m.MoveTo(4, true)

	sel := m.Selection()
	if sel.Start != 2 || sel.End != 4 {
		t.Errorf("expected [2,4), got %v", sel)
	}
	if anchor, ok := m.Anchor(); !ok || anchor != 2 {
		t.Errorf("expected anchor 2, got %d (%v)", anchor, ok)
	}
}

func TestShiftMoveKeepsAnchorWhileExtending(t *testing.T) {
	_, m := newTestModel("abcdefgh")
	m.SetCursor(4)
	m.MoveTo(6, true)
	m.MoveTo(1, true)

	sel := m.Selection()
	if sel.Start != 1 || sel.End != 4 {
		t.Errorf("expected [1,4) after crossing anchor, got %v", sel)
	}
	if m.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", m.Cursor())
	}

	m.MoveTo(4, true)
	if m.HasSelection() {
		t.Error("returning to the anchor should collapse the selection")
	}
	m.MoveTo(5, true)
	if sel := m.Selection(); sel.Start != 4 || sel.End != 5 {
		t.Errorf("anchor should survive a collapse while extending, got %v", sel)
	}
}

func TestPlainMoveCollapsesTowardDirection(t *testing.T) {
	// Selection [2,5) with the cursor at 5.
	tests := []struct {
		name   string
		target Offset
		want   Offset
	}{
		{"left", 4, 2},
		{"right", 6, 5},
		{"far right", 8, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := newTestModel("abcdefgh")
			m.SetSelection(2, 5)
			m.MoveTo(tt.target, false)

			if m.HasSelection() {
				t.Fatal("plain move should leave no selection")
			}
			if m.Cursor() != tt.want {
				t.Errorf("expected cursor %d, got %d", tt.want, m.Cursor())
			}
			if _, ok := m.Anchor(); ok {
				t.Error("plain move should drop the anchor")
			}
		})
	}
}

func TestPlainMoveWithoutSelection(t *testing.T) {
	_, m := newTestModel("abcdef")
	m.SetCursor(1)
	m.MoveTo(3, false)
	if m.Cursor() != 3 || m.HasSelection() {
		t.Errorf("expected cursor 3 without selection, got %d", m.Cursor())
	}
}

func TestTransformShiftsState(t *testing.T) {
	buf, m := newTestModel("hello world")
	m.SetSelection(6, 11)

	res := buf.Apply(buffer.Edit{Range: buffer.Range{Start: 0, End: 0}, NewText: ">> "})
	m.Transform(res)

	sel := m.Selection()
	if sel.Start != 9 || sel.End != 14 {
		t.Errorf("expected [9,14), got %v", sel)
	}
	if m.Cursor() != 14 {
		t.Errorf("expected cursor 14, got %d", m.Cursor())
	}
	if anchor, _ := m.Anchor(); anchor != 9 {
		t.Errorf("expected anchor 9, got %d", anchor)
	}
}

func TestTransformOffset(t *testing.T) {
	res := buffer.EditResult{
		OldRange: buffer.Range{Start: 5, End: 8},
		NewRange: buffer.Range{Start: 5, End: 6},
	}
	tests := []struct {
		offset, want Offset
	}{
		{2, 2},
		{5, 5},
		{6, 6},
		{8, 6},
		{12, 10},
	}
	for _, tt := range tests {
		if got := TransformOffset(tt.offset, res); got != tt.want {
			t.Errorf("TransformOffset(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestRevalidateAfterShrink(t *testing.T) {
	buf, m := newTestModel("a long document")
	m.SetSelection(3, 12)
	buf.SetContent("tiny")
	m.Revalidate()

	if m.Cursor() > buf.Len() {
		t.Errorf("cursor %d beyond length %d", m.Cursor(), buf.Len())
	}
	if sel := m.Selection(); sel.End > buf.Len() {
		t.Errorf("selection %v beyond length %d", sel, buf.Len())
	}
}
