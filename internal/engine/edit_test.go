package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// Typing and Deletion
// ============================================================================

func TestInsertText(t *testing.T) {
	e := newEngine(t, "hello world")

	e.SetCursor(5)
	if err := e.InsertText(","); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Content() != "hello, world" || e.Cursor() != 6 {
		t.Errorf("expected %q at 6, got %q at %d", "hello, world", e.Content(), e.Cursor())
	}

	e.SetSelection(7, 12)
	if err := e.InsertText("there"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Content() != "hello, there" {
		t.Errorf("expected selection replaced, got %q", e.Content())
	}
	if e.HasSelection() || e.Cursor() != 12 {
		t.Errorf("expected collapsed cursor at 12, got %d selection %v", e.Cursor(), e.HasSelection())
	}

	if err := e.InsertChar('😀'); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Cursor() != 13 {
		t.Errorf("expected a multi-byte character to advance by one, got %d", e.Cursor())
	}
}

func TestBackspaceAndDelete(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		selA, selB int
		op         func(*Engine) error
		want       string
		wantCursor int
	}{
		{"backspace", "abc", 2, 2, (*Engine).Backspace, "ac", 1},
		{"backspace at start", "abc", 0, 0, (*Engine).Backspace, "abc", 0},
		{"backspace joins lines", "a\nb", 2, 2, (*Engine).Backspace, "ab", 1},
		{"backspace selection", "abcdef", 1, 4, (*Engine).Backspace, "aef", 1},
		{"delete forward", "abc", 1, 1, (*Engine).DeleteForward, "ac", 1},
		{"delete forward at end", "abc", 3, 3, (*Engine).DeleteForward, "abc", 3},
		{"delete forward selection", "abcdef", 4, 1, (*Engine).DeleteForward, "aef", 1},
		{"delete word left", "hello world", 11, 11, (*Engine).DeleteWordLeft, "hello ", 6},
		{"delete word left over spaces", "hello   ", 8, 8, (*Engine).DeleteWordLeft, "", 0},
		{"delete word right", "hello world", 0, 0, (*Engine).DeleteWordRight, " world", 0},
		{"delete word right mid word", "hello world", 2, 2, (*Engine).DeleteWordRight, "he world", 2},
		{"delete word selection", "hello world", 0, 2, (*Engine).DeleteWordRight, "llo world", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.content)
			e.SetSelection(tt.selA, tt.selB)
			if err := tt.op(e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Content() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, e.Content())
			}
			if e.Cursor() != tt.wantCursor {
				t.Errorf("expected cursor %d, got %d", tt.wantCursor, e.Cursor())
			}
		})
	}
}

func TestNoopDeletionSavesNothing(t *testing.T) {
	e := newEngine(t, "abc")
	_ = e.Backspace()
	e.SetCursor(3)
	_ = e.DeleteForward()

	if e.CanUndo() {
		t.Errorf("expected no undo entries, got %d", e.UndoCount())
	}
}

func TestEachEditIsOneUndoStep(t *testing.T) {
	e := newEngine(t, "")
	for _, r := range "abc" {
		_ = e.InsertChar(r)
	}
	_ = e.Backspace()

	if e.UndoCount() != 4 {
		t.Fatalf("expected 4 undo entries, got %d", e.UndoCount())
	}
	e.Undo()
	if e.Content() != "abc" {
		t.Errorf("expected %q, got %q", "abc", e.Content())
	}
}

// ============================================================================
// Newline with Continuation
// ============================================================================

func TestInsertNewline(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		cursor     int
		want       string
		wantCursor int
	}{
		{"plain", "plain", 5, "plain\n", 6},
		{"split line", "hello", 2, "he\nllo", 3},
		{"keeps indentation", "  indented", 10, "  indented\n  ", 13},
		{"bullet", "- item", 6, "- item\n- ", 9},
		{"star bullet", "* item", 6, "* item\n* ", 9},
		{"ordered", "1. one", 6, "1. one\n2. ", 10},
		{"ordered paren", "9) x", 4, "9) x\n10) ", 9},
		{"task resets", "- [x] done", 10, "- [x] done\n- [ ] ", 17},
		{"quote", "> quote", 7, "> quote\n> ", 10},
		{"quoted list", "> - a", 5, "> - a\n> - ", 10},
		{"nested list", "  - sub", 7, "  - sub\n  - ", 12},
		{"split item", "- item", 3, "- i\n- tem", 6},
		{"inside prefix", "- item", 1, "-\n item", 2},
		{"empty item ends list", "- ", 2, "", 0},
		{"empty ordered item", "a\n3. ", 5, "a\n", 2},
		{"empty quoted item keeps quote", "> - ", 4, "> ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.content)
			e.SetCursor(tt.cursor)
			if err := e.InsertNewline(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Content() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, e.Content())
			}
			if e.Cursor() != tt.wantCursor {
				t.Errorf("expected cursor %d, got %d", tt.wantCursor, e.Cursor())
			}
		})
	}
}

func TestInsertNewlineReplacesSelection(t *testing.T) {
	e := newEngine(t, "- one two")
	e.SetSelection(5, 6)
	if err := e.InsertNewline(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Content() != "- one\n- two" {
		t.Errorf("expected %q, got %q", "- one\n- two", e.Content())
	}
}

// ============================================================================
// Indentation
// ============================================================================

func TestIndentDedentScenario(t *testing.T) {
	original := "one\ntwo\nthree\nfour\nfive"
	e := newEngine(t, original)

	// Lines 2-4 (1-based), starting mid-line.
	e.SetSelection(e.LineStart(1)+1, e.LineStart(3)+2)
	if err := e.Indent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "one\n  two\n  three\n  four\nfive"
	if e.Content() != want {
		t.Fatalf("expected %q, got %q", want, e.Content())
	}
	if got := e.SelectedText(); got != "wo\n  three\n  fo" {
		t.Errorf("expected selection to keep covering the same text, got %q", got)
	}

	if err := e.Dedent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Content() != original {
		t.Errorf("expected original restored, got %q", e.Content())
	}
}

func TestIndentDedentRoundTrip(t *testing.T) {
	original := "alpha\nbeta\n\ngamma\ndelta"
	selections := []struct {
		name string
		a, b int
	}{
		{"cursor only", 2, 2},
		{"within a line", 1, 4},
		{"two lines", 3, 8},
		{"ends at line start", 0, 11},
		{"whole document", 0, 24},
		{"backward", 20, 7},
	}

	for _, sel := range selections {
		for n := 1; n <= 3; n++ {
			e := newEngine(t, original)
			e.SetSelection(sel.a, sel.b)
			for range n {
				if err := e.Indent(); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			for range n {
				if err := e.Dedent(); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if e.Content() != original {
				t.Errorf("%s x%d: expected %q, got %q", sel.name, n, original, e.Content())
			}
		}
	}
}

func TestIndentExcludesLineAtSelectionEnd(t *testing.T) {
	e := newEngine(t, "a\nb\nc")
	e.SetSelection(0, e.LineStart(2))
	_ = e.Indent()

	if e.Content() != "  a\n  b\nc" {
		t.Errorf("expected last line untouched, got %q", e.Content())
	}
}

func TestIndentBlankLine(t *testing.T) {
	e := newEngine(t, "")
	_ = e.Indent()
	if e.Content() != "  " || e.Cursor() != 2 {
		t.Errorf("expected indent unit at 2, got %q at %d", e.Content(), e.Cursor())
	}
}

func TestIndentUnitOption(t *testing.T) {
	e := newEngine(t, "x", WithIndentUnit("\t"))
	_ = e.Indent()
	if e.Content() != "\tx" {
		t.Errorf("expected tab indent, got %q", e.Content())
	}
	_ = e.Dedent()
	if e.Content() != "x" {
		t.Errorf("expected tab removed, got %q", e.Content())
	}
}

func TestDedent(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"    four", "  four"},
		{" one", "one"},
		{"\ttab", "tab"},
		{"none", "none"},
		{"", ""},
	}

	for _, tt := range tests {
		e := newEngine(t, tt.content)
		_ = e.Dedent()
		if e.Content() != tt.want {
			t.Errorf("dedent %q: expected %q, got %q", tt.content, tt.want, e.Content())
		}
	}
}

func TestDedentNothingSavesNothing(t *testing.T) {
	e := newEngine(t, "a\nb")
	e.SelectAll()
	_ = e.Dedent()
	if e.CanUndo() {
		t.Error("dedent without leading whitespace should not save undo state")
	}
}

func TestIndentIsOneUndoStep(t *testing.T) {
	original := "a\nb\nc"
	e := newEngine(t, original)
	e.SelectAll()
	_ = e.Indent()

	if e.UndoCount() != 1 {
		t.Fatalf("expected 1 undo entry, got %d", e.UndoCount())
	}
	e.Undo()
	if e.Content() != original {
		t.Errorf("expected %q, got %q", original, e.Content())
	}
}

// ============================================================================
// Line Prefixes and Headings
// ============================================================================

func TestToggleLinePrefix(t *testing.T) {
	tests := []struct {
		name    string
		content string
		prefix  string
		want    string
	}{
		{"add bullet", "a\nb", "- ", "- a\n- b"},
		{"remove bullet", "- a\n- b", "- ", "a\nb"},
		{"mixed adds", "- a\nb", "- ", "- a\n- b"},
		{"replace bullet", "* a\n+ b", "- ", "- a\n- b"},
		{"add ordered", "a\nb\nc", "1. ", "1. a\n2. b\n3. c"},
		{"ordered from bullets", "* a\n* b", "1. ", "1. a\n2. b"},
		{"remove ordered", "1. a\n2. b", "1. ", "a\nb"},
		{"ordered start", "a\nb", "3. ", "3. a\n4. b"},
		{"add task", "a", "- [ ] ", "- [ ] a"},
		{"task over bullet", "- a", "- [ ] ", "- [ ] a"},
		{"remove task", "- [ ] a\n- [ ] b", "- [ ] ", "a\nb"},
		{"bullet off a task", "- [ ] task", "- ", "[ ] task"},
		{"ordinal off a task", "1. [x] done\n2. [ ] todo", "1. ", "[x] done\n[ ] todo"},
		{"keeps indentation", "  a", "- ", "  - a"},
		{"list inside quote", "> a", "- ", "> - a"},
		{"add quote", "a\nb", "> ", "> a\n> b"},
		{"remove quote", "> a\n>b", "> ", "a\nb"},
		{"quote a list", "- a", "> ", "> - a"},
		{"blank line", "", "- ", "- "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.content)
			e.SelectAll()
			if err := e.ToggleLinePrefix(tt.prefix); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Content() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, e.Content())
			}
		})
	}
}

func TestToggleLinePrefixRoundTrip(t *testing.T) {
	original := "one\ntwo\nthree"
	for _, prefix := range []string{"- ", "* ", "+ ", "1. ", "- [ ] ", "> "} {
		e := newEngine(t, original)
		e.SelectAll()
		_ = e.ToggleLinePrefix(prefix)
		_ = e.ToggleLinePrefix(prefix)
		if e.Content() != original {
			t.Errorf("%q: expected %q, got %q", prefix, original, e.Content())
		}
	}
}

func TestToggleLinePrefixKeepsCursor(t *testing.T) {
	e := newEngine(t, "first\nsecond")
	e.SetCursor(9) // "sec|ond"
	_ = e.ToggleLinePrefix("- ")

	if e.Content() != "first\n- second" {
		t.Errorf("expected only the cursor line prefixed, got %q", e.Content())
	}
	if e.Cursor() != 11 {
		t.Errorf("expected cursor to move with the text, got %d", e.Cursor())
	}
}

func TestToggleHeading(t *testing.T) {
	tests := []struct {
		name    string
		content string
		level   int
		want    string
	}{
		{"add", "Title", 2, "## Title"},
		{"same level removes", "## Title", 2, "Title"},
		{"change level", "# Title", 3, "### Title"},
		{"level zero removes", "#### Title", 0, "Title"},
		{"clamped level", "Title", 9, "###### Title"},
		{"extra spaces", "#   Title", 1, "Title"},
		{"multi-line", "a\n## b", 1, "# a\n# b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.content)
			e.SelectAll()
			if err := e.ToggleHeading(tt.level); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Content() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, e.Content())
			}
		})
	}
}

func TestToggleHeadingNoopSavesNothing(t *testing.T) {
	e := newEngine(t, "plain")
	_ = e.ToggleHeading(0)
	if e.CanUndo() || e.Content() != "plain" {
		t.Errorf("expected no change, got %q undo=%v", e.Content(), e.CanUndo())
	}
}

func TestLargeSelectionIndent(t *testing.T) {
	lines := make([]string, 500)
	for i := range lines {
		lines[i] = "line"
	}
	original := strings.Join(lines, "\n")
	e := newEngine(t, original)
	e.SelectAll()

	_ = e.Indent()
	if got := e.Line(499); got != "  line" {
		t.Errorf("expected last line indented, got %q", got)
	}
	_ = e.Dedent()
	if e.Content() != original {
		t.Error("expected original restored")
	}
}
