package app

import (
	"strings"

	"github.com/rivo/uniseg"
)

// tabWidth is the tab stop interval in cells.
const tabWidth = 4

// cluster is one grapheme cluster laid out on a line.
type cluster struct {
	text  string
	col   int // rune column of the first rune
	runes int
	x     int // cell column
	width int
}

// layoutLine splits text into grapheme clusters and assigns each a cell
// column. Tabs advance to the next tab stop; control characters take one
// cell.
func layoutLine(text string) []cluster {
	if text == "" {
		return nil
	}
	out := make([]cluster, 0, len(text))
	g := uniseg.NewGraphemes(text)
	col, x := 0, 0
	for g.Next() {
		s := g.Str()
		n := len(g.Runes())
		w := g.Width()
		switch {
		case s == "\t":
			w = tabWidth - x%tabWidth
		case w == 0:
			w = 1
		}
		out = append(out, cluster{text: s, col: col, runes: n, x: x, width: w})
		col += n
		x += w
	}
	return out
}

// cellOf returns the cell column where rune column col starts. Columns
// past the end map to the cell after the last cluster.
func cellOf(text string, col int) int {
	x := 0
	for _, c := range layoutLine(text) {
		if c.col >= col {
			return c.x
		}
		x = c.x + c.width
	}
	return x
}

// columnAt returns the rune column for a cell column. A cell in the right
// half of a wide cluster maps past it, matching the rounding the engine
// applies to pixel positions.
func columnAt(text string, x int) int {
	if x <= 0 {
		return 0
	}
	col := 0
	for _, c := range layoutLine(text) {
		if x < c.x+c.width {
			if c.width > 1 && x-c.x >= (c.width+1)/2 {
				return c.col + c.runes
			}
			return c.col
		}
		col = c.col + c.runes
	}
	return col
}

// displayWidth returns the cell width of s without tab expansion.
func displayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// fit truncates s to width cells, or pads it with spaces.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := displayWidth(s)
	if w <= width {
		return s + strings.Repeat(" ", width-w)
	}
	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cw := g.Width()
		if used+cw > width {
			break
		}
		sb.WriteString(g.Str())
		used += cw
	}
	sb.WriteString(strings.Repeat(" ", width-used))
	return sb.String()
}
