// Package viewport computes the window of lines to materialize for a
// vertically scrolled document.
//
// The document is laid out as lineCount rows of lineHeightPx each. Only the
// rows in the current Window (the visible rows plus overscan above and
// below) are fetched and highlighted; the host draws them translated by
// Window.OffsetPx while Window.TotalHeightPx sizes the scrollbar.
package viewport

import "math"

// DefaultOverscan is the number of extra lines materialized above and
// below the visible rows.
const DefaultOverscan = 5

// Window is the contiguous line range to render.
type Window struct {
	StartLine int
	Count     int

	// OffsetPx is where StartLine is drawn: StartLine * lineHeightPx.
	OffsetPx float64

	// TotalHeightPx is lineCount * lineHeightPx.
	TotalHeightPx float64
}

// EndLine returns the line after the last line in the window.
func (w Window) EndLine() int {
	return w.StartLine + w.Count
}

// Contains reports whether line is inside the window.
func (w Window) Contains(line int) bool {
	return line >= w.StartLine && line < w.EndLine()
}

// Windower tracks scroll position and viewport size and recomputes the
// Window on every change.
type Windower struct {
	lineHeight     float64
	viewportHeight float64
	scroll         float64
	lineCount      int

	overscan int
	margin   int

	win Window
}

// Option configures a Windower.
type Option func(*Windower)

// WithOverscan sets the overscan line count. Negative values are treated
// as zero.
func WithOverscan(lines int) Option {
	return func(w *Windower) {
		w.overscan = max(lines, 0)
	}
}

// WithMargin sets how many lines Reveal keeps between the revealed line
// and the viewport edges.
func WithMargin(lines int) Option {
	return func(w *Windower) {
		w.margin = max(lines, 0)
	}
}

// NewWindower creates a windower for rows of lineHeightPx. A
// non-positive line height is treated as 1.
func NewWindower(lineHeightPx float64, opts ...Option) *Windower {
	w := &Windower{
		lineHeight: positive(lineHeightPx),
		lineCount:  1,
		overscan:   DefaultOverscan,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.recompute()
	return w
}

// Window returns the current window.
func (w *Windower) Window() Window {
	return w.win
}

// ScrollOffset returns the scroll position in pixels.
func (w *Windower) ScrollOffset() float64 {
	return w.scroll
}

// LineHeight returns the row height in pixels.
func (w *Windower) LineHeight() float64 {
	return w.lineHeight
}

// ViewportHeight returns the viewport height in pixels.
func (w *Windower) ViewportHeight() float64 {
	return w.viewportHeight
}

// LineCount returns the document line count.
func (w *Windower) LineCount() int {
	return w.lineCount
}

// Overscan returns the overscan line count.
func (w *Windower) Overscan() int {
	return w.overscan
}

// MaxScroll returns the largest valid scroll offset.
func (w *Windower) MaxScroll() float64 {
	return math.Max(0, w.totalHeight()-w.viewportHeight)
}

// Scroll moves to an absolute offset, clamped to [0, MaxScroll].
func (w *Windower) Scroll(px float64) Window {
	w.scroll = px
	w.recompute()
	return w.win
}

// ScrollBy moves the scroll offset by delta pixels.
func (w *Windower) ScrollBy(delta float64) Window {
	return w.Scroll(w.scroll + delta)
}

// ScrollLines moves the scroll offset by n rows.
func (w *Windower) ScrollLines(n int) Window {
	return w.ScrollBy(float64(n) * w.lineHeight)
}

// Resize sets the viewport height.
func (w *Windower) Resize(heightPx float64) Window {
	w.viewportHeight = math.Max(0, heightPx)
	w.recompute()
	return w.win
}

// SetLineHeight changes the row height, keeping the first visible line
// in place.
func (w *Windower) SetLineHeight(px float64) Window {
	top := w.FirstVisibleLine()
	w.lineHeight = positive(px)
	w.scroll = float64(top) * w.lineHeight
	w.recompute()
	return w.win
}

// SetLineCount records a new document length. A document always has at
// least one line.
func (w *Windower) SetLineCount(n int) Window {
	w.lineCount = max(n, 1)
	w.recompute()
	return w.win
}

// FirstVisibleLine returns the line at the top edge of the viewport.
func (w *Windower) FirstVisibleLine() int {
	return w.clampLine(int(math.Floor(w.scroll / w.lineHeight)))
}

// LastVisibleLine returns the line at the bottom edge of the viewport.
func (w *Windower) LastVisibleLine() int {
	if w.viewportHeight <= 0 {
		return w.FirstVisibleLine()
	}
	return w.clampLine(int(math.Ceil((w.scroll+w.viewportHeight)/w.lineHeight)) - 1)
}

// VisibleRows returns how many whole rows fit in the viewport.
func (w *Windower) VisibleRows() int {
	return int(math.Floor(w.viewportHeight / w.lineHeight))
}

// LineAtY maps a y coordinate relative to the viewport top to a line,
// clamped to the document.
func (w *Windower) LineAtY(y float64) int {
	return w.clampLine(int(math.Floor((y + w.scroll) / w.lineHeight)))
}

// Reveal scrolls the minimum distance that makes line fully visible with
// the configured margin around it.
func (w *Windower) Reveal(line int) Window {
	line = w.clampLine(line)
	margin := w.effectiveMargin()

	top := float64(line-margin) * w.lineHeight
	bottom := float64(line+1+margin) * w.lineHeight

	switch {
	case top < w.scroll:
		w.scroll = top
	case bottom > w.scroll+w.viewportHeight:
		w.scroll = bottom - w.viewportHeight
	}
	w.recompute()
	return w.win
}

// effectiveMargin limits the margin so a revealed line and its margins
// fit in the viewport.
func (w *Windower) effectiveMargin() int {
	rows := w.VisibleRows()
	if rows <= 1 {
		return 0
	}
	return min(w.margin, (rows-1)/2)
}

func (w *Windower) recompute() {
	w.scroll = math.Min(math.Max(0, w.scroll), w.MaxScroll())

	start := max(0, int(math.Floor(w.scroll/w.lineHeight))-w.overscan)
	count := int(math.Ceil(w.viewportHeight/w.lineHeight)) + 2*w.overscan
	if start > w.lineCount-1 {
		start = w.lineCount - 1
	}
	if start+count > w.lineCount {
		count = w.lineCount - start
	}

	w.win = Window{
		StartLine:     start,
		Count:         count,
		OffsetPx:      float64(start) * w.lineHeight,
		TotalHeightPx: w.totalHeight(),
	}
}

func (w *Windower) totalHeight() float64 {
	return float64(w.lineCount) * w.lineHeight
}

func (w *Windower) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if line >= w.lineCount {
		return w.lineCount - 1
	}
	return line
}

func positive(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 1
	}
	return v
}
