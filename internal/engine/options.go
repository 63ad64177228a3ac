package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/mdpad/internal/engine/history"
	"github.com/dshills/mdpad/internal/renderer/viewport"
)

// Default configuration values.
const (
	DefaultIndentUnit   = "  "
	DefaultUndoCapacity = history.DefaultCapacity
	DefaultLineHeightPx = 20.0
	DefaultCharWidthPx  = 8.0
	DefaultOverscan     = viewport.DefaultOverscan
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithIndentUnit sets the text Indent adds to each line.
func WithIndentUnit(unit string) Option {
	return func(e *Engine) {
		e.indentUnit = unit
	}
}

// WithUndoCapacity sets the maximum number of undo snapshots.
func WithUndoCapacity(n int) Option {
	return func(e *Engine) {
		e.undoCapacity = n
	}
}

// WithMetrics sets the font metrics used for pixel to position mapping
// and scroll windowing.
func WithMetrics(lineHeightPx, charWidthPx float64) Option {
	return func(e *Engine) {
		e.lineHeight = lineHeightPx
		e.charWidth = charWidthPx
	}
}

// WithOverscan sets how many lines beyond the viewport are rendered.
func WithOverscan(lines int) Option {
	return func(e *Engine) {
		e.overscan = lines
	}
}

// WithFenceLanguages enables or disables language token spans inside
// fenced code blocks.
func WithFenceLanguages(enabled bool) Option {
	return func(e *Engine) {
		e.fenceLanguages = enabled
	}
}

// WithReadOnly creates a read-only engine.
// Edit operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithLogger sets the logger for engine diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
