package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Clipboard is the host clipboard.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// Copy writes the selected text to cb. Without a selection it does
// nothing.
func (e *Engine) Copy(ctx context.Context, cb Clipboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := e.SelectedText()
	if text == "" {
		return nil
	}
	if err := cb.WriteText(text); err != nil {
		e.logger.Warn("clipboard write failed", zap.String("op", "copy"), zap.Error(err))
		return fmt.Errorf("%w: write: %w", ErrClipboard, err)
	}
	return nil
}

// Cut writes the selected text to cb and then deletes it. When the write
// fails the document is left untouched.
func (e *Engine) Cut(ctx context.Context, cb Clipboard) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	text := e.SelectedText()
	if text == "" {
		return nil
	}
	if err := cb.WriteText(text); err != nil {
		e.logger.Warn("clipboard write failed", zap.String("op", "cut"), zap.Error(err))
		return fmt.Errorf("%w: write: %w", ErrClipboard, err)
	}
	return e.deleteSelection()
}

// Paste replaces the selection with the clipboard text.
func (e *Engine) Paste(ctx context.Context, cb Clipboard) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	text, err := cb.ReadText()
	if err != nil {
		e.logger.Warn("clipboard read failed", zap.String("op", "paste"), zap.Error(err))
		return fmt.Errorf("%w: read: %w", ErrClipboard, err)
	}
	return e.InsertText(text)
}
