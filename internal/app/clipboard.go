package app

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/dshills/mdpad/internal/engine"
)

var (
	_ engine.Clipboard = SystemClipboard{}
	_ engine.Clipboard = (*MemoryClipboard)(nil)
)

// SystemClipboard reads and writes the desktop clipboard.
type SystemClipboard struct{}

// ReadText returns the clipboard text.
func (SystemClipboard) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// WriteText replaces the clipboard text.
func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// MemoryClipboard is a process-local clipboard used when no system
// clipboard is available.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// ReadText returns the stored text.
func (c *MemoryClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// WriteText stores text.
func (c *MemoryClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// DefaultClipboard returns the system clipboard, or a MemoryClipboard
// when the platform has no clipboard utility.
func DefaultClipboard() engine.Clipboard {
	if clipboard.Unsupported {
		return &MemoryClipboard{}
	}
	return SystemClipboard{}
}
