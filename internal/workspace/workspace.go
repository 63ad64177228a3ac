package workspace

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/mdpad/internal/engine"
)

// Document is an open document and its engine.
type Document struct {
	mu sync.RWMutex

	handle   Handle
	name     string
	engine   *engine.Engine
	openedAt time.Time
}

// Handle returns the document's handle.
func (d *Document) Handle() Handle {
	return d.handle
}

// Name returns the document's current name, typically its path.
func (d *Document) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.name
}

// Engine returns the document's editing engine.
func (d *Document) Engine() *engine.Engine {
	return d.engine
}

// OpenedAt returns when the document was opened.
func (d *Document) OpenedAt() time.Time {
	return d.openedAt
}

// Modified reports whether the document has unsaved changes.
func (d *Document) Modified() bool {
	return d.engine.Modified()
}

// Workspace holds the open documents.
// It is safe for concurrent use; each document's engine is not.
type Workspace struct {
	mu    sync.RWMutex
	docs  map[Handle]*Document
	order []Handle

	engineOpts []engine.Option
	logger     *zap.Logger
	now        func() time.Time

	onClose []func(h Handle, name string)
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the logger. Each document's engine logs through it with
// the document handle attached.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Workspace) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithEngineOptions sets options applied to every engine the workspace
// creates, before any per-document options.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(w *Workspace) {
		w.engineOpts = append(w.engineOpts, opts...)
	}
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		docs:   make(map[Handle]*Document),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnClose registers a handler called after a document is closed.
func (w *Workspace) OnClose(fn func(h Handle, name string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClose = append(w.onClose, fn)
}

// Open creates a document named name holding content. Extra options are
// applied after the workspace's engine options. Names need not be unique.
func (w *Workspace) Open(name, content string, opts ...engine.Option) (*Document, error) {
	h := newHandle()
	log := w.logger.With(zap.Stringer("document", h))

	all := make([]engine.Option, 0, len(w.engineOpts)+len(opts)+2)
	all = append(all, w.engineOpts...)
	all = append(all, opts...)
	all = append(all, engine.WithContent(content), engine.WithLogger(log))

	eng, err := engine.New(all...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	doc := &Document{
		handle:   h,
		name:     name,
		engine:   eng,
		openedAt: w.now(),
	}

	w.mu.Lock()
	w.docs[h] = doc
	w.order = append(w.order, h)
	w.mu.Unlock()

	log.Info("document opened", zap.String("name", name), zap.Int("chars", eng.CharCount()))
	return doc, nil
}

// Get returns the document with handle h.
func (w *Workspace) Get(h Handle) (*Document, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc, ok := w.docs[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, h)
	}
	return doc, nil
}

// Rename changes a document's name. Its engine, and with it the undo
// history, is kept.
func (w *Workspace) Rename(h Handle, name string) error {
	doc, err := w.Get(h)
	if err != nil {
		return err
	}

	doc.mu.Lock()
	old := doc.name
	doc.name = name
	doc.mu.Unlock()

	w.logger.Info("document renamed", zap.Stringer("document", h), zap.String("from", old), zap.String("to", name))
	return nil
}

// Close removes a document from the workspace. Unsaved changes are
// discarded; callers check Document.Modified first.
func (w *Workspace) Close(h Handle) error {
	w.mu.Lock()
	doc, ok := w.docs[h]
	if !ok {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, h)
	}
	delete(w.docs, h)
	w.order = slices.DeleteFunc(w.order, func(o Handle) bool { return o == h })

	// Copy handlers so they run without the lock held.
	handlers := slices.Clone(w.onClose)
	w.mu.Unlock()

	name := doc.Name()
	w.logger.Info("document closed", zap.Stringer("document", h), zap.String("name", name), zap.Bool("modified", doc.Modified()))
	for _, fn := range handlers {
		fn(h, name)
	}
	return nil
}

// Handles returns the open documents' handles in the order they were
// opened.
func (w *Workspace) Handles() []Handle {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.order)
}

// Documents returns the open documents in the order they were opened.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	docs := make([]*Document, 0, len(w.order))
	for _, h := range w.order {
		docs = append(docs, w.docs[h])
	}
	return docs
}

// Lookup returns the handle of the earliest opened document named name.
func (w *Workspace) Lookup(name string) (Handle, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, h := range w.order {
		if w.docs[h].Name() == name {
			return h, true
		}
	}
	return NilHandle, false
}

// Modified returns the handles of documents with unsaved changes.
func (w *Workspace) Modified() []Handle {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []Handle
	for _, h := range w.order {
		if w.docs[h].Modified() {
			out = append(out, h)
		}
	}
	return out
}

// Len returns the number of open documents.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.docs)
}
