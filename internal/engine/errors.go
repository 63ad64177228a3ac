package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrInvalidOption indicates New was given an unusable option value.
	ErrInvalidOption = errors.New("invalid engine option")

	// ErrClipboard indicates the host clipboard could not be read or
	// written. The document and history are unchanged.
	ErrClipboard = errors.New("clipboard unavailable")

	// ErrUnknownDelimiter indicates Wrap was given a key with no
	// delimiter pair.
	ErrUnknownDelimiter = errors.New("unknown delimiter")
)
