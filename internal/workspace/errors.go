package workspace

import "errors"

// Errors returned by Workspace operations.
var (
	// ErrNotFound indicates no open document has the handle.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidHandle indicates a handle string could not be parsed.
	ErrInvalidHandle = errors.New("invalid document handle")
)
