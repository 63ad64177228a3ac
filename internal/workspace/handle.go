package workspace

import (
	"fmt"

	"github.com/google/uuid"
)

// Handle identifies an open document independently of its name or path.
type Handle uuid.UUID

// NilHandle is the zero handle. No document ever has it.
var NilHandle Handle

func newHandle() Handle {
	return Handle(uuid.New())
}

// ParseHandle parses the string form of a handle.
func ParseHandle(s string) (Handle, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilHandle, fmt.Errorf("%w: %q: %w", ErrInvalidHandle, s, err)
	}
	return Handle(id), nil
}

// String returns the canonical UUID form of the handle.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// IsNil reports whether h is the zero handle.
func (h Handle) IsNil() bool {
	return h == NilHandle
}
