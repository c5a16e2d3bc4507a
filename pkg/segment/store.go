package segment

import (
	"context"
)

type errString string

func (e errString) Error() string { return string(e) }

const (
	// ErrNotFound is returned when retrieving a segment that is not in the store
	ErrNotFound errString = "segment not found"

	// ErrExists is returned when writing a segment that is already in the store
	ErrExists errString = "segment exists already"
)

// Store is the narrow view of a segment store needed to validate record ids.
//
// Implementations are expected to be safe for concurrent use. The full
// segment engine behind it is deliberately not part of this interface.
type Store interface {
	String() string

	// Has reports whether the segment with the given key is still retrievable.
	Has(context.Context, Key) (bool, error)
}
