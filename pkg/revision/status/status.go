// Package status declares error constants returned by
// the revision package.
package status

import (
	"github.com/mjayprateek/jackrabbit-oak/pkg/errors"
)

var (
	// ErrNotBound signals a use of the revision cell before Bind completed
	ErrNotBound = errors.New("revisions not bound to a store")

	// ErrTooManyOptions signals caller misuse of the functional update path
	ErrTooManyOptions = errors.New("expected zero or one timeout options")

	// ErrInitialHead indicates that the initial head supplier failed while
	// recovering from an empty or fully invalid journal
	ErrInitialHead = errors.New("failed to obtain initial head")

	// ErrPersistedCallback wraps an unexpected failure raised by the
	// persisted callback during flush
	ErrPersistedCallback = errors.New("persisted callback failed")
)
