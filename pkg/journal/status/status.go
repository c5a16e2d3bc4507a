// Package status declares error constants returned by
// the journal package.
package status

import (
	"github.com/mjayprateek/jackrabbit-oak/pkg/errors"
)

var (
	// ErrOpen indicates that the journal file could not be opened
	ErrOpen = errors.New("failed to open journal file")

	// ErrAppend indicates a failure when appending an entry to the journal file
	ErrAppend = errors.New("failed to append journal entry")

	// ErrSync indicates that an appended entry could not be forced to stable storage.
	// An entry is only guaranteed to survive a crash once its sync succeeded.
	ErrSync = errors.New("failed to sync journal file")

	// ErrRead indicates a failure when reading the journal file back
	ErrRead = errors.New("failed to read journal file")

	// ErrReadOnly indicates an append to a journal opened in read-only mode
	ErrReadOnly = errors.New("journal is read-only")

	// ErrMalformedEntry indicates a journal line that does not parse.
	// Recovery treats such lines as a torn tail write and skips them.
	ErrMalformedEntry = errors.New("malformed journal entry")
)
