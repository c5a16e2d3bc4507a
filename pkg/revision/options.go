package revision

import (
	"math"
	"time"

	"github.com/mjayprateek/jackrabbit-oak/pkg/revision/status"

	"go.uber.org/zap"
)

// Option to the revision cell
type Option func(*Revisions)

// Logger sets a logger for this revision cell
func Logger(logger *zap.Logger) Option {
	return func(r *Revisions) {
		if logger != nil {
			r.l = logger
		}
	}
}

// ReadOnly opens the journal in read-only mode, as a safeguard when the
// underlying store is itself read-only
func ReadOnly() Option {
	return func(r *Revisions) {
		r.readOnly = true
	}
}

// UpdateOption bounds the exclusive wait of the functional UpdateHead path
type UpdateOption struct {
	wait time.Duration
}

// Timeout builds an option waiting at most d for exclusive access
func Timeout(d time.Duration) UpdateOption {
	return UpdateOption{wait: d}
}

// Infinity approximates an unbounded wait with an astronomically large
// duration (about 292 years), so that every acquisition goes through the
// same bounded-wait code path.
var Infinity = Timeout(time.Duration(math.MaxInt64))

// timeoutFrom resolves the timeout from zero or one options
func timeoutFrom(options []UpdateOption) (time.Duration, error) {
	switch len(options) {
	case 0:
		return Infinity.wait, nil
	case 1:
		return options[0].wait, nil
	default:
		return 0, status.ErrTooManyOptions
	}
}
