package revision

import (
	"context"
	"io"
	"sync"

	"github.com/mjayprateek/jackrabbit-oak/pkg/dlogger"
	"github.com/mjayprateek/jackrabbit-oak/pkg/journal"
	"github.com/mjayprateek/jackrabbit-oak/pkg/revision/status"
	"github.com/mjayprateek/jackrabbit-oak/pkg/segment"

	"github.com/spf13/afero"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// maxCommitSlots is the capacity of the commit semaphore: compare-and-swap
// commits take one slot each, a functional update takes all of them.
const maxCommitSlots = 1024

// UpdateFunc maps the current head to the head it should be set to.
// Returning ok == false aborts the update without touching the head.
type UpdateFunc func(head segment.RecordID) (next segment.RecordID, ok bool)

// Revisions tracks the head record id of a segment store and persists head
// transitions to a journal file.
//
// A Revisions must be bound to a store with Bind before use; every other
// method fails with status.ErrNotBound until then.
//
// Head mutation runs under a shared/exclusive discipline with the sides
// deliberately inverted from the usual reader/writer split: the cheap,
// frequent SetHead compare-and-swap commits share the lock and proceed
// concurrently with each other, while the rare, expensive UpdateHead
// commits take it exclusively and so exclude all other head mutation.
type Revisions struct {
	head      atomic.Pointer[segment.RecordID]
	persisted atomic.Pointer[segment.RecordID]

	commits  *semaphore.Weighted
	flushing atomic.Bool
	bindMu   sync.Mutex

	journal  *journal.Journal
	readOnly bool
	l        *zap.Logger
}

// New creates an unbound revision cell with its journal in dir, opened for
// appending at the current end of file.
func New(fs afero.Fs, dir string, options ...Option) (*Revisions, error) {
	r := &Revisions{
		commits: semaphore.NewWeighted(maxCommitSlots),
		l:       dlogger.MustGetLogger(dlogger.LogLevelInfo),
	}
	for _, option := range options {
		option(r)
	}

	jopts := []journal.Option{journal.Logger(r.l)}
	if r.readOnly {
		jopts = append(jopts, journal.ReadOnly())
	}
	j, err := journal.Open(fs, dir, jopts...)
	if err != nil {
		return nil, err
	}
	r.journal = j
	return r, nil
}

// Bind binds this revision cell to a store, recovering the head from the
// journal. No-op when already bound.
//
// The journal is scanned backward; the first entry that parses and whose
// segment the store still holds becomes both the head and the persisted
// head. Invalid or unreachable entries are logged and skipped: they are
// torn tail writes this scan exists to tolerate. When no entry qualifies,
// writeInitial supplies a fresh head and the persisted head stays unset,
// so the first flush always has work to do.
func (r *Revisions) Bind(ctx context.Context, store segment.Store, writeInitial func() (segment.RecordID, error)) error {
	r.bindMu.Lock()
	defer r.bindMu.Unlock()

	if r.head.Load() != nil {
		return nil
	}

	recovered, err := r.recover(ctx, store)
	if err != nil {
		return err
	}
	if recovered == nil {
		initial, err := writeInitial()
		if err != nil {
			return status.ErrInitialHead.WrapWithLog(r.l, err)
		}
		r.head.Store(&initial)
		return nil
	}
	r.persisted.Store(recovered)
	r.head.Store(recovered)
	r.l.Info("recovered head from journal", zap.Stringer("head", recovered))
	return nil
}

// recover scans the journal backward for the latest safe head
func (r *Revisions) recover(ctx context.Context, store segment.Store) (*segment.RecordID, error) {
	rd, err := r.journal.Reader()
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	for {
		line, err := rd.Next()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		entry, err := journal.ParseEntry(line)
		if err != nil {
			r.l.Warn("skipping invalid journal entry", zap.String("entry", line))
			continue
		}
		id, err := segment.ParseRecordID(entry.Revision)
		if err != nil {
			r.l.Warn("skipping invalid record id", zap.String("entry", line))
			continue
		}
		ok, err := store.Has(ctx, id.Segment)
		if err != nil || !ok {
			r.l.Warn("unable to access revision, rewinding", zap.Stringer("id", id), zap.Error(err))
			continue
		}
		return &id, nil
	}
}

// Head returns the current head. Wait-free: the head cell is updated
// atomically by all mutators, so a plain load is always well defined.
func (r *Revisions) Head() (segment.RecordID, error) {
	h := r.head.Load()
	if h == nil {
		return segment.RecordID{}, status.ErrNotBound
	}
	return *h, nil
}

// SetHead atomically replaces the head with candidate if it currently
// equals expected, reporting whether the swap happened.
//
// This is the cheap commit path: it only waits while a functional update
// holds exclusivity, never on other SetHead calls, and runs no caller code
// under the lock.
func (r *Revisions) SetHead(expected, candidate segment.RecordID) (bool, error) {
	if r.head.Load() == nil {
		return false, status.ErrNotBound
	}
	if err := r.commits.Acquire(context.Background(), 1); err != nil {
		return false, err
	}
	defer r.commits.Release(1)

	current := r.head.Load()
	if *current != expected {
		return false, nil
	}
	next := candidate
	return r.head.CompareAndSwap(current, &next), nil
}

// UpdateHead sets the head to newHead(currentHead) under exclusive access,
// waiting at most the supplied Timeout option (Infinity by default) for
// every other head mutation to drain.
//
// The update is not applied when the wait times out (newHead is then never
// called), when ctx is cancelled while waiting, or when newHead aborts by
// returning ok == false. Cancellation surfaces as the ctx error so callers
// can tell it apart from an ordinary timeout.
func (r *Revisions) UpdateHead(ctx context.Context, newHead UpdateFunc, options ...UpdateOption) (bool, error) {
	if r.head.Load() == nil {
		return false, status.ErrNotBound
	}
	wait, err := timeoutFrom(options)
	if err != nil {
		return false, err
	}

	wctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	if err := r.commits.Acquire(wctx, maxCommitSlots); err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	defer r.commits.Release(maxCommitSlots)

	next, ok := newHead(*r.head.Load())
	if !ok {
		return false, nil
	}
	r.head.Store(&next)
	return true, nil
}

// Flush durably records the current head in the journal after the
// persisted callback returns.
//
// persisted is the durability ordering gate: it must not return until all
// data reachable from the head being recorded has itself been persisted.
// When a flush is already in progress the call returns immediately as a
// no-op; competing flushes are never queued.
func (r *Revisions) Flush(persisted func() error) error {
	if r.head.Load() == nil {
		return status.ErrNotBound
	}
	if !r.flushing.CompareAndSwap(false, true) {
		return nil
	}
	defer r.flushing.Store(false)

	before := r.persisted.Load()
	after := r.head.Load()
	if before != nil && *before == *after {
		return nil
	}
	if err := persisted(); err != nil {
		return status.ErrPersistedCallback.WrapWithLog(r.l, err, zap.Stringer("head", after))
	}

	beforeText := "none"
	if before != nil {
		beforeText = before.String()
	}
	r.l.Debug("journal update", zap.String("before", beforeText), zap.Stringer("after", after))
	if err := r.journal.AppendSync(journal.NewEntry(after.String())); err != nil {
		return err
	}
	r.persisted.Store(after)
	return nil
}

// Close releases the journal file handle. Shutdown-time cleanup only: it
// does not coordinate with in-flight mutations or flushes.
func (r *Revisions) Close() error {
	return r.journal.Close()
}
