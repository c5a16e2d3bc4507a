// Package journal implements the append-only head journal of a segment
// store.
//
// Each line records one committed head transition. Lines are written in
// commit order and never rewritten or deleted: the journal is the source
// of truth for the most recently durably committed head. After a crash
// the physical file may end with a truncated line, which the backward
// Reader used for recovery tolerates.
package journal

import (
	"os"
	"path/filepath"

	"github.com/mjayprateek/jackrabbit-oak/pkg/journal/status"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// FileName of the journal inside the store directory
	FileName = "journal.log"

	journalFilePerm = 0600
)

// Journal is an append-only, line-oriented journal file.
//
// A Journal instance assumes exclusive ownership of its file: coordinating
// multiple writer processes is up to the embedder.
type Journal struct {
	fs       afero.Fs
	f        afero.File
	path     string
	readOnly bool
	l        *zap.Logger
}

// Option to the journal
type Option func(*Journal)

// Logger sets a logger for this journal
func Logger(logger *zap.Logger) Option {
	return func(j *Journal) {
		if logger != nil {
			j.l = logger
		}
	}
}

// ReadOnly opens the journal without write access, as a safeguard for
// read-only stores. Append then fails.
func ReadOnly() Option {
	return func(j *Journal) {
		j.readOnly = true
	}
}

// Open opens (creating it if needed) the journal file in dir, positioned
// for appending at the current end of file.
func Open(fs afero.Fs, dir string, options ...Option) (*Journal, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	j := &Journal{
		fs:   fs,
		path: filepath.Join(dir, FileName),
		l:    zap.NewNop(),
	}
	for _, option := range options {
		option(j)
	}

	flag := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if j.readOnly {
		flag = os.O_RDONLY
	}
	f, err := fs.OpenFile(j.path, flag, journalFilePerm)
	if err != nil {
		return nil, status.ErrOpen.WrapWithLog(j.l, err, zap.String("path", j.path))
	}
	j.f = f
	return j, nil
}

// Append writes a single entry line at the end of the journal.
//
// The entry is not crash-safe until Sync returns.
func (j *Journal) Append(e Entry) error {
	if j.readOnly {
		return status.ErrReadOnly
	}
	if _, err := j.f.WriteString(e.String() + "\n"); err != nil {
		return status.ErrAppend.WrapWithLog(j.l, err, zap.String("entry", e.String()))
	}
	return nil
}

// Sync forces previously appended entries to stable storage. A successful
// return guarantees those entries survive a subsequent crash.
func (j *Journal) Sync() error {
	if j.readOnly {
		return nil
	}
	if err := j.f.Sync(); err != nil {
		return status.ErrSync.WrapWithLog(j.l, err, zap.String("path", j.path))
	}
	return nil
}

// AppendSync appends an entry and forces it to stable storage
func (j *Journal) AppendSync(e Entry) error {
	if err := j.Append(e); err != nil {
		return err
	}
	return j.Sync()
}

// Reader opens a fresh backward reader over the journal, from the most
// recently written line to the oldest. Used during recovery.
func (j *Journal) Reader() (*Reader, error) {
	return NewReader(j.fs, j.path)
}

// Path of the underlying journal file
func (j *Journal) Path() string {
	return j.path
}

// Close releases the journal file handle
func (j *Journal) Close() error {
	var err error
	if !j.readOnly {
		err = j.f.Sync()
	}
	return multierr.Append(err, j.f.Close())
}
