package journal

import (
	"io"
	"os"
	"strings"

	"github.com/mjayprateek/jackrabbit-oak/pkg/journal/status"

	"github.com/spf13/afero"
)

// blockSize of the backward reads. Recovery usually finds a valid entry in
// the last block, so only a small suffix of the file gets read.
const blockSize = 4096

// Reader iterates over journal lines backward, from the most recently
// written to the oldest.
//
// Lines are returned verbatim, including a possibly truncated final line
// left behind by a crash; callers decide what parses. A Reader is a
// one-shot forward-only cursor; reopen to restart.
type Reader struct {
	f     afero.File
	off   int64    // lower bound of the not yet read region
	carry []byte   // partial line spilling over the current block boundary
	lines []string // complete lines of the current block, oldest first
}

// NewReader opens a backward reader over the journal file at path.
//
// A missing file reads as empty.
func NewReader(fs afero.Fs, path string) (*Reader, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Reader{}, nil
		}
		return nil, status.ErrOpen.Wrap(err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, status.ErrRead.Wrap(err)
	}
	return &Reader{f: f, off: fi.Size()}, nil
}

// Next returns the next (older) journal line, or io.EOF once the whole
// file has been iterated. Empty lines are skipped.
func (r *Reader) Next() (string, error) {
	for {
		if n := len(r.lines); n > 0 {
			line := r.lines[n-1]
			r.lines = r.lines[:n-1]
			return line, nil
		}
		if r.off == 0 {
			if len(r.carry) > 0 {
				line := string(r.carry)
				r.carry = nil
				return line, nil
			}
			return "", io.EOF
		}

		n := int64(blockSize)
		if r.off < n {
			n = r.off
		}
		start := r.off - n
		block := make([]byte, n, n+int64(len(r.carry)))
		if _, err := r.f.ReadAt(block, start); err != nil {
			return "", status.ErrRead.Wrap(err)
		}
		r.off = start

		segs := strings.Split(string(append(block, r.carry...)), "\n")
		if r.off > 0 {
			// the first segment may continue in the preceding block
			r.carry = []byte(segs[0])
			segs = segs[1:]
		} else {
			r.carry = nil
		}
		for _, s := range segs {
			if s != "" {
				r.lines = append(r.lines, s)
			}
		}
	}
}

// Close releases the underlying file handle
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	return r.f.Close()
}
