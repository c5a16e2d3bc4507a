// Package segmentfs provides a file system backed segment store.
//
// Segments are stored as flat files named after their content key. The
// store answers the existence queries used during journal recovery and
// supports enough of a write path for embedders and tests to materialize
// real segments.
package segmentfs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mjayprateek/jackrabbit-oak/pkg/segment"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	segmentFilePerm = 0600
	segmentDirPerm  = 0700
)

// Store is an afero backed segment store
type Store struct {
	fs afero.Fs
	l  *zap.Logger
}

// Option to the file system backed store
type Option func(*Store)

// Logger sets a logger for this store
func Logger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.l = logger
		}
	}
}

// New creates a file system backed segment store
func New(fs afero.Fs, options ...Option) *Store {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(".segments", "objects"))
	}
	s := &Store{
		fs: fs,
		l:  zap.NewNop(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Has reports whether the segment with the given key is retrievable
func (s *Store) Has(ctx context.Context, key segment.Key) (bool, error) {
	fi, err := s.fs.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !fi.IsDir(), nil
}

// Put writes a segment, addressed by the content key of data.
//
// Writing the same content twice is a no-op and returns the same key.
func (s *Store) Put(ctx context.Context, data []byte) (segment.Key, error) {
	key := segment.ContentKey(data)
	path := s.path(key)

	if dir := filepath.Dir(path); dir != "" {
		if err := s.fs.MkdirAll(dir, segmentDirPerm); err != nil {
			return segment.Key{}, err
		}
	}
	target, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, segmentFilePerm)
	if err != nil {
		if os.IsExist(err) {
			// content addressed: an existing segment is the same segment
			return key, nil
		}
		return segment.Key{}, err
	}
	if _, err = target.Write(data); err != nil {
		_ = target.Close()
		return segment.Key{}, err
	}
	if err = target.Sync(); err != nil {
		_ = target.Close()
		return segment.Key{}, err
	}
	if err = target.Close(); err != nil {
		return segment.Key{}, err
	}
	s.l.Debug("wrote segment", zap.Stringer("key", key), zap.Int("size", len(data)))
	return key, nil
}

// Get reads a segment back by key
func (s *Store) Get(ctx context.Context, key segment.Key) ([]byte, error) {
	has, err := s.Has(ctx, key)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, segment.ErrNotFound
	}
	return afero.ReadFile(s.fs, s.path(key))
}

// Delete removes a segment from the store
func (s *Store) Delete(ctx context.Context, key segment.Key) error {
	if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) String() string {
	const name = "segmentfs"
	switch fs := s.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("")
		if err != nil {
			return name
		}
		return name + "@" + pp
	default:
		return name
	}
}

func (s *Store) path(key segment.Key) string {
	return key.String()
}

var _ segment.Store = (*Store)(nil)
