// FILE: lixenwraith/rlog/filestore.go
package rlog

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileStore abstracts the raw file I/O used by rollover and the appenders.
// A store holds at most one open file and is owned by a single writer.
type FileStore interface {
	// Open opens dir/name for appending, creating it when missing
	Open(dir, name string) error
	// OpenOverwrite opens dir/name truncated
	OpenOverwrite(dir, name string) error
	Write(p []byte) error
	Flush() error
	Close() error
	// Size reports the on-disk size of dir/name, 0 when missing
	Size(dir, name string) int64
	// Rename moves dir/from to dir/to; a missing source is not an error
	Rename(dir, from, to string) error
	// Delete removes dir/name; a missing file is not an error
	Delete(dir, name string) error
	// List returns the regular file names in dir, sorted
	List(dir string) ([]string, error)
	// LastError describes the most recent failure, empty when none
	LastError() string
}

// FileStoreProvider creates a fresh FileStore for each appender build
type FileStoreProvider func() FileStore

// DefaultFileStoreProvider returns stores backed by the os package
func DefaultFileStoreProvider() FileStore {
	return NewOSFileStore()
}

// OSFileStore is a FileStore over *os.File with a small write-behind buffer
type OSFileStore struct {
	file    *os.File
	w       *bufio.Writer
	lastErr error
}

// NewOSFileStore creates an os backed store
func NewOSFileStore() *OSFileStore {
	return &OSFileStore{}
}

func (s *OSFileStore) fail(err error) error {
	if err != nil {
		s.lastErr = err
	}
	return err
}

func (s *OSFileStore) openWith(dir, name string, flag int) error {
	if s.file != nil {
		_ = s.Close()
	}
	if err := ensureDirectory(dir); err != nil {
		return s.fail(err)
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return s.fail(fmtErrorf("failed to open log file '%s': %w", path, err))
	}
	s.file = f
	s.w = bufio.NewWriterSize(f, fileStoreBufferSize)
	return nil
}

// Open opens dir/name in append mode
func (s *OSFileStore) Open(dir, name string) error {
	return s.openWith(dir, name, os.O_APPEND|os.O_CREATE|os.O_WRONLY)
}

// OpenOverwrite opens dir/name truncated
func (s *OSFileStore) OpenOverwrite(dir, name string) error {
	return s.openWith(dir, name, os.O_TRUNC|os.O_CREATE|os.O_WRONLY)
}

// Write appends p to the open file
func (s *OSFileStore) Write(p []byte) error {
	if s.w == nil {
		return s.fail(fmtErrorf("write on closed file store"))
	}
	if _, err := s.w.Write(p); err != nil {
		return s.fail(fmtErrorf("failed to write log file '%s': %w", s.file.Name(), err))
	}
	return nil
}

// Flush drains the write-behind buffer
func (s *OSFileStore) Flush() error {
	if s.w == nil {
		return nil
	}
	if err := s.w.Flush(); err != nil {
		return s.fail(fmtErrorf("failed to flush log file '%s': %w", s.file.Name(), err))
	}
	return nil
}

// Close flushes and closes the open file, if any
func (s *OSFileStore) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.Flush()
	if cerr := s.file.Close(); cerr != nil {
		err = combineErrors(err, fmtErrorf("failed to close log file '%s': %w", s.file.Name(), cerr))
	}
	s.file = nil
	s.w = nil
	return s.fail(err)
}

// Size reports the on-disk size of dir/name plus any unflushed bytes when it is the open file
func (s *OSFileStore) Size(dir, name string) int64 {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	size := info.Size()
	if s.file != nil && s.w != nil && filepath.Clean(s.file.Name()) == filepath.Clean(path) {
		size += int64(s.w.Buffered())
	}
	return size
}

// Rename moves dir/from to dir/to
func (s *OSFileStore) Rename(dir, from, to string) error {
	src := filepath.Join(dir, from)
	if err := os.Rename(src, filepath.Join(dir, to)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return s.fail(fmtErrorf("failed to rename '%s' to '%s': %w", from, to, err))
	}
	return nil
}

// Delete removes dir/name
func (s *OSFileStore) Delete(dir, name string) error {
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return s.fail(fmtErrorf("failed to delete '%s': %w", name, err))
	}
	return nil
}

// List returns the regular file names in dir
func (s *OSFileStore) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, s.fail(fmtErrorf("failed to read log directory '%s': %w", dir, err))
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// LastError describes the most recent failure
func (s *OSFileStore) LastError() string {
	if s.lastErr == nil {
		return ""
	}
	return s.lastErr.Error()
}
