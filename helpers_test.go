// FILE: lixenwraith/rlog/helpers_test.go
package rlog

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// memFS is an in-memory file tree shared by every memStore it provides
type memFS struct {
	mu         sync.Mutex
	files      map[string][]byte
	failDelete map[string]bool
	failRename map[string]bool // Keyed by source name
	writes     int
}

func newMemFS() *memFS {
	return &memFS{
		files:      make(map[string][]byte),
		failDelete: make(map[string]bool),
		failRename: make(map[string]bool),
	}
}

func (m *memFS) provider() FileStore {
	return &memStore{fs: m}
}

func (m *memFS) key(dir, name string) string {
	return dir + "/" + name
}

// file returns a copy of dir/name and whether it exists
func (m *memFS) file(dir, name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[m.key(dir, name)]
	return string(data), ok
}

func (m *memFS) put(dir, name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[m.key(dir, name)] = []byte(content)
}

func (m *memFS) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// memStore is a FileStore over memFS
type memStore struct {
	fs      *memFS
	current string
	lastErr error
}

func (s *memStore) Open(dir, name string) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	s.current = s.fs.key(dir, name)
	if _, ok := s.fs.files[s.current]; !ok {
		s.fs.files[s.current] = nil
	}
	return nil
}

func (s *memStore) OpenOverwrite(dir, name string) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	s.current = s.fs.key(dir, name)
	s.fs.files[s.current] = nil
	return nil
}

func (s *memStore) Write(p []byte) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	if s.current == "" {
		s.lastErr = errors.New("not open")
		return s.lastErr
	}
	s.fs.files[s.current] = append(s.fs.files[s.current], p...)
	s.fs.writes++
	return nil
}

func (s *memStore) Flush() error { return nil }

func (s *memStore) Close() error {
	s.current = ""
	return nil
}

func (s *memStore) Size(dir, name string) int64 {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return int64(len(s.fs.files[s.fs.key(dir, name)]))
}

func (s *memStore) Rename(dir, from, to string) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	if s.fs.failRename[from] {
		s.lastErr = errors.New("rename refused")
		return s.lastErr
	}
	data, ok := s.fs.files[s.fs.key(dir, from)]
	if !ok {
		return nil
	}
	s.fs.files[s.fs.key(dir, to)] = data
	delete(s.fs.files, s.fs.key(dir, from))
	return nil
}

func (s *memStore) Delete(dir, name string) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	if s.fs.failDelete[name] {
		s.lastErr = errors.New("delete refused")
		return s.lastErr
	}
	delete(s.fs.files, s.fs.key(dir, name))
	return nil
}

func (s *memStore) List(dir string) ([]string, error) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	var names []string
	prefix := dir + "/"
	for k := range s.fs.files {
		if strings.HasPrefix(k, prefix) && !strings.Contains(k[len(prefix):], "/") {
			names = append(names, k[len(prefix):])
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *memStore) LastError() string {
	if s.lastErr == nil {
		return ""
	}
	return s.lastErr.Error()
}

// createTestController builds an initialized controller writing into a temp directory
func createTestController(t testing.TB, modify func(*Config), opts ...Option) (*Controller, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")

	cfg := DefaultConfig()
	cfg.FilePath = path
	cfg.Level = int64(LevelTrace)
	if modify != nil {
		modify(cfg)
	}

	c, err := NewController(cfg, opts...)
	require.NoError(t, err)
	c.Init(cfg.FilePath)
	t.Cleanup(c.Close)
	return c, cfg.FilePath
}

// readFile returns the content of path, empty when missing
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}

// nonEmptyLines splits content into lines, dropping the trailing empty one
func nonEmptyLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
