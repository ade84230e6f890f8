package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore is an in-memory implementation of driven.FileStore for testing.
type FileStore struct {
	mu     sync.RWMutex
	files  map[string][]byte
	writes map[string]int

	// FailWrites makes every Write return an error.
	FailWrites bool
}

// NewFileStore creates a new in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{
		files:  make(map[string][]byte),
		writes: make(map[string]int),
	}
}

// Read returns a copy of the stored content.
func (s *FileStore) Read(_ context.Context, locator string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[locator]
	if !ok {
		return nil, fmt.Errorf("%s: %w", locator, domain.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data.
func (s *FileStore) Write(_ context.Context, locator string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("write %s: read-only store", locator)
	}
	s.files[locator] = append([]byte(nil), data...)
	s.writes[locator]++
	return nil
}

// Exists reports whether locator has content.
func (s *FileStore) Exists(_ context.Context, locator string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[locator]
	return ok, nil
}

// Put seeds a file without counting it as a write.
func (s *FileStore) Put(locator, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[locator] = []byte(content)
}

// Content returns the stored content as a string, or "" if absent.
func (s *FileStore) Content(locator string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.files[locator])
}

// Writes returns how many times locator was written.
func (s *FileStore) Writes(locator string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes[locator]
}

// Locators returns all stored locators, sorted.
func (s *FileStore) Locators() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for k := range s.files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
