package memory

import (
	"fmt"
	"maps"
	"sync"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in memory and mimics the TOML store's
// persistence: Set and Delete write through to a saved snapshot, Load
// discards anything that was not saved, and a failed write rolls the
// change back.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
	saved  map[string]any
	writes int

	// FailWrites makes every persisting call return domain.ErrWrite.
	FailWrites bool
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		values: make(map[string]any),
		saved:  make(map[string]any),
	}
}

// Put seeds a value as if it had been read from the settings file.
// It does not count as a write.
func (s *ConfigStore) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.saved[key] = value
}

// Writes reports how many times the store was persisted.
func (s *ConfigStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt accepts the integer shapes the TOML and JSON decoders produce.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// GetStringSlice accepts typed slices and decoded []any, skipping
// non-string items.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, had := s.values[key]
	s.values[key] = value
	if err := s.persist(); err != nil {
		if had {
			s.values[key] = old
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *ConfigStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, had := s.values[key]
	if !had {
		return nil
	}
	delete(s.values, key)
	if err := s.persist(); err != nil {
		s.values[key] = old
		return err
	}
	return nil
}

func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

// Load drops unsaved changes.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = maps.Clone(s.saved)
	return nil
}

func (s *ConfigStore) Path() string {
	return ":memory:"
}

// persist snapshots values; caller must hold the lock.
func (s *ConfigStore) persist() error {
	if s.FailWrites {
		return fmt.Errorf("%w: settings are read-only", domain.ErrWrite)
	}
	s.saved = maps.Clone(s.values)
	s.writes++
	return nil
}
