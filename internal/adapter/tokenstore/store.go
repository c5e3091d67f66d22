// Package tokenstore is the local key-value storage holding the BitBucket
// token and the last selected repository.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/yourusername/bbrepo/internal/domain"
	"gopkg.in/yaml.v3"
)

// Well-known keys.
const (
	TokenKey     = "bitbucket_token"
	SelectionKey = "selected_repository"
)

// Store is a YAML file of string keys and values.
type Store struct {
	path string
	mu   sync.RWMutex
	data map[string]string
}

// DefaultPath returns ~/.bbrepo/storage.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".bbrepo", "storage.yaml"), nil
}

// Open loads the store at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}

	s := &Store{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("failed to parse storage file %s: %w", path, err)
	}
	if s.data == nil {
		s.data = make(map[string]string)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key and writes the file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

// Delete removes key and writes the file.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TokenProvider reads the BitBucket token on every call.
func (s *Store) TokenProvider() domain.TokenProvider {
	return domain.TokenProviderFunc(func() string {
		v, _ := s.Get(TokenKey)
		return v
	})
}

// SaveSelection persists sel, deleting the key when nothing is selected.
func (s *Store) SaveSelection(sel domain.Selection) error {
	if !sel.Valid {
		return s.Delete(SelectionKey)
	}
	return s.Set(SelectionKey, sel.FullName)
}

// LoadSelection returns the persisted selection.
func (s *Store) LoadSelection() domain.Selection {
	if v, ok := s.Get(SelectionKey); ok {
		return domain.SelectRepository(v)
	}
	return domain.NoSelection()
}

// flush writes the file; callers hold mu.
func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to encode storage: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	return nil
}
