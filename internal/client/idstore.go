package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// IDStore keeps the ids of orders placed from this machine in a JSON file.
type IDStore struct {
	path string
	mu   sync.Mutex
}

// NewIDStore returns a store backed by the file at path. The file is created on first Add.
func NewIDStore(path string) *IDStore {
	return &IDStore{path: path}
}

// Path returns the backing file location.
func (s *IDStore) Path() string {
	return s.path
}

// Load returns saved ids in insertion order. A missing file yields none.
func (s *IDStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add appends id unless it is already saved.
func (s *IDStore) Add(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	ids = append(ids, id)

	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create id store dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write id store: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *IDStore) load() ([]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read id store: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode id store %s: %w", s.path, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
