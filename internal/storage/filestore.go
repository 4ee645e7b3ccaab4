package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore keeps the mapping as one pretty-printed JSON object on disk,
// rewritten in full on every Save. Single-process, single-writer; the mutex
// serializes saves from concurrent in-flight requests.
type FileStore[V any] struct {
	path string
	mu   sync.Mutex
}

func NewFileStore[V any](path string) *FileStore[V] {
	return &FileStore[V]{path: path}
}

// Load returns the last saved mapping. A missing or malformed file yields an
// empty mapping.
func (s *FileStore[V]) Load() map[string]V {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]V{}
	}
	var m map[string]V
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return map[string]V{}
	}
	return m
}

func (s *FileStore[V]) Save(m map[string]V) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
