package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s := NewFileStore[int](path)

	m := map[string]int{"яблоко": 52, "гречка": 343}
	if err := s.Save(m); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := s.Load()
	if !reflect.DeepEqual(got, m) {
		t.Errorf("expected %v, got %v", m, got)
	}
}

func TestFileStoreRoundTripEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s := NewFileStore[int](path)

	if err := s.Save(map[string]int{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.Load(); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore[int](filepath.Join(t.TempDir(), "absent.json"))
	got := s.Load()
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty map for missing file, got %v", got)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := NewFileStore[int](path)
	if got := s.Load(); len(got) != 0 {
		t.Errorf("expected empty map for corrupt file, got %v", got)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s := NewFileStore[int](path)

	if err := s.Save(map[string]int{"a": 1, "b": 2}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(map[string]int{"c": 3}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := s.Load()
	if len(got) != 1 || got["c"] != 3 {
		t.Errorf("expected only the last saved mapping, got %v", got)
	}
}

func TestFileStoreNestedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calories.json")
	s := NewFileStore[map[string]int](path)

	m := map[string]map[string]int{
		"42": {"2024-05-01": 148},
	}
	if err := s.Save(m); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := s.Load()
	if got["42"]["2024-05-01"] != 148 {
		t.Errorf("expected 148, got %v", got)
	}
}
