package storage

import (
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s, err := NewSQLiteStore[int](db, "calorie_cache")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	m := map[string]int{"банан": 96, "сыр": 402}
	if err := s.Save(m); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := s.Load()
	if !reflect.DeepEqual(got, m) {
		t.Errorf("expected %v, got %v", m, got)
	}
}

func TestSQLiteStoreEmptyLoad(t *testing.T) {
	db := newTestDB(t)
	s, err := NewSQLiteStore[int](db, "calorie_cache")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	got := s.Load()
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty map from fresh table, got %v", got)
	}
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	db := newTestDB(t)
	s, err := NewSQLiteStore[int](db, "calorie_cache")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

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

func TestSQLiteStoreTablesAreIndependent(t *testing.T) {
	db := newTestDB(t)
	cache, err := NewSQLiteStore[int](db, "calorie_cache")
	if err != nil {
		t.Fatalf("create cache store: %v", err)
	}
	totals, err := NewSQLiteStore[map[string]int](db, "daily_totals")
	if err != nil {
		t.Fatalf("create totals store: %v", err)
	}

	if err := cache.Save(map[string]int{"рис": 130}); err != nil {
		t.Fatalf("save cache: %v", err)
	}
	if err := totals.Save(map[string]map[string]int{"7": {"2024-05-01": 130}}); err != nil {
		t.Fatalf("save totals: %v", err)
	}

	if got := cache.Load(); got["рис"] != 130 {
		t.Errorf("cache mapping lost: %v", got)
	}
	if got := totals.Load(); got["7"]["2024-05-01"] != 130 {
		t.Errorf("totals mapping lost: %v", got)
	}
}
