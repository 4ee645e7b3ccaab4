package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore offers the same full-mapping contract over a two-column
// key/value table, values JSON-encoded. Alternative backend to FileStore,
// selected with STORAGE_BACKEND=sqlite; the cache and ledger each get their
// own table in a shared database.
type SQLiteStore[V any] struct {
	db    *sql.DB
	table string
	mu    sync.Mutex
}

// Open opens or creates the shared SQLite database file.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func NewSQLiteStore[V any](db *sql.DB, table string) (*SQLiteStore[V], error) {
	s := &SQLiteStore[V]{db: db, table: table}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema for %s: %w", table, err)
	}
	return s, nil
}

func (s *SQLiteStore[V]) initSchema() error {
	schema := fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS %s (
        k TEXT PRIMARY KEY,
        v TEXT NOT NULL
    );
    `, s.table)

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Load returns the stored mapping, empty on any read or decode failure.
func (s *SQLiteStore[V]) Load() map[string]V {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[string]V{}
	rows, err := s.db.Query(fmt.Sprintf(`SELECT k, v FROM %s`, s.table))
	if err != nil {
		return m
	}
	defer rows.Close()

	for rows.Next() {
		var k, raw string
		if err := rows.Scan(&k, &raw); err != nil {
			return map[string]V{}
		}
		var v V
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return map[string]V{}
		}
		m[k] = v
	}
	return m
}

// Save replaces the whole table with the given mapping in one transaction.
func (s *SQLiteStore[V]) Save(m map[string]V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s`, s.table)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", s.table, err)
	}

	insert := fmt.Sprintf(`INSERT INTO %s (k, v) VALUES (?, ?)`, s.table)
	for k, v := range m {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal value for %q: %w", k, err)
		}
		if _, err := tx.Exec(insert, k, string(raw)); err != nil {
			return fmt.Errorf("failed to insert %q: %w", k, err)
		}
	}

	return tx.Commit()
}
