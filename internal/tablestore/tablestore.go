package tablestore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"audiocut/internal/timecode"
)

// Store persists built timecode tables across process runs, keyed by clip
// fingerprint. Clips are immutable, so entries never expire; Prune exists for
// housekeeping when source files are long gone.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS timecode_tables (
    fingerprint TEXT PRIMARY KEY,
    num_frames  INTEGER NOT NULL,
    offsets     TEXT NOT NULL,
    created_at  INTEGER NOT NULL
);`

// Open initializes or connects to the table cache database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create table cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open table cache db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create table cache schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load fetches a persisted table by clip fingerprint.
func (s *Store) Load(fingerprint string) (timecode.Table, bool, error) {
	row := s.db.QueryRow(`SELECT offsets FROM timecode_tables WHERE fingerprint = ?`, fingerprint)
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load table: %w", err)
	}
	var table timecode.Table
	if err := json.Unmarshal([]byte(payload), &table); err != nil {
		return nil, false, fmt.Errorf("decode table: %w", err)
	}
	return table, true, nil
}

// Save persists a table. A concurrent save for the same fingerprint keeps the
// earlier row; the tables are identical by construction.
func (s *Store) Save(fingerprint string, table timecode.Table) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR IGNORE INTO timecode_tables (fingerprint, num_frames, offsets, created_at) VALUES (?, ?, ?, ?)`,
		fingerprint,
		table.NumFrames(),
		string(payload),
		time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save table: %w", err)
	}
	return nil
}

// Prune removes entries created before the cutoff and returns the count.
func (s *Store) Prune(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM timecode_tables WHERE created_at < ?`,
		cutoff.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("prune tables: %w", err)
	}
	return res.RowsAffected()
}

// Len reports the number of persisted tables.
func (s *Store) Len() (int, error) {
	row := s.db.QueryRow(`SELECT COUNT(1) FROM timecode_tables`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}
	return count, nil
}
