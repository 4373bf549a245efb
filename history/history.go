// Package history keeps a local sqlite log of completed scans.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded scan run.
type Entry struct {
	ID         int64
	Target     string
	ScanTime   time.Time
	Files      int
	Dirs       int
	OutputFile string
}

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    target TEXT NOT NULL,
    scan_time INTEGER NOT NULL,
    files INTEGER NOT NULL,
    dirs INTEGER NOT NULL,
    output_file TEXT NOT NULL DEFAULT ''
);
`

// Open opens the store at its default location under the user cache dir.
func Open() (*Store, error) {
	stateDir, err := getStateDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get state directory: %w", err)
	}

	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return OpenAt(filepath.Join(stateDir, "fileops.db"))
}

// OpenAt opens or creates the store at dbPath.
func OpenAt(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	db.Exec(`PRAGMA journal_mode=WAL;`)
	db.Exec(`PRAGMA synchronous=NORMAL;`)
	db.Exec(`PRAGMA busy_timeout=5000;`)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func getStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "fileops"), nil
}

// Record appends one completed scan to the log.
func (s *Store) Record(e *Entry) error {
	query := `
        INSERT INTO scans (target, scan_time, files, dirs, output_file)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query, e.Target, e.ScanTime.Unix(), e.Files, e.Dirs, e.OutputFile)
	return err
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	query := `
        SELECT id, target, scan_time, files, dirs, output_file
        FROM scans ORDER BY scan_time DESC, id DESC LIMIT ?
    `
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var scanUnix int64
		if err := rows.Scan(&e.ID, &e.Target, &scanUnix, &e.Files, &e.Dirs, &e.OutputFile); err != nil {
			return nil, err
		}
		e.ScanTime = time.Unix(scanUnix, 0)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
