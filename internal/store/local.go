// Package store is the client-side advisory store: per-date "already
// reviewed" markers and a small submission log, kept in SQLite under the
// ssabab config directory. This is UX caching only - the server remains
// authoritative for everything in here.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"ssabab/internal/logging"
)

// markerKeyPrefix matches the key scheme of the original client storage.
const markerKeyPrefix = "lunchReview_"

// Local is the SQLite-backed local store.
type Local struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// SubmissionRecord is one row of the local submission log.
type SubmissionRecord struct {
	Date        string
	MenuID      int64
	Satisfied   bool
	RatedItems  int
	SubmittedAt time.Time
}

// NewLocal opens (or creates) the local store at the given path.
func NewLocal(path string) (*Local, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewLocal")
	defer timer.Stop()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &Local{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.Store("local store ready at %s", path)
	return s, nil
}

// initialize creates the required tables.
func (s *Local) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS markers (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		menu_id INTEGER NOT NULL,
		satisfied INTEGER NOT NULL,
		rated_items INTEGER NOT NULL,
		submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_submissions_date ON submissions(date);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// MarkReviewed writes the advisory "already reviewed today" marker for a
// date, overwriting any previous value.
func (s *Local) MarkReviewed(date string, menuID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO markers (key, value, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		markerKeyPrefix+date, fmt.Sprintf("%d", menuID))
	if err != nil {
		return fmt.Errorf("failed to write marker: %w", err)
	}
	logging.StoreDebug("marked %s as reviewed (menu %d)", date, menuID)
	return nil
}

// IsReviewed reports whether the marker for a date exists.
func (s *Local) IsReviewed(date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM markers WHERE key = ?`, markerKeyPrefix+date).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to read marker: %w", err)
	}
	return count > 0, nil
}

// LogSubmission appends a row to the local submission log.
func (s *Local) LogSubmission(rec SubmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	satisfied := 0
	if rec.Satisfied {
		satisfied = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO submissions (date, menu_id, satisfied, rated_items) VALUES (?, ?, ?, ?)`,
		rec.Date, rec.MenuID, satisfied, rec.RatedItems)
	if err != nil {
		return fmt.Errorf("failed to log submission: %w", err)
	}
	return nil
}

// RecentSubmissions returns up to limit rows of the submission log, newest
// first.
func (s *Local) RecentSubmissions(limit int) ([]SubmissionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT date, menu_id, satisfied, rated_items, submitted_at
		 FROM submissions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var out []SubmissionRecord
	for rows.Next() {
		var rec SubmissionRecord
		var satisfied int
		if err := rows.Scan(&rec.Date, &rec.MenuID, &satisfied, &rec.RatedItems, &rec.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		rec.Satisfied = satisfied == 1
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Local) Close() error {
	return s.db.Close()
}
