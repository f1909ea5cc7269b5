// Package store persists scored postings in sqlite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no stored posting has the requested URL.
var ErrNotFound = errors.New("posting not found")

// Memory opens a private in-memory database.
const Memory = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	profile TEXT,
	postings INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS jobs (
	url TEXT PRIMARY KEY,
	run_id TEXT REFERENCES runs(id),
	title TEXT,
	company TEXT,
	location TEXT,
	description TEXT,
	source TEXT,
	posted_at TEXT,
	employment_type TEXT,
	salary_min REAL,
	salary_max REAL,
	salary_currency TEXT,
	salary_interval TEXT,
	occupation_code TEXT,
	occupation_description TEXT,
	occupation_priority INTEGER NOT NULL DEFAULT 0,
	occupation_eligible INTEGER NOT NULL DEFAULT 0,
	score_skills REAL,
	score_immigration REAL,
	score_interview REAL,
	score_salary REAL,
	score_company REAL,
	score_success REAL,
	score_total REAL,
	priority TEXT,
	tier TEXT,
	computed TEXT NOT NULL,
	scored_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS jobs_tier ON jobs(tier);

CREATE TABLE IF NOT EXISTS skill_mentions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_url TEXT NOT NULL REFERENCES jobs(url) ON DELETE CASCADE,
	keyword TEXT NOT NULL,
	category TEXT,
	user_has INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS skill_mentions_job ON skill_mentions(job_url);
`

// Store is the sqlite-backed persistence collaborator.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if path != Memory && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	log.Debug("store opened", zap.String("path", path))
	return &Store{db: db, logger: log}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
