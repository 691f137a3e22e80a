// Package store persists jobs and applications in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("application for this job already exists for this email")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	company      TEXT NOT NULL,
	location     TEXT NOT NULL DEFAULT '',
	job_type     TEXT NOT NULL DEFAULT '',
	salary       TEXT NOT NULL DEFAULT '',
	deadline     TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	requirements TEXT NOT NULL DEFAULT '',
	posted_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id              TEXT PRIMARY KEY,
	job_id          TEXT NOT NULL REFERENCES jobs(id),
	name            TEXT NOT NULL,
	email           TEXT NOT NULL,
	phone           TEXT NOT NULL,
	skills          TEXT NOT NULL DEFAULT '[]',
	education_level TEXT NOT NULL,
	experience      TEXT NOT NULL,
	filename        TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	saved           INTEGER NOT NULL DEFAULT 0,
	interview_date  TEXT NOT NULL DEFAULT '',
	interview_time  TEXT NOT NULL DEFAULT '',
	applied_at      TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS applications_job_email
	ON applications(job_id, lower(email)) WHERE email <> 'Not found';

CREATE INDEX IF NOT EXISTS applications_status ON applications(job_id, status);
`

var pragmas = []string{
	"PRAGMA foreign_keys=ON",
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=10000",
}

// Store is safe for concurrent use.
type Store struct {
	db       *sql.DB
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps the per-connection pragmas in effect and serialises writers.
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	logger.Debug("database opened", zap.String("path", path))

	return &Store{
		db:       db,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
