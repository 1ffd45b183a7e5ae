package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"mcpi/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	fingerprint   TEXT NOT NULL,
	seed          TEXT NOT NULL DEFAULT '',
	domain_size   INTEGER NOT NULL,
	total_ticks   INTEGER NOT NULL,
	inside_count  INTEGER NOT NULL,
	outside_count INTEGER NOT NULL,
	status        TEXT NOT NULL,
	started_at    TEXT NOT NULL,
	ended_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs(started_at);
`

// SQLiteStore persists run records in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// SaveRun inserts or replaces rec.
func (s *SQLiteStore) SaveRun(rec domain.RunRecord) error {
	_, err := s.db.Exec(`
INSERT INTO runs (id, fingerprint, seed, domain_size, total_ticks, inside_count, outside_count, status, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	fingerprint = excluded.fingerprint,
	seed = excluded.seed,
	domain_size = excluded.domain_size,
	total_ticks = excluded.total_ticks,
	inside_count = excluded.inside_count,
	outside_count = excluded.outside_count,
	status = excluded.status,
	started_at = excluded.started_at,
	ended_at = excluded.ended_at`,
		rec.ID, rec.Fingerprint, rec.Seed, rec.Domain.Size, rec.TotalTicks,
		rec.Statistics.Inside, rec.Statistics.Outside, string(rec.Status),
		formatTime(rec.StartedAt), formatTime(rec.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", rec.ID, err)
	}
	return nil
}

// LoadRun retrieves the record for id.
func (s *SQLiteStore) LoadRun(id string) (domain.RunRecord, bool, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RunRecord{}, false, nil
	}
	if err != nil {
		return domain.RunRecord{}, false, fmt.Errorf("load run %s: %w", id, err)
	}
	return rec, true, nil
}

// ListRuns returns every record, most recently started first.
func (s *SQLiteStore) ListRuns() ([]domain.RunRecord, error) {
	rows, err := s.db.Query(`SELECT ` + runColumns + ` FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []domain.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

const runColumns = `id, fingerprint, seed, domain_size, total_ticks, inside_count, outside_count, status, started_at, ended_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (domain.RunRecord, error) {
	var (
		rec            domain.RunRecord
		status         string
		started, ended string
	)
	err := sc.Scan(
		&rec.ID, &rec.Fingerprint, &rec.Seed, &rec.Domain.Size, &rec.TotalTicks,
		&rec.Statistics.Inside, &rec.Statistics.Outside, &status, &started, &ended,
	)
	if err != nil {
		return domain.RunRecord{}, err
	}
	rec.Status = domain.RunStatus(status)
	if rec.StartedAt, err = parseTime(started); err != nil {
		return domain.RunRecord{}, err
	}
	if rec.EndedAt, err = parseTime(ended); err != nil {
		return domain.RunRecord{}, err
	}
	return rec, nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }

// Compile-time assertion that SQLiteStore implements domain.RunStore.
var _ domain.RunStore = (*SQLiteStore)(nil)
