package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/solguard-labs/solguard/pkg/lint"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens the SQLite database, creating parent directories as needed.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := ":memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating cache directory: %w", err)
			}
		}
		// WAL tolerates concurrent readers during a write; the busy
		// timeout covers last-writer-wins races between analysis tasks.
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("opening sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("pinging sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetCachedIssues returns the stored issue list for a fingerprint.
func (s *SQLiteStore) GetCachedIssues(ctx context.Context, fingerprint string) ([]lint.Issue, bool, error) {
	if s.db == nil {
		return nil, false, fmt.Errorf("database not opened")
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT issues FROM cache_entries WHERE fingerprint = ?`, fingerprint,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	var issues []lint.Issue
	if err := json.Unmarshal([]byte(raw), &issues); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	return issues, true, nil
}

// PutCachedIssues stores the issue list for a fingerprint. An existing
// entry is overwritten; last writer wins.
func (s *SQLiteStore) PutCachedIssues(ctx context.Context, fingerprint, filePath string, issues []lint.Issue) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if issues == nil {
		issues = []lint.Issue{}
	}
	raw, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (fingerprint, file_path, issues, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET
		   file_path = excluded.file_path,
		   issues = excluded.issues,
		   created_at = excluded.created_at`,
		fingerprint, filePath, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// PruneCache deletes entries created before the cutoff.
func (s *SQLiteStore) PruneCache(ctx context.Context, before time.Time) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE created_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// CreateRun records the start of an analysis run.
func (s *SQLiteStore) CreateRun(ctx context.Context) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:        uuid.New().String(),
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		run.ID, run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}
	return run, nil
}

// FinishRun records a run's completion and aggregate counts.
func (s *SQLiteStore) FinishRun(ctx context.Context, id string, filesAnalyzed int, res lint.Result) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, files_analyzed = ?, total_issues = ?,
		   errors = ?, warnings = ?, info = ?
		 WHERE id = ?`,
		time.Now().UTC(), filesAnalyzed, res.TotalIssues,
		res.Summary.Errors, res.Summary.Warnings, res.Summary.Info, id)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, files_analyzed, total_issues, errors, warnings, info
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, files_analyzed, total_issues, errors, warnings, info
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("reading run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var finished sql.NullTime
	err := row.Scan(&run.ID, &run.StartedAt, &finished,
		&run.FilesAnalyzed, &run.TotalIssues, &run.Errors, &run.Warnings, &run.Info)
	if err != nil {
		return nil, err
	}
	run.Status = RunStatusRunning
	if finished.Valid {
		run.Status = RunStatusFinished
		run.FinishedAt = &finished.Time
	}
	return &run, nil
}
