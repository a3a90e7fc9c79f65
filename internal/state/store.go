// Package state persists analysis state in SQLite: the fingerprint-keyed
// result cache and a history of analysis runs.
package state

import (
	"context"
	"time"

	"github.com/solguard-labs/solguard/pkg/lint"
)

// RunStatus is the lifecycle state of an analysis run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning  RunStatus = "running"
	RunStatusFinished RunStatus = "finished"
)

// Run is one recorded analysis run.
type Run struct {
	ID            string
	Status        RunStatus
	StartedAt     time.Time
	FinishedAt    *time.Time
	FilesAnalyzed int
	TotalIssues   int
	Errors        int
	Warnings      int
	Info          int
}

// Store persists cache entries and run history. Implementations must
// tolerate concurrent reads; concurrent writes to the same fingerprint are
// last-writer-wins.
type Store interface {
	// GetCachedIssues returns the stored issue list for a fingerprint.
	// The second return value reports whether an entry existed.
	GetCachedIssues(ctx context.Context, fingerprint string) ([]lint.Issue, bool, error)

	// PutCachedIssues stores the issue list for a fingerprint, replacing
	// any existing entry.
	PutCachedIssues(ctx context.Context, fingerprint, filePath string, issues []lint.Issue) error

	// PruneCache deletes entries created before the cutoff and returns the
	// number removed.
	PruneCache(ctx context.Context, before time.Time) (int64, error)

	// CreateRun records the start of an analysis run.
	CreateRun(ctx context.Context) (*Run, error)

	// FinishRun records a run's completion and aggregate counts.
	FinishRun(ctx context.Context, id string, filesAnalyzed int, res lint.Result) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	Close() error
}
