package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solguard-labs/solguard/pkg/lint"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleIssues() []lint.Issue {
	return []lint.Issue{{
		RuleID:   "security/tx-origin",
		Severity: lint.SeverityError,
		Category: "security",
		Message:  "avoid tx.origin",
		FilePath: "contracts/Auth.sol",
		Location: lint.Location{
			Start: lint.Point{Line: 3, Column: 16},
			End:   lint.Point{Line: 3, Column: 25},
		},
	}}
}

func TestCacheRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, found, err := s.GetCachedIssues(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	want := sampleIssues()
	require.NoError(t, s.PutCachedIssues(ctx, "fp1", "contracts/Auth.sol", want))

	got, found, err := s.GetCachedIssues(ctx, "fp1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)
}

func TestCacheEmptyIssueList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A clean file caches as an empty list, distinct from a miss.
	require.NoError(t, s.PutCachedIssues(ctx, "fp-clean", "a.sol", nil))

	got, found, err := s.GetCachedIssues(ctx, "fp-clean")
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, got)
}

func TestCacheLastWriterWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutCachedIssues(ctx, "fp1", "a.sol", sampleIssues()))
	require.NoError(t, s.PutCachedIssues(ctx, "fp1", "a.sol", nil))

	got, found, err := s.GetCachedIssues(ctx, "fp1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, got)
}

func TestPruneCache(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutCachedIssues(ctx, "fp-old", "a.sol", nil))

	removed, err := s.PruneCache(ctx, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, found, err := s.GetCachedIssues(ctx, "fp-old")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRunLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, RunStatusRunning, run.Status)
	require.NotEmpty(t, run.ID)

	res := lint.BuildResult([]lint.FileResult{
		{FilePath: "a.sol", Issues: sampleIssues()},
	})
	require.NoError(t, s.FinishRun(ctx, run.ID, 1, res))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFinished, got.Status)
	require.NotNil(t, got.FinishedAt)
	assert.Equal(t, 1, got.FilesAnalyzed)
	assert.Equal(t, 1, got.TotalIssues)
	assert.Equal(t, 1, got.Errors)

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestGetRunMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInMemoryStore(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.PutCachedIssues(context.Background(), "fp", "a.sol", sampleIssues()))
	_, found, err := s.GetCachedIssues(context.Background(), "fp")
	require.NoError(t, err)
	assert.True(t, found)
}
