package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportsSolChanges(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan []string, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Config{
			Roots:    []string{dir},
			Debounce: 20 * time.Millisecond,
			OnChange: func(paths []string) {
				select {
				case changes <- paths:
				default:
				}
			},
		})
	}()

	// Give the watcher time to register the root.
	time.Sleep(100 * time.Millisecond)

	solPath := filepath.Join(dir, "Token.sol")
	require.NoError(t, os.WriteFile(solPath, []byte("contract Token {}"), 0o644))
	// Non-Solidity files must not trigger a batch of their own.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case paths := <-changes:
		assert.Contains(t, paths, solPath)
		for _, p := range paths {
			assert.Equal(t, ".sol", filepath.Ext(p))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch observed")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestRunMissingRoot(t *testing.T) {
	err := Run(context.Background(), Config{Roots: []string{filepath.Join(t.TempDir(), "absent")}})
	require.Error(t, err)
}
