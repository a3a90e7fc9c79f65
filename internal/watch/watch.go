// Package watch re-runs analysis when Solidity sources change on disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches rapid editor save bursts into one re-analysis.
const DefaultDebounce = 100 * time.Millisecond

// Config holds the watcher's collaborators.
type Config struct {
	// Roots are the directories watched recursively.
	Roots []string

	// OnChange receives the batch of changed .sol files after the
	// debounce window closes. Paths are deduplicated.
	OnChange func(paths []string)

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	Logger *slog.Logger
}

// Run watches the roots and blocks until the context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range cfg.Roots {
		if err := watchDirRecursive(watcher, root); err != nil {
			return err
		}
	}

	var (
		mu      sync.Mutex
		pending = map[string]bool{}
		timer   *time.Timer
	)

	flush := func() {
		mu.Lock()
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		pending = map[string]bool{}
		mu.Unlock()

		if len(paths) == 0 || cfg.OnChange == nil {
			return
		}
		logger.Debug("sources changed", "count", len(paths))
		cfg.OnChange(paths)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				// New directories need their own watch.
				if err := watchDirRecursive(watcher, event.Name); err == nil {
					logger.Debug("watching new path", "path", event.Name)
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".sol" {
				continue
			}

			mu.Lock()
			pending[event.Name] = true
			mu.Unlock()

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, flush)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds path and every directory below it. Non-directory
// paths are ignored.
func watchDirRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
