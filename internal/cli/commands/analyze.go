package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solguard-labs/solguard/internal/engine"
	"github.com/solguard-labs/solguard/internal/format"
	"github.com/solguard-labs/solguard/internal/watch"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// AnalyzeOptions holds the analyze command's flags.
type AnalyzeOptions struct {
	Format string
	Watch  bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze Solidity sources",
		Long: `Analyze Solidity files or directories with every enabled rule.

Directories are walked recursively for .sol files. Paths matching the
config's excludedFiles patterns are skipped. The exit code is 1 when any
error-severity issue is found.`,
		Example: `  # Analyze the current project
  solguard analyze

  # Analyze specific files and directories
  solguard analyze contracts/ scripts/Migrations.sol

  # Machine-readable output
  solguard analyze --format json

  # Re-analyze on every save
  solguard analyze --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", format.FormatTable, "Output format: table, compact, json, sarif")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch for changes and re-analyze")
	cmd.Flags().Int("parallel", 0, "Maximum number of files analyzed concurrently")
	cmd.Flags().Bool("no-cache", false, "Disable the analysis cache")
	cmd.Flags().String("cache-path", "", "Path to the analysis cache database")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	formatter, err := format.New(opts.Format)
	if err != nil {
		return err
	}

	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if len(args) == 0 {
		args = []string{"."}
	}
	files, err := collectFiles(args, rt.Config.ExcludedFiles)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no Solidity files found under %s", strings.Join(args, ", "))
	}

	eng, err := rt.NewEngine()
	if err != nil {
		return err
	}

	result, err := analyzeOnce(cmd.Context(), rt, eng, files)
	if err != nil {
		return err
	}
	if err := formatter.Format(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if opts.Watch {
		return watchAndReanalyze(cmd, rt, eng, formatter, args)
	}

	if result.Summary.Errors > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

// analyzeOnce runs the engine and records the run in the state store when
// one is open.
func analyzeOnce(ctx context.Context, rt *Runtime, eng *engine.Engine, files []string) (lint.Result, error) {
	var runID string
	if store := rt.Store(); store != nil {
		if run, err := store.CreateRun(ctx); err != nil {
			rt.Logger.Warn("cannot record run", "error", err)
		} else {
			runID = run.ID
		}
	}

	result, err := eng.Analyze(ctx, files)
	if err != nil {
		return lint.Result{}, err
	}

	if store := rt.Store(); store != nil && runID != "" {
		if err := store.FinishRun(ctx, runID, len(files), result); err != nil {
			rt.Logger.Warn("cannot finish run record", "error", err)
		}
	}
	return result, nil
}

func watchAndReanalyze(cmd *cobra.Command, rt *Runtime, eng *engine.Engine, formatter format.Formatter, args []string) error {
	roots := make([]string, 0, len(args))
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if info.IsDir() {
			roots = append(roots, arg)
		} else {
			roots = append(roots, filepath.Dir(arg))
		}
	}

	rt.Logger.Info("watching for changes", "roots", strings.Join(roots, ", "))
	return watch.Run(cmd.Context(), watch.Config{
		Roots:  roots,
		Logger: rt.Logger,
		OnChange: func(paths []string) {
			paths = filterExcluded(paths, rt.Config.ExcludedFiles)
			if len(paths) == 0 {
				return
			}
			sort.Strings(paths)
			result, err := analyzeOnce(cmd.Context(), rt, eng, paths)
			if err != nil {
				rt.Logger.Error("re-analysis failed", "error", err)
				return
			}
			if err := formatter.Format(cmd.OutOrStdout(), result); err != nil {
				rt.Logger.Error("formatting failed", "error", err)
			}
		},
	})
}

// collectFiles expands files and directories into the sorted list of .sol
// files to analyze.
func collectFiles(paths []string, excluded []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	add := func(path string) {
		if !seen[path] && !isExcluded(path, excluded) {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Don't descend into excluded directories.
				if p != path && isExcluded(p, excluded) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(p) == ".sol" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func filterExcluded(paths []string, excluded []string) []string {
	var out []string
	for _, p := range paths {
		if !isExcluded(p, excluded) {
			out = append(out, p)
		}
	}
	return out
}

// isExcluded matches a path against the exclusion patterns. Patterns match
// the full slash path, the base name, or any single path segment.
func isExcluded(path string, patterns []string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		for _, segment := range strings.Split(slashed, "/") {
			if ok, _ := filepath.Match(pattern, segment); ok {
				return true
			}
		}
	}
	return false
}
