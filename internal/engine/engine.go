// Package engine orchestrates analysis runs: it resolves the effective rule
// set from config, fans file work out across workers, consults the result
// cache, and aggregates per-file issues into a run result.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/solguard-labs/solguard/internal/config"
	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
	"github.com/solguard-labs/solguard/pkg/parser"
)

// Cache is the slice of the state store the engine needs. A nil Cache
// disables caching entirely.
type Cache interface {
	GetCachedIssues(ctx context.Context, fingerprint string) ([]lint.Issue, bool, error)
	PutCachedIssues(ctx context.Context, fingerprint, filePath string, issues []lint.Issue) error
}

// Options configures a new Engine.
type Options struct {
	// Catalog holds the built-in rules. Required.
	Catalog *lint.Catalog

	// Extra rules run after the catalog's, in slice order. Plugin rules
	// arrive here already namespaced.
	Extra []lint.Rule

	// Config is the resolved run configuration. Nil means defaults.
	Config *config.Resolved

	// Cache persists per-file results keyed by fingerprint. Nil disables
	// caching.
	Cache Cache

	Logger *slog.Logger
}

// ruleBinding is one rule with its effective severity and options for this
// run. Rules configured off never get a binding.
type ruleBinding struct {
	rule     lint.Rule
	meta     lint.RuleMetadata
	severity lint.Severity
	options  map[string]any
}

// Engine runs the analysis pipeline. Safe for concurrent use once built;
// the effective rule set is fixed at construction.
type Engine struct {
	bindings  []ruleBinding
	signature string
	parallel  int
	cache     Cache
	logger    *slog.Logger
}

// New builds an engine from the catalog and resolved configuration. It
// fails when the parallelism setting is negative, before any file is
// touched.
func New(opts Options) (*Engine, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("engine: catalog is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if cfg.Parallel < 0 {
		return nil, fmt.Errorf("engine: parallelism must be non-negative, got %d", cfg.Parallel)
	}
	parallel := cfg.Parallel
	if parallel == 0 {
		parallel = config.DefaultParallel
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	all := opts.Catalog.All()
	all = append(all, opts.Extra...)
	bindings := make([]ruleBinding, 0, len(all))
	for _, rule := range all {
		meta := rule.Metadata()
		severity := meta.DefaultSeverity
		var options map[string]any
		if setting, ok := cfg.Setting(meta.ID); ok {
			severity = setting.Severity
			options = setting.Options
		}
		if severity == lint.SeverityOff {
			continue
		}
		bindings = append(bindings, ruleBinding{
			rule:     rule,
			meta:     meta,
			severity: severity,
			options:  options,
		})
	}

	return &Engine{
		bindings:  bindings,
		signature: ruleSetSignature(bindings),
		parallel:  parallel,
		cache:     opts.Cache,
		logger:    logger,
	}, nil
}

// RuleCount returns how many rules are active for this run.
func (e *Engine) RuleCount() int { return len(e.bindings) }

// Analyze runs every active rule against each file and returns the
// aggregated result ordered by file path. One file's failure never stops
// the others; it surfaces as issues scoped to that file.
func (e *Engine) Analyze(ctx context.Context, files []string) (lint.Result, error) {
	results := make([]lint.FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.analyzeFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return lint.Result{}, err
	}
	return lint.BuildResult(results), nil
}

func (e *Engine) analyzeFile(ctx context.Context, path string) lint.FileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		e.logger.Warn("cannot read file", "file", path, "error", err)
		return lint.FileResult{
			FilePath: path,
			Issues:   []lint.Issue{internalIssue(path, fmt.Sprintf("cannot read file: %v", err))},
		}
	}
	return e.AnalyzeSource(ctx, path, string(content))
}

// AnalyzeSource analyzes one file whose content is already in memory. The
// transport shells use this for sources that never touch the filesystem.
func (e *Engine) AnalyzeSource(ctx context.Context, path, source string) lint.FileResult {
	var fp string
	if e.cache != nil {
		fp = fingerprint([]byte(source), e.signature)
		issues, ok, err := e.cache.GetCachedIssues(ctx, fp)
		if err != nil {
			e.logger.Warn("cache lookup failed", "file", path, "error", err)
		} else if ok {
			return lint.FileResult{FilePath: path, Issues: issues, FromCache: true}
		}
	}

	res, _ := parser.Parse(source, parser.Options{Tolerant: true, Filename: path})
	fc := lint.NewFileContext(path, source, res.Unit)

	if len(res.Errors) > 0 && unusable(res.Unit) {
		// Nothing recognizable survived parsing. Report the first syntax
		// error and skip the rules.
		fc.Add(parseIssue(path, res.Errors[0]))
	} else {
		for _, pe := range res.Errors {
			fc.Add(parseIssue(path, pe))
		}
		for _, b := range e.bindings {
			e.runRule(fc, b)
		}
	}

	issues := fc.Issues()
	if e.cache != nil {
		if err := e.cache.PutCachedIssues(ctx, fp, path, issues); err != nil {
			e.logger.Warn("cache write failed", "file", path, "error", err)
		}
	}
	return lint.FileResult{FilePath: path, Issues: issues}
}

// runRule runs one rule against the file, converting panics and returned
// errors into diagnostics so sibling rules keep running.
func (e *Engine) runRule(fc *lint.FileContext, b ruleBinding) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("rule panicked", "rule", b.meta.ID, "file", fc.FilePath, "panic", r)
			fc.Add(ruleFailureIssue(fc.FilePath, b.meta, fmt.Sprintf("%v", r)))
		}
	}()
	if err := b.rule.Analyze(fc.For(b.meta, b.severity, b.options)); err != nil {
		e.logger.Warn("rule failed", "rule", b.meta.ID, "file", fc.FilePath, "error", err)
		fc.Add(ruleFailureIssue(fc.FilePath, b.meta, err.Error()))
	}
}

// unusable reports whether a parse produced no recognizable structure.
func unusable(unit *ast.SourceUnit) bool {
	if unit == nil {
		return true
	}
	return len(unit.Pragmas) == 0 && len(unit.Imports) == 0 && len(unit.Contracts) == 0
}

func parseIssue(path string, pe *parser.ParseError) lint.Issue {
	point := lint.Point{Line: pe.Pos.Line, Column: pe.Pos.Column}
	return lint.Issue{
		RuleID:   lint.ParseErrorRuleID,
		Severity: lint.SeverityError,
		Category: "parser",
		Message:  pe.Message,
		FilePath: path,
		Location: lint.Location{Start: point, End: point},
	}
}

func internalIssue(path, message string) lint.Issue {
	point := lint.Point{Line: 1}
	return lint.Issue{
		RuleID:   "internal",
		Severity: lint.SeverityError,
		Category: "internal",
		Message:  message,
		FilePath: path,
		Location: lint.Location{Start: point, End: point},
	}
}

// ruleFailureIssue downgrades a rule crash into a diagnostic on the file it
// crashed on.
func ruleFailureIssue(path string, meta lint.RuleMetadata, detail string) lint.Issue {
	point := lint.Point{Line: 1}
	return lint.Issue{
		RuleID:   meta.ID,
		Severity: lint.SeverityInfo,
		Category: "internal",
		Message:  fmt.Sprintf("rule execution failed: %s", detail),
		FilePath: path,
		Location: lint.Location{Start: point, End: point},
	}
}
