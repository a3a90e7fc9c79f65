// Package plugin loads Starlark rule plugins. A plugin is a .star file
// binding a `plugin` global of the form
//
//	plugin = {
//	    "meta": {"name": "foo", "version": "1.0.0"},
//	    "rules": {"bar": {"meta": {...}, "analyze": fn}},
//	    "presets": {"strict": {"rules": {...}}},
//	    "setup": fn,
//	    "teardown": fn,
//	}
//
// Accepted plugins contribute rules under namespaced IDs: rule `bar` from
// plugin `foo` becomes `foo/bar`. Presets are namespaced the same way.
package plugin

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/solguard-labs/solguard/pkg/lint"
)

// ExportName is the global a plugin module must bind.
const ExportName = "plugin"

// Plugin is one accepted plugin with its namespaced contributions.
type Plugin struct {
	Name    string
	Version string
	Path    string

	// Rules maps namespaced ID to the adapted rule.
	Rules map[string]lint.Rule

	// Presets maps namespaced preset name to its raw rules map, in the
	// same shape the config layer normalizes.
	Presets map[string]map[string]any

	// ruleOrder preserves declaration order for deterministic iteration.
	ruleOrder []string

	setup    starlark.Callable
	teardown starlark.Callable
}

// Report is the outcome of one Load call: accepted plugins plus every
// error encountered. Load never fails as a whole; per-path failures are
// collected here.
type Report struct {
	Loaded []*Plugin
	Errors []ValidationError
}

// Loader imports, validates, and manages plugin lifecycle. Not safe for
// concurrent mutation; load everything before analysis starts.
type Loader struct {
	logger *slog.Logger
	pool   *threadPool

	plugins []*Plugin // load order
	rules   map[string]lint.Rule
	order   []string // namespaced rule IDs in registration order
	presets map[string]map[string]any
}

// NewLoader returns an empty loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:  logger,
		pool:    newThreadPool(0),
		rules:   map[string]lint.Rule{},
		presets: map[string]map[string]any{},
	}
}

// Load imports each path in order. Import failure on one path is recorded
// as LOAD_FAILED and does not abort the remaining paths. When validate is
// true, candidates failing validation are excluded from the success set
// but their errors are still reported. setup() runs immediately on
// acceptance, with or without validation; a failing hook is isolated.
func (l *Loader) Load(paths []string, validate bool) *Report {
	report := &Report{}

	for _, path := range paths {
		candidate, err := l.importPath(path)
		if err != nil {
			report.Errors = append(report.Errors, ValidationError{
				Code:    CodeLoadFailed,
				Path:    path,
				Message: err.Error(),
			})
			continue
		}

		if validate {
			if errs := Validate(candidate); len(errs) > 0 {
				report.Errors = append(report.Errors, errs...)
				continue
			}
		}

		p, errs := l.build(candidate)
		if len(errs) > 0 {
			report.Errors = append(report.Errors, errs...)
			continue
		}

		l.accept(p)
		report.Loaded = append(report.Loaded, p)
	}

	return report
}

// ValidatePaths imports and validates each path without building rules or
// running lifecycle hooks. Plugins passing validation are reported with
// their metadata but are not registered on the loader.
func (l *Loader) ValidatePaths(paths []string) *Report {
	report := &Report{}
	for _, path := range paths {
		candidate, err := l.importPath(path)
		if err != nil {
			report.Errors = append(report.Errors, ValidationError{
				Code:    CodeLoadFailed,
				Path:    path,
				Message: err.Error(),
			})
			continue
		}
		if errs := Validate(candidate); len(errs) > 0 {
			report.Errors = append(report.Errors, errs...)
			continue
		}
		p := &Plugin{Path: path}
		if meta, ok := attr(candidate.Value, "meta"); ok {
			p.Name, _ = attrString(meta, "name")
			p.Version, _ = attrString(meta, "version")
		}
		report.Loaded = append(report.Loaded, p)
	}
	return report
}

// importPath reads and executes one plugin module.
func (l *Loader) importPath(path string) (Candidate, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("reading plugin: %v", err)
	}

	thread := l.pool.get("load:" + filepath.Base(path))
	defer l.pool.put(thread)

	predeclared := starlark.StringDict{
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
	globals, err := starlark.ExecFile(thread, path, content, predeclared)
	if err != nil {
		return Candidate{}, fmt.Errorf("executing plugin: %v", err)
	}

	export, ok := globals[ExportName]
	if !ok {
		return Candidate{}, fmt.Errorf("module does not bind a %q global", ExportName)
	}
	return Candidate{Path: path, Value: export}, nil
}

// build converts a candidate into an accepted Plugin, checking namespaced
// IDs against rules already registered. First registration wins: a
// conflicting plugin is rejected whole, before its setup runs.
func (l *Loader) build(c Candidate) (*Plugin, []ValidationError) {
	var errs []ValidationError

	meta, _ := attr(c.Value, "meta")
	name, _ := attrString(meta, "name")
	version, _ := attrString(meta, "version")
	if name == "" {
		// Reachable only with validate=false.
		return nil, []ValidationError{{
			Code:    CodeMissingMetadata,
			Path:    c.Path,
			Field:   "meta.name",
			Message: "cannot namespace a plugin without a name",
		}}
	}

	p := &Plugin{
		Name:    name,
		Version: version,
		Path:    c.Path,
		Rules:   map[string]lint.Rule{},
		Presets: map[string]map[string]any{},
	}

	if rulesVal, ok := attr(c.Value, "rules"); ok {
		if dict, ok := rulesVal.(*starlark.Dict); ok {
			for _, key := range dict.Keys() {
				local, ok := key.(starlark.String)
				if !ok {
					continue
				}
				id := name + "/" + string(local)
				if _, taken := l.rules[id]; taken {
					errs = append(errs, ValidationError{
						Code:    CodeDuplicateRule,
						Path:    c.Path,
						Field:   "rules." + string(local),
						Message: fmt.Sprintf("rule ID %q is already registered", id),
					})
					continue
				}
				val, _, _ := dict.Get(key)
				rule, err := l.adaptRule(id, name, val)
				if err != nil {
					errs = append(errs, ValidationError{
						Code:    CodeInvalidRule,
						Path:    c.Path,
						Field:   "rules." + string(local),
						Message: err.Error(),
					})
					continue
				}
				p.Rules[id] = rule
				p.ruleOrder = append(p.ruleOrder, id)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if presetsVal, ok := attr(c.Value, "presets"); ok {
		if dict, ok := presetsVal.(*starlark.Dict); ok {
			for _, key := range dict.Keys() {
				local, ok := key.(starlark.String)
				if !ok {
					continue
				}
				val, _, _ := dict.Get(key)
				rules := presetRules(val)
				if rules == nil {
					continue
				}
				raw, err := toGo(rules)
				if err != nil {
					continue
				}
				p.Presets[name+"/"+string(local)] = namespacePresetRules(name, raw.(map[string]any))
			}
		}
	}

	if setup, ok := attr(c.Value, "setup"); ok {
		if fn, ok := setup.(starlark.Callable); ok {
			p.setup = fn
		}
	}
	if teardown, ok := attr(c.Value, "teardown"); ok {
		if fn, ok := teardown.(starlark.Callable); ok {
			p.teardown = fn
		}
	}

	return p, nil
}

// namespacePresetRules rewrites a preset's bare local rule names to their
// namespaced form so presets keep working after namespacing.
func namespacePresetRules(pluginName string, rules map[string]any) map[string]any {
	out := make(map[string]any, len(rules))
	for id, setting := range rules {
		if !strings.Contains(id, "/") {
			id = pluginName + "/" + id
		}
		out[id] = setting
	}
	return out
}

// adaptRule builds a lint.Rule from a {meta, analyze} value or its
// {rule: ...} wrapper.
func (l *Loader) adaptRule(id, pluginName string, v starlark.Value) (lint.Rule, error) {
	if wrapped, ok := attr(v, "rule"); ok {
		return l.adaptRule(id, pluginName, wrapped)
	}

	analyzeVal, ok := attr(v, "analyze")
	if !ok {
		return nil, fmt.Errorf("rule has no analyze function")
	}
	fn, ok := analyzeVal.(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("analyze must be callable, got %s", analyzeVal.Type())
	}

	meta := lint.RuleMetadata{
		ID:              id,
		Category:        lint.Category(pluginName),
		DefaultSeverity: lint.SeverityWarning,
	}
	if metaVal, ok := attr(v, "meta"); ok {
		if title, ok := attrString(metaVal, "title"); ok {
			meta.Title = title
		}
		if desc, ok := attrString(metaVal, "description"); ok {
			meta.Description = desc
		}
		if rec, ok := attrString(metaVal, "recommendation"); ok {
			meta.Recommendation = rec
		}
		if cat, ok := attrString(metaVal, "category"); ok && cat != "" {
			meta.Category = lint.Category(cat)
		}
		if sev, ok := attrString(metaVal, "severity"); ok {
			parsed, err := lint.ParseSeverity(sev)
			if err != nil {
				return nil, fmt.Errorf("meta.severity: %w", err)
			}
			meta.DefaultSeverity = parsed
		}
	}

	return &starRule{meta: meta, fn: fn, pool: l.pool}, nil
}

// accept registers the plugin's contributions and runs its setup hook.
func (l *Loader) accept(p *Plugin) {
	l.plugins = append(l.plugins, p)
	for _, id := range p.ruleOrder {
		l.rules[id] = p.Rules[id]
		l.order = append(l.order, id)
	}
	for presetID, rules := range p.Presets {
		l.presets[presetID] = rules
	}

	if p.setup != nil {
		l.callHook(p, p.setup, "setup")
	}
}

// callHook invokes a lifecycle hook and isolates its failure.
func (l *Loader) callHook(p *Plugin, fn starlark.Callable, name string) {
	thread := l.pool.get(name + ":" + p.Name)
	defer l.pool.put(thread)

	if _, err := starlark.Call(thread, fn, nil, nil); err != nil {
		l.logger.Warn("plugin hook failed",
			"plugin", p.Name,
			"hook", name,
			"error", err)
	}
}

// Plugins returns the accepted plugins in load order.
func (l *Loader) Plugins() []*Plugin {
	return l.plugins
}

// AllRules returns every namespaced plugin rule in registration order.
// Core built-ins live in a separate catalog; the host merges the two.
func (l *Loader) AllRules() []lint.Rule {
	out := make([]lint.Rule, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.rules[id])
	}
	return out
}

// AllPresets returns the namespaced presets across all loaded plugins.
func (l *Loader) AllPresets() map[string]map[string]any {
	out := make(map[string]map[string]any, len(l.presets))
	for id, rules := range l.presets {
		out[id] = rules
	}
	return out
}

// UnloadAll runs teardown() on every loaded plugin in load order, hook
// failures isolated, then clears all plugin-derived state.
func (l *Loader) UnloadAll() {
	for _, p := range l.plugins {
		if p.teardown != nil {
			l.callHook(p, p.teardown, "teardown")
		}
	}
	l.plugins = nil
	l.rules = map[string]lint.Rule{}
	l.order = nil
	l.presets = map[string]map[string]any{}
}
