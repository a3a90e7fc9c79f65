package plugin

import (
	"fmt"
	"regexp"

	"go.starlark.net/starlark"
)

// semverPattern matches plain semantic versions with optional pre-release
// and build suffixes.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z.\-]+)?(?:\+[0-9A-Za-z.\-]+)?$`)

// identPattern matches kebab-case rule and preset names.
var identPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(?:-[a-z0-9]+)*$`)

// Candidate is a plugin export awaiting validation: the value bound to the
// `plugin` global of an executed module.
type Candidate struct {
	Path  string
	Value starlark.Value
}

// Validate structurally checks a candidate and returns every violation
// found in one pass. It never fails fast and never returns a Go error; a
// valid candidate yields an empty slice.
func Validate(c Candidate) []ValidationError {
	var errs []ValidationError
	report := func(code ErrorCode, field, format string, args ...any) {
		errs = append(errs, ValidationError{
			Code:    code,
			Path:    c.Path,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if c.Value == nil || !isMapping(c.Value) {
		report(CodeInvalidStructure, "", "plugin export must be a dict or struct")
		return errs
	}

	validateMeta(c.Value, report)
	validateRules(c.Value, report)
	validatePresets(c.Value, report)
	validateHook(c.Value, "setup", report)
	validateHook(c.Value, "teardown", report)

	return errs
}

type reportFunc func(code ErrorCode, field, format string, args ...any)

func validateMeta(v starlark.Value, report reportFunc) {
	meta, ok := attr(v, "meta")
	if !ok || !isMapping(meta) {
		report(CodeMissingMetadata, "meta", "plugin must declare a meta block with name and version")
		return
	}

	name, ok := attrString(meta, "name")
	if !ok || name == "" {
		report(CodeMissingMetadata, "meta.name", "meta.name must be a non-empty string")
	}

	version, ok := attrString(meta, "version")
	if !ok || !semverPattern.MatchString(version) {
		report(CodeMissingMetadata, "meta.version", "meta.version %q is not a valid semver version", version)
	}
}

func validateRules(v starlark.Value, report reportFunc) {
	rulesVal, ok := attr(v, "rules")
	if !ok {
		return
	}
	rules, ok := rulesVal.(*starlark.Dict)
	if !ok {
		report(CodeInvalidRule, "rules", "rules must be a dict of rule name to rule")
		return
	}

	for _, key := range rules.Keys() {
		name, ok := key.(starlark.String)
		if !ok || !identPattern.MatchString(string(name)) {
			report(CodeInvalidRule, "rules", "rule name %s must be a kebab-case identifier", key.String())
			continue
		}
		val, _, err := rules.Get(key)
		if err != nil {
			continue
		}
		if !isRuleShaped(val) {
			report(CodeInvalidRule, "rules."+string(name), "rule must have a meta dict and a callable analyze, or wrap one under a \"rule\" key")
		}
	}
}

// isRuleShaped accepts a {meta, analyze} value or a {rule: <that>} wrapper.
func isRuleShaped(v starlark.Value) bool {
	if !isMapping(v) {
		return false
	}
	if wrapped, ok := attr(v, "rule"); ok {
		return isRuleShaped(wrapped)
	}
	meta, ok := attr(v, "meta")
	if !ok || !isMapping(meta) {
		return false
	}
	analyze, ok := attr(v, "analyze")
	if !ok {
		return false
	}
	_, callable := analyze.(starlark.Callable)
	return callable
}

func validatePresets(v starlark.Value, report reportFunc) {
	presetsVal, ok := attr(v, "presets")
	if !ok {
		return
	}
	presets, ok := presetsVal.(*starlark.Dict)
	if !ok {
		report(CodeInvalidPreset, "presets", "presets must be a dict of preset name to preset")
		return
	}

	for _, key := range presets.Keys() {
		name, ok := key.(starlark.String)
		if !ok || !identPattern.MatchString(string(name)) {
			report(CodeInvalidPreset, "presets", "preset name %s must be a kebab-case identifier", key.String())
			continue
		}
		val, _, err := presets.Get(key)
		if err != nil {
			continue
		}
		if presetRules(val) == nil {
			report(CodeInvalidPreset, "presets."+string(name), "preset must carry a rules dict, directly or under config.rules")
		}
	}
}

// presetRules extracts a preset's rules dict from either the direct or the
// nested config form. Returns nil when neither shape matches.
func presetRules(v starlark.Value) *starlark.Dict {
	if !isMapping(v) {
		return nil
	}
	if rules, ok := attr(v, "rules"); ok {
		if dict, ok := rules.(*starlark.Dict); ok {
			return dict
		}
		return nil
	}
	if cfg, ok := attr(v, "config"); ok && isMapping(cfg) {
		if rules, ok := attr(cfg, "rules"); ok {
			if dict, ok := rules.(*starlark.Dict); ok {
				return dict
			}
		}
	}
	return nil
}

func validateHook(v starlark.Value, name string, report reportFunc) {
	hook, ok := attr(v, name)
	if !ok || hook == starlark.None {
		return
	}
	if _, callable := hook.(starlark.Callable); !callable {
		report(CodeInvalidStructure, name, "%s must be callable, got %s", name, hook.Type())
	}
}
