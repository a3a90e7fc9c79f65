// Package config loads and resolves solguard configuration. It merges
// extends chains, presets, and local overrides into a finished Resolved
// value; the engine treats that value as an opaque, already-merged input.
package config

import (
	"fmt"

	"github.com/solguard-labs/solguard/pkg/lint"
)

// RuleSetting is the resolved configuration for one rule: an effective
// severity plus optional rule-specific options.
type RuleSetting struct {
	Severity lint.Severity
	Options  map[string]any
}

// CacheConfig controls the analysis result cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// ServerConfig controls the HTTP analysis server.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// FileConfig is the raw on-disk configuration shape before extends
// resolution. Rule values are kept as `any` because the wire format allows
// both a bare severity and a [severity, options] pair.
type FileConfig struct {
	Extends       []string          `koanf:"extends"`
	Rules         map[string]any    `koanf:"rules"`
	Plugins       []string          `koanf:"plugins"`
	ExcludedFiles []string          `koanf:"excludedFiles"`
	Env           map[string]string `koanf:"env"`
	Parallel      int               `koanf:"parallel"`
	Cache         CacheConfig       `koanf:"cache"`
	Server        ServerConfig      `koanf:"server"`
}

// Resolved is the finished configuration: extends chains and presets are
// merged, severities are normalized, and options are extracted.
type Resolved struct {
	// BasePath is the directory the config file was loaded from; relative
	// plugin and exclusion paths resolve against it.
	BasePath string

	// Rules maps rule ID to its configured setting. Rules absent from the
	// map run at their own default severity.
	Rules map[string]RuleSetting

	// Plugins are Starlark plugin paths to load, in order.
	Plugins []string

	// ExcludedFiles are glob patterns excluded from analysis.
	ExcludedFiles []string

	// Env carries opaque environment hints for plugin rules.
	Env map[string]string

	// Parallel is the maximum number of files analyzed concurrently.
	// Zero means the default; negative values are rejected at engine
	// construction.
	Parallel int

	Cache  CacheConfig
	Server ServerConfig
}

// Setting returns the configured setting for a rule and whether one exists.
func (r *Resolved) Setting(id string) (RuleSetting, bool) {
	s, ok := r.Rules[id]
	return s, ok
}

// NormalizeRuleValue converts one raw rule config value into a RuleSetting.
// Accepted shapes: a severity scalar ("error", "off", 0, 2), or a two-element
// [severity, options] list where options is a map.
func NormalizeRuleValue(id string, v any) (RuleSetting, error) {
	if list, ok := v.([]any); ok {
		if len(list) == 0 || len(list) > 2 {
			return RuleSetting{}, fmt.Errorf("rule %q: expected [severity] or [severity, options], got %d elements", id, len(list))
		}
		sev, err := lint.SeverityFromValue(list[0])
		if err != nil {
			return RuleSetting{}, fmt.Errorf("rule %q: %w", id, err)
		}
		setting := RuleSetting{Severity: sev}
		if len(list) == 2 {
			opts, ok := toOptionMap(list[1])
			if !ok {
				return RuleSetting{}, fmt.Errorf("rule %q: options must be a map, got %T", id, list[1])
			}
			setting.Options = opts
		}
		return setting, nil
	}

	sev, err := lint.SeverityFromValue(v)
	if err != nil {
		return RuleSetting{}, fmt.Errorf("rule %q: %w", id, err)
	}
	return RuleSetting{Severity: sev}, nil
}

// toOptionMap normalizes the two map shapes YAML decoding produces.
func toOptionMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}
