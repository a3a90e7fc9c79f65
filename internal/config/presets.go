package config

import (
	"github.com/solguard-labs/solguard/pkg/lint"
	"github.com/solguard-labs/solguard/pkg/lint/rules"
)

// Built-in preset names usable in an extends chain.
const (
	PresetRecommended = "solguard:recommended"
	PresetAll         = "solguard:all"
)

// Preset is a named bundle of rule settings.
type Preset map[string]RuleSetting

// BuiltinPresets returns the presets shipped with the binary.
// solguard:recommended enables the security rules at their default
// severities; solguard:all enables every built-in rule.
func BuiltinPresets() map[string]Preset {
	recommended := Preset{}
	all := Preset{}
	for _, r := range rules.All() {
		meta := r.Metadata()
		setting := RuleSetting{Severity: meta.DefaultSeverity}
		all[meta.ID] = setting
		if meta.Category == lint.CategorySecurity {
			recommended[meta.ID] = setting
		}
	}
	return map[string]Preset{
		PresetRecommended: recommended,
		PresetAll:         all,
	}
}
