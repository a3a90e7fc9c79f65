// Package lint defines the core linting model: rules, severities, issues,
// per-file analysis contexts, and the rule catalog.
//
// The package holds the types shared across the system. Rule implementations
// live in pkg/lint/rules; the engine that orchestrates parsing, caching, and
// concurrent execution lives in internal/engine.
package lint

import (
	"encoding/json"
	"fmt"
)

// Severity indicates the importance of an issue.
type Severity int

// Severity levels. SeverityOff excludes a rule from execution entirely.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityOff disables a rule.
	SeverityOff
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityOff:
		return "off"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the severity as its wire string ("error", "warning",
// "info", "off").
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the wire string form of a severity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a severity name. "warn" is accepted as an alias for
// "warning".
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "off":
		return SeverityOff, nil
	default:
		return SeverityOff, fmt.Errorf("unknown severity %q", name)
	}
}

// SeverityFromValue normalizes a config-supplied severity value. Strings are
// parsed by name; numbers follow the conventional 0=off, 1=warning, 2=error
// scheme.
func SeverityFromValue(v any) (Severity, error) {
	switch n := v.(type) {
	case string:
		return ParseSeverity(n)
	case int:
		return severityFromInt(n)
	case int64:
		return severityFromInt(int(n))
	case float64:
		return severityFromInt(int(n))
	case Severity:
		return n, nil
	case bool:
		// YAML 1.1 decodes a bare `off` as false.
		if !n {
			return SeverityOff, nil
		}
		return SeverityOff, fmt.Errorf("severity cannot be true; use error, warning, info, or off")
	default:
		return SeverityOff, fmt.Errorf("severity must be a string or number, got %T", v)
	}
}

func severityFromInt(n int) (Severity, error) {
	switch n {
	case 0:
		return SeverityOff, nil
	case 1:
		return SeverityWarning, nil
	case 2:
		return SeverityError, nil
	default:
		return SeverityOff, fmt.Errorf("numeric severity must be 0, 1, or 2, got %d", n)
	}
}

// Category groups rules by concern.
type Category string

// Built-in rule categories. Plugin rules may introduce their own.
const (
	CategorySecurity  Category = "security"
	CategoryNaming    Category = "naming"
	CategoryPractices Category = "practices"
)
