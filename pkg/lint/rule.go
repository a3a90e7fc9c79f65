package lint

import (
	"fmt"
	"strings"
)

// RuleMetadata describes one rule.
type RuleMetadata struct {
	// ID uniquely identifies the rule, "category/kebab-name" for built-ins
	// and "plugin/kebab-name" for plugin rules.
	ID string

	// Category groups the rule for filtering and reporting.
	Category Category

	// DefaultSeverity applies when the resolved config does not override it.
	DefaultSeverity Severity

	// Title is a one-line summary.
	Title string

	// Description explains what the rule checks.
	Description string

	// Recommendation tells the author how to fix a finding.
	Recommendation string

	// Fixable marks rules whose findings a future autofixer could rewrite.
	Fixable bool
}

// Rule is a stateless analysis unit. Implementations must be safe for
// concurrent use across files; any per-file state belongs in the Context.
type Rule interface {
	Metadata() RuleMetadata
	Analyze(ctx *Context) error
}

// RuleDef is a data-driven rule: metadata plus a check function. Rule
// packages declare their rules as RuleDef values and export them through an
// All() slice; hosts register those slices into an explicit Catalog.
type RuleDef struct {
	Meta  RuleMetadata
	Check func(ctx *Context) error
}

// Metadata implements Rule.
func (r RuleDef) Metadata() RuleMetadata { return r.Meta }

// Analyze implements Rule.
func (r RuleDef) Analyze(ctx *Context) error {
	if r.Check == nil {
		return nil
	}
	return r.Check(ctx)
}

// DefaultDocsBaseURL is the hosted rule documentation site.
const DefaultDocsBaseURL = "https://solguard.dev/docs/rules"

// DocsBaseURL can be overridden via config for local/offline mode.
var DocsBaseURL = DefaultDocsBaseURL

// BuildDocURL constructs a documentation URL for a rule.
func BuildDocURL(ruleID string) string {
	return fmt.Sprintf("%s/%s", DocsBaseURL, strings.ToLower(ruleID))
}

// SetDocsBaseURL overrides the default documentation base URL.
func SetDocsBaseURL(url string) {
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL resets to the default documentation URL.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}
