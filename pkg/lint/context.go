package lint

import (
	"github.com/solguard-labs/solguard/pkg/ast"
)

// FileContext accumulates issues for one file across every rule in a run.
// Issue order follows rule invocation order, then report order within a
// rule. It is not safe for concurrent use; the engine runs rules for one
// file sequentially.
type FileContext struct {
	FilePath string
	Source   string
	Unit     *ast.SourceUnit

	issues []Issue
}

// NewFileContext builds the per-file context the engine threads through
// every rule.
func NewFileContext(filePath, source string, unit *ast.SourceUnit) *FileContext {
	return &FileContext{FilePath: filePath, Source: source, Unit: unit}
}

// For scopes the file context to one rule with its effective severity and
// per-rule options from the resolved config.
func (f *FileContext) For(meta RuleMetadata, severity Severity, options map[string]any) *Context {
	return &Context{
		file:     f,
		meta:     meta,
		severity: severity,
		options:  options,
	}
}

// Add appends an issue directly, bypassing rule scoping. The engine uses
// this for synthetic parse-error issues.
func (f *FileContext) Add(issue Issue) {
	f.issues = append(f.issues, issue)
}

// Issues returns the accumulated issues in report order.
func (f *FileContext) Issues() []Issue {
	return f.issues
}

// Context is the view of a FileContext handed to one rule's Analyze.
type Context struct {
	file     *FileContext
	meta     RuleMetadata
	severity Severity
	options  map[string]any
}

// FilePath returns the path of the file under analysis.
func (c *Context) FilePath() string { return c.file.FilePath }

// Source returns the raw source text of the file under analysis.
func (c *Context) Source() string { return c.file.Source }

// Unit returns the parsed tree of the file under analysis. Never nil, but
// may be partial when the file had syntax errors.
func (c *Context) Unit() *ast.SourceUnit { return c.file.Unit }

// Severity returns the rule's effective severity for this run.
func (c *Context) Severity() Severity { return c.severity }

// Report records an issue at the given node's location.
func (c *Context) Report(node ast.Node, message string) {
	c.ReportAt(node.Span(), message)
}

// ReportAt records an issue at an explicit source range.
func (c *Context) ReportAt(span ast.Span, message string) {
	c.file.issues = append(c.file.issues, Issue{
		RuleID:   c.meta.ID,
		Severity: c.severity,
		Category: string(c.meta.Category),
		Message:  message,
		FilePath: c.file.FilePath,
		Location: LocationFromSpan(span),
	})
}

// Option extracts a typed per-rule option with a default.
func Option[T any](c *Context, key string, defaultVal T) T {
	return GetOption(c.options, key, defaultVal)
}

// IntOption extracts an int option, handling float64 from JSON and YAML
// decoding.
func (c *Context) IntOption(key string, defaultVal int) int {
	return GetIntOption(c.options, key, defaultVal)
}

// StringOption extracts a string option.
func (c *Context) StringOption(key string, defaultVal string) string {
	return GetStringOption(c.options, key, defaultVal)
}

// BoolOption extracts a bool option.
func (c *Context) BoolOption(key string, defaultVal bool) bool {
	return GetBoolOption(c.options, key, defaultVal)
}

// StringSliceOption extracts a string slice option.
func (c *Context) StringSliceOption(key string, defaultVal []string) []string {
	return GetStringSliceOption(c.options, key, defaultVal)
}
