package lint

import (
	"github.com/solguard-labs/solguard/pkg/ast"
)

// ParseErrorRuleID is the synthetic rule ID attached to issues produced by
// the parser rather than by a rule.
const ParseErrorRuleID = "parse-error"

// Point is one position in a source file. Lines are 1-based, columns are
// 0-based.
type Point struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is the source range an issue covers.
type Location struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// LocationFromSpan converts an AST span to a wire location.
func LocationFromSpan(s ast.Span) Location {
	return Location{
		Start: Point{Line: s.Start.Line, Column: s.Start.Column},
		End:   Point{Line: s.End.Line, Column: s.End.Column},
	}
}

// Issue is one reported finding. The JSON field names are a stable wire
// contract consumed by formatters and transport shells.
type Issue struct {
	RuleID   string   `json:"ruleId"`
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	FilePath string   `json:"filePath"`
	Location Location `json:"location"`
}
