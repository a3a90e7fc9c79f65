package security

import (
	"fmt"

	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// StateVisibility flags state variables declared without an explicit
// visibility modifier.
var StateVisibility = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "security/state-visibility",
		Category:        lint.CategorySecurity,
		DefaultSeverity: lint.SeverityWarning,
		Title:           "Explicit state visibility",
		Description:     "State variables without a visibility modifier default to internal, which is easy to misread as private or public.",
		Recommendation:  "Declare every state variable public, internal, or private.",
		Fixable:         true,
	},
	Check: checkStateVisibility,
}

func checkStateVisibility(ctx *lint.Context) error {
	for _, contract := range ctx.Unit().Contracts {
		for _, member := range contract.Members {
			sv, ok := member.(*ast.StateVariableDeclaration)
			if !ok || sv.Visibility != "" {
				continue
			}
			ctx.Report(sv, fmt.Sprintf("state variable %q has no visibility modifier", sv.Name))
		}
	}
	return nil
}
