package security

import (
	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// AvoidSelfdestruct flags selfdestruct calls, including the deprecated
// suicide alias.
var AvoidSelfdestruct = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "security/avoid-selfdestruct",
		Category:        lint.CategorySecurity,
		DefaultSeverity: lint.SeverityWarning,
		Title:           "Avoid selfdestruct",
		Description:     "selfdestruct removes the contract and forcibly transfers its balance; since the Cancun fork it no longer clears code except in the creating transaction.",
		Recommendation:  "Use a withdrawal pattern with an explicit disabled flag instead of destroying the contract.",
	},
	Check: checkSelfdestruct,
}

func checkSelfdestruct(ctx *lint.Context) error {
	for _, n := range ast.FindKind(ctx.Unit(), "CallExpression") {
		call := n.(*ast.CallExpression)
		id, ok := call.Callee.(*ast.Identifier)
		if !ok {
			continue
		}
		if id.Name == "selfdestruct" || id.Name == "suicide" {
			ctx.Report(call, "avoid "+id.Name+": use a withdrawal pattern instead of destroying the contract")
		}
	}
	return nil
}
