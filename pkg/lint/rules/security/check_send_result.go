package security

import (
	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// CheckSendResult flags send() calls whose boolean result is discarded.
// send forwards a 2300 gas stipend and reports failure through its return
// value instead of reverting.
var CheckSendResult = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "security/check-send-result",
		Category:        lint.CategorySecurity,
		DefaultSeverity: lint.SeverityError,
		Title:           "Check send result",
		Description:     "A failed send does not revert; ignoring its return value silently loses funds-transfer failures.",
		Recommendation:  "Check the returned bool, or use transfer which reverts on failure.",
	},
	Check: checkSendResult,
}

func checkSendResult(ctx *lint.Context) error {
	// Only a send used directly as a statement discards its result. A send
	// inside require(...), an if condition, or an assignment is checked.
	for _, n := range ast.FindKind(ctx.Unit(), "ExpressionStatement") {
		stmt := n.(*ast.ExpressionStatement)
		call, ok := stmt.Expression.(*ast.CallExpression)
		if !ok {
			continue
		}
		if access, ok := call.Callee.(*ast.MemberAccess); ok && access.Member == "send" {
			ctx.Report(stmt, "the result of send is ignored: check the returned bool or use transfer")
		}
	}
	return nil
}
