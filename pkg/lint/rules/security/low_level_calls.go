package security

import (
	"fmt"

	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// lowLevelMembers are the address members that bypass the type system.
var lowLevelMembers = map[string]bool{
	"call":         true,
	"delegatecall": true,
	"staticcall":   true,
	"callcode":     true,
}

// AvoidLowLevelCalls flags call, delegatecall, staticcall, and callcode.
// Low-level calls skip function-existence checks and silently return false
// on failure.
var AvoidLowLevelCalls = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "security/avoid-low-level-calls",
		Category:        lint.CategorySecurity,
		DefaultSeverity: lint.SeverityWarning,
		Title:           "Avoid low-level calls",
		Description:     "Low-level calls do not verify that the target is a contract and do not propagate reverts automatically.",
		Recommendation:  "Call contract functions through an interface type; when a low-level call is unavoidable, check its returned success flag.",
	},
	Check: checkLowLevelCalls,
}

func checkLowLevelCalls(ctx *lint.Context) error {
	for _, n := range ast.FindKind(ctx.Unit(), "CallExpression") {
		call := n.(*ast.CallExpression)
		access, ok := call.Callee.(*ast.MemberAccess)
		if !ok || !lowLevelMembers[access.Member] {
			continue
		}
		ctx.Report(call, fmt.Sprintf("avoid low-level %q: use a contract interface when possible", access.Member))
	}
	return nil
}
