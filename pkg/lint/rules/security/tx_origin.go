package security

import (
	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// TxOrigin flags tx.origin used anywhere in a contract. Authorization based
// on tx.origin is phishable: a malicious intermediary contract inherits the
// original sender's identity.
var TxOrigin = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "security/tx-origin",
		Category:        lint.CategorySecurity,
		DefaultSeverity: lint.SeverityError,
		Title:           "Avoid tx.origin",
		Description:     "tx.origin refers to the transaction's original sender, not the immediate caller, and must not be used for authorization.",
		Recommendation:  "Use msg.sender for authorization checks.",
	},
	Check: checkTxOrigin,
}

func checkTxOrigin(ctx *lint.Context) error {
	for _, n := range ast.FindKind(ctx.Unit(), "MemberAccess") {
		access := n.(*ast.MemberAccess)
		if access.Member != "origin" {
			continue
		}
		if id, ok := access.Object.(*ast.Identifier); ok && id.Name == "tx" {
			ctx.Report(access, "avoid tx.origin: use msg.sender for authorization")
		}
	}
	return nil
}
