package security

import (
	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// NoBlockTimestamp flags block.timestamp and the deprecated now alias.
// Validators can skew timestamps by several seconds, so they are unsafe as
// a randomness or fine-grained timing source.
var NoBlockTimestamp = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "security/no-block-timestamp",
		Category:        lint.CategorySecurity,
		DefaultSeverity: lint.SeverityInfo,
		Title:           "Avoid block.timestamp",
		Description:     "block.timestamp is miner-influenced within a small window and must not drive randomness or precise deadlines.",
		Recommendation:  "Tolerate timestamp skew in deadline checks; use an oracle or commit-reveal scheme for randomness.",
	},
	Check: checkBlockTimestamp,
}

func checkBlockTimestamp(ctx *lint.Context) error {
	ast.Walk(ctx.Unit(), ast.Visitor{
		Enter: func(n ast.Node) ast.Action {
			switch node := n.(type) {
			case *ast.MemberAccess:
				if node.Member != "timestamp" {
					return ast.Continue
				}
				if id, ok := node.Object.(*ast.Identifier); ok && id.Name == "block" {
					ctx.Report(node, "avoid block.timestamp as a time or randomness source")
					return ast.SkipChildren
				}
			case *ast.Identifier:
				if node.Name == "now" {
					ctx.Report(node, "avoid now (alias of block.timestamp) as a time or randomness source")
				}
			}
			return ast.Continue
		},
	})
	return nil
}
