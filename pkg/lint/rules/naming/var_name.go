package naming

import (
	"fmt"

	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// VarNameMixedCase flags state and local variable names that are not
// mixedCase. Constant and immutable state variables may instead use
// SCREAMING_SNAKE_CASE.
var VarNameMixedCase = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "naming/var-name-mixedcase",
		Category:        lint.CategoryNaming,
		DefaultSeverity: lint.SeverityWarning,
		Title:           "Variable names in mixedCase",
		Description:     "Variable names follow the mixedCase convention; constants may use SCREAMING_SNAKE_CASE.",
		Recommendation:  "Rename the variable to mixedCase, or SCREAMING_SNAKE_CASE for constants.",
	},
	Check: checkVarName,
}

func checkVarName(ctx *lint.Context) error {
	ast.Walk(ctx.Unit(), ast.Visitor{
		Enter: func(n ast.Node) ast.Action {
			switch node := n.(type) {
			case *ast.StateVariableDeclaration:
				if node.Name == "" {
					return ast.Continue
				}
				if node.Constant || node.Immutable {
					if !isMixedCase(node.Name) && !isUpperSnakeCase(node.Name) {
						ctx.Report(node, fmt.Sprintf("constant name %q is neither mixedCase nor SCREAMING_SNAKE_CASE", node.Name))
					}
					return ast.Continue
				}
				if !isMixedCase(node.Name) {
					ctx.Report(node, fmt.Sprintf("state variable name %q is not mixedCase", node.Name))
				}
			case *ast.VariableDeclarationStatement:
				if node.Name != "" && !isMixedCase(node.Name) {
					ctx.Report(node, fmt.Sprintf("variable name %q is not mixedCase", node.Name))
				}
			}
			return ast.Continue
		},
	})
	return nil
}
