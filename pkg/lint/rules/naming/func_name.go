package naming

import (
	"fmt"

	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// FuncNameMixedCase flags function names that are not mixedCase.
// Constructors, fallback, and receive functions have no name and are
// skipped.
var FuncNameMixedCase = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "naming/func-name-mixedcase",
		Category:        lint.CategoryNaming,
		DefaultSeverity: lint.SeverityWarning,
		Title:           "Function names in mixedCase",
		Description:     "Function names follow the mixedCase convention.",
		Recommendation:  "Rename the function to mixedCase, e.g. Transfer_From becomes transferFrom.",
	},
	Check: checkFuncName,
}

func checkFuncName(ctx *lint.Context) error {
	for _, n := range ast.FindKind(ctx.Unit(), "FunctionDefinition") {
		fn := n.(*ast.FunctionDefinition)
		if fn.FunctionKind != ast.FnFunction || fn.Name == "" {
			continue
		}
		if !isMixedCase(fn.Name) {
			ctx.Report(fn, fmt.Sprintf("function name %q is not mixedCase", fn.Name))
		}
	}
	return nil
}
