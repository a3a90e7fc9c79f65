package practices

import (
	"fmt"

	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// NoEmptyBlocks flags empty contract bodies and empty function bodies.
// Receive functions and constructors that invoke base constructors are
// legitimately empty and are skipped.
var NoEmptyBlocks = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "practices/no-empty-blocks",
		Category:        lint.CategoryPractices,
		DefaultSeverity: lint.SeverityWarning,
		Title:           "No empty blocks",
		Description:     "Empty blocks usually indicate unfinished code or a declaration that should be virtual or removed.",
		Recommendation:  "Implement the body, add a comment explaining the intentional no-op, or remove the declaration.",
	},
	Check: checkNoEmptyBlocks,
}

func checkNoEmptyBlocks(ctx *lint.Context) error {
	for _, contract := range ctx.Unit().Contracts {
		if len(contract.Members) == 0 && contract.ContractKind != ast.KindInterface {
			ctx.Report(contract, fmt.Sprintf("%s %q has an empty body", contract.ContractKind, contract.Name))
			continue
		}
		for _, member := range contract.Members {
			fn, ok := member.(*ast.FunctionDefinition)
			if !ok || fn.Body == nil || len(fn.Body.Statements) > 0 {
				continue
			}
			switch fn.FunctionKind {
			case ast.FnReceive:
				// receive() is conventionally empty
			case ast.FnConstructor:
				// an empty constructor calling a base constructor is a
				// payable/initialization idiom
				if len(fn.Modifiers) == 0 && fn.Mutability != "payable" {
					ctx.Report(fn, "constructor has an empty body")
				}
			default:
				name := fn.Name
				if name == "" {
					name = string(fn.FunctionKind)
				}
				ctx.Report(fn, fmt.Sprintf("function %q has an empty body", name))
			}
		}
	}
	return nil
}
