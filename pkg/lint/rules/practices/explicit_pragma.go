package practices

import (
	"github.com/solguard-labs/solguard/pkg/lint"
)

// ExplicitPragma flags files without a solidity version pragma. Without a
// pragma the file compiles under any compiler version, including ones with
// different semantics than the author tested against.
var ExplicitPragma = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "practices/explicit-pragma",
		Category:        lint.CategoryPractices,
		DefaultSeverity: lint.SeverityWarning,
		Title:           "Explicit version pragma",
		Description:     "Every file declares the compiler versions it was written for.",
		Recommendation:  "Add a pragma such as `pragma solidity ^0.8.0;` at the top of the file.",
	},
	Check: checkExplicitPragma,
}

func checkExplicitPragma(ctx *lint.Context) error {
	unit := ctx.Unit()
	for _, pragma := range unit.Pragmas {
		if pragma.Name == "solidity" {
			return nil
		}
	}
	// Nothing to anchor the report to except the file start.
	ctx.ReportAt(unit.Span(), "missing solidity version pragma")
	return nil
}
