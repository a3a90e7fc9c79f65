package practices

import (
	"fmt"

	"github.com/solguard-labs/solguard/pkg/ast"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// DefaultMaxStates is the state variable limit when the rule is not
// configured.
const DefaultMaxStates = 15

// MaxStatesCount flags contracts declaring more state variables than the
// configured maximum. Every state variable occupies a storage slot; large
// counts usually mean the contract should be split.
var MaxStatesCount = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "practices/max-states-count",
		Category:        lint.CategoryPractices,
		DefaultSeverity: lint.SeverityWarning,
		Title:           "Limit state variable count",
		Description:     "Contracts with many state variables are expensive and hard to audit.",
		Recommendation:  "Split the contract or pack related variables into structs. The limit is configurable via the \"max\" option.",
	},
	Check: checkMaxStatesCount,
}

func checkMaxStatesCount(ctx *lint.Context) error {
	max := ctx.IntOption("max", DefaultMaxStates)

	for _, contract := range ctx.Unit().Contracts {
		count := 0
		for _, member := range contract.Members {
			if sv, ok := member.(*ast.StateVariableDeclaration); ok && !sv.Constant {
				count++
			}
		}
		if count > max {
			ctx.Report(contract, fmt.Sprintf("contract %q has %d state variables, the limit is %d", contract.Name, count, max))
		}
	}
	return nil
}
