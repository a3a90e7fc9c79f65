package naming

import (
	"fmt"

	"github.com/solguard-labs/solguard/pkg/lint"
)

// ContractNamePascalCase flags contract, interface, and library names that
// are not CapWords.
var ContractNamePascalCase = lint.RuleDef{
	Meta: lint.RuleMetadata{
		ID:              "naming/contract-name-pascalcase",
		Category:        lint.CategoryNaming,
		DefaultSeverity: lint.SeverityWarning,
		Title:           "Contract names in CapWords",
		Description:     "Contract, interface, and library names follow the CapWords convention.",
		Recommendation:  "Rename the contract to CapWords, e.g. tokenVault becomes TokenVault.",
	},
	Check: checkContractName,
}

func checkContractName(ctx *lint.Context) error {
	for _, contract := range ctx.Unit().Contracts {
		if contract.Name == "" || isPascalCase(contract.Name) {
			continue
		}
		ctx.Report(contract, fmt.Sprintf("%s name %q is not CapWords", contract.ContractKind, contract.Name))
	}
	return nil
}
