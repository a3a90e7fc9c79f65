package naming

import "github.com/solguard-labs/solguard/pkg/lint"

// All returns every naming rule for catalog registration.
func All() []lint.Rule {
	return []lint.Rule{
		ContractNamePascalCase,
		FuncNameMixedCase,
		VarNameMixedCase,
	}
}
