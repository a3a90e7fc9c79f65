package practices

import "github.com/solguard-labs/solguard/pkg/lint"

// All returns every best-practice rule for catalog registration.
func All() []lint.Rule {
	return []lint.Rule{
		NoEmptyBlocks,
		MaxStatesCount,
		ExplicitPragma,
	}
}
