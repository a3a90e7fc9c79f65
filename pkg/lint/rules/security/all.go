package security

import "github.com/solguard-labs/solguard/pkg/lint"

// All returns every security rule for catalog registration.
func All() []lint.Rule {
	return []lint.Rule{
		TxOrigin,
		AvoidSelfdestruct,
		AvoidLowLevelCalls,
		NoBlockTimestamp,
		StateVisibility,
		CheckSendResult,
	}
}
