// Package rules aggregates the built-in rule packages. Hosts register the
// aggregate into an explicit lint.Catalog; there is no init()-time global
// registration.
package rules

import (
	"github.com/solguard-labs/solguard/pkg/lint"
	"github.com/solguard-labs/solguard/pkg/lint/rules/naming"
	"github.com/solguard-labs/solguard/pkg/lint/rules/practices"
	"github.com/solguard-labs/solguard/pkg/lint/rules/security"
)

// All returns every built-in rule in category order: security, naming,
// practices. The order is the default issue ordering within a file.
func All() []lint.Rule {
	var out []lint.Rule
	out = append(out, security.All()...)
	out = append(out, naming.All()...)
	out = append(out, practices.All()...)
	return out
}

// NewCatalog returns a catalog pre-populated with every built-in rule.
func NewCatalog() *lint.Catalog {
	cat := lint.NewCatalog()
	for _, r := range All() {
		// Built-in IDs are unique by construction.
		_ = cat.Register(r, false)
	}
	return cat
}
