// Package naming provides lint rules for Solidity naming conventions.
//
// Rules in this package:
//   - naming/contract-name-pascalcase: contract/interface/library names
//   - naming/func-name-mixedcase: function names
//   - naming/var-name-mixedcase: state and local variable names
package naming
