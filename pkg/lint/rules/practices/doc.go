// Package practices provides general best-practice lint rules.
//
// Rules in this package:
//   - practices/no-empty-blocks: empty contract, function, and statement blocks
//   - practices/max-states-count: state variable count per contract
//   - practices/explicit-pragma: missing solidity version pragma
package practices
