// Package security provides lint rules for Solidity security pitfalls.
//
// Rules in this package:
//   - security/tx-origin: tx.origin used for authorization
//   - security/avoid-selfdestruct: selfdestruct/suicide usage
//   - security/avoid-low-level-calls: call/delegatecall/staticcall usage
//   - security/no-block-timestamp: block.timestamp or now as a time source
//   - security/state-visibility: state variables without explicit visibility
//   - security/check-send-result: ignored send() return value
package security
