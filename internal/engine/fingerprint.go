package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ruleSetSignature serializes the effective rule set into a stable string.
// Two engines with the same rules, severities, and options produce the same
// signature, so a configuration change invalidates every cached entry built
// under the old one.
func ruleSetSignature(bindings []ruleBinding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		opts := ""
		if len(b.options) > 0 {
			// json.Marshal sorts map keys, so the encoding is stable.
			raw, err := json.Marshal(b.options)
			if err == nil {
				opts = string(raw)
			}
		}
		parts = append(parts, fmt.Sprintf("%s=%d%s", b.meta.ID, b.severity, opts))
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// fingerprint hashes file content together with the rule-set signature.
func fingerprint(content []byte, signature string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(signature))
	return hex.EncodeToString(h.Sum(nil))
}
