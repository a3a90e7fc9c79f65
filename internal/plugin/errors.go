package plugin

import "fmt"

// ErrorCode classifies plugin validation and loading failures.
type ErrorCode string

// Plugin error codes.
const (
	// CodeInvalidStructure marks a candidate that is not a plugin-shaped
	// value at all, or has a malformed setup/teardown.
	CodeInvalidStructure ErrorCode = "INVALID_STRUCTURE"
	// CodeMissingMetadata marks a missing or malformed meta block.
	CodeMissingMetadata ErrorCode = "MISSING_METADATA"
	// CodeInvalidRule marks a rules entry that is not a rule.
	CodeInvalidRule ErrorCode = "INVALID_RULE"
	// CodeInvalidPreset marks a presets entry that is not a preset.
	CodeInvalidPreset ErrorCode = "INVALID_PRESET"
	// CodeLoadFailed marks a module that could not be read or executed.
	CodeLoadFailed ErrorCode = "LOAD_FAILED"
	// CodeDuplicateRule marks a namespaced rule ID that is already taken.
	CodeDuplicateRule ErrorCode = "DUPLICATE_RULE"
)

// ValidationError is one violation found while validating or loading a
// plugin. Validation collects every violation in one pass rather than
// failing fast, so a host can report all of them at once.
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Path    string    `json:"path,omitempty"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
