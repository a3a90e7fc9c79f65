package format

import (
	"encoding/json"
	"io"

	"github.com/solguard-labs/solguard/pkg/lint"
)

// JSONFormatter emits the run result on the stable wire schema.
type JSONFormatter struct{}

func (JSONFormatter) Format(w io.Writer, result lint.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
