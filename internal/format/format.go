// Package format renders analysis results for terminals, scripts, and CI
// systems.
package format

import (
	"fmt"
	"io"

	"github.com/solguard-labs/solguard/pkg/lint"
)

// Formatter renders one run result to a writer.
type Formatter interface {
	Format(w io.Writer, result lint.Result) error
}

// Names of the built-in formatters.
const (
	FormatTable   = "table"
	FormatCompact = "compact"
	FormatJSON    = "json"
	FormatSARIF   = "sarif"
)

// New returns the formatter registered under name.
func New(name string) (Formatter, error) {
	switch name {
	case FormatTable, "", "text":
		return TableFormatter{}, nil
	case FormatCompact:
		return CompactFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	case FormatSARIF:
		return SARIFFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}
