package parser

import (
	"fmt"

	"github.com/solguard-labs/solguard/pkg/ast"
)

// ParseError is a syntax error with position information. In tolerant mode
// errors are collected on the Result; in strict mode the first one is
// returned.
type ParseError struct {
	Pos     ast.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}
