package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solguard-labs/solguard/pkg/ast"
)

func TestContextReport(t *testing.T) {
	unit := &ast.SourceUnit{}
	fc := NewFileContext("contracts/Token.sol", "contract Token {}", unit)

	meta := RuleMetadata{ID: "security/tx-origin", Category: CategorySecurity}
	ctx := fc.For(meta, SeverityError, nil)

	node := &ast.Identifier{Name: "tx"}
	node.Loc = ast.Span{
		Start: ast.Position{Line: 3, Column: 16},
		End:   ast.Position{Line: 3, Column: 18},
	}
	ctx.Report(node, "avoid tx.origin")

	issues := fc.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, "security/tx-origin", issues[0].RuleID)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, "security", issues[0].Category)
	assert.Equal(t, "contracts/Token.sol", issues[0].FilePath)
	assert.Equal(t, 3, issues[0].Location.Start.Line)
	assert.Equal(t, 16, issues[0].Location.Start.Column)
}

func TestContextIssueOrderAcrossRules(t *testing.T) {
	fc := NewFileContext("a.sol", "", &ast.SourceUnit{})

	first := fc.For(RuleMetadata{ID: "a/first"}, SeverityWarning, nil)
	second := fc.For(RuleMetadata{ID: "a/second"}, SeverityWarning, nil)

	first.ReportAt(ast.Span{}, "one")
	second.ReportAt(ast.Span{}, "two")
	first.ReportAt(ast.Span{}, "three")

	issues := fc.Issues()
	require.Len(t, issues, 3)
	assert.Equal(t, "one", issues[0].Message)
	assert.Equal(t, "two", issues[1].Message)
	assert.Equal(t, "three", issues[2].Message)
}

func TestContextOptions(t *testing.T) {
	fc := NewFileContext("a.sol", "", &ast.SourceUnit{})
	ctx := fc.For(RuleMetadata{ID: "practices/max-states-count"}, SeverityWarning, map[string]any{
		"max":     float64(20), // JSON decoding yields float64
		"prefix":  "st",
		"strict":  true,
		"ignored": []any{"a", "b"},
	})

	assert.Equal(t, 20, ctx.IntOption("max", 15))
	assert.Equal(t, 15, ctx.IntOption("missing", 15))
	assert.Equal(t, "st", ctx.StringOption("prefix", ""))
	assert.True(t, ctx.BoolOption("strict", false))
	assert.Equal(t, []string{"a", "b"}, ctx.StringSliceOption("ignored", nil))
}
