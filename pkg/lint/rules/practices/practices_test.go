package practices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solguard-labs/solguard/pkg/lint"
	"github.com/solguard-labs/solguard/pkg/parser"
)

func runRule(t *testing.T, rule lint.Rule, source string, options map[string]any) []lint.Issue {
	t.Helper()
	res, err := parser.Parse(source, parser.Options{Tolerant: true})
	require.NoError(t, err)
	require.Empty(t, res.Errors)

	fc := lint.NewFileContext("test.sol", source, res.Unit)
	require.NoError(t, rule.Analyze(fc.For(rule.Metadata(), rule.Metadata().DefaultSeverity, options)))
	return fc.Issues()
}

func TestNoEmptyBlocks(t *testing.T) {
	source := `contract Empty {}
interface IEmpty {}
contract C {
    function noop() public {}
    function works() public { doSomething(); }
    receive() external payable {}
    constructor() payable {}
}`
	issues := runRule(t, NoEmptyBlocks, source, nil)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, `"Empty"`)
	assert.Contains(t, issues[1].Message, `"noop"`)
}

func TestNoEmptyBlocksConstructorWithBase(t *testing.T) {
	source := `contract C is Base {
    constructor() Base(1) {}
}`
	assert.Empty(t, runRule(t, NoEmptyBlocks, source, nil))
}

func TestMaxStatesCount(t *testing.T) {
	source := `contract C {
    uint256 a; uint256 b; uint256 c;
    uint256 constant LIMIT = 10;
}`

	// Constants do not occupy storage and are not counted.
	assert.Empty(t, runRule(t, MaxStatesCount, source, map[string]any{"max": 3}))

	issues := runRule(t, MaxStatesCount, source, map[string]any{"max": 2})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "3 state variables")
	assert.Contains(t, issues[0].Message, "limit is 2")
}

func TestExplicitPragma(t *testing.T) {
	withPragma := `pragma solidity ^0.8.0;
contract C { uint256 public x; }`
	assert.Empty(t, runRule(t, ExplicitPragma, withPragma, nil))

	withoutPragma := `contract C { uint256 public x; }`
	issues := runRule(t, ExplicitPragma, withoutPragma, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "practices/explicit-pragma", issues[0].RuleID)

	otherPragma := `pragma abicoder v2;
contract C { uint256 public x; }`
	require.Len(t, runRule(t, ExplicitPragma, otherPragma, nil), 1)
}
