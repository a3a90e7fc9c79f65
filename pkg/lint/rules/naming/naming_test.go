package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solguard-labs/solguard/pkg/lint"
	"github.com/solguard-labs/solguard/pkg/parser"
)

func runRule(t *testing.T, rule lint.Rule, source string) []lint.Issue {
	t.Helper()
	res, err := parser.Parse(source, parser.Options{Tolerant: true})
	require.NoError(t, err)
	require.Empty(t, res.Errors)

	fc := lint.NewFileContext("test.sol", source, res.Unit)
	require.NoError(t, rule.Analyze(fc.For(rule.Metadata(), rule.Metadata().DefaultSeverity, nil)))
	return fc.Issues()
}

func TestCaseHelpers(t *testing.T) {
	tests := []struct {
		name   string
		pascal bool
		mixed  bool
		snake  bool
	}{
		{name: "TokenVault", pascal: true},
		{name: "ERC20Token", pascal: true},
		{name: "tokenVault", mixed: true},
		{name: "_internalName", mixed: true},
		{name: "MAX_SUPPLY", snake: true},
		{name: "_MAX_SUPPLY", snake: true},
		{name: "token_vault"},
		{name: "Token_Vault"},
		{name: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pascal, isPascalCase(tt.name), "pascal")
			assert.Equal(t, tt.mixed, isMixedCase(tt.name), "mixed")
			assert.Equal(t, tt.snake, isUpperSnakeCase(tt.name), "snake")
		})
	}
}

func TestContractNamePascalCase(t *testing.T) {
	source := `contract tokenVault {}
interface IToken {}
library safe_math {}`
	issues := runRule(t, ContractNamePascalCase, source)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, `"tokenVault"`)
	assert.Contains(t, issues[1].Message, `"safe_math"`)
	assert.Contains(t, issues[1].Message, "library")
}

func TestFuncNameMixedCase(t *testing.T) {
	source := `contract C {
    function transferFrom(address a) public {}
    function Transfer_To(address a) public {}
    function _burn(uint256 n) internal {}
    constructor() {}
}`
	issues := runRule(t, FuncNameMixedCase, source)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `"Transfer_To"`)
}

func TestVarNameMixedCase(t *testing.T) {
	source := `contract C {
    uint256 public totalSupply;
    uint256 public Total_Count;
    uint256 public constant MAX_SUPPLY = 1000;
    uint256 public constant badConstant = 1;
    function f() public {
        uint256 localValue = 1;
        uint256 Bad_Local = 2;
    }
}`
	issues := runRule(t, VarNameMixedCase, source)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, `"Total_Count"`)
	assert.Contains(t, issues[1].Message, `"Bad_Local"`)
}
