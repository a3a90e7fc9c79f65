package security

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

func TestTxOrigin(t *testing.T) {
	source := `contract Auth {
    address owner;
    function check() public view {
        require(tx.origin == msg.sender);
    }
}`
	issues := runRule(t, TxOrigin, source)
	require.Len(t, issues, 1)
	assert.Equal(t, "security/tx-origin", issues[0].RuleID)
	assert.Equal(t, lint.SeverityError, issues[0].Severity)
	assert.Equal(t, 4, issues[0].Location.Start.Line)
}

func TestTxOriginIgnoresOtherOrigins(t *testing.T) {
	source := `contract C {
    function f(address tx2) public view returns (address) {
        return msg.sender;
    }
}`
	assert.Empty(t, runRule(t, TxOrigin, source))
}

func TestAvoidSelfdestruct(t *testing.T) {
	source := `contract C {
    function destroy() public {
        selfdestruct(payable(msg.sender));
    }
    function old() public {
        suicide(msg.sender);
    }
}`
	issues := runRule(t, AvoidSelfdestruct, source)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, "selfdestruct")
	assert.Contains(t, issues[1].Message, "suicide")
}

func TestAvoidLowLevelCalls(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{
			name: "call with options",
			source: `contract C { function f(address a) public {
                a.call{value: 1 ether}("");
            } }`,
			want: 1,
		},
		{
			name: "delegatecall",
			source: `contract C { function f(address a, bytes data) public {
                a.delegatecall(data);
            } }`,
			want: 1,
		},
		{
			name: "interface call is fine",
			source: `contract C { function f(IToken t) public {
                t.transfer(msg.sender, 1);
            } }`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, runRule(t, AvoidLowLevelCalls, tt.source), tt.want)
		})
	}
}

func TestNoBlockTimestamp(t *testing.T) {
	source := `contract C {
    uint256 deadline;
    function late() public view returns (bool) {
        return block.timestamp > deadline;
    }
    function legacyLate() public view returns (bool) {
        return now > deadline;
    }
}`
	issues := runRule(t, NoBlockTimestamp, source)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, "block.timestamp")
	assert.Contains(t, issues[1].Message, "now")
}

func TestStateVisibility(t *testing.T) {
	source := `contract C {
    uint256 total;
    uint256 public supply;
    address private owner;
}`
	issues := runRule(t, StateVisibility, source)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `"total"`)
	assert.Equal(t, 2, issues[0].Location.Start.Line)
}

func TestCheckSendResult(t *testing.T) {
	source := `contract C {
    function pay(address payable to) public {
        to.send(100);
    }
    function payChecked(address payable to) public {
        require(to.send(100));
    }
    function payAssigned(address payable to) public returns (bool) {
        bool ok = to.send(100);
        return ok;
    }
}`
	issues := runRule(t, CheckSendResult, source)
	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Location.Start.Line)
}
