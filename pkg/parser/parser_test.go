package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solguard-labs/solguard/pkg/ast"
)

func mustParse(t *testing.T, source string) *ast.SourceUnit {
	t.Helper()
	res, err := Parse(source, Options{Tolerant: true})
	require.NoError(t, err)
	require.NotNil(t, res.Unit)
	require.Empty(t, res.Errors, "expected a clean parse")
	return res.Unit
}

func TestParseMinimalContract(t *testing.T) {
	unit := mustParse(t, `contract Test { function test() public {} }`)

	require.Len(t, unit.Contracts, 1)
	c := unit.Contracts[0]
	assert.Equal(t, "Test", c.Name)
	assert.Equal(t, ast.KindContract, c.ContractKind)

	require.Len(t, c.Members, 1)
	fn, ok := c.Members[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "test", fn.Name)
	assert.Equal(t, "public", fn.Visibility)
	require.NotNil(t, fn.Body)
	assert.Empty(t, fn.Body.Statements)
}

func TestParsePragmaAndImports(t *testing.T) {
	unit := mustParse(t, `pragma solidity ^0.8.19;
import "./SafeMath.sol";
contract C {}
`)

	require.Len(t, unit.Pragmas, 1)
	assert.Equal(t, "solidity", unit.Pragmas[0].Name)
	assert.Equal(t, "^0.8.19", unit.Pragmas[0].Value)

	require.Len(t, unit.Imports, 1)
	assert.Equal(t, "./SafeMath.sol", unit.Imports[0].Path)

	require.Len(t, unit.Contracts, 1)
}

func TestParseTxOriginLocation(t *testing.T) {
	source := `contract Auth {
    function check() public view {
        require(tx.origin == msg.sender);
    }
}`
	unit := mustParse(t, source)

	members := ast.FindKind(unit, "MemberAccess")
	require.Len(t, members, 2)

	origin := members[0].(*ast.MemberAccess)
	assert.Equal(t, "origin", origin.Member)
	obj, ok := origin.Object.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "tx", obj.Name)

	// tx.origin sits on line 3; columns are zero-based.
	assert.Equal(t, 3, origin.Span().Start.Line)
	assert.Equal(t, 16, origin.Span().Start.Column)
}

func TestParseInheritanceAndMembers(t *testing.T) {
	source := `abstract contract Token is ERC20, Ownable {
    uint256 public totalSupply;
    address private owner;
    mapping(address => uint256) internal balances;

    event Transfer(address indexed from, address indexed to, uint256 value);

    modifier onlyOwner() {
        require(msg.sender == owner, "not owner");
        _;
    }

    constructor(uint256 supply) {
        totalSupply = supply;
    }

    function transfer(address to, uint256 amount) external returns (bool) {
        balances[to] += amount;
        emit Transfer(msg.sender, to, amount);
        return true;
    }
}`
	unit := mustParse(t, source)
	require.Len(t, unit.Contracts, 1)

	c := unit.Contracts[0]
	assert.Equal(t, []string{"ERC20", "Ownable"}, c.Inherits)
	require.Len(t, c.Members, 7)

	sv := c.Members[0].(*ast.StateVariableDeclaration)
	assert.Equal(t, "uint256", sv.TypeName)
	assert.Equal(t, "totalSupply", sv.Name)
	assert.Equal(t, "public", sv.Visibility)

	m := c.Members[2].(*ast.StateVariableDeclaration)
	assert.Equal(t, "internal", m.Visibility)
	assert.Contains(t, m.TypeName, "mapping")

	ev := c.Members[3].(*ast.EventDefinition)
	assert.Equal(t, "Transfer", ev.Name)
	require.Len(t, ev.Params, 3)
	assert.True(t, ev.Params[0].Indexed)
	assert.False(t, ev.Params[2].Indexed)

	mod := c.Members[4].(*ast.ModifierDefinition)
	assert.Equal(t, "onlyOwner", mod.Name)
	require.NotNil(t, mod.Body)

	ctor := c.Members[5].(*ast.FunctionDefinition)
	assert.Equal(t, ast.FnConstructor, ctor.FunctionKind)
	require.Len(t, ctor.Params, 1)

	fn := c.Members[6].(*ast.FunctionDefinition)
	assert.Equal(t, "transfer", fn.Name)
	assert.Equal(t, "external", fn.Visibility)
	require.Len(t, fn.Returns, 1)
	assert.Equal(t, "bool", fn.Returns[0].TypeName)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Statements, 3)

	_, ok := fn.Body.Statements[1].(*ast.EmitStatement)
	assert.True(t, ok)
}

func TestParseStatements(t *testing.T) {
	source := `contract C {
    function run(uint256 n) public returns (uint256) {
        uint256 sum = 0;
        for (uint256 i = 0; i < n; i++) {
            sum += i;
        }
        while (sum > 100) {
            sum -= 10;
        }
        if (sum == 0) {
            return 0;
        } else {
            return sum;
        }
    }
}`
	unit := mustParse(t, source)
	fn := ast.FindKind(unit, "FunctionDefinition")[0].(*ast.FunctionDefinition)
	require.Len(t, fn.Body.Statements, 4)

	decl := fn.Body.Statements[0].(*ast.VariableDeclarationStatement)
	assert.Equal(t, "sum", decl.Name)
	assert.Equal(t, "uint256", decl.TypeName)
	require.NotNil(t, decl.Value)

	loop := fn.Body.Statements[1].(*ast.ForStatement)
	require.NotNil(t, loop.Init)
	require.NotNil(t, loop.Condition)
	require.NotNil(t, loop.Post)
	post, ok := loop.Post.(*ast.UnaryExpression)
	require.True(t, ok)
	assert.Equal(t, "++", post.Op)
	assert.False(t, post.Prefix)

	_, ok = fn.Body.Statements[2].(*ast.WhileStatement)
	assert.True(t, ok)

	cond := fn.Body.Statements[3].(*ast.IfStatement)
	require.NotNil(t, cond.Else)
}

func TestParseCallOptions(t *testing.T) {
	source := `contract C {
    function send(address payable to) public {
        to.call{value: 1 ether}("");
    }
}`
	unit := mustParse(t, source)

	calls := ast.FindKind(unit, "CallExpression")
	require.Len(t, calls, 1)
	call := calls[0].(*ast.CallExpression)
	require.Len(t, call.Options, 1)

	callee, ok := call.Callee.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "call", callee.Member)

	opt, ok := call.Options[0].(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, ast.LitNumber, opt.LiteralKind)
	assert.Equal(t, "1 ether", opt.Value)
}

func TestParseExpressionPrecedence(t *testing.T) {
	source := `contract C {
    function f(uint256 a, uint256 b) public pure returns (uint256) {
        return a + b * 2;
    }
}`
	unit := mustParse(t, source)

	ret := ast.FindKind(unit, "ReturnStatement")[0].(*ast.ReturnStatement)
	add, ok := ret.Value.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op)

	mul, ok := add.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op)
}

func TestTolerantRecovery(t *testing.T) {
	// Missing semicolon after the first statement; the second statement
	// must still be reachable for analysis.
	source := `contract C {
    function f() public {
        uint256 a = 1
        selfdestruct(payable(msg.sender));
    }
}`
	res, err := Parse(source, Options{Tolerant: true})
	require.NoError(t, err)
	require.NotNil(t, res.Unit)
	assert.NotEmpty(t, res.Errors)

	found := false
	for _, n := range ast.FindKind(res.Unit, "Identifier") {
		if n.(*ast.Identifier).Name == "selfdestruct" {
			found = true
		}
	}
	assert.True(t, found, "statement after the syntax error should survive")
}

func TestTolerantGarbageInput(t *testing.T) {
	res, err := Parse(`this is not solidity at all $$$`, Options{Tolerant: true})
	require.NoError(t, err)
	require.NotNil(t, res.Unit)
	assert.NotEmpty(t, res.Errors)
	assert.Empty(t, res.Unit.Contracts)
	assert.Empty(t, res.Unit.Pragmas)
	assert.Empty(t, res.Unit.Imports)
}

func TestStrictModeReturnsFirstError(t *testing.T) {
	res, err := Parse(`contract { }`, Options{})
	require.Error(t, err)
	assert.Nil(t, res)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Contains(t, perr.Message, "name")
}

func TestErrorPositions(t *testing.T) {
	source := "contract C {\n    uint256 x\n}"
	res, err := Parse(source, Options{Tolerant: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, 3, res.Errors[0].Pos.Line)
}
