package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree returns a small contract tree:
//
//	SourceUnit
//	└── ContractDefinition "C"
//	    ├── StateVariableDeclaration "owner"
//	    └── FunctionDefinition "f"
//	        └── Block
//	            └── ExpressionStatement
//	                └── MemberAccess tx.origin
func buildTree() *SourceUnit {
	txOrigin := &MemberAccess{Object: &Identifier{Name: "tx"}, Member: "origin"}
	fn := &FunctionDefinition{
		FunctionKind: FnFunction,
		Name:         "f",
		Body: &Block{
			Statements: []Statement{
				&ExpressionStatement{Expression: txOrigin},
			},
		},
	}
	contract := &ContractDefinition{
		ContractKind: KindContract,
		Name:         "C",
		Members: []Node{
			&StateVariableDeclaration{TypeName: "address", Name: "owner"},
			fn,
		},
	}
	return &SourceUnit{Contracts: []*ContractDefinition{contract}}
}

func TestWalk_EnterExitPairing(t *testing.T) {
	root := buildTree()

	entered := map[Node]int{}
	exited := map[Node]int{}

	stopped := Walk(root, Visitor{
		Enter: func(n Node) Action {
			entered[n]++
			return Continue
		},
		Exit: func(n Node) {
			exited[n]++
		},
	})

	assert.False(t, stopped)
	assert.Equal(t, len(entered), len(exited), "every entered node must exit")
	for n, count := range entered {
		assert.Equal(t, 1, count, "node %s entered once", n.Kind())
		assert.Equal(t, 1, exited[n], "node %s exited once", n.Kind())
	}
}

func TestWalk_SkipChildrenStillExits(t *testing.T) {
	root := buildTree()

	var enterKinds, exitKinds []string
	Walk(root, Visitor{
		Enter: func(n Node) Action {
			enterKinds = append(enterKinds, n.Kind())
			if n.Kind() == "FunctionDefinition" {
				return SkipChildren
			}
			return Continue
		},
		Exit: func(n Node) {
			exitKinds = append(exitKinds, n.Kind())
		},
	})

	assert.NotContains(t, enterKinds, "Block", "skipped subtree must not be entered")
	assert.Contains(t, exitKinds, "FunctionDefinition", "skipped node itself still exits")
	assert.Equal(t, len(enterKinds), len(exitKinds))
}

func TestWalk_StopHaltsEverything(t *testing.T) {
	root := buildTree()

	var entersAfterStop, exitsAfterStop int
	stopping := false
	stopped := Walk(root, Visitor{
		Enter: func(n Node) Action {
			if stopping {
				entersAfterStop++
			}
			if n.Kind() == "StateVariableDeclaration" {
				stopping = true
				return Stop
			}
			return Continue
		},
		Exit: func(_ Node) {
			if stopping {
				exitsAfterStop++
			}
		},
	})

	assert.True(t, stopped)
	assert.Zero(t, entersAfterStop, "no enter may fire after Stop")
	assert.Zero(t, exitsAfterStop, "no exit may fire after Stop, ancestors included")
}

func TestWalk_NilRoot(t *testing.T) {
	assert.False(t, Walk(nil, Visitor{}))
}

// foreignNode simulates a node kind from a newer grammar this package does
// not know how to descend into.
type foreignNode struct{ span }

func (foreignNode) Kind() string     { return "SomethingNew" }
func (foreignNode) Children() []Node { return nil }

func TestWalk_UnknownShapeIsLeaf(t *testing.T) {
	var visited []string
	Walk(foreignNode{}, Visitor{
		Enter: func(n Node) Action {
			visited = append(visited, n.Kind())
			return Continue
		},
	})
	assert.Equal(t, []string{"SomethingNew"}, visited)
}

func TestFind_MatchesFirstOfFindAll(t *testing.T) {
	root := buildTree()

	preds := map[string]func(Node) bool{
		"any node":      func(Node) bool { return true },
		"member access": func(n Node) bool { return n.Kind() == "MemberAccess" },
		"no match":      func(Node) bool { return false },
		"identifiers":   func(n Node) bool { return n.Kind() == "Identifier" },
	}

	for name, pred := range preds {
		t.Run(name, func(t *testing.T) {
			all := FindAll(root, pred)
			first := Find(root, pred)
			if len(all) == 0 {
				assert.Nil(t, first)
			} else {
				assert.Same(t, all[0], first)
			}
		})
	}
}

func TestFind_StopsEarly(t *testing.T) {
	root := buildTree()

	visits := 0
	Find(root, func(n Node) bool {
		visits++
		return n.Kind() == "ContractDefinition"
	})

	// SourceUnit then ContractDefinition; nothing below the match.
	assert.Equal(t, 2, visits)
}

func TestPath(t *testing.T) {
	root := buildTree()

	target := Find(root, func(n Node) bool { return n.Kind() == "MemberAccess" })
	require.NotNil(t, target)

	path := Path(root, target)
	require.NotNil(t, path)

	kinds := make([]string, len(path))
	for i, n := range path {
		kinds[i] = n.Kind()
	}
	assert.Equal(t, []string{
		"SourceUnit",
		"ContractDefinition",
		"FunctionDefinition",
		"Block",
		"ExpressionStatement",
		"MemberAccess",
	}, kinds)

	assert.Same(t, root, path[0])
	assert.Same(t, target, path[len(path)-1])
}

func TestPath_Unreachable(t *testing.T) {
	root := buildTree()
	orphan := &Identifier{Name: "elsewhere"}
	assert.Nil(t, Path(root, orphan))
}
