// Package ast defines the Solidity syntax tree used by the analyzer.
//
// The tree is a closed set of node variants. Every variant implements
// Children(), so traversal never discovers structure by reflection; adding
// a variant without wiring its children is a compile-time visible gap in
// this file rather than a silent traversal hole.
package ast

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Kind returns the variant name, e.g. "ContractDefinition".
	Kind() string

	// Span returns the source range covered by the node.
	Span() Span

	// Children returns the node's direct children in source field order.
	// Absent (nil) children are filtered out.
	Children() []Node
}

// Statement is implemented by statement nodes.
type Statement interface {
	Node
	stmtNode()
}

// Expression is implemented by expression nodes.
type Expression interface {
	Node
	exprNode()
}

// span is embedded by all concrete nodes to provide Span().
type span struct {
	Loc Span
}

func (s span) Span() Span { return s.Loc }

// collect appends the non-nil nodes to out. Typed nil pointers arrive here
// as non-nil interfaces, so concrete Children() implementations pass only
// fields they have checked.
func collect(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// --- Source-level nodes ---

// SourceUnit is the root node for one Solidity file.
type SourceUnit struct {
	span
	Pragmas   []*PragmaDirective
	Imports   []*ImportDirective
	Contracts []*ContractDefinition
}

func (n *SourceUnit) Kind() string { return "SourceUnit" }

func (n *SourceUnit) Children() []Node {
	out := make([]Node, 0, len(n.Pragmas)+len(n.Imports)+len(n.Contracts))
	for _, p := range n.Pragmas {
		out = append(out, p)
	}
	for _, i := range n.Imports {
		out = append(out, i)
	}
	for _, c := range n.Contracts {
		out = append(out, c)
	}
	return out
}

// PragmaDirective is a `pragma solidity ^0.8.0;` directive.
type PragmaDirective struct {
	span
	Name  string // e.g. "solidity"
	Value string // e.g. "^0.8.0"
}

func (n *PragmaDirective) Kind() string     { return "PragmaDirective" }
func (n *PragmaDirective) Children() []Node { return nil }

// ImportDirective is an `import "./Foo.sol";` directive.
type ImportDirective struct {
	span
	Path string
}

func (n *ImportDirective) Kind() string     { return "ImportDirective" }
func (n *ImportDirective) Children() []Node { return nil }

// ContractKind distinguishes contract-like declarations.
type ContractKind string

// Contract kinds.
const (
	KindContract  ContractKind = "contract"
	KindInterface ContractKind = "interface"
	KindLibrary   ContractKind = "library"
)

// ContractDefinition is a contract, interface, or library declaration.
type ContractDefinition struct {
	span
	ContractKind ContractKind
	Name         string
	Inherits     []string // base contract names from the `is` clause
	Members      []Node   // state variables, functions, events, modifiers in source order
}

func (n *ContractDefinition) Kind() string     { return "ContractDefinition" }
func (n *ContractDefinition) Children() []Node { return collect(n.Members...) }

// StateVariableDeclaration is a contract-level variable declaration.
type StateVariableDeclaration struct {
	span
	TypeName   string
	Name       string
	Visibility string // "public", "internal", "private", or "" when omitted
	Constant   bool
	Immutable  bool
	Value      Expression // nil when uninitialized
}

func (n *StateVariableDeclaration) Kind() string { return "StateVariableDeclaration" }

func (n *StateVariableDeclaration) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

// FunctionKind distinguishes function-like members.
type FunctionKind string

// Function kinds.
const (
	FnFunction    FunctionKind = "function"
	FnConstructor FunctionKind = "constructor"
	FnFallback    FunctionKind = "fallback"
	FnReceive     FunctionKind = "receive"
)

// FunctionDefinition is a function, constructor, fallback, or receive member.
type FunctionDefinition struct {
	span
	FunctionKind FunctionKind
	Name         string // empty for constructor/fallback/receive
	Params       []*Parameter
	Returns      []*Parameter
	Visibility   string // "public", "external", "internal", "private", or ""
	Mutability   string // "view", "pure", "payable", or ""
	Modifiers    []*ModifierInvocation
	Body         *Block // nil for declarations without a body
}

func (n *FunctionDefinition) Kind() string { return "FunctionDefinition" }

func (n *FunctionDefinition) Children() []Node {
	out := make([]Node, 0, len(n.Params)+len(n.Returns)+len(n.Modifiers)+1)
	for _, p := range n.Params {
		out = append(out, p)
	}
	for _, r := range n.Returns {
		out = append(out, r)
	}
	for _, m := range n.Modifiers {
		out = append(out, m)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// ModifierDefinition is a `modifier onlyOwner() { ... }` member.
type ModifierDefinition struct {
	span
	Name   string
	Params []*Parameter
	Body   *Block
}

func (n *ModifierDefinition) Kind() string { return "ModifierDefinition" }

func (n *ModifierDefinition) Children() []Node {
	out := make([]Node, 0, len(n.Params)+1)
	for _, p := range n.Params {
		out = append(out, p)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// ModifierInvocation is a modifier applied to a function header.
type ModifierInvocation struct {
	span
	Name string
	Args []Expression
}

func (n *ModifierInvocation) Kind() string { return "ModifierInvocation" }

func (n *ModifierInvocation) Children() []Node {
	out := make([]Node, 0, len(n.Args))
	for _, a := range n.Args {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// EventDefinition is an `event Transfer(...)` member.
type EventDefinition struct {
	span
	Name   string
	Params []*Parameter
}

func (n *EventDefinition) Kind() string { return "EventDefinition" }

func (n *EventDefinition) Children() []Node {
	out := make([]Node, 0, len(n.Params))
	for _, p := range n.Params {
		out = append(out, p)
	}
	return out
}

// Parameter is one function/event parameter or return value.
type Parameter struct {
	span
	TypeName string
	Name     string // may be empty
	Indexed  bool   // event parameters only
}

func (n *Parameter) Kind() string     { return "Parameter" }
func (n *Parameter) Children() []Node { return nil }

// --- Statements ---

// Block is a `{ ... }` statement list.
type Block struct {
	span
	Statements []Statement
}

func (n *Block) Kind() string { return "Block" }
func (n *Block) stmtNode()    {}

func (n *Block) Children() []Node {
	out := make([]Node, 0, len(n.Statements))
	for _, s := range n.Statements {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	span
	Expression Expression
}

func (n *ExpressionStatement) Kind() string { return "ExpressionStatement" }
func (n *ExpressionStatement) stmtNode()    {}

func (n *ExpressionStatement) Children() []Node {
	if n.Expression == nil {
		return nil
	}
	return []Node{n.Expression}
}

// VariableDeclarationStatement is a local variable declaration.
type VariableDeclarationStatement struct {
	span
	TypeName string
	Name     string
	Value    Expression // nil when uninitialized
}

func (n *VariableDeclarationStatement) Kind() string { return "VariableDeclarationStatement" }
func (n *VariableDeclarationStatement) stmtNode()    {}

func (n *VariableDeclarationStatement) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

// IfStatement is an if/else statement.
type IfStatement struct {
	span
	Condition Expression
	Then      Statement
	Else      Statement // nil when absent
}

func (n *IfStatement) Kind() string { return "IfStatement" }
func (n *IfStatement) stmtNode()    {}

func (n *IfStatement) Children() []Node {
	out := make([]Node, 0, 3)
	if n.Condition != nil {
		out = append(out, n.Condition)
	}
	if n.Then != nil {
		out = append(out, n.Then)
	}
	if n.Else != nil {
		out = append(out, n.Else)
	}
	return out
}

// ForStatement is a for loop.
type ForStatement struct {
	span
	Init      Statement  // nil when omitted
	Condition Expression // nil when omitted
	Post      Expression // nil when omitted
	Body      Statement
}

func (n *ForStatement) Kind() string { return "ForStatement" }
func (n *ForStatement) stmtNode()    {}

func (n *ForStatement) Children() []Node {
	out := make([]Node, 0, 4)
	if n.Init != nil {
		out = append(out, n.Init)
	}
	if n.Condition != nil {
		out = append(out, n.Condition)
	}
	if n.Post != nil {
		out = append(out, n.Post)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// WhileStatement is a while loop.
type WhileStatement struct {
	span
	Condition Expression
	Body      Statement
}

func (n *WhileStatement) Kind() string { return "WhileStatement" }
func (n *WhileStatement) stmtNode()    {}

func (n *WhileStatement) Children() []Node {
	out := make([]Node, 0, 2)
	if n.Condition != nil {
		out = append(out, n.Condition)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// ReturnStatement is a return statement.
type ReturnStatement struct {
	span
	Value Expression // nil for bare return
}

func (n *ReturnStatement) Kind() string { return "ReturnStatement" }
func (n *ReturnStatement) stmtNode()    {}

func (n *ReturnStatement) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

// EmitStatement is an `emit Event(...)` statement.
type EmitStatement struct {
	span
	Call *CallExpression
}

func (n *EmitStatement) Kind() string { return "EmitStatement" }
func (n *EmitStatement) stmtNode()    {}

func (n *EmitStatement) Children() []Node {
	if n.Call == nil {
		return nil
	}
	return []Node{n.Call}
}

// --- Expressions ---

// Identifier is a name reference.
type Identifier struct {
	span
	Name string
}

func (n *Identifier) Kind() string     { return "Identifier" }
func (n *Identifier) exprNode()        {}
func (n *Identifier) Children() []Node { return nil }

// MemberAccess is `object.member`, e.g. `tx.origin` or `msg.sender`.
type MemberAccess struct {
	span
	Object Expression
	Member string
}

func (n *MemberAccess) Kind() string { return "MemberAccess" }
func (n *MemberAccess) exprNode()    {}

func (n *MemberAccess) Children() []Node {
	if n.Object == nil {
		return nil
	}
	return []Node{n.Object}
}

// IndexAccess is `object[index]`.
type IndexAccess struct {
	span
	Object Expression
	Index  Expression // nil for `type[]` forms
}

func (n *IndexAccess) Kind() string { return "IndexAccess" }
func (n *IndexAccess) exprNode()    {}

func (n *IndexAccess) Children() []Node {
	out := make([]Node, 0, 2)
	if n.Object != nil {
		out = append(out, n.Object)
	}
	if n.Index != nil {
		out = append(out, n.Index)
	}
	return out
}

// CallExpression is `callee(args...)`, including call options like
// `addr.call{value: 1}(data)`.
type CallExpression struct {
	span
	Callee  Expression
	Args    []Expression
	Options []Expression // expressions inside `{ ... }` call options
}

func (n *CallExpression) Kind() string { return "CallExpression" }
func (n *CallExpression) exprNode()    {}

func (n *CallExpression) Children() []Node {
	out := make([]Node, 0, 1+len(n.Options)+len(n.Args))
	if n.Callee != nil {
		out = append(out, n.Callee)
	}
	for _, o := range n.Options {
		if o != nil {
			out = append(out, o)
		}
	}
	for _, a := range n.Args {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// BinaryExpression is a binary operation, including assignments.
type BinaryExpression struct {
	span
	Op    string
	Left  Expression
	Right Expression
}

func (n *BinaryExpression) Kind() string { return "BinaryExpression" }
func (n *BinaryExpression) exprNode()    {}

func (n *BinaryExpression) Children() []Node {
	out := make([]Node, 0, 2)
	if n.Left != nil {
		out = append(out, n.Left)
	}
	if n.Right != nil {
		out = append(out, n.Right)
	}
	return out
}

// UnaryExpression is a prefix or postfix unary operation.
type UnaryExpression struct {
	span
	Op      string
	Operand Expression
	Prefix  bool
}

func (n *UnaryExpression) Kind() string { return "UnaryExpression" }
func (n *UnaryExpression) exprNode()    {}

func (n *UnaryExpression) Children() []Node {
	if n.Operand == nil {
		return nil
	}
	return []Node{n.Operand}
}

// LiteralKind distinguishes literal flavors.
type LiteralKind string

// Literal kinds.
const (
	LitNumber LiteralKind = "number"
	LitString LiteralKind = "string"
	LitBool   LiteralKind = "bool"
	LitHex    LiteralKind = "hex"
)

// Literal is a literal value.
type Literal struct {
	span
	LiteralKind LiteralKind
	Value       string
}

func (n *Literal) Kind() string     { return "Literal" }
func (n *Literal) exprNode()        {}
func (n *Literal) Children() []Node { return nil }

// TupleExpression is a parenthesized expression list, including the
// single-element grouping form.
type TupleExpression struct {
	span
	Elements []Expression
}

func (n *TupleExpression) Kind() string { return "TupleExpression" }
func (n *TupleExpression) exprNode()    {}

func (n *TupleExpression) Children() []Node {
	out := make([]Node, 0, len(n.Elements))
	for _, e := range n.Elements {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
