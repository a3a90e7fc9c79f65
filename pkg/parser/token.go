package parser

import "github.com/solguard-labs/solguard/pkg/ast"

// TokenType identifies the lexical class of a token.
type TokenType int

// Token types.
const (
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // owner, transfer
	NUMBER // 123, 0.5, 1e18
	STRING // "hello"
	HEX    // 0xdeadbeef

	// Punctuation
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	SEMI     // ;
	COMMA    // ,
	DOT      // .
	COLON    // :
	QUESTION // ?
	ARROW    // =>

	// Operators
	ASSIGN  // = and compound forms (+=, -=, ...); Literal holds the exact form
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	POW     // **
	EQ      // ==
	NE      // !=
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=
	LAND    // &&
	LOR     // ||
	NOT     // !
	BITAND  // &
	BITOR   // |
	BITXOR  // ^
	BITNOT  // ~
	SHL     // <<
	SHR     // >>
	INC     // ++
	DEC     // --
)

// Token is one lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     ast.Position
}

// keywords are the Solidity keywords the parser branches on. Everything
// else lexes as IDENT and is interpreted contextually.
var keywords = map[string]bool{
	"pragma": true, "import": true,
	"contract": true, "interface": true, "library": true, "abstract": true,
	"function": true, "modifier": true, "event": true, "constructor": true,
	"fallback": true, "receive": true, "returns": true, "return": true,
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"emit": true, "new": true, "delete": true, "is": true, "using": true,
	"struct": true, "enum": true, "mapping": true,
	"public": true, "private": true, "internal": true, "external": true,
	"pure": true, "view": true, "payable": true,
	"constant": true, "immutable": true, "virtual": true, "override": true,
	"memory": true, "storage": true, "calldata": true, "indexed": true,
	"anonymous": true, "unchecked": true,
	"true": true, "false": true,
}

// IsKeyword reports whether the identifier literal is a Solidity keyword.
func IsKeyword(lit string) bool {
	return keywords[lit]
}
