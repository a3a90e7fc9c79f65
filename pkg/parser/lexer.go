package parser

import "github.com/solguard-labs/solguard/pkg/ast"

// Lexer tokenizes Solidity input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (0-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos > 0 {
		if l.ch == '\n' {
			l.line++
			l.col = 0
		} else {
			l.col++
		}
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the position of the current character.
func (l *Lexer) currentPos() ast.Position {
	return ast.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	var tok Token
	tok.Pos = pos

	switch l.ch {
	case 0:
		tok.Type = EOF
		tok.Literal = ""
		return tok
	case '(':
		tok = l.newToken(LPAREN, "(")
	case ')':
		tok = l.newToken(RPAREN, ")")
	case '{':
		tok = l.newToken(LBRACE, "{")
	case '}':
		tok = l.newToken(RBRACE, "}")
	case '[':
		tok = l.newToken(LBRACKET, "[")
	case ']':
		tok = l.newToken(RBRACKET, "]")
	case ';':
		tok = l.newToken(SEMI, ";")
	case ',':
		tok = l.newToken(COMMA, ",")
	case '.':
		tok = l.newToken(DOT, ".")
	case ':':
		tok = l.newToken(COLON, ":")
	case '?':
		tok = l.newToken(QUESTION, "?")
	case '+':
		switch l.peekChar() {
		case '+':
			l.readChar()
			tok = l.newToken(INC, "++")
		case '=':
			l.readChar()
			tok = l.newToken(ASSIGN, "+=")
		default:
			tok = l.newToken(PLUS, "+")
		}
	case '-':
		switch l.peekChar() {
		case '-':
			l.readChar()
			tok = l.newToken(DEC, "--")
		case '=':
			l.readChar()
			tok = l.newToken(ASSIGN, "-=")
		default:
			tok = l.newToken(MINUS, "-")
		}
	case '*':
		switch l.peekChar() {
		case '*':
			l.readChar()
			tok = l.newToken(POW, "**")
		case '=':
			l.readChar()
			tok = l.newToken(ASSIGN, "*=")
		default:
			tok = l.newToken(STAR, "*")
		}
	case '/':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(ASSIGN, "/=")
		} else {
			tok = l.newToken(SLASH, "/")
		}
	case '%':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(ASSIGN, "%=")
		} else {
			tok = l.newToken(PERCENT, "%")
		}
	case '=':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.newToken(EQ, "==")
		case '>':
			l.readChar()
			tok = l.newToken(ARROW, "=>")
		default:
			tok = l.newToken(ASSIGN, "=")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(NE, "!=")
		} else {
			tok = l.newToken(NOT, "!")
		}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.newToken(LE, "<=")
		case '<':
			l.readChar()
			tok = l.newToken(SHL, "<<")
		default:
			tok = l.newToken(LT, "<")
		}
	case '>':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.newToken(GE, ">=")
		case '>':
			l.readChar()
			tok = l.newToken(SHR, ">>")
		default:
			tok = l.newToken(GT, ">")
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.newToken(LAND, "&&")
		} else {
			tok = l.newToken(BITAND, "&")
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.newToken(LOR, "||")
		} else {
			tok = l.newToken(BITOR, "|")
		}
	case '^':
		tok = l.newToken(BITXOR, "^")
	case '~':
		tok = l.newToken(BITNOT, "~")
	case '"', '\'':
		return l.readString(pos)
	default:
		if isLetter(l.ch) || l.ch == '_' || l.ch == '$' {
			return l.readIdentifier(pos)
		}
		if isDigit(l.ch) {
			return l.readNumber(pos)
		}
		tok = l.newToken(ILLEGAL, string(l.ch))
	}

	tok.Pos = pos
	l.readChar()
	return tok
}

// newToken builds a token at the current position. The caller advances
// past the final character.
func (l *Lexer) newToken(t TokenType, literal string) Token {
	return Token{Type: t, Literal: literal, Pos: l.currentPos()}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(pos ast.Position) Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' {
		l.readChar()
	}
	return Token{Type: IDENT, Literal: l.input[start:l.pos], Pos: pos}
}

// readNumber reads a decimal, scientific, or hex number literal.
func (l *Lexer) readNumber(pos ast.Position) Token {
	start := l.pos

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar() // 0
		l.readChar() // x
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return Token{Type: HEX, Literal: l.input[start:l.pos], Pos: pos}
	}

	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		if isDigit(l.peekChar()) {
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return Token{Type: NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

// readString reads a single- or double-quoted string literal. An
// unterminated string ends at the line break and is reported by the parser.
func (l *Lexer) readString(pos ast.Position) Token {
	quote := l.ch
	l.readChar() // opening quote

	start := l.pos
	for l.ch != quote && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar() // skip escaped char
		}
		l.readChar()
	}

	lit := l.input[start:l.pos]
	if l.ch == quote {
		l.readChar() // closing quote
		return Token{Type: STRING, Literal: lit, Pos: pos}
	}
	return Token{Type: ILLEGAL, Literal: lit, Pos: pos}
}

// skipWhitespaceAndComments advances past whitespace, line comments, and
// block comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar() // /
			l.readChar() // *
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar() // *
				l.readChar() // /
			}
		default:
			return
		}
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
