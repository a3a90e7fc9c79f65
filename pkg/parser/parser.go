// Package parser implements a tolerant recursive-descent parser for a
// practical subset of Solidity.
//
// Tolerant mode returns a best-effort partial tree plus every syntax error
// collected along the way; it never fails outright. Strict mode returns the
// first syntax error. Analysis rules consume whatever tree was recovered,
// so a missing semicolon does not silence an entire file.
package parser

import (
	"fmt"
	"strings"

	"github.com/solguard-labs/solguard/pkg/ast"
)

// maxErrors caps collected errors so pathological input cannot balloon the
// error list.
const maxErrors = 64

// Options configures a parse.
type Options struct {
	// Tolerant collects errors and keeps going instead of failing on the
	// first syntax error.
	Tolerant bool

	// Filename is used in error messages only.
	Filename string
}

// Result is the outcome of a tolerant parse.
type Result struct {
	// Unit is the (possibly partial) syntax tree. Never nil in tolerant
	// mode.
	Unit *ast.SourceUnit

	// Errors are the syntax errors encountered, in source order.
	Errors []*ParseError
}

// Parse parses Solidity source. In tolerant mode the returned error is
// always nil; in strict mode the first syntax error is returned and the
// result is nil.
func Parse(source string, opts Options) (*Result, error) {
	p := newParser(source)
	unit := p.parseSourceUnit()

	res := &Result{Unit: unit, Errors: p.errors}
	if !opts.Tolerant && len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return res, nil
}

// Parser holds parse state for one source file.
type Parser struct {
	lexer  *Lexer
	cur    Token
	peek   Token
	errors []*ParseError
}

func newParser(source string) *Parser {
	p := &Parser{lexer: NewLexer(source)}
	p.next()
	p.next()
	return p
}

// next advances the token window.
func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

// errorf records a syntax error at the given position.
func (p *Parser) errorf(pos ast.Position, format string, args ...any) {
	if len(p.errors) >= maxErrors {
		return
	}
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// expect consumes the current token if it has the wanted type; otherwise it
// records an error and leaves the token in place.
func (p *Parser) expect(t TokenType, what string) bool {
	if p.cur.Type == t {
		p.next()
		return true
	}
	p.errorf(p.cur.Pos, "expected %s, found %q", what, p.cur.Literal)
	return false
}

// at reports whether the current token is the given keyword.
func (p *Parser) at(keyword string) bool {
	return p.cur.Type == IDENT && p.cur.Literal == keyword
}

// accept consumes the current token if it is the given keyword.
func (p *Parser) accept(keyword string) bool {
	if p.at(keyword) {
		p.next()
		return true
	}
	return false
}

// spanFrom builds a span from a start position to the end of the previous
// token (approximated by the current token's start).
func (p *Parser) spanFrom(start ast.Position) ast.Span {
	return ast.Span{Start: start, End: p.cur.Pos}
}

// --- Source unit ---

func (p *Parser) parseSourceUnit() *ast.SourceUnit {
	start := p.cur.Pos
	unit := &ast.SourceUnit{}

	for p.cur.Type != EOF {
		switch {
		case p.at("pragma"):
			if d := p.parsePragma(); d != nil {
				unit.Pragmas = append(unit.Pragmas, d)
			}
		case p.at("import"):
			if d := p.parseImport(); d != nil {
				unit.Imports = append(unit.Imports, d)
			}
		case p.at("contract") || p.at("interface") || p.at("library") || p.at("abstract"):
			if c := p.parseContract(); c != nil {
				unit.Contracts = append(unit.Contracts, c)
			}
		default:
			p.errorf(p.cur.Pos, "expected pragma, import, or contract declaration, found %q", p.cur.Literal)
			p.recoverTopLevel()
		}
	}

	unit.Loc = p.spanFrom(start)
	return unit
}

// recoverTopLevel skips tokens until the next plausible top-level start.
func (p *Parser) recoverTopLevel() {
	for p.cur.Type != EOF {
		if p.at("pragma") || p.at("import") || p.at("contract") || p.at("interface") || p.at("library") || p.at("abstract") {
			return
		}
		p.next()
	}
}

func (p *Parser) parsePragma() *ast.PragmaDirective {
	start := p.cur.Pos
	p.next() // pragma

	d := &ast.PragmaDirective{}
	if p.cur.Type == IDENT {
		d.Name = p.cur.Literal
		p.next()
	}

	// Collect the raw pragma value up to the semicolon.
	var parts []string
	for p.cur.Type != SEMI && p.cur.Type != EOF && p.cur.Type != LBRACE {
		parts = append(parts, p.cur.Literal)
		p.next()
	}
	d.Value = strings.Join(parts, "")
	p.expect(SEMI, "';' after pragma")

	d.Loc = p.spanFrom(start)
	return d
}

func (p *Parser) parseImport() *ast.ImportDirective {
	start := p.cur.Pos
	p.next() // import

	d := &ast.ImportDirective{}
	if p.cur.Type == STRING {
		d.Path = p.cur.Literal
		p.next()
	}
	// Skip the rest of complex import forms ({...} from "path", as name).
	for p.cur.Type != SEMI && p.cur.Type != EOF {
		if p.cur.Type == STRING && d.Path == "" {
			d.Path = p.cur.Literal
		}
		p.next()
	}
	p.expect(SEMI, "';' after import")

	d.Loc = p.spanFrom(start)
	return d
}

// --- Contracts ---

func (p *Parser) parseContract() *ast.ContractDefinition {
	start := p.cur.Pos
	p.accept("abstract")

	kind := ast.KindContract
	switch {
	case p.accept("contract"):
		kind = ast.KindContract
	case p.accept("interface"):
		kind = ast.KindInterface
	case p.accept("library"):
		kind = ast.KindLibrary
	default:
		p.errorf(p.cur.Pos, "expected contract, interface, or library, found %q", p.cur.Literal)
		p.next()
		return nil
	}

	c := &ast.ContractDefinition{ContractKind: kind}
	if p.cur.Type == IDENT && !IsKeyword(p.cur.Literal) {
		c.Name = p.cur.Literal
		p.next()
	} else {
		p.errorf(p.cur.Pos, "expected %s name, found %q", kind, p.cur.Literal)
	}

	if p.accept("is") {
		for p.cur.Type == IDENT {
			c.Inherits = append(c.Inherits, p.parseDottedName())
			// Base constructor arguments are irrelevant to the tree shape.
			if p.cur.Type == LPAREN {
				p.skipBalanced(LPAREN, RPAREN)
			}
			if !p.acceptToken(COMMA) {
				break
			}
		}
	}

	if !p.expect(LBRACE, "'{' to open "+string(kind)+" body") {
		p.recoverTopLevel()
		c.Loc = p.spanFrom(start)
		return c
	}

	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		before := p.cur
		if m := p.parseMember(); m != nil {
			c.Members = append(c.Members, m)
		}
		// Guarantee progress even when a member parse consumed nothing.
		if p.cur == before {
			p.next()
		}
	}
	p.expect(RBRACE, "'}' to close "+string(kind)+" body")

	c.Loc = p.spanFrom(start)
	return c
}

func (p *Parser) acceptToken(t TokenType) bool {
	if p.cur.Type == t {
		p.next()
		return true
	}
	return false
}

// skipBalanced consumes from an opening token through its matching close.
func (p *Parser) skipBalanced(open, close TokenType) {
	depth := 0
	for p.cur.Type != EOF {
		switch p.cur.Type {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

func (p *Parser) parseMember() ast.Node {
	switch {
	case p.at("function"), p.at("constructor"), p.at("fallback"), p.at("receive"):
		return p.parseFunction()
	case p.at("modifier"):
		return p.parseModifier()
	case p.at("event"):
		return p.parseEvent()
	case p.at("struct"), p.at("enum"):
		// Struct and enum bodies carry no analyzable statements; skip them
		// without recording members.
		p.next()
		if p.cur.Type == IDENT {
			p.next()
		}
		if p.cur.Type == LBRACE {
			p.skipBalanced(LBRACE, RBRACE)
		}
		return nil
	case p.at("using"):
		p.skipToSemi()
		return nil
	default:
		return p.parseStateVariable()
	}
}

func (p *Parser) skipToSemi() {
	for p.cur.Type != SEMI && p.cur.Type != EOF && p.cur.Type != RBRACE {
		p.next()
	}
	p.acceptToken(SEMI)
}

// --- State variables ---

func (p *Parser) parseStateVariable() ast.Node {
	start := p.cur.Pos

	typeName, ok := p.parseTypeName()
	if !ok {
		p.errorf(start, "expected member declaration, found %q", p.cur.Literal)
		p.skipToSemi()
		return nil
	}

	v := &ast.StateVariableDeclaration{TypeName: typeName}
	for {
		switch {
		case p.accept("public"):
			v.Visibility = "public"
		case p.accept("internal"):
			v.Visibility = "internal"
		case p.accept("private"):
			v.Visibility = "private"
		case p.accept("constant"):
			v.Constant = true
		case p.accept("immutable"):
			v.Immutable = true
		case p.accept("override"):
			// no tree representation
		default:
			goto name
		}
	}

name:
	if p.cur.Type == IDENT && !IsKeyword(p.cur.Literal) {
		v.Name = p.cur.Literal
		p.next()
	} else {
		p.errorf(p.cur.Pos, "expected variable name, found %q", p.cur.Literal)
		p.skipToSemi()
		v.Loc = p.spanFrom(start)
		return v
	}

	if p.acceptToken(ASSIGN) {
		v.Value = p.parseExpression()
	}
	p.expect(SEMI, "';' after state variable declaration")

	v.Loc = p.spanFrom(start)
	return v
}

// parseTypeName parses a type reference and renders it back to a string.
// It returns false when the current token cannot start a type.
func (p *Parser) parseTypeName() (string, bool) {
	switch {
	case p.at("mapping"):
		var sb strings.Builder
		sb.WriteString("mapping")
		p.next()
		if p.cur.Type != LPAREN {
			return sb.String(), true
		}
		depth := 0
		for p.cur.Type != EOF {
			sb.WriteString(p.cur.Literal)
			switch p.cur.Type {
			case LPAREN:
				depth++
			case RPAREN:
				depth--
				if depth == 0 {
					p.next()
					return sb.String(), true
				}
			case ARROW:
				sb.WriteString(" ") // keep "=> " readable; cosmetic only
			}
			p.next()
		}
		return sb.String(), true

	case p.cur.Type == IDENT && !IsKeyword(p.cur.Literal), p.at("payable"):
		name := p.parseDottedName()
		if name == "address" && p.accept("payable") {
			name = "address payable"
		}
		// Array suffixes.
		for p.cur.Type == LBRACKET {
			p.skipBalanced(LBRACKET, RBRACKET)
			name += "[]"
		}
		return name, true

	default:
		return "", false
	}
}

// parseDottedName parses `a.b.c` style names.
func (p *Parser) parseDottedName() string {
	var sb strings.Builder
	sb.WriteString(p.cur.Literal)
	p.next()
	for p.cur.Type == DOT && p.peek.Type == IDENT {
		p.next()
		sb.WriteString(".")
		sb.WriteString(p.cur.Literal)
		p.next()
	}
	return sb.String()
}

// --- Functions, modifiers, events ---

func (p *Parser) parseFunction() *ast.FunctionDefinition {
	start := p.cur.Pos

	fn := &ast.FunctionDefinition{}
	switch {
	case p.accept("function"):
		fn.FunctionKind = ast.FnFunction
		if p.cur.Type == IDENT && !IsKeyword(p.cur.Literal) {
			fn.Name = p.cur.Literal
			p.next()
		} else {
			p.errorf(p.cur.Pos, "expected function name, found %q", p.cur.Literal)
		}
	case p.accept("constructor"):
		fn.FunctionKind = ast.FnConstructor
	case p.accept("fallback"):
		fn.FunctionKind = ast.FnFallback
	case p.accept("receive"):
		fn.FunctionKind = ast.FnReceive
	}

	fn.Params = p.parseParameterList()

	// Header attributes in any order.
	for {
		switch {
		case p.accept("public"):
			fn.Visibility = "public"
		case p.accept("external"):
			fn.Visibility = "external"
		case p.accept("internal"):
			fn.Visibility = "internal"
		case p.accept("private"):
			fn.Visibility = "private"
		case p.accept("pure"):
			fn.Mutability = "pure"
		case p.accept("view"):
			fn.Mutability = "view"
		case p.accept("payable"):
			fn.Mutability = "payable"
		case p.accept("virtual"):
			// no tree representation
		case p.at("override"):
			p.next()
			if p.cur.Type == LPAREN {
				p.skipBalanced(LPAREN, RPAREN)
			}
		case p.at("returns"):
			p.next()
			fn.Returns = p.parseParameterList()
		case p.cur.Type == IDENT && !IsKeyword(p.cur.Literal):
			fn.Modifiers = append(fn.Modifiers, p.parseModifierInvocation())
		default:
			goto body
		}
	}

body:
	switch p.cur.Type {
	case LBRACE:
		fn.Body = p.parseBlock()
	case SEMI:
		p.next()
	default:
		p.errorf(p.cur.Pos, "expected function body or ';', found %q", p.cur.Literal)
		p.skipToSemi()
	}

	fn.Loc = p.spanFrom(start)
	return fn
}

func (p *Parser) parseModifierInvocation() *ast.ModifierInvocation {
	start := p.cur.Pos
	m := &ast.ModifierInvocation{Name: p.parseDottedName()}
	if p.acceptToken(LPAREN) {
		for p.cur.Type != RPAREN && p.cur.Type != EOF {
			m.Args = append(m.Args, p.parseExpression())
			if !p.acceptToken(COMMA) {
				break
			}
		}
		p.expect(RPAREN, "')' after modifier arguments")
	}
	m.Loc = p.spanFrom(start)
	return m
}

func (p *Parser) parseModifier() *ast.ModifierDefinition {
	start := p.cur.Pos
	p.next() // modifier

	m := &ast.ModifierDefinition{}
	if p.cur.Type == IDENT && !IsKeyword(p.cur.Literal) {
		m.Name = p.cur.Literal
		p.next()
	} else {
		p.errorf(p.cur.Pos, "expected modifier name, found %q", p.cur.Literal)
	}

	if p.cur.Type == LPAREN {
		m.Params = p.parseParameterList()
	}
	p.accept("virtual")

	if p.cur.Type == LBRACE {
		m.Body = p.parseBlock()
	} else {
		p.acceptToken(SEMI)
	}

	m.Loc = p.spanFrom(start)
	return m
}

func (p *Parser) parseEvent() *ast.EventDefinition {
	start := p.cur.Pos
	p.next() // event

	e := &ast.EventDefinition{}
	if p.cur.Type == IDENT && !IsKeyword(p.cur.Literal) {
		e.Name = p.cur.Literal
		p.next()
	} else {
		p.errorf(p.cur.Pos, "expected event name, found %q", p.cur.Literal)
	}

	e.Params = p.parseParameterList()
	p.accept("anonymous")
	p.expect(SEMI, "';' after event declaration")

	e.Loc = p.spanFrom(start)
	return e
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	if !p.acceptToken(LPAREN) {
		p.errorf(p.cur.Pos, "expected '(', found %q", p.cur.Literal)
		return nil
	}

	var params []*ast.Parameter
	for p.cur.Type != RPAREN && p.cur.Type != EOF {
		start := p.cur.Pos

		typeName, ok := p.parseTypeName()
		if !ok {
			p.errorf(p.cur.Pos, "expected parameter type, found %q", p.cur.Literal)
			p.skipBalanced(LPAREN, RPAREN)
			return params
		}

		param := &ast.Parameter{TypeName: typeName}
		for {
			switch {
			case p.accept("indexed"):
				param.Indexed = true
			case p.accept("memory"), p.accept("storage"), p.accept("calldata"):
				// data location has no tree representation
			default:
				goto paramName
			}
		}

	paramName:
		if p.cur.Type == IDENT && !IsKeyword(p.cur.Literal) {
			param.Name = p.cur.Literal
			p.next()
		}
		param.Loc = p.spanFrom(start)
		params = append(params, param)

		if !p.acceptToken(COMMA) {
			break
		}
	}
	p.expect(RPAREN, "')' to close parameter list")
	return params
}

// --- Statements ---

func (p *Parser) parseBlock() *ast.Block {
	start := p.cur.Pos
	b := &ast.Block{}
	p.expect(LBRACE, "'{'")

	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		before := p.cur
		if s := p.parseStatement(); s != nil {
			b.Statements = append(b.Statements, s)
		}
		if p.cur == before {
			p.errorf(p.cur.Pos, "unexpected token %q in block", p.cur.Literal)
			p.next()
		}
	}
	p.expect(RBRACE, "'}'")

	b.Loc = p.spanFrom(start)
	return b
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.cur.Type == LBRACE:
		return p.parseBlock()
	case p.at("unchecked"):
		p.next()
		return p.parseBlock()
	case p.at("if"):
		return p.parseIf()
	case p.at("for"):
		return p.parseFor()
	case p.at("while"):
		return p.parseWhile()
	case p.at("return"):
		return p.parseReturn()
	case p.at("emit"):
		return p.parseEmit()
	case p.isVariableDeclaration():
		return p.parseVariableDeclaration()
	default:
		return p.parseExpressionStatement()
	}
}

// isVariableDeclaration decides whether the statement ahead is a local
// variable declaration. The heuristic covers elementary types, mapping
// types, and the `Typ name` / `Typ memory name` shapes.
func (p *Parser) isVariableDeclaration() bool {
	if p.at("mapping") {
		return true
	}
	if p.cur.Type != IDENT || IsKeyword(p.cur.Literal) {
		return false
	}
	if isElementaryType(p.cur.Literal) {
		return true
	}
	if p.peek.Type == IDENT && !IsKeyword(p.peek.Literal) {
		return true
	}
	if p.peek.Type == IDENT && (p.peek.Literal == "memory" || p.peek.Literal == "storage" || p.peek.Literal == "calldata") {
		return true
	}
	return false
}

// isElementaryType reports whether the name is a Solidity elementary type.
func isElementaryType(name string) bool {
	switch name {
	case "bool", "string", "address", "byte":
		return true
	}
	return strings.HasPrefix(name, "uint") ||
		strings.HasPrefix(name, "int") ||
		strings.HasPrefix(name, "bytes") ||
		strings.HasPrefix(name, "fixed") ||
		strings.HasPrefix(name, "ufixed")
}

func (p *Parser) parseVariableDeclaration() ast.Statement {
	start := p.cur.Pos

	typeName, ok := p.parseTypeName()
	if !ok {
		return p.parseExpressionStatement()
	}

	for p.accept("memory") || p.accept("storage") || p.accept("calldata") || p.accept("payable") {
	}

	v := &ast.VariableDeclarationStatement{TypeName: typeName}
	if p.cur.Type == IDENT && !IsKeyword(p.cur.Literal) {
		v.Name = p.cur.Literal
		p.next()
	}

	if p.acceptToken(ASSIGN) {
		v.Value = p.parseExpression()
	}
	p.expect(SEMI, "';' after variable declaration")

	v.Loc = p.spanFrom(start)
	return v
}

func (p *Parser) parseIf() ast.Statement {
	start := p.cur.Pos
	p.next() // if

	s := &ast.IfStatement{}
	if p.expect(LPAREN, "'(' after if") {
		s.Condition = p.parseExpression()
		p.expect(RPAREN, "')' after if condition")
	}
	s.Then = p.parseStatement()
	if p.accept("else") {
		s.Else = p.parseStatement()
	}

	s.Loc = p.spanFrom(start)
	return s
}

func (p *Parser) parseFor() ast.Statement {
	start := p.cur.Pos
	p.next() // for

	s := &ast.ForStatement{}
	if p.expect(LPAREN, "'(' after for") {
		if !p.acceptToken(SEMI) {
			s.Init = p.parseStatement() // consumes its own ';'
		}
		if p.cur.Type != SEMI {
			s.Condition = p.parseExpression()
		}
		p.expect(SEMI, "';' after for condition")
		if p.cur.Type != RPAREN {
			s.Post = p.parseExpression()
		}
		p.expect(RPAREN, "')' after for clauses")
	}
	s.Body = p.parseStatement()

	s.Loc = p.spanFrom(start)
	return s
}

func (p *Parser) parseWhile() ast.Statement {
	start := p.cur.Pos
	p.next() // while

	s := &ast.WhileStatement{}
	if p.expect(LPAREN, "'(' after while") {
		s.Condition = p.parseExpression()
		p.expect(RPAREN, "')' after while condition")
	}
	s.Body = p.parseStatement()

	s.Loc = p.spanFrom(start)
	return s
}

func (p *Parser) parseReturn() ast.Statement {
	start := p.cur.Pos
	p.next() // return

	s := &ast.ReturnStatement{}
	if p.cur.Type != SEMI && p.cur.Type != RBRACE {
		s.Value = p.parseExpression()
	}
	p.expect(SEMI, "';' after return")

	s.Loc = p.spanFrom(start)
	return s
}

func (p *Parser) parseEmit() ast.Statement {
	start := p.cur.Pos
	p.next() // emit

	s := &ast.EmitStatement{}
	expr := p.parseExpression()
	if call, ok := expr.(*ast.CallExpression); ok {
		s.Call = call
	} else {
		p.errorf(start, "emit requires an event call")
	}
	p.expect(SEMI, "';' after emit")

	s.Loc = p.spanFrom(start)
	return s
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.cur.Pos

	s := &ast.ExpressionStatement{Expression: p.parseExpression()}
	p.expect(SEMI, "';' after expression")

	s.Loc = p.spanFrom(start)
	return s
}
