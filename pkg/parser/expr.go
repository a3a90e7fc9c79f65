package parser

import (
	"github.com/solguard-labs/solguard/pkg/ast"
)

// Binding powers, lowest first. Assignment is right-associative and handled
// separately in parseExpression.
const (
	precLowest = iota
	precTernary
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precPower
	precUnary
	precPostfix
)

func binaryPrec(t TokenType) int {
	switch t {
	case LOR:
		return precOr
	case LAND:
		return precAnd
	case BITOR:
		return precBitOr
	case BITXOR:
		return precBitXor
	case BITAND:
		return precBitAnd
	case EQ, NE:
		return precEquality
	case LT, GT, LE, GE:
		return precRelational
	case SHL, SHR:
		return precShift
	case PLUS, MINUS:
		return precAdditive
	case STAR, SLASH, PERCENT:
		return precMultiplicative
	case POW:
		return precPower
	default:
		return precLowest
	}
}

// parseExpression parses a full expression including assignment and the
// ternary conditional.
func (p *Parser) parseExpression() ast.Expression {
	start := p.cur.Pos
	left := p.parseBinary(precLowest + 1)

	if p.cur.Type == QUESTION {
		p.next()
		thenExpr := p.parseExpression()
		p.expect(COLON, "':' in conditional expression")
		elseExpr := p.parseExpression()
		// Conditionals are modeled as a binary chain; rules only need the
		// operands, not evaluation semantics.
		cond := &ast.BinaryExpression{Op: "?:", Left: thenExpr, Right: elseExpr}
		cond.Loc = p.spanFrom(start)
		out := &ast.BinaryExpression{Op: "?", Left: left, Right: cond}
		out.Loc = p.spanFrom(start)
		return out
	}

	if p.cur.Type == ASSIGN {
		op := p.cur.Literal
		p.next()
		right := p.parseExpression() // right-associative
		out := &ast.BinaryExpression{Op: op, Left: left, Right: right}
		out.Loc = p.spanFrom(start)
		return out
	}

	return left
}

// parseBinary parses binary operators at or above the given precedence.
func (p *Parser) parseBinary(minPrec int) ast.Expression {
	start := p.cur.Pos
	left := p.parseUnary()

	for {
		prec := binaryPrec(p.cur.Type)
		if prec < minPrec {
			return left
		}
		op := p.cur.Literal
		p.next()

		// Power is right-associative; everything else binds left.
		nextMin := prec + 1
		if prec == precPower {
			nextMin = prec
		}
		right := p.parseBinary(nextMin)

		bin := &ast.BinaryExpression{Op: op, Left: left, Right: right}
		bin.Loc = p.spanFrom(start)
		left = bin
	}
}

func (p *Parser) parseUnary() ast.Expression {
	start := p.cur.Pos

	switch p.cur.Type {
	case NOT, BITNOT, MINUS, INC, DEC:
		op := p.cur.Literal
		p.next()
		u := &ast.UnaryExpression{Op: op, Operand: p.parseUnary(), Prefix: true}
		u.Loc = p.spanFrom(start)
		return u
	}
	if p.at("delete") || p.at("new") {
		op := p.cur.Literal
		p.next()
		u := &ast.UnaryExpression{Op: op, Operand: p.parseUnary(), Prefix: true}
		u.Loc = p.spanFrom(start)
		return u
	}

	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of calls,
// member accesses, index accesses, and ++/--.
func (p *Parser) parsePostfix() ast.Expression {
	start := p.cur.Pos
	expr := p.parsePrimary()

	for {
		switch p.cur.Type {
		case DOT:
			p.next()
			m := &ast.MemberAccess{Object: expr}
			if p.cur.Type == IDENT {
				m.Member = p.cur.Literal
				p.next()
			} else {
				p.errorf(p.cur.Pos, "expected member name after '.', found %q", p.cur.Literal)
			}
			m.Loc = p.spanFrom(start)
			expr = m

		case LBRACKET:
			p.next()
			idx := &ast.IndexAccess{Object: expr}
			if p.cur.Type != RBRACKET {
				idx.Index = p.parseExpression()
			}
			p.expect(RBRACKET, "']'")
			idx.Loc = p.spanFrom(start)
			expr = idx

		case LPAREN:
			expr = p.parseCall(start, expr)

		case LBRACE:
			// Call options apply only to a following call:
			// addr.call{value: 1 ether}("").
			if call, ok := p.parseCallOptions(start, expr); ok {
				expr = call
			} else {
				return expr
			}

		case INC, DEC:
			u := &ast.UnaryExpression{Op: p.cur.Literal, Operand: expr, Prefix: false}
			p.next()
			u.Loc = p.spanFrom(start)
			expr = u

		default:
			return expr
		}
	}
}

func (p *Parser) parseCall(start ast.Position, callee ast.Expression) *ast.CallExpression {
	call := &ast.CallExpression{Callee: callee}
	p.next() // (
	for p.cur.Type != RPAREN && p.cur.Type != EOF {
		call.Args = append(call.Args, p.parseExpression())
		if !p.acceptToken(COMMA) {
			break
		}
	}
	p.expect(RPAREN, "')' to close call arguments")
	call.Loc = p.spanFrom(start)
	return call
}

// parseCallOptions parses `{name: expr, ...}` call options. It reports false
// when the brace does not look like call options, leaving the brace
// unconsumed so statement parsing can claim it.
func (p *Parser) parseCallOptions(start ast.Position, callee ast.Expression) (*ast.CallExpression, bool) {
	if p.peek.Type != IDENT && p.peek.Type != RBRACE {
		return nil, false
	}

	p.next() // {
	var opts []ast.Expression
	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		if p.cur.Type != IDENT {
			p.errorf(p.cur.Pos, "expected call option name, found %q", p.cur.Literal)
			break
		}
		p.next()
		p.expect(COLON, "':' after call option name")
		opts = append(opts, p.parseExpression())
		if !p.acceptToken(COMMA) {
			break
		}
	}
	p.expect(RBRACE, "'}' to close call options")

	if p.cur.Type != LPAREN {
		p.errorf(p.cur.Pos, "expected '(' after call options, found %q", p.cur.Literal)
		call := &ast.CallExpression{Callee: callee, Options: opts}
		call.Loc = p.spanFrom(start)
		return call, true
	}
	call := p.parseCall(start, callee)
	call.Options = opts
	return call, true
}

// denominations are number suffixes that scale the literal.
var denominations = map[string]bool{
	"wei": true, "gwei": true, "ether": true,
	"seconds": true, "minutes": true, "hours": true, "days": true, "weeks": true,
}

func (p *Parser) parsePrimary() ast.Expression {
	start := p.cur.Pos

	switch p.cur.Type {
	case IDENT:
		switch {
		case p.at("true"), p.at("false"):
			lit := &ast.Literal{LiteralKind: ast.LitBool, Value: p.cur.Literal}
			p.next()
			lit.Loc = p.spanFrom(start)
			return lit
		case IsKeyword(p.cur.Literal) && !p.at("payable"):
			p.errorf(p.cur.Pos, "unexpected keyword %q in expression", p.cur.Literal)
			id := &ast.Identifier{Name: p.cur.Literal}
			p.next()
			id.Loc = p.spanFrom(start)
			return id
		default:
			id := &ast.Identifier{Name: p.cur.Literal}
			p.next()
			id.Loc = p.spanFrom(start)
			return id
		}

	case NUMBER:
		lit := &ast.Literal{LiteralKind: ast.LitNumber, Value: p.cur.Literal}
		p.next()
		if p.cur.Type == IDENT && denominations[p.cur.Literal] {
			lit.Value += " " + p.cur.Literal
			p.next()
		}
		lit.Loc = p.spanFrom(start)
		return lit

	case HEX:
		lit := &ast.Literal{LiteralKind: ast.LitHex, Value: p.cur.Literal}
		p.next()
		lit.Loc = p.spanFrom(start)
		return lit

	case STRING:
		lit := &ast.Literal{LiteralKind: ast.LitString, Value: p.cur.Literal}
		p.next()
		lit.Loc = p.spanFrom(start)
		return lit

	case LPAREN:
		p.next()
		tup := &ast.TupleExpression{}
		for p.cur.Type != RPAREN && p.cur.Type != EOF {
			if p.cur.Type == COMMA {
				tup.Elements = append(tup.Elements, nil)
				p.next()
				continue
			}
			tup.Elements = append(tup.Elements, p.parseExpression())
			if !p.acceptToken(COMMA) {
				break
			}
		}
		p.expect(RPAREN, "')' to close parenthesized expression")
		tup.Loc = p.spanFrom(start)
		if len(tup.Elements) == 1 && tup.Elements[0] != nil {
			return tup.Elements[0]
		}
		return tup

	default:
		p.errorf(p.cur.Pos, "unexpected token %q in expression", p.cur.Literal)
		id := &ast.Identifier{Name: p.cur.Literal}
		if p.cur.Type != EOF && p.cur.Type != SEMI && p.cur.Type != RBRACE && p.cur.Type != RPAREN {
			p.next()
		}
		id.Loc = p.spanFrom(start)
		return id
	}
}
