package parser

import (
	"fmt"

	"indentc/ast"
	"indentc/token"
)

// expression is the entry point for parsing expressions; it begins
// at the lowest-precedence rule (`or`).
func (p *Parser) expression() (ast.Expr, bool) {
	return p.or()
}

func (p *Parser) or() (ast.Expr, bool) {
	left, ok := p.and()
	if !ok {
		return nil, false
	}
	for p.check(token.OR) {
		opTok := p.advance()
		right, ok := p.and()
		if !ok {
			return nil, false
		}
		left = &ast.Binary{Left: left, Right: right, Op: ast.OpOr, Position: pos(opTok)}
	}
	return left, true
}

func (p *Parser) and() (ast.Expr, bool) {
	left, ok := p.equality()
	if !ok {
		return nil, false
	}
	for p.check(token.AND) {
		opTok := p.advance()
		right, ok := p.equality()
		if !ok {
			return nil, false
		}
		left = &ast.Binary{Left: left, Right: right, Op: ast.OpAnd, Position: pos(opTok)}
	}
	return left, true
}

func (p *Parser) equality() (ast.Expr, bool) {
	left, ok := p.comparison()
	if !ok {
		return nil, false
	}
	for p.check(token.EQUAL) || p.check(token.NOT_EQUAL) {
		opTok := p.advance()
		right, ok := p.comparison()
		if !ok {
			return nil, false
		}
		left = &ast.Binary{Left: left, Right: right, Op: binaryOpFor(opTok.Type), Position: pos(opTok)}
	}
	return left, true
}

func (p *Parser) comparison() (ast.Expr, bool) {
	left, ok := p.term()
	if !ok {
		return nil, false
	}
	for p.check(token.LESS_THAN) || p.check(token.LESS_EQUAL) || p.check(token.GREATER_THAN) || p.check(token.GREATER_EQUAL) {
		opTok := p.advance()
		right, ok := p.term()
		if !ok {
			return nil, false
		}
		left = &ast.Binary{Left: left, Right: right, Op: binaryOpFor(opTok.Type), Position: pos(opTok)}
	}
	return left, true
}

func (p *Parser) term() (ast.Expr, bool) {
	left, ok := p.factor()
	if !ok {
		return nil, false
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		right, ok := p.factor()
		if !ok {
			return nil, false
		}
		left = &ast.Binary{Left: left, Right: right, Op: binaryOpFor(opTok.Type), Position: pos(opTok)}
	}
	return left, true
}

func (p *Parser) factor() (ast.Expr, bool) {
	left, ok := p.unary()
	if !ok {
		return nil, false
	}
	for p.check(token.MULTIPLY) || p.check(token.DIVIDE) || p.check(token.MODULO) {
		opTok := p.advance()
		right, ok := p.unary()
		if !ok {
			return nil, false
		}
		left = &ast.Binary{Left: left, Right: right, Op: binaryOpFor(opTok.Type), Position: pos(opTok)}
	}
	return left, true
}

// unary binds looser than power, so its operand recurses through
// unary itself (allowing chained signs) before falling through to
// power; this yields -2**2 == -(2**2).
func (p *Parser) unary() (ast.Expr, bool) {
	if p.check(token.NOT) || p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		operand, ok := p.unary()
		if !ok {
			return nil, false
		}
		return &ast.Unary{Operand: operand, Op: unaryOpFor(opTok.Type), Position: pos(opTok)}, true
	}
	return p.power()
}

// power is right-associative: its right-hand side recurses through
// unary so that 2**-2 parses as 2 ** (-2).
func (p *Parser) power() (ast.Expr, bool) {
	left, ok := p.postfix()
	if !ok {
		return nil, false
	}
	if p.check(token.POWER) {
		opTok := p.advance()
		right, ok := p.unary()
		if !ok {
			return nil, false
		}
		return &ast.Binary{Left: left, Right: right, Op: ast.OpPow, Position: pos(opTok)}, true
	}
	return left, true
}

// postfix parses a primary expression followed by zero or more index
// subscripts, so `a[i][j]` nests Index nodes.
func (p *Parser) postfix() (ast.Expr, bool) {
	expr, ok := p.primary()
	if !ok {
		return nil, false
	}
	for p.check(token.LBRACKET) {
		opTok := p.advance()
		idx, ok := p.expression()
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(token.RBRACKET, "expected ']' after index expression"); !ok {
			return nil, false
		}
		expr = &ast.Index{Base: expr, IndexExpr: idx, Position: pos(opTok)}
	}
	return expr, true
}

func (p *Parser) primary() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Type {
	case token.INTEGER:
		p.advance()
		return &ast.Literal{Kind: ast.IntLiteral, Value: tok.Literal, Position: pos(tok)}, true
	case token.FLOAT:
		p.advance()
		return &ast.Literal{Kind: ast.FloatLiteral, Value: tok.Literal, Position: pos(tok)}, true
	case token.STRING:
		p.advance()
		return &ast.Literal{Kind: ast.StringLiteral, Value: tok.Literal, Position: pos(tok)}, true
	case token.BOOLEAN:
		p.advance()
		return &ast.Literal{Kind: ast.BoolLiteral, Value: tok.Literal, Position: pos(tok)}, true
	case token.IDENTIFIER:
		p.advance()
		if p.check(token.LPAREN) {
			return p.finishCall(tok)
		}
		return &ast.Variable{Name: tok.Lexeme, Position: pos(tok)}, true
	case token.LBRACKET:
		return p.listLiteral()
	case token.LPAREN:
		p.advance()
		inner, ok := p.expression()
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(token.RPAREN, "expected ')' after expression"); !ok {
			return nil, false
		}
		return inner, true
	default:
		p.errorAt(tok, fmt.Sprintf("unexpected token %s in expression", tok.Type))
		return nil, false
	}
}

func (p *Parser) finishCall(nameTok token.Token) (ast.Expr, bool) {
	p.advance() // LPAREN
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		arg, ok := p.expression()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		for p.match(token.COMMA) {
			arg, ok := p.expression()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
		}
	}
	if _, ok := p.consume(token.RPAREN, "expected ')' after argument list"); !ok {
		return nil, false
	}
	return &ast.Call{Name: nameTok.Lexeme, Args: args, Position: pos(nameTok)}, true
}

func (p *Parser) listLiteral() (ast.Expr, bool) {
	open := p.advance() // LBRACKET
	var elements []ast.Expr
	if !p.check(token.RBRACKET) {
		el, ok := p.expression()
		if !ok {
			return nil, false
		}
		elements = append(elements, el)
		for p.match(token.COMMA) {
			el, ok := p.expression()
			if !ok {
				return nil, false
			}
			elements = append(elements, el)
		}
	}
	if _, ok := p.consume(token.RBRACKET, "expected ']' after list elements"); !ok {
		return nil, false
	}
	return &ast.ListLit{Elements: elements, Position: pos(open)}, true
}

func pos(tok token.Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}

func binaryOpFor(t token.Type) ast.BinaryOp {
	switch t {
	case token.PLUS:
		return ast.OpAdd
	case token.MINUS:
		return ast.OpSub
	case token.MULTIPLY:
		return ast.OpMul
	case token.DIVIDE:
		return ast.OpDiv
	case token.MODULO:
		return ast.OpMod
	case token.POWER:
		return ast.OpPow
	case token.EQUAL:
		return ast.OpEq
	case token.NOT_EQUAL:
		return ast.OpNotEq
	case token.LESS_THAN:
		return ast.OpLess
	case token.LESS_EQUAL:
		return ast.OpLessEq
	case token.GREATER_THAN:
		return ast.OpGreater
	case token.GREATER_EQUAL:
		return ast.OpGreaterEq
	case token.AND:
		return ast.OpAnd
	case token.OR:
		return ast.OpOr
	}
	panic("unreachable binary operator: " + t)
}

func unaryOpFor(t token.Type) ast.UnaryOp {
	switch t {
	case token.MINUS:
		return ast.OpNeg
	case token.PLUS:
		return ast.OpPos
	case token.NOT:
		return ast.OpNot
	}
	panic("unreachable unary operator: " + t)
}
