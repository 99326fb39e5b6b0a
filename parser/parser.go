// Package parser implements a recursive-descent parser with one-token
// lookahead and precedence climbing over an indentation-delimited
// statement grammar: a flat token slice plus a cursor, with
// peek/previous/advance/check/match helpers, panic-mode error
// recovery, and a stuck-cursor guard against non-advancing loops.
package parser

import (
	"fmt"

	"indentc/ast"
	"indentc/diagnostics"
	"indentc/token"
)

// Parser turns a token stream into an AST. A non-empty error list
// indicates parse failure even if a partial tree was produced.
type Parser struct {
	tokens []token.Token
	pos    int
	errors diagnostics.List
}

// Make constructs a Parser over the given token stream.
func Make(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the entire token stream into a Block of statements.
func (p *Parser) Parse() (ast.Block, diagnostics.List) {
	stmts := p.statementSequence(token.EOF)
	return stmts, p.errors
}

// --- cursor helpers -------------------------------------------------

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(t token.Type) bool {
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, message string) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.errorAt(p.peek(), message)
	return token.Token{}, false
}

func (p *Parser) errorAt(tok token.Token, message string) {
	p.errors = append(p.errors, diagnostics.New(diagnostics.Syntax, tok.Line, tok.Column, "%s", message))
}

// synchronize discards tokens until a NEWLINE or a statement-starting
// keyword is observed, whichever comes first.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.check(token.NEWLINE) {
			p.advance()
			return
		}
		switch p.peek().Type {
		case token.IF, token.WHILE, token.FOR, token.DEF, token.RETURN:
			return
		}
		p.advance()
	}
}

// --- statement sequencing -------------------------------------------

// statementSequence parses `{statement NEWLINE*}*` up to (but not
// consuming) stop, applying the forward-progress guard: a statement
// attempt that leaves the cursor where it was is followed by skipping
// one token, and if the next attempt also fails to advance, parsing of
// this sequence aborts.
func (p *Parser) statementSequence(stop token.Type) ast.Block {
	var stmts ast.Block
	stuck := 0
	for {
		for p.check(token.NEWLINE) {
			p.advance()
		}
		if p.check(stop) || p.isAtEnd() {
			break
		}

		before := p.pos
		if stmt, ok := p.statement(); ok {
			stmts = append(stmts, stmt)
		}

		if p.pos == before {
			stuck++
			if stuck >= 2 {
				p.errorAt(p.peek(), "parser made no progress, aborting statement sequence")
				return stmts
			}
			p.advance()
		} else {
			stuck = 0
		}
	}
	return stmts
}

func (p *Parser) statement() (ast.Stmt, bool) {
	switch p.peek().Type {
	case token.IF:
		return p.ifStatement()
	case token.WHILE:
		return p.whileStatement()
	case token.FOR:
		return p.forStatement()
	case token.DEF:
		return p.funcDef()
	case token.RETURN:
		return p.returnStatement()
	case token.IDENTIFIER:
		switch p.peekAt(1).Type {
		case token.ASSIGN:
			return p.assignment()
		case token.LPAREN:
			return p.exprStatement()
		default:
			// A bare identifier with no following '=' or '(' is not a
			// call or an assignment, so it cannot stand alone as a
			// statement (e.g. an unknown keyword like `pass` simply
			// lexes as an identifier).
			tok := p.peek()
			p.errorAt(tok, fmt.Sprintf("unexpected identifier %q in statement position", tok.Lexeme))
			p.synchronize()
			return nil, false
		}
	default:
		return p.exprStatement()
	}
}

// endOfStatement consumes a single trailing NEWLINE if present. A
// statement immediately followed by DEDENT or EOF is also accepted
// without error (the last line of a file need not end in a newline).
func (p *Parser) endOfStatement() {
	if p.check(token.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) assignment() (ast.Stmt, bool) {
	nameTok := p.advance() // IDENTIFIER
	pos := ast.Position{Line: nameTok.Line, Column: nameTok.Column}
	p.advance() // ASSIGN

	value, ok := p.expression()
	if !ok {
		p.synchronize()
		return nil, false
	}
	p.endOfStatement()
	return &ast.Assign{Name: nameTok.Lexeme, Value: value, Position: pos}, true
}

func (p *Parser) exprStatement() (ast.Stmt, bool) {
	tok := p.peek()
	pos := ast.Position{Line: tok.Line, Column: tok.Column}
	expr, ok := p.expression()
	if !ok {
		p.synchronize()
		return nil, false
	}
	p.endOfStatement()
	return &ast.ExprStmt{Expression: expr, Position: pos}, true
}

func (p *Parser) ifStatement() (ast.Stmt, bool) {
	tok := p.advance() // IF
	pos := ast.Position{Line: tok.Line, Column: tok.Column}

	cond, ok := p.expression()
	if !ok {
		p.synchronize()
		return nil, false
	}
	if _, ok := p.consume(token.COLON, "expected ':' after if condition"); !ok {
		p.synchronize()
		return nil, false
	}
	thenBlock := p.block()

	node := &ast.If{Condition: cond, Then: thenBlock, Position: pos}
	for p.check(token.ELIF) {
		p.advance()
		econd, ok := p.expression()
		if !ok {
			p.synchronize()
			return node, true
		}
		if _, ok := p.consume(token.COLON, "expected ':' after elif condition"); !ok {
			p.synchronize()
			return node, true
		}
		node.Elifs = append(node.Elifs, ast.ElifClause{Condition: econd, Body: p.block()})
	}
	if p.check(token.ELSE) {
		p.advance()
		if _, ok := p.consume(token.COLON, "expected ':' after else"); !ok {
			p.synchronize()
			return node, true
		}
		node.Else = p.block()
	}
	return node, true
}

func (p *Parser) whileStatement() (ast.Stmt, bool) {
	tok := p.advance() // WHILE
	pos := ast.Position{Line: tok.Line, Column: tok.Column}
	cond, ok := p.expression()
	if !ok {
		p.synchronize()
		return nil, false
	}
	if _, ok := p.consume(token.COLON, "expected ':' after while condition"); !ok {
		p.synchronize()
		return nil, false
	}
	body := p.block()
	return &ast.While{Condition: cond, Body: body, Position: pos}, true
}

func (p *Parser) forStatement() (ast.Stmt, bool) {
	tok := p.advance() // FOR
	pos := ast.Position{Line: tok.Line, Column: tok.Column}
	nameTok, ok := p.consume(token.IDENTIFIER, "expected loop variable name")
	if !ok {
		p.synchronize()
		return nil, false
	}
	if _, ok := p.consume(token.IN, "expected 'in' after loop variable"); !ok {
		p.synchronize()
		return nil, false
	}
	iter, ok := p.expression()
	if !ok {
		p.synchronize()
		return nil, false
	}
	if _, ok := p.consume(token.COLON, "expected ':' after for iterable"); !ok {
		p.synchronize()
		return nil, false
	}
	body := p.block()
	return &ast.For{Name: nameTok.Lexeme, Iter: iter, Body: body, Position: pos}, true
}

func (p *Parser) funcDef() (ast.Stmt, bool) {
	tok := p.advance() // DEF
	pos := ast.Position{Line: tok.Line, Column: tok.Column}
	nameTok, ok := p.consume(token.IDENTIFIER, "expected function name")
	if !ok {
		p.synchronize()
		return nil, false
	}
	if _, ok := p.consume(token.LPAREN, "expected '(' after function name"); !ok {
		p.synchronize()
		return nil, false
	}
	var params []string
	if !p.check(token.RPAREN) {
		paramTok, ok := p.consume(token.IDENTIFIER, "expected parameter name")
		if !ok {
			p.synchronize()
			return nil, false
		}
		params = append(params, paramTok.Lexeme)
		for p.match(token.COMMA) {
			paramTok, ok := p.consume(token.IDENTIFIER, "expected parameter name")
			if !ok {
				p.synchronize()
				return nil, false
			}
			params = append(params, paramTok.Lexeme)
		}
	}
	if _, ok := p.consume(token.RPAREN, "expected ')' after parameter list"); !ok {
		p.synchronize()
		return nil, false
	}
	if _, ok := p.consume(token.COLON, "expected ':' after function signature"); !ok {
		p.synchronize()
		return nil, false
	}
	body := p.block()
	return &ast.FuncDef{Name: nameTok.Lexeme, Params: params, Body: body, Position: pos}, true
}

func (p *Parser) returnStatement() (ast.Stmt, bool) {
	tok := p.advance() // RETURN
	pos := ast.Position{Line: tok.Line, Column: tok.Column}
	var value ast.Expr
	if !p.check(token.NEWLINE) && !p.check(token.DEDENT) && !p.isAtEnd() {
		v, ok := p.expression()
		if !ok {
			p.synchronize()
			return nil, false
		}
		value = v
	}
	p.endOfStatement()
	return &ast.Return{Value: value, Position: pos}, true
}

// block parses `NEWLINE INDENT statement {NEWLINE statement}* NEWLINE? DEDENT`.
func (p *Parser) block() ast.Block {
	if _, ok := p.consume(token.NEWLINE, "expected newline before indented block"); !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.consume(token.INDENT, "expected an indented block"); !ok {
		p.synchronize()
		return nil
	}
	stmts := p.statementSequence(token.DEDENT)
	p.consume(token.DEDENT, "expected dedent at end of block")
	return stmts
}
