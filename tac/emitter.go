package tac

import (
	"fmt"
	"strconv"

	"indentc/ast"
)

// Emitter walks an AST once and produces a linear Instruction list.
// Every temporary and label it issues is unique within the emission.
type Emitter struct {
	program  []Instruction
	nextTemp int
	nextLbl  int
}

// Emit lowers block into a fresh instruction list.
func Emit(block ast.Block) []Instruction {
	e := &Emitter{}
	e.emitBlock(block)
	return e.program
}

func (e *Emitter) emit(in Instruction) {
	e.program = append(e.program, in)
}

func (e *Emitter) freshTemp() string {
	e.nextTemp++
	return fmt.Sprintf("t%d", e.nextTemp)
}

func (e *Emitter) freshLabel() string {
	e.nextLbl++
	return fmt.Sprintf("L%d", e.nextLbl)
}

func (e *Emitter) emitBlock(block ast.Block) {
	for _, stmt := range block {
		e.emitStmt(stmt)
	}
}

// --- statements ------------------------------------------------------

func (e *Emitter) emitStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.Assign:
		src := e.emitExpr(n.Value)
		e.emit(Instruction{Op: ASSIGN, Arg1: src, Result: n.Name})
	case *ast.If:
		e.emitIf(n)
	case *ast.While:
		e.emitWhile(n)
	case *ast.For:
		e.emitFor(n)
	case *ast.FuncDef:
		e.emitFuncDef(n)
	case *ast.Return:
		if n.Value == nil {
			e.emit(Instruction{Op: RETURN})
		} else {
			e.emit(Instruction{Op: RETURN, Arg1: e.emitExpr(n.Value)})
		}
	case *ast.ExprStmt:
		e.emitExprStmt(n)
	}
}

// emitExprStmt special-cases the built-in print call, which lowers to
// a PRINT instruction rather than a PARAM/CALL sequence; every other
// expression statement is evaluated for effect and its value dropped.
func (e *Emitter) emitExprStmt(n *ast.ExprStmt) {
	if call, ok := n.Expression.(*ast.Call); ok && call.Name == "print" {
		for _, arg := range call.Args {
			e.emit(Instruction{Op: PRINT, Arg1: e.emitExpr(arg)})
		}
		return
	}
	e.emitExpr(n.Expression)
}

// emitIf lowers the if/elif*/else? chain: each arm computes its
// condition, branches past its block on false, then jumps to the
// shared end label after running its block.
func (e *Emitter) emitIf(n *ast.If) {
	arms := make([]ast.ElifClause, 0, len(n.Elifs)+1)
	arms = append(arms, ast.ElifClause{Condition: n.Condition, Body: n.Then})
	arms = append(arms, n.Elifs...)

	// Labels are allocated up front, one per arm plus the shared end
	// label, so their numbering follows source order regardless of
	// how many temporaries each arm's condition happens to need.
	nextLabels := make([]string, len(arms))
	for i := range arms {
		nextLabels[i] = e.freshLabel()
	}
	endLabel := e.freshLabel()

	for i, arm := range arms {
		cond := e.emitExpr(arm.Condition)
		e.emit(Instruction{Op: IF_FALSE, Arg1: cond, Target: nextLabels[i]})
		e.emitBlock(arm.Body)
		e.emit(Instruction{Op: GOTO, Arg1: endLabel})
		e.emit(Instruction{Op: LABEL, Arg1: nextLabels[i]})
	}

	if n.Else != nil {
		e.emitBlock(n.Else)
	}
	e.emit(Instruction{Op: LABEL, Arg1: endLabel})
}

func (e *Emitter) emitWhile(n *ast.While) {
	startLabel := e.freshLabel()
	endLabel := e.freshLabel()

	e.emit(Instruction{Op: LABEL, Arg1: startLabel})
	cond := e.emitExpr(n.Condition)
	e.emit(Instruction{Op: IF_FALSE, Arg1: cond, Target: endLabel})
	e.emitBlock(n.Body)
	e.emit(Instruction{Op: GOTO, Arg1: startLabel})
	e.emit(Instruction{Op: LABEL, Arg1: endLabel})
}

// emitFor desugars `for name in iter:` into an index/length-driven
// while loop: an index temp starts at 0, a length temp holds LEN
// iter, the loop condition compares them, the body is preceded by an
// INDEX fetch binding name, and the index temp increments each pass.
func (e *Emitter) emitFor(n *ast.For) {
	idx := e.freshTemp()
	length := e.freshTemp()
	startLabel := e.freshLabel()
	endLabel := e.freshLabel()

	iter := e.emitExpr(n.Iter)
	e.emit(Instruction{Op: ASSIGN, Arg1: "0", Result: idx})
	e.emit(Instruction{Op: LEN, Arg1: iter, Result: length})

	e.emit(Instruction{Op: LABEL, Arg1: startLabel})
	cond := e.freshTemp()
	e.emit(Instruction{Op: LT, Arg1: idx, Arg2: length, Result: cond})
	e.emit(Instruction{Op: IF_FALSE, Arg1: cond, Target: endLabel})

	e.emit(Instruction{Op: INDEX, Arg1: iter, Arg2: idx, Result: n.Name})
	e.emitBlock(n.Body)
	e.emit(Instruction{Op: ADD, Arg1: idx, Arg2: "1", Result: idx})
	e.emit(Instruction{Op: GOTO, Arg1: startLabel})
	e.emit(Instruction{Op: LABEL, Arg1: endLabel})
}

func (e *Emitter) emitFuncDef(n *ast.FuncDef) {
	e.emit(Instruction{Op: FUNCTION, Arg1: n.Name})
	e.emitBlock(n.Body)
	e.emit(Instruction{Op: ENDFUNCTION, Arg1: n.Name})
}

// --- expressions -------------------------------------------------------

// emitExpr lowers expr and returns the name/value that later
// instructions should reference: a literal's text or a variable's
// name directly, or a fresh temporary holding a computed result.
func (e *Emitter) emitExpr(expr ast.Expr) string {
	switch n := expr.(type) {
	case *ast.Literal:
		return literalText(n)
	case *ast.Variable:
		return n.Name
	case *ast.Binary:
		return e.emitBinary(n)
	case *ast.Unary:
		return e.emitUnary(n)
	case *ast.Call:
		return e.emitCall(n)
	case *ast.ListLit:
		return e.emitList(n)
	case *ast.Index:
		return e.emitIndex(n)
	default:
		return ""
	}
}

func literalText(n *ast.Literal) string {
	switch n.Kind {
	case ast.IntLiteral:
		return strconv.FormatInt(n.Value.(int64), 10)
	case ast.FloatLiteral:
		return strconv.FormatFloat(n.Value.(float64), 'g', -1, 64)
	case ast.StringLiteral:
		return strconv.Quote(n.Value.(string))
	case ast.BoolLiteral:
		if n.Value.(bool) {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

var binaryOpcodes = map[ast.BinaryOp]Opcode{
	ast.OpAdd: ADD, ast.OpSub: SUB, ast.OpMul: MUL, ast.OpDiv: DIV,
	ast.OpMod: MOD, ast.OpPow: POW, ast.OpEq: EQ, ast.OpNotEq: NEQ,
	ast.OpLess: LT, ast.OpLessEq: LE, ast.OpGreater: GT, ast.OpGreaterEq: GE,
	ast.OpAnd: AND, ast.OpOr: OR,
}

var unaryOpcodes = map[ast.UnaryOp]Opcode{
	ast.OpNeg: NEG, ast.OpPos: POS, ast.OpNot: NOT,
}

func (e *Emitter) emitBinary(n *ast.Binary) string {
	left := e.emitExpr(n.Left)
	right := e.emitExpr(n.Right)
	dest := e.freshTemp()
	e.emit(Instruction{Op: binaryOpcodes[n.Op], Arg1: left, Arg2: right, Result: dest})
	return dest
}

func (e *Emitter) emitUnary(n *ast.Unary) string {
	operand := e.emitExpr(n.Operand)
	dest := e.freshTemp()
	e.emit(Instruction{Op: unaryOpcodes[n.Op], Arg1: operand, Result: dest})
	return dest
}

// emitCall lowers a user-defined call: one PARAM per argument in
// source order immediately precedes the CALL itself.
func (e *Emitter) emitCall(n *ast.Call) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.emitExpr(a)
	}
	for _, v := range args {
		e.emit(Instruction{Op: PARAM, Arg1: v})
	}
	dest := e.freshTemp()
	e.emit(Instruction{Op: CALL, Arg1: n.Name, Arg2: strconv.Itoa(len(args)), Result: dest})
	return dest
}

func (e *Emitter) emitList(n *ast.ListLit) string {
	dest := e.freshTemp()
	e.emit(Instruction{Op: CREATELIST, Result: dest})
	for _, el := range n.Elements {
		e.emit(Instruction{Op: APPEND, Arg1: dest, Arg2: e.emitExpr(el)})
	}
	return dest
}

func (e *Emitter) emitIndex(n *ast.Index) string {
	base := e.emitExpr(n.Base)
	idx := e.emitExpr(n.IndexExpr)
	dest := e.freshTemp()
	e.emit(Instruction{Op: INDEX, Arg1: base, Arg2: idx, Result: dest})
	return dest
}
