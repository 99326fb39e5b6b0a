// Package semantic performs a single walk of the AST to build the
// symbol table, infer expression types, and report semantic errors.
// It never mutates the AST it walks.
package semantic

import (
	"indentc/ast"
	"indentc/diagnostics"
	"indentc/symbols"
)

// ScopeRecord snapshots one scope's bindings as analysis leaves it,
// for the symbol-table dump; Depth 0 is always the module scope.
type ScopeRecord struct {
	Depth   int
	Symbols []*symbols.Symbol
}

// Analyzer walks an AST once, threading a symbol-table scope and
// accumulating diagnostics. Use Analyze for a one-shot run.
type Analyzer struct {
	scope      *symbols.Scope
	depth      int
	errors     diagnostics.List
	records    []ScopeRecord
	inFunction bool
}

// Analyze type-checks block from a fresh global scope pre-populated
// with the built-in function registry. It returns the diagnostics
// produced (empty means the program is semantically sound) and a
// snapshot of every scope visited, for the symbol-table dump.
func Analyze(block ast.Block) (diagnostics.List, []ScopeRecord) {
	a := &Analyzer{scope: symbols.NewGlobalScope()}
	a.walkBlock(block)
	a.records = append(a.records, ScopeRecord{Depth: 0, Symbols: a.scope.All()})
	return a.errors, a.records
}

func (a *Analyzer) errorf(pos ast.Position, format string, args ...any) {
	a.errors = append(a.errors, diagnostics.New(diagnostics.Semantic, pos.Line, pos.Column, format, args...))
}

func (a *Analyzer) pushScope() {
	a.scope = symbols.NewScope(a.scope)
	a.depth++
}

func (a *Analyzer) popScope() {
	a.records = append(a.records, ScopeRecord{Depth: a.depth, Symbols: a.scope.All()})
	a.scope = a.scope.Parent()
	a.depth--
}

func (a *Analyzer) walkBlock(block ast.Block) {
	for _, stmt := range block {
		a.walkStmt(stmt)
	}
}

// --- statements ------------------------------------------------------

func (a *Analyzer) walkStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.Assign:
		a.visitAssign(n)
	case *ast.If:
		a.visitIf(n)
	case *ast.While:
		a.visitWhile(n)
	case *ast.For:
		a.visitFor(n)
	case *ast.FuncDef:
		a.visitFuncDef(n)
	case *ast.Return:
		a.visitReturn(n)
	case *ast.ExprStmt:
		a.exprType(n.Expression)
	}
}

func (a *Analyzer) visitAssign(n *ast.Assign) {
	valueType := a.exprType(n.Value)

	if existing, ok := a.scope.LookupLocal(n.Name); ok {
		if !assignable(existing.Type, valueType) {
			a.errorf(n.Position, "cannot assign %s to %s, which already holds %s", valueType, n.Name, existing.Type)
		} else if existing.Type == symbols.Unknown {
			existing.Type = valueType
		} else if existing.Type == symbols.IntType && valueType == symbols.FloatType {
			existing.Type = symbols.FloatType
		}
		existing.Initialized = true
		return
	}

	a.scope.Define(&symbols.Symbol{
		Name:        n.Name,
		Kind:        symbols.VariableSymbol,
		Type:        valueType,
		Initialized: true,
		Line:        n.Position.Line,
		Column:      n.Position.Column,
	})
}

// assignable reports whether a value of type src may be stored into a
// binding that currently holds dst: exact matches and unknown on
// either side are always assignable, and int and float mix freely (an
// int binding that receives a float is widened to float by
// visitAssign).
func assignable(dst, src symbols.Type) bool {
	if dst == symbols.Unknown || src == symbols.Unknown || dst == src {
		return true
	}
	return isNumeric(dst) && isNumeric(src)
}

func (a *Analyzer) visitIf(n *ast.If) {
	a.checkBoolCondition(n.Condition)
	a.pushScope()
	a.walkBlock(n.Then)
	a.popScope()

	for _, elif := range n.Elifs {
		a.checkBoolCondition(elif.Condition)
		a.pushScope()
		a.walkBlock(elif.Body)
		a.popScope()
	}

	if n.Else != nil {
		a.pushScope()
		a.walkBlock(n.Else)
		a.popScope()
	}
}

func (a *Analyzer) visitWhile(n *ast.While) {
	a.checkBoolCondition(n.Condition)
	a.pushScope()
	a.walkBlock(n.Body)
	a.popScope()
}

func (a *Analyzer) checkBoolCondition(cond ast.Expr) {
	t := a.exprType(cond)
	if t != symbols.BoolType && t != symbols.Unknown {
		a.errorf(cond.Pos(), "condition must be bool, got %s", t)
	}
}

func (a *Analyzer) visitFor(n *ast.For) {
	iterType := a.exprType(n.Iter)
	if iterType != symbols.ListType && iterType != symbols.StringType && iterType != symbols.Unknown {
		a.errorf(n.Iter.Pos(), "for-loop iterable must be a list or string, got %s", iterType)
	}

	loopVarType := symbols.Unknown
	if iterType == symbols.StringType {
		loopVarType = symbols.StringType
	}

	a.pushScope()
	a.scope.Define(&symbols.Symbol{
		Name:        n.Name,
		Kind:        symbols.VariableSymbol,
		Type:        loopVarType,
		Initialized: true,
		Line:        n.Position.Line,
		Column:      n.Position.Column,
	})
	a.walkBlock(n.Body)
	a.popScope()
}

func (a *Analyzer) visitFuncDef(n *ast.FuncDef) {
	if !a.scope.Define(&symbols.Symbol{
		Name:        n.Name,
		Kind:        symbols.FunctionSymbol,
		Type:        symbols.Unknown,
		Arity:       len(n.Params),
		Params:      append([]string(nil), n.Params...),
		Initialized: true,
		Line:        n.Position.Line,
		Column:      n.Position.Column,
	}) {
		a.errorf(n.Position, "function %s is already defined in this scope", n.Name)
	}

	a.pushScope()
	for _, param := range n.Params {
		a.scope.Define(&symbols.Symbol{
			Name:        param,
			Kind:        symbols.ParameterSymbol,
			Type:        symbols.Unknown,
			Initialized: true,
		})
	}
	wasInFunction := a.inFunction
	a.inFunction = true
	a.walkBlock(n.Body)
	a.inFunction = wasInFunction
	a.popScope()
}

func (a *Analyzer) visitReturn(n *ast.Return) {
	if !a.inFunction {
		a.errorf(n.Position, "return statement outside of a function")
	}
	if n.Value != nil {
		a.exprType(n.Value)
	}
}

// --- expressions -------------------------------------------------------

func (a *Analyzer) exprType(expr ast.Expr) symbols.Type {
	switch n := expr.(type) {
	case *ast.Literal:
		return literalType(n.Kind)
	case *ast.Variable:
		return a.visitVariable(n)
	case *ast.Binary:
		return a.visitBinary(n)
	case *ast.Unary:
		return a.visitUnary(n)
	case *ast.Call:
		return a.visitCall(n)
	case *ast.ListLit:
		return a.visitList(n)
	case *ast.Index:
		return a.visitIndex(n)
	default:
		return symbols.Unknown
	}
}

func literalType(kind ast.LiteralKind) symbols.Type {
	switch kind {
	case ast.IntLiteral:
		return symbols.IntType
	case ast.FloatLiteral:
		return symbols.FloatType
	case ast.StringLiteral:
		return symbols.StringType
	case ast.BoolLiteral:
		return symbols.BoolType
	default:
		return symbols.Unknown
	}
}

func (a *Analyzer) visitVariable(n *ast.Variable) symbols.Type {
	sym, ok := a.scope.Lookup(n.Name)
	if !ok {
		a.errorf(n.Position, "undefined variable %q", n.Name)
		return symbols.Unknown
	}
	if !sym.Initialized {
		a.errorf(n.Position, "variable %q used before initialization", n.Name)
		return symbols.Unknown
	}
	return sym.Type
}

func isNumeric(t symbols.Type) bool {
	return t == symbols.IntType || t == symbols.FloatType
}

func (a *Analyzer) visitBinary(n *ast.Binary) symbols.Type {
	left := a.exprType(n.Left)
	right := a.exprType(n.Right)

	switch n.Op {
	case ast.OpAnd, ast.OpOr:
		return symbols.BoolType
	case ast.OpEq, ast.OpNotEq, ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq:
		return symbols.BoolType
	case ast.OpAdd:
		if left == symbols.StringType && right == symbols.StringType {
			return symbols.StringType
		}
		return a.arithmeticType(n, left, right)
	default: // OpSub, OpMul, OpDiv, OpMod, OpPow
		return a.arithmeticType(n, left, right)
	}
}

func (a *Analyzer) arithmeticType(n *ast.Binary, left, right symbols.Type) symbols.Type {
	if left == symbols.Unknown || right == symbols.Unknown {
		return symbols.Unknown
	}
	if !isNumeric(left) || !isNumeric(right) {
		a.errorf(n.Position, "arithmetic operator requires numeric operands, got %s and %s", left, right)
		return symbols.Unknown
	}
	if left == symbols.FloatType || right == symbols.FloatType {
		return symbols.FloatType
	}
	return symbols.IntType
}

func (a *Analyzer) visitUnary(n *ast.Unary) symbols.Type {
	operand := a.exprType(n.Operand)
	if n.Op == ast.OpNot {
		return symbols.BoolType
	}
	if operand == symbols.Unknown || isNumeric(operand) {
		return operand
	}
	a.errorf(n.Position, "unary sign operator requires a numeric operand, got %s", operand)
	return symbols.Unknown
}

func (a *Analyzer) visitCall(n *ast.Call) symbols.Type {
	for _, arg := range n.Args {
		a.exprType(arg)
	}

	sym, ok := a.scope.Lookup(n.Name)
	if !ok {
		a.errorf(n.Position, "undefined function %q", n.Name)
		return symbols.Unknown
	}
	if sym.Kind != symbols.FunctionSymbol {
		a.errorf(n.Position, "%q is not callable", n.Name)
		return symbols.Unknown
	}
	if sym.Arity != symbols.Variadic && sym.Arity != len(n.Args) {
		a.errorf(n.Position, "%q expects %d argument(s), got %d", n.Name, sym.Arity, len(n.Args))
	}
	return sym.Type
}

func (a *Analyzer) visitList(n *ast.ListLit) symbols.Type {
	for _, el := range n.Elements {
		a.exprType(el)
	}
	return symbols.ListType
}

func (a *Analyzer) visitIndex(n *ast.Index) symbols.Type {
	base := a.exprType(n.Base)
	idx := a.exprType(n.IndexExpr)

	if base != symbols.ListType && base != symbols.StringType && base != symbols.Unknown {
		a.errorf(n.Position, "cannot index into %s", base)
	}
	if idx != symbols.IntType && idx != symbols.Unknown {
		a.errorf(n.Position, "index must be an int, got %s", idx)
	}
	if base == symbols.StringType {
		return symbols.StringType
	}
	return symbols.Unknown
}
