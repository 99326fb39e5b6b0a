package parser

import (
	"testing"

	"indentc/ast"
	"indentc/lexer"
)

func parseSource(t *testing.T, src string) (ast.Block, int) {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	block, errs := Make(toks).Parse()
	return block, len(errs)
}

func TestParseAssignment(t *testing.T) {
	block, nerr := parseSource(t, "x = 42\n")
	if nerr != 0 {
		t.Fatalf("unexpected parse errors: %d", nerr)
	}
	if len(block) != 1 {
		t.Fatalf("got %d statements, want 1", len(block))
	}
	assign, ok := block[0].(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *ast.Assign", block[0])
	}
	if assign.Name != "x" {
		t.Errorf("got name %q, want x", assign.Name)
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "if a < b:\n    x = 1\nelif a == b:\n    x = 2\nelse:\n    x = 3\n"
	block, nerr := parseSource(t, src)
	if nerr != 0 {
		t.Fatalf("unexpected parse errors: %d", nerr)
	}
	ifStmt, ok := block[0].(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", block[0])
	}
	if len(ifStmt.Elifs) != 1 {
		t.Fatalf("got %d elifs, want 1", len(ifStmt.Elifs))
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestParseWhile(t *testing.T) {
	block, nerr := parseSource(t, "while x < 10:\n    x = x + 1\n")
	if nerr != 0 {
		t.Fatalf("unexpected parse errors: %d", nerr)
	}
	if _, ok := block[0].(*ast.While); !ok {
		t.Fatalf("got %T, want *ast.While", block[0])
	}
}

func TestParseForLoop(t *testing.T) {
	block, nerr := parseSource(t, "for c in \"ab\":\n    print(c)\n")
	if nerr != 0 {
		t.Fatalf("unexpected parse errors: %d", nerr)
	}
	forStmt, ok := block[0].(*ast.For)
	if !ok {
		t.Fatalf("got %T, want *ast.For", block[0])
	}
	if forStmt.Name != "c" {
		t.Errorf("got loop var %q, want c", forStmt.Name)
	}
}

func TestParseFuncDefAndCall(t *testing.T) {
	src := "def f(n):\n    return n * 2\nprint(f(5))\n"
	block, nerr := parseSource(t, src)
	if nerr != 0 {
		t.Fatalf("unexpected parse errors: %d", nerr)
	}
	fn, ok := block[0].(*ast.FuncDef)
	if !ok {
		t.Fatalf("got %T, want *ast.FuncDef", block[0])
	}
	if fn.Name != "f" || len(fn.Params) != 1 || fn.Params[0] != "n" {
		t.Errorf("got %+v, want f(n)", fn)
	}
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok || ret.Value == nil {
		t.Fatalf("expected a return with a value, got %+v", fn.Body[0])
	}
}

func TestPowerIsRightAssociativeAndBindsTighterThanUnary(t *testing.T) {
	block, nerr := parseSource(t, "x = -2 ** 2\n")
	if nerr != 0 {
		t.Fatalf("unexpected parse errors: %d", nerr)
	}
	assign := block[0].(*ast.Assign)
	unary, ok := assign.Value.(*ast.Unary)
	if !ok {
		t.Fatalf("got %T, want outermost *ast.Unary (-(2**2))", assign.Value)
	}
	if unary.Op != ast.OpNeg {
		t.Errorf("got unary op %v, want OpNeg", unary.Op)
	}
	if _, ok := unary.Operand.(*ast.Binary); !ok {
		t.Errorf("got operand %T, want *ast.Binary (2**2)", unary.Operand)
	}

	block, nerr = parseSource(t, "y = 2 ** 3 ** 2\n")
	if nerr != 0 {
		t.Fatalf("unexpected parse errors: %d", nerr)
	}
	outer, ok := block[0].(*ast.Assign).Value.(*ast.Binary)
	if !ok || outer.Op != ast.OpPow {
		t.Fatalf("got %T, want outermost ** (2**(3**2))", block[0].(*ast.Assign).Value)
	}
	if inner, ok := outer.Right.(*ast.Binary); !ok || inner.Op != ast.OpPow {
		t.Errorf("got right operand %T, want nested ** (3**2)", outer.Right)
	}
}

func TestAssignmentRequiresTwoTokenLookahead(t *testing.T) {
	// `foo` followed by `(` is a call expression-statement, not an
	// assignment; the two-token lookahead must tell them apart.
	block, nerr := parseSource(t, "foo()\n")
	if nerr != 0 {
		t.Fatalf("unexpected parse errors: %d", nerr)
	}
	if _, ok := block[0].(*ast.ExprStmt); !ok {
		t.Fatalf("got %T, want *ast.ExprStmt", block[0])
	}
}

func TestBareIdentifierInStatementPositionIsRejected(t *testing.T) {
	// A bare identifier that is neither an assignment target (no
	// following `=`) nor a call (no following `(`) cannot stand alone
	// as a statement.
	_, nerr := parseSource(t, "x\n")
	if nerr == 0 {
		t.Fatal("expected a syntax error for a bare identifier in statement position")
	}
}

func TestSyntaxErrorRecoveryContinuesParsing(t *testing.T) {
	// `pass` is not in the grammar at all; it lexes as a plain
	// identifier, which is rejected in statement position, but the
	// parser should still recover and parse the following statement.
	src := "if 1:\n    pass\nx = 2\n"
	block, errs := parseSource(t, src)
	if errs == 0 {
		t.Fatal("expected at least one syntax error from 'pass'")
	}
	if len(block) == 0 {
		t.Fatal("expected the if-statement to still be present in the recovered tree")
	}
	if _, ok := block[len(block)-1].(*ast.Assign); !ok {
		t.Errorf("expected the statement after the error (x = 2) to be parsed, got %T", block[len(block)-1])
	}
}

func TestIndexChaining(t *testing.T) {
	block, nerr := parseSource(t, "x = a[0][1]\n")
	if nerr != 0 {
		t.Fatalf("unexpected parse errors: %d", nerr)
	}
	assign := block[0].(*ast.Assign)
	outer, ok := assign.Value.(*ast.Index)
	if !ok {
		t.Fatalf("got %T, want *ast.Index", assign.Value)
	}
	if _, ok := outer.Base.(*ast.Index); !ok {
		t.Errorf("got base %T, want nested *ast.Index", outer.Base)
	}
}
