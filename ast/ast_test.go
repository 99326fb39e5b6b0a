package ast

import "testing"

func TestDumpAssign(t *testing.T) {
	block := Block{
		&Assign{Name: "x", Value: &Literal{Kind: IntLiteral, Value: int64(42)}},
	}
	out := Dump(block)
	if out == "" {
		t.Fatal("Dump returned empty output")
	}
}

func TestUnparseRoundTripShape(t *testing.T) {
	block := Block{
		&Assign{Name: "x", Value: &Literal{Kind: IntLiteral, Value: int64(42)}},
		&ExprStmt{Expression: &Call{Name: "print", Args: []Expr{&Variable{Name: "x"}}}},
	}
	out := Unparse(block)
	want := "x = 42\nprint(x)\n"
	if out != want {
		t.Errorf("Unparse() = %q, want %q", out, want)
	}
}

func TestUnparseIfElif(t *testing.T) {
	block := Block{
		&If{
			Condition: &Binary{Op: OpLess, Left: &Variable{Name: "a"}, Right: &Variable{Name: "b"}},
			Then:      Block{&Assign{Name: "y", Value: &Literal{Kind: IntLiteral, Value: int64(1)}}},
			Elifs: []ElifClause{{
				Condition: &Binary{Op: OpEq, Left: &Variable{Name: "a"}, Right: &Variable{Name: "b"}},
				Body:      Block{&Assign{Name: "y", Value: &Literal{Kind: IntLiteral, Value: int64(3)}}},
			}},
			Else: Block{&Assign{Name: "y", Value: &Literal{Kind: IntLiteral, Value: int64(2)}}},
		},
	}
	out := Unparse(block)
	if out == "" {
		t.Fatal("Unparse returned empty output")
	}
	want := "if a < b:\n    y = 1\nelif a == b:\n    y = 3\nelse:\n    y = 2\n"
	if out != want {
		t.Errorf("Unparse() = %q, want %q", out, want)
	}
}

func TestUnparseDoesNotAddParensAroundBareComparison(t *testing.T) {
	// A single comparison needs no parentheses at all: adding a
	// stray LPAREN/RPAREN pair here would break the parse-unparse
	// round trip for every if/while condition in the language.
	block := Block{
		&If{
			Condition: &Binary{Op: OpLess, Left: &Variable{Name: "a"}, Right: &Variable{Name: "b"}},
			Then:      Block{&Assign{Name: "y", Value: &Literal{Kind: IntLiteral, Value: int64(1)}}},
		},
	}
	out := Unparse(block)
	want := "if a < b:\n    y = 1\n"
	if out != want {
		t.Errorf("Unparse() = %q, want %q", out, want)
	}
}

func TestUnparseOnlyParenthesizesWhenPrecedenceRequiresIt(t *testing.T) {
	// a + b * c: factor binds tighter than term, so the multiply
	// needs no parens, but (a + b) nested inside a factor position
	// does, since term binds looser than factor.
	noParens := &Binary{
		Op:   OpAdd,
		Left: &Variable{Name: "a"},
		Right: &Binary{
			Op:    OpMul,
			Left:  &Variable{Name: "b"},
			Right: &Variable{Name: "c"},
		},
	}
	if got := exprString(noParens); got != "a + b * c" {
		t.Errorf("exprString() = %q, want %q", got, "a + b * c")
	}

	needsParens := &Binary{
		Op: OpMul,
		Left: &Binary{
			Op:    OpAdd,
			Left:  &Variable{Name: "a"},
			Right: &Variable{Name: "b"},
		},
		Right: &Variable{Name: "c"},
	}
	if got := exprString(needsParens); got != "(a + b) * c" {
		t.Errorf("exprString() = %q, want %q", got, "(a + b) * c")
	}
}
