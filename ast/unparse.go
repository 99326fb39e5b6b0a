package ast

import (
	"fmt"
	"strings"
)

// Unparse renders a block of statements back to source text that
// re-lexes to the same non-layout token sequence (the parse-unparse
// round-trip property). Indentation is rendered as four spaces per
// depth level; exact whitespace is not guaranteed to match the
// original, only the non-layout token stream.
func Unparse(stmts Block) string {
	var sb strings.Builder
	writeBlock(&sb, stmts, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
}

func writeBlock(sb *strings.Builder, b Block, depth int) {
	for _, s := range b {
		writeStmt(sb, s, depth)
	}
}

func writeStmt(sb *strings.Builder, s Stmt, depth int) {
	indent(sb, depth)
	switch n := s.(type) {
	case *Assign:
		fmt.Fprintf(sb, "%s = %s\n", n.Name, exprString(n.Value))
	case *If:
		fmt.Fprintf(sb, "if %s:\n", exprString(n.Condition))
		writeBlock(sb, n.Then, depth+1)
		for _, e := range n.Elifs {
			indent(sb, depth)
			fmt.Fprintf(sb, "elif %s:\n", exprString(e.Condition))
			writeBlock(sb, e.Body, depth+1)
		}
		if n.Else != nil {
			indent(sb, depth)
			sb.WriteString("else:\n")
			writeBlock(sb, n.Else, depth+1)
		}
	case *While:
		fmt.Fprintf(sb, "while %s:\n", exprString(n.Condition))
		writeBlock(sb, n.Body, depth+1)
	case *For:
		fmt.Fprintf(sb, "for %s in %s:\n", n.Name, exprString(n.Iter))
		writeBlock(sb, n.Body, depth+1)
	case *FuncDef:
		fmt.Fprintf(sb, "def %s(%s):\n", n.Name, strings.Join(n.Params, ", "))
		writeBlock(sb, n.Body, depth+1)
	case *Return:
		if n.Value != nil {
			fmt.Fprintf(sb, "return %s\n", exprString(n.Value))
		} else {
			sb.WriteString("return\n")
		}
	case *ExprStmt:
		fmt.Fprintf(sb, "%s\n", exprString(n.Expression))
	}
}

// binaryPrecedence mirrors the parser's precedence-climbing chain
// (or < and < equality < comparison < term < factor < unary < power)
// so unparsing only parenthesizes where the grammar actually requires
// it, preserving the parse-unparse round-trip property.
func binaryPrecedence(op BinaryOp) int {
	switch op {
	case OpOr:
		return 1
	case OpAnd:
		return 2
	case OpEq, OpNotEq:
		return 3
	case OpLess, OpLessEq, OpGreater, OpGreaterEq:
		return 4
	case OpAdd, OpSub:
		return 5
	case OpMul, OpDiv, OpMod:
		return 6
	case OpPow:
		return 8
	}
	return 0
}

const unaryPrecedence = 7

func exprString(e Expr) string {
	return exprStringMinPrec(e, 0)
}

// exprStringMinPrec renders e, wrapping it in parentheses only when
// its own precedence is too low for the context it sits in (minPrec).
func exprStringMinPrec(e Expr, minPrec int) string {
	switch n := e.(type) {
	case *Literal:
		return literalString(n)
	case *Variable:
		return n.Name
	case *Binary:
		prec := binaryPrecedence(n.Op)
		leftMin, rightMin := prec, prec+1
		if n.Op == OpPow { // right-associative: the parser reads the right side as a unary
			leftMin, rightMin = prec+1, unaryPrecedence
		}
		s := fmt.Sprintf("%s %s %s", exprStringMinPrec(n.Left, leftMin), binaryOpString(n.Op), exprStringMinPrec(n.Right, rightMin))
		if prec < minPrec {
			return "(" + s + ")"
		}
		return s
	case *Unary:
		op := unaryOpString(n.Op)
		if n.Op == OpNot {
			op += " "
		}
		s := fmt.Sprintf("%s%s", op, exprStringMinPrec(n.Operand, unaryPrecedence))
		if unaryPrecedence < minPrec {
			return "(" + s + ")"
		}
		return s
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = exprString(a)
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
	case *ListLit:
		els := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			els[i] = exprString(el)
		}
		return "[" + strings.Join(els, ", ") + "]"
	case *Index:
		return fmt.Sprintf("%s[%s]", exprStringMinPrec(n.Base, binaryPrecedence(OpPow)+1), exprString(n.IndexExpr))
	}
	return ""
}
