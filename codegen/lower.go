package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"indentc/tac"
)

var setccFor = map[tac.Opcode]string{
	tac.EQ: "sete", tac.NEQ: "setne",
	tac.LT: "setl", tac.LE: "setle",
	tac.GT: "setg", tac.GE: "setge",
}

// emitInstruction appends the lowering of one instruction, preceded
// by a comment echoing the source TAC line.
func (g *generator) emitInstruction(out *strings.Builder, in tac.Instruction) {
	fmt.Fprintf(out, "    ; %s\n", in.String())

	switch in.Op {
	case tac.LABEL:
		fmt.Fprintf(out, "%s:\n", in.Arg1)
	case tac.GOTO:
		fmt.Fprintf(out, "    jmp %s\n", in.Arg1)
	case tac.IF_FALSE:
		g.load(out, in.Arg1)
		out.WriteString("    cmp rax, 0\n")
		fmt.Fprintf(out, "    je %s\n", in.Target)
	case tac.IF_TRUE:
		g.load(out, in.Arg1)
		out.WriteString("    cmp rax, 0\n")
		fmt.Fprintf(out, "    jne %s\n", in.Target)
	case tac.ASSIGN:
		g.load(out, in.Arg1)
		g.store(out, in.Result)
	case tac.ADD, tac.SUB, tac.MUL:
		g.emitArithmetic(out, in)
	case tac.DIV, tac.MOD:
		g.emitDivMod(out, in)
	case tac.EQ, tac.NEQ, tac.LT, tac.LE, tac.GT, tac.GE:
		g.emitComparison(out, in)
	case tac.AND:
		g.load(out, in.Arg1)
		out.WriteString("    mov rbx, rax\n")
		g.load(out, in.Arg2)
		out.WriteString("    and rax, rbx\n")
		g.store(out, in.Result)
	case tac.OR:
		g.load(out, in.Arg1)
		out.WriteString("    mov rbx, rax\n")
		g.load(out, in.Arg2)
		out.WriteString("    or rax, rbx\n")
		g.store(out, in.Result)
	case tac.NEG:
		g.load(out, in.Arg1)
		out.WriteString("    neg rax\n")
		g.store(out, in.Result)
	case tac.POS:
		g.load(out, in.Arg1)
		g.store(out, in.Result)
	case tac.NOT:
		g.load(out, in.Arg1)
		out.WriteString("    cmp rax, 0\n")
		out.WriteString("    sete al\n")
		out.WriteString("    movzx rax, al\n")
		g.store(out, in.Result)
	case tac.FUNCTION, tac.ENDFUNCTION:
		// handled structurally by partition/emitFunction.
	case tac.RETURN:
		if in.Arg1 != "" {
			g.load(out, in.Arg1)
		}
		out.WriteString("    mov rsp, rbp\n")
		out.WriteString("    pop rbp\n")
		out.WriteString("    ret\n")
	case tac.CALL:
		fmt.Fprintf(out, "    call %s\n", in.Arg1)
		g.store(out, in.Result)
	case tac.PARAM, tac.PRINT, tac.LEN, tac.CREATELIST, tac.APPEND, tac.INDEX:
		// not runnable: the teaching back end has no calling
		// convention for built-ins or a heap for lists/strings.
	}
}

func (g *generator) emitArithmetic(out *strings.Builder, in tac.Instruction) {
	g.load(out, in.Arg1)
	out.WriteString("    mov rbx, rax\n")
	g.load(out, in.Arg2)
	out.WriteString("    mov rcx, rax\n")
	out.WriteString("    mov rax, rbx\n")
	switch in.Op {
	case tac.ADD:
		out.WriteString("    add rax, rcx\n")
	case tac.SUB:
		out.WriteString("    sub rax, rcx\n")
	case tac.MUL:
		out.WriteString("    imul rax, rcx\n")
	}
	g.store(out, in.Result)
}

func (g *generator) emitDivMod(out *strings.Builder, in tac.Instruction) {
	g.load(out, in.Arg1)
	out.WriteString("    mov rbx, rax\n")
	g.load(out, in.Arg2)
	out.WriteString("    mov rcx, rax\n")
	out.WriteString("    mov rax, rbx\n")
	out.WriteString("    cqo\n")
	out.WriteString("    idiv rcx\n")
	if in.Op == tac.DIV {
		g.store(out, in.Result)
	} else {
		out.WriteString("    mov rax, rdx\n")
		g.store(out, in.Result)
	}
}

func (g *generator) emitComparison(out *strings.Builder, in tac.Instruction) {
	g.load(out, in.Arg1)
	out.WriteString("    mov rbx, rax\n")
	g.load(out, in.Arg2)
	out.WriteString("    cmp rbx, rax\n")
	fmt.Fprintf(out, "    %s al\n", setccFor[in.Op])
	out.WriteString("    movzx rax, al\n")
	g.store(out, in.Result)
}

// load emits the instructions that bring operand's value into rax: a
// literal constant, True/False as 1/0, or a named slot dereferenced
// from .data. Floating-point literals are truncated to their integer
// part, a known simplification of this register-based int model.
func (g *generator) load(out *strings.Builder, operand string) {
	switch {
	case operand == "":
		return
	case operand == "True":
		out.WriteString("    mov rax, 1\n")
	case operand == "False":
		out.WriteString("    mov rax, 0\n")
	case strings.HasPrefix(operand, "\""):
		out.WriteString("    mov rax, 1\n") // non-empty string literal: truthy
	case isNamedOperand(operand):
		fmt.Fprintf(out, "    mov rax, [%s]\n", operand)
	default:
		fmt.Fprintf(out, "    mov rax, %s\n", truncateToInt(operand))
	}
}

func (g *generator) store(out *strings.Builder, dest string) {
	if dest == "" {
		return
	}
	fmt.Fprintf(out, "    mov [%s], rax\n", dest)
}

func truncateToInt(numeral string) string {
	if i := strings.IndexByte(numeral, '.'); i >= 0 {
		if i == 0 {
			return "0"
		}
		return numeral[:i]
	}
	if _, err := strconv.ParseInt(numeral, 10, 64); err == nil {
		return numeral
	}
	return numeral
}
