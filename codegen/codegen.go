// Package codegen performs a syntactic translation of a three-address
// instruction stream into a textual x86-64 assembly listing. It is a
// teaching back end: every distinct named operand becomes an 8-byte
// global slot, and computation flows through rax, with rbx and rcx as
// scratch registers for the second operand (and rdx for the division
// remainder); it produces a listing, not a linkable object.
package codegen

import (
	"fmt"
	"strings"

	"indentc/tac"
)

// Generate lowers program into a complete assembly-listing string with
// .data and .text sections and a main entry point.
func Generate(program []tac.Instruction) string {
	g := &generator{}
	return g.run(program)
}

type generator struct {
	slots    []string
	seen     map[string]bool
	asmLines []string
}

func (g *generator) run(program []tac.Instruction) string {
	g.seen = make(map[string]bool)

	mainBody, functions := partition(program)

	for _, in := range program {
		g.collectSlots(in)
	}

	var out strings.Builder
	out.WriteString("; generated assembly listing\n")
	out.WriteString(".data\n")
	for _, slot := range g.slots {
		fmt.Fprintf(&out, "%s: dq 0\n", slot)
	}
	out.WriteString("\n.text\n")
	out.WriteString("global main\n\n")

	for _, fn := range functions {
		g.emitFunction(&out, fn)
	}

	out.WriteString("main:\n")
	out.WriteString("    push rbp\n")
	out.WriteString("    mov rbp, rsp\n")
	for _, in := range mainBody {
		g.emitInstruction(&out, in)
	}
	out.WriteString("    mov rax, 0\n")
	out.WriteString("    ret\n")

	return out.String()
}

// function groups one FUNCTION..END_FUNCTION block.
type function struct {
	name string
	body []tac.Instruction
}

// partition splits a flat instruction stream into the top-level
// instructions that make up main's body and the named procedures
// delimited by FUNCTION/END_FUNCTION, in source order.
func partition(program []tac.Instruction) (mainBody []tac.Instruction, functions []function) {
	var current *function
	for _, in := range program {
		switch in.Op {
		case tac.FUNCTION:
			functions = append(functions, function{name: in.Arg1})
			current = &functions[len(functions)-1]
		case tac.ENDFUNCTION:
			current = nil
		default:
			if current != nil {
				current.body = append(current.body, in)
			} else {
				mainBody = append(mainBody, in)
			}
		}
	}
	return mainBody, functions
}

func (g *generator) emitFunction(out *strings.Builder, fn function) {
	fmt.Fprintf(out, "%s:\n", fn.name)
	out.WriteString("    push rbp\n")
	out.WriteString("    mov rbp, rsp\n")
	for _, in := range fn.body {
		g.emitInstruction(out, in)
	}
	out.WriteString("    mov rsp, rbp\n")
	out.WriteString("    pop rbp\n")
	out.WriteString("    ret\n\n")
}

// isNamedOperand reports whether s refers to a variable or temporary
// (and so needs a .data slot) as opposed to a literal constant.
func isNamedOperand(s string) bool {
	if s == "" || s == "True" || s == "False" {
		return false
	}
	if strings.HasPrefix(s, "\"") {
		return false
	}
	c := s[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (g *generator) addSlot(name string) {
	if !isNamedOperand(name) || g.seen[name] {
		return
	}
	g.seen[name] = true
	g.slots = append(g.slots, name)
}

func (g *generator) collectSlots(in tac.Instruction) {
	switch in.Op {
	case tac.LABEL, tac.GOTO, tac.FUNCTION, tac.ENDFUNCTION:
		// label/function names are not data.
	case tac.CALL:
		g.addSlot(in.Result)
	default:
		g.addSlot(in.Arg1)
		g.addSlot(in.Arg2)
		g.addSlot(in.Result)
	}
}
