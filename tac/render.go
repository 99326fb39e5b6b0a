package tac

import "fmt"

var binarySymbols = map[Opcode]string{
	ADD: "+", SUB: "-", MUL: "*", DIV: "/", MOD: "%", POW: "**",
	EQ: "==", NEQ: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
	AND: "and", OR: "or",
}

var unarySymbols = map[Opcode]string{
	NEG: "-", POS: "+", NOT: "not",
}

// String renders one instruction in the program's textual TAC form.
func (in Instruction) String() string {
	switch in.Op {
	case LABEL:
		return fmt.Sprintf("LABEL %s", in.Arg1)
	case GOTO:
		return fmt.Sprintf("GOTO %s", in.Arg1)
	case IF_FALSE:
		return fmt.Sprintf("IF_FALSE %s GOTO %s", in.Arg1, in.Target)
	case IF_TRUE:
		return fmt.Sprintf("IF_TRUE %s GOTO %s", in.Arg1, in.Target)
	case ASSIGN:
		return fmt.Sprintf("ASSIGN %s → %s", in.Arg1, in.Result)
	case PARAM:
		return fmt.Sprintf("PARAM %s", in.Arg1)
	case CALL:
		return fmt.Sprintf("CALL %s, %s → %s", in.Arg1, in.Arg2, in.Result)
	case RETURN:
		if in.Arg1 == "" {
			return "RETURN"
		}
		return fmt.Sprintf("RETURN %s", in.Arg1)
	case PRINT:
		return fmt.Sprintf("PRINT %s", in.Arg1)
	case FUNCTION:
		return fmt.Sprintf("FUNCTION %s", in.Arg1)
	case ENDFUNCTION:
		return fmt.Sprintf("END_FUNCTION %s", in.Arg1)
	case CREATELIST:
		return fmt.Sprintf("CREATE_LIST → %s", in.Result)
	case APPEND:
		return fmt.Sprintf("APPEND %s, %s", in.Arg1, in.Arg2)
	case INDEX:
		return fmt.Sprintf("INDEX %s, %s → %s", in.Arg1, in.Arg2, in.Result)
	case LEN:
		return fmt.Sprintf("LEN %s → %s", in.Arg1, in.Result)
	case NEG, NOT, POS:
		return fmt.Sprintf("%s = %s %s", in.Result, unarySymbols[in.Op], in.Arg1)
	default: // binary arithmetic/comparison/logical
		return fmt.Sprintf("%s = %s %s %s", in.Result, in.Arg1, binarySymbols[in.Op], in.Arg2)
	}
}

// Render formats a full instruction list as 1-indexed listing lines.
func Render(program []Instruction) []string {
	lines := make([]string, len(program))
	for i, in := range program {
		lines[i] = fmt.Sprintf("%d: %s", i+1, in.String())
	}
	return lines
}
