// Package output writes a compile Result's stage-by-stage dumps to
// disk: tokens, AST, symbol table, TAC listing, and assembly. Each
// file is written independently with os.Create/defer Close, in the
// teacher's DumpBytecode style, so a partial Result (e.g. one that
// stopped before codegen) still dumps every stage that did complete.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"indentc/ast"
	"indentc/compiler"
	"indentc/semantic"
	"indentc/symbols"
	"indentc/tac"
	"indentc/token"
)

// WriteAll writes the five dump files for res under dir, named after
// baseName, creating dir if it does not already exist.
func WriteAll(dir, baseName string, res *compiler.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	writers := []struct {
		suffix  string
		content func() string
	}{
		{"_tokens.txt", func() string { return RenderTokens(res.Tokens) }},
		{"_ast.txt", func() string { return ast.Dump(res.AST) }},
		{"_symbols.txt", func() string { return RenderSymbols(res.Scopes) }},
		{"_code.txt", func() string { return strings.Join(tac.Render(res.TAC), "\n") + "\n" }},
		{"_x86.asm", func() string { return res.Assembly }},
	}

	for _, w := range writers {
		path := filepath.Join(dir, baseName+w.suffix)
		if err := writeFile(path, w.content()); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// RenderTokens renders one token per line in fixed-width columns,
// with a header and a trailing total count.
func RenderTokens(tokens []token.Token) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-14s %-20s %6s %6s\n", "KIND", "VALUE", "LINE", "COLUMN")
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%-14s %-20s %6d %6d\n", tok.Type, tokenValue(tok), tok.Line, tok.Column)
	}
	fmt.Fprintf(&sb, "\n%d tokens\n", len(tokens))
	return sb.String()
}

func tokenValue(tok token.Token) string {
	if tok.Lexeme != "" {
		return tok.Lexeme
	}
	return fmt.Sprintf("%v", tok.Literal)
}

// RenderSymbols renders every recorded scope as a table of its
// bindings: name, kind, type, defining line, initialized flag, and
// (for functions) the ordered parameter name list.
func RenderSymbols(scopes []semantic.ScopeRecord) string {
	var sb strings.Builder
	for _, scope := range scopes {
		fmt.Fprintf(&sb, "scope depth=%d\n", scope.Depth)
		fmt.Fprintf(&sb, "%-16s %-10s %-8s %6s %-12s %s\n", "NAME", "KIND", "TYPE", "LINE", "INITIALIZED", "PARAMETERS")
		for _, sym := range scope.Symbols {
			fmt.Fprintf(&sb, "%-16s %-10s %-8s %6d %-12v %s\n",
				sym.Name, sym.Kind, sym.Type, sym.Line, sym.Initialized, parametersText(sym))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func parametersText(sym *symbols.Symbol) string {
	if sym.Kind != symbols.FunctionSymbol {
		return ""
	}
	if sym.Arity == symbols.Variadic {
		return "variadic"
	}
	return strings.Join(sym.Params, ", ")
}
