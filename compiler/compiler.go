// Package compiler orchestrates the full pipeline — lexing, parsing,
// semantic analysis, three-address-code emission, and x86-64
// generation — into a single entry point, enforcing the fatal/
// non-fatal policy between stages: a lexical error is always fatal;
// a syntax error short-circuits semantic analysis and the stages
// after it, unless the caller asked for debug output, in which case
// later stages still run on whatever AST was recovered so a partial
// result is still useful for teaching.
package compiler

import (
	"indentc/ast"
	"indentc/codegen"
	"indentc/config"
	"indentc/diagnostics"
	"indentc/lexer"
	"indentc/parser"
	"indentc/semantic"
	"indentc/tac"
	"indentc/token"
)

// Result bundles whichever stage outputs a Compile run produced.
// Later fields are left at their zero value if an earlier fatal
// error stopped the pipeline.
type Result struct {
	Tokens      []token.Token
	AST         ast.Block
	Diagnostics diagnostics.List
	Scopes      []semantic.ScopeRecord
	TAC         []tac.Instruction
	Assembly    string
}

// Compile runs the full pipeline over source under opts, stopping at
// the first fatal stage unless opts.Debug keeps later stages running
// on whatever partial output the earlier stage recovered.
func Compile(source string, opts config.Options) *Result {
	res := &Result{}

	tokens, err := lexer.New(source).Scan()
	if err != nil {
		line, col, msg := 0, 0, err.Error()
		if lexErr, ok := err.(lexer.LexicalError); ok {
			line, col, msg = lexErr.Line, lexErr.Column, lexErr.Message
		}
		res.Diagnostics = append(res.Diagnostics, diagnostics.New(diagnostics.Lexical, line, col, "%s", msg))
		return res
	}
	res.Tokens = tokens

	block, parseErrs := parser.Make(tokens).Parse()
	res.AST = block
	res.Diagnostics = append(res.Diagnostics, parseErrs...)

	if parseErrs.HasErrors() && !opts.Debug {
		return res
	}

	semErrs, scopes := semantic.Analyze(block)
	res.Scopes = scopes
	res.Diagnostics = append(res.Diagnostics, semErrs...)

	if semErrs.HasErrors() && !opts.Debug {
		return res
	}

	res.TAC = tac.Emit(block)
	res.Assembly = codegen.Generate(res.TAC)

	return res
}

// Fatal reports whether res represents a run that failed hard enough
// that a caller should treat it as a compile failure (exit code 1),
// as opposed to one that merely produced diagnostics in debug mode.
func (r *Result) Fatal() bool {
	return r.Diagnostics.HasErrors()
}
