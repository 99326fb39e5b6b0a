package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"indentc/ast"
	"indentc/compiler"
	"indentc/config"
	"indentc/output"
	"indentc/tac"
)

// dumpCmd implements the "dump" subcommand: print every stage's
// output to stdout, running with debug semantics regardless of the
// -d flag so a stage that failed still shows whatever ran after it.
type dumpCmd struct{}

func (*dumpCmd) Name() string     { return "dump" }
func (*dumpCmd) Synopsis() string { return "Print every pipeline stage's output for a source file" }
func (*dumpCmd) Usage() string {
	return `dump <file>:
  Print the token list, AST, symbol table, TAC listing, and assembly
  for <file> to stdout.
`
}

func (*dumpCmd) SetFlags(f *flag.FlagSet) {}

func (*dumpCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "dump: source file not provided")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "dump: failed to read %s: %v\n", args[0], err)
		return subcommands.ExitFailure
	}

	res := compiler.Compile(string(data), config.Options{Debug: true})

	if len(res.Tokens) > 0 {
		fmt.Println(output.RenderTokens(res.Tokens))
	}
	if res.AST != nil {
		fmt.Println("--- ast ---")
		fmt.Println(ast.Dump(res.AST))
	}
	if res.Scopes != nil {
		fmt.Println("--- symbols ---")
		fmt.Println(output.RenderSymbols(res.Scopes))
	}
	if res.TAC != nil {
		fmt.Println("--- code ---")
		for _, line := range tac.Render(res.TAC) {
			fmt.Println(line)
		}
	}
	if res.Assembly != "" {
		fmt.Println("--- x86 ---")
		fmt.Println(res.Assembly)
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if res.Fatal() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
