package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"indentc/ast"
	"indentc/compiler"
	"indentc/config"
	"indentc/output"
	"indentc/tac"
)

// compileCmd implements the "compile" subcommand: read a source file,
// run it through the full pipeline, and write the five dump files.
type compileCmd struct {
	debug  bool
	outDir string
}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "Compile a source file and write its debug dumps" }
func (*compileCmd) Usage() string {
	return `compile [-d] [-o DIR] <file>:
  Lex, parse, analyze, and emit TAC and x86-64 assembly for <file>,
  writing <base>_tokens.txt, <base>_ast.txt, <base>_symbols.txt,
  <base>_code.txt, and <base>_x86.asm under DIR.
`
}

func (c *compileCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.debug, "d", false, "enable verbose per-stage dumps")
	f.BoolVar(&c.debug, "debug", false, "enable verbose per-stage dumps")
	f.StringVar(&c.outDir, "o", "", "output directory (default \"output\")")
	f.StringVar(&c.outDir, "output", "", "output directory (default \"output\")")
}

func (c *compileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "compile: source file not provided")
		return subcommands.ExitUsageError
	}
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile: failed to read %s: %v\n", path, err)
		return subcommands.ExitFailure
	}

	opts := config.Options{Debug: c.debug, OutputDir: c.outDir}.WithDefaults()
	res := compiler.Compile(string(data), opts)

	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if res.Fatal() && !opts.Debug {
		return subcommands.ExitFailure
	}

	if opts.Debug {
		fmt.Println(output.RenderTokens(res.Tokens))
		fmt.Println("--- ast ---")
		fmt.Println(ast.Dump(res.AST))
		fmt.Println("--- symbols ---")
		fmt.Println(output.RenderSymbols(res.Scopes))
		fmt.Println("--- code ---")
		for _, line := range tac.Render(res.TAC) {
			fmt.Println(line)
		}
		fmt.Println("--- x86 ---")
		fmt.Println(res.Assembly)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := output.WriteAll(opts.OutputDir, base, res); err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		return subcommands.ExitFailure
	}

	if res.Fatal() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
