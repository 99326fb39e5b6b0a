package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"indentc/config"
	"indentc/repl"
)

// replCmd implements the "repl" subcommand: the `-i`/`--interactive`
// entry point's target, an interactive shell over the same pipeline
// the "compile" subcommand runs in one shot.
type replCmd struct {
	debug  bool
	outDir string
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive shell" }
func (*replCmd) Usage() string {
	return `repl [-d] [-o DIR]:
  Start an interactive shell, compiling each statement as it is
  entered.
`
}

func (c *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.debug, "d", false, "enable verbose per-stage dumps")
	f.BoolVar(&c.debug, "debug", false, "enable verbose per-stage dumps")
	f.StringVar(&c.outDir, "o", "", "also write dump files for each evaluation under DIR")
	f.StringVar(&c.outDir, "output", "", "also write dump files for each evaluation under DIR")
}

func (c *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts := config.Options{Debug: c.debug, OutputDir: c.outDir, Interactive: true}
	if err := repl.Run(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "repl: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
