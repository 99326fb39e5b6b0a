// Package repl implements the interactive shell: read a line, compile
// it, print whichever dumps the caller asked for. Grounded on the
// line-buffering REPL loop shape (prompt, accumulate until the input
// looks complete, "exit" sentinel) but built on
// github.com/chzyer/readline for history and line editing instead of
// a bare bufio.Scanner.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"indentc/ast"
	"indentc/compiler"
	"indentc/config"
	"indentc/output"
	"indentc/tac"
)

const (
	primaryPrompt   = ">>> "
	continuedPrompt = "... "
	exitSentinel    = "exit"
)

// Run starts an interactive session reading from stdin (via
// readline's terminal handling) and writing results to out. It
// returns when the user types "exit" or sends EOF.
func Run(out io.Writer, opts config.Options) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          primaryPrompt,
		HistoryFile:     "/tmp/indentc_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(out, "indentc interactive shell")

	var buffer strings.Builder
	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(primaryPrompt)
		} else {
			rl.SetPrompt(continuedPrompt)
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == exitSentinel && buffer.Len() == 0 {
			return nil
		}

		if strings.TrimSpace(line) == "" && buffer.Len() > 0 {
			evaluateAndDump(out, buffer.String(), opts)
			buffer.Reset()
			continue
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)

		if !looksComplete(line) {
			continue
		}
		evaluateAndDump(out, buffer.String(), opts)
		buffer.Reset()
	}
}

// evaluateAndDump compiles source, prints the result and, when
// opts.OutputDir is set, additionally writes the five dump files for
// this evaluation under it — each evaluation overwrites the previous
// one's files.
func evaluateAndDump(out io.Writer, source string, opts config.Options) {
	res := compiler.Compile(source, opts)
	printResult(out, res, opts)
	if opts.OutputDir != "" {
		if err := dumpToDir(opts.OutputDir, res); err != nil {
			fmt.Fprintln(out, err.Error())
		}
	}
}

// looksComplete reports whether line, taken alone, is unlikely to be
// continued by an indented block — a line ending in ':' opens one and
// needs a blank line to close it; anything else is a complete
// statement on its own.
func looksComplete(line string) bool {
	return !strings.HasSuffix(strings.TrimSpace(line), ":")
}

func printResult(out io.Writer, res *compiler.Result, opts config.Options) {
	for _, d := range res.Diagnostics {
		fmt.Fprintln(out, d.Error())
	}
	if res.Fatal() && !opts.Debug {
		return
	}

	if opts.Debug {
		if res.AST != nil {
			fmt.Fprint(out, ast.Dump(res.AST))
		}
		if res.TAC != nil {
			for _, line := range tac.Render(res.TAC) {
				fmt.Fprintln(out, line)
			}
		}
		if res.Assembly != "" {
			fmt.Fprint(out, res.Assembly)
		}
		return
	}

	if res.Assembly != "" {
		fmt.Fprint(out, res.Assembly)
	}
}

// dumpToDir writes the usual five files for one REPL evaluation,
// for sessions started with both -i and -o.
func dumpToDir(dir string, res *compiler.Result) error {
	return output.WriteAll(dir, "repl", res)
}
