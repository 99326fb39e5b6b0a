// Package diagnostics defines the shared error-record shape used by
// every stage of the pipeline: a {Line, Column, Message} struct with
// an Error() method, tagged by which stage raised it so lexical,
// syntax, and semantic errors share a single collection and
// rendering.
package diagnostics

import "fmt"

// Stage identifies which pipeline stage raised a Diagnostic.
type Stage string

const (
	Lexical  Stage = "Lexical"
	Syntax   Stage = "Syntax"
	Semantic Stage = "Semantic"
)

// Diagnostic is a single error record with a source position. Errors
// are data, not control-flow exceptions: every stage accumulates a
// List and returns it alongside its primary output.
type Diagnostic struct {
	Stage   Stage
	Line    int
	Column  int
	Message string
}

func New(stage Stage, line, column int, format string, args ...any) Diagnostic {
	return Diagnostic{Stage: stage, Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("Line %d, Column %d: %s", d.Line, d.Column, d.Message)
}

// List is a bounded, append-only collection of diagnostics produced
// by one stage.
type List []Diagnostic

func (l List) HasErrors() bool {
	return len(l) > 0
}

// Strings renders every diagnostic as "Line L, Column C: <message>",
// the user-visible format surfaced by every CLI subcommand.
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.Error()
	}
	return out
}
