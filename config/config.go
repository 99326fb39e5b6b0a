// Package config holds the run options shared by every subcommand:
// where to write the debug dumps, whether to keep compiling past
// semantic errors, and whether a source file is being read at all.
package config

// Options controls how a compile request is run.
type Options struct {
	// Debug keeps the pipeline running past non-fatal diagnostics so
	// every stage that can still produce output does, instead of
	// stopping at the first stage that reports an error.
	Debug bool

	// OutputDir is the directory the dump files are written under.
	OutputDir string

	// Interactive marks a REPL session rather than a one-shot file
	// compile; the REPL writes dump files for an evaluation only when
	// OutputDir is set.
	Interactive bool
}

// DefaultOutputDir is used when Options.OutputDir is left empty.
const DefaultOutputDir = "output"

// WithDefaults returns a copy of o with zero-value fields replaced by
// their defaults.
func (o Options) WithDefaults() Options {
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	return o
}
