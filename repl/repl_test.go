package repl

import (
	"bytes"
	"strings"
	"testing"

	"indentc/compiler"
	"indentc/config"
)

func TestLooksCompleteRejectsLineEndingInColon(t *testing.T) {
	if looksComplete("if x > 0:") {
		t.Error("expected a block-opening line to be incomplete")
	}
}

func TestLooksCompleteAcceptsPlainStatement(t *testing.T) {
	if !looksComplete("x = 1") {
		t.Error("expected a plain statement to be complete on its own")
	}
}

func TestPrintResultShowsAssemblyForCleanProgram(t *testing.T) {
	var buf bytes.Buffer
	res := compiler.Compile("x = 1\nprint(x)\n", config.Options{})
	printResult(&buf, res, config.Options{})
	if !strings.Contains(buf.String(), ".data") {
		t.Error("expected generated assembly to be printed")
	}
}

func TestPrintResultShowsDiagnosticsAndStopsOnFailure(t *testing.T) {
	var buf bytes.Buffer
	res := compiler.Compile("print(undefined)\n", config.Options{})
	printResult(&buf, res, config.Options{})
	if !strings.Contains(buf.String(), "undefined") {
		t.Error("expected the diagnostic message to be printed")
	}
	if strings.Contains(buf.String(), ".data") {
		t.Error("expected no assembly to be printed after a fatal error")
	}
}

func TestPrintResultInDebugModeShowsASTAndTAC(t *testing.T) {
	var buf bytes.Buffer
	res := compiler.Compile("x = 1\n", config.Options{Debug: true})
	printResult(&buf, res, config.Options{Debug: true})
	if !strings.Contains(buf.String(), "Assign x") {
		t.Error("expected an AST dump in debug mode")
	}
	if !strings.Contains(buf.String(), "ASSIGN 1 → x") {
		t.Error("expected a TAC listing in debug mode")
	}
}

func TestDumpToDirWritesFiles(t *testing.T) {
	dir := t.TempDir()
	res := compiler.Compile("x = 1\n", config.Options{})
	if err := dumpToDir(dir, res); err != nil {
		t.Fatalf("dumpToDir failed: %v", err)
	}
}
