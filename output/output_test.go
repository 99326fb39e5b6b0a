package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"indentc/compiler"
	"indentc/config"
)

func TestWriteAllProducesFiveFiles(t *testing.T) {
	res := compiler.Compile("x = 1\nprint(x)\n", config.Options{})
	dir := t.TempDir()

	if err := WriteAll(dir, "sample", res); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	for _, suffix := range []string{"_tokens.txt", "_ast.txt", "_symbols.txt", "_code.txt", "_x86.asm"} {
		path := filepath.Join(dir, "sample"+suffix)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
		if len(data) == 0 {
			t.Errorf("expected %s to be non-empty", path)
		}
	}
}

func TestRenderTokensIncludesHeaderAndCount(t *testing.T) {
	res := compiler.Compile("x = 1\n", config.Options{})
	rendered := RenderTokens(res.Tokens)
	if !strings.Contains(rendered, "KIND") || !strings.Contains(rendered, "COLUMN") {
		t.Error("expected a header row")
	}
	if !strings.HasSuffix(strings.TrimRight(rendered, "\n"), "tokens") {
		t.Error("expected a trailing token count line")
	}
}

func TestRenderSymbolsIncludesEveryScope(t *testing.T) {
	res := compiler.Compile("x = 1\ndef f(n):\n    return n\n", config.Options{Debug: true})
	rendered := RenderSymbols(res.Scopes)
	if !strings.Contains(rendered, "x") {
		t.Error("expected module-scope symbol x")
	}
	if !strings.Contains(rendered, "n") {
		t.Error("expected function-scope parameter n")
	}
	if !strings.Contains(rendered, "PARAMETERS") {
		t.Error("expected a PARAMETERS column header")
	}
}

func TestRenderSymbolsShowsFunctionParameterNames(t *testing.T) {
	res := compiler.Compile("def add(a, b):\n    return a + b\n", config.Options{Debug: true})
	rendered := RenderSymbols(res.Scopes)
	if !strings.Contains(rendered, "a, b") {
		t.Errorf("expected the function row to list parameters %q, got:\n%s", "a, b", rendered)
	}
}
