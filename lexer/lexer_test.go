package lexer

import (
	"testing"

	"indentc/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := New(src).Scan()
	if err != nil {
		t.Fatalf("Scan(%q) returned error: %v", src, err)
	}
	return toks
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestScanSimpleAssignmentAndPrint(t *testing.T) {
	toks := scanAll(t, "x = 42\nprint(x)\n")
	if len(toks) != 10 { // 9 tokens + EOF
		t.Fatalf("got %d tokens, want 10 (9 + EOF): %v", len(toks), types(toks))
	}
	want := []token.Type{
		token.IDENTIFIER, token.ASSIGN, token.INTEGER, token.NEWLINE,
		token.IDENTIFIER, token.LPAREN, token.IDENTIFIER, token.RPAREN, token.NEWLINE,
		token.EOF,
	}
	got := types(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestIndentDedentBalance(t *testing.T) {
	src := "if x:\n    y = 1\n    z = 2\nw = 3\n"
	toks := scanAll(t, src)
	var indents, dedents int
	for _, tok := range toks {
		switch tok.Type {
		case token.INDENT:
			indents++
		case token.DEDENT:
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Errorf("got %d INDENT / %d DEDENT, want 1 / 1", indents, dedents)
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Error("last token must be EOF")
	}
}

func TestBlankAndCommentLinesDoNotAffectIndentation(t *testing.T) {
	src := "if x:\n    y = 1\n\n    # a comment\n    z = 2\nw = 3\n"
	toks := scanAll(t, src)
	var indents, dedents int
	for _, tok := range toks {
		switch tok.Type {
		case token.INDENT:
			indents++
		case token.DEDENT:
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Errorf("got %d INDENT / %d DEDENT, want 1 / 1", indents, dedents)
	}
}

func TestInconsistentDedentIsAnError(t *testing.T) {
	src := "if x:\n        y = 1\n    z = 2\n"
	_, err := New(src).Scan()
	if err == nil {
		t.Fatal("expected an inconsistent-dedent LexicalError, got nil")
	}
	if _, ok := err.(LexicalError); !ok {
		t.Errorf("expected LexicalError, got %T", err)
	}
}

func TestTwoCharacterOperatorsPrecedeOneCharacterForms(t *testing.T) {
	toks := scanAll(t, "a ** b == c != d <= e >= f\n")
	want := []token.Type{
		token.IDENTIFIER, token.POWER, token.IDENTIFIER, token.EQUAL, token.IDENTIFIER,
		token.NOT_EQUAL, token.IDENTIFIER, token.LESS_EQUAL, token.IDENTIFIER,
		token.GREATER_EQUAL, token.IDENTIFIER, token.NEWLINE, token.EOF,
	}
	got := types(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMalformedFloatIsAnError(t *testing.T) {
	_, err := New("x = 1.\n").Scan()
	if err == nil {
		t.Fatal("expected malformed float error")
	}
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	_, err := New("x = \"hello\n").Scan()
	if err == nil {
		t.Fatal("expected unterminated string error")
	}
}

func TestStringEscapes(t *testing.T) {
	toks := scanAll(t, `x = "a\nb"` + "\n")
	lit := toks[2].Literal.(string)
	if lit != "a\nb" {
		t.Errorf("got %q, want %q", lit, "a\nb")
	}
}

func TestBooleanLiterals(t *testing.T) {
	toks := scanAll(t, "x = True\ny = False\n")
	if toks[2].Type != token.BOOLEAN || toks[2].Literal != true {
		t.Errorf("expected BOOLEAN true, got %v %v", toks[2].Type, toks[2].Literal)
	}
	if toks[6].Type != token.BOOLEAN || toks[6].Literal != false {
		t.Errorf("expected BOOLEAN false, got %v %v", toks[6].Type, toks[6].Literal)
	}
}

func TestEOFAlwaysExactlyOneAndLast(t *testing.T) {
	for _, src := range []string{"", "x = 1\n", "if x:\n    y = 1\n"} {
		toks := scanAll(t, src)
		count := 0
		for _, tok := range toks {
			if tok.Type == token.EOF {
				count++
			}
		}
		if count != 1 {
			t.Errorf("source %q: got %d EOF tokens, want exactly 1", src, count)
		}
		if len(toks) == 0 || toks[len(toks)-1].Type != token.EOF {
			t.Errorf("source %q: last token must be EOF", src)
		}
	}
}
