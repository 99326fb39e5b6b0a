package lexer

import "fmt"

// LexicalError reports a scanning failure at a source position: an
// unterminated string, a malformed float, an unknown character, or an
// inconsistent dedent. The lexer fails fast on the first one.
type LexicalError struct {
	Line    int
	Column  int
	Message string
}

func newLexicalError(line, column int, format string, args ...any) LexicalError {
	return LexicalError{Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}

func (e LexicalError) Error() string {
	return fmt.Sprintf("Line %d, Column %d: %s", e.Line, e.Column, e.Message)
}
