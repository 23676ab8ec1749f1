package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// LexError reports a character that starts no valid token. For input that
// is not valid UTF-8, Char holds the offending byte value.
type LexError struct {
	Char rune
	Pos  Position
	// Msg overrides the default "unexpected character" text, e.g. for an
	// unterminated string literal.
	Msg string
}

func (e *LexError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: unexpected character %q", e.Pos, e.Char)
}

// ParseError reports the first token that did not fit the grammar.
type ParseError struct {
	Expected []TokenType
	Found    Token
}

// Pos is the position of the offending token.
func (e *ParseError) Pos() Position {
	return e.Found.Pos
}

func (e *ParseError) Error() string {
	want := make([]string, len(e.Expected))
	for i, tt := range e.Expected {
		want[i] = tt.describe()
	}

	var expected string
	switch len(want) {
	case 0:
		expected = "nothing"
	case 1:
		expected = want[0]
	default:
		expected = strings.Join(want[:len(want)-1], ", ") + " or " + want[len(want)-1]
	}

	found := "end of input"
	if e.Found.Type != EOF {
		found = fmt.Sprintf("%s %q", e.Found.Type, e.Found.Lexeme)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Found.Pos, expected, found)
}

// errorPos extracts the source position carried by a lexer or parser error.
func errorPos(err error) (Position, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Pos(), true
	}
	return Position{}, false
}

// FormatDiagnostic renders err together with the offending source line and a
// caret under the reported column:
//
//	1:11: expected ';', got end of input
//	  |> DEF x <- 5
//	  |>           ^
//
// Errors that carry no position are returned as plain text.
func FormatDiagnostic(err error, src string) string {
	pos, ok := errorPos(err)
	if !ok {
		return err.Error()
	}

	lines := strings.Split(src, "\n")
	lineIdx := pos.Line - 1 // Lines are 1-based
	if lineIdx < 0 || lineIdx >= len(lines) {
		return err.Error()
	}
	text := strings.TrimRight(lines[lineIdx], "\r")

	// Keep tabs in the caret line so the marker lines up with the source.
	var pad strings.Builder
	for i, r := range []rune(text) {
		if i >= pos.Column-1 {
			break
		}
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
	}
	for i := len([]rune(text)); i < pos.Column-1; i++ {
		pad.WriteRune(' ')
	}

	return fmt.Sprintf("%s\n  |> %s\n  |> %s^", err, text, pad.String())
}
