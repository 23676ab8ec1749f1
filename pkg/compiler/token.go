package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable name
	NUMBER     // 12 or 3.25
	STRING     // "..." kept verbatim, quotes included

	// Keywords
	DEF   // "DEF"
	WRITE // "WRITE"
	READ  // "READ"

	// Punctuation
	ARROW     // <-
	SCAN_ADDR // (&
	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	SEMICOLON // ;

	// Arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	DEF:        "DEF",
	WRITE:      "WRITE",
	READ:       "READ",
	ARROW:      "ARROW",
	SCAN_ADDR:  "SCAN_ADDR",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	COMMA:      "COMMA",
	SEMICOLON:  "SEMICOLON",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
}

// tokenSymbols holds the fixed spelling of punctuation and keyword tokens.
// Used for diagnostics and to render operators back to text.
var tokenSymbols = [...]string{
	DEF:       "DEF",
	WRITE:     "WRITE",
	READ:      "READ",
	ARROW:     "<-",
	SCAN_ADDR: "(&",
	LPAREN:    "(",
	RPAREN:    ")",
	COMMA:     ",",
	SEMICOLON: ";",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Symbol returns the literal spelling of fixed tokens and "" for the
// variable-text kinds (identifiers, numbers, strings, EOF).
func (tt TokenType) Symbol() string {
	if int(tt) >= 0 && int(tt) < len(tokenSymbols) {
		return tokenSymbols[tt]
	}
	return ""
}

// describe renders a token type the way a user wrote it, e.g. "';'" or "IDENTIFIER".
func (tt TokenType) describe() string {
	if sym := tt.Symbol(); sym != "" {
		return fmt.Sprintf("'%s'", sym)
	}
	return tt.String()
}

// Position is a 1-based line/column location in the source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Pos    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  %s", t.Type, t.Lexeme, t.Pos)
}
