package compiler

import (
	"fmt"
	"unicode/utf8"
)

// keywords maps source text to its keyword TokenType.
// Keywords are case-sensitive whole words: "DEFX" and "def" are identifiers.
var keywords = map[string]TokenType{
	"DEF":   DEF,
	"WRITE": WRITE,
	"READ":  READ,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // current 1-based source column
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.col}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// scanIdent collects a full identifier or keyword token.
// The first character (ASCII letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	pos := l.position()
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Pos: pos}
}

// scanNumber collects an unsigned decimal literal with an optional single
// fractional part: 12, 0, 3.25. A trailing '.' with no digit after it is not
// part of the number.
func (l *Lexer) scanNumber() Token {
	pos := l.position()
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peek2()) {
		l.advance() // consume '.'
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.advance()
		}
	}
	return Token{Type: NUMBER, Lexeme: string(l.src[start:l.pos]), Pos: pos}
}

// scanString collects a string literal exactly as written, delimiting quotes
// included. No escape sequences are interpreted.
func (l *Lexer) scanString() (Token, error) {
	pos := l.position()
	start := l.pos
	l.advance() // consume opening "

	for l.pos < len(l.src) {
		r := l.peek()
		if r == '"' {
			l.advance() // consume closing "
			return Token{Type: STRING, Lexeme: string(l.src[start:l.pos]), Pos: pos}, nil
		}
		if r == '\n' {
			break
		}
		l.advance()
	}

	return Token{}, &LexError{Char: '"', Pos: pos, Msg: "unterminated string literal"}
}

// nextToken skips whitespace and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Lexeme: "", Pos: l.position()}, nil
	}

	ch := l.peek()
	pos := l.position()

	if isIdentStart(ch) {
		return l.scanIdent(), nil
	}
	if isDigit(ch) {
		return l.scanNumber(), nil
	}
	if ch == '"' {
		return l.scanString()
	}

	switch ch {
	case '(':
		l.advance()
		if l.peek() == '&' { // lookahead: distinguish ( vs (&
			l.advance()
			return Token{SCAN_ADDR, "(&", pos}, nil
		}
		return Token{LPAREN, "(", pos}, nil
	case '<':
		if l.peek2() == '-' {
			l.advance()
			l.advance()
			return Token{ARROW, "<-", pos}, nil
		}
	case ')':
		l.advance()
		return Token{RPAREN, ")", pos}, nil
	case ',':
		l.advance()
		return Token{COMMA, ",", pos}, nil
	case ';':
		l.advance()
		return Token{SEMICOLON, ";", pos}, nil
	case '+':
		l.advance()
		return Token{PLUS, "+", pos}, nil
	case '-':
		l.advance()
		return Token{MINUS, "-", pos}, nil
	case '*':
		l.advance()
		return Token{STAR, "*", pos}, nil
	case '/':
		l.advance()
		return Token{SLASH, "/", pos}, nil
	}

	return Token{}, &LexError{Char: ch, Pos: pos}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It stops at the first character that begins no token and returns a
// *LexError describing it; the tokens scanned so far are discarded.
// Input that is not valid UTF-8 is rejected before scanning.
func Lex(src string) ([]Token, error) {
	if err := checkEncoding(src); err != nil {
		return nil, err
	}
	l := newLexer(src)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// checkEncoding reports the first byte of src that is not valid UTF-8.
// The byte itself is carried in LexError.Char.
func checkEncoding(src string) error {
	line, col := 1, 1
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size == 1 {
			return &LexError{
				Char: rune(src[i]),
				Pos:  Position{Line: line, Column: col},
				Msg:  fmt.Sprintf("invalid UTF-8 byte %#x", src[i]),
			}
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i += size
	}
	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentStart reports whether r may begin an identifier: [A-Za-z_].
func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
