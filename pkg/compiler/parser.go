package compiler

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar:
//
//	program    = statement+ EOF
//	statement  = assignment | printStmt | scanStmt | expression ";"
//	assignment = "DEF" IDENTIFIER "<-" expression ";"
//	printStmt  = "WRITE" "(" STRING "," expression ")" ";"
//	scanStmt   = "READ" "(&" IDENTIFIER ")" ";"
//	expression = additive
//	additive   = multiplicative (("+" | "-") multiplicative)*
//	multiplicative = primary (("*" | "/") primary)*
//	primary    = NUMBER | IDENTIFIER | "(" expression ")"
//
// Each precedence level is its own function; the loops build left-leaning
// trees so equal-precedence operators associate to the left. The parser stops
// at the first token that does not fit and returns a *ParseError.
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// statementStart lists the tokens that may begin a statement.
var statementStart = []TokenType{DEF, WRITE, READ, NUMBER, IDENTIFIER, LPAREN}

// primaryStart lists the tokens that may begin an operand.
var primaryStart = []TokenType{NUMBER, IDENTIFIER, LPAREN}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) > 0 {
			return Token{Type: EOF, Pos: p.tokens[len(p.tokens)-1].Pos}
		}
		return Token{Type: EOF, Pos: Position{Line: 1, Column: 1}}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.unexpected(tt)
	}
	return p.advance(), nil
}

// unexpected builds the error for the current token given what would have fit.
func (p *Parser) unexpected(expected ...TokenType) error {
	return &ParseError{Expected: expected, Found: p.peek()}
}

// parseExpression is the entry point for expression parsing.
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseAdditive()
}

// parseAdditive handles + and -
func (p *Parser) parseAdditive() (Expr, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		tt := p.peek().Type
		if tt != PLUS && tt != MINUS {
			break
		}
		op := p.advance().Type
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}

	return expr, nil
}

// parseMultiplicative handles * and /
func (p *Parser) parseMultiplicative() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tt := p.peek().Type
		if tt != STAR && tt != SLASH {
			break
		}
		op := p.advance().Type
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}

	return expr, nil
}

// parsePrimary handles literals, variables, and parenthesised expressions.
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		return &NumberLiteral{Text: tok.Lexeme}, nil

	case IDENTIFIER:
		p.advance()
		return &Identifier{Name: tok.Lexeme}, nil

	case LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &GroupExpr{Inner: inner}, nil

	default:
		return nil, p.unexpected(primaryStart...)
	}
}

// parseAssignment parses DEF name <- expr ;
// The DEF keyword must already have been consumed.
func (p *Parser) parseAssignment() (Stmt, error) {
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ARROW); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &Assignment{Name: nameTok.Lexeme, Value: value}, nil
}

// parsePrint parses WRITE ( "fmt" , expr ) ;
// The WRITE keyword must already have been consumed.
func (p *Parser) parsePrint() (Stmt, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	formatTok, err := p.expect(STRING)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COMMA); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &PrintStmt{Format: formatTok.Lexeme, Value: value}, nil
}

// parseScan parses READ (& name ) ;
// The READ keyword must already have been consumed.
func (p *Parser) parseScan() (Stmt, error) {
	if _, err := p.expect(SCAN_ADDR); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &ScanStmt{Name: nameTok.Lexeme}, nil
}

// parseStatement dispatches to the correct sub-parser based on the leading token.
func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch tok.Type {

	case DEF:
		p.advance()
		return p.parseAssignment()

	case WRITE:
		p.advance()
		return p.parsePrint()

	case READ:
		p.advance()
		return p.parseScan()

	case NUMBER, IDENTIFIER, LPAREN:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return &ExprStmt{Expr: expr}, nil

	default:
		return nil, p.unexpected(statementStart...)
	}
}

// Parse builds the Program for a token slice produced by Lex. At least one
// statement is required. On the first syntax error it returns a nil Program
// and a *ParseError; nothing after the failure point is parsed.
func Parse(tokens []Token) (*Program, error) {
	p := NewParser(tokens)
	prog := &Program{}
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)

		if p.peek().Type == EOF {
			return prog, nil
		}
	}
}
