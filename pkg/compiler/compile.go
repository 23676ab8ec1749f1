package compiler

// Compile translates MyLang source text to C source text.
//
// The first lexical or syntax error aborts the translation; it is returned
// as a *LexError or *ParseError and the returned text is empty.
func Compile(src string) (string, error) {
	tokens, err := Lex(src)
	if err != nil {
		return "", err
	}

	prog, err := Parse(tokens)
	if err != nil {
		return "", err
	}

	code, err := Generate(prog)
	if err != nil {
		return "", err
	}

	return code, nil
}
