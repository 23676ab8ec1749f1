package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// C source emitted around the translated statements.
const (
	preamble = "#include <stdio.h>\n\nint main() {\n"
	epilogue = "return 0;\n}\n"
)

// scanFormat is the conversion used for READ. The source grammar gives READ
// no format string, and every variable is a double.
const scanFormat = `"%lf"`

// declType is the C type given to every assigned variable.
const declType = "double"

// genExpr renders an expression as C text. Operators are separated by single
// spaces and no parentheses are added beyond the GroupExpr nodes.
func genExpr(e Expr) (string, error) {
	switch n := e.(type) {
	case *NumberLiteral:
		return n.Text, nil

	case *Identifier:
		return n.Name, nil

	case *BinaryExpr:
		op := n.Op.Symbol()
		switch n.Op {
		case PLUS, MINUS, STAR, SLASH:
		default:
			return "", fmt.Errorf("unsupported binary operator %s", n.Op)
		}
		left, err := genExpr(n.Left)
		if err != nil {
			return "", err
		}
		right, err := genExpr(n.Right)
		if err != nil {
			return "", err
		}
		return left + " " + op + " " + right, nil

	case *GroupExpr:
		inner, err := genExpr(n.Inner)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case nil:
		return "", errors.New("missing expression")

	default:
		return "", fmt.Errorf("unsupported expression %T", e)
	}
}

// genStmt renders one statement as a single line of C, without the newline.
func genStmt(s Stmt) (string, error) {
	switch n := s.(type) {
	case *Assignment:
		// Every assignment declares; DEF x twice yields two declarations.
		value, err := genExpr(n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s = %s;", declType, n.Name, value), nil

	case *PrintStmt:
		value, err := genExpr(n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("printf(%s, %s);", n.Format, value), nil

	case *ScanStmt:
		return fmt.Sprintf("scanf(%s, &%s);", scanFormat, n.Name), nil

	case *ExprStmt:
		// Has no effect in the generated program; emitted as written.
		value, err := genExpr(n.Expr)
		if err != nil {
			return "", err
		}
		return value + ";", nil

	case nil:
		return "", errors.New("missing statement")

	default:
		return "", fmt.Errorf("unsupported statement %T", s)
	}
}

// Generate walks a parsed Program and returns the complete C translation
// unit. The same Program always produces byte-identical text. On error no
// partial text is returned.
func Generate(prog *Program) (string, error) {
	if prog == nil {
		return "", errors.New("generate: nil program")
	}

	var out strings.Builder
	out.WriteString(preamble)
	for i, s := range prog.Stmts {
		line, err := genStmt(s)
		if err != nil {
			return "", fmt.Errorf("generate: statement %d: %w", i+1, err)
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
	out.WriteString(epilogue)

	return out.String(), nil
}
