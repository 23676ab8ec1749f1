package compiler

import (
	"fmt"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	String() string
}

// NumberLiteral is a numeric constant, kept as the source spelled it.
//
//	DEF x <- 2.50 ;
//	         ^^^^  NumberLiteral{Text: "2.50"}
type NumberLiteral struct {
	Text string
}

func (*NumberLiteral) exprNode()        {}
func (n *NumberLiteral) String() string { return n.Text }

// Identifier is a read of a named variable.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// BinaryExpr represents a binary operation: Left Op Right.
//
//	x + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
//
// Op is one of PLUS, MINUS, STAR or SLASH.
type BinaryExpr struct {
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op.Symbol(), b.Left, b.Right)
}

// GroupExpr is a parenthesised sub-expression. It is kept as its own node so
// the generator reproduces the source parentheses exactly once.
type GroupExpr struct {
	Inner Expr
}

func (*GroupExpr) exprNode()        {}
func (g *GroupExpr) String() string { return fmt.Sprintf("(group %s)", g.Inner) }

//  Statement nodes

// Stmt is implemented by every top-level statement.
type Stmt interface {
	stmtNode()
	String() string
}

// Assignment represents  DEF name <- expr ;
type Assignment struct {
	Name  string
	Value Expr
}

func (*Assignment) stmtNode() {}
func (a *Assignment) String() string {
	return fmt.Sprintf("Assignment(%s = %s)", a.Name, a.Value)
}

// PrintStmt represents  WRITE ( "fmt" , expr ) ;
// Format holds the string literal verbatim, quotes included.
type PrintStmt struct {
	Format string
	Value  Expr
}

func (*PrintStmt) stmtNode() {}
func (p *PrintStmt) String() string {
	return fmt.Sprintf("Print(%s, %s)", p.Format, p.Value)
}

// ScanStmt represents  READ (& name ) ;
type ScanStmt struct {
	Name string
}

func (*ScanStmt) stmtNode()        {}
func (s *ScanStmt) String() string { return fmt.Sprintf("Scan(%s)", s.Name) }

// ExprStmt is an expression evaluated for nothing: (1 + 2) * 3 ;
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode()        {}
func (e *ExprStmt) String() string { return fmt.Sprintf("ExprStmt(%s)", e.Expr) }

// Program is the root of the tree; Stmts are in execution order.
type Program struct {
	Stmts []Stmt
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Stmts {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
