package compiler

import (
	"strings"
	"testing"
)

// assertContains checks if the generated code contains the expected substring.
func assertContains(t *testing.T, code, expected string) {
	t.Helper()
	if !strings.Contains(code, expected) {
		t.Errorf("Expected code to contain %q, but it didn't.\nCode:\n%s", expected, code)
	}
}

func mustCompile(t *testing.T, src string) string {
	t.Helper()
	code, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return code
}

func TestGenerate_FullProgram(t *testing.T) {
	src := `DEF x <- 5 ;
WRITE ( "%f\n" , x * 2 ) ;
READ (& x ) ;
(1+2)*3 ;
`
	want := `#include <stdio.h>

int main() {
double x = 5;
printf("%f\n", x * 2);
scanf("%lf", &x);
(1 + 2) * 3;
return 0;
}
`
	if got := mustCompile(t, src); got != want {
		t.Errorf("generated code mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerate_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "A: assignment declares a double", input: "DEF x <- 5 ;", want: "double x = 5;"},
		{name: "B: print passes format verbatim", input: `DEF x <- 1 ; WRITE ( "%f" , x ) ;`, want: `printf("%f", x);`},
		{name: "C: scan targets address", input: "READ (& y ) ;", want: `scanf("%lf", &y);`},
		{name: "E: bare expression is inert", input: "(1+2)*3 ;", want: "\n(1 + 2) * 3;\n"},
		{name: "Decimal literal kept as written", input: "DEF pi <- 3.140 ;", want: "double pi = 3.140;"},
		{name: "Integral literal still double", input: "DEF n <- 10 ;", want: "double n = 10;"},
		{name: "Format string not unescaped", input: `WRITE ( "%5.2f\t\n" , 1 ) ;`, want: `printf("%5.2f\t\n", 1);`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertContains(t, mustCompile(t, tt.input), tt.want)
		})
	}
}

func TestGenerate_Expressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 + 3 * 4", "2 + 3 * 4"},
		{"10-3-2", "10 - 3 - 2"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"10 - (3 - 2)", "10 - (3 - 2)"},
		{"((a))", "((a))"},
		{"a/b*c", "a / b * c"},
		{"x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := mustParse(t, tt.input+" ;")
			got, err := genExpr(prog.Stmts[0].(*ExprStmt).Expr)
			if err != nil {
				t.Fatalf("genExpr failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("genExpr(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerate_GroupingParenthesesOnce(t *testing.T) {
	code := mustCompile(t, "DEF r <- (1 + 2) * 3 ;")
	assertContains(t, code, "double r = (1 + 2) * 3;")

	body := code[len(preamble) : len(code)-len(epilogue)]
	if n := strings.Count(body, "("); n != 1 {
		t.Errorf("expected exactly one '(' in body, got %d:\n%s", n, body)
	}
	if n := strings.Count(body, ")"); n != 1 {
		t.Errorf("expected exactly one ')' in body, got %d:\n%s", n, body)
	}
}

func TestGenerate_DeclarationPerAssignment(t *testing.T) {
	src := `DEF x <- 1 ;
DEF y <- x + 1 ;
WRITE ( "%f" , y ) ;
DEF x <- y * 2 ;
READ (& x ) ;
`
	code := mustCompile(t, src)

	// Re-assigning x declares it again, in source order.
	if n := strings.Count(code, "double "); n != 3 {
		t.Errorf("expected 3 declarations, got %d:\n%s", n, code)
	}
	first := strings.Index(code, "double x = 1;")
	second := strings.Index(code, "double y = x + 1;")
	third := strings.Index(code, "double x = y * 2;")
	if first < 0 || second < 0 || third < 0 || !(first < second && second < third) {
		t.Errorf("declarations missing or out of order:\n%s", code)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	src := `DEF a <- 1 ; DEF b <- a * (a + 2) / 4 ; WRITE ( "%g\n" , b - a ) ; READ (& a ) ; a + b ;`
	first := mustCompile(t, src)
	for i := 0; i < 20; i++ {
		if got := mustCompile(t, src); got != first {
			t.Fatalf("run %d produced different output:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestGenerate_EmptyProgram(t *testing.T) {
	code, err := Generate(&Program{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if code != preamble+epilogue {
		t.Errorf("unexpected code for empty program:\n%s", code)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		prog *Program
	}{
		{name: "nil program", prog: nil},
		{name: "nil statement", prog: &Program{Stmts: []Stmt{nil}}},
		{name: "nil expression", prog: &Program{Stmts: []Stmt{&Assignment{Name: "x"}}}},
		{name: "bad operator", prog: &Program{Stmts: []Stmt{
			&ExprStmt{Expr: &BinaryExpr{Op: COMMA, Left: num("1"), Right: num("2")}},
		}}},
		{name: "error after valid statements", prog: &Program{Stmts: []Stmt{
			&Assignment{Name: "x", Value: num("1")},
			&PrintStmt{Format: `"%f"`, Value: &GroupExpr{}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Generate(tt.prog)
			if err == nil {
				t.Fatalf("expected error, got code:\n%s", code)
			}
			if code != "" {
				t.Errorf("expected no partial output, got:\n%s", code)
			}
		})
	}
}

func TestCompile_NoOutputOnError(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "D: missing terminator", input: "DEF x <- 5"},
		{name: "error after valid statements", input: "DEF x <- 5 ;\nWRITE ( \"%f\" , x ) ;\nDEF y 3 ;"},
		{name: "lex error", input: "DEF x <- 5 % 2 ;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Compile(tt.input)
			if err == nil {
				t.Fatalf("expected error, got code:\n%s", code)
			}
			if code != "" {
				t.Errorf("expected no output on error, got:\n%s", code)
			}
		})
	}
}
