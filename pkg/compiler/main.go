// Package compiler provides the MyLang lexer, parser, and code generator
// that translate MyLang programs into C source text.
//
// Pipeline: MyLang source → Lex → Parse → Generate → C source text
//
// MyLang has four statements:
//
//	DEF x <- 2 + 3 * 4 ;       double x = 2 + 3 * 4;
//	WRITE ( "%f\n" , x ) ;     printf("%f\n", x);
//	READ (& y ) ;              scanf("%lf", &y);
//	(1 + 2) * 3 ;              (1 + 2) * 3;
//
// All values are doubles. No semantic checks are made: a variable that is
// read before it is assigned is only reported later by the C compiler.
package compiler
