package main

import (
	"fmt"
	"log"
	"os"

	"mylangc/pkg/compiler"
)

const testSource = `DEF x <- 10 ;
DEF y <- (x + 2) * 3 ;
WRITE ( "%f\n" , y ) ;
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("mlcdump: ")

	src := testSource
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("read error: %v", err)
		}
		src = string(data)
	}

	fmt.Printf("Source:\n%s\n", src)

	// Lex
	tokens, err := compiler.Lex(src)
	if err != nil {
		log.Fatalf("lex error:\n%s", compiler.FormatDiagnostic(err, src))
	}

	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Println(" ", tok)
	}
	fmt.Println()

	// Parse
	prog, err := compiler.Parse(tokens)
	if err != nil {
		log.Fatalf("parse error:\n%s", compiler.FormatDiagnostic(err, src))
	}

	fmt.Println("AST")
	for _, s := range prog.Stmts {
		fmt.Println(" ", s)
	}
	fmt.Println()

	// code Generation
	code, err := compiler.Generate(prog)
	if err != nil {
		log.Fatalf("codegen error: %v", err)
	}

	fmt.Println("Generated C")
	fmt.Print(code)
}
