// Command pcf parses a PCF-lang expression and prints its syntax tree.
//
// Usage:
//
//	pcf [flags] [file]
//
// With no file argument the expression is read from stdin. By default the
// parsed tree is printed in its compact parenthesised form; -tokens prints
// the token stream instead, and -dump deep-dumps the AST structure.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"

	"github.com/metaphox/pcf-lang/ast"
	"github.com/metaphox/pcf-lang/lexer"
	"github.com/metaphox/pcf-lang/parser"
)

var (
	tokens   = flag.Bool("tokens", false, "print the token stream and exit")
	dump     = flag.Bool("dump", false, "deep-dump the AST structure instead of the compact form")
	maxDepth = flag.Int("max-depth", parser.DefaultMaxDepth, "maximum expression nesting depth")
)

func main() {
	flag.Parse()

	src, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "pcf:", err)
		os.Exit(1)
	}

	if *tokens {
		printTokens(src)
		return
	}

	expr, err := parser.ParseProgram(src, parser.WithMaxDepth(*maxDepth))
	if err != nil {
		fmt.Fprintln(os.Stderr, "pcf:", err)
		os.Exit(1)
	}

	if *dump {
		pretty.Println(expr)
		return
	}
	fmt.Println(expr.String())
}

// readSource reads the whole expression text from path, or from stdin when
// path is empty.
func readSource(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// printTokens lexes src and prints one token per line with its position.
func printTokens(src string) {
	l := lexer.New(src)
	for {
		tok := l.NextToken()
		fmt.Printf("%d:%d\t%v\t%q\n", tok.Line, tok.Col, tok.Type, tok.Literal)
		if tok.Type == ast.EOF {
			return
		}
	}
}
