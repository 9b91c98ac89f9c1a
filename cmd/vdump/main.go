package main

import (
	"fmt"
	"os"

	"vparse/pkg/utils"
	"vparse/pkg/verilog"
)

const testSource = "`define INC(x) x + 1'b1\n" + `module blink(clk, led);
  input clk;
  output reg led;
  always @(posedge clk)
    led <= ` + "`INC(led)" + `;
endmodule
`

func main() {
	src := testSource
	if len(os.Args) > 1 {
		var err error
		_, src, err = utils.ReadSource(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
	}

	// Preprocess
	defs, text, err := verilog.Preprocess(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "preprocess error:", err)
		os.Exit(1)
	}

	fmt.Printf("Macros (%d)\n", len(defs))
	for _, m := range defs {
		fmt.Println(" ", m)
	}
	fmt.Println()
	fmt.Printf("Preprocessed:\n%s\n\n", text)

	// Lex
	tokens, err := verilog.Lex(text)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lex error:", err)
		os.Exit(1)
	}

	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Println(" ", tok)
	}
	fmt.Println()

	// Parse
	p := verilog.NewParser(tokens, verilog.WithSource(text))
	for !p.Done() {
		m, err := p.ParseModule()
		if err != nil {
			fmt.Fprintln(os.Stderr, "parse error:", err)
			os.Exit(1)
		}

		fmt.Printf("AST %s (%d ports)\n", m.Name, len(m.Ports))
		for i, s := range m.Stmts {
			fmt.Printf("  [%d] %T\n", i, s)
		}
		fmt.Println()

		fmt.Println("Formatted")
		fmt.Println(m)
		fmt.Println()
	}
}
