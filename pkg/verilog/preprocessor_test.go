package verilog

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestPreprocess_ParametricMacro(t *testing.T) {
	defs, out, err := Preprocess("`define ADD(a,b) a+b\n`ADD(1,2)")
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if out != "1 + 2" {
		t.Errorf("expected %q, got %q", "1 + 2", out)
	}
	want := []Macro{{Name: "ADD", Kind: Parametric, Params: []string{"a", "b"}, Body: []string{"a", "+", "b"}, Line: 1}}
	if !reflect.DeepEqual(defs, want) {
		t.Errorf("definitions mismatch\n got: %+v\nwant: %+v", defs, want)
	}
}

func TestPreprocess_ObjectLikeMacro(t *testing.T) {
	defs, out, err := Preprocess("`define MV (x==1 && (y>2 || z))\n`MV")
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if out != "( x == 1 && ( y > 2 || z ) )" {
		t.Errorf("unexpected expansion: %q", out)
	}
	if len(defs) != 1 || defs[0].Kind != ObjectLike || len(defs[0].Params) != 0 {
		t.Errorf("expected one object-like definition, got %+v", defs)
	}
}

func TestPreprocess_ObjectLikeMacroTrailingTokens(t *testing.T) {
	defs, out, err := Preprocess("`define MV (x==1) + 1\nassign y = `MV;")
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if out != "assign y = ( x == 1 ) + 1 ;" {
		t.Errorf("unexpected expansion: %q", out)
	}
	if want := []string{"(", "x", "==", "1", ")", "+", "1"}; !reflect.DeepEqual(defs[0].Body, want) {
		t.Errorf("body = %q, want %q", defs[0].Body, want)
	}
}

func TestPreprocess_EmptyParameterList(t *testing.T) {
	defs, out, err := Preprocess("`define ONE() 1\nx = `ONE() + 2;")
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if len(defs) != 1 || defs[0].Kind != Parametric || len(defs[0].Params) != 0 {
		t.Fatalf("expected a parametric macro without parameters, got %+v", defs)
	}
	if out != "x = 1 + 2 ;" {
		t.Errorf("unexpected expansion: %q", out)
	}

	_, _, err = Preprocess("`define ONE() 1\nx = `ONE(a);")
	var me *MacroError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MacroError for an argument to ONE, got %v", err)
	}
}

func TestPreprocess_ObjectLikeMacroWithSizedLiterals(t *testing.T) {
	src := "`define MV_TO_RAM (phase==1'b0 && (input_count > 2'd1 || (input_count==2'd1 && wen)))\nassign go = `MV_TO_RAM;"
	_, out, err := Preprocess(src)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	want := "assign go = ( phase == 1 ' b0 && ( input_count > 2 ' d1 || ( input_count == 2 ' d1 && wen ) ) ) ;"
	if out != want {
		t.Errorf("unexpected expansion\n got: %q\nwant: %q", out, want)
	}
}

func TestPreprocess_MacroInsideModule(t *testing.T) {
	src := "`define xassert(condition, message) if(condition) begin $display(message); $finish(1); end\n" +
		"module test_mod();\n `xassert(in == out, \"No way man!!!\")\nendmodule"

	defs, out, err := Preprocess(src)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	want := `module test_mod ( ) ; if ( in == out ) begin $ display ( "No way man!!!" ) ; $ finish ( 1 ) ; end endmodule`
	if out != want {
		t.Errorf("unexpected expansion\n got: %q\nwant: %q", out, want)
	}
}

func TestPreprocess_DefinitionAfterUse(t *testing.T) {
	_, out, err := Preprocess("x = `W;\n`define W 8")
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if out != "x = 8 ;" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestPreprocess_SinglePass(t *testing.T) {
	src := "`define INNER 1\n`define OUTER(a) a + `INNER\n`OUTER(2)"
	_, out, err := Preprocess(src)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if out != "2 + ` INNER" {
		t.Errorf("expansion should not be rescanned, got %q", out)
	}
}

func TestPreprocess_NestedParenArgument(t *testing.T) {
	_, out, err := Preprocess("`define F(a, b) b - a\n`F((x, y), z)")
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if out != "z - ( x , y )" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestPreprocess_IgnoredDirectives(t *testing.T) {
	src := "`timescale 1ns / 1ps\n`default_nettype none\nwire a;\n`resetall"
	defs, out, err := Preprocess(src)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if len(defs) != 0 || out != "wire a ;" {
		t.Errorf("unexpected result: defs=%v out=%q", defs, out)
	}
}

func TestPreprocess_Redefinition(t *testing.T) {
	defs, out, err := Preprocess("`define W 4\n`define W 8\n`W")
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if len(defs) != 2 {
		t.Errorf("expected both definitions to be reported, got %d", len(defs))
	}
	if out != "8" {
		t.Errorf("last definition should win, got %q", out)
	}
}

func TestPreprocess_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errText string
		line    int
	}{
		{name: "Unknown Macro", input: "a\n`NOPE", errText: "undefined macro", line: 2},
		{name: "Too Few Arguments", input: "`define ADD(a,b) a+b\n`ADD(1)", errText: "expects 2 arguments, got 1", line: 2},
		{name: "Too Many Arguments", input: "`define ADD(a,b) a+b\n`ADD(1,2,3)", errText: "expects 2 arguments, got 3", line: 2},
		{name: "Missing Argument List", input: "`define ADD(a,b) a+b\n`ADD", errText: "expected argument list", line: 2},
		{name: "Missing Name", input: "`define", errText: "without a macro name", line: 1},
		{name: "Unclosed Definition", input: "`define F(a, b", errText: "unterminated argument list", line: 1},
		{name: "Unclosed Invocation", input: "`define F(a) a\n`F(1", errText: "unterminated argument list", line: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Preprocess(tt.input)
			var me *MacroError
			if !errors.As(err, &me) {
				t.Fatalf("expected *MacroError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("expected error containing %q, got %q", tt.errText, err.Error())
			}
			if me.Pos.Line != tt.line {
				t.Errorf("expected error on line %d, got %v", tt.line, me.Pos)
			}
		})
	}
}

func TestMacroTable_Expand(t *testing.T) {
	table := MacroTable{}
	table.Define(Macro{Name: "WIDTH", Kind: Simple, Body: []string{"16"}})
	out, err := table.Expand("wire [`WIDTH-1:0] bus;")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if out != "wire [ 16 - 1 : 0 ] bus ;" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestExpandTokens_Positions(t *testing.T) {
	_, tokens, err := preprocessTokens("`define ONE 1\n\nx = `ONE;", nil)
	if err != nil {
		t.Fatalf("preprocessTokens failed: %v", err)
	}
	// x = 1 ;
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %v", tokens)
	}
	one := tokens[2]
	if one.Type != NUMBER || one.Pos() != (Pos{Line: 3, Column: 5}) {
		t.Errorf("expanded token should sit at the invocation, got %v", one)
	}
}

func TestMacroString(t *testing.T) {
	m := Macro{Name: "ADD", Kind: Parametric, Params: []string{"a", "b"}, Body: []string{"a", "+", "b"}}
	if got := m.String(); got != "`define ADD(a, b) a + b" {
		t.Errorf("unexpected String(): %q", got)
	}
}
