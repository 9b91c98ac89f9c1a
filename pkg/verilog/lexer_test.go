package verilog

import (
	"errors"
	"reflect"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
		wantErr  bool
	}{
		{
			name:     "Empty",
			input:    "",
			expected: nil,
		},
		{
			name:  "Empty Module",
			input: "module(); endmodule",
			expected: []Token{
				{Type: KEYWORD, Text: "module", Line: 1, Col: 1},
				{Type: SYMBOL, Text: "(", Line: 1, Col: 7},
				{Type: SYMBOL, Text: ")", Line: 1, Col: 8},
				{Type: SYMBOL, Text: ";", Line: 1, Col: 9},
				{Type: KEYWORD, Text: "endmodule", Line: 1, Col: 11},
			},
		},
		{
			name:  "Line Comments",
			input: " // comment // x\n y //",
			expected: []Token{
				{Type: IDENT, Text: "y", Line: 2, Col: 2},
			},
		},
		{
			name:  "Block Comment Across Lines",
			input: "a /* one\ntwo */ b",
			expected: []Token{
				{Type: IDENT, Text: "a", Line: 1, Col: 1},
				{Type: IDENT, Text: "b", Line: 2, Col: 8},
			},
		},
		{
			name:  "Sized Literal Is Three Tokens",
			input: "8'hFF",
			expected: []Token{
				{Type: NUMBER, Text: "8", Line: 1, Col: 1},
				{Type: SYMBOL, Text: "'", Line: 1, Col: 2},
				{Type: IDENT, Text: "hFF", Line: 1, Col: 3},
			},
		},
		{
			name:  "String Keeps Quotes",
			input: `$display("No way man!!!")`,
			expected: []Token{
				{Type: SYMBOL, Text: "$", Line: 1, Col: 1},
				{Type: IDENT, Text: "display", Line: 1, Col: 2},
				{Type: SYMBOL, Text: "(", Line: 1, Col: 9},
				{Type: STRING, Text: `"No way man!!!"`, Line: 1, Col: 10},
				{Type: SYMBOL, Text: ")", Line: 1, Col: 25},
			},
		},
		{
			name:  "Greedy Operators",
			input: "a<=b<<c>=d>>e&&f||g!=h==i",
			expected: []Token{
				{Type: IDENT, Text: "a", Line: 1, Col: 1},
				{Type: SYMBOL, Text: "<=", Line: 1, Col: 2},
				{Type: IDENT, Text: "b", Line: 1, Col: 4},
				{Type: SYMBOL, Text: "<<", Line: 1, Col: 5},
				{Type: IDENT, Text: "c", Line: 1, Col: 7},
				{Type: SYMBOL, Text: ">=", Line: 1, Col: 8},
				{Type: IDENT, Text: "d", Line: 1, Col: 10},
				{Type: SYMBOL, Text: ">>", Line: 1, Col: 11},
				{Type: IDENT, Text: "e", Line: 1, Col: 13},
				{Type: SYMBOL, Text: "&&", Line: 1, Col: 14},
				{Type: IDENT, Text: "f", Line: 1, Col: 16},
				{Type: SYMBOL, Text: "||", Line: 1, Col: 17},
				{Type: IDENT, Text: "g", Line: 1, Col: 19},
				{Type: SYMBOL, Text: "!=", Line: 1, Col: 20},
				{Type: IDENT, Text: "h", Line: 1, Col: 22},
				{Type: SYMBOL, Text: "==", Line: 1, Col: 23},
				{Type: IDENT, Text: "i", Line: 1, Col: 25},
			},
		},
		{
			name:  "Single Character Operators",
			input: "= < > & | - + ~ * # @ ?",
			expected: []Token{
				{Type: SYMBOL, Text: "=", Line: 1, Col: 1},
				{Type: SYMBOL, Text: "<", Line: 1, Col: 3},
				{Type: SYMBOL, Text: ">", Line: 1, Col: 5},
				{Type: SYMBOL, Text: "&", Line: 1, Col: 7},
				{Type: SYMBOL, Text: "|", Line: 1, Col: 9},
				{Type: SYMBOL, Text: "-", Line: 1, Col: 11},
				{Type: SYMBOL, Text: "+", Line: 1, Col: 13},
				{Type: SYMBOL, Text: "~", Line: 1, Col: 15},
				{Type: SYMBOL, Text: "*", Line: 1, Col: 17},
				{Type: SYMBOL, Text: "#", Line: 1, Col: 19},
				{Type: SYMBOL, Text: "@", Line: 1, Col: 21},
				{Type: SYMBOL, Text: "?", Line: 1, Col: 23},
			},
		},
		{
			name:  "Keywords And Identifiers",
			input: "always @(posedge clk_0 or negedge rst)",
			expected: []Token{
				{Type: KEYWORD, Text: "always", Line: 1, Col: 1},
				{Type: SYMBOL, Text: "@", Line: 1, Col: 8},
				{Type: SYMBOL, Text: "(", Line: 1, Col: 9},
				{Type: KEYWORD, Text: "posedge", Line: 1, Col: 10},
				{Type: IDENT, Text: "clk_0", Line: 1, Col: 18},
				{Type: KEYWORD, Text: "or", Line: 1, Col: 24},
				{Type: KEYWORD, Text: "negedge", Line: 1, Col: 27},
				{Type: IDENT, Text: "rst", Line: 1, Col: 35},
				{Type: SYMBOL, Text: ")", Line: 1, Col: 38},
			},
		},
		{name: "Bare Bang", input: "a ! b", wantErr: true},
		{name: "Division", input: "a / b", wantErr: true},
		{name: "Unterminated String", input: `"abc`, wantErr: true},
		{name: "Unterminated Block Comment", input: "a /* b", wantErr: true},
		{name: "Unsupported Character", input: "a % b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var le *LexError
				if !errors.As(err, &le) {
					t.Errorf("expected *LexError, got %T", err)
				}
				return
			}
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Lex() mismatch\n got: %v\nwant: %v", got, tt.expected)
			}
		})
	}
}

func TestLexTokenCounts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
	}{
		{
			name:  "Declarations Between Lint Comments",
			input: "/* verilator lint_off UNUSED */\ninput [31:0] config_addr;\n/* verilator lint_on UNUSED */\noutput reg [15:0] out;\n",
			count: 17,
		},
		{name: "Macro Call", input: `xassert(in == out, "No way man!!!")`, count: 8},
		{name: "Assign", input: "assign a = b;", count: 5},
		{name: "Module Header", input: "module cb_unq1() endmodule", count: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex() error: %v", err)
			}
			if len(got) != tt.count {
				t.Errorf("expected %d tokens, got %d: %v", tt.count, len(got), got)
			}
		})
	}
}

func TestLexErrorPosition(t *testing.T) {
	_, err := Lex("wire a;\n  b ! c")
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if le.Pos != (Pos{Line: 2, Column: 5}) || le.Char != '!' {
		t.Errorf("unexpected error details: %+v", le)
	}
}

func TestCursor(t *testing.T) {
	tokens, err := Lex("assign a = b;")
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}
	c := NewCursor(tokens)

	if got := c.PeekAt(2).Text; got != "=" {
		t.Errorf("PeekAt(2) = %q, want \"=\"", got)
	}
	if _, err := c.Expect("assign"); err != nil {
		t.Fatalf("Expect(assign): %v", err)
	}
	if _, err := c.Expect("="); err == nil {
		t.Fatal("Expect(=) on identifier should fail")
	}
	for !c.Done() {
		c.Advance()
	}
	eof := c.Advance()
	if eof.Type != EOF {
		t.Fatalf("expected EOF past the end, got %v", eof)
	}
	if eof.Pos() != (Pos{Line: 1, Column: 14}) {
		t.Errorf("EOF position = %v, want 1:14", eof.Pos())
	}
	if c.Pos() != len(tokens) {
		t.Errorf("Advance past the end moved the cursor to %d", c.Pos())
	}
}
