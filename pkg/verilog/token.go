package verilog

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	EOF     TokenType = iota // sentinel returned past the end of the token slice
	IDENT                    // identifier
	KEYWORD                  // reserved word, see keywords
	NUMBER                   // run of decimal digits
	STRING                   // "..." including the quotes
	SYMBOL                   // separator or operator
)

var tokenNames = [...]string{
	EOF:     "EOF",
	IDENT:   "IDENT",
	KEYWORD: "KEYWORD",
	NUMBER:  "NUMBER",
	STRING:  "STRING",
	SYMBOL:  "SYMBOL",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// keywords is the set of reserved words the statement parser dispatches on.
var keywords = map[string]bool{
	"module":    true,
	"endmodule": true,
	"input":     true,
	"output":    true,
	"reg":       true,
	"wire":      true,
	"always":    true,
	"if":        true,
	"else":      true,
	"assign":    true,
	"begin":     true,
	"end":       true,
	"case":      true,
	"endcase":   true,
	"default":   true,
	"posedge":   true,
	"negedge":   true,
	"or":        true,
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool { return keywords[s] }

// Token is a single lexical unit. Tokens are never mutated after Lex returns.
type Token struct {
	Type TokenType
	Text string // exact source text
	Line int    // 1-based
	Col  int    // 1-based, counted in runes
}

// Pos returns the position of the token's first rune.
func (t Token) Pos() Pos { return Pos{Line: t.Line, Column: t.Col} }

// Is reports whether the token is a symbol or keyword with the given text.
func (t Token) Is(text string) bool {
	return (t.Type == SYMBOL || t.Type == KEYWORD) && t.Text == text
}

func (t Token) String() string {
	return fmt.Sprintf("%-8s %-14q  %d:%d", t.Type, t.Text, t.Line, t.Col)
}

// describe renders the token for error messages.
func (t Token) describe() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Text)
}
