package verilog

import "fmt"

// Pos is a 1-based source position. The zero Pos means "unknown".
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LexError reports a rune the lexer cannot start or finish a token with.
type LexError struct {
	Pos  Pos
	Char rune
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %s: %s", e.Pos, e.Msg)
}

// SyntaxError reports an unexpected token.
type SyntaxError struct {
	Pos      Pos
	Found    string // offending token text, empty at end of input
	Expected string
	Snippet  string // trimmed source line, when the parser was given the source
}

func (e *SyntaxError) Error() string {
	found := "end of input"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}
	msg := fmt.Sprintf("line %s: expected %s, found %s", e.Pos, e.Expected, found)
	if e.Snippet != "" {
		msg += "\n  |> " + e.Snippet
	}
	return msg
}

// AtEOF reports whether the parser ran out of tokens. Interactive callers use
// it to ask for another line of input.
func (e *SyntaxError) AtEOF() bool { return e.Found == "" }

// MacroError reports a malformed `define or a bad macro invocation.
type MacroError struct {
	Pos  Pos
	Name string
	Msg  string
}

func (e *MacroError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("line %s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("line %s: macro `%s: %s", e.Pos, e.Name, e.Msg)
}

// DepthError reports nesting of (), [], {} or statements beyond the parser's
// limit.
type DepthError struct {
	Pos   Pos
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("line %s: nesting exceeds limit of %d", e.Pos, e.Limit)
}

// unexpected builds a SyntaxError for tok. The snippet is filled in by the
// Parser when it knows the source.
func unexpected(tok Token, format string, args ...any) *SyntaxError {
	found := tok.Text
	if tok.Type == EOF {
		found = ""
	}
	return &SyntaxError{Pos: tok.Pos(), Found: found, Expected: fmt.Sprintf(format, args...)}
}
