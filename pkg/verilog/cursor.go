package verilog

// Cursor is a forward-only read position over an immutable token slice. The
// preprocessor and the parser both drive one. A Cursor is not safe for
// concurrent use.
type Cursor struct {
	tokens []Token
	pos    int
	eof    Token
}

// NewCursor returns a cursor positioned at the first token.
func NewCursor(tokens []Token) *Cursor {
	eof := Token{Type: EOF}
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		eof.Line = last.Line
		eof.Col = last.Col + len([]rune(last.Text))
	}
	return &Cursor{tokens: tokens, eof: eof}
}

// Peek returns the current token without consuming it.
func (c *Cursor) Peek() Token { return c.PeekAt(0) }

// PeekAt returns the token at the given offset from the current position, or
// an EOF token past the end.
func (c *Cursor) PeekAt(offset int) Token {
	if i := c.pos + offset; i >= 0 && i < len(c.tokens) {
		return c.tokens[i]
	}
	return c.eof
}

// Advance consumes and returns the current token.
func (c *Cursor) Advance() Token {
	tok := c.Peek()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return tok
}

// Expect consumes the current token if it is the symbol or keyword text.
func (c *Cursor) Expect(text string) (Token, error) {
	tok := c.Peek()
	if !tok.Is(text) {
		return tok, unexpected(tok, "%q", text)
	}
	return c.Advance(), nil
}

// Done reports whether every token has been consumed.
func (c *Cursor) Done() bool { return c.pos >= len(c.tokens) }

// Pos returns the index of the next token.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the unconsumed tokens.
func (c *Cursor) Remaining() []Token { return c.tokens[c.pos:] }
