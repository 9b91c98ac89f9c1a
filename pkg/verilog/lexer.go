package verilog

import (
	"fmt"
	"strings"
	"unicode"
)

// separators are emitted as one-rune SYMBOL tokens.
const separators = "(){}.[];`,:$'?@#-+~*"

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int
	col  int
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and keeps line and column in step.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) here() Pos { return Pos{Line: l.line, Column: l.col} }

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards through end of line. The newline itself is left
// for skipWhitespace.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing "*/".
// The opening "/*" must already have been consumed.
func (l *Lexer) skipBlockComment(start Pos) error {
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return &LexError{Pos: start, Char: '/', Msg: "unterminated block comment"}
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool { return isIdentStart(r) || isDigit(r) }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (l *Lexer) scanWhile(start Pos, tt TokenType, ok func(rune) bool) Token {
	from := l.pos
	for l.pos < len(l.src) && ok(l.peek()) {
		l.advance()
	}
	text := string(l.src[from:l.pos])
	if tt == IDENT && keywords[text] {
		tt = KEYWORD
	}
	return Token{Type: tt, Text: text, Line: start.Line, Col: start.Column}
}

// scanString consumes a quoted literal verbatim; there are no escapes.
func (l *Lexer) scanString(start Pos) (Token, error) {
	from := l.pos
	l.advance() // opening "
	for l.pos < len(l.src) && l.peek() != '"' {
		l.advance()
	}
	if l.pos >= len(l.src) {
		return Token{}, &LexError{Pos: start, Char: '"', Msg: "unterminated string literal"}
	}
	l.advance() // closing "
	return Token{Type: STRING, Text: string(l.src[from:l.pos]), Line: start.Line, Col: start.Column}, nil
}

// scanOperator handles the heads = < > & | ! with a greedy two-rune match.
func (l *Lexer) scanOperator(start Pos) (Token, error) {
	r, next := l.peek(), l.peek2()
	text := string(r)
	switch {
	case r == '=' && next == '=',
		r == '<' && (next == '=' || next == '<'),
		r == '>' && (next == '=' || next == '>'),
		r == '&' && next == '&',
		r == '|' && next == '|',
		r == '!' && next == '=':
		text += string(next)
	case r == '!':
		return Token{}, &LexError{Pos: start, Char: r, Msg: `unexpected character '!' (only "!=" is supported)`}
	}
	for range text {
		l.advance()
	}
	return Token{Type: SYMBOL, Text: text, Line: start.Line, Col: start.Column}, nil
}

// Lex scans src into a flat token slice. Whitespace and comments produce no
// tokens, and no EOF token is appended.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token

	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return tokens, nil
		}
		start := l.here()
		r := l.peek()

		switch {
		case isIdentStart(r):
			tokens = append(tokens, l.scanWhile(start, IDENT, isIdentPart))
		case isDigit(r):
			tokens = append(tokens, l.scanWhile(start, NUMBER, isDigit))
		case r == '"':
			tok, err := l.scanString(start)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case r == '/' && l.peek2() == '/':
			l.skipLineComment()
		case r == '/' && l.peek2() == '*':
			l.advance()
			l.advance()
			if err := l.skipBlockComment(start); err != nil {
				return nil, err
			}
		case r == '=' || r == '<' || r == '>' || r == '&' || r == '|' || r == '!':
			tok, err := l.scanOperator(start)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case strings.ContainsRune(separators, r):
			l.advance()
			tokens = append(tokens, Token{Type: SYMBOL, Text: string(r), Line: start.Line, Col: start.Column})
		default:
			return nil, &LexError{Pos: start, Char: r, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
}
