package verilog

import (
	"errors"
	"fmt"
	"strings"
)

// MacroKind distinguishes the three shapes of `define.
type MacroKind int

const (
	// Parametric: `define NAME(a, b) body, invoked as `NAME(x, y). An empty
	// list, `define NAME() body, gives a macro with no parameters.
	Parametric MacroKind = iota
	// ObjectLike: `define NAME (expr ...), invoked as `NAME. The body is the
	// parenthesized text itself followed by any tokens after the closing ).
	ObjectLike
	// Simple: `define NAME body with no parenthesis after the name.
	Simple
)

var macroKindNames = [...]string{
	Parametric: "parametric",
	ObjectLike: "object-like",
	Simple:     "simple",
}

func (k MacroKind) String() string {
	if int(k) >= 0 && int(k) < len(macroKindNames) {
		return macroKindNames[k]
	}
	return fmt.Sprintf("MacroKind(%d)", int(k))
}

// Macro is a single `define. Body holds every token after the header, so
//
//	`define MV (x==1) + 1
//
// expands `MV to ( x == 1 ) + 1.
type Macro struct {
	Name   string
	Kind   MacroKind
	Params []string // only for Parametric
	Body   []string // token texts
	Line   int      // line of the directive
}

func (m Macro) String() string {
	var sb strings.Builder
	sb.WriteString("`define ")
	sb.WriteString(m.Name)
	if m.Kind == Parametric {
		sb.WriteString("(" + strings.Join(m.Params, ", ") + ")")
	}
	if len(m.Body) > 0 {
		sb.WriteString(" " + strings.Join(m.Body, " "))
	}
	return sb.String()
}

// MacroTable maps macro names to their definitions. A later definition of the
// same name replaces the earlier one.
type MacroTable map[string]Macro

// Define adds or replaces m.
func (t MacroTable) Define(m Macro) { t[m.Name] = m }

// ignoredDirectives are dropped in the collection phase; they carry no syntax.
var ignoredDirectives = map[string]bool{
	"timescale":       true,
	"default_nettype": true,
	"resetall":        true,
}

// Preprocess collects every `define in src, then expands macro invocations in
// the remaining text. It returns the definitions in source order and the
// expanded token texts joined by single spaces.
//
// Definitions are visible to the whole document, including lines before them.
func Preprocess(src string) ([]Macro, string, error) {
	defs, tokens, err := preprocessTokens(src, nil)
	if err != nil {
		return nil, "", err
	}
	return defs, strings.Join(texts(tokens), " "), nil
}

// preprocessTokens is Preprocess without the final join. Expanded tokens keep
// the position of the invocation, so parse errors point into src. Definitions
// in extra are visible unless src redefines them.
func preprocessTokens(src string, extra MacroTable) ([]Macro, []Token, error) {
	var defs []Macro
	table := MacroTable{}
	for name, m := range extra {
		table[name] = m
	}
	var plain strings.Builder

	for i, line := range strings.Split(src, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "`") {
			plain.WriteString(line)
			plain.WriteString("\n")
			continue
		}

		m, drop, err := parseDirective(line, i+1)
		if err != nil {
			return nil, nil, err
		}
		if m != nil {
			defs = append(defs, *m)
			table.Define(*m)
		}
		if drop {
			// keep line numbers of the remaining text aligned with src
			plain.WriteString("\n")
			continue
		}
		plain.WriteString(line)
		plain.WriteString("\n")
	}

	tokens, err := Lex(plain.String())
	if err != nil {
		return nil, nil, err
	}
	tokens, err = table.ExpandTokens(tokens)
	if err != nil {
		return nil, nil, err
	}
	return defs, tokens, nil
}

// parseDirective inspects a line that starts with a backtick. It returns the
// macro when the line is a `define, and whether the line should be dropped
// from the plain text.
func parseDirective(line string, lineNo int) (*Macro, bool, error) {
	// ignored directives may hold text the lexer rejects, as in 1ns / 1ps
	word := strings.TrimPrefix(strings.TrimSpace(line), "`")
	if i := strings.IndexFunc(word, func(r rune) bool { return !isIdentPart(r) }); i >= 0 {
		word = word[:i]
	}
	if ignoredDirectives[word] {
		return nil, true, nil
	}

	tokens, err := Lex(line)
	if err != nil {
		return nil, false, relocate(err, lineNo)
	}
	for i := range tokens {
		tokens[i].Line = lineNo
	}
	c := NewCursor(tokens)
	tick := c.Advance()
	if c.Peek().Text != "define" {
		return nil, false, nil
	}
	c.Advance()

	name := c.Advance()
	if name.Type != IDENT && name.Type != KEYWORD {
		return nil, false, &MacroError{Pos: tick.Pos(), Msg: "`define without a macro name"}
	}
	m := &Macro{Name: name.Text, Line: lineNo}

	if !c.Peek().Is("(") {
		m.Kind = Simple
		m.Body = texts(c.Remaining())
		return m, true, nil
	}

	groups, err := splitGroups(c, name.Text)
	if err != nil {
		return nil, false, err
	}

	parametric := true
	for _, g := range groups {
		if len(g) != 1 {
			parametric = false
			break
		}
	}

	if parametric {
		m.Kind = Parametric
		m.Params = make([]string, 0, len(groups))
		for _, g := range groups {
			m.Params = append(m.Params, g[0].Text)
		}
		m.Body = texts(c.Remaining())
		return m, true, nil
	}

	m.Kind = ObjectLike
	m.Body = []string{"("}
	for _, g := range groups {
		m.Body = append(m.Body, texts(g)...)
	}
	m.Body = append(m.Body, ")")
	m.Body = append(m.Body, texts(c.Remaining())...)
	return m, true, nil
}

// Expand lexes src and replaces every `NAME invocation with the body of the
// matching definition, returning space-separated token texts.
func (t MacroTable) Expand(src string) (string, error) {
	tokens, err := Lex(src)
	if err != nil {
		return "", err
	}
	tokens, err = t.ExpandTokens(tokens)
	if err != nil {
		return "", err
	}
	return strings.Join(texts(tokens), " "), nil
}

// ExpandTokens performs macro substitution on a token slice. Expansion is a
// single pass: tokens produced by a macro are not scanned again. Body tokens
// take the position of the backtick that invoked them.
func (t MacroTable) ExpandTokens(tokens []Token) ([]Token, error) {
	c := NewCursor(tokens)
	out := make([]Token, 0, len(tokens))
	for !c.Done() {
		tok := c.Advance()
		if !tok.Is("`") {
			out = append(out, tok)
			continue
		}

		name := c.Advance()
		if name.Type != IDENT && name.Type != KEYWORD {
			return nil, &MacroError{Pos: tok.Pos(), Msg: "expected macro name after `"}
		}
		m, ok := t[name.Text]
		if !ok {
			return nil, &MacroError{Pos: name.Pos(), Name: name.Text, Msg: "undefined macro"}
		}
		if m.Kind != Parametric {
			out = append(out, m.bodyTokens(tok.Pos(), nil)...)
			continue
		}

		if !c.Peek().Is("(") {
			return nil, &MacroError{Pos: name.Pos(), Name: m.Name, Msg: "expected argument list"}
		}
		args, err := splitGroups(c, m.Name)
		if err != nil {
			return nil, err
		}
		if len(args) != len(m.Params) {
			return nil, &MacroError{
				Pos:  name.Pos(),
				Name: m.Name,
				Msg:  fmt.Sprintf("expects %d arguments, got %d", len(m.Params), len(args)),
			}
		}
		out = append(out, m.bodyTokens(tok.Pos(), args)...)
	}
	return out, nil
}

// bodyTokens instantiates the body at pos, replacing every body token equal
// to a parameter name with the corresponding argument tokens.
func (m Macro) bodyTokens(pos Pos, args [][]Token) []Token {
	bound := make(map[string][]Token, len(args))
	for i, a := range args {
		bound[m.Params[i]] = a
	}
	var out []Token
	for _, text := range m.Body {
		if arg, ok := bound[text]; ok {
			out = append(out, arg...)
			continue
		}
		out = append(out, Token{Type: classify(text), Text: text, Line: pos.Line, Col: pos.Column})
	}
	return out
}

// classify recovers the lexical class of a body token from its text.
func classify(text string) TokenType {
	r := []rune(text)
	switch {
	case len(r) == 0:
		return SYMBOL
	case keywords[text]:
		return KEYWORD
	case isIdentStart(r[0]):
		return IDENT
	case isDigit(r[0]):
		return NUMBER
	case r[0] == '"':
		return STRING
	}
	return SYMBOL
}

// splitGroups consumes a parenthesized list from c and returns its top-level
// comma-separated token groups. Commas inside nested parentheses do not split.
// "()" yields no groups.
func splitGroups(c *Cursor, name string) ([][]Token, error) {
	open := c.Advance() // (
	var groups [][]Token
	var cur []Token
	depth := 0

	for {
		if c.Done() {
			return nil, &MacroError{Pos: open.Pos(), Name: name, Msg: "unterminated argument list"}
		}
		tok := c.Advance()
		switch {
		case tok.Is("("):
			depth++
		case tok.Is(")") && depth == 0:
			if cur != nil || len(groups) > 0 {
				groups = append(groups, cur)
			}
			return groups, nil
		case tok.Is(")"):
			depth--
		case tok.Is(",") && depth == 0:
			groups = append(groups, cur)
			cur = []Token{}
			continue
		}
		cur = append(cur, tok)
	}
}

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

// relocate moves a lex error found in a single line to its document line.
func relocate(err error, lineNo int) error {
	var le *LexError
	if errors.As(err, &le) {
		moved := *le
		moved.Pos.Line = lineNo
		return &moved
	}
	return err
}
