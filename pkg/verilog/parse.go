package verilog

import (
	"strings"
)

// DefaultMaxDepth bounds the nesting of (), [], {} groups and of statements.
const DefaultMaxDepth = 256

type preprocessMode int

const (
	preprocessAuto preprocessMode = iota // only when the source contains a backtick
	preprocessOn
	preprocessOff
)

type options struct {
	maxDepth   int
	preprocess preprocessMode
	macros     MacroTable
	source     string
}

// Option configures parsing.
type Option func(*options)

// WithMaxDepth sets the nesting limit. Values below 1 restore the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithPreprocess forces the preprocessor on or off. By default it runs only
// when the source contains a backtick.
func WithPreprocess(on bool) Option {
	return func(o *options) {
		if on {
			o.preprocess = preprocessOn
		} else {
			o.preprocess = preprocessOff
		}
	}
}

// WithMacros makes the definitions in t visible to macro expansion. Defines in
// the parsed source take priority.
func WithMacros(t MacroTable) Option {
	return func(o *options) {
		o.macros = t
	}
}

// WithSource gives NewParser the text its tokens came from, so syntax errors
// can quote the offending line.
func WithSource(src string) Option {
	return func(o *options) {
		o.source = src
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxDepth < 1 {
		o.maxDepth = DefaultMaxDepth
	}
	return o
}

// Parser builds AST nodes from a token slice.
//
//	module     = "module" IDENT [ "(" ports ")" ] ";" { statement } "endmodule"
//	statement  = declaration | always | if | assign | begin | case
//	           | instance | lvalue ("=" | "<=") expr ";" | "$" IDENT [ "(" args ")" ] ";" | ";"
//	expression = operand [ ( binop | "?" ) expression ]   (no precedence, right-associative)
type Parser struct {
	c     *Cursor
	opts  options
	depth int
	lines []string
}

// NewParser returns a parser positioned at the first token.
func NewParser(tokens []Token, opts ...Option) *Parser {
	o := buildOptions(opts)
	p := &Parser{c: NewCursor(tokens), opts: o}
	if o.source != "" {
		p.lines = strings.Split(o.source, "\n")
	}
	return p
}

// Done reports whether every token has been consumed.
func (p *Parser) Done() bool { return p.c.Done() }

// Remaining returns the tokens not yet consumed.
func (p *Parser) Remaining() []Token { return p.c.Remaining() }

// fail attaches the source line to a syntax error.
func (p *Parser) fail(err *SyntaxError) error {
	if idx := err.Pos.Line - 1; idx >= 0 && idx < len(p.lines) {
		err.Snippet = strings.TrimSpace(p.lines[idx])
	}
	return err
}

func (p *Parser) expect(text string) (Token, error) {
	tok, err := p.c.Expect(text)
	if err != nil {
		return tok, p.fail(err.(*SyntaxError))
	}
	return tok, nil
}

func (p *Parser) expectIdent(what string) (Token, error) {
	tok := p.c.Peek()
	if tok.Type != IDENT {
		return tok, p.fail(unexpected(tok, "%s", what))
	}
	return p.c.Advance(), nil
}

// enter and leave bracket every nesting level.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.opts.maxDepth {
		return &DepthError{Pos: p.c.Peek().Pos(), Limit: p.opts.maxDepth}
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// tokenize lexes src and, depending on the options, expands macros.
func tokenize(src string, o options) ([]Token, error) {
	run := o.preprocess == preprocessOn ||
		(o.preprocess == preprocessAuto && strings.Contains(src, "`"))
	if !run {
		return Lex(src)
	}
	_, tokens, err := preprocessTokens(src, o.macros)
	return tokens, err
}

func newSourceParser(src string, opts []Option) (*Parser, error) {
	o := buildOptions(opts)
	tokens, err := tokenize(src, o)
	if err != nil {
		return nil, err
	}
	o.source = src
	p := &Parser{c: NewCursor(tokens), opts: o, lines: strings.Split(src, "\n")}
	return p, nil
}

// ParseModule runs the whole pipeline over src, which must hold exactly one
// module.
func ParseModule(src string, opts ...Option) (*Module, error) {
	p, err := newSourceParser(src, opts)
	if err != nil {
		return nil, err
	}
	m, err := p.ParseModule()
	if err != nil {
		return nil, err
	}
	if !p.Done() {
		return nil, p.fail(unexpected(p.c.Peek(), "end of input after endmodule"))
	}
	return m, nil
}

// ParseModules parses every module in src.
func ParseModules(src string, opts ...Option) ([]*Module, error) {
	p, err := newSourceParser(src, opts)
	if err != nil {
		return nil, err
	}
	var mods []*Module
	for !p.Done() {
		m, err := p.ParseModule()
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// ParseStatement parses a single statement. Tokens left over after a module
// instantiation are ignored, since the instantiation grammar stops before its
// semicolon; any other leftover is an error.
func ParseStatement(src string, opts ...Option) (Stmt, error) {
	p, err := newSourceParser(src, opts)
	if err != nil {
		return nil, err
	}
	s, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	if _, ok := s.(*ModuleInstantiation); !ok && !p.Done() {
		return nil, p.fail(unexpected(p.c.Peek(), "end of statement"))
	}
	return s, nil
}

// ParseExpression parses src as a single expression that must use every
// token.
func ParseExpression(src string, opts ...Option) (Expr, error) {
	p, err := newSourceParser(src, opts)
	if err != nil {
		return nil, err
	}
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.Done() {
		return nil, p.fail(unexpected(p.c.Peek(), "end of expression"))
	}
	return e, nil
}
