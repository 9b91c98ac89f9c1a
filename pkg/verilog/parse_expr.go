package verilog

import (
	"strconv"
	"strings"
	"unicode"
)

// binaryOps all share one precedence level.
var binaryOps = map[string]bool{
	"&&": true, "&": true, "||": true, "|": true,
	"==": true, "!=": true,
	"-": true, "+": true,
	"<<": true, ">>": true,
	"<": true, ">": true, "<=": true, ">=": true,
}

// atBoundary reports whether tok ends the current expression. "<=" is the
// non-blocking assignment operator at statement level and less-or-equal
// inside a (), [] or {} group.
func atBoundary(tok Token, nested bool) bool {
	if tok.Type == EOF {
		return true
	}
	switch tok.Text {
	case ":", "]", ")", "=", ";", ",", "}":
		return tok.Type == SYMBOL
	case "<=":
		return !nested
	case "begin":
		return tok.Type == KEYWORD
	}
	return false
}

// ParseExpression parses one expression at statement level, stopping before
// the first boundary token.
func (p *Parser) ParseExpression() (Expr, error) {
	return p.parseExpr(false)
}

// pending is an operator still waiting for its right-hand side.
type pending struct {
	op   string // binary operator, "~" or "?"
	left Expr   // left operand, or the condition of "?"
	then Expr   // only for "?"
}

// parseExpr accumulates at most one operand until a boundary. Operators take
// the entire rest of the expression as their right-hand side, so they are
// stacked while scanning and folded from the right at the end.
func (p *Parser) parseExpr(nested bool) (Expr, error) {
	var stack []pending
	var operand Expr

	for {
		tok := p.c.Peek()
		if atBoundary(tok, nested) {
			if operand == nil {
				return nil, p.fail(unexpected(tok, "expression"))
			}
			break
		}

		switch {
		case tok.Is("["):
			if operand == nil {
				return nil, p.fail(unexpected(tok, "expression"))
			}
			s, err := p.parseSlice(operand)
			if err != nil {
				return nil, err
			}
			operand = s

		case tok.Type == SYMBOL && binaryOps[tok.Text]:
			if operand == nil {
				return nil, p.fail(unexpected(tok, "operand before %q", tok.Text))
			}
			p.c.Advance()
			stack = append(stack, pending{op: tok.Text, left: operand})
			operand = nil

		case tok.Is("?"):
			if operand == nil {
				return nil, p.fail(unexpected(tok, "condition before ?"))
			}
			p.c.Advance()
			then, err := p.parseThen(nested)
			if err != nil {
				return nil, err
			}
			stack = append(stack, pending{op: "?", left: operand, then: then})
			operand = nil

		case tok.Is("~"):
			if operand != nil {
				return nil, p.fail(unexpected(tok, "operator"))
			}
			p.c.Advance()
			stack = append(stack, pending{op: "~"})

		default:
			if operand != nil {
				return nil, p.fail(unexpected(tok, "operator"))
			}
			e, err := p.parseOperand()
			if err != nil {
				return nil, err
			}
			operand = e
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		switch f := stack[i]; f.op {
		case "~":
			operand = &UnaryOp{Op: "~", Operand: operand}
		case "?":
			operand = &TernaryOp{Cond: f.left, Then: f.then, Else: operand}
		default:
			operand = &BinaryOp{Op: f.op, Left: f.left, Right: operand}
		}
	}
	return operand, nil
}

// parseThen parses the branch between ? and :, which counts as one level of
// nesting.
func (p *Parser) parseThen(nested bool) (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	then, err := p.parseExpr(nested)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	return then, nil
}

// parseOperand parses a literal, an identifier, a parenthesized group or a
// concatenation.
func (p *Parser) parseOperand() (Expr, error) {
	tok := p.c.Peek()
	switch {
	case tok.Type == NUMBER:
		return p.parseNumber()
	case tok.Type == IDENT:
		p.c.Advance()
		return &Identifier{Name: tok.Text}, nil
	case tok.Type == STRING:
		p.c.Advance()
		return &StringLiteral{Raw: tok.Text}, nil
	case tok.Is("("):
		return p.parseGroup()
	case tok.Is("{"):
		return p.parseConcat()
	}
	return nil, p.fail(unexpected(tok, "expression"))
}

// parseNumber handles both 16 and the three-token sized form 8 ' hFF.
func (p *Parser) parseNumber() (Expr, error) {
	tok := p.c.Advance()
	if !p.c.Peek().Is("'") {
		return &NumberLiteral{Width: DefaultWidth, Radix: 'd', Digits: tok.Text}, nil
	}

	width, err := strconv.Atoi(tok.Text)
	if err != nil || width < 1 {
		return nil, p.fail(unexpected(tok, "positive literal width"))
	}
	p.c.Advance() // '

	body := p.c.Peek()
	if body.Type != IDENT || len(body.Text) < 2 || !strings.ContainsRune("bodhBODH", rune(body.Text[0])) {
		return nil, p.fail(unexpected(body, "radix and digits after '"))
	}
	p.c.Advance()
	return &NumberLiteral{
		Width:  width,
		Radix:  byte(unicode.ToLower(rune(body.Text[0]))),
		Digits: body.Text[1:],
		Sized:  true,
	}, nil
}

// parseSlice parses [hi:lo] or [i] after base.
func (p *Parser) parseSlice(base Expr) (Expr, error) {
	open := p.c.Advance() // [
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	high, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	var low Expr
	if p.c.Peek().Is(":") {
		p.c.Advance()
		if low, err = p.parseExpr(true); err != nil {
			return nil, err
		}
	} else {
		// a single-bit select owns two copies of its index
		low = cloneExpr(high)
	}
	if !p.c.Peek().Is("]") {
		return nil, p.fail(unexpected(p.c.Peek(), "\"]\" closing [ at %s", open.Pos()))
	}
	p.c.Advance()
	return &Slice{Base: base, High: high, Low: low}, nil
}

// parseGroup returns the single expression inside ( ).
func (p *Parser) parseGroup() (Expr, error) {
	open := p.c.Advance() // (
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	inner, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if !p.c.Peek().Is(")") {
		return nil, p.fail(unexpected(p.c.Peek(), "\")\" closing ( at %s", open.Pos()))
	}
	p.c.Advance()
	return inner, nil
}

func (p *Parser) parseConcat() (Expr, error) {
	open := p.c.Advance() // {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var elems []Expr
	for {
		e, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.c.Peek().Is(",") {
			p.c.Advance()
			continue
		}
		if !p.c.Peek().Is("}") {
			return nil, p.fail(unexpected(p.c.Peek(), "\"}\" closing { at %s", open.Pos()))
		}
		p.c.Advance()
		return &Concat{Elems: elems}, nil
	}
}
