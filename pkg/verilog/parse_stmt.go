package verilog

// ParseStatement parses one statement starting at the current token.
func (p *Parser) ParseStatement() (Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.c.Peek()
	switch {
	case tok.Is("input"), tok.Is("output"), tok.Is("reg"), tok.Is("wire"):
		return p.parseDeclaration()
	case tok.Is("always"):
		return p.parseAlways()
	case tok.Is("if"):
		return p.parseIf()
	case tok.Is("assign"):
		return p.parseAssign()
	case tok.Is("begin"):
		return p.parseBegin()
	case tok.Is("case"):
		return p.parseCase()
	case tok.Is(";"):
		p.c.Advance()
		return &Empty{}, nil
	case tok.Is("$"):
		return p.parseCall()
	case tok.Is("{"):
		return p.parseConcatTarget()
	case tok.Type == IDENT && p.c.PeekAt(1).Type == IDENT:
		return p.parseInstantiation()
	case tok.Type == IDENT:
		return p.parseProceduralAssign()
	}
	return nil, p.fail(unexpected(tok, "statement"))
}

// parseDeclaration handles [input|output] [reg|wire] [hi:lo] name [= init];
// Without a direction keyword the category is input: ports and locals share
// one grammar.
func (p *Parser) parseDeclaration() (Stmt, error) {
	d, err := p.parseDeclHead()
	if err != nil {
		return nil, err
	}
	if p.c.Peek().Is("=") {
		p.c.Advance()
		if d.Init, err = p.parseExpr(false); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return d, nil
}

// parseDeclHead parses a declaration up to and including its name.
func (p *Parser) parseDeclHead() (*Declaration, error) {
	d := &Declaration{Category: CategoryInput, Storage: StorageWire}

	switch tok := p.c.Peek(); {
	case tok.Is("input"):
		p.c.Advance()
	case tok.Is("output"):
		d.Category = CategoryOutput
		p.c.Advance()
	}
	switch tok := p.c.Peek(); {
	case tok.Is("reg"):
		d.Storage = StorageReg
		p.c.Advance()
	case tok.Is("wire"):
		p.c.Advance()
	}

	if p.c.Peek().Is("[") {
		r, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		d.Width = r
	}

	name, err := p.expectIdent("declaration name")
	if err != nil {
		return nil, err
	}
	d.Name = name.Text
	return d, nil
}

func (p *Parser) parseRange() (*Range, error) {
	p.c.Advance() // [
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	high, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	low, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}
	return &Range{High: high, Low: low}, nil
}

// parseAlways handles always @(posedge a or negedge b) and always @(*).
func (p *Parser) parseAlways() (Stmt, error) {
	p.c.Advance() // always
	if _, err := p.expect("@"); err != nil {
		return nil, err
	}

	a := &Always{}
	if p.c.Peek().Is("*") {
		p.c.Advance()
		a.Sensitivity = []SensItem{{Edge: Star}}
	} else {
		if _, err := p.expect("("); err != nil {
			return nil, err
		}
		for !p.c.Peek().Is(")") {
			tok := p.c.Peek()
			switch {
			case tok.Is("or"), tok.Is(","):
				p.c.Advance()
			case tok.Is("*"):
				p.c.Advance()
				a.Sensitivity = append(a.Sensitivity, SensItem{Edge: Star})
			case tok.Is("posedge"), tok.Is("negedge"):
				p.c.Advance()
				sig, err := p.expectIdent("signal name")
				if err != nil {
					return nil, err
				}
				edge := Posedge
				if tok.Text == "negedge" {
					edge = Negedge
				}
				a.Sensitivity = append(a.Sensitivity, SensItem{Edge: edge, Signal: sig.Text})
			default:
				return nil, p.fail(unexpected(tok, "posedge, negedge, * or \")\""))
			}
		}
		p.c.Advance() // )
	}

	body, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	a.Body = body
	return a, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	p.c.Advance() // if
	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	s := &If{Cond: cond, Then: then}
	if p.c.Peek().Is("else") {
		p.c.Advance()
		if s.Else, err = p.ParseStatement(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// parseParenExpr parses ( expr ), where <= compares.
func (p *Parser) parseParenExpr() (Expr, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseAssign() (Stmt, error) {
	p.c.Advance() // assign
	l, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("="); err != nil {
		return nil, err
	}
	r, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &Assign{LHS: l, RHS: r}, nil
}

func (p *Parser) parseBegin() (Stmt, error) {
	p.c.Advance() // begin
	b := &Begin{}
	for !p.c.Peek().Is("end") {
		if p.c.Done() {
			return nil, p.fail(unexpected(p.c.Peek(), "\"end\""))
		}
		s, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	p.c.Advance() // end
	return b, nil
}

// parseCase handles case (subject) arms endcase with at most one default.
func (p *Parser) parseCase() (Stmt, error) {
	p.c.Advance() // case
	subject, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}

	c := &Case{Subject: subject}
	for !p.c.Peek().Is("endcase") {
		tok := p.c.Peek()
		if tok.Type == EOF {
			return nil, p.fail(unexpected(tok, "\"endcase\""))
		}

		if tok.Is("default") {
			if c.Default != nil {
				return nil, p.fail(unexpected(tok, "case arm (only one default allowed)"))
			}
			p.c.Advance()
			if p.c.Peek().Is(":") {
				p.c.Advance()
			}
			if c.Default, err = p.ParseStatement(); err != nil {
				return nil, err
			}
			continue
		}

		match, err := p.parseExpr(false)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(":"); err != nil {
			return nil, err
		}
		body, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		c.Arms = append(c.Arms, CaseArm{Match: match, Body: body})
	}
	p.c.Advance() // endcase
	return c, nil
}

// parseInstantiation handles Type name (.port(expr), ...). The semicolon
// that usually follows is left for the caller.
func (p *Parser) parseInstantiation() (Stmt, error) {
	typ := p.c.Advance()
	inst := p.c.Advance()
	m := &ModuleInstantiation{ModuleType: typ.Text, Instance: inst.Text}

	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	if p.c.Peek().Is(")") {
		p.c.Advance()
		return m, nil
	}
	for {
		if _, err := p.expect("."); err != nil {
			return nil, err
		}
		port, err := p.expectIdent("port name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("("); err != nil {
			return nil, err
		}
		conn := PortConn{Port: port.Text}
		if !p.c.Peek().Is(")") {
			if conn.Expr, err = p.parseExpr(true); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		m.Ports = append(m.Ports, conn)

		if p.c.Peek().Is(",") {
			p.c.Advance()
			continue
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// parseProceduralAssign handles lhs = rhs; and lhs <= rhs;
func (p *Parser) parseProceduralAssign() (Stmt, error) {
	l, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	op := p.c.Peek()
	if !op.Is("=") && !op.Is("<=") {
		return nil, p.fail(unexpected(op, "\"=\" or \"<=\""))
	}
	p.c.Advance()
	r, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	if op.Text == "=" {
		return &BlockingAssign{LHS: l, RHS: r}, nil
	}
	return &NonBlockingAssign{LHS: l, RHS: r}, nil
}

// parseConcatTarget handles {a, b} <= rhs;
func (p *Parser) parseConcatTarget() (Stmt, error) {
	l, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("<="); err != nil {
		return nil, err
	}
	r, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &NonBlockingAssign{LHS: l, RHS: r}, nil
}

// parseCall handles $name(args); and $name;
func (p *Parser) parseCall() (Stmt, error) {
	p.c.Advance() // $
	name, err := p.expectIdent("system task name")
	if err != nil {
		return nil, err
	}
	call := &Call{Name: name.Text}

	if p.c.Peek().Is("(") {
		p.c.Advance()
		for !p.c.Peek().Is(")") {
			arg, err := p.parseExpr(true)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if !p.c.Peek().Is(",") {
				break
			}
			p.c.Advance()
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return call, nil
}

// ParseModule parses one module ... endmodule. Header ports may be bare
// names or ANSI declarations; the latter are also prepended to Stmts.
func (p *Parser) ParseModule() (*Module, error) {
	if _, err := p.expect("module"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("module name")
	if err != nil {
		return nil, err
	}
	m := &Module{Name: name.Text}

	if p.c.Peek().Is("(") {
		if err := p.parsePortList(m); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}

	for !p.c.Peek().Is("endmodule") {
		if p.c.Done() {
			return nil, p.fail(unexpected(p.c.Peek(), "\"endmodule\""))
		}
		s, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		m.Stmts = append(m.Stmts, s)
	}
	p.c.Advance() // endmodule
	return m, nil
}

// parsePortList handles (a, b, c) and (input clk, output reg [3:0] q, r).
// A bare name after an ANSI declaration inherits its direction and width.
func (p *Parser) parsePortList(m *Module) error {
	p.c.Advance() // (
	if p.c.Peek().Is(")") {
		p.c.Advance()
		return nil
	}

	var last *Declaration
	for {
		tok := p.c.Peek()
		switch {
		case tok.Is("input"), tok.Is("output"), tok.Is("reg"), tok.Is("wire"):
			d, err := p.parseDeclHead()
			if err != nil {
				return err
			}
			last = d
			m.Stmts = append(m.Stmts, d)
			m.Ports = append(m.Ports, d.Name)
		case tok.Type == IDENT:
			p.c.Advance()
			m.Ports = append(m.Ports, tok.Text)
			if last != nil {
				d := &Declaration{Category: last.Category, Storage: last.Storage, Name: tok.Text}
				if last.Width != nil {
					d.Width = &Range{High: cloneExpr(last.Width.High), Low: cloneExpr(last.Width.Low)}
				}
				m.Stmts = append(m.Stmts, d)
			}
		default:
			return p.fail(unexpected(tok, "port name"))
		}

		if p.c.Peek().Is(",") {
			p.c.Advance()
			continue
		}
		_, err := p.expect(")")
		return err
	}
}
