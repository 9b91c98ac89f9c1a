package verilog

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// Format renders node as indented source text. Expressions render on one line
// with every operator application parenthesized, so the output parses back to
// the same tree.
func Format(node Node) string {
	p := &printer{}
	switch n := node.(type) {
	case *Module:
		p.module(n)
	case Stmt:
		p.stmt(n, 0, true)
	case Expr:
		p.WriteString(n.String())
	default:
		p.WriteString(fmt.Sprintf("<%T>", node))
	}
	return p.String()
}

type printer struct {
	strings.Builder
}

func (p *printer) indent(level int) {
	p.WriteString(strings.Repeat(indentUnit, level))
}

func (p *printer) module(m *Module) {
	p.WriteString("module " + m.Name + " (")
	for i, port := range m.Ports {
		p.WriteString("\n" + indentUnit + port)
		if i < len(m.Ports)-1 {
			p.WriteString(",")
		}
	}
	if len(m.Ports) > 0 {
		p.WriteString("\n")
	}
	p.WriteString(");\n")
	for _, s := range m.Stmts {
		p.stmt(s, 1, true)
		p.WriteString("\n")
	}
	p.WriteString("endmodule")
}

// lhs drops the parentheses a compound target would otherwise print with,
// since a statement cannot start with "(".
func lhs(e Expr) string {
	s := e.String()
	switch n := e.(type) {
	case *BinaryOp:
		if n.Op == "<=" {
			return s
		}
	case *TernaryOp:
	default:
		return s
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
}

// stmt writes s. When lead is false the cursor is already positioned on the
// line (case arms) and no indentation is written before the first line.
func (p *printer) stmt(s Stmt, level int, lead bool) {
	if lead {
		p.indent(level)
	}
	switch n := s.(type) {
	case *Declaration:
		if n.Category != CategoryInternal {
			p.WriteString(n.Category.String() + " ")
		}
		p.WriteString(n.Storage.String())
		if n.Width != nil {
			p.WriteString(" " + n.Width.String())
		}
		p.WriteString(" " + n.Name)
		if n.Init != nil {
			p.WriteString(" = " + n.Init.String())
		}
		p.WriteString(";")

	case *Always:
		items := make([]string, len(n.Sensitivity))
		for i, it := range n.Sensitivity {
			items[i] = it.String()
		}
		p.WriteString("always @(" + strings.Join(items, " or ") + ")\n")
		p.stmt(n.Body, level+1, true)

	case *If:
		p.WriteString("if (" + n.Cond.String() + ")\n")
		p.stmt(n.Then, level+1, true)
		if n.Else != nil {
			p.WriteString("\n")
			p.indent(level)
			p.WriteString("else\n")
			p.stmt(n.Else, level+1, true)
		}

	case *Begin:
		p.WriteString("begin\n")
		for _, inner := range n.Stmts {
			p.stmt(inner, level+1, true)
			p.WriteString("\n")
		}
		p.indent(level)
		p.WriteString("end")

	case *Case:
		p.WriteString("case (" + n.Subject.String() + ")\n")
		for _, arm := range n.Arms {
			p.indent(level + 1)
			p.WriteString(arm.Match.String() + ": ")
			p.stmt(arm.Body, level+1, false)
			p.WriteString("\n")
		}
		if n.Default != nil {
			p.indent(level + 1)
			p.WriteString("default: ")
			p.stmt(n.Default, level+1, false)
			p.WriteString("\n")
		}
		p.indent(level)
		p.WriteString("endcase")

	case *Assign:
		p.WriteString("assign " + lhs(n.LHS) + " = " + n.RHS.String() + ";")
	case *BlockingAssign:
		p.WriteString(lhs(n.LHS) + " = " + n.RHS.String() + ";")
	case *NonBlockingAssign:
		p.WriteString(lhs(n.LHS) + " <= " + n.RHS.String() + ";")

	case *ModuleInstantiation:
		conns := make([]string, len(n.Ports))
		for i, pc := range n.Ports {
			expr := ""
			if pc.Expr != nil {
				expr = pc.Expr.String()
			}
			conns[i] = "." + pc.Port + "(" + expr + ")"
		}
		p.WriteString(n.ModuleType + " " + n.Instance + " (" + strings.Join(conns, ", ") + ")")

	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = a.String()
		}
		p.WriteString("$" + n.Name + "(" + strings.Join(args, ", ") + ");")

	case *Empty:
		p.WriteString(";")

	default:
		p.WriteString(fmt.Sprintf("<%T>", s))
	}
}
