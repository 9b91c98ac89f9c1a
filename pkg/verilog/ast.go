package verilog

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is implemented by every AST type, including *Module.
type Node interface {
	String() string
}

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Identifier is a reference to a named net, reg or port.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// NumberLiteral is an unsigned integer constant.
//
//	8'hFF   NumberLiteral{Width: 8, Radix: 'h', Digits: "FF", Sized: true}
//	16      NumberLiteral{Width: 32, Radix: 'd', Digits: "16"}
type NumberLiteral struct {
	Width  int
	Radix  byte // one of b, o, d, h
	Digits string
	Sized  bool // written with an explicit width'radix prefix
}

// DefaultWidth is the width of a literal written without a size.
const DefaultWidth = 32

func (*NumberLiteral) exprNode() {}
func (n *NumberLiteral) String() string {
	if !n.Sized {
		return n.Digits
	}
	return fmt.Sprintf("%d'%c%s", n.Width, n.Radix, n.Digits)
}

// Value converts the digits using the literal's radix. Digits containing x, z
// or ? have no integer value and return an error.
func (n *NumberLiteral) Value() (uint64, error) {
	base := map[byte]int{'b': 2, 'o': 8, 'd': 10, 'h': 16}[n.Radix]
	if base == 0 {
		return 0, fmt.Errorf("unknown radix %q", n.Radix)
	}
	return strconv.ParseUint(strings.ReplaceAll(n.Digits, "_", ""), base, 64)
}

// StringLiteral keeps its surrounding quotes.
type StringLiteral struct {
	Raw string
}

func (*StringLiteral) exprNode()        {}
func (s *StringLiteral) String() string { return s.Raw }

// UnaryOp is a prefix operator applied to the rest of the expression.
type UnaryOp struct {
	Op      string
	Operand Expr
}

func (*UnaryOp) exprNode() {}
func (u *UnaryOp) String() string {
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}

// BinaryOp is Left Op Right. All operators share one precedence and group to
// the right, so a & b | c is BinaryOp{&, a, BinaryOp{|, b, c}}.
type BinaryOp struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryOp) exprNode() {}
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// TernaryOp is Cond ? Then : Else.
type TernaryOp struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*TernaryOp) exprNode() {}
func (t *TernaryOp) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", t.Cond, t.Then, t.Else)
}

// Slice is Base[High:Low]. A single-bit select has High and Low equal.
type Slice struct {
	Base Expr
	High Expr
	Low  Expr
}

func (*Slice) exprNode() {}
func (s *Slice) String() string {
	hi, lo := s.High.String(), s.Low.String()
	if hi == lo {
		return fmt.Sprintf("%s[%s]", s.Base, hi)
	}
	return fmt.Sprintf("%s[%s:%s]", s.Base, hi, lo)
}

// Concat is {a, b, c}.
type Concat struct {
	Elems []Expr
}

func (*Concat) exprNode() {}
func (c *Concat) String() string {
	parts := make([]string, len(c.Elems))
	for i, e := range c.Elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

//  Statement nodes

// Stmt is implemented by every statement node. String renders the statement
// at indent level zero.
type Stmt interface {
	Node
	stmtNode()
}

// Category is the direction part of a declaration.
type Category int

const (
	CategoryInput Category = iota
	CategoryOutput
	CategoryInternal // never produced by the parser, see parseDeclaration
)

func (c Category) String() string {
	switch c {
	case CategoryInput:
		return "input"
	case CategoryOutput:
		return "output"
	case CategoryInternal:
		return "internal"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Storage is the net kind of a declaration.
type Storage int

const (
	StorageWire Storage = iota
	StorageReg
)

func (s Storage) String() string {
	if s == StorageReg {
		return "reg"
	}
	return "wire"
}

// Range is a [High:Low] width.
type Range struct {
	High Expr
	Low  Expr
}

func (r *Range) String() string { return fmt.Sprintf("[%s:%s]", r.High, r.Low) }

// Declaration declares a port or a local net.
//
//	output reg [15:0] out = 0;
type Declaration struct {
	Category Category
	Storage  Storage
	Width    *Range // nil for a single bit
	Name     string
	Init     Expr // nil when absent
}

func (*Declaration) stmtNode()        {}
func (d *Declaration) String() string { return Format(d) }

// Edge is the trigger kind of a sensitivity item.
type Edge int

const (
	Posedge Edge = iota
	Negedge
	Star
)

func (e Edge) String() string {
	switch e {
	case Posedge:
		return "posedge"
	case Negedge:
		return "negedge"
	case Star:
		return "*"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// SensItem is one entry of an always block's sensitivity list. Signal is
// empty for Star.
type SensItem struct {
	Edge   Edge
	Signal string
}

func (s SensItem) String() string {
	if s.Edge == Star {
		return "*"
	}
	return s.Edge.String() + " " + s.Signal
}

// Always is always @(sensitivity) body.
type Always struct {
	Sensitivity []SensItem
	Body        Stmt
}

func (*Always) stmtNode()        {}
func (a *Always) String() string { return Format(a) }

// If has a nil Else when there is no else branch.
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*If) stmtNode()        {}
func (i *If) String() string { return Format(i) }

// Begin is a begin ... end block.
type Begin struct {
	Stmts []Stmt
}

func (*Begin) stmtNode()        {}
func (b *Begin) String() string { return Format(b) }

// CaseArm is Match : Body.
type CaseArm struct {
	Match Expr
	Body  Stmt
}

// Case holds at most one default arm, stored separately from Arms.
type Case struct {
	Subject Expr
	Arms    []CaseArm
	Default Stmt // nil when absent
}

func (*Case) stmtNode()        {}
func (c *Case) String() string { return Format(c) }

// Assign is a continuous assignment: assign LHS = RHS;
type Assign struct {
	LHS Expr
	RHS Expr
}

func (*Assign) stmtNode()        {}
func (a *Assign) String() string { return Format(a) }

// BlockingAssign is LHS = RHS;
type BlockingAssign struct {
	LHS Expr
	RHS Expr
}

func (*BlockingAssign) stmtNode()        {}
func (a *BlockingAssign) String() string { return Format(a) }

// NonBlockingAssign is LHS <= RHS;
type NonBlockingAssign struct {
	LHS Expr
	RHS Expr
}

func (*NonBlockingAssign) stmtNode()        {}
func (a *NonBlockingAssign) String() string { return Format(a) }

// PortConn is one .Port(Expr) connection. Expr is nil for .Port().
type PortConn struct {
	Port string
	Expr Expr
}

// ModuleInstantiation is ModuleType InstanceName (.port(expr), ...). The
// parser does not consume a trailing semicolon.
type ModuleInstantiation struct {
	ModuleType string
	Instance   string
	Ports      []PortConn
}

func (*ModuleInstantiation) stmtNode()        {}
func (m *ModuleInstantiation) String() string { return Format(m) }

// Call is a system task call such as $display("x");. Name excludes the $.
type Call struct {
	Name string
	Args []Expr
}

func (*Call) stmtNode()        {}
func (c *Call) String() string { return Format(c) }

// Empty is a lone semicolon.
type Empty struct{}

func (*Empty) stmtNode()        {}
func (e *Empty) String() string { return Format(e) }

// Module is module Name (Ports); Stmts endmodule.
type Module struct {
	Name  string
	Ports []string
	Stmts []Stmt
}

func (m *Module) String() string { return Format(m) }
