package verilog

// Walk traverses the tree rooted at node in depth-first order, calling fn for
// each node. Children are skipped when fn returns false.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Module:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}

	// Expressions
	case *Identifier, *NumberLiteral, *StringLiteral:
	case *UnaryOp:
		Walk(n.Operand, fn)
	case *BinaryOp:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *TernaryOp:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)
	case *Slice:
		Walk(n.Base, fn)
		Walk(n.High, fn)
		// b[i] is written with one index
		if n.Low.String() != n.High.String() {
			Walk(n.Low, fn)
		}
	case *Concat:
		for _, e := range n.Elems {
			Walk(e, fn)
		}

	// Statements
	case *Declaration:
		if n.Width != nil {
			Walk(n.Width.High, fn)
			Walk(n.Width.Low, fn)
		}
		if n.Init != nil {
			Walk(n.Init, fn)
		}
	case *Always:
		Walk(n.Body, fn)
	case *If:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		if n.Else != nil {
			Walk(n.Else, fn)
		}
	case *Begin:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}
	case *Case:
		Walk(n.Subject, fn)
		for _, arm := range n.Arms {
			Walk(arm.Match, fn)
			Walk(arm.Body, fn)
		}
		if n.Default != nil {
			Walk(n.Default, fn)
		}
	case *Assign:
		Walk(n.LHS, fn)
		Walk(n.RHS, fn)
	case *BlockingAssign:
		Walk(n.LHS, fn)
		Walk(n.RHS, fn)
	case *NonBlockingAssign:
		Walk(n.LHS, fn)
		Walk(n.RHS, fn)
	case *ModuleInstantiation:
		for _, pc := range n.Ports {
			if pc.Expr != nil {
				Walk(pc.Expr, fn)
			}
		}
	case *Call:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *Empty:
	}
}

// cloneExpr returns a deep copy of e.
func cloneExpr(e Expr) Expr {
	switch n := e.(type) {
	case *Identifier:
		c := *n
		return &c
	case *NumberLiteral:
		c := *n
		return &c
	case *StringLiteral:
		c := *n
		return &c
	case *UnaryOp:
		return &UnaryOp{Op: n.Op, Operand: cloneExpr(n.Operand)}
	case *BinaryOp:
		return &BinaryOp{Op: n.Op, Left: cloneExpr(n.Left), Right: cloneExpr(n.Right)}
	case *TernaryOp:
		return &TernaryOp{Cond: cloneExpr(n.Cond), Then: cloneExpr(n.Then), Else: cloneExpr(n.Else)}
	case *Slice:
		return &Slice{Base: cloneExpr(n.Base), High: cloneExpr(n.High), Low: cloneExpr(n.Low)}
	case *Concat:
		elems := make([]Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = cloneExpr(el)
		}
		return &Concat{Elems: elems}
	}
	return e
}
