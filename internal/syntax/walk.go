package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if isNil(node) || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, d := range n.Decls {
			Walk(d, v)
		}

	case *FuncDecl:
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		if n.Result != nil {
			Walk(n.Result, v)
		}
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *Param:
		Walk(n.Name, v)
		Walk(n.Type, v)

	case *BlockExpr:
		for _, s := range n.Stmts {
			Walk(s, v)
		}
		if n.Tail != nil {
			Walk(n.Tail, v)
		}

	case *IfExpr:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *LetStmt:
		Walk(n.Name, v)
		if n.Type != nil {
			Walk(n.Type, v)
		}
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ForStmt:
		Walk(n.Var, v)
		Walk(n.Lo, v)
		Walk(n.Hi, v)
		Walk(n.Body, v)

	case *LoopStmt:
		Walk(n.Body, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *ExprStmt:
		Walk(n.X, v)

	case *AssignExpr:
		Walk(n.LHS, v)
		Walk(n.RHS, v)

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *MacroCall:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *ParenExpr:
		Walk(n.X, v)

	// Leaf nodes: Name, BasicLit, TypeName, EmptyStmt, BranchStmt
	// No children to visit
	}
}

// isNil reports whether node is nil or a typed nil pointer.
func isNil(node Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *BlockExpr:
		return n == nil
	case *Name:
		return n == nil
	}
	return false
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
