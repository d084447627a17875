package sema

import (
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/types"
)

// stmts checks a list of statements.
func (c *Checker) stmts(list []syntax.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.EmptyStmt:
		// Nothing to check

	case *syntax.LetStmt:
		c.letStmt(s)

	case *syntax.ExprStmt:
		at := stmtPos
		if s.Semi {
			at = discardPos
		}
		var x operand
		c.exprAt(&x, s.X, at)

	case *syntax.WhileStmt:
		c.whileStmt(s)

	case *syntax.ForStmt:
		c.forStmt(s)

	case *syntax.LoopStmt:
		c.loopBody(s.Body)

	case *syntax.ReturnStmt:
		c.returnStmt(s)

	case *syntax.BranchStmt:
		c.branchStmt(s)

	default:
		panic("sema: unexpected statement")
	}
}

// letStmt checks a let binding. The initializer is checked before the
// name is bound, so it sees any outer binding of the same name.
func (c *Checker) letStmt(s *syntax.LetStmt) {
	var typ types.Type
	if s.Type != nil {
		typ = c.typExpr(s.Type)
	}

	if s.Value != nil {
		var x operand
		c.expr(&x, s.Value)
		switch {
		case typ == nil:
			// Type inference
			typ = x.typ
		case x.valid() && !types.Compatible(x.typ, typ):
			c.mismatch(diag.TypeMismatch, s.Value.Pos(), typ, x.typ)
		}
	}

	if typ == nil {
		c.errorf(diag.MissingType, s.Name.Pos(), "type annotations needed for %s", s.Name.Value)
		typ = types.Typ[types.Unknown]
	}

	if c.conf.ForbidSameScopeShadowing {
		if prev := c.scopes.LookupCurrent(s.Name.Value); prev != nil {
			c.errorf(diag.DuplicateDefinition, s.Name.Pos(),
				"%s is already defined in this block (previous definition at %s)", s.Name.Value, prev.Pos())
		}
	}

	v := types.NewVar(s.Name.Pos(), s.Name.Value, typ, s.Mut, s.Value != nil)
	c.declare(s.Name, v)
}

// whileStmt checks a while loop.
func (c *Checker) whileStmt(s *syntax.WhileStmt) {
	c.condition(s.Cond)
	c.loopBody(s.Body)
}

// forStmt checks a range loop. The loop variable is an i32 binding in
// its own scope around the body.
func (c *Checker) forStmt(s *syntax.ForStmt) {
	for _, bound := range []syntax.Expr{s.Lo, s.Hi} {
		var x operand
		c.expr(&x, bound)
		if x.valid() && !types.IsInteger(x.typ) {
			c.mismatch(diag.TypeMismatch, bound.Pos(), types.Typ[types.Int], x.typ)
		}
	}

	c.openScope("for")
	defer c.closeScope()

	v := types.NewVar(s.Var.Pos(), s.Var.Value, types.Typ[types.Int], s.Mut, true)
	c.declare(s.Var, v)
	c.loopBody(s.Body)
}

// loopBody checks the body of a while, for or loop.
func (c *Checker) loopBody(body *syntax.BlockExpr) {
	c.loopDepth++
	defer func() { c.loopDepth-- }()

	var x operand
	c.exprAt(&x, body, stmtPos)
}

// condition checks the condition of an if or while.
func (c *Checker) condition(cond syntax.Expr) {
	var x operand
	c.expr(&x, cond)
	if x.valid() && !types.IsBoolean(x.typ) {
		c.mismatch(diag.ConditionTypeError, cond.Pos(), types.Typ[types.Bool], x.typ)
	}
}

// returnStmt checks a return statement.
func (c *Checker) returnStmt(s *syntax.ReturnStmt) {
	result := c.sig.Result()

	if s.Result == nil {
		// Bare return
		if !types.IsUnit(result) {
			c.errorf(diag.ReturnTypeMismatch, s.Pos(),
				"mismatched types: expected %s, found () in bare return from %s", result, c.sig.Name())
		}
		return
	}

	var x operand
	c.expr(&x, s.Result)
	if x.valid() && !types.Compatible(x.typ, result) {
		c.mismatch(diag.ReturnTypeMismatch, s.Result.Pos(), result, x.typ)
	}
}

// branchStmt checks a break or continue statement.
func (c *Checker) branchStmt(s *syntax.BranchStmt) {
	if c.loopDepth > 0 {
		return
	}
	c.errorf(diag.MisplacedControlFlow, s.Pos(), "%s outside of a loop", s.Tok)
}
