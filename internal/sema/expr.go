package sema

import (
	"strconv"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/types"
)

// position says how the value of an expression is used.
type position int

const (
	stmtPos    position = iota // if or block statement, loop body; a block tail must be ()
	discardPos                 // value is discarded; if arms are not compared
	valuePos                   // value is used
	tailPos                    // tail of a body, loop body or statement block; value is used
	bodyPos                    // function body; the tail is the return value
)

// expr evaluates an expression in value position and sets x to the result.
func (c *Checker) expr(x *operand, e syntax.Expr) {
	c.exprAt(x, e, valuePos)
}

// exprAt evaluates an expression used at the given position.
func (c *Checker) exprAt(x *operand, e syntax.Expr, at position) {
	if c.enter(e.Pos()) {
		c.exprInternal(x, e, at)
	} else {
		x.setInvalid(e.Pos())
	}
	c.leave()

	// Record type information
	x.expr = e
	c.recordType(e, x.typ)
}

// exprInternal is the main expression checking function.
func (c *Checker) exprInternal(x *operand, e syntax.Expr, at position) {
	x.setInvalid(e.Pos())

	switch e := e.(type) {
	case *syntax.Name:
		c.ident(x, e)
	case *syntax.BasicLit:
		c.basicLit(x, e)
	case *syntax.Operation:
		if e.Y == nil {
			c.unary(x, e)
		} else {
			c.binary(x, e)
		}
	case *syntax.AssignExpr:
		c.assign(x, e)
	case *syntax.CallExpr:
		c.call(x, e)
	case *syntax.MacroCall:
		c.macroCall(x, e)
	case *syntax.ParenExpr:
		c.expr(x, e.X)
		x.pos = e.Pos()
	case *syntax.BlockExpr:
		c.block(x, e, at)
	case *syntax.IfExpr:
		c.ifExpr(x, e, at)
	default:
		panic("sema: unexpected expression")
	}
}

// ident evaluates a reference to a binding.
func (c *Checker) ident(x *operand, name *syntax.Name) {
	v := c.lookup(name.Value)
	if v == nil {
		c.errorf(diag.UndeclaredVariable, name.Pos(), "cannot find value %s in this scope", name.Value)
		return
	}
	c.recordUse(name, v)

	if c.conf.CheckInit && !v.Initialized() {
		c.errorf(diag.UseBeforeInit, name.Pos(), "used binding %s isn't initialized", name.Value)
	}
	x.setVar(name.Pos(), v.Type())
}

// basicLit evaluates a literal.
func (c *Checker) basicLit(x *operand, lit *syntax.BasicLit) {
	switch lit.Kind {
	case syntax.IntLit:
		c.intLit(x, lit, false)
	case syntax.BoolLit:
		x.setConst(lit.Pos(), types.Typ[types.Bool])
	case syntax.StringLit:
		x.setConst(lit.Pos(), types.Typ[types.Str])
	}
}

// intLit evaluates an integer literal. A negated literal may be one
// larger, so that -2147483648 is an i32.
func (c *Checker) intLit(x *operand, lit *syntax.BasicLit, negated bool) {
	text := lit.Value
	if negated {
		text = "-" + text
	}
	if _, err := strconv.ParseInt(text, 10, 32); err != nil {
		c.errorf(diag.TypeMismatch, lit.Pos(), "integer literal %s is out of range for i32", text)
		return
	}
	x.setConst(lit.Pos(), types.Typ[types.Int])
}

// unary evaluates a unary operation.
func (c *Checker) unary(x *operand, e *syntax.Operation) {
	if lit, ok := e.X.(*syntax.BasicLit); ok && lit.Kind == syntax.IntLit && e.Op == syntax.Sub {
		x.setInvalid(lit.Pos())
		c.intLit(x, lit, true)
		x.expr = lit
		c.recordType(lit, x.typ)
	} else {
		c.expr(x, e.X)
	}
	if !x.valid() {
		x.setInvalid(e.Pos())
		return
	}
	x.pos = e.Pos()

	switch e.Op {
	case syntax.Not:
		if !types.IsBoolean(x.typ) {
			c.invalidOp(x, "cannot apply unary operator ! to type %s", x.typ)
			x.setInvalid(e.Pos())
			return
		}
	case syntax.Sub:
		if !types.IsInteger(x.typ) {
			c.invalidOp(x, "cannot apply unary operator - to type %s", x.typ)
			x.setInvalid(e.Pos())
			return
		}
	}
	x.setValue(e.Pos(), x.typ)
}

// binary evaluates a binary operation. An operand that already failed
// makes the result invalid without a further diagnostic.
func (c *Checker) binary(x *operand, e *syntax.Operation) {
	var y operand
	c.expr(x, e.X)
	c.expr(&y, e.Y)

	if !x.valid() || !y.valid() {
		x.setInvalid(e.Pos())
		return
	}
	x.pos = e.Pos()

	switch {
	case e.Op.IsArith():
		if !types.IsInteger(x.typ) || !types.IsInteger(y.typ) {
			c.invalidOp(x, "cannot apply binary operator %s to types %s and %s", e.Op, x.typ, y.typ)
			x.setInvalid(e.Pos())
			return
		}
		x.setValue(e.Pos(), types.Typ[types.Int])

	case e.Op.IsComparison():
		if !types.Identical(x.typ, y.typ) {
			c.invalidOp(x, "cannot compare %s with %s", x.typ, y.typ)
			x.setInvalid(e.Pos())
			return
		}
		x.setValue(e.Pos(), types.Typ[types.Bool])

	case e.Op.IsLogical():
		if !types.IsBoolean(x.typ) || !types.IsBoolean(y.typ) {
			c.invalidOp(x, "cannot apply binary operator %s to types %s and %s", e.Op, x.typ, y.typ)
			x.setInvalid(e.Pos())
			return
		}
		x.setValue(e.Pos(), types.Typ[types.Bool])

	default:
		panic("sema: unexpected binary operator")
	}
}

// assign evaluates an assignment. Its value has the declared type of
// the assigned binding.
func (c *Checker) assign(x *operand, e *syntax.AssignExpr) {
	v := c.lookup(e.LHS.Value)

	var rhs operand
	c.expr(&rhs, e.RHS)

	if v == nil {
		c.errorf(diag.UndeclaredVariable, e.LHS.Pos(), "cannot find value %s in this scope", e.LHS.Value)
		return
	}
	c.recordUse(e.LHS, v)

	if !v.Mutable() {
		c.errorf(diag.ImmutableAssignment, e.Pos(), "cannot assign twice to immutable variable %s", v.Name())
	}
	if rhs.valid() && !types.Compatible(rhs.typ, v.Type()) {
		c.mismatch(diag.TypeMismatch, e.RHS.Pos(), v.Type(), rhs.typ)
	}
	v.SetInitialized()

	x.setValue(e.Pos(), v.Type())
}

// block checks a block in a new scope. As a value or a tail its type
// is the tail's type, or () without a tail; a tail-less block that always
// returns has type Error so that it matches any expected type. A block
// in statement position is () and its tail must be () too.
func (c *Checker) block(x *operand, b *syntax.BlockExpr, at position) {
	c.openScope("block")
	defer c.closeScope()

	stmts := b.Stmts
	var last *syntax.ExprStmt
	if at == valuePos && b.Tail == nil && c.conf.SemicolonTail && len(stmts) > 0 {
		if s, ok := stmts[len(stmts)-1].(*syntax.ExprStmt); ok && s.Semi {
			last = s
			stmts = stmts[:len(stmts)-1]
		}
	}

	c.stmts(stmts)

	switch {
	case at == discardPos:
		if b.Tail != nil {
			var tail operand
			c.exprAt(&tail, b.Tail, discardPos)
		}
		x.setValue(b.Pos(), types.Typ[types.Unit])
	case at == stmtPos:
		if b.Tail != nil {
			var tail operand
			c.exprAt(&tail, b.Tail, tailPos)
			if tail.valid() && !types.IsUnit(tail.typ) {
				c.mismatch(diag.TypeMismatch, b.Tail.Pos(), types.Typ[types.Unit], tail.typ)
			}
		}
		x.setValue(b.Pos(), types.Typ[types.Unit])
	case b.Tail != nil:
		if at == valuePos {
			c.expr(x, b.Tail)
		} else {
			c.exprAt(x, b.Tail, tailPos)
		}
	case last != nil:
		c.expr(x, last.X)
	case c.terminates(b):
		x.setValue(b.Pos(), types.Typ[types.Error])
	default:
		x.setValue(b.Pos(), types.Typ[types.Unit])
	}
}

// ifExpr checks an if expression. An if statement is () and its arms
// are not compared. As a value or a block tail both arms must agree;
// without else the then arm must be ().
func (c *Checker) ifExpr(x *operand, e *syntax.IfExpr, at position) {
	c.condition(e.Cond)

	if at == stmtPos || at == discardPos {
		var then, els operand
		c.exprAt(&then, e.Then, discardPos)
		if e.Else != nil {
			c.exprAt(&els, e.Else, discardPos)
		}
		x.setValue(e.Pos(), types.Typ[types.Unit])
		return
	}

	// Arms of a tail if are tails themselves.
	arm := valuePos
	if at == tailPos {
		arm = tailPos
	}

	var then operand
	c.exprAt(&then, e.Then, arm)

	if e.Else == nil {
		if then.valid() && !types.IsUnit(then.typ) {
			c.errorf(diag.TypeMismatch, e.Pos(),
				"if may be missing an else clause: expected (), found %s", then.typ)
			return
		}
		x.setValue(e.Pos(), types.Typ[types.Unit])
		return
	}

	var els operand
	c.exprAt(&els, e.Else, arm)

	typ := types.Join(then.typ, els.typ)
	if typ == nil {
		c.errorf(diag.TypeMismatch, e.Pos(), "if and else have incompatible types: %s and %s", then.typ, els.typ)
		return
	}
	x.setValue(e.Pos(), typ)
}
