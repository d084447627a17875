package sema

import (
	"errors"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/types"
)

// collectFunc builds the signature of decl and registers it in the
// function table. A later declaration of the same name is reported but
// keeps its own signature for checking its body.
func (c *Checker) collectFunc(decl *syntax.FuncDecl) {
	sig := c.funcSignature(decl)
	c.sigs[decl] = sig
	if c.info != nil {
		c.info.Funcs[decl] = sig
	}

	err := c.funcs.Register(sig)
	var dup *types.DuplicateFuncError
	if errors.As(err, &dup) {
		c.errorf(diag.DuplicateDefinition, decl.Name.Pos(),
			"function %s is defined multiple times (previous definition at %s)",
			decl.Name.Value, dup.Prev.Pos())
	}
}

// funcSignature resolves the parameter and result types of decl.
func (c *Checker) funcSignature(decl *syntax.FuncDecl) *types.Func {
	params := make([]*types.Var, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = types.NewVar(p.Name.Pos(), p.Name.Value, c.typExpr(p.Type), p.Mut, true)
	}

	var result types.Type
	if decl.Result != nil {
		result = c.typExpr(decl.Result)
	}

	return types.NewFunc(decl.Name.Pos(), decl.Name.Value, params, result)
}

// typExpr resolves a type expression. A type that failed to parse
// resolves to Error; the syntax error was already reported.
func (c *Checker) typExpr(e syntax.Expr) types.Type {
	if n, ok := e.(*syntax.TypeName); ok {
		if typ := types.LookupType(n.Value); typ != nil {
			return typ
		}
	}
	return types.Typ[types.Error]
}

// checkFuncBody checks a function body against its own signature.
func (c *Checker) checkFuncBody(decl *syntax.FuncDecl) {
	sig := c.sigs[decl]
	if sig == nil || decl.Body == nil {
		return
	}

	// Save function context
	oldSig, oldLoopDepth := c.sig, c.loopDepth
	c.sig, c.loopDepth = sig, 0

	// Create function scope
	c.openScope("function " + sig.Name())

	// Add parameters to scope
	for i, p := range decl.Params {
		v := sig.Params()[i]
		if c.scopes.LookupCurrent(v.Name()) != nil {
			c.errorf(diag.DuplicateDefinition, p.Name.Pos(),
				"identifier %s is bound more than once in the parameter list of %s", v.Name(), sig.Name())
		}
		c.declare(p.Name, v)
	}

	result := sig.Result()
	body := decl.Body
	// The tail is the implicit return value. A trailing if or block of
	// type () is a statement that fell off the end of the body.
	var x operand
	c.exprAt(&x, body, bodyPos)
	switch {
	case body.Tail != nil && !(isBlockLike(body.Tail) && types.IsUnit(x.typ)):
		if x.valid() && !types.Compatible(x.typ, result) {
			c.mismatch(diag.ReturnTypeMismatch, body.Tail.Pos(), result, x.typ)
		}
	case !types.IsUnit(result) && !c.terminates(body):
		c.errorf(diag.MissingReturn, body.Rbrace,
			"function %s must return %s but its body has no tail expression or return", sig.Name(), result)
	}

	c.closeScope()

	// Restore function context
	c.sig, c.loopDepth = oldSig, oldLoopDepth
}

// terminates reports whether every control-flow path through the block
// ends in a return or an infinite loop.
func (c *Checker) terminates(b *syntax.BlockExpr) bool {
	for _, s := range b.Stmts {
		if c.stmtTerminates(s) {
			return true
		}
	}
	return b.Tail != nil && c.exprTerminates(b.Tail)
}

func (c *Checker) stmtTerminates(s syntax.Stmt) bool {
	switch s := s.(type) {
	case *syntax.ReturnStmt:
		return true
	case *syntax.LoopStmt:
		return !hasBreak(s.Body)
	case *syntax.ExprStmt:
		return c.exprTerminates(s.X)
	case *syntax.LetStmt:
		return s.Value != nil && c.exprTerminates(s.Value)
	}
	return false
}

func (c *Checker) exprTerminates(e syntax.Expr) bool {
	switch e := e.(type) {
	case *syntax.BlockExpr:
		return c.terminates(e)
	case *syntax.IfExpr:
		return e.Else != nil && c.terminates(e.Then) && c.exprTerminates(e.Else)
	case *syntax.ParenExpr:
		return c.exprTerminates(e.X)
	}
	return false
}

// isBlockLike reports whether e is an if or a block.
func isBlockLike(e syntax.Expr) bool {
	switch e.(type) {
	case *syntax.IfExpr, *syntax.BlockExpr:
		return true
	}
	return false
}

// hasBreak reports whether body contains a break that exits the loop
// owning body. Breaks inside nested loops belong to those loops.
func hasBreak(body *syntax.BlockExpr) bool {
	found := false
	syntax.Inspect(body, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.WhileStmt, *syntax.ForStmt, *syntax.LoopStmt:
			return false
		case *syntax.BranchStmt:
			if n.Tok.IsBreak() {
				found = true
			}
		}
		return !found
	})
	return found
}
