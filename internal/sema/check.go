package sema

import (
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/types"
)

// Checker is the semantic checker for one file.
type Checker struct {
	conf  *Config
	info  *Info
	diags *diag.Collector

	scopes types.Scopes    // lexical bindings
	funcs  *types.FuncTable // authoritative signatures

	// Declaration signatures keyed by AST node, including duplicates.
	// Lifecycle: allocated per Check invocation and used only while checking one file.
	sigs map[*syntax.FuncDecl]*types.Func

	// Function context
	sig *types.Func // current function signature

	// Control-flow context
	loopDepth int // nested loop depth (for break/continue validation)

	depth   int  // current block/expression nesting
	tooDeep bool // the limit was reported for the current subtree
}

// checkFile checks a single file.
func (c *Checker) checkFile(file *syntax.File) {
	// Phase 1: Collect all function signatures, so calls may refer to
	// functions declared later in the file.
	for _, decl := range file.Decls {
		c.collectFunc(decl)
	}

	// Phase 2: Check function bodies
	for _, decl := range file.Decls {
		c.checkFuncBody(decl)
	}
}

// enter increments the nesting depth. It returns false if the limit is
// exceeded; the caller must then skip the node. RecursionLimitExceeded
// is reported once for all children of the deepest admitted node.
// Every call must be paired with leave.
func (c *Checker) enter(pos syntax.Pos) bool {
	c.depth++
	if c.depth > c.conf.MaxDepth {
		if !c.tooDeep {
			c.tooDeep = true
			c.errorf(diag.RecursionLimitExceeded, pos, "nesting exceeds the limit of %d", c.conf.MaxDepth)
		}
		return false
	}
	return true
}

func (c *Checker) leave() {
	c.depth--
	if c.depth < c.conf.MaxDepth {
		c.tooDeep = false
	}
}

// openScope pushes a new scope.
func (c *Checker) openScope(comment string) {
	c.scopes.Enter(comment)
}

// closeScope pops the innermost scope.
func (c *Checker) closeScope() {
	c.scopes.Exit()
}

// lookup looks up a name in the current scope chain.
func (c *Checker) lookup(name string) *types.Var {
	return c.scopes.Lookup(name)
}

// declare binds v in the innermost scope.
func (c *Checker) declare(name *syntax.Name, v *types.Var) {
	c.scopes.Declare(v)
	if c.info != nil {
		c.info.Defs[name] = v
	}
}

// recordType records the type of an expression.
func (c *Checker) recordType(e syntax.Expr, typ types.Type) {
	if c.info != nil {
		c.info.Types[e] = typ
	}
}

// recordUse records a use of a binding.
func (c *Checker) recordUse(name *syntax.Name, v *types.Var) {
	if c.info != nil {
		c.info.Uses[name] = v
	}
}

// recordCall records the signature a call resolved to.
func (c *Checker) recordCall(call *syntax.CallExpr, fn *types.Func) {
	if c.info != nil {
		c.info.Calls[call] = fn
	}
}
