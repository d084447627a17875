package sema

import (
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/types"
)

// errorf reports a diagnostic of the given kind at pos.
func (c *Checker) errorf(kind diag.Kind, pos syntax.Pos, format string, args ...interface{}) {
	c.diags.Reportf(kind, pos, format, args...)
}

// arityError reports an ArityMismatch carrying both counts.
func (c *Checker) arityError(pos syntax.Pos, expected, given int, format string, args ...interface{}) {
	c.diags.Arity(pos, expected, given, format, args...)
}

// mismatch reports a type mismatch of kind at pos.
func (c *Checker) mismatch(kind diag.Kind, pos syntax.Pos, want, got types.Type) {
	c.errorf(kind, pos, "mismatched types: expected %s, found %s", want, got)
}

// invalidOp reports an invalid operation as a TypeMismatch at x.
func (c *Checker) invalidOp(x *operand, format string, args ...interface{}) {
	c.errorf(diag.TypeMismatch, x.pos, "invalid operation: "+format, args...)
}
