package sema

import (
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/types"
)

// operandMode describes the mode of an operand.
type operandMode int

const (
	invalid   operandMode = iota // operand is invalid; its type is Error
	constant_                    // operand is a literal
	variable                     // operand is a binding
	value                        // operand is a computed value
)

var operandModeNames = [...]string{
	invalid:   "invalid",
	constant_: "constant",
	variable:  "variable",
	value:     "value",
}

// operand represents the result of evaluating an expression.
type operand struct {
	mode operandMode
	pos  syntax.Pos
	typ  types.Type
	expr syntax.Expr // source expression (for error reporting)
}

// String returns a string representation of the operand for debugging.
func (x *operand) String() string {
	if x.mode == invalid {
		return "invalid operand"
	}
	return operandModeNames[x.mode] + " of type " + x.typ.String()
}

// valid reports whether x has a usable type. A binding of Unknown type
// or a diverging block is not valid but was not reported either.
func (x *operand) valid() bool {
	return x.mode != invalid && !types.IsInvalid(x.typ)
}

// setConst sets the operand to a literal.
func (x *operand) setConst(pos syntax.Pos, typ types.Type) {
	x.mode = constant_
	x.pos = pos
	x.typ = typ
}

// setVar sets the operand to a binding.
func (x *operand) setVar(pos syntax.Pos, typ types.Type) {
	x.mode = variable
	x.pos = pos
	x.typ = typ
}

// setValue sets the operand to a computed value.
func (x *operand) setValue(pos syntax.Pos, typ types.Type) {
	x.mode = value
	x.pos = pos
	x.typ = typ
}

// setInvalid sets the operand to invalid.
func (x *operand) setInvalid(pos syntax.Pos) {
	x.mode = invalid
	x.pos = pos
	x.typ = types.Typ[types.Error]
}
