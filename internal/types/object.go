package types

import (
	"fmt"
	"strings"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
)

// Object represents a declared entity: a binding, a function or a macro.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position

	aObject() // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name string
	typ  Type
	pos  syntax.Pos
}

func (o *object) Name() string    { return o.name }
func (o *object) Type() Type      { return o.typ }
func (o *object) Pos() syntax.Pos { return o.pos }
func (*object) aObject()          {}

// Var represents a binding introduced by let, a parameter or a for loop.
// Its type is fixed at creation.
type Var struct {
	object
	mutable     bool
	depth       int  // scope depth, set by Scopes.Declare
	initialized bool // has a value on every path seen so far
}

// NewVar creates a new binding. An initialized binding has a value at
// its declaration (parameters, loop variables, let with initializer).
func NewVar(pos syntax.Pos, name string, typ Type, mutable, initialized bool) *Var {
	return &Var{
		object:      object{name: name, typ: typ, pos: pos},
		mutable:     mutable,
		initialized: initialized,
	}
}

// Mutable reports whether the binding was declared with mut.
func (v *Var) Mutable() bool {
	return v.mutable
}

// Depth returns the scope depth the binding was declared at.
func (v *Var) Depth() int {
	return v.depth
}

// Initialized reports whether the binding has been given a value.
func (v *Var) Initialized() bool {
	return v.initialized
}

// SetInitialized records that the binding has been assigned.
func (v *Var) SetInitialized() {
	v.initialized = true
}

func (v *Var) String() string {
	if v.mutable {
		return "mut " + v.name + ": " + v.typ.String()
	}
	return v.name + ": " + v.typ.String()
}

// Func represents a function signature: name, ordered parameters and
// result type. It is immutable once constructed.
type Func struct {
	object
	params []*Var
}

// NewFunc creates a new function signature. A nil result means ().
func NewFunc(pos syntax.Pos, name string, params []*Var, result Type) *Func {
	if result == nil {
		result = Typ[Unit]
	}
	return &Func{object: object{name: name, typ: result, pos: pos}, params: params}
}

// Params returns the parameters in declaration order.
func (f *Func) Params() []*Var {
	return f.params
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Result returns the declared result type. Functions without an
// explicit result return ().
func (f *Func) Result() Type {
	return f.typ
}

// String returns the signature in source form, e.g. "fn add(a: i32, b: i32) -> i32".
func (f *Func) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s(", f.name)
	for i, p := range f.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	if f.typ != Typ[Unit] {
		b.WriteString(" -> ")
		b.WriteString(f.typ.String())
	}
	return b.String()
}

// MacroKind identifies a predeclared macro.
type MacroKind int

const (
	MacroPrintln MacroKind = iota
	MacroPrint
	MacroEprintln
	MacroEprint
)

// Macro represents a predeclared formatting macro such as println!.
// Every macro takes a format string followed by one argument per {}
// placeholder and has type ().
type Macro struct {
	object
	kind MacroKind
}

// NewMacro creates a new macro object.
func NewMacro(name string, kind MacroKind) *Macro {
	return &Macro{object: object{name: name, typ: Typ[Unit], pos: NoPos}, kind: kind}
}

// Kind returns the macro kind.
func (m *Macro) Kind() MacroKind {
	return m.kind
}
