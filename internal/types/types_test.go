package types

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
)

func TestBasicTypes(t *testing.T) {
	tests := []struct {
		kind BasicKind
		name string
	}{
		{Error, "<error>"},
		{Int, "i32"},
		{Bool, "bool"},
		{Unit, "()"},
		{Str, "&str"},
		{Unknown, "<unknown>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := Typ[tt.kind]
			be.True(t, typ != nil)
			be.Equal(t, typ.Kind(), tt.kind)
			be.Equal(t, typ.Name(), tt.name)
			be.Equal(t, typ.String(), tt.name)
		})
	}
}

func TestLookupType(t *testing.T) {
	be.Equal(t, LookupType("i32"), Type(Typ[Int]))
	be.Equal(t, LookupType("bool"), Type(Typ[Bool]))
	be.Equal(t, LookupType("()"), Type(Typ[Unit]))

	// &str is the type of string literals only.
	be.True(t, LookupType("&str") == nil)
	be.True(t, LookupType("i64") == nil)
	be.True(t, LookupType("_") == nil)
}

func TestLookupMacro(t *testing.T) {
	for name, kind := range map[string]MacroKind{
		"println":  MacroPrintln,
		"print":    MacroPrint,
		"eprintln": MacroEprintln,
		"eprint":   MacroEprint,
	} {
		m := LookupMacro(name)
		be.True(t, m != nil)
		be.Equal(t, m.Name(), name)
		be.Equal(t, m.Kind(), kind)
		be.Equal(t, m.Type(), Type(Typ[Unit]))
	}
	be.True(t, LookupMacro("format") == nil)
}

func TestVar(t *testing.T) {
	pos := syntax.NewPos("a.rs", 3, 9)
	v := NewVar(pos, "y", Typ[Int], true, false)

	be.Equal(t, v.Name(), "y")
	be.Equal(t, v.Type(), Type(Typ[Int]))
	be.Equal(t, v.Pos(), pos)
	be.True(t, v.Mutable())
	be.True(t, !v.Initialized())

	v.SetInitialized()
	be.True(t, v.Initialized())
	be.Equal(t, v.String(), "mut y: i32")

	be.Equal(t, NewVar(pos, "z", Typ[Bool], false, true).String(), "z: bool")
}

func TestFunc(t *testing.T) {
	params := []*Var{
		NewVar(syntax.Pos{}, "a", Typ[Int], false, true),
		NewVar(syntax.Pos{}, "b", Typ[Int], true, true),
	}
	f := NewFunc(syntax.NewPos("", 44, 1), "add", params, Typ[Int])

	be.Equal(t, f.Name(), "add")
	be.Equal(t, f.NumParams(), 2)
	be.Equal(t, f.Params()[1].Name(), "b")
	be.Equal(t, f.Result(), Type(Typ[Int]))
	be.Equal(t, f.String(), "fn add(a: i32, mut b: i32) -> i32")

	unit := NewFunc(syntax.Pos{}, "main", nil, nil)
	be.Equal(t, unit.Result(), Type(Typ[Unit]))
	be.Equal(t, unit.String(), "fn main()")
}

func TestFuncTable(t *testing.T) {
	tab := NewFuncTable()
	be.Equal(t, tab.Len(), 0)
	be.True(t, tab.Resolve("main") == nil)

	main1 := NewFunc(syntax.NewPos("", 4, 1), "main", nil, Typ[Int])
	add := NewFunc(syntax.NewPos("", 44, 1), "add", nil, Typ[Int])
	main2 := NewFunc(syntax.NewPos("", 39, 1), "main", nil, Typ[Bool])

	be.Err(t, tab.Register(main1), nil)
	be.Err(t, tab.Register(add), nil)

	err := tab.Register(main2)
	var dup *DuplicateFuncError
	be.True(t, errors.As(err, &dup))
	be.Equal(t, dup.Prev, main1)
	be.Equal(t, dup.Dup, main2)
	be.True(t, strings.Contains(err.Error(), "function main already defined at 4:1"))

	// The first registration stays authoritative.
	be.Equal(t, tab.Resolve("main"), main1)
	be.Equal(t, tab.Resolve("main").Result(), Type(Typ[Int]))
	be.Equal(t, tab.Len(), 2)
	be.Equal(t, tab.Funcs()[0].Name(), "main")
	be.Equal(t, tab.Funcs()[1].Name(), "add")
}
