package types

import "github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"

// NoPos is the zero position value, used for predeclared objects.
var NoPos syntax.Pos

// Predeclared type names and macros. Both tables are read-only after init.
var (
	universeTypes  map[string]Type
	universeMacros map[string]*Macro
)

func init() {
	defPredeclaredTypes()
	defPredeclaredMacros()
}

// defPredeclaredTypes defines i32, bool and ().
func defPredeclaredTypes() {
	universeTypes = make(map[string]Type)
	for _, kind := range []BasicKind{Int, Bool, Unit} {
		t := Typ[kind]
		universeTypes[t.name] = t
	}
}

// defPredeclaredMacros defines println!, print!, eprintln! and eprint!.
func defPredeclaredMacros() {
	universeMacros = map[string]*Macro{
		"println":  NewMacro("println", MacroPrintln),
		"print":    NewMacro("print", MacroPrint),
		"eprintln": NewMacro("eprintln", MacroEprintln),
		"eprint":   NewMacro("eprint", MacroEprint),
	}
}

// LookupType returns the type named by a type expression's text
// ("i32", "bool" or "()"), or nil.
func LookupType(name string) Type {
	return universeTypes[name]
}

// LookupMacro returns the predeclared macro with the given name
// (without the trailing !), or nil.
func LookupMacro(name string) *Macro {
	return universeMacros[name]
}
