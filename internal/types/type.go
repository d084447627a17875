// Package types implements the type system for the toy Rust language:
// value types, bindings, function signatures, the scope stack and the
// function table.
// This package provides type representations without AST dependencies
// beyond source positions.
package types

// Type is the interface implemented by all types.
// The set of types is closed: every Type is one of the entries of Typ.
type Type interface {
	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
