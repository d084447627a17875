package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	// Error is the type of an expression that already produced a
	// diagnostic. It is compatible with everything so that one mistake
	// is reported once.
	Error BasicKind = iota

	Int  // i32
	Bool // bool
	Unit // ()
	Str  // &str, the type of string literals; not declarable

	// Unknown is the type of a binding declared with neither a type nor
	// an initializer. Like Error, it matches anything.
	Unknown
)

// Basic represents a basic type.
type Basic struct {
	typ
	kind BasicKind
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the basic types, indexed by BasicKind.
// Types are compared by identity: Typ[Int] is the only i32.
var Typ = []*Basic{
	Error:   {kind: Error, name: "<error>"},
	Int:     {kind: Int, name: "i32"},
	Bool:    {kind: Bool, name: "bool"},
	Unit:    {kind: Unit, name: "()"},
	Str:     {kind: Str, name: "&str"},
	Unknown: {kind: Unknown, name: "<unknown>"},
}
