package types

// Identical reports whether x and y are identical types.
// Basic types are unique, so identity is pointer equality.
func Identical(x, y Type) bool {
	return x == y
}

// Compatible reports whether a value of type x may be used where y is
// expected. The Error and Unknown types are compatible with every type
// so that an earlier diagnostic does not cascade.
func Compatible(x, y Type) bool {
	if Identical(x, y) {
		return true
	}
	return IsInvalid(x) || IsInvalid(y)
}

// IsInvalid reports whether T is Error or Unknown (or nil).
func IsInvalid(T Type) bool {
	if T == nil {
		return true
	}
	b, ok := T.(*Basic)
	return ok && (b.kind == Error || b.kind == Unknown)
}

// IsError reports whether T is the Error type.
func IsError(T Type) bool {
	return is(T, Error)
}

// IsInteger reports whether T is i32.
func IsInteger(T Type) bool {
	return is(T, Int)
}

// IsBoolean reports whether T is bool.
func IsBoolean(T Type) bool {
	return is(T, Bool)
}

// IsUnit reports whether T is ().
func IsUnit(T Type) bool {
	return is(T, Unit)
}

func is(T Type, kind BasicKind) bool {
	b, ok := T.(*Basic)
	return ok && b.kind == kind
}

// Join returns the type of a value that is x on one path and y on
// another, for if/else arms. An invalid side (an arm that failed or
// always returns) takes the other side's type. If the types differ the
// result is nil.
func Join(x, y Type) Type {
	switch {
	case Identical(x, y):
		return x
	case IsInvalid(x):
		return y
	case IsInvalid(y):
		return x
	}
	return nil
}
