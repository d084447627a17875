// Package diag defines the semantic diagnostic taxonomy and the
// collector that accumulates diagnostics during one analysis run.
package diag

import "fmt"

// Kind classifies a semantic diagnostic. Every kind is a hard error.
type Kind uint8

const (
	DuplicateDefinition Kind = iota + 1
	UndeclaredVariable
	ImmutableAssignment
	TypeMismatch
	ConditionTypeError
	ReturnTypeMismatch
	MissingReturn
	UndefinedFunction
	ArityMismatch
	MisplacedControlFlow
	RecursionLimitExceeded
	MissingType
	UseBeforeInit

	kindCount
)

var kindNames = [...]string{
	DuplicateDefinition:    "DuplicateDefinition",
	UndeclaredVariable:     "UndeclaredVariable",
	ImmutableAssignment:    "ImmutableAssignment",
	TypeMismatch:           "TypeMismatch",
	ConditionTypeError:     "ConditionTypeError",
	ReturnTypeMismatch:     "ReturnTypeMismatch",
	MissingReturn:          "MissingReturn",
	UndefinedFunction:      "UndefinedFunction",
	ArityMismatch:          "ArityMismatch",
	MisplacedControlFlow:   "MisplacedControlFlow",
	RecursionLimitExceeded: "RecursionLimitExceeded",
	MissingType:            "MissingType",
	UseBeforeInit:          "UseBeforeInit",
}

// Kinds returns every diagnostic kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := Kind(1); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the kind's name.
func (k Kind) String() string {
	if k > 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for k := Kind(1); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("diag: unknown diagnostic kind %q", name)
}

// MarshalText encodes the kind as its name, so kinds read naturally in
// JSON output and YAML fixture manifests.
func (k Kind) MarshalText() ([]byte, error) {
	if k == 0 || k >= kindCount {
		return nil, fmt.Errorf("diag: invalid kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
