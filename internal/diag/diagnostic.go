package diag

import (
	"encoding/json"
	"fmt"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
)

// Diagnostic is one semantic error.
type Diagnostic struct {
	Kind Kind
	Pos  syntax.Pos
	Msg  string

	// Expected and Given are the argument counts of an ArityMismatch.
	// Both are zero for other kinds.
	Expected int
	Given    int
}

// Error implements the error interface: "file:line:col: Kind: msg".
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Msg)
}

// Record is the serialized form of a Diagnostic.
type Record struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Line     uint32 `json:"line" yaml:"line"`
	Col      uint32 `json:"col" yaml:"col"`
	Msg      string `json:"msg" yaml:"msg"`
	Expected int    `json:"expected,omitempty" yaml:"expected,omitempty"`
	Given    int    `json:"given,omitempty" yaml:"given,omitempty"`
}

// Record returns the serialized form of d.
func (d Diagnostic) Record() Record {
	return Record{
		Kind:     d.Kind,
		Line:     d.Pos.Line(),
		Col:      d.Pos.Col(),
		Msg:      d.Msg,
		Expected: d.Expected,
		Given:    d.Given,
	}
}

func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Record())
}

// MarshalYAML implements yaml.Marshaler.
func (d Diagnostic) MarshalYAML() (interface{}, error) {
	return d.Record(), nil
}
