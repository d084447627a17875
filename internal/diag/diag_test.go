package diag

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"gopkg.in/yaml.v3"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
)

func pos(line, col uint32) syntax.Pos { return syntax.NewPos("t.rs", line, col) }

func TestKindString(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v", k, got)
		}
	}
	if n := len(Kinds()); n != 13 {
		t.Errorf("len(Kinds()) = %d, want 13", n)
	}
	if got := Kind(0).String(); got != "Kind(0)" {
		t.Errorf("Kind(0).String() = %q", got)
	}
	if _, err := ParseKind("Warning"); err == nil {
		t.Error("ParseKind(Warning) succeeded")
	}
}

func TestKindText(t *testing.T) {
	b, err := TypeMismatch.MarshalText()
	if err != nil || string(b) != "TypeMismatch" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
	if _, err := Kind(99).MarshalText(); err == nil {
		t.Error("MarshalText of invalid kind succeeded")
	}

	var k Kind
	if err := k.UnmarshalText([]byte("ArityMismatch")); err != nil || k != ArityMismatch {
		t.Errorf("UnmarshalText = %v, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("nope")); err == nil {
		t.Error("UnmarshalText(nope) succeeded")
	}
}

func TestCollectorOrder(t *testing.T) {
	var seen []Kind
	c := NewCollector(func(d Diagnostic) { seen = append(seen, d.Kind) })

	// Reported out of source order, as a pre-pass would.
	c.Reportf(DuplicateDefinition, pos(39, 1), "function %s already defined", "main")
	c.Reportf(UndeclaredVariable, pos(13, 13), "undeclared variable %s", "undefined_var")
	c.Reportf(ImmutableAssignment, pos(16, 5), "cannot assign twice to immutable variable x")
	c.Reportf(TypeMismatch, pos(16, 5), "second at same position")

	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	wantSeen := []Kind{DuplicateDefinition, UndeclaredVariable, ImmutableAssignment, TypeMismatch}
	if diff := deep.Equal(seen, wantSeen); diff != nil {
		t.Errorf("handler order: %v", diff)
	}

	r := c.Result()
	want := []Kind{UndeclaredVariable, ImmutableAssignment, TypeMismatch, DuplicateDefinition}
	if diff := deep.Equal(r.Kinds(), want); diff != nil {
		t.Errorf("result order: %v", diff)
	}
	if r.Accepted() {
		t.Error("Accepted() = true")
	}
	if r.Count(TypeMismatch) != 1 || r.Count(MissingReturn) != 0 {
		t.Errorf("Count wrong: %d %d", r.Count(TypeMismatch), r.Count(MissingReturn))
	}

	// Result is a copy; further reports do not change it.
	c.Reportf(MissingReturn, pos(1, 1), "x")
	if len(r.Diagnostics) != 4 {
		t.Errorf("Result changed after Reportf")
	}
}

func TestCollectorNoDedup(t *testing.T) {
	c := NewCollector(nil)
	for i := 0; i < 3; i++ {
		c.Reportf(UndeclaredVariable, pos(2, 3), "undeclared variable x")
	}
	if got := c.Result().Count(UndeclaredVariable); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}

func TestArity(t *testing.T) {
	c := NewCollector(nil)
	c.Arity(pos(53, 19), 2, 1, "function add takes %d arguments but %d were supplied", 2, 1)

	d := c.Result().Diagnostics[0]
	want := Diagnostic{
		Kind:     ArityMismatch,
		Pos:      pos(53, 19),
		Msg:      "function add takes 2 arguments but 1 were supplied",
		Expected: 2,
		Given:    1,
	}
	if diff := deep.Equal(d.Record(), want.Record()); diff != nil {
		t.Error(diff)
	}
}

func TestEmptyResult(t *testing.T) {
	r := NewCollector(nil).Result()
	if !r.Accepted() {
		t.Error("empty result not accepted")
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}

	var buf bytes.Buffer
	if err := r.Fprint(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "accepted\n" {
		t.Errorf("Fprint = %q", buf.String())
	}
}

func TestFprint(t *testing.T) {
	c := NewCollector(nil)
	c.Reportf(MissingReturn, pos(13, 1), "function test must return i32")
	r := c.Result()

	var buf bytes.Buffer
	if err := r.Fprint(&buf); err != nil {
		t.Fatal(err)
	}
	want := "t.rs:13:1: MissingReturn: function test must return i32\nrejected: 1 error(s)\n"
	if buf.String() != want {
		t.Errorf("Fprint =\n%s\nwant\n%s", buf.String(), want)
	}
	if r.Err() == nil || r.Err().Error() != "t.rs:13:1: MissingReturn: function test must return i32" {
		t.Errorf("Err() = %v", r.Err())
	}
}

func TestResultJSON(t *testing.T) {
	c := NewCollector(nil)
	c.Arity(pos(5, 3), 2, 3, "arity")
	c.Reportf(TypeMismatch, pos(2, 7), "mismatch")

	b, err := json.Marshal(c.Result())
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	want := `{"accepted":false,"diagnostics":[` +
		`{"kind":"TypeMismatch","line":2,"col":7,"msg":"mismatch"},` +
		`{"kind":"ArityMismatch","line":5,"col":3,"msg":"arity","expected":2,"given":3}]}`
	if got != want {
		t.Errorf("JSON =\n%s\nwant\n%s", got, want)
	}
}

func TestResultYAML(t *testing.T) {
	c := NewCollector(nil)
	c.Reportf(UndefinedFunction, pos(17, 5), "cannot find function unknown_func")

	b, err := yaml.Marshal(c.Result())
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	for _, want := range []string{"accepted: false", "kind: UndefinedFunction", "line: 17"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}

	// Kinds decode from their names.
	var back struct {
		Diagnostics []Record `yaml:"diagnostics"`
	}
	if err := yaml.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Diagnostics) != 1 || back.Diagnostics[0].Kind != UndefinedFunction {
		t.Errorf("decoded = %+v", back.Diagnostics)
	}
}
