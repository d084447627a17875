package fixture

import (
	"fmt"
	"io"
	"os"

	"github.com/go-test/deep"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/batch"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/sema"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
)

// Outcome is the result of running one fixture.
type Outcome struct {
	Manifest *Manifest
	Result   *diag.Result // nil if the program could not be analyzed
	Err      error        // I/O or syntax error

	// Mismatches lists the differences between the expected and the
	// actual outcome. Empty if the fixture passed.
	Mismatches []string
}

// Passed reports whether the fixture ran and matched its manifest.
func (o *Outcome) Passed() bool {
	return o.Err == nil && len(o.Mismatches) == 0
}

// Run analyzes the program of m and compares the result with m.
func Run(m *Manifest) *Outcome {
	o := &Outcome{Manifest: m}

	file, err := os.Open(m.SourcePath())
	if err != nil {
		o.Err = fmt.Errorf("fixture %s: %w", m.Name(), err)
		return o
	}
	defer file.Close()

	ast, err := syntax.ParseFile(m.SourcePath(), file, nil)
	if err != nil {
		o.Err = fmt.Errorf("fixture %s: %w", m.Name(), err)
		return o
	}

	o.Result = sema.Check(ast, m.Options.Sema(nil), nil)
	o.Mismatches = Compare(m, o.Result)
	return o
}

// Compare returns the differences between the expected outcome in m and
// the result r.
func Compare(m *Manifest, r *diag.Result) []string {
	var diffs []string
	if r.Accepted() != m.Accepted {
		diffs = append(diffs, fmt.Sprintf("accepted: %v != %v", r.Accepted(), m.Accepted))
	}

	got := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		got[i] = Expect{Kind: d.Kind, Line: d.Pos.Line()}.String()
	}
	want := make([]string, len(m.Diagnostics))
	for i, e := range m.Diagnostics {
		want[i] = e.String()
	}
	return append(diffs, deep.Equal(got, want)...)
}

// RunAll runs the fixtures on up to workers goroutines and returns the
// outcomes in the order of manifests. If workers is not positive,
// GOMAXPROCS is used.
func RunAll(manifests []*Manifest, workers int) []*Outcome {
	outcomes := make([]*Outcome, len(manifests))
	batch.Do(len(manifests), workers, func(i int) {
		outcomes[i] = Run(manifests[i])
	})
	return outcomes
}

// Report writes one line per outcome and returns the number of failures.
func Report(w io.Writer, outcomes []*Outcome) int {
	failed := 0
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", o.Manifest.Name(), o.Err)
		case len(o.Mismatches) > 0:
			failed++
			fmt.Fprintf(w, "FAIL %s\n", o.Manifest.Name())
			for _, m := range o.Mismatches {
				fmt.Fprintf(w, "    %s\n", m)
			}
		default:
			fmt.Fprintf(w, "ok   %s\n", o.Manifest.Name())
		}
	}
	fmt.Fprintf(w, "%d passed, %d failed\n", len(outcomes)-failed, failed)
	return failed
}
