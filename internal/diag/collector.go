package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
)

// Handler is called for each diagnostic as it is reported.
type Handler func(d Diagnostic)

// Collector accumulates diagnostics in report order.
// It never deduplicates: the same problem reported twice appears twice.
// A Collector is owned by a single analysis run and is not safe for
// concurrent use.
type Collector struct {
	diags   []Diagnostic
	handler Handler
}

// NewCollector returns an empty collector. h may be nil.
func NewCollector(h Handler) *Collector {
	return &Collector{handler: h}
}

// Add appends d.
func (c *Collector) Add(d Diagnostic) {
	c.diags = append(c.diags, d)
	if c.handler != nil {
		c.handler(d)
	}
}

// Reportf appends a diagnostic of the given kind.
func (c *Collector) Reportf(kind Kind, pos syntax.Pos, format string, args ...interface{}) {
	c.Add(Diagnostic{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// Arity appends an ArityMismatch carrying the expected and given counts.
func (c *Collector) Arity(pos syntax.Pos, expected, given int, format string, args ...interface{}) {
	c.Add(Diagnostic{
		Kind:     ArityMismatch,
		Pos:      pos,
		Msg:      fmt.Sprintf(format, args...),
		Expected: expected,
		Given:    given,
	})
}

// Len returns the number of diagnostics reported so far.
func (c *Collector) Len() int {
	return len(c.diags)
}

// Result returns the analysis result: a copy of the diagnostics stably
// sorted by source position, so diagnostics at the same position keep
// their report order.
func (c *Collector) Result() *Result {
	diags := make([]Diagnostic, len(c.diags))
	copy(diags, c.diags)
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Pos.Before(diags[j].Pos)
	})
	return &Result{Diagnostics: diags}
}

// Result is the outcome of analyzing one program.
type Result struct {
	Diagnostics []Diagnostic
}

// Accepted reports whether the program has no diagnostics.
func (r *Result) Accepted() bool {
	return len(r.Diagnostics) == 0
}

// Count returns the number of diagnostics of the given kind.
func (r *Result) Count(kind Kind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Kinds returns the kind of each diagnostic, in order.
func (r *Result) Kinds() []Kind {
	kinds := make([]Kind, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		kinds[i] = d.Kind
	}
	return kinds
}

// Err returns the first diagnostic as an error, or nil if accepted.
func (r *Result) Err() error {
	if r.Accepted() {
		return nil
	}
	return r.Diagnostics[0]
}

// Fprint writes one line per diagnostic followed by a summary line.
func (r *Result) Fprint(w io.Writer) error {
	for _, d := range r.Diagnostics {
		if _, err := fmt.Fprintln(w, d.Error()); err != nil {
			return err
		}
	}
	var err error
	if r.Accepted() {
		_, err = fmt.Fprintln(w, "accepted")
	} else {
		_, err = fmt.Fprintf(w, "rejected: %d error(s)\n", len(r.Diagnostics))
	}
	return err
}

type resultRecord struct {
	Accepted    bool     `json:"accepted" yaml:"accepted"`
	Diagnostics []Record `json:"diagnostics" yaml:"diagnostics"`
}

func (r *Result) record() resultRecord {
	rec := resultRecord{Accepted: r.Accepted(), Diagnostics: make([]Record, len(r.Diagnostics))}
	for i, d := range r.Diagnostics {
		rec.Diagnostics[i] = d.Record()
	}
	return rec
}

func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.record())
}

// MarshalYAML implements yaml.Marshaler.
func (r *Result) MarshalYAML() (interface{}, error) {
	return r.record(), nil
}
