package types

import "fmt"

// DuplicateFuncError is returned by FuncTable.Register when a function
// with the same name is already registered.
type DuplicateFuncError struct {
	Prev *Func // the registered, authoritative signature
	Dup  *Func // the rejected signature
}

func (e *DuplicateFuncError) Error() string {
	return fmt.Sprintf("function %s already defined at %s", e.Dup.Name(), e.Prev.Pos())
}

// FuncTable maps function names to signatures.
// The first registration of a name wins.
type FuncTable struct {
	funcs map[string]*Func
	order []*Func
}

// NewFuncTable creates an empty function table.
func NewFuncTable() *FuncTable {
	return &FuncTable{funcs: make(map[string]*Func)}
}

// Register adds sig to the table. If the name is taken, the table is
// unchanged and a *DuplicateFuncError is returned.
func (t *FuncTable) Register(sig *Func) error {
	if prev := t.funcs[sig.Name()]; prev != nil {
		return &DuplicateFuncError{Prev: prev, Dup: sig}
	}
	t.funcs[sig.Name()] = sig
	t.order = append(t.order, sig)
	return nil
}

// Resolve returns the signature registered under name, or nil.
func (t *FuncTable) Resolve(name string) *Func {
	return t.funcs[name]
}

// Len returns the number of registered functions.
func (t *FuncTable) Len() int {
	return len(t.order)
}

// Funcs returns the registered signatures in registration order.
func (t *FuncTable) Funcs() []*Func {
	return t.order
}
