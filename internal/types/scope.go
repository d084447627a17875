package types

import (
	"fmt"
	"strings"
)

// Scope is one frame of the scope stack: the bindings introduced by a
// single block, function parameter list or loop header.
// Frames form a chain through their parent pointers.
type Scope struct {
	parent  *Scope
	elems   map[string]*Var // newest binding per name
	order   []*Var          // every binding, in declaration order
	depth   int
	comment string // debugging comment (e.g., "function foo", "block")
}

// NewScope creates a new frame with the given parent.
func NewScope(parent *Scope, comment string) *Scope {
	s := &Scope{
		parent:  parent,
		elems:   make(map[string]*Var),
		comment: comment,
	}
	if parent != nil {
		s.depth = parent.depth + 1
	}
	return s
}

// Parent returns the enclosing frame, or nil for the outermost one.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Depth returns the number of enclosing frames.
func (s *Scope) Depth() int {
	return s.depth
}

// Comment returns the scope's comment (for debugging).
func (s *Scope) Comment() string {
	return s.comment
}

// Lookup returns the newest binding with the given name in this frame.
// Returns nil if not found in this frame (does not search parent frames).
func (s *Scope) Lookup(name string) *Var {
	return s.elems[name]
}

// LookupParent returns the binding with the given name by searching
// from this frame outwards.
// Returns the binding and the frame in which it was found.
// Returns (nil, nil) if not found.
func (s *Scope) LookupParent(name string) (*Var, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if v := scope.elems[name]; v != nil {
			return v, scope
		}
	}
	return nil, nil
}

// Insert adds a binding to the frame. A binding with the same name in
// the same frame is shadowed, not replaced: it stays in Vars but later
// lookups find the new one. Insert returns the shadowed binding, or nil.
func (s *Scope) Insert(v *Var) *Var {
	prev := s.elems[v.name]
	s.elems[v.name] = v
	s.order = append(s.order, v)
	v.depth = s.depth
	return prev
}

// Vars returns every binding of the frame in declaration order,
// including shadowed ones.
func (s *Scope) Vars() []*Var {
	return s.order
}

// String returns a string representation of the frame chain for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	for scope := s; scope != nil; scope = scope.parent {
		prefix := strings.Repeat("  ", scope.depth)
		fmt.Fprintf(&buf, "%sscope %s {\n", prefix, scope.comment)
		for _, v := range scope.order {
			fmt.Fprintf(&buf, "%s  %s\n", prefix, v)
		}
		fmt.Fprintf(&buf, "%s}\n", prefix)
	}
	return buf.String()
}

// Scopes is the scope stack used while checking one program.
// The zero value is an empty stack; Enter must be called before Declare.
type Scopes struct {
	top *Scope
}

// Enter pushes a new empty frame.
func (ss *Scopes) Enter(comment string) *Scope {
	ss.top = NewScope(ss.top, comment)
	return ss.top
}

// Exit pops the innermost frame, discarding its bindings.
// Exit on an empty stack is a no-op.
func (ss *Scopes) Exit() {
	if ss.top != nil {
		ss.top = ss.top.parent
	}
}

// Declare adds v to the innermost frame and returns it. Declare never
// fails: redeclaring a name shadows the earlier binding.
func (ss *Scopes) Declare(v *Var) *Var {
	if ss.top == nil {
		ss.Enter("implicit")
	}
	ss.top.Insert(v)
	return v
}

// Lookup returns the innermost visible binding named name, or nil.
func (ss *Scopes) Lookup(name string) *Var {
	if ss.top == nil {
		return nil
	}
	v, _ := ss.top.LookupParent(name)
	return v
}

// LookupCurrent returns the binding named name in the innermost frame
// only, or nil.
func (ss *Scopes) LookupCurrent(name string) *Var {
	if ss.top == nil {
		return nil
	}
	return ss.top.Lookup(name)
}

// Depth returns the number of open frames.
func (ss *Scopes) Depth() int {
	if ss.top == nil {
		return 0
	}
	return ss.top.depth + 1
}

// Top returns the innermost frame, or nil if the stack is empty.
func (ss *Scopes) Top() *Scope {
	return ss.top
}
