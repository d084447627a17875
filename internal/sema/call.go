package sema

import (
	"fmt"
	"strings"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/types"
)

// call checks a function call. An unknown function makes the call
// invalid; an arity mismatch still yields the declared result type.
func (c *Checker) call(x *operand, e *syntax.CallExpr) {
	args := c.args(e.Args)

	fn := c.funcs.Resolve(e.Fun.Value)
	if fn == nil {
		c.errorf(diag.UndefinedFunction, e.Fun.Pos(), "cannot find function %s in this scope", e.Fun.Value)
		return
	}
	c.recordCall(e, fn)

	if len(args) != fn.NumParams() {
		c.arityError(e.Pos(), fn.NumParams(), len(args),
			"function %s takes %d %s but %d %s supplied",
			fn.Name(), fn.NumParams(), plural(fn.NumParams(), "argument", "arguments"),
			len(args), plural(len(args), "was", "were"))
	} else {
		for i, p := range fn.Params() {
			a := &args[i]
			if a.valid() && !types.Compatible(a.typ, p.Type()) {
				c.mismatch(diag.TypeMismatch, a.pos, p.Type(), a.typ)
			}
		}
	}

	x.setValue(e.Pos(), fn.Result())
}

// args evaluates call arguments left to right.
func (c *Checker) args(list []syntax.Expr) []operand {
	args := make([]operand, len(list))
	for i, a := range list {
		c.expr(&args[i], a)
	}
	return args
}

// macroCall checks a formatting macro. The first argument must be a
// string literal and every {} placeholder needs one further argument.
func (c *Checker) macroCall(x *operand, e *syntax.MacroCall) {
	m := types.LookupMacro(e.Fun.Value)
	if m == nil {
		c.args(e.Args)
		c.errorf(diag.UndefinedFunction, e.Fun.Pos(), "cannot find macro %s! in this scope", e.Fun.Value)
		return
	}

	if len(e.Args) == 0 {
		if m.Kind() == types.MacroPrint || m.Kind() == types.MacroEprint {
			c.errorf(diag.TypeMismatch, e.Pos(), "%s! requires at least a format string argument", m.Name())
		}
		x.setValue(e.Pos(), m.Type())
		return
	}

	args := c.args(e.Args)
	lit, ok := e.Args[0].(*syntax.BasicLit)
	if !ok || lit.Kind != syntax.StringLit {
		c.errorf(diag.TypeMismatch, e.Args[0].Pos(), "format argument must be a string literal")
	} else if n, err := placeholders(lit.Value); err != nil {
		c.errorf(diag.TypeMismatch, lit.Pos(), "invalid format string: %v", err)
	} else if n != len(args)-1 {
		c.arityError(e.Pos(), n, len(args)-1,
			"%d positional %s in format string, but there %s %d %s",
			n, plural(n, "argument", "arguments"),
			plural(len(args)-1, "is", "are"), len(args)-1, plural(len(args)-1, "argument", "arguments"))
	}

	x.setValue(e.Pos(), m.Type())
}

// placeholders counts the {} and {:?} placeholders of a format string.
// Doubled braces are literal; any other unmatched brace is an error.
func placeholders(format string) (int, error) {
	n := 0
	for i := 0; i < len(format); i++ {
		switch format[i] {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				i++
				continue
			}
			end := strings.IndexAny(format[i+1:], "{}")
			if end < 0 || format[i+1+end] != '}' {
				return 0, fmt.Errorf("expected } to close the { at offset %d", i)
			}
			i += 1 + end
			n++
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				i++
				continue
			}
			return 0, fmt.Errorf("unmatched } at offset %d", i)
		}
	}
	return n, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
