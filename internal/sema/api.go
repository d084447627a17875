// Package sema implements semantic analysis for the toy Rust language.
package sema

import (
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/diag"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/types"
)

// DefaultMaxDepth is the nesting limit used when Config.MaxDepth is zero.
const DefaultMaxDepth = 256

// Config specifies the configuration for semantic analysis.
type Config struct {
	// Error is called for each diagnostic as it is reported.
	// If nil, diagnostics are only collected in the result.
	Error diag.Handler

	// MaxDepth bounds the nesting of blocks and expressions.
	// If zero, DefaultMaxDepth is used.
	MaxDepth int

	// SemicolonTail lets a value-position block whose last statement is a
	// ';'-terminated expression take that expression's type.
	SemicolonTail bool

	// ForbidSameScopeShadowing reports a let that rebinds a name already
	// bound in the same block as DuplicateDefinition.
	ForbidSameScopeShadowing bool

	// CheckInit reports reads of a binding declared without initializer
	// before any assignment to it.
	CheckInit bool
}

// Info holds the results of semantic analysis.
type Info struct {
	// Types maps expressions to their types. Expressions that failed
	// to check map to the Error type.
	Types map[syntax.Expr]types.Type

	// Defs maps defining identifiers (let names, parameters, loop
	// variables) to the bindings they declare.
	Defs map[*syntax.Name]*types.Var

	// Uses maps identifiers that reference a binding (reads and
	// assignment targets) to that binding.
	Uses map[*syntax.Name]*types.Var

	// Calls maps resolved calls to the called function's signature.
	Calls map[*syntax.CallExpr]*types.Func

	// Funcs maps function declarations to their signatures, including
	// duplicate declarations that are not in the function table.
	Funcs map[*syntax.FuncDecl]*types.Func
}

// TypeOf returns the type of e, or nil if e was not checked.
func (info *Info) TypeOf(e syntax.Expr) types.Type {
	return info.Types[e]
}

// Check analyzes a parsed file and returns its diagnostics.
// Check does not modify file or conf and may be called concurrently
// on different files.
func Check(file *syntax.File, conf *Config, info *Info) *diag.Result {
	var cfg Config
	if conf != nil {
		cfg = *conf
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	// Initialize info maps if not provided
	if info != nil {
		if info.Types == nil {
			info.Types = make(map[syntax.Expr]types.Type)
		}
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Name]*types.Var)
		}
		if info.Uses == nil {
			info.Uses = make(map[*syntax.Name]*types.Var)
		}
		if info.Calls == nil {
			info.Calls = make(map[*syntax.CallExpr]*types.Func)
		}
		if info.Funcs == nil {
			info.Funcs = make(map[*syntax.FuncDecl]*types.Func)
		}
	}

	c := &Checker{
		conf:  &cfg,
		info:  info,
		diags: diag.NewCollector(cfg.Error),
		funcs: types.NewFuncTable(),
		sigs:  make(map[*syntax.FuncDecl]*types.Func),
	}

	c.checkFile(file)

	return c.diags.Result()
}
