package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Flesymeb/Toy-Rust-Compiler/internal/sema"
	"github.com/Flesymeb/Toy-Rust-Compiler/internal/syntax"
)

// printTypedAST outputs the AST with type annotations.
func printTypedAST(w io.Writer, file *syntax.File, info *sema.Info) {
	fmt.Fprintf(w, "File\n")
	fmt.Fprintf(w, "  Decls:\n")
	for _, decl := range file.Decls {
		printTypedFunc(w, decl, info, "    ")
	}
}

// printTypedFunc outputs a function declaration with its signature.
func printTypedFunc(w io.Writer, decl *syntax.FuncDecl, info *sema.Info, indent string) {
	fmt.Fprintf(w, "%sFuncDecl\n", indent)
	if sig := info.Funcs[decl]; sig != nil {
		fmt.Fprintf(w, "%s  Name: %s (%s)\n", indent, decl.Name.Value, sig)
	} else {
		fmt.Fprintf(w, "%s  Name: %s\n", indent, decl.Name.Value)
	}
	if decl.Body != nil {
		fmt.Fprintf(w, "%s  Body:\n", indent)
		printTypedBlock(w, decl.Body, info, indent+"    ")
	}
}

// printTypedBlock outputs the statements and tail of a block.
func printTypedBlock(w io.Writer, b *syntax.BlockExpr, info *sema.Info, indent string) {
	for _, s := range b.Stmts {
		printTypedStmt(w, s, info, indent)
	}
	if b.Tail != nil {
		fmt.Fprintf(w, "%sTail: %s\n", indent, typedExprString(b.Tail, info))
	}
}

// printTypedStmt outputs a statement with type annotations.
func printTypedStmt(w io.Writer, stmt syntax.Stmt, info *sema.Info, indent string) {
	switch s := stmt.(type) {
	case *syntax.LetStmt:
		fmt.Fprintf(w, "%sLetStmt\n", indent)
		if v := info.Defs[s.Name]; v != nil {
			fmt.Fprintf(w, "%s  Name: %s (%s)\n", indent, s.Name.Value, v.Type())
		} else {
			fmt.Fprintf(w, "%s  Name: %s\n", indent, s.Name.Value)
		}
		if s.Value != nil {
			fmt.Fprintf(w, "%s  Value: %s\n", indent, typedExprString(s.Value, info))
		}

	case *syntax.ExprStmt:
		fmt.Fprintf(w, "%sExprStmt\n", indent)
		fmt.Fprintf(w, "%s  X: %s\n", indent, typedExprString(s.X, info))

	case *syntax.ReturnStmt:
		fmt.Fprintf(w, "%sReturnStmt\n", indent)
		if s.Result != nil {
			fmt.Fprintf(w, "%s  Result: %s\n", indent, typedExprString(s.Result, info))
		}

	case *syntax.WhileStmt:
		fmt.Fprintf(w, "%sWhileStmt\n", indent)
		fmt.Fprintf(w, "%s  Cond: %s\n", indent, typedExprString(s.Cond, info))
		fmt.Fprintf(w, "%s  Body:\n", indent)
		printTypedBlock(w, s.Body, info, indent+"    ")

	case *syntax.ForStmt:
		fmt.Fprintf(w, "%sForStmt\n", indent)
		if v := info.Defs[s.Var]; v != nil {
			fmt.Fprintf(w, "%s  Var: %s (%s)\n", indent, s.Var.Value, v.Type())
		}
		fmt.Fprintf(w, "%s  Range: %s .. %s\n", indent, typedExprString(s.Lo, info), typedExprString(s.Hi, info))
		fmt.Fprintf(w, "%s  Body:\n", indent)
		printTypedBlock(w, s.Body, info, indent+"    ")

	case *syntax.LoopStmt:
		fmt.Fprintf(w, "%sLoopStmt\n", indent)
		fmt.Fprintf(w, "%s  Body:\n", indent)
		printTypedBlock(w, s.Body, info, indent+"    ")

	case *syntax.BranchStmt:
		fmt.Fprintf(w, "%sBranchStmt %s\n", indent, s.Tok)

	default:
		fmt.Fprintf(w, "%s%T\n", indent, stmt)
	}
}

func typedExprString(expr syntax.Expr, info *sema.Info) string {
	typ := ""
	if t := info.TypeOf(expr); t != nil {
		typ = fmt.Sprintf(" (%s)", t)
	}

	switch e := expr.(type) {
	case *syntax.Name:
		return fmt.Sprintf("Name %q%s", e.Value, typ)
	case *syntax.BasicLit:
		return fmt.Sprintf("BasicLit %q%s", e.Value, typ)
	case *syntax.Operation:
		if e.Y == nil {
			return fmt.Sprintf("Operation %s%s [X=%s]", e.Op, typ, typedExprString(e.X, info))
		}
		return fmt.Sprintf("Operation %s%s [X=%s, Y=%s]", e.Op, typ, typedExprString(e.X, info), typedExprString(e.Y, info))
	case *syntax.AssignExpr:
		return fmt.Sprintf("AssignExpr%s [LHS=%q, RHS=%s]", typ, e.LHS.Value, typedExprString(e.RHS, info))
	case *syntax.CallExpr:
		return fmt.Sprintf("CallExpr%s [Fun=%q, Args=[%s]]", typ, e.Fun.Value, typedArgs(e.Args, info))
	case *syntax.MacroCall:
		return fmt.Sprintf("MacroCall %s!%s [Args=[%s]]", e.Fun.Value, typ, typedArgs(e.Args, info))
	case *syntax.ParenExpr:
		return fmt.Sprintf("ParenExpr%s [X=%s]", typ, typedExprString(e.X, info))
	case *syntax.BlockExpr:
		return fmt.Sprintf("BlockExpr%s [%d stmts]", typ, len(e.Stmts))
	case *syntax.IfExpr:
		if e.Else == nil {
			return fmt.Sprintf("IfExpr%s [Cond=%s]", typ, typedExprString(e.Cond, info))
		}
		return fmt.Sprintf("IfExpr%s [Cond=%s, Then=%s, Else=%s]", typ,
			typedExprString(e.Cond, info), typedExprString(e.Then, info), typedExprString(e.Else, info))
	default:
		return fmt.Sprintf("%T%s", expr, typ)
	}
}

func typedArgs(args []syntax.Expr, info *sema.Info) string {
	list := make([]string, len(args))
	for i, arg := range args {
		list[i] = typedExprString(arg, info)
	}
	return strings.Join(list, ", ")
}
