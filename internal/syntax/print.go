package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// section prints a labeled child one level deeper.
func (p *printer) section(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node Node) {
	if isNil(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.printf("%s%s %s\n", mutPrefix(f.Mut), f.Name.Value, typeString(f.Type))
			}
			p.indent--
		}
		if n.Result != nil {
			p.printf("Result: %s\n", typeString(n.Result))
		}
		if n.Body != nil {
			p.section("Body", n.Body)
		}
		p.indent--

	case *BlockExpr:
		p.printf("BlockExpr %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		if n.Tail != nil {
			p.section("Tail", n.Tail)
		}
		p.indent--

	case *IfExpr:
		p.printf("IfExpr %s\n", n.pos)
		p.indent++
		p.section("Cond", n.Cond)
		p.section("Then", n.Then)
		if n.Else != nil {
			p.section("Else", n.Else)
		}
		p.indent--

	case *LetStmt:
		p.printf("LetStmt %s\n", n.pos)
		p.indent++
		p.printf("Name: %s%s\n", mutPrefix(n.Mut), n.Name.Value)
		if n.Type != nil {
			p.printf("Type: %s\n", typeString(n.Type))
		}
		if n.Value != nil {
			p.section("Value", n.Value)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.section("Cond", n.Cond)
		p.section("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s\n", n.pos)
		p.indent++
		p.printf("Var: %s%s\n", mutPrefix(n.Mut), n.Var.Value)
		p.section("Lo", n.Lo)
		p.section("Hi", n.Hi)
		p.section("Body", n.Body)
		p.indent--

	case *LoopStmt:
		p.printf("LoopStmt %s\n", n.pos)
		p.indent++
		p.section("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *BranchStmt:
		p.printf("BranchStmt %s %s\n", n.pos, n.Tok)

	case *ExprStmt:
		if n.Semi {
			p.printf("ExprStmt %s\n", n.pos)
		} else {
			p.printf("ExprStmt %s (no semicolon)\n", n.pos)
		}
		p.indent++
		p.print(n.X)
		p.indent--

	case *EmptyStmt:
		p.printf("EmptyStmt %s\n", n.pos)

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *TypeName:
		p.printf("TypeName %s %s\n", n.pos, n.Value)

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.X)
			p.indent--
		} else {
			p.printf("BinaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.section("X", n.X)
			p.section("Y", n.Y)
			p.indent--
		}

	case *AssignExpr:
		p.printf("AssignExpr %s\n", n.pos)
		p.indent++
		p.printf("LHS: %s\n", n.LHS.Value)
		p.section("RHS", n.RHS)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s %s\n", n.pos, n.Fun.Value)
		p.printArgs(n.Args)

	case *MacroCall:
		p.printf("MacroCall %s %s!\n", n.pos, n.Fun.Value)
		p.printArgs(n.Args)

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

func (p *printer) printArgs(args []Expr) {
	if len(args) == 0 {
		return
	}
	p.indent++
	p.printf("Args:\n")
	p.indent++
	for _, a := range args {
		p.print(a)
	}
	p.indent -= 2
}

func mutPrefix(mut bool) string {
	if mut {
		return "mut "
	}
	return ""
}

// typeString returns a string representation of a type expression.
func typeString(e Expr) string {
	if e == nil {
		return "()"
	}
	if t, ok := e.(*TypeName); ok {
		return t.Value
	}
	return fmt.Sprintf("<%T>", e)
}

// ExprString returns a short source-like rendering of an expression,
// used in diagnostic messages.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Name:
		b.WriteString(x.Value)
	case *BasicLit:
		if x.Kind == StringLit {
			fmt.Fprintf(b, "%q", x.Value)
		} else {
			b.WriteString(x.Value)
		}
	case *Operation:
		if x.Y == nil {
			b.WriteString(x.Op.String())
			writeExpr(b, x.X)
			return
		}
		writeExpr(b, x.X)
		fmt.Fprintf(b, " %s ", x.Op)
		writeExpr(b, x.Y)
	case *AssignExpr:
		b.WriteString(x.LHS.Value)
		b.WriteString(" = ")
		writeExpr(b, x.RHS)
	case *CallExpr, *MacroCall:
		var fun string
		var args []Expr
		if c, ok := x.(*CallExpr); ok {
			fun, args = c.Fun.Value, c.Args
		} else {
			m := x.(*MacroCall)
			fun, args = m.Fun.Value+"!", m.Args
		}
		b.WriteString(fun)
		b.WriteByte('(')
		for i, a := range args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, a)
		}
		b.WriteByte(')')
	case *ParenExpr:
		b.WriteByte('(')
		writeExpr(b, x.X)
		b.WriteByte(')')
	case *BlockExpr:
		b.WriteString("{ ... }")
	case *IfExpr:
		b.WriteString("if ")
		writeExpr(b, x.Cond)
		b.WriteString(" { ... }")
	case *TypeName:
		b.WriteString(x.Value)
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}
