package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Expressions, Statements, and Declarations.
// Blocks and if are expressions; loops, let and jumps are statements.
// All nodes implement the Node interface.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	End() Pos // position of the last character belonging to the node, if known
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) End() Pos { return n.pos } // default: return start position
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is embedded in all declaration nodes.
type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Files and Declarations

// File represents a complete program. A program is one source file.
type File struct {
	node
	Decls []*FuncDecl // function declarations in source order
}

// FuncDecl represents a function declaration.
// fn Name(Params) -> Result { Body }
type FuncDecl struct {
	decl
	Name   *Name      // function name
	Params []*Param   // parameter list
	Result Expr       // return type (nil for ())
	Body   *BlockExpr // function body
}

// Param represents a function parameter: [mut] Name: Type
type Param struct {
	node
	Mut  bool  // declared with mut
	Name *Name // parameter name
	Type Expr  // parameter type
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string // identifier string
}

// BasicLit represents a literal value (int, bool, string).
type BasicLit struct {
	expr
	Value string  // literal text (decoded for strings)
	Kind  LitKind // IntLit, BoolLit, StringLit
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
// For binary operations, both X and Y are set.
type Operation struct {
	expr
	Op Token // operator token
	X  Expr  // left operand (or only operand for unary)
	Y  Expr  // right operand (nil for unary)
}

// AssignExpr represents an assignment: LHS = RHS.
// Assignment is right associative and has the lowest precedence.
type AssignExpr struct {
	expr
	LHS *Name // assigned variable
	RHS Expr  // assigned value
}

// CallExpr represents a function call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  *Name  // called function
	Args []Expr // argument list
}

// MacroCall represents a macro invocation: Fun!(Args...)
type MacroCall struct {
	expr
	Fun  *Name  // macro name, without the !
	Args []Expr // argument list
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr // inner expression
}

// BlockExpr represents a block: { Stmts... Tail }
// Tail is the trailing expression without a semicolon, or nil.
type BlockExpr struct {
	expr
	Stmts  []Stmt // statements
	Tail   Expr   // value of the block (nil if none)
	Rbrace Pos    // position of closing brace
}

func (b *BlockExpr) End() Pos { return b.Rbrace }

// IfExpr represents an if expression: if Cond Then [else Else]
type IfExpr struct {
	expr
	Cond Expr       // condition expression
	Then *BlockExpr // then branch
	Else Expr       // else branch (nil, *IfExpr, or *BlockExpr)
}

// ----------------------------------------------------------------------------
// Type Expressions

// TypeName represents a type: i32, bool, or ().
type TypeName struct {
	expr
	Value string // "i32", "bool", "()", or "_" after a syntax error
}

// ----------------------------------------------------------------------------
// Statements

// EmptyStmt represents an empty statement (just a semicolon).
type EmptyStmt struct {
	stmt
}

// LetStmt represents a binding: let [mut] Name [: Type] [= Value];
type LetStmt struct {
	stmt
	Mut   bool  // declared with mut
	Name  *Name // bound name
	Type  Expr  // explicit type (nil if inferred)
	Value Expr  // initial value (nil if none)
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	stmt
	X    Expr // expression
	Semi bool // terminated by ';' (false only for if and block statements)
}

// WhileStmt represents: while Cond { Body }
type WhileStmt struct {
	stmt
	Cond Expr       // loop condition
	Body *BlockExpr // loop body
}

// ForStmt represents a range loop: for [mut] Var in Lo..Hi { Body }
type ForStmt struct {
	stmt
	Mut  bool       // loop variable declared with mut
	Var  *Name      // loop variable
	Lo   Expr       // range start (inclusive)
	Hi   Expr       // range end (exclusive)
	Body *BlockExpr // loop body
}

// LoopStmt represents an unconditional loop: loop { Body }
type LoopStmt struct {
	stmt
	Body *BlockExpr // loop body
}

// ReturnStmt represents a return statement: return [Result];
type ReturnStmt struct {
	stmt
	Result Expr // return value (nil for bare return)
}

// BranchStmt represents a break or continue statement.
type BranchStmt struct {
	stmt
	Tok Token // _Break or _Continue
}
