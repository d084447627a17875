// Package syntax implements lexical and syntactic analysis for the toy Rust language.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // lexical error

	// Literals
	_Name    // identifier: foo, add, result1
	_Literal // literal value (used with LitKind)

	// Operators (ordered by precedence, low to high)
	_Assign // =

	// Logical operators
	_OrOr   // ||
	_AndAnd // &&

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Additive operators
	_Add // +
	_Sub // -

	// Multiplicative operators
	_Mul // *
	_Div // /
	_Rem // %

	// Unary operators
	_Not // !

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;
	_Colon  // :
	_Arrow  // ->
	_DotDot // ..

	// Keywords
	_Bool
	_Break
	_Continue
	_Else
	_False
	_Fn
	_For
	_I32
	_If
	_In
	_Let
	_Loop
	_Mut
	_Return
	_True
	_While

	tokenCount
)

var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign: "=",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",

	_Mul: "*",
	_Div: "/",
	_Rem: "%",

	_Not: "!",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",
	_Colon:  ":",
	_Arrow:  "->",
	_DotDot: "..",

	_Bool:     "bool",
	_Break:    "break",
	_Continue: "continue",
	_Else:     "else",
	_False:    "false",
	_Fn:       "fn",
	_For:      "for",
	_I32:      "i32",
	_If:       "if",
	_In:       "in",
	_Let:      "let",
	_Loop:     "loop",
	_Mut:      "mut",
	_Return:   "return",
	_True:     "true",
	_While:    "while",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: == != < <= > >=
//	4: + -
//	5: * / %
func (t Token) Precedence() int {
	switch t {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Eql, _Neq, _Lss, _Leq, _Gtr, _Geq:
		return 3
	case _Add, _Sub:
		return 4
	case _Mul, _Div, _Rem:
		return 5
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Bool && t <= _While
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Not
}

// IsLogical reports whether t is && or ||.
func (t Token) IsLogical() bool { return t == _OrOr || t == _AndAnd }

// IsComparison reports whether t is one of == != < <= > >=.
func (t Token) IsComparison() bool { return t.Precedence() == 3 }

// IsArith reports whether t is one of + - * / %.
func (t Token) IsArith() bool { return t.Precedence() >= 4 }

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool { return t == _EOF }

// IsBreak reports whether t is the break keyword.
func (t Token) IsBreak() bool { return t == _Break }

// IsContinue reports whether t is the continue keyword.
func (t Token) IsContinue() bool { return t == _Continue }

// Exported operator tokens for the checker and tests.
const (
	Not Token = _Not // !
	Sub Token = _Sub // -
	Add Token = _Add // +
	Lss Token = _Lss // <
	Gtr Token = _Gtr // >
	Eql Token = _Eql // ==
)

// LitKind represents the kind of a literal.
type LitKind uint8

const (
	IntLit    LitKind = iota // 42
	BoolLit                  // true, false
	StringLit                // "hello"
)

var litKindNames = [...]string{
	IntLit:    "int",
	BoolLit:   "bool",
	StringLit: "string",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= StringLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps keyword strings to their token type.
// The type names i32 and bool are keywords, as in the reference lexer.
var keywords = map[string]Token{
	"bool":     _Bool,
	"break":    _Break,
	"continue": _Continue,
	"else":     _Else,
	"false":    _False,
	"fn":       _Fn,
	"for":      _For,
	"i32":      _I32,
	"if":       _If,
	"in":       _In,
	"let":      _Let,
	"loop":     _Loop,
	"mut":      _Mut,
	"return":   _Return,
	"true":     _True,
	"while":    _While,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
