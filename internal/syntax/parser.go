package syntax

import "io"

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on toy Rust source code.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok Token
	lit string
	pos Pos

	// Error handling
	errh   func(pos Pos, msg string)
	errcnt int
	first  error // first error encountered
	abort  bool  // set to true when error limit reached
}

// NewParser creates a new Parser for the given source.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	p := &Parser{errh: errh}
	scanErrh := func(line, col uint32, msg string) {
		p.syntaxErrorAt(NewPos(filename, line, col), msg)
	}
	p.scanner = NewScanner(filename, src, scanErrh)
	p.next() // prime the parser with first token
	return p
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
// Once the error limit is reached the parser only sees EOF.
func (p *Parser) next() {
	if p.abort {
		p.tok = _EOF
		return
	}
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
	if p.abort {
		p.tok = _EOF
	}
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String() + ", found " + p.tokDesc())
		p.advance()
	}
}

// tokDesc describes the current token for error messages.
func (p *Parser) tokDesc() string {
	switch p.tok {
	case _Name:
		return "name " + p.lit
	case _Literal:
		return "literal " + p.lit
	}
	return p.tok.String()
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current position.
func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

// syntaxErrorAt reports a syntax error at a specific position.
func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(pos, msg)
	}

	p.errorLimitCheck(pos)
}

// errorLimitCheck aborts parsing if too many errors have occurred.
func (p *Parser) errorLimitCheck(pos Pos) {
	if p.errcnt >= maxErrors {
		p.abort = true
		if p.errh != nil {
			p.errh(pos, "too many errors; aborting parse")
		}
		p.tok = _EOF
	}
}

// syncTokens are the tokens advance stops at.
var syncTokens = map[Token]bool{
	_Semi:     true, // statement terminator
	_Rbrace:   true, // block end
	_Fn:       true,
	_Let:      true,
	_If:       true,
	_While:    true,
	_For:      true,
	_Loop:     true,
	_Return:   true,
	_Break:    true,
	_Continue: true,
	_EOF:      true,
}

// advance skips tokens until it finds a synchronization point.
// This is used for error recovery. A ';' is consumed; any other
// sync token is left for the enclosing production.
func (p *Parser) advance() {
	for !syncTokens[p.tok] {
		p.next()
	}
	if p.tok == _Semi {
		p.next()
	}
}

// Errors returns the number of errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses a complete source file and returns the AST.
func (p *Parser) Parse() *File {
	f := &File{}
	f.pos = p.pos

	for p.tok != _EOF {
		if p.tok != _Fn {
			p.syntaxError("expected fn declaration, found " + p.tokDesc())
			p.skipTo(_Fn)
			continue
		}
		f.Decls = append(f.Decls, p.funcDecl())
	}

	return f
}

// skipTo discards tokens up to the next tok or EOF.
func (p *Parser) skipTo(tok Token) {
	for p.tok != tok && p.tok != _EOF {
		p.next()
	}
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	if p.tok != _Name {
		p.syntaxError("expected identifier, found " + p.tokDesc())
		// Return a placeholder for error recovery
		n := &Name{Value: "_"}
		n.pos = p.pos
		return n
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

// type_ parses a type: i32, bool or ().
func (p *Parser) type_() Expr {
	t := &TypeName{}
	t.pos = p.pos

	switch p.tok {
	case _I32, _Bool:
		t.Value = p.tok.String()
		p.next()
	case _Lparen:
		p.next()
		p.want(_Rparen)
		t.Value = "()"
	default:
		p.syntaxError("expected type, found " + p.tokDesc())
		t.Value = "_"
	}
	return t
}

// ----------------------------------------------------------------------------
// Function declarations

// funcDecl parses: fn Name(params) [-> Result] { body }
func (p *Parser) funcDecl() *FuncDecl {
	d := &FuncDecl{}
	d.pos = p.pos

	p.want(_Fn)
	d.Name = p.name()
	d.Params = p.paramList()

	if p.got(_Arrow) {
		d.Result = p.type_()
	}

	d.Body = p.blockExpr()
	return d
}

// paramList parses ([mut] p1: T1, [mut] p2: T2, ...)
func (p *Parser) paramList() []*Param {
	p.want(_Lparen)

	var params []*Param
	for p.tok != _Rparen && p.tok != _EOF {
		params = append(params, p.param())
		if !p.got(_Comma) {
			break
		}
	}

	p.want(_Rparen)
	return params
}

// param parses [mut] Name: Type
func (p *Parser) param() *Param {
	f := &Param{}
	f.pos = p.pos
	f.Mut = p.got(_Mut)
	f.Name = p.name()
	p.want(_Colon)
	f.Type = p.type_()
	return f
}

// ----------------------------------------------------------------------------
// Blocks and statements

// blockExpr parses { stmts... [tail] }
func (p *Parser) blockExpr() *BlockExpr {
	b := &BlockExpr{}
	b.pos = p.pos

	p.want(_Lbrace)

	for p.tok != _Rbrace && p.tok != _EOF {
		pos, tok := p.pos, p.tok
		s, tail := p.stmtOrTail()
		if tail != nil {
			b.Tail = tail
			break
		}
		if s != nil {
			b.Stmts = append(b.Stmts, s)
		}
		if p.pos == pos && p.tok == tok {
			// no progress; drop the offending token
			p.next()
		}
	}

	b.Rbrace = p.pos
	p.want(_Rbrace)

	return b
}

// stmtOrTail parses a statement. If the item is an expression directly
// followed by the closing brace, it is returned as the block's tail instead.
func (p *Parser) stmtOrTail() (Stmt, Expr) {
	switch p.tok {
	case _Semi:
		s := &EmptyStmt{}
		s.pos = p.pos
		p.next()
		return s, nil

	case _Let:
		return p.letStmt(), nil

	case _While:
		return p.whileStmt(), nil

	case _For:
		return p.forStmt(), nil

	case _Loop:
		return p.loopStmt(), nil

	case _Return:
		return p.returnStmt(), nil

	case _Break, _Continue:
		return p.branchStmt(), nil

	case _If, _Lbrace:
		// Block-like expressions need no ';' in statement position.
		pos := p.pos
		var x Expr
		if p.tok == _If {
			x = p.ifExpr()
		} else {
			x = p.blockExpr()
		}
		if p.tok == _Rbrace {
			return nil, x
		}
		s := &ExprStmt{X: x, Semi: p.got(_Semi)}
		s.pos = pos
		return s, nil

	default:
		pos := p.pos
		x := p.expr()
		if p.tok == _Rbrace {
			return nil, x
		}
		s := &ExprStmt{X: x, Semi: true}
		s.pos = pos
		p.want(_Semi)
		return s, nil
	}
}

// letStmt parses: let [mut] Name [: Type] [= Value];
func (p *Parser) letStmt() Stmt {
	s := &LetStmt{}
	s.pos = p.pos

	p.want(_Let)
	s.Mut = p.got(_Mut)
	s.Name = p.name()

	if p.got(_Colon) {
		s.Type = p.type_()
	}
	if p.got(_Assign) {
		s.Value = p.expr()
	}

	p.want(_Semi)
	return s
}

// whileStmt parses: while Cond { Body }
func (p *Parser) whileStmt() Stmt {
	s := &WhileStmt{}
	s.pos = p.pos

	p.want(_While)
	s.Cond = p.expr()
	s.Body = p.blockExpr()
	return s
}

// forStmt parses: for [mut] Var in Lo..Hi { Body }
func (p *Parser) forStmt() Stmt {
	s := &ForStmt{}
	s.pos = p.pos

	p.want(_For)
	s.Mut = p.got(_Mut)
	s.Var = p.name()
	p.want(_In)
	s.Lo = p.binaryExpr(0)
	p.want(_DotDot)
	s.Hi = p.binaryExpr(0)
	s.Body = p.blockExpr()
	return s
}

// loopStmt parses: loop { Body }
func (p *Parser) loopStmt() Stmt {
	s := &LoopStmt{}
	s.pos = p.pos

	p.want(_Loop)
	s.Body = p.blockExpr()
	return s
}

// returnStmt parses: return [expr];
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{}
	s.pos = p.pos

	p.want(_Return)

	if p.tok != _Semi && p.tok != _Rbrace && p.tok != _EOF {
		s.Result = p.expr()
	}

	p.endStmt()
	return s
}

// branchStmt parses: break; or continue;
func (p *Parser) branchStmt() Stmt {
	s := &BranchStmt{Tok: p.tok}
	s.pos = p.pos
	p.next()
	p.endStmt()
	return s
}

// endStmt consumes the ';' ending a jump statement. The last statement of
// a block may omit it.
func (p *Parser) endStmt() {
	if p.tok != _Rbrace {
		p.want(_Semi)
	}
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression, including assignment.
func (p *Parser) expr() Expr {
	x := p.binaryExpr(0)
	if p.tok != _Assign {
		return x
	}

	pos := p.pos
	p.next() // consume =
	rhs := p.expr()

	lhs, ok := x.(*Name)
	if !ok {
		p.syntaxErrorAt(pos, "cannot assign to this expression")
		return rhs
	}
	a := &AssignExpr{LHS: lhs, RHS: rhs}
	a.pos = lhs.Pos()
	return a
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements Pratt parsing / precedence climbing.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()

		p.next() // consume operator

		// Parse right operand with higher precedence (left associative)
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

// unaryExpr parses a unary expression.
func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Not, _Sub:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr()
		return op
	}
	return p.operand()
}

// operand parses a primary expression.
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		n := &Name{Value: p.lit}
		n.pos = p.pos
		p.next()
		switch p.tok {
		case _Lparen:
			return p.callExpr(n)
		case _Not:
			return p.macroCall(n)
		}
		return n

	case _Literal:
		lit := &BasicLit{Value: p.lit, Kind: p.scanner.LitKind()}
		lit.pos = p.pos
		p.next()
		return lit

	case _True, _False:
		lit := &BasicLit{Value: p.tok.String(), Kind: BoolLit}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen: // parenthesized expression
		pos := p.pos
		p.next()
		x := p.expr()
		p.want(_Rparen)
		paren := &ParenExpr{X: x}
		paren.pos = pos
		return paren

	case _Lbrace:
		return p.blockExpr()

	case _If:
		return p.ifExpr()

	default:
		p.syntaxError("expected expression, found " + p.tokDesc())
		n := &Name{Value: "_"} // error recovery
		n.pos = p.pos
		return n
	}
}

// ifExpr parses: if cond { then } [else { else } | else if ...]
func (p *Parser) ifExpr() Expr {
	x := &IfExpr{}
	x.pos = p.pos

	p.want(_If)
	x.Cond = p.expr()
	x.Then = p.blockExpr()

	if p.got(_Else) {
		if p.tok == _If {
			x.Else = p.ifExpr() // else if
		} else {
			x.Else = p.blockExpr() // else
		}
	}

	return x
}

// callExpr parses Fun(args...)
func (p *Parser) callExpr(fun *Name) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()
	call.Args = p.argList()
	return call
}

// macroCall parses Fun!(args...)
func (p *Parser) macroCall(fun *Name) Expr {
	m := &MacroCall{Fun: fun}
	m.pos = fun.Pos()
	p.want(_Not)
	m.Args = p.argList()
	return m
}

// argList parses (e1, e2, ...)
func (p *Parser) argList() []Expr {
	p.want(_Lparen)
	var list []Expr
	for p.tok != _Rparen && p.tok != _EOF {
		list = append(list, p.expr())
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rparen)
	return list
}

// ParseFile is a convenience wrapper: it parses src and returns the AST
// together with the first syntax error, if any.
func ParseFile(filename string, src io.Reader, errh func(pos Pos, msg string)) (*File, error) {
	p := NewParser(filename, src, errh)
	f := p.Parse()
	return f, p.FirstError()
}
