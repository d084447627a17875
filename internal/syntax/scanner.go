package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on toy Rust source code.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token   // token type
	lit    string  // token literal (identifier name, number, string content)
	kind   LitKind // literal kind (only valid when tok == _Literal)
	tokPos Pos     // token start position

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	s.skipWhitespace()

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			// a comment or a stray character was skipped
			goto redo
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		goto redo
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a decimal integer literal.
// The value is not range-checked here; the checker reports literals
// that do not fit in i32.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	for isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	// 1a is not a number followed by a name
	if isLetter(s.ch) {
		s.error(fmt.Sprintf("invalid character %q in number literal", s.ch))
		for isLetter(s.ch) || isDigit(s.ch) {
			s.nextch()
		}
	}
	s.lit = s.litBuf.String()
	s.tok = _Literal
	s.kind = IntLit
}

// scanString scans a string literal.
// The resulting literal is the decoded string content (escape sequences are interpreted).
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	var b strings.Builder

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = b.String()
			s.tok = _Literal
			s.kind = StringLit
			return

		case s.ch == '\\':
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}

		case s.ch < 0:
			s.error("string not terminated")
			s.lit = b.String()
			s.tok = _Literal
			s.kind = StringLit
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// scanEscape scans an escape sequence and returns the decoded rune.
func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \

	var r rune
	switch s.ch {
	case 'n':
		r = '\n'
	case 't':
		r = '\t'
	case 'r':
		r = '\r'
	case '\\':
		r = '\\'
	case '"':
		r = '"'
	case '0':
		r = 0
	default:
		s.error(fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
		if s.ch >= 0 {
			s.nextch()
		}
		return 0, false
	}
	s.nextch()
	return r, true
}

// scanOperator scans an operator or delimiter.
// Returns true if nothing was produced (a comment or an invalid character
// was skipped) and the caller should rescan.
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.tok, s.lit = _Add, "+"
	case '-':
		if s.ch == '>' {
			s.nextch()
			s.tok, s.lit = _Arrow, "->"
		} else {
			s.tok, s.lit = _Sub, "-"
		}
	case '*':
		s.tok, s.lit = _Mul, "*"
	case '/':
		switch s.ch {
		case '/':
			s.skipLineComment()
			return true
		case '*':
			s.skipBlockComment()
			return true
		}
		s.tok, s.lit = _Div, "/"
	case '%':
		s.tok, s.lit = _Rem, "%"
	case '&':
		if s.ch != '&' {
			s.errorAt(s.tokPos, "unexpected character '&'")
			return true
		}
		s.nextch()
		s.tok, s.lit = _AndAnd, "&&"
	case '|':
		if s.ch != '|' {
			s.errorAt(s.tokPos, "unexpected character '|'")
			return true
		}
		s.nextch()
		s.tok, s.lit = _OrOr, "||"
	case '<':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Leq, "<="
		} else {
			s.tok, s.lit = _Lss, "<"
		}
	case '>':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Geq, ">="
		} else {
			s.tok, s.lit = _Gtr, ">"
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Eql, "=="
		} else {
			s.tok, s.lit = _Assign, "="
		}
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Neq, "!="
		} else {
			s.tok, s.lit = _Not, "!"
		}
	case ':':
		s.tok, s.lit = _Colon, ":"
	case '(':
		s.tok, s.lit = _Lparen, "("
	case ')':
		s.tok, s.lit = _Rparen, ")"
	case '{':
		s.tok, s.lit = _Lbrace, "{"
	case '}':
		s.tok, s.lit = _Rbrace, "}"
	case ',':
		s.tok, s.lit = _Comma, ","
	case ';':
		s.tok, s.lit = _Semi, ";"
	case '.':
		if s.ch != '.' {
			s.errorAt(s.tokPos, "unexpected character '.'")
			return true
		}
		s.nextch()
		s.tok, s.lit = _DotDot, ".."
	}

	return false
}

// errorAt reports a lexical error at pos rather than the current character.
func (s *Scanner) errorAt(pos Pos, msg string) {
	if s.errh != nil {
		s.errh(pos.Line(), pos.Col(), msg)
	}
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	// Already consumed the first /
	s.nextch()
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// skipBlockComment skips a /* ... */ comment. Block comments do not nest.
func (s *Scanner) skipBlockComment() {
	// Already consumed the /
	s.nextch()
	for s.ch >= 0 {
		if s.ch == '*' && s.peek() == '/' {
			s.nextch()
			s.nextch()
			return
		}
		s.nextch()
	}
	s.errorAt(s.tokPos, "comment not terminated")
}
