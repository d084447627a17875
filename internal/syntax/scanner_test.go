package syntax

import (
	"strings"
	"testing"
)

// scanAll returns every token of src up to (not including) EOF.
func scanAll(src string, errh func(line, col uint32, msg string)) (toks []Token, lits []string) {
	s := NewScanner("test.rs", strings.NewReader(src), errh)
	for {
		s.Next()
		if s.Token() == _EOF {
			return
		}
		toks = append(toks, s.Token())
		lits = append(lits, s.Literal())
	}
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		// Identifiers
		{"ident", "foo", []Token{_Name}, []string{"foo"}},
		{"ident_underscore", "_bar", []Token{_Name}, []string{"_bar"}},
		{"ident_mixed", "result1", []Token{_Name}, []string{"result1"}},
		{"macro_name", "println", []Token{_Name}, []string{"println"}},

		// Keywords, including type names
		{"kw_fn", "fn", []Token{_Fn}, []string{"fn"}},
		{"kw_let_mut", "let mut", []Token{_Let, _Mut}, []string{"let", "mut"}},
		{"kw_types", "i32 bool", []Token{_I32, _Bool}, []string{"i32", "bool"}},
		{"kw_bools", "true false", []Token{_True, _False}, []string{"true", "false"}},
		{"kw_loops", "while for in loop", []Token{_While, _For, _In, _Loop}, []string{"while", "for", "in", "loop"}},

		// Integer literals
		{"int", "123", []Token{_Literal}, []string{"123"}},
		{"int_zero", "0", []Token{_Literal}, []string{"0"}},
		{"int_big", "99999999999", []Token{_Literal}, []string{"99999999999"}},

		// String literals (decoded content)
		{"string_simple", `"hello"`, []Token{_Literal}, []string{"hello"}},
		{"string_empty", `""`, []Token{_Literal}, []string{""}},
		{"string_placeholder", `"{}"`, []Token{_Literal}, []string{"{}"}},
		{"string_escape_n", `"a\nb"`, []Token{_Literal}, []string{"a\nb"}},
		{"string_escape_quote", `"a\"b"`, []Token{_Literal}, []string{"a\"b"}},
		{"string_escape_zero", `"a\0b"`, []Token{_Literal}, []string{"a\x00b"}},

		// Operators
		{"op_arith", "+ - * / %", []Token{_Add, _Sub, _Mul, _Div, _Rem}, []string{"+", "-", "*", "/", "%"}},
		{"op_cmp", "== != < <= > >=", []Token{_Eql, _Neq, _Lss, _Leq, _Gtr, _Geq}, []string{"==", "!=", "<", "<=", ">", ">="}},
		{"op_logic", "&& || !", []Token{_AndAnd, _OrOr, _Not}, []string{"&&", "||", "!"}},
		{"op_assign", "=", []Token{_Assign}, []string{"="}},

		// Delimiters
		{"arrow", "->", []Token{_Arrow}, []string{"->"}},
		{"range", "0..10", []Token{_Literal, _DotDot, _Literal}, []string{"0", "..", "10"}},
		{"parens", "()", []Token{_Lparen, _Rparen}, []string{"(", ")"}},
		{"braces", "{}", []Token{_Lbrace, _Rbrace}, []string{"{", "}"}},
		{"punct", ", ; :", []Token{_Comma, _Semi, _Colon}, []string{",", ";", ":"}},

		// Newlines are plain whitespace
		{"newlines", "a\n\nb\n", []Token{_Name, _Name}, []string{"a", "b"}},

		// Comments
		{"line_comment", "a // c\nb", []Token{_Name, _Name}, []string{"a", "b"}},
		{"block_comment", "a /* c\n d */ b", []Token{_Name, _Name}, []string{"a", "b"}},
		{"comment_utf8", "// 测试\nx", []Token{_Name}, []string{"x"}},
		{"div_not_comment", "a / b", []Token{_Name, _Div, _Name}, []string{"a", "/", "b"}},

		// Macro invocation
		{"macro", `println!("{}", c)`,
			[]Token{_Name, _Not, _Lparen, _Literal, _Comma, _Name, _Rparen},
			[]string{"println", "!", "(", "{}", ",", "c", ")"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs []string
			toks, lits := scanAll(tt.src, func(line, col uint32, msg string) {
				errs = append(errs, msg)
			})
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(toks) != len(tt.tokens) {
				t.Fatalf("got %d tokens %v, want %d %v", len(toks), toks, len(tt.tokens), tt.tokens)
			}
			for i := range toks {
				if toks[i] != tt.tokens[i] {
					t.Errorf("token[%d] = %s, want %s", i, toks[i], tt.tokens[i])
				}
				if lits[i] != tt.lits[i] {
					t.Errorf("lit[%d] = %q, want %q", i, lits[i], tt.lits[i])
				}
			}
		})
	}
}

func TestScanLitKind(t *testing.T) {
	tests := []struct {
		src  string
		kind LitKind
	}{
		{"42", IntLit},
		{`"s"`, StringLit},
	}
	for _, tt := range tests {
		s := NewScanner("test.rs", strings.NewReader(tt.src), nil)
		s.Next()
		if s.Token() != _Literal || s.LitKind() != tt.kind {
			t.Errorf("%s: got %s/%s, want LITERAL/%s", tt.src, s.Token(), s.LitKind(), tt.kind)
		}
	}
}

func TestScanPositions(t *testing.T) {
	src := "fn main() {\n    let x = 1;\n}"
	s := NewScanner("test.rs", strings.NewReader(src), nil)

	want := []struct {
		tok       Token
		line, col uint32
	}{
		{_Fn, 1, 1},
		{_Name, 1, 4},
		{_Lparen, 1, 8},
		{_Rparen, 1, 9},
		{_Lbrace, 1, 11},
		{_Let, 2, 5},
		{_Name, 2, 9},
		{_Assign, 2, 11},
		{_Literal, 2, 13},
		{_Semi, 2, 14},
		{_Rbrace, 3, 1},
		{_EOF, 3, 2},
	}

	for i, w := range want {
		s.Next()
		if s.Token() != w.tok {
			t.Fatalf("token %d = %s, want %s", i, s.Token(), w.tok)
		}
		if p := s.Pos(); p.Line() != w.line || p.Col() != w.col {
			t.Errorf("token %d (%s) at %d:%d, want %d:%d", i, w.tok, p.Line(), p.Col(), w.line, w.col)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
		line    uint32
		col     uint32
	}{
		{"bad_char", "a @ b", "unexpected character '@'", 1, 3},
		{"single_amp", "a & b", "unexpected character '&'", 1, 3},
		{"single_pipe", "a | b", "unexpected character '|'", 1, 3},
		{"single_dot", "a . b", "unexpected character '.'", 1, 3},
		{"unterminated_string", `"abc`, "string not terminated", 1, 5},
		{"unterminated_comment", "a /* b", "comment not terminated", 1, 3},
		{"bad_escape", `"\q"`, `unknown escape sequence: \q`, 1, 3},
		{"number_suffix", "12ab", "invalid character 'a' in number literal", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			type scanErr struct {
				line, col uint32
				msg       string
			}
			var errs []scanErr
			scanAll(tt.src, func(line, col uint32, msg string) {
				errs = append(errs, scanErr{line, col, msg})
			})
			if len(errs) == 0 {
				t.Fatalf("expected error %q", tt.wantMsg)
			}
			e := errs[0]
			if !strings.Contains(e.msg, tt.wantMsg) {
				t.Errorf("error = %q, want %q", e.msg, tt.wantMsg)
			}
			if e.line != tt.line || e.col != tt.col {
				t.Errorf("error at %d:%d, want %d:%d", e.line, e.col, tt.line, tt.col)
			}
		})
	}
}

func TestScanRecoversAfterError(t *testing.T) {
	toks, _ := scanAll("a @ b", nil)
	if len(toks) != 2 || toks[0] != _Name || toks[1] != _Name {
		t.Errorf("tokens = %v, want [NAME NAME]", toks)
	}
}
