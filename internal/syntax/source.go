package syntax

import (
	"io"
	"unicode/utf8"
)

// source is a character reader with position tracking.
// It reads a UTF-8 encoded program and provides character-by-character access.
type source struct {
	buf []byte // entire program

	filename string
	line     uint32 // current line number (1-based)
	col      uint32 // current column number (1-based, in runes)

	ch   rune // current character, -1 for EOF
	offs int  // byte offset of the next character in buf

	errh func(line, col uint32, msg string)
}

// newSource creates a new source from an io.Reader.
// The errh function is called for each error; if nil, errors are silently ignored.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{
		filename: filename,
		line:     1,
		col:      0,  // incremented to 1 by the first nextch
		ch:       -1, // sentinel: before first char
		errh:     errh,
	}

	var err error
	s.buf, err = io.ReadAll(src)
	if err != nil {
		s.error("error reading source: " + err.Error())
		s.ch = -1
		return s
	}

	s.nextch()
	return s
}

// nextch reads the next character and updates the position.
// (line, col) always refers to s.ch after nextch returns.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}

	s.ch = r
	s.offs += width
}

// peek returns the character after s.ch without consuming anything.
func (s *source) peek() rune {
	if s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.offs:])
	return r
}

// pos returns the position of the current character.
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// error reports a lexical error at the current position.
func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

// isLetter reports whether r can start an identifier.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is skipped between tokens.
// Newlines carry no meaning in this grammar.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// isOperatorStart reports whether r can start an operator or delimiter.
func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '&', '|', '<', '>', '=', '!', ':',
		'(', ')', '{', '}', ',', ';', '.':
		return true
	}
	return false
}
