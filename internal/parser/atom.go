package parser

import (
	"fmt"
	"strings"
)

// SyntaxError reports the byte offset where parsing stopped and what the
// parser expected to find there. No partial parse tree accompanies it.
type SyntaxError struct {
	Offset   int
	Expected string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: expected %s", e.Offset, e.Expected)
}

// scanner is a cursor over the query string. Productions consume input
// through it and report failures at the current offset.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) errf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: s.pos, Expected: fmt.Sprintf(format, args...)}
}

func (s *scanner) eof() bool { return s.pos >= len(s.input) }

// peek returns the byte at the cursor without consuming it, or 0 at EOF.
func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) expect(c byte) error {
	if s.eof() || s.input[s.pos] != c {
		return s.errf("%q", string(c))
	}
	s.pos++
	return nil
}

// space0 skips zero or more spaces and tabs.
func (s *scanner) space0() {
	for !s.eof() && (s.input[s.pos] == ' ' || s.input[s.pos] == '\t') {
		s.pos++
	}
}

// text scans a double-quoted literal, which may be empty. Backslash escapes
// backslash and double-quote only; any other byte after a backslash is a
// syntax error.
func (s *scanner) text() (string, error) {
	if err := s.expect('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		if s.eof() {
			return "", s.errf(`'"'`)
		}
		switch c := s.input[s.pos]; c {
		case '"':
			s.pos++
			return b.String(), nil
		case '\\':
			s.pos++
			if s.eof() || (s.input[s.pos] != '\\' && s.input[s.pos] != '"') {
				return "", s.errf(`'\' or '"' after escape`)
			}
			b.WriteByte(s.input[s.pos])
			s.pos++
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
}

// array scans a bracketed, comma-separated list of text literals. The list
// may be empty; spaces and tabs are allowed around every delimiter.
func (s *scanner) array() ([]string, error) {
	if err := s.expect('['); err != nil {
		return nil, err
	}
	s.space0()
	if s.peek() == ']' {
		s.pos++
		return []string{}, nil
	}
	var items []string
	for {
		item, err := s.text()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		s.space0()
		switch s.peek() {
		case ',':
			s.pos++
			s.space0()
		case ']':
			s.pos++
			return items, nil
		default:
			return nil, s.errf("',' or ']'")
		}
	}
}
