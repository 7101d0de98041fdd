// Package scan implements the token-level matchers used by the directive
// translator. Directives are parsed with a flat grammar: identifiers, star
// sequences, delimited groups and top-level comma splitting. There is no
// expression grammar here on purpose.
package scan

import (
	"fmt"
	"strings"
	"unicode"
)

// Location identifies an input line for diagnostics. Lines are 1-based.
type Location struct {
	Filename string
	Line     int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.Filename, l.Line)
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Indent returns the leading whitespace of line.
func Indent(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

// SplitTopLevel splits text on commas that are not nested inside
// parentheses, brackets, braces, string literals or character literals.
// Backslash escapes inside literals are honored. Pieces are trimmed of
// surrounding whitespace. All-whitespace input yields no pieces.
func SplitTopLevel(text string) []string {
	var pieces []string
	var depth int
	var quote rune // 0 when outside a literal, otherwise '"' or '\''
	escaped := false
	start := 0

	for i, r := range text {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				pieces = append(pieces, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}

	last := strings.TrimSpace(text[start:])
	if len(pieces) == 0 && last == "" {
		return nil
	}
	return append(pieces, last)
}

// Scanner is a cursor over a single directive body. All methods skip
// leading whitespace before matching.
type Scanner struct {
	src string
	pos int
}

func New(src string) *Scanner {
	return &Scanner{src: src}
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

// AtEnd reports whether only whitespace remains.
func (s *Scanner) AtEnd() bool {
	s.skipSpace()
	return s.pos >= len(s.src)
}

// Rest returns the unconsumed remainder of the input.
func (s *Scanner) Rest() string {
	return strings.TrimSpace(s.src[s.pos:])
}

// Ident matches an identifier.
func (s *Scanner) Ident() (string, bool) {
	s.skipSpace()
	start := s.pos
	for i, r := range s.src[start:] {
		if i == 0 {
			if !isIdentStart(r) {
				return "", false
			}
		} else if !isIdentChar(r) {
			break
		}
		s.pos = start + i + len(string(r))
	}
	if s.pos == start {
		return "", false
	}
	return s.src[start:s.pos], true
}

// Keyword consumes the given identifier if it appears next.
func (s *Scanner) Keyword(kw string) bool {
	save := s.pos
	ident, ok := s.Ident()
	if ok && ident == kw {
		return true
	}
	s.pos = save
	return false
}

// Stars counts and consumes a run of '*' characters, each optionally
// preceded by whitespace.
func (s *Scanner) Stars() int {
	count := 0
	for {
		s.skipSpace()
		if s.pos >= len(s.src) || s.src[s.pos] != '*' {
			return count
		}
		s.pos++
		count++
	}
}

// Consume matches a single literal character.
func (s *Scanner) Consume(ch byte) bool {
	s.skipSpace()
	if s.pos < len(s.src) && s.src[s.pos] == ch {
		s.pos++
		return true
	}
	return false
}

// Delimited matches a group opened by open and closed by the matching
// close character, honoring nesting and string/character literals, and
// returns the text between the delimiters.
func (s *Scanner) Delimited(open, close byte) (string, bool) {
	if !s.Consume(open) {
		return "", false
	}
	start := s.pos
	depth := 1
	var quote byte
	escaped := false
	for i := s.pos; i < len(s.src); i++ {
		c := s.src[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				s.pos = i + 1
				return s.src[start:i], true
			}
		}
	}
	return "", false
}
