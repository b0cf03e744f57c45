package highlight

import "strings"

// scanner walks one row of content tagging bytes as it goes. It is
// byte-oriented: multi-byte runes fall through as identifier-ish bytes
// and receive the tag of the token they sit in.
type scanner struct {
	src  string
	tags []byte
	pos  int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, tags: make([]byte, len(src))}
}

func (s *scanner) done() bool   { return s.pos >= len(s.src) }
func (s *scanner) rest() string { return s.src[s.pos:] }

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(i int) byte {
	if s.pos+i >= len(s.src) {
		return 0
	}
	return s.src[s.pos+i]
}

func (s *scanner) hasPrefix(p string) bool {
	return strings.HasPrefix(s.rest(), p)
}

// emit tags the next n bytes and advances past them.
func (s *scanner) emit(n int, tag byte) {
	if s.pos+n > len(s.src) {
		n = len(s.src) - s.pos
	}
	for i := 0; i < n; i++ {
		s.tags[s.pos+i] = tag
	}
	s.pos += n
}

// emitWhile tags bytes for as long as pred holds and returns the count.
func (s *scanner) emitWhile(tag byte, pred func(byte) bool) int {
	n := 0
	for !s.done() && pred(s.peek()) {
		s.tags[s.pos] = tag
		s.pos++
		n++
	}
	return n
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c >= 0x80
}

func isIdentByte(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '_' || c == '.' ||
		('a' <= c && c <= 'f') || ('A' <= c && c <= 'F') ||
		c == 'x' || c == 'o' || c == 'X' || c == 'O'
}
