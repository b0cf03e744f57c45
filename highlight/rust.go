package highlight

import (
	"strconv"
	"strings"

	"mako/buffer"
)

var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "crate": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true,
}

var rustTypes = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true,
	"isize": true, "u8": true, "u16": true, "u32": true, "u64": true,
	"u128": true, "usize": true, "f32": true, "f64": true, "bool": true,
	"char": true, "str": true,
}

// Rust context values: "" for nothing open, "c<depth>" inside a nested
// block comment, "s" inside a string literal, "r<hashes>" inside a raw
// string with that many delimiter hashes.
type rustCtx struct {
	commentDepth int
	inString     bool
	rawHashes    int // -1 when not in a raw string; 0 means r"..."
}

func parseRustCtx(ctx string) rustCtx {
	c := rustCtx{rawHashes: -1}
	switch {
	case ctx == "":
	case ctx == "s":
		c.inString = true
	case strings.HasPrefix(ctx, "c"):
		c.commentDepth, _ = strconv.Atoi(ctx[1:])
	case strings.HasPrefix(ctx, "r"):
		c.rawHashes, _ = strconv.Atoi(ctx[1:])
	}
	return c
}

func (c rustCtx) String() string {
	switch {
	case c.commentDepth > 0:
		return "c" + strconv.Itoa(c.commentDepth)
	case c.inString:
		return "s"
	case c.rawHashes >= 0:
		return "r" + strconv.Itoa(c.rawHashes)
	}
	return ""
}

// Rust is the built-in tokenizer for the brace-language side of the
// house: nested block comments, raw strings with hash-counted closers,
// lifetimes, attributes, and a bracket-depth indent hint.
func Rust() Strategy { return rustStrategy{} }

type rustStrategy struct{}

func (rustStrategy) Name() string { return "Rust" }

func (rustStrategy) Highlight(rows []*buffer.Row, start int) int {
	return propagate(rows, start, rustStrategy{})
}

func (rustStrategy) tokenizeRow(ctx, content string) ([]byte, string, int) {
	s := newScanner(content)
	c := parseRustCtx(ctx)
	indent := 0

	// Finish whatever the previous rows left open.
	if c.commentDepth > 0 {
		c.commentDepth = scanRustBlockComment(s, c.commentDepth)
	} else if c.inString {
		c.inString = !scanRustString(s)
	} else if c.rawHashes >= 0 {
		if scanRustRawString(s, c.rawHashes) {
			c.rawHashes = -1
		}
	}

	for !s.done() {
		ch := s.peek()
		switch {
		case s.hasPrefix("//"):
			s.emit(len(s.rest()), TagComment)
		case s.hasPrefix("/*"):
			s.emit(2, TagComment)
			c.commentDepth = scanRustBlockComment(s, 1)
		case ch == 'r' && rustRawStringAhead(s):
			hashes := 0
			for s.peekAt(1+hashes) == '#' {
				hashes++
			}
			s.emit(1+hashes+1, TagString) // r, hashes, opening quote
			if !scanRustRawString(s, hashes) {
				c.rawHashes = hashes
			}
		case ch == '"':
			s.emit(1, TagString)
			c.inString = !scanRustString(s)
		case ch == '\'':
			scanRustQuote(s)
		case ch == '#' && (s.peekAt(1) == '[' || (s.peekAt(1) == '!' && s.peekAt(2) == '[')):
			scanRustAttribute(s)
		case isDigit(ch):
			s.emitWhile(TagNumber, isNumberByte)
		case isIdentStart(ch):
			start := s.pos
			s.emitWhile(TagDefault, isIdentByte)
			word := s.src[start:s.pos]
			tag := TagDefault
			switch {
			case rustKeywords[word]:
				tag = TagKeyword
			case rustTypes[word] || (word[0] >= 'A' && word[0] <= 'Z'):
				tag = TagType
			}
			if tag != TagDefault {
				for i := start; i < s.pos; i++ {
					s.tags[i] = tag
				}
			}
		default:
			if ch == '{' || ch == '[' || ch == '(' {
				indent++
			} else if ch == '}' || ch == ']' || ch == ')' {
				indent--
			}
			s.emit(1, TagDefault)
		}
	}
	return s.tags, c.String(), indent
}

// rustRawStringAhead reports whether the scanner sits on r"..." or
// r#"..."# (any hash count).
func rustRawStringAhead(s *scanner) bool {
	i := 1
	for s.peekAt(i) == '#' {
		i++
	}
	return s.peekAt(i) == '"'
}

// scanRustBlockComment consumes comment bytes tracking nesting depth.
// Returns the depth still open at end of row (0 when the comment
// closed).
func scanRustBlockComment(s *scanner, depth int) int {
	for !s.done() && depth > 0 {
		switch {
		case s.hasPrefix("/*"):
			depth++
			s.emit(2, TagComment)
		case s.hasPrefix("*/"):
			depth--
			s.emit(2, TagComment)
		default:
			s.emit(1, TagComment)
		}
	}
	return depth
}

// scanRustString consumes string bytes after the opening quote,
// honoring backslash escapes. Reports whether the closing quote was
// found on this row.
func scanRustString(s *scanner) bool {
	for !s.done() {
		switch s.peek() {
		case '\\':
			s.emit(2, TagString)
		case '"':
			s.emit(1, TagString)
			return true
		default:
			s.emit(1, TagString)
		}
	}
	return false
}

// scanRustRawString consumes raw-string bytes until a quote followed by
// the required number of hashes. Reports whether it closed on this row.
func scanRustRawString(s *scanner, hashes int) bool {
	for !s.done() {
		if s.peek() == '"' {
			ok := true
			for i := 1; i <= hashes; i++ {
				if s.peekAt(i) != '#' {
					ok = false
					break
				}
			}
			if ok {
				s.emit(1+hashes, TagString)
				return true
			}
		}
		s.emit(1, TagString)
	}
	return false
}

// scanRustQuote distinguishes a lifetime from a char literal: a quote
// followed by identifier characters with no closing quote is a
// lifetime.
func scanRustQuote(s *scanner) {
	i := 1
	for isIdentByte(s.peekAt(i)) {
		i++
	}
	if i > 1 && s.peekAt(i) != '\'' {
		s.emit(i, TagLifetime)
		return
	}
	// Char literal: quote, optionally escaped payload, closing quote.
	s.emit(1, TagString)
	for !s.done() {
		switch s.peek() {
		case '\\':
			s.emit(2, TagString)
		case '\'':
			s.emit(1, TagString)
			return
		default:
			s.emit(1, TagString)
		}
	}
}

// scanRustAttribute consumes #[...] or #![...] through the matching
// bracket, or to end of row when unbalanced.
func scanRustAttribute(s *scanner) {
	depth := 0
	for !s.done() {
		switch s.peek() {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				s.emit(1, TagAttribute)
				return
			}
		}
		s.emit(1, TagAttribute)
	}
}
