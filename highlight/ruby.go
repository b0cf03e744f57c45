package highlight

import (
	"strconv"
	"strings"

	"mako/buffer"
)

var rubyKeywords = map[string]bool{
	"alias": true, "and": true, "begin": true, "break": true, "case": true,
	"class": true, "def": true, "defined?": true, "do": true, "else": true,
	"elsif": true, "end": true, "ensure": true, "false": true, "for": true,
	"if": true, "in": true, "module": true, "next": true, "nil": true,
	"not": true, "or": true, "redo": true, "rescue": true, "retry": true,
	"return": true, "self": true, "super": true, "then": true, "true": true,
	"undef": true, "unless": true, "until": true, "when": true,
	"while": true, "yield": true, "require": true, "require_relative": true,
	"raise": true, "attr_accessor": true, "attr_reader": true,
	"attr_writer": true, "lambda": true, "proc": true,
}

var rubyPercentCloser = map[byte]byte{
	'(': ')', '[': ']', '{': '}', '<': '>',
}

// Ruby context values: "" for nothing open, "c" inside an =begin/=end
// block, "s<q>" inside a string opened with quote q, and
// "p<kind><closer><depth>" inside a percent literal (kind s/r/y for
// string, regex, symbol; depth counts unbalanced paired delimiters).
type rubyCtx struct {
	inComment bool
	strQuote  byte // 0 when not in a string
	pctTag    byte // TagDefault when not in a percent literal
	pctCloser byte
	pctDepth  int
}

func parseRubyCtx(ctx string) rubyCtx {
	var c rubyCtx
	switch {
	case ctx == "":
	case ctx == "c":
		c.inComment = true
	case strings.HasPrefix(ctx, "s") && len(ctx) == 2:
		c.strQuote = ctx[1]
	case strings.HasPrefix(ctx, "p") && len(ctx) >= 4:
		switch ctx[1] {
		case 'r':
			c.pctTag = TagRegex
		case 'y':
			c.pctTag = TagSymbol
		default:
			c.pctTag = TagString
		}
		c.pctCloser = ctx[2]
		c.pctDepth, _ = strconv.Atoi(ctx[3:])
	}
	return c
}

func (c rubyCtx) String() string {
	switch {
	case c.inComment:
		return "c"
	case c.strQuote != 0:
		return "s" + string(c.strQuote)
	case c.pctTag != TagDefault:
		kind := byte('s')
		switch c.pctTag {
		case TagRegex:
			kind = 'r'
		case TagSymbol:
			kind = 'y'
		}
		return "p" + string(kind) + string(c.pctCloser) + strconv.Itoa(c.pctDepth)
	}
	return ""
}

// Ruby is the built-in tokenizer for the scripting-language side:
// percent literals with arbitrary delimiters, regex-vs-division
// disambiguation off the previous token, symbols, and =begin blocks.
func Ruby() Strategy { return rubyStrategy{} }

type rubyStrategy struct{}

func (rubyStrategy) Name() string { return "Ruby" }

func (rubyStrategy) Highlight(rows []*buffer.Row, start int) int {
	return propagate(rows, start, rubyStrategy{})
}

func (rubyStrategy) tokenizeRow(ctx, content string) ([]byte, string, int) {
	s := newScanner(content)
	c := parseRubyCtx(ctx)

	if c.inComment {
		s.emit(len(content), TagComment)
		if strings.HasPrefix(content, "=end") {
			c.inComment = false
		}
		return s.tags, c.String(), 0
	}
	if c.strQuote != 0 {
		if scanRubyString(s, c.strQuote, TagString) {
			c.strQuote = 0
		}
	} else if c.pctTag != TagDefault {
		c.pctDepth = scanRubyPercent(s, c.pctTag, c.pctCloser, c.pctDepth)
		if c.pctDepth == 0 {
			c.pctTag = TagDefault
		}
	}

	// valueEnd tracks whether the previous token can end an expression;
	// it decides whether / and % open a literal or act as operators.
	// The rule is total: every byte leaves valueEnd in a known state.
	valueEnd := false

	for !s.done() {
		ch := s.peek()
		switch {
		case ch == ' ' || ch == '\t':
			s.emit(1, TagDefault)
		case s.pos == 0 && s.hasPrefix("=begin"):
			s.emit(len(s.rest()), TagComment)
			c.inComment = true
		case ch == '#':
			s.emit(len(s.rest()), TagComment)
		case ch == '"' || ch == '\'' || ch == '`':
			s.emit(1, TagString)
			if !scanRubyString(s, ch, TagString) {
				c.strQuote = ch
			}
			valueEnd = true
		case ch == ':' && isIdentStart(s.peekAt(1)):
			s.emit(1, TagSymbol)
			s.emitWhile(TagSymbol, isIdentByte)
			valueEnd = true
		case ch == ':' && s.peekAt(1) == '"':
			s.emit(2, TagSymbol)
			scanRubyString(s, '"', TagSymbol)
			valueEnd = true
		case ch == '@' || ch == '$':
			if ch == '@' && s.peekAt(1) == '@' {
				s.emit(2, TagSymbol)
			} else {
				s.emit(1, TagSymbol)
			}
			s.emitWhile(TagSymbol, isIdentByte)
			valueEnd = true
		case ch == '%' && !valueEnd && rubyPercentAhead(s):
			tag, closer := rubyPercentOpen(s)
			c.pctDepth = scanRubyPercent(s, tag, closer, 1)
			if c.pctDepth > 0 {
				c.pctTag = tag
				c.pctCloser = closer
			}
			valueEnd = true
		case ch == '/' && !valueEnd:
			s.emit(1, TagRegex)
			scanRubyRegex(s)
			valueEnd = true
		case isDigit(ch):
			s.emitWhile(TagNumber, isNumberByte)
			valueEnd = true
		case isIdentStart(ch):
			start := s.pos
			s.emitWhile(TagDefault, isIdentByte)
			if s.peek() == '?' || s.peek() == '!' {
				s.emit(1, TagDefault)
			}
			word := s.src[start:s.pos]
			switch {
			case rubyKeywords[word]:
				for i := start; i < s.pos; i++ {
					s.tags[i] = TagKeyword
				}
				valueEnd = word == "end" || word == "self" ||
					word == "nil" || word == "true" || word == "false"
			case word[0] >= 'A' && word[0] <= 'Z':
				for i := start; i < s.pos; i++ {
					s.tags[i] = TagType
				}
				valueEnd = true
			default:
				valueEnd = true
			}
		default:
			s.emit(1, TagDefault)
			valueEnd = ch == ')' || ch == ']'
		}
	}
	return s.tags, c.String(), 0
}

// scanRubyString consumes bytes up to the closing quote, honoring
// backslash escapes. Reports whether it closed on this row.
func scanRubyString(s *scanner, quote byte, tag byte) bool {
	for !s.done() {
		switch s.peek() {
		case '\\':
			s.emit(2, tag)
		case quote:
			s.emit(1, tag)
			return true
		default:
			s.emit(1, tag)
		}
	}
	return false
}

// rubyPercentAhead reports whether % starts a percent literal: an
// optional kind letter followed by a punctuation delimiter.
func rubyPercentAhead(s *scanner) bool {
	i := 1
	switch s.peekAt(1) {
	case 'q', 'Q', 'w', 'W', 'i', 'I', 'r', 's', 'x':
		i = 2
	}
	d := s.peekAt(i)
	return d != 0 && d != ' ' && d != '\t' && d != '=' && !isIdentByte(d)
}

// rubyPercentOpen consumes the opener (%, kind letter, delimiter) and
// returns the literal's tag and closing delimiter.
func rubyPercentOpen(s *scanner) (tag byte, closer byte) {
	tag = TagString
	i := 1
	switch s.peekAt(1) {
	case 'r':
		tag = TagRegex
		i = 2
	case 's':
		tag = TagSymbol
		i = 2
	case 'q', 'Q', 'w', 'W', 'i', 'I', 'x':
		i = 2
	}
	open := s.peekAt(i)
	closer = open
	if paired, ok := rubyPercentCloser[open]; ok {
		closer = paired
	}
	s.emit(i+1, tag)
	return tag, closer
}

// scanRubyPercent consumes percent-literal bytes tracking nesting of
// paired delimiters. Returns the depth still open at end of row.
func scanRubyPercent(s *scanner, tag, closer byte, depth int) int {
	opener := byte(0)
	for o, c := range rubyPercentCloser {
		if c == closer {
			opener = o
		}
	}
	for !s.done() && depth > 0 {
		switch s.peek() {
		case '\\':
			s.emit(2, tag)
		case closer:
			depth--
			s.emit(1, tag)
		case opener:
			depth++
			s.emit(1, tag)
		default:
			s.emit(1, tag)
		}
	}
	return depth
}

// scanRubyRegex consumes bytes after the opening slash through the
// closing slash and trailing flags. An unterminated regex runs to end
// of row.
func scanRubyRegex(s *scanner) {
	for !s.done() {
		switch s.peek() {
		case '\\':
			s.emit(2, TagRegex)
		case '/':
			s.emit(1, TagRegex)
			s.emitWhile(TagRegex, func(c byte) bool {
				return c == 'i' || c == 'm' || c == 'x' || c == 'o'
			})
			return
		default:
			s.emit(1, TagRegex)
		}
	}
}
