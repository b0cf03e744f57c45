package highlight

import (
	"strings"

	"mako/buffer"

	"github.com/alecthomas/chroma/v2"
)

// chromaStrategy backs file types outside the built-in tokenizer set
// with a chroma lexer. Chroma lexers cannot resume from a mid-file
// context, so every pass lexes from the top of the document and the
// strategy consumes the whole remaining window; it carries no per-row
// context. That makes edits in big files cost a full relex, which is
// the accepted price of getting hundreds of languages for free.
type chromaStrategy struct {
	name  string
	lexer chroma.Lexer
}

func newChromaStrategy(lexer chroma.Lexer) Strategy {
	name := "Plain"
	if cfg := lexer.Config(); cfg != nil {
		name = cfg.Name
	}
	return &chromaStrategy{name: name, lexer: chroma.Coalesce(lexer)}
}

func (c *chromaStrategy) Name() string { return c.name }

func (c *chromaStrategy) Highlight(rows []*buffer.Row, start int) int {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(row.String())
	}

	tags := make([][]byte, len(rows))
	for i, row := range rows {
		tags[i] = make([]byte, row.Len())
	}

	if it, err := c.lexer.Tokenise(nil, sb.String()); err == nil {
		y, off := 0, 0
		for _, tok := range it.Tokens() {
			tag := chromaTag(tok.Type)
			for i, part := range strings.Split(tok.Value, "\n") {
				if i > 0 {
					y++
					off = 0
				}
				if y >= len(rows) {
					break
				}
				end := off + len(part)
				if end > len(tags[y]) {
					end = len(tags[y])
				}
				for j := off; j < end; j++ {
					tags[y][j] = tag
				}
				off += len(part)
			}
			if y >= len(rows) {
				break
			}
		}
	}

	for y := start; y < len(rows); y++ {
		rows[y].Tags = tags[y]
		rows[y].Context = ""
	}
	return len(rows) - start
}

func chromaTag(t chroma.TokenType) byte {
	switch {
	case t == chroma.Keyword || t == chroma.KeywordConstant ||
		t == chroma.KeywordDeclaration || t == chroma.KeywordNamespace ||
		t == chroma.KeywordReserved || t == chroma.KeywordPseudo ||
		t == chroma.NameBuiltin || t == chroma.OperatorWord:
		return TagKeyword

	case t == chroma.KeywordType || t == chroma.NameClass ||
		t == chroma.NameException || t == chroma.NameNamespace:
		return TagType

	case t == chroma.LiteralString || t == chroma.LiteralStringAffix ||
		t == chroma.LiteralStringBacktick || t == chroma.LiteralStringChar ||
		t == chroma.LiteralStringDouble || t == chroma.LiteralStringSingle ||
		t == chroma.LiteralStringHeredoc || t == chroma.LiteralStringInterpol ||
		t == chroma.LiteralStringOther || t == chroma.LiteralStringEscape:
		return TagString

	case t == chroma.LiteralStringRegex:
		return TagRegex

	case t == chroma.Comment || t == chroma.CommentMultiline ||
		t == chroma.CommentSingle || t == chroma.CommentSpecial ||
		t == chroma.CommentPreproc || t == chroma.CommentPreprocFile ||
		t == chroma.CommentHashbang:
		return TagComment

	case t == chroma.LiteralNumber || t == chroma.LiteralNumberBin ||
		t == chroma.LiteralNumberFloat || t == chroma.LiteralNumberHex ||
		t == chroma.LiteralNumberInteger || t == chroma.LiteralNumberIntegerLong ||
		t == chroma.LiteralNumberOct:
		return TagNumber

	case t == chroma.LiteralStringSymbol || t == chroma.NameVariableInstance ||
		t == chroma.NameVariableGlobal || t == chroma.NameConstant:
		return TagSymbol

	case t == chroma.NameDecorator || t == chroma.NameAttribute:
		return TagAttribute

	default:
		return TagDefault
	}
}
