package highlight

import (
	"path/filepath"
	"strings"

	"mako/buffer"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Style tags, one per content byte.
const (
	TagDefault byte = iota
	TagKeyword
	TagType
	TagNumber
	TagString
	TagRegex
	TagComment
	TagSymbol
	TagAttribute
	TagLifetime
)

// Strategy is one tokenizer. Highlight re-tokenizes rows[start:] until
// the carried lexical context stabilizes and returns how many rows it
// consumed. Adding a language means adding a Strategy, nothing else.
type Strategy interface {
	Name() string
	Highlight(rows []*buffer.Row, start int) int
}

// ForFile selects the strategy for a file name, once per open or save.
func ForFile(name string) Strategy {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".rs":
		return Rust()
	case ".rb":
		return Ruby()
	}
	if name != "" {
		if lexer := lexers.Match(filepath.Base(name)); lexer != nil {
			return newChromaStrategy(lexer)
		}
	}
	return Plain()
}

// rowTokenizer tokenizes a single row seeded with the context entering
// it, yielding per-byte tags, the context for the next row, and the
// auxiliary indent value.
type rowTokenizer interface {
	tokenizeRow(ctx, content string) (tags []byte, next string, indent int)
}

// propagate runs a row tokenizer from the edited row downward. After
// each row it compares the computed context for the next row with the
// stored one: when they match and the row's tags are still valid, every
// row below is provably unaffected and the pass stops. Toggling a
// multi-row construct near the top of a large file legitimately rescans
// the rest of it.
func propagate(rows []*buffer.Row, start int, tok rowTokenizer) int {
	y := start
	for y < len(rows) {
		row := rows[y]
		tags, next, indent := tok.tokenizeRow(row.Context, row.String())
		row.Tags = tags
		row.Indent = indent
		y++
		if y == len(rows) {
			break
		}
		if rows[y].Context == next && rows[y].Tags != nil {
			break
		}
		rows[y].Context = next
	}
	return y - start
}

// Plain is the no-op strategy: default tag everywhere, empty context.
func Plain() Strategy { return plainStrategy{} }

type plainStrategy struct{}

func (plainStrategy) Name() string { return "Plain" }

func (plainStrategy) Highlight(rows []*buffer.Row, start int) int {
	return propagate(rows, start, plainStrategy{})
}

func (plainStrategy) tokenizeRow(ctx, content string) ([]byte, string, int) {
	return make([]byte, len(content)), "", 0
}
