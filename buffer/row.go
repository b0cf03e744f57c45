package buffer

import (
	"strings"
	"unicode/utf8"
)

// Row owns one line of content together with everything derived from it:
// the column index, the per-byte style tags, and the lexical context the
// highlighter carries in from the rows above. Every mutation rebuilds
// the index and drops the tags so the next highlight pass recomputes
// them.
type Row struct {
	content  string
	idx      PosIndex
	tabWidth int

	// Tags holds one style tag per content byte, or nil when the row
	// needs re-highlighting.
	Tags []byte

	// Context is the highlighter state entering this row: an opaque,
	// comparable serialization of the multi-row constructs still open.
	Context string

	// Indent is an auxiliary per-row value some strategies maintain
	// (bracket nesting depth for brace languages).
	Indent int
}

func NewRow(content string, tabWidth int) *Row {
	r := &Row{content: content, tabWidth: tabWidth}
	r.idx.Rebuild(content, tabWidth)
	return r
}

func (r *Row) String() string { return r.content }
func (r *Row) Len() int       { return len(r.content) }
func (r *Row) MaxX() int      { return r.idx.MaxX() }

// ByteOffset maps a column to its byte offset; tombstone columns resolve
// to the owning glyph.
func (r *Row) ByteOffset(x int) int { return r.idx.Get(x) }

func (r *Row) IsTombstone(x int) bool { return r.idx.IsTombstone(x) }
func (r *Row) PrevValid(x int) int    { return r.idx.PrevValid(x) }
func (r *Row) NextValid(x int) int    { return r.idx.NextValid(x) }

func (r *Row) NearestValidNotExceeding(x int) int { return r.idx.NearestValidNotExceeding(x) }
func (r *Row) NearestValidExceeding(x int) int    { return r.idx.NearestValidExceeding(x) }

// XAt returns the leading column of the glyph starting at byte offset
// off, or MaxX() when off is the row's byte length.
func (r *Row) XAt(off int) int {
	for x := 0; x <= r.idx.MaxX(); x++ {
		if r.idx.Get(x) == off && !r.idx.IsTombstone(x) {
			return x
		}
	}
	return r.idx.MaxX()
}

// Slice returns the content between two columns, x1 inclusive to x2
// exclusive.
func (r *Row) Slice(x1, x2 int) string {
	return r.content[r.idx.Get(x1):r.idx.Get(x2)]
}

// FirstLetterX returns the column of the first non-blank character, or
// MaxX() when the row is blank. Home-key and auto-indent behavior key
// off this.
func (r *Row) FirstLetterX() int {
	x := 0
	for off := 0; off < len(r.content); {
		c, size := utf8.DecodeRuneInString(r.content[off:])
		if c != ' ' && c != '\t' {
			return x
		}
		x = r.idx.NextValid(x + 1)
		off += size
	}
	return r.idx.MaxX()
}

func (r *Row) InsertStr(x int, s string) {
	off := r.idx.Get(x)
	r.setContent(r.content[:off] + s + r.content[off:])
}

// RemoveStr deletes the content between columns x1 and x2 and returns
// the removed text.
func (r *Row) RemoveStr(x1, x2 int) string {
	o1, o2 := r.idx.Get(x1), r.idx.Get(x2)
	removed := r.content[o1:o2]
	r.setContent(r.content[:o1] + r.content[o2:])
	return removed
}

// SplitOff truncates the row at column x and returns the tail.
func (r *Row) SplitOff(x int) string {
	off := r.idx.Get(x)
	tail := r.content[off:]
	r.setContent(r.content[:off])
	return tail
}

func (r *Row) PushStr(s string) {
	if s == "" {
		return
	}
	r.setContent(r.content + s)
}

func (r *Row) Truncate(x int) {
	r.setContent(r.content[:r.idx.Get(x)])
}

func (r *Row) Clear() {
	r.setContent("")
}

func (r *Row) setContent(content string) {
	if strings.ContainsRune(content, '\n') {
		panic("buffer: row content must not contain a line break")
	}
	r.content = content
	r.idx.Rebuild(content, r.tabWidth)
	r.Tags = nil
}
