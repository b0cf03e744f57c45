package buffer

import (
	"fmt"
	"strings"
)

// Document is the ordered row sequence. It is never empty; the final row
// carries no implicit trailing line break. Rows are created and
// destroyed only through InsertText and RemoveText so the row slice,
// each row's index, and the highlight state never drift apart.
type Document struct {
	rows     []*Row
	tabWidth int
}

func NewDocument(tabWidth int) *Document {
	return &Document{
		rows:     []*Row{NewRow("", tabWidth)},
		tabWidth: tabWidth,
	}
}

// FromLines builds a document from newline-split file content. An empty
// slice still yields the mandatory single empty row; a file that ended
// in a line break arrives here with a trailing empty line and keeps it
// as a trailing empty row.
func FromLines(lines []string, tabWidth int) *Document {
	if len(lines) == 0 {
		return NewDocument(tabWidth)
	}
	rows := make([]*Row, len(lines))
	for i, line := range lines {
		rows[i] = NewRow(line, tabWidth)
	}
	return &Document{rows: rows, tabWidth: tabWidth}
}

func (d *Document) RowCount() int  { return len(d.rows) }
func (d *Document) Row(y int) *Row { return d.rows[y] }
func (d *Document) Rows() []*Row   { return d.rows }
func (d *Document) TabWidth() int  { return d.tabWidth }

// LastPos is the position one past the final glyph of the final row.
func (d *Document) LastPos() Position {
	y := len(d.rows) - 1
	return Pos(d.rows[y].MaxX(), y)
}

// Join serializes the document for saving: rows joined by line breaks,
// nothing appended beyond what the rows represent.
func (d *Document) Join() string {
	var sb strings.Builder
	for i, row := range d.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(row.String())
	}
	return sb.String()
}

// PrevPos moves one character left, wrapping to the end of the previous
// row. Reports false at the document start.
func (d *Document) PrevPos(p Position) (Position, bool) {
	if p.X > 0 {
		return Pos(d.rows[p.Y].PrevValid(p.X-1), p.Y), true
	}
	if p.Y > 0 {
		return Pos(d.rows[p.Y-1].MaxX(), p.Y-1), true
	}
	return p, false
}

// NextPos moves one character right, wrapping to the start of the next
// row. Reports false at the document end.
func (d *Document) NextPos(p Position) (Position, bool) {
	row := d.rows[p.Y]
	if p.X < row.MaxX() {
		return Pos(row.NextValid(p.X+1), p.Y), true
	}
	if p.Y < len(d.rows)-1 {
		return Pos(0, p.Y+1), true
	}
	return p, false
}

// UpperPos moves one row up, landing on the nearest valid column to the
// remembered column fitX. Reports false on the first row.
func (d *Document) UpperPos(p Position, fitX int) (Position, bool) {
	if p.Y == 0 {
		return p, false
	}
	return Pos(d.rows[p.Y-1].NearestValidNotExceeding(fitX), p.Y-1), true
}

// LowerPos moves one row down, landing on the nearest valid column to
// the remembered column fitX. Reports false on the last row.
func (d *Document) LowerPos(p Position, fitX int) (Position, bool) {
	if p.Y == len(d.rows)-1 {
		return p, false
	}
	return Pos(d.rows[p.Y+1].NearestValidNotExceeding(fitX), p.Y+1), true
}

func isWordByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9') || c >= 0x80
}

// NextWordPos skips to the position after the current run of word
// characters, crossing row boundaries when the row ends first.
func (d *Document) NextWordPos(p Position) Position {
	q, ok := d.NextPos(p)
	if !ok {
		return p
	}
	for {
		row := d.rows[q.Y]
		if q.X >= row.MaxX() || !isWordByte(row.String()[row.ByteOffset(q.X)]) {
			return q
		}
		next, ok := d.NextPos(q)
		if !ok {
			return q
		}
		q = next
	}
}

// PrevWordPos skips to the start of the word run before p, crossing row
// boundaries when the row begins first.
func (d *Document) PrevWordPos(p Position) Position {
	q, ok := d.PrevPos(p)
	if !ok {
		return p
	}
	for {
		prev, ok := d.PrevPos(q)
		if !ok {
			return q
		}
		if prev.Y != q.Y {
			return q
		}
		row := d.rows[prev.Y]
		if !isWordByte(row.String()[row.ByteOffset(prev.X)]) {
			return q
		}
		q = prev
	}
}

// ReadText returns the content between two positions (p1 <= p2), rows
// joined by line breaks.
func (d *Document) ReadText(p1, p2 Position) string {
	if p2.Less(p1) {
		panic(fmt.Sprintf("buffer: read range out of order: %v > %v", p1, p2))
	}
	if p1.Y == p2.Y {
		return d.rows[p1.Y].Slice(p1.X, p2.X)
	}
	var sb strings.Builder
	sb.WriteString(d.rows[p1.Y].Slice(p1.X, d.rows[p1.Y].MaxX()))
	for y := p1.Y + 1; y < p2.Y; y++ {
		sb.WriteByte('\n')
		sb.WriteString(d.rows[y].String())
	}
	sb.WriteByte('\n')
	sb.WriteString(d.rows[p2.Y].Slice(0, p2.X))
	return sb.String()
}

// InsertText inserts text at p and returns the position immediately
// after it. Text with embedded line breaks splits the row at p: the
// first inserted line joins the head, interior lines become new rows,
// and the original tail follows the last inserted line on a new row.
func (d *Document) InsertText(p Position, text string) Position {
	row := d.rows[p.Y]
	if !strings.ContainsRune(text, '\n') {
		off := row.ByteOffset(p.X)
		row.InsertStr(p.X, text)
		return Pos(row.XAt(off+len(text)), p.Y)
	}

	lines := strings.Split(text, "\n")
	tail := row.SplitOff(p.X)
	row.PushStr(lines[0])

	added := make([]*Row, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		added[i-1] = NewRow(lines[i], d.tabWidth)
	}
	last := added[len(added)-1]
	endX := last.MaxX()
	last.PushStr(tail)

	d.rows = append(d.rows[:p.Y+1], append(added, d.rows[p.Y+1:]...)...)
	return Pos(endX, p.Y+len(lines)-1)
}

// RemoveText deletes the content between p1 and p2 (p1 < p2) and
// returns it in document order. It is the exact inverse of InsertText
// at p1 with the same text: surviving fragments of the first and last
// row join into one row and the rows between disappear.
func (d *Document) RemoveText(p1, p2 Position) string {
	if !p1.Less(p2) {
		panic(fmt.Sprintf("buffer: remove range out of order: %v >= %v", p1, p2))
	}
	if p1.Y == p2.Y {
		return d.rows[p1.Y].RemoveStr(p1.X, p2.X)
	}

	var sb strings.Builder
	first := d.rows[p1.Y]
	sb.WriteString(first.SplitOff(p1.X))
	for y := p1.Y + 1; y < p2.Y; y++ {
		sb.WriteByte('\n')
		sb.WriteString(d.rows[y].String())
	}
	last := d.rows[p2.Y]
	sb.WriteByte('\n')
	sb.WriteString(last.RemoveStr(0, p2.X))

	first.PushStr(last.String())
	d.rows = append(d.rows[:p1.Y+1], d.rows[p2.Y+1:]...)
	return sb.String()
}
