package buffer

import (
	"fmt"
	"strings"
)

// EventKind discriminates the closed set of reversible edits.
type EventKind int

const (
	KindInsert EventKind = iota
	KindDelete
	KindIndent
	KindUnindent
)

func (k EventKind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindIndent:
		return "indent"
	case KindUnindent:
		return "unindent"
	}
	return "unknown"
}

// EditEvent is one reversible document mutation. Applying an event
// performs it and yields its exact inverse, so a single apply routine
// serves do, undo, and redo alike.
//
//   - Insert: Text goes in at Pos; End is set by Apply to the position
//     just past the inserted text.
//   - Delete: the range [Pos, End) comes out; Text is set by Apply to
//     what was removed.
//   - Indent: Text (no line breaks) goes in at Pos.
//   - Unindent: Width columns starting at Pos come out.
//
// MoveCursor records whether the caret should follow the edit when the
// event is applied.
type EditEvent struct {
	Kind       EventKind
	Pos        Position
	End        Position
	Text       string
	Width      int
	MoveCursor bool
}

func Insert(pos Position, text string, moveCursor bool) EditEvent {
	return EditEvent{Kind: KindInsert, Pos: pos, Text: text, MoveCursor: moveCursor}
}

func Delete(pos1, pos2 Position, moveCursor bool) EditEvent {
	return EditEvent{Kind: KindDelete, Pos: pos1, End: pos2, MoveCursor: moveCursor}
}

func Indent(pos Position, text string) EditEvent {
	return EditEvent{Kind: KindIndent, Pos: pos, Text: text}
}

func Unindent(pos Position, width int) EditEvent {
	return EditEvent{Kind: KindUnindent, Pos: pos, Width: width}
}

// Apply mutates the document and returns the inverse event plus the
// caret position the edit leads to.
func (ev EditEvent) Apply(doc *Document) (EditEvent, Position) {
	switch ev.Kind {
	case KindInsert:
		end := doc.InsertText(ev.Pos, ev.Text)
		inv := Delete(ev.Pos, end, ev.MoveCursor)
		inv.Text = ev.Text
		return inv, end
	case KindDelete:
		removed := doc.RemoveText(ev.Pos, ev.End)
		inv := Insert(ev.Pos, removed, ev.MoveCursor)
		inv.End = ev.End
		return inv, ev.Pos
	case KindIndent:
		end := doc.InsertText(ev.Pos, ev.Text)
		return Unindent(ev.Pos, end.X-ev.Pos.X), end
	case KindUnindent:
		end := Pos(ev.Pos.X+ev.Width, ev.Pos.Y)
		removed := doc.RemoveText(ev.Pos, end)
		return Indent(ev.Pos, removed), ev.Pos
	}
	panic(fmt.Sprintf("buffer: apply of unknown event kind %d", int(ev.Kind)))
}

// multiline reports whether the event touches more than one row.
func (ev EditEvent) multiline() bool {
	switch ev.Kind {
	case KindInsert:
		return strings.ContainsRune(ev.Text, '\n')
	case KindDelete:
		return ev.Pos.Y != ev.End.Y
	}
	return false
}

// CanMerge reports whether Merge(next) is defined: same kind, same
// cursor behavior, single-row, and positionally contiguous.
func (ev EditEvent) CanMerge(next EditEvent) bool {
	if ev.Kind != next.Kind || ev.MoveCursor != next.MoveCursor {
		return false
	}
	if ev.multiline() || next.multiline() {
		return false
	}
	switch ev.Kind {
	case KindInsert:
		// A typing run undone char by char (next precedes ev) or a
		// forward-delete run (same point).
		return next.End == ev.Pos || next.Pos == ev.Pos
	case KindDelete:
		return next.Pos == ev.End
	}
	return false
}

// Merge coalesces a contiguous same-kind event into this one so a run
// of single-character edits undoes as one step. Calling it on an
// incompatible pair is a caller bug.
func (ev EditEvent) Merge(next EditEvent) EditEvent {
	if !ev.CanMerge(next) {
		panic(fmt.Sprintf("buffer: merge of incompatible events %s%v and %s%v",
			ev.Kind, ev.Pos, next.Kind, next.Pos))
	}
	switch ev.Kind {
	case KindInsert:
		if next.End == ev.Pos {
			merged := ev
			merged.Pos = next.Pos
			merged.Text = next.Text + ev.Text
			return merged
		}
		merged := ev
		merged.Text = ev.Text + next.Text
		merged.End = next.End
		return merged
	case KindDelete:
		merged := ev
		merged.End = next.End
		merged.Text = ev.Text + next.Text
		return merged
	}
	panic(fmt.Sprintf("buffer: merge of unmergeable kind %s", ev.Kind))
}
