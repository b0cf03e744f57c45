package buffer

import "unicode/utf8"

// DirState selects what the single undo/redo toggle key does next.
type DirState int

const (
	WillUndo DirState = iota
	WillRedo
	Undoing
	Redoing
)

func (s DirState) String() string {
	switch s {
	case WillUndo:
		return "will-undo"
	case WillRedo:
		return "will-redo"
	case Undoing:
		return "undoing"
	case Redoing:
		return "redoing"
	}
	return "unknown"
}

// EditLog keeps every mutation reversible: the undo stack holds the
// inverses of performed edits, the redo stack the inverses of undos, and
// the direction state decides which stack the toggle key pops next.
type EditLog struct {
	undos   []EditEvent
	redos   []EditEvent
	state   DirState
	barrier bool // a cursor move ends the current coalescing run

	// Coalesce merges contiguous single-character edits into one undo
	// step while typing.
	Coalesce bool
}

func NewEditLog() *EditLog {
	return &EditLog{Coalesce: true}
}

func (l *EditLog) State() DirState { return l.state }
func (l *EditLog) CanUndo() bool   { return len(l.undos) > 0 }
func (l *EditLog) CanRedo() bool   { return len(l.redos) > 0 }

// Edit performs a fresh user edit: apply the event, keep its inverse on
// the undo stack, and invalidate the redo history. Returns the caret
// position the edit leads to.
func (l *EditLog) Edit(doc *Document, ev EditEvent) Position {
	inv, caret := ev.Apply(doc)
	merge := l.Coalesce && !l.barrier && len(l.undos) > 0 && l.state == WillUndo
	l.barrier = false
	if merge {
		top := l.undos[len(l.undos)-1]
		if utf8.RuneCountInString(inv.Text) <= 1 && top.CanMerge(inv) {
			l.undos[len(l.undos)-1] = top.Merge(inv)
			l.redos = l.redos[:0]
			return caret
		}
	}
	l.undos = append(l.undos, inv)
	l.redos = l.redos[:0]
	l.state = WillUndo
	return caret
}

// Toggle is the single undo/redo key. Whether it undoes or redoes
// depends on the direction state; when the stack on that side is
// drained it falls through to the other side, so the press right after
// a history-emptying undo redoes that event instead of doing nothing.
// Both stacks empty makes it a no-op. Returns the event that was
// applied and the caret position it leads to, so the caller can
// re-highlight and repaint from the right row.
func (l *EditLog) Toggle(doc *Document) (EditEvent, Position, bool) {
	if l.state == WillUndo || l.state == Undoing {
		if ev, caret, ok := l.popUndo(doc); ok {
			return ev, caret, true
		}
		return l.popRedo(doc)
	}
	if ev, caret, ok := l.popRedo(doc); ok {
		return ev, caret, true
	}
	return l.popUndo(doc)
}

func (l *EditLog) popUndo(doc *Document) (EditEvent, Position, bool) {
	if len(l.undos) == 0 {
		return EditEvent{}, Position{}, false
	}
	ev := l.undos[len(l.undos)-1]
	l.undos = l.undos[:len(l.undos)-1]
	inv, caret := ev.Apply(doc)
	l.redos = append(l.redos, inv)
	l.state = Undoing
	return ev, caret, true
}

func (l *EditLog) popRedo(doc *Document) (EditEvent, Position, bool) {
	if len(l.redos) == 0 {
		return EditEvent{}, Position{}, false
	}
	ev := l.redos[len(l.redos)-1]
	l.redos = l.redos[:len(l.redos)-1]
	inv, caret := ev.Apply(doc)
	l.undos = append(l.undos, inv)
	l.state = Redoing
	return ev, caret, true
}

// OnMove flips the direction after the user looks around: one more
// toggle press right after an undo redoes it, but a cursor motion in
// between means the next press continues from where the user is
// looking.
func (l *EditLog) OnMove() {
	l.barrier = true
	switch l.state {
	case Undoing:
		l.state = WillRedo
	case Redoing:
		l.state = WillUndo
	}
}
