package editor

import (
	"strconv"
	"strings"

	"mako/buffer"
	"mako/ui"
)

// matchSpan is one search hit, as a half-open column span on a row.
type matchSpan struct {
	y  int
	x1 int
	x2 int
}

// matchAt returns the index of the search hit covering the cell at
// (y, col). The renderer draws the focused hit over a stronger
// background than the rest.
func (e *Editor) matchAt(y, col int) (int, bool) {
	for i, m := range e.matches {
		if m.y == y && col >= m.x1 && col < m.x2 {
			return i, true
		}
	}
	return 0, false
}

// focusMatch moves the cursor to hit i and repaints the rows losing
// and gaining the focused-match background.
func (e *Editor) focusMatch(i int) {
	if e.current >= 0 && e.current < len(e.matches) {
		y := e.matches[e.current].y
		e.dirty.Expand(y, y+1)
	}
	e.current = i
	m := e.matches[i]
	e.dirty.Expand(m.y, m.y+1)
	e.moveCursor(buffer.Pos(m.x1, m.y), true)
}

func (e *Editor) findMatches(query string) []matchSpan {
	if query == "" {
		return nil
	}
	var out []matchSpan
	for y, row := range e.doc.Rows() {
		content := row.String()
		from := 0
		for {
			i := strings.Index(content[from:], query)
			if i < 0 {
				break
			}
			off := from + i
			out = append(out, matchSpan{
				y:  y,
				x1: row.XAt(off),
				x2: row.XAt(off + len(query)),
			})
			from = off + len(query)
		}
	}
	return out
}

// refreshMatches recomputes the hit list after the query or the
// document changed. An empty query is a normal state with no hits.
func (e *Editor) refreshMatches() {
	if e.query == "" {
		if e.matches != nil {
			e.matches = nil
			e.current = -1
			e.dirty.FullExpand(e.doc.RowCount())
		}
		return
	}
	e.matches = e.findMatches(e.query)
	e.current = -1
	e.dirty.FullExpand(e.doc.RowCount())
}

// jumpToMatchFrom moves to the first hit at or after p, wrapping to
// the top when none follows.
func (e *Editor) jumpToMatchFrom(p buffer.Position) {
	if len(e.matches) == 0 {
		return
	}
	for i, m := range e.matches {
		if !buffer.Pos(m.x1, m.y).Less(p) {
			e.focusMatch(i)
			return
		}
	}
	e.focusMatch(0)
}

func (e *Editor) nextMatch() {
	if len(e.matches) == 0 {
		if e.query != "" {
			e.setMessage("No matches")
		}
		return
	}
	for i, m := range e.matches {
		if e.cursor.Less(buffer.Pos(m.x1, m.y)) {
			e.focusMatch(i)
			return
		}
	}
	e.focusMatch(0)
}

func (e *Editor) prevMatch() {
	if len(e.matches) == 0 {
		if e.query != "" {
			e.setMessage("No matches")
		}
		return
	}
	for i := len(e.matches) - 1; i >= 0; i-- {
		if buffer.Pos(e.matches[i].x1, e.matches[i].y).Less(e.cursor) {
			e.focusMatch(i)
			return
		}
	}
	e.focusMatch(len(e.matches) - 1)
}

func (e *Editor) clearSearch() {
	if e.query == "" {
		return
	}
	e.query = ""
	e.refreshMatches()
}

// openFindPrompt runs incremental search: every keystroke in the
// minibuffer re-runs the query and jumps to the nearest hit, and
// cancelling restores the position the search started from.
func (e *Editor) openFindPrompt() {
	origCursor := e.cursor
	origFit := e.fitX
	origScrollY, origScrollX := e.scrollY, e.scrollX
	origQuery := e.query

	p := ui.NewPrompt("Find: ")
	p.OnChange = func(text string) {
		e.query = text
		e.refreshMatches()
		e.jumpToMatchFrom(origCursor)
	}
	p.OnSubmit = func(text string) {
		e.prompt = nil
		e.query = text
		e.refreshMatches()
		if text != "" && len(e.matches) == 0 {
			e.setMessage("No matches")
		}
		e.jumpToMatchFrom(origCursor)
	}
	p.OnCancel = func() {
		e.prompt = nil
		e.query = origQuery
		e.refreshMatches()
		e.cursor = origCursor
		e.fitX = origFit
		e.scrollY, e.scrollX = origScrollY, origScrollX
		e.dirty.FullExpand(e.doc.RowCount())
	}
	e.prompt = p
}

func (e *Editor) openGotoLinePrompt() {
	p := ui.NewPrompt("Go to line: ")
	p.OnSubmit = func(text string) {
		e.prompt = nil
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			e.setError("Invalid line number: " + text)
			return
		}
		if n < 1 {
			n = 1
		}
		if n > e.doc.RowCount() {
			n = e.doc.RowCount()
		}
		e.moveCursor(buffer.Pos(0, n-1), true)
	}
	p.OnCancel = func() {
		e.prompt = nil
	}
	e.prompt = p
}
