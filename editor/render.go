package editor

import (
	"unicode/utf8"

	"mako/highlight"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// render consumes the dirty range exactly once and repaints only the
// rows inside it, clamped to the visible window. Everything else on
// screen is already correct.
func (e *Editor) render() {
	w, h := e.screen.Size()
	textH := h - 1 // bottom row is the status bar or the minibuffer
	if textH < 1 {
		textH = 1
	}
	e.ensureCursorVisible(w, textH)

	if start, end, ok := e.dirty.Take(); ok {
		if start < e.scrollY {
			start = e.scrollY
		}
		if end > e.scrollY+textH {
			end = e.scrollY + textH
		}
		for y := start; y < end; y++ {
			e.drawRow(y, w)
		}
	}

	if e.prompt != nil {
		e.prompt.Theme = e.theme
		e.prompt.Render(e.screen, 0, h-1, w)
	} else {
		e.statusBar.Theme = e.theme
		e.statusBar.Filename = e.path
		e.statusBar.Modified = e.modified
		e.statusBar.DiskStale = e.diskStale
		e.statusBar.Line = e.cursor.Y
		e.statusBar.Col = e.cursor.X
		e.statusBar.Language = e.strategy.Name()
		e.statusBar.Render(e.screen, 0, h-1, w)

		cx, cy := e.cursor.X-e.scrollX, e.cursor.Y-e.scrollY
		if cx >= 0 && cx < w && cy >= 0 && cy < textH {
			e.screen.ShowCursor(cx, cy)
		} else {
			e.screen.HideCursor()
		}
	}
	e.screen.Show()
}

// ensureCursorVisible scrolls the viewport to keep the cursor inside
// it. Any scroll invalidates the whole window.
func (e *Editor) ensureCursorVisible(w, textH int) {
	oldY, oldX := e.scrollY, e.scrollX
	if e.cursor.Y < e.scrollY {
		e.scrollY = e.cursor.Y
	}
	if e.cursor.Y >= e.scrollY+textH {
		e.scrollY = e.cursor.Y - textH + 1
	}
	if e.cursor.X < e.scrollX {
		e.scrollX = e.cursor.X
	}
	if e.cursor.X >= e.scrollX+w {
		e.scrollX = e.cursor.X - w + 1
	}
	if e.scrollY != oldY || e.scrollX != oldX {
		e.dirty.FullExpand(e.doc.RowCount() + textH)
	}
}

// drawRow paints one document row: style runs from the per-byte tags,
// tabs expanded in place, wide runes taking their two cells, search
// matches over their own background. Rows past the end of the document
// clear to background.
func (e *Editor) drawRow(y, w int) {
	sy := y - e.scrollY
	base := tcell.StyleDefault.Background(e.theme.Background).Foreground(e.theme.Foreground)

	for sx := 0; sx < w; sx++ {
		e.screen.SetContent(sx, sy, ' ', nil, base)
	}
	if y >= e.doc.RowCount() {
		return
	}

	row := e.doc.Row(y)
	content := row.String()
	col := 0
	for off := 0; off < len(content); {
		r, size := utf8.DecodeRuneInString(content[off:])

		style := base
		if row.Tags != nil && row.Tags[off] != highlight.TagDefault {
			style = highlight.StyleFor(row.Tags[off]).Background(e.theme.Background)
		}
		if i, ok := e.matchAt(y, col); ok {
			bg := e.theme.Selection
			if i == e.current {
				bg = e.theme.Match
			}
			style = style.Background(bg)
		}

		if r == '\t' {
			width := e.doc.TabWidth() - col%e.doc.TabWidth()
			for i := 0; i < width; i++ {
				if sx := col + i - e.scrollX; sx >= 0 && sx < w {
					e.screen.SetContent(sx, sy, ' ', nil, style)
				}
			}
			col += width
		} else {
			width := runewidth.RuneWidth(r)
			if width < 1 {
				width = 1
			}
			if sx := col - e.scrollX; sx >= 0 && sx < w {
				e.screen.SetContent(sx, sy, r, nil, style)
			}
			col += width
		}
		off += size
	}
}
