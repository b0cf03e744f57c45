package editor

import (
	"strings"

	"mako/buffer"
	"mako/clipboardx"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	e.clearStaleMessage()

	if ev.Key() != tcell.KeyCtrlQ {
		e.quitPending = false
	}

	// The minibuffer swallows everything while open.
	if e.prompt != nil {
		e.prompt.HandleKey(ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		e.handleQuit()
		return
	case tcell.KeyCtrlS:
		e.saveCurrentFile()
		return
	case tcell.KeyCtrlO:
		e.openSaveAsPrompt()
		return
	case tcell.KeyCtrlF:
		e.openFindPrompt()
		return
	case tcell.KeyCtrlG:
		e.openGotoLinePrompt()
		return
	case tcell.KeyCtrlZ:
		e.toggleUndoRedo()
		return
	case tcell.KeyCtrlC:
		e.copyRow()
		return
	case tcell.KeyCtrlX:
		e.cutRow()
		return
	case tcell.KeyCtrlV:
		e.paste()
		return
	case tcell.KeyF3:
		if ev.Modifiers()&tcell.ModShift != 0 {
			e.prevMatch()
		} else {
			e.nextMatch()
		}
		return
	case tcell.KeyEscape:
		e.clearSearch()
		return
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			e.moveCursor(e.doc.PrevWordPos(e.cursor), true)
		} else if p, ok := e.doc.PrevPos(e.cursor); ok {
			e.moveCursor(p, true)
		} else {
			e.log.OnMove()
		}
		return
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			e.moveCursor(e.doc.NextWordPos(e.cursor), true)
		} else if p, ok := e.doc.NextPos(e.cursor); ok {
			e.moveCursor(p, true)
		} else {
			e.log.OnMove()
		}
		return
	case tcell.KeyUp:
		if p, ok := e.doc.UpperPos(e.cursor, e.fitX); ok {
			e.moveCursor(p, false)
		} else {
			e.log.OnMove()
		}
		return
	case tcell.KeyDown:
		if p, ok := e.doc.LowerPos(e.cursor, e.fitX); ok {
			e.moveCursor(p, false)
		} else {
			e.log.OnMove()
		}
		return
	case tcell.KeyHome:
		e.moveHome()
		return
	case tcell.KeyEnd:
		row := e.doc.Row(e.cursor.Y)
		e.moveCursor(buffer.Pos(row.MaxX(), e.cursor.Y), true)
		return
	case tcell.KeyPgUp:
		e.movePage(-1)
		return
	case tcell.KeyPgDn:
		e.movePage(1)
		return
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		e.insertNewline()
	case tcell.KeyTab:
		e.indent()
	case tcell.KeyBacktab:
		e.unindent()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.backspace()
	case tcell.KeyDelete:
		e.deleteForward()
	case tcell.KeyRune:
		caret := e.applyEdit(buffer.Insert(e.cursor, string(ev.Rune()), true))
		e.setCursor(caret)
	}
}

// moveCursor is the pure-movement path: it never touches content, but
// it does flip the undo/redo direction state.
func (e *Editor) moveCursor(p buffer.Position, updateFit bool) {
	e.cursor = p
	if updateFit {
		e.fitX = p.X
	}
	e.log.OnMove()
}

// setCursor follows an edit: position and remembered column both land
// where the edit left off.
func (e *Editor) setCursor(p buffer.Position) {
	e.cursor = p
	e.fitX = p.X
}

// moveHome toggles between the first non-blank column and column zero.
func (e *Editor) moveHome() {
	row := e.doc.Row(e.cursor.Y)
	fl := row.FirstLetterX()
	x := fl
	if e.cursor.X == fl || fl == row.MaxX() {
		x = 0
	}
	e.moveCursor(buffer.Pos(x, e.cursor.Y), true)
}

func (e *Editor) movePage(dir int) {
	_, h := e.screen.Size()
	step := h - 1
	if step < 1 {
		step = 1
	}
	p := e.cursor
	for i := 0; i < step; i++ {
		var ok bool
		if dir < 0 {
			p, ok = e.doc.UpperPos(p, e.fitX)
		} else {
			p, ok = e.doc.LowerPos(p, e.fitX)
		}
		if !ok {
			break
		}
	}
	e.moveCursor(p, false)
}

func (e *Editor) insertNewline() {
	row := e.doc.Row(e.cursor.Y)
	indent := leadingBlank(row.String())
	if row.Indent > 0 && e.cursor.X == row.MaxX() {
		indent += "\t"
	}
	caret := e.applyEdit(buffer.Insert(e.cursor, "\n"+indent, true))
	e.setCursor(caret)
}

func leadingBlank(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}

func (e *Editor) indent() {
	caret := e.applyEdit(buffer.Indent(e.cursor, "\t"))
	e.setCursor(caret)
}

// unindent removes up to one level of leading indentation from the
// current row.
func (e *Editor) unindent() {
	row := e.doc.Row(e.cursor.Y)
	line := row.String()
	width := 0
	if strings.HasPrefix(line, "\t") {
		width = e.doc.TabWidth()
	} else {
		for width < e.doc.TabWidth() && width < len(line) && line[width] == ' ' {
			width++
		}
	}
	if width == 0 {
		return
	}
	e.applyEdit(buffer.Unindent(buffer.Pos(0, e.cursor.Y), width))
	x := e.cursor.X - width
	if x < 0 {
		x = 0
	}
	e.setCursor(buffer.Pos(e.doc.Row(e.cursor.Y).NearestValidNotExceeding(x), e.cursor.Y))
}

func (e *Editor) backspace() {
	p, ok := e.doc.PrevPos(e.cursor)
	if !ok {
		return
	}
	caret := e.applyEdit(buffer.Delete(p, e.cursor, true))
	e.setCursor(caret)
}

func (e *Editor) deleteForward() {
	p, ok := e.doc.NextPos(e.cursor)
	if !ok {
		return
	}
	caret := e.applyEdit(buffer.Delete(e.cursor, p, false))
	e.setCursor(caret)
}

func (e *Editor) toggleUndoRedo() {
	ev, caret, ok := e.log.Toggle(e.doc)
	if !ok {
		e.setMessage("Nothing to undo")
		return
	}
	oldRows := e.doc.RowCount()
	startY := ev.Pos.Y
	e.afterMutation(startY, oldRows)
	e.setCursor(caret)
}

// copyRow copies the current row (with its line break) to the
// clipboard.
func (e *Editor) copyRow() {
	text := e.doc.Row(e.cursor.Y).String() + "\n"
	clipboardx.Write(text)
	e.setMessage("Copied line")
}

// cutRow removes the current row entirely and copies it.
func (e *Editor) cutRow() {
	y := e.cursor.Y
	row := e.doc.Row(y)
	text := row.String() + "\n"

	var ev buffer.EditEvent
	if y < e.doc.RowCount()-1 {
		ev = buffer.Delete(buffer.Pos(0, y), buffer.Pos(0, y+1), true)
	} else if row.MaxX() > 0 || y > 0 {
		// Last row: take the preceding break too, or just the content
		// when this is the only row.
		if y > 0 {
			prev := e.doc.Row(y - 1)
			ev = buffer.Delete(buffer.Pos(prev.MaxX(), y-1), buffer.Pos(row.MaxX(), y), true)
		} else {
			ev = buffer.Delete(buffer.Pos(0, y), buffer.Pos(row.MaxX(), y), true)
		}
	} else {
		return // single empty row, nothing to cut
	}
	clipboardx.Write(text)
	caret := e.applyEdit(ev)
	e.setCursor(caret)
	e.setMessage("Cut line")
}

func (e *Editor) paste() {
	text := clipboardx.Read()
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	caret := e.applyEdit(buffer.Insert(e.cursor, text, true))
	e.setCursor(caret)
}

func (e *Editor) handleQuit() {
	if e.modified && !e.quitPending {
		e.quitPending = true
		e.setMessage("Unsaved changes; press Ctrl+Q again to discard")
		return
	}
	e.quit = true
}
