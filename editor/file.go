package editor

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"mako/buffer"
	"mako/highlight"
	"mako/ui"
)

// openFile loads path into the document. A missing file is not an
// error: the editor starts on an empty document and the file appears
// on first save.
func (e *Editor) openFile(path string) error {
	e.path = path
	e.strategy = highlight.ForFile(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.doc = buffer.NewDocument(e.cfg.TabSize)
			e.finishOpen()
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	e.doc = buffer.FromLines(strings.Split(content, "\n"), e.cfg.TabSize)
	e.finishOpen()
	return nil
}

func (e *Editor) finishOpen() {
	e.log = buffer.NewEditLog()
	e.log.Coalesce = e.cfg.UndoCoalesce
	e.cursor = buffer.Pos(0, 0)
	e.fitX = 0
	e.scrollY, e.scrollX = 0, 0
	e.modified = false
	e.diskStale = false
	e.highlightAll()
	e.refreshMatches()
}

func (e *Editor) saveCurrentFile() {
	if e.path == "" {
		e.openSaveAsPrompt()
		return
	}
	if err := e.save(); err != nil {
		e.setError("Error: " + err.Error())
		return
	}
	e.setMessage("Saved " + e.path)
}

// save writes the document to its path. Trailing-space trimming runs
// through the edit log so undo history stays consistent with the
// document.
func (e *Editor) save() error {
	if e.cfg.TrimTrailingSpace {
		e.trimTrailingSpace()
	}
	if err := os.WriteFile(e.path, []byte(e.doc.Join()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", e.path, err)
	}
	e.lastSaveTime = time.Now()
	e.modified = false
	e.diskStale = false
	return nil
}

func (e *Editor) trimTrailingSpace() {
	for y := 0; y < e.doc.RowCount(); y++ {
		row := e.doc.Row(y)
		line := row.String()
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) == len(line) {
			continue
		}
		e.applyEdit(buffer.Delete(buffer.Pos(row.XAt(len(trimmed)), y), buffer.Pos(row.MaxX(), y), false))
	}
	if row := e.doc.Row(e.cursor.Y); e.cursor.X > row.MaxX() {
		e.setCursor(buffer.Pos(row.MaxX(), e.cursor.Y))
	}
}

// saveAs retargets the session to a new path. The tokenizer strategy
// follows the new name.
func (e *Editor) saveAs(path string) {
	e.stopWatcher()
	e.path = path
	e.strategy = highlight.ForFile(path)
	e.highlightAll()
	if err := e.save(); err != nil {
		e.setError("Error: " + err.Error())
	} else {
		e.setMessage("Saved " + e.path)
	}
	e.startWatcher()
}

func (e *Editor) openSaveAsPrompt() {
	p := ui.NewPrompt("Save as: ")
	p.SetInput(e.path)
	p.OnSubmit = func(text string) {
		e.prompt = nil
		text = strings.TrimSpace(text)
		if text == "" {
			e.setError("No file name")
			return
		}
		e.saveAs(text)
	}
	p.OnCancel = func() {
		e.prompt = nil
	}
	e.prompt = p
}
