package editor

import (
	"time"

	"mako/buffer"
	"mako/config"
	"mako/highlight"
	"mako/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

// Editor owns one buffer session: the document, its edit log, the
// active tokenizer strategy, the dirty range the renderer consumes, and
// the tcell screen everything is drawn to.
type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	theme  *config.ColorScheme

	doc      *buffer.Document
	log      *buffer.EditLog
	dirty    buffer.DirtyRange
	strategy highlight.Strategy

	path      string
	modified  bool
	diskStale bool

	cursor  buffer.Position
	fitX    int // remembered column for vertical motion
	scrollY int
	scrollX int

	statusBar *ui.StatusBar
	prompt    *ui.Prompt

	query   string
	matches []matchSpan
	current int // index into matches, -1 when none selected

	watcher      *fsnotify.Watcher
	lastSaveTime time.Time

	quit        bool
	quitPending bool // first Ctrl+Q with unsaved changes arms this

	statusMessageTime time.Time
}

// fileWatchEvent carries an fsnotify notification into the tcell event
// loop.
type fileWatchEvent struct {
	tcell.EventTime
	op fsnotify.Op
}

func New(cfg *config.Config) *Editor {
	return &Editor{
		cfg:       cfg,
		theme:     cfg.GetTheme(),
		doc:       buffer.NewDocument(cfg.TabSize),
		log:       buffer.NewEditLog(),
		strategy:  highlight.Plain(),
		statusBar: ui.NewStatusBar(),
		current:   -1,
	}
}

// Run opens the terminal screen and processes input events until quit.
func (e *Editor) Run(path string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	return e.run(screen, path)
}

// run drives the session on any screen; tests hand in a simulation
// screen.
func (e *Editor) run(screen tcell.Screen, path string) error {
	e.screen = screen
	e.log.Coalesce = e.cfg.UndoCoalesce

	if path != "" {
		if err := e.openFile(path); err != nil {
			e.setError("Error: " + err.Error())
		}
	} else {
		e.highlightAll()
	}
	e.startWatcher()
	defer e.stopWatcher()

	e.dirty.FullExpand(e.doc.RowCount())
	for !e.quit {
		e.render()
		ev := e.screen.PollEvent()
		if ev == nil {
			break
		}
		e.handleEvent(ev)
	}

	// Best effort; a missing config dir should not turn quitting into
	// an error.
	_ = e.cfg.Save()
	return nil
}

func (e *Editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventResize:
		e.screen.Sync()
		e.dirty.FullExpand(e.doc.RowCount())
	case *fileWatchEvent:
		if ev.op&(fsnotify.Write|fsnotify.Create) != 0 {
			// Our own save also trips the watcher; ignore the echo.
			if time.Since(e.lastSaveTime) > 500*time.Millisecond {
				e.diskStale = true
			}
		}
	}
}

// applyEdit runs one fresh edit event through the log, re-highlights
// from the edited row, and registers the affected rows for redraw.
func (e *Editor) applyEdit(ev buffer.EditEvent) buffer.Position {
	oldRows := e.doc.RowCount()
	caret := e.log.Edit(e.doc, ev)
	e.afterMutation(ev.Pos.Y, oldRows)
	return caret
}

// afterMutation is the shared tail of every document change: highlight
// propagation from the first touched row, then dirty-range accounting.
func (e *Editor) afterMutation(startY, oldRows int) {
	n := e.strategy.Highlight(e.doc.Rows(), startY)
	e.dirty.Expand(startY, startY+n)
	if newRows := e.doc.RowCount(); newRows != oldRows {
		// Rows shifted beneath the edit; repaint down to the larger of
		// the two extents so vacated lines clear.
		m := oldRows
		if newRows > m {
			m = newRows
		}
		e.dirty.Expand(startY, m)
	}
	e.modified = true
	e.refreshMatches()
}

// highlightAll runs the active strategy over the whole document.
func (e *Editor) highlightAll() {
	for _, row := range e.doc.Rows() {
		row.Context = ""
		row.Tags = nil
	}
	e.strategy.Highlight(e.doc.Rows(), 0)
	e.dirty.FullExpand(e.doc.RowCount())
}

func (e *Editor) setMessage(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = false
	e.statusMessageTime = time.Now()
}

func (e *Editor) setError(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = true
	e.statusMessageTime = time.Now()
}

func (e *Editor) clearStaleMessage() {
	if e.statusBar.Message != "" && time.Since(e.statusMessageTime) > 4*time.Second {
		e.statusBar.Message = ""
	}
}
