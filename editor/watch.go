package editor

import "github.com/fsnotify/fsnotify"

// startWatcher watches the open file for outside writes so the status
// bar can flag the buffer as stale. Watch failures are non-fatal; the
// editor just runs without the flag.
func (e *Editor) startWatcher() {
	if e.path == "" {
		return
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	if err := w.Add(e.path); err != nil {
		// The file may not exist yet; it appears on first save.
		w.Close()
		return
	}
	e.watcher = w

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				fe := &fileWatchEvent{op: ev.Op}
				fe.SetEventNow()
				e.screen.PostEvent(fe)
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (e *Editor) stopWatcher() {
	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
}
