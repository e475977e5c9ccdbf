package db

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	kanban "github.com/shr00m335/kanban-board"
	"github.com/shr00m335/kanban-board/wire"
)

// Op is the kind of change a ProjectEvent reports.
type Op int

const (
	Created Op = iota + 1
	Written
	Removed
)

func (op Op) String() string {
	switch op {
	case Created:
		return "created"
	case Written:
		return "written"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// ProjectEvent is a change to one project file.
type ProjectEvent struct {
	ID ID
	Op Op
}

// Watcher reports changes in the project directory on Events until
// Close is called.  Files whose names are not project ids are ignored.
type Watcher struct {
	Events  chan ProjectEvent
	watcher *fsnotify.Watcher
	known   map[ID]bool
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the project directory, creating it if needed.
func (s *Store) Watch() (w *Watcher, err error) {
	dir, err := s.ProjectDir()
	if err != nil {
		return
	}
	err = os.MkdirAll(dir, wire.DirMode)
	if err != nil {
		return nil, kanban.FromCause(kanban.IoError, errors.Wrapf(err, "cannot create %s", dir))
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, kanban.FromCause(kanban.IoError, err)
	}
	err = fw.Add(dir)
	if err != nil {
		fw.Close()
		return nil, kanban.FromCause(kanban.IoError, errors.Wrapf(err, "cannot watch %s", dir))
	}

	w = &Watcher{
		Events:  make(chan ProjectEvent),
		watcher: fw,
		known:   make(map[ID]bool),
		done:    make(chan struct{}),
	}

	// files already present are reported as Written, not Created
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		fw.Close()
		return nil, kanban.FromCause(kanban.IoError, err)
	}
	for _, entry := range entries {
		id, err := ParseID(entry.Name())
		if err == nil {
			w.known[id] = true
		}
	}

	go w.run()
	log.Debugf("watching %s", dir)
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.Events)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			pe, ok := w.translate(ev)
			if !ok {
				continue
			}
			select {
			case w.Events <- pe:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Debugf("watch error: %v", err)
		}
	}
}

func (w *Watcher) translate(ev fsnotify.Event) (pe ProjectEvent, ok bool) {
	id, err := ParseID(filepath.Base(ev.Name))
	if err != nil {
		return
	}
	pe.ID = id
	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		delete(w.known, id)
		pe.Op = Removed
	case ev.Op&fsnotify.Create != 0:
		// an atomic save renames over an existing file
		if w.known[id] {
			pe.Op = Written
		} else {
			pe.Op = Created
		}
		w.known[id] = true
	case ev.Op&fsnotify.Write != 0:
		w.known[id] = true
		pe.Op = Written
	default:
		return
	}
	return pe, true
}

// Close stops the watcher and closes Events.
func (w *Watcher) Close() (err error) {
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return
}
