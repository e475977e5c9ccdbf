package db

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"
)

// next returns the first event for id, skipping events for others.
func next(t *testing.T, w *Watcher, id ID) ProjectEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-w.Events:
			tassert(t, ok, "events closed")
			if ev.ID == id {
				return ev
			}
		case <-timeout:
			t.Fatalf("no event for %s", id)
		}
	}
}

func TestWatch(t *testing.T) {
	s := setup(t)
	w, err := s.Watch()
	tassert(t, err == nil, "%v", err)
	defer w.Close()

	p, err := s.Create("n", "d")
	tassert(t, err == nil, "%v", err)
	ev := next(t, w, p.ID)
	tassert(t, ev.Op == Created, "event %v", ev.Op)

	// drain anything else the create produced, then save over it
	p.Name = "renamed"
	_, err = s.Save(p)
	tassert(t, err == nil, "%v", err)
	for {
		ev = next(t, w, p.ID)
		tassert(t, ev.Op != Removed, "save reported as removal")
		if ev.Op == Written {
			break
		}
	}

	err = s.Delete(p.ID.String())
	tassert(t, err == nil, "%v", err)
	for {
		ev = next(t, w, p.ID)
		if ev.Op == Removed {
			break
		}
	}
}

func TestWatchExisting(t *testing.T) {
	s := setup(t)
	p, err := s.Create("n", "d")
	tassert(t, err == nil, "%v", err)

	w, err := s.Watch()
	tassert(t, err == nil, "%v", err)
	defer w.Close()

	_, err = s.Save(p)
	tassert(t, err == nil, "%v", err)
	ev := next(t, w, p.ID)
	tassert(t, ev.Op == Written, "event %v", ev.Op)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	s := setup(t)
	w, err := s.Watch()
	tassert(t, err == nil, "%v", err)
	defer w.Close()

	dir, err := s.ProjectDir()
	tassert(t, err == nil, "%v", err)
	err = ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	tassert(t, err == nil, "%v", err)

	p, err := s.Create("n", "d")
	tassert(t, err == nil, "%v", err)

	// the first event delivered belongs to the project
	select {
	case ev := <-w.Events:
		tassert(t, ev.ID == p.ID, "unexpected event for %s", ev.ID)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event")
	}
}

func TestWatchClose(t *testing.T) {
	s := setup(t)
	w, err := s.Watch()
	tassert(t, err == nil, "%v", err)
	err = w.Close()
	tassert(t, err == nil, "%v", err)
	// a second close is harmless
	err = w.Close()
	tassert(t, err == nil, "%v", err)

	select {
	case _, ok := <-w.Events:
		tassert(t, !ok, "event after close")
	case <-time.After(5 * time.Second):
		t.Fatalf("events not closed")
	}
}
