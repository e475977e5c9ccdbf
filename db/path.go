package db

import (
	"path/filepath"
	"strings"

	kanban "github.com/shr00m335/kanban-board"
)

// Path locates one project file.  Any of a bare id, a canpath or an
// abspath inside the data dir can be given as raw.
type Path struct {
	Store *Store
	Raw   string
	Abs   string // absolute
	Rel   string // relative to the data dir
	Canon string // canonical, always slash-separated
	ID    ID
}

func (path Path) New(store *Store, raw string) (res *Path, err error) {
	path.Store = store
	path.Raw = raw

	dir, err := store.Dir()
	if err != nil {
		return
	}

	clean := filepath.Clean(raw)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(dir, clean)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, kanban.Errorf(kanban.IDError, "%s is outside %s", raw, dir)
		}
		clean = rel
	}

	var name string
	parts := strings.Split(filepath.ToSlash(clean), "/")
	switch {
	case len(parts) == 1:
		name = parts[0]
	case len(parts) == 2 && parts[0] == ProjectDir:
		name = parts[1]
	default:
		return nil, kanban.Errorf(kanban.IDError, "malformed project path: %s", raw)
	}

	path.ID, err = ParseID(name)
	if err != nil {
		return
	}
	path.Canon = ProjectDir + "/" + path.ID.String()
	path.Rel = filepath.FromSlash(path.Canon)
	path.Abs = filepath.Join(dir, path.Rel)
	return &path, nil
}
