package db

import (
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack"

	kanban "github.com/shr00m335/kanban-board"
)

// Export writes the project named by idHex to wr as msgpack.
func (s *Store) Export(idHex string, wr io.Writer) (err error) {
	p, err := s.Read(idHex)
	if err != nil {
		return
	}
	err = msgpack.NewEncoder(wr).Encode(p)
	if err != nil {
		return kanban.Wrapf(kanban.TextError, err, "cannot export %s", p.ID)
	}
	return
}

// Import reads a msgpack project from rd and saves it under its own
// id, replacing any file already there.
func (s *Store) Import(rd io.Reader) (p *Project, err error) {
	p = &Project{}
	err = msgpack.NewDecoder(rd).Decode(p)
	if err != nil {
		return nil, kanban.Wrap(kanban.TextError, err, "cannot decode imported project")
	}
	if p.ID.IsZero() {
		return nil, kanban.New(kanban.IDError, "Invalid project ID")
	}
	err = validate(p.Name, p.Description)
	if err != nil {
		return nil, err
	}
	normalize(p)
	p, err = s.Save(p)
	if err != nil {
		return
	}
	log.Debugf("imported project %s %q", p.ID, p.Name)
	return
}

// normalize replaces nil slices with empty ones so an imported project
// compares equal to the same project read back from disk.
func normalize(p *Project) {
	if p.Boards == nil {
		p.Boards = []Board{}
	}
	for i := range p.Boards {
		b := &p.Boards[i]
		if b.Lists == nil {
			b.Lists = []List{}
		}
		for j := range b.Lists {
			if b.Lists[j].Items == nil {
				b.Lists[j].Items = []string{}
			}
		}
	}
}
