package db

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	kanban "github.com/shr00m335/kanban-board"
	"github.com/shr00m335/kanban-board/wire"
)

// ProjectDir is the subdirectory of the data dir holding project
// files.
const ProjectDir = "projects"

// MaxNameLen is the longest project name Create accepts, in bytes.
const MaxNameLen = 256

// version + id + name prefix + description prefix + board count
const minDocumentLen = 1 + IDLen + 1 + 1 + 1

// PathProvider supplies the application data directory.
type PathProvider interface {
	AppDataDir() (string, error)
}

// DirFunc adapts a function to a PathProvider.
type DirFunc func() (string, error)

func (f DirFunc) AppDataDir() (string, error) {
	return f()
}

// Dir is a fixed data directory.
type Dir string

func (d Dir) AppDataDir() (string, error) {
	return string(d), nil
}

// Store reads and writes project files under the data dir of Paths.
// It holds no other state; every call goes to disk.
type Store struct {
	Paths PathProvider
}

// New returns a Store using paths to find the data dir.
func New(paths PathProvider) *Store {
	return &Store{Paths: paths}
}

// Dir returns the data dir.
func (s *Store) Dir() (dir string, err error) {
	dir, err = s.Paths.AppDataDir()
	if err != nil {
		return "", kanban.FromCause(kanban.PathError, err)
	}
	return filepath.Clean(dir), nil
}

// ProjectDir returns the directory holding project files.
func (s *Store) ProjectDir() (dir string, err error) {
	dir, err = s.Dir()
	if err != nil {
		return
	}
	return filepath.Join(dir, ProjectDir), nil
}

// Path returns the location of the file for id.
func (s *Store) Path(id ID) (*Path, error) {
	return Path{}.New(s, id.String())
}

func validate(name, description string) error {
	if len(name) == 0 || len(description) == 0 {
		return kanban.New(kanban.ValidationError,
			"Empty Name or Description: The name and description of the project must not be empty")
	}
	if len(name) > MaxNameLen {
		return kanban.New(kanban.ValidationError,
			"Name too long: Project name must be between 1 and 256 characters")
	}
	return nil
}

// Create makes a new project with no boards and writes it to disk.
func (s *Store) Create(name, description string) (p *Project, err error) {
	err = validate(name, description)
	if err != nil {
		return
	}
	p = &Project{
		ID:          NewID(),
		Name:        name,
		Description: description,
		Boards:      []Board{},
	}
	err = s.write(p)
	if err != nil {
		return nil, err
	}
	log.Debugf("created project %s %q", p.ID, p.Name)
	return
}

// Save replaces the file for p.ID with the encoding of p.
func (s *Store) Save(p *Project) (*Project, error) {
	err := s.write(p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) write(p *Project) (err error) {
	w := wire.NewWriter()
	err = EncodeProject(w, p)
	if err != nil {
		return
	}
	return s.writeFile(w)
}

// writeFile names the file after the id bytes in the encoded header.
func (s *Store) writeFile(w *wire.Writer) (err error) {
	buf := w.Bytes()
	if len(buf) < minDocumentLen {
		return kanban.New(kanban.FormatError, "Missing project header")
	}
	var id ID
	copy(id[:], buf[1:1+IDLen])
	path, err := s.Path(id)
	if err != nil {
		return
	}
	err = w.WriteToFile(path.Abs)
	if err != nil {
		return
	}
	log.Debugf("saved %s", path.Canon)
	return
}

func (s *Store) open(idHex string) (path *Path, r *wire.Reader, err error) {
	id, err := ParseID(idHex)
	if err != nil {
		return
	}
	path, err = s.Path(id)
	if err != nil {
		return
	}
	r, err = wire.ReadFile(path.Abs)
	return
}

// ReadHeader decodes only the header of the project named by idHex.
func (s *Store) ReadHeader(idHex string) (p *Project, err error) {
	path, r, err := s.open(idHex)
	if err != nil {
		return
	}
	p, err = DecodeHeader(r)
	if err != nil {
		return nil, kanban.Annotate(err, path.Canon)
	}
	return
}

// Read decodes the whole project named by idHex.
func (s *Store) Read(idHex string) (p *Project, err error) {
	path, r, err := s.open(idHex)
	if err != nil {
		return
	}
	p, err = DecodeProject(r)
	if err != nil {
		return nil, kanban.Annotate(err, path.Canon)
	}
	log.Debugf("read %s: %d bytes, %d boards", path.Canon, r.Len(), len(p.Boards))
	return
}

// Delete removes the file of the project named by idHex.
func (s *Store) Delete(idHex string) (err error) {
	id, err := ParseID(idHex)
	if err != nil {
		return
	}
	path, err := s.Path(id)
	if err != nil {
		return
	}
	err = os.Remove(path.Abs)
	if os.IsNotExist(err) {
		return kanban.Wrap(kanban.IoError, err, "Project does not exists")
	}
	if err != nil {
		return kanban.FromCause(kanban.IoError, errors.Wrapf(err, "cannot remove %s", path.Canon))
	}
	log.Debugf("deleted %s", path.Canon)
	return
}

// ScanError records a project file that could not be listed.
type ScanError struct {
	Name string
	Err  error
}

func (e ScanError) Error() string {
	return e.Name + ": " + e.Err.Error()
}

// Scan reads the header of every file in the project directory, in
// file name order.  Files that fail are returned in failed instead of
// stopping the scan.  A missing project directory is an IoError.
func (s *Store) Scan() (projects []*Project, failed []ScanError, err error) {
	dir, err := s.ProjectDir()
	if err != nil {
		return
	}
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, nil, kanban.FromCause(kanban.IoError, err)
	}
	projects = []*Project{}
	for _, entry := range entries {
		name := entry.Name()
		p, err := s.ReadHeader(name)
		if err != nil {
			failed = append(failed, ScanError{Name: name, Err: err})
			continue
		}
		projects = append(projects, p)
	}
	return projects, failed, nil
}

// List returns the header of every readable project.  Unreadable files
// are skipped and logged at debug level.
func (s *Store) List() (projects []*Project, err error) {
	projects, failed, err := s.Scan()
	if err != nil {
		return
	}
	for _, f := range failed {
		log.Debugf("skipping %s", f)
	}
	return
}
