package db

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	kanban "github.com/shr00m335/kanban-board"
)

// IDLen is the number of raw bytes in a project ID.
const IDLen = 16

// ID names a project and its file.
type ID [IDLen]byte

// NewID returns a fresh random ID.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the 32 hex character form of an ID.  Either case is
// accepted.
func ParseID(s string) (id ID, err error) {
	if len(s) != 2*IDLen {
		return id, kanban.New(kanban.IDError, "Invalid project ID")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return id, kanban.Wrap(kanban.IDError, err, "Invalid project ID")
	}
	return ID(u), nil
}

// String returns the file name form of id: 32 uppercase hex characters.
func (id ID) String() string {
	return strings.ToUpper(hex.EncodeToString(id[:]))
}

// IsZero is true for the all-zero ID.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Color is an RGB triple.
type Color [3]byte

// DefaultColor is used for new lists when no color is given.
var DefaultColor = Color{0xFF, 0xFF, 0xFF}

// ParseColor accepts "RRGGBB" or "#RRGGBB".
func ParseColor(s string) (c Color, err error) {
	raw := strings.TrimPrefix(s, "#")
	if len(raw) != 2*len(c) {
		return c, kanban.Errorf(kanban.ValidationError, "invalid color %q", s)
	}
	_, err = hex.Decode(c[:], []byte(raw))
	if err != nil {
		return c, kanban.Wrapf(kanban.ValidationError, err, "invalid color %q", s)
	}
	return
}

func (c Color) String() string {
	return "#" + strings.ToUpper(hex.EncodeToString(c[:]))
}

// List is a titled, colored column of items.
type List struct {
	Title string   `msgpack:"title"`
	Color Color    `msgpack:"color"`
	Items []string `msgpack:"items"`
}

// Board is a named, ordered set of lists.
type Board struct {
	Name  string `msgpack:"name"`
	Lists []List `msgpack:"lists"`
}

// Project is the whole document stored in one file.
type Project struct {
	ID          ID      `msgpack:"id"`
	Name        string  `msgpack:"name"`
	Description string  `msgpack:"description"`
	Boards      []Board `msgpack:"boards"`
}

// Board returns the board with the given name, or nil.
func (p *Project) Board(name string) *Board {
	for i := range p.Boards {
		if p.Boards[i].Name == name {
			return &p.Boards[i]
		}
	}
	return nil
}

// List returns the list with the given title, or nil.
func (b *Board) List(title string) *List {
	for i := range b.Lists {
		if b.Lists[i].Title == title {
			return &b.Lists[i]
		}
	}
	return nil
}
