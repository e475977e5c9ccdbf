package db

import (
	"fmt"

	kanban "github.com/shr00m335/kanban-board"
	"github.com/shr00m335/kanban-board/wire"
)

// FileVersion is the only document version this package reads or
// writes.
const FileVersion byte = 0

// smallest encodings, used to reject counts that cannot fit in what
// is left of the buffer
const (
	minBoardLen = 2 // name prefix + list count
	minListLen  = 5 // title prefix + color + item count
	minItemLen  = 1 // length prefix
)

// EncodeHeader writes the version, id, name and description.
func EncodeHeader(w *wire.Writer, p *Project) (err error) {
	w.WriteByte(FileVersion)
	w.WriteBytes(p.ID[:])
	err = w.WriteShortString(p.Name)
	if err != nil {
		return kanban.Annotate(err, "project name")
	}
	err = w.WriteLongString(p.Description)
	if err != nil {
		return kanban.Annotate(err, "project description")
	}
	return
}

// EncodeList writes one list.
func EncodeList(w *wire.Writer, l *List) (err error) {
	err = w.WriteShortString(l.Title)
	if err != nil {
		return kanban.Annotate(err, "list title")
	}
	w.WriteBytes(l.Color[:])
	w.WriteLeb128(uint32(len(l.Items)))
	for i, item := range l.Items {
		err = w.WriteLongString(item)
		if err != nil {
			return kanban.Annotate(err, fmt.Sprintf("item %d", i))
		}
	}
	return
}

// EncodeBoard writes one board and its lists.
func EncodeBoard(w *wire.Writer, b *Board) (err error) {
	err = w.WriteShortString(b.Name)
	if err != nil {
		return kanban.Annotate(err, "board name")
	}
	w.WriteLeb128(uint32(len(b.Lists)))
	for i := range b.Lists {
		err = EncodeList(w, &b.Lists[i])
		if err != nil {
			return kanban.Annotate(err, fmt.Sprintf("list %d", i))
		}
	}
	return
}

// EncodeBoards writes the board count followed by each board.
func EncodeBoards(w *wire.Writer, boards []Board) (err error) {
	w.WriteLeb128(uint32(len(boards)))
	for i := range boards {
		err = EncodeBoard(w, &boards[i])
		if err != nil {
			return kanban.Annotate(err, fmt.Sprintf("board %d", i))
		}
	}
	return
}

// EncodeProject writes the whole document.
func EncodeProject(w *wire.Writer, p *Project) (err error) {
	err = EncodeHeader(w, p)
	if err != nil {
		return
	}
	return EncodeBoards(w, p.Boards)
}

// DecodeHeader reads the version, id, name and description.  The
// returned project has nil Boards.
func DecodeHeader(r *wire.Reader) (p *Project, err error) {
	version, err := r.NextByte()
	if err != nil {
		return nil, kanban.Annotate(err, "version")
	}
	if version != FileVersion {
		return nil, kanban.New(kanban.VersionError, "Project version not supported")
	}
	raw, err := r.NextBytes(IDLen)
	if err != nil {
		return nil, kanban.Annotate(err, "project id")
	}
	p = &Project{}
	copy(p.ID[:], raw)
	p.Name, err = r.NextString(wire.Short)
	if err != nil {
		return nil, kanban.Annotate(err, "project name")
	}
	p.Description, err = r.NextString(wire.Leb128)
	if err != nil {
		return nil, kanban.Annotate(err, "project description")
	}
	return
}

func count(r *wire.Reader, what string, minLen int) (n int, err error) {
	v, err := r.NextLeb128()
	if err != nil {
		return 0, kanban.Annotate(err, what+" count")
	}
	if uint64(v)*uint64(minLen) > uint64(r.Remaining()) {
		return 0, kanban.Errorf(kanban.FormatError,
			"%s count %d cannot fit in %d remaining bytes", what, v, r.Remaining())
	}
	return int(v), nil
}

// DecodeList reads one list.
func DecodeList(r *wire.Reader) (l List, err error) {
	l.Title, err = r.NextString(wire.Short)
	if err != nil {
		return l, kanban.Annotate(err, "list title")
	}
	raw, err := r.NextBytes(len(l.Color))
	if err != nil {
		return l, kanban.Annotate(err, "list color")
	}
	copy(l.Color[:], raw)
	n, err := count(r, "item", minItemLen)
	if err != nil {
		return
	}
	l.Items = make([]string, 0, n)
	for i := 0; i < n; i++ {
		var item string
		item, err = r.NextString(wire.Leb128)
		if err != nil {
			return l, kanban.Annotate(err, fmt.Sprintf("item %d", i))
		}
		l.Items = append(l.Items, item)
	}
	return
}

// DecodeBoard reads one board and its lists.
func DecodeBoard(r *wire.Reader) (b Board, err error) {
	b.Name, err = r.NextString(wire.Short)
	if err != nil {
		return b, kanban.Annotate(err, "board name")
	}
	n, err := count(r, "list", minListLen)
	if err != nil {
		return
	}
	b.Lists = make([]List, 0, n)
	for i := 0; i < n; i++ {
		var l List
		l, err = DecodeList(r)
		if err != nil {
			return b, kanban.Annotate(err, fmt.Sprintf("list %d", i))
		}
		b.Lists = append(b.Lists, l)
	}
	return
}

// DecodeBoards reads the board count followed by each board.
func DecodeBoards(r *wire.Reader) (boards []Board, err error) {
	n, err := count(r, "board", minBoardLen)
	if err != nil {
		return
	}
	boards = make([]Board, 0, n)
	for i := 0; i < n; i++ {
		var b Board
		b, err = DecodeBoard(r)
		if err != nil {
			return nil, kanban.Annotate(err, fmt.Sprintf("board %d", i))
		}
		boards = append(boards, b)
	}
	return
}

// DecodeProject reads a whole document.  Bytes left over after the
// last board are a FormatError.
func DecodeProject(r *wire.Reader) (p *Project, err error) {
	p, err = DecodeHeader(r)
	if err != nil {
		return
	}
	p.Boards, err = DecodeBoards(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, kanban.Errorf(kanban.FormatError,
			"%d trailing bytes after last board", r.Remaining())
	}
	return
}
