package db

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/stevegt/goadapt"

	kanban "github.com/shr00m335/kanban-board"
	"github.com/shr00m335/kanban-board/wire"
)

const testDirPrefix = "kanban"

func mkbuf(s string) []byte {
	tmp := []byte(s)
	return tmp
}

// test boolean condition
func tassert(t *testing.T, cond bool, txt string, args ...interface{}) {
	t.Helper() // cause file:line info to show caller
	if !cond {
		t.Fatalf(txt, args...)
	}
}

func tkind(t *testing.T, err error, kind kanban.Kind) {
	t.Helper()
	tassert(t, err != nil, "expected %v, got no error", kind)
	got, ok := kanban.KindOf(err)
	tassert(t, ok, "expected %v, got foreign error %#v", kind, err)
	tassert(t, got == kind, "expected %v, got %v (%v)", kind, got, err)
}

func tsame(t *testing.T, expect, got interface{}) {
	t.Helper()
	diff := cmp.Diff(expect, got)
	tassert(t, diff == "", "mismatch (-expect +got):\n%s", diff)
}

// setup returns a store on a fresh data dir.  With DEBUG=1 the dir is
// kept and printed.
func setup(t *testing.T) *Store {
	var err error
	var dir string

	debug := os.Getenv("DEBUG")
	if debug == "1" {
		dir, err = ioutil.TempDir("", testDirPrefix)
		Ck(err)
		fmt.Println(dir)
		// no cleanup
	} else {
		dir = t.TempDir()
		// automatically cleaned up
	}
	return New(Dir(dir))
}

var testID = ID{
	0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
	0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
}

// sample returns a project with two boards of three lists each.
func sample(id ID) *Project {
	p := &Project{
		ID:          id,
		Name:        "Test Name",
		Description: "Test Description",
		Boards:      []Board{},
	}
	for i := 0; i < 2; i++ {
		b := Board{Name: fmt.Sprintf("Board %d", i+1), Lists: []List{}}
		for j := 0; j < 3; j++ {
			l := List{
				Title: fmt.Sprintf("List %d", j+1),
				Color: Color{byte(i), byte(j), 0xFF},
				Items: []string{},
			}
			for k := 0; k < j; k++ {
				l.Items = append(l.Items, fmt.Sprintf("Item %d.%d.%d", i+1, j+1, k+1))
			}
			b.Lists = append(b.Lists, l)
		}
		p.Boards = append(p.Boards, b)
	}
	return p
}

func encode(t *testing.T, p *Project) []byte {
	t.Helper()
	w := wire.NewWriter()
	err := EncodeProject(w, p)
	tassert(t, err == nil, "%v", err)
	return w.Bytes()
}
