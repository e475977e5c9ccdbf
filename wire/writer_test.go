package wire

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hlubek/readercomp"

	kanban "github.com/shr00m335/kanban-board"
)

func TestWriteByte(t *testing.T) {
	w := NewWriter()
	err := w.WriteByte(0x01)
	tassert(t, err == nil, "%v", err)
	tbytes(t, []byte{0x01}, w.Bytes())
}

func TestWriteBytes(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte{0x01, 0x02, 0x03})
	tbytes(t, []byte{0x01, 0x02, 0x03}, w.Bytes())
	tassert(t, w.Len() == 3, "len %d", w.Len())
	w.Reset()
	tassert(t, w.Len() == 0, "len after reset %d", w.Len())
}

func TestWriteLeb128(t *testing.T) {
	for v, expect := range map[uint32][]byte{
		0:     {0x00},
		127:   {0x7F},
		128:   {0x80, 0x01},
		300:   {0xAC, 0x02},
		16384: {0x80, 0x80, 0x01},
	} {
		w := NewWriter()
		w.WriteLeb128(v)
		tbytes(t, expect, w.Bytes())
	}
}

func TestWriteString(t *testing.T) {
	w := NewWriter()
	w.WriteString("Test")
	tbytes(t, mkbuf("Test"), w.Bytes())
}

func TestWriteStringWithLength(t *testing.T) {
	w := NewWriter()
	w.WriteStringWithLength("Test Name", Short)
	tbytes(t, append([]byte{0x09}, mkbuf("Test Name")...), w.Bytes())

	w = NewWriter()
	w.WriteStringWithLength("Test Description", Leb128)
	tbytes(t, append([]byte{0x10}, mkbuf("Test Description")...), w.Bytes())

	long := strings.Repeat("d", 200)
	w = NewWriter()
	w.WriteStringWithLength(long, Leb128)
	tbytes(t, append([]byte{0xC8, 0x01}, mkbuf(long)...), w.Bytes())
}

// The short prefix saturates at 255 while the whole payload is still
// written.
func TestWriteStringWithLengthShortCap(t *testing.T) {
	s := strings.Repeat("X", 300)
	w := NewWriter()
	w.WriteStringWithLength(s, Short)
	got := w.Bytes()
	tassert(t, len(got) == 301, "len %d", len(got))
	tassert(t, got[0] == 0xFF, "prefix %#x", got[0])
	tbytes(t, mkbuf(s), got[1:])

	// reading by the prefix alone recovers only the first 255 bytes
	r := NewReader(got)
	head, err := r.NextString(Short)
	tassert(t, err == nil, "%v", err)
	tassert(t, len(head) == 255, "len %d", len(head))
	tassert(t, r.Remaining() == 45, "remaining %d", r.Remaining())
}

func TestWriteShortString(t *testing.T) {
	w := NewWriter()
	err := w.WriteShortString(strings.Repeat("X", 255))
	tassert(t, err == nil, "%v", err)
	tassert(t, w.Len() == 256, "len %d", w.Len())

	w = NewWriter()
	err = w.WriteShortString(strings.Repeat("X", 256))
	tkind(t, err, kanban.FormatError)
	tassert(t, w.Len() == 0, "wrote %d bytes on failure", w.Len())
}

func TestWriteLongString(t *testing.T) {
	w := NewWriter()
	err := w.WriteLongString("abc")
	tassert(t, err == nil, "%v", err)
	tbytes(t, []byte{0x03, 'a', 'b', 'c'}, w.Bytes())
}

func TestWriteToFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "nested", "projects", "file")

	w := NewWriter()
	w.WriteBytes(mkbuf("a fairly long first version"))
	err := w.WriteToFile(fn)
	tassert(t, err == nil, "%v", err)

	// a shorter second write replaces the file completely
	w = NewWriter()
	w.WriteBytes(mkbuf("short"))
	err = w.WriteToFile(fn)
	tassert(t, err == nil, "%v", err)

	fh, err := os.Open(fn)
	tassert(t, err == nil, "%v", err)
	defer fh.Close()
	ok, err := readercomp.Equal(bytes.NewReader(mkbuf("short")), fh, 4096)
	tassert(t, err == nil, "%v", err)
	tassert(t, ok, "file content mismatch")

	// no temp files are left behind
	entries, err := ioutil.ReadDir(filepath.Dir(fn))
	tassert(t, err == nil, "%v", err)
	tassert(t, len(entries) == 1, "entries %d", len(entries))
}

func TestWriteToFileReadonlyDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	err := os.Chmod(dir, 0555)
	tassert(t, err == nil, "%v", err)
	defer os.Chmod(dir, 0755)

	w := NewWriter()
	w.WriteBytes(mkbuf("data"))
	err = w.WriteToFile(filepath.Join(dir, "projects", "file"))
	tkind(t, err, kanban.IoError)
}
