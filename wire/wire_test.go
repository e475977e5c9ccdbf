package wire

import (
	"bytes"
	"testing"

	kanban "github.com/shr00m335/kanban-board"
)

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

func tbytes(t *testing.T, expect, got []byte) {
	t.Helper()
	tassert(t, bytes.Equal(expect, got), "expected % X, got % X", expect, got)
}

// Strings written in a mode come back in the same mode.
func TestStringModesRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteStringWithLength("Board", Short)
	w.WriteStringWithLength("a longer description", Leb128)
	w.WriteStringWithLength("", Short)
	w.WriteStringWithLength("", Leb128)
	w.WriteStringWithLength("日本語", Short)

	r := NewReader(w.Bytes())
	for _, c := range []struct {
		mode   LengthMode
		expect string
	}{
		{Short, "Board"},
		{Leb128, "a longer description"},
		{Short, ""},
		{Leb128, ""},
		{Short, "日本語"},
	} {
		got, err := r.NextString(c.mode)
		tassert(t, err == nil, "%v", err)
		tassert(t, got == c.expect, "expected %q, got %q", c.expect, got)
	}
	tassert(t, r.Remaining() == 0, "remaining %d", r.Remaining())
}
