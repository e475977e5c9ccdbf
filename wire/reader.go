package wire

import (
	"fmt"
	"io/ioutil"
	"unicode/utf8"

	kanban "github.com/shr00m335/kanban-board"
)

// Reader is a read cursor over an immutable byte buffer.  Every read
// is bounds-checked; a failed read leaves the position where it was.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader positioned at the start of a private copy
// of buf.
func NewReader(buf []byte) *Reader {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	return &Reader{buf: cp}
}

// ReadFile loads the whole file at path into a new Reader.
func ReadFile(path string) (r *Reader, err error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, kanban.FromCause(kanban.IoError, err)
	}
	return &Reader{buf: buf}, nil
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the size of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Bytes returns a copy of the unread bytes without advancing.
func (r *Reader) Bytes() []byte {
	out := make([]byte, r.Remaining())
	copy(out, r.buf[r.pos:])
	return out
}

func (r *Reader) need(n int) error {
	if n < 0 {
		return kanban.Errorf(kanban.BoundsError, "negative read of %d bytes at offset %d", n, r.pos)
	}
	if n > r.Remaining() {
		return kanban.Errorf(kanban.BoundsError,
			"out of bounds: need %d bytes at offset %d, %d remaining", n, r.pos, r.Remaining())
	}
	return nil
}

// PeekByte returns the byte at the current position without
// advancing.
func (r *Reader) PeekByte() (b byte, err error) {
	err = r.need(1)
	if err != nil {
		return
	}
	return r.buf[r.pos], nil
}

// NextByte returns the byte at the current position and advances by
// one.
func (r *Reader) NextByte() (b byte, err error) {
	b, err = r.PeekByte()
	if err != nil {
		return
	}
	r.pos++
	return
}

// NextBytes returns a copy of the next n bytes and advances by n.
func (r *Reader) NextBytes(n int) (out []byte, err error) {
	err = r.need(n)
	if err != nil {
		return
	}
	out = make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return
}

// NextStringByLength decodes the next n bytes as UTF-8.  Invalid
// UTF-8 is a TextError and does not consume any input.
func (r *Reader) NextStringByLength(n int) (s string, err error) {
	err = r.need(n)
	if err != nil {
		return
	}
	raw := r.buf[r.pos : r.pos+n]
	if !utf8.Valid(raw) {
		return "", kanban.Errorf(kanban.TextError, "invalid UTF-8 in %d bytes at offset %d", n, r.pos)
	}
	r.pos += n
	return string(raw), nil
}

// NextLeb128 decodes an unsigned leb128 number.  On failure the
// position is unchanged.
func (r *Reader) NextLeb128() (v uint32, err error) {
	if r.Remaining() == 0 {
		return 0, kanban.Errorf(kanban.BoundsError,
			"out of bounds: need a leb128 number at offset %d, 0 remaining", r.pos)
	}
	v, n, err := DecodeLeb128(r.buf[r.pos:])
	if err != nil {
		return 0, kanban.Annotate(err, fmt.Sprintf("offset %d", r.pos))
	}
	r.pos += n
	return v, nil
}

// NextString reads a length prefix in the given mode followed by that
// many bytes of UTF-8.  On any failure the position is restored to
// where it was before the call.
func (r *Reader) NextString(mode LengthMode) (s string, err error) {
	start := r.pos
	defer func() {
		if err != nil {
			r.pos = start
		}
	}()

	var n int
	switch mode {
	case Short:
		var b byte
		b, err = r.NextByte()
		if err != nil {
			return
		}
		n = int(b)
	case Leb128:
		var v uint32
		v, err = r.NextLeb128()
		if err != nil {
			return
		}
		if uint64(v) > uint64(r.Remaining()) {
			return "", kanban.Errorf(kanban.BoundsError,
				"out of bounds: string of %d bytes at offset %d, %d remaining", v, r.pos, r.Remaining())
		}
		n = int(v)
	default:
		return "", kanban.Errorf(kanban.FormatError, "unknown length mode %d", int(mode))
	}
	return r.NextStringByLength(n)
}
