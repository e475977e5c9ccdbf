package wire

import (
	"math"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"

	kanban "github.com/shr00m335/kanban-board"
)

// file modes
const (
	DirMode  = 0755
	FileMode = 0644
)

// Writer is an append-only byte sink.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the buffer written so far.  The caller must not
// modify it.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset empties the buffer, keeping its capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// WriteByte appends b.  It never fails; the error return satisfies
// io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// WriteBytes appends bs.
func (w *Writer) WriteBytes(bs []byte) {
	w.buf = append(w.buf, bs...)
}

// WriteLeb128 appends v as a leb128 number.
func (w *Writer) WriteLeb128(v uint32) {
	w.buf = AppendLeb128(w.buf, v)
}

// WriteString appends the raw bytes of s with no length prefix.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteStringWithLength appends a length prefix in the given mode
// followed by all of s.
//
// In Short mode the prefix is min(255, len(s)) but the whole string is
// still written, so strings longer than MaxShortLen cannot be read
// back from the prefix alone.  Files written by earlier releases depend
// on this layout; new code should use WriteShortString.
func (w *Writer) WriteStringWithLength(s string, mode LengthMode) {
	switch mode {
	case Short:
		n := len(s)
		if n > MaxShortLen {
			n = MaxShortLen
		}
		w.buf = append(w.buf, byte(n))
	case Leb128:
		Assert(uint64(len(s)) <= math.MaxUint32, "string of %d bytes overflows leb128 length", len(s))
		w.WriteLeb128(uint32(len(s)))
	default:
		Assert(false, "unknown length mode %d", int(mode))
	}
	w.WriteString(s)
}

// WriteShortString appends s with a single-byte length prefix, or
// fails with a FormatError if s does not fit.
func (w *Writer) WriteShortString(s string) error {
	if len(s) > MaxShortLen {
		return kanban.Errorf(kanban.FormatError,
			"short string of %d bytes exceeds %d byte limit", len(s), MaxShortLen)
	}
	w.WriteStringWithLength(s, Short)
	return nil
}

// WriteLongString appends s with a leb128 length prefix, or fails with
// a FormatError if its length does not fit in 32 bits.
func (w *Writer) WriteLongString(s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return kanban.Errorf(kanban.FormatError, "string of %d bytes exceeds leb128 length", len(s))
	}
	w.WriteStringWithLength(s, Leb128)
	return nil
}

// WriteToFile replaces the file at path with the buffer contents,
// creating parent directories as needed.  The data goes to a temporary
// file that is synced and then renamed over path, so readers see
// either the old file or the new one and a shorter write never leaves
// stale trailing bytes behind.
func (w *Writer) WriteToFile(path string) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, DirMode)
	if err != nil {
		return kanban.FromCause(kanban.IoError, errors.Wrapf(err, "cannot create %s", dir))
	}
	err = renameio.WriteFile(path, w.buf, FileMode)
	if err != nil {
		return kanban.FromCause(kanban.IoError, errors.Wrapf(err, "cannot write %s", path))
	}
	log.Debugf("wrote %d bytes to %s", len(w.buf), path)
	return
}
