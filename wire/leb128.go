package wire

import (
	kanban "github.com/shr00m335/kanban-board"
)

// LengthMode selects how a string's byte length is prefixed.  The
// writer and the reader must use the same mode for a given field.
type LengthMode int

const (
	// Leb128 prefixes the exact byte length as a leb128 number.
	Leb128 LengthMode = iota
	// Short prefixes a single length byte, capped at MaxShortLen.
	Short
)

func (m LengthMode) String() string {
	switch m {
	case Leb128:
		return "leb128"
	case Short:
		return "short"
	}
	return "unknown"
}

const (
	// MaxShortLen is the largest length a Short prefix can express.
	MaxShortLen = 255

	// MaxLeb128Len is the number of bytes needed for the largest
	// uint32.
	MaxLeb128Len = 5
)

// AppendLeb128 appends v to buf as 7-bit groups, least significant
// first, with the continuation bit set on every group but the last.
func AppendLeb128(buf []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if v == 0 {
			return buf
		}
	}
}

// Leb128Len returns the number of bytes AppendLeb128 emits for v.
func Leb128Len(v uint32) (n int) {
	for {
		n++
		v >>= 7
		if v == 0 {
			return
		}
	}
}

// DecodeLeb128 decodes a leb128 number from the start of buf and
// returns it along with the number of bytes consumed.  A continuation
// bit running off the end of buf, more than MaxLeb128Len groups, or
// payload bits beyond 32 are all malformed input.
func DecodeLeb128(buf []byte) (v uint32, n int, err error) {
	var shift uint
	for i, b := range buf {
		if i >= MaxLeb128Len {
			return 0, 0, kanban.Errorf(kanban.NumberError,
				"leb128 number longer than %d bytes", MaxLeb128Len)
		}
		payload := uint32(b & 0x7f)
		if i == MaxLeb128Len-1 && payload > 0x0f {
			return 0, 0, kanban.New(kanban.NumberError, "leb128 number overflows 32 bits")
		}
		v |= payload << shift
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, kanban.Errorf(kanban.NumberError,
		"unterminated leb128 number after %d bytes", len(buf))
}
