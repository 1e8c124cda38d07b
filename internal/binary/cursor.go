package binary

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Cursor is a bounds-checked sequential reader over an immutable byte
// buffer. Reads that would run past the end return the zero value and
// leave the cursor where it was; truncated input degrades gracefully
// instead of aborting the decode.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor wraps a byte slice. The slice is not copied; callers must
// not mutate it while the cursor is in use.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// Skip advances the cursor by n bytes, clamping at the end of the buffer.
func (c *Cursor) Skip(n int) {
	if n < 0 {
		return
	}
	c.off += n
	if c.off > len(c.buf) {
		c.off = len(c.buf)
	}
}

// ReadU8 reads one byte, or 0 if none remain.
func (c *Cursor) ReadU8() uint8 {
	if c.Remaining() < 1 {
		return 0
	}
	v := c.buf[c.off]
	c.off++
	return v
}

// ReadU16 reads a big-endian uint16, or 0 on truncation.
func (c *Cursor) ReadU16() uint16 {
	if c.Remaining() < 2 {
		return 0
	}
	v := binary.BigEndian.Uint16(c.buf[c.off:])
	c.off += 2
	return v
}

// ReadU32 reads a big-endian uint32, or 0 on truncation.
func (c *Cursor) ReadU32() uint32 {
	if c.Remaining() < 4 {
		return 0
	}
	v := binary.BigEndian.Uint32(c.buf[c.off:])
	c.off += 4
	return v
}

// ReadBytes reads exactly n bytes, or nil if fewer remain. The returned
// slice aliases the underlying buffer.
func (c *Cursor) ReadBytes(n int) []byte {
	if n < 0 || c.Remaining() < n {
		return nil
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b
}

// ReadFixedString reads an n-byte field, strips trailing NUL padding and
// replaces invalid UTF-8 sequences. Truncated input yields "".
func (c *Cursor) ReadFixedString(n int) string {
	b := c.ReadBytes(n)
	if b == nil {
		return ""
	}
	b = bytes.TrimRight(b, "\x00")
	return strings.ToValidUTF8(string(b), "�")
}
