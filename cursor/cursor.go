// SPDX-License-Identifier: GPL-2.0-or-later

// Package cursor provides a bounds-checked little-endian reader over an
// immutable byte buffer.
package cursor

import (
	"bytes"
	"encoding/binary"
	"math"

	"multiasset/decode"
)

// Cursor reads from a fixed window of a buffer. The buffer is never written.
// Several cursors may share one buffer.
type Cursor struct {
	data []byte
	pos  int
}

func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Position returns the read position relative to the start of the window.
func (c *Cursor) Position() int {
	return c.pos
}

func (c *Cursor) SetPosition(n int) error {
	if n < 0 || n > len(c.data) {
		return decode.OutOfRange("position %d outside [0,%d]", n, len(c.data))
	}
	c.pos = n
	return nil
}

// Len returns the size of the window.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

func (c *Cursor) Skip(n int) error {
	if n < 0 {
		return decode.OutOfRange("negative skip %d", n)
	}
	if n > c.Remaining() {
		return decode.OutOfRange("skip %d at %d of %d", n, c.pos, len(c.data))
	}
	c.pos += n
	return nil
}

func (c *Cursor) next(n int) ([]byte, error) {
	if n < 0 {
		return nil, decode.OutOfRange("negative read %d", n)
	}
	if n > c.Remaining() {
		return nil, decode.OutOfRange("read %d at %d of %d", n, c.pos, len(c.data))
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadInto fills dst completely or fails without moving.
func (c *Cursor) ReadInto(dst []byte) error {
	b, err := c.next(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// ReadBytes returns a copy of the next n bytes. The size check happens
// before the allocation.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.next(n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

// ReadCount is ReadBytes for sizes computed in a wider type, like
// width*height products read from a file.
func (c *Cursor) ReadCount(n uint64) ([]byte, error) {
	if n > uint64(c.Remaining()) {
		return nil, decode.OutOfRange("read %d at %d of %d", n, c.pos, len(c.data))
	}
	return c.ReadBytes(int(n))
}

func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint8()
	return int8(v), err
}

func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFixedString reads n bytes and cuts them at the first NUL.
func (c *Cursor) ReadFixedString(n int) (string, error) {
	b, err := c.next(n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}

// Subview returns an independent cursor over the window from offset to the
// end. The receiver does not move.
func (c *Cursor) Subview(offset int) (*Cursor, error) {
	if offset < 0 || offset > len(c.data) {
		return nil, decode.OutOfRange("subview at %d of %d", offset, len(c.data))
	}
	return &Cursor{data: c.data[offset:len(c.data):len(c.data)]}, nil
}

// SubviewN is Subview limited to count bytes.
func (c *Cursor) SubviewN(offset, count int) (*Cursor, error) {
	if offset < 0 || count < 0 || offset > len(c.data) || count > len(c.data)-offset {
		return nil, decode.OutOfRange("subview [%d,+%d) of %d", offset, count, len(c.data))
	}
	end := offset + count
	return &Cursor{data: c.data[offset:end:end]}, nil
}
