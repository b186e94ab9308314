// SPDX-License-Identifier: GPL-2.0-or-later

package cursor

import (
	"errors"
	"testing"

	"multiasset/decode"
)

func TestReadNumbers(t *testing.T) {
	c := New([]byte{
		0x7f,
		0xff,
		0x34, 0x12,
		0xfe, 0xff,
		0x78, 0x56, 0x34, 0x12,
		0xff, 0xff, 0xff, 0xff,
		0x00, 0x00, 0x80, 0x3f,
	})
	u8, err := c.ReadUint8()
	if err != nil || u8 != 0x7f {
		t.Errorf("ReadUint8 = %v, %v", u8, err)
	}
	i8, err := c.ReadInt8()
	if err != nil || i8 != -1 {
		t.Errorf("ReadInt8 = %v, %v", i8, err)
	}
	u16, err := c.ReadUint16()
	if err != nil || u16 != 0x1234 {
		t.Errorf("ReadUint16 = %x, %v", u16, err)
	}
	i16, err := c.ReadInt16()
	if err != nil || i16 != -2 {
		t.Errorf("ReadInt16 = %v, %v", i16, err)
	}
	u32, err := c.ReadUint32()
	if err != nil || u32 != 0x12345678 {
		t.Errorf("ReadUint32 = %x, %v", u32, err)
	}
	i32, err := c.ReadInt32()
	if err != nil || i32 != -1 {
		t.Errorf("ReadInt32 = %v, %v", i32, err)
	}
	f, err := c.ReadFloat32()
	if err != nil || f != 1 {
		t.Errorf("ReadFloat32 = %v, %v", f, err)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", c.Remaining())
	}
	if _, err := c.ReadUint8(); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("read past end: got %v, want out of range", err)
	}
}

func TestShortReadDoesNotMove(t *testing.T) {
	c := New([]byte{1, 2, 3})
	if _, err := c.ReadUint32(); !errors.Is(err, decode.ErrOutOfRange) {
		t.Fatalf("ReadUint32 on 3 bytes: %v", err)
	}
	if c.Position() != 0 {
		t.Errorf("Position = %d after failed read", c.Position())
	}
	if err := c.ReadInto(make([]byte, 4)); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("ReadInto 4 of 3: %v", err)
	}
	if _, err := c.ReadCount(1 << 40); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("ReadCount huge: %v", err)
	}
}

func TestReadFixedString(t *testing.T) {
	tests := []struct {
		data       []byte
		n          int
		shouldFail bool
		result     string
	}{
		{[]byte{'h', 'e', 'l', 'l', 'o', 0, 's', 't'}, 8, false, "hello"},
		{[]byte{'W', 'A', 'D', '3'}, 4, false, "WAD3"},
		{[]byte{0, 'x', 'y'}, 3, false, ""},
		{[]byte{'a', 'b'}, 3, true, ""},
	}
	for i, tc := range tests {
		c := New(tc.data)
		s, err := c.ReadFixedString(tc.n)
		if err != nil {
			if !tc.shouldFail {
				t.Errorf("Testcase %d should not return error: %v", i, err)
			}
			continue
		}
		if tc.shouldFail {
			t.Errorf("Testcase %d should return error", i)
			continue
		}
		if s != tc.result {
			t.Errorf("Testcase %d. got: %q, want %q", i, s, tc.result)
		}
		if c.Position() != tc.n {
			t.Errorf("Testcase %d. position %d, want %d", i, c.Position(), tc.n)
		}
	}
}

func TestSetPosition(t *testing.T) {
	c := New(make([]byte, 4))
	if err := c.SetPosition(4); err != nil {
		t.Errorf("SetPosition(len): %v", err)
	}
	if err := c.SetPosition(5); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("SetPosition(len+1): %v", err)
	}
	if err := c.SetPosition(-1); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("SetPosition(-1): %v", err)
	}
	if c.Position() != 4 {
		t.Errorf("Position = %d, want 4", c.Position())
	}
}

func TestSubview(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	c := New(data)
	if _, err := c.ReadUint16(); err != nil {
		t.Fatal(err)
	}
	s, err := c.Subview(4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.ReadUint8()
	if err != nil || b != 4 {
		t.Errorf("subview ReadUint8 = %v, %v", b, err)
	}
	if c.Position() != 2 {
		t.Errorf("outer cursor moved to %d", c.Position())
	}
	n, err := c.SubviewN(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if n.Len() != 3 {
		t.Errorf("SubviewN Len = %d", n.Len())
	}
	if _, err := n.ReadUint32(); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("read past bounded subview: %v", err)
	}
	if _, err := c.Subview(9); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("Subview(9): %v", err)
	}
	if _, err := c.SubviewN(6, 3); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("SubviewN(6,3): %v", err)
	}
	if _, err := c.SubviewN(-1, 1); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("SubviewN(-1,1): %v", err)
	}
}

func TestReadBytesCopies(t *testing.T) {
	data := []byte{9, 8, 7}
	c := New(data)
	b, err := c.ReadBytes(3)
	if err != nil {
		t.Fatal(err)
	}
	b[0] = 0
	if data[0] != 9 {
		t.Errorf("ReadBytes aliases the buffer")
	}
	if err := c.Skip(1); !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("Skip past end: %v", err)
	}
}
