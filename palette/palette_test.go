// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"errors"
	"image/color"
	"testing"

	"multiasset/cursor"
	"multiasset/decode"
)

func ramp() []byte {
	b := make([]byte, Size*3)
	for i := 0; i < Size; i++ {
		b[i*3] = byte(i)
		b[i*3+1] = byte(255 - i)
		b[i*3+2] = 7
	}
	return b
}

func TestRead(t *testing.T) {
	p, err := Read(cursor.New(ramp()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(p) != Size {
		t.Fatalf("len = %d, want %d", len(p), Size)
	}
	if want := (Color{R: 10, G: 245, B: 7}); p[10] != want {
		t.Errorf("p[10] = %v, want %v", p[10], want)
	}
}

func TestReadShort(t *testing.T) {
	_, err := Read(cursor.New(ramp()[:Size*3-1]))
	if !errors.Is(err, decode.ErrOutOfRange) {
		t.Errorf("Read short palette: %v", err)
	}
}

func TestTable(t *testing.T) {
	p, err := Read(cursor.New(ramp()))
	if err != nil {
		t.Fatal(err)
	}
	tb := p.Table(false)
	if tb[4*3] != 3 || tb[4*3+1] != 252 || tb[4*3+3] != 255 {
		t.Errorf("entry 3 = %v", tb[12:16])
	}
	if tb[Size*4-1] != 255 {
		t.Errorf("opaque table has transparent last entry")
	}
	if a := p.Table(true); a[Size*4-1] != 0 {
		t.Errorf("alpha table last entry alpha = %d", a[Size*4-1])
	}
	var empty Palette
	if !empty.Empty() {
		t.Errorf("nil palette not empty")
	}
	if e := empty.Table(false); e[0] != 0 || e[3] != 255 {
		t.Errorf("empty palette entry 0 = %v", e[:4])
	}
}

func TestModel(t *testing.T) {
	p := Palette{{R: 1, G: 2, B: 3}}
	m := p.Model()
	if len(m) != 1 || m[0] != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("Model() = %v", m)
	}
}
