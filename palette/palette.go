// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"image/color"

	"multiasset/cursor"
)

// Size is the number of entries of every embedded palette.
const Size = 256

type Color struct {
	R uint8
	G uint8
	B uint8
}

// Palette is either empty (no embedded bitmap) or exactly Size colors.
type Palette []Color

// Read reads Size RGB triples.
func Read(c *cursor.Cursor) (Palette, error) {
	// 256 colors = 768 bytes
	b, err := c.ReadBytes(Size * 3)
	if err != nil {
		return nil, err
	}
	p := make(Palette, Size)
	bi := 0
	for i := range p {
		p[i] = Color{R: b[bi], G: b[bi+1], B: b[bi+2]}
		bi += 3
	}
	return p, nil
}

func (p Palette) Empty() bool {
	return len(p) == 0
}

// Table expands the palette to rgba 8bit. With alpha set the last entry is
// fully transparent. An empty palette yields opaque black.
func (p Palette) Table(alpha bool) [Size * 4]uint8 {
	var t [Size * 4]uint8
	pi := 0
	for i := 0; i < Size; i++ {
		if i < len(p) {
			t[pi] = p[i].R
			t[pi+1] = p[i].G
			t[pi+2] = p[i].B
		}
		t[pi+3] = 255
		pi += 4
	}
	if alpha {
		t[Size*4-1] = 0
	}
	return t
}

// Model converts the palette for use with image.Paletted.
func (p Palette) Model() color.Palette {
	m := make(color.Palette, len(p))
	for i, c := range p {
		m[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	return m
}
