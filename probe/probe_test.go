// SPDX-License-Identifier: GPL-2.0-or-later

package probe

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multiasset/decode"
)

func le(vals ...interface{}) []byte {
	var b bytes.Buffer
	for _, v := range vals {
		if err := binary.Write(&b, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
	return b.Bytes()
}

func emptyBsp() []byte {
	var dir [15][2]int32
	return le(int32(30), dir)
}

func emptyWad(id string) []byte {
	return append([]byte(id), le(int32(0), int32(12))...)
}

func emptySprite() []byte {
	b := append([]byte("IDSP"), le(int32(2), int32(2), int32(0), float32(1), int32(8), int32(8), int32(0), float32(0), int32(0), int16(256))...)
	return append(b, make([]byte, 768)...)
}

func TestFormatsOrder(t *testing.T) {
	fs := Formats()
	require.Len(t, fs, 3)
	assert.Equal(t, KindWad, fs[0].Kind)
	assert.Equal(t, KindSprite, fs[1].Kind)
	assert.Equal(t, KindBsp, fs[2].Kind)
	assert.Equal(t, -100, fs[2].Priority)

	fs[0].Name = "changed"
	assert.NotEqual(t, "changed", Formats()[0].Name)
}

func TestFormatMatches(t *testing.T) {
	f, ok := ByKind(KindSprite)
	require.True(t, ok)
	assert.True(t, f.Matches("sprites/FLARE.SPR"))
	assert.True(t, f.Matches("pak0.pak:sprites/s_bubble.spr"))
	assert.False(t, f.Matches("maps/start.bsp"))

	_, ok = ByKind(KindUnknown)
	assert.False(t, ok)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindBsp, KindWad, KindSprite} {
		got, ok := ParseKind(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	for _, s := range []string{"unknown", "mdl", "", "WAD"} {
		_, ok := ParseKind(s)
		assert.False(t, ok, s)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		kind Kind
	}{
		{"bsp", emptyBsp(), KindBsp},
		{"wad2", emptyWad("WAD2"), KindWad},
		{"wad3", emptyWad("WAD3"), KindWad},
		{"sprite", emptySprite(), KindSprite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Decode(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, a.Kind)
			assert.Equal(t, tc.kind == KindBsp, a.Bsp != nil)
			assert.Equal(t, tc.kind == KindWad, a.Wad != nil)
			assert.Equal(t, tc.kind == KindSprite, a.Sprite != nil)
		})
	}
}

func TestDecodeUnsupported(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("hello world"), emptyWad("WAD1"), le(int32(29))} {
		_, err := Decode(data)
		assert.ErrorIs(t, err, ErrUnsupported)
	}
}

func TestDecodeStructuralError(t *testing.T) {
	broken := append([]byte("WAD2"), le(int32(-1), int32(12))...)
	_, err := Decode(broken)
	assert.ErrorIs(t, err, decode.ErrMalformedLump)
	assert.NotErrorIs(t, err, ErrUnsupported)

	f, ok := ByKind(KindBsp)
	require.True(t, ok)
	_, err = f.Decode(emptyWad("WAD2"))
	assert.ErrorIs(t, err, decode.ErrFormatMismatch)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bsp", KindBsp.String())
	assert.Equal(t, "sprite", KindSprite.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
