// SPDX-License-Identifier: GPL-2.0-or-later

// Package probe picks the decoder for a buffer of unknown type.
package probe

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"multiasset/bsp"
	"multiasset/decode"
	"multiasset/spr"
	"multiasset/wad"
)

var ErrUnsupported = errors.New("unsupported file")

type Kind int

const (
	KindUnknown Kind = iota
	KindBsp
	KindWad
	KindSprite
)

func (k Kind) String() string {
	switch k {
	case KindBsp:
		return "bsp"
	case KindWad:
		return "wad"
	case KindSprite:
		return "sprite"
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String for the known kinds.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindBsp, KindWad, KindSprite} {
		if k.String() == s {
			return k, true
		}
	}
	return KindUnknown, false
}

// Asset holds exactly one decoded file, selected by Kind.
type Asset struct {
	Kind   Kind
	Bsp    *bsp.File
	Wad    *wad.File
	Sprite *spr.File
}

// Format describes one decoder. Higher priorities are tried first.
type Format struct {
	Kind      Kind
	Name      string
	Priority  int
	FileTypes []string

	decode func([]byte) (Asset, error)
}

// Matches reports whether the base name of path fits one of f's file types.
func (f Format) Matches(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, pattern := range f.FileTypes {
		if ok, _ := filepath.Match(pattern, base); ok {
			return ok
		}
	}
	return false
}

// Decode runs only this format's decoder.
func (f Format) Decode(data []byte) (Asset, error) {
	return f.decode(data)
}

var formats = func() []Format {
	fs := []Format{
		{
			Kind:      KindBsp,
			Name:      "Half-Life BSP v30",
			Priority:  -100, // no magic, version only
			FileTypes: []string{"*.bsp"},
			decode: func(data []byte) (Asset, error) {
				f, err := bsp.Decode(data)
				return Asset{Kind: KindBsp, Bsp: f}, err
			},
		},
		{
			Kind:      KindWad,
			Name:      "WAD2/WAD3 texture archive",
			FileTypes: []string{"*.wad"},
			decode: func(data []byte) (Asset, error) {
				f, err := wad.Decode(data)
				return Asset{Kind: KindWad, Wad: f}, err
			},
		},
		{
			Kind:      KindSprite,
			Name:      "IDSP v2 sprite",
			FileTypes: []string{"*.spr"},
			decode: func(data []byte) (Asset, error) {
				f, err := spr.Decode(data)
				return Asset{Kind: KindSprite, Sprite: f}, err
			},
		},
	}
	sort.SliceStable(fs, func(i, j int) bool {
		return fs[i].Priority > fs[j].Priority
	})
	return fs
}()

// Formats returns the known formats in the order Decode tries them.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// ByKind returns the format decoding k.
func ByKind(k Kind) (Format, bool) {
	for _, f := range formats {
		if f.Kind == k {
			return f, true
		}
	}
	return Format{}, false
}

// Decode tries every format by priority. The first format that does not
// report a mismatch decides the result. ErrUnsupported is returned only when
// all of them reject the buffer as foreign.
func Decode(data []byte) (Asset, error) {
	for _, f := range formats {
		a, err := f.decode(data)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, decode.ErrFormatMismatch) {
			return Asset{}, errors.Wrap(err, f.Kind.String())
		}
		slog.Debug("probe: format mismatch", slog.String("format", f.Name), slog.Any("err", err))
	}
	return Asset{}, ErrUnsupported
}
