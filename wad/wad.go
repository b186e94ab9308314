// SPDX-License-Identifier: GPL-2.0-or-later

// Package wad decodes WAD2 and WAD3 texture archives.
package wad

import (
	"log/slog"

	"github.com/pkg/errors"

	"multiasset/cursor"
	"multiasset/decode"
	"multiasset/palette"
)

const (
	headerSize = 12
	entrySize  = 32
	nameSize   = 16
	mipLevels  = 4
)

// Lump type tags. Only miptex lumps are decoded.
const (
	typPalette   = 64
	typColormap  = 65
	typQPic      = 66
	typMipTex    = 67
	typRaw       = 68
	typColormap2 = 69
	typFont      = 70
)

type lump struct {
	FilePos     int32
	DiskSize    int32
	Size        int32
	Typ         uint8
	Compression uint8
	Name        string
}

// Entry is a single miptex image of the archive.
type Entry struct {
	Name    string
	Width   uint32
	Height  uint32
	Pixels  []byte // Width*Height palette indices
	Palette palette.Palette
}

// Skip records a miptex entry that could not be decoded.
type Skip struct {
	Name string
	Err  error
}

type File struct {
	Entries []Entry
	// Skipped lists miptex entries dropped because they were compressed or
	// damaged. Other lump types are never listed.
	Skipped []Skip
}

// Entry returns the first entry called name.
func (f *File) Entry(name string) (*Entry, bool) {
	for i := range f.Entries {
		if f.Entries[i].Name == name {
			return &f.Entries[i], true
		}
	}
	return nil, false
}

// Decode reads a whole archive. A damaged miptex entry is reported in
// File.Skipped and does not fail the archive.
func Decode(data []byte) (*File, error) {
	c := cursor.New(data)
	id, err := c.ReadFixedString(4)
	if err != nil {
		return nil, decode.Mismatch("wad: %v", err)
	}
	if id != "WAD2" && id != "WAD3" {
		return nil, decode.Mismatch("wad: id %q", id)
	}
	count, err := c.ReadInt32()
	if err != nil {
		return nil, errors.Wrap(err, "wad: lump count")
	}
	tableOffset, err := c.ReadInt32()
	if err != nil {
		return nil, errors.Wrap(err, "wad: lump table offset")
	}
	if count < 0 || tableOffset < headerSize {
		return nil, decode.Malformed("wad: %d lumps at %d", count, tableOffset)
	}
	if int64(tableOffset)+int64(count)*entrySize > int64(c.Len()) {
		return nil, decode.Malformed("wad: directory of %d lumps at %d exceeds file size %d", count, tableOffset, c.Len())
	}
	table, err := c.SubviewN(int(tableOffset), int(count)*entrySize)
	if err != nil {
		return nil, errors.Wrap(err, "wad: directory")
	}

	f := &File{}
	for i := 0; i < int(count); i++ {
		l, err := readLump(table)
		if err != nil {
			return nil, errors.Wrapf(err, "wad: lump %d", i)
		}
		if l.Typ != typMipTex {
			continue
		}
		if l.Compression != 0 {
			f.skip(l.Name, errors.Errorf("compression %d not supported", l.Compression))
			continue
		}
		e, err := readMipTex(c, l)
		if err != nil {
			f.skip(l.Name, err)
			continue
		}
		f.Entries = append(f.Entries, e)
	}
	return f, nil
}

func (f *File) skip(name string, err error) {
	slog.Debug("wad: skipping entry", slog.String("name", name), slog.Any("err", err))
	f.Skipped = append(f.Skipped, Skip{Name: name, Err: err})
}

func readLump(c *cursor.Cursor) (lump, error) {
	var l lump
	var err error
	if l.FilePos, err = c.ReadInt32(); err != nil {
		return l, err
	}
	if l.DiskSize, err = c.ReadInt32(); err != nil {
		return l, err
	}
	if l.Size, err = c.ReadInt32(); err != nil {
		return l, err
	}
	if l.Typ, err = c.ReadUint8(); err != nil {
		return l, err
	}
	if l.Compression, err = c.ReadUint8(); err != nil {
		return l, err
	}
	if err = c.Skip(2); err != nil {
		return l, err
	}
	l.Name, err = c.ReadFixedString(nameSize)
	return l, err
}

// readMipTex decodes the first mip level and the palette of a miptex lump.
// The remaining levels are assumed to follow the first without gaps.
func readMipTex(c *cursor.Cursor, l lump) (Entry, error) {
	e := Entry{Name: l.Name}
	if l.FilePos < 0 {
		return e, decode.OutOfRange("file position %d", l.FilePos)
	}
	mt, err := c.Subview(int(l.FilePos))
	if err != nil {
		return e, err
	}
	if err := mt.Skip(nameSize); err != nil {
		return e, err
	}
	if e.Width, err = mt.ReadUint32(); err != nil {
		return e, err
	}
	if e.Height, err = mt.ReadUint32(); err != nil {
		return e, err
	}
	dataOffset, err := mt.ReadUint32()
	if err != nil {
		return e, err
	}
	if uint64(dataOffset) > uint64(mt.Len()) {
		return e, decode.OutOfRange("pixel data at %d of %d", dataOffset, mt.Len())
	}
	data, err := mt.Subview(int(dataOffset))
	if err != nil {
		return e, err
	}
	if e.Pixels, err = data.ReadCount(uint64(e.Width) * uint64(e.Height)); err != nil {
		return e, err
	}

	var total uint64
	for i := 0; i < mipLevels; i++ {
		total += uint64(e.Width>>i) * uint64(e.Height>>i)
	}
	// the stored palette size is assumed to be 256
	if total+2 > uint64(data.Len()) {
		return e, decode.OutOfRange("palette at %d of %d", total+2, data.Len())
	}
	if err := data.SetPosition(int(total + 2)); err != nil {
		return e, err
	}
	if e.Palette, err = palette.Read(data); err != nil {
		return e, err
	}
	return e, nil
}
