// SPDX-License-Identifier: GPL-2.0-or-later

// Package pack reads Quake PACK archives. Entries are exposed as section
// readers over the archive file, so nothing is copied until read.
package pack

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"

	"multiasset/cursor"
	"multiasset/decode"
)

const (
	magic      = "PACK"
	headerSize = 12
	nameSize   = 56
	entrySize  = nameSize + 8
)

// span locates one entry inside the archive.
type span struct {
	offset int64
	size   int64
}

// Pack is an open archive. It keeps the file handle until Close.
type Pack struct {
	f       *os.File
	path    string
	size    int64
	entries map[string]span
}

// NewPackReader opens the archive at path and reads its directory.
func NewPackReader(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	p := &Pack{f: f, path: path}
	if err := p.readDirectory(); err != nil {
		f.Close()
		return nil, err
	}
	return p, nil
}

// readAt reads n bytes at off into a cursor.
func (p *Pack) readAt(off, n int64) (*cursor.Cursor, error) {
	buf := make([]byte, n)
	if _, err := p.f.ReadAt(buf, off); err != nil {
		return nil, errors.Wrapf(err, "%s: read %d bytes at %d", p.path, n, off)
	}
	return cursor.New(buf), nil
}

func (p *Pack) readDirectory() error {
	fi, err := p.f.Stat()
	if err != nil {
		return err
	}
	p.size = fi.Size()
	if p.size < headerSize {
		return decode.Mismatch("%s: no pack header", p.path)
	}
	c, err := p.readAt(0, headerSize)
	if err != nil {
		return err
	}
	id, _ := c.ReadBytes(4)
	if string(id) != magic {
		return decode.Mismatch("%s: not a pack", p.path)
	}
	dirOffset, _ := c.ReadInt32()
	dirSize, _ := c.ReadInt32()
	if dirOffset < 0 || dirSize < 0 || dirSize%entrySize != 0 {
		return decode.Malformed("%s: directory at %d size %d", p.path, dirOffset, dirSize)
	}
	if int64(dirOffset)+int64(dirSize) > p.size {
		return decode.OutOfRange("%s: directory ends past %d", p.path, p.size)
	}
	dir, err := p.readAt(int64(dirOffset), int64(dirSize))
	if err != nil {
		return err
	}
	count := int(dirSize / entrySize)
	p.entries = make(map[string]span, count)
	for i := 0; i < count; i++ {
		name, err := dir.ReadFixedString(nameSize)
		if err != nil {
			return errors.Wrapf(err, "%s: entry %d", p.path, i)
		}
		off, _ := dir.ReadInt32()
		size, _ := dir.ReadInt32()
		if off < 0 || size < 0 || int64(off)+int64(size) > p.size {
			return decode.OutOfRange("%s: entry %s at %d size %d", p.path, name, off, size)
		}
		if _, dup := p.entries[name]; dup {
			return decode.Malformed("%s: files in pack are not unique: %s", p.path, name)
		}
		p.entries[name] = span{offset: int64(off), size: int64(size)}
	}
	return nil
}

// Open returns a reader over the named entry, or an error wrapping
// os.ErrNotExist.
func (p *Pack) Open(name string) (*io.SectionReader, error) {
	s, ok := p.entries[name]
	if !ok {
		return nil, errors.Wrapf(os.ErrNotExist, "%s: %s", p.path, name)
	}
	return io.NewSectionReader(p.f, s.offset, s.size), nil
}

// Names returns the sorted entry names.
func (p *Pack) Names() []string {
	names := make([]string, 0, len(p.entries))
	for n := range p.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (p *Pack) Size(name string) (int64, bool) {
	s, ok := p.entries[name]
	return s.size, ok
}

func (p *Pack) String() string {
	return p.path
}

func (p *Pack) Close() error {
	return p.f.Close()
}
