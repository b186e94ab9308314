// SPDX-License-Identifier: GPL-2.0-or-later

// Package filesystem turns file handles into the immutable byte buffers the
// decoders work on. Names of the form "archive.pak:inner/path" resolve to an
// entry inside a Quake pack.
package filesystem

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"multiasset/pack"
)

type File interface {
	io.ReadSeekCloser
	io.ReaderAt
}

const pakSeparator = ".pak:"

type packFile struct {
	*io.SectionReader
	p *pack.Pack
}

func (f *packFile) Close() error {
	return f.p.Close()
}

// SplitPakPath splits "a/b.pak:maps/x.bsp" into "a/b.pak" and "maps/x.bsp".
// ok is false for plain paths.
func SplitPakPath(name string) (archive, inner string, ok bool) {
	i := strings.Index(strings.ToLower(name), pakSeparator)
	if i < 0 {
		return name, "", false
	}
	sep := i + len(pakSeparator) - 1
	return name[:sep], strings.TrimPrefix(name[sep+1:], "/"), true
}

// Open opens a plain file or an entry of a pack archive.
func Open(name string) (File, error) {
	archive, inner, ok := SplitPakPath(name)
	if !ok {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	p, err := pack.NewPackReader(archive)
	if err != nil {
		return nil, err
	}
	sr, err := p.Open(inner)
	if err != nil {
		p.Close()
		return nil, err
	}
	return &packFile{SectionReader: sr, p: p}, nil
}

// ReadAll reads the whole file into one buffer. The size is taken from the
// handle first; a short read is an error. An empty file gives an empty
// buffer.
func ReadAll(f io.ReadSeeker) ([]byte, error) {
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrap(err, "could not determine file size")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "could not rewind file")
	}
	if size < 0 || int64(int(size)) != size {
		return nil, errors.Errorf("file size %d not addressable", size)
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(f, b); err != nil {
		return nil, errors.Wrapf(err, "short read of %d bytes", size)
	}
	return b, nil
}

// ReadFile opens name and reads it with ReadAll.
func ReadFile(name string) ([]byte, error) {
	file, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadAll(file)
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\' || c == ':'
}

func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}

// Base returns the last element of a plain or pack path without extension.
func Base(path string) string {
	p := StripExt(path)
	for i := len(p) - 1; i >= 0; i-- {
		if isSep(p[i]) {
			return p[i+1:]
		}
	}
	return p
}
