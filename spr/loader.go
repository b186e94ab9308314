// SPDX-License-Identifier: GPL-2.0-or-later

package spr

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"multiasset/cursor"
	"multiasset/decode"
	"multiasset/palette"
)

// header is dsprite_t without the id and version.
type header struct {
	typ            int32
	textureFormat  int32
	boundingRadius float32
	width          int32
	height         int32
	frameCount     int32
	beamLength     float32
	syncType       int32
}

const (
	// smallest possible frame record: the type tag and the count of an
	// empty group
	minFrameSize    = 4 * 2
	// origin, width, height
	frameHeaderSize = 4 * 4
	intervalSize    = 4
)

func readHeader(c *cursor.Cursor) (header, error) {
	var h header
	var err error
	ints := []*int32{&h.typ, &h.textureFormat}
	for _, p := range ints {
		if *p, err = c.ReadInt32(); err != nil {
			return h, err
		}
	}
	if h.boundingRadius, err = c.ReadFloat32(); err != nil {
		return h, err
	}
	ints = []*int32{&h.width, &h.height, &h.frameCount}
	for _, p := range ints {
		if *p, err = c.ReadInt32(); err != nil {
			return h, err
		}
	}
	if h.beamLength, err = c.ReadFloat32(); err != nil {
		return h, err
	}
	h.syncType, err = c.ReadInt32()
	return h, err
}

// Decode reads a whole sprite. Any structural problem fails the sprite.
// Group frames, empty ones included, are read and dropped. A frame tag other
// than single or group is malformed.
func Decode(data []byte) (*File, error) {
	c := cursor.New(data)
	id, err := c.ReadFixedString(4)
	if err != nil {
		return nil, decode.Mismatch("spr: %v", err)
	}
	if id != Magic {
		return nil, decode.Mismatch("spr: id %q", id)
	}
	version, err := c.ReadInt32()
	if err != nil {
		return nil, decode.Mismatch("spr: %v", err)
	}
	if version != Version {
		return nil, decode.Mismatch("spr: version %d, want %d", version, Version)
	}

	h, err := readHeader(c)
	if err != nil {
		return nil, errors.Wrap(err, "spr: header")
	}
	f := &File{
		Type:           Type(h.typ),
		TextureFormat:  TextureFormat(h.textureFormat),
		BoundingRadius: h.boundingRadius,
		Width:          h.width,
		Height:         h.height,
		BeamLength:     h.beamLength,
		SyncType:       SyncType(h.syncType),
	}
	switch {
	case !f.Type.Valid():
		return nil, decode.Malformed("spr: type %d", h.typ)
	case !f.TextureFormat.Valid():
		return nil, decode.Malformed("spr: texture format %d", h.textureFormat)
	case !f.SyncType.Valid():
		return nil, decode.Malformed("spr: sync type %d", h.syncType)
	case !(f.BoundingRadius >= 0):
		return nil, decode.Malformed("spr: bounding radius %v", f.BoundingRadius)
	case f.Width < 0 || f.Height < 0:
		return nil, decode.Malformed("spr: size %dx%d", f.Width, f.Height)
	case h.frameCount < 0:
		return nil, decode.Malformed("spr: frame count %d", h.frameCount)
	}

	colors, err := c.ReadInt16()
	if err != nil {
		return nil, errors.Wrap(err, "spr: color count")
	}
	if colors != palette.Size {
		return nil, decode.Malformed("spr: %d colors, want %d", colors, palette.Size)
	}
	if f.Palette, err = palette.Read(c); err != nil {
		return nil, errors.Wrap(err, "spr: palette")
	}

	if int64(h.frameCount) > int64(c.Remaining()/minFrameSize) {
		return nil, decode.Malformed("spr: %d frames in %d bytes", h.frameCount, c.Remaining())
	}
	f.Frames = make([]Frame, 0, h.frameCount)
	for i := 0; i < int(h.frameCount); i++ {
		typ, err := c.ReadInt32()
		if err != nil {
			return nil, errors.Wrapf(err, "spr: frame %d", i)
		}
		switch typ {
		case frameSingle:
			fr, err := readFrame(c)
			if err != nil {
				return nil, errors.Wrapf(err, "spr: frame %d", i)
			}
			f.Frames = append(f.Frames, fr)
		case frameGroup:
			n, err := skipGroup(c)
			if err != nil {
				return nil, errors.Wrapf(err, "spr: frame %d group", i)
			}
			slog.Debug("spr: discarding group frame", slog.Int("frame", i), slog.Int("frames", n))
			f.DiscardedGroups++
		default:
			return nil, decode.Malformed("spr: frame %d type %d", i, typ)
		}
	}
	return f, nil
}

func readFrame(c *cursor.Cursor) (Frame, error) {
	var fr Frame
	var err error
	for i := range fr.Origin {
		if fr.Origin[i], err = c.ReadInt32(); err != nil {
			return fr, err
		}
	}
	if fr.Width, err = c.ReadInt32(); err != nil {
		return fr, err
	}
	if fr.Height, err = c.ReadInt32(); err != nil {
		return fr, err
	}
	if fr.Width < 0 || fr.Height < 0 {
		return fr, decode.Malformed("frame size %dx%d", fr.Width, fr.Height)
	}
	fr.Pixels, err = c.ReadCount(uint64(fr.Width) * uint64(fr.Height))
	return fr, err
}

// skipGroup validates a group of frames and returns its size.
func skipGroup(c *cursor.Cursor) (int, error) {
	n, err := c.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, decode.Malformed("group of %d frames", n)
	}
	if int64(n) > int64(c.Remaining()/(intervalSize+frameHeaderSize)) {
		return 0, decode.Malformed("group of %d frames in %d bytes", n, c.Remaining())
	}
	for i := 0; i < int(n); i++ {
		interval, err := c.ReadFloat32()
		if err != nil {
			return 0, err
		}
		if interval <= 0 || math32.IsNaN(interval) {
			return 0, decode.Malformed("interval %d is %v", i, interval)
		}
	}
	for i := 0; i < int(n); i++ {
		if _, err := readFrame(c); err != nil {
			return 0, errors.Wrapf(err, "group frame %d", i)
		}
	}
	return int(n), nil
}
