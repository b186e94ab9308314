// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/pkg/errors"

	"multiasset/cursor"
	"multiasset/decode"
	"multiasset/math/vec"
	"multiasset/palette"
)

type decoder struct {
	c     *cursor.Cursor
	lumps [lumpCount]directory
}

// Decode parses a complete BSP v30 image. Either every lump decodes and all
// cross references are valid or an error is returned and no File.
func Decode(data []byte) (*File, error) {
	c := cursor.New(data)
	version, err := c.ReadInt32()
	if err != nil {
		return nil, decode.Mismatch("no bsp header in %d bytes", len(data))
	}
	if version != Version {
		return nil, decode.Mismatch("wrong version number (%d should be %d)", version, Version)
	}
	d := &decoder{c: c}
	for i := range d.lumps {
		l := &d.lumps[i]
		if l.Offset, err = c.ReadInt32(); err != nil {
			return nil, errors.Wrap(err, "lump directory")
		}
		if l.Size, err = c.ReadInt32(); err != nil {
			return nil, errors.Wrap(err, "lump directory")
		}
		if l.Offset < 0 || l.Size < 0 {
			return nil, decode.Malformed("lump %v at %d size %d", Lump(i), l.Offset, l.Size)
		}
	}

	f := &File{}
	if f.Entities, err = d.entities(); err != nil {
		return nil, err
	}
	if f.Textures, err = d.textures(); err != nil {
		return nil, err
	}
	if f.TexInfos, err = d.texInfos(len(f.Textures)); err != nil {
		return nil, err
	}
	if f.Faces, err = d.faces(len(f.TexInfos)); err != nil {
		return nil, err
	}
	if f.Models, err = d.models(len(f.Faces)); err != nil {
		return nil, err
	}
	return f, nil
}

// lump returns a cursor limited to the lump.
func (d *decoder) lump(l Lump) (*cursor.Cursor, error) {
	dir := d.lumps[l]
	c, err := d.c.SubviewN(int(dir.Offset), int(dir.Size))
	if err != nil {
		return nil, errors.Wrapf(err, "lump %v", l)
	}
	return c, nil
}

func (d *decoder) entities() (string, error) {
	c, err := d.lump(LumpEntities)
	if err != nil {
		return "", err
	}
	// drop the stored NUL
	n := c.Len() - 1
	if n < 0 {
		n = 0
	}
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", errors.Wrap(err, "entities")
	}
	return string(b), nil
}

func (d *decoder) textures() ([]Texture, error) {
	c, err := d.lump(LumpTextures)
	if err != nil {
		return nil, err
	}
	if c.Len() == 0 {
		return nil, nil
	}
	count, err := c.ReadInt32()
	if err != nil {
		return nil, errors.Wrap(err, "texture count")
	}
	if count < 0 {
		return nil, decode.Malformed("texture count %d", count)
	}
	if int64(count) > int64(c.Remaining()/4) {
		return nil, decode.Malformed("texture count %d exceeds lump size %d", count, c.Len())
	}
	textures := make([]Texture, count)
	for i := range textures {
		offset, err := c.ReadInt32()
		if err != nil {
			return nil, errors.Wrapf(err, "texture %d offset", i)
		}
		if offset < 0 || int(offset) >= c.Len() {
			return nil, decode.Malformed("texture %d offset %d outside lump size %d", i, offset, c.Len())
		}
		tc, err := c.Subview(int(offset))
		if err != nil {
			return nil, errors.Wrapf(err, "texture %d", i)
		}
		if err := readTexture(tc, &textures[i]); err != nil {
			return nil, errors.Wrapf(err, "texture %d", i)
		}
	}
	return textures, nil
}

// readTexture reads a miptex with c positioned at its start. All offsets are
// relative to that start.
func readTexture(c *cursor.Cursor, t *Texture) error {
	var err error
	if t.Name, err = c.ReadFixedString(16); err != nil {
		return err
	}
	if t.Width, err = c.ReadUint32(); err != nil {
		return err
	}
	if t.Height, err = c.ReadUint32(); err != nil {
		return err
	}
	var offsets [MipLevels]uint32
	for i := range offsets {
		if offsets[i], err = c.ReadUint32(); err != nil {
			return err
		}
	}
	if offsets[0] == 0 {
		// stored in a wad
		return nil
	}
	for level, offset := range offsets {
		if offset == 0 {
			return decode.Malformed("%s: mip level %d has no data", t.Name, level)
		}
		if uint64(offset) > uint64(c.Len()) {
			return decode.OutOfRange("%s: mip level %d at %d", t.Name, level, offset)
		}
		if err := c.SetPosition(int(offset)); err != nil {
			return err
		}
		n := uint64(t.Width>>level) * uint64(t.Height>>level)
		if t.Mips[level], err = c.ReadCount(n); err != nil {
			return errors.Wrapf(err, "%s: mip level %d", t.Name, level)
		}
	}
	// The four levels take w*h*85/64 bytes, followed by a 2 byte color count
	// that is always 256.
	pos := uint64(offsets[0]) + uint64(t.Width)*uint64(t.Height)/64*85 + 2
	if pos > uint64(c.Len()) {
		return decode.OutOfRange("%s: palette at %d", t.Name, pos)
	}
	if err := c.SetPosition(int(pos)); err != nil {
		return err
	}
	if t.Palette, err = palette.Read(c); err != nil {
		return errors.Wrapf(err, "%s: palette", t.Name)
	}
	return nil
}

func readVec3(c *cursor.Cursor) (vec.Vec3, error) {
	var a [3]float32
	for i := range a {
		f, err := c.ReadFloat32()
		if err != nil {
			return vec.Vec3{}, err
		}
		a[i] = f
	}
	return vec.VFromA(a), nil
}

func (d *decoder) texInfos(textureCount int) ([]TexInfo, error) {
	c, err := d.lump(LumpTexInfo)
	if err != nil {
		return nil, err
	}
	infos := make([]TexInfo, c.Len()/texInfoSize)
	for i := range infos {
		ti := &infos[i]
		for j := range ti.Vecs {
			if ti.Vecs[j].Pos, err = readVec3(c); err != nil {
				return nil, errors.Wrapf(err, "texinfo %d", i)
			}
			if ti.Vecs[j].Offset, err = c.ReadFloat32(); err != nil {
				return nil, errors.Wrapf(err, "texinfo %d", i)
			}
		}
		idx, err := c.ReadInt32()
		if err != nil {
			return nil, errors.Wrapf(err, "texinfo %d", i)
		}
		if !decode.InRange(idx, textureCount) {
			return nil, decode.Dangling("texinfo %d: texture %d of %d", i, idx, textureCount)
		}
		ti.Texture = TextureID(idx)
		if ti.Flags, err = c.ReadInt32(); err != nil {
			return nil, errors.Wrapf(err, "texinfo %d", i)
		}
	}
	return infos, nil
}

func (d *decoder) vertexes() ([]vec.Vec3, error) {
	c, err := d.lump(LumpVertexes)
	if err != nil {
		return nil, err
	}
	vs := make([]vec.Vec3, c.Len()/vertexSize)
	for i := range vs {
		if vs[i], err = readVec3(c); err != nil {
			return nil, errors.Wrapf(err, "vertex %d", i)
		}
	}
	return vs, nil
}

func (d *decoder) edges() ([]edge, error) {
	c, err := d.lump(LumpEdges)
	if err != nil {
		return nil, err
	}
	es := make([]edge, c.Len()/edgeSize)
	for i := range es {
		if es[i].Vertex0, err = c.ReadUint16(); err != nil {
			return nil, errors.Wrapf(err, "edge %d", i)
		}
		if es[i].Vertex1, err = c.ReadUint16(); err != nil {
			return nil, errors.Wrapf(err, "edge %d", i)
		}
	}
	return es, nil
}

func (d *decoder) surfEdges() ([]int32, error) {
	c, err := d.lump(LumpSurfEdges)
	if err != nil {
		return nil, err
	}
	se := make([]int32, c.Len()/surfEdgeSize)
	for i := range se {
		if se[i], err = c.ReadInt32(); err != nil {
			return nil, errors.Wrapf(err, "surfedge %d", i)
		}
	}
	return se, nil
}

func (d *decoder) faces(texInfoCount int) ([]Face, error) {
	vertexes, err := d.vertexes()
	if err != nil {
		return nil, err
	}
	edges, err := d.edges()
	if err != nil {
		return nil, err
	}
	surfEdges, err := d.surfEdges()
	if err != nil {
		return nil, err
	}
	c, err := d.lump(LumpFaces)
	if err != nil {
		return nil, err
	}
	faces := make([]Face, c.Len()/faceSize)
	for i := range faces {
		if err := readFace(c, &faces[i], texInfoCount, vertexes, edges, surfEdges); err != nil {
			return nil, errors.Wrapf(err, "face %d", i)
		}
	}
	return faces, nil
}

func readFace(c *cursor.Cursor, f *Face, texInfoCount int, vertexes []vec.Vec3, edges []edge, surfEdges []int32) error {
	var err error
	if f.PlaneID, err = c.ReadInt16(); err != nil {
		return err
	}
	if f.Side, err = c.ReadInt16(); err != nil {
		return err
	}
	firstEdge, err := c.ReadInt32()
	if err != nil {
		return err
	}
	numEdges, err := c.ReadInt16()
	if err != nil {
		return err
	}
	texInfo, err := c.ReadInt16()
	if err != nil {
		return err
	}
	if err := c.ReadInto(f.Styles[:]); err != nil {
		return err
	}
	if f.LightOffset, err = c.ReadInt32(); err != nil {
		return err
	}

	if !decode.InRange(firstEdge, len(surfEdges)) {
		return decode.Dangling("first edge %d of %d", firstEdge, len(surfEdges))
	}
	if numEdges < 0 {
		return decode.Malformed("edge count %d", numEdges)
	}
	if !decode.SpanInRange(int64(firstEdge), int64(numEdges), len(surfEdges)) {
		return decode.Dangling("edges [%d,+%d) of %d", firstEdge, numEdges, len(surfEdges))
	}
	if !decode.InRange(texInfo, texInfoCount) {
		return decode.Dangling("texinfo %d of %d", texInfo, texInfoCount)
	}
	f.TexInfo = TexInfoID(texInfo)

	f.Vertexes = make([]vec.Vec3, 0, numEdges)
	for _, se := range surfEdges[int(firstEdge) : int(firstEdge)+int(numEdges)] {
		e := int64(se)
		if e < 0 {
			e = -e
		}
		if !decode.InRange(e, len(edges)) {
			return decode.Dangling("surfedge %d: edge of %d", se, len(edges))
		}
		// a negative surfedge walks the edge backwards
		v := edges[e].Vertex0
		if se < 0 {
			v = edges[e].Vertex1
		}
		if !decode.InRange(v, len(vertexes)) {
			return decode.Dangling("edge %d: vertex %d of %d", e, v, len(vertexes))
		}
		f.Vertexes = append(f.Vertexes, vertexes[v])
	}
	return nil
}

func (d *decoder) models(faceCount int) ([]Model, error) {
	c, err := d.lump(LumpModels)
	if err != nil {
		return nil, err
	}
	models := make([]Model, c.Len()/modelSize)
	for i := range models {
		if err := readModel(c, &models[i], faceCount); err != nil {
			return nil, errors.Wrapf(err, "model %d", i)
		}
	}
	return models, nil
}

func readModel(c *cursor.Cursor, m *Model, faceCount int) error {
	var err error
	if m.Mins, err = readVec3(c); err != nil {
		return err
	}
	if m.Maxs, err = readVec3(c); err != nil {
		return err
	}
	if m.Origin, err = readVec3(c); err != nil {
		return err
	}
	for i := range m.HeadNode {
		if m.HeadNode[i], err = c.ReadInt32(); err != nil {
			return err
		}
	}
	if m.VisLeafCount, err = c.ReadInt32(); err != nil {
		return err
	}
	firstFace, err := c.ReadInt32()
	if err != nil {
		return err
	}
	count, err := c.ReadInt32()
	if err != nil {
		return err
	}
	if !decode.InRange(firstFace, faceCount) {
		return decode.Dangling("first face %d of %d", firstFace, faceCount)
	}
	if count < 0 {
		return decode.Malformed("face count %d", count)
	}
	if !decode.SpanInRange(int64(firstFace), int64(count), faceCount) {
		return decode.Dangling("faces [%d,+%d) of %d", firstFace, count, faceCount)
	}
	m.FirstFace = int(firstFace)
	m.FaceCount = int(count)
	return nil
}
