// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"multiasset/math/vec"
	"multiasset/palette"
)

const (
	Version   = 30
	MipLevels = 4
	HullCount = 4

	texInfoSize  = 40
	faceSize     = 20
	modelSize    = 64
	vertexSize   = 12
	edgeSize     = 4
	surfEdgeSize = 4
)

// Lump is a slot of the fixed lump directory, in file order.
type Lump int

const (
	LumpEntities Lump = iota
	LumpPlanes
	LumpTextures
	LumpVertexes
	LumpVisibility
	LumpNodes
	LumpTexInfo
	LumpFaces
	LumpLighting
	LumpClipNodes
	LumpLeafs
	LumpMarkSurfaces
	LumpEdges
	LumpSurfEdges
	LumpModels
	lumpCount
)

var lumpNames = [lumpCount]string{
	"entities", "planes", "textures", "vertexes", "visibility", "nodes",
	"texinfo", "faces", "lighting", "clipnodes", "leafs", "marksurfaces",
	"edges", "surfedges", "models",
}

func (l Lump) String() string {
	if l < 0 || l >= lumpCount {
		return "unknown"
	}
	return lumpNames[l]
}

// called lump_t in c
type directory struct {
	Offset int32
	Size   int32
}

// the first edge of the list is never used
type edge struct {
	Vertex0 uint16 // id of start vertex, must be in [0,numvertices[
	Vertex1 uint16 // id of end vertex, must be in [0,numvertices[
}

// Texture is a miptex entry of the textures lump. Textures stored outside
// the map (in a wad) have no mip data and an empty palette.
type Texture struct {
	Name   string
	Width  uint32
	Height uint32
	// Mips[0] to Pix[width * height]
	// 1: to Pix[width/2 * height/2]
	// 2: to Pix[width/4 * height/4]
	// 3: to Pix[width/8 * height/8]
	Mips    [MipLevels][]byte
	Palette palette.Palette
}

// HasBitmap reports whether the texture data is embedded in the map.
func (t *Texture) HasBitmap() bool {
	return len(t.Palette) != 0
}

// TextureID indexes File.Textures.
type TextureID int

// TexInfoID indexes File.TexInfos.
type TexInfoID int

type TexInfoPos struct {
	Pos    vec.Vec3
	Offset float32
}

// TexInfo projects world positions into texture space.
type TexInfo struct {
	Vecs    [2]TexInfoPos // S vector, horizontal and T vector, vertical in texture space
	Texture TextureID
	Flags   int32
}

// TexCoord returns the normalized texture coordinates of v.
func (ti *TexInfo) TexCoord(v vec.Vec3, t *Texture) (float32, float32) {
	s := vec.Dot(v, ti.Vecs[0].Pos) + ti.Vecs[0].Offset
	tt := vec.Dot(v, ti.Vecs[1].Pos) + ti.Vecs[1].Offset
	if t.Width != 0 {
		s /= float32(t.Width)
	}
	if t.Height != 0 {
		tt /= float32(t.Height)
	}
	return s, tt
}

// Face is a closed polygon, drawable as a triangle fan.
type Face struct {
	Vertexes    []vec.Vec3
	TexInfo     TexInfoID
	PlaneID     int16 // The plane in which the face lies
	Side        int16
	Styles      [4]byte
	LightOffset int32 // offset into the lighting lump, or -1
}

// Bounds returns the axis aligned box around the vertex loop.
func (f *Face) Bounds() (vec.Vec3, vec.Vec3) {
	return vec.Bounds(f.Vertexes)
}

// Normal returns the unit normal of the loop following its winding, or the
// null vector for degenerate faces.
func (f *Face) Normal() vec.Vec3 {
	return vec.LoopNormal(f.Vertexes)
}

// Model, either a big zone, the level or parts inside that zone
type Model struct {
	Mins         vec.Vec3
	Maxs         vec.Vec3
	Origin       vec.Vec3
	HeadNode     [HullCount]int32
	VisLeafCount int32 // not including the solid leaf 0
	FirstFace    int
	FaceCount    int
}

// File is a decoded map. The ids stored in TexInfos, Faces and Models are
// only meaningful for the File they came from.
type File struct {
	Entities string
	Textures []Texture
	TexInfos []TexInfo
	Faces    []Face
	Models   []Model
}

func (f *File) Texture(id TextureID) *Texture {
	return &f.Textures[id]
}

func (f *File) TexInfo(id TexInfoID) *TexInfo {
	return &f.TexInfos[id]
}

// FaceTexture follows face -> texinfo -> texture.
func (f *File) FaceTexture(face *Face) *Texture {
	return f.Texture(f.TexInfo(face.TexInfo).Texture)
}

// ModelFaces returns the faces of m. The result shares memory with f.Faces.
func (f *File) ModelFaces(m *Model) []Face {
	end := m.FirstFace + m.FaceCount
	return f.Faces[m.FirstFace:end:end]
}

// WorldModel returns model 0, the level itself.
func (f *File) WorldModel() (*Model, bool) {
	if len(f.Models) == 0 {
		return nil, false
	}
	return &f.Models[0], true
}

// ParsedEntities splits the entities text into key/value sets.
func (f *File) ParsedEntities() []*Entity {
	return ParseEntities([]byte(f.Entities))
}
