// SPDX-License-Identifier: GPL-2.0-or-later

// Package spr decodes IDSP version 2 sprites.
package spr

import (
	"fmt"

	"multiasset/palette"
)

const (
	Version = 2
	Magic   = "IDSP"
)

// Type is the orientation of the sprite relative to the viewer.
type Type int32

const (
	VPParallelUpright Type = iota
	FacingUpright
	VPParallel
	Oriented
	VPParallelOriented
)

var typeNames = [...]string{
	VPParallelUpright:  "vp_parallel_upright",
	FacingUpright:      "facing_upright",
	VPParallel:         "vp_parallel",
	Oriented:           "oriented",
	VPParallelOriented: "vp_parallel_oriented",
}

func (t Type) Valid() bool {
	return t >= 0 && int(t) < len(typeNames)
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int32(t))
	}
	return typeNames[t]
}

// TextureFormat selects how frame pixels are blended.
type TextureFormat int32

const (
	Normal TextureFormat = iota
	Additive
	IndexAlpha
	AlphaTest
)

var textureFormatNames = [...]string{
	Normal:     "normal",
	Additive:   "additive",
	IndexAlpha: "indexalpha",
	AlphaTest:  "alphatest",
}

func (f TextureFormat) Valid() bool {
	return f >= 0 && int(f) < len(textureFormatNames)
}

func (f TextureFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("TextureFormat(%d)", int32(f))
	}
	return textureFormatNames[f]
}

type SyncType int32

const (
	Sync SyncType = iota
	Rand
)

func (s SyncType) Valid() bool {
	return s == Sync || s == Rand
}

func (s SyncType) String() string {
	switch s {
	case Sync:
		return "sync"
	case Rand:
		return "rand"
	}
	return fmt.Sprintf("SyncType(%d)", int32(s))
}

const (
	frameSingle = iota
	frameGroup
)

type Frame struct {
	Origin [2]int32
	Width  int32
	Height int32
	Pixels []byte // Width*Height palette indices
}

type File struct {
	Type           Type
	TextureFormat  TextureFormat
	BoundingRadius float32
	Width          int32
	Height         int32
	BeamLength     float32
	SyncType       SyncType
	Palette        palette.Palette
	// Frames holds the single frames in file order. Group frames are
	// validated and dropped, so a decoded sprite cannot be written back
	// unchanged.
	Frames []Frame
	// DiscardedGroups counts the dropped group frames.
	DiscardedGroups int
}
