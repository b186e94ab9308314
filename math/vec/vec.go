// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"github.com/chewxy/math32"
)

// Vec3 is a point or direction in map space.
type Vec3 struct {
	X, Y, Z float32
}

func VFromA(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

// Normalize returns v scaled to unit length, or the null vector if v has
// no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

func Dot(a, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Bounds returns the componentwise minimum and maximum over vs. Both are
// the null vector if vs is empty.
func Bounds(vs []Vec3) (mins, maxs Vec3) {
	if len(vs) == 0 {
		return
	}
	mins, maxs = vs[0], vs[0]
	for _, v := range vs[1:] {
		mins.X, maxs.X = math32.Min(mins.X, v.X), math32.Max(maxs.X, v.X)
		mins.Y, maxs.Y = math32.Min(mins.Y, v.Y), math32.Max(maxs.Y, v.Y)
		mins.Z, maxs.Z = math32.Min(mins.Z, v.Z), math32.Max(maxs.Z, v.Z)
	}
	return
}

// LoopNormal returns the unit normal of a closed polygon (Newell's method).
// Counter clockwise loops seen from above point up. Degenerate loops give
// the null vector.
func LoopNormal(loop []Vec3) Vec3 {
	var n Vec3
	for i, cur := range loop {
		next := loop[(i+1)%len(loop)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n.Normalize()
}
