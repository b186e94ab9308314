// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"testing"
)

func TestArray(t *testing.T) {
	a := [3]float32{1, 2, 3}
	if got := VFromA(a).Array(); got != a {
		t.Errorf("VFromA(%v).Array() = %v", a, got)
	}
}

func TestLength(t *testing.T) {
	if l := (Vec3{}).Length(); l != 0 {
		t.Errorf("null vector has length %v", l)
	}
	for _, v := range []Vec3{{2, 2, 1}, {2, 1, 2}, {1, 2, 2}} {
		if v.Length() != 3 {
			t.Errorf("%v Length is not 3", v)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		v, want Vec3
	}{
		{Vec3{}, Vec3{}},
		{Vec3{0, 0, 5}, Vec3{0, 0, 1}},
		{Vec3{-3, 0, 0}, Vec3{-1, 0, 0}},
	}
	for i, tc := range tests {
		if got := tc.v.Normalize(); got != tc.want {
			t.Errorf("Testcase %d, Normalize(%v) got: %v, want %v", i, tc.v, got, tc.want)
		}
	}
}

func TestDot(t *testing.T) {
	if d := Dot(Vec3{1, 0, 0}, Vec3{0, 1, 0}); d != 0 {
		t.Errorf("x dot y = %v", d)
	}
	if d := Dot(VFromA([3]float32{1, 2, 3}), Vec3{4, 5, 6}); d != 32 {
		t.Errorf("dot product = %v, want 32", d)
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		vs         []Vec3
		mins, maxs Vec3
	}{
		{nil, Vec3{}, Vec3{}},
		{[]Vec3{{1, 2, 3}}, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{[]Vec3{{1, 5, -3}, {2, -5, 0}, {0, 0, 7}}, Vec3{0, -5, -3}, Vec3{2, 5, 7}},
	}
	for i, tc := range tests {
		mins, maxs := Bounds(tc.vs)
		if mins != tc.mins || maxs != tc.maxs {
			t.Errorf("Testcase %d got: %v %v, want %v %v", i, mins, maxs, tc.mins, tc.maxs)
		}
	}
}

func TestLoopNormal(t *testing.T) {
	square := []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	reversed := []Vec3{square[0], square[3], square[2], square[1]}
	wall := []Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}
	tests := []struct {
		loop []Vec3
		want Vec3
	}{
		{square, Vec3{0, 0, 1}},
		{reversed, Vec3{0, 0, -1}},
		{wall, Vec3{-1, 0, 0}},
		{[]Vec3{{1, 1, 1}, {2, 2, 2}}, Vec3{}},
		{nil, Vec3{}},
	}
	for i, tc := range tests {
		if got := LoopNormal(tc.loop); got != tc.want {
			t.Errorf("Testcase %d got: %v, want %v", i, got, tc.want)
		}
	}
}
