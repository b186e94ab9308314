// SPDX-License-Identifier: GPL-2.0-or-later

package decode

import (
	"errors"
	"math"
	"testing"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{Mismatch("version %d", 29), ErrFormatMismatch},
		{Malformed("count %d", -1), ErrMalformedLump},
		{Dangling("texture %d", 7), ErrDanglingReference},
		{OutOfRange("offset %d", 99), ErrOutOfRange},
	}
	all := []error{ErrFormatMismatch, ErrMalformedLump, ErrDanglingReference, ErrOutOfRange}
	for i, tc := range tests {
		for _, k := range all {
			if got, want := errors.Is(tc.err, k), k == tc.kind; got != want {
				t.Errorf("Testcase %d: errors.Is(%v, %v) = %v, want %v", i, tc.err, k, got, want)
			}
		}
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		i    int64
		n    int
		want bool
	}{
		{0, 1, true},
		{0, 0, false},
		{-1, 5, false},
		{4, 5, true},
		{5, 5, false},
		{math.MaxInt64, 5, false},
	}
	for _, tc := range tests {
		if got := InRange(tc.i, tc.n); got != tc.want {
			t.Errorf("InRange(%d, %d) = %v, want %v", tc.i, tc.n, got, tc.want)
		}
	}
	if InRange(int16(-3), 10) {
		t.Errorf("InRange(int16(-3), 10) = true")
	}
	if !InRange(uint16(9), 10) {
		t.Errorf("InRange(uint16(9), 10) = false")
	}
}

func TestSpanInRange(t *testing.T) {
	tests := []struct {
		first, count int32
		n            int
		want         bool
	}{
		{0, 0, 0, true},
		{0, 6, 6, true},
		{5, 1, 6, true},
		{5, 3, 6, false},
		{-1, 1, 6, false},
		{1, -1, 6, false},
		{math.MaxInt32, math.MaxInt32, 6, false},
	}
	for _, tc := range tests {
		if got := SpanInRange(tc.first, tc.count, tc.n); got != tc.want {
			t.Errorf("SpanInRange(%d, %d, %d) = %v, want %v", tc.first, tc.count, tc.n, got, tc.want)
		}
	}
}
