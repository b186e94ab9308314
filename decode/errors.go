// SPDX-License-Identifier: GPL-2.0-or-later

// Package decode holds the failure kinds shared by the asset decoders.
//
// Every error returned by a decoder wraps exactly one of the sentinels below,
// so callers classify failures with errors.Is.
package decode

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var (
	// ErrFormatMismatch means the magic, identifier or version does not
	// belong to the format. Probing moves on to the next format.
	ErrFormatMismatch = errors.New("format mismatch")
	// ErrMalformedLump covers invalid counts, sizes and enum values.
	ErrMalformedLump = errors.New("malformed lump")
	// ErrDanglingReference is an index pointing outside its sibling array.
	ErrDanglingReference = errors.New("dangling reference")
	// ErrOutOfRange is a read or seek past the end of the buffer.
	ErrOutOfRange = errors.New("out of range")
)

func Mismatch(format string, args ...interface{}) error {
	return errors.Wrapf(ErrFormatMismatch, format, args...)
}

func Malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedLump, format, args...)
}

func Dangling(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDanglingReference, format, args...)
}

func OutOfRange(format string, args ...interface{}) error {
	return errors.Wrapf(ErrOutOfRange, format, args...)
}

// InRange reports whether i is a valid index into a sequence of length n.
func InRange[T constraints.Integer](i T, n int) bool {
	if i < 0 {
		return false
	}
	return uint64(i) < uint64(n)
}

// SpanInRange reports whether [first, first+count) lies within a sequence of
// length n. Overflowing spans are rejected.
func SpanInRange[T constraints.Integer](first, count T, n int) bool {
	if first < 0 || count < 0 {
		return false
	}
	end := uint64(first) + uint64(count)
	return end >= uint64(first) && end <= uint64(n)
}
