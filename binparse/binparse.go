// Package binparse reads fixed width integers and byte ranges at absolute
// offsets from slices, owned buffers, files and memory mappings.
package binparse

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// Source gives bounds checked access to a byte sequence. A read that falls
// outside of the source, or whose end offset does not fit in 64 bits, reports
// false and never returns partial data.
type Source interface {
	Uint8(off uint64) (uint8, bool)
	Uint16(off uint64, order binary.ByteOrder) (uint16, bool)
	Uint32(off uint64, order binary.ByteOrder) (uint32, bool)
	Uint64(off uint64, order binary.ByteOrder) (uint64, bool)
	Region(off, n uint64) (Region, bool)
	Close() error
}

// Word reads a 4 bytes value widened to 64 bits when wide is false, an 8
// bytes value otherwise.
func Word(s Source, off uint64, order binary.ByteOrder, wide bool) (uint64, bool) {
	if wide {
		return s.Uint64(off, order)
	}
	v, ok := s.Uint32(off, order)
	return uint64(v), ok
}

// Add returns a+b and false when the sum overflows.
func Add(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// span returns the [off, off+n) bounds as ints when the range lies inside a
// sequence of size bytes.
func span(off, n uint64, size int) (int, int, bool) {
	end, ok := Add(off, n)
	if !ok || end > uint64(size) {
		return 0, 0, false
	}
	return int(off), int(end), true
}

func fitsInt(n uint64) bool {
	return n <= math.MaxInt
}
