package binparse

import (
	"encoding/binary"
	"io"
)

// Slice reads from a byte slice owned by the caller. The slice must outlive
// the Slice and every Region it hands out and must not be modified.
type Slice struct {
	data []byte
}

func NewSlice(b []byte) *Slice {
	return &Slice{data: b}
}

func (s *Slice) Len() int {
	return len(s.data)
}

func (s *Slice) Uint8(off uint64) (uint8, bool) {
	b, ok := s.bytes(off, 1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

func (s *Slice) Uint16(off uint64, order binary.ByteOrder) (uint16, bool) {
	b, ok := s.bytes(off, 2)
	if !ok {
		return 0, false
	}
	return order.Uint16(b), true
}

func (s *Slice) Uint32(off uint64, order binary.ByteOrder) (uint32, bool) {
	b, ok := s.bytes(off, 4)
	if !ok {
		return 0, false
	}
	return order.Uint32(b), true
}

func (s *Slice) Uint64(off uint64, order binary.ByteOrder) (uint64, bool) {
	b, ok := s.bytes(off, 8)
	if !ok {
		return 0, false
	}
	return order.Uint64(b), true
}

func (s *Slice) Region(off, n uint64) (Region, bool) {
	if !fitsInt(n) {
		return Region{}, false
	}
	b, ok := s.bytes(off, n)
	if !ok {
		return Region{}, false
	}
	return Borrowed(b), true
}

func (s *Slice) Close() error {
	return nil
}

func (s *Slice) bytes(off, n uint64) ([]byte, bool) {
	beg, end, ok := span(off, n, len(s.data))
	if !ok {
		return nil, false
	}
	return s.data[beg:end:end], true
}

// Buffer is a Slice that owns its memory.
type Buffer struct {
	Slice
}

// NewBuffer takes ownership of b.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{Slice: Slice{data: b}}
}

// ReadBuffer reads r until EOF into a new Buffer.
func ReadBuffer(r io.Reader) (*Buffer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBuffer(b), nil
}
