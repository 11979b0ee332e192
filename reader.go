package readelf

import (
	"encoding/binary"
	"math"

	"github.com/midbel/readelf/binparse"
)

// fields reads values at offsets relative to base. The first failure sticks:
// every later read returns zero and ok stays false.
type fields struct {
	src   binparse.Source
	order binary.ByteOrder
	wide  bool
	base  uint64
	ok    bool
}

func (f *File) fieldsAt(base uint64) *fields {
	return &fields{
		src:   f.src,
		order: f.Endian.ByteOrder(),
		wide:  f.Class == Class64,
		base:  base,
		ok:    true,
	}
}

func (r *fields) offset(off uint64) (uint64, bool) {
	if !r.ok {
		return 0, false
	}
	pos, ok := binparse.Add(r.base, off)
	if !ok {
		r.ok = false
	}
	return pos, ok
}

func (r *fields) u8(off uint64) uint8 {
	pos, ok := r.offset(off)
	if !ok {
		return 0
	}
	v, ok := r.src.Uint8(pos)
	r.ok = ok
	return v
}

func (r *fields) u16(off uint64) uint16 {
	pos, ok := r.offset(off)
	if !ok {
		return 0
	}
	v, ok := r.src.Uint16(pos, r.order)
	r.ok = ok
	return v
}

func (r *fields) u32(off uint64) uint32 {
	pos, ok := r.offset(off)
	if !ok {
		return 0
	}
	v, ok := r.src.Uint32(pos, r.order)
	r.ok = ok
	return v
}

func (r *fields) u64(off uint64) uint64 {
	pos, ok := r.offset(off)
	if !ok {
		return 0
	}
	v, ok := r.src.Uint64(pos, r.order)
	r.ok = ok
	return v
}

// word reads a field whose width follows the class of the file.
func (r *fields) word(off uint64) uint64 {
	pos, ok := r.offset(off)
	if !ok {
		return 0
	}
	v, ok := binparse.Word(r.src, pos, r.order, r.wide)
	r.ok = ok
	return v
}

// TableInfo locates a table of fixed size entries in the file.
type TableInfo struct {
	Offset    uint64
	EntrySize uint16
	Count     uint16
}

type table struct {
	TableInfo
	min uint16
}

func (t table) usable() bool {
	return t.EntrySize >= t.min
}

// base returns the offset of the i-th entry. It fails when i is out of range,
// when the entry size is too small for the class of the file or when the
// entry would end past the 64-bit address space.
func (t table) base(i int) (uint64, bool) {
	if i < 0 || i >= int(t.Count) || !t.usable() {
		return 0, false
	}
	rel := uint32(i) * uint32(t.EntrySize)
	pos, ok := binparse.Add(t.Offset, uint64(rel))
	if !ok || pos > math.MaxUint64-uint64(t.EntrySize) {
		return 0, false
	}
	return pos, true
}
