package binparse

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"sync"
)

var ErrSize = errors.New("binparse: invalid size")

// File reads every value with a seek followed by a read on the underlying
// file. Nothing is cached except the size of the file, captured when the File
// is created. Regions are always copied into a new allocation.
type File struct {
	mu    sync.Mutex
	inner io.ReadSeeker
	size  uint64
}

func OpenFile(file string) (*File, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	f, err := NewFile(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	return f, nil
}

// NewFile wraps r. If r is also an io.Closer, it is closed by Close.
func NewFile(r io.ReadSeeker) (*File, error) {
	n, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrSize
	}
	return &File{inner: r, size: uint64(n)}, nil
}

func (f *File) Size() uint64 {
	return f.size
}

func (f *File) Uint8(off uint64) (uint8, bool) {
	var b [1]byte
	if !f.readAt(b[:], off) {
		return 0, false
	}
	return b[0], true
}

func (f *File) Uint16(off uint64, order binary.ByteOrder) (uint16, bool) {
	var b [2]byte
	if !f.readAt(b[:], off) {
		return 0, false
	}
	return order.Uint16(b[:]), true
}

func (f *File) Uint32(off uint64, order binary.ByteOrder) (uint32, bool) {
	var b [4]byte
	if !f.readAt(b[:], off) {
		return 0, false
	}
	return order.Uint32(b[:]), true
}

func (f *File) Uint64(off uint64, order binary.ByteOrder) (uint64, bool) {
	var b [8]byte
	if !f.readAt(b[:], off) {
		return 0, false
	}
	return order.Uint64(b[:]), true
}

func (f *File) Region(off, n uint64) (Region, bool) {
	if !fitsInt(n) {
		return Region{}, false
	}
	if end, ok := Add(off, n); !ok || end > f.size {
		return Region{}, false
	}
	b := make([]byte, int(n))
	if !f.readAt(b, off) {
		return Region{}, false
	}
	return Owned(b), true
}

func (f *File) Close() error {
	if c, ok := f.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (f *File) readAt(b []byte, off uint64) bool {
	if _, ok := Add(off, uint64(len(b))); !ok || off > maxSeek {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.inner.Seek(int64(off), io.SeekStart); err != nil {
		return false
	}
	_, err := io.ReadFull(f.inner, b)
	return err == nil
}

const maxSeek = 1<<63 - 1
