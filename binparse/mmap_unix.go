//go:build linux || darwin || freebsd || netbsd || openbsd

package binparse

import (
	"os"

	"golang.org/x/sys/unix"
)

// Mapped reads from a read only, shared memory mapping of a file. Regions are
// borrowed from the mapping and are invalid once the Mapped is closed.
type Mapped struct {
	Slice
}

func OpenMapped(file string) (Source, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := s.Size()
	if size == 0 {
		return NewBuffer(nil), nil
	}
	if size < 0 || !fitsInt(uint64(size)) {
		return nil, ErrSize
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &Mapped{Slice: Slice{data: data}}, nil
}

func (m *Mapped) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
}
