//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package binparse

import (
	"os"
)

// OpenMapped reads the whole file into a Buffer on platforms without mmap.
func OpenMapped(file string) (Source, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadBuffer(r)
}
