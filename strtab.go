package readelf

import (
	"bytes"
	"unicode/utf8"

	"github.com/midbel/readelf/binparse"
)

type strtab struct {
	data binparse.Region
}

// lookup returns the NUL terminated string starting at off. It fails when off
// is past the end of the table, when no NUL follows off or when the string is
// not valid UTF-8.
func (s *strtab) lookup(off uint32) (string, bool) {
	b := s.data.Bytes()
	if uint64(off) >= uint64(len(b)) {
		return "", false
	}
	b = b[off:]
	n := bytes.IndexByte(b, 0)
	if n < 0 || !utf8.Valid(b[:n]) {
		return "", false
	}
	return string(b[:n]), true
}
