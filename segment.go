package readelf

import (
	"fmt"
	"strings"

	"github.com/midbel/readelf/internal/logging"
	"github.com/sirupsen/logrus"
)

type SegmentType uint32

const (
	SegmentNull    SegmentType = 0
	SegmentLoad    SegmentType = 1
	SegmentDynamic SegmentType = 2
	SegmentInterp  SegmentType = 3
	SegmentNote    SegmentType = 4
	SegmentShLib   SegmentType = 5
	SegmentPhdr    SegmentType = 6
	SegmentTLS     SegmentType = 7
)

var segmentNames = map[SegmentType]string{
	SegmentNull:    "Null",
	SegmentLoad:    "Loadable Segment",
	SegmentDynamic: "Dynamic Linking",
	SegmentInterp:  "Interpreter",
	SegmentNote:    "Note",
	SegmentPhdr:    "Program Header",
	SegmentTLS:     "Thread Local Storage",
}

func (s SegmentType) Known() bool {
	return s <= SegmentTLS
}

func (s SegmentType) String() string {
	if str, ok := segmentNames[s]; ok {
		return str
	}
	return fmt.Sprintf("Segment 0x%08X", uint32(s))
}

type SegmentFlags uint32

const (
	SegmentExec  SegmentFlags = 1 << 0
	SegmentWrite SegmentFlags = 1 << 1
	SegmentRead  SegmentFlags = 1 << 2
)

func (f SegmentFlags) String() string {
	if f == 0 {
		return "NONE"
	}
	var (
		parts []string
		rest  = f
	)
	for _, x := range []struct {
		flag SegmentFlags
		name string
	}{
		{SegmentExec, "PF_X"},
		{SegmentWrite, "PF_W"},
		{SegmentRead, "PF_R"},
	} {
		if f&x.flag != 0 {
			parts = append(parts, x.name)
			rest &^= x.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", uint32(rest)))
	}
	return strings.Join(parts, " | ")
}

// Perm renders the permissions as readelf does in its segments listing.
func (f SegmentFlags) Perm() string {
	b := []byte("   ")
	if f&SegmentRead != 0 {
		b[0] = 'R'
	}
	if f&SegmentWrite != 0 {
		b[1] = 'W'
	}
	if f&SegmentExec != 0 {
		b[2] = 'E'
	}
	return string(b)
}

type ProgramHeader struct {
	Type   SegmentType
	Flags  SegmentFlags
	Offset uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

// Aligned reports whether the virtual address and the file offset of the
// segment are congruent modulo its alignment. An alignment of 0 or 1 means no
// constraint; any other alignment must be a power of two.
func (p ProgramHeader) Aligned() bool {
	if p.Align <= 1 {
		return true
	}
	if p.Align&(p.Align-1) != 0 {
		return false
	}
	return (p.Vaddr-p.Offset)%p.Align == 0
}

func (f *File) decodeProgram(i int) (ProgramHeader, bool) {
	base, ok := f.programs.base(i)
	if !ok {
		return ProgramHeader{}, false
	}
	var (
		r  = f.fieldsAt(base)
		ph ProgramHeader
	)
	ph.Type = SegmentType(r.u32(0))
	if f.Class == Class32 {
		ph.Offset = uint64(r.u32(4))
		ph.Vaddr = uint64(r.u32(8))
		ph.Paddr = uint64(r.u32(12))
		ph.Filesz = uint64(r.u32(16))
		ph.Memsz = uint64(r.u32(20))
		ph.Flags = SegmentFlags(r.u32(24))
		ph.Align = uint64(r.u32(28))
	} else {
		ph.Flags = SegmentFlags(r.u32(4))
		ph.Offset = r.u64(8)
		ph.Vaddr = r.u64(16)
		ph.Paddr = r.u64(24)
		ph.Filesz = r.u64(32)
		ph.Memsz = r.u64(40)
		ph.Align = r.u64(48)
	}
	return ph, r.ok
}

// Segments iterates over the program headers of a File.
//
//	segs := file.Segments()
//	for segs.Next() {
//		ph := segs.Header()
//	}
//
// Iteration stops at the first entry that cannot be decoded.
type Segments struct {
	file *File
	next int
	curr ProgramHeader
	done bool
}

func (f *File) Segments() *Segments {
	s := Segments{file: f}
	s.Reset()
	if !f.programs.usable() && f.programs.Count > 0 {
		log.WithFields(logrus.Fields{
			logging.Table: "program",
			logging.Size:  f.programs.EntrySize,
		}).Debug("entry size too small")
	}
	return &s
}

// Len returns the number of entries declared in the header, whether they can
// be decoded or not.
func (s *Segments) Len() int {
	return int(s.file.programs.Count)
}

func (s *Segments) Empty() bool {
	return s.Len() == 0
}

// At decodes the i-th program header. It fails, like Next, when the entry size
// of the table is smaller than a program header of the class.
func (s *Segments) At(i int) (ProgramHeader, bool) {
	return s.file.decodeProgram(i)
}

func (s *Segments) Next() bool {
	if s.done {
		return false
	}
	if s.next >= s.Len() {
		s.done = true
		return false
	}
	ph, ok := s.At(s.next)
	if !ok {
		log.WithFields(logrus.Fields{
			logging.Table: "program",
			logging.Index: s.next,
		}).Debug("unreadable entry")
		s.done = true
		s.curr = ProgramHeader{}
		return false
	}
	s.curr = ph
	s.next++
	return true
}

// Header returns the entry decoded by the last successful call to Next.
func (s *Segments) Header() ProgramHeader {
	return s.curr
}

// Reset rewinds s to the first entry.
func (s *Segments) Reset() {
	s.next = 0
	s.curr = ProgramHeader{}
	s.done = !s.file.programs.usable()
}

// All returns the entries Next would give from the first one.
func (s *Segments) All() []ProgramHeader {
	var list []ProgramHeader
	for i := 0; i < s.Len(); i++ {
		ph, ok := s.At(i)
		if !ok {
			break
		}
		list = append(list, ph)
	}
	return list
}
