// Package elftest builds small ELF images in memory for tests.
package elftest

import (
	"encoding/binary"
)

const (
	Class32 = 1
	Class64 = 2

	Little = 1
	Big    = 2
)

type Segment struct {
	Type   uint32
	Flags  uint32
	Offset uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

// Section describes a section header. Its offset is set by Build to where
// Data is written; when Data is nil, Offset and Size are used as given.
type Section struct {
	Name      string
	Type      uint32
	Flags     uint64
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	Addralign uint64
	Entsize   uint64
	Data      []byte
}

// Builder lays out an ELF image: header, program headers, section headers and
// then the content of the sections, each aligned on 8 bytes.
//
// When Names is set, a string table section named .shstrtab holding the names
// of every section is appended and referenced from the header.
type Builder struct {
	Class      uint8
	Data       uint8
	OSABI      uint8
	ABIVersion uint8
	Type       uint16
	Machine    uint16
	Entry      uint64
	Flags      uint32

	Segments []Segment
	Sections []Section
	Names    bool
}

// Offsets of the header fields for each class.
type Layout struct {
	Header    int
	Phoff     int
	Shoff     int
	Flags     int
	Ehsize    int
	Phentsize int
	Phnum     int
	Shentsize int
	Shnum     int
	Shstrndx  int

	ProgramSize int
	SectionSize int
}

var (
	Layout32 = Layout{
		Header:      52,
		Phoff:       28,
		Shoff:       32,
		Flags:       36,
		Ehsize:      40,
		Phentsize:   42,
		Phnum:       44,
		Shentsize:   46,
		Shnum:       48,
		Shstrndx:    50,
		ProgramSize: 32,
		SectionSize: 40,
	}
	Layout64 = Layout{
		Header:      64,
		Phoff:       32,
		Shoff:       40,
		Flags:       48,
		Ehsize:      52,
		Phentsize:   54,
		Phnum:       56,
		Shentsize:   58,
		Shnum:       60,
		Shstrndx:    62,
		ProgramSize: 56,
		SectionSize: 64,
	}
)

func New(class, data uint8) *Builder {
	return &Builder{
		Class:   class,
		Data:    data,
		Type:    2,
		Machine: 0x3E,
	}
}

func (b *Builder) Layout() Layout {
	if b.Class == Class32 {
		return Layout32
	}
	return Layout64
}

func (b *Builder) Order() binary.ByteOrder {
	if b.Data == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (b *Builder) Build() []byte {
	var (
		lay      = b.Layout()
		sections = append([]Section(nil), b.Sections...)
		shstrndx int
		nameoff  []uint32
	)
	if b.Names {
		sections = append(sections, Section{Name: ".shstrtab", Type: 3, Addralign: 1})
		shstrndx = len(sections) - 1

		names := []byte{0}
		nameoff = make([]uint32, len(sections))
		for i := range sections {
			if sections[i].Name == "" {
				continue
			}
			nameoff[i] = uint32(len(names))
			names = append(names, sections[i].Name...)
			names = append(names, 0)
		}
		sections[shstrndx].Data = names
	}

	var (
		phoff = lay.Header
		shoff = phoff + len(b.Segments)*lay.ProgramSize
		data  = align(shoff + len(sections)*lay.SectionSize)
		size  = data
	)
	for _, s := range sections {
		size = align(size + len(s.Data))
	}

	w := writer{
		buf:   make([]byte, size),
		order: b.Order(),
		wide:  b.Class == Class64,
	}
	copy(w.buf, []byte{0x7F, 'E', 'L', 'F', b.Class, b.Data, 1, b.OSABI, b.ABIVersion})
	w.u16(16, b.Type)
	w.u16(18, b.Machine)
	w.u32(20, 1)
	w.word(24, b.Entry)
	w.u32(lay.Flags, b.Flags)
	w.u16(lay.Ehsize, uint16(lay.Header))
	if len(b.Segments) > 0 {
		w.word(lay.Phoff, uint64(phoff))
	}
	w.u16(lay.Phentsize, uint16(lay.ProgramSize))
	w.u16(lay.Phnum, uint16(len(b.Segments)))
	if len(sections) > 0 {
		w.word(lay.Shoff, uint64(shoff))
	}
	w.u16(lay.Shentsize, uint16(lay.SectionSize))
	w.u16(lay.Shnum, uint16(len(sections)))
	w.u16(lay.Shstrndx, uint16(shstrndx))

	for i, s := range b.Segments {
		w.segment(phoff+i*lay.ProgramSize, s)
	}
	for i, s := range sections {
		var name uint32
		if b.Names {
			name = nameoff[i]
		}
		if s.Data != nil {
			copy(w.buf[data:], s.Data)
			s.Offset = uint64(data)
			s.Size = uint64(len(s.Data))
			data = align(data + len(s.Data))
		}
		w.section(shoff+i*lay.SectionSize, name, s)
	}
	return w.buf
}

func align(n int) int {
	return (n + 7) &^ 7
}

type writer struct {
	buf   []byte
	order binary.ByteOrder
	wide  bool
}

func (w writer) u16(off int, v uint16) {
	w.order.PutUint16(w.buf[off:], v)
}

func (w writer) u32(off int, v uint32) {
	w.order.PutUint32(w.buf[off:], v)
}

func (w writer) u64(off int, v uint64) {
	w.order.PutUint64(w.buf[off:], v)
}

func (w writer) word(off int, v uint64) {
	if w.wide {
		w.u64(off, v)
	} else {
		w.u32(off, uint32(v))
	}
}

func (w writer) segment(base int, s Segment) {
	w.u32(base, s.Type)
	if w.wide {
		w.u32(base+4, s.Flags)
		w.u64(base+8, s.Offset)
		w.u64(base+16, s.Vaddr)
		w.u64(base+24, s.Paddr)
		w.u64(base+32, s.Filesz)
		w.u64(base+40, s.Memsz)
		w.u64(base+48, s.Align)
		return
	}
	w.u32(base+4, uint32(s.Offset))
	w.u32(base+8, uint32(s.Vaddr))
	w.u32(base+12, uint32(s.Paddr))
	w.u32(base+16, uint32(s.Filesz))
	w.u32(base+20, uint32(s.Memsz))
	w.u32(base+24, s.Flags)
	w.u32(base+28, uint32(s.Align))
}

func (w writer) section(base int, name uint32, s Section) {
	w.u32(base, name)
	w.u32(base+4, s.Type)
	if w.wide {
		w.u64(base+8, s.Flags)
		w.u64(base+16, s.Addr)
		w.u64(base+24, s.Offset)
		w.u64(base+32, s.Size)
		w.u32(base+40, s.Link)
		w.u32(base+44, s.Info)
		w.u64(base+48, s.Addralign)
		w.u64(base+56, s.Entsize)
		return
	}
	w.u32(base+8, uint32(s.Flags))
	w.u32(base+12, uint32(s.Addr))
	w.u32(base+16, uint32(s.Offset))
	w.u32(base+20, uint32(s.Size))
	w.u32(base+24, s.Link)
	w.u32(base+28, s.Info)
	w.u32(base+32, uint32(s.Addralign))
	w.u32(base+36, uint32(s.Entsize))
}
