// Package readelf decodes ELF headers lazily from an arbitrary byte source.
//
// Only the file header is validated when a File is created. Program and
// section headers are decoded on demand, every access being checked against
// the bounds of the source so that truncated or corrupted files never cause a
// panic.
package readelf

import (
	"errors"
	"io"

	"github.com/midbel/readelf/binparse"
	"github.com/midbel/readelf/internal/logging"
	"github.com/sirupsen/logrus"
)

var ErrFormat = errors.New("readelf: not a valid ELF file")

var log = logging.DefaultLogger.WithField(logging.LogSubsys, "readelf")

var magic = []byte{0x7F, 0x45, 0x4c, 0x46}

const (
	identVersion   = 1
	currentVersion = 1
)

const (
	offClass      = 4
	offData       = 5
	offIdent      = 6
	offOSABI      = 7
	offABIVersion = 8
	offType       = 16
	offMachine    = 18
	offVersion    = 20
	offEntry      = 24
)

type headerLayout struct {
	phoff     uint64
	shoff     uint64
	flags     uint64
	ehsize    uint64
	phentsize uint64
	phnum     uint64
	shentsize uint64
	shnum     uint64
	shstrndx  uint64

	minProgram uint16
	minSection uint16
}

var (
	layout32 = headerLayout{
		phoff:      28,
		shoff:      32,
		flags:      36,
		ehsize:     40,
		phentsize:  42,
		phnum:      44,
		shentsize:  46,
		shnum:      48,
		shstrndx:   50,
		minProgram: 32,
		minSection: 40,
	}
	layout64 = headerLayout{
		phoff:      32,
		shoff:      40,
		flags:      48,
		ehsize:     52,
		phentsize:  54,
		phnum:      56,
		shentsize:  58,
		shnum:      60,
		shstrndx:   62,
		minProgram: 56,
		minSection: 64,
	}
)

// File is the validated header of an ELF file. It keeps the source open until
// Close is called; every table reader obtained from it reads from that source.
type File struct {
	Class      Class
	Endian     Endian
	Version    uint32
	OSABI      OSABI
	ABIVersion uint8
	Type       Type
	Machine    Machine
	Entry      uint64
	Flags      uint32

	ehsize   uint16
	programs table
	sections table
	shstrndx uint16

	src binparse.Source
}

// NewFile parses the header from b. b is borrowed: it must not be modified
// while the File is in use.
func NewFile(b []byte) (*File, error) {
	return NewSource(binparse.NewSlice(b))
}

// NewBuffer parses the header from b, taking ownership of it.
func NewBuffer(b []byte) (*File, error) {
	return NewSource(binparse.NewBuffer(b))
}

// Read loads all of r in memory before parsing the header.
func Read(r io.Reader) (*File, error) {
	buf, err := binparse.ReadBuffer(r)
	if err != nil {
		return nil, err
	}
	return NewSource(buf)
}

// Open parses the header of file. Values are read from disk every time they
// are needed.
func Open(file string) (*File, error) {
	src, err := binparse.OpenFile(file)
	if err != nil {
		return nil, err
	}
	return openSource(file, src)
}

// OpenMapped parses the header of file through a read only memory mapping.
func OpenMapped(file string) (*File, error) {
	src, err := binparse.OpenMapped(file)
	if err != nil {
		return nil, err
	}
	return openSource(file, src)
}

func openSource(file string, src binparse.Source) (*File, error) {
	f, err := NewSource(src)
	if err != nil {
		log.WithField(logging.Path, file).Debug("closing source of invalid file")
		src.Close()
		return nil, err
	}
	return f, nil
}

// NewSource parses the header from src. On success the File owns src and
// closes it with Close.
func NewSource(src binparse.Source) (*File, error) {
	for i := range magic {
		b, ok := src.Uint8(uint64(i))
		if !ok || b != magic[i] {
			log.WithField(logging.Offset, i).Debug("bad magic")
			return nil, ErrFormat
		}
	}
	var (
		f   = File{src: src}
		raw uint8
		ok  bool
	)
	if raw, ok = src.Uint8(offClass); ok {
		f.Class, ok = classFrom(raw)
	}
	if !ok {
		log.WithField(logging.Value, raw).Debug("unsupported class")
		return nil, ErrFormat
	}
	if raw, ok = src.Uint8(offData); ok {
		f.Endian, ok = endianFrom(raw)
	}
	if !ok {
		log.WithField(logging.Value, raw).Debug("unsupported data encoding")
		return nil, ErrFormat
	}
	if raw, ok = src.Uint8(offIdent); !ok || raw != identVersion {
		log.WithField(logging.Value, raw).Debug("unsupported identification version")
		return nil, ErrFormat
	}

	r := f.fieldsAt(0)
	if f.Version = r.u32(offVersion); !r.ok || f.Version != currentVersion {
		log.WithField(logging.Value, f.Version).Debug("unsupported version")
		return nil, ErrFormat
	}

	lay := layout32
	if f.Class == Class64 {
		lay = layout64
	}
	f.OSABI = OSABI(r.u8(offOSABI))
	f.ABIVersion = r.u8(offABIVersion)
	f.Type = Type(r.u16(offType))
	f.Machine = Machine(r.u16(offMachine))
	f.Entry = r.word(offEntry)
	f.Flags = r.u32(lay.flags)
	f.ehsize = r.u16(lay.ehsize)
	f.programs = table{
		TableInfo: TableInfo{
			Offset:    r.word(lay.phoff),
			EntrySize: r.u16(lay.phentsize),
			Count:     r.u16(lay.phnum),
		},
		min: lay.minProgram,
	}
	f.sections = table{
		TableInfo: TableInfo{
			Offset:    r.word(lay.shoff),
			EntrySize: r.u16(lay.shentsize),
			Count:     r.u16(lay.shnum),
		},
		min: lay.minSection,
	}
	f.shstrndx = r.u16(lay.shstrndx)
	if !r.ok {
		log.WithField(logging.Value, f.Class).Debug("truncated header")
		return nil, ErrFormat
	}

	log.WithFields(logrus.Fields{
		"class":  f.Class,
		"endian": f.Endian,
		"type":   f.Type,
	}).Debug("header decoded")
	return &f, nil
}

// Close releases the source of f. Readers obtained from f must not be used
// afterwards.
func (f *File) Close() error {
	return f.src.Close()
}

// Source gives access to the bytes f has been parsed from.
func (f *File) Source() binparse.Source {
	return f.src
}

func (f *File) HeaderSize() uint16 {
	return f.ehsize
}

func (f *File) ProgramTable() TableInfo {
	return f.programs.TableInfo
}

func (f *File) SectionTable() TableInfo {
	return f.sections.TableInfo
}

// StringIndex is the index of the section holding the section names.
func (f *File) StringIndex() uint16 {
	return f.shstrndx
}
