package readelf

import (
	"fmt"
	"strings"

	"github.com/midbel/readelf/binparse"
	"github.com/midbel/readelf/internal/logging"
	"github.com/sirupsen/logrus"
)

type SectionType uint32

const (
	SectionNull         SectionType = 0
	SectionProgBits     SectionType = 1
	SectionSymTab       SectionType = 2
	SectionStrTab       SectionType = 3
	SectionRela         SectionType = 4
	SectionHash         SectionType = 5
	SectionDynamic      SectionType = 6
	SectionNote         SectionType = 7
	SectionNoBits       SectionType = 8
	SectionRel          SectionType = 9
	SectionShLib        SectionType = 10
	SectionDynSym       SectionType = 11
	SectionInitArray    SectionType = 14
	SectionFiniArray    SectionType = 15
	SectionPreInitArray SectionType = 16
	SectionGroup        SectionType = 17
	SectionSymTabShndx  SectionType = 18
)

var sectionNames = map[SectionType]string{
	SectionNull:         "Null",
	SectionProgBits:     "Program data",
	SectionSymTab:       "Symbol table",
	SectionStrTab:       "String table",
	SectionRela:         "Relocation Addends",
	SectionHash:         "Symbol hash table",
	SectionDynamic:      "Dynamic linking",
	SectionNote:         "Notes",
	SectionNoBits:       "Program no data",
	SectionRel:          "Relocation",
	SectionDynSym:       "Dyn. linker symtab",
	SectionInitArray:    "Constructors",
	SectionFiniArray:    "Destructors",
	SectionPreInitArray: "Pre-constructors",
	SectionGroup:        "Section group",
	SectionSymTabShndx:  "Ext. section indices",
}

func (s SectionType) Known() bool {
	return s == SectionShLib || sectionNames[s] != ""
}

func (s SectionType) String() string {
	if str, ok := sectionNames[s]; ok {
		return str
	}
	return fmt.Sprintf("Section 0x%08X", uint32(s))
}

type SectionFlags uint64

const (
	SectionWrite           SectionFlags = 0x1
	SectionAlloc           SectionFlags = 0x2
	SectionExecInstr       SectionFlags = 0x4
	SectionMerge           SectionFlags = 0x10
	SectionStrings         SectionFlags = 0x20
	SectionInfoLink        SectionFlags = 0x40
	SectionLinkOrder       SectionFlags = 0x80
	SectionOSNonConforming SectionFlags = 0x100
	SectionGroupMember     SectionFlags = 0x200
	SectionTLS             SectionFlags = 0x400
	SectionMaskOS          SectionFlags = 0x0FF00000
	SectionMaskProc        SectionFlags = 0xF0000000
)

var sectionFlags = []struct {
	flag SectionFlags
	name string
	key  byte
}{
	{SectionWrite, "SHF_WRITE", 'W'},
	{SectionAlloc, "SHF_ALLOC", 'A'},
	{SectionExecInstr, "SHF_EXECINSTR", 'X'},
	{SectionMerge, "SHF_MERGE", 'M'},
	{SectionStrings, "SHF_STRINGS", 'S'},
	{SectionInfoLink, "SHF_INFO_LINK", 'I'},
	{SectionLinkOrder, "SHF_LINK_ORDER", 'L'},
	{SectionOSNonConforming, "SHF_OS_NONCONFORMING", 'O'},
	{SectionGroupMember, "SHF_GROUP", 'G'},
	{SectionTLS, "SHF_TLS", 'T'},
}

func (f SectionFlags) String() string {
	if f == 0 {
		return "NONE"
	}
	var (
		parts []string
		rest  = f
	)
	for _, x := range sectionFlags {
		if f&x.flag != 0 {
			parts = append(parts, x.name)
			rest &^= x.flag
		}
	}
	if v := f & SectionMaskOS; v != 0 {
		parts = append(parts, fmt.Sprintf("SHF_MASKOS(%02X)", uint64(v>>20)))
		rest &^= SectionMaskOS
	}
	if v := f & SectionMaskProc; v != 0 {
		parts = append(parts, fmt.Sprintf("SHF_MASKPROC(%X)", uint64(v>>28)))
		rest &^= SectionMaskProc
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", uint64(rest)))
	}
	return strings.Join(parts, " | ")
}

// Key renders the flags with one letter per flag as in the key of the
// sections listing.
func (f SectionFlags) Key() string {
	var (
		buf  strings.Builder
		rest = f
	)
	for _, x := range sectionFlags {
		if f&x.flag != 0 {
			buf.WriteByte(x.key)
			rest &^= x.flag
		}
	}
	if f&SectionMaskOS != 0 {
		buf.WriteByte('o')
		rest &^= SectionMaskOS
	}
	if f&SectionMaskProc != 0 {
		buf.WriteByte('p')
		rest &^= SectionMaskProc
	}
	if rest != 0 {
		buf.WriteByte('x')
	}
	return buf.String()
}

type SectionHeader struct {
	// Name is only meaningful when HasName is true.
	Name       string
	HasName    bool
	NameOffset uint32

	Type      SectionType
	Flags     SectionFlags
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	Addralign uint64
	Entsize   uint64
}

// Aligned reports whether the alignment is 0, 1 or a power of two.
func (s SectionHeader) Aligned() bool {
	return s.Addralign&(s.Addralign-1) == 0
}

// decodeSection reads the i-th section header. The name is resolved only when
// names is not nil.
func (f *File) decodeSection(i int, names *strtab) (SectionHeader, bool) {
	base, ok := f.sections.base(i)
	if !ok {
		return SectionHeader{}, false
	}
	var (
		r  = f.fieldsAt(base)
		sh SectionHeader
	)
	sh.NameOffset = r.u32(0)
	sh.Type = SectionType(r.u32(4))
	if f.Class == Class32 {
		sh.Flags = SectionFlags(r.u32(8))
		sh.Addr = uint64(r.u32(12))
		sh.Offset = uint64(r.u32(16))
		sh.Size = uint64(r.u32(20))
		sh.Link = r.u32(24)
		sh.Info = r.u32(28)
		sh.Addralign = uint64(r.u32(32))
		sh.Entsize = uint64(r.u32(36))
	} else {
		sh.Flags = SectionFlags(r.u64(8))
		sh.Addr = r.u64(16)
		sh.Offset = r.u64(24)
		sh.Size = r.u64(32)
		sh.Link = r.u32(40)
		sh.Info = r.u32(44)
		sh.Addralign = r.u64(48)
		sh.Entsize = r.u64(56)
	}
	if !r.ok {
		return SectionHeader{}, false
	}
	if names != nil {
		sh.Name, sh.HasName = names.lookup(sh.NameOffset)
	}
	return sh, true
}

// loadNames reads the section name string table. It returns nil when the
// table is missing or invalid; every name is then unresolved.
func (f *File) loadNames() *strtab {
	ctx := log.WithField(logging.Index, f.shstrndx)
	if f.shstrndx >= f.sections.Count {
		ctx.Debug("string table index out of range")
		return nil
	}
	sh, ok := f.decodeSection(int(f.shstrndx), nil)
	if !ok {
		ctx.Debug("string table header unreadable")
		return nil
	}
	if sh.Type != SectionStrTab {
		ctx.WithField(logging.Value, sh.Type).Debug("string table has wrong type")
		return nil
	}
	data, ok := f.src.Region(sh.Offset, sh.Size)
	if !ok {
		ctx.WithFields(logrus.Fields{
			logging.Offset: sh.Offset,
			logging.Size:   sh.Size,
		}).Debug("string table out of bounds")
		return nil
	}
	return &strtab{data: data}
}

// SectionData returns the content of sh in the file. Sections without data in
// the file give an empty region.
func (f *File) SectionData(sh SectionHeader) (binparse.Region, bool) {
	if sh.Type == SectionNoBits {
		return binparse.Borrowed(nil), true
	}
	return f.src.Region(sh.Offset, sh.Size)
}

// Sections iterates over the section headers of a File, resolving their names
// with the section name string table. The string table is loaded once, when
// the Sections is created.
type Sections struct {
	file  *File
	names *strtab
	next  int
	curr  SectionHeader
	done  bool
}

func (f *File) Sections() *Sections {
	s := Sections{
		file:  f,
		names: f.loadNames(),
	}
	s.Reset()
	if !f.sections.usable() && f.sections.Count > 0 {
		log.WithFields(logrus.Fields{
			logging.Table: "section",
			logging.Size:  f.sections.EntrySize,
		}).Debug("entry size too small")
	}
	return &s
}

// Len returns the number of entries declared in the header, whether they can
// be decoded or not.
func (s *Sections) Len() int {
	return int(s.file.sections.Count)
}

func (s *Sections) Empty() bool {
	return s.Len() == 0
}

// At decodes the i-th section header. It fails, like Next, when the entry size
// of the table is smaller than a section header of the class.
func (s *Sections) At(i int) (SectionHeader, bool) {
	return s.file.decodeSection(i, s.names)
}

func (s *Sections) Next() bool {
	if s.done {
		return false
	}
	if s.next >= s.Len() {
		s.done = true
		return false
	}
	sh, ok := s.At(s.next)
	if !ok {
		log.WithFields(logrus.Fields{
			logging.Table: "section",
			logging.Index: s.next,
		}).Debug("unreadable entry")
		s.done = true
		s.curr = SectionHeader{}
		return false
	}
	s.curr = sh
	s.next++
	return true
}

func (s *Sections) Header() SectionHeader {
	return s.curr
}

func (s *Sections) Reset() {
	s.next = 0
	s.curr = SectionHeader{}
	s.done = !s.file.sections.usable()
}

func (s *Sections) All() []SectionHeader {
	var list []SectionHeader
	for i := 0; i < s.Len(); i++ {
		sh, ok := s.At(i)
		if !ok {
			break
		}
		list = append(list, sh)
	}
	return list
}

// Lookup returns the first section called name.
func (s *Sections) Lookup(name string) (SectionHeader, bool) {
	for i := 0; i < s.Len(); i++ {
		sh, ok := s.At(i)
		if !ok {
			break
		}
		if sh.HasName && sh.Name == name {
			return sh, true
		}
	}
	return SectionHeader{}, false
}
