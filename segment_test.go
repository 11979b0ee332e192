package readelf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/midbel/readelf/internal/elftest"
	"github.com/stretchr/testify/require"
)

var testSegments = []elftest.Segment{
	{Type: 6, Flags: 4, Offset: 0x40, Vaddr: 0x400040, Paddr: 0x400040, Filesz: 0x1c0, Memsz: 0x1c0, Align: 8},
	{Type: 1, Flags: 5, Offset: 0, Vaddr: 0x400000, Paddr: 0x400000, Filesz: 0x2000, Memsz: 0x2000, Align: 0x1000},
	{Type: 1, Flags: 6, Offset: 0x22AE, Vaddr: 0x4032AE, Paddr: 0x4032AE, Filesz: 0x100, Memsz: 0x300, Align: 0x1000},
	{Type: 0x6474e551, Flags: 6, Align: 0x10},
}

func programHeaders(list []elftest.Segment) []ProgramHeader {
	var phs []ProgramHeader
	for _, s := range list {
		phs = append(phs, ProgramHeader{
			Type:   SegmentType(s.Type),
			Flags:  SegmentFlags(s.Flags),
			Offset: s.Offset,
			Vaddr:  s.Vaddr,
			Paddr:  s.Paddr,
			Filesz: s.Filesz,
			Memsz:  s.Memsz,
			Align:  s.Align,
		})
	}
	return phs
}

func TestSegments(t *testing.T) {
	want := programHeaders(testSegments)
	for _, class := range []uint8{elftest.Class32, elftest.Class64} {
		for _, data := range []uint8{elftest.Little, elftest.Big} {
			b := elftest.New(class, data)
			b.Segments = testSegments

			f, err := NewFile(b.Build())
			require.NoError(t, err)

			segs := f.Segments()
			require.Equal(t, len(testSegments), segs.Len())
			require.False(t, segs.Empty())

			var got []ProgramHeader
			for segs.Next() {
				got = append(got, segs.Header())
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
			require.False(t, segs.Next())

			segs.Reset()
			require.True(t, segs.Next())
			require.Equal(t, want[0], segs.Header())

			if diff := cmp.Diff(want, segs.All()); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
			ph, ok := segs.At(2)
			require.True(t, ok)
			require.Equal(t, want[2], ph)
		}
	}
}

func TestSegmentsEmpty(t *testing.T) {
	f, err := NewFile(elftest.New(elftest.Class64, elftest.Little).Build())
	require.NoError(t, err)

	segs := f.Segments()
	require.True(t, segs.Empty())
	require.Zero(t, segs.Len())
	require.False(t, segs.Next())
	require.Empty(t, segs.All())
}

func TestSegmentsIndex(t *testing.T) {
	b := elftest.New(elftest.Class32, elftest.Big)
	b.Segments = testSegments
	f, err := NewFile(b.Build())
	require.NoError(t, err)

	segs := f.Segments()
	for _, i := range []int{-1, len(testSegments), math.MaxInt} {
		_, ok := segs.At(i)
		require.False(t, ok, "index %d", i)
	}
}

func TestSegmentsEntrySize(t *testing.T) {
	for _, class := range []uint8{elftest.Class32, elftest.Class64} {
		b := elftest.New(class, elftest.Little)
		b.Segments = testSegments
		image := b.Build()

		lay := b.Layout()
		binary.LittleEndian.PutUint16(image[lay.Phentsize:], uint16(lay.ProgramSize-1))

		f, err := NewFile(image)
		require.NoError(t, err)
		segs := f.Segments()
		require.Equal(t, len(testSegments), segs.Len())
		require.False(t, segs.Next())
		_, ok := segs.At(0)
		require.False(t, ok)

		binary.LittleEndian.PutUint16(image[lay.Phentsize:], uint16(lay.ProgramSize+8))
		f, err = NewFile(image)
		require.NoError(t, err)
		ph, ok := f.Segments().At(0)
		require.True(t, ok)
		require.Equal(t, programHeaders(testSegments)[0], ph)
	}
}

func TestSegmentsOffsetOverflow(t *testing.T) {
	b := elftest.New(elftest.Class64, elftest.Little)
	b.Segments = testSegments
	image := b.Build()
	binary.LittleEndian.PutUint64(image[b.Layout().Phoff:], math.MaxUint64)

	f, err := NewFile(image)
	require.NoError(t, err)

	segs := f.Segments()
	require.Equal(t, len(testSegments), segs.Len())
	require.False(t, segs.Next())
	for i := range testSegments {
		_, ok := segs.At(i)
		require.False(t, ok)
	}

	binary.LittleEndian.PutUint64(image[b.Layout().Phoff:], math.MaxUint64-0x38)
	f, err = NewFile(image)
	require.NoError(t, err)
	require.False(t, f.Segments().Next())
}

func TestSegmentsTruncated(t *testing.T) {
	b := elftest.New(elftest.Class64, elftest.Little)
	b.Segments = testSegments
	image := b.Build()

	lay := b.Layout()
	f, err := NewFile(image[:lay.Header+lay.ProgramSize+lay.ProgramSize/2])
	require.NoError(t, err)

	segs := f.Segments()
	require.Equal(t, len(testSegments), segs.Len())
	require.True(t, segs.Next())
	require.False(t, segs.Next())
	require.False(t, segs.Next())
	require.Equal(t, ProgramHeader{}, segs.Header())
	require.Len(t, segs.All(), 1)

	_, ok := segs.At(3)
	require.False(t, ok)
}

func TestSegmentAligned(t *testing.T) {
	data := []struct {
		Offset uint64
		Vaddr  uint64
		Align  uint64
		Want   bool
	}{
		{Offset: 0x22AE, Vaddr: 0x22AE, Align: 0x1000, Want: true},
		{Offset: 0x22AE, Vaddr: 0x12AE, Align: 0x1000, Want: true},
		{Offset: 0x22AE, Vaddr: 0x1000, Align: 0x1000, Want: false},
		{Offset: 0x22AE, Vaddr: 0x23AE, Align: 0x1000, Want: false},
		{Offset: 0x1000, Vaddr: 0x1000, Align: 0x1000, Want: true},
		{Offset: 0x1234, Vaddr: 0x5678, Align: 0, Want: true},
		{Offset: 0x1234, Vaddr: 0x5678, Align: 1, Want: true},
		{Offset: 0x1000, Vaddr: 0x1000, Align: 0x1800, Want: false},
		{Offset: 0x2000, Vaddr: 0x1000, Align: 0x1000, Want: true},
	}
	for _, d := range data {
		ph := ProgramHeader{Offset: d.Offset, Vaddr: d.Vaddr, Align: d.Align}
		require.Equal(t, d.Want, ph.Aligned(), "offset %#x, vaddr %#x, align %#x", d.Offset, d.Vaddr, d.Align)
	}
}

func TestSegmentStrings(t *testing.T) {
	flags := []struct {
		Flags SegmentFlags
		Want  string
		Perm  string
	}{
		{Flags: 0, Want: "NONE", Perm: "   "},
		{Flags: 8, Want: "0x8", Perm: "   "},
		{Flags: 9, Want: "PF_X | 0x8", Perm: "  E"},
		{Flags: 5, Want: "PF_X | PF_R", Perm: "R E"},
		{Flags: 6, Want: "PF_W | PF_R", Perm: "RW "},
		{Flags: 0xF, Want: "PF_X | PF_W | PF_R | 0x8", Perm: "RWE"},
		{Flags: 0xFF07, Want: "PF_X | PF_W | PF_R | 0xFF00", Perm: "RWE"},
	}
	for _, d := range flags {
		require.Equal(t, d.Want, d.Flags.String())
		require.Equal(t, d.Perm, d.Flags.Perm())
	}

	types := []struct {
		Type  SegmentType
		Want  string
		Known bool
	}{
		{Type: SegmentNull, Want: "Null", Known: true},
		{Type: SegmentLoad, Want: "Loadable Segment", Known: true},
		{Type: SegmentDynamic, Want: "Dynamic Linking", Known: true},
		{Type: SegmentInterp, Want: "Interpreter", Known: true},
		{Type: SegmentNote, Want: "Note", Known: true},
		{Type: SegmentShLib, Want: "Segment 0x00000005", Known: true},
		{Type: SegmentPhdr, Want: "Program Header", Known: true},
		{Type: SegmentTLS, Want: "Thread Local Storage", Known: true},
		{Type: 8, Want: "Segment 0x00000008"},
		{Type: 0x6474E550, Want: "Segment 0x6474E550"},
	}
	for _, d := range types {
		require.Equal(t, d.Want, d.Type.String())
		require.Equal(t, d.Known, d.Type.Known())
	}
}
