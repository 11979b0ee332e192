package binparse

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var sample = []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}

func sources(t *testing.T, b []byte) map[string]Source {
	t.Helper()

	file := filepath.Join(t.TempDir(), "sample.bin")
	require.NoError(t, os.WriteFile(file, b, 0644))

	f, err := OpenFile(file)
	require.NoError(t, err)
	m, err := OpenMapped(file)
	require.NoError(t, err)
	t.Cleanup(func() {
		f.Close()
		m.Close()
	})

	return map[string]Source{
		"slice":  NewSlice(b),
		"buffer": NewBuffer(append([]byte(nil), b...)),
		"file":   f,
		"mapped": m,
	}
}

func TestReadValues(t *testing.T) {
	for name, src := range sources(t, sample) {
		t.Run(name, func(t *testing.T) {
			v8, ok := src.Uint8(0)
			require.True(t, ok)
			require.Equal(t, uint8(0x01), v8)

			v16, ok := src.Uint16(0, binary.LittleEndian)
			require.True(t, ok)
			require.Equal(t, uint16(0x0201), v16)
			v16, ok = src.Uint16(0, binary.BigEndian)
			require.True(t, ok)
			require.Equal(t, uint16(0x0102), v16)

			v32, ok := src.Uint32(1, binary.LittleEndian)
			require.True(t, ok)
			require.Equal(t, uint32(0x05040302), v32)
			v32, ok = src.Uint32(1, binary.BigEndian)
			require.True(t, ok)
			require.Equal(t, uint32(0x02030405), v32)

			v64, ok := src.Uint64(1, binary.LittleEndian)
			require.True(t, ok)
			require.Equal(t, uint64(0x0908070605040302), v64)
			v64, ok = src.Uint64(0, binary.BigEndian)
			require.True(t, ok)
			require.Equal(t, uint64(0x0102030405060708), v64)
		})
	}
}

func TestReadOutOfBounds(t *testing.T) {
	for name, src := range sources(t, sample) {
		t.Run(name, func(t *testing.T) {
			_, ok := src.Uint8(9)
			require.False(t, ok)
			_, ok = src.Uint16(8, binary.LittleEndian)
			require.False(t, ok)
			_, ok = src.Uint32(6, binary.LittleEndian)
			require.False(t, ok)
			_, ok = src.Uint64(2, binary.BigEndian)
			require.False(t, ok)

			_, ok = src.Uint8(math.MaxUint64)
			require.False(t, ok)
			_, ok = src.Uint32(math.MaxUint64-1, binary.LittleEndian)
			require.False(t, ok)
			_, ok = src.Uint64(math.MaxUint64-7, binary.BigEndian)
			require.False(t, ok)

			_, ok = src.Region(math.MaxUint64, 2)
			require.False(t, ok)
			_, ok = src.Region(1, math.MaxUint64)
			require.False(t, ok)
			_, ok = src.Region(5, 5)
			require.False(t, ok)
		})
	}
}

func TestRegion(t *testing.T) {
	for name, src := range sources(t, sample) {
		t.Run(name, func(t *testing.T) {
			r, ok := src.Region(2, 4)
			require.True(t, ok)
			require.Equal(t, 4, r.Len())
			require.True(t, bytes.Equal(sample[2:6], r.Bytes()))
			require.Equal(t, name == "file", r.Owned())

			r, ok = src.Region(9, 0)
			require.True(t, ok)
			require.Zero(t, r.Len())
		})
	}
}

func TestWord(t *testing.T) {
	src := NewSlice(sample)

	v, ok := Word(src, 0, binary.LittleEndian, false)
	require.True(t, ok)
	require.Equal(t, uint64(0x04030201), v)

	v, ok = Word(src, 0, binary.LittleEndian, true)
	require.True(t, ok)
	require.Equal(t, uint64(0x0807060504030201), v)

	_, ok = Word(src, 4, binary.LittleEndian, true)
	require.False(t, ok)
	_, ok = Word(src, 6, binary.LittleEndian, false)
	require.False(t, ok)
}

func TestArithmetic(t *testing.T) {
	_, ok := Add(math.MaxUint64, 1)
	require.False(t, ok)
	v, ok := Add(math.MaxUint64-1, 1)
	require.True(t, ok)
	require.Equal(t, uint64(math.MaxUint64), v)
}

func TestReadBuffer(t *testing.T) {
	buf, err := ReadBuffer(bytes.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, len(sample), buf.Len())

	v, ok := buf.Uint16(7, binary.BigEndian)
	require.True(t, ok)
	require.Equal(t, uint16(0x0809), v)
}

func TestFileSize(t *testing.T) {
	f, err := NewFile(bytes.NewReader(sample))
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, uint64(len(sample)), f.Size())

	_, ok := f.Region(0, 1<<40)
	require.False(t, ok)
}

func TestMappedClose(t *testing.T) {
	file := filepath.Join(t.TempDir(), "mapped.bin")
	require.NoError(t, os.WriteFile(file, sample, 0644))

	m, err := OpenMapped(file)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
	_, err = OpenMapped(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileConcurrent(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}
	f, err := NewFile(bytes.NewReader(data))
	require.NoError(t, err)

	var group errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		group.Go(func() error {
			for off := uint64(i); off < uint64(len(data)); off += 8 {
				v, ok := f.Uint8(off)
				if !ok || v != byte(off) {
					return fmt.Errorf("offset %d: got %d, want %d", off, v, byte(off))
				}
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
}
