package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/midbel/readelf"
	"github.com/midbel/readelf/internal/elftest"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T, class, data uint8) string {
	t.Helper()
	b := elftest.New(class, data)
	b.Entry = 0x401000
	b.Segments = []elftest.Segment{
		{Type: 1, Flags: 5, Vaddr: 0x400000, Paddr: 0x400000, Filesz: 0x200, Memsz: 0x200, Align: 0x1000},
		{Type: 1, Flags: 6, Offset: 0x22AE, Vaddr: 0x4023AE, Align: 0x1000},
	}
	b.Sections = []elftest.Section{
		{},
		{Name: ".text", Type: 1, Flags: 6, Addr: 0x401000, Addralign: 16, Data: []byte{0xc3, 0, 0, 0}},
	}
	b.Names = true

	file := filepath.Join(t.TempDir(), "sample.elf")
	require.NoError(t, os.WriteFile(file, b.Build(), 0644))
	return file
}

func TestReport(t *testing.T) {
	color.NoColor = true

	var (
		elf64 = sample(t, elftest.Class64, elftest.Little)
		elf32 = sample(t, elftest.Class32, elftest.Big)
		bad   = filepath.Join(t.TempDir(), "bad")
	)
	require.NoError(t, os.WriteFile(bad, []byte("#!/bin/sh\n"), 0755))

	for _, mapped := range []bool{false, true} {
		opts := options{Mapped: mapped}
		targets := load([]string{elf64, bad, elf32}, opts)
		require.Len(t, targets, 3)
		require.Equal(t, bad, targets[1].Name)

		var out, errs bytes.Buffer
		err := report(&out, &errs, targets, opts, printHeader, printSegments, printSections)
		require.Error(t, err)
		for _, tg := range targets {
			tg.Close()
		}

		str := out.String()
		require.Contains(t, str, "File: "+elf64)
		require.Contains(t, str, "File: "+elf32)
		require.Contains(t, str, "Magic:   7f 45 4c 46 02 01 01")
		require.Contains(t, str, "64-bit ELF")
		require.Contains(t, str, "Big Endian")
		require.Regexp(t, `Entry point address:\s+0x401000\n`, str)
		require.Contains(t, str, "Loadable Segment")
		require.Contains(t, str, "R E")
		require.Contains(t, str, ".shstrtab")
		require.Contains(t, str, "Key to Flags:")
		require.Equal(t, 2, strings.Count(str, "Program Headers: 2 entries"))

		require.Equal(t, bad+": not an ELF file\n", errs.String())
	}
}

func TestReportSingle(t *testing.T) {
	file := sample(t, elftest.Class64, elftest.Little)
	targets := load([]string{file}, options{})
	defer targets[0].Close()

	var out, errs bytes.Buffer
	require.NoError(t, report(&out, &errs, targets, options{}, printSegments))
	require.NotContains(t, out.String(), "File:")
	require.Empty(t, errs.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasSuffix(strings.TrimSpace(lines[2]), "A"), lines[2])
	require.True(t, strings.HasSuffix(strings.TrimSpace(lines[3]), "X"), lines[3])
}

func TestReportEmpty(t *testing.T) {
	f, err := readelf.NewFile(elftest.New(elftest.Class32, elftest.Little).Build())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printSegments(&out, f, options{}))
	require.NoError(t, printSections(&out, f, options{}))
	require.Contains(t, out.String(), "There are no program headers in this file.")
	require.Contains(t, out.String(), "There are no sections in this file.")
}

func TestLoadMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	targets := load([]string{missing}, options{})
	require.Len(t, targets, 1)
	require.ErrorIs(t, targets[0].Err, os.ErrNotExist)
	require.NotContains(t, describe(targets[0]), "not an ELF file")
}

func TestReportArchive(t *testing.T) {
	color.NoColor = true

	object := func(class, data uint8) []byte {
		b := elftest.New(class, data)
		b.Type = uint16(readelf.TypeRel)
		b.Sections = []elftest.Section{
			{},
			{Name: ".text", Type: 1, Flags: 6, Addralign: 4, Data: []byte{0, 0, 0, 0}},
		}
		b.Names = true
		return b.Build()
	}
	members := []struct {
		Name string
		Data []byte
	}{
		{Name: "/", Data: []byte{0, 0, 0, 0}},
		{Name: "//", Data: []byte("a_rather_long_object_name.o/\n\n")},
		{Name: "notes.txt/", Data: []byte("odd")},
		{Name: "/0", Data: object(elftest.Class64, elftest.Little)},
		{Name: "short.o/", Data: object(elftest.Class32, elftest.Big)},
	}
	var buf bytes.Buffer
	buf.WriteString("!<arch>\n")
	for _, m := range members {
		fmt.Fprintf(&buf, "%-16s%-12d%-6d%-6d%-8o%-10d`\n", m.Name, 0, 0, 0, 0644, len(m.Data))
		buf.Write(m.Data)
		if len(m.Data)%2 == 1 {
			buf.WriteByte('\n')
		}
	}
	file := filepath.Join(t.TempDir(), "libsample.a")
	require.NoError(t, os.WriteFile(file, buf.Bytes(), 0644))

	targets := load([]string{file}, options{})
	require.Len(t, targets, 2)
	defer func() {
		for _, tg := range targets {
			tg.Close()
		}
	}()
	require.Equal(t, file+"(a_rather_long_object_name.o)", targets[0].Name)
	require.Equal(t, file+"(short.o)", targets[1].Name)

	var out, errs bytes.Buffer
	require.NoError(t, report(&out, &errs, targets, options{}, printHeader, printSections))
	require.Empty(t, errs.String())

	str := out.String()
	require.Contains(t, str, "File: "+file+"(a_rather_long_object_name.o)")
	require.Contains(t, str, "File: "+file+"(short.o)")
	require.Contains(t, str, "Big Endian")
	require.Equal(t, 2, strings.Count(str, ".text"))
}
