package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/midbel/readelf"
	"github.com/midbel/readelf/internal/text"
)

const headerText = `ELF Header:
  Magic:   {{ident .}}
  Class:                             {{.Class}}
  Data:                              {{.Endian}}
  Version:                           {{.Version}}
  OS/ABI:                            {{.OSABI}}{{if not .OSABI.Known}} (unknown){{end}}
  ABI Version:                       {{.ABIVersion}}
  Type:                              {{.Type}}
  Machine:                           {{.Machine}}
  Entry point address:               {{printf "0x%x" .Entry}}
  Start of program headers:          {{.ProgramTable.Offset}} (bytes into file)
  Start of section headers:          {{.SectionTable.Offset}} (bytes into file)
  Flags:                             {{printf "0x%x" .Flags}}
  Size of this header:               {{.HeaderSize}} (bytes)
  Size of program headers:           {{.ProgramTable.EntrySize}} (bytes)
  Number of program headers:         {{.ProgramTable.Count}}
  Size of section headers:           {{.SectionTable.EntrySize}} (bytes)
  Number of section headers:         {{.SectionTable.Count}}
  Section header string table index: {{.StringIndex}}
`

var headerTemplate = template.Must(template.New("header").Funcs(template.FuncMap{
	"ident": ident,
}).Parse(headerText))

func ident(f *readelf.File) string {
	r, ok := f.Source().Region(0, 16)
	if !ok {
		return "-"
	}
	var parts []string
	for _, b := range r.Bytes() {
		parts = append(parts, fmt.Sprintf("%02x", b))
	}
	return strings.Join(parts, " ")
}

func printHeader(w io.Writer, f *readelf.File, _ options) error {
	return text.Execute(headerTemplate, w, f)
}

func addrFormat(f *readelf.File, opts options) string {
	if opts.Wide || f.Class == readelf.Class64 {
		return "0x%016x"
	}
	return "0x%08x"
}

func printSegments(w io.Writer, f *readelf.File, opts options) error {
	segs := f.Segments()
	if segs.Empty() {
		fmt.Fprintln(w, "\nThere are no program headers in this file.")
		return nil
	}
	fmt.Fprintf(w, "\nProgram Headers: %d entries, starting at offset %d\n", segs.Len(), f.ProgramTable().Offset)

	var (
		tw   = tabwriter.NewWriter(w, 8, 2, 2, ' ', 0)
		addr = addrFormat(f, opts)
		line = "  %s\t" + addr + "\t" + addr + "\t" + addr + "\t" + addr + "\t" + addr + "\t%s\t0x%x\t%s\n"
		read int
	)
	fmt.Fprintln(tw, "  Type\tOffset\tVirtAddr\tPhysAddr\tFileSiz\tMemSiz\tFlg\tAlign\t")
	for segs.Next() {
		ph := segs.Header()
		mark := "A"
		if !ph.Aligned() {
			mark = "X"
		}
		fmt.Fprintf(tw, line, ph.Type, ph.Offset, ph.Vaddr, ph.Paddr, ph.Filesz, ph.Memsz, ph.Flags.Perm(), ph.Align, mark)
		read++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if read < segs.Len() {
		fmt.Fprintf(w, "  warning: %d program header(s) could not be read\n", segs.Len()-read)
	}
	return nil
}

const keyText = `W (write), A (alloc), X (execute), M (merge), S (strings), I (info),
L (link order), O (extra OS processing required), G (group), T (TLS),
o (OS specific), p (processor specific), x (unknown)`

func printSections(w io.Writer, f *readelf.File, opts options) error {
	secs := f.Sections()
	if secs.Empty() {
		fmt.Fprintln(w, "\nThere are no sections in this file.")
		return nil
	}
	fmt.Fprintf(w, "\nSection Headers: %d entries, starting at offset 0x%x\n", secs.Len(), f.SectionTable().Offset)

	var (
		tw   = tabwriter.NewWriter(w, 8, 2, 2, ' ', 0)
		addr = addrFormat(f, opts)
		line = "  [%2d]\t%s\t%s\t" + addr + "\t0x%06x\t0x%06x\t%02x\t%s\t%d\t%d\t%d\t\n"
		read int
	)
	fmt.Fprintln(tw, "  [Nr]\tName\tType\tAddress\tOff\tSize\tES\tFlg\tLk\tInf\tAl\t")
	for secs.Next() {
		sh := secs.Header()
		name := sh.Name
		if !sh.HasName {
			name = fmt.Sprintf("<%d>", sh.NameOffset)
		}
		fmt.Fprintf(tw, line, read, name, sh.Type, sh.Addr, sh.Offset, sh.Size, sh.Entsize, sh.Flags.Key(), sh.Link, sh.Info, sh.Addralign)
		read++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if read < secs.Len() {
		fmt.Fprintf(w, "  warning: %d section header(s) could not be read\n", secs.Len()-read)
	}
	fmt.Fprintln(w, "Key to Flags:")
	_, err := io.WriteString(w, text.Wrap(strings.ReplaceAll(keyText, "\n", " "), "  "))
	return err
}
