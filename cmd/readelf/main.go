package main

import (
	"log"
	"os"
	"path/filepath"
	"text/template"

	"github.com/midbel/cli"
)

const helpText = `{{.Name}} displays information about ELF files and static libraries.

Usage:

  {{.Name}} command [-m] [-w] [-v] <file...>

The commands are:

{{range .Commands}}{{printf "  %-9s %s" .String .Short}}
{{end}}
Defaults of the options can be set in the environment or in ~/{{.Config}}:

  READELF_MMAP=true   memory map files instead of reading them on demand
  READELF_WIDE=true   print addresses on 16 digits for 32-bit files too
  READELF_DEBUG=true  log why a file or an entry can not be decoded

Use {{.Name}} [command] -h for more information about its usage.
`

var commands = []*cli.Command{
	{
		Usage: "header <file...>",
		Short: "display the ELF file header",
		Alias: []string{"h", "file-header"},
		Run:   runHeader,
	},
	{
		Usage: "segments <file...>",
		Short: "display the program headers",
		Alias: []string{"l", "program-headers"},
		Run:   runSegments,
	},
	{
		Usage: "sections <file...>",
		Short: "display the section headers",
		Alias: []string{"S", "section-headers"},
		Run:   runSections,
	},
	{
		Usage: "all <file...>",
		Short: "display the file header, the program and the section headers",
		Alias: []string{"a"},
		Run:   runAll,
	},
}

func main() {
	log.SetFlags(0)
	cli.RunAndExit(commands, usage)
}

func usage() {
	data := struct {
		Name     string
		Config   string
		Commands []*cli.Command
	}{
		Name:     filepath.Base(os.Args[0]),
		Config:   rcFile,
		Commands: commands,
	}
	t := template.Must(template.New("help").Parse(helpText))
	t.Execute(os.Stderr, data)

	os.Exit(2)
}
