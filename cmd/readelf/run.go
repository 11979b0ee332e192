package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/midbel/cli"
	"github.com/midbel/readelf"
	"github.com/pkg/errors"
)

type printFunc func(io.Writer, *readelf.File, options) error

func runHeader(cmd *cli.Command, args []string) error {
	return run(cmd, args, printHeader)
}

func runSegments(cmd *cli.Command, args []string) error {
	return run(cmd, args, printSegments)
}

func runSections(cmd *cli.Command, args []string) error {
	return run(cmd, args, printSections)
}

func runAll(cmd *cli.Command, args []string) error {
	return run(cmd, args, printHeader, printSegments, printSections)
}

func run(cmd *cli.Command, args []string, fns ...printFunc) error {
	opts, err := parseOptions(cmd, args)
	if err != nil {
		return err
	}
	files := cmd.Flag.Args()
	if len(files) == 0 {
		return fmt.Errorf("%s: no input files", cmd.String())
	}
	targets := load(files, opts)
	defer func() {
		for _, t := range targets {
			t.Close()
		}
	}()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	return report(w, os.Stderr, targets, opts, fns...)
}

var banner = color.New(color.Bold)

func report(w, errw io.Writer, targets []target, opts options, fns ...printFunc) error {
	var failed int
	for i, t := range targets {
		if t.Err != nil {
			failed++
			fmt.Fprintln(errw, describe(t))
			continue
		}
		if len(targets) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			banner.Fprintf(w, "File: %s\n", t.Name)
		}
		for _, fn := range fns {
			if err := fn(w, t.File, opts); err != nil {
				return errors.Wrapf(err, "%s", t.Name)
			}
		}
	}
	if failed > 0 {
		return errors.Errorf("%d file(s) could not be read", failed)
	}
	return nil
}

func describe(t target) string {
	if errors.Is(t.Err, readelf.ErrFormat) {
		return fmt.Sprintf("%s: not an ELF file", t.Name)
	}
	return t.Err.Error()
}
