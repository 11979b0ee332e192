package main

import (
	"fmt"
	"runtime"

	"github.com/midbel/readelf"
	"github.com/midbel/readelf/archive"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type target struct {
	Name string
	File *readelf.File
	Err  error
}

func (t target) Close() error {
	if t.File == nil {
		return nil
	}
	return t.File.Close()
}

// load opens every file concurrently. The targets are returned in the order
// of files, archives being replaced by their members.
func load(files []string, opts options) []target {
	var (
		group errgroup.Group
		list  = make([][]target, len(files))
	)
	group.SetLimit(runtime.NumCPU())
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			list[i] = open(file, opts)
			return nil
		})
	}
	group.Wait()

	var all []target
	for _, ts := range list {
		all = append(all, ts...)
	}
	return all
}

func open(file string, opts options) []target {
	if archive.IsArchive(file) {
		objs, err := archive.Open(file)
		if err != nil {
			return []target{{Name: file, Err: err}}
		}
		if len(objs) == 0 {
			return []target{{Name: file, Err: errors.Wrapf(readelf.ErrFormat, "%s: no ELF member", file)}}
		}
		var list []target
		for _, o := range objs {
			list = append(list, target{
				Name: fmt.Sprintf("%s(%s)", file, o.Member),
				File: o.File,
			})
		}
		return list
	}
	var (
		f   *readelf.File
		err error
	)
	if opts.Mapped {
		f, err = readelf.OpenMapped(file)
	} else {
		f, err = readelf.Open(file)
	}
	if err != nil {
		return []target{{Name: file, Err: errors.Wrapf(err, "%s", file)}}
	}
	return []target{{Name: file, File: f}}
}
