// Package archive walks static libraries and parses their ELF members.
package archive

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/midbel/readelf"
	"github.com/midbel/readelf/internal/logging"
	"github.com/midbel/tape/ar"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logging.DefaultLogger.WithField(logging.LogSubsys, "archive")

var magic = []byte("!<arch>\n")

var ErrArchive = errors.New("malformed archive")

const (
	symbolTable   = "/"
	symbolTable64 = "/SYM64/"
	namesTable    = "//"

	headerLen = 60
	minBuffer = 4096
)

type Member struct {
	Name string
	Size int64
	Data []byte
}

// Object is a member of an archive holding a valid ELF file.
type Object struct {
	Member string
	*readelf.File
}

// IsArchive reports whether file starts with the magic of an ar archive.
func IsArchive(file string) bool {
	r, err := os.Open(file)
	if err != nil {
		return false
	}
	defer r.Close()

	buf := make([]byte, len(magic))
	if _, err := io.ReadFull(r, buf); err != nil {
		return false
	}
	return bytes.Equal(buf, magic)
}

// Walk calls fn for every regular member of file. The symbol index and the
// table of long names are not given to fn.
func Walk(file string, fn func(Member) error) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	raw, err := scanHeaders(data)
	if err != nil {
		return errors.Wrapf(err, "%s", file)
	}
	// the whole archive is buffered so a header is never split between two
	// reads of the ar reader.
	rs, err := ar.NewReader(bufio.NewReaderSize(bytes.NewReader(data), len(data)+minBuffer))
	if err != nil {
		return errors.Wrapf(err, "%s", file)
	}
	var names []byte
	for i := 0; i < len(raw); i++ {
		h, err := rs.Next()
		if err != nil {
			return errors.Wrapf(err, "%s", file)
		}
		body, err := io.ReadAll(rs)
		if err != nil {
			return errors.Wrapf(err, "%s: %s", file, raw[i])
		}
		if int64(len(body)) != h.Size {
			return errors.Wrapf(ErrArchive, "%s: %s: short member", file, raw[i])
		}
		switch raw[i] {
		case symbolTable, symbolTable64:
			continue
		case namesTable:
			names = body
			continue
		}
		m := Member{
			Name: memberName(raw[i], names),
			Size: h.Size,
			Data: body,
		}
		if err := fn(m); err != nil {
			return err
		}
	}
	return nil
}

// Open returns the members of file that are ELF files. Other members are
// skipped.
func Open(file string) ([]Object, error) {
	var list []Object
	err := Walk(file, func(m Member) error {
		f, err := readelf.NewBuffer(m.Data)
		if err != nil {
			log.WithFields(logrus.Fields{
				logging.Path:   file,
				logging.Member: m.Name,
			}).Debug("skipping member")
			return nil
		}
		list = append(list, Object{Member: m.Name, File: f})
		return nil
	})
	return list, err
}

// memberName gives the real name of a member. GNU ar stores names longer than
// 15 bytes in a table and gives their offset as /N in the header.
func memberName(name string, names []byte) string {
	if len(name) > 1 && name[0] == '/' {
		off, err := strconv.Atoi(name[1:])
		if err != nil || off < 0 || off >= len(names) {
			return name
		}
		str := names[off:]
		if x := bytes.IndexByte(str, '\n'); x >= 0 {
			str = str[:x]
		}
		return strings.TrimSuffix(string(str), "/")
	}
	return strings.TrimSuffix(name, "/")
}

type headerField struct {
	Offset int
	Len    int
	Base   int
}

var headerFields = []headerField{
	{Offset: 16, Len: 12, Base: 10}, // date
	{Offset: 28, Len: 6, Base: 10},  // uid
	{Offset: 34, Len: 6, Base: 10},  // gid
	{Offset: 40, Len: 8, Base: 8},   // mode
	{Offset: 48, Len: 10, Base: 10}, // size
}

// scanHeaders checks the layout of every member header in data and returns
// their raw names, trailing slash included. Blank numeric fields, as written
// by GNU ar for the table of long names, are rewritten to 0 in place.
func scanHeaders(data []byte) ([]string, error) {
	if !bytes.HasPrefix(data, magic) {
		return nil, errors.Wrap(ErrArchive, "bad magic")
	}
	var names []string
	for off := len(magic); off < len(data); {
		if len(data)-off < headerLen {
			return nil, errors.Wrapf(ErrArchive, "truncated header at offset %d", off)
		}
		hdr := data[off : off+headerLen]
		if hdr[58] != '`' || hdr[59] != '\n' {
			return nil, errors.Wrapf(ErrArchive, "bad header trailer at offset %d", off)
		}
		size, err := normalizeHeader(hdr)
		if err != nil {
			return nil, errors.Wrapf(ErrArchive, "header at offset %d: %s", off, err)
		}
		names = append(names, strings.TrimRight(string(hdr[:16]), " "))

		off += headerLen
		if size > uint64(len(data)-off) {
			return nil, errors.Wrapf(ErrArchive, "truncated member at offset %d", off)
		}
		off += int(size)
		if size%2 == 1 && off < len(data) {
			off++
		}
	}
	return names, nil
}

// normalizeHeader rewrites the numeric fields of hdr without leading zeros
// and returns the size of the member.
func normalizeHeader(hdr []byte) (uint64, error) {
	var value uint64
	for _, f := range headerFields {
		field := hdr[f.Offset : f.Offset+f.Len]
		value = 0
		if str := strings.TrimSpace(string(field)); str != "" {
			v, err := strconv.ParseUint(str, f.Base, 63)
			if err != nil {
				return 0, err
			}
			value = v
		}
		str := strconv.FormatUint(value, f.Base)
		copy(field, str+strings.Repeat(" ", f.Len-len(str)))
	}
	return value, nil
}
