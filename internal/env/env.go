// Package env loads KEY=VALUE files into the environment of the process.
package env

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ExportFile exports the variables defined in file. A missing file is not an
// error.
func ExportFile(file string) error {
	r, err := os.Open(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer r.Close()
	return Export(r)
}

// Export sets the variables read from r that are not already defined in the
// environment.
func Export(r io.Reader) error {
	values, err := Load(r)
	if err != nil {
		return err
	}
	for n, v := range values {
		if _, ok := os.LookupEnv(n); ok {
			continue
		}
		if err := os.Setenv(n, v); err != nil {
			return err
		}
	}
	return nil
}

func Load(r io.Reader) (map[string]string, error) {
	return parse(r)
}

func parse(r io.Reader) (map[string]string, error) {
	var (
		list = make(map[string]string)
		scan = bufio.NewScanner(r)
		line int
	)
	for scan.Scan() {
		line++
		str := strings.TrimSpace(scan.Text())
		if strings.HasPrefix(str, "#") || str == "" {
			continue
		}
		key, value, err := parseLine(str)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		list[key] = value
	}
	return list, scan.Err()
}

func parseLine(line string) (string, string, error) {
	line = strings.TrimPrefix(line, "export ")
	k, v, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", fmt.Errorf("value should be separated from key by equal sign")
	}
	k = strings.TrimSpace(k)
	if k == "" || strings.ContainsAny(k, " \t") {
		return "", "", fmt.Errorf("%q: invalid key", k)
	}
	v, err := parseValue(strings.TrimSpace(v))
	if err != nil {
		return "", "", err
	}
	return k, v, nil
}

func parseValue(value string) (string, error) {
	if value == "" {
		return value, nil
	}
	switch q := value[0]; q {
	case '"', '\'':
		if len(value) < 2 || value[len(value)-1] != q {
			return "", fmt.Errorf("%s: unterminated quoted value", value)
		}
		return value[1 : len(value)-1], nil
	default:
		if x := strings.Index(value, " #"); x >= 0 {
			value = strings.TrimSpace(value[:x])
		}
		return value, nil
	}
}
