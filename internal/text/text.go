// Package text renders the reports printed by the readelf command.
package text

import (
	"bufio"
	"io"
	"strings"
	"text/template"

	"github.com/midbel/textwrap"
)

// Execute runs tpl with ctx and copies its output to w, dropping blank lines.
func Execute(tpl *template.Template, w io.Writer, ctx interface{}) error {
	var (
		pr, pw = io.Pipe()
		scan   = bufio.NewScanner(pr)
		errch  = make(chan error, 1)
	)
	defer pr.Close()
	go func() {
		err := tpl.Execute(pw, ctx)
		pw.CloseWithError(err)
		errch <- err
	}()
	for scan.Scan() {
		line := scan.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			pr.CloseWithError(err)
			<-errch
			return err
		}
	}
	if err := scan.Err(); err != nil {
		pr.CloseWithError(err)
		<-errch
		return err
	}
	return <-errch
}

// Wrap breaks str into lines and indents each of them with prefix.
func Wrap(str, prefix string) string {
	var (
		buf  strings.Builder
		scan = bufio.NewScanner(strings.NewReader(textwrap.Wrap(str)))
	)
	for scan.Scan() {
		buf.WriteString(prefix)
		buf.WriteString(scan.Text())
		buf.WriteString("\n")
	}
	return buf.String()
}
