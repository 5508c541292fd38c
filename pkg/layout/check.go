package layout

import (
	"io/fs"
	"os"
	"strings"

	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/paradigm"
)

// FileReport is the outcome of checking one layout file.
type FileReport struct {
	File    string
	Key     Key
	Skipped bool  // the size is not supported
	Err     error // parse, naming or round-trip failure
	Panes   int
	Columns int
	Cells   int // inflection cells with a lemma placeholder
}

// OK reports whether the file loads and round-trips.
func (r FileReport) OK() bool { return r.Err == nil }

// Check verifies every layout file in dir without stopping at the first
// problem. Each file must have a valid name, parse, and serialize back to
// its own text.
func Check(dir string, names Names) ([]FileReport, error) {
	return CheckFS(os.DirFS(dir), names)
}

// CheckFS is [Check] over an fs.FS.
func CheckFS(fsys fs.FS, names Names) ([]FileReport, error) {
	if names == nil {
		names = DefaultNames()
	}
	files, err := fs.Glob(fsys, "*"+Suffix)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeNoLayouts, "could not find any %s files", Suffix)
	}

	reports := make([]FileReport, 0, len(files))
	for _, name := range files {
		if strings.HasPrefix(name, ".") {
			continue
		}
		reports = append(reports, checkFile(fsys, name, names))
	}
	return reports, nil
}

func checkFile(fsys fs.FS, name string, names Names) FileReport {
	report := FileReport{File: name}
	key, err := ParseFilename(name, names)
	if errors.Is(err, errors.ErrCodeInvalidSize) {
		report.Skipped = true
		return report
	}
	if err != nil {
		report.Err = err
		return report
	}
	report.Key = key

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		report.Err = err
		return report
	}
	text := string(data)
	tmpl, err := paradigm.Parse(text)
	if err != nil {
		report.Err = errors.Wrap(errors.ErrCodeInvalidLayout, err, "parse %s", name)
		return report
	}
	report.Panes = len(tmpl.Panes())
	report.Columns = tmpl.MaxNumColumns()
	if cells, err := tmpl.InflectionCells(); err == nil {
		for _, c := range cells {
			if c.HasAnalysis() {
				report.Cells++
			}
		}
	}

	if got, want := tmpl.String(), strings.TrimRight(text, "\n"); got != want {
		report.Err = errors.New(errors.ErrCodeInvalidLayout, "%s does not round-trip: first difference on line %d", name, firstDiffLine(got, want))
	}
	return report
}

func firstDiffLine(a, b string) int {
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	for i := 0; i < len(al) && i < len(bl); i++ {
		if al[i] != bl[i] {
			return i + 1
		}
	}
	if len(al) < len(bl) {
		return len(al) + 1
	}
	return len(bl) + 1
}
