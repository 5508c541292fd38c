package layout

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/paradigm"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

const (
	basicNA = "_ Sg\t${lemma}+N+A+Sg\n_ Pl\t${lemma}+N+A+Pl\n"
	fullNA  = basicNA + "\n# Dim\n_ Sg\t${lemma}+N+A+Der/Dim+N+A+Sg\n"
	lingNA  = "\t| Sg\t| Pl\n_ Prox\t${lemma}+N+A+Sg\t${lemma}+N+A+Pl\n"
)

func naFiles() fstest.MapFS {
	return fstest.MapFS{
		"noun-na-basic.layout.tsv":      {Data: []byte(basicNA)},
		"noun-na-full.layout.tsv":       {Data: []byte(fullNA)},
		"noun-na-linguistic.layout.tsv": {Data: []byte(lingNA)},
	}
}

func naOptions(logger *log.Logger) Options {
	return Options{WordClasses: []wordclass.WordClass{wordclass.NA}, Logger: logger}
}

func TestLoadFS(t *testing.T) {
	r, err := LoadFS(naFiles(), naOptions(nil))
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	tmpl, err := r.Get(wordclass.NA, wordclass.Full)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tmpl.String() != strings.TrimRight(fullNA, "\n") {
		t.Errorf("FULL layout = %q", tmpl.String())
	}
	if got := r.Source(Key{wordclass.NA, wordclass.Full}); got != "noun-na-full.layout.tsv" {
		t.Errorf("Source = %q", got)
	}

	want := []Key{
		{wordclass.NA, wordclass.Basic},
		{wordclass.NA, wordclass.Full},
		{wordclass.NA, wordclass.Linguistic},
	}
	keys := r.Keys()
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
}

func TestGetWithoutInflections(t *testing.T) {
	r, err := LoadFS(naFiles(), naOptions(nil))
	if err != nil {
		t.Fatal(err)
	}
	for _, wc := range []wordclass.WordClass{wordclass.IPC, wordclass.Pron} {
		tmpl, err := r.Get(wc, wordclass.Full)
		if err != nil {
			t.Errorf("Get(%s): %v", wc, err)
		}
		if !tmpl.IsEmpty() {
			t.Errorf("Get(%s) should be empty", wc)
		}
	}
	if _, err := r.Get(wordclass.VTA, wordclass.Basic); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("Get(VTA) error = %v, want LAYOUT_NOT_FOUND", err)
	}
}

func TestLoadFSErrors(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
		opts  Options
		code  errors.Code
	}{
		{
			name:  "no layouts",
			files: fstest.MapFS{"README.md": {Data: []byte("hi")}},
			opts:  naOptions(nil),
			code:  errors.ErrCodeNoLayouts,
		},
		{
			name:  "every file skipped",
			files: fstest.MapFS{"noun-na-extended.layout.tsv": {Data: []byte(basicNA)}},
			opts:  naOptions(nil),
			code:  errors.ErrCodeNoLayouts,
		},
		{
			name:  "every file skipped without inflecting classes",
			files: fstest.MapFS{"noun-na-extended.layout.tsv": {Data: []byte(basicNA)}},
			opts:  Options{WordClasses: []wordclass.WordClass{wordclass.IPC}},
			code:  errors.ErrCodeNoLayouts,
		},
		{
			name:  "only hidden files",
			files: fstest.MapFS{".noun-na-basic.layout.tsv": {Data: []byte(basicNA)}},
			opts:  Options{},
			code:  errors.ErrCodeNoLayouts,
		},
		{
			name: "unknown word class token",
			files: func() fstest.MapFS {
				fs := naFiles()
				fs["noun-xx-full.layout.tsv"] = &fstest.MapFile{Data: []byte(basicNA)}
				return fs
			}(),
			opts: naOptions(nil),
			code: errors.ErrCodeInvalidLayout,
		},
		{
			name: "parse error",
			files: func() fstest.MapFS {
				fs := naFiles()
				fs["noun-na-full.layout.tsv"] = &fstest.MapFile{Data: []byte("_ Sg\t${lema}+Sg\n")}
				return fs
			}(),
			opts: naOptions(nil),
			code: errors.ErrCodeInvalidLayout,
		},
		{
			name: "incomplete",
			files: func() fstest.MapFS {
				fs := naFiles()
				delete(fs, "noun-na-linguistic.layout.tsv")
				return fs
			}(),
			opts: naOptions(nil),
			code: errors.ErrCodeLayoutNotFound,
		},
		{
			name:  "word class never provided",
			files: naFiles(),
			opts:  Options{WordClasses: []wordclass.WordClass{wordclass.NA, wordclass.VAI}},
			code:  errors.ErrCodeLayoutNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.files, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadFS error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadFSParseErrorKeepsLocation(t *testing.T) {
	files := naFiles()
	files["noun-na-full.layout.tsv"] = &fstest.MapFile{Data: []byte("_ Sg\t${lemma}+Sg\n_ Pl\t${lema}+Pl\n")}
	_, err := LoadFS(files, naOptions(nil))
	var pe *paradigm.ParseError
	if !stderrors.As(err, &pe) {
		t.Fatalf("error %v should wrap *paradigm.ParseError", err)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", pe.Line)
	}
	if !strings.Contains(err.Error(), "noun-na-full.layout.tsv") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoadFSWarnings(t *testing.T) {
	files := naFiles()
	files["noun-na-extended.layout.tsv"] = &fstest.MapFile{Data: []byte("not even parsed\t\t")}
	files["noun-na-FULL.layout.tsv"] = &fstest.MapFile{Data: []byte(basicNA)}
	files[".noun-na-full.layout.tsv"] = &fstest.MapFile{Data: []byte("garbage")}

	var buf bytes.Buffer
	r, err := LoadFS(files, naOptions(log.New(&buf)))
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	logs := buf.String()
	if !strings.Contains(logs, "unsupported paradigm size") {
		t.Errorf("expected unsupported size warning, got %q", logs)
	}
	if !strings.Contains(logs, "replacing") {
		t.Errorf("expected duplicate warning, got %q", logs)
	}

	// "noun-na-full" sorts after "noun-na-FULL", so it wins.
	tmpl, _ := r.Get(wordclass.NA, wordclass.Full)
	if tmpl.String() != strings.TrimRight(fullNA, "\n") {
		t.Errorf("later file should replace earlier one, got %q", tmpl.String())
	}
}

func TestCustomNames(t *testing.T) {
	files := fstest.MapFS{
		"na-basic.layout.tsv":      {Data: []byte(basicNA)},
		"na-full.layout.tsv":       {Data: []byte(fullNA)},
		"na-linguistic.layout.tsv": {Data: []byte(lingNA)},
	}
	opts := naOptions(nil)
	opts.Names = Names{"na": wordclass.NA}
	if _, err := LoadFS(files, opts); err != nil {
		t.Fatalf("LoadFS with custom names: %v", err)
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    Key
		wantErr errors.Code
	}{
		{"noun-na-full.layout.tsv", Key{wordclass.NA, wordclass.Full}, ""},
		{"verb-ta-Linguistic.layout.tsv", Key{wordclass.VTA, wordclass.Linguistic}, ""},
		{"noun-nid-BASIC.layout.tsv", Key{wordclass.NID, wordclass.Basic}, ""},
		{"verb-ai-nehiyawewin.layout.tsv", Key{}, errors.ErrCodeInvalidSize},
		{"verb-xx-full.layout.tsv", Key{}, errors.ErrCodeInvalidLayout},
		{"full.layout.tsv", Key{}, errors.ErrCodeInvalidLayout},
		{"sub/noun-na-full.layout.tsv", Key{}, errors.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilename(tt.name, DefaultNames())
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFilename = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	for name, f := range naFiles() {
		if err := os.WriteFile(filepath.Join(dir, name), f.Data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	r, err := Load(dir, naOptions(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}

	if _, err := Load(filepath.Join(dir, "nope"), naOptions(nil)); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing dir error = %v, want FILE_NOT_FOUND", err)
	}
	file := filepath.Join(dir, "noun-na-full.layout.tsv")
	if _, err := Load(file, naOptions(nil)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("file as dir error = %v, want INVALID_CONFIG", err)
	}
}

func TestCheckFS(t *testing.T) {
	files := naFiles()
	files["noun-na-extended.layout.tsv"] = &fstest.MapFile{Data: []byte("x")}
	files["noun-ni-full.layout.tsv"] = &fstest.MapFile{Data: []byte("# Dim\t--\n")}

	reports, err := CheckFS(files, nil)
	if err != nil {
		t.Fatalf("CheckFS: %v", err)
	}
	byFile := make(map[string]FileReport)
	for _, r := range reports {
		byFile[r.File] = r
	}
	if len(byFile) != 5 {
		t.Fatalf("got %d reports, want 5", len(byFile))
	}

	full := byFile["noun-na-full.layout.tsv"]
	if !full.OK() || full.Panes != 2 || full.Columns != 2 || full.Cells != 3 {
		t.Errorf("full report = %+v", full)
	}
	if !byFile["noun-na-extended.layout.tsv"].Skipped {
		t.Error("unsupported size should be skipped")
	}
	if byFile["noun-ni-full.layout.tsv"].OK() {
		t.Error("broken layout should fail the check")
	}
}
