package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/paradigms/pkg/cache"
	"github.com/matzehuels/paradigms/pkg/errors"
)

var testConfig = filepath.Join("testdata", "config.toml")

// run executes the root command with args and returns stdout and the
// status output.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var status bytes.Buffer
	old := uiOut
	uiOut = &status
	t.Cleanup(func() { uiOut = old })

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), status.String(), err
}

func TestFill(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "basic tsv",
			args: []string{"fill", "atim", "NA", "--size", "basic", "-f", "tsv"},
			want: "_ Sg\tatim\n_ Pl\t--\n",
		},
		{
			name: "full expanded tsv",
			args: []string{"fill", "atim", "na", "-m", "expand", "-f", "tsv"},
			want: "\t| Prox\t| Obv\n" +
				"_ Sg\tatim\tatimwa\n" +
				"\t\tatimwah\n" +
				"_ Pl\t--\tatimwa\n" +
				"\t\tatimwah\n" +
				"_ Loc\tatimihk\t--\n" +
				"\n" +
				"# Der/Dim\n" +
				"_ Sg\t--\tôma+Ipc\n",
		},
		{
			name: "non-inflecting",
			args: []string{"fill", "ôma", "IPC", "-f", "tsv"},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := run(t, append(tt.args, "--config", testConfig)...)
			if err != nil {
				t.Fatalf("fill: %v", err)
			}
			if got != tt.want {
				t.Errorf("output =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestFillText(t *testing.T) {
	got, _, err := run(t, "fill", "atim", "NA", "--frequencies", "--config", testConfig)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"atim (NA, FULL)", "atim (12)", "atimwa (3) / atimwah (3)", "Der/Dim"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestFillOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "atim.json")
	stdout, status, err := run(t, "fill", "atim", "NA", "-f", "json", "-o", out, "--config", testConfig)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty with -o, got %q", stdout)
	}
	if !strings.Contains(status, out) || !strings.Contains(status, "5 analyses") {
		t.Errorf("status = %q", status)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"lemma": "atim"`) {
		t.Errorf("output file = %s", data)
	}
}

func TestFillErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown word class", []string{"fill", "atim", "XX"}, errors.ErrCodeInvalidWordClass},
		{"unknown size", []string{"fill", "atim", "NA", "-s", "huge"}, errors.ErrCodeInvalidSize},
		{"unknown mode", []string{"fill", "atim", "NA", "-m", "spread"}, errors.ErrCodeInvalidInput},
		{"unknown format", []string{"fill", "atim", "NA", "-f", "svg"}, errors.ErrCodeInvalidInput},
		{"missing layout", []string{"fill", "atim", "VTA"}, errors.ErrCodeLayoutNotFound},
		{"missing config", []string{"fill", "atim", "NA", "--config", "testdata/missing.toml"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if !strings.Contains(strings.Join(args, " "), "--config") {
				args = append(args, "--config", testConfig)
			}
			_, _, err := run(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestFillWithoutGenerator(t *testing.T) {
	_, _, err := run(t, "fill", "atim", "NA", "--layouts", filepath.Join("testdata", "layouts"), "--layout-name", "noun-na=NA", "--no-cache")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestFlagOverrides(t *testing.T) {
	lookup := filepath.Join(t.TempDir(), "lookup.tsv")
	if err := os.WriteFile(lookup, []byte("atim+N+A+Sg\tATIM\t0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, _, err := run(t, "fill", "atim", "NA", "-s", "basic", "-f", "tsv", "--config", testConfig, "--lookup", lookup)
	if err != nil {
		t.Fatal(err)
	}
	if got != "_ Sg\tATIM\n_ Pl\t--\n" {
		t.Errorf("output = %q", got)
	}
}

func TestAnalyses(t *testing.T) {
	got, _, err := run(t, "analyses", "atim", "NA", "--config", testConfig)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 24 {
		t.Errorf("got %d analyses, want 24", len(lines))
	}
	for i := 1; i < len(lines); i++ {
		if lines[i-1] >= lines[i] {
			t.Errorf("analyses not sorted and distinct at %d: %q >= %q", i, lines[i-1], lines[i])
		}
	}

	got, _, err = run(t, "analyses", "atim", "NA", "--layout-order", "--config", testConfig)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "atim+N+A+Sg\natim+N+A+Pl\n") {
		t.Errorf("layout order output starts with %q", got[:min(len(got), 40)])
	}
}

func TestInflect(t *testing.T) {
	got, _, err := run(t, "inflect", "atim", "NA", "--config", testConfig)
	if err != nil {
		t.Fatal(err)
	}
	if want := "atim\natimihk\natimwa\natimwah\n"; got != want {
		t.Errorf("inflect = %q, want %q", got, want)
	}

	got, _, err = run(t, "inflect", "atim", "NA", "--by-analysis", "--config", testConfig)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"atim+N+A+Obv": [`, `"atim+N+A+Distr": []`} {
		if !strings.Contains(got, want) {
			t.Errorf("by-analysis output missing %q:\n%s", want, got)
		}
	}
}

func TestLayoutsList(t *testing.T) {
	got, _, err := run(t, "layouts", "list", "--config", testConfig)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"BASIC", "FULL", "LINGUISTIC", "noun-na-full.layout.tsv"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

func TestLayoutsCheck(t *testing.T) {
	_, status, err := run(t, "layouts", "check", "--config", testConfig)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, status)
	}
	if !strings.Contains(status, "All 3 layouts OK") {
		t.Errorf("status = %q", status)
	}

	dir := t.TempDir()
	files := map[string]string{
		"noun-na-basic.layout.tsv": "_ Sg\t${lemma}+N+A+Sg\n",
		"noun-na-full.layout.tsv":  "_ Sg\t${lemma}+N+A+Sg\t\n_ Pl\n",
		"noun-na-tiny.layout.tsv":  "_ Sg\t${lemma}+N+A+Sg\n",
		"noun-xx-basic.layout.tsv": "_ Sg\t${lemma}+N+A+Sg\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	_, status, err = run(t, "layouts", "check", dir, "--config", testConfig)
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Fatalf("error = %v, want INVALID_LAYOUT", err)
	}
	if !strings.Contains(err.Error(), "2 of 4 layouts failed") {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(status, "unsupported paradigm size") {
		t.Errorf("status should mention the skipped file:\n%s", status)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()

	got, _, err := run(t, "cache", "path", "--config", testConfig, "--cache-dir", dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(context.Background(), key, []byte(key), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	_, status, err := run(t, "cache", "clear", "--config", testConfig, "--cache-dir", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status, "Cleared 3 cached entries") {
		t.Errorf("status = %q", status)
	}

	if _, _, err := run(t, "cache", "path", "--config", testConfig); err == nil {
		t.Error("cache path with backend none should fail")
	}
}

func TestCompletion(t *testing.T) {
	got, _, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "paradigms") {
		t.Error("bash completion does not mention the program")
	}
}
