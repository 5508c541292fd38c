package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/paradigms/pkg/paradigm"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

const layoutText = "\t| Prox\t| Obv\n" +
	"_ Sg\t${lemma}+N+A+Sg\t${lemma}+N+A+Obv\n" +
	"_ Loc\t${lemma}+N+A+Loc\t--\n" +
	"\n" +
	"# Der/Dim\n" +
	"_ Sg\t${lemma}+N+A+Der/Dim+N+A+Sg"

var resolutions = paradigm.Resolutions{
	"${lemma}+N+A+Sg":              {Analysis: "atim+N+A+Sg", Forms: []string{"atim"}, Frequency: 12},
	"${lemma}+N+A+Obv":             {Analysis: "atim+N+A+Obv", Forms: []string{"atimwah", "atimwa"}, Frequency: 3},
	"${lemma}+N+A+Der/Dim+N+A+Sg": {Analysis: "atim+N+A+Der/Dim+N+A+Sg", Forms: []string{"acimosis"}},
}

func filled(t *testing.T, mode paradigm.FillMode) []paradigm.Pane {
	t.Helper()
	tmpl, err := paradigm.Parse(layoutText)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	panes, err := tmpl.Fill(resolutions, mode)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	return panes
}

func TestTSV(t *testing.T) {
	tests := []struct {
		mode paradigm.FillMode
		want string
	}{
		{paradigm.JoinForms, "\t| Prox\t| Obv\n" +
			"_ Sg\tatim\tatimwa / atimwah\n" +
			"_ Loc\t--\t--\n" +
			"\n" +
			"# Der/Dim\n" +
			"_ Sg\tacimosis\n"},
		{paradigm.ExpandForms, "\t| Prox\t| Obv\n" +
			"_ Sg\tatim\tatimwa\n" +
			"\t\tatimwah\n" +
			"_ Loc\t--\t--\n" +
			"\n" +
			"# Der/Dim\n" +
			"_ Sg\tacimosis\n"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteTSV(&buf, filled(t, tt.mode)); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("TSV =\n%q\nwant\n%q", buf.String(), tt.want)
			}
		})
	}

	var buf bytes.Buffer
	if err := WriteTSV(&buf, nil); err != nil || buf.Len() != 0 {
		t.Errorf("empty paradigm wrote %q, %v", buf.String(), err)
	}
}

func TestText(t *testing.T) {
	out := Text(filled(t, paradigm.JoinForms), WithParadigm("atim", wordclass.NA, wordclass.Full))

	for _, want := range []string{"atim (NA, FULL)", "Prox", "Obv", "atimwa / atimwah", "Der/Dim", "acimosis", "--"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "${lemma}") || strings.Contains(out, "| Prox") || strings.Contains(out, "_ Sg") {
		t.Errorf("text output should not contain layout markup:\n%s", out)
	}
}

func TestTextPadsToWidestPane(t *testing.T) {
	out := Text(filled(t, paradigm.JoinForms), WithBorder())
	var tops []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "╭") {
			tops = append(tops, line)
		}
	}
	if len(tops) != 2 {
		t.Fatalf("expected 2 tables, got %d:\n%s", len(tops), out)
	}
	// The one-column Der/Dim pane is padded to three columns.
	for _, top := range tops {
		if n := strings.Count(top, "┬"); n != 2 {
			t.Errorf("top border %q has %d column joints, want 2", top, n)
		}
	}
}

func TestTextFrequencies(t *testing.T) {
	out := Text(filled(t, paradigm.JoinForms), WithFrequencies())
	if !strings.Contains(out, "atim (12)") || !strings.Contains(out, "atimwa (3) / atimwah (3)") {
		t.Errorf("frequencies missing:\n%s", out)
	}
}

func TestTextEmptyParadigm(t *testing.T) {
	if out := Text(nil); out != "" {
		t.Errorf("Text(nil) = %q", out)
	}
	out := Text(nil, WithParadigm("ôma", wordclass.IPC, wordclass.Full))
	if !strings.Contains(out, "no inflections") {
		t.Errorf("Text for IPC = %q", out)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, filled(t, paradigm.ExpandForms), WithParadigm("atim", wordclass.NA, wordclass.Full))
	if err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Lemma != "atim" || doc.WordClass != "NA" || doc.Size != "FULL" {
		t.Errorf("metadata = %q %q %q", doc.Lemma, doc.WordClass, doc.Size)
	}
	if doc.NumColumns != 3 || len(doc.Panes) != 2 {
		t.Fatalf("NumColumns = %d, panes = %d", doc.NumColumns, len(doc.Panes))
	}

	first := doc.Panes[0]
	if first.Header != nil {
		t.Errorf("first pane header = %v", first.Header)
	}
	if got := first.Rows[0].Cells[1]; got.Kind != KindColumnLabel || got.Tags[0] != "Prox" {
		t.Errorf("column label = %+v", got)
	}
	compound := first.Rows[1]
	if len(compound.Subrows) != 2 || compound.Cells != nil {
		t.Fatalf("compound row = %+v", compound)
	}
	if got := compound.Subrows[0][0]; got.Kind != KindRowLabel || got.Tags[0] != "Sg" {
		t.Errorf("first subrow label = %+v", got)
	}
	if got := compound.Subrows[1][0]; got.Kind != KindEmpty {
		t.Errorf("second subrow label = %+v", got)
	}
	obv := compound.Subrows[1][2]
	if obv.Kind != KindWordform || obv.Analysis != "atim+N+A+Obv" || len(obv.Forms) != 1 || obv.Forms[0].Text != "atimwah" || obv.Forms[0].Frequency != 3 {
		t.Errorf("second subrow form = %+v", obv)
	}
	if got := first.Rows[2].Cells[2]; got.Kind != KindMissing {
		t.Errorf("missing cell = %+v", got)
	}

	if h := doc.Panes[1].Header; len(h) != 1 || h[0] != "Der/Dim" {
		t.Errorf("second pane header = %v", h)
	}
}

func TestJSONEmptyParadigm(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, []paradigm.Pane{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"panes": []`) {
		t.Errorf("empty paradigm JSON = %s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"tsv", FormatTSV, false},
		{"svg", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteDispatch(t *testing.T) {
	panes := filled(t, paradigm.JoinForms)
	for _, f := range Formats {
		var buf bytes.Buffer
		if err := Write(&buf, f, panes); err != nil {
			t.Errorf("Write(%s): %v", f, err)
		}
		if !strings.Contains(buf.String(), "acimosis") {
			t.Errorf("Write(%s) output missing forms: %s", f, buf.String())
		}
	}
	if err := Write(&bytes.Buffer{}, "svg", panes); err == nil {
		t.Error("Write with unknown format should fail")
	}
}
