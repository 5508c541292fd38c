package paradigm

import (
	"testing"
)

func TestCompoundRows(t *testing.T) {
	pane, err := ParsePane("_ Tag\t${lemma}")
	if err != nil {
		t.Fatal(err)
	}
	row := pane.Rows()[0].(ContentRow)

	multipleForms := []string{"form", "longer-form"}
	filled, err := row.Fill(Resolutions{"${lemma}": {Forms: multipleForms}}, ExpandForms)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	compound, ok := filled.(CompoundRow)
	if !ok {
		t.Fatalf("Fill returned %T, want CompoundRow", filled)
	}

	for _, form := range multipleForms {
		if !compound.ContainsWordform(form) {
			t.Errorf("ContainsWordform(%q) = false", form)
		}
	}
	if compound.ContainsWordform("other") {
		t.Error("ContainsWordform(\"other\") = true")
	}

	if len(compound.Subrows) != len(multipleForms) {
		t.Fatalf("got %d subrows, want %d", len(compound.Subrows), len(multipleForms))
	}

	first := compound.Subrows[0].Cells
	if !CellsEqual(first[0], row.Cells[0]) {
		t.Errorf("first subrow label = %v, want %v", first[0], row.Cells[0])
	}
	firstForm, ok := first[len(first)-1].(WordformCell)
	if !ok {
		t.Fatalf("first subrow form is %T, want WordformCell", first[len(first)-1])
	}
	if firstForm.Inflection() != multipleForms[0] {
		t.Errorf("first form = %q, want %q", firstForm.Inflection(), multipleForms[0])
	}

	last := compound.Subrows[len(compound.Subrows)-1].Cells
	if last[0] != Empty {
		t.Errorf("last subrow label = %#v, want Empty", last[0])
	}
	lastForm, ok := last[len(last)-1].(WordformCell)
	if !ok {
		t.Fatalf("last subrow form is %T, want WordformCell", last[len(last)-1])
	}
	if lastForm.Inflection() != multipleForms[len(multipleForms)-1] {
		t.Errorf("last form = %q, want %q", lastForm.Inflection(), multipleForms[len(multipleForms)-1])
	}
}

func TestJoinForms(t *testing.T) {
	row := ContentRow{Cells: []Cell{RowLabel{Tags: []string{"Sg"}}, InflectionCell{Analysis: "${lemma}+N+A+Sg"}}}
	res := Resolutions{"${lemma}+N+A+Sg": {
		Analysis:  "atim+N+A+Sg",
		Forms:     []string{"atimw", "atim", "atim"},
		Frequency: 12,
	}}
	filled, err := row.Fill(res, JoinForms)
	if err != nil {
		t.Fatal(err)
	}
	cr, ok := filled.(ContentRow)
	if !ok {
		t.Fatalf("Fill returned %T, want ContentRow", filled)
	}
	wf, ok := cr.Cells[1].(WordformCell)
	if !ok {
		t.Fatalf("cell is %T, want WordformCell", cr.Cells[1])
	}
	if got := wf.Inflection(); got != "atim / atimw" {
		t.Errorf("Inflection = %q, want %q", got, "atim / atimw")
	}
	if wf.Analysis != "atim+N+A+Sg" {
		t.Errorf("Analysis = %q", wf.Analysis)
	}
	for _, f := range wf.Forms {
		if f.Frequency != 12 {
			t.Errorf("form %q frequency = %d, want 12", f.Text, f.Frequency)
		}
	}
	if wf.Frequency() != 12 {
		t.Errorf("Frequency() = %d, want 12", wf.Frequency())
	}
}

func TestFillMissingResults(t *testing.T) {
	row := ContentRow{Cells: []Cell{
		RowLabel{Tags: []string{"Sg"}},
		InflectionCell{Analysis: "${lemma}+A"},
		InflectionCell{Analysis: "${lemma}+B"},
		InflectionCell{Analysis: "ôma+Ipc"},
	}}
	res := Resolutions{"${lemma}+B": {Analysis: "x+B"}}
	for _, mode := range []FillMode{JoinForms, ExpandForms} {
		t.Run(mode.String(), func(t *testing.T) {
			filled, err := row.Fill(res, mode)
			if err != nil {
				t.Fatalf("Fill: %v", err)
			}
			cr, ok := filled.(ContentRow)
			if !ok {
				t.Fatalf("Fill returned %T, want ContentRow", filled)
			}
			if cr.Cells[1] != Missing {
				t.Errorf("unresolved cell = %#v, want Missing", cr.Cells[1])
			}
			if cr.Cells[2] != Missing {
				t.Errorf("zero-form cell = %#v, want Missing", cr.Cells[2])
			}
			if !CellsEqual(cr.Cells[3], row.Cells[3]) {
				t.Errorf("fixed analysis cell = %#v, want unchanged", cr.Cells[3])
			}
		})
	}
}

func TestExpandUnevenColumns(t *testing.T) {
	row := ContentRow{Cells: []Cell{
		RowLabel{Tags: []string{"1Sg"}},
		InflectionCell{Analysis: "${lemma}+Sg"},
		InflectionCell{Analysis: "${lemma}+Pl"},
		Missing,
	}}
	res := Resolutions{
		"${lemma}+Sg": {Forms: []string{"c", "a", "b"}},
		"${lemma}+Pl": {Forms: []string{"z"}},
	}
	filled, err := row.Fill(res, ExpandForms)
	if err != nil {
		t.Fatal(err)
	}
	compound := filled.(CompoundRow)
	if len(compound.Subrows) != 3 {
		t.Fatalf("got %d subrows, want 3", len(compound.Subrows))
	}
	want := []string{
		"_ 1Sg\ta\tz\t--",
		"\tb\t\t",
		"\tc\t\t",
	}
	for i, w := range want {
		if got := compound.Subrows[i].String(); got != w {
			t.Errorf("subrow %d = %q, want %q", i, got, w)
		}
	}
}

func TestTemplateFillDoesNotMutate(t *testing.T) {
	tmpl := loadNA(t)
	before := tmpl.String()

	res := Resolutions{"${lemma}+N+A+Sg": {Analysis: "minôs+N+A+Sg", Forms: []string{"minôs"}}}
	panes, err := tmpl.Fill(res, ExpandForms)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if tmpl.String() != before {
		t.Error("Fill modified the template")
	}
	if len(panes) != len(tmpl.Panes()) {
		t.Fatalf("got %d panes, want %d", len(panes), len(tmpl.Panes()))
	}
	for i, p := range panes {
		if p.NumColumns() != tmpl.Panes()[i].NumColumns() {
			t.Errorf("pane %d NumColumns = %d, want %d", i, p.NumColumns(), tmpl.Panes()[i].NumColumns())
		}
	}
	first := panes[0].Rows()[0].(ContentRow)
	if wf, ok := first.Cells[1].(WordformCell); !ok || wf.Inflection() != "minôs" {
		t.Errorf("filled cell = %#v", first.Cells[1])
	}
	second := panes[0].Rows()[1].(ContentRow)
	if second.Cells[1] != Missing {
		t.Errorf("unresolved cell = %#v, want Missing", second.Cells[1])
	}
	if MaxNumColumns(panes) != 4 {
		t.Errorf("MaxNumColumns(panes) = %d, want 4", MaxNumColumns(panes))
	}
}

func TestParseFillMode(t *testing.T) {
	tests := []struct {
		input   string
		want    FillMode
		wantErr bool
	}{
		{"", JoinForms, false},
		{"join", JoinForms, false},
		{"expand", ExpandForms, false},
		{"rows", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFillMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFillMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFillMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
