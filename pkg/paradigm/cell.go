package paradigm

import (
	"strings"
)

// LemmaPlaceholder is replaced by the lemma when an analysis is generated.
const LemmaPlaceholder = "${lemma}"

// Syntax markers of the layout language.
const (
	MissingMarker     = "--"
	RowLabelMarker    = "_"
	ColumnLabelMarker = "|"
	HeaderMarker      = "#"
	TagSeparator      = "+"
	FormSeparator     = " / "
)

// Cell is one cell of a paradigm row. The set of cell kinds is closed: every
// implementation lives in this package.
type Cell interface {
	// String returns the layout-language encoding of the cell.
	String() string
	cell()
}

// EmptyCell renders as a blank cell.
type EmptyCell struct{}

// MissingForm marks a slot that is grammatically impossible.
type MissingForm struct{}

// Canonical sentinel cells. The parser always returns these values.
var (
	Empty   Cell = EmptyCell{}
	Missing Cell = MissingForm{}
)

func (EmptyCell) String() string   { return "" }
func (MissingForm) String() string { return MissingMarker }

// StaticCell is literal text copied verbatim into the output.
type StaticCell struct {
	Text string
}

func (c StaticCell) String() string { return c.Text }

// InflectionCell holds the analysis pattern of a generated wordform,
// e.g. "${lemma}+N+A+Sg".
type InflectionCell struct {
	Analysis string
}

// HasAnalysis reports whether the pattern depends on the lemma and therefore
// has to be sent to the generator.
func (c InflectionCell) HasAnalysis() bool {
	return strings.Contains(c.Analysis, LemmaPlaceholder)
}

// ConcatAnalysis substitutes lemma into the pattern.
func (c InflectionCell) ConcatAnalysis(lemma string) string {
	return strings.ReplaceAll(c.Analysis, LemmaPlaceholder, lemma)
}

func (c InflectionCell) String() string { return c.Analysis }

// ColumnLabel labels the column it heads.
type ColumnLabel struct {
	Tags []string
}

func (c ColumnLabel) String() string { return ColumnLabelMarker + " " + strings.Join(c.Tags, " ") }

// RowLabel labels the row it starts.
type RowLabel struct {
	Tags []string
}

func (c RowLabel) String() string { return RowLabelMarker + " " + strings.Join(c.Tags, " ") }

// Form is one generated surface form together with the observed frequency of
// the analysis that produced it.
type Form struct {
	Text      string `json:"form"`
	Frequency int    `json:"frequency"`
}

// WordformCell is an [InflectionCell] after filling. It exists only in filled
// panes and is never produced by the parser.
type WordformCell struct {
	// Analysis is the concrete analysis string the forms were generated from.
	Analysis string
	// Forms are sorted lexicographically by text.
	Forms []Form
}

// Inflection returns all forms joined with [FormSeparator].
func (c WordformCell) Inflection() string {
	texts := make([]string, len(c.Forms))
	for i, f := range c.Forms {
		texts[i] = f.Text
	}
	return strings.Join(texts, FormSeparator)
}

// Frequency returns the frequency of the cell's analysis, or 0 for a cell
// without forms.
func (c WordformCell) Frequency() int {
	if len(c.Forms) == 0 {
		return 0
	}
	return c.Forms[0].Frequency
}

func (c WordformCell) String() string { return c.Inflection() }

func (EmptyCell) cell()      {}
func (MissingForm) cell()    {}
func (StaticCell) cell()     {}
func (InflectionCell) cell() {}
func (ColumnLabel) cell()    {}
func (RowLabel) cell()       {}
func (WordformCell) cell()   {}

// CellsEqual reports whether two cells are structurally equal.
func CellsEqual(a, b Cell) bool {
	switch a := a.(type) {
	case EmptyCell:
		_, ok := b.(EmptyCell)
		return ok
	case MissingForm:
		_, ok := b.(MissingForm)
		return ok
	case StaticCell:
		other, ok := b.(StaticCell)
		return ok && a == other
	case InflectionCell:
		other, ok := b.(InflectionCell)
		return ok && a == other
	case ColumnLabel:
		other, ok := b.(ColumnLabel)
		return ok && tagsEqual(a.Tags, other.Tags)
	case RowLabel:
		other, ok := b.(RowLabel)
		return ok && tagsEqual(a.Tags, other.Tags)
	case WordformCell:
		other, ok := b.(WordformCell)
		if !ok || a.Analysis != other.Analysis || len(a.Forms) != len(other.Forms) {
			return false
		}
		for i := range a.Forms {
			if a.Forms[i] != other.Forms[i] {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

func tagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
