package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/paradigms/pkg/paradigm"
)

// Cell kinds in JSON output.
const (
	KindEmpty       = "empty"
	KindMissing     = "missing"
	KindStatic      = "static"
	KindInflection  = "inflection"
	KindRowLabel    = "row_label"
	KindColumnLabel = "column_label"
	KindWordform    = "wordform"
)

// Document is the JSON form of a filled paradigm.
type Document struct {
	Lemma      string         `json:"lemma,omitempty"`
	WordClass  string         `json:"word_class,omitempty"`
	Size       string         `json:"size,omitempty"`
	NumColumns int            `json:"num_columns"`
	Panes      []PaneDocument `json:"panes"`
}

// PaneDocument is one pane.
type PaneDocument struct {
	Header     []string      `json:"header,omitempty"`
	NumColumns int           `json:"num_columns"`
	Rows       []RowDocument `json:"rows"`
}

// RowDocument is a content row, or a compound row when Subrows is set.
type RowDocument struct {
	Cells   []CellDocument   `json:"cells,omitempty"`
	Subrows [][]CellDocument `json:"subrows,omitempty"`
}

// CellDocument is one cell. Kind is one of the Kind* constants.
type CellDocument struct {
	Kind     string          `json:"kind"`
	Text     string          `json:"text,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
	Analysis string          `json:"analysis,omitempty"`
	Forms    []paradigm.Form `json:"forms,omitempty"`
}

// NewDocument converts panes to their JSON form.
func NewDocument(panes []paradigm.Pane, opts ...Option) Document {
	o := buildOptions(opts)
	doc := Document{
		NumColumns: paradigm.MaxNumColumns(panes),
		Panes:      make([]PaneDocument, 0, len(panes)),
	}
	if o.hasMeta {
		doc.Lemma = o.lemma
		doc.WordClass = o.wordClass.String()
		doc.Size = o.size.String()
	}
	for _, p := range panes {
		pd := PaneDocument{NumColumns: p.NumColumns(), Rows: []RowDocument{}}
		if h := p.Header(); h != nil {
			pd.Header = h.Tags
		}
		for _, r := range p.Rows() {
			switch r := r.(type) {
			case paradigm.ContentRow:
				pd.Rows = append(pd.Rows, RowDocument{Cells: cellDocuments(r.Cells)})
			case paradigm.CompoundRow:
				rd := RowDocument{Subrows: make([][]CellDocument, len(r.Subrows))}
				for i, sub := range r.Subrows {
					rd.Subrows[i] = cellDocuments(sub.Cells)
				}
				pd.Rows = append(pd.Rows, rd)
			}
		}
		doc.Panes = append(doc.Panes, pd)
	}
	return doc
}

func cellDocuments(cells []paradigm.Cell) []CellDocument {
	out := make([]CellDocument, len(cells))
	for i, c := range cells {
		out[i] = cellDocument(c)
	}
	return out
}

func cellDocument(c paradigm.Cell) CellDocument {
	switch c := c.(type) {
	case paradigm.EmptyCell:
		return CellDocument{Kind: KindEmpty}
	case paradigm.MissingForm:
		return CellDocument{Kind: KindMissing}
	case paradigm.StaticCell:
		return CellDocument{Kind: KindStatic, Text: c.Text}
	case paradigm.InflectionCell:
		return CellDocument{Kind: KindInflection, Analysis: c.Analysis}
	case paradigm.RowLabel:
		return CellDocument{Kind: KindRowLabel, Tags: c.Tags}
	case paradigm.ColumnLabel:
		return CellDocument{Kind: KindColumnLabel, Tags: c.Tags}
	case paradigm.WordformCell:
		return CellDocument{Kind: KindWordform, Text: c.Inflection(), Analysis: c.Analysis, Forms: c.Forms}
	default:
		return CellDocument{Kind: fmt.Sprintf("%T", c)}
	}
}

// WriteJSON writes the indented [Document] for panes.
func WriteJSON(w io.Writer, panes []paradigm.Pane, opts ...Option) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(NewDocument(panes, opts...))
}
