package paradigm

import (
	"strings"

	"github.com/matzehuels/paradigms/pkg/errors"
)

// InflectionCells returns every [InflectionCell] that has an analysis, in
// document order. Duplicated patterns are returned once per cell.
//
// Templates are built from parsed layouts only, so a fill-only kind
// ([WordformCell], [CompoundRow]) here is an invariant violation and is
// reported as an INTERNAL_ERROR.
func (t Template) InflectionCells() ([]InflectionCell, error) {
	var cells []InflectionCell
	for pi, p := range t.panes {
		for ri, r := range p.rows {
			switch r := r.(type) {
			case HeaderRow:
				continue
			case ContentRow:
				for ci, c := range r.Cells {
					switch c := c.(type) {
					case EmptyCell, MissingForm, StaticCell, ColumnLabel, RowLabel:
						continue
					case InflectionCell:
						if c.HasAnalysis() {
							cells = append(cells, c)
						}
					default:
						return nil, errors.New(errors.ErrCodeInternal,
							"pane %d, row %d, column %d: unexpected cell type %T", pi+1, ri+1, ci+1, c)
					}
				}
			default:
				return nil, errors.New(errors.ErrCodeInternal,
					"pane %d, row %d: unexpected row type %T", pi+1, ri+1, r)
			}
		}
	}
	return cells, nil
}

// Analyses returns the analysis string of every inflection cell for lemma,
// in document order and with duplicates preserved.
func (t Template) Analyses(lemma string) ([]string, error) {
	cells, err := t.InflectionCells()
	if err != nil {
		return nil, err
	}
	analyses := make([]string, len(cells))
	for i, c := range cells {
		analyses[i] = c.ConcatAnalysis(lemma)
	}
	return analyses, nil
}

// GenerateAnalysisString returns the analyses for lemma joined by newlines,
// one line per inflection cell. It is meant for diagnostics and for feeding
// line-oriented generator tools.
func (t Template) GenerateAnalysisString(lemma string) (string, error) {
	analyses, err := t.Analyses(lemma)
	if err != nil {
		return "", err
	}
	return strings.Join(analyses, "\n"), nil
}
