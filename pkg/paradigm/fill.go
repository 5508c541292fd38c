package paradigm

import (
	"fmt"
	"sort"

	"github.com/matzehuels/paradigms/pkg/errors"
)

// FillMode selects how a cell with several generated forms is laid out.
type FillMode int

const (
	// JoinForms keeps one cell per analysis; its forms are displayed joined
	// with [FormSeparator].
	JoinForms FillMode = iota
	// ExpandForms turns a row with a multi-form cell into a [CompoundRow].
	ExpandForms
)

// String returns the mode's name as used on the command line.
func (m FillMode) String() string {
	switch m {
	case JoinForms:
		return "join"
	case ExpandForms:
		return "expand"
	default:
		return fmt.Sprintf("FillMode(%d)", int(m))
	}
}

// ParseFillMode parses "join" or "expand".
func ParseFillMode(s string) (FillMode, error) {
	switch s {
	case "", "join":
		return JoinForms, nil
	case "expand":
		return ExpandForms, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid fill mode: %q (must be one of: join, expand)", s)
	}
}

// Resolution is what the generator produced for one analysis pattern.
type Resolution struct {
	Analysis  string   // concrete analysis string
	Forms     []string // surface forms, in any order
	Frequency int      // frequency of Analysis
}

// Resolutions maps an [InflectionCell] pattern to its resolution.
type Resolutions map[string]Resolution

// Fill returns freshly allocated panes with every inflection cell resolved.
// A pattern without a resolution, or whose resolution has no forms, becomes
// [Missing]. The template itself is not modified.
func (t Template) Fill(res Resolutions, mode FillMode) ([]Pane, error) {
	panes := make([]Pane, len(t.panes))
	for i, p := range t.panes {
		filled, err := p.Fill(res, mode)
		if err != nil {
			return nil, err
		}
		panes[i] = filled
	}
	return panes, nil
}

// Fill resolves every row of the pane. See [Template.Fill].
func (p Pane) Fill(res Resolutions, mode FillMode) (Pane, error) {
	rows := make([]Row, len(p.rows))
	for i, r := range p.rows {
		switch r := r.(type) {
		case HeaderRow:
			rows[i] = r
		case ContentRow:
			filled, err := r.Fill(res, mode)
			if err != nil {
				return Pane{}, err
			}
			rows[i] = filled
		default:
			return Pane{}, errors.New(errors.ErrCodeInternal, "row %d: unexpected row type %T", i+1, r)
		}
	}
	return Pane{rows: rows, numColumns: p.numColumns}, nil
}

// Fill resolves the row's inflection cells. In [ExpandForms] mode a row in
// which some cell has N > 1 forms becomes a [CompoundRow] of N subrows: subrow
// k holds the k-th form of every inflection cell, and every other position of
// subrows after the first is [Empty].
func (r ContentRow) Fill(res Resolutions, mode FillMode) (Row, error) {
	cells := make([]Cell, len(r.Cells))
	depth := 1
	for i, c := range r.Cells {
		switch c := c.(type) {
		case EmptyCell, MissingForm, StaticCell, ColumnLabel, RowLabel:
			cells[i] = c
		case InflectionCell:
			if !c.HasAnalysis() {
				cells[i] = c
				continue
			}
			wf, ok := resolve(res[c.Analysis])
			if !ok {
				cells[i] = Missing
				continue
			}
			cells[i] = wf
			if len(wf.Forms) > depth {
				depth = len(wf.Forms)
			}
		default:
			return nil, errors.New(errors.ErrCodeInternal, "column %d: unexpected cell type %T", i+1, c)
		}
	}

	if mode != ExpandForms || depth == 1 {
		return ContentRow{Cells: cells}, nil
	}

	subrows := make([]ContentRow, depth)
	for k := range subrows {
		sub := make([]Cell, len(cells))
		for i, c := range cells {
			switch c := c.(type) {
			case WordformCell:
				if k < len(c.Forms) {
					sub[i] = WordformCell{Analysis: c.Analysis, Forms: []Form{c.Forms[k]}}
				} else {
					sub[i] = Empty
				}
			default:
				if k == 0 {
					sub[i] = c
				} else {
					sub[i] = Empty
				}
			}
		}
		subrows[k] = ContentRow{Cells: sub}
	}
	return CompoundRow{Subrows: subrows}, nil
}

// resolve turns a resolution into a wordform cell with sorted, deduplicated
// forms. It reports false when there is nothing to show.
func resolve(res Resolution) (WordformCell, bool) {
	if len(res.Forms) == 0 {
		return WordformCell{}, false
	}
	texts := append([]string(nil), res.Forms...)
	sort.Strings(texts)
	forms := make([]Form, 0, len(texts))
	for i, text := range texts {
		if i > 0 && text == texts[i-1] {
			continue
		}
		forms = append(forms, Form{Text: text, Frequency: res.Frequency})
	}
	return WordformCell{Analysis: res.Analysis, Forms: forms}, true
}
