package paradigm

import (
	"fmt"
	"strings"
)

// Pane is one labeled sub-grid of a paradigm: an ordered sequence of rows
// sharing the same number of columns, optionally led by a [HeaderRow].
//
// Panes are immutable once constructed; callers must not modify the slices
// returned by [Pane.Rows].
type Pane struct {
	rows       []Row
	numColumns int
}

// NewPane validates rows and returns the pane they form. The header, if any,
// must be the first row, and every content row must have the same width.
func NewPane(rows []Row) (Pane, error) {
	if len(rows) == 0 {
		return Pane{}, fmt.Errorf("pane has no rows")
	}
	numColumns := -1
	for i, r := range rows {
		switch r.(type) {
		case HeaderRow:
			if i != 0 {
				return Pane{}, fmt.Errorf("row %d: header must be the first row of a pane", i+1)
			}
		case ContentRow, CompoundRow:
			w := width(r)
			if numColumns >= 0 && w != numColumns {
				return Pane{}, fmt.Errorf("row %d: has %d cells, want %d", i+1, w, numColumns)
			}
			numColumns = w
		case EmptyRow:
			return Pane{}, fmt.Errorf("row %d: empty row inside a pane", i+1)
		default:
			return Pane{}, fmt.Errorf("row %d: unexpected row type %T", i+1, r)
		}
	}
	if numColumns < 0 {
		numColumns = 0
	}
	return Pane{rows: rows, numColumns: numColumns}, nil
}

// MustPane is like NewPane but panics on invalid rows. It is meant for
// fixtures and package-level templates.
func MustPane(rows ...Row) Pane {
	p, err := NewPane(rows)
	if err != nil {
		panic(err)
	}
	return p
}

// Rows returns all rows, including the header.
func (p Pane) Rows() []Row { return p.rows }

// NumColumns returns the width of the pane's content rows.
func (p Pane) NumColumns() int { return p.numColumns }

// Header returns the pane's header row, or nil if it has none.
func (p Pane) Header() *HeaderRow {
	if len(p.rows) == 0 {
		return nil
	}
	if h, ok := p.rows[0].(HeaderRow); ok {
		return &h
	}
	return nil
}

// String returns the layout-language encoding of the pane.
func (p Pane) String() string {
	parts := make([]string, len(p.rows))
	for i, r := range p.rows {
		parts[i] = r.String()
	}
	return strings.Join(parts, "\n")
}

// Equal reports whether two panes have structurally equal rows.
func (p Pane) Equal(other Pane) bool {
	if len(p.rows) != len(other.rows) || p.numColumns != other.numColumns {
		return false
	}
	for i := range p.rows {
		if !RowsEqual(p.rows[i], other.rows[i]) {
			return false
		}
	}
	return true
}
