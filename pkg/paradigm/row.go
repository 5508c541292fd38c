package paradigm

import (
	"strings"
)

// Row is one row of a pane. The set of row kinds is closed.
type Row interface {
	// String returns the layout-language encoding of the row.
	String() string
	row()
}

// HeaderRow is the title of a pane. A pane has at most one, and it is always
// the first row.
type HeaderRow struct {
	Tags []string
}

func (r HeaderRow) String() string { return HeaderMarker + " " + strings.Join(r.Tags, " ") }

// ContentRow is an ordered sequence of cells, one per column.
type ContentRow struct {
	Cells []Cell
}

func (r ContentRow) String() string {
	parts := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, "\t")
}

// EmptyRow is the pane separator of a layout document. It never appears
// inside a [Pane].
type EmptyRow struct{}

func (EmptyRow) String() string { return "" }

// CompoundRow is a filled row whose inflection cells produced more than one
// form. Each subrow shows one form per inflection cell; only the first subrow
// keeps the labels of the original row.
type CompoundRow struct {
	Subrows []ContentRow
}

func (r CompoundRow) String() string {
	parts := make([]string, len(r.Subrows))
	for i, s := range r.Subrows {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}

// ContainsWordform reports whether some subrow holds the wordform w.
func (r CompoundRow) ContainsWordform(w string) bool {
	for _, sub := range r.Subrows {
		for _, c := range sub.Cells {
			if wf, ok := c.(WordformCell); ok && wf.Inflection() == w {
				return true
			}
		}
	}
	return false
}

func (HeaderRow) row()   {}
func (ContentRow) row()  {}
func (EmptyRow) row()    {}
func (CompoundRow) row() {}

// width returns the number of columns a row occupies, or -1 for rows that
// do not take part in column counting.
func width(r Row) int {
	switch r := r.(type) {
	case ContentRow:
		return len(r.Cells)
	case CompoundRow:
		if len(r.Subrows) == 0 {
			return 0
		}
		return len(r.Subrows[0].Cells)
	default:
		return -1
	}
}

// RowsEqual reports whether two rows are structurally equal.
func RowsEqual(a, b Row) bool {
	switch a := a.(type) {
	case HeaderRow:
		other, ok := b.(HeaderRow)
		return ok && tagsEqual(a.Tags, other.Tags)
	case ContentRow:
		other, ok := b.(ContentRow)
		return ok && contentRowsEqual(a, other)
	case EmptyRow:
		_, ok := b.(EmptyRow)
		return ok
	case CompoundRow:
		other, ok := b.(CompoundRow)
		if !ok || len(a.Subrows) != len(other.Subrows) {
			return false
		}
		for i := range a.Subrows {
			if !contentRowsEqual(a.Subrows[i], other.Subrows[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

func contentRowsEqual(a, b ContentRow) bool {
	if len(a.Cells) != len(b.Cells) {
		return false
	}
	for i := range a.Cells {
		if !CellsEqual(a.Cells[i], b.Cells[i]) {
			return false
		}
	}
	return true
}
