package paradigm

import (
	"io"
	"strings"
)

// Template is a parsed layout document: the ordered panes of one paradigm.
type Template struct {
	panes []Pane
}

// NewTemplate returns a template made of panes.
func NewTemplate(panes ...Pane) Template {
	return Template{panes: panes}
}

// Panes returns the template's panes in document order.
func (t Template) Panes() []Pane { return t.panes }

// IsEmpty reports whether the template has no panes, as for word classes
// without inflections.
func (t Template) IsEmpty() bool { return len(t.panes) == 0 }

// MaxNumColumns returns the widest pane's column count. Renderers pad
// narrower panes to this width.
func (t Template) MaxNumColumns() int {
	return MaxNumColumns(t.panes)
}

// MaxNumColumns returns the largest NumColumns among panes.
func MaxNumColumns(panes []Pane) int {
	n := 0
	for _, p := range panes {
		if p.NumColumns() > n {
			n = p.NumColumns()
		}
	}
	return n
}

// String serializes the template. Panes are joined with one blank line and no
// trailing newline is written.
func (t Template) String() string {
	parts := make([]string, len(t.panes))
	for i, p := range t.panes {
		parts[i] = p.String()
	}
	return strings.Join(parts, "\n\n")
}

// WriteTo writes the serialized template followed by a newline.
func (t Template) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String()+"\n")
	return int64(n), err
}

// Equal reports whether two templates are structurally equal.
func (t Template) Equal(other Template) bool {
	if len(t.panes) != len(other.panes) {
		return false
	}
	for i := range t.panes {
		if !t.panes[i].Equal(other.panes[i]) {
			return false
		}
	}
	return true
}
