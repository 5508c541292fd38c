package render

import (
	"io"
	"strings"

	"github.com/matzehuels/paradigms/pkg/paradigm"
)

// TSV serializes filled panes in the layout language. Unresolved cells show
// the missing marker and resolved ones their joined forms.
func TSV(panes []paradigm.Pane) string {
	parts := make([]string, len(panes))
	for i, p := range panes {
		parts[i] = p.String()
	}
	return strings.Join(parts, "\n\n")
}

// WriteTSV writes [TSV] followed by a newline. Nothing is written for a
// paradigm without panes.
func WriteTSV(w io.Writer, panes []paradigm.Pane) error {
	if len(panes) == 0 {
		return nil
	}
	_, err := io.WriteString(w, TSV(panes)+"\n")
	return err
}
