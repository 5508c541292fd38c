package paradigm

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ParseError reports text that matches no rule of the layout grammar.
type ParseError struct {
	Line   int    // 1-based line in the document; 0 when parsing a lone cell or row
	Column int    // 1-based cell index; 0 when the whole row is at fault
	Text   string // offending text
	Reason string
}

func (e *ParseError) Error() string {
	var loc []string
	if e.Line > 0 {
		loc = append(loc, fmt.Sprintf("line %d", e.Line))
	}
	if e.Column > 0 {
		loc = append(loc, fmt.Sprintf("column %d", e.Column))
	}
	prefix := ""
	if len(loc) > 0 {
		prefix = strings.Join(loc, ", ") + ": "
	}
	return fmt.Sprintf("%s%s: %q", prefix, e.Reason, e.Text)
}

// Parse parses a layout document. Trailing newlines are ignored; everything
// else must match the grammar exactly or the whole document is rejected.
func Parse(text string) (Template, error) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return Template{}, nil
	}

	var (
		panes   []Pane
		current []Row
		start   int
	)
	flush := func() error {
		p, err := NewPane(current)
		if err != nil {
			return &ParseError{Line: start, Reason: err.Error()}
		}
		panes = append(panes, p)
		current = nil
		return nil
	}

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		r, err := parseRow(line, lineNo)
		if err != nil {
			return Template{}, err
		}
		if _, ok := r.(EmptyRow); ok {
			if len(current) == 0 {
				return Template{}, &ParseError{Line: lineNo, Reason: "empty pane"}
			}
			if err := flush(); err != nil {
				return Template{}, err
			}
			continue
		}
		if len(current) == 0 {
			start = lineNo
		}
		if h, ok := r.(HeaderRow); ok && len(current) > 0 {
			return Template{}, &ParseError{Line: lineNo, Text: h.String(), Reason: "header must be the first row of a pane"}
		}
		if w := width(r); len(current) > 0 && w >= 0 {
			if prev := paneWidth(current); prev >= 0 && prev != w {
				return Template{}, &ParseError{Line: lineNo, Text: line, Reason: fmt.Sprintf("row has %d cells, want %d", w, prev)}
			}
		}
		current = append(current, r)
	}
	if err := flush(); err != nil {
		return Template{}, err
	}
	return Template{panes: panes}, nil
}

// Load reads and parses a layout document from r.
func Load(r io.Reader) (Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Template{}, err
	}
	return Parse(string(data))
}

// ParsePane parses the rows of a single pane.
func ParsePane(text string) (Pane, error) {
	var rows []Row
	for i, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		r, err := parseRow(line, i+1)
		if err != nil {
			return Pane{}, err
		}
		if _, ok := r.(EmptyRow); ok {
			return Pane{}, &ParseError{Line: i + 1, Reason: "blank line inside a pane"}
		}
		rows = append(rows, r)
	}
	p, err := NewPane(rows)
	if err != nil {
		return Pane{}, &ParseError{Text: text, Reason: err.Error()}
	}
	return p, nil
}

// ParseRow parses one line of a layout document. A blank line is an
// [EmptyRow]; a line starting with the header marker is a [HeaderRow].
func ParseRow(line string) (Row, error) {
	return parseRow(line, 0)
}

func parseRow(line string, lineNo int) (Row, error) {
	if line == "" {
		return EmptyRow{}, nil
	}
	if strings.HasPrefix(line, HeaderMarker) {
		if strings.Contains(line, "\t") {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: "header row must have a single cell"}
		}
		tags, err := parseTags(line, HeaderMarker)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: err.Error()}
		}
		return HeaderRow{Tags: tags}, nil
	}

	texts := strings.Split(line, "\t")
	cells := make([]Cell, len(texts))
	for i, text := range texts {
		c, err := ParseCell(text)
		if err != nil {
			pe := err.(*ParseError)
			pe.Line = lineNo
			pe.Column = i + 1
			return nil, pe
		}
		cells[i] = c
	}
	return ContentRow{Cells: cells}, nil
}

// ParseCell parses the text of a single cell.
func ParseCell(text string) (Cell, error) {
	if text == "" {
		return Empty, nil
	}
	if text == MissingMarker {
		return Missing, nil
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return nil, &ParseError{Text: text, Reason: "control character in cell"}
		}
	}
	if strings.TrimSpace(text) != text {
		return nil, &ParseError{Text: text, Reason: "leading or trailing whitespace in cell"}
	}

	switch {
	case strings.HasPrefix(text, HeaderMarker):
		return nil, &ParseError{Text: text, Reason: "header marker inside a content row"}
	case strings.HasPrefix(text, RowLabelMarker):
		tags, err := parseTags(text, RowLabelMarker)
		if err != nil {
			return nil, &ParseError{Text: text, Reason: err.Error()}
		}
		return RowLabel{Tags: tags}, nil
	case strings.HasPrefix(text, ColumnLabelMarker):
		tags, err := parseTags(text, ColumnLabelMarker)
		if err != nil {
			return nil, &ParseError{Text: text, Reason: err.Error()}
		}
		return ColumnLabel{Tags: tags}, nil
	}

	rest := strings.ReplaceAll(text, LemmaPlaceholder, "")
	if strings.Contains(rest, "${") {
		return nil, &ParseError{Text: text, Reason: "unknown placeholder"}
	}
	if rest != text || strings.Contains(text, TagSeparator) {
		return InflectionCell{Analysis: text}, nil
	}
	return StaticCell{Text: text}, nil
}

// parseTags splits "<marker> tag tag" into its tags. Tags are separated by
// exactly one space so that serialization reproduces the input.
func parseTags(text, marker string) ([]string, error) {
	rest, ok := strings.CutPrefix(text, marker+" ")
	if !ok || rest == "" {
		return nil, fmt.Errorf("marker %q must be followed by a space and at least one tag", marker)
	}
	tags := strings.Split(rest, " ")
	for _, tag := range tags {
		if tag == "" {
			return nil, fmt.Errorf("empty tag")
		}
	}
	return tags, nil
}

// paneWidth returns the width of the content rows collected so far, or -1.
func paneWidth(rows []Row) int {
	for _, r := range rows {
		if w := width(r); w >= 0 {
			return w
		}
	}
	return -1
}
