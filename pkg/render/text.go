package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/paradigms/pkg/paradigm"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
	colorText = lipgloss.Color("255")

	styleTitle       = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stylePaneHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
	styleRowLabel    = styleCell.Bold(true).Foreground(colorGray)
	styleColumnLabel = styleCell.Bold(true).Foreground(colorGray)
	styleForm        = styleCell.Foreground(colorText)
	styleMissing     = styleCell.Foreground(colorDim)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
)

type cellKind int

const (
	kindPlain cellKind = iota
	kindRowLabel
	kindColumnLabel
	kindForm
	kindMissing
)

// Text renders panes as terminal tables, one per pane, separated by a blank
// line. Every table has as many columns as the widest pane.
func Text(panes []paradigm.Pane, opts ...Option) string {
	o := buildOptions(opts)

	var b strings.Builder
	if o.hasMeta {
		b.WriteString(styleTitle.Render(fmt.Sprintf("%s (%s, %s)", o.lemma, o.wordClass, o.size)))
		b.WriteString("\n\n")
		if len(panes) == 0 {
			b.WriteString(styleDim.Render("no inflections"))
			b.WriteString("\n")
			return b.String()
		}
	}

	width := paradigm.MaxNumColumns(panes)
	for i, p := range panes {
		if i > 0 {
			b.WriteString("\n")
		}
		if h := p.Header(); h != nil {
			b.WriteString(stylePaneHeader.Render(strings.Join(h.Tags, " ")))
			b.WriteString("\n")
		}
		if p.NumColumns() == 0 {
			continue
		}
		b.WriteString(paneTable(p, width, o).Render())
		b.WriteString("\n")
	}
	return b.String()
}

func paneTable(p paradigm.Pane, width int, o options) *table.Table {
	var (
		rows  [][]string
		kinds [][]cellKind
	)
	addRow := func(cells []paradigm.Cell) {
		texts := make([]string, width)
		ks := make([]cellKind, width)
		for i, c := range cells {
			texts[i], ks[i] = cellText(c, o)
		}
		rows = append(rows, texts)
		kinds = append(kinds, ks)
	}
	for _, r := range p.Rows() {
		switch r := r.(type) {
		case paradigm.ContentRow:
			addRow(r.Cells)
		case paradigm.CompoundRow:
			for _, sub := range r.Subrows {
				addRow(sub.Cells)
			}
		}
	}

	border := lipgloss.HiddenBorder()
	if o.border {
		border = lipgloss.RoundedBorder()
	}
	return table.New().
		Border(border).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= len(kinds) || col >= len(kinds[row]) {
				return styleCell
			}
			switch kinds[row][col] {
			case kindRowLabel:
				return styleRowLabel
			case kindColumnLabel:
				return styleColumnLabel
			case kindForm:
				return styleForm
			case kindMissing:
				return styleMissing
			default:
				return styleCell
			}
		})
}

func cellText(c paradigm.Cell, o options) (string, cellKind) {
	switch c := c.(type) {
	case paradigm.RowLabel:
		return strings.Join(c.Tags, " "), kindRowLabel
	case paradigm.ColumnLabel:
		return strings.Join(c.Tags, " "), kindColumnLabel
	case paradigm.MissingForm:
		return paradigm.MissingMarker, kindMissing
	case paradigm.WordformCell:
		if !o.frequencies {
			return c.Inflection(), kindForm
		}
		parts := make([]string, len(c.Forms))
		for i, f := range c.Forms {
			parts[i] = fmt.Sprintf("%s (%d)", f.Text, f.Frequency)
		}
		return strings.Join(parts, paradigm.FormSeparator), kindForm
	case nil:
		return "", kindPlain
	default:
		return c.String(), kindPlain
	}
}
