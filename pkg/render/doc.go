// Package render turns filled paradigm panes into output for people and
// programs.
//
// Three formats are supported:
//
//   - [FormatText]: aligned tables for the terminal, one per pane, drawn with
//     lipgloss. Narrow panes are padded to the widest pane of the paradigm.
//   - [FormatJSON]: the wire format of the HTTP API, with one object per cell
//     so clients can tell labels, forms and missing forms apart.
//   - [FormatTSV]: the layout language itself, with forms in place of
//     analyses. Compound rows become one line per subrow.
//
// Write dispatches on the format:
//
//	err := render.Write(os.Stdout, render.FormatText, panes,
//	    render.WithParadigm("atim", wordclass.NA, wordclass.Full))
package render
