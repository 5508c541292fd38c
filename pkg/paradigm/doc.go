// Package paradigm implements the paradigm layout language: a small textual
// format describing the shape of a paradigm table, its in-memory model, a
// parser and serializer with an exact round trip, and the fill step that
// substitutes generated wordforms into a template.
//
// # Layout Documents
//
// A layout document is UTF-8 text. Each line is a row and cells within a row
// are separated by a TAB. A blank line separates panes:
//
//	_ Sg	${lemma}+N+A+Sg
//	_ Pl	${lemma}+N+A+Pl
//
//	# Der/Dim
//	_ Sg	${lemma}+N+A+Der/Dim+N+A+Sg
//
//	# Px
//		| Sg	| Pl
//	_ 1Sg	${lemma}+N+A+Px1Sg+Sg	${lemma}+N+A+Px1Sg+Pl
//	_ 3Sg	--	${lemma}+N+A+Px3Sg+Pl
//
// Cell syntax:
//
//	""               EmptyCell
//	"--"             MissingForm (grammatically impossible slot)
//	"_ tag..."       RowLabel
//	"| tag..."       ColumnLabel
//	"...${lemma}..." InflectionCell whose analysis is generated per lemma
//	"lemma+Tag..."   InflectionCell with a fixed analysis
//	anything else    StaticCell
//
// A line "# tag..." is a [HeaderRow] and may only start a pane.
//
// # Round Trip
//
// Every value produced by the parser serializes back to the exact text it was
// parsed from: for a document d, Parse(d).String() equals d without its
// trailing newlines, and each cell, row and pane satisfies the same property
// through [ParseCell], [ParseRow] and [ParsePane].
//
// # Filling
//
// Templates are immutable. [Template.Fill] derives fresh panes in which every
// [InflectionCell] with an analysis is replaced by a [WordformCell] holding the
// generated forms, or by [Missing] when the generator produced nothing. Label
// and static cells are shared with the template. In [ExpandForms] mode a row
// whose cell has several forms becomes a [CompoundRow] with one subrow per form.
package paradigm
