package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/paradigm"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTSV  Format = "tsv"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatTSV}

// ParseFormat parses a format name case-insensitively. The empty string is
// text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: text, json, tsv)", s)
}

// Option configures rendering.
type Option func(*options)

type options struct {
	lemma       string
	wordClass   wordclass.WordClass
	size        wordclass.Size
	hasMeta     bool
	frequencies bool
	border      bool
}

// WithParadigm records what the panes are a paradigm of. Text output shows
// it as a title; JSON output includes it as fields.
func WithParadigm(lemma string, wc wordclass.WordClass, size wordclass.Size) Option {
	return func(o *options) {
		o.lemma, o.wordClass, o.size, o.hasMeta = lemma, wc, size, true
	}
}

// WithFrequencies appends each form's frequency to text output.
func WithFrequencies() Option { return func(o *options) { o.frequencies = true } }

// WithBorder draws table borders in text output.
func WithBorder() Option { return func(o *options) { o.border = true } }

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Write renders panes to w in format f.
func Write(w io.Writer, f Format, panes []paradigm.Pane, opts ...Option) error {
	switch f {
	case FormatText:
		_, err := io.WriteString(w, Text(panes, opts...))
		return err
	case FormatJSON:
		return WriteJSON(w, panes, opts...)
	case FormatTSV:
		return WriteTSV(w, panes)
	default:
		return fmt.Errorf("render: unknown format %q", f)
	}
}
