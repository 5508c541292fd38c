// Package wordclass defines the closed enumerations that key paradigm layouts:
// the inflectional [WordClass] of a lemma and the [Size] (level of detail) of
// a rendered paradigm.
package wordclass

import (
	"strings"

	"github.com/matzehuels/paradigms/pkg/errors"
)

// WordClass is a closed category of inflectional behaviour.
type WordClass string

// Supported word classes. IPC and Pron do not inflect and never have a paradigm.
const (
	NA   WordClass = "NA"   // animate noun
	NAD  WordClass = "NAD"  // dependent animate noun
	NI   WordClass = "NI"   // inanimate noun
	NID  WordClass = "NID"  // dependent inanimate noun
	VAI  WordClass = "VAI"  // animate intransitive verb
	VII  WordClass = "VII"  // inanimate intransitive verb
	VTA  WordClass = "VTA"  // transitive animate verb
	VTI  WordClass = "VTI"  // transitive inanimate verb
	IPC  WordClass = "IPC"  // particle
	Pron WordClass = "PRON" // pronoun
)

// All lists every word class in declaration order.
var All = []WordClass{NA, NAD, NI, NID, VAI, VII, VTA, VTI, IPC, Pron}

// Inflecting lists the word classes that have a paradigm layout.
var Inflecting = []WordClass{NA, NAD, NI, NID, VAI, VII, VTA, VTI}

// HasInflections reports whether the word class has a paradigm.
func (wc WordClass) HasInflections() bool {
	return wc != IPC && wc != Pron
}

// Valid reports whether wc is one of [All].
func (wc WordClass) Valid() bool {
	for _, known := range All {
		if wc == known {
			return true
		}
	}
	return false
}

// String returns the canonical upper-case name.
func (wc WordClass) String() string {
	return string(wc)
}

// Parse returns the word class named by s. Matching is case-insensitive, so
// "na", "NA" and "Pron" are all accepted.
func Parse(s string) (WordClass, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, wc := range All {
		if string(wc) == upper {
			return wc, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidWordClass, "unknown word class: %q", s)
}

// Size is a level of completeness of a rendered paradigm. Sizes are ordered:
// every larger size shows at least the cells of the smaller ones.
type Size int

const (
	Basic Size = iota
	Full
	Linguistic
)

// Sizes lists every size from least to most complete.
var Sizes = []Size{Basic, Full, Linguistic}

var sizeNames = [...]string{
	Basic:      "BASIC",
	Full:       "FULL",
	Linguistic: "LINGUISTIC",
}

// String returns the canonical upper-case name.
func (s Size) String() string {
	if s < 0 || int(s) >= len(sizeNames) {
		return "UNKNOWN"
	}
	return sizeNames[s]
}

// Valid reports whether s is one of [Sizes].
func (s Size) Valid() bool {
	return s >= Basic && s <= Linguistic
}

// Slug returns the lower-case token used in layout filenames.
func (s Size) Slug() string {
	return strings.ToLower(s.String())
}

// ParseSize returns the size named by s, case-insensitively.
func ParseSize(s string) (Size, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range sizeNames {
		if name == upper {
			return Size(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidSize, "unknown paradigm size: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.Slug()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
