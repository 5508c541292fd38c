// Package layout loads paradigm layout files into a [Registry] keyed by word
// class and size.
//
// Layout files live in one directory and are named
// <word-class-token>-<size>.layout.tsv, for example noun-na-full.layout.tsv.
// The word-class token is resolved through a [Names] table; the size is one
// of basic, full or linguistic in any letter case.
package layout

import (
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/paradigm"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

// Suffix is the extension shared by all layout files.
const Suffix = ".layout.tsv"

// Names maps the word-class token of a layout filename to a word class.
type Names map[string]wordclass.WordClass

// DefaultNames returns the token table used when none is configured.
func DefaultNames() Names {
	return Names{
		"noun-na":  wordclass.NA,
		"noun-nad": wordclass.NAD,
		"noun-ni":  wordclass.NI,
		"noun-nid": wordclass.NID,
		"verb-ai":  wordclass.VAI,
		"verb-ii":  wordclass.VII,
		"verb-ta":  wordclass.VTA,
		"verb-ti":  wordclass.VTI,
	}
}

// Key identifies one layout.
type Key struct {
	WordClass wordclass.WordClass `json:"word_class"`
	Size      wordclass.Size      `json:"size"`
}

// String returns "WC/SIZE", e.g. "NA/FULL".
func (k Key) String() string {
	return k.WordClass.String() + "/" + k.Size.String()
}

// Options configures [Load].
type Options struct {
	// Names resolves filename tokens. Defaults to DefaultNames().
	Names Names

	// WordClasses lists the word classes that must have a layout for every
	// size. Word classes without inflections are ignored. Defaults to
	// wordclass.Inflecting.
	WordClasses []wordclass.WordClass

	// Logger receives warnings about skipped and replaced files.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Names == nil {
		o.Names = DefaultNames()
	}
	if o.WordClasses == nil {
		o.WordClasses = wordclass.Inflecting
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Registry holds the parsed layouts. It is immutable after loading and safe
// for concurrent use.
type Registry struct {
	templates map[Key]paradigm.Template
	sources   map[Key]string
}

// New builds a registry from already parsed templates.
func New(templates map[Key]paradigm.Template) *Registry {
	r := &Registry{
		templates: make(map[Key]paradigm.Template, len(templates)),
		sources:   make(map[Key]string),
	}
	for k, t := range templates {
		r.templates[k] = t
	}
	return r
}

// Load reads every layout file in dir. See [LoadFS].
func Load(dir string, opts Options) (*Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout directory not found: %s", dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "layout path is not a directory: %s", dir)
	}
	return LoadFS(os.DirFS(dir), opts)
}

// LoadFS reads every *.layout.tsv file at the root of fsys.
//
// A directory without layout files, a filename with an unknown word-class
// token, and a file that fails to parse are fatal. A file with an unknown
// size is skipped with a warning. When two files map to the same key the
// later one (in lexical order) replaces the earlier one with a warning. If
// nothing is left after skipping, the load fails with NO_LAYOUTS.
// Finally every word class in opts.WordClasses must have all sizes.
func LoadFS(fsys fs.FS, opts Options) (*Registry, error) {
	opts.setDefaults()

	files, err := fs.Glob(fsys, "*"+Suffix)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeNoLayouts, "could not find any %s files", Suffix)
	}

	r := New(nil)
	for _, name := range files {
		if strings.HasPrefix(name, ".") {
			opts.Logger.Debug("skipping hidden layout file", "file", name)
			continue
		}
		key, err := ParseFilename(name, opts.Names)
		if errors.Is(err, errors.ErrCodeInvalidSize) {
			opts.Logger.Warn("unsupported paradigm size", "file", name)
			continue
		}
		if err != nil {
			return nil, err
		}

		tmpl, err := loadTemplate(fsys, name)
		if err != nil {
			return nil, err
		}
		if prev, ok := r.sources[key]; ok {
			opts.Logger.Warn("layout already in table; replacing", "key", key, "previous", prev, "file", name)
		}
		r.templates[key] = tmpl
		r.sources[key] = name
		opts.Logger.Debug("loaded layout", "key", key, "file", name, "panes", len(tmpl.Panes()))
	}

	if r.Len() == 0 {
		return nil, errors.New(errors.ErrCodeNoLayouts, "no usable %s files: every file was hidden or had an unsupported size", Suffix)
	}
	if err := r.checkComplete(opts.WordClasses); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseFilename maps a layout filename to its key. Errors carry
// INVALID_SIZE for an unknown size and INVALID_LAYOUT otherwise.
func ParseFilename(name string, names Names) (Key, error) {
	if err := errors.ValidateLayoutFilename(name); err != nil {
		return Key{}, err
	}
	stem, _, _ := strings.Cut(name, ".")
	i := strings.LastIndex(stem, "-")
	if i < 0 {
		return Key{}, errors.New(errors.ErrCodeInvalidLayout, "layout filename %q must be <word-class>-<size>%s", name, Suffix)
	}
	size, err := wordclass.ParseSize(stem[i+1:])
	if err != nil {
		return Key{}, errors.Wrap(errors.ErrCodeInvalidSize, err, "layout %s", name)
	}
	wc, ok := names[stem[:i]]
	if !ok {
		return Key{}, errors.New(errors.ErrCodeInvalidLayout, "layout %s: unknown word class %q", name, stem[:i])
	}
	return Key{WordClass: wc, Size: size}, nil
}

func loadTemplate(fsys fs.FS, name string) (paradigm.Template, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return paradigm.Template{}, err
	}
	tmpl, err := paradigm.Parse(string(data))
	if err != nil {
		return paradigm.Template{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "parse %s", name)
	}
	return tmpl, nil
}

func (r *Registry) checkComplete(wcs []wordclass.WordClass) error {
	var missing []string
	for _, wc := range wcs {
		if !wc.HasInflections() {
			continue
		}
		for _, size := range wordclass.Sizes {
			key := Key{WordClass: wc, Size: size}
			if _, ok := r.templates[key]; !ok {
				missing = append(missing, key.String())
			}
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeLayoutNotFound, "missing layouts: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Get returns the layout for (wc, size). Word classes without inflections
// always get an empty template.
func (r *Registry) Get(wc wordclass.WordClass, size wordclass.Size) (paradigm.Template, error) {
	if !wc.HasInflections() {
		return paradigm.Template{}, nil
	}
	tmpl, ok := r.templates[Key{WordClass: wc, Size: size}]
	if !ok {
		return paradigm.Template{}, errors.New(errors.ErrCodeLayoutNotFound, "no layout for %s/%s", wc, size)
	}
	return tmpl, nil
}

// Source returns the filename a layout was loaded from, if any.
func (r *Registry) Source(k Key) string {
	return r.sources[k]
}

// Keys returns the loaded keys ordered by word class then size.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].WordClass != keys[j].WordClass {
			return keys[i].WordClass < keys[j].WordClass
		}
		return keys[i].Size < keys[j].Size
	})
	return keys
}

// Len returns the number of loaded layouts.
func (r *Registry) Len() int { return len(r.templates) }
