// Package pkg provides the core libraries for filling paradigm tables.
//
// # Overview
//
// A paradigm table shows every inflected form of a word, arranged in labeled
// panes of rows and columns. Layouts are written in a small tab-separated
// language in which each inflection cell holds an analysis pattern such as
// "${lemma}+N+A+Sg". Filling a layout substitutes the lemma, asks a
// morphological generator for the surface forms of every analysis in one
// batch, and puts the forms back into the grid.
//
// The pkg directory is organized into four areas:
//
//  1. [paradigm] and [wordclass] - the layout language and its keys
//  2. [layout], [frequency] - resources loaded once at startup
//  3. [generator], [engine] - lookups and the fill itself
//  4. [render], [cache] - output and shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	*.layout.tsv files
//	         ↓
//	    [layout] package (parse every file into a Registry)
//	         ↓
//	    [engine] package (collect analyses, one generator batch, fill)
//	         ↓
//	    [render] package (terminal table, JSON or TSV)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/paradigms/pkg/engine"
//	    "github.com/matzehuels/paradigms/pkg/generator"
//	    "github.com/matzehuels/paradigms/pkg/layout"
//	    "github.com/matzehuels/paradigms/pkg/render"
//	    "github.com/matzehuels/paradigms/pkg/wordclass"
//	)
//
//	// 1. Load the layouts
//	reg, _ := layout.Load("layouts", layout.Options{})
//
//	// 2. Choose a generator
//	gen, _ := generator.NewCommand("hfst-optimized-lookup -q generator.hfstol", nil)
//
//	// 3. Fill
//	eng, _ := engine.New(engine.Config{Layouts: reg, Generator: gen})
//	result, _ := eng.Fill(context.Background(), engine.Request{
//	    Lemma:     "atim",
//	    WordClass: wordclass.NA,
//	    Size:      wordclass.Full,
//	})
//
//	// 4. Render
//	render.Write(os.Stdout, render.FormatText, result.Panes,
//	    render.WithParadigm("atim", wordclass.NA, wordclass.Full))
//
// # Main Packages
//
// [paradigm] - Cells, rows, panes and templates; the strict parser and its
// exact inverse; analysis traversal and the fill algorithm, including the
// expansion of multi-form cells into compound rows.
//
// [layout] - Loads a directory of layout files into an immutable registry
// keyed by word class and size, and checks layout directories.
//
// [generator] - The batch lookup contract with static, file, command and
// cache-backed implementations.
//
// [cache] - File, Redis and MongoDB storage for lookups and API responses.
//
// [errors] - Structured error codes shared by every package.
//
// [observability] - Hooks for fills, lookups, cache traffic and HTTP requests.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/paradigm/...           # Specific package
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB backends
//
// [paradigm]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/paradigm
// [wordclass]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/wordclass
// [layout]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/layout
// [frequency]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/frequency
// [generator]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/generator
// [engine]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/engine
// [render]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/paradigms/pkg/observability
package pkg
