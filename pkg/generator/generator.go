// Package generator defines the contract with the morphological generator:
// a batch operation from analysis strings to the surface forms that realize
// them.
//
// The generator is an external collaborator. This package provides the
// interface, adapters for the hfst toolchain, a cache-backed decorator, and
// a call-counting wrapper used to verify batching.
package generator

import (
	"context"
	"sort"
)

// Generator maps analyses to surface forms in one batch.
//
// The result has an entry for every analysis the generator could realize;
// an absent key or an empty slice both mean "no form". Forms may come back
// in any order and may repeat.
type Generator interface {
	BulkLookup(ctx context.Context, analyses []string) (map[string][]string, error)
}

// Named is implemented by generators that identify themselves in cache keys
// and logs.
type Named interface {
	Name() string
}

// NameOf returns g's name, or "generator" when it has none.
func NameOf(g Generator) string {
	if n, ok := g.(Named); ok {
		return n.Name()
	}
	return "generator"
}

// Func adapts a function to [Generator].
type Func func(ctx context.Context, analyses []string) (map[string][]string, error)

// BulkLookup calls f.
func (f Func) BulkLookup(ctx context.Context, analyses []string) (map[string][]string, error) {
	return f(ctx, analyses)
}

// Static is an in-memory generator backed by a fixed table.
type Static map[string][]string

// Name returns "static".
func (Static) Name() string { return "static" }

// BulkLookup returns copies of the table entries for analyses.
func (s Static) BulkLookup(ctx context.Context, analyses []string) (map[string][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(analyses))
	for _, a := range analyses {
		if forms, ok := s[a]; ok {
			out[a] = append([]string(nil), forms...)
		}
	}
	return out, nil
}

// Dedupe returns the distinct analyses in first-seen order.
func Dedupe(analyses []string) []string {
	seen := make(map[string]bool, len(analyses))
	out := make([]string, 0, len(analyses))
	for _, a := range analyses {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// SortedForms returns the distinct forms of forms in lexical order.
func SortedForms(forms []string) []string {
	out := Dedupe(forms)
	sort.Strings(out)
	return out
}
