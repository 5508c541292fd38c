package engine

import (
	"context"
	"sort"

	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/generator"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

// ExpandAnalyses returns the distinct analyses of the LINGUISTIC layout of wc
// with the NFC form of lemma substituted, sorted. Word classes without
// inflections have none, whatever the lemma.
func (e *Engine) ExpandAnalyses(lemma string, wc wordclass.WordClass) ([]string, error) {
	analyses, err := e.linguisticAnalyses(lemma, wc)
	if err != nil {
		return nil, err
	}
	out := generator.Dedupe(analyses)
	sort.Strings(out)
	return out, nil
}

// GenerateAnalysisString returns the analyses of the LINGUISTIC layout of wc
// in layout order, one per line, duplicates included. This is the input the
// generator expects on stdin. The lemma is normalized to NFC.
func (e *Engine) GenerateAnalysisString(lemma string, wc wordclass.WordClass) (string, error) {
	if err := checkWordClass(wc); err != nil {
		return "", err
	}
	if !wc.HasInflections() {
		return "", nil
	}
	if err := errors.ValidateLemma(lemma); err != nil {
		return "", err
	}
	lemma = NormalizeLemma(lemma)
	tmpl, err := e.layouts.Get(wc, wordclass.Linguistic)
	if err != nil {
		return "", err
	}
	return tmpl.GenerateAnalysisString(lemma)
}

// InflectAllWithAnalyses generates every analysis of the LINGUISTIC layout
// in one generator call. Every analysis is present in the result; its forms
// are sorted and distinct, and empty when the generator had none.
func (e *Engine) InflectAllWithAnalyses(ctx context.Context, lemma string, wc wordclass.WordClass) (map[string][]string, error) {
	analyses, err := e.ExpandAnalyses(lemma, wc)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(analyses))
	if len(analyses) == 0 {
		return out, nil
	}
	results, _, err := e.lookup(ctx, analyses)
	if err != nil {
		return nil, err
	}
	for _, a := range analyses {
		out[a] = generator.SortedForms(results[a])
	}
	return out, nil
}

// InflectAll returns every distinct form of lemma, sorted.
func (e *Engine) InflectAll(ctx context.Context, lemma string, wc wordclass.WordClass) ([]string, error) {
	byAnalysis, err := e.InflectAllWithAnalyses(ctx, lemma, wc)
	if err != nil {
		return nil, err
	}
	var forms []string
	for _, fs := range byAnalysis {
		forms = append(forms, fs...)
	}
	return generator.SortedForms(forms), nil
}

func (e *Engine) linguisticAnalyses(lemma string, wc wordclass.WordClass) ([]string, error) {
	if err := checkWordClass(wc); err != nil {
		return nil, err
	}
	if !wc.HasInflections() {
		return nil, nil
	}
	if err := errors.ValidateLemma(lemma); err != nil {
		return nil, err
	}
	lemma = NormalizeLemma(lemma)
	tmpl, err := e.layouts.Get(wc, wordclass.Linguistic)
	if err != nil {
		return nil, err
	}
	return tmpl.Analyses(lemma)
}

func checkWordClass(wc wordclass.WordClass) error {
	if !wc.Valid() {
		return errors.New(errors.ErrCodeInvalidWordClass, "unknown word class: %q", string(wc))
	}
	return nil
}
