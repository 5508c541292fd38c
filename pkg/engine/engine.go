// Package engine fills paradigm layouts for a lemma.
//
// An [Engine] combines the layout registry, the frequency table and a
// morphological generator. Filling a paradigm takes three steps:
//
//  1. Collect every analysis pattern of the layout and substitute the lemma.
//  2. Send all distinct analyses to the generator in one batch.
//  3. Substitute the results into fresh panes, annotating every form with
//     the frequency of its analysis.
//
// Usage:
//
//	eng, err := engine.New(engine.Config{
//	    Layouts:   registry,
//	    Frequency: freq,
//	    Generator: gen,
//	    Logger:    logger,
//	})
//	panes, err := eng.FillParadigm(ctx, "atim", wordclass.NA, wordclass.Full, paradigm.JoinForms)
package engine

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/frequency"
	"github.com/matzehuels/paradigms/pkg/generator"
	"github.com/matzehuels/paradigms/pkg/layout"
	"github.com/matzehuels/paradigms/pkg/observability"
	"github.com/matzehuels/paradigms/pkg/paradigm"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

// Config holds the engine's collaborators.
type Config struct {
	Layouts   *layout.Registry
	Frequency frequency.Table
	Generator generator.Generator
	Logger    *log.Logger
}

// Engine is safe for concurrent use; nothing it holds is modified after New.
type Engine struct {
	layouts   *layout.Registry
	frequency frequency.Table
	generator generator.Generator
	logger    *log.Logger
}

// New validates cfg and returns an engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Layouts == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "engine needs a layout registry")
	}
	if cfg.Generator == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "engine needs a generator")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Engine{
		layouts:   cfg.Layouts,
		frequency: cfg.Frequency,
		generator: cfg.Generator,
		logger:    cfg.Logger,
	}, nil
}

// Layouts returns the registry the engine fills from.
func (e *Engine) Layouts() *layout.Registry { return e.layouts }

// Request describes one paradigm to fill.
type Request struct {
	Lemma     string
	WordClass wordclass.WordClass
	Size      wordclass.Size
	Mode      paradigm.FillMode
}

// NormalizeLemma returns lemma in Unicode normalization form C, so "ô"
// typed as o plus a combining circumflex yields the same analyses as the
// precomposed letter.
func NormalizeLemma(lemma string) string {
	return norm.NFC.String(lemma)
}

// Validate checks the lemma and the enumerations. A request for a word class
// without inflections is always valid, whatever its lemma and size.
func (r Request) Validate() error {
	if err := checkWordClass(r.WordClass); err != nil {
		return err
	}
	if !r.WordClass.HasInflections() {
		return nil
	}
	if err := errors.ValidateLemma(r.Lemma); err != nil {
		return err
	}
	if !r.Size.Valid() {
		return errors.New(errors.ErrCodeInvalidSize, "unknown paradigm size: %d", int(r.Size))
	}
	if r.Mode != paradigm.JoinForms && r.Mode != paradigm.ExpandForms {
		return errors.New(errors.ErrCodeInvalidInput, "unknown fill mode: %v", r.Mode)
	}
	return nil
}

// Result is a filled paradigm with statistics about how it was produced.
type Result struct {
	Request Request
	Panes   []paradigm.Pane
	Stats   Stats
}

// Stats describes one fill.
type Stats struct {
	Analyses   int           // distinct analyses sent to the generator
	Resolved   int           // analyses that produced at least one form
	LookupTime time.Duration // time spent in the generator
	Duration   time.Duration // total time
}

// Fill fills the layout for req. Word classes without inflections yield no
// panes and no generator call. Otherwise the generator is called exactly
// once, unless the layout has no analysis cells at all. The lemma is
// normalized to NFC first, so analyses and Result.Request carry that form.
func (e *Engine) Fill(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Lemma = NormalizeLemma(req.Lemma)
	start := time.Now()
	hooks := observability.Fill()
	hooks.OnFillStart(ctx, req.Lemma, req.WordClass.String(), req.Size.String())

	result, err := e.fill(ctx, req)
	result.Stats.Duration = time.Since(start)
	hooks.OnFillComplete(ctx, req.Lemma, req.WordClass.String(), req.Size.String(), result.Stats.Analyses, result.Stats.Duration, err)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("filled paradigm",
		"lemma", req.Lemma,
		"wc", req.WordClass,
		"size", req.Size,
		"analyses", result.Stats.Analyses,
		"resolved", result.Stats.Resolved,
		"duration", result.Stats.Duration)
	return result, nil
}

func (e *Engine) fill(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Request: req, Panes: []paradigm.Pane{}}
	if !req.WordClass.HasInflections() {
		return result, nil
	}

	tmpl, err := e.layouts.Get(req.WordClass, req.Size)
	if err != nil {
		return result, err
	}
	cells, err := tmpl.InflectionCells()
	if err != nil {
		return result, err
	}

	patterns := make(map[string]string)
	var analyses []string
	for _, c := range cells {
		if !c.HasAnalysis() {
			continue
		}
		if _, ok := patterns[c.Analysis]; ok {
			continue
		}
		analysis := c.ConcatAnalysis(req.Lemma)
		patterns[c.Analysis] = analysis
		analyses = append(analyses, analysis)
	}
	analyses = generator.Dedupe(analyses)
	result.Stats.Analyses = len(analyses)

	var results map[string][]string
	if len(analyses) > 0 {
		results, result.Stats.LookupTime, err = e.lookup(ctx, analyses)
		if err != nil {
			return result, err
		}
	}

	res := make(paradigm.Resolutions, len(patterns))
	for pattern, analysis := range patterns {
		res[pattern] = paradigm.Resolution{
			Analysis:  analysis,
			Forms:     results[analysis],
			Frequency: e.frequency.Get(analysis),
		}
	}
	for _, a := range analyses {
		if len(results[a]) > 0 {
			result.Stats.Resolved++
		}
	}

	panes, err := tmpl.Fill(res, req.Mode)
	if err != nil {
		return result, err
	}
	result.Panes = panes
	return result, nil
}

// FillParadigm fills the (wc, size) layout for lemma and returns fresh
// panes. Analyses are generated from the NFC form of lemma; see
// [Engine.Fill].
func (e *Engine) FillParadigm(ctx context.Context, lemma string, wc wordclass.WordClass, size wordclass.Size, mode paradigm.FillMode) ([]paradigm.Pane, error) {
	result, err := e.Fill(ctx, Request{Lemma: lemma, WordClass: wc, Size: size, Mode: mode})
	if err != nil {
		return nil, err
	}
	return result.Panes, nil
}

// lookup performs the single generator call of a request.
func (e *Engine) lookup(ctx context.Context, analyses []string) (map[string][]string, time.Duration, error) {
	start := time.Now()
	results, err := e.generator.BulkLookup(ctx, analyses)
	elapsed := time.Since(start)
	observability.Lookup().OnBulkLookup(ctx, generator.NameOf(e.generator), len(analyses), elapsed, err)
	if err != nil {
		return nil, elapsed, wrapGeneratorError(err)
	}
	e.logger.Debug("bulk lookup", "generator", generator.NameOf(e.generator), "analyses", len(analyses), "duration", elapsed)
	return results, elapsed, nil
}

func wrapGeneratorError(err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeGenerator, err, "generator lookup failed")
}
