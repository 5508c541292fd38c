package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/matzehuels/paradigms/pkg/engine"
	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/generator"
	"github.com/matzehuels/paradigms/pkg/observability"
	"github.com/matzehuels/paradigms/pkg/paradigm"
	"github.com/matzehuels/paradigms/pkg/render"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

const (
	contentTypeJSON = "application/json"
	contentTypeTSV  = "text/tab-separated-values; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// response is a rendered body, as stored in the response cache.
type response struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

func jsonResponse(v any) (response, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return response{}, errors.Wrap(errors.ErrCodeInternal, err, "encode response")
	}
	return response{ContentType: contentTypeJSON, Body: buf.Bytes()}, nil
}

// cached serves h through the response cache. Only successful responses are
// stored. Cache failures are logged and otherwise ignored.
func (s *Server) cached(h func(r *http.Request) (response, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hooks := observability.Cache()

		params := make(map[string]string)
		for k, v := range r.URL.Query() {
			params[k] = strings.Join(v, ",")
		}
		key := s.keyer.ResponseKey(r.URL.Path, params)

		if data, ok, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("response cache read failed", "err", err)
		} else if ok {
			var resp response
			if err := json.Unmarshal(data, &resp); err == nil {
				hooks.OnCacheHit(ctx, "response")
				write(w, resp, "HIT")
				return
			}
		}
		hooks.OnCacheMiss(ctx, "response")

		resp, err := h(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
				s.logger.Warn("response cache write failed", "err", err)
			} else {
				hooks.OnCacheSet(ctx, "response", len(data))
			}
		}
		write(w, resp, "MISS")
	}
}

func write(w http.ResponseWriter, resp response, cacheStatus string) {
	w.Header().Set("Content-Type", resp.ContentType)
	w.Header().Set(headerCache, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Body)
}

type healthBody struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Layouts int    `json:"layouts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{
		Status:  "ok",
		Version: s.version,
		Layouts: s.engine.Layouts().Len(),
	})
}

type layoutBody struct {
	WordClass string `json:"word_class"`
	Size      string `json:"size"`
	Source    string `json:"source,omitempty"`
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	reg := s.engine.Layouts()
	keys := reg.Keys()
	out := make([]layoutBody, len(keys))
	for i, k := range keys {
		out[i] = layoutBody{WordClass: k.WordClass.String(), Size: k.Size.String(), Source: reg.Source(k)}
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": out})
}

type paradigmBody struct {
	render.Document
	Analyses int `json:"analyses"`
	Resolved int `json:"resolved"`
}

func (s *Server) handleParadigm(r *http.Request) (response, error) {
	q := r.URL.Query()
	lemma, wc, err := lemmaAndClass(r)
	if err != nil {
		return response{}, err
	}
	size := wordclass.Full
	if v := q.Get("size"); v != "" {
		if size, err = wordclass.ParseSize(v); err != nil {
			return response{}, err
		}
	}
	mode, err := paradigm.ParseFillMode(q.Get("mode"))
	if err != nil {
		return response{}, err
	}
	format := render.FormatJSON
	if v := q.Get("format"); v != "" {
		if format, err = render.ParseFormat(v); err != nil {
			return response{}, err
		}
	}

	result, err := s.engine.Fill(r.Context(), engine.Request{Lemma: lemma, WordClass: wc, Size: size, Mode: mode})
	if err != nil {
		return response{}, err
	}
	meta := render.WithParadigm(lemma, wc, size)

	switch format {
	case render.FormatJSON:
		return jsonResponse(paradigmBody{
			Document: render.NewDocument(result.Panes, meta),
			Analyses: result.Stats.Analyses,
			Resolved: result.Stats.Resolved,
		})
	case render.FormatTSV:
		return response{ContentType: contentTypeTSV, Body: []byte(render.TSV(result.Panes))}, nil
	default:
		return response{ContentType: contentTypeText, Body: []byte(render.Text(result.Panes, meta))}, nil
	}
}

type analysesBody struct {
	Lemma     string   `json:"lemma"`
	WordClass string   `json:"word_class"`
	Analyses  []string `json:"analyses"`
}

func (s *Server) handleAnalyses(r *http.Request) (response, error) {
	lemma, wc, err := lemmaAndClass(r)
	if err != nil {
		return response{}, err
	}
	analyses, err := s.engine.ExpandAnalyses(lemma, wc)
	if err != nil {
		return response{}, err
	}
	if analyses == nil {
		analyses = []string{}
	}
	return jsonResponse(analysesBody{Lemma: lemma, WordClass: wc.String(), Analyses: analyses})
}

type inflectionsBody struct {
	Lemma      string              `json:"lemma"`
	WordClass  string              `json:"word_class"`
	Forms      []string            `json:"forms"`
	ByAnalysis map[string][]string `json:"by_analysis"`
}

func (s *Server) handleInflections(r *http.Request) (response, error) {
	lemma, wc, err := lemmaAndClass(r)
	if err != nil {
		return response{}, err
	}
	byAnalysis, err := s.engine.InflectAllWithAnalyses(r.Context(), lemma, wc)
	if err != nil {
		return response{}, err
	}
	var forms []string
	for _, fs := range byAnalysis {
		forms = append(forms, fs...)
	}
	forms = generator.SortedForms(forms)
	if forms == nil {
		forms = []string{}
	}
	for a, fs := range byAnalysis {
		if fs == nil {
			byAnalysis[a] = []string{}
		}
	}
	return jsonResponse(inflectionsBody{Lemma: lemma, WordClass: wc.String(), Forms: forms, ByAnalysis: byAnalysis})
}

func lemmaAndClass(r *http.Request) (string, wordclass.WordClass, error) {
	q := r.URL.Query()
	lemma := q.Get("lemma")
	if lemma == "" {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "missing query parameter: lemma")
	}
	if q.Get("wc") == "" {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "missing query parameter: wc (one of: %s)", wordClassNames())
	}
	wc, err := wordclass.Parse(q.Get("wc"))
	if err != nil {
		return "", "", err
	}
	return lemma, wc, nil
}

func wordClassNames() string {
	names := make([]string, len(wordclass.All))
	for i, wc := range wordclass.All {
		names[i] = wc.String()
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
