package generator

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paradigms/pkg/cache"
	"github.com/matzehuels/paradigms/pkg/observability"
)

// Cached serves lookups from a cache and forwards only the misses to the
// wrapped generator, in a single batch. Analyses without forms are cached
// too, so unknown analyses are not retried until their entry expires.
type Cached struct {
	inner  Generator
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// CachedOptions configures [NewCached].
type CachedOptions struct {
	Keyer  cache.Keyer   // defaults to cache.NewDefaultKeyer()
	TTL    time.Duration // defaults to cache.TTLLookup
	Logger *log.Logger
}

// NewCached wraps inner with c. A nil cache disables caching.
func NewCached(inner Generator, c cache.Cache, opts CachedOptions) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.TTL == 0 {
		opts.TTL = cache.TTLLookup
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Cached{inner: inner, cache: c, keyer: opts.Keyer, ttl: opts.TTL, logger: opts.Logger}
}

// Name returns the wrapped generator's name.
func (g *Cached) Name() string { return NameOf(g.inner) }

// BulkLookup implements [Generator]. Cache failures are logged and treated
// as misses.
func (g *Cached) BulkLookup(ctx context.Context, analyses []string) (map[string][]string, error) {
	name := g.Name()
	hooks := observability.Cache()

	unique := Dedupe(analyses)
	out := make(map[string][]string, len(unique))
	var misses []string
	for _, a := range unique {
		data, ok, err := g.cache.Get(ctx, g.keyer.LookupKey(name, a))
		if err != nil {
			g.logger.Warn("lookup cache read failed", "analysis", a, "err", err)
		}
		var forms []string
		if ok && json.Unmarshal(data, &forms) == nil {
			hooks.OnCacheHit(ctx, "lookup")
			if len(forms) > 0 {
				out[a] = forms
			}
			continue
		}
		hooks.OnCacheMiss(ctx, "lookup")
		misses = append(misses, a)
	}

	if len(misses) == 0 {
		g.logger.Debug("lookup served from cache", "analyses", len(out))
		return out, nil
	}

	fresh, err := g.inner.BulkLookup(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, a := range misses {
		forms := fresh[a]
		if len(forms) > 0 {
			out[a] = forms
		}
		if forms == nil {
			forms = []string{}
		}
		data, err := json.Marshal(forms)
		if err != nil {
			continue
		}
		if err := g.cache.Set(ctx, g.keyer.LookupKey(name, a), data, g.ttl); err != nil {
			g.logger.Warn("lookup cache write failed", "analysis", a, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, "lookup", len(data))
	}
	g.logger.Debug("lookup cache", "hits", len(unique)-len(misses), "misses", len(misses))
	return out, nil
}
