package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paradigms/pkg/observability"
)

var registerOnce sync.Once

// registerDebugHooks logs fill, lookup and cache events at debug level.
func registerDebugHooks(logger *log.Logger) {
	registerOnce.Do(func() {
		h := debugHooks{logger: logger.WithPrefix("hooks")}
		observability.SetFillHooks(h)
		observability.SetLookupHooks(h)
		observability.SetCacheHooks(h)
	})
}

// debugHooks implements the observability hook interfaces by logging.
type debugHooks struct {
	logger *log.Logger
}

func (h debugHooks) OnFillStart(ctx context.Context, lemma, wordClass, size string) {
	h.logger.Debug("fill start", "lemma", lemma, "wc", wordClass, "size", size)
}

func (h debugHooks) OnFillComplete(ctx context.Context, lemma, wordClass, size string, analyses int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fill failed", "lemma", lemma, "wc", wordClass, "size", size, "err", err)
		return
	}
	h.logger.Debug("fill complete", "lemma", lemma, "analyses", analyses, "duration", duration.Round(time.Microsecond))
}

func (h debugHooks) OnBulkLookup(ctx context.Context, generator string, analyses int, duration time.Duration, err error) {
	h.logger.Debug("bulk lookup", "generator", generator, "analyses", analyses, "duration", duration.Round(time.Microsecond), "err", err)
}

func (h debugHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
