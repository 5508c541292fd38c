package config

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paradigms/pkg/cache"
	"github.com/matzehuels/paradigms/pkg/engine"
	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/frequency"
	"github.com/matzehuels/paradigms/pkg/generator"
	"github.com/matzehuels/paradigms/pkg/layout"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

// LayoutNames returns the configured filename token table, or
// layout.DefaultNames() when none is configured.
func (c Config) LayoutNames() (layout.Names, error) {
	if len(c.Layouts.Names) == 0 {
		return layout.DefaultNames(), nil
	}
	names := make(layout.Names, len(c.Layouts.Names))
	for token, name := range c.Layouts.Names {
		wc, err := wordclass.Parse(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "layouts.names.%s", token)
		}
		names[token] = wc
	}
	return names, nil
}

// LoadLayouts loads the layout directory.
func (c Config) LoadLayouts(logger *log.Logger) (*layout.Registry, error) {
	names, err := c.LayoutNames()
	if err != nil {
		return nil, err
	}
	var wcs []wordclass.WordClass
	for _, name := range c.Layouts.WordClasses {
		wc, err := wordclass.Parse(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "layouts.word_classes")
		}
		wcs = append(wcs, wc)
	}
	return layout.Load(c.Layouts.Dir, layout.Options{Names: names, WordClasses: wcs, Logger: logger})
}

// LoadFrequency loads the frequency file. Without one every analysis has
// frequency zero.
func (c Config) LoadFrequency(logger *log.Logger) (frequency.Table, error) {
	if c.Frequency.File == "" {
		return frequency.New(nil), nil
	}
	return frequency.LoadFile(c.Frequency.File, logger)
}

// OpenCache connects to the configured cache backend. The caller must
// close it.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheFile, "":
		if c.Cache.Dir == "" {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(c.Cache.Dir)
	case CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Cache.Addr,
			Password: c.Cache.Password,
			DB:       c.Cache.DB,
		})
	case CacheMongo:
		return cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:      c.Cache.URI,
			Database: c.Cache.Database,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "cache: unknown backend %q", c.Cache.Backend)
	}
}

// NewGenerator builds the configured generator. When store is non-nil
// lookups go through it.
func (c Config) NewGenerator(store cache.Cache, logger *log.Logger) (generator.Generator, error) {
	logger = orDiscard(logger)
	var gen generator.Generator
	switch c.Generator.Kind {
	case GeneratorStatic:
		static, err := generator.LoadLookupFile(c.Generator.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded lookup file", "path", c.Generator.Path, "analyses", len(static))
		// A static table is already in memory.
		return static, nil
	case GeneratorCommand:
		cmd, err := generator.NewCommand(c.Generator.Command, logger)
		if err != nil {
			return nil, err
		}
		gen = cmd
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "generator: unknown kind %q", c.Generator.Kind)
	}
	if store == nil {
		return gen, nil
	}
	return generator.NewCached(gen, store, generator.CachedOptions{
		Keyer:  c.Keyer(),
		TTL:    c.Cache.TTL.Duration,
		Logger: logger,
	}), nil
}

// Keyer returns the cache key scheme, scoped to the configured namespace.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Namespace)
}

// NewEngine loads layouts and frequencies and wires them to gen.
func (c Config) NewEngine(gen generator.Generator, logger *log.Logger) (*engine.Engine, error) {
	logger = orDiscard(logger)
	layouts, err := c.LoadLayouts(logger)
	if err != nil {
		return nil, err
	}
	freq, err := c.LoadFrequency(logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded resources", "layouts", layouts.Len(), "frequencies", freq.Len())
	return engine.New(engine.Config{
		Layouts:   layouts,
		Frequency: freq,
		Generator: gen,
		Logger:    logger,
	})
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
