// Package cli implements the paradigms command-line interface.
//
// Commands:
//   - fill: fill a paradigm layout for a lemma and print it
//   - analyses: list the analyses a lemma's paradigm asks the generator for
//   - inflect: generate every form of a lemma
//   - layouts: list or check the layout directory
//   - browse: page through a filled paradigm interactively
//   - serve: serve paradigms over HTTP
//   - cache: manage the lookup cache
//
// Resources (layouts, generator, frequencies, cache) come from the config
// file, see internal/config; the persistent flags override it.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paradigms/internal/config"
	"github.com/matzehuels/paradigms/pkg/buildinfo"
	"github.com/matzehuels/paradigms/pkg/cache"
	"github.com/matzehuels/paradigms/pkg/engine"
	"github.com/matzehuels/paradigms/pkg/errors"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "paradigms"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Set by persistent flags.
	configPath string
	overrides  overrides
}

// overrides are the persistent flags that replace config file values.
type overrides struct {
	layouts   string
	names     map[string]string
	lookup    string
	command   string
	frequency string
	cacheDir  string
	noCache   bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level == log.DebugLevel {
		registerDebugHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Paradigms fills inflection tables for dictionary entries",
		Long:         `Paradigms fills paradigm layouts with the forms a morphological generator produces for a lemma, and prints them as tables, JSON or TSV.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "config file (default: "+config.DefaultPath()+")")
	pf.StringVar(&c.overrides.layouts, "layouts", "", "layout directory")
	pf.StringToStringVar(&c.overrides.names, "layout-name", nil, "layout filename token for a word class, e.g. noun-na=NA (repeatable)")
	pf.StringVar(&c.overrides.lookup, "lookup", "", "use a file of generator lookup output instead of running the generator")
	pf.StringVar(&c.overrides.command, "generator", "", "generator command, e.g. \"hfst-optimized-lookup -q generator.hfstol\"")
	pf.StringVar(&c.overrides.frequency, "frequency", "", "frequency file")
	pf.StringVar(&c.overrides.cacheDir, "cache-dir", "", "lookup cache directory")
	pf.BoolVar(&c.overrides.noCache, "no-cache", false, "disable the lookup cache")

	root.AddCommand(c.fillCommand())
	root.AddCommand(c.analysesCommand())
	root.AddCommand(c.inflectCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Resources
// =============================================================================

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return config.Config{}, err
	}

	o := c.overrides
	if o.layouts != "" {
		cfg.Layouts.Dir = o.layouts
	}
	if len(o.names) > 0 {
		cfg.Layouts.Names = o.names
	}
	switch {
	case o.lookup != "":
		cfg.Generator = config.Generator{Kind: config.GeneratorStatic, Path: o.lookup}
	case o.command != "":
		cfg.Generator = config.Generator{Kind: config.GeneratorCommand, Command: o.command}
	}
	if o.frequency != "" {
		cfg.Frequency.File = o.frequency
	}
	if o.cacheDir != "" {
		cfg.Cache.Backend = config.CacheFile
		cfg.Cache.Dir = o.cacheDir
	}
	if o.noCache {
		cfg.Cache.Backend = config.CacheNone
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("configuration", "layouts", cfg.Layouts.Dir, "generator", cfg.Generator.Kind, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// runtime is everything a command needs to fill paradigms. Close releases
// the cache.
type runtime struct {
	cfg    config.Config
	engine *engine.Engine
	cache  cache.Cache
}

func (r *runtime) Close() error {
	return r.cache.Close()
}

// newRuntime loads the configuration and builds the engine.
func (c *CLI) newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Generator.Kind == config.GeneratorCommand && cfg.Generator.Command == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no generator configured: set [generator] in the config file or pass --generator or --lookup")
	}
	store, err := cfg.OpenCache(ctx)
	if err != nil {
		return nil, err
	}
	gen, err := cfg.NewGenerator(store, c.Logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	eng, err := cfg.NewEngine(gen, c.Logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &runtime{cfg: cfg, engine: eng, cache: store}, nil
}

// =============================================================================
// Argument Helpers
// =============================================================================

// lemmaArgs parses the LEMMA WORDCLASS positional arguments.
func lemmaArgs(args []string) (string, wordclass.WordClass, error) {
	wc, err := wordclass.Parse(args[1])
	if err != nil {
		return "", "", err
	}
	return args[0], wc, nil
}

// completeWordClass completes the second positional argument.
func completeWordClass(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, len(wordclass.All))
	for i, wc := range wordclass.All {
		names[i] = wc.String()
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
