// Package config loads the paradigms configuration file.
//
// The file is TOML. Every section is optional; missing values take the
// defaults from [Default]. A typical file looks like:
//
//	[layouts]
//	dir = "res/layouts"
//
//	[frequency]
//	file = "res/attested-wordforms.txt"
//
//	[generator]
//	kind = "command"
//	command = "hfst-optimized-lookup -q res/crk-normative-generator.hfstol"
//
//	[cache]
//	backend = "redis"
//	addr = "localhost:6379"
//	namespace = "crk:"
//
//	[server]
//	addr = ":8080"
//	cors_origins = ["https://itwewina.altlab.app"]
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/paradigms/pkg/errors"
)

const appName = "paradigms"

// Generator kinds.
const (
	GeneratorStatic  = "static"
	GeneratorCommand = "command"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheNone  = "none"
	CacheRedis = "redis"
	CacheMongo = "mongo"
)

// Config is the decoded configuration file.
type Config struct {
	Layouts   Layouts   `toml:"layouts"`
	Frequency Frequency `toml:"frequency"`
	Generator Generator `toml:"generator"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
}

// Layouts locates the layout directory.
type Layouts struct {
	Dir string `toml:"dir"`
	// Names maps filename tokens such as "noun-na" to word classes. When
	// empty the built-in table is used.
	Names map[string]string `toml:"names"`
	// WordClasses lists the word classes that must have a layout of every
	// size. When empty all inflecting word classes are required.
	WordClasses []string `toml:"word_classes"`
}

// Frequency locates the optional frequency resource.
type Frequency struct {
	File string `toml:"file"`
}

// Generator selects the morphological generator.
type Generator struct {
	// Kind is "static" (a file of lookup output) or "command" (an external
	// lookup program reading analyses on stdin).
	Kind    string `toml:"kind"`
	Path    string `toml:"path"`
	Command string `toml:"command"`
}

// Cache selects the lookup cache backend.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	URI      string   `toml:"uri"`
	Database string   `toml:"database"`
	TTL      Duration `toml:"ttl"`

	// Namespace prefixes every cache key, so several dictionaries can share
	// one Redis or MongoDB instance.
	Namespace string `toml:"namespace"`
}

// Server configures the HTTP API.
type Server struct {
	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Layouts:   Layouts{Dir: "layouts"},
		Generator: Generator{Kind: GeneratorCommand},
		Cache:     Cache{Backend: CacheFile, Dir: CacheDir()},
		Server:    Server{Addr: ":8080"},
	}
}

// Load reads the file at path on top of [Default]. Unknown keys are an
// error so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the file at [DefaultPath] if it exists and returns
// [Default] otherwise.
func LoadDefault() (Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// resolvePaths makes relative file paths relative to the config file.
func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Layouts.Dir, &c.Frequency.File, &c.Generator.Path, &c.Cache.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Validate checks that the selected generator and cache backend are known
// and have what they need.
func (c Config) Validate() error {
	switch c.Generator.Kind {
	case GeneratorStatic:
		if c.Generator.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "generator: kind %q requires path", c.Generator.Kind)
		}
	case GeneratorCommand:
		// An empty command is reported when the generator is built, so that
		// commands that never generate still work without one.
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "generator: unknown kind %q (must be one of: static, command)", c.Generator.Kind)
	}

	backends := []string{CacheFile, CacheNone, CacheRedis, CacheMongo}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache: unknown backend %q (must be one of: file, none, redis, mongo)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheMongo && c.Cache.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache: backend mongo requires uri")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache: negative ttl %s", c.Cache.TTL.Duration)
	}

	for token, name := range c.Layouts.Names {
		if token == "" || name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "layouts.names: empty entry %q = %q", token, name)
		}
	}
	return nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/paradigms/config.toml).
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/paradigms/).
func CacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}
