// Package config loads the venntower configuration file.
//
// The file is TOML and every section is optional:
//
//	[pipeline]
//	decomposition = "pierced-first"
//	recomposition = "doubly-pierced"
//	formats = ["json"]
//
//	[cache]
//	backend = "file"          # file, redis or none
//	dir = "~/.cache/venntower"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	request_timeout = "30s"
//
//	[store]
//	backend = "memory"        # memory, file or mongo
//	dir = "~/.local/share/venntower/runs"
//	mongo_uri = "mongodb://localhost:27017"
//	database = "venntower"
//	ttl = "720h"
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/venntower/pkg/cache"
	"github.com/matzehuels/venntower/pkg/errors"
	"github.com/matzehuels/venntower/pkg/pipeline"
	"github.com/matzehuels/venntower/pkg/store"
)

const appName = "venntower"

// Backend names.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// Config is the whole configuration file.
type Config struct {
	Pipeline pipeline.Options `toml:"pipeline"`
	Cache    CacheConfig      `toml:"cache"`
	Server   ServerConfig     `toml:"server"`
	Store    StoreConfig      `toml:"store"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Addr           string        `toml:"addr"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// StoreConfig selects where runs are persisted.
type StoreConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	MongoURI string        `toml:"mongo_uri"`
	Database string        `toml:"database"`
	TTL      time.Duration `toml:"ttl"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     cache.TTLArtifact,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Store: StoreConfig{
			Backend:  BackendMemory,
			Database: store.DefaultDatabase,
			TTL:      store.DefaultTTL,
		},
	}
}

// DefaultPath returns the XDG config file location
// (~/.config/venntower/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the XDG cache directory (~/.cache/venntower/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path over the defaults. An empty path means
// DefaultPath, which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backends, strategies and formats.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend: unknown backend %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}

	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "store.backend: unknown backend %q (must be one of: memory, file, mongo)", c.Store.Backend)
	}
	if c.Store.Backend == BackendMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store.mongo_uri is required for the mongo backend")
	}

	// Validate a copy so the file's values stay as written.
	opts := c.Pipeline
	return opts.ValidateAndSetDefaults()
}

// PipelineOptions returns a fresh copy of the configured pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Decomposition: c.Pipeline.Decomposition,
		Recomposition: c.Pipeline.Recomposition,
		Formats:       append([]string(nil), c.Pipeline.Formats...),
		Detailed:      c.Pipeline.Detailed,
	}
}

// OpenCache opens the configured cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		url := c.Cache.RedisAddr
		if !strings.Contains(url, "://") {
			url = "redis://" + url
		}
		return cache.NewRedisCache(ctx, url)
	default:
		dir := expandHome(c.Cache.Dir)
		if dir == "" {
			d, err := CacheDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve cache dir")
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// OpenStore opens the configured run store.
func (c *Config) OpenStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case BackendMongo:
		ms, err := store.NewMongoStore(ctx, c.Store.MongoURI, c.Store.Database)
		if err != nil {
			return nil, err
		}
		return ms, nil
	case BackendFile:
		fs, err := store.NewFileStore(expandHome(c.Store.Dir))
		if err != nil {
			return nil, err
		}
		return fs, nil
	default:
		return store.NewMemoryStore(), nil
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
