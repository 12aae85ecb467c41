// Package config loads familysite settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the TOML file, FAMILYSITE_*
// environment variables. Command-line flags are applied by the CLI on top.
//
//	[server]
//	addr = ":8080"
//
//	[site]
//	base_url = "https://branislavfamily.com"
//
//	[tree]
//	source = "file"          # static | file | mongo
//	path = "family.toml"
//	mongo_uri = "mongodb://localhost:27017"
//	family = "branislav"
//
//	[cache]
//	backend = "redis"        # none | memory | file | redis
//	redis_addr = "localhost:6379"
//	ttl = "24h"
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/branislavfamily/familysite/pkg/cache"
	"github.com/branislavfamily/familysite/pkg/content"
	"github.com/branislavfamily/familysite/pkg/errors"
)

// Tree source names.
const (
	SourceStatic = "static"
	SourceFile   = "file"
	SourceMongo  = "mongo"
)

// Config is the complete application configuration.
type Config struct {
	Server Server `toml:"server"`
	Site   Site   `toml:"site"`
	Tree   Tree   `toml:"tree"`
	Cache  Cache  `toml:"cache"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Site configures the public site metadata.
type Site struct {
	BaseURL string `toml:"base_url"`
}

// Tree selects where the family tree is loaded from.
type Tree struct {
	Source   string `toml:"source"`
	Path     string `toml:"path"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
	Family   string `toml:"family"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
	Prefix    string        `toml:"prefix"`
}

// Options converts the section to cache.Options.
func (c Cache) Options() cache.Options {
	return cache.Options{Backend: c.Backend, Dir: c.Dir, RedisAddr: c.RedisAddr}
}

// Default returns the built-in configuration: the sample tree served from
// memory on :8080.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Site:  Site{BaseURL: content.DefaultBaseURL},
		Tree:  Tree{Source: SourceStatic, Family: "branislav"},
		Cache: Cache{Backend: "memory", TTL: 24 * time.Hour},
	}
}

// Load reads path (if non-empty) over the defaults, then applies the
// environment. A missing file is an error only when path was given.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %v", path, undecoded)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Tree.Source {
	case SourceStatic:
	case SourceFile:
		if c.Tree.Path == "" {
			return errors.New(errors.ErrCodeInvalidInput, "tree.path is required for the file source")
		}
	case SourceMongo:
		if c.Tree.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "tree.mongo_uri is required for the mongo source")
		}
		if err := errors.ValidateID(c.Tree.Family); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "tree.family")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown tree source %q (valid: static, file, mongo)", c.Tree.Source)
	}

	switch c.Cache.Backend {
	case "", "none", "memory", "file":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}

	if err := errors.ValidateURL(c.Site.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "site.base_url")
	}
	return nil
}

// envPrefix prefixes every environment variable read by Load.
const envPrefix = "FAMILYSITE_"

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"ADDR":          &c.Server.Addr,
		"BASE_URL":      &c.Site.BaseURL,
		"TREE_SOURCE":   &c.Tree.Source,
		"TREE_PATH":     &c.Tree.Path,
		"MONGO_URI":     &c.Tree.MongoURI,
		"MONGO_DB":      &c.Tree.Database,
		"FAMILY":        &c.Tree.Family,
		"CACHE_BACKEND": &c.Cache.Backend,
		"CACHE_DIR":     &c.Cache.Dir,
		"REDIS_ADDR":    &c.Cache.RedisAddr,
		"CACHE_PREFIX":  &c.Cache.Prefix,
	}
	for name, dst := range strs {
		if v := os.Getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv(envPrefix + "CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%sCACHE_TTL", envPrefix)
		}
		c.Cache.TTL = d
	}
	// PORT is honoured for platforms that only inject a port number.
	if v := os.Getenv("PORT"); v != "" && os.Getenv(envPrefix+"ADDR") == "" {
		if _, err := strconv.Atoi(v); err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "PORT must be a number, got %q", v)
		}
		c.Server.Addr = fmt.Sprintf(":%s", v)
	}
	return nil
}
