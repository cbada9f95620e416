// Package config loads the stltree configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/stltree/config.toml
// (falling back to ~/.config/stltree/config.toml). All keys are optional:
//
//	[render]
//	format = "tex"
//	standalone = true
//	libraries = ["arrows", "shapes"]
//
//	[cache]
//	backend = "file"        # file | redis | none
//	ttl = "168h"
//	dir = ""                # default: $XDG_CACHE_HOME/stltree
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	max_body_bytes = 1048576
//	request_timeout = "30s"
//
//	[compile]
//	command = "pdflatex -interaction=nonstopmode"
//
// Unknown keys are rejected so that typos do not go unnoticed.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stltree/pkg/cache"
	"github.com/matzehuels/stltree/pkg/errors"
	"github.com/matzehuels/stltree/pkg/pipeline"
)

const appName = "stltree"

// EnvPath names an environment variable that overrides the config path.
const EnvPath = "STLTREE_CONFIG"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration.
type Config struct {
	Render  Render  `toml:"render"`
	Cache   Cache   `toml:"cache"`
	Server  Server  `toml:"server"`
	Compile Compile `toml:"compile"`
}

// Render holds defaults for the render command.
type Render struct {
	Format     string   `toml:"format"`
	Standalone bool     `toml:"standalone"`
	Libraries  []string `toml:"libraries"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend  string        `toml:"backend"`
	TTL      time.Duration `toml:"ttl"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
}

// Server configures the HTTP server.
type Server struct {
	Addr           string        `toml:"addr"`
	MaxBodyBytes   int64         `toml:"max_body_bytes"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// Compile configures the typesetting hand-off.
type Compile struct {
	Command string `toml:"command"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: Render{
			Format:     pipeline.DefaultFormat,
			Standalone: true,
		},
		Cache: Cache{
			Backend: BackendFile,
			TTL:     cache.DefaultTTL,
		},
		Server: Server{
			Addr:           ":8080",
			MaxBodyBytes:   1 << 20,
			RequestTimeout: 30 * time.Second,
		},
		Compile: Compile{
			Command: "pdflatex -interaction=nonstopmode",
		},
	}
}

// DefaultPath returns the config file location, honoring $STLTREE_CONFIG
// and $XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// means [DefaultPath], and a missing file at the default path is not an
// error. A missing file at an explicit path is.
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
		if stderrors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return Default(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field requirements.
func (c Config) Validate() error {
	if err := pipeline.ValidateFormat(c.Render.Format); err != nil {
		return err
	}
	if err := errors.ValidateLibraries(c.Render.Libraries); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	if c.Server.RequestTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout must not be negative")
	}
	return nil
}

// CacheDir returns the configured cache directory or the per-user default.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
