package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stltree/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[render]
standalone = false
libraries = ["arrows", "shapes.geometric"]

[cache]
backend = "redis"
ttl = "1h"
redis_url = "redis://cache:6379/1"

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Standalone {
		t.Error("Render.Standalone = true, want false")
	}
	if !reflect.DeepEqual(cfg.Render.Libraries, []string{"arrows", "shapes.geometric"}) {
		t.Errorf("Render.Libraries = %v", cfg.Render.Libraries)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL != time.Hour || cfg.Cache.RedisURL != "redis://cache:6379/1" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	// Absent keys keep their defaults.
	if cfg.Render.Format != "tex" || cfg.Server.MaxBodyBytes != 1<<20 || cfg.Compile.Command == "" {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[render\n", "parse config"},
		{"unknown key", "[render]\nstandalon = true\n", "unknown keys: render.standalon"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", "cache.backend"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", "redis_url is required"},
		{"bad library", "[render]\nlibraries = [\"a}b\"]\n", "library"},
		{"bad format", "[render]\nformat = \"html\"\n", "invalid format"},
		{"zero body", "[server]\nmax_body_bytes = 0\n", "max_body_bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(explicit missing) error = %v, want FILE_NOT_FOUND", err)
	}

	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(default missing) error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(default missing) = %+v, want defaults", cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got, _ := DefaultPath(); got != filepath.Join("/xdg", "stltree", "config.toml") {
		t.Errorf("DefaultPath() = %q", got)
	}
	t.Setenv(EnvPath, "/etc/stltree.toml")
	if got, _ := DefaultPath(); got != "/etc/stltree.toml" {
		t.Errorf("DefaultPath() with %s = %q", EnvPath, got)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/custom"
	if got, _ := cfg.CacheDir(); got != "/tmp/custom" {
		t.Errorf("CacheDir() = %q", got)
	}
}
