package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/branislavfamily/familysite/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "familysite.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Tree.Source != SourceStatic {
		t.Errorf("Tree.Source = %q, want static", cfg.Tree.Source)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORT", "")
	path := writeConfig(t, `
[server]
addr = "127.0.0.1:9000"
read_timeout = "5s"

[site]
base_url = "https://example.org"

[tree]
source = "file"
path = "family.yaml"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "1h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	// Unset keys keep their defaults.
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("WriteTimeout = %v, want default", cfg.Server.WriteTimeout)
	}
	if cfg.Site.BaseURL != "https://example.org" {
		t.Errorf("BaseURL = %q", cfg.Site.BaseURL)
	}
	if cfg.Tree.Path != "family.yaml" || cfg.Cache.TTL != time.Hour {
		t.Errorf("Tree = %+v, Cache = %+v", cfg.Tree, cfg.Cache)
	}
	if o := cfg.Cache.Options(); o.Backend != "redis" || o.RedisAddr != "localhost:6379" {
		t.Errorf("Options() = %+v", o)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[server]\naddr = \":7000\"\n")
	t.Setenv("FAMILYSITE_ADDR", ":7100")
	t.Setenv("FAMILYSITE_CACHE_TTL", "90m")
	t.Setenv("FAMILYSITE_CACHE_BACKEND", "none")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7100" {
		t.Errorf("Addr = %q, want env value", cfg.Server.Addr)
	}
	if cfg.Cache.TTL != 90*time.Minute || cfg.Cache.Backend != "none" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadPort(t *testing.T) {
	t.Setenv("PORT", "3000")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Server.Addr)
	}

	t.Setenv("PORT", "http")
	if _, err := Load(""); err == nil {
		t.Error("non-numeric PORT should fail")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("PORT", "")
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"unknown key", "[server]\nport = 1\n", errors.ErrCodeInvalidInput},
		{"bad toml", "[server\n", errors.ErrCodeInvalidInput},
		{"file without path", "[tree]\nsource = \"file\"\n", errors.ErrCodeInvalidInput},
		{"mongo without uri", "[tree]\nsource = \"mongo\"\n", errors.ErrCodeInvalidInput},
		{"unknown source", "[tree]\nsource = \"ftp\"\n", errors.ErrCodeInvalidInput},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", errors.ErrCodeInvalidInput},
		{"bad base url", "[site]\nbase_url = \"ftp://x\"\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
