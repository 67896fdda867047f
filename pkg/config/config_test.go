package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/venntower/pkg/cache"
	"github.com/matzehuels/venntower/pkg/errors"
	"github.com/matzehuels/venntower/pkg/pipeline"
	"github.com/matzehuels/venntower/pkg/store"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := write(t, `
[pipeline]
decomposition = "innermost"
formats = ["text", "dot"]

[cache]
backend = "none"
ttl = "2h"

[server]
addr = "127.0.0.1:9000"
request_timeout = "5s"

[store]
backend = "file"
dir = "/tmp/runs"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Pipeline = pipeline.Options{Decomposition: "innermost", Formats: []string{"text", "dot"}}
	want.Cache.Backend = BackendNone
	want.Cache.TTL = 2 * time.Hour
	want.Server = ServerConfig{Addr: "127.0.0.1:9000", RequestTimeout: 5 * time.Second}
	want.Store.Backend = BackendFile
	want.Store.Dir = "/tmp/runs"

	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(pipeline.Options{})); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if cfg.Pipeline.Recomposition != "" {
		t.Error("Validate rewrote the loaded options")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[cache]\nbackend = \"file\"\ncolour = \"red\"\n"},
		{"unknown cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n"},
		{"bad strategy", "[pipeline]\nrecomposition = \"triply-pierced\"\n"},
		{"bad format", "[pipeline]\nformats = [\"gif\"]\n"},
		{"syntax", "[pipeline\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(write(t, tt.content)); err == nil {
				t.Error("Load succeeded")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file: got %v", err)
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg, cmpopts.IgnoreUnexported(pipeline.Options{})); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	cfg := Default()
	cfg.Cache.Dir = t.TempDir()
	c, err := cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := c.(*cache.FileCache); !ok || fc.Dir() != cfg.Cache.Dir {
		t.Errorf("OpenCache = %T", c)
	}

	cfg.Cache.Backend = BackendNone
	if c, _ := cfg.OpenCache(ctx); c == nil {
		t.Error("nil cache")
	}

	s, err := cfg.OpenStore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Errorf("OpenStore = %T", s)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	dir, err := CacheDir()
	if err != nil || dir != "/xdg/cache/venntower" {
		t.Errorf("CacheDir() = %q, %v", dir, err)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/test")
	for in, want := range map[string]string{
		"~/runs":    "/home/test/runs",
		"/abs/runs": "/abs/runs",
		"":          "",
	} {
		if got := expandHome(in); got != want {
			t.Errorf("expandHome(%q) = %q, want %q", in, got, want)
		}
	}
}
