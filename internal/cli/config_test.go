package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[graph]
layout = "layered"
step_x = 80

[physics]
enabled = false

[locale]
add_node = "Ajouter un lieu"

[server]
listen = ":9000"
resolve_timeout = "30s"

[cache]
backend = "redis"
redis_addr = "cache:6379"
scope = "staging:"

[source]
backend = "mongo"
database = "transit"
`)

	cfg, err := loadConfig(path, log.New(io.Discard))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	checks := []struct {
		name      string
		got, want any
	}{
		{"layout", cfg.Graph.Layout, "layered"},
		{"step x", cfg.Graph.StepX, 80.0},
		{"step y keeps default", cfg.Graph.StepY, DefaultConfig().Graph.StepY},
		{"physics", cfg.Physics.Enabled, false},
		{"locale", cfg.Locale.AddNode, "Ajouter un lieu"},
		{"listen", cfg.Server.Listen, ":9000"},
		{"resolve timeout", cfg.Server.ResolveTimeout, 30 * time.Second},
		{"cache backend", cfg.Cache.Backend, "redis"},
		{"redis addr", cfg.Cache.RedisAddr, "cache:6379"},
		{"scope", cfg.Cache.Scope, "staging:"},
		{"source backend", cfg.Source.Backend, "mongo"},
		{"database", cfg.Source.Database, "transit"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	opts := cfg.buildOptions()
	if opts.Layout != "layered" || opts.StepX != 80 {
		t.Errorf("buildOptions() = %+v", opts)
	}
	if nc := cfg.networkConfig(); nc.Locale.AddNode != "Ajouter un lieu" {
		t.Errorf("networkConfig() locale = %+v", nc.Locale)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("", log.New(io.Discard))
	if err != nil {
		t.Fatalf("loadConfig with no file: %v", err)
	}
	if cfg.Server.Listen != DefaultConfig().Server.Listen {
		t.Errorf("defaults not applied: %+v", cfg.Server)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"), log.New(io.Discard)); err == nil {
		t.Error("explicit missing config should fail")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "[graph\nlayout = ")
	if _, err := loadConfig(path, log.New(io.Discard)); err == nil {
		t.Error("malformed config should fail")
	}
}
