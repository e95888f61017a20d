package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/gridlock/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
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
[log]
level = "debug"

[cache]
backend = "redis"
ttl = "72h"

[redis]
addr = "cache.internal:6380"
db = 2

[server]
addr = "127.0.0.1:9000"
write_timeout = "1m"

[bench]
workers = 3
solve = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if level, _ := cfg.LogLevel(); level != log.DebugLevel {
		t.Errorf("LogLevel() = %v, want debug", level)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL.Duration != 72*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Redis.Addr != "cache.internal:6380" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Redis.Prefix != "gridlock:" {
		t.Errorf("Redis.Prefix = %q, want default", cfg.Redis.Prefix)
	}
	if cfg.Server.WriteTimeout.Duration != time.Minute {
		t.Errorf("Server.WriteTimeout = %v, want 1m", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ReadTimeout.Duration != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want default 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Bench.Workers != 3 || cfg.Bench.Solve {
		t.Errorf("Bench = %+v", cfg.Bench)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[cache]\nbakend = \"file\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"bad backend", "[cache]\nbackend = \"s3\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"no workers", "[bench]\nworkers = 0\n"},
		{"syntax", "[cache\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() of a missing explicit file should fail")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") without a default file error: %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Cache.Backend = %q, want default", cfg.Cache.Backend)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "gridlock"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gridlock", "config.toml"), []byte("[cache]\nbackend = \"none\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90s")); err != nil {
		t.Fatal(err)
	}
	text, _ := d.MarshalText()
	if string(text) != "1m30s" {
		t.Errorf("MarshalText() = %q, want 1m30s", text)
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load(example) error: %v", err)
	}
	if cfg.Cache.TTL.Duration != 168*time.Hour || cfg.Bench.Workers != 4 {
		t.Errorf("example config = %+v", cfg)
	}
}
