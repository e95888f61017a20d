// Package config loads gridlock's TOML configuration file.
//
// The file is optional. Missing sections and keys keep their defaults, and
// unknown keys are rejected so typos do not silently fall back to defaults.
//
//	[log]
//	level = "debug"
//
//	[cache]
//	backend = "redis"   # file, redis, or none
//	ttl = "72h"
//
//	[redis]
//	addr = "localhost:6379"
//	prefix = "gridlock:"
//
//	[server]
//	addr = ":8080"
//	write_timeout = "30s"
//
//	[bench]
//	workers = 4
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/gridlock/pkg/errors"
)

const appName = "gridlock"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete configuration file.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Server ServerConfig `toml:"server"`
	Bench  BenchConfig  `toml:"bench"`
}

// LogConfig controls the default log level. --verbose overrides it.
type LogConfig struct {
	Level string `toml:"level"`
}

// CacheConfig selects where reports are cached.
type CacheConfig struct {
	Backend string `toml:"backend"`
	// Dir overrides the file backend's XDG cache directory.
	Dir string   `toml:"dir"`
	TTL Duration `toml:"ttl"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr        string   `toml:"addr"`
	Password    string   `toml:"password"`
	DB          int      `toml:"db"`
	Prefix      string   `toml:"prefix"`
	DialTimeout Duration `toml:"dial_timeout"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// BenchConfig configures the level benchmark.
type BenchConfig struct {
	Workers int  `toml:"workers"`
	Solve   bool `toml:"solve"`
}

// Duration is a time.Duration written as a string such as "30s" or "24h".
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

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			Prefix:      appName + ":",
			DialTimeout: Duration{5 * time.Second},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{5 * time.Second},
		},
		Bench: BenchConfig{
			Workers: runtime.NumCPU(),
			Solve:   true,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gridlock/config.toml, falling back to
// ~/.config/gridlock/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path on top of [Default]. An empty path
// reads [DefaultPath] if that file exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Redis.Addr == "" {
		return errs.New(errs.ErrCodeInvalidInput, "redis.addr is required for the redis backend")
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidInput, "server.addr is required")
	}
	if c.Bench.Workers < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "bench.workers must be at least 1")
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errs.Wrap(errs.ErrCodeInvalidInput, err, "log.level")
	}
	return level, nil
}
