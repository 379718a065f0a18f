// Package config loads radclient configuration using koanf/v2: a YAML file
// overlaid with RADCLIENT_-prefixed environment variables, merged on top of
// sensible defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the complete radclient configuration.
type Config struct {
	Server     ServerConfig `koanf:"server"`
	Log        LogConfig    `koanf:"log"`
	Dictionary string       `koanf:"dictionary"`
}

// ServerConfig holds the RADIUS server endpoint and exchange parameters.
type ServerConfig struct {
	Addr       string        `koanf:"addr"`
	Secret     string        `koanf:"secret"`
	Timeout    time.Duration `koanf:"timeout"`
	RetryCount int           `koanf:"retry_count"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Timeout:    3 * time.Second,
			RetryCount: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

const envPrefix = "RADCLIENT_"

// Load reads configuration from a YAML file at path (if non-empty),
// overlays RADCLIENT_-prefixed environment variable overrides, and merges
// on top of DefaultConfig(). Missing fields inherit defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// envKeyMapper transforms RADCLIENT_SERVER_RETRY_COUNT -> server.retry_count:
// strip the prefix, lowercase, and turn only the first underscore (the
// section/key separator) into a dot, since key names themselves (like
// retry_count) legitimately contain underscores.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	if i := strings.Index(s, "_"); i >= 0 {
		return s[:i] + "." + s[i+1:]
	}
	return s
}

func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"server.timeout":     defaults.Server.Timeout.String(),
		"server.retry_count": defaults.Server.RetryCount,
		"log.level":          defaults.Log.Level,
		"log.format":         defaults.Log.Format,
	}
	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}
	return nil
}

// Validation errors.
var (
	ErrEmptyServerAddr   = errors.New("server.addr must not be empty")
	ErrEmptySecret       = errors.New("server.secret must not be empty")
	ErrInvalidTimeout    = errors.New("server.timeout must be > 0")
	ErrInvalidRetryCount = errors.New("server.retry_count must be >= 0")
)

// Validate checks the configuration for logical errors, returning the
// first one encountered.
func Validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return ErrEmptyServerAddr
	}
	if cfg.Server.Secret == "" {
		return ErrEmptySecret
	}
	if cfg.Server.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if cfg.Server.RetryCount < 0 {
		return ErrInvalidRetryCount
	}
	return nil
}

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
