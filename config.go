package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/base"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/infra"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
)

// Config holds the server configuration read from the environment.
type Config struct {
	MaxTries        int
	Seed            *uint64 // nil seeds the generator randomly
	CacheEntries    int
	CacheTTL        time.Duration
	MaxEnumerations int
	MaxMany         int
	LogLevel        slog.Level
}

// LoadConfig loads configuration from environment variables. Malformed
// numeric values fall back to their defaults; a malformed seed or log level
// is an error, since silently ignoring them changes observable output.
func LoadConfig() (*Config, error) {
	config := &Config{
		MaxTries:        envInt("NIN_MAX_TRIES", nin.DefaultMaxTries),
		CacheEntries:    envInt("NIN_CACHE_ENTRIES", base.DefaultCacheEntries),
		CacheTTL:        base.DefaultCacheTTL,
		MaxEnumerations: envInt("NIN_MAX_ENUMERATIONS", infra.DefaultMaxEnumerations),
		MaxMany:         envInt("NIN_MAX_MANY", base.DefaultMaxMany),
		LogLevel:        slog.LevelInfo,
	}

	if t := os.Getenv("NIN_CACHE_TTL"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			config.CacheTTL = d
		}
	}

	if s := os.Getenv("NIN_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("NIN_SEED must be an unsigned integer: %w", err)
		}
		config.Seed = &seed
	}

	if l := os.Getenv("NIN_LOG_LEVEL"); l != "" {
		if err := config.LogLevel.UnmarshalText([]byte(l)); err != nil {
			return nil, fmt.Errorf("NIN_LOG_LEVEL: %w", err)
		}
	}

	return config, nil
}

// GeneratorOptions returns the options for the shared random generator.
func (c *Config) GeneratorOptions() []nin.Option {
	opts := []nin.Option{nin.WithMaxTries(c.MaxTries)}
	if c.Seed != nil {
		opts = append(opts, nin.WithSeed(*c.Seed))
	}
	return opts
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
