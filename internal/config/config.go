// Package config provides environment-driven configuration for borderroute.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL       Secret
	DBMaxConns        int
	Port              string
	ListenHost        string
	CORSOrigins       []string
	LogLevel          string
	CountriesAPIURL   string
	LookupTimeout     time.Duration
	LookupConcurrency int
	LookupRate        float64
	SearchTimeout     time.Duration
	SearchMaxRounds   int
	ResolverCacheSize int
	DefaultMode       string
	ImportOnStart     bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     Secret(envOrDefault("DATABASE_URL", "")),
		Port:            envOrDefault("PORT", "3030"),
		ListenHost:      envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		CountriesAPIURL: strings.TrimRight(envOrDefault("COUNTRIES_API_URL", "https://restcountries.com/v3.1"), "/"),
		DefaultMode:     strings.ToLower(envOrDefault("DEFAULT_MODE", "api")),
		ImportOnStart:   envOrDefault("IMPORT_ON_START", "true") == "true",
	}

	var err error

	if cfg.LookupTimeout, err = envDuration("LOOKUP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if cfg.SearchTimeout, err = envDuration("SEARCH_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	if cfg.LookupConcurrency, err = envInt("LOOKUP_CONCURRENCY", 16); err != nil {
		return nil, err
	}

	if cfg.SearchMaxRounds, err = envInt("SEARCH_MAX_ROUNDS", 0); err != nil {
		return nil, err
	}

	if cfg.ResolverCacheSize, err = envInt("RESOLVER_CACHE_SIZE", 0); err != nil {
		return nil, err
	}

	if cfg.DBMaxConns, err = envInt("DB_MAX_CONNS", 8); err != nil {
		return nil, err
	}

	rate, err := strconv.ParseFloat(envOrDefault("LOOKUP_RATE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("LOOKUP_RATE must be a number: %w", err)
	}
	cfg.LookupRate = rate

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3000")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// StoreEnabled reports whether a database is configured for store mode.
func (c *Config) StoreEnabled() bool {
	return c.DatabaseURL.Value() != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v, err := strconv.Atoi(envOrDefault(key, strconv.Itoa(fallback)))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, err := time.ParseDuration(envOrDefault(key, fallback.String()))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 10s: %w", key, err)
	}

	return v, nil
}
